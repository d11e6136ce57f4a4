package article

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrTimestampMissing = errors.New("timestamp is missing")
	ErrTimestampInvalid = errors.New("timestamp is invalid")
)

// Source timestamps arrive with fractional seconds truncated to whatever
// precision the upstream renderer felt like emitting (".4", ".45", ...),
// so parse layouts expect the fraction padded to full microseconds.
var timestampLayouts = []string{
	"2006-01-02T15:04:05.000000-07:00",
	"2006-01-02T15:04:05-07:00",
	"2006-01-02T15:04:05.000000",
	"2006-01-02T15:04:05",
}

// NormalizeTimestamp parses an ISO 8601-ish timestamp into a timezone-aware
// instant. Short fractional components are right-padded to microsecond
// precision without touching a directly attached timezone marker, and a
// trailing "Z" is rewritten to an explicit "+00:00" offset.
func NormalizeTimestamp(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, ErrTimestampMissing
	}

	s := raw
	if dot := strings.Index(s, "."); dot != -1 {
		frac := s[dot+1:]
		if marker := strings.IndexAny(frac, "+-Z"); marker != -1 {
			// Pad the digits only; the timezone marker must survive intact.
			s = s[:dot+1] + padMicros(frac[:marker]) + frac[marker:]
		} else {
			s = s[:dot+1] + padMicros(frac)
		}
	}

	s = strings.Replace(s, "Z", "+00:00", 1)

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrTimestampInvalid, raw)
}

func padMicros(digits string) string {
	for len(digits) < 6 {
		digits += "0"
	}
	return digits
}
