package store

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"newsdigest/app/article"
)

// Column order of the persisted tabular file.
var columns = []string{"timestamp", "formatted_time", "title", "url", "summary"}

// Timestamps are persisted at full microsecond precision with an explicit
// offset, so older rows with truncated fractions still load.
const timestampColumnLayout = "2006-01-02T15:04:05.000000-07:00"

// Store is the append-only article store backed by a single CSV file.
// The header is written exactly once; rows are never mutated or deleted.
type Store struct {
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

// Append writes articles to the end of the store, emitting the header first
// if the file does not already start with it.
func (s *Store) Append(articles []article.Article) error {
	writeHeader, err := s.needsHeader()
	if err != nil {
		return err
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open store for append: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if writeHeader {
		if err := w.Write(columns); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for _, a := range articles {
		row := []string{
			a.Timestamp.Format(timestampColumnLayout),
			a.Timestamp.Format(article.DisplayTimeLayout),
			a.Title,
			a.URL,
			a.Summary,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush store: %w", err)
	}

	return nil
}

// LoadAll reads every persisted article, dropping rows whose timestamp does
// not parse. The number of dropped rows is returned alongside the articles.
func (s *Store) LoadAll() ([]article.Article, int, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open store: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read store: %w", err)
	}

	var articles []article.Article
	dropped := 0

	for i, record := range records {
		if i == 0 && isHeader(record) {
			continue
		}
		if len(record) < len(columns) {
			dropped++
			slog.Debug("Dropped malformed row", "line", i+1, "fields", len(record))
			continue
		}

		timestamp, err := article.NormalizeTimestamp(record[0])
		if err != nil {
			dropped++
			slog.Debug("Dropped row with unparseable timestamp", "line", i+1, "value", record[0])
			continue
		}

		articles = append(articles, article.Article{
			Timestamp: timestamp,
			Title:     record[2],
			URL:       record[3],
			Summary:   record[4],
		})
	}

	return articles, dropped, nil
}

// needsHeader reports whether the header line still has to be written. The
// check mirrors the append semantics: only the first line is inspected.
func (s *Store) needsHeader() (bool, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, fmt.Errorf("failed to inspect store: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return true, scanner.Err()
	}

	firstLine := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return !strings.Contains(firstLine, strings.Join(columns, ",")), nil
}

func isHeader(record []string) bool {
	return len(record) > 0 && strings.EqualFold(record[0], columns[0])
}
