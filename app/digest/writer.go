package digest

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile writes the rendered digest to path and returns the resolved
// absolute path for reporting.
func WriteFile(path, content string) (string, error) {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write digest: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return path, nil
	}
	return abs, nil
}
