package digest

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Topic maps a display name to the keywords that bucket articles under it.
// Topics keep their file order; the digest iterates them as configured.
type Topic struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// LoadTopics reads the topic configuration file. An absent file is not an
// error: it degrades to an empty topic list, which the renderer treats as a
// terminal condition.
func LoadTopics(path string) ([]Topic, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Warn("Topic file not found, no topics configured", "path", path)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read topics: %w", err)
	}

	var topics []Topic
	if err := yaml.Unmarshal(data, &topics); err != nil {
		return nil, fmt.Errorf("failed to parse topics: %w", err)
	}

	return topics, nil
}

// AllKeywords flattens every topic's keyword list into one scoring
// vocabulary. Keywords shared by several topics are kept per occurrence and
// therefore weigh proportionally more in hotness scoring.
func AllKeywords(topics []Topic) []string {
	var keywords []string
	for _, topic := range topics {
		keywords = append(keywords, topic.Keywords...)
	}
	return keywords
}
