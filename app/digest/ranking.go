package digest

import (
	"cmp"
	"slices"
	"strings"

	"newsdigest/app/article"
)

// Ranked is an article annotated with per-run scores. Never persisted;
// recomputed on every digest run.
type Ranked struct {
	article.Article
	RecencyScore float64
	KeywordScore int
	Hotness      float64
}

// TopByRecency returns at most n articles ordered newest first. The sort is
// stable, so articles sharing a timestamp keep their input order.
func TopByRecency(articles []article.Article, n int) []article.Article {
	sorted := slices.Clone(articles)
	slices.SortStableFunc(sorted, func(a, b article.Article) int {
		return b.Timestamp.Compare(a.Timestamp)
	})

	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// TopByHotness scores every article as recency × keyword hits and returns
// at most n articles with a positive score, hottest first.
//
// Recency is normalized linearly over the batch: oldest 0.0, newest 1.0,
// every score 1.0 when all timestamps coincide. The keyword score is a raw
// hit count, so an old article dense in keywords can outrank a fresh one
// with few hits. That trade-off is the point of the scoring, not an
// accident.
func TopByHotness(articles []article.Article, keywords []string, n int) []Ranked {
	if len(articles) == 0 {
		return nil
	}

	earliest := articles[0].Timestamp
	latest := articles[0].Timestamp
	for _, a := range articles[1:] {
		if a.Timestamp.Before(earliest) {
			earliest = a.Timestamp
		}
		if a.Timestamp.After(latest) {
			latest = a.Timestamp
		}
	}
	totalSpan := latest.Sub(earliest).Seconds()

	ranked := make([]Ranked, 0, len(articles))
	for _, a := range articles {
		r := Ranked{Article: a, RecencyScore: 1.0}
		if totalSpan > 0 {
			r.RecencyScore = a.Timestamp.Sub(earliest).Seconds() / totalSpan
		}
		r.KeywordScore = keywordScore(a.Title, keywords) + keywordScore(a.Summary, keywords)
		r.Hotness = r.RecencyScore * float64(r.KeywordScore)

		if r.Hotness > 0 {
			ranked = append(ranked, r)
		}
	}

	// Stable sort: equal hotness resolves by input order, no secondary key.
	slices.SortStableFunc(ranked, func(a, b Ranked) int {
		return cmp.Compare(b.Hotness, a.Hotness)
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// FilterByKeywords returns the articles whose title or summary contains any
// of the keywords, preserving input order.
func FilterByKeywords(articles []article.Article, keywords []string) []article.Article {
	var matched []article.Article
	for _, a := range articles {
		if matchesAny(a, keywords) {
			matched = append(matched, a)
		}
	}
	return matched
}

func matchesAny(a article.Article, keywords []string) bool {
	title := strings.ToLower(a.Title)
	summary := strings.ToLower(a.Summary)
	for _, keyword := range keywords {
		if keyword == "" {
			continue
		}
		k := strings.ToLower(keyword)
		if strings.Contains(title, k) || strings.Contains(summary, k) {
			return true
		}
	}
	return false
}

// keywordScore counts case-insensitive substring occurrences of every
// keyword within text. Deliberately naive: no word boundaries, a keyword
// inside a longer word still counts.
func keywordScore(text string, keywords []string) int {
	lower := strings.ToLower(text)
	score := 0
	for _, keyword := range keywords {
		if keyword == "" {
			continue
		}
		score += strings.Count(lower, strings.ToLower(keyword))
	}
	return score
}
