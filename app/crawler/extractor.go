package crawler

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"newsdigest/app/article"
)

// Skip records one story card dropped during extraction, so callers can
// observe skip counts without extraction failing the run.
type Skip struct {
	Reason string
	Value  string
}

// Extractor turns the source page markup into normalized article records.
// It depends only on the story-card structural convention, not on full-page
// semantics.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Run scans the markup for story cards and extracts one article per card.
// Cards missing a title or link element are expected noise and skipped
// silently; cards with an unparseable timestamp are skipped with a
// diagnostic. Output preserves document order.
func (e *Extractor) Run(data []byte) ([]article.Article, []Skip, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse markup: %w", err)
	}

	var articles []article.Article
	var skips []Skip

	doc.Find("li[class*='story-card']").Each(func(_ int, card *goquery.Selection) {
		titleSel := card.Find("span[data-testid='TitleHeading']").First()
		linkSel := card.Find("a[data-testid='TitleLink']").First()

		if titleSel.Length() == 0 || linkSel.Length() == 0 {
			skips = append(skips, Skip{Reason: "missing title or link element"})
			return
		}

		href, ok := linkSel.Attr("href")
		if !ok {
			skips = append(skips, Skip{Reason: "link element has no href"})
			return
		}

		summary := ""
		if summarySel := card.Find("p[data-testid='Description']").First(); summarySel.Length() > 0 {
			summary = strings.TrimSpace(summarySel.Text())
		}

		// No timestamp attribute at all means we fall back to the current
		// instant. That conflates missing data with actual recency, but it
		// is the established behavior of the pipeline.
		timestamp := time.Now().UTC()
		if datetime, ok := card.Find("time").First().Attr("datetime"); ok && datetime != "" {
			parsed, parseErr := article.NormalizeTimestamp(datetime)
			if parseErr != nil {
				skips = append(skips, Skip{Reason: "unparseable timestamp", Value: datetime})
				return
			}
			timestamp = parsed
		}

		articles = append(articles, article.Article{
			Timestamp: timestamp,
			Title:     strings.TrimSpace(titleSel.Text()),
			URL:       article.ResolveURL(href),
			Summary:   summary,
		})
	})

	return articles, skips, nil
}
