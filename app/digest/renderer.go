package digest

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"newsdigest/app/article"
)

// ErrNothingToRender signals the terminal condition: an empty article set
// or an empty topic list yields no digest at all, not an empty document.
var ErrNothingToRender = errors.New("no articles or topics to process")

//go:embed digest.css
var defaultCSS string

// DefaultCSS is the built-in stylesheet embedded into rendered digests when
// no override is configured.
func DefaultCSS() string {
	return defaultCSS
}

const topArticles = 3

// Renderer assembles the digest document. The stylesheet is an opaque text
// blob injected verbatim into the document head.
type Renderer struct {
	css        string
	titleCaser cases.Caser
}

func NewRenderer(css string) *Renderer {
	return &Renderer{
		css:        css,
		titleCaser: cases.Title(language.English),
	}
}

// Run renders the full HTML digest: top articles by recency, top articles
// by hotness scored over the union of all topic keywords, then one
// collapsible block per topic in configuration order.
func (r *Renderer) Run(articles []article.Article, topics []Topic) (string, error) {
	if len(articles) == 0 || len(topics) == 0 {
		return "", ErrNothingToRender
	}

	today := time.Now().Format("January 02, 2006")

	var buf bytes.Buffer
	buf.WriteString("<html>\n<head>\n<meta charset='UTF-8'>\n")
	fmt.Fprintf(&buf, "<title>Daily News Digest — %s</title>\n", today)
	buf.WriteString("<style>\n")
	buf.WriteString(r.css)
	buf.WriteString("\n</style>\n</head>\n<body>\n")
	fmt.Fprintf(&buf, "<h1>📊 Daily News Digest — %s</h1>\n", today)

	if top := TopByRecency(articles, topArticles); len(top) > 0 {
		buf.WriteString("<h2>🔥 Top 3 Trending Articles</h2>\n<ul>\n")
		for _, a := range top {
			r.writeEntry(&buf, a)
		}
		buf.WriteString("</ul>\n")
	}

	if top := TopByHotness(articles, AllKeywords(topics), topArticles); len(top) > 0 {
		buf.WriteString("<h2>🔥 Top 3 Trending Articles (By Hotness Score)</h2>\n<ul>\n")
		for _, ranked := range top {
			r.writeEntry(&buf, ranked.Article)
		}
		buf.WriteString("</ul>\n")
	}

	for _, topic := range topics {
		matches := FilterByKeywords(articles, topic.Keywords)
		if len(matches) == 0 {
			continue
		}

		label := fmt.Sprintf("%s (%d %s)",
			html.EscapeString(r.titleCaser.String(topic.Name)),
			len(matches), pluralize(len(matches)))

		buf.WriteString("<details>\n")
		fmt.Fprintf(&buf, "<summary>%s</summary>\n", label)
		buf.WriteString("<ul style='margin-top: 10px;'>\n")
		for _, a := range matches {
			r.writeEntry(&buf, a)
		}
		buf.WriteString("</ul>\n</details>\n")
	}

	buf.WriteString("</body></html>")

	return buf.String(), nil
}

// writeEntry emits one article list item. Title, summary and resolved URL
// are untrusted text and always escaped.
func (r *Renderer) writeEntry(buf *bytes.Buffer, a article.Article) {
	// 12-hour label without a leading zero, e.g. [9:41 AM].
	timeLabel := a.Timestamp.Format("3:04 PM")
	title := html.EscapeString(strings.TrimSpace(a.Title))
	summary := html.EscapeString(strings.TrimSpace(a.Summary))
	url := html.EscapeString(article.ResolveURL(strings.TrimSpace(a.URL)))

	fmt.Fprintf(buf, "<li>\n<p class='time'>[%s]</p> <a href='%s' target='_blank' rel='noopener noreferrer'>%s</a>\n",
		timeLabel, url, title)
	if summary != "" {
		fmt.Fprintf(buf, "<p class='summary'>%s</p>\n", summary)
	}
	buf.WriteString("</li>\n")
}

func pluralize(n int) string {
	if n == 1 {
		return "article"
	}
	return "articles"
}
