package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"newsdigest/app/article"
)

func testArticle(ts time.Time, title string) article.Article {
	return article.Article{
		Timestamp: ts,
		Title:     title,
		URL:       "https://www.reuters.com/world/" + strings.ToLower(strings.ReplaceAll(title, " ", "-")),
		Summary:   "Summary of " + title,
	}
}

func TestStore_Append_WritesHeaderOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "articles.csv")
	s := New(path)

	ts := time.Date(2023, 6, 5, 9, 41, 7, 0, time.UTC)
	if err := s.Append([]article.Article{testArticle(ts, "First batch")}); err != nil {
		t.Fatalf("first append failed: %v", err)
	}
	if err := s.Append([]article.Article{testArticle(ts.Add(time.Hour), "Second batch")}); err != nil {
		t.Fatalf("second append failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read store file: %v", err)
	}

	headerCount := strings.Count(string(data), "timestamp,formatted_time,title,url,summary")
	if headerCount != 1 {
		t.Errorf("Expected exactly 1 header line after two appends, got %d", headerCount)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Errorf("Expected header + 2 rows, got %d lines", len(lines))
	}
}

func TestStore_Append_KeepsExistingRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "articles.csv")
	s := New(path)

	ts := time.Date(2023, 6, 5, 9, 0, 0, 0, time.UTC)
	if err := s.Append([]article.Article{testArticle(ts, "Old article")}); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if err := s.Append([]article.Article{testArticle(ts.Add(time.Hour), "New article")}); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	articles, dropped, err := s.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if dropped != 0 {
		t.Errorf("Expected no dropped rows, got %d", dropped)
	}
	if len(articles) != 2 {
		t.Fatalf("Expected 2 articles, got %d", len(articles))
	}
	if articles[0].Title != "Old article" || articles[1].Title != "New article" {
		t.Errorf("Append order not preserved: %q, %q", articles[0].Title, articles[1].Title)
	}
}

func TestStore_LoadAll_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "articles.csv")
	s := New(path)

	ts := time.Date(2023, 6, 5, 9, 41, 7, 450000000, time.UTC)
	in := article.Article{
		Timestamp: ts,
		Title:     `Quote "heavy" title, with commas`,
		URL:       "https://www.reuters.com/world/q",
		Summary:   "Line with, commas",
	}
	if err := s.Append([]article.Article{in}); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	articles, _, err := s.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("Expected 1 article, got %d", len(articles))
	}

	got := articles[0]
	if !got.Timestamp.Equal(ts) {
		t.Errorf("Timestamp = %v, want %v", got.Timestamp, ts)
	}
	if got.Title != in.Title {
		t.Errorf("Title = %q, want %q", got.Title, in.Title)
	}
	if got.URL != in.URL {
		t.Errorf("URL = %q, want %q", got.URL, in.URL)
	}
	if got.Summary != in.Summary {
		t.Errorf("Summary = %q, want %q", got.Summary, in.Summary)
	}
}

func TestStore_LoadAll_DropsUnparseableTimestamps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "articles.csv")

	content := "timestamp,formatted_time,title,url,summary\n" +
		"2023-06-05T09:41:07.450000+00:00,\"June 05, 2023 @ 09:41 AM\",Good row,https://www.reuters.com/a,\n" +
		"garbage,whenever,Bad row,https://www.reuters.com/b,\n" +
		"2023-06-05T10:00:00.000000+00:00,\"June 05, 2023 @ 10:00 AM\",Another good row,https://www.reuters.com/c,\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to seed store file: %v", err)
	}

	articles, dropped, err := New(path).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if dropped != 1 {
		t.Errorf("Expected 1 dropped row, got %d", dropped)
	}
	if len(articles) != 2 {
		t.Fatalf("Expected 2 articles, got %d", len(articles))
	}
	if articles[0].Title != "Good row" || articles[1].Title != "Another good row" {
		t.Errorf("Unexpected surviving rows: %q, %q", articles[0].Title, articles[1].Title)
	}
}

func TestStore_LoadAll_MissingFile(t *testing.T) {
	_, _, err := New(filepath.Join(t.TempDir(), "missing.csv")).LoadAll()
	if err == nil {
		t.Error("Expected error for missing store file")
	}
}

func TestStore_Append_HeaderDetectedCaseInsensitively(t *testing.T) {
	path := filepath.Join(t.TempDir(), "articles.csv")

	// A store written by an older run may carry the header in upper case.
	seed := "TIMESTAMP,FORMATTED_TIME,TITLE,URL,SUMMARY\n"
	if err := os.WriteFile(path, []byte(seed), 0644); err != nil {
		t.Fatalf("failed to seed store file: %v", err)
	}

	s := New(path)
	ts := time.Date(2023, 6, 5, 9, 0, 0, 0, time.UTC)
	if err := s.Append([]article.Article{testArticle(ts, "Row")}); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read store file: %v", err)
	}
	if strings.Count(strings.ToLower(string(data)), "timestamp,formatted_time") != 1 {
		t.Errorf("Header should not be duplicated:\n%s", data)
	}
}
