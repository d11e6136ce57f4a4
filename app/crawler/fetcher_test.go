package crawler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetcher_Run(t *testing.T) {
	var gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Write([]byte("<html>ok</html>"))
	}))
	defer server.Close()

	fetcher := NewFetcher(server.Client(), "Test Agent/1.0")
	data, err := fetcher.Run(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if string(data) != "<html>ok</html>" {
		t.Errorf("Unexpected body: %q", data)
	}
	if gotUserAgent != "Test Agent/1.0" {
		t.Errorf("User agent not sent, got %q", gotUserAgent)
	}
}

func TestFetcher_Run_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	fetcher := NewFetcher(server.Client(), "Test Agent/1.0")
	if _, err := fetcher.Run(context.Background(), server.URL); err == nil {
		t.Error("Expected error for non-200 status")
	}
}

func TestFetcher_Run_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	fetcher := NewFetcher(&http.Client{Timeout: time.Second}, "Test Agent/1.0")
	if _, err := fetcher.Run(context.Background(), url); err == nil {
		t.Error("Expected error when the server is unreachable")
	}
}
