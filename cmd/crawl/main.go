package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"newsdigest/app/cfg"
	"newsdigest/app/crawler"
	"newsdigest/app/logger"
	"newsdigest/app/store"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	if err := logger.Setup(appCfg.LogFile, appCfg.Debug); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	httpClient := &http.Client{Timeout: time.Duration(appCfg.Timeout) * time.Second}
	fetcher := crawler.NewFetcher(httpClient, appCfg.UserAgent)
	extractor := crawler.NewExtractor()
	articleStore := store.New(appCfg.ArticlesFile)

	if appCfg.Schedule == "" {
		if err := runCrawl(fetcher, extractor, articleStore, appCfg); err != nil {
			slog.Error("Crawl failed", "error", err)
			os.Exit(1)
		}
		return
	}

	// Periodic mode: keep the process alive and re-run the crawl on the
	// configured cron schedule. Failed runs are logged, not fatal.
	scheduler := cron.New()
	_, err = scheduler.AddFunc(appCfg.Schedule, func() {
		if err := runCrawl(fetcher, extractor, articleStore, appCfg); err != nil {
			slog.Error("Scheduled crawl failed", "error", err)
		}
	})
	if err != nil {
		slog.Error("Invalid crawl schedule", "schedule", appCfg.Schedule, "error", err)
		os.Exit(1)
	}

	scheduler.Start()
	slog.Info("Crawler scheduled", "schedule", appCfg.Schedule, "url", appCfg.SourceURL)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	slog.Info("Received signal, shutting down", "signal", sig.String())

	<-scheduler.Stop().Done()
}

func runCrawl(fetcher *crawler.Fetcher, extractor *crawler.Extractor, articleStore *store.Store, appCfg *cfg.Cfg) error {
	started := time.Now()
	slog.Info("Started crawler", "url", appCfg.SourceURL)

	data, err := fetcher.Run(context.Background(), appCfg.SourceURL)
	if err != nil {
		return fmt.Errorf("failed to fetch source page: %w", err)
	}

	articles, skips, err := extractor.Run(data)
	if err != nil {
		return fmt.Errorf("failed to extract articles: %w", err)
	}

	for _, skip := range skips {
		slog.Warn("Skipped story card", "reason", skip.Reason, "value", skip.Value)
	}

	for _, a := range articles {
		slog.Info("Found article", "timestamp", a.Timestamp.Format(time.RFC3339), "title", a.Title)
	}

	if err := articleStore.Append(articles); err != nil {
		return fmt.Errorf("failed to save articles: %w", err)
	}

	slog.Info("Crawl completed",
		"found", len(articles),
		"skipped", len(skips),
		"file", appCfg.ArticlesFile,
		"duration", time.Since(started))

	return nil
}
