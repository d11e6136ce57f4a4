package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"newsdigest/app/cfg"
	"newsdigest/app/digest"
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

	slog.Info("Started digest", "store", appCfg.ArticlesFile, "topics", appCfg.TopicsFile)

	articleStore := store.New(appCfg.ArticlesFile)
	articles, dropped, err := articleStore.LoadAll()
	if err != nil {
		slog.Error("Failed to load articles", "error", err)
		os.Exit(1)
	}
	if dropped > 0 {
		slog.Warn("Dropped rows with unparseable timestamps", "count", dropped)
	}

	topics, err := digest.LoadTopics(appCfg.TopicsFile)
	if err != nil {
		slog.Error("Failed to load topics", "error", err)
		os.Exit(1)
	}

	css := digest.DefaultCSS()
	if appCfg.CSSFile != "" {
		data, err := os.ReadFile(appCfg.CSSFile)
		if err != nil {
			slog.Error("Failed to read stylesheet", "path", appCfg.CSSFile, "error", err)
			os.Exit(1)
		}
		css = string(data)
	}

	renderer := digest.NewRenderer(css)
	document, err := renderer.Run(articles, topics)
	if err != nil {
		if errors.Is(err, digest.ErrNothingToRender) {
			slog.Warn("No articles or topics to process", "articles", len(articles), "topics", len(topics))
			return
		}
		slog.Error("Failed to render digest", "error", err)
		os.Exit(1)
	}

	path, err := digest.WriteFile(appCfg.OutputFile, document)
	if err != nil {
		slog.Error("Failed to write digest", "error", err)
		os.Exit(1)
	}

	slog.Info("Digest saved", "path", path, "articles", len(articles), "topics", len(topics))
	fmt.Printf("Digest saved to %s\n", path)
}
