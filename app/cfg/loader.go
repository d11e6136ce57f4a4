package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/114.0.0.0 Safari/537.36"

type rawCfg struct {
	// Crawl configuration
	SourceURL    string `long:"source-url" env:"SOURCE_URL" default:"https://www.reuters.com" description:"News source page to crawl"`
	ArticlesFile string `long:"articles-file" env:"ARTICLES_FILE" default:"reuters_articles.csv" description:"Append-only article store file"`
	UserAgent    string `long:"user-agent" env:"USER_AGENT" description:"User agent string for HTTP requests (browser-like default)"`
	Timeout      int    `long:"timeout" env:"TIMEOUT" default:"10" description:"HTTP request timeout in seconds"`
	Schedule     string `long:"schedule" env:"SCHEDULE" description:"Cron expression for periodic crawling (single run when unset)"`

	// Digest configuration
	TopicsFile string `long:"topics-file" env:"TOPICS_FILE" default:"topics.yml" description:"Topic to keyword mapping file"`
	OutputFile string `long:"output-file" env:"OUTPUT_FILE" default:"daily_digest.html" description:"Digest output path"`
	CSSFile    string `long:"css-file" env:"CSS_FILE" description:"Stylesheet injected into the digest (built-in default when unset)"`

	// Application metadata
	LogFile  string `long:"log-file" env:"LOG_FILE" description:"Log to file instead of stderr (optional)"`
	Timezone string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug    bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		SourceURL:    raw.SourceURL,
		ArticlesFile: raw.ArticlesFile,
		UserAgent:    cmp.Or(raw.UserAgent, defaultUserAgent),
		Timeout:      raw.Timeout,
		Schedule:     raw.Schedule,
		TopicsFile:   raw.TopicsFile,
		OutputFile:   raw.OutputFile,
		CSSFile:      raw.CSSFile,
		LogFile:      raw.LogFile,
		Timezone:     raw.Timezone,
		Debug:        raw.Debug,
		Version:      GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
