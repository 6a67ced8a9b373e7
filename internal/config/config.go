package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

const (
	defaultPageURL     = "https://www.tgju.org/"
	defaultUserAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	defaultStateMarker = "window.__INITIAL_STATE__"
	defaultStateFile   = "tgju_prices.json"
)

type Config struct {
	PageURL     string
	UserAgent   string
	StateMarker string
	StateFile   string

	FetchTimeoutSecs int
	PollIntervalSecs int
	BackoffSecs      int

	RedisURL       string
	StatusHTTPAddr string
	StatusAPIKey   string
}

func Load() *Config {
	cfg := &Config{
		PageURL:        strings.TrimSpace(os.Getenv("TGJU_URL")),
		UserAgent:      strings.TrimSpace(os.Getenv("TGJU_USER_AGENT")),
		StateMarker:    strings.TrimSpace(os.Getenv("TGJU_STATE_MARKER")),
		StateFile:      strings.TrimSpace(os.Getenv("STATE_FILE")),
		RedisURL:       strings.TrimSpace(os.Getenv("REDIS_URL")),
		StatusHTTPAddr: strings.TrimSpace(os.Getenv("STATUS_HTTP_ADDR")),
		StatusAPIKey:   strings.TrimSpace(os.Getenv("STATUS_API_KEY")),
	}

	if cfg.PageURL == "" {
		cfg.PageURL = defaultPageURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.StateMarker == "" {
		cfg.StateMarker = defaultStateMarker
	}
	if cfg.StateFile == "" {
		cfg.StateFile = defaultStateFile
	}
	if cfg.RedisURL == "" {
		log.Println("REDIS_URL not set, snapshot mirror disabled")
	}

	if cfg.StatusHTTPAddr != "" && cfg.StatusAPIKey == "" {
		log.Println("Warning: STATUS_API_KEY not set, /api routes are unauthenticated")
	}

	cfg.FetchTimeoutSecs = positiveInt("FETCH_TIMEOUT_SECS", 15)
	cfg.PollIntervalSecs = positiveInt("POLL_INTERVAL_SECS", 300)
	cfg.BackoffSecs = positiveInt("BACKOFF_SECS", 30)

	if cfg.BackoffSecs > cfg.PollIntervalSecs {
		log.Printf("Warning: BACKOFF_SECS=%d is longer than POLL_INTERVAL_SECS=%d", cfg.BackoffSecs, cfg.PollIntervalSecs)
	}

	return cfg
}

func positiveInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("Warning: invalid %s=%q, using %d", key, v, def)
		return def
	}
	return n
}
