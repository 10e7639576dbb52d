package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type ScraperConfig struct {
	Timeout   time.Duration
	UserAgent string
}

func GetScraperConfig() (*ScraperConfig, error) {
	timeoutSeconds := 10
	if raw := os.Getenv("SCRAPER_TIMEOUT_SECONDS"); raw != "" {
		val, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse SCRAPER_TIMEOUT_SECONDS: %w", err)
		}
		timeoutSeconds = val
	}
	userAgent := os.Getenv("SCRAPER_USER_AGENT")
	if userAgent == "" {
		userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	}
	return &ScraperConfig{
		Timeout:   time.Duration(timeoutSeconds) * time.Second,
		UserAgent: userAgent,
	}, nil
}
