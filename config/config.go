package config

import (
	"os"
	"strconv"
	"time"

	errs "kwestendorf/scopeworker/pkg/errors"
)

// Config represents the application configuration
type Config struct {
	// HTTP API configuration
	APIAddr string

	// Persistence configuration
	DBPath string

	// Redis configuration
	RedisAddr            string
	RedisDB              int
	RedisStream          string
	RedisStreamCount     int
	RedisStreamMaxLength int

	// Memcache configuration
	MemcacheAddr string

	// Scrape configuration
	RefreshInterval time.Duration
	RefreshCooldown time.Duration
	PageTimeout     time.Duration
	PageDelay       time.Duration
	MaxPages        int

	// Browser configuration
	UseBrowser   bool
	BrowserWSURL string

	// URLs for the source adapters
	LeupoldURL string
	AmazonURL  string

	// Environment
	Environment string
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() Config {
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	streamCount, _ := strconv.Atoi(getEnv("REDIS_STREAM_COUNT", "1"))
	streamMaxLen, _ := strconv.Atoi(getEnv("REDIS_STREAM_MAX_LENGTH", "500"))
	refreshInterval, _ := strconv.Atoi(getEnv("REFRESH_INTERVAL_SECONDS", "86400"))
	refreshCooldown, _ := strconv.Atoi(getEnv("REFRESH_COOLDOWN_SECONDS", "60"))
	pageTimeout, _ := strconv.Atoi(getEnv("PAGE_TIMEOUT_SECONDS", "30"))
	pageDelay, _ := strconv.Atoi(getEnv("PAGE_DELAY_MS", "1000"))
	maxPages, _ := strconv.Atoi(getEnv("MAX_PAGES", "20"))
	useBrowser, _ := strconv.ParseBool(getEnv("USE_BROWSER", "true"))

	return Config{
		APIAddr:              getEnv("API_ADDR", ":3000"),
		DBPath:               getEnv("DB_PATH", "data/scopes.db"),
		RedisAddr:            getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:              redisDB,
		RedisStream:          getEnv("REDIS_STREAM", "scopes"),
		RedisStreamCount:     streamCount,
		RedisStreamMaxLength: streamMaxLen,
		MemcacheAddr:         getEnv("MEMCACHE_ADDR", "localhost:11211"),
		RefreshInterval:      time.Duration(refreshInterval) * time.Second,
		RefreshCooldown:      time.Duration(refreshCooldown) * time.Second,
		PageTimeout:          time.Duration(pageTimeout) * time.Second,
		PageDelay:            time.Duration(pageDelay) * time.Millisecond,
		MaxPages:             maxPages,
		UseBrowser:           useBrowser,
		BrowserWSURL:         getEnv("BROWSER_WS_URL", ""),
		LeupoldURL:           getEnv("LEUPOLD_URL", "https://www.leupold.com/shop/riflescopes"),
		AmazonURL:            getEnv("AMAZON_URL", "https://www.amazon.com/s?k=rifle+scope&rh=p_36%3A15000-&ref=sr_pg_1"),
		Environment:          getEnv("SCOPEWORKER_ENVIRONMENT", "development"),
	}
}

// Validate checks the configuration for values that cannot work
func (c Config) Validate() error {
	if c.APIAddr == "" {
		return errs.NewConfiguration("API_ADDR must not be empty", nil)
	}
	if c.DBPath == "" {
		return errs.NewConfiguration("DB_PATH must not be empty", nil)
	}
	if c.RefreshInterval <= 0 {
		return errs.NewConfiguration("REFRESH_INTERVAL_SECONDS must be positive", nil)
	}
	if c.PageTimeout <= 0 {
		return errs.NewConfiguration("PAGE_TIMEOUT_SECONDS must be positive", nil)
	}
	if c.MaxPages <= 0 {
		return errs.NewConfiguration("MAX_PAGES must be positive", nil)
	}
	if c.RedisStreamCount <= 0 {
		return errs.NewConfiguration("REDIS_STREAM_COUNT must be positive", nil)
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
