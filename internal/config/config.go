// Package config loads the run configuration from the environment, with an
// optional YAML file overriding the built-in feeds and keywords lists.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/deusflow/findigest/internal/rss"
)

// MissingCredentialError names a required setting that was absent. It is
// raised before any network connection is opened.
type MissingCredentialError struct {
	Key string
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("%s is required", e.Key)
}

// DefaultFeeds covers finance and crypto news for the DACH and MENA regions.
var DefaultFeeds = []string{
	// DACH region (Germany, Austria, Switzerland)
	"https://www.finma.ch/en/rss/news",
	"https://www.ecb.europa.eu/home/html/rss.en.html",
	"https://www.dnb.nl/en/rss/",
	// MENA region (Middle East and North Africa)
	"https://www.arabfinance.com/RSS/RSSList/en",
	"https://www.meed.com/rss-feeds",
	"https://fintechnews.ae/feed/",
	// Crypto, global and regional coverage
	"https://cointelegraph.com/rss-feeds",
	"https://invezz.com/feeds/",
}

var DefaultKeywords = []string{
	"banking", "finance", "crypto", "bitcoin", "blockchain", "fintech",
	"payment", "mena", "dach", "saudi", "dubai", "germany", "austria",
	"switzerland",
}

type Config struct {
	// Mail account; addresses stay raw here and are cleaned right before
	// sending so failures can report both forms.
	SenderEmail   string
	ReceiverEmail string
	EmailPassword string

	// SMTP endpoint (implicit TLS)
	SMTPHost string
	SMTPPort int

	// Feed settings
	FeedsConfigPath string
	Feeds           []string
	Keywords        []string
	RecencyWindow   time.Duration
	FetchTimeout    time.Duration

	Debug bool
}

func Load() (*Config, error) {
	// .env is a convenience for local runs; absence is fine.
	_ = godotenv.Load()

	cfg := &Config{
		SMTPHost:        "smtp.gmail.com",
		SMTPPort:        465,
		FeedsConfigPath: getEnvOrDefault("FEEDS_CONFIG_PATH", "configs/feeds.yaml"),
		Feeds:           DefaultFeeds,
		Keywords:        DefaultKeywords,
		RecencyWindow:   24 * time.Hour,
		FetchTimeout:    20 * time.Second,
	}

	cfg.SenderEmail = os.Getenv("SENDER_EMAIL")
	cfg.ReceiverEmail = os.Getenv("RECEIVER_EMAIL")
	cfg.EmailPassword = os.Getenv("EMAIL_PASSWORD")

	if host := os.Getenv("SMTP_HOST"); host != "" {
		cfg.SMTPHost = host
	}
	cfg.SMTPPort = getEnvIntOrDefault("SMTP_PORT", cfg.SMTPPort)

	if v := os.Getenv("RECENCY_WINDOW_HOURS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.RecencyWindow = time.Duration(val) * time.Hour
		}
	}
	if v := os.Getenv("FETCH_TIMEOUT_SECONDS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.FetchTimeout = time.Duration(val) * time.Second
		}
	}

	if os.Getenv("DEBUG") == "true" {
		cfg.Debug = true
	}

	// Optional override file; the built-in lists stay when it is absent.
	if fc, err := rss.LoadFeeds(cfg.FeedsConfigPath); err == nil {
		if len(fc.Feeds) > 0 {
			cfg.Feeds = fc.Feeds
		}
		if len(fc.Keywords) > 0 {
			cfg.Keywords = fc.Keywords
		}
	}

	return cfg, cfg.Validate()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func (c *Config) Validate() error {
	if c.SenderEmail == "" {
		return &MissingCredentialError{Key: "SENDER_EMAIL"}
	}
	if c.ReceiverEmail == "" {
		return &MissingCredentialError{Key: "RECEIVER_EMAIL"}
	}
	if c.EmailPassword == "" {
		return &MissingCredentialError{Key: "EMAIL_PASSWORD"}
	}
	if len(c.Feeds) == 0 {
		return fmt.Errorf("no feed sources configured")
	}
	if len(c.Keywords) == 0 {
		return fmt.Errorf("no keywords configured")
	}
	return nil
}
