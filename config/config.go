package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"time"

	"github.com/caarlos0/env/v11"
)

// DefaultTimeoutSeconds is applied when the config file does not set a timeout.
const DefaultTimeoutSeconds = 30

// DefaultAPIVersion is applied when the config file does not set api_version.
const DefaultAPIVersion = "wc/v3"

// Config holds the WooCommerce store credentials and HTTP settings.
// It is immutable after Load; the woo client is its only consumer.
type Config struct {
	StoreURL       string `json:"store_url" env:"WOOHOO_STORE_URL"`
	ConsumerKey    string `json:"consumer_key" env:"WOOHOO_CONSUMER_KEY"`
	ConsumerSecret string `json:"consumer_secret" env:"WOOHOO_CONSUMER_SECRET"`
	APIVersion     string `json:"api_version" env:"WOOHOO_API_VERSION"`

	// TimeoutSeconds bounds each WooCommerce HTTP call. There is no retry or
	// backoff; transient failures are reported to the caller immediately.
	TimeoutSeconds int `json:"timeout_seconds" env:"WOOHOO_TIMEOUT_SECONDS"`
}

// Timeout returns the HTTP timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Load reads a JSON configuration file from the given path and returns a
// validated Config. Environment variables in the format ${VAR_NAME} are
// expanded, and WOOHOO_* environment variables override file values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	expanded := expandEnvVars(string(data))

	var cfg Config
	if err := json.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Environment overrides win over file values
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parsing environment overrides: %w", err)
	}

	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}
	if cfg.TimeoutSeconds == 0 {
		cfg.TimeoutSeconds = DefaultTimeoutSeconds
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding
// environment variable values. Unset variables expand to an empty string.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

// Validate checks that all required configuration fields are present and
// well-formed. Returns an error describing the first failure encountered.
func (c *Config) Validate() error {
	if c.StoreURL == "" {
		return fmt.Errorf("store_url is required")
	}
	u, err := url.Parse(c.StoreURL)
	if err != nil {
		return fmt.Errorf("store_url is not a valid URL: %w", err)
	}
	if !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("store_url must be an absolute http(s) URL, got %q", c.StoreURL)
	}
	if c.ConsumerKey == "" {
		return fmt.Errorf("consumer_key is required")
	}
	if c.ConsumerSecret == "" {
		return fmt.Errorf("consumer_secret is required")
	}
	if c.APIVersion == "" {
		return fmt.Errorf("api_version is required")
	}
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout_seconds must be positive, got %d", c.TimeoutSeconds)
	}

	return nil
}
