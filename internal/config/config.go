package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// Config holds all application configuration
// Supports environment variables with sensible defaults
//
// Environment Variables:
// Upstream Configuration:
// - META_URL: base URL of the version metadata service (default: https://piston-meta.mojang.com)
// - RESOURCES_URL: base URL of the asset resource CDN (default: https://resources.download.minecraft.net)
// - HTTP_TIMEOUT: per-request timeout in seconds (default: 60)
// - MAX_RETRIES: download retry attempts (default: 3)
//
// Update Configuration:
// - OUTPUT_DIR: root directory for full/, valid/, version.txt, summary.json (default: .)
// - LOCALES: comma-separated locale codes (default: the supported locale set)
// - BASE_LOCALE: reference locale for completeness ratios (default: en_us)
// - FETCH_CONCURRENCY: parallel locale downloads (default: 4)
//
// Run Configuration:
// - RUN_ONCE: run a single update and exit (default: true)
// - CRON_EXPR: schedule when RUN_ONCE=false (default: "0 0 * * *")
// - LOG_LEVEL: debug/info/warn/error (default: info)

type Config struct {
	// Upstream Configuration
	Upstream UpstreamConfig `json:"upstream"`

	// Update Configuration
	Update UpdateConfig `json:"update"`

	// Run Configuration
	Run RunConfig `json:"run"`
}

// UpstreamConfig holds the configuration for the Mojang endpoints
type UpstreamConfig struct {
	MetaURL      string `json:"meta_url"`
	ResourcesURL string `json:"resources_url"`
	Timeout      int    `json:"timeout"`
	MaxRetries   int    `json:"max_retries"`
}

// UpdateConfig holds the configuration for the language file update
type UpdateConfig struct {
	OutputDir   string   `json:"output_dir"`
	Locales     []string `json:"locales"`
	BaseLocale  string   `json:"base_locale"`
	Concurrency int      `json:"concurrency"`
}

// RunConfig holds the configuration for run scheduling
type RunConfig struct {
	RunOnce  bool   `json:"run_once"`
	CronExpr string `json:"cron_expr"`
	LogLevel string `json:"log_level"`
}

// DefaultLocales is the supported locale set, base locale first.
var DefaultLocales = []string{
	"en_us",
	"zh_cn",
	"zh_hk",
	"zh_tw",
	"lzh",
	"ja_jp",
	"ko_kr",
	"vi_vn",
	"de_de",
	"es_es",
	"fr_fr",
	"it_it",
	"nl_nl",
	"pt_br",
	"ru_ru",
	"th_th",
	"uk_ua",
}

// Option is a function type for configuring Config
type Option func(*Config)

// New creates a new Config instance with values from environment
// variables and options. A .env file is loaded first when present.
func New(opts ...Option) (*Config, error) {
	// .env is optional when variables come from the environment (Docker, CI, etc.).
	_ = godotenv.Load()

	config := &Config{
		Upstream: UpstreamConfig{
			MetaURL:      getEnvString("META_URL", "https://piston-meta.mojang.com"),
			ResourcesURL: getEnvString("RESOURCES_URL", "https://resources.download.minecraft.net"),
			Timeout:      getEnvInt("HTTP_TIMEOUT", 60),
			MaxRetries:   getEnvInt("MAX_RETRIES", 3),
		},
		Update: UpdateConfig{
			OutputDir:   getEnvString("OUTPUT_DIR", "."),
			Locales:     getEnvList("LOCALES", DefaultLocales),
			BaseLocale:  getEnvString("BASE_LOCALE", "en_us"),
			Concurrency: getEnvInt("FETCH_CONCURRENCY", 4),
		},
		Run: RunConfig{
			RunOnce:  getEnvBool("RUN_ONCE", true),
			CronExpr: getEnvString("CRON_EXPR", "0 0 * * *"),
			LogLevel: getEnvString("LOG_LEVEL", "info"),
		},
	}

	// Apply custom options
	for _, opt := range opts {
		opt(config)
	}

	// Validate required configuration
	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// validate checks if all required configuration is properly set
func (c *Config) validate() error {
	if strings.TrimSpace(c.Upstream.MetaURL) == "" {
		return fmt.Errorf("META_URL is required")
	}
	if strings.TrimSpace(c.Upstream.ResourcesURL) == "" {
		return fmt.Errorf("RESOURCES_URL is required")
	}
	if c.Upstream.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if c.Upstream.MaxRetries < 1 {
		return fmt.Errorf("MAX_RETRIES must be at least 1")
	}
	if len(c.Update.Locales) == 0 {
		return fmt.Errorf("LOCALES must not be empty")
	}
	if !slices.Contains(c.Update.Locales, c.Update.BaseLocale) {
		return fmt.Errorf("BASE_LOCALE %q must be one of LOCALES", c.Update.BaseLocale)
	}
	if c.Update.Concurrency < 1 {
		return fmt.Errorf("FETCH_CONCURRENCY must be at least 1")
	}
	if !c.Run.RunOnce {
		if _, err := cron.ParseStandard(c.Run.CronExpr); err != nil {
			return fmt.Errorf("invalid CRON_EXPR: %w", err)
		}
	}
	return nil
}

// getEnvString gets a string value from environment variables with default
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer value from environment variables with default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool gets a boolean value from environment variables with default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvList gets a comma-separated list from environment variables with default
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return slices.Clone(defaultValue)
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return slices.Clone(defaultValue)
	}
	return items
}
