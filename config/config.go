package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server         ServerConfig
	LLM            LLMConfig
	Cache          CacheConfig
	RateLimit      RateLimitConfig
	Recommendation RecommendationConfig
	Log            LogConfig
	Catalog        CatalogConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LLMConfig selects and configures the completion backend
type LLMConfig struct {
	Provider string        `mapstructure:"provider"` // "gemini" or "openai"
	APIKey   string        `mapstructure:"api_key"`
	BaseURL  string        `mapstructure:"base_url"` // openai-compatible endpoints only
	Model    string        `mapstructure:"model"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Retries  int           `mapstructure:"retries"`
}

// CacheConfig holds report cache configuration
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	TTL     time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds outbound rate limiting configuration
type RateLimitConfig struct {
	LLMPerMinute int `mapstructure:"llm_per_minute"`
	Burst        int `mapstructure:"burst"`
}

// RecommendationConfig controls how solutions are matched to pain points
type RecommendationConfig struct {
	Mode         string  `mapstructure:"mode"` // "llm" or "local"
	MinScore     float64 `mapstructure:"min_score"`
	MaxSolutions int     `mapstructure:"max_solutions"`
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// CatalogConfig points at optional catalog overrides. Empty paths use the embedded catalogs.
type CatalogConfig struct {
	CompaniesFile string `mapstructure:"companies_file"`
	SolutionsFile string `mapstructure:"solutions_file"`
}

// CredentialEnv is the conventional environment variable holding the model API key.
const CredentialEnv = "GEMINI_API_KEY"

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/salesai/")

	v.SetEnvPrefix("SALESAI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("llm.api_key", "SALESAI_LLM_API_KEY", CredentialEnv)

	setDefaults(v)

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.model", "gemini-1.5-pro")
	v.SetDefault("llm.base_url", "https://api.openai.com/v1")
	v.SetDefault("llm.timeout", "90s")
	v.SetDefault("llm.retries", 3)

	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl", "30m")

	v.SetDefault("ratelimit.llm_per_minute", 60)
	v.SetDefault("ratelimit.burst", 5)

	v.SetDefault("recommendation.mode", "llm")
	v.SetDefault("recommendation.min_score", 20.0)
	v.SetDefault("recommendation.max_solutions", 5)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	v.SetDefault("catalog.companies_file", "")
	v.SetDefault("catalog.solutions_file", "")
}

// validate validates the configuration. A missing API key is not an error here:
// the server still starts and answers LLM-backed requests with a 500.
func validate(config *Config) error {
	switch config.LLM.Provider {
	case "gemini", "openai":
	default:
		return fmt.Errorf("llm provider must be 'gemini' or 'openai', got: %s", config.LLM.Provider)
	}

	if config.LLM.Model == "" {
		return fmt.Errorf("llm model is required (set SALESAI_LLM_MODEL)")
	}

	if config.Recommendation.Mode != "llm" && config.Recommendation.Mode != "local" {
		return fmt.Errorf("recommendation mode must be 'llm' or 'local', got: %s", config.Recommendation.Mode)
	}

	switch strings.ToLower(config.Log.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic":
	default:
		return fmt.Errorf("log level must be one of trace, debug, info, warn, error, fatal, panic, got: %s", config.Log.Level)
	}

	if config.RateLimit.LLMPerMinute <= 0 {
		return fmt.Errorf("ratelimit.llm_per_minute must be positive, got: %d", config.RateLimit.LLMPerMinute)
	}

	return nil
}

// HasCredential reports whether an API key was configured
func (c *Config) HasCredential() bool {
	return strings.TrimSpace(c.LLM.APIKey) != ""
}
