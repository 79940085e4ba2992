package config

import "time"

// VendorConfig holds the credentials for one upstream AI vendor source.
type VendorConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Token   string `mapstructure:"token"`
}

// VendorsConfig lists the credential sources in resolution priority order.
type VendorsConfig struct {
	Primary  VendorConfig `mapstructure:"primary"`
	Alias    VendorConfig `mapstructure:"alias"`
	Tertiary VendorConfig `mapstructure:"tertiary"`
}

// RateLimitConfig controls the per-user chat completion quota.
type RateLimitConfig struct {
	Requests      int `mapstructure:"requests"`
	WindowSeconds int `mapstructure:"window_seconds"`
}

// RedisConfig configures the usage task queue. Empty Addr disables it.
type RedisConfig struct {
	Addr string `mapstructure:"addr"`
}

// GeminiConfig configures the optional Gemini-backed translator.
type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// Config is the top-level gateway configuration.
type Config struct {
	ListenAddress   string            `mapstructure:"listen_address"`
	LogLevel        string            `mapstructure:"log_level"`
	ShutdownTimeout time.Duration     `mapstructure:"shutdown_timeout"`
	Vendors         VendorsConfig     `mapstructure:"vendors"`
	RateLimit       RateLimitConfig   `mapstructure:"rate_limit"`
	AuthTokens      map[string]string `mapstructure:"auth_tokens"`
	SuggestionsFile string            `mapstructure:"suggestions_file"`
	Redis           RedisConfig       `mapstructure:"redis"`
	Gemini          GeminiConfig      `mapstructure:"gemini"`
}

// Default returns the configuration defaults applied before Load.
func Default() Config {
	return Config{
		ListenAddress:   ":8080",
		LogLevel:        "info",
		ShutdownTimeout: 15 * time.Second,
		RateLimit: RateLimitConfig{
			Requests:      5,
			WindowSeconds: 60,
		},
	}
}
