package model

import "time"

// Config holds the complete mixaudit configuration
type Config struct {
	Dataset      DatasetConfig     `yaml:"dataset" mapstructure:"dataset"`
	LLM          LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Cache        CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Concurrency  ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	RateLimiting RateLimitConfig   `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	Server       ServerConfig      `yaml:"server" mapstructure:"server"`
	Output       OutputConfig      `yaml:"output" mapstructure:"output"`
}

// DatasetConfig configures the model-output snapshot source
type DatasetConfig struct {
	Path     string        `yaml:"path" mapstructure:"path"`
	CacheTTL time.Duration `yaml:"cache_ttl" mapstructure:"cache_ttl"`
}

// LLMConfig configures the generative model used to answer questions
type LLMConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"` // openai, ollama, "" (disabled)
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"-" mapstructure:"-"` // from environment only, never persisted
	BaseURL   string `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// CacheConfig configures answer caching
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// ConcurrencyConfig configures batch processing
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// RateLimitConfig throttles calls to the LLM provider
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Addr string `yaml:"addr" mapstructure:"addr"`
}

// OutputConfig configures report and audit output
type OutputConfig struct {
	Verbose  bool   `yaml:"verbose" mapstructure:"verbose"`
	LogDir   string `yaml:"log_dir" mapstructure:"log_dir"`
	Annotate bool   `yaml:"annotate" mapstructure:"annotate"` // append discrepancy notes to answers
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Dataset: DatasetConfig{
			Path:     "model_output.json",
			CacheTTL: 5 * time.Minute,
		},
		LLM: LLMConfig{
			Provider:  "",
			Model:     "",
			Timeout:   30,
			MaxTokens: 1500,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     15 * time.Minute,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		RateLimiting: RateLimitConfig{
			RequestsPerSecond: 1.0,
			BurstSize:         2,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Output: OutputConfig{
			Verbose:  false,
			LogDir:   "logs",
			Annotate: true,
		},
	}
}
