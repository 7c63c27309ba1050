package novel

import (
	"time"

	"github.com/inkforge/novelkit/config"
	"github.com/inkforge/novelkit/jobs"
	"github.com/inkforge/novelkit/validation"
)

// Config configures a platform client.
type Config struct {
	// BaseURL is the platform API root, e.g. https://writer.example.com.
	BaseURL string `mapstructure:"base_url" json:"base_url" validate:"required,url"`
	// APIKey is the bearer token sent on every request. Optional for
	// anonymous deployments.
	APIKey string `mapstructure:"api_key" json:"api_key"`
	// Timeout bounds non-streaming requests. Streaming requests ignore
	// it and run under their caller's context.
	Timeout time.Duration `mapstructure:"timeout" json:"timeout"`
	// Polling tunes the analysis job poll loop.
	Polling PollingConfig `mapstructure:"polling" json:"polling"`
}

// PollingConfig mirrors jobs.Options for file-based configuration.
type PollingConfig struct {
	Interval time.Duration `mapstructure:"interval" json:"interval"`
	MaxPolls int           `mapstructure:"max_polls" json:"max_polls" validate:"gte=0"`
	Timeout  time.Duration `mapstructure:"timeout" json:"timeout"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.Polling.Interval <= 0 {
		c.Polling.Interval = jobs.DefaultInterval
	}
	if c.Polling.MaxPolls <= 0 {
		c.Polling.MaxPolls = jobs.DefaultMaxPolls
	}
	if c.Polling.Timeout <= 0 {
		c.Polling.Timeout = jobs.DefaultTimeout
	}
}

// Validate checks the configuration via struct tags.
func (c *Config) Validate() error {
	return validation.Struct(c)
}

// jobOptions converts the polling block into poll-loop options.
func (c *Config) jobOptions() jobs.Options {
	return jobs.Options{
		Interval: c.Polling.Interval,
		MaxPolls: c.Polling.MaxPolls,
		Timeout:  c.Polling.Timeout,
	}
}

// LoadConfig reads configuration from the standard file and environment
// sources, applies defaults and validates the result.
func LoadConfig(opts ...config.Option) (*Config, error) {
	var cfg Config
	if err := config.Load(&cfg, opts...); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
