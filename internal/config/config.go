package config

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	// Per-source scraper configuration, keyed by source name
	Scrapers map[string]SourceConfig `mapstructure:"scrapers"`

	// Filter criteria shared by all scrapers
	Filters Filters `mapstructure:"filters"`

	// Output configuration for exported artifacts
	Output OutputConfig `mapstructure:"output"`

	// Logging configuration
	Logging LoggingConfig `mapstructure:"logging"`
}

// SourceConfig holds the configuration block for one job board
type SourceConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	URL            string        `mapstructure:"url"`
	Timeout        time.Duration `mapstructure:"timeout"`
	RateLimitDelay time.Duration `mapstructure:"rate_limit_delay"`
	MaxPages       int           `mapstructure:"max_pages"`
	APIKey         string        `mapstructure:"api_key"`
}

// Filters holds the shared filter criteria applied by every scraper
type Filters struct {
	Keywords         []string `mapstructure:"keywords"`
	JobTitles        []string `mapstructure:"job_titles"`
	Locations        []string `mapstructure:"locations"`
	ExperienceLevels []string `mapstructure:"experience_levels"`
}

// OutputConfig holds export configuration
type OutputConfig struct {
	Dir      string   `mapstructure:"dir"`
	Filename string   `mapstructure:"filename"`
	Formats  []string `mapstructure:"formats"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Prefix string `mapstructure:"prefix"`
}

// Load loads configuration from file and environment. The returned Config
// is handed explicitly to consumers; there is no package-level state.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("$HOME/.datajobs")
	}

	setDefaults(v)
	bindEnvVars(v)

	// Config file not found is not an error, defaults and env still apply
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Source defaults
	v.SetDefault("scrapers.remoteok.enabled", true)
	v.SetDefault("scrapers.remoteok.url", "https://remoteok.com/api")
	v.SetDefault("scrapers.remoteok.timeout", "10s")
	v.SetDefault("scrapers.remoteok.rate_limit_delay", "2s")

	v.SetDefault("scrapers.jobicy.enabled", true)
	v.SetDefault("scrapers.jobicy.url", "https://jobicy.com/api/v2/remote-jobs")
	v.SetDefault("scrapers.jobicy.timeout", "10s")
	v.SetDefault("scrapers.jobicy.rate_limit_delay", "2s")

	v.SetDefault("scrapers.jooble.enabled", false)
	v.SetDefault("scrapers.jooble.url", "https://jooble.org/api/")
	v.SetDefault("scrapers.jooble.timeout", "10s")
	v.SetDefault("scrapers.jooble.rate_limit_delay", "2s")
	v.SetDefault("scrapers.jooble.max_pages", 3)

	// Filter defaults
	v.SetDefault("filters.keywords", []string{"analy", "data", "machine learning", "intelligence"})

	// Output defaults
	v.SetDefault("output.dir", "data/outputs")
	v.SetDefault("output.filename", "data_jobs_market_analysis")
	v.SetDefault("output.formats", []string{"csv", "json", "excel", "html"})

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.prefix", "datajobs ")
}

// bindEnvVars binds environment variables
func bindEnvVars(v *viper.Viper) {
	v.SetEnvPrefix("DATAJOBS")
	v.AutomaticEnv()

	v.BindEnv("scrapers.jooble.api_key", "JOOBLE_API_KEY")
}

// SourceNames returns every configured source name in sorted order, so
// coordinator runs are deterministic regardless of map iteration order.
func (c *Config) SourceNames() []string {
	names := make([]string, 0, len(c.Scrapers))
	for name := range c.Scrapers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EnabledSourceNames returns the sorted names of sources with enabled = true.
func (c *Config) EnabledSourceNames() []string {
	var names []string
	for name, sc := range c.Scrapers {
		if sc.Enabled {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Validate validates the configuration
func (c *Config) Validate() error {
	for name, sc := range c.Scrapers {
		if sc.URL == "" {
			return fmt.Errorf("scrapers.%s.url must be set", name)
		}
		if sc.Timeout < 0 {
			return fmt.Errorf("scrapers.%s.timeout must not be negative", name)
		}
		if sc.RateLimitDelay < 0 {
			return fmt.Errorf("scrapers.%s.rate_limit_delay must not be negative", name)
		}
		if sc.MaxPages < 0 {
			return fmt.Errorf("scrapers.%s.max_pages must not be negative", name)
		}
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir must be set")
	}
	return nil
}
