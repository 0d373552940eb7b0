// Package config loads the settings of the gep command.
//
// Settings are read from a YAML file, then from GEPRICE_* environment
// variables, and finally completed with defaults:
//
//	data_dir: price_data
//	registry:
//	  file: item_ids          # relative to data_dir
//	  delimiter: ","
//	source:
//	  base_url: http://services.runescape.com/m=itemdb_oldschool
//	  timeout: 30s
//	  request_delay: 2s
//	  rate_limit_backoff: 5s
//	  max_retries: 10
//	  cache_dir: ""           # no cache
//
// The environment variable of a key is its path in upper case, like
// GEPRICE_SOURCE_REQUEST_DELAY.
package config

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/etnz/geprice"
	"github.com/etnz/geprice/grandexchange"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/matryer/try.v1"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment variables.
const EnvPrefix = "GEPRICE"

// Config is the complete configuration.
type Config struct {
	DataDir  string         `yaml:"data_dir" envconfig:"DATA_DIR"`
	Registry RegistryConfig `yaml:"registry" envconfig:"REGISTRY"`
	Source   SourceConfig   `yaml:"source" envconfig:"SOURCE"`
}

// RegistryConfig locates the registry file.
type RegistryConfig struct {
	File      string `yaml:"file" envconfig:"FILE"`
	Delimiter string `yaml:"delimiter" envconfig:"DELIMITER"`
}

// SourceConfig configures the Grand Exchange client.
type SourceConfig struct {
	BaseURL          string        `yaml:"base_url" envconfig:"BASE_URL"`
	Timeout          time.Duration `yaml:"timeout" envconfig:"TIMEOUT"`
	RequestDelay     time.Duration `yaml:"request_delay" envconfig:"REQUEST_DELAY"`
	RateLimitBackoff time.Duration `yaml:"rate_limit_backoff" envconfig:"RATE_LIMIT_BACKOFF"`
	MaxRetries       int           `yaml:"max_retries" envconfig:"MAX_RETRIES"`
	CacheDir         string        `yaml:"cache_dir" envconfig:"CACHE_DIR"`
}

// Load reads the YAML file at path, expanding ${VAR} environment variables,
// then applies environment overrides and defaults. An empty path skips the file.
//
// The result is not validated, callers can still override it before calling Validate.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("parse config yaml %q: %w", path, err)
		}
	}
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("read config environment: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// LoadAndValidate loads config, applies defaults, and validates.
func LoadAndValidate(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.DataDir == "" {
		c.DataDir = geprice.DefaultRoot
	}
	if c.Registry.File == "" {
		c.Registry.File = geprice.DefaultRegistryFile
	}
	if c.Registry.Delimiter == "" {
		c.Registry.Delimiter = ","
	}
	if c.Source.BaseURL == "" {
		c.Source.BaseURL = grandexchange.DefaultBaseURL
	}
	if c.Source.Timeout == 0 {
		c.Source.Timeout = 30 * time.Second
	}
	if c.Source.RequestDelay == 0 {
		c.Source.RequestDelay = grandexchange.DefaultRequestDelay
	}
	if c.Source.RateLimitBackoff == 0 {
		c.Source.RateLimitBackoff = grandexchange.DefaultBackoff
	}
	if c.Source.MaxRetries == 0 {
		c.Source.MaxRetries = grandexchange.DefaultMaxAttempts
	}
}

// Validate checks the configuration, reporting every problem found.
func (c *Config) Validate() error {
	var errs []error
	if c.DataDir == "" {
		errs = append(errs, errors.New("data_dir is required"))
	}
	if c.Registry.File == "" {
		errs = append(errs, errors.New("registry.file is required"))
	}
	if d := c.Registry.Delimiter; utf8.RuneCountInString(d) != 1 {
		errs = append(errs, fmt.Errorf("registry.delimiter must be a single character, got %q", d))
	} else if r, _ := utf8.DecodeRuneInString(d); r >= '0' && r <= '9' || r == '\n' || r == '\r' {
		errs = append(errs, fmt.Errorf("registry.delimiter cannot be %q", d))
	}
	if u, err := url.Parse(c.Source.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("source.base_url must be an http(s) URL, got %q", c.Source.BaseURL))
	}
	if c.Source.Timeout < 0 {
		errs = append(errs, fmt.Errorf("source.timeout must be positive, got %v", c.Source.Timeout))
	}
	if c.Source.RequestDelay < 0 {
		errs = append(errs, fmt.Errorf("source.request_delay must be positive, got %v", c.Source.RequestDelay))
	}
	if c.Source.RateLimitBackoff < 0 {
		errs = append(errs, fmt.Errorf("source.rate_limit_backoff must be positive, got %v", c.Source.RateLimitBackoff))
	}
	if c.Source.MaxRetries < 1 || c.Source.MaxRetries > try.MaxRetries {
		errs = append(errs, fmt.Errorf("source.max_retries must be in 1..%d, got %d", try.MaxRetries, c.Source.MaxRetries))
	}
	return errors.Join(errs...)
}

// RegistryPath returns the registry file, relative to DataDir unless absolute.
func (c *Config) RegistryPath() string {
	if filepath.IsAbs(c.Registry.File) {
		return c.Registry.File
	}
	return filepath.Join(c.DataDir, c.Registry.File)
}

// Delimiter returns the registry delimiter. The configuration must be valid.
func (c *Config) Delimiter() rune {
	r, _ := utf8.DecodeRuneInString(c.Registry.Delimiter)
	return r
}

// ClientOptions returns the options of a grandexchange.Client for this configuration.
func (c *Config) ClientOptions() []grandexchange.Option {
	opts := []grandexchange.Option{
		grandexchange.WithBaseURL(c.Source.BaseURL),
		grandexchange.WithHTTPClient(&http.Client{Timeout: c.Source.Timeout}),
		grandexchange.WithRequestDelay(c.Source.RequestDelay),
		grandexchange.WithRetry(c.Source.MaxRetries, c.Source.RateLimitBackoff),
	}
	if c.Source.CacheDir != "" {
		opts = append(opts, grandexchange.WithDiskCache(c.Source.CacheDir))
	}
	return opts
}
