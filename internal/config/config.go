package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/dshills/multipick/internal/cache"
	"github.com/dshills/multipick/internal/config/loader"
	"github.com/dshills/multipick/internal/logging"
	"github.com/dshills/multipick/internal/source"
)

// DefaultEndpoint is the coin list endpoint.
const DefaultEndpoint = "https://api.coingecko.com/api/v3/coins/list"

// Config is the complete multipick configuration.
type Config struct {
	Source  SourceConfig
	Select  SelectConfig
	Logging LoggingConfig
}

// SourceConfig configures where options come from.
type SourceConfig struct {
	Endpoint  string
	Timeout   time.Duration
	CacheTTL  time.Duration
	CacheKey  string
	MaxSample int
	MaxBody   int64
}

// SelectConfig configures the selection control.
type SelectConfig struct {
	// Limit caps the selection. Zero means unbounded.
	Limit int
	// Picked lists the labels selected on mount.
	Picked []string
	// Query is the initial search text.
	Query string
	// Placeholder is shown in the empty search input.
	Placeholder string
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level string
	// File receives log output. Empty means stderr.
	File string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Source: SourceConfig{
			Endpoint:  DefaultEndpoint,
			Timeout:   source.DefaultHTTPTimeout,
			CacheTTL:  cache.DefaultTTL,
			CacheKey:  source.DefaultKey,
			MaxSample: source.DefaultMaxSample,
			MaxBody:   source.DefaultMaxBody,
		},
		Select: SelectConfig{
			Placeholder: "Enter Coin",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadOptions controls where Load reads from.
type LoadOptions struct {
	// FS is the file system the config file is read from.
	FS loader.FileSystem
	// EnvPrefix selects environment variables. Empty disables them.
	EnvPrefix string
}

// DefaultLoadOptions reads from the OS file system and MULTIPICK_* variables.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		FS:        loader.DefaultFS(),
		EnvPrefix: loader.DefaultEnvPrefix,
	}
}

// Load builds a Config from defaults, the file at path (if path is not
// empty and the file exists), and the environment, then validates it.
func Load(path string, opts LoadOptions) (Config, error) {
	if opts.FS == nil {
		opts.FS = loader.DefaultFS()
	}

	var merged map[string]any
	if path != "" {
		fl, err := loader.ForPath(opts.FS, path)
		if err != nil {
			return Config{}, err
		}
		fileMap, err := fl.Load()
		if err != nil {
			return Config{}, err
		}
		merged = loader.DeepMerge(merged, fileMap)
	}

	if opts.EnvPrefix != "" {
		envMap, err := loader.NewEnvLoader(opts.EnvPrefix).Load()
		if err != nil {
			return Config{}, fmt.Errorf("loading environment: %w", err)
		}
		merged = loader.DeepMerge(merged, envMap)
	}

	cfg := Default()
	if err := cfg.Apply(merged); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Apply overlays values from a loaded map onto c. Unknown keys are ignored.
// All conversion errors are reported together.
func (c *Config) Apply(m map[string]any) error {
	var errs []error
	set := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	if src, ok := section(m, "source"); ok {
		set(applyString(src, "source.endpoint", "endpoint", &c.Source.Endpoint))
		set(applyDuration(src, "source.timeout", "timeout", &c.Source.Timeout))
		set(applyDuration(src, "source.cache_ttl", "cache_ttl", &c.Source.CacheTTL))
		set(applyString(src, "source.cache_key", "cache_key", &c.Source.CacheKey))
		set(applyInt(src, "source.max_sample", "max_sample", &c.Source.MaxSample))
		var maxBody int
		if _, ok := src["max_body"]; ok {
			if err := applyInt(src, "source.max_body", "max_body", &maxBody); err != nil {
				set(err)
			} else {
				c.Source.MaxBody = int64(maxBody)
			}
		}
	}

	if sel, ok := section(m, "select"); ok {
		set(applyInt(sel, "select.limit", "limit", &c.Select.Limit))
		set(applyStrings(sel, "select.picked", "picked", &c.Select.Picked))
		set(applyString(sel, "select.query", "query", &c.Select.Query))
		set(applyString(sel, "select.placeholder", "placeholder", &c.Select.Placeholder))
	}

	if lg, ok := section(m, "logging"); ok {
		set(applyString(lg, "logging.level", "level", &c.Logging.Level))
		set(applyString(lg, "logging.file", "file", &c.Logging.File))
	}

	return errors.Join(errs...)
}

// Validate checks the configuration for values the program cannot run with.
func (c Config) Validate() error {
	var errs []error

	u, err := url.Parse(c.Source.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fieldError("source.endpoint", c.Source.Endpoint, "must be an http(s) URL"))
	}
	if c.Source.Timeout <= 0 {
		errs = append(errs, fieldError("source.timeout", c.Source.Timeout, "must be positive"))
	}
	if c.Source.CacheTTL <= 0 {
		errs = append(errs, fieldError("source.cache_ttl", c.Source.CacheTTL, "must be positive"))
	}
	if c.Source.CacheKey == "" {
		errs = append(errs, fieldError("source.cache_key", c.Source.CacheKey, "must not be empty"))
	}
	if c.Source.MaxSample <= 0 {
		errs = append(errs, fieldError("source.max_sample", c.Source.MaxSample, "must be positive"))
	}
	if c.Source.MaxBody <= 0 {
		errs = append(errs, fieldError("source.max_body", c.Source.MaxBody, "must be positive"))
	}
	if c.Select.Limit < 0 {
		errs = append(errs, fieldError("select.limit", c.Select.Limit, "must not be negative"))
	}
	if n := distinct(c.Select.Picked); c.Select.Limit > 0 && n > c.Select.Limit {
		errs = append(errs, fieldError("select.picked", c.Select.Picked, "has %d distinct labels, more than limit %d", n, c.Select.Limit))
	}
	if _, ok := logging.ParseLevel(c.Logging.Level); !ok {
		errs = append(errs, fieldError("logging.level", c.Logging.Level, "must be debug, info, warn, or error"))
	}

	return errors.Join(errs...)
}

// distinct counts labels ignoring repeats, as the engine deduplicates the
// initial selection.
func distinct(labels []string) int {
	seen := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		seen[l] = struct{}{}
	}
	return len(seen)
}
