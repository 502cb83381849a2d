// Package config loads g6conv settings.
//
// Settings resolve in this order, later sources winning:
//
//  1. built-in defaults ([Default])
//  2. the TOML file at [DefaultPath] or an explicit --config path
//  3. G6CONV_* environment variables, optionally seeded from a .env file
//  4. command-line flags (applied by the CLI, not by this package)
//
// An example file:
//
//	input_format = "auto"
//	output_format = "dot"
//	workers = 4
//
//	[server]
//	addr = ":8080"
//	cache_size = 8192
//	cache_ttl = "1h"
//	redis_addr = "localhost:6379"
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	errs "github.com/matzehuels/g6conv/pkg/errors"
	"github.com/matzehuels/g6conv/pkg/graph6"
	"github.com/matzehuels/g6conv/pkg/pipeline"
	"github.com/matzehuels/g6conv/pkg/render"
	"github.com/matzehuels/g6conv/pkg/render/nodelink"
)

const (
	appName  = "g6conv"
	fileName = "config.toml"

	// EnvPrefix prefixes every environment variable read by Load.
	EnvPrefix = "G6CONV_"
)

// Server defaults.
const (
	DefaultAddr         = ":8080"
	DefaultCacheSize    = 4096
	DefaultCacheTTL     = time.Hour
	DefaultMaxBodyBytes = int64(32 << 20)
)

// Config is the resolved configuration.
type Config struct {
	InputFormat  string `toml:"input_format"`
	OutputFormat string `toml:"output_format"`
	Workers      int    `toml:"workers"`
	Strict       bool   `toml:"strict"`
	Layout       string `toml:"layout"`

	Server ServerConfig `toml:"server"`

	// Path is the file the settings were read from, or "" if none.
	Path string `toml:"-"`
}

// ServerConfig holds settings for `g6conv serve`.
type ServerConfig struct {
	Addr          string        `toml:"addr"`
	CacheSize     int           `toml:"cache_size"`
	CacheTTL      time.Duration `toml:"cache_ttl"`
	CachePrefix   string        `toml:"cache_prefix"`
	RedisAddr     string        `toml:"redis_addr"`
	RedisPassword string        `toml:"redis_password"`
	RedisDB       int           `toml:"redis_db"`
	MaxBodyBytes  int64         `toml:"max_body_bytes"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		InputFormat:  string(pipeline.DefaultInputFormat),
		OutputFormat: string(pipeline.DefaultOutputFormat),
		Workers:      pipeline.DefaultWorkers,
		Server: ServerConfig{
			Addr:         DefaultAddr,
			CacheSize:    DefaultCacheSize,
			CacheTTL:     DefaultCacheTTL,
			MaxBodyBytes: DefaultMaxBodyBytes,
		},
	}
}

// DefaultPath returns the config file location following the XDG
// standard (~/.config/g6conv/config.toml).
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}

// Load resolves the configuration. With path == "" the default location
// is tried and a missing file is not an error; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, applyEnv(&cfg, os.LookupEnv)
		}
		path = p
	}

	if err := decodeFile(&cfg, path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, applyEnv(&cfg, os.LookupEnv)
		}
		return cfg, err
	}
	cfg.Path = path

	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func decodeFile(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errs.New(errs.ErrCodeInvalidInput, "%s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// LoadDotenv loads KEY=value pairs from the given files (default ".env")
// into the process environment. Variables that are already set are kept,
// and missing files are ignored.
func LoadDotenv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return errs.Wrap(errs.ErrCodeInvalidInput, err, "load %s", f)
		}
	}
	return nil
}

// lookupFunc matches os.LookupEnv.
type lookupFunc func(string) (string, bool)

func applyEnv(cfg *Config, lookup lookupFunc) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	var firstErr error
	parse := func(name string, set func(string) error) {
		v, ok := lookup(EnvPrefix + name)
		if !ok || strings.TrimSpace(v) == "" {
			return
		}
		if err := set(strings.TrimSpace(v)); err != nil && firstErr == nil {
			firstErr = errs.Wrap(errs.ErrCodeInvalidInput, err, "%s%s=%q", EnvPrefix, name, v)
		}
	}
	atoi := func(dst *int) func(string) error {
		return func(s string) (err error) {
			*dst, err = strconv.Atoi(s)
			return err
		}
	}

	str("INPUT_FORMAT", &cfg.InputFormat)
	str("OUTPUT_FORMAT", &cfg.OutputFormat)
	str("LAYOUT", &cfg.Layout)
	parse("WORKERS", atoi(&cfg.Workers))
	parse("STRICT", func(s string) (err error) {
		cfg.Strict, err = strconv.ParseBool(s)
		return err
	})

	str("SERVER_ADDR", &cfg.Server.Addr)
	str("CACHE_PREFIX", &cfg.Server.CachePrefix)
	str("REDIS_ADDR", &cfg.Server.RedisAddr)
	str("REDIS_PASSWORD", &cfg.Server.RedisPassword)
	parse("REDIS_DB", atoi(&cfg.Server.RedisDB))
	parse("CACHE_SIZE", atoi(&cfg.Server.CacheSize))
	parse("CACHE_TTL", func(s string) (err error) {
		cfg.Server.CacheTTL, err = time.ParseDuration(s)
		return err
	})
	parse("MAX_BODY_BYTES", func(s string) (err error) {
		cfg.Server.MaxBodyBytes, err = strconv.ParseInt(s, 10, 64)
		return err
	})

	return firstErr
}

// Validate checks that formats are known and numbers are in range.
func (c Config) Validate() error {
	if _, err := graph6.ParseFormat(c.InputFormat); err != nil {
		return err
	}
	if _, err := render.ParseOutputFormat(c.OutputFormat); err != nil {
		return err
	}
	if c.Workers < 1 || c.Workers > pipeline.MaxWorkers {
		return errs.New(errs.ErrCodeInvalidInput, "workers must be between 1 and %d, got %d", pipeline.MaxWorkers, c.Workers)
	}
	if !nodelink.KnownLayout(c.Layout) {
		return errs.New(errs.ErrCodeInvalidInput, "layout %q is not one of %s", c.Layout, strings.Join(nodelink.Layouts(), ", "))
	}
	if c.Server.CacheSize < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "server.cache_size must not be negative")
	}
	if c.Server.CacheTTL < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "server.cache_ttl must not be negative")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return errs.New(errs.ErrCodeInvalidInput, "server.max_body_bytes must be positive")
	}
	return nil
}

// PipelineOptions returns the run options described by c.
func (c Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		InputFormat:  graph6.Format(c.InputFormat),
		OutputFormat: render.OutputFormat(c.OutputFormat),
		Workers:      c.Workers,
		Strict:       c.Strict,
		Layout:       c.Layout,
	}
}
