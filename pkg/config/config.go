// Package config loads library options from TOML: document shape for
// the JSON layer, load strictness, and the document cache backend.
package config

import (
	"context"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/stac-utils/gostac/pkg/cache"
	"github.com/stac-utils/gostac/pkg/errors"
	"github.com/stac-utils/gostac/pkg/stacjson"
)

// Cache backend names accepted in the [cache] section.
const (
	CacheBackendNone  = "none"
	CacheBackendFile  = "file"
	CacheBackendRedis = "redis"
)

// Config is the full option set. Zero values fall back to Default.
type Config struct {
	Encode EncodeConfig `toml:"encode"`
	Load   LoadConfig   `toml:"load"`
	Cache  CacheConfig  `toml:"cache"`
}

// EncodeConfig shapes dumped documents.
type EncodeConfig struct {
	Pretty bool   `toml:"pretty"`
	Indent string `toml:"indent"`
	Inline bool   `toml:"inline"`
}

// LoadConfig controls decode strictness.
type LoadConfig struct {
	// StrictIDs requires ids to be unique across the whole tree, not
	// just among siblings.
	StrictIDs bool `toml:"strict_ids"`
}

// CacheConfig selects and parameterizes the document cache.
type CacheConfig struct {
	Backend   string `toml:"backend"`
	Directory string `toml:"directory"`
	RedisAddr string `toml:"redis_addr"`
	Namespace string `toml:"namespace"`
	// TTL is a Go duration string, e.g. "24h". Empty means no expiry.
	TTL string `toml:"ttl"`
}

// Default returns the defaults: pretty inline documents, sibling-level
// id uniqueness, no caching.
func Default() Config {
	return Config{
		Encode: EncodeConfig{Pretty: true, Indent: "  ", Inline: true},
		Cache:  CacheConfig{Backend: CacheBackendNone, Namespace: "gostac"},
	}
}

// Load parses TOML configuration. Unknown keys are rejected so typos
// fail loudly instead of silently keeping a default.
func Load(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidValue, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidValue,
			"unknown config key %q", undecoded[0].String())
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile reads and parses a TOML configuration file.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeNotFound, err, "read config %q", path)
	}
	return Load(data)
}

func (c Config) validate() error {
	switch c.Cache.Backend {
	case "", CacheBackendNone, CacheBackendFile, CacheBackendRedis:
	default:
		return errors.New(errors.ErrCodeInvalidValue,
			"unknown cache backend %q", c.Cache.Backend)
	}
	if c.Cache.Backend == CacheBackendFile && c.Cache.Directory == "" {
		return errors.New(errors.ErrCodeInvalidValue, "file cache needs a directory")
	}
	if c.Cache.Backend == CacheBackendRedis && c.Cache.RedisAddr == "" {
		return errors.New(errors.ErrCodeInvalidValue, "redis cache needs an address")
	}
	if _, err := c.CacheTTL(); err != nil {
		return err
	}
	return nil
}

// Options maps the encode and load sections onto stacjson options.
func (c Config) Options() stacjson.Options {
	return stacjson.Options{
		Inline:    c.Encode.Inline,
		Pretty:    c.Encode.Pretty,
		Indent:    c.Encode.Indent,
		StrictIDs: c.Load.StrictIDs,
	}
}

// CacheTTL parses the configured cache TTL.
func (c Config) CacheTTL() (time.Duration, error) {
	if c.Cache.TTL == "" {
		return 0, nil
	}
	ttl, err := time.ParseDuration(c.Cache.TTL)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidValue, err, "cache ttl %q", c.Cache.TTL)
	}
	return ttl, nil
}

// NewCache builds the configured cache backend. Callers own the
// returned cache and should Close it.
func (c Config) NewCache(ctx context.Context) (cache.Cache, error) {
	switch c.Cache.Backend {
	case "", CacheBackendNone:
		return cache.NewNullCache(), nil
	case CacheBackendFile:
		return cache.NewFileCache(c.Cache.Directory)
	case CacheBackendRedis:
		return cache.NewRedisCache(ctx, c.Cache.RedisAddr)
	default:
		return nil, errors.New(errors.ErrCodeInvalidValue,
			"unknown cache backend %q", c.Cache.Backend)
	}
}
