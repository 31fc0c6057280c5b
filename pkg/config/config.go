// Package config loads sunburst settings from a TOML file.
//
// The file mirrors [pipeline.Options] under a [chart] table and adds
// settings used only by the CLI and server:
//
//	[chart]
//	center_radius = 0.1667
//	padding = 0.02
//	formats = ["svg", "png"]
//	width = 1600
//	height = 800
//
//	[cache]
//	dir = "/var/cache/sunburst"
//	redis_url = "redis://localhost:6379/0"
//
//	[server]
//	addr = ":8080"
//	rate = 10
//	burst = 20
//	max_body_bytes = 1048576
//
// Missing keys keep their defaults. Unknown keys are rejected so typos
// surface immediately.
package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/pipeline"
)

const appName = "sunburst"

// Server defaults.
const (
	DefaultAddr         = ":8080"
	DefaultRate         = 10.0
	DefaultBurst        = 20
	DefaultMaxBodyBytes = 1 << 20
	DefaultTimeout      = 30 * time.Second
)

// Config is the decoded configuration file.
type Config struct {
	Chart  pipeline.Options `toml:"chart"`
	Cache  Cache            `toml:"cache"`
	Server Server           `toml:"server"`
}

// Cache selects and configures the cache backend.
type Cache struct {
	// Dir is the file cache directory. Empty means the XDG cache dir.
	Dir string `toml:"dir"`
	// RedisURL switches to the Redis backend when set.
	RedisURL string `toml:"redis_url"`
	// Disabled turns caching off.
	Disabled bool `toml:"disabled"`
}

// Server configures `sunburst serve`.
type Server struct {
	Addr         string   `toml:"addr"`
	Rate         float64  `toml:"rate"`
	Burst        int      `toml:"burst"`
	MaxBodyBytes int64    `toml:"max_body_bytes"`
	Timeout      Duration `toml:"timeout"`
}

// Duration is a time.Duration written as a string ("30s") in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns a configuration with every default applied.
func Default() Config {
	c := Config{}
	c.SetDefaults()
	return c
}

// SetDefaults fills in server defaults. Chart defaults are left to the
// pipeline so explicit flags can still override them.
func (c *Config) SetDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.Rate == 0 {
		c.Server.Rate = DefaultRate
	}
	if c.Server.Burst == 0 {
		c.Server.Burst = DefaultBurst
	}
	if c.Server.MaxBodyBytes == 0 {
		c.Server.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.Server.Timeout.Duration == 0 {
		c.Server.Timeout.Duration = DefaultTimeout
	}
}

// Validate checks values that TOML decoding cannot.
func (c *Config) Validate() error {
	if c.Server.Rate < 0 || c.Server.Burst < 0 || c.Server.MaxBodyBytes < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server rate, burst and max_body_bytes must not be negative")
	}
	opts := c.Chart
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "[chart]")
	}
	return nil
}

// Load reads the file at path. A missing file yields the defaults when
// optional is true.
func Load(path string, optional bool) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && optional {
		return Default(), nil
	}
	if os.IsNotExist(err) {
		return Config{}, errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config")
	}
	return Parse(data)
}

// Parse decodes TOML data.
func Parse(data []byte) (Config, error) {
	var c Config
	md, err := toml.Decode(string(data), &c)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	c.SetDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// DefaultPath returns the config file location using the XDG standard
// (~/.config/sunburst/config.toml).
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Write encodes c as TOML.
func Write(c Config) ([]byte, error) {
	var buf strings.Builder
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode config")
	}
	return []byte(buf.String()), nil
}
