package config

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/smottahedi/find-political-donors/internal/schema"
)

// EnvPrefix is the prefix of environment overrides. DONORS_STORE__CACHE_SIZE
// sets store.cache_size.
const EnvPrefix = "DONORS_"

// Config represents the top-level application config plus the resolved record layout.
type Config struct {
	Input  InputConfig  `koanf:"input"`
	Store  StoreConfig  `koanf:"store"`
	Server ServerConfig `koanf:"server"`
	Log    LogConfig    `koanf:"log"`

	// Layout is populated by Load from Input.Layout.
	Layout *schema.Layout `koanf:"-"`
}

type InputConfig struct {
	Delimiter    string `koanf:"delimiter"`
	Layout       string `koanf:"layout"` // YAML layout file, embedded FEC layout when empty
	MaxLineBytes int    `koanf:"max_line_bytes"`
}

type StoreConfig struct {
	Driver       string `koanf:"driver"` // sqlite | postgres
	DSN          string `koanf:"dsn"`
	CacheSize    int    `koanf:"cache_size"`
	MaxOpenConns int    `koanf:"max_open_conns"`
	AutoMigrate  bool   `koanf:"auto_migrate"`
	Reset        bool   `koanf:"reset"`
}

type ServerConfig struct {
	Port int    `koanf:"port"`
	Host string `koanf:"host"`
	Mode string `koanf:"mode"` // debug | release
}

type LogConfig struct {
	Level  string `koanf:"level"`  // debug | info | warn | error
	Format string `koanf:"format"` // text | json
}

// Defaults returns the built-in configuration values.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"input.delimiter":      "|",
		"input.layout":         "",
		"input.max_line_bytes": 1 << 20,
		"store.driver":         "sqlite",
		"store.dsn":            "",
		"store.cache_size":     1000,
		"store.max_open_conns": 1,
		"store.auto_migrate":   true,
		"store.reset":          true,
		"server.host":          "127.0.0.1",
		"server.port":          8080,
		"server.mode":          "release",
		"log.level":            "info",
		"log.format":           "text",
	}
}

func (c *Config) Validate() error {
	if utf8.RuneCountInString(c.Input.Delimiter) != 1 {
		return fmt.Errorf("invalid input.delimiter %q (must be exactly one character)", c.Input.Delimiter)
	}
	if c.Input.MaxLineBytes <= 0 {
		return fmt.Errorf("input.max_line_bytes must be > 0")
	}

	switch c.Store.Driver {
	case "sqlite":
	case "postgres":
		if strings.TrimSpace(c.Store.DSN) == "" {
			return fmt.Errorf("store.dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported store.driver %q (must be sqlite or postgres)", c.Store.Driver)
	}
	if c.Store.CacheSize <= 0 {
		return fmt.Errorf("store.cache_size must be > 0")
	}
	if c.Store.MaxOpenConns <= 0 {
		return fmt.Errorf("store.max_open_conns must be > 0")
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d (must be 1-65535)", c.Server.Port)
	}
	if strings.TrimSpace(c.Server.Host) == "" {
		return fmt.Errorf("server.host is required")
	}
	if c.Server.Mode != "debug" && c.Server.Mode != "release" {
		return fmt.Errorf("invalid server.mode %q (must be debug or release)", c.Server.Mode)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log.level %q", c.Log.Level)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("invalid log.format %q (must be text or json)", c.Log.Format)
	}
	return nil
}

// Load layers defaults, the optional config file, DONORS_ environment
// variables and overrides (highest precedence), validates the result and
// loads the record layout.
func Load(configPath string, overrides map[string]interface{}) (*Config, error) {
	k := koanf.New(".")

	for key, value := range Defaults() {
		k.Set(key, value)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	for key, value := range overrides {
		k.Set(key, value)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	layout, err := schema.Load(cfg.Input.Layout)
	if err != nil {
		return nil, fmt.Errorf("failed to load record layout: %w", err)
	}
	cfg.Layout = layout

	return &cfg, nil
}
