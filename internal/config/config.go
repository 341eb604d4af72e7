// Package config loads the editor server configuration through viper.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the root configuration structure.
type Config struct {
	Logger   LoggerConfig   `mapstructure:"logger"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	Server   ServerConfig   `mapstructure:"server"`
	Canvas   CanvasConfig   `mapstructure:"canvas"`
	Palette  PaletteConfig  `mapstructure:"palette"`
}

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string `mapstructure:"level"`
	Format      string `mapstructure:"format"`
	AddSource   bool   `mapstructure:"add_source"`
	ServiceName string `mapstructure:"service_name"`
	LogFile     string `mapstructure:"log_file"`
	MaxSize     int    `mapstructure:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups"`
	MaxAge      int    `mapstructure:"max_age"`
	Compress    bool   `mapstructure:"compress"`
}

// PostgresConfig holds settings for the database connection. An empty URL
// disables persistence.
type PostgresConfig struct {
	URL string `mapstructure:"url"`
}

// ServerConfig holds settings for the HTTP surface.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// CanvasConfig holds the geometry and colors the engine needs from the
// canvas.
type CanvasConfig struct {
	Color            string  `mapstructure:"color"`
	CenterOffsetX    float64 `mapstructure:"center_offset_x"`
	CenterOffsetY    float64 `mapstructure:"center_offset_y"`
	DuplicateOffsetX float64 `mapstructure:"duplicate_offset_x"`
	DuplicateOffsetY float64 `mapstructure:"duplicate_offset_y"`
}

// PaletteConfig points at extra template files.
type PaletteConfig struct {
	Dir string `mapstructure:"dir"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.service_name", "flow")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 28)
	v.SetDefault("logger.log_file", "")

	v.SetDefault("postgres.url", "")
	v.SetDefault("server.addr", ":3000")
	v.SetDefault("palette.dir", "")

	v.SetDefault("canvas.color", "#ffffff")
	v.SetDefault("canvas.center_offset_x", 75)
	v.SetDefault("canvas.center_offset_y", 40)
	v.SetDefault("canvas.duplicate_offset_x", 50)
	v.SetDefault("canvas.duplicate_offset_y", 50)
}

// New returns a viper instance with defaults and FLOW_ environment
// overrides, e.g. FLOW_POSTGRES_URL.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix("flow")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load unmarshals v into a Config and checks it.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFile reads a TOML or YAML file on top of the defaults. An empty path
// loads defaults and environment only.
func LoadFile(path string) (*Config, error) {
	v := New()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}
	return Load(v)
}

// Validate checks values that viper cannot.
func (c *Config) Validate() error {
	switch c.Logger.Format {
	case "console", "json":
	default:
		return fmt.Errorf("config: logger.format must be console or json, got %q", c.Logger.Format)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("config: server.addr is required")
	}
	return nil
}
