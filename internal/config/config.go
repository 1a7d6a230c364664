// Package config loads service settings from an optional YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/cristianadrielbraun/enqrcode/internal/logo"
	"github.com/cristianadrielbraun/enqrcode/internal/matrix"
	"github.com/cristianadrielbraun/enqrcode/internal/style"
)

const EnvPrefix = "ENQRCODE"

type Config struct {
	Server Server `mapstructure:"server"`
	Log    Log    `mapstructure:"log"`
	Matrix Matrix `mapstructure:"matrix"`
	Render Render `mapstructure:"render"`
	Logo   Logo   `mapstructure:"logo"`
}

type Server struct {
	Addr string `mapstructure:"addr"`
}

type Log struct {
	Debug bool `mapstructure:"debug"`
}

type Matrix struct {
	Engine string `mapstructure:"engine"`
}

// Render holds the style defaults requests start from.
type Render struct {
	Width  int    `mapstructure:"width"`
	Margin int    `mapstructure:"margin"`
	Dark   string `mapstructure:"dark"`
	Light  string `mapstructure:"light"`
	ECC    string `mapstructure:"ecc"`
}

type Logo struct {
	MaxEdge        int   `mapstructure:"max_edge"`
	MaxUploadBytes int64 `mapstructure:"max_upload_bytes"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("log.debug", false)
	v.SetDefault("matrix.engine", matrix.EngineYeqown)
	v.SetDefault("render.width", style.DefaultWidth)
	v.SetDefault("render.margin", style.DefaultMargin)
	v.SetDefault("render.dark", "#000000")
	v.SetDefault("render.light", "#ffffff")
	v.SetDefault("render.ecc", string(matrix.LevelM))
	v.SetDefault("logo.max_edge", logo.DefaultMaxEdge)
	v.SetDefault("logo.max_upload_bytes", 10<<20)
}

// Load reads path (when non-empty) and ENQRCODE_* variables over the
// defaults. PORT, when set, overrides server.addr.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("port", "PORT"); err != nil {
		return nil, err
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if port := v.GetString("port"); port != "" {
		cfg.Server.Addr = ":" + port
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if _, err := matrix.NewGenerator(c.Matrix.Engine); err != nil {
		return err
	}
	if _, err := style.New(c.StyleOptions()...); err != nil {
		return fmt.Errorf("render defaults: %w", err)
	}
	if c.Logo.MaxUploadBytes <= 0 {
		return errors.New("logo.max_upload_bytes must be positive")
	}
	return nil
}

// StyleOptions turns the render defaults into style options.
func (c *Config) StyleOptions() []style.Option {
	return []style.Option{
		style.WithWidth(c.Render.Width),
		style.WithMargin(c.Render.Margin),
		style.WithColors(c.Render.Dark, c.Render.Light),
		style.WithErrorCorrection(c.Render.ECC),
	}
}
