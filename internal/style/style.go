// Package style holds the validated rendering options for a QR symbol.
package style

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/cristianadrielbraun/enqrcode/internal/matrix"
)

// ErrInvalid wraps every configuration validation failure.
var ErrInvalid = errors.New("invalid style")

type Pattern string

const (
	PatternSquare  Pattern = "square"
	PatternDot     Pattern = "dot"
	PatternRounded Pattern = "rounded"
)

// EyeShape styles the outer frame or the inner ball of a finder pattern.
type EyeShape string

const (
	EyeSquare  EyeShape = "square"
	EyeRounded EyeShape = "rounded"
	EyeCircle  EyeShape = "circle"
)

type Frame string

const (
	FrameNone     Frame = "none"
	FrameClassic  Frame = "classic"
	FramePill     Frame = "pill"
	FramePolaroid Frame = "polaroid"
)

type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatSVG  Format = "svg"
)

// Defaults.
const (
	DefaultWidth     = 1000
	DefaultMargin    = 1
	DefaultFrameText = "SCAN ME"
	MinWidth         = 64
	MaxWidth         = 4096
	MaxMargin        = 40
	MaxFrameText     = 64
)

// Colors are the foreground (modules) and background of the symbol.
// A Light alpha of 0 means a transparent background.
type Colors struct {
	Dark  color.NRGBA
	Light color.NRGBA
}

// Config is a complete rendering configuration. Build it with New so a
// logo always comes with level H.
type Config struct {
	Colors          Colors
	Margin          int          `validate:"min=0,max=40"`
	Pattern         Pattern      `validate:"oneof=square dot rounded"`
	EyeFrame        EyeShape     `validate:"oneof=square rounded circle"`
	EyeBall         EyeShape     `validate:"oneof=square rounded circle"`
	Frame           Frame        `validate:"oneof=none classic pill polaroid"`
	FrameText       string       `validate:"max=64"`
	FrameColor      *color.NRGBA // nil falls back to Colors.Dark
	ErrorCorrection matrix.Level `validate:"oneof=L M Q H"`
	Width           int          `validate:"min=64,max=4096"`
	Format          Format       `validate:"oneof=png jpeg svg"`
	Logo            []byte
}

// Option mutates a Config under construction.
type Option func(*Config) error

var validate = validator.New()

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Colors: Colors{
			Dark:  color.NRGBA{0, 0, 0, 0xff},
			Light: color.NRGBA{0xff, 0xff, 0xff, 0xff},
		},
		Margin:          DefaultMargin,
		Pattern:         PatternSquare,
		EyeFrame:        EyeSquare,
		EyeBall:         EyeSquare,
		Frame:           FrameNone,
		FrameText:       DefaultFrameText,
		ErrorCorrection: matrix.LevelM,
		Width:           DefaultWidth,
		Format:          FormatPNG,
	}
}

// New applies opts over Default, forces level H when a logo is set, and
// validates the result.
func New(opts ...Option) (*Config, error) {
	cfg := Default()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
		}
	}
	if cfg.HasLogo() {
		cfg.ErrorCorrection = matrix.LevelH
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks ranges, enums and that a logo implies level H.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.HasLogo() && c.ErrorCorrection != matrix.LevelH {
		return fmt.Errorf("%w: a logo requires error correction H, got %s", ErrInvalid, c.ErrorCorrection)
	}
	return nil
}

func (c *Config) HasLogo() bool { return len(c.Logo) > 0 }

// FrameInk is the frame color, defaulting to the module color.
func (c *Config) FrameInk() color.NRGBA {
	if c.FrameColor != nil {
		return *c.FrameColor
	}
	return c.Colors.Dark
}

// TransparentBackground reports whether the light color is fully transparent.
func (c *Config) TransparentBackground() bool { return c.Colors.Light.A == 0 }

func WithColors(dark, light string) Option {
	return func(c *Config) error {
		d, err := ParseColor(dark)
		if err != nil {
			return err
		}
		l, err := ParseColor(light)
		if err != nil {
			return err
		}
		c.Colors = Colors{Dark: d, Light: l}
		return nil
	}
}

func WithMargin(m int) Option {
	return func(c *Config) error {
		c.Margin = m
		return nil
	}
}

func WithPattern(p string) Option {
	return func(c *Config) error {
		c.Pattern = Pattern(strings.ToLower(p))
		return nil
	}
}

func WithEyeFrame(s string) Option {
	return func(c *Config) error {
		c.EyeFrame = EyeShape(strings.ToLower(s))
		return nil
	}
}

func WithEyeBall(s string) Option {
	return func(c *Config) error {
		c.EyeBall = EyeShape(strings.ToLower(s))
		return nil
	}
}

func WithFrame(f string) Option {
	return func(c *Config) error {
		c.Frame = Frame(strings.ToLower(f))
		return nil
	}
}

// WithFrameText sets the caption; empty keeps the default.
func WithFrameText(text string) Option {
	return func(c *Config) error {
		if text != "" {
			c.FrameText = text
		}
		return nil
	}
}

// WithFrameColor overrides the frame color; empty keeps the module color.
func WithFrameColor(s string) Option {
	return func(c *Config) error {
		if s == "" {
			c.FrameColor = nil
			return nil
		}
		fc, err := ParseColor(s)
		if err != nil {
			return err
		}
		c.FrameColor = &fc
		return nil
	}
}

func WithErrorCorrection(level string) Option {
	return func(c *Config) error {
		l, err := matrix.ParseLevel(level)
		if err != nil {
			return err
		}
		c.ErrorCorrection = l
		return nil
	}
}

func WithWidth(w int) Option {
	return func(c *Config) error {
		c.Width = w
		return nil
	}
}

// WithFormat accepts png, jpeg (or jpg) and svg.
func WithFormat(f string) Option {
	return func(c *Config) error {
		f = strings.ToLower(f)
		if f == "jpg" {
			f = string(FormatJPEG)
		}
		c.Format = Format(f)
		return nil
	}
}

// WithLogo embeds raw logo image bytes.
func WithLogo(b []byte) Option {
	return func(c *Config) error {
		c.Logo = b
		return nil
	}
}
