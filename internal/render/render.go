// Package render turns a payload string and a style configuration into an
// encoded image of a styled QR symbol.
//
// Rendering is split in two: Compose lays the symbol out as an ordered list
// of drawing commands, and the plan is then replayed either onto a raster
// canvas (PNG, JPEG) or as SVG elements.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"

	"go.uber.org/zap"

	"github.com/cristianadrielbraun/enqrcode/internal/logo"
	"github.com/cristianadrielbraun/enqrcode/internal/matrix"
	"github.com/cristianadrielbraun/enqrcode/internal/style"
)

var ErrEncode = errors.New("image encoding failed")

// logoDecodeEdge is the rasterization size for vector logos, large enough to
// stay sharp at the maximum width.
const logoDecodeEdge = 1024

// Result is an encoded symbol.
type Result struct {
	Data        []byte
	ContentType string
	Extension   string
	Width       int
	Height      int
	Level       matrix.Level
	Warnings    []string
}

// Renderer renders symbols with a matrix generator.
type Renderer struct {
	gen matrix.Generator
	log *zap.SugaredLogger
}

// New returns a Renderer. A nil log discards output.
func New(gen matrix.Generator, log *zap.SugaredLogger) *Renderer {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Renderer{gen: gen, log: log}
}

// Render encodes text under cfg. Empty text renders nothing and returns
// (nil, nil). A logo that cannot be decoded is skipped with a warning.
func (r *Renderer) Render(text string, cfg *style.Config) (*Result, error) {
	if text == "" {
		return nil, nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m, err := r.gen.Generate(text, cfg.ErrorCorrection)
	if err != nil {
		return nil, err
	}

	res := &Result{Level: cfg.ErrorCorrection}
	var logoImg image.Image
	if cfg.HasLogo() {
		logoImg, err = logo.Decode(cfg.Logo, logoDecodeEdge)
		if err != nil {
			r.log.Warnw("logo skipped", "error", err)
			res.Warnings = append(res.Warnings, fmt.Sprintf("logo skipped: %v", err))
			logoImg = nil
		}
	}

	plan := Compose(m, cfg, logoImg)
	res.Width, res.Height = plan.Geometry.CanvasWidth, plan.Geometry.CanvasHeight

	var buf bytes.Buffer
	switch cfg.Format {
	case style.FormatSVG:
		if err := plan.WriteSVG(&buf); err != nil {
			return nil, err
		}
		res.ContentType, res.Extension = "image/svg+xml", "svg"
	case style.FormatJPEG:
		canvas, err := plan.Rasterize()
		if err != nil {
			return nil, err
		}
		if err := jpeg.Encode(&buf, flatten(canvas, cfg.Colors.Light), &jpeg.Options{Quality: 100}); err != nil {
			return nil, fmt.Errorf("%w: jpeg: %v", ErrEncode, err)
		}
		res.ContentType, res.Extension = "image/jpeg", "jpg"
	default:
		canvas, err := plan.Rasterize()
		if err != nil {
			return nil, err
		}
		if err := png.Encode(&buf, canvas); err != nil {
			return nil, fmt.Errorf("%w: png: %v", ErrEncode, err)
		}
		res.ContentType, res.Extension = "image/png", "png"
	}
	res.Data = buf.Bytes()

	r.log.Debugw("rendered",
		"modules", m.Size(),
		"level", cfg.ErrorCorrection,
		"format", cfg.Format,
		"frame", cfg.Frame,
		"bytes", len(res.Data),
	)
	return res, nil
}

// flatten composites img over an opaque background: the light color, or
// white when the light color is not opaque.
func flatten(img image.Image, light color.NRGBA) *image.RGBA {
	bg := color.NRGBA{0xff, 0xff, 0xff, 0xff}
	if light.A == 0xff {
		bg = light
	}
	out := image.NewRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Over)
	return out
}
