// Package logo normalizes uploaded logo images into small PNGs suitable for
// embedding in the center of a symbol.
package logo

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"math"

	"github.com/nfnt/resize"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	_ "golang.org/x/image/webp"
)

// DefaultMaxEdge bounds the longest edge of a prepared logo.
const DefaultMaxEdge = 300

// maxPixels rejects decompression bombs before decoding pixel data.
const maxPixels = 50_000_000

var ErrDecode = errors.New("logo decode failed")

// Preparer decodes, downscales and re-encodes logos.
type Preparer struct {
	MaxEdge int
}

// Prepare bounds raw to DefaultMaxEdge and returns PNG bytes.
func Prepare(raw []byte) ([]byte, error) {
	return Preparer{MaxEdge: DefaultMaxEdge}.Prepare(raw)
}

func (p Preparer) edge() int {
	if p.MaxEdge <= 0 {
		return DefaultMaxEdge
	}
	return p.MaxEdge
}

// Prepare decodes raw (PNG, JPEG, GIF, WebP or SVG), scales it down so its
// longest edge fits MaxEdge and encodes it as PNG. Images already within the
// bound keep their size.
func (p Preparer) Prepare(raw []byte) ([]byte, error) {
	edge := p.edge()
	img, err := Decode(raw, edge)
	if err != nil {
		return nil, err
	}
	img = resize.Thumbnail(uint(edge), uint(edge), img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode logo: %w", err)
	}
	return buf.Bytes(), nil
}

// PrepareOrOriginal is Prepare that falls back to raw when preparation fails.
// The error is returned alongside as a warning.
func (p Preparer) PrepareOrOriginal(raw []byte) ([]byte, error) {
	out, err := p.Prepare(raw)
	if err != nil {
		return raw, err
	}
	return out, nil
}

// Decode turns raw image bytes into an image. SVG input is rasterized so its
// longest edge equals svgEdge.
func Decode(raw []byte, svgEdge int) (image.Image, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrDecode)
	}
	if IsSVG(raw) {
		return decodeSVG(raw, svgEdge)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width*cfg.Height > maxPixels {
		return nil, fmt.Errorf("%w: %s image %dx%d out of bounds", ErrDecode, format, cfg.Width, cfg.Height)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return img, nil
}

// IsSVG sniffs for an <svg element near the start of raw.
func IsSVG(raw []byte) bool {
	head := raw
	if len(head) > 1024 {
		head = head[:1024]
	}
	return bytes.Contains(bytes.ToLower(head), []byte("<svg"))
}

func decodeSVG(raw []byte, edge int) (image.Image, error) {
	if edge <= 0 {
		edge = DefaultMaxEdge
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(raw), oksvg.WarnErrorMode)
	if err != nil {
		return nil, fmt.Errorf("%w: svg: %v", ErrDecode, err)
	}

	vw, vh := icon.ViewBox.W, icon.ViewBox.H
	if vw <= 0 || vh <= 0 {
		vw, vh = 1, 1
	}
	w, h := float64(edge), float64(edge)
	if vw > vh {
		h = math.Max(1, math.Round(float64(edge)*vh/vw))
	} else if vh > vw {
		w = math.Max(1, math.Round(float64(edge)*vw/vh))
	}

	iw, ih := int(w), int(h)
	img := image.NewRGBA(image.Rect(0, 0, iw, ih))
	draw.Draw(img, img.Bounds(), image.Transparent, image.Point{}, draw.Src)
	icon.SetTarget(0, 0, w, h)
	icon.Draw(rasterx.NewDasher(iw, ih, rasterx.NewScannerGV(iw, ih, img, img.Bounds())), 1)
	return img, nil
}
