package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
)

var loadFonts = sync.OnceValues(func() (map[Font]*truetype.Font, error) {
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}
	italic, err := truetype.Parse(goitalic.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse italic font: %w", err)
	}
	return map[Font]*truetype.Font{FontBold: bold, FontItalic: italic}, nil
})

func fontFace(f Font, size float64) (font.Face, error) {
	fonts, err := loadFonts()
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(fonts[f], &truetype.Options{Size: size}), nil
}

// Rasterize replays the plan onto a transparent RGBA canvas.
func (p *Plan) Rasterize() (*image.RGBA, error) {
	g := p.Geometry
	dc := gg.NewContext(g.CanvasWidth, g.CanvasHeight)
	canvas, ok := dc.Image().(*image.RGBA)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected canvas type %T", ErrEncode, dc.Image())
	}

	for _, c := range p.Commands {
		switch {
		case c.Op == OpErase:
			erase(canvas, c)
		case c.Shape == ShapeImage:
			drawImage(canvas, c)
		case c.Shape == ShapeText:
			face, err := fontFace(c.Font, c.FontSize)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrEncode, err)
			}
			dc.SetFontFace(face)
			dc.SetColor(c.Color)
			dc.DrawStringAnchored(c.Text, c.X, c.Y, 0.5, 0)
		case c.Shape == ShapeStrokeRect:
			dc.SetColor(c.Color)
			dc.SetLineWidth(c.Stroke)
			dc.DrawRectangle(c.X, c.Y, c.W, c.H)
			dc.Stroke()
		default:
			dc.SetColor(c.Color)
			tracePath(dc, c)
			dc.Fill()
		}
	}
	return canvas, nil
}

func tracePath(dc *gg.Context, c Command) {
	switch c.Shape {
	case ShapeCircle:
		dc.DrawEllipse(c.X+c.W/2, c.Y+c.H/2, c.W/2, c.H/2)
	case ShapeRoundRect:
		dc.DrawRoundedRectangle(c.X, c.Y, c.W, c.H, math.Min(c.Radius, math.Min(c.W, c.H)/2))
	default:
		dc.DrawRectangle(c.X, c.Y, c.W, c.H)
	}
}

// erase clears the command's shape to transparency, keeping anti-aliased
// edges by using the shape's coverage as the mask. The mask only covers the
// shape's bounding box.
func erase(dst *image.RGBA, c Command) {
	r := image.Rect(
		int(math.Floor(c.X)), int(math.Floor(c.Y)),
		int(math.Ceil(c.X+c.W)), int(math.Ceil(c.Y+c.H)),
	).Intersect(dst.Bounds())
	if r.Empty() {
		return
	}

	local := c
	local.X -= float64(r.Min.X)
	local.Y -= float64(r.Min.Y)

	mc := gg.NewContext(r.Dx(), r.Dy())
	mc.SetColor(color.White)
	tracePath(mc, local)
	mc.Fill()
	draw.DrawMask(dst, r, image.Transparent, image.Point{}, mc.AsMask(), image.Point{}, draw.Src)
}

func drawImage(dst *image.RGBA, c Command) {
	r := image.Rect(
		int(math.Round(c.X)), int(math.Round(c.Y)),
		int(math.Round(c.X+c.W)), int(math.Round(c.Y+c.H)),
	)
	if r.Empty() || c.Image == nil {
		return
	}
	xdraw.CatmullRom.Scale(dst, r, c.Image, c.Image.Bounds(), xdraw.Over, nil)
}
