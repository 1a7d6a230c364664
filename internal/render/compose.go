package render

import (
	"image"
	"image/color"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/cristianadrielbraun/enqrcode/internal/matrix"
	"github.com/cristianadrielbraun/enqrcode/internal/style"
)

const (
	// frameAllowance is added to each canvas axis when a frame is active,
	// frameInset is the data area offset inside it.
	frameAllowance = 200
	frameInset     = 100
	polaroidInsetY = 80

	// LogoScale is the logo side relative to the data area.
	LogoScale      = 0.22
	logoPadScale   = 0.1
	logoBackRadius = 10
)

var cardWhite = color.NRGBA{0xff, 0xff, 0xff, 0xff}

// upper uppercases a caption. Casers are stateful, so each call gets its own.
func upper(s string) string {
	return cases.Upper(language.Und).String(s)
}

// Layout resolves canvas and data area geometry for a matrix of side n.
func Layout(n int, cfg *style.Config) Geometry {
	size := float64(cfg.Width)
	g := Geometry{
		CanvasWidth:  cfg.Width,
		CanvasHeight: cfg.Width,
		DataSize:     size,
		Modules:      n,
	}
	if cfg.Frame != style.FrameNone {
		g.CanvasWidth += frameAllowance
		g.CanvasHeight += frameAllowance
		g.DataX, g.DataY = frameInset, frameInset
		if cfg.Frame == style.FramePolaroid {
			g.DataY = polaroidInsetY
		}
	}
	g.Cell = size / float64(n+2*cfg.Margin)
	g.OriginX = g.DataX + float64(cfg.Margin)*g.Cell
	g.OriginY = g.DataY + float64(cfg.Margin)*g.Cell
	return g
}

// Compose builds the drawing plan for m under cfg. logo may be nil.
func Compose(m *matrix.Matrix, cfg *style.Config, logo image.Image) *Plan {
	p := &Plan{Geometry: Layout(m.Size(), cfg)}
	c := composer{plan: p, cfg: cfg}

	c.background()
	c.modules(m)

	n := m.Size()
	c.eye(0, 0)
	c.eye(n-matrix.FinderSize, 0)
	c.eye(0, n-matrix.FinderSize)

	if logo != nil {
		c.logo(logo)
	}
	return p
}

type composer struct {
	plan *Plan
	cfg  *style.Config
}

func (c composer) fill(layer Layer, shape Shape, x, y, w, h, radius float64, ink color.NRGBA) {
	c.plan.add(Command{Layer: layer, Shape: shape, X: x, Y: y, W: w, H: h, Radius: radius, Color: ink})
}

// clear returns a region to the background: the light color when opaque,
// otherwise true transparency (no frame) or the white card (framed), with
// a translucent light color painted back on top.
func (c composer) clear(layer Layer, shape Shape, x, y, w, h, radius float64) {
	light := c.cfg.Colors.Light
	if light.A != 0xff {
		if c.cfg.Frame == style.FrameNone {
			c.plan.add(Command{Layer: layer, Shape: shape, Op: OpErase, X: x, Y: y, W: w, H: h, Radius: radius})
		} else {
			c.fill(layer, shape, x, y, w, h, radius, cardWhite)
		}
	}
	if light.A > 0 {
		c.fill(layer, shape, x, y, w, h, radius, light)
	}
}

func (c composer) caption(text string, font Font, size float64, ink color.NRGBA) {
	g := c.plan.Geometry
	c.plan.add(Command{
		Layer:    LayerFrame,
		Shape:    ShapeText,
		X:        float64(g.CanvasWidth) / 2,
		Y:        float64(g.CanvasHeight) - 60,
		Text:     text,
		Font:     font,
		FontSize: size,
		Color:    ink,
	})
}

func (c composer) background() {
	g := c.plan.Geometry
	w, h := float64(g.CanvasWidth), float64(g.CanvasHeight)
	light := c.cfg.Colors.Light

	switch c.cfg.Frame {
	case style.FrameNone:
		if light.A > 0 {
			c.fill(LayerBackground, ShapeRect, 0, 0, w, h, 0, light)
		}
		return
	case style.FrameClassic:
		c.fill(LayerFrame, ShapeRect, 0, 0, w, h, 0, cardWhite)
		c.plan.add(Command{Layer: LayerFrame, Shape: ShapeStrokeRect, X: 40, Y: 40, W: w - 80, H: h - 80, Stroke: 20, Color: c.cfg.FrameInk()})
		c.caption(upper(c.cfg.FrameText), FontBold, 80, c.cfg.Colors.Dark)
	case style.FramePolaroid:
		c.fill(LayerFrame, ShapeRect, 0, 0, w, h, 0, cardWhite)
		c.caption(c.cfg.FrameText, FontItalic, 60, c.cfg.FrameInk())
	case style.FramePill:
		c.fill(LayerFrame, ShapeRoundRect, 20, 20, w-40, h-40, 100, c.cfg.FrameInk())
		c.fill(LayerFrame, ShapeRoundRect, g.DataX-20, g.DataY-20, g.DataSize+40, g.DataSize+40, 40, cardWhite)
		c.caption(upper(c.cfg.FrameText), FontBold, 60, cardWhite)
	}

	if light.A > 0 {
		c.fill(LayerBackground, ShapeRect, g.DataX, g.DataY, g.DataSize, g.DataSize, 0, light)
	}
}

// modules draws every dark module outside the finder zones.
func (c composer) modules(m *matrix.Matrix) {
	g := c.plan.Geometry
	dark := c.cfg.Colors.Dark
	n := m.Size()
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			if !m.At(col, row) || m.InFinder(col, row) {
				continue
			}
			x, y, s := g.Rect(col, row)
			cmd := Command{Layer: LayerModule, X: x, Y: y, W: s, H: s, Color: dark, Col: col, Row: row}
			switch c.cfg.Pattern {
			case style.PatternDot:
				cmd.Shape = ShapeCircle
			case style.PatternRounded:
				cmd.Shape = ShapeRoundRect
				cmd.Radius = 0.4 * s
			default:
				// half a pixel of overlap with neighbours
				cmd.Shape = ShapeRect
				cmd.W, cmd.H = s+0.5, s+0.5
			}
			c.plan.add(cmd)
		}
	}
}

// eye draws the finder pattern whose top-left module is (col, row): a 7x7
// shape, a 5x5 hole punched back to the background, then the 3x3 ball.
func (c composer) eye(col, row int) {
	g := c.plan.Geometry
	cell := g.Cell
	x, y, _ := g.Rect(col, row)
	dark := c.cfg.Colors.Dark

	outer, outerR := eyeShape(c.cfg.EyeFrame, 2.5*cell)
	c.fill(LayerEye, outer, x, y, 7*cell, 7*cell, outerR, dark)

	hole, holeR := eyeShape(c.cfg.EyeFrame, 1.5*cell)
	c.clear(LayerEye, hole, x+cell, y+cell, 5*cell, 5*cell, holeR)

	ball, ballR := eyeShape(c.cfg.EyeBall, cell)
	c.fill(LayerEye, ball, x+2*cell, y+2*cell, 3*cell, 3*cell, ballR, dark)
}

func eyeShape(s style.EyeShape, roundRadius float64) (Shape, float64) {
	switch s {
	case style.EyeRounded:
		return ShapeRoundRect, roundRadius
	case style.EyeCircle:
		return ShapeCircle, 0
	}
	return ShapeRect, 0
}

// LogoBox is the square the logo is fitted into, centered in the data area.
func LogoBox(g Geometry) (x, y, size float64) {
	size = g.DataSize * LogoScale
	return g.DataX + (g.DataSize-size)/2, g.DataY + (g.DataSize-size)/2, size
}

func (c composer) logo(img image.Image) {
	x, y, size := LogoBox(c.plan.Geometry)
	pad := size * logoPadScale
	c.clear(LayerLogo, ShapeRoundRect, x-pad, y-pad, size+2*pad, size+2*pad, logoBackRadius)

	b := img.Bounds()
	if b.Empty() {
		return
	}
	w, h := size, size
	if b.Dx() > b.Dy() {
		h = size * float64(b.Dy()) / float64(b.Dx())
	} else if b.Dy() > b.Dx() {
		w = size * float64(b.Dx()) / float64(b.Dy())
	}
	c.plan.add(Command{Layer: LayerLogo, Shape: ShapeImage, X: x + (size-w)/2, Y: y + (size-h)/2, W: w, H: h, Image: img})
}
