package render

import (
	"image"
	"image/color"
)

// Layer tags a command with the part of the symbol it belongs to.
type Layer uint8

const (
	LayerBackground Layer = iota
	LayerFrame
	LayerModule
	LayerEye
	LayerLogo
)

// Shape is the primitive a command draws.
type Shape uint8

const (
	ShapeRect Shape = iota
	ShapeRoundRect
	ShapeCircle // inscribed in the X, Y, W, H box
	ShapeStrokeRect
	ShapeText // X is the horizontal center, Y the baseline
	ShapeImage
)

// Op is the composite operation of a command.
type Op uint8

const (
	// OpOver paints Color over what is already there.
	OpOver Op = iota
	// OpErase clears the shape back to full transparency.
	OpErase
)

// Font selects a caption face.
type Font uint8

const (
	FontBold Font = iota
	FontItalic
)

// Command is one self-contained drawing step. Commands carry all of their
// state, so replaying a plan never depends on what the previous command left
// behind.
type Command struct {
	Layer  Layer
	Shape  Shape
	Op     Op
	X, Y   float64
	W, H   float64
	Radius float64 // corner radius of ShapeRoundRect
	Stroke float64 // line width of ShapeStrokeRect
	Color  color.NRGBA

	Text     string
	Font     Font
	FontSize float64

	Image image.Image

	// Col and Row locate LayerModule commands in the matrix.
	Col, Row int
}

// Geometry is the resolved layout of a render.
type Geometry struct {
	// Canvas is the full output size; frames make it larger than the data area.
	CanvasWidth, CanvasHeight int
	// Data area: a DataSize square at (DataX, DataY) holding margin and modules.
	DataX, DataY float64
	DataSize     float64
	// Cell is the side of one module; Origin is the top-left of module (0, 0).
	Cell             float64
	OriginX, OriginY float64
	Modules          int
}

// Rect returns the box of module (col, row).
func (g Geometry) Rect(col, row int) (x, y, size float64) {
	return g.OriginX + float64(col)*g.Cell, g.OriginY + float64(row)*g.Cell, g.Cell
}

// Plan is an ordered list of drawing commands over a fixed canvas, replayed
// by Rasterize or WriteSVG.
type Plan struct {
	Geometry Geometry
	Commands []Command
}

func (p *Plan) add(c Command) {
	p.Commands = append(p.Commands, c)
}
