package render

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"image/color"
	"image/png"
	"io"
	"math"
	"strconv"
	"strings"
)

var svgFontWeight = map[Font]string{
	FontBold:   `font-weight="bold"`,
	FontItalic: `font-style="italic"`,
}

// WriteSVG replays the plan as an SVG document. Each erase wraps everything
// drawn so far in a group masked by the inverse of the erased shape.
func (p *Plan) WriteSVG(w io.Writer) error {
	g := p.Geometry
	var defs, body strings.Builder
	masks := 0

	for _, c := range p.Commands {
		if c.Op == OpErase {
			id := fmt.Sprintf("erase%d", masks)
			masks++
			fmt.Fprintf(&defs, `<mask id="%s" maskUnits="userSpaceOnUse" x="0" y="0" width="%d" height="%d">`, id, g.CanvasWidth, g.CanvasHeight)
			fmt.Fprintf(&defs, `<rect x="0" y="0" width="%d" height="%d" fill="#ffffff"/>`, g.CanvasWidth, g.CanvasHeight)
			writeShape(&defs, c, `fill="#000000"`)
			defs.WriteString(`</mask>`)

			inner := body.String()
			body.Reset()
			fmt.Fprintf(&body, `<g mask="url(#%s)">%s</g>`, id, inner)
			continue
		}

		switch c.Shape {
		case ShapeImage:
			if err := writeImage(&body, c); err != nil {
				return err
			}
		case ShapeText:
			fmt.Fprintf(&body, `<text x="%s" y="%s" text-anchor="middle" font-family="Go, Helvetica, Arial, sans-serif" font-size="%s" %s %s>`,
				num(c.X), num(c.Y), num(c.FontSize), svgFontWeight[c.Font], paint("fill", c.Color))
			if err := xml.EscapeText(&body, []byte(c.Text)); err != nil {
				return fmt.Errorf("%w: %v", ErrEncode, err)
			}
			body.WriteString(`</text>`)
		case ShapeStrokeRect:
			fmt.Fprintf(&body, `<rect x="%s" y="%s" width="%s" height="%s" fill="none" stroke-width="%s" %s/>`,
				num(c.X), num(c.Y), num(c.W), num(c.H), num(c.Stroke), paint("stroke", c.Color))
		default:
			writeShape(&body, c, paint("fill", c.Color))
		}
	}

	var out strings.Builder
	fmt.Fprintf(&out, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		g.CanvasWidth, g.CanvasHeight, g.CanvasWidth, g.CanvasHeight)
	if defs.Len() > 0 {
		out.WriteString(`<defs>`)
		out.WriteString(defs.String())
		out.WriteString(`</defs>`)
	}
	out.WriteString(body.String())
	out.WriteString("</svg>\n")

	if _, err := io.WriteString(w, out.String()); err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return nil
}

func writeShape(sb *strings.Builder, c Command, fill string) {
	switch c.Shape {
	case ShapeCircle:
		fmt.Fprintf(sb, `<ellipse cx="%s" cy="%s" rx="%s" ry="%s" %s/>`,
			num(c.X+c.W/2), num(c.Y+c.H/2), num(c.W/2), num(c.H/2), fill)
	case ShapeRoundRect:
		r := math.Min(c.Radius, math.Min(c.W, c.H)/2)
		fmt.Fprintf(sb, `<rect x="%s" y="%s" width="%s" height="%s" rx="%s" %s/>`,
			num(c.X), num(c.Y), num(c.W), num(c.H), num(r), fill)
	default:
		fmt.Fprintf(sb, `<rect x="%s" y="%s" width="%s" height="%s" %s/>`,
			num(c.X), num(c.Y), num(c.W), num(c.H), fill)
	}
}

func writeImage(sb *strings.Builder, c Command) error {
	if c.Image == nil {
		return nil
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, c.Image); err != nil {
		return fmt.Errorf("%w: embed logo: %v", ErrEncode, err)
	}
	fmt.Fprintf(sb, `<image x="%s" y="%s" width="%s" height="%s" preserveAspectRatio="none" href="data:image/png;base64,%s"/>`,
		num(c.X), num(c.Y), num(c.W), num(c.H), base64.StdEncoding.EncodeToString(buf.Bytes()))
	return nil
}

// paint renders an SVG color attribute, adding an opacity for translucent colors.
func paint(attr string, c color.NRGBA) string {
	v := fmt.Sprintf(`%s="#%02x%02x%02x"`, attr, c.R, c.G, c.B)
	if c.A != 0xff {
		v += fmt.Sprintf(` %s-opacity="%s"`, attr, num(float64(c.A)/255))
	}
	return v
}

func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
