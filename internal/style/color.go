package style

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ParseColor accepts "#rgb", "#rrggbb", "#rrggbbaa" (leading # optional) and
// "transparent".
func ParseColor(s string) (color.NRGBA, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "transparent" {
		return color.NRGBA{0, 0, 0, 0}, nil
	}
	v = strings.TrimPrefix(v, "#")

	if len(v) == 3 {
		v = string([]byte{v[0], v[0], v[1], v[1], v[2], v[2]})
	}
	if len(v) == 6 {
		v += "ff"
	}
	if len(v) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}

	n, err := strconv.ParseUint(v, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}
	return color.NRGBA{R: uint8(n >> 24), G: uint8(n >> 16), B: uint8(n >> 8), A: uint8(n)}, nil
}

// MustColor is ParseColor for literals.
func MustColor(s string) color.NRGBA {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex formats c as #rrggbb, or #rrggbbaa when not opaque.
func Hex(c color.NRGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
