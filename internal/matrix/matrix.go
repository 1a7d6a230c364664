package matrix

import (
	"errors"
	"fmt"
	"strings"
)

// FinderSize is the side, in modules, of each of the three finder patterns.
const FinderSize = 7

// ErrGeneration is returned when the QR engine rejects the input text,
// typically because it exceeds the capacity for the chosen level.
var ErrGeneration = errors.New("qr matrix generation failed")

// Level is a QR error correction level.
type Level string

const (
	LevelL Level = "L"
	LevelM Level = "M"
	LevelQ Level = "Q"
	LevelH Level = "H"
)

// ParseLevel accepts L, M, Q or H in any case.
func ParseLevel(s string) (Level, error) {
	switch l := Level(strings.ToUpper(strings.TrimSpace(s))); l {
	case LevelL, LevelM, LevelQ, LevelH:
		return l, nil
	}
	return "", fmt.Errorf("unknown error correction level %q", s)
}

// Matrix is an immutable square grid of QR modules, indexed (column, row).
type Matrix struct {
	size int
	bits []bool
}

// FromRows copies a square [row][column] bitmap into a Matrix.
func FromRows(rows [][]bool) (*Matrix, error) {
	n := len(rows)
	if n == 0 {
		return nil, fmt.Errorf("empty bitmap")
	}
	m := &Matrix{size: n, bits: make([]bool, n*n)}
	for r, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("bitmap row %d has %d modules, want %d", r, len(row), n)
		}
		copy(m.bits[r*n:], row)
	}
	return m, nil
}

// Size returns N, the side of the grid.
func (m *Matrix) Size() int { return m.size }

// Version derives the QR version from the side length (N = 4v+17).
func (m *Matrix) Version() int { return (m.size - 17) / 4 }

// At reports whether the module at (col, row) is dark. Out of range is light.
func (m *Matrix) At(col, row int) bool {
	if col < 0 || row < 0 || col >= m.size || row >= m.size {
		return false
	}
	return m.bits[row*m.size+col]
}

// InFinder reports whether (col, row) lies in one of the top-left,
// top-right or bottom-left 7x7 finder zones.
func (m *Matrix) InFinder(col, row int) bool {
	return InFinderZone(m.size, col, row)
}

// InFinderZone is the finder exclusion predicate for a grid of side n.
func InFinderZone(n, col, row int) bool {
	switch {
	case row < FinderSize && col < FinderSize:
		return true
	case row < FinderSize && col >= n-FinderSize:
		return true
	case row >= n-FinderSize && col < FinderSize:
		return true
	}
	return false
}

// String renders the grid with '#' for dark and '.' for light modules.
func (m *Matrix) String() string {
	var b strings.Builder
	b.Grow(m.size * (m.size + 1))
	for r := 0; r < m.size; r++ {
		for c := 0; c < m.size; c++ {
			if m.At(c, r) {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
