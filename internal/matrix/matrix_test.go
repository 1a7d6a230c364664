package matrix

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// finderRing checks the 7x7 ring / 5x5 gap / 3x3 ball structure at (c0, r0).
func finderRing(t *testing.T, m *Matrix, c0, r0 int) {
	t.Helper()
	for r := 0; r < FinderSize; r++ {
		for c := 0; c < FinderSize; c++ {
			onRing := r == 0 || c == 0 || r == 6 || c == 6
			inBall := r >= 2 && r <= 4 && c >= 2 && c <= 4
			require.Equal(t, onRing || inBall, m.At(c0+c, r0+r), "finder at (%d,%d) module (%d,%d)", c0, r0, c, r)
		}
	}
}

func TestGenerators(t *testing.T) {
	testCases := []struct {
		name string
		gen  Generator
	}{
		{name: "yeqown", gen: Yeqown{}},
		{name: "skip2", gen: Skip2{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for _, level := range []Level{LevelL, LevelM, LevelQ, LevelH} {
				m, err := tc.gen.Generate("https://example.com/enqrcode", level)
				require.NoError(t, err)
				n := m.Size()
				require.GreaterOrEqual(t, n, 21)
				require.Zero(t, (n-17)%4, "side %d is not 4v+17", n)
				require.GreaterOrEqual(t, m.Version(), 1)

				finderRing(t, m, 0, 0)
				finderRing(t, m, n-FinderSize, 0)
				finderRing(t, m, 0, n-FinderSize)
			}
		})
	}
}

func TestHigherLevelNeverShrinks(t *testing.T) {
	text := strings.Repeat("enqrcode ", 8)
	low, err := Yeqown{}.Generate(text, LevelL)
	require.NoError(t, err)
	high, err := Yeqown{}.Generate(text, LevelH)
	require.NoError(t, err)
	require.GreaterOrEqual(t, high.Size(), low.Size())
}

func TestGenerateCapacityExceeded(t *testing.T) {
	text := strings.Repeat("x", 5000)
	for _, gen := range []Generator{Yeqown{}, Skip2{}} {
		_, err := gen.Generate(text, LevelH)
		require.Error(t, err)
		require.True(t, errors.Is(err, ErrGeneration))
	}
}

func TestFromRows(t *testing.T) {
	_, err := FromRows(nil)
	require.Error(t, err)

	_, err = FromRows([][]bool{{true, false}, {true}})
	require.Error(t, err)

	m, err := FromRows([][]bool{{true, false}, {false, true}})
	require.NoError(t, err)
	require.True(t, m.At(0, 0))
	require.False(t, m.At(1, 0))
	require.True(t, m.At(1, 1))
	require.False(t, m.At(5, 5))
	require.Equal(t, "#.\n.#\n", m.String())
}

func TestInFinderZone(t *testing.T) {
	n := 25
	require.True(t, InFinderZone(n, 0, 0))
	require.True(t, InFinderZone(n, 6, 6))
	require.False(t, InFinderZone(n, 7, 6))
	require.True(t, InFinderZone(n, n-1, 0))
	require.True(t, InFinderZone(n, n-7, 6))
	require.False(t, InFinderZone(n, n-8, 0))
	require.True(t, InFinderZone(n, 0, n-1))
	require.False(t, InFinderZone(n, n-1, n-1))
	require.False(t, InFinderZone(n, 12, 12))
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{"l": LevelL, "M": LevelM, " q ": LevelQ, "H": LevelH} {
		got, err := ParseLevel(in)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	_, err := ParseLevel("X")
	require.Error(t, err)
}

func TestNewGenerator(t *testing.T) {
	g, err := NewGenerator("")
	require.NoError(t, err)
	require.IsType(t, Yeqown{}, g)

	g, err = NewGenerator("SKIP2")
	require.NoError(t, err)
	require.IsType(t, Skip2{}, g)

	_, err = NewGenerator("zxing")
	require.Error(t, err)
}
