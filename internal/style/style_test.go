package style

import (
	"errors"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cristianadrielbraun/enqrcode/internal/matrix"
)

func TestParseColor(t *testing.T) {
	testCases := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{in: "#000000", want: color.NRGBA{0, 0, 0, 255}},
		{in: "ff8800", want: color.NRGBA{255, 136, 0, 255}},
		{in: "#abc", want: color.NRGBA{0xaa, 0xbb, 0xcc, 255}},
		{in: "#ffffff00", want: color.NRGBA{255, 255, 255, 0}},
		{in: "#11223380", want: color.NRGBA{0x11, 0x22, 0x33, 0x80}},
		{in: "Transparent", want: color.NRGBA{}},
		{in: "#12345", wantErr: true},
		{in: "#gggggg", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseColor(tc.in)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
	require.Equal(t, "#ff8800", Hex(MustColor("#FF8800")))
	require.Equal(t, "#ff880080", Hex(MustColor("#ff880080")))
}

func TestNewDefaults(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)
	require.Equal(t, DefaultWidth, cfg.Width)
	require.Equal(t, DefaultMargin, cfg.Margin)
	require.Equal(t, matrix.LevelM, cfg.ErrorCorrection)
	require.Equal(t, PatternSquare, cfg.Pattern)
	require.Equal(t, FrameNone, cfg.Frame)
	require.Equal(t, FormatPNG, cfg.Format)
	require.Equal(t, cfg.Colors.Dark, cfg.FrameInk())
	require.False(t, cfg.TransparentBackground())
}

func TestLogoForcesLevelH(t *testing.T) {
	for _, level := range []string{"L", "M", "Q", "H"} {
		cfg, err := New(WithErrorCorrection(level), WithLogo([]byte("logo")))
		require.NoError(t, err)
		require.Equal(t, matrix.LevelH, cfg.ErrorCorrection)

		// option order does not matter
		cfg, err = New(WithLogo([]byte("logo")), WithErrorCorrection(level))
		require.NoError(t, err)
		require.Equal(t, matrix.LevelH, cfg.ErrorCorrection)
	}

	cfg, err := New(WithErrorCorrection("L"))
	require.NoError(t, err)
	require.Equal(t, matrix.LevelL, cfg.ErrorCorrection)
}

func TestValidateRejectsLogoWithoutH(t *testing.T) {
	cfg, err := New(WithLogo([]byte("logo")))
	require.NoError(t, err)
	cfg.ErrorCorrection = matrix.LevelQ
	err = cfg.Validate()
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrInvalid))
}

func TestNewRejectsInvalid(t *testing.T) {
	testCases := []struct {
		name string
		opt  Option
	}{
		{name: "pattern", opt: WithPattern("hexagon")},
		{name: "eye frame", opt: WithEyeFrame("star")},
		{name: "eye ball", opt: WithEyeBall("")},
		{name: "frame", opt: WithFrame("baroque")},
		{name: "format", opt: WithFormat("gif")},
		{name: "width small", opt: WithWidth(10)},
		{name: "width large", opt: WithWidth(100000)},
		{name: "margin", opt: WithMargin(-1)},
		{name: "level", opt: WithErrorCorrection("Z")},
		{name: "colors", opt: WithColors("#000", "nope")},
		{name: "frame color", opt: WithFrameColor("#12")},
		{name: "frame text", opt: WithFrameText(strings.Repeat("x", MaxFrameText+1))},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.opt)
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrInvalid))
		})
	}
}

func TestOptions(t *testing.T) {
	cfg, err := New(
		WithColors("#112233", "transparent"),
		WithMargin(4),
		WithPattern("Dot"),
		WithEyeFrame("circle"),
		WithEyeBall("rounded"),
		WithFrame("pill"),
		WithFrameText(""),
		WithFrameColor("#ff0000"),
		WithWidth(512),
		WithFormat("jpg"),
	)
	require.NoError(t, err)
	require.Equal(t, MustColor("#112233"), cfg.Colors.Dark)
	require.True(t, cfg.TransparentBackground())
	require.Equal(t, 4, cfg.Margin)
	require.Equal(t, PatternDot, cfg.Pattern)
	require.Equal(t, EyeCircle, cfg.EyeFrame)
	require.Equal(t, EyeRounded, cfg.EyeBall)
	require.Equal(t, FramePill, cfg.Frame)
	require.Equal(t, DefaultFrameText, cfg.FrameText)
	require.Equal(t, MustColor("#ff0000"), cfg.FrameInk())
	require.Equal(t, 512, cfg.Width)
	require.Equal(t, FormatJPEG, cfg.Format)
}
