package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cristianadrielbraun/enqrcode/internal/style"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.Server.Addr)
	require.Equal(t, "yeqown", cfg.Matrix.Engine)
	require.Equal(t, style.DefaultWidth, cfg.Render.Width)
	require.Equal(t, "M", cfg.Render.ECC)
	require.Equal(t, 300, cfg.Logo.MaxEdge)
	require.Equal(t, int64(10<<20), cfg.Logo.MaxUploadBytes)

	sc, err := style.New(cfg.StyleOptions()...)
	require.NoError(t, err)
	require.Equal(t, style.Default().Colors, sc.Colors)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9000"
log:
  debug: true
matrix:
  engine: skip2
render:
  width: 512
  light: transparent
`), 0o644))

	t.Setenv("PORT", "")
	t.Setenv("ENQRCODE_RENDER_MARGIN", "3")
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, ":9000", cfg.Server.Addr)
	require.True(t, cfg.Log.Debug)
	require.Equal(t, "skip2", cfg.Matrix.Engine)
	require.Equal(t, 512, cfg.Render.Width)
	require.Equal(t, 3, cfg.Render.Margin)
	require.Equal(t, "transparent", cfg.Render.Light)

	t.Setenv("PORT", "7070")
	cfg, err = Load(path)
	require.NoError(t, err)
	require.Equal(t, ":7070", cfg.Server.Addr)
}

func TestLoadRejectsInvalid(t *testing.T) {
	testCases := []struct {
		name string
		env  string
		val  string
	}{
		{name: "engine", env: "ENQRCODE_MATRIX_ENGINE", val: "zxing"},
		{name: "width", env: "ENQRCODE_RENDER_WIDTH", val: "5"},
		{name: "color", env: "ENQRCODE_RENDER_DARK", val: "blue-ish"},
		{name: "ecc", env: "ENQRCODE_RENDER_ECC", val: "X"},
		{name: "upload", env: "ENQRCODE_LOGO_MAX_UPLOAD_BYTES", val: "0"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.env, tc.val)
			_, err := Load("")
			require.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
