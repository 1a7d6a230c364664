package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pborman/getopt/v2"
	"go.uber.org/zap"

	"github.com/cristianadrielbraun/enqrcode/internal/logger"
	"github.com/cristianadrielbraun/enqrcode/internal/logo"
	"github.com/cristianadrielbraun/enqrcode/internal/matrix"
	"github.com/cristianadrielbraun/enqrcode/internal/render"
	"github.com/cristianadrielbraun/enqrcode/internal/style"
)

var g = struct {
	out        string
	format     string
	width      int
	margin     int
	ecc        string
	pattern    string
	eyeFrame   string
	eyeBall    string
	frame      string
	frameText  string
	frameColor string
	dark       string
	light      string
	logo       string
	engine     string
	debug      bool
}{
	width:    style.DefaultWidth,
	margin:   style.DefaultMargin,
	ecc:      "M",
	pattern:  string(style.PatternSquare),
	eyeFrame: string(style.EyeSquare),
	eyeBall:  string(style.EyeSquare),
	frame:    string(style.FrameNone),
	dark:     "#000000",
	light:    "#ffffff",
	engine:   matrix.EngineYeqown,
}

func parseFlags() {
	help := getopt.BoolLong("help", 'h', "show this help")
	getopt.FlagLong(&g.out, "output", 'o', `output file, or "-" for standard output`, "file")
	getopt.FlagLong(&g.format, "format", 'f', "png, jpeg or svg; defaults to the output file suffix, else png", "format")
	getopt.FlagLong(&g.width, "width", 'w', "symbol width in pixels, frame excluded", "px")
	getopt.FlagLong(&g.margin, "margin", 'm', "quiet zone in modules", "n")
	getopt.FlagLong(&g.ecc, "ecc", 'e', "error correction level; a logo forces H", "L|M|Q|H")
	getopt.FlagLong(&g.pattern, "pattern", 'p', "module shape", "square|dot|rounded")
	getopt.FlagLong(&g.eyeFrame, "eye-frame", 0, "finder frame shape", "square|rounded|circle")
	getopt.FlagLong(&g.eyeBall, "eye-ball", 0, "finder ball shape", "square|rounded|circle")
	getopt.FlagLong(&g.frame, "frame", 0, "decorative frame", "none|classic|pill|polaroid")
	getopt.FlagLong(&g.frameText, "frame-text", 0, "frame caption [SCAN ME]", "text")
	getopt.FlagLong(&g.frameColor, "frame-color", 0, "frame color [dark color]", "color")
	getopt.FlagLong(&g.dark, "dark", 'd', "module color as #rgb, #rrggbb or #rrggbbaa", "color")
	getopt.FlagLong(&g.light, "light", 'l', `background color, or "transparent"`, "color")
	getopt.FlagLong(&g.logo, "logo", 'L', "center logo image (png, jpeg, gif, webp or svg)", "file")
	getopt.FlagLong(&g.engine, "engine", 0, "matrix engine", "yeqown|skip2")
	getopt.FlagLong(&g.debug, "debug", 0, "debug logging")
	getopt.SetParameters("[string ...]")

	getopt.Parse()
	if *help {
		getopt.PrintUsage(os.Stdout)
		fmt.Println("\nIf no string is given, data is read from standard input and the final\nnewline is stripped.")
		os.Exit(0)
	}
	if g.out == "-" {
		g.out = ""
	}
	g.format = formatFor(g.format, g.out)
}

// formatFor falls back to the output file suffix, then png.
func formatFor(format, out string) string {
	if format != "" {
		return format
	}
	if ext := strings.TrimPrefix(filepath.Ext(out), "."); ext != "" {
		return ext
	}
	return string(style.FormatPNG)
}

// readText joins the positional arguments, or reads r with one final
// newline stripped.
func readText(args []string, r io.Reader) (string, error) {
	if len(args) != 0 {
		return strings.Join(args, " "), nil
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s, _ := strings.CutSuffix(strings.ReplaceAll(string(b), "\r\n", "\n"), "\n")
	return s, nil
}

func run(log *zap.SugaredLogger) error {
	text, err := readText(getopt.Args(), os.Stdin)
	if err != nil {
		return err
	}

	opts := []style.Option{
		style.WithColors(g.dark, g.light),
		style.WithWidth(g.width),
		style.WithMargin(g.margin),
		style.WithErrorCorrection(g.ecc),
		style.WithPattern(g.pattern),
		style.WithEyeFrame(g.eyeFrame),
		style.WithEyeBall(g.eyeBall),
		style.WithFrame(g.frame),
		style.WithFrameText(g.frameText),
		style.WithFrameColor(g.frameColor),
		style.WithFormat(g.format),
	}
	if g.logo != "" {
		raw, err := os.ReadFile(g.logo)
		if err != nil {
			return err
		}
		prepared, err := logo.Preparer{}.PrepareOrOriginal(raw)
		if err != nil {
			log.Debugw("logo not normalized", "error", err)
		}
		opts = append(opts, style.WithLogo(prepared))
	}
	cfg, err := style.New(opts...)
	if err != nil {
		return err
	}

	gen, err := matrix.NewGenerator(g.engine)
	if err != nil {
		return err
	}
	res, err := render.New(gen, log.Named("render")).Render(text, cfg)
	if err != nil {
		return err
	}
	if res == nil {
		log.Warn("empty input, nothing rendered")
		return nil
	}
	for _, w := range res.Warnings {
		log.Warn(w)
	}

	if g.out == "" {
		if err := checkTerminal(res.Extension, isatty.IsTerminal(os.Stdout.Fd())); err != nil {
			return err
		}
		_, err = os.Stdout.Write(res.Data)
		return err
	}
	if err := os.WriteFile(g.out, res.Data, 0o644); err != nil {
		return err
	}
	log.Debugw("written", "file", g.out, "width", res.Width, "height", res.Height, "level", res.Level)
	return nil
}

// checkTerminal refuses binary output on a terminal; SVG is text and passes.
func checkTerminal(ext string, terminal bool) error {
	if terminal && ext != "svg" {
		return fmt.Errorf("refusing to write %s image to a terminal; use -o", ext)
	}
	return nil
}

func main() {
	parseFlags()
	log := logger.New(logger.Config{
		Debug:   g.debug,
		Output:  os.Stderr,
		NoColor: !isatty.IsTerminal(os.Stderr.Fd()),
	})
	defer log.Sync()

	if err := run(log); err != nil {
		log.Error(err)
		log.Sync()
		os.Exit(1)
	}
}
