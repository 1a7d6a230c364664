package matrix

import (
	"fmt"
	"strings"

	skip2 "github.com/skip2/go-qrcode"
	"github.com/yeqown/go-qrcode/v2"
)

// Generator turns text into a module matrix at a given error correction level.
type Generator interface {
	Generate(text string, level Level) (*Matrix, error)
}

// Engine names accepted by NewGenerator.
const (
	EngineYeqown = "yeqown"
	EngineSkip2  = "skip2"
)

// NewGenerator returns the engine registered under name; empty selects yeqown.
func NewGenerator(name string) (Generator, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", EngineYeqown:
		return Yeqown{}, nil
	case EngineSkip2:
		return Skip2{}, nil
	}
	return nil, fmt.Errorf("unknown matrix engine %q", name)
}

// Yeqown generates matrices with github.com/yeqown/go-qrcode.
type Yeqown struct{}

func (Yeqown) Generate(text string, level Level) (*Matrix, error) {
	ecc := qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionMedium)
	switch level {
	case LevelL:
		ecc = qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionLow)
	case LevelQ:
		ecc = qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionQuart)
	case LevelH:
		ecc = qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionHighest)
	}

	qrc, err := qrcode.NewWith(text, ecc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	w := &captureWriter{}
	if err := qrc.Save(w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	if w.m == nil {
		return nil, fmt.Errorf("%w: engine produced no matrix", ErrGeneration)
	}
	return w.m, nil
}

// captureWriter implements qrcode.Writer and keeps the bitmap instead of
// encoding an image.
type captureWriter struct {
	m *Matrix
}

func (w *captureWriter) Write(mat qrcode.Matrix) error {
	n := mat.Width()
	if n <= 0 {
		return fmt.Errorf("invalid QR matrix dimension")
	}
	m := &Matrix{size: n, bits: make([]bool, n*n)}
	mat.Iterate(qrcode.IterDirection_ROW, func(x int, y int, v qrcode.QRValue) {
		if x < n && y < n {
			m.bits[y*n+x] = v.IsSet()
		}
	})
	w.m = m
	return nil
}

func (w *captureWriter) Close() error { return nil }

// Skip2 generates matrices with github.com/skip2/go-qrcode.
type Skip2 struct{}

func (Skip2) Generate(text string, level Level) (*Matrix, error) {
	rl := skip2.Medium
	switch level {
	case LevelL:
		rl = skip2.Low
	case LevelQ:
		rl = skip2.High
	case LevelH:
		rl = skip2.Highest
	}

	qr, err := skip2.New(text, rl)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	qr.DisableBorder = true
	m, err := FromRows(qr.Bitmap())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	return m, nil
}
