package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/enqrcode/internal/style"
)

var errTooLarge = errors.New("logo exceeds the upload limit")

// param reads a form field, falling back to the query string.
func param(c *gin.Context, key string) string {
	if v, ok := c.GetPostForm(key); ok {
		return v
	}
	return c.Query(key)
}

// firstParam returns the first non-empty of the given parameters.
func firstParam(c *gin.Context, keys ...string) string {
	for _, k := range keys {
		if v := param(c, k); v != "" {
			return v
		}
	}
	return ""
}

// styleOptions collects style options from the request. Absent parameters
// keep the configured defaults.
func styleOptions(c *gin.Context) ([]style.Option, error) {
	var opts []style.Option

	dark := firstParam(c, "dark", "fg")
	light := firstParam(c, "light", "bg")
	if dark != "" || light != "" {
		// a single color keeps the default for the other
		def := style.Default().Colors
		if dark == "" {
			dark = style.Hex(def.Dark)
		}
		if light == "" {
			light = style.Hex(def.Light)
		}
		opts = append(opts, style.WithColors(dark, light))
	}

	for key, opt := range map[string]func(string) style.Option{
		"format":     style.WithFormat,
		"pattern":    style.WithPattern,
		"eyeFrame":   style.WithEyeFrame,
		"eyeBall":    style.WithEyeBall,
		"frame":      style.WithFrame,
		"frameText":  style.WithFrameText,
		"frameColor": style.WithFrameColor,
		"ecc":        style.WithErrorCorrection,
	} {
		if v := param(c, key); v != "" {
			opts = append(opts, opt(v))
		}
	}

	for key, opt := range map[string]func(int) style.Option{
		"width":  style.WithWidth,
		"margin": style.WithMargin,
	} {
		v := param(c, key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be an integer", style.ErrInvalid, key)
		}
		opts = append(opts, opt(n))
	}
	return opts, nil
}

// uploadedLogo reads the optional multipart "logo" file.
func (h *Handler) uploadedLogo(c *gin.Context) ([]byte, error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		return nil, nil
	}
	fh, err := c.FormFile("logo")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if fh.Size > h.maxUpload {
		return nil, errTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	raw, err := io.ReadAll(io.LimitReader(f, h.maxUpload+1))
	if err != nil {
		return nil, err
	}
	if int64(len(raw)) > h.maxUpload {
		return nil, errTooLarge
	}
	return raw, nil
}

// QRCodeHandler renders the "text" parameter with the requested style.
// Style and text come from the query string or form fields; a logo may be
// uploaded as the multipart file "logo".
func (h *Handler) QRCodeHandler(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload+1<<20)

	text := firstParam(c, "text", "url")
	if text == "" {
		c.Status(http.StatusNoContent)
		return
	}

	opts, err := styleOptions(c)
	if err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}

	raw, err := h.uploadedLogo(c)
	switch {
	case errors.Is(err, errTooLarge):
		h.fail(c, http.StatusRequestEntityTooLarge, err)
		return
	case err != nil:
		h.fail(c, http.StatusBadRequest, fmt.Errorf("read logo: %w", err))
		return
	}
	if raw != nil {
		prepared, perr := h.logos.PrepareOrOriginal(raw)
		if perr != nil {
			h.log.Debugw("logo not normalized", "error", perr)
		}
		opts = append(opts, style.WithLogo(prepared))
	}

	cfg, err := style.New(append(append([]style.Option{}, h.defaults...), opts...)...)
	if err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}

	res, err := h.renderer.Render(text, cfg)
	if err != nil {
		h.fail(c, statusFor(err), err)
		return
	}
	if res == nil {
		c.Status(http.StatusNoContent)
		return
	}

	disposition := "inline"
	if param(c, "download") != "" {
		disposition = "attachment"
	}
	c.Header("Content-Disposition", fmt.Sprintf(`%s; filename="qrcode.%s"`, disposition, res.Extension))
	c.Header("Cache-Control", "public, max-age=3600")
	c.Header("X-QR-Level", string(res.Level))
	if len(res.Warnings) > 0 {
		c.Header("X-QR-Warning", strings.Join(res.Warnings, "; "))
	}
	c.Data(http.StatusOK, res.ContentType, res.Data)
}
