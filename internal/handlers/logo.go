package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// PrepareLogo normalizes an uploaded logo to a bounded PNG. Files that cannot
// be decoded are echoed back unchanged with an X-QR-Warning header.
func (h *Handler) PrepareLogo(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload+1<<20)

	raw, err := h.uploadedLogo(c)
	switch {
	case errors.Is(err, errTooLarge):
		h.fail(c, http.StatusRequestEntityTooLarge, err)
		return
	case err != nil:
		h.fail(c, http.StatusBadRequest, err)
		return
	case raw == nil:
		h.fail(c, http.StatusBadRequest, errors.New("multipart file \"logo\" is required"))
		return
	}

	out, err := h.logos.PrepareOrOriginal(raw)
	if err != nil {
		h.log.Warnw("logo kept as uploaded", "error", err)
		c.Header("X-QR-Warning", err.Error())
		c.Data(http.StatusOK, http.DetectContentType(out), out)
		return
	}
	c.Data(http.StatusOK, "image/png", out)
}
