package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/enqrcode/internal/payload"
)

// EncodePayload builds the payload text for the record kind in the path
// from a JSON body of record fields.
func (h *Handler) EncodePayload(c *gin.Context) {
	kind := payload.Kind(c.Param("kind"))
	rec, ok := payload.NewRecord(kind)
	if !ok {
		h.fail(c, http.StatusNotFound, fmt.Errorf("unknown payload kind %q", kind))
		return
	}
	if err := c.ShouldBindJSON(rec); err != nil {
		h.fail(c, http.StatusBadRequest, fmt.Errorf("decode %s record: %w", kind, err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"kind": rec.Kind(), "payload": rec.Payload()})
}

type parseRequest struct {
	Text string `json:"text" binding:"required"`
	URL  string `json:"url"`
}

// ParsePayload detects the kind of a scanned or shared text and extracts
// its record.
func (h *Handler) ParsePayload(c *gin.Context) {
	var req parseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}
	kind, rec := payload.Parse(req.Text, req.URL)
	c.JSON(http.StatusOK, gin.H{"kind": kind, "record": rec})
}
