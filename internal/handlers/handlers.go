package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cristianadrielbraun/enqrcode/internal/logo"
	"github.com/cristianadrielbraun/enqrcode/internal/matrix"
	"github.com/cristianadrielbraun/enqrcode/internal/render"
	"github.com/cristianadrielbraun/enqrcode/internal/style"
)

// Handler holds the dependencies of the HTTP handlers.
type Handler struct {
	renderer  *render.Renderer
	logos     logo.Preparer
	defaults  []style.Option
	maxUpload int64
	log       *zap.SugaredLogger
}

// Options configures New.
type Options struct {
	Renderer       *render.Renderer
	Logos          logo.Preparer
	Defaults       []style.Option // applied before request parameters
	MaxUploadBytes int64
	Log            *zap.SugaredLogger
}

// New returns a new Handler instance.
func New(o Options) *Handler {
	log := o.Log
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	limit := o.MaxUploadBytes
	if limit <= 0 {
		limit = 10 << 20
	}
	return &Handler{
		renderer:  o.Renderer,
		logos:     o.Logos,
		defaults:  o.Defaults,
		maxUpload: limit,
		log:       log,
	}
}

// Register mounts the API routes on r.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/healthz", h.Healthz)

	api := r.Group("/api")
	{
		api.GET("/qr", h.QRCodeHandler)
		api.POST("/qr", h.QRCodeHandler)
		api.POST("/payload/:kind", h.EncodePayload)
		api.POST("/parse", h.ParsePayload)
		api.POST("/logo", h.PrepareLogo)
	}
}

func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RequestLogger logs one line per request and tags it with an X-Request-ID,
// reusing the caller's when present.
func RequestLogger(log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Header("X-Request-ID", id)
		c.Set("requestID", id)

		start := time.Now()
		c.Next()

		fields := []interface{}{
			"id", id,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "errors", c.Errors.String())
		}
		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			log.Errorw("request", fields...)
		case c.Writer.Status() >= http.StatusBadRequest:
			log.Warnw("request", fields...)
		default:
			log.Infow("request", fields...)
		}
	}
}

// statusFor maps core errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, style.ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, matrix.ErrGeneration):
		return http.StatusUnprocessableEntity
	case errors.Is(err, logo.ErrDecode):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func (h *Handler) fail(c *gin.Context, status int, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
