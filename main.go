package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/pborman/getopt/v2"
	"go.uber.org/zap"

	"github.com/cristianadrielbraun/enqrcode/internal/config"
	"github.com/cristianadrielbraun/enqrcode/internal/handlers"
	"github.com/cristianadrielbraun/enqrcode/internal/logger"
	"github.com/cristianadrielbraun/enqrcode/internal/logo"
	"github.com/cristianadrielbraun/enqrcode/internal/matrix"
	"github.com/cristianadrielbraun/enqrcode/internal/render"
)

// newRouter wires the API with one named child logger per concern.
func newRouter(cfg *config.Config, gen matrix.Generator, log *zap.SugaredLogger) *gin.Engine {
	r := gin.New()
	r.Use(handlers.RequestLogger(log.Named("http")))
	r.Use(gin.Recovery())

	h := handlers.New(handlers.Options{
		Renderer:       render.New(gen, log.Named("render")),
		Logos:          logo.Preparer{MaxEdge: cfg.Logo.MaxEdge},
		Defaults:       cfg.StyleOptions(),
		MaxUploadBytes: cfg.Logo.MaxUploadBytes,
		Log:            log.Named("handlers"),
	})
	h.Register(r)
	return r
}

func main() {
	configPath := getopt.StringLong("config", 'c', "", "path to a YAML config file", "file")
	getopt.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.New(logger.Config{}).Fatalf("Failed to load config: %v", err)
	}
	log := logger.New(logger.Config{Debug: cfg.Log.Debug})
	defer log.Sync()

	gen, err := matrix.NewGenerator(cfg.Matrix.Engine)
	if err != nil {
		log.Fatalf("Failed to select matrix engine: %v", err)
	}

	gin.SetMode(gin.ReleaseMode)
	r := newRouter(cfg, gen, log)

	log.Infof("enqrcode listening on %s (engine %s)", cfg.Server.Addr, cfg.Matrix.Engine)
	if err := r.Run(cfg.Server.Addr); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
