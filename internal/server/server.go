// Package server exposes stream probing over HTTP.
//
// Routes:
//
//	POST /api/v1/probe   body is the audio stream; ?duration=true counts frames
//	GET  /api/v1/health
//
// The request body is parsed as it arrives and never buffered whole.
package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/simonhull/mpegmeta"
)

// Config configures the HTTP service.
type Config struct {
	// AllowOrigins lists the CORS origins allowed to call the API. Empty
	// allows every origin.
	AllowOrigins []string

	// MaxBodyBytes caps the request body. Zero means no limit.
	MaxBodyBytes int64

	// Logger receives request logs and is handed to the frame parser.
	Logger *slog.Logger
}

type handler struct {
	cfg Config
	log *slog.Logger
}

// New returns the gin engine serving the API.
func New(cfg Config) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	h := &handler{cfg: cfg, log: log}

	router := gin.New()
	router.Use(gin.Recovery(), h.logRequests)

	config := cors.DefaultConfig()
	if len(cfg.AllowOrigins) == 0 {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = cfg.AllowOrigins
	}
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Content-Length", "Accept"}
	router.Use(cors.New(config))

	api := router.Group("/api/v1")
	{
		api.GET("/health", h.health)
		api.POST("/probe", h.probe)
	}

	return router
}

func (h *handler) logRequests(c *gin.Context) {
	start := time.Now()
	c.Next()

	h.log.Info("request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"duration", time.Since(start))
}

func (h *handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"version": mpegmeta.Version,
	})
}

func (h *handler) probe(c *gin.Context) {
	body := c.Request.Body
	if h.cfg.MaxBodyBytes > 0 {
		body = http.MaxBytesReader(c.Writer, body, h.cfg.MaxBodyBytes)
	}

	opts := []mpegmeta.Option{
		mpegmeta.WithStreamSize(c.Request.ContentLength),
		mpegmeta.WithLogger(h.log),
	}
	if ok, _ := strconv.ParseBool(c.Query("duration")); ok {
		opts = append(opts, mpegmeta.WithDuration())
	}
	if ok, _ := strconv.ParseBool(c.Query("strict")); ok {
		opts = append(opts, mpegmeta.WithStrictParsing())
	}

	file, err := mpegmeta.Parse(c.Request.Context(), body, opts...)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			h.log.Error("probe failed", "error", err)
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	report := NewReport(file)
	report.Path = ""
	c.JSON(http.StatusOK, report)
}

func statusFor(err error) int {
	var (
		unsupported *mpegmeta.UnsupportedFormatError
		corrupted   *mpegmeta.CorruptedFileError
		tooLarge    *http.MaxBytesError
	)
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &unsupported):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &corrupted):
		return http.StatusUnprocessableEntity
	case errors.Is(err, mpegmeta.ErrReadFailure):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
