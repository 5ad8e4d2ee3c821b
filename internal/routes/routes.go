package routes

import (
	"io"
	"net/http"

	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"loadboard/internal/controllers"
	"loadboard/internal/middleware"
)

// Options tunes the engine built by SetupRouter.
type Options struct {
	// LogWriter receives one line per request. Nil disables request logging.
	LogWriter io.Writer
	// MaxUploadBytes caps multipart bodies on upload endpoints. Zero means no cap.
	MaxUploadBytes int64
}

func SetupRouter(h *controllers.Handler, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	if opts.LogWriter != nil {
		r.Use(ginlog.SetLogger(
			ginlog.WithWriter(opts.LogWriter),
			ginlog.WithUTC(true),
			ginlog.WithSkipPath([]string{"/metrics", "/healthz"}),
			ginlog.WithLogger(func(c *gin.Context, l zerolog.Logger) zerolog.Logger {
				return l.With().Str("request_id", c.GetString(middleware.ContextRequestID)).Logger()
			}),
		))
	}
	if h.Metrics != nil {
		r.Use(h.Metrics.Middleware())
		r.GET("/metrics", gin.WrapH(h.Metrics.Handler()))
	}
	if opts.MaxUploadBytes > 0 {
		r.MaxMultipartMemory = opts.MaxUploadBytes
	}

	r.GET("/healthz", h.Health)
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
	})

	api := r.Group("/api")
	AuthRoutes(api, h, opts)
	OrderRoutes(api, h)
	DriverRoutes(api, h)
	ReceiptRoutes(api, h, opts)
	ChatRoutes(api, h)

	return r
}

// limitBody rejects request bodies larger than n bytes.
func limitBody(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if n > 0 {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		}
		c.Next()
	}
}
