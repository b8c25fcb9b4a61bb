package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ninocam2680/slidegen-backend/internal/infra/logger"
)

type RouterOptions struct {
	AllowedOrigin string
	// FilesDir, when set, is served under FilesURL for persisted decks.
	FilesDir string
	FilesURL string
}

func NewRouter(h *Handler, log *logger.Logger, opts RouterOptions) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(log))
	if opts.AllowedOrigin != "" {
		r.Use(cors(opts.AllowedOrigin))
	}

	r.GET("/health", h.Health)
	r.POST("/generate", h.GenerateDeck)

	if opts.FilesDir != "" && opts.FilesURL != "" {
		r.Static(opts.FilesURL, opts.FilesDir)
	}

	return r
}

func requestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		log.Info("request started",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)
		c.Next()
		log.Info("request completed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
		)
	}
}

func cors(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		c.Header("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
