package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewEngine builds the gin engine with all routes registered.
func NewEngine(h *Handler, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(log))

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })

	api := r.Group("/api")
	{
		api.GET("/time/parse", h.ParseTime)
		api.POST("/time/format", h.FormatTime)
		api.GET("/range/parse", h.ParseRange)
		api.POST("/range/validate", h.ValidateRange)

		api.GET("/hours/:chatID", h.GetHours)
		api.PUT("/hours/:chatID", h.PutHours)
		api.DELETE("/hours/:chatID", h.DeleteHours)
	}
	return r
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
