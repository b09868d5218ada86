package http

import (
	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/hildon-home/internal/api/middleware"
	"github.com/GriffinCanCode/hildon-home/internal/infrastructure/monitoring"
)

// RouterConfig configures the status router
type RouterConfig struct {
	CORS      middleware.CORSConfig
	RateLimit middleware.RateLimitConfig
	Metrics   *monitoring.Metrics
}

// NewRouter wires the status routes
func NewRouter(h *Handlers, cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.CORS))

	router.GET("/health", h.Health)
	if cfg.Metrics != nil {
		router.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	// resolving decodes every background, so these are throttled
	limited := router.Group("/views", middleware.RateLimit(cfg.RateLimit))
	limited.GET("", h.ListViews)
	limited.PUT("/active", h.SetActive)

	return router
}
