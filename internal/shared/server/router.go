// Package server assembles the Gin engine: middleware chain, health and
// metrics endpoints, and the versioned API routes.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobfit-backend/internal/analysis"
	"jobfit-backend/internal/shared/config"
	"jobfit-backend/internal/shared/metrics"
	"jobfit-backend/internal/shared/server/middleware"
	"jobfit-backend/internal/shared/server/respond"
)

// Route group names for rate limiting. Only analysis creation hits a paid
// provider, so only it carries a rule; everything else passes through.
const rateGroupAnalyze = "ANALYZE"

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config, analysisHandler *analysis.Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				rateGroupAnalyze: {
					Rate:  cfg.AnalyzeRatePerMin / 60.0,
					Burst: cfg.AnalyzeBurst,
				},
			},
			GroupFor: func(c *gin.Context) string {
				if c.Request.Method == http.MethodPost && c.FullPath() == "/api/v1/analyses" {
					return rateGroupAnalyze
				}
				return ""
			},
		}),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	registerAboutRoutes(api, cfg)
	analysisHandler.RegisterRoutes(api)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
