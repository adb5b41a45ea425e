package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobfit-backend/internal/shared/config"
	"jobfit-backend/internal/shared/server/respond"
)

// registerAboutRoutes attaches the /about endpoint so the frontend can show
// which provider and model will score an upload.
func registerAboutRoutes(rg *gin.RouterGroup, cfg config.Config) {
	rg.GET("/about", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{
			"name":     "jobfit",
			"env":      cfg.Env,
			"provider": cfg.LLMProvider,
			"model":    cfg.LLMModel,
		})
	})
}
