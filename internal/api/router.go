package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vlecomte/phototrip-backend-go/internal/config"
	"github.com/vlecomte/phototrip-backend-go/internal/handler"
	"github.com/vlecomte/phototrip-backend-go/internal/middleware"
)

// Handlers groups the handlers wired into the router
type Handlers struct {
	Photos     *handler.PhotoHandler
	Days       *handler.DayHandler
	Enrichment *handler.EnrichmentHandler
	Titles     *handler.TitleHandler
}

// SetupRouter builds the gin engine with middleware and routes
func SetupRouter(cfg *config.Config, logger *zap.Logger, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger(logger))
	r.Use(gin.Recovery())

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Phototrip backend is running",
		})
	})

	auth := middleware.Auth(cfg.JWTSecret)

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(60, time.Minute))
	{
		albums := api.Group("/albums")
		{
			albums.GET("/:id/photos", h.Photos.List)
			albums.GET("/:id/days", h.Days.List)
			albums.POST("/:id/photos", auth, h.Photos.Upload)
			albums.POST("/:id/enrich", auth, h.Enrichment.StartRun)
		}

		enrich := api.Group("/enrich")
		{
			enrich.GET("/tasks", h.Enrichment.ListTasks)
			enrich.GET("/tasks/:id", h.Enrichment.GetTask)
			enrich.DELETE("/tasks/:id", auth, h.Enrichment.CancelTask)
		}

		admin := api.Group("/admin", auth)
		{
			admin.POST("/titles/recompute", h.Titles.Recompute)
		}
	}

	return r
}
