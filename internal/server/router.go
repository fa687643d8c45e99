// Package server assembles the gin engine.
package server

import (
	"net/http"
	"time"

	"bookai/backend/internal/config"
	"bookai/backend/internal/handler"
	"bookai/backend/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const devOrigin = "http://localhost:5173"

// NewRouter registers every route of the service on a new engine
func NewRouter(cfg config.Config, h *handler.Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// Security headers (before CORS)
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.RequestTrace())
	r.Use(cors.New(corsConfig(cfg)))

	r.GET("/", h.HandleRoot)
	r.GET("/health", h.HandleHealth)
	r.GET("/ready", h.HandleReadiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/bookSummary", h.HandleBookSummary)
	r.POST("/translateText", h.HandleTranslateText)

	api := r.Group("/api/v1/recommendations")
	{
		api.GET("/trending", h.HandleTrending)
		api.POST("/users/:userId", h.HandleUserRecommendations)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found", "code": "NOT_FOUND"})
	})
	return r
}

// corsConfig allows the configured origins, plus the local front end
// outside production. With no origin configured every origin is allowed.
func corsConfig(cfg config.Config) cors.Config {
	origins := append([]string{}, cfg.AllowedOrigins...)
	if !cfg.IsProduction() {
		origins = append(origins, devOrigin)
	}

	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Accept-Language", "X-Request-Id"},
		ExposeHeaders:    []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c
}
