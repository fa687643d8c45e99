package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	serviceName    = "bookai"
	serviceVersion = "2.0"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	LLM       string `json:"llm"`
}

// HandleRoot describes the service
func (h *Handler) HandleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "running",
		"service":  serviceName,
		"features": []string{"translation", "summaries", "recommendations"},
		"version":  serviceVersion,
	})
}

// HandleHealth returns the health status of the service.
// A missing LLM credential is not unhealthy; every pipeline degrades.
func (h *Handler) HandleHealth(c *gin.Context) {
	llmStatus := "disabled"
	if h.llmEnabled {
		llmStatus = "configured"
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: h.now().UTC().Format(time.RFC3339),
		LLM:       llmStatus,
	})
}

// HandleReadiness always reports ready; the service has no dependency it
// cannot serve without
func (h *Handler) HandleReadiness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
