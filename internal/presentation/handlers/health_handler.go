package handlers

import (
	"net/http"

	"github.com/andrewsame/shaishaile/internal/application/service"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	analysisService *service.AnalysisService
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(analysisService *service.AnalysisService) *HealthHandler {
	return &HealthHandler{
		analysisService: analysisService,
	}
}

// Health handles GET /health
// @Summary Health check
// @Description Returns the health status of the service and the analytics API
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	// The catalog is served from memory, so the service itself is healthy
	// as long as it answers. The analytics API is probed separately and
	// reported, not propagated.
	analytics := "healthy"
	if err := h.analysisService.Health(c.Request.Context()); err != nil {
		analytics = "unreachable"
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Message:   "Service is running",
		Analytics: analytics,
	})
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Analytics string `json:"analytics,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}
