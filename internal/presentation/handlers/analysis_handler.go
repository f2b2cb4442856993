package handlers

import (
	"errors"
	"net/http"

	"github.com/andrewsame/shaishaile/internal/application/dto"
	"github.com/andrewsame/shaishaile/internal/application/service"
	"github.com/andrewsame/shaishaile/internal/domain/analysis"
	"github.com/andrewsame/shaishaile/internal/domain/catalog"

	"github.com/gin-gonic/gin"
)

// AnalysisHandler handles analysis-related HTTP requests
type AnalysisHandler struct {
	analysisService *service.AnalysisService
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(analysisService *service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysisService,
	}
}

// Analyze handles POST /analysis/start
// @Summary Start an analysis of one repository
// @Description Forwards a single-repository analysis request to the analytics API
// @Tags Analysis
// @Accept json
// @Produce json
// @Param request body dto.AnalyzeRequest true "Repository to analyze"
// @Success 200 {object} dto.AnalysisResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /analysis/start [post]
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	var req dto.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	response, err := h.analysisService.Analyze(c.Request.Context(), &req)
	if err != nil {
		h.writeAnalysisError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// BatchAnalyze handles POST /analysis/batch
// @Summary Analyze several repositories
// @Description Forwards a batch analysis request to the analytics API
// @Tags Analysis
// @Accept json
// @Produce json
// @Param request body dto.BatchAnalyzeRequest true "Repositories to analyze"
// @Success 200 {object} dto.AnalysisResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /analysis/batch [post]
func (h *AnalysisHandler) BatchAnalyze(c *gin.Context) {
	var req dto.BatchAnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	response, err := h.analysisService.BatchAnalyze(c.Request.Context(), &req)
	if err != nil {
		h.writeAnalysisError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Screen handles POST /analysis/screening
// @Summary Screen repositories against criteria
// @Description Filters candidate repositories through the analytics API
// @Tags Analysis
// @Accept json
// @Produce json
// @Param request body dto.ScreeningRequest true "Repositories and criteria"
// @Success 200 {object} dto.AnalysisResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /analysis/screening [post]
func (h *AnalysisHandler) Screen(c *gin.Context) {
	var req dto.ScreeningRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	response, err := h.analysisService.Screen(c.Request.Context(), &req)
	if err != nil {
		h.writeAnalysisError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Health handles GET /analysis/health
// @Summary Probe the analytics API
// @Description Checks whether the external analytics API answers its health endpoint
// @Tags Analysis
// @Accept json
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 502 {object} ErrorResponse
// @Router /analysis/health [get]
func (h *AnalysisHandler) Health(c *gin.Context) {
	if err := h.analysisService.Health(c.Request.Context()); err != nil {
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Error:   "analytics_unavailable",
			Message: "The analytics API did not answer",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:  "healthy",
		Message: "Analytics API is answering",
	})
}

// writeAnalysisError maps service failures onto HTTP statuses
func (h *AnalysisHandler) writeAnalysisError(c *gin.Context, err error) {
	if errors.Is(err, analysis.ErrNoRepos) || errors.Is(err, analysis.ErrTooManyRepos) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}

	var domainErr *catalog.DomainError
	if errors.As(err, &domainErr) && domainErr.Code == "INVALID_REPO_NAME" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_repo_name",
			Message: domainErr.Message,
		})
		return
	}

	c.JSON(http.StatusBadGateway, ErrorResponse{
		Error:   "analytics_unavailable",
		Message: "The analytics API did not answer",
		Details: err.Error(),
	})
}
