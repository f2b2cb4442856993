package handlers

import (
	"net/http"

	"github.com/andrewsame/shaishaile/internal/application/dto"
	"github.com/andrewsame/shaishaile/internal/application/service"

	"github.com/gin-gonic/gin"
)

// ExportHandler handles dashboard bundle export requests
type ExportHandler struct {
	exportService *service.ExportService
}

// NewExportHandler creates a new export handler
func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
	}
}

// GetDataEaseConfig handles GET /export/dataease
// @Summary Get the DataEase dashboard configuration
// @Description Returns the dashboard configuration document without writing any files
// @Tags Export
// @Accept json
// @Produce json
// @Success 200 {object} dataease.Config
// @Router /export/dataease [get]
func (h *ExportHandler) GetDataEaseConfig(c *gin.Context) {
	c.JSON(http.StatusOK, h.exportService.ConfigDocument())
}

// Export handles POST /export
// @Summary Export the DataEase dashboard bundle
// @Description Writes the dashboard configuration, sample data and import guide
// @Tags Export
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ExportRequest false "Export options"
// @Success 200 {object} dto.ExportResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /export [post]
func (h *ExportHandler) Export(c *gin.Context) {
	var req dto.ExportRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "invalid_request",
				Message: "Invalid request body",
				Details: err.Error(),
			})
			return
		}
	}

	response, err := h.exportService.ExportBundle(c.Request.Context(), req.Upload)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "export_failed",
			Message: "Failed to export the dashboard bundle",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response)
}
