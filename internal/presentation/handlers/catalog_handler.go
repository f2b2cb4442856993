package handlers

import (
	"errors"
	"net/http"

	"github.com/andrewsame/shaishaile/internal/application/dto"
	"github.com/andrewsame/shaishaile/internal/application/service"
	"github.com/andrewsame/shaishaile/internal/domain/catalog"

	"github.com/gin-gonic/gin"
)

// CatalogHandler handles catalog-related HTTP requests
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// GetCatalog handles GET /catalog
// @Summary Get the full catalog document
// @Description Returns the whole published catalog in its wire format
// @Tags Catalog
// @Accept json
// @Produce json
// @Success 200 {object} dto.CatalogDocumentResponse
// @Router /catalog [get]
func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalogService.Document())
}

// GetVersion handles GET /catalog/version
// @Summary Get the published catalog version
// @Description Returns version, source and load time of the current snapshot
// @Tags Catalog
// @Accept json
// @Produce json
// @Success 200 {object} dto.VersionResponse
// @Router /catalog/version [get]
func (h *CatalogHandler) GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalogService.Version())
}

// RefreshCatalog handles POST /catalog/refresh
// @Summary Refresh the catalog
// @Description Loads a fresh catalog from the named source and publishes it
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RefreshRequest false "Source selection"
// @Success 200 {object} dto.RefreshResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /catalog/refresh [post]
func (h *CatalogHandler) RefreshCatalog(c *gin.Context) {
	var req dto.RefreshRequest
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

	response, err := h.catalogService.Refresh(c.Request.Context(), req.Source)
	if err != nil {
		var domainErr *catalog.DomainError
		if errors.As(err, &domainErr) && domainErr.Code == "UNKNOWN_SOURCE" {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "unknown_source",
				Message: domainErr.Message,
			})
			return
		}
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Error:   "refresh_failed",
			Message: "Failed to refresh catalog, the previous version stays published",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetOwners handles GET /catalog/owners
// @Summary List catalog owners
// @Description Returns the owners in their curated order
// @Tags Catalog
// @Accept json
// @Produce json
// @Success 200 {object} dto.OwnersResponse
// @Router /catalog/owners [get]
func (h *CatalogHandler) GetOwners(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalogService.Owners())
}

// GetOwnerRepos handles GET /catalog/owners/:owner/repos
// @Summary List repositories of an owner
// @Description Returns the repositories the catalog holds for one owner
// @Tags Catalog
// @Accept json
// @Produce json
// @Param owner path string true "Owner name"
// @Success 200 {object} dto.OwnerReposResponse
// @Failure 404 {object} ErrorResponse
// @Router /catalog/owners/{owner}/repos [get]
func (h *CatalogHandler) GetOwnerRepos(c *gin.Context) {
	response, err := h.catalogService.ReposFor(c.Param("owner"))
	if err != nil {
		h.notFoundOrInternal(c, err, "Owner not found in catalog")
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetPopular handles GET /catalog/popular
// @Summary List the curated popular repositories
// @Description Returns the shortlist, optionally filtered by language and category
// @Tags Catalog
// @Accept json
// @Produce json
// @Param language query string false "Language filter"
// @Param category query string false "Category filter"
// @Param enrich query bool false "Decorate entries with live GitHub metadata"
// @Success 200 {object} dto.PopularListResponse
// @Router /catalog/popular [get]
func (h *CatalogHandler) GetPopular(c *gin.Context) {
	enrich := c.DefaultQuery("enrich", "false") == "true"

	response := h.catalogService.Popular(
		c.Request.Context(),
		c.Query("language"),
		c.Query("category"),
		enrich,
	)

	c.JSON(http.StatusOK, response)
}

// GetLanguages handles GET /catalog/languages
// @Summary List catalog languages
// @Description Returns the language filter values in sorted order
// @Tags Catalog
// @Accept json
// @Produce json
// @Success 200 {object} dto.LanguagesResponse
// @Router /catalog/languages [get]
func (h *CatalogHandler) GetLanguages(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalogService.Languages())
}

// GetLanguageRepos handles GET /catalog/languages/:name/repos
// @Summary List repositories of a language
// @Description Returns the "owner/repo" entries indexed under one language
// @Tags Catalog
// @Accept json
// @Produce json
// @Param name path string true "Language name"
// @Success 200 {object} dto.IndexedReposResponse
// @Failure 404 {object} ErrorResponse
// @Router /catalog/languages/{name}/repos [get]
func (h *CatalogHandler) GetLanguageRepos(c *gin.Context) {
	response, err := h.catalogService.ReposForLanguage(c.Param("name"))
	if err != nil {
		h.notFoundOrInternal(c, err, "Language not found in catalog")
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetCategories handles GET /catalog/categories
// @Summary List catalog categories
// @Description Returns the category filter values in sorted order
// @Tags Catalog
// @Accept json
// @Produce json
// @Success 200 {object} dto.CategoriesResponse
// @Router /catalog/categories [get]
func (h *CatalogHandler) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalogService.Categories())
}

// GetCategoryRepos handles GET /catalog/categories/:name/repos
// @Summary List repositories of a category
// @Description Returns the "owner/repo" entries indexed under one category
// @Tags Catalog
// @Accept json
// @Produce json
// @Param name path string true "Category name"
// @Success 200 {object} dto.IndexedReposResponse
// @Failure 404 {object} ErrorResponse
// @Router /catalog/categories/{name}/repos [get]
func (h *CatalogHandler) GetCategoryRepos(c *gin.Context) {
	response, err := h.catalogService.ReposForCategory(c.Param("name"))
	if err != nil {
		h.notFoundOrInternal(c, err, "Category not found in catalog")
		return
	}

	c.JSON(http.StatusOK, response)
}

// notFoundOrInternal maps lookup failures onto HTTP statuses
func (h *CatalogHandler) notFoundOrInternal(c *gin.Context, err error, message string) {
	var domainErr *catalog.DomainError
	if errors.As(err, &domainErr) {
		switch domainErr.Code {
		case "OWNER_NOT_FOUND", "LANGUAGE_NOT_FOUND", "CATEGORY_NOT_FOUND":
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: message,
			})
			return
		}
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "Failed to read catalog",
		Details: err.Error(),
	})
}
