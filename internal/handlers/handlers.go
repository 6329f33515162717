// Package handlers implements the HTTP request handlers for the movie
// catalog API.
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cinevault/cinevault/internal/config"
	"github.com/cinevault/cinevault/internal/constants"
	apperrors "github.com/cinevault/cinevault/internal/errors"
	"github.com/cinevault/cinevault/internal/models"
	"github.com/cinevault/cinevault/internal/services"
)

// Handler handles HTTP requests for the catalog API.
type Handler struct {
	services *services.Container
	config   *config.Config
}

// New creates a Handler with the provided services and configuration.
func New(services *services.Container, config *config.Config) *Handler {
	return &Handler{
		services: services,
		config:   config,
	}
}

// RegisterRoutes registers all HTTP routes. The authGuard is applied
// to mutating endpoints.
func (h *Handler) RegisterRoutes(r *gin.Engine, authGuard gin.HandlerFunc) {
	r.GET("/", h.handleHome)

	api := r.Group("/api/v1")

	api.GET("/movies", h.handleList)
	api.GET("/movies/search", h.handleSearch)
	api.GET("/movies/export", h.handleExport)
	api.GET("/movies/:id", h.handleGet)
	api.GET("/movies/:id/metadata", h.handleMetadata)
	api.GET("/stats", h.handleStats)
	api.GET("/audit", h.handleAudit)

	mutating := api.Group("")
	if authGuard != nil {
		mutating.Use(authGuard)
	}
	mutating.POST("/movies", h.handleCreate)
	mutating.PUT("/movies/:id", h.handleUpdate)
	mutating.DELETE("/movies/:id", h.handleDelete)
	mutating.POST("/movies/import", h.handleImport)
}

func (h *Handler) handleHome(c *gin.Context) {
	c.String(http.StatusOK, fmt.Sprintf("%s %s - %s",
		constants.AppName, constants.AppVersion, constants.AppDescription))
}

// respondError maps a catalog error to an HTTP status and JSON body.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch apperrors.TypeOf(err) {
	case apperrors.ErrorTypeValidationFailed, apperrors.ErrorTypeImportFailed:
		status = http.StatusBadRequest
	case apperrors.ErrorTypeNotFound:
		status = http.StatusNotFound
	case apperrors.ErrorTypeDuplicateCode:
		status = http.StatusConflict
	case apperrors.ErrorTypeAPIKeyMissing:
		status = http.StatusServiceUnavailable
	case apperrors.ErrorTypeMetadataFailure:
		status = http.StatusBadGateway
	}

	c.JSON(status, models.ErrorResponse{
		Error: err.Error(),
		Type:  apperrors.TypeOf(err),
	})
}
