package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cinevault/cinevault/internal/constants"
	apperrors "github.com/cinevault/cinevault/internal/errors"
	"github.com/cinevault/cinevault/internal/models"
)

func (h *Handler) handleList(c *gin.Context) {
	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil {
		skip = 0
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(constants.DefaultPageSize)))
	if err != nil {
		limit = constants.DefaultPageSize
	}

	movies, err := h.services.Catalog.List(c.Request.Context(), limit, skip)
	if err != nil {
		h.services.Logger.Errorf("[Movies] list failed: %v", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MovieListResponse{Movies: movies, Count: len(movies)})
}

func (h *Handler) handleGet(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	movie, err := h.services.Catalog.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, movie)
}

func (h *Handler) handleCreate(c *gin.Context) {
	var movie models.Movie
	if err := c.ShouldBindJSON(&movie); err != nil {
		respondError(c, apperrors.NewValidationError("invalid request body: "+err.Error()))
		return
	}
	movie.ID = 0

	if err := h.services.Catalog.Create(c.Request.Context(), &movie); err != nil {
		respondError(c, err)
		return
	}

	h.services.Logger.Infof("[Movies] created %s (%s)", movie.Code, movie.Title)
	c.JSON(http.StatusCreated, movie)
}

func (h *Handler) handleUpdate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var movie models.Movie
	if err := c.ShouldBindJSON(&movie); err != nil {
		respondError(c, apperrors.NewValidationError("invalid request body: "+err.Error()))
		return
	}
	movie.ID = id

	if err := h.services.Catalog.Update(c.Request.Context(), &movie); err != nil {
		respondError(c, err)
		return
	}

	h.services.Logger.Infof("[Movies] updated %s (%s)", movie.Code, movie.Title)
	c.JSON(http.StatusOK, movie)
}

func (h *Handler) handleDelete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.services.Catalog.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	h.services.Logger.Infof("[Movies] deleted record %d", id)
	c.Status(http.StatusNoContent)
}

func (h *Handler) handleSearch(c *gin.Context) {
	var filter models.SearchFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		respondError(c, apperrors.NewValidationError("invalid search query: "+err.Error()))
		return
	}

	movies, err := h.services.Catalog.Search(c.Request.Context(), filter)
	if err != nil {
		h.services.Logger.Errorf("[Movies] search failed: %v", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MovieListResponse{Movies: movies, Count: len(movies)})
}

func (h *Handler) handleStats(c *gin.Context) {
	stats, err := h.services.Catalog.Statistics(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *Handler) handleAudit(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 {
		limit = 50
	}

	entries, err := h.services.Catalog.RecentChanges(limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries, "count": len(entries)})
}

func (h *Handler) handleMetadata(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	movie, err := h.services.Catalog.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	meta, err := h.services.Metadata.Lookup(c.Request.Context(), movie)
	if err != nil {
		h.services.Logger.Errorf("[Movies] metadata lookup failed for %s: %v", movie.Code, err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, meta)
}

// parseID extracts the numeric :id path parameter, responding with a
// validation error when malformed.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, apperrors.NewValidationError("invalid movie id: "+c.Param("id")))
		return 0, false
	}
	return id, true
}
