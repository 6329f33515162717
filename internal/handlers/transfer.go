package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/cinevault/cinevault/internal/errors"
)

// handleImport accepts a CSV document in the request body (or as a
// multipart "file" field) and bulk-inserts its rows.
func (h *Handler) handleImport(c *gin.Context) {
	reader := c.Request.Body

	if file, _, err := c.Request.FormFile("file"); err == nil {
		defer file.Close()
		reader = file
	}

	report, err := h.services.Transfer.Import(c.Request.Context(), reader)
	if err != nil {
		respondError(c, err)
		return
	}

	h.services.Logger.Infof("[Transfer] imported %d movies (%d skipped)", report.Imported, report.Skipped)
	c.JSON(http.StatusOK, report)
}

// handleExport streams the catalog as a CSV download.
func (h *Handler) handleExport(c *gin.Context) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="movies.csv"`)

	if err := h.services.Transfer.Export(c.Request.Context(), c.Writer); err != nil {
		h.services.Logger.Errorf("[Transfer] export failed: %v", err)
		respondError(c, apperrors.NewStorageError("failed to export catalog", err))
		return
	}
}
