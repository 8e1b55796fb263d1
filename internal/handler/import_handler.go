package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"watchlist-api/internal/dto"
	"watchlist-api/internal/metrics"
	"watchlist-api/internal/response"
	"watchlist-api/internal/service"
)

// ImportHandler serves the bulk value import endpoint
type ImportHandler struct {
	importService service.ImportService
	metrics       *metrics.Metrics
}

// NewImportHandler creates a new ImportHandler instance. Metrics may be nil.
func NewImportHandler(importService service.ImportService, m *metrics.Metrics) *ImportHandler {
	return &ImportHandler{importService: importService, metrics: m}
}

// Import godoc
// @Summary      Bulk-import field values into a list
// @Description  Takes tokenized columns aligned to existing videos, infers field types for unknown columns, and writes values row by row. Field and schema definitions survive even when rows fail.
// @Tags         import
// @Accept       json
// @Produce      json
// @Param        listId path string true "List ID (UUID)"
// @Param        request body dto.ImportRequest true "Columns and row-to-video mapping"
// @Success      200 {object} response.SuccessResponse{data=dto.ImportResultResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /lists/{listId}/import [post]
func (h *ImportHandler) Import(c *gin.Context) {
	listID, err := uuid.Parse(c.Param("listId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid list ID")
		return
	}

	var req dto.ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	result, err := h.importService.Import(c.Request.Context(), listID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordImportRows(result.RowsImported, result.RowsFailed)
		h.metrics.AddValuesWritten(result.ValuesWritten)
		for range result.FieldsCreated {
			h.metrics.IncrementFieldCreated("import")
		}
	}

	response.SendSuccess(c, http.StatusOK, result)
}
