package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"watchlist-api/internal/response"
	"watchlist-api/internal/service"
)

// AnalyticsHandler serves the per-list usage report endpoints
type AnalyticsHandler struct {
	analyticsService service.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler instance
func NewAnalyticsHandler(analyticsService service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// MostUsedFields godoc
// @Summary      Report the most used fields of a list
// @Description  Top fields by stored value count, with the share of videos carrying a value
// @Tags         analytics
// @Produce      json
// @Param        listId path string true "List ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.FieldUsageEntry}
// @Failure      404 {object} response.ErrorResponse
// @Router       /lists/{listId}/analytics/most-used-fields [get]
func (h *AnalyticsHandler) MostUsedFields(c *gin.Context) {
	listID, err := uuid.Parse(c.Param("listId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid list ID")
		return
	}

	report, err := h.analyticsService.MostUsedFields(c.Request.Context(), listID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, report)
}

// UnusedSchemas godoc
// @Summary      Report the unused schemas of a list
// @Description  Schemas with no tag bindings, or bound but with no values stored through them
// @Tags         analytics
// @Produce      json
// @Param        listId path string true "List ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.UnusedSchemaEntry}
// @Failure      404 {object} response.ErrorResponse
// @Router       /lists/{listId}/analytics/unused-schemas [get]
func (h *AnalyticsHandler) UnusedSchemas(c *gin.Context) {
	listID, err := uuid.Parse(c.Param("listId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid list ID")
		return
	}

	report, err := h.analyticsService.UnusedSchemas(c.Request.Context(), listID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, report)
}

// FieldCoverage godoc
// @Summary      Report field coverage for a list
// @Description  For every field, the share of the list's videos carrying a value
// @Tags         analytics
// @Produce      json
// @Param        listId path string true "List ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.FieldCoverageEntry}
// @Failure      404 {object} response.ErrorResponse
// @Router       /lists/{listId}/analytics/field-coverage [get]
func (h *AnalyticsHandler) FieldCoverage(c *gin.Context) {
	listID, err := uuid.Parse(c.Param("listId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid list ID")
		return
	}

	report, err := h.analyticsService.FieldCoverage(c.Request.Context(), listID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, report)
}

// SchemaEffectiveness godoc
// @Summary      Report schema effectiveness for a list
// @Description  How completely the videos reached by each schema actually fill its fields
// @Tags         analytics
// @Produce      json
// @Param        listId path string true "List ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.SchemaEffectivenessEntry}
// @Failure      404 {object} response.ErrorResponse
// @Router       /lists/{listId}/analytics/schema-effectiveness [get]
func (h *AnalyticsHandler) SchemaEffectiveness(c *gin.Context) {
	listID, err := uuid.Parse(c.Param("listId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid list ID")
		return
	}

	report, err := h.analyticsService.SchemaEffectiveness(c.Request.Context(), listID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, report)
}
