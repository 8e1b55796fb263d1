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

// FieldHandler serves the field definition and field value endpoints
type FieldHandler struct {
	fieldService service.FieldService
	metrics      *metrics.Metrics
}

// NewFieldHandler creates a new FieldHandler instance. Metrics may be nil.
func NewFieldHandler(fieldService service.FieldService, m *metrics.Metrics) *FieldHandler {
	return &FieldHandler{fieldService: fieldService, metrics: m}
}

// CreateField godoc
// @Summary      Define a custom field on a list
// @Description  Creates a typed field (rating, select, boolean or text) scoped to one list
// @Tags         fields
// @Accept       json
// @Produce      json
// @Param        listId path string true "List ID (UUID)"
// @Param        request body dto.CreateFieldRequest true "Field definition"
// @Success      201 {object} response.SuccessResponse{data=dto.FieldResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      409 {object} response.ErrorResponse
// @Router       /lists/{listId}/fields [post]
func (h *FieldHandler) CreateField(c *gin.Context) {
	listID, err := uuid.Parse(c.Param("listId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid list ID")
		return
	}

	var req dto.CreateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	field, err := h.fieldService.CreateField(c.Request.Context(), listID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.IncrementFieldCreated("user")
	}
	response.SendSuccess(c, http.StatusCreated, field)
}

// GetField godoc
// @Summary      Get a field definition
// @Tags         fields
// @Produce      json
// @Param        fieldId path string true "Field ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.FieldResponse}
// @Failure      404 {object} response.ErrorResponse
// @Router       /fields/{fieldId} [get]
func (h *FieldHandler) GetField(c *gin.Context) {
	fieldID, err := uuid.Parse(c.Param("fieldId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid field ID")
		return
	}

	field, err := h.fieldService.GetField(c.Request.Context(), fieldID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, field)
}

// ListFields godoc
// @Summary      List the field definitions of a list
// @Tags         fields
// @Produce      json
// @Param        listId path string true "List ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.FieldResponse}
// @Router       /lists/{listId}/fields [get]
func (h *FieldHandler) ListFields(c *gin.Context) {
	listID, err := uuid.Parse(c.Param("listId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid list ID")
		return
	}

	fields, err := h.fieldService.ListFields(c.Request.Context(), listID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, fields)
}

// UpdateField godoc
// @Summary      Rename a field or adjust its configuration
// @Description  The field type is fixed at creation; only name and config can change
// @Tags         fields
// @Accept       json
// @Produce      json
// @Param        fieldId path string true "Field ID (UUID)"
// @Param        request body dto.UpdateFieldRequest true "Fields to update"
// @Success      200 {object} response.SuccessResponse{data=dto.FieldResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /fields/{fieldId} [patch]
func (h *FieldHandler) UpdateField(c *gin.Context) {
	fieldID, err := uuid.Parse(c.Param("fieldId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid field ID")
		return
	}

	var req dto.UpdateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	field, err := h.fieldService.UpdateField(c.Request.Context(), fieldID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, field)
}

// DeleteField godoc
// @Summary      Delete a field with its values and schema memberships
// @Tags         fields
// @Produce      json
// @Param        fieldId path string true "Field ID (UUID)"
// @Success      200 {object} response.SuccessResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /fields/{fieldId} [delete]
func (h *FieldHandler) DeleteField(c *gin.Context) {
	fieldID, err := uuid.Parse(c.Param("fieldId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid field ID")
		return
	}

	if err := h.fieldService.DeleteField(c.Request.Context(), fieldID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, map[string]string{"message": "Field deleted successfully"})
}

// SetValue godoc
// @Summary      Set a field value on a video
// @Description  Parses the raw text against the field type; a blank value clears the slot
// @Tags         values
// @Accept       json
// @Produce      json
// @Param        videoId path string true "Video ID (UUID)"
// @Param        fieldId path string true "Field ID (UUID)"
// @Param        request body dto.SetValueRequest true "Raw value"
// @Success      200 {object} response.SuccessResponse{data=dto.ValueResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /videos/{videoId}/values/{fieldId} [put]
func (h *FieldHandler) SetValue(c *gin.Context) {
	videoID, err := uuid.Parse(c.Param("videoId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid video ID")
		return
	}
	fieldID, err := uuid.Parse(c.Param("fieldId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid field ID")
		return
	}

	var req dto.SetValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	value, err := h.fieldService.SetValue(c.Request.Context(), videoID, fieldID, req.Value)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, value)
}

// ClearValue godoc
// @Summary      Clear a field value on a video
// @Tags         values
// @Produce      json
// @Param        videoId path string true "Video ID (UUID)"
// @Param        fieldId path string true "Field ID (UUID)"
// @Success      200 {object} response.SuccessResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /videos/{videoId}/values/{fieldId} [delete]
func (h *FieldHandler) ClearValue(c *gin.Context) {
	videoID, err := uuid.Parse(c.Param("videoId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid video ID")
		return
	}
	fieldID, err := uuid.Parse(c.Param("fieldId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid field ID")
		return
	}

	if err := h.fieldService.ClearValue(c.Request.Context(), videoID, fieldID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, map[string]string{"message": "Value cleared successfully"})
}

// ListValues godoc
// @Summary      List the stored field values of a video
// @Tags         values
// @Produce      json
// @Param        videoId path string true "Video ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.ValueResponse}
// @Failure      404 {object} response.ErrorResponse
// @Router       /videos/{videoId}/values [get]
func (h *FieldHandler) ListValues(c *gin.Context) {
	videoID, err := uuid.Parse(c.Param("videoId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid video ID")
		return
	}

	values, err := h.fieldService.ListValues(c.Request.Context(), videoID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, values)
}
