package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"watchlist-api/internal/dto"
	"watchlist-api/internal/response"
	"watchlist-api/internal/service"
)

// SchemaHandler serves the schema and tag binding endpoints
type SchemaHandler struct {
	schemaService service.SchemaService
}

// NewSchemaHandler creates a new SchemaHandler instance
func NewSchemaHandler(schemaService service.SchemaService) *SchemaHandler {
	return &SchemaHandler{schemaService: schemaService}
}

// CreateSchema godoc
// @Summary      Create a schema in a list
// @Description  A schema is a named, ordered group of that list's fields
// @Tags         schemas
// @Accept       json
// @Produce      json
// @Param        listId path string true "List ID (UUID)"
// @Param        request body dto.CreateSchemaRequest true "Schema to create"
// @Success      201 {object} response.SuccessResponse{data=dto.SchemaResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /lists/{listId}/schemas [post]
func (h *SchemaHandler) CreateSchema(c *gin.Context) {
	listID, err := uuid.Parse(c.Param("listId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid list ID")
		return
	}

	var req dto.CreateSchemaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	schema, err := h.schemaService.CreateSchema(c.Request.Context(), listID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, schema)
}

// GetSchema godoc
// @Summary      Get a schema with its member fields
// @Tags         schemas
// @Produce      json
// @Param        schemaId path string true "Schema ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.SchemaResponse}
// @Failure      404 {object} response.ErrorResponse
// @Router       /schemas/{schemaId} [get]
func (h *SchemaHandler) GetSchema(c *gin.Context) {
	schemaID, err := uuid.Parse(c.Param("schemaId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid schema ID")
		return
	}

	schema, err := h.schemaService.GetSchema(c.Request.Context(), schemaID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, schema)
}

// ListSchemas godoc
// @Summary      List the schemas of a list
// @Tags         schemas
// @Produce      json
// @Param        listId path string true "List ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.SchemaResponse}
// @Router       /lists/{listId}/schemas [get]
func (h *SchemaHandler) ListSchemas(c *gin.Context) {
	listID, err := uuid.Parse(c.Param("listId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid list ID")
		return
	}

	schemas, err := h.schemaService.ListSchemas(c.Request.Context(), listID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, schemas)
}

// UpdateSchema godoc
// @Summary      Rename a schema
// @Tags         schemas
// @Accept       json
// @Produce      json
// @Param        schemaId path string true "Schema ID (UUID)"
// @Param        request body dto.UpdateSchemaRequest true "Fields to update"
// @Success      200 {object} response.SuccessResponse{data=dto.SchemaResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /schemas/{schemaId} [patch]
func (h *SchemaHandler) UpdateSchema(c *gin.Context) {
	schemaID, err := uuid.Parse(c.Param("schemaId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid schema ID")
		return
	}

	var req dto.UpdateSchemaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	schema, err := h.schemaService.UpdateSchema(c.Request.Context(), schemaID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, schema)
}

// DeleteSchema godoc
// @Summary      Delete a schema
// @Description  Fails with a conflict while any tag is still bound to the schema
// @Tags         schemas
// @Produce      json
// @Param        schemaId path string true "Schema ID (UUID)"
// @Success      200 {object} response.SuccessResponse
// @Failure      404 {object} response.ErrorResponse
// @Failure      409 {object} response.ErrorResponse
// @Router       /schemas/{schemaId} [delete]
func (h *SchemaHandler) DeleteSchema(c *gin.Context) {
	schemaID, err := uuid.Parse(c.Param("schemaId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid schema ID")
		return
	}

	if err := h.schemaService.DeleteSchema(c.Request.Context(), schemaID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, map[string]string{"message": "Schema deleted successfully"})
}

// AddField godoc
// @Summary      Add a field to a schema
// @Tags         schemas
// @Accept       json
// @Produce      json
// @Param        schemaId path string true "Schema ID (UUID)"
// @Param        request body dto.SchemaFieldInput true "Field membership"
// @Success      200 {object} response.SuccessResponse{data=dto.SchemaResponse}
// @Failure      404 {object} response.ErrorResponse
// @Failure      409 {object} response.ErrorResponse
// @Router       /schemas/{schemaId}/fields [post]
func (h *SchemaHandler) AddField(c *gin.Context) {
	schemaID, err := uuid.Parse(c.Param("schemaId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid schema ID")
		return
	}

	var req dto.SchemaFieldInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	schema, err := h.schemaService.AddField(c.Request.Context(), schemaID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, schema)
}

// RemoveField godoc
// @Summary      Remove a field from a schema
// @Description  The field itself and its stored values survive
// @Tags         schemas
// @Produce      json
// @Param        schemaId path string true "Schema ID (UUID)"
// @Param        fieldId path string true "Field ID (UUID)"
// @Success      200 {object} response.SuccessResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /schemas/{schemaId}/fields/{fieldId} [delete]
func (h *SchemaHandler) RemoveField(c *gin.Context) {
	schemaID, err := uuid.Parse(c.Param("schemaId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid schema ID")
		return
	}
	fieldID, err := uuid.Parse(c.Param("fieldId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid field ID")
		return
	}

	if err := h.schemaService.RemoveField(c.Request.Context(), schemaID, fieldID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, map[string]string{"message": "Field removed from schema"})
}

// BindTag godoc
// @Summary      Bind a tag to a schema
// @Description  Videos carrying the tag gain the schema's fields as effective fields
// @Tags         schemas
// @Accept       json
// @Produce      json
// @Param        tagId path string true "Tag ID (UUID)"
// @Param        request body dto.BindTagRequest true "Schema to bind"
// @Success      200 {object} response.SuccessResponse
// @Failure      404 {object} response.ErrorResponse
// @Failure      409 {object} response.ErrorResponse
// @Router       /tags/{tagId}/schema [put]
func (h *SchemaHandler) BindTag(c *gin.Context) {
	tagID, err := uuid.Parse(c.Param("tagId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid tag ID")
		return
	}

	var req dto.BindTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	if err := h.schemaService.BindTag(c.Request.Context(), tagID, req.SchemaID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, map[string]string{"message": "Tag bound to schema"})
}

// UnbindTag godoc
// @Summary      Unbind a tag from its schema
// @Description  A no-op when the tag has no schema bound
// @Tags         schemas
// @Produce      json
// @Param        tagId path string true "Tag ID (UUID)"
// @Success      200 {object} response.SuccessResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /tags/{tagId}/schema [delete]
func (h *SchemaHandler) UnbindTag(c *gin.Context) {
	tagID, err := uuid.Parse(c.Param("tagId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid tag ID")
		return
	}

	if err := h.schemaService.UnbindTag(c.Request.Context(), tagID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, map[string]string{"message": "Tag unbound from schema"})
}

// EffectiveFields godoc
// @Summary      List the effective fields of a video
// @Description  Union of the fields of every schema bound to the video's tags, deduplicated and ordered by display order
// @Tags         schemas
// @Produce      json
// @Param        videoId path string true "Video ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.FieldResponse}
// @Failure      404 {object} response.ErrorResponse
// @Router       /videos/{videoId}/effective-fields [get]
func (h *SchemaHandler) EffectiveFields(c *gin.Context) {
	videoID, err := uuid.Parse(c.Param("videoId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid video ID")
		return
	}

	fields, err := h.schemaService.EffectiveFields(c.Request.Context(), videoID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, fields)
}
