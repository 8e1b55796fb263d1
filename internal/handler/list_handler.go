package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"watchlist-api/internal/dto"
	"watchlist-api/internal/response"
	"watchlist-api/internal/service"
)

// ListHandler serves the list, video and tag endpoints
type ListHandler struct {
	listService service.ListService
}

// NewListHandler creates a new ListHandler instance
func NewListHandler(listService service.ListService) *ListHandler {
	return &ListHandler{listService: listService}
}

// CreateList godoc
// @Summary      Create a bookmark list
// @Tags         lists
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateListRequest true "List to create"
// @Success      201 {object} response.SuccessResponse{data=dto.ListResponse}
// @Failure      400 {object} response.ErrorResponse
// @Router       /lists [post]
func (h *ListHandler) CreateList(c *gin.Context) {
	var req dto.CreateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	list, err := h.listService.CreateList(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, list)
}

// GetList godoc
// @Summary      Get a bookmark list
// @Tags         lists
// @Produce      json
// @Param        listId path string true "List ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.ListResponse}
// @Failure      404 {object} response.ErrorResponse
// @Router       /lists/{listId} [get]
func (h *ListHandler) GetList(c *gin.Context) {
	listID, err := uuid.Parse(c.Param("listId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid list ID")
		return
	}

	list, err := h.listService.GetList(c.Request.Context(), listID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, list)
}

// ListsByOwner godoc
// @Summary      List the bookmark lists of an owner
// @Tags         lists
// @Produce      json
// @Param        ownerId query string true "Owner ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.ListResponse}
// @Failure      400 {object} response.ErrorResponse
// @Router       /lists [get]
func (h *ListHandler) ListsByOwner(c *gin.Context) {
	ownerID, err := uuid.Parse(c.Query("ownerId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "ownerId query parameter is required")
		return
	}

	lists, err := h.listService.ListsByOwner(c.Request.Context(), ownerID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, lists)
}

// DeleteList godoc
// @Summary      Delete a bookmark list and everything in it
// @Tags         lists
// @Produce      json
// @Param        listId path string true "List ID (UUID)"
// @Success      200 {object} response.SuccessResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /lists/{listId} [delete]
func (h *ListHandler) DeleteList(c *gin.Context) {
	listID, err := uuid.Parse(c.Param("listId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid list ID")
		return
	}

	if err := h.listService.DeleteList(c.Request.Context(), listID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, map[string]string{"message": "List deleted successfully"})
}

// AddVideo godoc
// @Summary      Bookmark a video in a list
// @Tags         videos
// @Accept       json
// @Produce      json
// @Param        listId path string true "List ID (UUID)"
// @Param        request body dto.CreateVideoRequest true "Video to bookmark"
// @Success      201 {object} response.SuccessResponse{data=dto.VideoResponse}
// @Failure      404 {object} response.ErrorResponse
// @Router       /lists/{listId}/videos [post]
func (h *ListHandler) AddVideo(c *gin.Context) {
	listID, err := uuid.Parse(c.Param("listId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid list ID")
		return
	}

	var req dto.CreateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	video, err := h.listService.AddVideo(c.Request.Context(), listID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, video)
}

// ListVideos godoc
// @Summary      List the videos of a list
// @Tags         videos
// @Produce      json
// @Param        listId path string true "List ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.VideoResponse}
// @Router       /lists/{listId}/videos [get]
func (h *ListHandler) ListVideos(c *gin.Context) {
	listID, err := uuid.Parse(c.Param("listId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid list ID")
		return
	}

	videos, err := h.listService.ListVideos(c.Request.Context(), listID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, videos)
}

// GetVideo godoc
// @Summary      Get a bookmarked video
// @Tags         videos
// @Produce      json
// @Param        videoId path string true "Video ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.VideoResponse}
// @Failure      404 {object} response.ErrorResponse
// @Router       /videos/{videoId} [get]
func (h *ListHandler) GetVideo(c *gin.Context) {
	videoID, err := uuid.Parse(c.Param("videoId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid video ID")
		return
	}

	video, err := h.listService.GetVideo(c.Request.Context(), videoID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, video)
}

// DeleteVideo godoc
// @Summary      Delete a bookmarked video with its values and tag links
// @Tags         videos
// @Produce      json
// @Param        videoId path string true "Video ID (UUID)"
// @Success      200 {object} response.SuccessResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /videos/{videoId} [delete]
func (h *ListHandler) DeleteVideo(c *gin.Context) {
	videoID, err := uuid.Parse(c.Param("videoId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid video ID")
		return
	}

	if err := h.listService.DeleteVideo(c.Request.Context(), videoID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, map[string]string{"message": "Video deleted successfully"})
}

// CreateTag godoc
// @Summary      Create a tag in a list
// @Tags         tags
// @Accept       json
// @Produce      json
// @Param        listId path string true "List ID (UUID)"
// @Param        request body dto.CreateTagRequest true "Tag to create"
// @Success      201 {object} response.SuccessResponse{data=dto.TagResponse}
// @Failure      404 {object} response.ErrorResponse
// @Router       /lists/{listId}/tags [post]
func (h *ListHandler) CreateTag(c *gin.Context) {
	listID, err := uuid.Parse(c.Param("listId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid list ID")
		return
	}

	var req dto.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	tag, err := h.listService.CreateTag(c.Request.Context(), listID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, tag)
}

// ListTags godoc
// @Summary      List the tags of a list
// @Tags         tags
// @Produce      json
// @Param        listId path string true "List ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.TagResponse}
// @Router       /lists/{listId}/tags [get]
func (h *ListHandler) ListTags(c *gin.Context) {
	listID, err := uuid.Parse(c.Param("listId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid list ID")
		return
	}

	tags, err := h.listService.ListTags(c.Request.Context(), listID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, tags)
}

// DeleteTag godoc
// @Summary      Delete a tag; stored field values stay
// @Tags         tags
// @Produce      json
// @Param        tagId path string true "Tag ID (UUID)"
// @Success      200 {object} response.SuccessResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /tags/{tagId} [delete]
func (h *ListHandler) DeleteTag(c *gin.Context) {
	tagID, err := uuid.Parse(c.Param("tagId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid tag ID")
		return
	}

	if err := h.listService.DeleteTag(c.Request.Context(), tagID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, map[string]string{"message": "Tag deleted successfully"})
}

// TagVideo godoc
// @Summary      Apply a tag to a video
// @Tags         tags
// @Produce      json
// @Param        videoId path string true "Video ID (UUID)"
// @Param        tagId path string true "Tag ID (UUID)"
// @Success      200 {object} response.SuccessResponse
// @Failure      404 {object} response.ErrorResponse
// @Failure      409 {object} response.ErrorResponse
// @Router       /videos/{videoId}/tags/{tagId} [put]
func (h *ListHandler) TagVideo(c *gin.Context) {
	videoID, err := uuid.Parse(c.Param("videoId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid video ID")
		return
	}
	tagID, err := uuid.Parse(c.Param("tagId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid tag ID")
		return
	}

	if err := h.listService.TagVideo(c.Request.Context(), videoID, tagID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, map[string]string{"message": "Video tagged successfully"})
}

// UntagVideo godoc
// @Summary      Remove a tag from a video
// @Tags         tags
// @Produce      json
// @Param        videoId path string true "Video ID (UUID)"
// @Param        tagId path string true "Tag ID (UUID)"
// @Success      200 {object} response.SuccessResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /videos/{videoId}/tags/{tagId} [delete]
func (h *ListHandler) UntagVideo(c *gin.Context) {
	videoID, err := uuid.Parse(c.Param("videoId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid video ID")
		return
	}
	tagID, err := uuid.Parse(c.Param("tagId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid tag ID")
		return
	}

	if err := h.listService.UntagVideo(c.Request.Context(), videoID, tagID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, map[string]string{"message": "Tag removed successfully"})
}
