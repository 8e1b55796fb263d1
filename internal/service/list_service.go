package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"watchlist-api/internal/domain"
	"watchlist-api/internal/dto"
	"watchlist-api/internal/repository"
	"watchlist-api/internal/response"
)

// ListService defines the interface for bookmark list business logic: the
// list lifecycle, the videos it contains and the tags applied to them
type ListService interface {
	CreateList(ctx context.Context, req *dto.CreateListRequest) (*dto.ListResponse, error)
	GetList(ctx context.Context, listID uuid.UUID) (*dto.ListResponse, error)
	ListsByOwner(ctx context.Context, ownerID uuid.UUID) ([]*dto.ListResponse, error)
	DeleteList(ctx context.Context, listID uuid.UUID) error
	AddVideo(ctx context.Context, listID uuid.UUID, req *dto.CreateVideoRequest) (*dto.VideoResponse, error)
	GetVideo(ctx context.Context, videoID uuid.UUID) (*dto.VideoResponse, error)
	ListVideos(ctx context.Context, listID uuid.UUID) ([]*dto.VideoResponse, error)
	DeleteVideo(ctx context.Context, videoID uuid.UUID) error
	CreateTag(ctx context.Context, listID uuid.UUID, req *dto.CreateTagRequest) (*dto.TagResponse, error)
	ListTags(ctx context.Context, listID uuid.UUID) ([]*dto.TagResponse, error)
	DeleteTag(ctx context.Context, tagID uuid.UUID) error
	TagVideo(ctx context.Context, videoID, tagID uuid.UUID) error
	UntagVideo(ctx context.Context, videoID, tagID uuid.UUID) error
}

// listServiceImpl is the implementation of ListService
type listServiceImpl struct {
	listRepo   repository.ListRepository
	videoRepo  repository.VideoRepository
	tagRepo    repository.TagRepository
	fieldRepo  repository.FieldRepository
	schemaRepo repository.SchemaRepository
	valueRepo  repository.ValueRepository
	tx         repository.TxManager
	logger     *zap.Logger
}

// NewListService creates a new instance of ListService
func NewListService(
	listRepo repository.ListRepository,
	videoRepo repository.VideoRepository,
	tagRepo repository.TagRepository,
	fieldRepo repository.FieldRepository,
	schemaRepo repository.SchemaRepository,
	valueRepo repository.ValueRepository,
	tx repository.TxManager,
	logger *zap.Logger,
) ListService {
	return &listServiceImpl{
		listRepo:   listRepo,
		videoRepo:  videoRepo,
		tagRepo:    tagRepo,
		fieldRepo:  fieldRepo,
		schemaRepo: schemaRepo,
		valueRepo:  valueRepo,
		tx:         tx,
		logger:     logger,
	}
}

// CreateList creates a new bookmark list
func (s *listServiceImpl) CreateList(ctx context.Context, req *dto.CreateListRequest) (*dto.ListResponse, error) {
	list := &domain.List{
		OwnerID:     req.OwnerID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.listRepo.Create(ctx, list); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create list", err.Error())
	}
	return toListResponse(list), nil
}

// GetList retrieves a single list
func (s *listServiceImpl) GetList(ctx context.Context, listID uuid.UUID) (*dto.ListResponse, error) {
	list, err := s.listRepo.FindByID(ctx, listID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("List not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch list", err.Error())
	}
	return toListResponse(list), nil
}

// ListsByOwner retrieves all lists of an owner
func (s *listServiceImpl) ListsByOwner(ctx context.Context, ownerID uuid.UUID) ([]*dto.ListResponse, error) {
	lists, err := s.listRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch lists", err.Error())
	}
	responses := make([]*dto.ListResponse, len(lists))
	for i, list := range lists {
		responses[i] = toListResponse(list)
	}
	return responses, nil
}

// DeleteList removes a list and everything under it: values, tag links,
// videos, tags, schema memberships, schemas, fields, then the list itself.
// Children go first so no orphan rows survive a partial failure.
func (s *listServiceImpl) DeleteList(ctx context.Context, listID uuid.UUID) error {
	if _, err := s.listRepo.FindByID(ctx, listID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("List not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to fetch list", err.Error())
	}

	err := s.tx.Do(ctx, func(tx *gorm.DB) error {
		if err := s.valueRepo.Tx(tx).DeleteByList(ctx, listID); err != nil {
			return err
		}
		if err := s.tagRepo.Tx(tx).DeleteVideoLinksByList(ctx, listID); err != nil {
			return err
		}
		if err := s.videoRepo.Tx(tx).DeleteByList(ctx, listID); err != nil {
			return err
		}
		if err := s.tagRepo.Tx(tx).DeleteByList(ctx, listID); err != nil {
			return err
		}
		if err := s.schemaRepo.Tx(tx).DeleteSchemaFieldsByList(ctx, listID); err != nil {
			return err
		}
		if err := s.schemaRepo.Tx(tx).DeleteByList(ctx, listID); err != nil {
			return err
		}
		if err := s.fieldRepo.Tx(tx).DeleteByList(ctx, listID); err != nil {
			return err
		}
		return s.listRepo.Tx(tx).Delete(ctx, listID)
	})
	if err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete list", err.Error())
	}

	s.logger.Info("list deleted with full cascade", zap.String("listId", listID.String()))
	return nil
}

// AddVideo bookmarks a video in a list
func (s *listServiceImpl) AddVideo(ctx context.Context, listID uuid.UUID, req *dto.CreateVideoRequest) (*dto.VideoResponse, error) {
	if _, err := s.listRepo.FindByID(ctx, listID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("List not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch list", err.Error())
	}

	video := &domain.Video{
		ListID: listID,
		URL:    req.URL,
		Title:  req.Title,
		Note:   req.Note,
	}
	if err := s.videoRepo.Create(ctx, video); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to add video", err.Error())
	}
	return toVideoResponse(video), nil
}

// GetVideo retrieves a single video
func (s *listServiceImpl) GetVideo(ctx context.Context, videoID uuid.UUID) (*dto.VideoResponse, error) {
	video, err := s.videoRepo.FindByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Video not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch video", err.Error())
	}
	return toVideoResponse(video), nil
}

// ListVideos retrieves all videos of a list
func (s *listServiceImpl) ListVideos(ctx context.Context, listID uuid.UUID) ([]*dto.VideoResponse, error) {
	videos, err := s.videoRepo.FindByList(ctx, listID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch videos", err.Error())
	}
	responses := make([]*dto.VideoResponse, len(videos))
	for i, video := range videos {
		responses[i] = toVideoResponse(video)
	}
	return responses, nil
}

// DeleteVideo removes a video together with its field values and tag links
func (s *listServiceImpl) DeleteVideo(ctx context.Context, videoID uuid.UUID) error {
	if _, err := s.videoRepo.FindByID(ctx, videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("Video not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to fetch video", err.Error())
	}

	err := s.tx.Do(ctx, func(tx *gorm.DB) error {
		if err := s.valueRepo.Tx(tx).DeleteByVideo(ctx, videoID); err != nil {
			return err
		}
		if err := s.tagRepo.Tx(tx).DeleteVideoLinksByVideo(ctx, videoID); err != nil {
			return err
		}
		return s.videoRepo.Tx(tx).Delete(ctx, videoID)
	})
	if err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete video", err.Error())
	}
	return nil
}

// CreateTag creates a tag in a list; the tag starts unbound
func (s *listServiceImpl) CreateTag(ctx context.Context, listID uuid.UUID, req *dto.CreateTagRequest) (*dto.TagResponse, error) {
	if _, err := s.listRepo.FindByID(ctx, listID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("List not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch list", err.Error())
	}

	tag := &domain.Tag{
		ListID: listID,
		Name:   req.Name,
	}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create tag", err.Error())
	}
	return toTagResponse(tag), nil
}

// ListTags retrieves all tags of a list
func (s *listServiceImpl) ListTags(ctx context.Context, listID uuid.UUID) ([]*dto.TagResponse, error) {
	tags, err := s.tagRepo.FindByList(ctx, listID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch tags", err.Error())
	}
	responses := make([]*dto.TagResponse, len(tags))
	for i, tag := range tags {
		responses[i] = toTagResponse(tag)
	}
	return responses, nil
}

// DeleteTag removes a tag and its video links. Field values stay: removing a
// tag changes which fields are effective for its videos, not the data already
// entered.
func (s *listServiceImpl) DeleteTag(ctx context.Context, tagID uuid.UUID) error {
	if _, err := s.tagRepo.FindByID(ctx, tagID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("Tag not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to fetch tag", err.Error())
	}

	err := s.tx.Do(ctx, func(tx *gorm.DB) error {
		if err := s.tagRepo.Tx(tx).DeleteVideoLinksByTag(ctx, tagID); err != nil {
			return err
		}
		return s.tagRepo.Tx(tx).Delete(ctx, tagID)
	})
	if err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete tag", err.Error())
	}
	return nil
}

// TagVideo applies a tag to a video; both must belong to the same list
func (s *listServiceImpl) TagVideo(ctx context.Context, videoID, tagID uuid.UUID) error {
	video, err := s.videoRepo.FindByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("Video not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to fetch video", err.Error())
	}
	tag, err := s.tagRepo.FindByID(ctx, tagID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("Tag not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to fetch tag", err.Error())
	}
	if video.ListID != tag.ListID {
		return response.NewConflictError("Video and tag belong to different lists", "")
	}

	if err := s.tagRepo.AttachVideo(ctx, tagID, videoID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to tag video", err.Error())
	}
	return nil
}

// UntagVideo removes a tag from a video; removing an absent link is a no-op
func (s *listServiceImpl) UntagVideo(ctx context.Context, videoID, tagID uuid.UUID) error {
	if _, err := s.videoRepo.FindByID(ctx, videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("Video not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to fetch video", err.Error())
	}
	if err := s.tagRepo.DetachVideo(ctx, tagID, videoID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to untag video", err.Error())
	}
	return nil
}

// toListResponse converts domain.List to dto.ListResponse
func toListResponse(list *domain.List) *dto.ListResponse {
	return &dto.ListResponse{
		ListID:      list.ID,
		OwnerID:     list.OwnerID,
		Name:        list.Name,
		Description: list.Description,
		CreatedAt:   list.CreatedAt,
		UpdatedAt:   list.UpdatedAt,
	}
}

// toVideoResponse converts domain.Video to dto.VideoResponse
func toVideoResponse(video *domain.Video) *dto.VideoResponse {
	return &dto.VideoResponse{
		VideoID:   video.ID,
		ListID:    video.ListID,
		URL:       video.URL,
		Title:     video.Title,
		Note:      video.Note,
		CreatedAt: video.CreatedAt,
		UpdatedAt: video.UpdatedAt,
	}
}

// toTagResponse converts domain.Tag to dto.TagResponse
func toTagResponse(tag *domain.Tag) *dto.TagResponse {
	return &dto.TagResponse{
		TagID:     tag.ID,
		ListID:    tag.ListID,
		Name:      tag.Name,
		SchemaID:  tag.SchemaID,
		CreatedAt: tag.CreatedAt,
		UpdatedAt: tag.UpdatedAt,
	}
}
