package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"watchlist-api/internal/domain"
)

// VideoRepository defines the interface for video data access
type VideoRepository interface {
	Create(ctx context.Context, video *domain.Video) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Video, error)
	FindByList(ctx context.Context, listID uuid.UUID) ([]*domain.Video, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Video, error)
	CountByList(ctx context.Context, listID uuid.UUID) (int64, error)
	Update(ctx context.Context, video *domain.Video) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByList(ctx context.Context, listID uuid.UUID) error
	Tx(tx *gorm.DB) VideoRepository
}

// videoRepositoryImpl is the GORM implementation of VideoRepository
type videoRepositoryImpl struct {
	db *gorm.DB
}

// NewVideoRepository creates a new instance of VideoRepository
func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &videoRepositoryImpl{db: db}
}

// Tx returns a repository bound to the given transaction
func (r *videoRepositoryImpl) Tx(tx *gorm.DB) VideoRepository {
	return &videoRepositoryImpl{db: tx}
}

// Create creates a new video
func (r *videoRepositoryImpl) Create(ctx context.Context, video *domain.Video) error {
	return r.db.WithContext(ctx).Create(video).Error
}

// FindByID finds a video by ID
func (r *videoRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
	var video domain.Video
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&video).Error; err != nil {
		return nil, err
	}
	return &video, nil
}

// FindByList finds all videos of a list, newest first
func (r *videoRepositoryImpl) FindByList(ctx context.Context, listID uuid.UUID) ([]*domain.Video, error) {
	var videos []*domain.Video
	if err := r.db.WithContext(ctx).
		Where("list_id = ?", listID).
		Order("created_at DESC").
		Find(&videos).Error; err != nil {
		return nil, err
	}
	return videos, nil
}

// FindByIDs finds multiple videos in a single query
func (r *videoRepositoryImpl) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Video, error) {
	if len(ids) == 0 {
		return []*domain.Video{}, nil
	}
	var videos []*domain.Video
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&videos).Error; err != nil {
		return nil, err
	}
	return videos, nil
}

// CountByList counts the videos of a list
func (r *videoRepositoryImpl) CountByList(ctx context.Context, listID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.Video{}).
		Where("list_id = ?", listID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Update updates a video
func (r *videoRepositoryImpl) Update(ctx context.Context, video *domain.Video) error {
	return r.db.WithContext(ctx).Save(video).Error
}

// Delete deletes a video row; its values and tag links are removed first by
// the service layer inside the same transaction
func (r *videoRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Video{}, id).Error
}

// DeleteByList deletes all videos of a list
func (r *videoRepositoryImpl) DeleteByList(ctx context.Context, listID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("list_id = ?", listID).
		Delete(&domain.Video{}).Error
}
