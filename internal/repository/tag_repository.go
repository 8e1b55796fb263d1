package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"watchlist-api/internal/domain"
)

// TagRepository defines the interface for tag data access, including the
// tag-to-schema binding and the video-tag links
type TagRepository interface {
	Create(ctx context.Context, tag *domain.Tag) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Tag, error)
	FindByList(ctx context.Context, listID uuid.UUID) ([]*domain.Tag, error)
	Update(ctx context.Context, tag *domain.Tag) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByList(ctx context.Context, listID uuid.UUID) error
	CountBySchema(ctx context.Context, schemaID uuid.UUID) (int64, error)
	ClearSchemaBinding(ctx context.Context, schemaID uuid.UUID) error
	FindBoundByVideo(ctx context.Context, videoID uuid.UUID) ([]*domain.Tag, error)
	AttachVideo(ctx context.Context, tagID, videoID uuid.UUID) error
	DetachVideo(ctx context.Context, tagID, videoID uuid.UUID) error
	DeleteVideoLinksByVideo(ctx context.Context, videoID uuid.UUID) error
	DeleteVideoLinksByTag(ctx context.Context, tagID uuid.UUID) error
	DeleteVideoLinksByList(ctx context.Context, listID uuid.UUID) error
	Tx(tx *gorm.DB) TagRepository
}

// tagRepositoryImpl is the GORM implementation of TagRepository
type tagRepositoryImpl struct {
	db *gorm.DB
}

// NewTagRepository creates a new instance of TagRepository
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepositoryImpl{db: db}
}

// Tx returns a repository bound to the given transaction
func (r *tagRepositoryImpl) Tx(tx *gorm.DB) TagRepository {
	return &tagRepositoryImpl{db: tx}
}

// Create creates a new tag
func (r *tagRepositoryImpl) Create(ctx context.Context, tag *domain.Tag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

// FindByID finds a tag by ID
func (r *tagRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Tag, error) {
	var tag domain.Tag
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// FindByList finds all tags of a list, ordered by name
func (r *tagRepositoryImpl) FindByList(ctx context.Context, listID uuid.UUID) ([]*domain.Tag, error) {
	var tags []*domain.Tag
	if err := r.db.WithContext(ctx).
		Where("list_id = ?", listID).
		Order("name ASC").
		Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// Update updates a tag, including its schema binding column
func (r *tagRepositoryImpl) Update(ctx context.Context, tag *domain.Tag) error {
	// Save skips nil pointer columns, so clear the binding explicitly
	if err := r.db.WithContext(ctx).
		Model(&domain.Tag{}).
		Where("id = ?", tag.ID).
		Updates(map[string]interface{}{
			"name":      tag.Name,
			"schema_id": tag.SchemaID,
		}).Error; err != nil {
		return err
	}
	return nil
}

// Delete deletes a tag
func (r *tagRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Tag{}, id).Error
}

// DeleteByList deletes all tags of a list
func (r *tagRepositoryImpl) DeleteByList(ctx context.Context, listID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("list_id = ?", listID).
		Delete(&domain.Tag{}).Error
}

// CountBySchema counts tags currently bound to a schema
func (r *tagRepositoryImpl) CountBySchema(ctx context.Context, schemaID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.Tag{}).
		Where("schema_id = ?", schemaID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ClearSchemaBinding nulls out the schema reference on every tag bound to it
func (r *tagRepositoryImpl) ClearSchemaBinding(ctx context.Context, schemaID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&domain.Tag{}).
		Where("schema_id = ?", schemaID).
		Update("schema_id", nil).Error
}

// FindBoundByVideo finds the video's tags that carry a schema binding
func (r *tagRepositoryImpl) FindBoundByVideo(ctx context.Context, videoID uuid.UUID) ([]*domain.Tag, error) {
	var tags []*domain.Tag
	if err := r.db.WithContext(ctx).
		Joins("JOIN video_tags vt ON vt.tag_id = tags.id").
		Where("vt.video_id = ? AND tags.schema_id IS NOT NULL", videoID).
		Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// AttachVideo links a tag to a video; attaching twice is a no-op
func (r *tagRepositoryImpl) AttachVideo(ctx context.Context, tagID, videoID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Exec("INSERT INTO video_tags (video_id, tag_id) SELECT ?, ? WHERE NOT EXISTS (SELECT 1 FROM video_tags WHERE video_id = ? AND tag_id = ?)",
			videoID, tagID, videoID, tagID).Error
}

// DetachVideo unlinks a tag from a video
func (r *tagRepositoryImpl) DetachVideo(ctx context.Context, tagID, videoID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Exec("DELETE FROM video_tags WHERE video_id = ? AND tag_id = ?", videoID, tagID).Error
}

// DeleteVideoLinksByVideo removes all tag links of one video
func (r *tagRepositoryImpl) DeleteVideoLinksByVideo(ctx context.Context, videoID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Exec("DELETE FROM video_tags WHERE video_id = ?", videoID).Error
}

// DeleteVideoLinksByTag removes all video links of one tag
func (r *tagRepositoryImpl) DeleteVideoLinksByTag(ctx context.Context, tagID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Exec("DELETE FROM video_tags WHERE tag_id = ?", tagID).Error
}

// DeleteVideoLinksByList removes all tag links belonging to a list's videos
func (r *tagRepositoryImpl) DeleteVideoLinksByList(ctx context.Context, listID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Exec("DELETE FROM video_tags WHERE video_id IN (SELECT id FROM videos WHERE list_id = ?)", listID).Error
}
