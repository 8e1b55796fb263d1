package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"watchlist-api/internal/domain"
)

// ValueRepository defines the interface for field value data access
type ValueRepository interface {
	Upsert(ctx context.Context, value *domain.FieldValue) error
	UpsertBatch(ctx context.Context, values []*domain.FieldValue) error
	FindByVideoAndField(ctx context.Context, videoID, fieldID uuid.UUID) (*domain.FieldValue, error)
	FindByVideo(ctx context.Context, videoID uuid.UUID) ([]*domain.FieldValue, error)
	Delete(ctx context.Context, videoID, fieldID uuid.UUID) error
	DeleteByField(ctx context.Context, fieldID uuid.UUID) error
	DeleteByVideo(ctx context.Context, videoID uuid.UUID) error
	DeleteByList(ctx context.Context, listID uuid.UUID) error
	Tx(tx *gorm.DB) ValueRepository
}

// valueRepositoryImpl is the GORM implementation of ValueRepository
type valueRepositoryImpl struct {
	db *gorm.DB
}

// NewValueRepository creates a new instance of ValueRepository
func NewValueRepository(db *gorm.DB) ValueRepository {
	return &valueRepositoryImpl{db: db}
}

// Tx returns a repository bound to the given transaction
func (r *valueRepositoryImpl) Tx(tx *gorm.DB) ValueRepository {
	return &valueRepositoryImpl{db: tx}
}

// Upsert writes the value for a (video, field) pair, replacing the slots of
// an existing row. At most one row exists per pair.
func (r *valueRepositoryImpl) Upsert(ctx context.Context, value *domain.FieldValue) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "video_id"}, {Name: "field_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"number_value", "text_value", "bool_value", "updated_at"}),
		}).
		Create(value).Error
}

// UpsertBatch writes multiple values in one statement
func (r *valueRepositoryImpl) UpsertBatch(ctx context.Context, values []*domain.FieldValue) error {
	if len(values) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "video_id"}, {Name: "field_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"number_value", "text_value", "bool_value", "updated_at"}),
		}).
		Create(&values).Error
}

// FindByVideoAndField finds the value for one (video, field) pair. Returns
// nil without error when the pair has no value.
func (r *valueRepositoryImpl) FindByVideoAndField(ctx context.Context, videoID, fieldID uuid.UUID) (*domain.FieldValue, error) {
	var value domain.FieldValue
	if err := r.db.WithContext(ctx).
		Where("video_id = ? AND field_id = ?", videoID, fieldID).
		First(&value).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &value, nil
}

// FindByVideo finds all values of a video with their fields preloaded
func (r *valueRepositoryImpl) FindByVideo(ctx context.Context, videoID uuid.UUID) ([]*domain.FieldValue, error) {
	var values []*domain.FieldValue
	if err := r.db.WithContext(ctx).
		Preload("Field").
		Where("video_id = ?", videoID).
		Find(&values).Error; err != nil {
		return nil, err
	}
	return values, nil
}

// Delete removes the value of one (video, field) pair; removing a missing
// value is a no-op
func (r *valueRepositoryImpl) Delete(ctx context.Context, videoID, fieldID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("video_id = ? AND field_id = ?", videoID, fieldID).
		Delete(&domain.FieldValue{}).Error
}

// DeleteByField removes all values referencing a field
func (r *valueRepositoryImpl) DeleteByField(ctx context.Context, fieldID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("field_id = ?", fieldID).
		Delete(&domain.FieldValue{}).Error
}

// DeleteByVideo removes all values of a video
func (r *valueRepositoryImpl) DeleteByVideo(ctx context.Context, videoID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("video_id = ?", videoID).
		Delete(&domain.FieldValue{}).Error
}

// DeleteByList removes all values belonging to a list's videos
func (r *valueRepositoryImpl) DeleteByList(ctx context.Context, listID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("video_id IN (SELECT id FROM videos WHERE list_id = ?)", listID).
		Delete(&domain.FieldValue{}).Error
}
