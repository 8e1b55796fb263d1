package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"watchlist-api/internal/domain"
)

// FieldValueCount is one row of the per-field value aggregation. Because at
// most one value exists per (video, field) pair, ValueCount equals the number
// of videos carrying a value for the field.
type FieldValueCount struct {
	FieldID    uuid.UUID `gorm:"column:field_id"`
	FieldName  string    `gorm:"column:field_name"`
	ValueCount int64     `gorm:"column:value_count"`
}

// SchemaBindingCount is one row of the per-schema tag binding aggregation
type SchemaBindingCount struct {
	SchemaID   uuid.UUID `gorm:"column:schema_id"`
	SchemaName string    `gorm:"column:schema_name"`
	TagCount   int64     `gorm:"column:tag_count"`
}

// SchemaValueCount is one row of the per-schema member-field value aggregation
type SchemaValueCount struct {
	SchemaID   uuid.UUID `gorm:"column:schema_id"`
	ValueCount int64     `gorm:"column:value_count"`
}

// AnalyticsRepository exposes the read-only aggregate queries the analytics
// reports are computed from. It never writes.
type AnalyticsRepository interface {
	CountVideos(ctx context.Context, listID uuid.UUID) (int64, error)
	FieldValueCounts(ctx context.Context, listID uuid.UUID) ([]FieldValueCount, error)
	SchemaBindingCounts(ctx context.Context, listID uuid.UUID) ([]SchemaBindingCount, error)
	SchemaValueCounts(ctx context.Context, listID uuid.UUID) ([]SchemaValueCount, error)
	VideoIDsBoundToSchema(ctx context.Context, schemaID uuid.UUID) ([]uuid.UUID, error)
	CountValuesForVideosAndFields(ctx context.Context, videoIDs, fieldIDs []uuid.UUID) (int64, error)
}

// analyticsRepositoryImpl is the GORM implementation of AnalyticsRepository
type analyticsRepositoryImpl struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new instance of AnalyticsRepository
func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepositoryImpl{db: db}
}

// CountVideos counts the videos of a list
func (r *analyticsRepositoryImpl) CountVideos(ctx context.Context, listID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.Video{}).
		Where("list_id = ?", listID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FieldValueCounts returns every field of the list with the number of values
// referencing it (zero included, via the left join)
func (r *analyticsRepositoryImpl) FieldValueCounts(ctx context.Context, listID uuid.UUID) ([]FieldValueCount, error) {
	var rows []FieldValueCount
	if err := r.db.WithContext(ctx).
		Table("fields").
		Select("fields.id AS field_id, fields.name AS field_name, COUNT(field_values.id) AS value_count").
		Joins("LEFT JOIN field_values ON field_values.field_id = fields.id").
		Where("fields.list_id = ?", listID).
		Group("fields.id, fields.name").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// SchemaBindingCounts returns every schema of the list with the number of
// tags currently bound to it (zero included)
func (r *analyticsRepositoryImpl) SchemaBindingCounts(ctx context.Context, listID uuid.UUID) ([]SchemaBindingCount, error) {
	var rows []SchemaBindingCount
	if err := r.db.WithContext(ctx).
		Table("schemas").
		Select("schemas.id AS schema_id, schemas.name AS schema_name, COUNT(tags.id) AS tag_count").
		Joins("LEFT JOIN tags ON tags.schema_id = schemas.id").
		Where("schemas.list_id = ?", listID).
		Group("schemas.id, schemas.name").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// SchemaValueCounts returns, per schema of the list, the number of values
// stored against any of its member fields. Schemas without any such value do
// not appear in the result.
func (r *analyticsRepositoryImpl) SchemaValueCounts(ctx context.Context, listID uuid.UUID) ([]SchemaValueCount, error) {
	var rows []SchemaValueCount
	if err := r.db.WithContext(ctx).
		Table("schema_fields").
		Select("schema_fields.schema_id AS schema_id, COUNT(field_values.id) AS value_count").
		Joins("JOIN schemas ON schemas.id = schema_fields.schema_id").
		Joins("JOIN field_values ON field_values.field_id = schema_fields.field_id").
		Where("schemas.list_id = ?", listID).
		Group("schema_fields.schema_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// VideoIDsBoundToSchema returns the distinct videos reachable through any tag
// bound to the schema
func (r *analyticsRepositoryImpl) VideoIDsBoundToSchema(ctx context.Context, schemaID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Table("video_tags").
		Select("DISTINCT video_tags.video_id").
		Joins("JOIN tags ON tags.id = video_tags.tag_id").
		Where("tags.schema_id = ?", schemaID).
		Scan(&ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// CountValuesForVideosAndFields counts value rows over the cross product of
// the given videos and fields
func (r *analyticsRepositoryImpl) CountValuesForVideosAndFields(ctx context.Context, videoIDs, fieldIDs []uuid.UUID) (int64, error) {
	if len(videoIDs) == 0 || len(fieldIDs) == 0 {
		return 0, nil
	}
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.FieldValue{}).
		Where("video_id IN ? AND field_id IN ?", videoIDs, fieldIDs).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
