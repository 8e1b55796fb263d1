package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"watchlist-api/internal/domain"
)

// FieldRepository defines the interface for field data access
type FieldRepository interface {
	Create(ctx context.Context, field *domain.Field) error
	CreateBatch(ctx context.Context, fields []*domain.Field) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Field, error)
	FindByList(ctx context.Context, listID uuid.UUID) ([]*domain.Field, error)
	FindByListAndName(ctx context.Context, listID uuid.UUID, name string) (*domain.Field, error)
	Update(ctx context.Context, field *domain.Field) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByList(ctx context.Context, listID uuid.UUID) error
	FindOrphanImportFields(ctx context.Context, cutoff time.Time) ([]*domain.Field, error)
	Tx(tx *gorm.DB) FieldRepository
}

// fieldRepositoryImpl is the GORM implementation of FieldRepository
type fieldRepositoryImpl struct {
	db *gorm.DB
}

// NewFieldRepository creates a new instance of FieldRepository
func NewFieldRepository(db *gorm.DB) FieldRepository {
	return &fieldRepositoryImpl{db: db}
}

// Tx returns a repository bound to the given transaction
func (r *fieldRepositoryImpl) Tx(tx *gorm.DB) FieldRepository {
	return &fieldRepositoryImpl{db: tx}
}

// Create creates a new field
func (r *fieldRepositoryImpl) Create(ctx context.Context, field *domain.Field) error {
	return r.db.WithContext(ctx).Create(field).Error
}

// CreateBatch creates multiple fields in one statement
func (r *fieldRepositoryImpl) CreateBatch(ctx context.Context, fields []*domain.Field) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&fields).Error
}

// FindByID finds a field by ID
func (r *fieldRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Field, error) {
	var field domain.Field
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&field).Error; err != nil {
		return nil, err
	}
	return &field, nil
}

// FindByList finds all fields of a list, ordered by name
func (r *fieldRepositoryImpl) FindByList(ctx context.Context, listID uuid.UUID) ([]*domain.Field, error) {
	var fields []*domain.Field
	if err := r.db.WithContext(ctx).
		Where("list_id = ?", listID).
		Order("name ASC").
		Find(&fields).Error; err != nil {
		return nil, err
	}
	return fields, nil
}

// FindByListAndName finds a field by case-insensitive name match within a
// list. Returns nil without error when no field matches.
func (r *fieldRepositoryImpl) FindByListAndName(ctx context.Context, listID uuid.UUID, name string) (*domain.Field, error) {
	var field domain.Field
	if err := r.db.WithContext(ctx).
		Where("list_id = ? AND LOWER(name) = LOWER(?)", listID, name).
		First(&field).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &field, nil
}

// Update updates a field
func (r *fieldRepositoryImpl) Update(ctx context.Context, field *domain.Field) error {
	return r.db.WithContext(ctx).Save(field).Error
}

// Delete deletes a field row. Cascading its values and schema memberships is
// the service layer's responsibility, inside the same transaction.
func (r *fieldRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Field{}, id).Error
}

// DeleteByList deletes all fields of a list
func (r *fieldRepositoryImpl) DeleteByList(ctx context.Context, listID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("list_id = ?", listID).
		Delete(&domain.Field{}).Error
}

// FindOrphanImportFields finds import-created fields older than the cutoff
// that carry no values and belong to no schema. These are the leftovers of an
// import that crashed between its definition phase and its value phase.
func (r *fieldRepositoryImpl) FindOrphanImportFields(ctx context.Context, cutoff time.Time) ([]*domain.Field, error) {
	var fields []*domain.Field
	if err := r.db.WithContext(ctx).
		Where("origin = ?", domain.FieldOriginImport).
		Where("created_at < ?", cutoff).
		Where("NOT EXISTS (SELECT 1 FROM field_values fv WHERE fv.field_id = fields.id)").
		Where("NOT EXISTS (SELECT 1 FROM schema_fields sf WHERE sf.field_id = fields.id)").
		Find(&fields).Error; err != nil {
		return nil, err
	}
	return fields, nil
}
