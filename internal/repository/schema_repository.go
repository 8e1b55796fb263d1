package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"watchlist-api/internal/domain"
)

// SchemaRepository defines the interface for schema and schema-field data access
type SchemaRepository interface {
	Create(ctx context.Context, schema *domain.Schema) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Schema, error)
	FindByList(ctx context.Context, listID uuid.UUID) ([]*domain.Schema, error)
	Update(ctx context.Context, schema *domain.Schema) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByList(ctx context.Context, listID uuid.UUID) error
	AddField(ctx context.Context, schemaField *domain.SchemaField) error
	RemoveField(ctx context.Context, schemaID, fieldID uuid.UUID) error
	FindSchemaFields(ctx context.Context, schemaID uuid.UUID) ([]*domain.SchemaField, error)
	FindSchemaFieldsBySchemas(ctx context.Context, schemaIDs []uuid.UUID) ([]*domain.SchemaField, error)
	DeleteSchemaFieldsBySchema(ctx context.Context, schemaID uuid.UUID) error
	DeleteSchemaFieldsByField(ctx context.Context, fieldID uuid.UUID) error
	DeleteSchemaFieldsByList(ctx context.Context, listID uuid.UUID) error
	Tx(tx *gorm.DB) SchemaRepository
}

// schemaRepositoryImpl is the GORM implementation of SchemaRepository
type schemaRepositoryImpl struct {
	db *gorm.DB
}

// NewSchemaRepository creates a new instance of SchemaRepository
func NewSchemaRepository(db *gorm.DB) SchemaRepository {
	return &schemaRepositoryImpl{db: db}
}

// Tx returns a repository bound to the given transaction
func (r *schemaRepositoryImpl) Tx(tx *gorm.DB) SchemaRepository {
	return &schemaRepositoryImpl{db: tx}
}

// Create creates a new schema (with any initial schema-field rows attached)
func (r *schemaRepositoryImpl) Create(ctx context.Context, schema *domain.Schema) error {
	return r.db.WithContext(ctx).Create(schema).Error
}

// FindByID finds a schema by ID with its field memberships preloaded in
// display order
func (r *schemaRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Schema, error) {
	var schema domain.Schema
	if err := r.db.WithContext(ctx).
		Preload("Fields", func(db *gorm.DB) *gorm.DB {
			return db.Order("schema_fields.display_order ASC")
		}).
		Preload("Fields.Field").
		Where("id = ?", id).
		First(&schema).Error; err != nil {
		return nil, err
	}
	return &schema, nil
}

// FindByList finds all schemas of a list with memberships preloaded
func (r *schemaRepositoryImpl) FindByList(ctx context.Context, listID uuid.UUID) ([]*domain.Schema, error) {
	var schemas []*domain.Schema
	if err := r.db.WithContext(ctx).
		Preload("Fields", func(db *gorm.DB) *gorm.DB {
			return db.Order("schema_fields.display_order ASC")
		}).
		Preload("Fields.Field").
		Where("list_id = ?", listID).
		Order("name ASC").
		Find(&schemas).Error; err != nil {
		return nil, err
	}
	return schemas, nil
}

// Update updates a schema's own columns
func (r *schemaRepositoryImpl) Update(ctx context.Context, schema *domain.Schema) error {
	return r.db.WithContext(ctx).Omit("Fields").Save(schema).Error
}

// Delete deletes a schema row only; callers remove the schema-field rows
// first inside the same transaction
func (r *schemaRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Schema{}, id).Error
}

// DeleteByList deletes all schemas of a list
func (r *schemaRepositoryImpl) DeleteByList(ctx context.Context, listID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("list_id = ?", listID).
		Delete(&domain.Schema{}).Error
}

// AddField creates a schema-field membership row
func (r *schemaRepositoryImpl) AddField(ctx context.Context, schemaField *domain.SchemaField) error {
	return r.db.WithContext(ctx).Create(schemaField).Error
}

// RemoveField removes one field's membership from a schema
func (r *schemaRepositoryImpl) RemoveField(ctx context.Context, schemaID, fieldID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("schema_id = ? AND field_id = ?", schemaID, fieldID).
		Delete(&domain.SchemaField{}).Error
}

// FindSchemaFields finds a schema's membership rows in display order
func (r *schemaRepositoryImpl) FindSchemaFields(ctx context.Context, schemaID uuid.UUID) ([]*domain.SchemaField, error) {
	var rows []*domain.SchemaField
	if err := r.db.WithContext(ctx).
		Preload("Field").
		Where("schema_id = ?", schemaID).
		Order("display_order ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindSchemaFieldsBySchemas finds membership rows across several schemas in
// a single query
func (r *schemaRepositoryImpl) FindSchemaFieldsBySchemas(ctx context.Context, schemaIDs []uuid.UUID) ([]*domain.SchemaField, error) {
	if len(schemaIDs) == 0 {
		return []*domain.SchemaField{}, nil
	}
	var rows []*domain.SchemaField
	if err := r.db.WithContext(ctx).
		Preload("Field").
		Where("schema_id IN ?", schemaIDs).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// DeleteSchemaFieldsBySchema removes all membership rows of a schema
func (r *schemaRepositoryImpl) DeleteSchemaFieldsBySchema(ctx context.Context, schemaID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("schema_id = ?", schemaID).
		Delete(&domain.SchemaField{}).Error
}

// DeleteSchemaFieldsByField removes a field's membership rows across all schemas
func (r *schemaRepositoryImpl) DeleteSchemaFieldsByField(ctx context.Context, fieldID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("field_id = ?", fieldID).
		Delete(&domain.SchemaField{}).Error
}

// DeleteSchemaFieldsByList removes all membership rows belonging to a list's schemas
func (r *schemaRepositoryImpl) DeleteSchemaFieldsByList(ctx context.Context, listID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("schema_id IN (SELECT id FROM schemas WHERE list_id = ?)", listID).
		Delete(&domain.SchemaField{}).Error
}
