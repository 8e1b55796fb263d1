package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"watchlist-api/internal/domain"
	"watchlist-api/internal/dto"
	"watchlist-api/internal/repository"
	"watchlist-api/internal/response"
)

// SchemaService defines the interface for schema business logic, covering
// the schema lifecycle, tag bindings and the effective field set of a video
type SchemaService interface {
	CreateSchema(ctx context.Context, listID uuid.UUID, req *dto.CreateSchemaRequest) (*dto.SchemaResponse, error)
	GetSchema(ctx context.Context, schemaID uuid.UUID) (*dto.SchemaResponse, error)
	ListSchemas(ctx context.Context, listID uuid.UUID) ([]*dto.SchemaResponse, error)
	UpdateSchema(ctx context.Context, schemaID uuid.UUID, req *dto.UpdateSchemaRequest) (*dto.SchemaResponse, error)
	DeleteSchema(ctx context.Context, schemaID uuid.UUID) error
	AddField(ctx context.Context, schemaID uuid.UUID, req *dto.SchemaFieldInput) (*dto.SchemaResponse, error)
	RemoveField(ctx context.Context, schemaID, fieldID uuid.UUID) error
	BindTag(ctx context.Context, tagID, schemaID uuid.UUID) error
	UnbindTag(ctx context.Context, tagID uuid.UUID) error
	EffectiveFields(ctx context.Context, videoID uuid.UUID) ([]*dto.FieldResponse, error)
}

// schemaServiceImpl is the implementation of SchemaService
type schemaServiceImpl struct {
	schemaRepo repository.SchemaRepository
	fieldRepo  repository.FieldRepository
	tagRepo    repository.TagRepository
	videoRepo  repository.VideoRepository
	listRepo   repository.ListRepository
	tx         repository.TxManager
}

// NewSchemaService creates a new instance of SchemaService
func NewSchemaService(
	schemaRepo repository.SchemaRepository,
	fieldRepo repository.FieldRepository,
	tagRepo repository.TagRepository,
	videoRepo repository.VideoRepository,
	listRepo repository.ListRepository,
	tx repository.TxManager,
) SchemaService {
	return &schemaServiceImpl{
		schemaRepo: schemaRepo,
		fieldRepo:  fieldRepo,
		tagRepo:    tagRepo,
		videoRepo:  videoRepo,
		listRepo:   listRepo,
		tx:         tx,
	}
}

// CreateSchema creates a schema, empty or with an initial field set. Every
// referenced field must exist and belong to the same list.
func (s *schemaServiceImpl) CreateSchema(ctx context.Context, listID uuid.UUID, req *dto.CreateSchemaRequest) (*dto.SchemaResponse, error) {
	if _, err := s.listRepo.FindByID(ctx, listID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("List not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch list", err.Error())
	}

	schema := &domain.Schema{
		ListID:      listID,
		Name:        req.Name,
		Description: req.Description,
	}
	for _, input := range req.Fields {
		field, err := s.fieldRepo.FindByID(ctx, input.FieldID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, response.NewNotFoundError(fmt.Sprintf("Field %s not found", input.FieldID), "")
			}
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch field", err.Error())
		}
		if field.ListID != listID {
			return nil, response.NewNotFoundError(fmt.Sprintf("Field %s not found", input.FieldID), "field belongs to a different list")
		}
		schema.Fields = append(schema.Fields, domain.SchemaField{
			FieldID:       input.FieldID,
			DisplayOrder:  input.DisplayOrder,
			ShowOnSummary: input.ShowOnSummary,
		})
	}

	if err := s.schemaRepo.Create(ctx, schema); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create schema", err.Error())
	}

	created, err := s.schemaRepo.FindByID(ctx, schema.ID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch created schema", err.Error())
	}
	return toSchemaResponse(created), nil
}

// GetSchema retrieves one schema with its memberships
func (s *schemaServiceImpl) GetSchema(ctx context.Context, schemaID uuid.UUID) (*dto.SchemaResponse, error) {
	schema, err := s.schemaRepo.FindByID(ctx, schemaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Schema not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch schema", err.Error())
	}
	return toSchemaResponse(schema), nil
}

// ListSchemas retrieves all schemas of a list
func (s *schemaServiceImpl) ListSchemas(ctx context.Context, listID uuid.UUID) ([]*dto.SchemaResponse, error) {
	schemas, err := s.schemaRepo.FindByList(ctx, listID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch schemas", err.Error())
	}
	responses := make([]*dto.SchemaResponse, len(schemas))
	for i, schema := range schemas {
		responses[i] = toSchemaResponse(schema)
	}
	return responses, nil
}

// UpdateSchema renames or re-describes a schema
func (s *schemaServiceImpl) UpdateSchema(ctx context.Context, schemaID uuid.UUID, req *dto.UpdateSchemaRequest) (*dto.SchemaResponse, error) {
	schema, err := s.schemaRepo.FindByID(ctx, schemaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Schema not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch schema", err.Error())
	}

	if req.Name != nil {
		schema.Name = *req.Name
	}
	if req.Description != nil {
		schema.Description = *req.Description
	}

	if err := s.schemaRepo.Update(ctx, schema); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update schema", err.Error())
	}
	return toSchemaResponse(schema), nil
}

// DeleteSchema removes a schema and its membership rows. It fails with a
// conflict naming the exact binding count while any tag still references the
// schema: the caller must unbind or reassign those tags first. Nothing is
// deleted on conflict.
func (s *schemaServiceImpl) DeleteSchema(ctx context.Context, schemaID uuid.UUID) error {
	if _, err := s.schemaRepo.FindByID(ctx, schemaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("Schema not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to fetch schema", err.Error())
	}

	err := s.tx.Do(ctx, func(tx *gorm.DB) error {
		// Conflict pre-check runs inside the transaction so a concurrent
		// bind cannot slip between the check and the delete
		bound, err := s.tagRepo.Tx(tx).CountBySchema(ctx, schemaID)
		if err != nil {
			return err
		}
		if bound > 0 {
			return response.NewConflictError(
				fmt.Sprintf("Schema is still bound to %d tag(s); unbind them first", bound), "")
		}
		if err := s.schemaRepo.Tx(tx).DeleteSchemaFieldsBySchema(ctx, schemaID); err != nil {
			return err
		}
		return s.schemaRepo.Tx(tx).Delete(ctx, schemaID)
	})
	if err != nil {
		var appErr *response.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete schema", err.Error())
	}
	return nil
}

// AddField adds a field membership to a schema
func (s *schemaServiceImpl) AddField(ctx context.Context, schemaID uuid.UUID, req *dto.SchemaFieldInput) (*dto.SchemaResponse, error) {
	schema, err := s.schemaRepo.FindByID(ctx, schemaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Schema not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch schema", err.Error())
	}

	field, err := s.fieldRepo.FindByID(ctx, req.FieldID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Field not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch field", err.Error())
	}
	if field.ListID != schema.ListID {
		return nil, response.NewNotFoundError("Field not found", "field belongs to a different list")
	}

	for _, sf := range schema.Fields {
		if sf.FieldID == req.FieldID {
			return nil, response.NewConflictError("Field is already part of this schema", "")
		}
	}

	if err := s.schemaRepo.AddField(ctx, &domain.SchemaField{
		SchemaID:      schemaID,
		FieldID:       req.FieldID,
		DisplayOrder:  req.DisplayOrder,
		ShowOnSummary: req.ShowOnSummary,
	}); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to add field to schema", err.Error())
	}

	updated, err := s.schemaRepo.FindByID(ctx, schemaID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch schema", err.Error())
	}
	return toSchemaResponse(updated), nil
}

// RemoveField removes a field membership from a schema; the field itself and
// its values are untouched
func (s *schemaServiceImpl) RemoveField(ctx context.Context, schemaID, fieldID uuid.UUID) error {
	if _, err := s.schemaRepo.FindByID(ctx, schemaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("Schema not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to fetch schema", err.Error())
	}
	if err := s.schemaRepo.RemoveField(ctx, schemaID, fieldID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to remove field from schema", err.Error())
	}
	return nil
}

// BindTag points a tag at a schema. The schema must belong to the same list
// as the tag; a cross-list binding is a conflict.
func (s *schemaServiceImpl) BindTag(ctx context.Context, tagID, schemaID uuid.UUID) error {
	tag, err := s.tagRepo.FindByID(ctx, tagID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("Tag not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to fetch tag", err.Error())
	}

	schema, err := s.schemaRepo.FindByID(ctx, schemaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("Schema not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to fetch schema", err.Error())
	}

	if schema.ListID != tag.ListID {
		return response.NewConflictError("Tag and schema belong to different lists", "")
	}

	tag.SchemaID = &schemaID
	if err := s.tagRepo.Update(ctx, tag); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to bind tag", err.Error())
	}
	return nil
}

// UnbindTag clears a tag's schema reference. Unbinding an unbound tag is a
// no-op, not an error.
func (s *schemaServiceImpl) UnbindTag(ctx context.Context, tagID uuid.UUID) error {
	tag, err := s.tagRepo.FindByID(ctx, tagID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("Tag not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to fetch tag", err.Error())
	}
	if tag.SchemaID == nil {
		return nil
	}
	tag.SchemaID = nil
	if err := s.tagRepo.Update(ctx, tag); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to unbind tag", err.Error())
	}
	return nil
}

// EffectiveFields computes the field set shown and validated for a video:
// the union of all schemas bound to the video's tags, deduplicated by field
// identity. When several schemas contribute the same field, the lowest
// display order wins; remaining ties order by field id so the result is
// deterministic.
func (s *schemaServiceImpl) EffectiveFields(ctx context.Context, videoID uuid.UUID) ([]*dto.FieldResponse, error) {
	if _, err := s.videoRepo.FindByID(ctx, videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Video not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch video", err.Error())
	}

	tags, err := s.tagRepo.FindBoundByVideo(ctx, videoID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch tags", err.Error())
	}

	schemaIDs := make([]uuid.UUID, 0, len(tags))
	seen := make(map[uuid.UUID]bool, len(tags))
	for _, tag := range tags {
		if tag.SchemaID != nil && !seen[*tag.SchemaID] {
			seen[*tag.SchemaID] = true
			schemaIDs = append(schemaIDs, *tag.SchemaID)
		}
	}
	if len(schemaIDs) == 0 {
		return []*dto.FieldResponse{}, nil
	}

	rows, err := s.schemaRepo.FindSchemaFieldsBySchemas(ctx, schemaIDs)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch schema fields", err.Error())
	}

	type entry struct {
		field *domain.Field
		order int
	}
	byField := make(map[uuid.UUID]*entry)
	for _, row := range rows {
		if row.Field == nil {
			continue
		}
		if e, ok := byField[row.FieldID]; ok {
			if row.DisplayOrder < e.order {
				e.order = row.DisplayOrder
			}
			continue
		}
		byField[row.FieldID] = &entry{field: row.Field, order: row.DisplayOrder}
	}

	entries := make([]*entry, 0, len(byField))
	for _, e := range byField {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].order != entries[j].order {
			return entries[i].order < entries[j].order
		}
		return entries[i].field.ID.String() < entries[j].field.ID.String()
	})

	responses := make([]*dto.FieldResponse, len(entries))
	for i, e := range entries {
		responses[i] = toFieldResponse(e.field)
	}
	return responses, nil
}

// toSchemaResponse converts domain.Schema to dto.SchemaResponse
func toSchemaResponse(schema *domain.Schema) *dto.SchemaResponse {
	fields := make([]dto.SchemaFieldResponse, 0, len(schema.Fields))
	for _, sf := range schema.Fields {
		resp := dto.SchemaFieldResponse{
			FieldID:       sf.FieldID,
			DisplayOrder:  sf.DisplayOrder,
			ShowOnSummary: sf.ShowOnSummary,
		}
		if sf.Field != nil {
			resp.FieldName = sf.Field.Name
			resp.FieldType = string(sf.Field.Type)
		}
		fields = append(fields, resp)
	}
	return &dto.SchemaResponse{
		SchemaID:    schema.ID,
		ListID:      schema.ListID,
		Name:        schema.Name,
		Description: schema.Description,
		Fields:      fields,
		CreatedAt:   schema.CreatedAt,
		UpdatedAt:   schema.UpdatedAt,
	}
}
