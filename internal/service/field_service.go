package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"watchlist-api/internal/codec"
	"watchlist-api/internal/domain"
	"watchlist-api/internal/dto"
	"watchlist-api/internal/repository"
	"watchlist-api/internal/response"
)

// FieldService defines the interface for field business logic, including the
// single-cell value edits that go through the same codec as bulk import
type FieldService interface {
	CreateField(ctx context.Context, listID uuid.UUID, req *dto.CreateFieldRequest) (*dto.FieldResponse, error)
	GetField(ctx context.Context, fieldID uuid.UUID) (*dto.FieldResponse, error)
	ListFields(ctx context.Context, listID uuid.UUID) ([]*dto.FieldResponse, error)
	UpdateField(ctx context.Context, fieldID uuid.UUID, req *dto.UpdateFieldRequest) (*dto.FieldResponse, error)
	DeleteField(ctx context.Context, fieldID uuid.UUID) error
	SetValue(ctx context.Context, videoID, fieldID uuid.UUID, raw string) (*dto.ValueResponse, error)
	ClearValue(ctx context.Context, videoID, fieldID uuid.UUID) error
	ListValues(ctx context.Context, videoID uuid.UUID) ([]*dto.ValueResponse, error)
}

// fieldServiceImpl is the implementation of FieldService
type fieldServiceImpl struct {
	fieldRepo  repository.FieldRepository
	schemaRepo repository.SchemaRepository
	valueRepo  repository.ValueRepository
	videoRepo  repository.VideoRepository
	listRepo   repository.ListRepository
	tx         repository.TxManager
	logger     *zap.Logger
}

// NewFieldService creates a new instance of FieldService
func NewFieldService(
	fieldRepo repository.FieldRepository,
	schemaRepo repository.SchemaRepository,
	valueRepo repository.ValueRepository,
	videoRepo repository.VideoRepository,
	listRepo repository.ListRepository,
	tx repository.TxManager,
	logger *zap.Logger,
) FieldService {
	return &fieldServiceImpl{
		fieldRepo:  fieldRepo,
		schemaRepo: schemaRepo,
		valueRepo:  valueRepo,
		videoRepo:  videoRepo,
		listRepo:   listRepo,
		tx:         tx,
		logger:     logger,
	}
}

// CreateField defines a new field on a list
func (s *fieldServiceImpl) CreateField(ctx context.Context, listID uuid.UUID, req *dto.CreateFieldRequest) (*dto.FieldResponse, error) {
	if _, err := s.listRepo.FindByID(ctx, listID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("List not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch list", err.Error())
	}

	fieldType := domain.FieldType(req.Type)
	config, err := configFromPayload(fieldType, req.Config)
	if err != nil {
		return nil, response.NewValidationError(err.Error(), "")
	}

	field := &domain.Field{
		ListID: listID,
		Name:   req.Name,
		Type:   fieldType,
		Origin: domain.FieldOriginUser,
	}
	field.Config = datatypes.NewJSONType(config)

	if err := s.fieldRepo.Create(ctx, field); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create field", err.Error())
	}

	return toFieldResponse(field), nil
}

// GetField retrieves one field
func (s *fieldServiceImpl) GetField(ctx context.Context, fieldID uuid.UUID) (*dto.FieldResponse, error) {
	field, err := s.fieldRepo.FindByID(ctx, fieldID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Field not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch field", err.Error())
	}
	return toFieldResponse(field), nil
}

// ListFields retrieves all fields of a list
func (s *fieldServiceImpl) ListFields(ctx context.Context, listID uuid.UUID) ([]*dto.FieldResponse, error) {
	fields, err := s.fieldRepo.FindByList(ctx, listID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch fields", err.Error())
	}
	responses := make([]*dto.FieldResponse, len(fields))
	for i, field := range fields {
		responses[i] = toFieldResponse(field)
	}
	return responses, nil
}

// UpdateField edits a field's name and configuration. The type never
// changes: values are stored in the slot the type selected at creation, and
// re-typing would silently orphan them.
func (s *fieldServiceImpl) UpdateField(ctx context.Context, fieldID uuid.UUID, req *dto.UpdateFieldRequest) (*dto.FieldResponse, error) {
	field, err := s.fieldRepo.FindByID(ctx, fieldID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Field not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch field", err.Error())
	}

	if req.Name != nil {
		field.Name = *req.Name
	}
	if req.Config != nil {
		config, err := configFromPayload(field.Type, req.Config)
		if err != nil {
			return nil, response.NewValidationError(err.Error(), "")
		}
		field.Config = datatypes.NewJSONType(config)
	}

	if err := s.fieldRepo.Update(ctx, field); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update field", err.Error())
	}

	return toFieldResponse(field), nil
}

// DeleteField deletes a field together with its values and schema
// memberships. The cascade is explicit and runs children-first in one
// transaction; the data loss is visible in the API contract.
func (s *fieldServiceImpl) DeleteField(ctx context.Context, fieldID uuid.UUID) error {
	if _, err := s.fieldRepo.FindByID(ctx, fieldID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("Field not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to fetch field", err.Error())
	}

	err := s.tx.Do(ctx, func(tx *gorm.DB) error {
		if err := s.valueRepo.Tx(tx).DeleteByField(ctx, fieldID); err != nil {
			return err
		}
		if err := s.schemaRepo.Tx(tx).DeleteSchemaFieldsByField(ctx, fieldID); err != nil {
			return err
		}
		return s.fieldRepo.Tx(tx).Delete(ctx, fieldID)
	})
	if err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete field", err.Error())
	}
	return nil
}

// SetValue parses raw text through the codec and stores it as the value of
// one (video, field) pair. Blank input clears the value instead.
func (s *fieldServiceImpl) SetValue(ctx context.Context, videoID, fieldID uuid.UUID, raw string) (*dto.ValueResponse, error) {
	field, err := s.fieldRepo.FindByID(ctx, fieldID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Field not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch field", err.Error())
	}

	video, err := s.videoRepo.FindByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Video not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch video", err.Error())
	}
	if video.ListID != field.ListID {
		return nil, response.NewNotFoundError("Field not found", "field belongs to a different list")
	}

	typed, err := codec.Parse(raw, field)
	if err != nil {
		return nil, response.NewValidationError(err.Error(), "")
	}
	if typed == nil {
		// Blank input means "no value"
		if err := s.valueRepo.Delete(ctx, videoID, fieldID); err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to clear value", err.Error())
		}
		return &dto.ValueResponse{VideoID: videoID, FieldID: fieldID, FieldName: field.Name}, nil
	}

	if err := typed.ValidateForType(field.Type); err != nil {
		// Codec output not matching the field type is a bug, not user error
		s.logger.Error("Typed value violates field type invariant",
			zap.String("field_id", fieldID.String()),
			zap.String("field_type", string(field.Type)),
			zap.Error(err),
		)
		return nil, response.NewInvariantError("Value does not match field type", err.Error())
	}

	value := &domain.FieldValue{VideoID: videoID, FieldID: fieldID}
	value.Apply(*typed)
	if err := s.valueRepo.Upsert(ctx, value); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to store value", err.Error())
	}

	return toValueResponse(value, field), nil
}

// ClearValue removes the value of one (video, field) pair
func (s *fieldServiceImpl) ClearValue(ctx context.Context, videoID, fieldID uuid.UUID) error {
	if err := s.valueRepo.Delete(ctx, videoID, fieldID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to clear value", err.Error())
	}
	return nil
}

// ListValues retrieves all stored values of a video
func (s *fieldServiceImpl) ListValues(ctx context.Context, videoID uuid.UUID) ([]*dto.ValueResponse, error) {
	values, err := s.valueRepo.FindByVideo(ctx, videoID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch values", err.Error())
	}
	responses := make([]*dto.ValueResponse, len(values))
	for i, v := range values {
		responses[i] = toValueResponse(v, v.Field)
	}
	return responses, nil
}

// configFromPayload builds and validates the typed config variant for a
// field type from the flat request payload
func configFromPayload(ft domain.FieldType, payload *dto.FieldConfigPayload) (domain.FieldConfig, error) {
	if !domain.IsValidFieldType(ft) {
		return domain.FieldConfig{}, fmt.Errorf("invalid field type: %s", ft)
	}

	var config domain.FieldConfig
	switch ft {
	case domain.FieldTypeRating:
		if payload == nil || payload.Max == nil {
			return domain.FieldConfig{}, fmt.Errorf("rating field requires config.max")
		}
		config = domain.RatingFieldConfig(*payload.Max)
	case domain.FieldTypeSelect:
		if payload == nil || len(payload.Options) == 0 {
			return domain.FieldConfig{}, fmt.Errorf("select field requires config.options")
		}
		config = domain.SelectFieldConfig(payload.Options)
	case domain.FieldTypeBoolean:
		config = domain.FieldConfig{}
	case domain.FieldTypeText:
		if payload != nil && payload.MaxLength != nil {
			config = domain.TextFieldConfig(payload.MaxLength)
		}
	}

	if err := config.ValidateForType(ft); err != nil {
		return domain.FieldConfig{}, err
	}
	return config, nil
}

// toFieldResponse converts domain.Field to dto.FieldResponse
func toFieldResponse(field *domain.Field) *dto.FieldResponse {
	return &dto.FieldResponse{
		FieldID:   field.ID,
		ListID:    field.ListID,
		Name:      field.Name,
		Type:      string(field.Type),
		Origin:    string(field.Origin),
		Config:    field.TypeConfig(),
		CreatedAt: field.CreatedAt,
		UpdatedAt: field.UpdatedAt,
	}
}

// toValueResponse converts domain.FieldValue to dto.ValueResponse
func toValueResponse(value *domain.FieldValue, field *domain.Field) *dto.ValueResponse {
	resp := &dto.ValueResponse{
		VideoID:     value.VideoID,
		FieldID:     value.FieldID,
		NumberValue: value.NumberValue,
		TextValue:   value.TextValue,
		BoolValue:   value.BoolValue,
	}
	if field != nil {
		resp.FieldName = field.Name
	}
	return resp
}
