package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"watchlist-api/internal/domain"
	"watchlist-api/internal/dto"
	"watchlist-api/internal/response"
)

func newSchemaService(
	schemaRepo *MockSchemaRepository,
	fieldRepo *MockFieldRepository,
	tagRepo *MockTagRepository,
	videoRepo *MockVideoRepository,
	listRepo *MockListRepository,
) SchemaService {
	return NewSchemaService(schemaRepo, fieldRepo, tagRepo, videoRepo, listRepo, passthroughTxManager{})
}

func existingSchema(listID uuid.UUID) *domain.Schema {
	return &domain.Schema{
		BaseModel: domain.BaseModel{ID: uuid.New()},
		ListID:    listID,
		Name:      "Movie Review",
	}
}

func TestDeleteSchema_ConflictWhileTagsAreBound(t *testing.T) {
	schema := existingSchema(uuid.New())

	membershipsDeleted := false
	schemaDeleted := false
	schemaRepo := &MockSchemaRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Schema, error) {
			return schema, nil
		},
		DeleteSchemaFieldsBySchemaFunc: func(ctx context.Context, schemaID uuid.UUID) error {
			membershipsDeleted = true
			return nil
		},
		DeleteFunc: func(ctx context.Context, id uuid.UUID) error {
			schemaDeleted = true
			return nil
		},
	}
	tagRepo := &MockTagRepository{
		CountBySchemaFunc: func(ctx context.Context, schemaID uuid.UUID) (int64, error) {
			return 3, nil
		},
	}

	svc := newSchemaService(schemaRepo, &MockFieldRepository{}, tagRepo, &MockVideoRepository{}, &MockListRepository{})

	err := svc.DeleteSchema(context.Background(), schema.ID)

	var appErr *response.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, response.ErrCodeConflict, appErr.Code)
	assert.Contains(t, appErr.Message, "3 tag(s)", "conflict must report the binding count")
	assert.False(t, membershipsDeleted, "nothing is deleted on conflict")
	assert.False(t, schemaDeleted, "nothing is deleted on conflict")
}

func TestDeleteSchema_UnboundSchemaDeletes(t *testing.T) {
	schema := existingSchema(uuid.New())

	var calls []string
	schemaRepo := &MockSchemaRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Schema, error) {
			return schema, nil
		},
		DeleteSchemaFieldsBySchemaFunc: func(ctx context.Context, schemaID uuid.UUID) error {
			calls = append(calls, "memberships")
			return nil
		},
		DeleteFunc: func(ctx context.Context, id uuid.UUID) error {
			calls = append(calls, "schema")
			return nil
		},
	}

	svc := newSchemaService(schemaRepo, &MockFieldRepository{}, &MockTagRepository{}, &MockVideoRepository{}, &MockListRepository{})

	err := svc.DeleteSchema(context.Background(), schema.ID)

	require.NoError(t, err)
	assert.Equal(t, []string{"memberships", "schema"}, calls, "memberships go first, the fields themselves stay")
}

func TestDeleteSchema_NotFound(t *testing.T) {
	svc := newSchemaService(&MockSchemaRepository{}, &MockFieldRepository{}, &MockTagRepository{}, &MockVideoRepository{}, &MockListRepository{})

	err := svc.DeleteSchema(context.Background(), uuid.New())

	var appErr *response.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, response.ErrCodeNotFound, appErr.Code)
}

func TestAddField_DuplicateMembershipIsConflict(t *testing.T) {
	listID := uuid.New()
	fieldID := uuid.New()
	schema := existingSchema(listID)
	schema.Fields = []domain.SchemaField{{SchemaID: schema.ID, FieldID: fieldID}}

	schemaRepo := &MockSchemaRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Schema, error) {
			return schema, nil
		},
	}
	fieldRepo := &MockFieldRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Field, error) {
			return &domain.Field{BaseModel: domain.BaseModel{ID: fieldID}, ListID: listID}, nil
		},
	}

	svc := newSchemaService(schemaRepo, fieldRepo, &MockTagRepository{}, &MockVideoRepository{}, &MockListRepository{})

	_, err := svc.AddField(context.Background(), schema.ID, &dto.SchemaFieldInput{FieldID: fieldID})

	var appErr *response.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, response.ErrCodeConflict, appErr.Code)
}

func TestAddField_CrossListFieldIsNotFound(t *testing.T) {
	schema := existingSchema(uuid.New())

	schemaRepo := &MockSchemaRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Schema, error) {
			return schema, nil
		},
	}
	fieldRepo := &MockFieldRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Field, error) {
			return &domain.Field{BaseModel: domain.BaseModel{ID: id}, ListID: uuid.New()}, nil
		},
	}

	svc := newSchemaService(schemaRepo, fieldRepo, &MockTagRepository{}, &MockVideoRepository{}, &MockListRepository{})

	_, err := svc.AddField(context.Background(), schema.ID, &dto.SchemaFieldInput{FieldID: uuid.New()})

	var appErr *response.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, response.ErrCodeNotFound, appErr.Code)
}

func TestBindTag_CrossListIsConflict(t *testing.T) {
	tag := &domain.Tag{BaseModel: domain.BaseModel{ID: uuid.New()}, ListID: uuid.New()}
	schema := existingSchema(uuid.New())

	tagRepo := &MockTagRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Tag, error) {
			return tag, nil
		},
	}
	schemaRepo := &MockSchemaRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Schema, error) {
			return schema, nil
		},
	}

	svc := newSchemaService(schemaRepo, &MockFieldRepository{}, tagRepo, &MockVideoRepository{}, &MockListRepository{})

	err := svc.BindTag(context.Background(), tag.ID, schema.ID)

	var appErr *response.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, response.ErrCodeConflict, appErr.Code)
}

func TestBindTag_SameListBinds(t *testing.T) {
	listID := uuid.New()
	tag := &domain.Tag{BaseModel: domain.BaseModel{ID: uuid.New()}, ListID: listID}
	schema := existingSchema(listID)

	var updated *domain.Tag
	tagRepo := &MockTagRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Tag, error) {
			return tag, nil
		},
		UpdateFunc: func(ctx context.Context, t *domain.Tag) error {
			updated = t
			return nil
		},
	}
	schemaRepo := &MockSchemaRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Schema, error) {
			return schema, nil
		},
	}

	svc := newSchemaService(schemaRepo, &MockFieldRepository{}, tagRepo, &MockVideoRepository{}, &MockListRepository{})

	err := svc.BindTag(context.Background(), tag.ID, schema.ID)

	require.NoError(t, err)
	require.NotNil(t, updated)
	require.NotNil(t, updated.SchemaID)
	assert.Equal(t, schema.ID, *updated.SchemaID)
}

func TestUnbindTag_UnboundTagIsNoOp(t *testing.T) {
	tag := &domain.Tag{BaseModel: domain.BaseModel{ID: uuid.New()}, ListID: uuid.New()}

	tagRepo := &MockTagRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Tag, error) {
			return tag, nil
		},
		UpdateFunc: func(ctx context.Context, t2 *domain.Tag) error {
			t.Fatal("unbinding an unbound tag must not write")
			return nil
		},
	}

	svc := newSchemaService(&MockSchemaRepository{}, &MockFieldRepository{}, tagRepo, &MockVideoRepository{}, &MockListRepository{})

	err := svc.UnbindTag(context.Background(), tag.ID)
	assert.NoError(t, err)
}

func TestEffectiveFields_UnionDedupesAndOrders(t *testing.T) {
	videoID := uuid.New()
	listID := uuid.New()

	schemaA := uuid.New()
	schemaB := uuid.New()

	f1 := &domain.Field{BaseModel: domain.BaseModel{ID: uuid.New()}, ListID: listID, Name: "F1", Type: domain.FieldTypeText}
	f2 := &domain.Field{BaseModel: domain.BaseModel{ID: uuid.New()}, ListID: listID, Name: "F2", Type: domain.FieldTypeText}
	f3 := &domain.Field{BaseModel: domain.BaseModel{ID: uuid.New()}, ListID: listID, Name: "F3", Type: domain.FieldTypeText}

	videoRepo := &MockVideoRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
			return &domain.Video{BaseModel: domain.BaseModel{ID: videoID}, ListID: listID}, nil
		},
	}
	tagRepo := &MockTagRepository{
		FindBoundByVideoFunc: func(ctx context.Context, id uuid.UUID) ([]*domain.Tag, error) {
			return []*domain.Tag{
				{BaseModel: domain.BaseModel{ID: uuid.New()}, ListID: listID, SchemaID: &schemaA},
				{BaseModel: domain.BaseModel{ID: uuid.New()}, ListID: listID, SchemaID: &schemaB},
			}, nil
		},
	}
	schemaRepo := &MockSchemaRepository{
		FindSchemaFieldsBySchemasFunc: func(ctx context.Context, schemaIDs []uuid.UUID) ([]*domain.SchemaField, error) {
			assert.ElementsMatch(t, []uuid.UUID{schemaA, schemaB}, schemaIDs)
			// Schema A holds {F1@2, F2@5}; schema B holds {F2@1, F3@3}.
			// F2 appears twice and must keep the lower display order.
			return []*domain.SchemaField{
				{SchemaID: schemaA, FieldID: f1.ID, DisplayOrder: 2, Field: f1},
				{SchemaID: schemaA, FieldID: f2.ID, DisplayOrder: 5, Field: f2},
				{SchemaID: schemaB, FieldID: f2.ID, DisplayOrder: 1, Field: f2},
				{SchemaID: schemaB, FieldID: f3.ID, DisplayOrder: 3, Field: f3},
			}, nil
		},
	}

	svc := newSchemaService(schemaRepo, &MockFieldRepository{}, tagRepo, videoRepo, &MockListRepository{})

	fields, err := svc.EffectiveFields(context.Background(), videoID)

	require.NoError(t, err)
	require.Len(t, fields, 3, "union deduplicates the shared field")
	assert.Equal(t, "F2", fields[0].Name, "F2 keeps its minimum display order 1")
	assert.Equal(t, "F1", fields[1].Name)
	assert.Equal(t, "F3", fields[2].Name)
}

func TestEffectiveFields_NoBoundSchemasIsEmpty(t *testing.T) {
	videoID := uuid.New()

	videoRepo := &MockVideoRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
			return &domain.Video{BaseModel: domain.BaseModel{ID: videoID}}, nil
		},
	}
	tagRepo := &MockTagRepository{
		FindBoundByVideoFunc: func(ctx context.Context, id uuid.UUID) ([]*domain.Tag, error) {
			// Tags exist but none carries a schema binding
			return []*domain.Tag{{BaseModel: domain.BaseModel{ID: uuid.New()}}}, nil
		},
	}

	svc := newSchemaService(&MockSchemaRepository{}, &MockFieldRepository{}, tagRepo, videoRepo, &MockListRepository{})

	fields, err := svc.EffectiveFields(context.Background(), videoID)

	require.NoError(t, err)
	assert.Empty(t, fields)
}

func TestEffectiveFields_TieBreaksByFieldID(t *testing.T) {
	videoID := uuid.New()
	listID := uuid.New()
	schemaA := uuid.New()

	low := &domain.Field{BaseModel: domain.BaseModel{ID: uuid.MustParse("00000000-0000-0000-0000-000000000001")}, ListID: listID, Name: "Low", Type: domain.FieldTypeText}
	high := &domain.Field{BaseModel: domain.BaseModel{ID: uuid.MustParse("ffffffff-ffff-ffff-ffff-ffffffffffff")}, ListID: listID, Name: "High", Type: domain.FieldTypeText}

	videoRepo := &MockVideoRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
			return &domain.Video{BaseModel: domain.BaseModel{ID: videoID}, ListID: listID}, nil
		},
	}
	tagRepo := &MockTagRepository{
		FindBoundByVideoFunc: func(ctx context.Context, id uuid.UUID) ([]*domain.Tag, error) {
			return []*domain.Tag{{BaseModel: domain.BaseModel{ID: uuid.New()}, ListID: listID, SchemaID: &schemaA}}, nil
		},
	}
	schemaRepo := &MockSchemaRepository{
		FindSchemaFieldsBySchemasFunc: func(ctx context.Context, schemaIDs []uuid.UUID) ([]*domain.SchemaField, error) {
			return []*domain.SchemaField{
				{SchemaID: schemaA, FieldID: high.ID, DisplayOrder: 1, Field: high},
				{SchemaID: schemaA, FieldID: low.ID, DisplayOrder: 1, Field: low},
			}, nil
		},
	}

	svc := newSchemaService(schemaRepo, &MockFieldRepository{}, tagRepo, videoRepo, &MockListRepository{})

	fields, err := svc.EffectiveFields(context.Background(), videoID)

	require.NoError(t, err)
	require.Len(t, fields, 2)
	assert.Equal(t, "Low", fields[0].Name)
	assert.Equal(t, "High", fields[1].Name)
}
