package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"watchlist-api/internal/domain"
	"watchlist-api/internal/repository"
)

// Function-field mocks: each test fills in only the calls it expects.
// Unset functions return gorm.ErrRecordNotFound for lookups and nil for
// writes, so forgetting a stub surfaces as a not-found instead of a panic.

// passthroughTxManager runs the transaction body directly, without a real
// transaction. Repository mocks ignore the tx handle anyway.
type passthroughTxManager struct{}

func (passthroughTxManager) Do(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type MockListRepository struct {
	CreateFunc      func(ctx context.Context, list *domain.List) error
	FindByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.List, error)
	FindByOwnerFunc func(ctx context.Context, ownerID uuid.UUID) ([]*domain.List, error)
	UpdateFunc      func(ctx context.Context, list *domain.List) error
	DeleteFunc      func(ctx context.Context, id uuid.UUID) error
}

func (m *MockListRepository) Create(ctx context.Context, list *domain.List) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, list)
	}
	return nil
}

func (m *MockListRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.List, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockListRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.List, error) {
	if m.FindByOwnerFunc != nil {
		return m.FindByOwnerFunc(ctx, ownerID)
	}
	return nil, nil
}

func (m *MockListRepository) Update(ctx context.Context, list *domain.List) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, list)
	}
	return nil
}

func (m *MockListRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockListRepository) Tx(tx *gorm.DB) repository.ListRepository { return m }

type MockVideoRepository struct {
	CreateFunc       func(ctx context.Context, video *domain.Video) error
	FindByIDFunc     func(ctx context.Context, id uuid.UUID) (*domain.Video, error)
	FindByListFunc   func(ctx context.Context, listID uuid.UUID) ([]*domain.Video, error)
	FindByIDsFunc    func(ctx context.Context, ids []uuid.UUID) ([]*domain.Video, error)
	CountByListFunc  func(ctx context.Context, listID uuid.UUID) (int64, error)
	UpdateFunc       func(ctx context.Context, video *domain.Video) error
	DeleteFunc       func(ctx context.Context, id uuid.UUID) error
	DeleteByListFunc func(ctx context.Context, listID uuid.UUID) error
}

func (m *MockVideoRepository) Create(ctx context.Context, video *domain.Video) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, video)
	}
	return nil
}

func (m *MockVideoRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockVideoRepository) FindByList(ctx context.Context, listID uuid.UUID) ([]*domain.Video, error) {
	if m.FindByListFunc != nil {
		return m.FindByListFunc(ctx, listID)
	}
	return nil, nil
}

func (m *MockVideoRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Video, error) {
	if m.FindByIDsFunc != nil {
		return m.FindByIDsFunc(ctx, ids)
	}
	return nil, nil
}

func (m *MockVideoRepository) CountByList(ctx context.Context, listID uuid.UUID) (int64, error) {
	if m.CountByListFunc != nil {
		return m.CountByListFunc(ctx, listID)
	}
	return 0, nil
}

func (m *MockVideoRepository) Update(ctx context.Context, video *domain.Video) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, video)
	}
	return nil
}

func (m *MockVideoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockVideoRepository) DeleteByList(ctx context.Context, listID uuid.UUID) error {
	if m.DeleteByListFunc != nil {
		return m.DeleteByListFunc(ctx, listID)
	}
	return nil
}

func (m *MockVideoRepository) Tx(tx *gorm.DB) repository.VideoRepository { return m }

type MockTagRepository struct {
	CreateFunc                 func(ctx context.Context, tag *domain.Tag) error
	FindByIDFunc               func(ctx context.Context, id uuid.UUID) (*domain.Tag, error)
	FindByListFunc             func(ctx context.Context, listID uuid.UUID) ([]*domain.Tag, error)
	UpdateFunc                 func(ctx context.Context, tag *domain.Tag) error
	DeleteFunc                 func(ctx context.Context, id uuid.UUID) error
	DeleteByListFunc           func(ctx context.Context, listID uuid.UUID) error
	CountBySchemaFunc          func(ctx context.Context, schemaID uuid.UUID) (int64, error)
	ClearSchemaBindingFunc     func(ctx context.Context, schemaID uuid.UUID) error
	FindBoundByVideoFunc       func(ctx context.Context, videoID uuid.UUID) ([]*domain.Tag, error)
	AttachVideoFunc            func(ctx context.Context, tagID, videoID uuid.UUID) error
	DetachVideoFunc            func(ctx context.Context, tagID, videoID uuid.UUID) error
	DeleteVideoLinksByVideoFunc func(ctx context.Context, videoID uuid.UUID) error
	DeleteVideoLinksByTagFunc  func(ctx context.Context, tagID uuid.UUID) error
	DeleteVideoLinksByListFunc func(ctx context.Context, listID uuid.UUID) error
}

func (m *MockTagRepository) Create(ctx context.Context, tag *domain.Tag) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tag)
	}
	return nil
}

func (m *MockTagRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Tag, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockTagRepository) FindByList(ctx context.Context, listID uuid.UUID) ([]*domain.Tag, error) {
	if m.FindByListFunc != nil {
		return m.FindByListFunc(ctx, listID)
	}
	return nil, nil
}

func (m *MockTagRepository) Update(ctx context.Context, tag *domain.Tag) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tag)
	}
	return nil
}

func (m *MockTagRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockTagRepository) DeleteByList(ctx context.Context, listID uuid.UUID) error {
	if m.DeleteByListFunc != nil {
		return m.DeleteByListFunc(ctx, listID)
	}
	return nil
}

func (m *MockTagRepository) CountBySchema(ctx context.Context, schemaID uuid.UUID) (int64, error) {
	if m.CountBySchemaFunc != nil {
		return m.CountBySchemaFunc(ctx, schemaID)
	}
	return 0, nil
}

func (m *MockTagRepository) ClearSchemaBinding(ctx context.Context, schemaID uuid.UUID) error {
	if m.ClearSchemaBindingFunc != nil {
		return m.ClearSchemaBindingFunc(ctx, schemaID)
	}
	return nil
}

func (m *MockTagRepository) FindBoundByVideo(ctx context.Context, videoID uuid.UUID) ([]*domain.Tag, error) {
	if m.FindBoundByVideoFunc != nil {
		return m.FindBoundByVideoFunc(ctx, videoID)
	}
	return nil, nil
}

func (m *MockTagRepository) AttachVideo(ctx context.Context, tagID, videoID uuid.UUID) error {
	if m.AttachVideoFunc != nil {
		return m.AttachVideoFunc(ctx, tagID, videoID)
	}
	return nil
}

func (m *MockTagRepository) DetachVideo(ctx context.Context, tagID, videoID uuid.UUID) error {
	if m.DetachVideoFunc != nil {
		return m.DetachVideoFunc(ctx, tagID, videoID)
	}
	return nil
}

func (m *MockTagRepository) DeleteVideoLinksByVideo(ctx context.Context, videoID uuid.UUID) error {
	if m.DeleteVideoLinksByVideoFunc != nil {
		return m.DeleteVideoLinksByVideoFunc(ctx, videoID)
	}
	return nil
}

func (m *MockTagRepository) DeleteVideoLinksByTag(ctx context.Context, tagID uuid.UUID) error {
	if m.DeleteVideoLinksByTagFunc != nil {
		return m.DeleteVideoLinksByTagFunc(ctx, tagID)
	}
	return nil
}

func (m *MockTagRepository) DeleteVideoLinksByList(ctx context.Context, listID uuid.UUID) error {
	if m.DeleteVideoLinksByListFunc != nil {
		return m.DeleteVideoLinksByListFunc(ctx, listID)
	}
	return nil
}

func (m *MockTagRepository) Tx(tx *gorm.DB) repository.TagRepository { return m }

type MockFieldRepository struct {
	CreateFunc                func(ctx context.Context, field *domain.Field) error
	CreateBatchFunc           func(ctx context.Context, fields []*domain.Field) error
	FindByIDFunc              func(ctx context.Context, id uuid.UUID) (*domain.Field, error)
	FindByListFunc            func(ctx context.Context, listID uuid.UUID) ([]*domain.Field, error)
	FindByListAndNameFunc     func(ctx context.Context, listID uuid.UUID, name string) (*domain.Field, error)
	UpdateFunc                func(ctx context.Context, field *domain.Field) error
	DeleteFunc                func(ctx context.Context, id uuid.UUID) error
	DeleteByListFunc          func(ctx context.Context, listID uuid.UUID) error
	FindOrphanImportFieldsFunc func(ctx context.Context, cutoff time.Time) ([]*domain.Field, error)
}

func (m *MockFieldRepository) Create(ctx context.Context, field *domain.Field) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, field)
	}
	return nil
}

func (m *MockFieldRepository) CreateBatch(ctx context.Context, fields []*domain.Field) error {
	if m.CreateBatchFunc != nil {
		return m.CreateBatchFunc(ctx, fields)
	}
	return nil
}

func (m *MockFieldRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Field, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockFieldRepository) FindByList(ctx context.Context, listID uuid.UUID) ([]*domain.Field, error) {
	if m.FindByListFunc != nil {
		return m.FindByListFunc(ctx, listID)
	}
	return nil, nil
}

func (m *MockFieldRepository) FindByListAndName(ctx context.Context, listID uuid.UUID, name string) (*domain.Field, error) {
	if m.FindByListAndNameFunc != nil {
		return m.FindByListAndNameFunc(ctx, listID, name)
	}
	// The real repository reports "no such field" as (nil, nil)
	return nil, nil
}

func (m *MockFieldRepository) Update(ctx context.Context, field *domain.Field) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, field)
	}
	return nil
}

func (m *MockFieldRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockFieldRepository) DeleteByList(ctx context.Context, listID uuid.UUID) error {
	if m.DeleteByListFunc != nil {
		return m.DeleteByListFunc(ctx, listID)
	}
	return nil
}

func (m *MockFieldRepository) FindOrphanImportFields(ctx context.Context, cutoff time.Time) ([]*domain.Field, error) {
	if m.FindOrphanImportFieldsFunc != nil {
		return m.FindOrphanImportFieldsFunc(ctx, cutoff)
	}
	return nil, nil
}

func (m *MockFieldRepository) Tx(tx *gorm.DB) repository.FieldRepository { return m }

type MockSchemaRepository struct {
	CreateFunc                    func(ctx context.Context, schema *domain.Schema) error
	FindByIDFunc                  func(ctx context.Context, id uuid.UUID) (*domain.Schema, error)
	FindByListFunc                func(ctx context.Context, listID uuid.UUID) ([]*domain.Schema, error)
	UpdateFunc                    func(ctx context.Context, schema *domain.Schema) error
	DeleteFunc                    func(ctx context.Context, id uuid.UUID) error
	DeleteByListFunc              func(ctx context.Context, listID uuid.UUID) error
	AddFieldFunc                  func(ctx context.Context, schemaField *domain.SchemaField) error
	RemoveFieldFunc               func(ctx context.Context, schemaID, fieldID uuid.UUID) error
	FindSchemaFieldsFunc          func(ctx context.Context, schemaID uuid.UUID) ([]*domain.SchemaField, error)
	FindSchemaFieldsBySchemasFunc func(ctx context.Context, schemaIDs []uuid.UUID) ([]*domain.SchemaField, error)
	DeleteSchemaFieldsBySchemaFunc func(ctx context.Context, schemaID uuid.UUID) error
	DeleteSchemaFieldsByFieldFunc func(ctx context.Context, fieldID uuid.UUID) error
	DeleteSchemaFieldsByListFunc  func(ctx context.Context, listID uuid.UUID) error
}

func (m *MockSchemaRepository) Create(ctx context.Context, schema *domain.Schema) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, schema)
	}
	return nil
}

func (m *MockSchemaRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Schema, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockSchemaRepository) FindByList(ctx context.Context, listID uuid.UUID) ([]*domain.Schema, error) {
	if m.FindByListFunc != nil {
		return m.FindByListFunc(ctx, listID)
	}
	return nil, nil
}

func (m *MockSchemaRepository) Update(ctx context.Context, schema *domain.Schema) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, schema)
	}
	return nil
}

func (m *MockSchemaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockSchemaRepository) DeleteByList(ctx context.Context, listID uuid.UUID) error {
	if m.DeleteByListFunc != nil {
		return m.DeleteByListFunc(ctx, listID)
	}
	return nil
}

func (m *MockSchemaRepository) AddField(ctx context.Context, schemaField *domain.SchemaField) error {
	if m.AddFieldFunc != nil {
		return m.AddFieldFunc(ctx, schemaField)
	}
	return nil
}

func (m *MockSchemaRepository) RemoveField(ctx context.Context, schemaID, fieldID uuid.UUID) error {
	if m.RemoveFieldFunc != nil {
		return m.RemoveFieldFunc(ctx, schemaID, fieldID)
	}
	return nil
}

func (m *MockSchemaRepository) FindSchemaFields(ctx context.Context, schemaID uuid.UUID) ([]*domain.SchemaField, error) {
	if m.FindSchemaFieldsFunc != nil {
		return m.FindSchemaFieldsFunc(ctx, schemaID)
	}
	return nil, nil
}

func (m *MockSchemaRepository) FindSchemaFieldsBySchemas(ctx context.Context, schemaIDs []uuid.UUID) ([]*domain.SchemaField, error) {
	if m.FindSchemaFieldsBySchemasFunc != nil {
		return m.FindSchemaFieldsBySchemasFunc(ctx, schemaIDs)
	}
	return nil, nil
}

func (m *MockSchemaRepository) DeleteSchemaFieldsBySchema(ctx context.Context, schemaID uuid.UUID) error {
	if m.DeleteSchemaFieldsBySchemaFunc != nil {
		return m.DeleteSchemaFieldsBySchemaFunc(ctx, schemaID)
	}
	return nil
}

func (m *MockSchemaRepository) DeleteSchemaFieldsByField(ctx context.Context, fieldID uuid.UUID) error {
	if m.DeleteSchemaFieldsByFieldFunc != nil {
		return m.DeleteSchemaFieldsByFieldFunc(ctx, fieldID)
	}
	return nil
}

func (m *MockSchemaRepository) DeleteSchemaFieldsByList(ctx context.Context, listID uuid.UUID) error {
	if m.DeleteSchemaFieldsByListFunc != nil {
		return m.DeleteSchemaFieldsByListFunc(ctx, listID)
	}
	return nil
}

func (m *MockSchemaRepository) Tx(tx *gorm.DB) repository.SchemaRepository { return m }

type MockValueRepository struct {
	UpsertFunc              func(ctx context.Context, value *domain.FieldValue) error
	UpsertBatchFunc         func(ctx context.Context, values []*domain.FieldValue) error
	FindByVideoAndFieldFunc func(ctx context.Context, videoID, fieldID uuid.UUID) (*domain.FieldValue, error)
	FindByVideoFunc         func(ctx context.Context, videoID uuid.UUID) ([]*domain.FieldValue, error)
	DeleteFunc              func(ctx context.Context, videoID, fieldID uuid.UUID) error
	DeleteByFieldFunc       func(ctx context.Context, fieldID uuid.UUID) error
	DeleteByVideoFunc       func(ctx context.Context, videoID uuid.UUID) error
	DeleteByListFunc        func(ctx context.Context, listID uuid.UUID) error
}

func (m *MockValueRepository) Upsert(ctx context.Context, value *domain.FieldValue) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, value)
	}
	return nil
}

func (m *MockValueRepository) UpsertBatch(ctx context.Context, values []*domain.FieldValue) error {
	if m.UpsertBatchFunc != nil {
		return m.UpsertBatchFunc(ctx, values)
	}
	return nil
}

func (m *MockValueRepository) FindByVideoAndField(ctx context.Context, videoID, fieldID uuid.UUID) (*domain.FieldValue, error) {
	if m.FindByVideoAndFieldFunc != nil {
		return m.FindByVideoAndFieldFunc(ctx, videoID, fieldID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockValueRepository) FindByVideo(ctx context.Context, videoID uuid.UUID) ([]*domain.FieldValue, error) {
	if m.FindByVideoFunc != nil {
		return m.FindByVideoFunc(ctx, videoID)
	}
	return nil, nil
}

func (m *MockValueRepository) Delete(ctx context.Context, videoID, fieldID uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, videoID, fieldID)
	}
	return nil
}

func (m *MockValueRepository) DeleteByField(ctx context.Context, fieldID uuid.UUID) error {
	if m.DeleteByFieldFunc != nil {
		return m.DeleteByFieldFunc(ctx, fieldID)
	}
	return nil
}

func (m *MockValueRepository) DeleteByVideo(ctx context.Context, videoID uuid.UUID) error {
	if m.DeleteByVideoFunc != nil {
		return m.DeleteByVideoFunc(ctx, videoID)
	}
	return nil
}

func (m *MockValueRepository) DeleteByList(ctx context.Context, listID uuid.UUID) error {
	if m.DeleteByListFunc != nil {
		return m.DeleteByListFunc(ctx, listID)
	}
	return nil
}

func (m *MockValueRepository) Tx(tx *gorm.DB) repository.ValueRepository { return m }

type MockAnalyticsRepository struct {
	CountVideosFunc                   func(ctx context.Context, listID uuid.UUID) (int64, error)
	FieldValueCountsFunc              func(ctx context.Context, listID uuid.UUID) ([]repository.FieldValueCount, error)
	SchemaBindingCountsFunc           func(ctx context.Context, listID uuid.UUID) ([]repository.SchemaBindingCount, error)
	SchemaValueCountsFunc             func(ctx context.Context, listID uuid.UUID) ([]repository.SchemaValueCount, error)
	VideoIDsBoundToSchemaFunc         func(ctx context.Context, schemaID uuid.UUID) ([]uuid.UUID, error)
	CountValuesForVideosAndFieldsFunc func(ctx context.Context, videoIDs, fieldIDs []uuid.UUID) (int64, error)
}

func (m *MockAnalyticsRepository) CountVideos(ctx context.Context, listID uuid.UUID) (int64, error) {
	if m.CountVideosFunc != nil {
		return m.CountVideosFunc(ctx, listID)
	}
	return 0, nil
}

func (m *MockAnalyticsRepository) FieldValueCounts(ctx context.Context, listID uuid.UUID) ([]repository.FieldValueCount, error) {
	if m.FieldValueCountsFunc != nil {
		return m.FieldValueCountsFunc(ctx, listID)
	}
	return nil, nil
}

func (m *MockAnalyticsRepository) SchemaBindingCounts(ctx context.Context, listID uuid.UUID) ([]repository.SchemaBindingCount, error) {
	if m.SchemaBindingCountsFunc != nil {
		return m.SchemaBindingCountsFunc(ctx, listID)
	}
	return nil, nil
}

func (m *MockAnalyticsRepository) SchemaValueCounts(ctx context.Context, listID uuid.UUID) ([]repository.SchemaValueCount, error) {
	if m.SchemaValueCountsFunc != nil {
		return m.SchemaValueCountsFunc(ctx, listID)
	}
	return nil, nil
}

func (m *MockAnalyticsRepository) VideoIDsBoundToSchema(ctx context.Context, schemaID uuid.UUID) ([]uuid.UUID, error) {
	if m.VideoIDsBoundToSchemaFunc != nil {
		return m.VideoIDsBoundToSchemaFunc(ctx, schemaID)
	}
	return nil, nil
}

func (m *MockAnalyticsRepository) CountValuesForVideosAndFields(ctx context.Context, videoIDs, fieldIDs []uuid.UUID) (int64, error) {
	if m.CountValuesForVideosAndFieldsFunc != nil {
		return m.CountValuesForVideosAndFieldsFunc(ctx, videoIDs, fieldIDs)
	}
	return 0, nil
}
