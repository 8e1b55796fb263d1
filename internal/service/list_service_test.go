package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"watchlist-api/internal/domain"
	"watchlist-api/internal/dto"
	"watchlist-api/internal/response"
)

func newListService(
	listRepo *MockListRepository,
	videoRepo *MockVideoRepository,
	tagRepo *MockTagRepository,
	fieldRepo *MockFieldRepository,
	schemaRepo *MockSchemaRepository,
	valueRepo *MockValueRepository,
) ListService {
	return NewListService(listRepo, videoRepo, tagRepo, fieldRepo, schemaRepo, valueRepo, passthroughTxManager{}, zap.NewNop())
}

func TestCreateList_Success(t *testing.T) {
	ownerID := uuid.New()
	listRepo := &MockListRepository{
		CreateFunc: func(ctx context.Context, list *domain.List) error {
			list.ID = uuid.New()
			return nil
		},
	}
	svc := newListService(listRepo, &MockVideoRepository{}, &MockTagRepository{}, &MockFieldRepository{}, &MockSchemaRepository{}, &MockValueRepository{})

	resp, err := svc.CreateList(context.Background(), &dto.CreateListRequest{
		OwnerID: ownerID,
		Name:    "Documentaries",
	})

	require.NoError(t, err)
	assert.Equal(t, ownerID, resp.OwnerID)
	assert.Equal(t, "Documentaries", resp.Name)
	assert.NotEqual(t, uuid.Nil, resp.ListID)
}

func TestDeleteList_CascadeOrderChildrenFirst(t *testing.T) {
	listID := uuid.New()
	var calls []string

	listRepo := existingList(listID)
	listRepo.DeleteFunc = func(ctx context.Context, id uuid.UUID) error {
		calls = append(calls, "list")
		return nil
	}
	videoRepo := &MockVideoRepository{
		DeleteByListFunc: func(ctx context.Context, id uuid.UUID) error {
			calls = append(calls, "videos")
			return nil
		},
	}
	tagRepo := &MockTagRepository{
		DeleteVideoLinksByListFunc: func(ctx context.Context, id uuid.UUID) error {
			calls = append(calls, "links")
			return nil
		},
		DeleteByListFunc: func(ctx context.Context, id uuid.UUID) error {
			calls = append(calls, "tags")
			return nil
		},
	}
	schemaRepo := &MockSchemaRepository{
		DeleteSchemaFieldsByListFunc: func(ctx context.Context, id uuid.UUID) error {
			calls = append(calls, "memberships")
			return nil
		},
		DeleteByListFunc: func(ctx context.Context, id uuid.UUID) error {
			calls = append(calls, "schemas")
			return nil
		},
	}
	fieldRepo := &MockFieldRepository{
		DeleteByListFunc: func(ctx context.Context, id uuid.UUID) error {
			calls = append(calls, "fields")
			return nil
		},
	}
	valueRepo := &MockValueRepository{
		DeleteByListFunc: func(ctx context.Context, id uuid.UUID) error {
			calls = append(calls, "values")
			return nil
		},
	}

	svc := newListService(listRepo, videoRepo, tagRepo, fieldRepo, schemaRepo, valueRepo)
	require.NoError(t, svc.DeleteList(context.Background(), listID))

	assert.Equal(t, []string{"values", "links", "videos", "tags", "memberships", "schemas", "fields", "list"}, calls)
}

func TestDeleteList_RollsBackWhenCascadeFails(t *testing.T) {
	listID := uuid.New()

	listRepo := existingList(listID)
	listRepo.DeleteFunc = func(ctx context.Context, id uuid.UUID) error {
		t.Fatal("list must not be deleted when a child delete fails")
		return nil
	}
	videoRepo := &MockVideoRepository{
		DeleteByListFunc: func(ctx context.Context, id uuid.UUID) error {
			return errors.New("videos table is locked")
		},
	}

	svc := newListService(listRepo, videoRepo, &MockTagRepository{}, &MockFieldRepository{}, &MockSchemaRepository{}, &MockValueRepository{})
	err := svc.DeleteList(context.Background(), listID)

	var appErr *response.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, response.ErrCodeInternal, appErr.Code)
}

func TestDeleteList_NotFound(t *testing.T) {
	svc := newListService(&MockListRepository{}, &MockVideoRepository{}, &MockTagRepository{}, &MockFieldRepository{}, &MockSchemaRepository{}, &MockValueRepository{})

	err := svc.DeleteList(context.Background(), uuid.New())

	var appErr *response.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, response.ErrCodeNotFound, appErr.Code)
}

func TestAddVideo_ListNotFound(t *testing.T) {
	svc := newListService(&MockListRepository{}, &MockVideoRepository{}, &MockTagRepository{}, &MockFieldRepository{}, &MockSchemaRepository{}, &MockValueRepository{})

	_, err := svc.AddVideo(context.Background(), uuid.New(), &dto.CreateVideoRequest{
		URL:   "https://example.com/v/1",
		Title: "Some video",
	})

	var appErr *response.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, response.ErrCodeNotFound, appErr.Code)
}

func TestDeleteVideo_RemovesValuesAndLinksFirst(t *testing.T) {
	videoID := uuid.New()
	var calls []string

	videoRepo := &MockVideoRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
			return &domain.Video{BaseModel: domain.BaseModel{ID: videoID}}, nil
		},
		DeleteFunc: func(ctx context.Context, id uuid.UUID) error {
			calls = append(calls, "video")
			return nil
		},
	}
	tagRepo := &MockTagRepository{
		DeleteVideoLinksByVideoFunc: func(ctx context.Context, id uuid.UUID) error {
			calls = append(calls, "links")
			return nil
		},
	}
	valueRepo := &MockValueRepository{
		DeleteByVideoFunc: func(ctx context.Context, id uuid.UUID) error {
			calls = append(calls, "values")
			return nil
		},
	}

	svc := newListService(&MockListRepository{}, videoRepo, tagRepo, &MockFieldRepository{}, &MockSchemaRepository{}, valueRepo)
	require.NoError(t, svc.DeleteVideo(context.Background(), videoID))

	assert.Equal(t, []string{"values", "links", "video"}, calls)
}

func TestDeleteTag_KeepsFieldValues(t *testing.T) {
	tagID := uuid.New()
	var calls []string

	tagRepo := &MockTagRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Tag, error) {
			return &domain.Tag{BaseModel: domain.BaseModel{ID: tagID}}, nil
		},
		DeleteVideoLinksByTagFunc: func(ctx context.Context, id uuid.UUID) error {
			calls = append(calls, "links")
			return nil
		},
		DeleteFunc: func(ctx context.Context, id uuid.UUID) error {
			calls = append(calls, "tag")
			return nil
		},
	}
	valueRepo := &MockValueRepository{
		DeleteByVideoFunc: func(ctx context.Context, id uuid.UUID) error {
			t.Fatal("deleting a tag must not touch field values")
			return nil
		},
		DeleteByFieldFunc: func(ctx context.Context, id uuid.UUID) error {
			t.Fatal("deleting a tag must not touch field values")
			return nil
		},
	}

	svc := newListService(&MockListRepository{}, &MockVideoRepository{}, tagRepo, &MockFieldRepository{}, &MockSchemaRepository{}, valueRepo)
	require.NoError(t, svc.DeleteTag(context.Background(), tagID))

	assert.Equal(t, []string{"links", "tag"}, calls)
}

func TestTagVideo_CrossListIsConflict(t *testing.T) {
	videoRepo := &MockVideoRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
			return &domain.Video{BaseModel: domain.BaseModel{ID: id}, ListID: uuid.New()}, nil
		},
	}
	tagRepo := &MockTagRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Tag, error) {
			return &domain.Tag{BaseModel: domain.BaseModel{ID: id}, ListID: uuid.New()}, nil
		},
		AttachVideoFunc: func(ctx context.Context, tagID, videoID uuid.UUID) error {
			t.Fatal("cross-list tagging must not attach")
			return nil
		},
	}

	svc := newListService(&MockListRepository{}, videoRepo, tagRepo, &MockFieldRepository{}, &MockSchemaRepository{}, &MockValueRepository{})
	err := svc.TagVideo(context.Background(), uuid.New(), uuid.New())

	var appErr *response.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, response.ErrCodeConflict, appErr.Code)
}

func TestTagVideo_SameListAttaches(t *testing.T) {
	listID := uuid.New()
	videoID := uuid.New()
	tagID := uuid.New()
	attached := false

	videoRepo := &MockVideoRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
			return &domain.Video{BaseModel: domain.BaseModel{ID: videoID}, ListID: listID}, nil
		},
	}
	tagRepo := &MockTagRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Tag, error) {
			return &domain.Tag{BaseModel: domain.BaseModel{ID: tagID}, ListID: listID}, nil
		},
		AttachVideoFunc: func(ctx context.Context, gotTag, gotVideo uuid.UUID) error {
			attached = true
			assert.Equal(t, tagID, gotTag)
			assert.Equal(t, videoID, gotVideo)
			return nil
		},
	}

	svc := newListService(&MockListRepository{}, videoRepo, tagRepo, &MockFieldRepository{}, &MockSchemaRepository{}, &MockValueRepository{})
	require.NoError(t, svc.TagVideo(context.Background(), videoID, tagID))
	assert.True(t, attached)
}

func TestUntagVideo_AbsentLinkIsNoOp(t *testing.T) {
	videoID := uuid.New()
	videoRepo := &MockVideoRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
			return &domain.Video{BaseModel: domain.BaseModel{ID: videoID}}, nil
		},
	}

	svc := newListService(&MockListRepository{}, videoRepo, &MockTagRepository{}, &MockFieldRepository{}, &MockSchemaRepository{}, &MockValueRepository{})
	assert.NoError(t, svc.UntagVideo(context.Background(), videoID, uuid.New()))
}
