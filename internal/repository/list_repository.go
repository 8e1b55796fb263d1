package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"watchlist-api/internal/domain"
)

// ListRepository defines the interface for bookmark list data access
type ListRepository interface {
	Create(ctx context.Context, list *domain.List) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.List, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.List, error)
	Update(ctx context.Context, list *domain.List) error
	Delete(ctx context.Context, id uuid.UUID) error
	Tx(tx *gorm.DB) ListRepository
}

// listRepositoryImpl is the GORM implementation of ListRepository
type listRepositoryImpl struct {
	db *gorm.DB
}

// NewListRepository creates a new instance of ListRepository
func NewListRepository(db *gorm.DB) ListRepository {
	return &listRepositoryImpl{db: db}
}

// Tx returns a repository bound to the given transaction
func (r *listRepositoryImpl) Tx(tx *gorm.DB) ListRepository {
	return &listRepositoryImpl{db: tx}
}

// Create creates a new list
func (r *listRepositoryImpl) Create(ctx context.Context, list *domain.List) error {
	return r.db.WithContext(ctx).Create(list).Error
}

// FindByID finds a list by ID
func (r *listRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.List, error) {
	var list domain.List
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&list).Error; err != nil {
		return nil, err
	}
	return &list, nil
}

// FindByOwner finds all lists of an owner, ordered by name
func (r *listRepositoryImpl) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.List, error) {
	var lists []*domain.List
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("name ASC").
		Find(&lists).Error; err != nil {
		return nil, err
	}
	return lists, nil
}

// Update updates a list
func (r *listRepositoryImpl) Update(ctx context.Context, list *domain.List) error {
	return r.db.WithContext(ctx).Save(list).Error
}

// Delete deletes the list row only; the service layer cascades through the
// list's children first, inside the same transaction
func (r *listRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.List{}, id).Error
}
