package repository

import (
	"context"

	"gorm.io/gorm"
)

// TxManager runs a function inside a single database transaction. Cascade
// deletes are written as explicit transaction scripts in the service layer
// (children first), so services need a way to scope several repository calls
// to one transaction.
type TxManager interface {
	Do(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// gormTxManager is the GORM implementation of TxManager
type gormTxManager struct {
	db *gorm.DB
}

// NewTxManager creates a new TxManager backed by the given database
func NewTxManager(db *gorm.DB) TxManager {
	return &gormTxManager{db: db}
}

// Do runs fn inside a transaction, rolling back on error
func (m *gormTxManager) Do(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return m.db.WithContext(ctx).Transaction(fn)
}
