package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"watchlist-api/internal/domain"
)

// models lists every domain model in migration order: parents before
// children so the foreign keys resolve
func models() []interface{} {
	return []interface{}{
		&domain.List{},
		&domain.Video{},
		&domain.Field{},
		&domain.Schema{},
		&domain.Tag{},
		&domain.SchemaField{},
		&domain.FieldValue{},
	}
}

// AutoMigrate runs GORM auto-migration for all domain models
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models()...); err != nil {
		return fmt.Errorf("failed to run auto-migration: %w", err)
	}
	return nil
}

// SafeAutoMigrate migrates each model on its own so a failure names the
// table that caused it. Existing tables only pick up schema differences.
func SafeAutoMigrate(db *gorm.DB, logger *zap.Logger) error {
	migrator := db.Migrator()

	for _, m := range models() {
		existed := migrator.HasTable(m)
		if err := db.AutoMigrate(m); err != nil {
			logger.Error("failed to migrate model",
				zap.Bool("table_existed", existed),
				zap.Error(err))
			return fmt.Errorf("failed to migrate %T: %w", m, err)
		}
		logger.Info("migrated model",
			zap.String("model", fmt.Sprintf("%T", m)),
			zap.Bool("was_existing", existed))
	}

	logger.Info("auto-migration completed", zap.Int("models", len(models())))
	return nil
}

// SafeAutoMigrateWithRetry retries SafeAutoMigrate with linear backoff; the
// database may still be warming up when the pod starts
func SafeAutoMigrateWithRetry(db *gorm.DB, logger *zap.Logger, maxRetries int) error {
	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err = SafeAutoMigrate(db, logger)
		if err == nil {
			return nil
		}
		if attempt < maxRetries {
			backoff := time.Duration(attempt) * time.Second
			logger.Warn("migration attempt failed, retrying",
				zap.Int("attempt", attempt),
				zap.Duration("backoff", backoff),
				zap.Error(err))
			time.Sleep(backoff)
		}
	}
	return fmt.Errorf("migration failed after %d attempts: %w", maxRetries, err)
}
