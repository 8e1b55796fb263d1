package job

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"watchlist-api/internal/metrics"
	"watchlist-api/internal/repository"
)

// CleanupJob removes orphaned import fields: fields created by a bulk import
// whose value phase never completed, leaving a definition with no values and
// no schema membership. Only fields older than minAge are touched so a
// running import is never swept mid-flight.
type CleanupJob struct {
	fieldRepo repository.FieldRepository
	tx        repository.TxManager
	metrics   *metrics.Metrics
	minAge    time.Duration
	logger    *zap.Logger
}

// NewCleanupJob creates a new CleanupJob instance
func NewCleanupJob(
	fieldRepo repository.FieldRepository,
	tx repository.TxManager,
	m *metrics.Metrics,
	minAge time.Duration,
	logger *zap.Logger,
) *CleanupJob {
	return &CleanupJob{
		fieldRepo: fieldRepo,
		tx:        tx,
		metrics:   m,
		minAge:    minAge,
		logger:    logger,
	}
}

// Run executes the cleanup job. It satisfies cron.Job.
func (j *CleanupJob) Run() {
	ctx := context.Background()
	cutoff := time.Now().Add(-j.minAge)

	orphans, err := j.fieldRepo.FindOrphanImportFields(ctx, cutoff)
	if err != nil {
		j.logger.Error("Failed to find orphaned import fields", zap.Error(err))
		return
	}

	if len(orphans) == 0 {
		j.logger.Debug("No orphaned import fields found")
		return
	}

	successCount := 0
	failCount := 0
	for _, field := range orphans {
		fieldID := field.ID
		err := j.tx.Do(ctx, func(tx *gorm.DB) error {
			return j.fieldRepo.Tx(tx).Delete(ctx, fieldID)
		})
		if err != nil {
			j.logger.Error("Failed to delete orphaned field",
				zap.String("field_id", fieldID.String()),
				zap.String("name", field.Name),
				zap.Error(err),
			)
			failCount++
			continue
		}
		successCount++
	}

	if j.metrics != nil {
		j.metrics.AddOrphanFieldsReclaimed(successCount)
	}

	j.logger.Info("Cleanup job completed",
		zap.Int("total_orphans", len(orphans)),
		zap.Int("deleted", successCount),
		zap.Int("failed", failCount),
	)
}
