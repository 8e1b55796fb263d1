package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"watchlist-api/internal/cache"
	"watchlist-api/internal/dto"
	"watchlist-api/internal/repository"
	"watchlist-api/internal/response"
)

// mostUsedFieldsLimit caps the most-used-fields report
const mostUsedFieldsLimit = 10

// AnalyticsService defines the interface for the usage reports computed over
// a list's fields and schemas
type AnalyticsService interface {
	MostUsedFields(ctx context.Context, listID uuid.UUID) ([]dto.FieldUsageEntry, error)
	UnusedSchemas(ctx context.Context, listID uuid.UUID) ([]dto.UnusedSchemaEntry, error)
	FieldCoverage(ctx context.Context, listID uuid.UUID) ([]dto.FieldCoverageEntry, error)
	SchemaEffectiveness(ctx context.Context, listID uuid.UUID) ([]dto.SchemaEffectivenessEntry, error)
}

// analyticsServiceImpl is the implementation of AnalyticsService
type analyticsServiceImpl struct {
	analyticsRepo repository.AnalyticsRepository
	schemaRepo    repository.SchemaRepository
	listRepo      repository.ListRepository
	cache         *cache.AnalyticsCache
}

// NewAnalyticsService creates a new instance of AnalyticsService. The cache
// may be nil; reports are then computed on every call.
func NewAnalyticsService(
	analyticsRepo repository.AnalyticsRepository,
	schemaRepo repository.SchemaRepository,
	listRepo repository.ListRepository,
	analyticsCache *cache.AnalyticsCache,
) AnalyticsService {
	return &analyticsServiceImpl{
		analyticsRepo: analyticsRepo,
		schemaRepo:    schemaRepo,
		listRepo:      listRepo,
		cache:         analyticsCache,
	}
}

func (s *analyticsServiceImpl) checkList(ctx context.Context, listID uuid.UUID) error {
	if _, err := s.listRepo.FindByID(ctx, listID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("List not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to fetch list", err.Error())
	}
	return nil
}

func cacheKey(report string, listID uuid.UUID) string {
	return fmt.Sprintf("analytics:%s:%s", report, listID)
}

// MostUsedFields returns the ten fields with the most stored values, most
// used first. Ties order by field name so repeated calls agree.
func (s *analyticsServiceImpl) MostUsedFields(ctx context.Context, listID uuid.UUID) ([]dto.FieldUsageEntry, error) {
	if err := s.checkList(ctx, listID); err != nil {
		return nil, err
	}

	key := cacheKey("most-used-fields", listID)
	var cached []dto.FieldUsageEntry
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	counts, err := s.analyticsRepo.FieldValueCounts(ctx, listID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to aggregate field usage", err.Error())
	}
	videoCount, err := s.analyticsRepo.CountVideos(ctx, listID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to count videos", err.Error())
	}

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].ValueCount != counts[j].ValueCount {
			return counts[i].ValueCount > counts[j].ValueCount
		}
		return counts[i].FieldName < counts[j].FieldName
	})
	if len(counts) > mostUsedFieldsLimit {
		counts = counts[:mostUsedFieldsLimit]
	}

	entries := make([]dto.FieldUsageEntry, len(counts))
	for i, c := range counts {
		entries[i] = dto.FieldUsageEntry{
			FieldID:    c.FieldID,
			Name:       c.FieldName,
			ValueCount: c.ValueCount,
			Percentage: percentage(c.ValueCount, videoCount),
		}
	}

	s.cache.Set(ctx, key, entries)
	return entries, nil
}

// UnusedSchemas reports schemas that do nothing for the list right now:
// either no tag is bound to them, or tags are bound but none of the member
// fields has a single value
func (s *analyticsServiceImpl) UnusedSchemas(ctx context.Context, listID uuid.UUID) ([]dto.UnusedSchemaEntry, error) {
	if err := s.checkList(ctx, listID); err != nil {
		return nil, err
	}

	key := cacheKey("unused-schemas", listID)
	var cached []dto.UnusedSchemaEntry
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	bindings, err := s.analyticsRepo.SchemaBindingCounts(ctx, listID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to aggregate schema bindings", err.Error())
	}
	valueCounts, err := s.analyticsRepo.SchemaValueCounts(ctx, listID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to aggregate schema values", err.Error())
	}
	valuesBySchema := make(map[uuid.UUID]int64, len(valueCounts))
	for _, vc := range valueCounts {
		valuesBySchema[vc.SchemaID] = vc.ValueCount
	}

	entries := []dto.UnusedSchemaEntry{}
	for _, b := range bindings {
		switch {
		case b.TagCount == 0:
			entries = append(entries, dto.UnusedSchemaEntry{
				SchemaID: b.SchemaID, Name: b.SchemaName, Reason: dto.UnusedReasonNoBindings,
			})
		case valuesBySchema[b.SchemaID] == 0:
			entries = append(entries, dto.UnusedSchemaEntry{
				SchemaID: b.SchemaID, Name: b.SchemaName, Reason: dto.UnusedReasonNoValues,
			})
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	s.cache.Set(ctx, key, entries)
	return entries, nil
}

// FieldCoverage reports, per field, the share of the list's videos carrying a
// value for it, worst coverage first. An empty list yields zero percent for
// every field.
func (s *analyticsServiceImpl) FieldCoverage(ctx context.Context, listID uuid.UUID) ([]dto.FieldCoverageEntry, error) {
	if err := s.checkList(ctx, listID); err != nil {
		return nil, err
	}

	key := cacheKey("field-coverage", listID)
	var cached []dto.FieldCoverageEntry
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	counts, err := s.analyticsRepo.FieldValueCounts(ctx, listID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to aggregate field usage", err.Error())
	}
	videoCount, err := s.analyticsRepo.CountVideos(ctx, listID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to count videos", err.Error())
	}

	entries := make([]dto.FieldCoverageEntry, len(counts))
	for i, c := range counts {
		entries[i] = dto.FieldCoverageEntry{
			FieldID:    c.FieldID,
			Name:       c.FieldName,
			Percentage: percentage(c.ValueCount, videoCount),
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Percentage != entries[j].Percentage {
			return entries[i].Percentage < entries[j].Percentage
		}
		return entries[i].Name < entries[j].Name
	})

	s.cache.Set(ctx, key, entries)
	return entries, nil
}

// SchemaEffectiveness reports how completely each schema is filled in across
// the videos it applies to, most effective first. Schemas that apply to no
// video or contain no fields are omitted; there is nothing to measure.
func (s *analyticsServiceImpl) SchemaEffectiveness(ctx context.Context, listID uuid.UUID) ([]dto.SchemaEffectivenessEntry, error) {
	if err := s.checkList(ctx, listID); err != nil {
		return nil, err
	}

	key := cacheKey("schema-effectiveness", listID)
	var cached []dto.SchemaEffectivenessEntry
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	bindings, err := s.analyticsRepo.SchemaBindingCounts(ctx, listID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to aggregate schema bindings", err.Error())
	}

	entries := []dto.SchemaEffectivenessEntry{}
	for _, b := range bindings {
		members, err := s.schemaRepo.FindSchemaFields(ctx, b.SchemaID)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch schema fields", err.Error())
		}
		if len(members) == 0 {
			continue
		}
		videoIDs, err := s.analyticsRepo.VideoIDsBoundToSchema(ctx, b.SchemaID)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to resolve schema videos", err.Error())
		}
		if len(videoIDs) == 0 {
			continue
		}

		fieldIDs := make([]uuid.UUID, len(members))
		for i, m := range members {
			fieldIDs[i] = m.FieldID
		}
		filled, err := s.analyticsRepo.CountValuesForVideosAndFields(ctx, videoIDs, fieldIDs)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to count schema values", err.Error())
		}

		avg := float64(filled) / float64(len(videoIDs))
		entries = append(entries, dto.SchemaEffectivenessEntry{
			SchemaID:        b.SchemaID,
			Name:            b.SchemaName,
			VideoCount:      int64(len(videoIDs)),
			FieldCount:      len(members),
			AvgFilledFields: avg,
			Percentage:      avg / float64(len(members)) * 100,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Percentage != entries[j].Percentage {
			return entries[i].Percentage > entries[j].Percentage
		}
		return entries[i].Name < entries[j].Name
	})

	s.cache.Set(ctx, key, entries)
	return entries, nil
}

// percentage computes part over whole as a percent, zero when the whole is
// empty
func percentage(part, whole int64) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
