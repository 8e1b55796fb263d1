package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"watchlist-api/internal/codec"
	"watchlist-api/internal/domain"
	"watchlist-api/internal/dto"
	"watchlist-api/internal/inference"
	"watchlist-api/internal/repository"
	"watchlist-api/internal/response"
)

// ImportService defines the interface for bulk value import. Callers hand in
// already-tokenized columns; type inference, field binding and value parsing
// happen here.
type ImportService interface {
	Import(ctx context.Context, listID uuid.UUID, req *dto.ImportRequest) (*dto.ImportResultResponse, error)
}

// importServiceImpl is the implementation of ImportService
type importServiceImpl struct {
	listRepo   repository.ListRepository
	videoRepo  repository.VideoRepository
	fieldRepo  repository.FieldRepository
	schemaRepo repository.SchemaRepository
	valueRepo  repository.ValueRepository
	tx         repository.TxManager
	logger     *zap.Logger
}

// NewImportService creates a new instance of ImportService
func NewImportService(
	listRepo repository.ListRepository,
	videoRepo repository.VideoRepository,
	fieldRepo repository.FieldRepository,
	schemaRepo repository.SchemaRepository,
	valueRepo repository.ValueRepository,
	tx repository.TxManager,
	logger *zap.Logger,
) ImportService {
	return &importServiceImpl{
		listRepo:   listRepo,
		videoRepo:  videoRepo,
		fieldRepo:  fieldRepo,
		schemaRepo: schemaRepo,
		valueRepo:  valueRepo,
		tx:         tx,
		logger:     logger,
	}
}

// boundColumn pairs an import column with the field its values parse against
type boundColumn struct {
	column dto.ImportColumn
	field  *domain.Field
	reused bool
}

// Import runs a bulk import in two phases. Phase one resolves each column to
// a field, reusing an existing field when the name matches case-insensitively
// and otherwise creating one from the inferred type; the optional schema is
// created here too. That phase commits on its own, so the definitions survive
// even if value persistence fails afterwards. Phase two parses every cell
// through the value codec and writes the rows that parsed cleanly; a bad cell
// fails its own row and nothing else.
func (s *importServiceImpl) Import(ctx context.Context, listID uuid.UUID, req *dto.ImportRequest) (*dto.ImportResultResponse, error) {
	if _, err := s.listRepo.FindByID(ctx, listID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("List not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch list", err.Error())
	}

	if len(req.Columns) == 0 {
		return nil, response.NewValidationError("Import requires at least one column", "")
	}
	if len(req.ItemIDs) == 0 {
		return nil, response.NewValidationError("Import requires at least one row", "")
	}
	seen := make(map[string]bool, len(req.Columns))
	for _, col := range req.Columns {
		if len(col.Values) != len(req.ItemIDs) {
			return nil, response.NewValidationError(
				fmt.Sprintf("Column %q has %d values but %d rows were given", col.Name, len(col.Values), len(req.ItemIDs)), "")
		}
		key := strings.ToLower(col.Name)
		if seen[key] {
			return nil, response.NewValidationError(fmt.Sprintf("Duplicate column name %q", col.Name), "")
		}
		seen[key] = true
	}

	bound, schemaID, err := s.bindColumns(ctx, listID, req)
	if err != nil {
		return nil, err
	}

	result := &dto.ImportResultResponse{
		SchemaID:  schemaID,
		RowsTotal: len(req.ItemIDs),
		Failures:  []dto.ImportRowFailure{},
	}
	for _, bc := range bound {
		if bc.reused {
			result.FieldsReused = append(result.FieldsReused, *toFieldResponse(bc.field))
		} else {
			result.FieldsCreated = append(result.FieldsCreated, *toFieldResponse(bc.field))
		}
	}

	s.persistValues(ctx, req, bound, result)

	s.logger.Info("import finished",
		zap.String("listId", listID.String()),
		zap.Int("rowsTotal", result.RowsTotal),
		zap.Int("rowsImported", result.RowsImported),
		zap.Int("rowsFailed", result.RowsFailed),
		zap.Int("fieldsCreated", len(result.FieldsCreated)),
		zap.Int("valuesWritten", result.ValuesWritten))
	return result, nil
}

// bindColumns resolves every column to a field and optionally creates the
// grouping schema, all in one committed transaction
func (s *importServiceImpl) bindColumns(ctx context.Context, listID uuid.UUID, req *dto.ImportRequest) ([]*boundColumn, *uuid.UUID, error) {
	bound := make([]*boundColumn, 0, len(req.Columns))
	var toCreate []*domain.Field

	for _, col := range req.Columns {
		existing, err := s.fieldRepo.FindByListAndName(ctx, listID, col.Name)
		if err != nil {
			return nil, nil, response.NewAppError(response.ErrCodeInternal, "Failed to look up field", err.Error())
		}
		if existing != nil {
			// An existing field wins over inference: its type and config
			// decide how the column parses
			bound = append(bound, &boundColumn{column: col, field: existing, reused: true})
			continue
		}

		ft, config, err := inference.InferColumn(col.Values)
		if err != nil {
			return nil, nil, response.NewValidationError(
				fmt.Sprintf("Cannot infer a type for column %q", col.Name), err.Error())
		}
		field := &domain.Field{
			ListID: listID,
			Name:   col.Name,
			Type:   ft,
			Origin: domain.FieldOriginImport,
			Config: datatypes.NewJSONType(config),
		}
		toCreate = append(toCreate, field)
		bound = append(bound, &boundColumn{column: col, field: field})
	}

	var schemaID *uuid.UUID
	err := s.tx.Do(ctx, func(tx *gorm.DB) error {
		if err := s.fieldRepo.Tx(tx).CreateBatch(ctx, toCreate); err != nil {
			return err
		}
		if req.SchemaName == nil {
			return nil
		}
		schema := &domain.Schema{
			ListID: listID,
			Name:   *req.SchemaName,
		}
		for i, bc := range bound {
			schema.Fields = append(schema.Fields, domain.SchemaField{
				FieldID:      bc.field.ID,
				DisplayOrder: i,
			})
		}
		if err := s.schemaRepo.Tx(tx).Create(ctx, schema); err != nil {
			return err
		}
		schemaID = &schema.ID
		return nil
	})
	if err != nil {
		return nil, nil, response.NewAppError(response.ErrCodeInternal, "Failed to create import fields", err.Error())
	}
	return bound, schemaID, nil
}

// persistValues parses and writes the cell values row by row. A row either
// imports completely or not at all; its failures are recorded and the
// remaining rows proceed.
func (s *importServiceImpl) persistValues(ctx context.Context, req *dto.ImportRequest, bound []*boundColumn, result *dto.ImportResultResponse) {
	videos, err := s.videoRepo.FindByIDs(ctx, req.ItemIDs)
	if err != nil {
		// Definitions are already committed; report every row as failed
		// rather than erroring the whole call
		for row := range req.ItemIDs {
			result.Failures = append(result.Failures, dto.ImportRowFailure{
				Row: row, Message: "failed to resolve videos: " + err.Error(),
			})
		}
		result.RowsFailed = len(req.ItemIDs)
		return
	}
	known := make(map[uuid.UUID]bool, len(videos))
	for _, v := range videos {
		known[v.ID] = true
	}

	for row, videoID := range req.ItemIDs {
		if !known[videoID] {
			result.Failures = append(result.Failures, dto.ImportRowFailure{
				Row: row, Message: fmt.Sprintf("video %s not found", videoID),
			})
			result.RowsFailed++
			continue
		}

		var rowValues []*domain.FieldValue
		rowOK := true
		for _, bc := range bound {
			typed, err := codec.Parse(bc.column.Values[row], bc.field)
			if err != nil {
				result.Failures = append(result.Failures, dto.ImportRowFailure{
					Row: row, Column: bc.column.Name, Message: err.Error(),
				})
				rowOK = false
				continue
			}
			if typed == nil {
				// Blank cell, nothing to store
				continue
			}
			value := &domain.FieldValue{VideoID: videoID, FieldID: bc.field.ID}
			value.Apply(*typed)
			rowValues = append(rowValues, value)
		}
		if !rowOK {
			result.RowsFailed++
			continue
		}

		if err := s.valueRepo.UpsertBatch(ctx, rowValues); err != nil {
			result.Failures = append(result.Failures, dto.ImportRowFailure{
				Row: row, Message: "failed to write values: " + err.Error(),
			})
			result.RowsFailed++
			continue
		}
		result.RowsImported++
		result.ValuesWritten += len(rowValues)
	}
}
