package dto

import "github.com/google/uuid"

// ImportColumn is one already-tokenized column of the import table. Values
// are aligned by row index across all columns.
type ImportColumn struct {
	Name   string   `json:"name" binding:"required,max=200"`
	Values []string `json:"values"`
}

// ImportRequest represents a bulk value import for one list. ItemIDs ties
// each row to an existing video; file parsing happened upstream.
type ImportRequest struct {
	SchemaName *string        `json:"schemaName" binding:"omitempty,max=200"`
	ItemIDs    []uuid.UUID    `json:"itemIds" binding:"required"`
	Columns    []ImportColumn `json:"columns" binding:"required"`
}

// ImportRowFailure describes why one cell kept its row from importing
type ImportRowFailure struct {
	Row     int    `json:"row"`
	Column  string `json:"column"`
	Message string `json:"message"`
}

// ImportResultResponse summarizes a bulk import: every row is accounted for
// as imported or failed, and each failure names its row, column and reason
type ImportResultResponse struct {
	FieldsCreated []FieldResponse    `json:"fieldsCreated"`
	FieldsReused  []FieldResponse    `json:"fieldsReused"`
	SchemaID      *uuid.UUID         `json:"schemaId,omitempty"`
	RowsTotal     int                `json:"rowsTotal"`
	RowsImported  int                `json:"rowsImported"`
	RowsFailed    int                `json:"rowsFailed"`
	ValuesWritten int                `json:"valuesWritten"`
	Failures      []ImportRowFailure `json:"failures"`
}
