package dto

import "github.com/google/uuid"

// FieldUsageEntry is one row of the most-used-fields report
type FieldUsageEntry struct {
	FieldID    uuid.UUID `json:"fieldId"`
	Name       string    `json:"name"`
	ValueCount int64     `json:"valueCount"`
	Percentage float64   `json:"percentage"`
}

// Unused schema reasons. The two cases call for different remediation:
// unbinding a dead template versus filling in data for a live one.
const (
	UnusedReasonNoBindings = "no-bindings"
	UnusedReasonNoValues   = "no-values"
)

// UnusedSchemaEntry is one row of the unused-schemas report
type UnusedSchemaEntry struct {
	SchemaID uuid.UUID `json:"schemaId"`
	Name     string    `json:"name"`
	Reason   string    `json:"reason"`
}

// FieldCoverageEntry is one row of the field-coverage report, sorted worst
// coverage first
type FieldCoverageEntry struct {
	FieldID    uuid.UUID `json:"fieldId"`
	Name       string    `json:"name"`
	Percentage float64   `json:"percentage"`
}

// SchemaEffectivenessEntry is one row of the schema-effectiveness report
type SchemaEffectivenessEntry struct {
	SchemaID        uuid.UUID `json:"schemaId"`
	Name            string    `json:"name"`
	VideoCount      int64     `json:"videoCount"`
	FieldCount      int       `json:"fieldCount"`
	AvgFilledFields float64   `json:"avgFilledFields"`
	Percentage      float64   `json:"percentage"`
}
