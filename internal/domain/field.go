package domain

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// FieldType represents the value type of a custom field
type FieldType string

// FieldType constants
const (
	FieldTypeRating  FieldType = "rating"
	FieldTypeSelect  FieldType = "select"
	FieldTypeBoolean FieldType = "boolean"
	FieldTypeText    FieldType = "text"
)

// IsValidFieldType reports whether ft is one of the four supported field types
func IsValidFieldType(ft FieldType) bool {
	switch ft {
	case FieldTypeRating, FieldTypeSelect, FieldTypeBoolean, FieldTypeText:
		return true
	default:
		return false
	}
}

// FieldOrigin records how a field came into existence
type FieldOrigin string

const (
	// FieldOriginUser marks fields defined explicitly through the API
	FieldOriginUser FieldOrigin = "user"
	// FieldOriginImport marks fields created by bulk-import type inference
	FieldOriginImport FieldOrigin = "import"
)

// Field represents a typed metadata slot owned by a list. The field type is
// immutable after creation; only the configuration payload may be edited, and
// only within the same type.
type Field struct {
	BaseModel
	ListID uuid.UUID                       `gorm:"type:uuid;not null;index:idx_fields_list_id" json:"list_id"`
	Name   string                          `gorm:"type:varchar(200);not null" json:"name"`
	Type   FieldType                       `gorm:"type:varchar(20);not null" json:"type"`
	Origin FieldOrigin                     `gorm:"type:varchar(20);not null;default:'user'" json:"origin"`
	Config datatypes.JSONType[FieldConfig] `gorm:"type:jsonb" json:"config"`
}

// TableName specifies the table name for Field
func (Field) TableName() string {
	return "fields"
}

// TypeConfig returns the decoded configuration payload
func (f *Field) TypeConfig() FieldConfig {
	return f.Config.Data()
}
