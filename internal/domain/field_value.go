package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// TypedValue is a parsed field value with exactly one populated slot. Which
// slot is populated must match the owning field's type: rating uses Number,
// select and text use Text, boolean uses Bool.
type TypedValue struct {
	Number *float64 `json:"number,omitempty"`
	Text   *string  `json:"text,omitempty"`
	Bool   *bool    `json:"bool,omitempty"`
}

// NumberValue builds a TypedValue holding a number
func NumberValue(n float64) TypedValue {
	return TypedValue{Number: &n}
}

// TextValue builds a TypedValue holding text
func TextValue(s string) TypedValue {
	return TypedValue{Text: &s}
}

// BoolValue builds a TypedValue holding a boolean
func BoolValue(b bool) TypedValue {
	return TypedValue{Bool: &b}
}

// slotCount returns how many slots are populated
func (v TypedValue) slotCount() int {
	n := 0
	if v.Number != nil {
		n++
	}
	if v.Text != nil {
		n++
	}
	if v.Bool != nil {
		n++
	}
	return n
}

// ValidateForType checks the one-slot-populated invariant against a field
// type. A violation here is a programming error, not user input error.
func (v TypedValue) ValidateForType(ft FieldType) error {
	if c := v.slotCount(); c != 1 {
		return fmt.Errorf("typed value must populate exactly one slot, got %d", c)
	}
	switch ft {
	case FieldTypeRating:
		if v.Number == nil {
			return fmt.Errorf("rating value must populate the number slot")
		}
	case FieldTypeSelect, FieldTypeText:
		if v.Text == nil {
			return fmt.Errorf("%s value must populate the text slot", ft)
		}
	case FieldTypeBoolean:
		if v.Bool == nil {
			return fmt.Errorf("boolean value must populate the bool slot")
		}
	default:
		return fmt.Errorf("unknown field type %q", ft)
	}
	return nil
}

// FieldValue is the stored datum for one (video, field) pair. At most one row
// exists per pair; exactly one of the value columns is non-null.
type FieldValue struct {
	BaseModel
	VideoID     uuid.UUID `gorm:"type:uuid;not null;index:idx_field_values_video_id;uniqueIndex:uq_field_values_video_field,priority:1" json:"video_id"`
	FieldID     uuid.UUID `gorm:"type:uuid;not null;index:idx_field_values_field_id;uniqueIndex:uq_field_values_video_field,priority:2" json:"field_id"`
	NumberValue *float64  `gorm:"type:numeric" json:"number_value,omitempty"`
	TextValue   *string   `gorm:"type:text" json:"text_value,omitempty"`
	BoolValue   *bool     `gorm:"type:boolean" json:"bool_value,omitempty"`
	Field       *Field    `gorm:"foreignKey:FieldID" json:"field,omitempty"`
}

// TableName specifies the table name for FieldValue
func (FieldValue) TableName() string {
	return "field_values"
}

// Apply copies a typed value into the row's slots, clearing the others
func (fv *FieldValue) Apply(v TypedValue) {
	fv.NumberValue = v.Number
	fv.TextValue = v.Text
	fv.BoolValue = v.Bool
}

// Typed returns the row's slots as a TypedValue
func (fv *FieldValue) Typed() TypedValue {
	return TypedValue{Number: fv.NumberValue, Text: fv.TextValue, Bool: fv.BoolValue}
}
