package dto

import (
	"time"

	"github.com/google/uuid"

	"watchlist-api/internal/domain"
)

// FieldConfigPayload carries the type-specific configuration of a field in
// requests. Only the keys matching the field's type are read.
type FieldConfigPayload struct {
	Max       *int     `json:"max,omitempty"`       // rating
	Options   []string `json:"options,omitempty"`   // select
	MaxLength *int     `json:"maxLength,omitempty"` // text
}

// CreateFieldRequest represents the request to define a new field
type CreateFieldRequest struct {
	Name   string              `json:"name" binding:"required,max=200"`
	Type   string              `json:"type" binding:"required,oneof=rating select boolean text"`
	Config *FieldConfigPayload `json:"config"`
}

// UpdateFieldRequest represents the request to edit a field. The field type
// is immutable; only name and configuration can change.
type UpdateFieldRequest struct {
	Name   *string             `json:"name" binding:"omitempty,max=200"`
	Config *FieldConfigPayload `json:"config"`
}

// FieldResponse represents a field in API responses
type FieldResponse struct {
	FieldID   uuid.UUID          `json:"fieldId"`
	ListID    uuid.UUID          `json:"listId"`
	Name      string             `json:"name"`
	Type      string             `json:"type"`
	Origin    string             `json:"origin"`
	Config    domain.FieldConfig `json:"config"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// SetValueRequest represents the request to set one field value on a video.
// The raw text goes through the same codec as bulk import.
type SetValueRequest struct {
	Value string `json:"value" binding:"required"`
}

// ValueResponse represents a stored field value in API responses
type ValueResponse struct {
	VideoID     uuid.UUID `json:"videoId"`
	FieldID     uuid.UUID `json:"fieldId"`
	FieldName   string    `json:"fieldName,omitempty"`
	NumberValue *float64  `json:"numberValue,omitempty"`
	TextValue   *string   `json:"textValue,omitempty"`
	BoolValue   *bool     `json:"boolValue,omitempty"`
}
