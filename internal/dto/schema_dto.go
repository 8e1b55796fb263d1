package dto

import (
	"time"

	"github.com/google/uuid"
)

// SchemaFieldInput names one field membership when creating a schema or
// adding a field to one
type SchemaFieldInput struct {
	FieldID       uuid.UUID `json:"fieldId" binding:"required"`
	DisplayOrder  int       `json:"displayOrder"`
	ShowOnSummary bool      `json:"showOnSummary"`
}

// CreateSchemaRequest represents the request to create a schema, empty or
// with an initial field set
type CreateSchemaRequest struct {
	Name        string             `json:"name" binding:"required,max=200"`
	Description string             `json:"description"`
	Fields      []SchemaFieldInput `json:"fields"`
}

// UpdateSchemaRequest represents the request to rename or re-describe a schema
type UpdateSchemaRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=200"`
	Description *string `json:"description"`
}

// SchemaFieldResponse represents one field membership in API responses
type SchemaFieldResponse struct {
	FieldID       uuid.UUID `json:"fieldId"`
	FieldName     string    `json:"fieldName"`
	FieldType     string    `json:"fieldType"`
	DisplayOrder  int       `json:"displayOrder"`
	ShowOnSummary bool      `json:"showOnSummary"`
}

// SchemaResponse represents a schema in API responses
type SchemaResponse struct {
	SchemaID    uuid.UUID             `json:"schemaId"`
	ListID      uuid.UUID             `json:"listId"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Fields      []SchemaFieldResponse `json:"fields"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   time.Time             `json:"updatedAt"`
}

// BindTagRequest represents the request to bind a tag to a schema
type BindTagRequest struct {
	SchemaID uuid.UUID `json:"schemaId" binding:"required"`
}
