package domain

import "github.com/google/uuid"

// Schema represents a named, ordered bundle of fields owned by a list.
// Membership is carried by SchemaField join rows. Schemas are bound to tags;
// deleting a schema that still has bound tags is a conflict, never a cascade.
type Schema struct {
	BaseModel
	ListID      uuid.UUID     `gorm:"type:uuid;not null;index:idx_schemas_list_id" json:"list_id"`
	Name        string        `gorm:"type:varchar(200);not null" json:"name"`
	Description string        `gorm:"type:text" json:"description"`
	Fields      []SchemaField `gorm:"foreignKey:SchemaID" json:"fields,omitempty"`
}

// TableName specifies the table name for Schema
func (Schema) TableName() string {
	return "schemas"
}

// SchemaField is the join row between a schema and a field, carrying the
// per-schema display metadata. A field may appear in any number of schemas.
type SchemaField struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SchemaID      uuid.UUID `gorm:"type:uuid;not null;index:idx_schema_fields_schema_id;uniqueIndex:uq_schema_fields_schema_field,priority:1" json:"schema_id"`
	FieldID       uuid.UUID `gorm:"type:uuid;not null;index:idx_schema_fields_field_id;uniqueIndex:uq_schema_fields_schema_field,priority:2" json:"field_id"`
	DisplayOrder  int       `gorm:"type:int;not null;default:0" json:"display_order"`
	ShowOnSummary bool      `gorm:"type:boolean;not null;default:false" json:"show_on_summary"`
	Field         *Field    `gorm:"foreignKey:FieldID" json:"field,omitempty"`
}

// TableName specifies the table name for SchemaField
func (SchemaField) TableName() string {
	return "schema_fields"
}
