package domain

import "github.com/google/uuid"

// Tag represents a list-scoped label attachable to videos. A tag may
// optionally bind to at most one schema; the binding is a plain reference,
// not ownership. Many tags may point at the same schema and a tag outlives
// the schema it points at (the reference is cleared, the tag survives).
type Tag struct {
	BaseModel
	ListID   uuid.UUID  `gorm:"type:uuid;not null;index:idx_tags_list_id" json:"list_id"`
	Name     string     `gorm:"type:varchar(100);not null" json:"name"`
	SchemaID *uuid.UUID `gorm:"type:uuid;index:idx_tags_schema_id" json:"schema_id,omitempty"`
	Schema   *Schema    `gorm:"foreignKey:SchemaID" json:"schema,omitempty"`
	Videos   []Video    `gorm:"many2many:video_tags" json:"videos,omitempty"`
}

// TableName specifies the table name for Tag
func (Tag) TableName() string {
	return "tags"
}
