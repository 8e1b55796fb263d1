package domain

import "github.com/google/uuid"

// List represents a bookmark list owned by a user. A list is the ownership
// scope for everything else: videos, tags, fields and schemas all belong to
// exactly one list and are removed when the list is removed.
type List struct {
	BaseModel
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index:idx_lists_owner_id" json:"owner_id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Videos      []Video   `gorm:"foreignKey:ListID" json:"videos,omitempty"`
	Tags        []Tag     `gorm:"foreignKey:ListID" json:"tags,omitempty"`
	Fields      []Field   `gorm:"foreignKey:ListID" json:"fields,omitempty"`
	Schemas     []Schema  `gorm:"foreignKey:ListID" json:"schemas,omitempty"`
}

// TableName specifies the table name for List
func (List) TableName() string {
	return "lists"
}
