package domain

import "github.com/google/uuid"

// Video represents a bookmarked video within a list
type Video struct {
	BaseModel
	ListID uuid.UUID    `gorm:"type:uuid;not null;index:idx_videos_list_id" json:"list_id"`
	URL    string       `gorm:"type:text;not null" json:"url"`
	Title  string       `gorm:"type:varchar(500);not null" json:"title"`
	Note   string       `gorm:"type:text" json:"note"`
	Tags   []Tag        `gorm:"many2many:video_tags" json:"tags,omitempty"`
	Values []FieldValue `gorm:"foreignKey:VideoID" json:"values,omitempty"`
}

// TableName specifies the table name for Video
func (Video) TableName() string {
	return "videos"
}
