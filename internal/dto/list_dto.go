package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateListRequest represents the request to create a bookmark list
type CreateListRequest struct {
	OwnerID     uuid.UUID `json:"ownerId" binding:"required"`
	Name        string    `json:"name" binding:"required,max=255"`
	Description string    `json:"description"`
}

// ListResponse represents a bookmark list in API responses
type ListResponse struct {
	ListID      uuid.UUID `json:"listId"`
	OwnerID     uuid.UUID `json:"ownerId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateVideoRequest represents the request to bookmark a video
type CreateVideoRequest struct {
	URL   string `json:"url" binding:"required,url"`
	Title string `json:"title" binding:"required,max=500"`
	Note  string `json:"note"`
}

// VideoResponse represents a bookmarked video in API responses
type VideoResponse struct {
	VideoID   uuid.UUID `json:"videoId"`
	ListID    uuid.UUID `json:"listId"`
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateTagRequest represents the request to create a tag
type CreateTagRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// TagResponse represents a tag in API responses
type TagResponse struct {
	TagID     uuid.UUID  `json:"tagId"`
	ListID    uuid.UUID  `json:"listId"`
	Name      string     `json:"name"`
	SchemaID  *uuid.UUID `json:"schemaId,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
