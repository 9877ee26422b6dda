package models

import (
	"time"

	"github.com/google/uuid"
)

// Project represents the structure of a project in the database.
type Project struct {
	ID           uuid.UUID `json:"id,omitempty"`
	Name         string    `json:"name"`
	Description  *string   `json:"description,omitempty"` // Use a pointer for nullable TEXT fields
	UserID       string    `json:"user_id"`
	SceneData    string    `json:"scene_data"`          // JSON string of the scene configuration
	Thumbnail    *string   `json:"thumbnail,omitempty"` // Storage object id, resolved to a URL on read
	IsPublic     *bool     `json:"is_public,omitempty"`
	LastModified time.Time `json:"last_modified"`
	CreatedAt    time.Time `json:"created_at"`
}

// ProjectWithThumbnail is a Project augmented with a resolved thumbnail URL.
// ThumbnailURL is nil when the project has no thumbnail asset.
type ProjectWithThumbnail struct {
	Project
	ThumbnailURL *string `json:"thumbnail_url"`
}

// ProjectPatch carries the updatable fields of a project. A nil field is left
// unchanged; an omitted field is never reinterpreted as "set to null".
type ProjectPatch struct {
	Name        *string
	Description *string
	SceneData   *string
	Thumbnail   *string
	IsPublic    *bool
}
