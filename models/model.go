package models

import (
	"time"

	"github.com/google/uuid"
)

// Model represents a model placement inside a project scene. The binary asset
// itself lives in the blob store; FileID references it.
type Model struct {
	ID        uuid.UUID `json:"id,omitempty"`
	Name      string    `json:"name"`
	ProjectID uuid.UUID `json:"project_id"`
	UserID    string    `json:"user_id"`
	FileID    string    `json:"file_id"`
	FileType  string    `json:"file_type"` // "gltf", "glb", "obj", "fbx", ...
	FileSize  int64     `json:"file_size"`
	Position  []float64 `json:"position"` // [x, y, z]
	Rotation  []float64 `json:"rotation"` // [x, y, z]
	Scale     []float64 `json:"scale"`    // [x, y, z]
	Visible   bool      `json:"visible"`
	Materials *string   `json:"materials,omitempty"` // JSON string of per-placement material overrides
	CreatedAt time.Time `json:"created_at"`
}

// ModelWithURL is a Model augmented with a resolved URL for its asset.
type ModelWithURL struct {
	Model
	FileURL string `json:"file_url"`
}

// ModelPatch carries the updatable fields of a model placement. A nil field is
// left unchanged.
type ModelPatch struct {
	Name      *string
	Position  []float64
	Rotation  []float64
	Scale     []float64
	Visible   *bool
	Materials *string
}
