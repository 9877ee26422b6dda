package models

import (
	"time"

	"github.com/google/uuid"
)

// Material is a named, reusable PBR material definition scoped to a project.
// Materials are an independent catalog: model placements carry their own
// inline override blob and do not reference this table.
type Material struct {
	ID           uuid.UUID         `json:"id,omitempty"`
	Name         string            `json:"name"`
	ProjectID    uuid.UUID         `json:"project_id"`
	UserID       string            `json:"user_id"`
	MaterialData string            `json:"material_data"`         // JSON string of PBR properties
	TextureIDs   map[string]string `json:"texture_ids,omitempty"` // texture slot -> storage object id
	CreatedAt    time.Time         `json:"created_at"`
}

// MaterialPatch carries the updatable fields of a material. A nil field is
// left unchanged.
type MaterialPatch struct {
	Name         *string
	MaterialData *string
	TextureIDs   map[string]string
}
