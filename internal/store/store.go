// Package store defines the durable record store boundary: four collections
// (projects, models, materials, collaborators), each indexed by owning user
// and, where applicable, by parent project.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"sceneforge/api-gateway/models"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// Store is the durable record store collaborator. Implementations guarantee
// uniqueness on record id per collection.
type Store interface {
	ProjectStore
	ModelStore
	MaterialStore
	CollaboratorStore
}

// ProjectStore persists project records.
type ProjectStore interface {
	GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error)
	// ListProjectsByUser returns the user's projects, newest LastModified first.
	ListProjectsByUser(ctx context.Context, userID string) ([]models.Project, error)
	// ListPublicProjects returns projects flagged public, newest first.
	ListPublicProjects(ctx context.Context) ([]models.Project, error)
	// SearchProjects matches projects by name substring among the user's own
	// projects and public ones.
	SearchProjects(ctx context.Context, userID, query string) ([]models.Project, error)
	InsertProject(ctx context.Context, p models.Project) error
	// UpdateProject applies the non-nil patch fields and sets last_modified.
	UpdateProject(ctx context.Context, id uuid.UUID, patch models.ProjectPatch, lastModified time.Time) error
	// DeleteProjectCascade deletes the project's models, materials and
	// collaborators, then the project itself, children first.
	DeleteProjectCascade(ctx context.Context, id uuid.UUID) error
}

// ModelStore persists model placements.
type ModelStore interface {
	GetModel(ctx context.Context, id uuid.UUID) (*models.Model, error)
	ListModelsByProject(ctx context.Context, projectID uuid.UUID) ([]models.Model, error)
	InsertModel(ctx context.Context, m models.Model) error
	UpdateModel(ctx context.Context, id uuid.UUID, patch models.ModelPatch) error
	DeleteModel(ctx context.Context, id uuid.UUID) error
}

// MaterialStore persists the per-project material catalog.
type MaterialStore interface {
	GetMaterial(ctx context.Context, id uuid.UUID) (*models.Material, error)
	ListMaterialsByProject(ctx context.Context, projectID uuid.UUID) ([]models.Material, error)
	InsertMaterial(ctx context.Context, m models.Material) error
	UpdateMaterial(ctx context.Context, id uuid.UUID, patch models.MaterialPatch) error
	DeleteMaterial(ctx context.Context, id uuid.UUID) error
}

// CollaboratorStore persists project collaborator records. At most one record
// exists per (project, user) pair.
type CollaboratorStore interface {
	GetCollaborator(ctx context.Context, projectID uuid.UUID, userID string) (*models.Collaborator, error)
	ListCollaboratorsByProject(ctx context.Context, projectID uuid.UUID) ([]models.Collaborator, error)
	UpsertCollaborator(ctx context.Context, c models.Collaborator) error
	DeleteCollaborator(ctx context.Context, projectID uuid.UUID, userID string) error
}
