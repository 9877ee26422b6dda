package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	postgrest "github.com/supabase-community/postgrest-go"
	supa "github.com/supabase-community/supabase-go"

	"sceneforge/api-gateway/models"
)

const (
	projectsTable      = "projects"
	modelsTable        = "models"
	materialsTable     = "materials"
	collaboratorsTable = "collaborators"
)

// Supabase implements Store on top of the Supabase PostgREST API. Eq filters
// on user_id and project_id stand in for the by-user and by-project indexes.
type Supabase struct {
	client *supa.Client
}

// NewSupabase returns a Store backed by the given Supabase client.
func NewSupabase(client *supa.Client) *Supabase {
	return &Supabase{client: client}
}

func (s *Supabase) GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	body, _, err := s.client.From(projectsTable).
		Select("*", "", false).
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("fetching project %s: %w", id, err)
	}
	return firstOf[models.Project](body)
}

func (s *Supabase) ListProjectsByUser(ctx context.Context, userID string) ([]models.Project, error) {
	body, _, err := s.client.From(projectsTable).
		Select("*", "", false).
		Eq("user_id", userID).
		Order("last_modified", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("listing projects for user %s: %w", userID, err)
	}
	return sliceOf[models.Project](body)
}

func (s *Supabase) ListPublicProjects(ctx context.Context) ([]models.Project, error) {
	body, _, err := s.client.From(projectsTable).
		Select("*", "", false).
		Eq("is_public", "true").
		Order("last_modified", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("listing public projects: %w", err)
	}
	return sliceOf[models.Project](body)
}

func (s *Supabase) SearchProjects(ctx context.Context, userID, query string) ([]models.Project, error) {
	body, _, err := s.client.From(projectsTable).
		Select("*", "", false).
		Or(fmt.Sprintf("user_id.eq.%s,is_public.is.true", userID), "").
		Ilike("name", "%"+query+"%").
		Order("last_modified", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("searching projects for %q: %w", query, err)
	}
	return sliceOf[models.Project](body)
}

func (s *Supabase) InsertProject(ctx context.Context, p models.Project) error {
	_, _, err := s.client.From(projectsTable).
		Insert(p, false, "", "minimal", "").
		Execute()
	if err != nil {
		return fmt.Errorf("inserting project %s: %w", p.ID, err)
	}
	return nil
}

func (s *Supabase) UpdateProject(ctx context.Context, id uuid.UUID, patch models.ProjectPatch, lastModified time.Time) error {
	update := map[string]interface{}{"last_modified": lastModified}
	if patch.Name != nil {
		update["name"] = *patch.Name
	}
	if patch.Description != nil {
		update["description"] = *patch.Description
	}
	if patch.SceneData != nil {
		update["scene_data"] = *patch.SceneData
	}
	if patch.Thumbnail != nil {
		update["thumbnail"] = *patch.Thumbnail
	}
	if patch.IsPublic != nil {
		update["is_public"] = *patch.IsPublic
	}

	_, _, err := s.client.From(projectsTable).
		Update(update, "minimal", "").
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return fmt.Errorf("updating project %s: %w", id, err)
	}
	return nil
}

// DeleteProjectCascade removes the project's dependent records before the
// project row. Children go first so an interrupted cascade never leaves
// models or materials pointing at a deleted project.
func (s *Supabase) DeleteProjectCascade(ctx context.Context, id uuid.UUID) error {
	for _, table := range []string{modelsTable, materialsTable, collaboratorsTable} {
		_, _, err := s.client.From(table).
			Delete("minimal", "").
			Eq("project_id", id.String()).
			Execute()
		if err != nil {
			return fmt.Errorf("deleting %s for project %s: %w", table, id, err)
		}
	}
	_, _, err := s.client.From(projectsTable).
		Delete("minimal", "").
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return fmt.Errorf("deleting project %s: %w", id, err)
	}
	return nil
}

func (s *Supabase) GetModel(ctx context.Context, id uuid.UUID) (*models.Model, error) {
	body, _, err := s.client.From(modelsTable).
		Select("*", "", false).
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("fetching model %s: %w", id, err)
	}
	return firstOf[models.Model](body)
}

func (s *Supabase) ListModelsByProject(ctx context.Context, projectID uuid.UUID) ([]models.Model, error) {
	body, _, err := s.client.From(modelsTable).
		Select("*", "", false).
		Eq("project_id", projectID.String()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("listing models for project %s: %w", projectID, err)
	}
	return sliceOf[models.Model](body)
}

func (s *Supabase) InsertModel(ctx context.Context, m models.Model) error {
	_, _, err := s.client.From(modelsTable).
		Insert(m, false, "", "minimal", "").
		Execute()
	if err != nil {
		return fmt.Errorf("inserting model %s: %w", m.ID, err)
	}
	return nil
}

func (s *Supabase) UpdateModel(ctx context.Context, id uuid.UUID, patch models.ModelPatch) error {
	update := map[string]interface{}{}
	if patch.Name != nil {
		update["name"] = *patch.Name
	}
	if patch.Position != nil {
		update["position"] = patch.Position
	}
	if patch.Rotation != nil {
		update["rotation"] = patch.Rotation
	}
	if patch.Scale != nil {
		update["scale"] = patch.Scale
	}
	if patch.Visible != nil {
		update["visible"] = *patch.Visible
	}
	if patch.Materials != nil {
		update["materials"] = *patch.Materials
	}
	if len(update) == 0 {
		return nil
	}

	_, _, err := s.client.From(modelsTable).
		Update(update, "minimal", "").
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return fmt.Errorf("updating model %s: %w", id, err)
	}
	return nil
}

func (s *Supabase) DeleteModel(ctx context.Context, id uuid.UUID) error {
	_, _, err := s.client.From(modelsTable).
		Delete("minimal", "").
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return fmt.Errorf("deleting model %s: %w", id, err)
	}
	return nil
}

func (s *Supabase) GetMaterial(ctx context.Context, id uuid.UUID) (*models.Material, error) {
	body, _, err := s.client.From(materialsTable).
		Select("*", "", false).
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("fetching material %s: %w", id, err)
	}
	return firstOf[models.Material](body)
}

func (s *Supabase) ListMaterialsByProject(ctx context.Context, projectID uuid.UUID) ([]models.Material, error) {
	body, _, err := s.client.From(materialsTable).
		Select("*", "", false).
		Eq("project_id", projectID.String()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("listing materials for project %s: %w", projectID, err)
	}
	return sliceOf[models.Material](body)
}

func (s *Supabase) InsertMaterial(ctx context.Context, m models.Material) error {
	_, _, err := s.client.From(materialsTable).
		Insert(m, false, "", "minimal", "").
		Execute()
	if err != nil {
		return fmt.Errorf("inserting material %s: %w", m.ID, err)
	}
	return nil
}

func (s *Supabase) UpdateMaterial(ctx context.Context, id uuid.UUID, patch models.MaterialPatch) error {
	update := map[string]interface{}{}
	if patch.Name != nil {
		update["name"] = *patch.Name
	}
	if patch.MaterialData != nil {
		update["material_data"] = *patch.MaterialData
	}
	if patch.TextureIDs != nil {
		update["texture_ids"] = patch.TextureIDs
	}
	if len(update) == 0 {
		return nil
	}

	_, _, err := s.client.From(materialsTable).
		Update(update, "minimal", "").
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return fmt.Errorf("updating material %s: %w", id, err)
	}
	return nil
}

func (s *Supabase) DeleteMaterial(ctx context.Context, id uuid.UUID) error {
	_, _, err := s.client.From(materialsTable).
		Delete("minimal", "").
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return fmt.Errorf("deleting material %s: %w", id, err)
	}
	return nil
}

func (s *Supabase) GetCollaborator(ctx context.Context, projectID uuid.UUID, userID string) (*models.Collaborator, error) {
	body, _, err := s.client.From(collaboratorsTable).
		Select("*", "", false).
		Eq("project_id", projectID.String()).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("fetching collaborator %s on project %s: %w", userID, projectID, err)
	}
	return firstOf[models.Collaborator](body)
}

func (s *Supabase) ListCollaboratorsByProject(ctx context.Context, projectID uuid.UUID) ([]models.Collaborator, error) {
	body, _, err := s.client.From(collaboratorsTable).
		Select("*", "", false).
		Eq("project_id", projectID.String()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("listing collaborators for project %s: %w", projectID, err)
	}
	return sliceOf[models.Collaborator](body)
}

func (s *Supabase) UpsertCollaborator(ctx context.Context, c models.Collaborator) error {
	// One record per (project, user); replace an existing invite.
	if err := s.DeleteCollaborator(ctx, c.ProjectID, c.UserID); err != nil {
		return err
	}
	_, _, err := s.client.From(collaboratorsTable).
		Insert(c, false, "", "minimal", "").
		Execute()
	if err != nil {
		return fmt.Errorf("inserting collaborator %s on project %s: %w", c.UserID, c.ProjectID, err)
	}
	return nil
}

func (s *Supabase) DeleteCollaborator(ctx context.Context, projectID uuid.UUID, userID string) error {
	_, _, err := s.client.From(collaboratorsTable).
		Delete("minimal", "").
		Eq("project_id", projectID.String()).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return fmt.Errorf("deleting collaborator %s on project %s: %w", userID, projectID, err)
	}
	return nil
}

// firstOf unmarshals a PostgREST response and returns its first row, or
// ErrNotFound when the result set is empty.
func firstOf[T any](body []byte) (*T, error) {
	rows, err := sliceOf[T](body)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

func sliceOf[T any](body []byte) ([]T, error) {
	var rows []T
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("unmarshalling response: %w", err)
	}
	return rows, nil
}
