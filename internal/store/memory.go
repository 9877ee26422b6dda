package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"sceneforge/api-gateway/models"
)

// Memory is a mutex-guarded in-memory Store. It backs tests and local
// development. Unlike the PostgREST-backed store, the delete cascade here is
// atomic: the whole cascade happens under one lock.
type Memory struct {
	mu            sync.RWMutex
	projects      map[uuid.UUID]models.Project
	models        map[uuid.UUID]models.Model
	materials     map[uuid.UUID]models.Material
	collaborators map[uuid.UUID]models.Collaborator
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		projects:      make(map[uuid.UUID]models.Project),
		models:        make(map[uuid.UUID]models.Model),
		materials:     make(map[uuid.UUID]models.Material),
		collaborators: make(map[uuid.UUID]models.Collaborator),
	}
}

func (m *Memory) GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.projects[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (m *Memory) ListProjectsByUser(ctx context.Context, userID string) ([]models.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []models.Project{}
	for _, p := range m.projects {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sortProjectsNewestFirst(out)
	return out, nil
}

func (m *Memory) ListPublicProjects(ctx context.Context) ([]models.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []models.Project{}
	for _, p := range m.projects {
		if p.IsPublic != nil && *p.IsPublic {
			out = append(out, p)
		}
	}
	sortProjectsNewestFirst(out)
	return out, nil
}

func (m *Memory) SearchProjects(ctx context.Context, userID, query string) ([]models.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	query = strings.ToLower(query)
	out := []models.Project{}
	for _, p := range m.projects {
		visible := p.UserID == userID || (p.IsPublic != nil && *p.IsPublic)
		if visible && strings.Contains(strings.ToLower(p.Name), query) {
			out = append(out, p)
		}
	}
	sortProjectsNewestFirst(out)
	return out, nil
}

func (m *Memory) InsertProject(ctx context.Context, p models.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.projects[p.ID] = p
	return nil
}

func (m *Memory) UpdateProject(ctx context.Context, id uuid.UUID, patch models.ProjectPatch, lastModified time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.projects[id]
	if !ok {
		return ErrNotFound
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = patch.Description
	}
	if patch.SceneData != nil {
		p.SceneData = *patch.SceneData
	}
	if patch.Thumbnail != nil {
		p.Thumbnail = patch.Thumbnail
	}
	if patch.IsPublic != nil {
		p.IsPublic = patch.IsPublic
	}
	p.LastModified = lastModified
	m.projects[id] = p
	return nil
}

func (m *Memory) DeleteProjectCascade(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.projects[id]; !ok {
		return ErrNotFound
	}
	for mid, mdl := range m.models {
		if mdl.ProjectID == id {
			delete(m.models, mid)
		}
	}
	for mid, mat := range m.materials {
		if mat.ProjectID == id {
			delete(m.materials, mid)
		}
	}
	for cid, col := range m.collaborators {
		if col.ProjectID == id {
			delete(m.collaborators, cid)
		}
	}
	delete(m.projects, id)
	return nil
}

func (m *Memory) GetModel(ctx context.Context, id uuid.UUID) (*models.Model, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	mdl, ok := m.models[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &mdl, nil
}

func (m *Memory) ListModelsByProject(ctx context.Context, projectID uuid.UUID) ([]models.Model, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []models.Model{}
	for _, mdl := range m.models {
		if mdl.ProjectID == projectID {
			out = append(out, mdl)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *Memory) InsertModel(ctx context.Context, mdl models.Model) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.models[mdl.ID] = mdl
	return nil
}

func (m *Memory) UpdateModel(ctx context.Context, id uuid.UUID, patch models.ModelPatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	mdl, ok := m.models[id]
	if !ok {
		return ErrNotFound
	}
	if patch.Name != nil {
		mdl.Name = *patch.Name
	}
	if patch.Position != nil {
		mdl.Position = patch.Position
	}
	if patch.Rotation != nil {
		mdl.Rotation = patch.Rotation
	}
	if patch.Scale != nil {
		mdl.Scale = patch.Scale
	}
	if patch.Visible != nil {
		mdl.Visible = *patch.Visible
	}
	if patch.Materials != nil {
		mdl.Materials = patch.Materials
	}
	m.models[id] = mdl
	return nil
}

func (m *Memory) DeleteModel(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.models[id]; !ok {
		return ErrNotFound
	}
	delete(m.models, id)
	return nil
}

func (m *Memory) GetMaterial(ctx context.Context, id uuid.UUID) (*models.Material, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	mat, ok := m.materials[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &mat, nil
}

func (m *Memory) ListMaterialsByProject(ctx context.Context, projectID uuid.UUID) ([]models.Material, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []models.Material{}
	for _, mat := range m.materials {
		if mat.ProjectID == projectID {
			out = append(out, mat)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *Memory) InsertMaterial(ctx context.Context, mat models.Material) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.materials[mat.ID] = mat
	return nil
}

func (m *Memory) UpdateMaterial(ctx context.Context, id uuid.UUID, patch models.MaterialPatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	mat, ok := m.materials[id]
	if !ok {
		return ErrNotFound
	}
	if patch.Name != nil {
		mat.Name = *patch.Name
	}
	if patch.MaterialData != nil {
		mat.MaterialData = *patch.MaterialData
	}
	if patch.TextureIDs != nil {
		mat.TextureIDs = patch.TextureIDs
	}
	m.materials[id] = mat
	return nil
}

func (m *Memory) DeleteMaterial(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.materials[id]; !ok {
		return ErrNotFound
	}
	delete(m.materials, id)
	return nil
}

func (m *Memory) GetCollaborator(ctx context.Context, projectID uuid.UUID, userID string) (*models.Collaborator, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.collaborators {
		if c.ProjectID == projectID && c.UserID == userID {
			col := c
			return &col, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) ListCollaboratorsByProject(ctx context.Context, projectID uuid.UUID) ([]models.Collaborator, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []models.Collaborator{}
	for _, c := range m.collaborators {
		if c.ProjectID == projectID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].JoinedAt.Before(out[j].JoinedAt) })
	return out, nil
}

func (m *Memory) UpsertCollaborator(ctx context.Context, c models.Collaborator) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for cid, existing := range m.collaborators {
		if existing.ProjectID == c.ProjectID && existing.UserID == c.UserID {
			delete(m.collaborators, cid)
		}
	}
	m.collaborators[c.ID] = c
	return nil
}

func (m *Memory) DeleteCollaborator(ctx context.Context, projectID uuid.UUID, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for cid, c := range m.collaborators {
		if c.ProjectID == projectID && c.UserID == userID {
			delete(m.collaborators, cid)
			return nil
		}
	}
	return ErrNotFound
}

func sortProjectsNewestFirst(projects []models.Project) {
	sort.Slice(projects, func(i, j int) bool {
		return projects[i].LastModified.After(projects[j].LastModified)
	})
}
