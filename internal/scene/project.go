// Package scene is the persistence and access-control core of the service:
// projects, model placements, the material catalog and collaborator records,
// with a single ownership-based write rule applied uniformly. The boundary is
// programmatic; callers pass an explicit caller id resolved upstream, where
// an empty id means "unauthenticated".
package scene

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"sceneforge/api-gateway/internal/storage"
	"sceneforge/api-gateway/internal/store"
	"sceneforge/api-gateway/models"
)

// ProjectService owns project records and the delete cascade to dependent
// models, materials and collaborators.
type ProjectService struct {
	store store.Store
	blobs storage.BlobStore
	gate  *Gate
	log   *logrus.Logger
}

// NewProjectService wires a ProjectService.
func NewProjectService(st store.Store, blobs storage.BlobStore, gate *Gate, log *logrus.Logger) *ProjectService {
	return &ProjectService{store: st, blobs: blobs, gate: gate, log: log}
}

// List returns the caller's projects, newest LastModified first, with
// resolved thumbnail URLs. An unauthenticated caller gets an empty list, not
// an error.
func (s *ProjectService) List(ctx context.Context, callerID string) ([]models.ProjectWithThumbnail, error) {
	if !isAuthenticated(callerID) {
		return []models.ProjectWithThumbnail{}, nil
	}
	projects, err := s.store.ListProjectsByUser(ctx, callerID)
	if err != nil {
		return nil, err
	}
	return s.withThumbnails(ctx, projects)
}

// ListPublic returns projects flagged public. No caller is required.
func (s *ProjectService) ListPublic(ctx context.Context) ([]models.ProjectWithThumbnail, error) {
	projects, err := s.store.ListPublicProjects(ctx)
	if err != nil {
		return nil, err
	}
	return s.withThumbnails(ctx, projects)
}

// Search matches projects by name among the caller's own and public ones.
// Unauthenticated callers get an empty list.
func (s *ProjectService) Search(ctx context.Context, callerID, query string) ([]models.ProjectWithThumbnail, error) {
	if !isAuthenticated(callerID) {
		return []models.ProjectWithThumbnail{}, nil
	}
	projects, err := s.store.SearchProjects(ctx, callerID, query)
	if err != nil {
		return nil, err
	}
	return s.withThumbnails(ctx, projects)
}

// Get returns the project when the caller owns it, collaborates on it, or it
// is public. Any other outcome, a missing record included, is ErrAccessDenied.
// Anonymous callers always get ErrAccessDenied, public projects included;
// ListPublic is the anonymous surface.
func (s *ProjectService) Get(ctx context.Context, callerID string, projectID uuid.UUID) (*models.ProjectWithThumbnail, error) {
	if !isAuthenticated(callerID) {
		return nil, ErrAccessDenied
	}
	project, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrAccessDenied
		}
		return nil, err
	}

	ok, err := s.gate.CanRead(ctx, project, callerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAccessDenied
	}

	out := models.ProjectWithThumbnail{Project: *project}
	if project.Thumbnail != nil {
		url, err := s.blobs.ResolveURL(ctx, *project.Thumbnail)
		if err != nil {
			return nil, err
		}
		out.ThumbnailURL = &url
	}
	return &out, nil
}

// Create inserts a project owned by the caller with the default scene
// configuration.
func (s *ProjectService) Create(ctx context.Context, callerID, name string, description *string) (*models.Project, error) {
	if !isAuthenticated(callerID) {
		return nil, ErrUnauthenticated
	}

	now := time.Now().UTC()
	project := models.Project{
		ID:           uuid.New(),
		Name:         name,
		Description:  description,
		UserID:       callerID,
		SceneData:    defaultSceneData(),
		LastModified: now,
		CreatedAt:    now,
	}
	if err := s.store.InsertProject(ctx, project); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"project_id": project.ID, "user_id": callerID}).Info("Project created")
	return &project, nil
}

// Update applies the non-nil patch fields and unconditionally refreshes
// LastModified. Only the strict owner may update; collaborators, editors
// included, are rejected with the same outcome as a missing record.
func (s *ProjectService) Update(ctx context.Context, callerID string, projectID uuid.UUID, patch models.ProjectPatch) error {
	if !isAuthenticated(callerID) {
		return ErrUnauthenticated
	}
	if err := s.requireOwnership(ctx, callerID, projectID); err != nil {
		return err
	}
	return s.store.UpdateProject(ctx, projectID, patch, time.Now().UTC())
}

// Delete removes the project and cascades to every model, material and
// collaborator record referencing it.
func (s *ProjectService) Delete(ctx context.Context, callerID string, projectID uuid.UUID) error {
	if !isAuthenticated(callerID) {
		return ErrUnauthenticated
	}
	if err := s.requireOwnership(ctx, callerID, projectID); err != nil {
		return err
	}
	if err := s.store.DeleteProjectCascade(ctx, projectID); err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{"project_id": projectID, "user_id": callerID}).Info("Project deleted")
	return nil
}

// GenerateUploadTarget returns a blob store capability for a client-side
// upload. Nothing links the capability to a later record; the client performs
// the transfer and references the resulting file id itself.
func (s *ProjectService) GenerateUploadTarget(ctx context.Context, callerID string) (*storage.UploadTarget, error) {
	if !isAuthenticated(callerID) {
		return nil, ErrUnauthenticated
	}
	return s.blobs.GenerateUploadTarget(ctx)
}

func (s *ProjectService) requireOwnership(ctx context.Context, callerID string, projectID uuid.UUID) error {
	project, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrAccessDenied
		}
		return err
	}
	if !canWrite(project.UserID, callerID) {
		return ErrAccessDenied
	}
	return nil
}

func (s *ProjectService) withThumbnails(ctx context.Context, projects []models.Project) ([]models.ProjectWithThumbnail, error) {
	out := make([]models.ProjectWithThumbnail, 0, len(projects))
	for _, p := range projects {
		item := models.ProjectWithThumbnail{Project: p}
		if p.Thumbnail != nil {
			url, err := s.blobs.ResolveURL(ctx, *p.Thumbnail)
			if err != nil {
				return nil, err
			}
			item.ThumbnailURL = &url
		}
		out = append(out, item)
	}
	return out, nil
}
