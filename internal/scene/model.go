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

// AddModelInput carries the fields for placing a model in a project. Nil
// transform vectors take the identity placement defaults.
type AddModelInput struct {
	Name     string
	FileID   string
	FileType string
	FileSize int64
	Position []float64
	Rotation []float64
	Scale    []float64
}

// ModelService owns model placements: a transform, a visibility flag and an
// inline material-override blob per placed asset.
type ModelService struct {
	store store.Store
	blobs storage.BlobStore
	log   *logrus.Logger
}

// NewModelService wires a ModelService.
func NewModelService(st store.Store, blobs storage.BlobStore, log *logrus.Logger) *ModelService {
	return &ModelService{store: st, blobs: blobs, log: log}
}

// List returns the project's models with resolved asset URLs. An
// unauthenticated caller gets an empty list. Any authenticated caller may
// list; parent project visibility is not re-checked here.
func (s *ModelService) List(ctx context.Context, callerID string, projectID uuid.UUID) ([]models.ModelWithURL, error) {
	if !isAuthenticated(callerID) {
		return []models.ModelWithURL{}, nil
	}
	placements, err := s.store.ListModelsByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	out := make([]models.ModelWithURL, 0, len(placements))
	for _, m := range placements {
		url, err := s.blobs.ResolveURL(ctx, m.FileID)
		if err != nil {
			return nil, err
		}
		out = append(out, models.ModelWithURL{Model: m, FileURL: url})
	}
	return out, nil
}

// Add places a model owned by the caller. The project id is taken as given:
// neither its existence nor the caller's access to it is verified. Transform
// defaults are position [0,0,0], rotation [0,0,0], scale [1,1,1]; placements
// start visible.
func (s *ModelService) Add(ctx context.Context, callerID string, projectID uuid.UUID, in AddModelInput) (*models.Model, error) {
	if !isAuthenticated(callerID) {
		return nil, ErrUnauthenticated
	}

	m := models.Model{
		ID:        uuid.New(),
		Name:      in.Name,
		ProjectID: projectID,
		UserID:    callerID,
		FileID:    in.FileID,
		FileType:  in.FileType,
		FileSize:  in.FileSize,
		Position:  orDefault(in.Position, []float64{0, 0, 0}),
		Rotation:  orDefault(in.Rotation, []float64{0, 0, 0}),
		Scale:     orDefault(in.Scale, []float64{1, 1, 1}),
		Visible:   true,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.InsertModel(ctx, m); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"model_id": m.ID, "project_id": projectID, "user_id": callerID}).Info("Model added")
	return &m, nil
}

// Update applies the non-nil patch fields. Only the placement's creator may
// update; anyone else gets the same outcome as a missing record.
func (s *ModelService) Update(ctx context.Context, callerID string, modelID uuid.UUID, patch models.ModelPatch) error {
	if !isAuthenticated(callerID) {
		return ErrUnauthenticated
	}
	if err := s.requireOwnership(ctx, callerID, modelID); err != nil {
		return err
	}
	return s.store.UpdateModel(ctx, modelID, patch)
}

// Remove hard-deletes the placement. The stored binary asset is left to the
// blob store.
func (s *ModelService) Remove(ctx context.Context, callerID string, modelID uuid.UUID) error {
	if !isAuthenticated(callerID) {
		return ErrUnauthenticated
	}
	if err := s.requireOwnership(ctx, callerID, modelID); err != nil {
		return err
	}
	return s.store.DeleteModel(ctx, modelID)
}

func (s *ModelService) requireOwnership(ctx context.Context, callerID string, modelID uuid.UUID) error {
	m, err := s.store.GetModel(ctx, modelID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrAccessDenied
		}
		return err
	}
	if !canWrite(m.UserID, callerID) {
		return ErrAccessDenied
	}
	return nil
}

func orDefault(v, def []float64) []float64 {
	if v == nil {
		return def
	}
	return v
}
