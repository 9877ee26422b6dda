package scene

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"sceneforge/api-gateway/internal/store"
	"sceneforge/api-gateway/models"
)

// AddMaterialInput carries the fields for adding a material to a project's
// catalog.
type AddMaterialInput struct {
	Name         string
	MaterialData string
	TextureIDs   map[string]string
}

// MaterialService owns the per-project catalog of reusable PBR material
// definitions. The catalog is deliberately independent of model placements:
// placements carry their own inline override blob and never reference it.
type MaterialService struct {
	store store.Store
	log   *logrus.Logger
}

// NewMaterialService wires a MaterialService.
func NewMaterialService(st store.Store, log *logrus.Logger) *MaterialService {
	return &MaterialService{store: st, log: log}
}

// List returns the project's materials. An unauthenticated caller gets an
// empty list; like model listing, any authenticated caller may list.
func (s *MaterialService) List(ctx context.Context, callerID string, projectID uuid.UUID) ([]models.Material, error) {
	if !isAuthenticated(callerID) {
		return []models.Material{}, nil
	}
	return s.store.ListMaterialsByProject(ctx, projectID)
}

// Add inserts a material owned by the caller.
func (s *MaterialService) Add(ctx context.Context, callerID string, projectID uuid.UUID, in AddMaterialInput) (*models.Material, error) {
	if !isAuthenticated(callerID) {
		return nil, ErrUnauthenticated
	}

	m := models.Material{
		ID:           uuid.New(),
		Name:         in.Name,
		ProjectID:    projectID,
		UserID:       callerID,
		MaterialData: in.MaterialData,
		TextureIDs:   in.TextureIDs,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.InsertMaterial(ctx, m); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"material_id": m.ID, "project_id": projectID, "user_id": callerID}).Info("Material added")
	return &m, nil
}

// Update applies the non-nil patch fields, creator only.
func (s *MaterialService) Update(ctx context.Context, callerID string, materialID uuid.UUID, patch models.MaterialPatch) error {
	if !isAuthenticated(callerID) {
		return ErrUnauthenticated
	}
	if err := s.requireOwnership(ctx, callerID, materialID); err != nil {
		return err
	}
	return s.store.UpdateMaterial(ctx, materialID, patch)
}

// Remove hard-deletes the material, creator only.
func (s *MaterialService) Remove(ctx context.Context, callerID string, materialID uuid.UUID) error {
	if !isAuthenticated(callerID) {
		return ErrUnauthenticated
	}
	if err := s.requireOwnership(ctx, callerID, materialID); err != nil {
		return err
	}
	return s.store.DeleteMaterial(ctx, materialID)
}

func (s *MaterialService) requireOwnership(ctx context.Context, callerID string, materialID uuid.UUID) error {
	m, err := s.store.GetMaterial(ctx, materialID)
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
