package scene

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"sceneforge/api-gateway/internal/store"
	"sceneforge/api-gateway/models"
)

// ErrInvalidRole is returned when an invite names an unknown role.
var ErrInvalidRole = errors.New("invalid collaborator role")

// CollaboratorService manages the collaborator list of a project. A
// collaborator record grants read access to a non-public project; the role on
// the record is informational and never widens write access.
type CollaboratorService struct {
	store store.Store
	gate  *Gate
	log   *logrus.Logger
}

// NewCollaboratorService wires a CollaboratorService.
func NewCollaboratorService(st store.Store, gate *Gate, log *logrus.Logger) *CollaboratorService {
	return &CollaboratorService{store: st, gate: gate, log: log}
}

// List returns the project's collaborators. The caller must be able to read
// the project; otherwise the outcome is the same as for a missing project.
func (s *CollaboratorService) List(ctx context.Context, callerID string, projectID uuid.UUID) ([]models.Collaborator, error) {
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
	return s.store.ListCollaboratorsByProject(ctx, projectID)
}

// Invite records a collaborator on the project, project owner only. Inviting
// a user who already collaborates replaces the previous record.
func (s *CollaboratorService) Invite(ctx context.Context, callerID string, projectID uuid.UUID, userID string, role models.CollaboratorRole) (*models.Collaborator, error) {
	if !isAuthenticated(callerID) {
		return nil, ErrUnauthenticated
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}
	if err := s.requireProjectOwnership(ctx, callerID, projectID); err != nil {
		return nil, err
	}

	c := models.Collaborator{
		ID:        uuid.New(),
		ProjectID: projectID,
		UserID:    userID,
		Role:      role,
		InvitedBy: callerID,
		JoinedAt:  time.Now().UTC(),
	}
	if err := s.store.UpsertCollaborator(ctx, c); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"project_id": projectID,
		"user_id":    userID,
		"role":       role,
		"invited_by": callerID,
	}).Info("Collaborator invited")
	return &c, nil
}

// Remove deletes the collaborator record, project owner only.
func (s *CollaboratorService) Remove(ctx context.Context, callerID string, projectID uuid.UUID, userID string) error {
	if !isAuthenticated(callerID) {
		return ErrUnauthenticated
	}
	if err := s.requireProjectOwnership(ctx, callerID, projectID); err != nil {
		return err
	}
	if err := s.store.DeleteCollaborator(ctx, projectID, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrAccessDenied
		}
		return err
	}
	return nil
}

func (s *CollaboratorService) requireProjectOwnership(ctx context.Context, callerID string, projectID uuid.UUID) error {
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
