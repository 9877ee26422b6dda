package scene

import (
	"context"
	"errors"

	"sceneforge/api-gateway/internal/store"
	"sceneforge/api-gateway/models"
)

// Gate evaluates the access-control predicates shared by every service.
// Mutations fail fast on these checks before any side effect.
type Gate struct {
	collaborators store.CollaboratorStore
}

// NewGate returns a Gate consulting the given collaborator records.
func NewGate(collaborators store.CollaboratorStore) *Gate {
	return &Gate{collaborators: collaborators}
}

func isAuthenticated(callerID string) bool {
	return callerID != ""
}

func isOwner(recordUserID, callerID string) bool {
	return callerID != "" && recordUserID == callerID
}

// canWrite is strict ownership. Collaborator roles are recorded but never
// grant write access, editors included.
func canWrite(recordUserID, callerID string) bool {
	return isOwner(recordUserID, callerID)
}

// CanRead reports whether the caller may see the project: its owner, a
// collaborator on it, or anyone when the project is public.
func (g *Gate) CanRead(ctx context.Context, p *models.Project, callerID string) (bool, error) {
	if isOwner(p.UserID, callerID) {
		return true, nil
	}
	if p.IsPublic != nil && *p.IsPublic {
		return true, nil
	}
	if !isAuthenticated(callerID) {
		return false, nil
	}
	_, err := g.collaborators.GetCollaborator(ctx, p.ID, callerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
