package models

import (
	"time"

	"github.com/google/uuid"
)

// CollaboratorRole classifies a collaborator on a project. The role is
// recorded for the benefit of clients; write access always requires literal
// ownership of the record being mutated.
type CollaboratorRole string

const (
	RoleOwner  CollaboratorRole = "owner"
	RoleEditor CollaboratorRole = "editor"
	RoleViewer CollaboratorRole = "viewer"
)

// Valid reports whether the role is one of the known role literals.
func (r CollaboratorRole) Valid() bool {
	switch r {
	case RoleOwner, RoleEditor, RoleViewer:
		return true
	}
	return false
}

// Collaborator grants a non-owner user read access to a non-public project.
type Collaborator struct {
	ID        uuid.UUID        `json:"id,omitempty"`
	ProjectID uuid.UUID        `json:"project_id"`
	UserID    string           `json:"user_id"`
	Role      CollaboratorRole `json:"role"`
	InvitedBy string           `json:"invited_by"`
	JoinedAt  time.Time        `json:"joined_at"`
}
