package handlers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sceneforge/api-gateway/models"
	"sceneforge/api-gateway/utils"
)

// InviteCollaboratorRequest defines the expected request body for inviting a
// collaborator to a project.
type InviteCollaboratorRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Role   string `json:"role" validate:"required"`
}

// ListCollaborators godoc
// @Summary List a project's collaborators
// @Description Requires read access to the project.
// @Tags collaborators
// @Router /projects/{projectId}/collaborators [get]
func (h *ApplicationHandler) ListCollaborators(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("projectId"))
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid project ID format")
	}

	collaborators, err := h.Collaborators.List(c.Context(), callerID(c), projectID)
	if err != nil {
		return h.respondSceneError(c, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, collaborators)
}

// InviteCollaborator godoc
// @Summary Invite a collaborator
// @Description Records a collaborator with a role. Project owner only; the role never grants write access.
// @Tags collaborators
// @Router /projects/{projectId}/collaborators [post]
func (h *ApplicationHandler) InviteCollaborator(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("projectId"))
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid project ID format")
	}

	payload := new(InviteCollaboratorRequest)
	if err := c.BodyParser(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
	}
	if err := validate.Struct(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest,
			fmt.Sprintf("Validation failed: %s", strings.Join(utils.FormatValidationErrors(err), "; ")))
	}

	collaborator, err := h.Collaborators.Invite(c.Context(), callerID(c), projectID,
		payload.UserID, models.CollaboratorRole(payload.Role))
	if err != nil {
		return h.respondSceneError(c, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusCreated, collaborator)
}

// RemoveCollaborator godoc
// @Summary Remove a collaborator
// @Description Project owner only.
// @Tags collaborators
// @Router /projects/{projectId}/collaborators/{userId} [delete]
func (h *ApplicationHandler) RemoveCollaborator(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("projectId"))
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid project ID format")
	}
	userID := c.Params("userId")

	if err := h.Collaborators.Remove(c.Context(), callerID(c), projectID, userID); err != nil {
		return h.respondSceneError(c, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{"project_id": projectID, "user_id": userID})
}
