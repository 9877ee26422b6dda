package handlers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sceneforge/api-gateway/models"
	"sceneforge/api-gateway/utils"
)

// CreateProjectRequest defines the expected request body for creating a
// project. Name is required; Description is optional.
type CreateProjectRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description,omitempty"`
}

// UpdateProjectRequest carries the patchable project fields. Pointer fields
// distinguish "omitted" from a provided zero value; omitted fields are left
// untouched.
type UpdateProjectRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	SceneData   *string `json:"scene_data,omitempty"`
	Thumbnail   *string `json:"thumbnail,omitempty"`
	IsPublic    *bool   `json:"is_public,omitempty"`
}

// CreateProject godoc
// @Summary Create a new project
// @Description Creates a project owned by the caller with the default scene configuration.
// @Tags projects
// @Router /projects [post]
func (h *ApplicationHandler) CreateProject(c *fiber.Ctx) error {
	payload := new(CreateProjectRequest)
	if err := c.BodyParser(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse project JSON: %v", err))
	}
	if err := validate.Struct(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest,
			fmt.Sprintf("Validation failed: %s", strings.Join(utils.FormatValidationErrors(err), "; ")))
	}

	project, err := h.Projects.Create(c.Context(), callerID(c), payload.Name, payload.Description)
	if err != nil {
		return h.respondSceneError(c, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusCreated, project)
}

// GetProjects godoc
// @Summary List the caller's projects
// @Description Returns the caller's projects, newest first, with resolved thumbnail URLs. Anonymous callers get an empty list.
// @Tags projects
// @Router /projects [get]
func (h *ApplicationHandler) GetProjects(c *fiber.Ctx) error {
	projects, err := h.Projects.List(c.Context(), callerID(c))
	if err != nil {
		return h.respondSceneError(c, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, projects)
}

// GetPublicProjects godoc
// @Summary List public projects
// @Tags projects
// @Router /projects/public [get]
func (h *ApplicationHandler) GetPublicProjects(c *fiber.Ctx) error {
	projects, err := h.Projects.ListPublic(c.Context())
	if err != nil {
		return h.respondSceneError(c, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, projects)
}

// SearchProjects godoc
// @Summary Search projects by name
// @Description Matches the caller's own projects and public ones.
// @Tags projects
// @Router /projects/search [get]
func (h *ApplicationHandler) SearchProjects(c *fiber.Ctx) error {
	query := c.Query("q")
	projects, err := h.Projects.Search(c.Context(), callerID(c), query)
	if err != nil {
		return h.respondSceneError(c, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, projects)
}

// GetProject godoc
// @Summary Retrieve a project
// @Description Accessible to the owner, collaborators, and anyone for public projects. Other callers get 404.
// @Tags projects
// @Router /projects/{id} [get]
func (h *ApplicationHandler) GetProject(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid project ID format")
	}

	project, err := h.Projects.Get(c.Context(), callerID(c), projectID)
	if err != nil {
		return h.respondSceneError(c, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, project)
}

// UpdateProject godoc
// @Summary Partially update a project
// @Description Applies only the provided fields and refreshes last_modified. Owner only.
// @Tags projects
// @Router /projects/{id} [patch]
func (h *ApplicationHandler) UpdateProject(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid project ID format")
	}

	payload := new(UpdateProjectRequest)
	if err := c.BodyParser(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
	}

	patch := models.ProjectPatch{
		Name:        payload.Name,
		Description: payload.Description,
		SceneData:   payload.SceneData,
		Thumbnail:   payload.Thumbnail,
		IsPublic:    payload.IsPublic,
	}
	if err := h.Projects.Update(c.Context(), callerID(c), projectID, patch); err != nil {
		return h.respondSceneError(c, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{"id": projectID})
}

// DeleteProject godoc
// @Summary Delete a project
// @Description Deletes the project and every model, material and collaborator record referencing it. Owner only.
// @Tags projects
// @Router /projects/{id} [delete]
func (h *ApplicationHandler) DeleteProject(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid project ID format")
	}

	if err := h.Projects.Delete(c.Context(), callerID(c), projectID); err != nil {
		return h.respondSceneError(c, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{"id": projectID})
}
