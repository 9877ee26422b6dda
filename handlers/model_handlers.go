package handlers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sceneforge/api-gateway/internal/scene"
	"sceneforge/api-gateway/models"
	"sceneforge/api-gateway/utils"
)

// AddModelRequest defines the expected request body for placing a model.
// Transform vectors are optional; omitted ones take the identity placement.
type AddModelRequest struct {
	Name     string    `json:"name" validate:"required"`
	FileID   string    `json:"file_id" validate:"required"`
	FileType string    `json:"file_type" validate:"required"`
	FileSize int64     `json:"file_size" validate:"required"`
	Position []float64 `json:"position,omitempty"`
	Rotation []float64 `json:"rotation,omitempty"`
	Scale    []float64 `json:"scale,omitempty"`
}

// UpdateModelRequest carries the patchable placement fields. Omitted fields
// are left untouched.
type UpdateModelRequest struct {
	Name      *string   `json:"name,omitempty"`
	Position  []float64 `json:"position,omitempty"`
	Rotation  []float64 `json:"rotation,omitempty"`
	Scale     []float64 `json:"scale,omitempty"`
	Visible   *bool     `json:"visible,omitempty"`
	Materials *string   `json:"materials,omitempty"`
}

// ListModels godoc
// @Summary List a project's models
// @Description Returns the project's model placements with resolved asset URLs. Anonymous callers get an empty list.
// @Tags models
// @Router /projects/{projectId}/models [get]
func (h *ApplicationHandler) ListModels(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("projectId"))
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid project ID format")
	}

	placements, err := h.Models.List(c.Context(), callerID(c), projectID)
	if err != nil {
		return h.respondSceneError(c, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, placements)
}

// AddModel godoc
// @Summary Place a model in a project
// @Description Inserts a placement owned by the caller referencing an already uploaded asset.
// @Tags models
// @Router /projects/{projectId}/models [post]
func (h *ApplicationHandler) AddModel(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("projectId"))
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid project ID format")
	}

	payload := new(AddModelRequest)
	if err := c.BodyParser(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
	}
	if err := validate.Struct(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest,
			fmt.Sprintf("Validation failed: %s", strings.Join(utils.FormatValidationErrors(err), "; ")))
	}

	model, err := h.Models.Add(c.Context(), callerID(c), projectID, scene.AddModelInput{
		Name:     payload.Name,
		FileID:   payload.FileID,
		FileType: payload.FileType,
		FileSize: payload.FileSize,
		Position: payload.Position,
		Rotation: payload.Rotation,
		Scale:    payload.Scale,
	})
	if err != nil {
		return h.respondSceneError(c, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusCreated, model)
}

// UpdateModel godoc
// @Summary Partially update a model placement
// @Description Applies only the provided fields. Creator only.
// @Tags models
// @Router /models/{id} [patch]
func (h *ApplicationHandler) UpdateModel(c *fiber.Ctx) error {
	modelID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid model ID format")
	}

	payload := new(UpdateModelRequest)
	if err := c.BodyParser(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
	}

	patch := models.ModelPatch{
		Name:      payload.Name,
		Position:  payload.Position,
		Rotation:  payload.Rotation,
		Scale:     payload.Scale,
		Visible:   payload.Visible,
		Materials: payload.Materials,
	}
	if err := h.Models.Update(c.Context(), callerID(c), modelID, patch); err != nil {
		return h.respondSceneError(c, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{"id": modelID})
}

// RemoveModel godoc
// @Summary Remove a model placement
// @Description Hard-deletes the placement. Creator only.
// @Tags models
// @Router /models/{id} [delete]
func (h *ApplicationHandler) RemoveModel(c *fiber.Ctx) error {
	modelID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid model ID format")
	}

	if err := h.Models.Remove(c.Context(), callerID(c), modelID); err != nil {
		return h.respondSceneError(c, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{"id": modelID})
}
