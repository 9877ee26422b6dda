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

// AddMaterialRequest defines the expected request body for adding a material
// to a project's catalog.
type AddMaterialRequest struct {
	Name         string            `json:"name" validate:"required"`
	MaterialData string            `json:"material_data" validate:"required"`
	TextureIDs   map[string]string `json:"texture_ids,omitempty"`
}

// UpdateMaterialRequest carries the patchable material fields.
type UpdateMaterialRequest struct {
	Name         *string           `json:"name,omitempty"`
	MaterialData *string           `json:"material_data,omitempty"`
	TextureIDs   map[string]string `json:"texture_ids,omitempty"`
}

// ListMaterials godoc
// @Summary List a project's materials
// @Tags materials
// @Router /projects/{projectId}/materials [get]
func (h *ApplicationHandler) ListMaterials(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("projectId"))
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid project ID format")
	}

	materials, err := h.Materials.List(c.Context(), callerID(c), projectID)
	if err != nil {
		return h.respondSceneError(c, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, materials)
}

// AddMaterial godoc
// @Summary Add a material to a project's catalog
// @Tags materials
// @Router /projects/{projectId}/materials [post]
func (h *ApplicationHandler) AddMaterial(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("projectId"))
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid project ID format")
	}

	payload := new(AddMaterialRequest)
	if err := c.BodyParser(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
	}
	if err := validate.Struct(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest,
			fmt.Sprintf("Validation failed: %s", strings.Join(utils.FormatValidationErrors(err), "; ")))
	}

	material, err := h.Materials.Add(c.Context(), callerID(c), projectID, scene.AddMaterialInput{
		Name:         payload.Name,
		MaterialData: payload.MaterialData,
		TextureIDs:   payload.TextureIDs,
	})
	if err != nil {
		return h.respondSceneError(c, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusCreated, material)
}

// UpdateMaterial godoc
// @Summary Partially update a material
// @Description Applies only the provided fields. Creator only.
// @Tags materials
// @Router /materials/{id} [patch]
func (h *ApplicationHandler) UpdateMaterial(c *fiber.Ctx) error {
	materialID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid material ID format")
	}

	payload := new(UpdateMaterialRequest)
	if err := c.BodyParser(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
	}

	patch := models.MaterialPatch{
		Name:         payload.Name,
		MaterialData: payload.MaterialData,
		TextureIDs:   payload.TextureIDs,
	}
	if err := h.Materials.Update(c.Context(), callerID(c), materialID, patch); err != nil {
		return h.respondSceneError(c, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{"id": materialID})
}

// RemoveMaterial godoc
// @Summary Remove a material from the catalog
// @Tags materials
// @Router /materials/{id} [delete]
func (h *ApplicationHandler) RemoveMaterial(c *fiber.Ctx) error {
	materialID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid material ID format")
	}

	if err := h.Materials.Remove(c.Context(), callerID(c), materialID); err != nil {
		return h.respondSceneError(c, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{"id": materialID})
}
