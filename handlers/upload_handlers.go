package handlers

import (
	"github.com/gofiber/fiber/v2"

	"sceneforge/api-gateway/utils"
)

// GenerateUploadURL godoc
// @Summary Obtain an upload capability
// @Description Returns a signed URL and the file id to reference after uploading. The binary transfer happens directly against the blob store; nothing links the two phases.
// @Tags uploads
// @Router /uploads [post]
func (h *ApplicationHandler) GenerateUploadURL(c *fiber.Ctx) error {
	target, err := h.Projects.GenerateUploadTarget(c.Context(), callerID(c))
	if err != nil {
		return h.respondSceneError(c, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, target)
}
