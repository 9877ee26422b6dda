package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"sceneforge/api-gateway/internal/scene"
	"sceneforge/api-gateway/middleware"
	"sceneforge/api-gateway/utils"
)

var validate = validator.New()

// ApplicationHandler holds shared dependencies for handlers.
type ApplicationHandler struct {
	Projects      *scene.ProjectService
	Models        *scene.ModelService
	Materials     *scene.MaterialService
	Collaborators *scene.CollaboratorService
	Logger        *logrus.Logger
}

// NewApplicationHandler creates a new ApplicationHandler with the given
// dependencies.
func NewApplicationHandler(
	projects *scene.ProjectService,
	models *scene.ModelService,
	materials *scene.MaterialService,
	collaborators *scene.CollaboratorService,
	logger *logrus.Logger,
) *ApplicationHandler {
	return &ApplicationHandler{
		Projects:      projects,
		Models:        models,
		Materials:     materials,
		Collaborators: collaborators,
		Logger:        logger,
	}
}

// callerID returns the caller identity resolved by the auth middleware, or
// "" when the request is anonymous.
func callerID(c *fiber.Ctx) string {
	id, _ := c.Locals(middleware.UserIDKey).(string)
	return id
}

// respondSceneError maps core errors onto HTTP statuses. The access-denied
// outcome is surfaced as 404 with one fixed message for both causes.
func (h *ApplicationHandler) respondSceneError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, scene.ErrUnauthenticated):
		return utils.RespondWithError(c, fiber.StatusUnauthorized, "Not authenticated")
	case errors.Is(err, scene.ErrAccessDenied):
		return utils.RespondWithError(c, fiber.StatusNotFound, "Not found or access denied")
	case errors.Is(err, scene.ErrInvalidRole):
		return utils.RespondWithError(c, fiber.StatusBadRequest, err.Error())
	default:
		h.Logger.WithField("error", err.Error()).Error("Unhandled service error")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Internal server error")
	}
}
