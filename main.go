package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"sceneforge/api-gateway/config"
	"sceneforge/api-gateway/handlers"
	"sceneforge/api-gateway/internal/scene"
	"sceneforge/api-gateway/internal/storage"
	"sceneforge/api-gateway/internal/store"
	"sceneforge/api-gateway/middleware"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := config.NewLogger(cfg.Log.Level)

	supabaseClient, err := config.NewSupabaseClient(cfg.Supabase)
	if err != nil {
		log.Fatalf("Failed to initialize Supabase: %v", err)
	}

	records := store.NewSupabase(supabaseClient)
	blobs := storage.NewSupabase(supabaseClient, config.SupabaseURL(cfg.Supabase), cfg.Supabase.Bucket)
	gate := scene.NewGate(records)

	handler := handlers.NewApplicationHandler(
		scene.NewProjectService(records, blobs, gate, logger),
		scene.NewModelService(records, blobs, logger),
		scene.NewMaterialService(records, logger),
		scene.NewCollaboratorService(records, gate, logger),
		logger,
	)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*", // Allow all origins for development
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.RequestLogger(logger))
	app.Use(middleware.Identity([]byte(cfg.Auth.JWTSecret)))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "ok",
			"message": "API Gateway is healthy",
		})
	})

	apiV1 := app.Group("/api/v1")

	// Upload capability route
	apiV1.Post("/uploads", handler.GenerateUploadURL)

	// Project routes
	apiV1.Post("/projects", handler.CreateProject)
	apiV1.Get("/projects", handler.GetProjects)
	apiV1.Get("/projects/public", handler.GetPublicProjects)
	apiV1.Get("/projects/search", handler.SearchProjects)
	apiV1.Get("/projects/:id", handler.GetProject)
	apiV1.Patch("/projects/:id", handler.UpdateProject)
	apiV1.Delete("/projects/:id", handler.DeleteProject)

	// Model routes within a project; mutations address placements directly
	apiV1.Get("/projects/:projectId/models", handler.ListModels)
	apiV1.Post("/projects/:projectId/models", handler.AddModel)
	apiV1.Patch("/models/:id", handler.UpdateModel)
	apiV1.Delete("/models/:id", handler.RemoveModel)

	// Material catalog routes
	apiV1.Get("/projects/:projectId/materials", handler.ListMaterials)
	apiV1.Post("/projects/:projectId/materials", handler.AddMaterial)
	apiV1.Patch("/materials/:id", handler.UpdateMaterial)
	apiV1.Delete("/materials/:id", handler.RemoveMaterial)

	// Collaborator routes
	apiV1.Get("/projects/:projectId/collaborators", handler.ListCollaborators)
	apiV1.Post("/projects/:projectId/collaborators", handler.InviteCollaborator)
	apiV1.Delete("/projects/:projectId/collaborators/:userId", handler.RemoveCollaborator)

	logger.Infof("Starting API Gateway on port %d...", cfg.App.Port)
	log.Fatal(app.Listen(fmt.Sprintf(":%d", cfg.App.Port)))
}
