package scene

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"sceneforge/api-gateway/internal/storage"
	"sceneforge/api-gateway/internal/store"
	"sceneforge/api-gateway/models"
)

type testEnv struct {
	store         *store.Memory
	blobs         *storage.Memory
	projects      *ProjectService
	models        *ModelService
	materials     *MaterialService
	collaborators *CollaboratorService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	st := store.NewMemory()
	blobs := storage.NewMemory("scene-assets")
	gate := NewGate(st)

	return &testEnv{
		store:         st,
		blobs:         blobs,
		projects:      NewProjectService(st, blobs, gate, logger),
		models:        NewModelService(st, blobs, logger),
		materials:     NewMaterialService(st, logger),
		collaborators: NewCollaboratorService(st, gate, logger),
	}
}

func (e *testEnv) mustCreateProject(t *testing.T, ownerID, name string) *models.Project {
	t.Helper()
	p, err := e.projects.Create(context.Background(), ownerID, name, nil)
	require.NoError(t, err)
	return p
}

func (e *testEnv) mustAddModel(t *testing.T, ownerID string, p *models.Project, in AddModelInput) *models.Model {
	t.Helper()
	if in.Name == "" {
		in.Name = "part"
	}
	if in.FileID == "" {
		in.FileID = "file-1"
	}
	if in.FileType == "" {
		in.FileType = "glb"
	}
	if in.FileSize == 0 {
		in.FileSize = 1024
	}
	m, err := e.models.Add(context.Background(), ownerID, p.ID, in)
	require.NoError(t, err)
	return m
}
