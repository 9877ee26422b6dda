package scene

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sceneforge/api-gateway/models"
)

func TestListProjectsUnauthenticated(t *testing.T) {
	env := newTestEnv(t)
	env.mustCreateProject(t, "alice", "Robot Arm")

	projects, err := env.projects.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestListProjectsNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first := env.mustCreateProject(t, "alice", "First")
	second := env.mustCreateProject(t, "alice", "Second")
	env.mustCreateProject(t, "bob", "Not Alice's")

	// Touching the older project moves it to the top.
	time.Sleep(time.Millisecond)
	name := "First, renamed"
	require.NoError(t, env.projects.Update(ctx, "alice", first.ID, models.ProjectPatch{Name: &name}))

	projects, err := env.projects.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, first.ID, projects[0].ID)
	assert.Equal(t, second.ID, projects[1].ID)
}

func TestCreateProjectRequiresCaller(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.projects.Create(context.Background(), "", "Nameless", nil)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestCreateProjectDefaultScene(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created := env.mustCreateProject(t, "alice", "N")
	got, err := env.projects.Get(ctx, "alice", created.ID)
	require.NoError(t, err)

	var cfg SceneConfig
	require.NoError(t, json.Unmarshal([]byte(got.SceneData), &cfg))
	assert.Equal(t, []float64{5, 5, 5}, cfg.Camera.Position)
	assert.Equal(t, []float64{0, 0, 0}, cfg.Camera.Target)
	assert.Equal(t, "studio", cfg.Environment)
	assert.True(t, cfg.Grid.Visible)
	assert.Equal(t, float64(10), cfg.Grid.Size)
	assert.Equal(t, float64(1), cfg.Lighting.Intensity)
	assert.Equal(t, "#ffffff", cfg.Lighting.Color)
}

func TestGetProjectHiddenFromStrangers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.mustCreateProject(t, "alice", "Private")

	_, err := env.projects.Get(ctx, "mallory", p.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = env.projects.Get(ctx, "", p.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	// A missing project yields the exact same outcome.
	_, err = env.projects.Get(ctx, "alice", uuid.New())
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetProjectPublicReadableByAnyone(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.mustCreateProject(t, "alice", "Showcase")

	isPublic := true
	require.NoError(t, env.projects.Update(ctx, "alice", p.ID, models.ProjectPatch{IsPublic: &isPublic}))

	got, err := env.projects.Get(ctx, "mallory", p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	// Public widens reads for signed-in users only; anonymous callers still
	// get not-found and use the public listing instead.
	_, err = env.projects.Get(ctx, "", p.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdateProjectOwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.mustCreateProject(t, "alice", "Locked")

	name := "Hijacked"
	err := env.projects.Update(ctx, "mallory", p.ID, models.ProjectPatch{Name: &name})
	assert.ErrorIs(t, err, ErrAccessDenied)

	err = env.projects.Update(ctx, "", p.ID, models.ProjectPatch{Name: &name})
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestUpdateProjectAppliesOnlyProvidedFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	desc := "original description"
	p, err := env.projects.Create(ctx, "alice", "Patchable", &desc)
	require.NoError(t, err)

	time.Sleep(time.Millisecond)
	scene := `{"camera":{"position":[1,1,1],"target":[0,0,0]}}`
	require.NoError(t, env.projects.Update(ctx, "alice", p.ID, models.ProjectPatch{SceneData: &scene}))

	got, err := env.projects.Get(ctx, "alice", p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Patchable", got.Name)
	require.NotNil(t, got.Description)
	assert.Equal(t, desc, *got.Description)
	assert.Equal(t, scene, got.SceneData)
	assert.True(t, got.LastModified.After(p.LastModified))
}

func TestDeleteProjectCascade(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.mustCreateProject(t, "alice", "Doomed")

	env.mustAddModel(t, "alice", p, AddModelInput{Name: "chassis"})
	env.mustAddModel(t, "alice", p, AddModelInput{Name: "wheel"})
	_, err := env.materials.Add(ctx, "alice", p.ID, AddMaterialInput{Name: "steel", MaterialData: "{}"})
	require.NoError(t, err)
	_, err = env.collaborators.Invite(ctx, "alice", p.ID, "bob", models.RoleViewer)
	require.NoError(t, err)

	require.NoError(t, env.projects.Delete(ctx, "alice", p.ID))

	_, err = env.projects.Get(ctx, "alice", p.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	remaining, err := env.models.List(ctx, "alice", p.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	mats, err := env.materials.List(ctx, "alice", p.ID)
	require.NoError(t, err)
	assert.Empty(t, mats)
}

func TestDeleteProjectOwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.mustCreateProject(t, "alice", "Guarded")

	assert.ErrorIs(t, env.projects.Delete(ctx, "mallory", p.ID), ErrAccessDenied)
	assert.ErrorIs(t, env.projects.Delete(ctx, "", p.ID), ErrUnauthenticated)

	_, err := env.projects.Get(ctx, "alice", p.ID)
	assert.NoError(t, err)
}

func TestProjectThumbnailResolution(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.mustCreateProject(t, "alice", "Pretty")

	projects, err := env.projects.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Nil(t, projects[0].ThumbnailURL)

	thumb := "thumb-123"
	require.NoError(t, env.projects.Update(ctx, "alice", p.ID, models.ProjectPatch{Thumbnail: &thumb}))

	got, err := env.projects.Get(ctx, "alice", p.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ThumbnailURL)
	assert.Equal(t, "memory://scene-assets/thumb-123", *got.ThumbnailURL)
}

func TestSearchProjects(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.mustCreateProject(t, "alice", "Robot Arm")
	env.mustCreateProject(t, "alice", "Coffee Table")
	showcase := env.mustCreateProject(t, "bob", "Robot Showcase")
	isPublic := true
	require.NoError(t, env.projects.Update(ctx, "bob", showcase.ID, models.ProjectPatch{IsPublic: &isPublic}))
	env.mustCreateProject(t, "bob", "Robot Secret")

	results, err := env.projects.Search(ctx, "alice", "robot")
	require.NoError(t, err)
	require.Len(t, results, 2)
	names := []string{results[0].Name, results[1].Name}
	assert.Contains(t, names, "Robot Arm")
	assert.Contains(t, names, "Robot Showcase")

	results, err = env.projects.Search(ctx, "", "robot")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestListPublicProjects(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.mustCreateProject(t, "alice", "Private")
	pub := env.mustCreateProject(t, "bob", "Shared")
	isPublic := true
	require.NoError(t, env.projects.Update(ctx, "bob", pub.ID, models.ProjectPatch{IsPublic: &isPublic}))

	projects, err := env.projects.ListPublic(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, pub.ID, projects[0].ID)
}

func TestGenerateUploadTarget(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.projects.GenerateUploadTarget(ctx, "")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	target, err := env.projects.GenerateUploadTarget(ctx, "alice")
	require.NoError(t, err)
	assert.NotEmpty(t, target.URL)
	assert.NotEmpty(t, target.FileID)

	// Two calls never hand out the same file id.
	other, err := env.projects.GenerateUploadTarget(ctx, "alice")
	require.NoError(t, err)
	assert.NotEqual(t, target.FileID, other.FileID)
}
