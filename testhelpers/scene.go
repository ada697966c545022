package testhelpers

import (
	"testing"
)

// Scene is a test fixture: a temporary directory holding a real git
// repository.
type Scene struct {
	Dir  string
	Repo *GitRepo
}

// SceneSetup prepares a scene before the test body runs.
type SceneSetup func(*Scene) error

// NewScene creates a scene in a temporary directory, runs the setup
// function, and relies on t.Cleanup for teardown.
func NewScene(t *testing.T, setup SceneSetup) *Scene {
	t.Helper()

	dir := t.TempDir()
	repo, err := NewGitRepo(dir)
	if err != nil {
		t.Fatalf("failed to create git repo: %v", err)
	}

	scene := &Scene{Dir: dir, Repo: repo}
	if setup != nil {
		if err := setup(scene); err != nil {
			t.Fatalf("scene setup failed: %v", err)
		}
	}
	return scene
}

// BasicSceneSetup seeds the scene with a single commit.
func BasicSceneSetup(scene *Scene) error {
	return scene.Repo.CreateChangeAndCommit("1", "1")
}
