package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"reposync.dev/reposync/internal/config"
)

func writeYaml(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("merges the override on top of the defaults", func(t *testing.T) {
		dir := t.TempDir()
		defaults := writeYaml(t, dir, "defaults.yaml", `
ident: reposync
remote:
  url: ssh://defaults
  timeout: 10
`)
		override := writeYaml(t, dir, "config.yaml", `
remote:
  url: ssh://override
`)

		s, err := config.Load(defaults, override)
		require.NoError(t, err)

		require.Equal(t, "reposync", s.String("", "ident"))
		require.Equal(t, "ssh://override", s.String("", "remote", "url"))

		// Sibling keys under a merged map survive.
		timeout, ok := s.Get("remote", "timeout")
		require.True(t, ok)
		require.Equal(t, 10, timeout)
	})

	t.Run("missing override file is fine", func(t *testing.T) {
		dir := t.TempDir()
		defaults := writeYaml(t, dir, "defaults.yaml", "ident: reposync\n")

		s, err := config.Load(defaults, filepath.Join(dir, "nope.yaml"))
		require.NoError(t, err)
		require.Equal(t, "reposync", s.String("", "ident"))
	})

	t.Run("missing defaults file is an error", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"), "")
		require.Error(t, err)
	})

	t.Run("broken yaml is an error", func(t *testing.T) {
		dir := t.TempDir()
		defaults := writeYaml(t, dir, "defaults.yaml", "ident: [unclosed\n")

		_, err := config.Load(defaults, "")
		require.Error(t, err)
	})
}

func TestLookups(t *testing.T) {
	s := config.Empty()
	s.Set("origin", "remote", "name")
	s.Set(true, "remote", "push")

	t.Run("get walks nested maps", func(t *testing.T) {
		v, ok := s.Get("remote", "name")
		require.True(t, ok)
		require.Equal(t, "origin", v)

		_, ok = s.Get("remote", "missing")
		require.False(t, ok)

		_, ok = s.Get("remote", "name", "too", "deep")
		require.False(t, ok)
	})

	t.Run("string falls back on missing or mistyped values", func(t *testing.T) {
		require.Equal(t, "origin", s.String("fallback", "remote", "name"))
		require.Equal(t, "fallback", s.String("fallback", "remote", "push"))
		require.Equal(t, "fallback", s.String("fallback", "nothing"))
	})
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	path := writeYaml(t, dir, "config.yaml", "ident: old\n")

	s := config.Empty()
	s.Set("new", "ident")
	require.NoError(t, s.Save(path))

	reloaded, err := config.Load(path, "")
	require.NoError(t, err)
	require.Equal(t, "new", reloaded.String("", "ident"))

	// The previous file is kept as a backup next to the original.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var backups int
	for _, e := range entries {
		if e.Name() != "config.yaml" {
			require.Contains(t, e.Name(), "config.yaml_backup_")
			backups++
		}
	}
	require.Equal(t, 1, backups)
}

func TestRender(t *testing.T) {
	tree := map[string]any{
		"remote": map[string]any{"url": "ssh://somewhere", "name": "origin"},
	}

	t.Run("json is indented", func(t *testing.T) {
		out, err := config.Render(tree, "json")
		require.NoError(t, err)
		require.Contains(t, out, `"url": "ssh://somewhere"`)
	})

	t.Run("yaml round-trips the tree", func(t *testing.T) {
		out, err := config.Render(tree, "yaml")
		require.NoError(t, err)
		require.Contains(t, out, "url: ssh://somewhere")
	})

	t.Run("tabs indents one level per depth with sorted keys", func(t *testing.T) {
		out, err := config.Render(tree, "tabs")
		require.NoError(t, err)
		require.Equal(t, "remote\n\tname\n\t\torigin\n\turl\n\t\tssh://somewhere", out)
	})

	t.Run("plain falls back to fmt", func(t *testing.T) {
		out, err := config.Render("value", "plain")
		require.NoError(t, err)
		require.Equal(t, "value", out)
	})

	t.Run("unknown style is an error", func(t *testing.T) {
		_, err := config.Render(tree, "xml")
		require.Error(t, err)
	})
}
