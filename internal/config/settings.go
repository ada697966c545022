// Package config loads the layered YAML settings: a defaults file with
// an optional override file deep-merged on top. The rest of the
// program consumes it as a plain key/value lookup.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"reposync.dev/reposync/internal/locations"
)

// Settings is a merged view over the defaults and override files.
type Settings struct {
	values map[string]any
}

// Load reads the defaults file and merges the override file on top of
// it. A missing override file is fine; a missing defaults file is not.
func Load(defaultsPath, overridePath string) (*Settings, error) {
	values, err := readFile(defaultsPath)
	if err != nil {
		return nil, fmt.Errorf("cannot load defaults: %w", err)
	}

	if overridePath != "" {
		override, err := readFile(overridePath)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("cannot load config: %w", err)
		}
		values = merge(values, override)
	}

	return &Settings{values: values}, nil
}

// Empty returns settings with no values, every lookup falls back.
func Empty() *Settings {
	return &Settings{values: map[string]any{}}
}

// Get walks the nested maps along keys. The second return is false
// when any step is missing.
func (s *Settings) Get(keys ...string) (any, bool) {
	var cur any = s.values
	for _, k := range keys {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = m[k]; !ok {
			return nil, false
		}
	}
	return cur, true
}

// String looks up a string value, returning fallback when the path is
// missing or not a string.
func (s *Settings) String(fallback string, keys ...string) string {
	v, ok := s.Get(keys...)
	if !ok {
		return fallback
	}
	str, ok := v.(string)
	if !ok {
		return fallback
	}
	return str
}

// Values exposes the merged tree.
func (s *Settings) Values() map[string]any {
	return s.values
}

// Set writes a value at the dotted path given by keys, creating
// intermediate maps as needed.
func (s *Settings) Set(value any, keys ...string) {
	if len(keys) == 0 {
		return
	}
	cur := s.values
	for _, k := range keys[:len(keys)-1] {
		next, ok := cur[k].(map[string]any)
		if !ok {
			next = map[string]any{}
			cur[k] = next
		}
		cur = next
	}
	cur[keys[len(keys)-1]] = value
}

// Save writes the merged tree back as YAML, backing up any previous
// file first.
func (s *Settings) Save(path string) error {
	if _, err := os.Stat(path); err == nil {
		if _, err := locations.Backup(path, ""); err != nil {
			return fmt.Errorf("cannot back up %s: %w", path, err)
		}
	}
	data, err := yaml.Marshal(s.values)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func readFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var values map[string]any
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, err
	}
	if values == nil {
		values = map[string]any{}
	}
	return values, nil
}

// merge overlays src onto dst, descending into maps present on both
// sides. Scalars and lists from src win.
func merge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = map[string]any{}
	}
	for k, v := range src {
		if sub, ok := v.(map[string]any); ok {
			if base, ok := dst[k].(map[string]any); ok {
				dst[k] = merge(base, sub)
				continue
			}
		}
		dst[k] = v
	}
	return dst
}
