// Package manifest reads and writes the per-texture sidecar file that keeps
// user tags and import provenance next to the images.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the sidecar file name inside a texture folder.
const FileName = "_texlib.yml"

// Manifest is the sidecar content.
type Manifest struct {
	Source     string    `yaml:"source,omitempty"`
	Tags       []string  `yaml:"tags,omitempty"`
	ImportedAt time.Time `yaml:"imported_at,omitempty"`
}

// Path returns the sidecar path for a texture folder.
func Path(dir string) string {
	return filepath.Join(dir, FileName)
}

// Load reads the sidecar of dir. A missing file yields (nil, nil).
func Load(dir string) (*Manifest, error) {
	data, err := os.ReadFile(Path(dir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", Path(dir), err)
	}
	m.Tags = normalizeTags(m.Tags)
	return &m, nil
}

// Save writes m as the sidecar of dir.
func Save(dir string, m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.WriteFile(Path(dir), data, 0o644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// AddTags merges tags into m. Tags are lower-cased, trimmed, de-duplicated
// and kept sorted.
func (m *Manifest) AddTags(tags ...string) {
	m.Tags = normalizeTags(append(m.Tags, tags...))
}

// RemoveTags drops tags from m, ignoring case.
func (m *Manifest) RemoveTags(tags ...string) {
	drop := make(map[string]bool, len(tags))
	for _, t := range tags {
		drop[strings.ToLower(strings.TrimSpace(t))] = true
	}
	m.Tags = slices.DeleteFunc(m.Tags, func(t string) bool { return drop[t] })
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			out = append(out, t)
		}
	}
	slices.Sort(out)
	out = slices.Compact(out)
	if len(out) == 0 {
		return nil
	}
	return out
}

// Update loads the sidecar of dir (or starts an empty one), applies fn and
// saves the result.
func Update(dir string, fn func(*Manifest)) (*Manifest, error) {
	m, err := Load(dir)
	if err != nil {
		return nil, err
	}
	if m == nil {
		m = &Manifest{}
	}
	fn(m)
	if err := Save(dir, m); err != nil {
		return nil, err
	}
	return m, nil
}
