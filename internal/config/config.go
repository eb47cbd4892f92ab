// Package config loads and saves user settings and turns them into the
// tables the scanner runs on.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/mydehq/texlib/internal/category"
	"github.com/mydehq/texlib/internal/pass"
	"github.com/mydehq/texlib/internal/scanner"
	"github.com/mydehq/texlib/internal/types"
	"gopkg.in/yaml.v3"
)

const (
	AppName  = "texlib"
	FileName = "settings.yml"

	// EnvPath overrides the settings file location.
	EnvPath = "TEXLIB_CONFIG"

	DefaultThumbnailSize = 150
)

// GetDefaults returns the built-in settings.
func GetDefaults() types.Settings {
	return types.Settings{
		ThumbnailSize: DefaultThumbnailSize,
		IsDarkTheme:   true,
		Formats:       slices.Clone(scanner.DefaultFormats),
	}
}

// Path returns the settings file location: $TEXLIB_CONFIG if set, otherwise
// settings.yml in the user config directory.
func Path() (string, error) {
	if p := os.Getenv(EnvPath); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, AppName, FileName), nil
}

// Load reads settings from path, layered over the defaults. It always
// returns usable settings: a missing file yields the defaults with a nil
// error, and a malformed file yields the defaults together with the parse
// error so the caller can report it.
//
// JSON settings files are accepted as well, since JSON is valid YAML.
func Load(path string) (types.Settings, error) {
	defaults := GetDefaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaults, nil
		}
		return defaults, fmt.Errorf("failed to read settings: %w", err)
	}

	s := defaults.Clone()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return defaults, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := Validate(&s); err != nil {
		return defaults, fmt.Errorf("invalid settings in %s: %w", path, err)
	}
	return s, nil
}

// LoadGlobal loads settings from the default location.
func LoadGlobal() (types.Settings, error) {
	p, err := Path()
	if err != nil {
		return GetDefaults(), err
	}
	return Load(p)
}

// Validate fills zero values with defaults and rejects tables that cannot be
// built into a registry.
func Validate(s *types.Settings) error {
	if s.ThumbnailSize <= 0 {
		s.ThumbnailSize = DefaultThumbnailSize
	}
	if s.Workers < 0 {
		s.Workers = 0
	}
	s.Formats = scanner.NormalizeFormats(s.Formats)
	if len(s.Formats) == 0 {
		s.Formats = slices.Clone(scanner.DefaultFormats)
	}
	if len(s.Categories) > 0 {
		if _, err := category.NewRegistry(s.Categories); err != nil {
			return err
		}
	}
	return nil
}

// Save writes settings to path as YAML, creating parent directories.
func Save(path string, s types.Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}

// Registry builds the category registry: the custom table when one is set,
// the built-in table otherwise.
func Registry(s types.Settings) (*category.Registry, error) {
	if len(s.Categories) == 0 {
		return category.Default(), nil
	}
	return category.NewRegistry(s.Categories)
}

// Classifier builds the pass classifier from the custom rules when set.
func Classifier(s types.Settings) *pass.Classifier {
	if len(s.PassRules) == 0 {
		return pass.Default()
	}
	return pass.New(s.PassRules)
}
