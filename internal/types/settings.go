package types

import (
	"slices"

	"github.com/mydehq/texlib/internal/category"
	"github.com/mydehq/texlib/internal/pass"
)

// Settings is the user settings file (~/.config/texlib/settings.yml).
// Keys keep the capitalized names older settings files were written with.
type Settings struct {
	LibraryPath   string  `yaml:"LibraryPath"`
	ThumbnailSize float64 `yaml:"ThumbnailSize"` // Preview width in pixels
	IsDarkTheme   bool    `yaml:"IsDarkTheme"`

	Formats    []string            `yaml:"Formats,omitempty"`
	Workers    int                 `yaml:"Workers,omitempty"` // 0 means one per CPU
	Categories []category.Category `yaml:"Categories,omitempty"`
	PassRules  []pass.Rule         `yaml:"PassRules,omitempty"`
}

// Clone returns a deep copy of the settings
func (s *Settings) Clone() Settings {
	res := *s
	res.Formats = slices.Clone(s.Formats)
	res.PassRules = slices.Clone(s.PassRules)
	if len(s.Categories) > 0 {
		res.Categories = make([]category.Category, len(s.Categories))
		for i, c := range s.Categories {
			c.Keywords = slices.Clone(c.Keywords)
			res.Categories[i] = c
		}
	}
	return res
}
