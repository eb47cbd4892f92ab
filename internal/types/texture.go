package types

import (
	"image"
	"time"

	"github.com/mydehq/texlib/internal/category"
	"github.com/mydehq/texlib/internal/pass"
)

// UnknownResolution is reported when the representative file cannot be decoded.
const UnknownResolution = "Unknown"

// TexturePass is one image file of a texture unit.
type TexturePass struct {
	Name string    `yaml:"name"` // File base name
	Path string    `yaml:"path"` // Absolute path
	Type pass.Type `yaml:"type"`
}

// TextureUnit is one material: a library subdirectory and its image files.
type TextureUnit struct {
	Name          string             `yaml:"name"`
	FolderPath    string             `yaml:"folder"`
	Category      *category.Category `yaml:"-"` // Shared registry entry, never nil
	Passes        []TexturePass      `yaml:"passes"`
	Resolution    string             `yaml:"resolution"`
	ThumbnailPath string             `yaml:"thumbnail,omitempty"` // Representative pass
	Thumbnail     image.Image        `yaml:"-"`                   // Nil when decoding failed or was skipped
	Tags          []string           `yaml:"tags,omitempty"`
	ImportDate    time.Time          `yaml:"import_date"`
	Source        string             `yaml:"source,omitempty"`
}

// CategoryName returns the unit's category name, or "" if unset.
func (u *TextureUnit) CategoryName() string {
	if u.Category == nil {
		return ""
	}
	return u.Category.Name
}

// Pass returns the first pass of type t in enumeration order.
func (u *TextureUnit) Pass(t pass.Type) (TexturePass, bool) {
	for _, p := range u.Passes {
		if p.Type == t {
			return p, true
		}
	}
	return TexturePass{}, false
}

// PassTypes returns the distinct pass types present, in first-seen order.
func (u *TextureUnit) PassTypes() []pass.Type {
	seen := make(map[pass.Type]bool, len(u.Passes))
	var out []pass.Type
	for _, p := range u.Passes {
		if !seen[p.Type] {
			seen[p.Type] = true
			out = append(out, p.Type)
		}
	}
	return out
}

// Warning is a non-fatal problem met while building a unit.
type Warning struct {
	Unit string
	Path string
	Err  error
}

func (w Warning) String() string {
	return w.Unit + ": " + w.Err.Error()
}
