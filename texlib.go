// Package texlib manages a local library of PBR texture sets.
//
// A library is a folder whose immediate subdirectories each hold the image
// files of one material. Load groups and classifies them; Import adds ZIP
// packs; Export and WriteThumbnail hand files to other tools.
package texlib

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mydehq/texlib/internal/archive"
	"github.com/mydehq/texlib/internal/category"
	"github.com/mydehq/texlib/internal/manifest"
	"github.com/mydehq/texlib/internal/scanner"
	"github.com/mydehq/texlib/internal/types"
)

type (
	TextureUnit  = types.TextureUnit
	TexturePass  = types.TexturePass
	Warning      = types.Warning
	Event        = types.Event
	EventType    = types.EventType
	EventHandler = types.EventHandler
	Decoder      = scanner.Decoder
	Result       = scanner.Result
)

const (
	EventInfo    = types.EventInfo
	EventSuccess = types.EventSuccess
	EventWarning = types.EventWarning
	EventError   = types.EventError
)

// Load scans a library folder and returns its texture units sorted by name.
func Load(ctx context.Context, root string, opts ...Option) (*Result, error) {
	o := newOptions(opts)
	return o.scanner().Load(ctx, root)
}

// Import extracts a ZIP pack into <library>/<zip name without extension>/
// and records the pack name as the unit's source. It returns the folder the
// pack was extracted to.
func Import(ctx context.Context, zipPath, library string, opts ...Option) (string, error) {
	o := newOptions(opts)
	return importArchive(ctx, o, zipPath, library)
}

// ImportAll imports each archive in turn. A failing archive does not stop
// the rest; all errors are joined. It returns the folders that were created.
func ImportAll(ctx context.Context, zipPaths []string, library string, opts ...Option) ([]string, error) {
	o := newOptions(opts)

	var dirs []string
	var errs []error
	for _, zp := range zipPaths {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		dir, err := importArchive(ctx, o, zp, library)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		dirs = append(dirs, dir)
	}
	return dirs, errors.Join(errs...)
}

func importArchive(ctx context.Context, o *options, zipPath, library string) (string, error) {
	if !archive.IsArchive(zipPath) {
		return "", types.ErrArchive{Path: zipPath, Err: errors.New("not a zip file")}
	}
	if info, err := os.Stat(zipPath); err != nil || info.IsDir() {
		if err == nil {
			err = errors.New("is a directory")
		}
		return "", types.ErrArchive{Path: zipPath, Err: err}
	}
	info, err := os.Stat(library)
	if err != nil {
		return "", types.ErrInvalidPath{Path: library, Err: err}
	}
	if !info.IsDir() {
		return "", types.ErrInvalidPath{Path: library, Err: errors.New("not a directory")}
	}

	base := filepath.Base(zipPath)
	dest := filepath.Join(library, strings.TrimSuffix(base, filepath.Ext(base)))

	o.events.Emit(EventInfo, fmt.Sprintf("Extracting: %s", base))
	files, err := archive.ExtractAll(ctx, zipPath, dest)
	if err != nil {
		o.events.Emit(EventError, fmt.Sprintf("Failed: %s", base))
		return "", err
	}
	o.logger.Debug("Extracted archive", "archive", zipPath, "dest", dest, "files", len(files))

	_, err = manifest.Update(dest, func(m *manifest.Manifest) {
		m.Source = base
		m.ImportedAt = time.Now().UTC().Truncate(time.Second)
	})
	if err != nil {
		return dest, fmt.Errorf("failed to record source of %s: %w", base, err)
	}

	o.events.Emit(EventSuccess, fmt.Sprintf("Imported: %s → %s", base, dest))
	return dest, nil
}

// Query selects units for display.
type Query struct {
	Text     string // Case-insensitive substring of the name or a tag
	Category string // Category name; empty or Uncategorized matches all
}

// Filter returns the units matching q, keeping their order.
func Filter(units []*TextureUnit, q Query) []*TextureUnit {
	text := strings.ToLower(q.Text)
	if strings.TrimSpace(text) == "" {
		text = ""
	}
	cat := strings.TrimSpace(q.Category)
	if strings.EqualFold(cat, category.Uncategorized) {
		cat = ""
	}

	out := make([]*TextureUnit, 0, len(units))
	for _, u := range units {
		if text != "" && !matchesText(u, text) {
			continue
		}
		if cat != "" && !strings.EqualFold(u.CategoryName(), cat) {
			continue
		}
		out = append(out, u)
	}
	return out
}

func matchesText(u *TextureUnit, lower string) bool {
	if strings.Contains(strings.ToLower(u.Name), lower) {
		return true
	}
	for _, tag := range u.Tags {
		if strings.Contains(strings.ToLower(tag), lower) {
			return true
		}
	}
	return false
}

// Find returns the unit named name. An exact match wins over a
// case-insensitive one.
func Find(units []*TextureUnit, name string) (*TextureUnit, error) {
	var folded *TextureUnit
	for _, u := range units {
		if u.Name == name {
			return u, nil
		}
		if folded == nil && strings.EqualFold(u.Name, name) {
			folded = u
		}
	}
	if folded != nil {
		return folded, nil
	}
	return nil, types.ErrUnitNotFound{Name: name}
}

// Tag adds tags to a unit and stores them in its sidecar file.
func Tag(u *TextureUnit, tags ...string) error {
	m, err := manifest.Update(u.FolderPath, func(m *manifest.Manifest) { m.AddTags(tags...) })
	if err != nil {
		return err
	}
	u.Tags = m.Tags
	return nil
}

// Untag removes tags from a unit and its sidecar file.
func Untag(u *TextureUnit, tags ...string) error {
	m, err := manifest.Update(u.FolderPath, func(m *manifest.Manifest) { m.RemoveTags(tags...) })
	if err != nil {
		return err
	}
	u.Tags = m.Tags
	return nil
}
