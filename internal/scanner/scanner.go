// Package scanner groups the image files of a texture library into units.
//
// Every immediate subdirectory of the library root that holds at least one
// supported image (searched recursively) becomes one TextureUnit. Files are
// classified into passes, the folder name is resolved to a category, and the
// representative pass supplies resolution and thumbnail.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/mydehq/texlib/internal/category"
	"github.com/mydehq/texlib/internal/imaging"
	"github.com/mydehq/texlib/internal/manifest"
	"github.com/mydehq/texlib/internal/pass"
	"github.com/mydehq/texlib/internal/selector"
	"github.com/mydehq/texlib/internal/types"
	"golang.org/x/sync/errgroup"
)

// DefaultFormats lists the image extensions picked up by a scan.
var DefaultFormats = []string{".jpg", ".jpeg", ".png", ".tiff", ".tif", ".bmp", ".exr", ".hdr"}

// Decoder supplies pixel data for the representative pass of a unit.
type Decoder interface {
	Dimensions(path string) (width, height int, err error)
	Thumbnail(path string, maxWidth int) (image.Image, error)
}

// Result is the outcome of one scan.
type Result struct {
	Units    []*types.TextureUnit
	Warnings []types.Warning
}

// Scanner builds texture units from a library directory. It holds no state
// between scans, so one Scanner may serve concurrent Load calls.
type Scanner struct {
	registry     *category.Registry
	classifier   *pass.Classifier
	decoder      Decoder
	formats      []string
	workers      int
	thumbWidth   int
	noThumbnails bool
	logger       *log.Logger
	events       types.EventHandler
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithRegistry sets the category table used to resolve unit names.
func WithRegistry(r *category.Registry) Option {
	return func(s *Scanner) {
		if r != nil {
			s.registry = r
		}
	}
}

// WithClassifier sets the pass keyword table.
func WithClassifier(c *pass.Classifier) Option {
	return func(s *Scanner) {
		if c != nil {
			s.classifier = c
		}
	}
}

// WithDecoder replaces the image decoder.
func WithDecoder(d Decoder) Option {
	return func(s *Scanner) {
		if d != nil {
			s.decoder = d
		}
	}
}

// WithFormats sets the accepted extensions. Entries are matched
// case-insensitively; a missing leading dot is added.
func WithFormats(formats []string) Option {
	return func(s *Scanner) {
		if len(formats) > 0 {
			s.formats = NormalizeFormats(formats)
		}
	}
}

// WithWorkers bounds how many subdirectories are processed at once.
// Values below 1 are ignored.
func WithWorkers(n int) Option {
	return func(s *Scanner) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithThumbnailWidth sets the maximum thumbnail width in pixels.
func WithThumbnailWidth(w int) Option {
	return func(s *Scanner) {
		if w > 0 {
			s.thumbWidth = w
		}
	}
}

// WithoutThumbnails skips raster decoding. Resolution is still read.
func WithoutThumbnails() Option {
	return func(s *Scanner) {
		s.noThumbnails = true
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(s *Scanner) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithEvents sets a handler notified as units are built.
func WithEvents(h types.EventHandler) Option {
	return func(s *Scanner) {
		s.events = h
	}
}

// New returns a Scanner using the built-in tables unless overridden.
func New(opts ...Option) *Scanner {
	s := &Scanner{
		registry:   category.Default(),
		classifier: pass.Default(),
		decoder:    imaging.New(),
		formats:    DefaultFormats,
		workers:    runtime.NumCPU(),
		thumbWidth: imaging.DefaultThumbnailWidth,
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NormalizeFormats lower-cases extensions and makes sure each starts with a dot.
func NormalizeFormats(formats []string) []string {
	out := make([]string, 0, len(formats))
	for _, f := range formats {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" {
			continue
		}
		if !strings.HasPrefix(f, ".") {
			f = "." + f
		}
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// IsImage reports whether path has one of the given extensions.
// formats must already be normalized.
func IsImage(path string, formats []string) bool {
	return slices.Contains(formats, strings.ToLower(filepath.Ext(path)))
}

// unitResult is what a worker produces for one subdirectory.
type unitResult struct {
	unit     *types.TextureUnit
	warnings []types.Warning
}

// Load scans root and returns its units sorted by folder name. A missing or
// unreadable root yields types.ErrInvalidPath; any directory-level I/O error
// aborts the scan without partial results. Decode problems are reported as
// warnings.
func (s *Scanner) Load(ctx context.Context, root string) (*Result, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, types.ErrInvalidPath{Path: root, Err: err}
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, types.ErrInvalidPath{Path: absRoot, Err: err}
	}
	if !info.IsDir() {
		return nil, types.ErrInvalidPath{Path: absRoot, Err: errors.New("not a directory")}
	}

	entries, err := os.ReadDir(absRoot)
	if err != nil {
		return nil, types.ErrInvalidPath{Path: absRoot, Err: err}
	}

	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e.Name())
		}
	}
	slices.Sort(dirs)

	s.logger.Debug("Scanning library", "root", absRoot, "folders", len(dirs), "workers", s.workers)
	em := &emitter{handler: s.events}
	em.emit(types.EventInfo, fmt.Sprintf("Scanning: %s", absRoot))

	slots := make([]unitResult, len(dirs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, name := range dirs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := s.buildUnit(gctx, filepath.Join(absRoot, name))
			if err != nil {
				return err
			}
			slots[i] = res
			if res.unit != nil {
				em.emit(types.EventSuccess, fmt.Sprintf("Loaded: %s", res.unit.Name))
			}
			for _, w := range res.warnings {
				em.emit(types.EventWarning, w.String())
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &Result{}
	for _, slot := range slots {
		if slot.unit != nil {
			result.Units = append(result.Units, slot.unit)
		}
		result.Warnings = append(result.Warnings, slot.warnings...)
	}
	s.logger.Debug("Scan complete", "units", len(result.Units), "warnings", len(result.Warnings))
	return result, nil
}

// buildUnit returns an empty unitResult when dir holds no supported image.
func (s *Scanner) buildUnit(ctx context.Context, dir string) (unitResult, error) {
	files, err := s.listImages(ctx, dir)
	if err != nil {
		return unitResult{}, err
	}
	if len(files) == 0 {
		s.logger.Debug("Skipping folder without images", "dir", dir)
		return unitResult{}, nil
	}

	name := filepath.Base(dir)
	unit := &types.TextureUnit{
		Name:       name,
		FolderPath: dir,
		Category:   s.registry.Resolve(name),
		Passes:     make([]types.TexturePass, 0, len(files)),
		Resolution: types.UnknownResolution,
		ImportDate: creationTime(dir),
	}
	for _, f := range files {
		unit.Passes = append(unit.Passes, types.TexturePass{
			Name: filepath.Base(f),
			Path: f,
			Type: s.classifier.ClassifyFile(f),
		})
	}

	var res unitResult
	warn := func(path string, err error) {
		res.warnings = append(res.warnings, types.Warning{Unit: name, Path: path, Err: err})
	}

	m, err := manifest.Load(dir)
	switch {
	case err != nil:
		warn(manifest.Path(dir), err)
	case m != nil:
		unit.Source = m.Source
		unit.Tags = m.Tags
	}

	rep, _ := selector.Representative(unit)
	unit.ThumbnailPath = rep.Path

	if w, h, err := s.decoder.Dimensions(rep.Path); err != nil {
		warn(rep.Path, err)
	} else {
		unit.Resolution = imaging.Resolution(w, h)
	}

	if !s.noThumbnails {
		img, err := s.decoder.Thumbnail(rep.Path, s.thumbWidth)
		switch {
		case errors.Is(err, imaging.ErrUnsupported):
			s.logger.Debug("No thumbnail for format", "path", rep.Path)
		case err != nil:
			warn(rep.Path, err)
		default:
			unit.Thumbnail = img
		}
	}

	s.logger.Debug("Built unit", "name", name, "category", unit.CategoryName(), "passes", len(unit.Passes), "resolution", unit.Resolution)
	res.unit = unit
	return res, nil
}

// listImages walks dir recursively and returns supported image files in
// lexical order.
func (s *Scanner) listImages(ctx context.Context, dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if IsImage(path, s.formats) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	return files, nil
}

// emitter serializes calls into an EventHandler shared by workers.
type emitter struct {
	mu      sync.Mutex
	handler types.EventHandler
}

func (e *emitter) emit(t types.EventType, msg string) {
	if e.handler == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handler.Emit(t, msg)
}
