package texlib

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mydehq/texlib/internal/imaging"
	"github.com/mydehq/texlib/internal/selector"
	"github.com/mydehq/texlib/internal/types"
)

// Request names the pass to hand out: a pass type, or "composite" for the
// unit's preferred display pass.
type Request = selector.Request

// Composite requests the pass a unit is best shown by.
var Composite = Request{Composite: true}

// ParseRequest parses "composite" or a pass type name.
func ParseRequest(s string) (Request, error) {
	return selector.ParseRequest(s)
}

// ExportPath returns the file chosen for req, after checking it still exists.
func ExportPath(u *TextureUnit, req Request) (string, error) {
	p, ok := selector.ForExport(u, req)
	if !ok {
		return "", types.ErrPassNotFound{Unit: u.Name}
	}
	if _, err := os.Stat(p.Path); err != nil {
		return "", fmt.Errorf("pass file of %s: %w", u.Name, err)
	}
	return p.Path, nil
}

// Export copies the file chosen for req into destDir and returns the new
// path. Existing files are overwritten.
func Export(u *TextureUnit, req Request, destDir string) (string, error) {
	src, err := ExportPath(u, req)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", destDir, err)
	}
	dst := filepath.Join(destDir, filepath.Base(src))
	if err := copyFile(src, dst); err != nil {
		return "", fmt.Errorf("failed to export %s: %w", u.Name, err)
	}
	return dst, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// WriteThumbnail renders the unit's representative pass as a JPEG of at
// most width pixels across.
func WriteThumbnail(u *TextureUnit, path string, width int, opts ...Option) error {
	o := newOptions(opts)
	rep, ok := selector.Representative(u)
	if !ok {
		return types.ErrPassNotFound{Unit: u.Name}
	}
	if width <= 0 {
		width = o.thumbWidth
	}

	img, err := o.decoder.Thumbnail(rep.Path, width)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := imaging.EncodeJPEG(f, img, 85); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return f.Close()
}
