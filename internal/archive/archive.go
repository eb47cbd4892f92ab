// Package archive extracts texture packs distributed as ZIP files.
package archive

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mydehq/texlib/internal/types"
)

// Extension is the only archive format accepted for import.
const Extension = ".zip"

// IsArchive reports whether path names a ZIP file.
func IsArchive(path string) bool {
	return strings.EqualFold(filepath.Ext(path), Extension)
}

// ExtractAll writes every regular-file entry of zipPath below dest,
// preserving relative paths and overwriting existing files. Directory
// entries are skipped; parents are created as needed. It returns the
// extracted file paths in archive order.
func ExtractAll(ctx context.Context, zipPath, dest string) ([]string, error) {
	rc, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, types.ErrArchive{Path: zipPath, Err: err}
	}
	defer rc.Close()

	root, err := filepath.Abs(dest)
	if err != nil {
		return nil, types.ErrArchive{Path: zipPath, Err: err}
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, types.ErrArchive{Path: zipPath, Err: err}
	}

	var written []string
	for _, f := range rc.File {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		if f.FileInfo().IsDir() || strings.HasSuffix(f.Name, "/") {
			continue
		}

		target, err := entryPath(root, f.Name)
		if err != nil {
			return written, types.ErrArchive{Path: zipPath, Err: err}
		}
		if err := extractFile(f, target); err != nil {
			return written, types.ErrArchive{Path: zipPath, Err: err}
		}
		written = append(written, target)
	}
	return written, nil
}

// entryPath resolves an entry name below root, rejecting names that would
// escape it.
func entryPath(root, name string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(name))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("entry %q escapes destination", name)
	}
	target := filepath.Join(root, clean)
	rel, err := filepath.Rel(root, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("entry %q escapes destination", name)
	}
	return target, nil
}

func extractFile(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	src, err := f.Open()
	if err != nil {
		return fmt.Errorf("open entry %q: %w", f.Name, err)
	}
	defer src.Close()

	mode := f.Mode().Perm()
	if mode == 0 {
		mode = 0o644
	}
	dst, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("write %s: %w", target, err)
	}
	return dst.Close()
}
