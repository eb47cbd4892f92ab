package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// ScanResult summarizes what a candidate library folder contains.
type ScanResult struct {
	DetectedFormats []string // Extensions seen, in first-seen order
	TextureFolders  int      // Subdirectories holding at least one image
	TotalFolders    int
	HasImages       bool
}

// Scan surveys dir to help the user pick a library and the formats to
// track. It uses the provided formats list to identify relevant files.
func Scan(dir string, formats []string) (*ScanResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	result := &ScanResult{}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		result.TotalFolders++

		found := false
		err := filepath.WalkDir(filepath.Join(dir, e.Name()), func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			ext := strings.ToLower(filepath.Ext(path))
			if !slices.Contains(formats, ext) {
				return nil
			}
			found = true
			if !slices.Contains(result.DetectedFormats, ext) {
				result.DetectedFormats = append(result.DetectedFormats, ext)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		if found {
			result.TextureFolders++
			result.HasImages = true
		}
	}

	return result, nil
}
