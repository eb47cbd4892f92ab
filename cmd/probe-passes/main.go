package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mydehq/texlib/internal/config"
	"github.com/mydehq/texlib/internal/scanner"
)

func main() {
	root := "."
	if len(os.Args) > 1 {
		root = os.Args[1]
	}

	settings, _ := config.LoadGlobal()
	classifier := config.Classifier(settings)
	formats := scanner.NormalizeFormats(settings.Formats)
	if len(formats) == 0 {
		formats = scanner.DefaultFormats
	}

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !scanner.IsImage(path, formats) {
			return nil
		}

		rel, _ := filepath.Rel(root, path)
		fmt.Printf("%-14s %s\n", classifier.ClassifyFile(path), rel)
		return nil
	})

	if err != nil {
		fmt.Printf("Error walking path: %v\n", err)
		os.Exit(1)
	}
}
