package ui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mydehq/texlib/internal/scanner"
)

// promptLibraryPath asks for the library folder. It must exist.
func promptLibraryPath(theme *huh.Theme, current string) (string, error) {
	path := current
	err := RunForm(huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Library folder").
				Description("\nEach subfolder of the library holds one material's image files").
				Placeholder("~/Textures").
				Value(&path).
				Validate(validateDir),
		),
	).WithTheme(theme).WithKeyMap(TexlibKeyMap()))
	if err != nil {
		return "", err
	}
	return expandHome(strings.TrimSpace(path)), nil
}

// selectFormats lets the user pick which extensions to scan. Formats found
// in the library are pre-checked.
func selectFormats(theme *huh.Theme, detected, current []string) ([]string, error) {
	for {
		ClearAndPrintBanner("Image formats")

		all := slices.Clone(scanner.DefaultFormats)
		for _, f := range current {
			if !slices.Contains(all, f) {
				all = append(all, f)
			}
		}

		selected := slices.Clone(current)
		if len(detected) > 0 {
			selected = slices.Clone(detected)
		}

		opts := make([]huh.Option[string], 0, len(all)+1)
		for _, f := range all {
			label := f
			if slices.Contains(detected, f) {
				label += StyleDim.Render("  (found in library)")
			}
			opts = append(opts, huh.NewOption(label, f).Selected(slices.Contains(selected, f)))
		}
		opts = append(opts, huh.NewOption("Add custom format...", "__custom__"))

		err := RunForm(huh.NewForm(
			huh.NewGroup(
				huh.NewMultiSelect[string]().
					Title("Formats to scan\n").
					Description("Uncheck formats you don't want\n").
					Options(opts...).
					Value(&selected).
					Validate(func(s []string) error {
						if len(s) == 0 {
							return fmt.Errorf("select at least one format")
						}
						return nil
					}),
			),
		).WithTheme(theme).WithKeyMap(TexlibKeyMap()))
		if err != nil {
			return nil, err
		}

		var formats []string
		hasCustom := false
		for _, s := range selected {
			if s == "__custom__" {
				hasCustom = true
				continue
			}
			formats = append(formats, s)
		}

		if hasCustom {
			custom, err := promptCustomFormats(theme)
			if err != nil {
				if errors.Is(HandleAbort(err), ErrUserBack) {
					continue
				}
				return nil, err
			}
			formats = append(formats, custom...)
		}
		if len(formats) == 0 {
			continue
		}
		return scanner.NormalizeFormats(formats), nil
	}
}

func promptCustomFormats(theme *huh.Theme) ([]string, error) {
	input := ""
	err := RunForm(huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Custom formats").
				Description("\nComma-separated extensions, e.g. .tga, .dds. Leave empty to go back").
				Value(&input),
		),
	).WithTheme(theme).WithKeyMap(TexlibKeyMap()))
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input) == "" {
		return nil, ErrUserBack
	}
	return parseCommaSeparated(input), nil
}

// promptTuning asks for the preview size and scan parallelism.
func promptTuning(theme *huh.Theme, size float64, workers int) (float64, int, error) {
	sizeStr := strconv.FormatFloat(size, 'f', -1, 64)
	workersStr := strconv.Itoa(workers)

	err := RunForm(huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Thumbnail size").
				Description("\nPreview width in pixels").
				Value(&sizeStr).
				Validate(validatePositive),
			huh.NewInput().
				Title("Scan workers").
				Description("\nFolders scanned in parallel. 0 uses one per CPU").
				Value(&workersStr).
				Validate(validateInt),
		),
	).WithTheme(theme).WithKeyMap(TexlibKeyMap()))
	if err != nil {
		return 0, 0, err
	}

	size, _ = strconv.ParseFloat(strings.TrimSpace(sizeStr), 64)
	workers, _ = strconv.Atoi(strings.TrimSpace(workersStr))
	return size, workers, nil
}

// promptTheme asks for the color theme.
func promptTheme(theme *huh.Theme, dark bool) (bool, error) {
	err := RunForm(huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Color theme").
				Description("\nColors used by the CLI and the browser").
				Affirmative("Dark").
				Negative("Light").
				Value(&dark),
		),
	).WithTheme(theme).WithKeyMap(TexlibKeyMap()))
	return dark, err
}

// parseCommaSeparated splits a comma-separated string into trimmed, non-empty parts.
func parseCommaSeparated(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			result = append(result, part)
		}
	}
	return result
}

func validateDir(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("a folder is required")
	}
	info, err := os.Stat(expandHome(s))
	if err != nil {
		return fmt.Errorf("folder does not exist")
	}
	if !info.IsDir() {
		return fmt.Errorf("not a folder")
	}
	return nil
}

func validateInt(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("must be a number")
	}
	if n < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

func validatePositive(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 {
		return fmt.Errorf("must be a positive number")
	}
	return nil
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
