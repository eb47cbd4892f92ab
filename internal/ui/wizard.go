package ui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/mydehq/texlib/internal/config"
	"github.com/mydehq/texlib/internal/types"
	"gopkg.in/yaml.v3"
)

// InitFlags carries CLI flags that pre-answer wizard steps.
type InitFlags struct {
	ConfigPath string
	Library    string
	HasLibrary bool
}

// RunInitWizard walks the user through the settings and saves them.
// library → formats → tuning → theme → preview.
func RunInitWizard(current types.Settings, flags InitFlags) (types.Settings, error) {
	s := current.Clone()
	theme := TexlibTheme(s.IsDarkTheme)
	if flags.HasLibrary {
		s.LibraryPath = flags.Library
	}

	step := 0
	if flags.HasLibrary {
		step = 1
	}

	for {
		switch step {
		case 0:
			ClearAndPrintBanner("Library")
			path, err := promptLibraryPath(theme, s.LibraryPath)
			if err != nil {
				if errors.Is(HandleAbort(err), ErrUserBack) {
					// First step: back means abort.
					cancelled()
				}
				return current, err
			}
			abs, err := filepath.Abs(path)
			if err != nil {
				return current, err
			}
			s.LibraryPath = abs
			step++

		case 1:
			scan := surveyLibrary(s.LibraryPath, s.Formats)
			var detected []string
			if scan != nil {
				detected = scan.DetectedFormats
			}
			formats, err := selectFormats(theme, detected, s.Formats)
			if err != nil {
				if errors.Is(HandleAbort(err), ErrUserBack) {
					if flags.HasLibrary {
						cancelled()
					}
					step--
					continue
				}
				return current, err
			}
			s.Formats = formats
			step++

		case 2:
			ClearAndPrintBanner("Scanning")
			size, workers, err := promptTuning(theme, s.ThumbnailSize, s.Workers)
			if err != nil {
				if errors.Is(HandleAbort(err), ErrUserBack) {
					step--
					continue
				}
				return current, err
			}
			s.ThumbnailSize, s.Workers = size, workers
			step++

		case 3:
			ClearAndPrintBanner("Appearance")
			dark, err := promptTheme(theme, s.IsDarkTheme)
			if err != nil {
				if errors.Is(HandleAbort(err), ErrUserBack) {
					step--
					continue
				}
				return current, err
			}
			s.IsDarkTheme = dark
			step++

		case 4:
			ClearAndPrintBanner("Review")
			confirmed, err := showPreviewAndConfirm(s, theme)
			if err != nil {
				if errors.Is(HandleAbort(err), ErrUserBack) {
					step--
					continue
				}
				return current, err
			}
			if !confirmed {
				cancelled()
			}

			if err := config.Save(flags.ConfigPath, s); err != nil {
				return current, fmt.Errorf("failed to save settings: %w", err)
			}
			if logger != nil {
				logger.Info(fmt.Sprintf("%s: %s", StyleHeader.Render("Saved settings"), StylePath.Render(flags.ConfigPath)))
			}
			return s, nil
		}
	}
}

// surveyLibrary runs config.Scan behind a spinner. Errors are only logged:
// the survey just pre-selects formats.
func surveyLibrary(dir string, formats []string) *config.ScanResult {
	var res *config.ScanResult
	var scanErr error

	err := spinner.New().
		Title(fmt.Sprintf("%s %s", StyleDim.Render("Surveying"), StylePath.Render(dir))).
		Action(func() {
			res, scanErr = config.Scan(dir, formats)
		}).
		Run()
	if err == nil {
		err = scanErr
	}
	if err != nil {
		if logger != nil {
			logger.Debug("Library survey failed", "path", dir, "error", err)
		}
		return nil
	}
	if logger != nil {
		logger.Debug("Library survey", "folders", res.TotalFolders, "textures", res.TextureFolders, "formats", res.DetectedFormats)
	}
	return res
}

// showPreviewAndConfirm shows the settings as YAML and asks to write them.
func showPreviewAndConfirm(s types.Settings, theme *huh.Theme) (bool, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return false, fmt.Errorf("failed to preview settings: %w", err)
	}

	confirmed := true
	err = RunForm(huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Settings preview").
				Description("\n"+string(data)),
			huh.NewConfirm().
				Title("Write settings?").
				Value(&confirmed),
		),
	).WithTheme(theme).WithKeyMap(TexlibKeyMap()))
	if err != nil {
		return false, err
	}
	return confirmed, nil
}

// HandleAbort maps huh.ErrUserAborted to ErrUserBack so wizards can step
// back on esc. ctrl+c exits the program.
func HandleAbort(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		if interceptedKey == "ctrl+c" {
			cancelled()
		}
		return ErrUserBack
	}
	return err
}

func cancelled() {
	fmt.Println()
	if logger != nil {
		logger.Info(StyleDim.Render("Init cancelled"))
	}
	os.Exit(0)
}
