// Package cli implements the texlib command line.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/mydehq/texlib"
	"github.com/mydehq/texlib/internal/config"
	"github.com/mydehq/texlib/internal/types"
	"github.com/mydehq/texlib/internal/ui"
	"github.com/spf13/cobra"
)

var (
	flagLibrary string
	flagVerbose bool
	flagConfig  string

	logger       *log.Logger
	settings     types.Settings
	settingsPath string
)

// RootCmd is the texlib command.
var RootCmd = &cobra.Command{
	Use:   "texlib",
	Short: "Browse, classify and import PBR texture sets",
	Long: "texlib scans a texture library, groups image files into materials, " +
		"classifies each file as a PBR pass and each material into a category.",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setup()
	},
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&flagLibrary, "library", "l", "", "Library folder (overrides settings)")
	RootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug output")
	RootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Settings file (default $"+config.EnvPath+" or the user config dir)")
}

// Execute runs the root command.
func Execute() {
	if err := RootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func setup() {
	logger = ui.NewLogger(os.Stderr, flagVerbose)
	ui.SetLogger(logger)

	settingsPath = flagConfig
	if settingsPath == "" {
		p, err := config.Path()
		if err != nil {
			logger.Debug("No settings location", "error", err)
		}
		settingsPath = p
	}

	var err error
	settings, err = config.Load(settingsPath)
	if err != nil {
		logger.Debug("Using default settings", "path", settingsPath, "error", err)
	}
	ui.ApplyTheme(settings.IsDarkTheme)
}

// fail logs err and exits.
func fail(msg string, err error) {
	logger.Error(msg, "error", err)
	os.Exit(1)
}

// libraryPath resolves the library folder from args, --library or settings.
func libraryPath(args []string) string {
	path := settings.LibraryPath
	if flagLibrary != "" {
		path = flagLibrary
	}
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		logger.Error("No library configured", "hint", "run 'texlib init' or pass --library")
		os.Exit(1)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		fail("Failed to resolve path", err)
	}
	return abs
}

// libraryOptions turns the settings into library options.
func libraryOptions() []texlib.Option {
	reg, err := config.Registry(settings)
	if err != nil {
		fail("Invalid category table", err)
	}
	return []texlib.Option{
		texlib.WithRegistry(reg),
		texlib.WithClassifier(config.Classifier(settings)),
		texlib.WithFormats(settings.Formats),
		texlib.WithWorkers(settings.Workers),
		texlib.WithLogger(logger),
	}
}

// loadLibrary scans the library, exiting on failure.
func loadLibrary(ctx context.Context, path string, extra ...texlib.Option) *texlib.Result {
	opts := append(libraryOptions(), extra...)
	res, err := texlib.Load(ctx, path, opts...)
	if err != nil {
		fail(fmt.Sprintf("Failed to scan %s", path), err)
	}
	return res
}

// findUnit scans the configured library and returns the named unit.
func findUnit(ctx context.Context, name string) *texlib.TextureUnit {
	res := loadLibrary(ctx, libraryPath(nil), texlib.WithoutThumbnails())
	u, err := texlib.Find(res.Units, name)
	if err != nil {
		fail("Unknown texture", err)
	}
	return u
}
