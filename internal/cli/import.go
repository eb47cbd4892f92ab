package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh/spinner"
	"github.com/dustin/go-humanize"
	"github.com/mydehq/texlib"
	"github.com/mydehq/texlib/internal/ui"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <zip...>",
	Short: "Extract ZIP texture packs into the library",
	Long:  "Extracts each archive into <library>/<archive name>/ and rescans the library. A failing archive does not stop the others.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runImport(cmd.Context(), libraryPath(nil), args)
	},
}

func init() {
	RootCmd.AddCommand(importCmd)
}

func runImport(ctx context.Context, library string, zips []string) {
	var total uint64
	for i, z := range zips {
		abs, err := filepath.Abs(z)
		if err != nil {
			fail("Failed to resolve path", err)
		}
		zips[i] = abs
		if info, err := os.Stat(abs); err == nil {
			total += uint64(info.Size())
		}
	}

	var events []texlib.Event
	handler := func(e texlib.Event) {
		events = append(events, e)
	}

	var dirs []string
	var importErr error
	err := spinner.New().
		Title(fmt.Sprintf("%s %s", ui.StyleDim.Render("Importing"), ui.StyleCommand.Render(fmt.Sprintf("%d archives (%s)", len(zips), humanize.Bytes(total))))).
		Action(func() {
			dirs, importErr = texlib.ImportAll(ctx, zips, library, texlib.WithEvents(handler), texlib.WithLogger(logger))
		}).
		Run()
	if err != nil {
		fail("Spinner failed", err)
	}

	for _, e := range events {
		if e.Type == texlib.EventInfo {
			continue
		}
		fmt.Println(ui.ColorizeEvent(e))
	}
	if importErr != nil {
		logger.Error("Some archives failed", "error", importErr)
	}

	res := loadLibrary(ctx, library, texlib.WithoutThumbnails())
	imported := 0
	for _, u := range res.Units {
		for _, d := range dirs {
			if u.FolderPath == d {
				imported++
			}
		}
	}
	fmt.Printf("\n%s %s\n", ui.StyleHeader.Render("Library:"), fmt.Sprintf("%d textures, %d new", len(res.Units), imported))
	printWarnings(res.Warnings)

	if importErr != nil {
		os.Exit(1)
	}
}
