package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mydehq/texlib"
	"github.com/mydehq/texlib/internal/config"
	"github.com/mydehq/texlib/internal/tui"
	"github.com/mydehq/texlib/internal/ui"
)

func main() {
	settings, err := config.LoadGlobal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: using default settings: %v\n", err)
	}
	ui.ApplyTheme(settings.IsDarkTheme)

	path := settings.LibraryPath
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	if path == "" {
		path = "."
	}

	reg, err := config.Registry(settings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid category table: %v\n", err)
		os.Exit(1)
	}

	m := tui.NewModel(path, reg,
		texlib.WithClassifier(config.Classifier(settings)),
		texlib.WithFormats(settings.Formats),
		texlib.WithWorkers(settings.Workers),
	)
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}

	// Selected textures are printed for piping into other tools.
	for _, u := range final.(tui.Model).Selected() {
		if out, err := texlib.ExportPath(u, texlib.Composite); err == nil {
			fmt.Println(out)
		}
	}
}
