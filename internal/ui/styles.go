package ui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mydehq/texlib/internal/types"
)

var (
	// Adaptive Color definitions
	colorHeader = lipgloss.CompleteAdaptiveColor{
		Dark:  lipgloss.CompleteColor{TrueColor: "#00af00", ANSI256: "34", ANSI: "2"},
		Light: lipgloss.CompleteColor{TrueColor: "#008700", ANSI256: "28", ANSI: "2"},
	}
	colorCommand = lipgloss.CompleteAdaptiveColor{
		Dark:  lipgloss.CompleteColor{TrueColor: "#5fffff", ANSI256: "86", ANSI: "6"},
		Light: lipgloss.CompleteColor{TrueColor: "#008787", ANSI256: "30", ANSI: "6"},
	}
	colorPath = lipgloss.CompleteAdaptiveColor{
		Dark:  lipgloss.CompleteColor{TrueColor: "#5f5fff", ANSI256: "63", ANSI: "4"},
		Light: lipgloss.CompleteColor{TrueColor: "#0000af", ANSI256: "19", ANSI: "4"},
	}
	colorCategory = lipgloss.CompleteAdaptiveColor{
		Dark:  lipgloss.CompleteColor{TrueColor: "#d7ff87", ANSI256: "192", ANSI: "11"},
		Light: lipgloss.CompleteColor{TrueColor: "#5f8700", ANSI256: "64", ANSI: "10"},
	}
	colorDim = lipgloss.CompleteAdaptiveColor{
		Dark:  lipgloss.CompleteColor{TrueColor: "#9e9e9e", ANSI256: "247", ANSI: "8"},
		Light: lipgloss.CompleteColor{TrueColor: "#444444", ANSI256: "238", ANSI: "0"},
	}
	colorWarn = lipgloss.CompleteAdaptiveColor{
		Dark:  lipgloss.CompleteColor{TrueColor: "#ff5faf", ANSI256: "204", ANSI: "13"},
		Light: lipgloss.CompleteColor{TrueColor: "#af005f", ANSI256: "125", ANSI: "5"},
	}

	// Exported Styles for CLI and TUI
	StyleHeader   = lipgloss.NewStyle().Bold(true).Foreground(colorHeader)
	StyleCommand  = lipgloss.NewStyle().Bold(true).Foreground(colorCommand)
	StylePath     = lipgloss.NewStyle().Foreground(colorPath)
	StyleCategory = lipgloss.NewStyle().Foreground(colorCategory)
	StyleDim      = lipgloss.NewStyle().Foreground(colorDim)
	StyleWarn     = lipgloss.NewStyle().Foreground(colorWarn)

	// StyleBanner is the main wizard title banner
	StyleBanner = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCommand).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorHeader).
			Padding(0, 4).
			Align(lipgloss.Center)
)

// ApplyTheme tells lipgloss which half of the adaptive colors to use,
// overriding terminal background detection.
func ApplyTheme(dark bool) {
	lipgloss.SetHasDarkBackground(dark)
}

// TexlibTheme returns the huh theme used by all forms.
func TexlibTheme(dark bool) *huh.Theme {
	if dark {
		return huh.ThemeCatppuccin()
	}
	return huh.ThemeBase16()
}

// TexlibKeyMap maps esc to "back" and ctrl+c to "quit".
func TexlibKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()

	// Both quit the form; wizardFilter records which one it was.
	km.Quit.SetKeys("esc", "ctrl+c")
	km.Quit.SetHelp("ctrl+c", "quit")

	km.Select.Submit.SetHelp("enter", "choose • esc: back • ctrl+c: quit")
	km.MultiSelect.Submit.SetHelp("enter", "confirm • esc: back • ctrl+c: quit")
	km.Input.Next.SetHelp("enter", "next • esc: back • ctrl+c: quit")
	km.Input.Submit.SetHelp("enter", "submit • esc: back • ctrl+c: quit")
	km.Confirm.Submit.SetHelp("enter", "confirm • esc: back • ctrl+c: quit")
	km.Note.Next.SetHelp("enter", "next • esc: back • ctrl+c: quit")
	km.Note.Submit.SetHelp("enter", "submit • esc: back • ctrl+c: quit")

	return km
}

// ErrUserBack is returned when the user explicitly requests to go to the previous step.
var ErrUserBack = errors.New("user navigated back")

// interceptedKey tracks the last key that triggered an abort (esc vs ctrl+c).
var interceptedKey string

func wizardFilter(m tea.Model, msg tea.Msg) tea.Msg {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.Type {
		case tea.KeyEsc:
			interceptedKey = "esc"
		case tea.KeyCtrlC:
			interceptedKey = "ctrl+c"
		}
	}
	return msg
}

// RunForm runs a huh form, remembering whether esc or ctrl+c ended it.
func RunForm(f *huh.Form) error {
	interceptedKey = ""
	return f.WithProgramOptions(tea.WithFilter(wizardFilter)).Run()
}

// ClearAndPrintBanner clears the terminal and prints the texlib header.
func ClearAndPrintBanner(subtitle string) {
	fmt.Print("\033[H\033[2J")
	fmt.Println()
	fmt.Println(StyleBanner.Render("texlib"))
	fmt.Println()
	if subtitle != "" {
		fmt.Println(StyleDim.Italic(true).Render("  " + subtitle))
		fmt.Println()
	}
}

// ColorizeEvent styles an event message for terminal output.
//
//	"Imported: pack.zip → /lib/pack"  label, source and target styled apart
//	"Loaded: Rusty_Steel_Panel"       label and value styled apart
func ColorizeEvent(e types.Event) string {
	msg := e.Message
	if e.Type == types.EventWarning || e.Type == types.EventError {
		return StyleWarn.Render(msg)
	}

	if parts := strings.SplitN(msg, " → ", 2); len(parts) == 2 {
		left, right := parts[0], parts[1]

		var label string
		if idx := strings.Index(left, ": "); idx >= 0 {
			label = StyleHeader.Render(left[:idx+1]) + " "
			left = left[idx+2:]
		}
		return fmt.Sprintf("%s%s %s %s", label, StyleDim.Render(left), StyleDim.Render("→"), StylePath.Render(right))
	}

	if idx := strings.Index(msg, ": "); idx >= 0 {
		return fmt.Sprintf("%s %s", StyleHeader.Render(msg[:idx+1]), StyleCommand.Render(msg[idx+2:]))
	}
	return msg
}
