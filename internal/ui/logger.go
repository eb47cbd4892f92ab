package ui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var logger *log.Logger

// SetLogger injects the application logger into the UI package.
func SetLogger(l *log.Logger) {
	logger = l
}

// NewLogger returns a styled logger writing to w. verbose enables debug
// output with timestamps.
func NewLogger(w io.Writer, verbose bool) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: verbose,
		Level:           log.InfoLevel,
	})
	if verbose {
		l.SetLevel(log.DebugLevel)
	}
	ConfigureLoggerStyles(l)
	return l
}

// ConfigureLoggerStyles gives each level a fixed-width colored label.
func ConfigureLoggerStyles(l *log.Logger) {
	if l == nil {
		return
	}
	styles := log.DefaultStyles()

	levels := []struct {
		level log.Level
		label string
		color string
	}{
		{log.DebugLevel, "DEBUG", "63"},
		{log.InfoLevel, "INFO ", "86"},
		{log.WarnLevel, "WARN ", "192"},
		{log.ErrorLevel, "ERROR", "204"},
		{log.FatalLevel, "FATAL", "196"},
	}
	for _, lv := range levels {
		styles.Levels[lv.level] = lipgloss.NewStyle().
			SetString(lv.label).
			Bold(true).
			Foreground(lipgloss.Color(lv.color))
	}
	styles.Keys["path"] = StylePath
	styles.Keys["unit"] = StyleCommand

	l.SetStyles(styles)
}
