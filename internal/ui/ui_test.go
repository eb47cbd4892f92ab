package ui

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/mydehq/texlib/internal/types"
)

func TestParseCommaSeparated(t *testing.T) {
	got := parseCommaSeparated(" .tga, ,.dds,")
	if want := []string{".tga", ".dds"}; !slices.Equal(got, want) {
		t.Errorf("parseCommaSeparated() = %v; want %v", got, want)
	}
}

func TestValidators(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f.png")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := validateDir(dir); err != nil {
		t.Errorf("validateDir(dir) = %v", err)
	}
	for _, bad := range []string{"", file, filepath.Join(dir, "missing")} {
		if validateDir(bad) == nil {
			t.Errorf("validateDir(%q) should fail", bad)
		}
	}

	intCases := map[string]bool{"": true, "4": true, " 12 ": true, "-1": false, "x": false}
	for in, ok := range intCases {
		if got := validateInt(in) == nil; got != ok {
			t.Errorf("validateInt(%q) ok = %v; want %v", in, got, ok)
		}
	}

	posCases := map[string]bool{"150": true, "96.5": true, "0": false, "-2": false, "": false}
	for in, ok := range posCases {
		if got := validatePositive(in) == nil; got != ok {
			t.Errorf("validatePositive(%q) ok = %v; want %v", in, got, ok)
		}
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := expandHome("~/Textures"); got != filepath.Join(home, "Textures") {
		t.Errorf("expandHome(~/Textures) = %q", got)
	}
	if got := expandHome("/abs/path"); got != "/abs/path" {
		t.Errorf("expandHome(/abs/path) = %q", got)
	}
}

func TestColorizeEventKeepsText(t *testing.T) {
	events := []types.Event{
		{Type: types.EventSuccess, Message: "Imported: pack.zip → /lib/pack"},
		{Type: types.EventSuccess, Message: "Loaded: Rusty_Steel_Panel"},
		{Type: types.EventWarning, Message: "oak: decode failed"},
		{Type: types.EventInfo, Message: "plain"},
	}
	for _, e := range events {
		out := ColorizeEvent(e)
		for _, word := range strings.Fields(strings.ReplaceAll(e.Message, "→", "")) {
			if !strings.Contains(out, word) {
				t.Errorf("ColorizeEvent(%q) = %q; lost %q", e.Message, out, word)
			}
		}
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, false)
	l.Debug("hidden")
	l.Info("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("non-verbose logger output = %q", buf.String())
	}

	buf.Reset()
	l = NewLogger(&buf, true)
	if l.GetLevel() != log.DebugLevel {
		t.Errorf("verbose logger level = %v", l.GetLevel())
	}
}
