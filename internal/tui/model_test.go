package tui

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mydehq/texlib"
	"github.com/mydehq/texlib/internal/category"
	"github.com/mydehq/texlib/internal/pass"
)

func unit(reg *category.Registry, name string, tags ...string) *texlib.TextureUnit {
	return &texlib.TextureUnit{
		Name:       name,
		FolderPath: "/lib/" + name,
		Category:   reg.Resolve(name),
		Passes: []texlib.TexturePass{
			{Name: name + "_basecolor.png", Path: "/lib/" + name + "/" + name + "_basecolor.png", Type: pass.BaseColor},
		},
		Resolution: "64x64",
		Tags:       tags,
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func loaded(t *testing.T) Model {
	t.Helper()
	reg := category.Default()
	m := NewModel("/lib", reg)
	m = send(t, m,
		tea.WindowSizeMsg{Width: 120, Height: 40},
		scanDoneMsg{res: &texlib.Result{Units: []*texlib.TextureUnit{
			unit(reg, "Brushed_Steel"),
			unit(reg, "Marble_Floor", "lobby"),
			unit(reg, "Rusty_Iron"),
			unit(reg, "Wool_Knit"),
		}}},
	)
	return m
}

func names(units []*texlib.TextureUnit) []string {
	out := make([]string, len(units))
	for i, u := range units {
		out[i] = u.Name
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestScanDoneShowsAllUnits(t *testing.T) {
	m := loaded(t)
	if m.state != stateBrowsing {
		t.Fatalf("state = %v, want browsing", m.state)
	}
	if len(m.visible) != 4 || len(m.table.Rows()) != 4 {
		t.Errorf("visible = %d rows = %d, want 4", len(m.visible), len(m.table.Rows()))
	}
}

func TestCategoryCycle(t *testing.T) {
	m := loaded(t)
	if m.categories[0] != category.Uncategorized || m.categories[1] != category.Metal {
		t.Fatalf("cycle starts %v", m.categories[:2])
	}

	m = send(t, m, key("c"))
	if got, want := names(m.visible), []string{"Brushed_Steel", "Rusty_Iron"}; !equal(got, want) {
		t.Errorf("Metal filter = %v, want %v", got, want)
	}

	for range len(m.categories) - 1 {
		m = send(t, m, key("c"))
	}
	if len(m.visible) != 4 {
		t.Errorf("full cycle visible = %d, want 4", len(m.visible))
	}
}

func TestSearch(t *testing.T) {
	m := loaded(t)
	m = send(t, m, key("/"))
	if m.state != stateSearching {
		t.Fatalf("state = %v, want searching", m.state)
	}

	for _, r := range "LOB" {
		m = send(t, m, key(string(r)))
	}
	if got := names(m.visible); !equal(got, []string{"Marble_Floor"}) {
		t.Errorf("tag search = %v", got)
	}

	// Keys typed into the search box are not commands.
	m = send(t, m, key("c"))
	if m.catIdx != 0 {
		t.Error("c changed category while searching")
	}

	m = send(t, m, key("esc"))
	if m.state != stateBrowsing || m.input.Value() != "" || len(m.visible) != 4 {
		t.Errorf("esc: state=%v input=%q visible=%d", m.state, m.input.Value(), len(m.visible))
	}
}

func TestSelection(t *testing.T) {
	m := loaded(t)
	m = send(t, m, key(" "))
	if got := names(m.Selected()); !equal(got, []string{"Brushed_Steel"}) {
		t.Fatalf("Selected() = %v", got)
	}
	if m.table.Rows()[0][0] != "✓" {
		t.Errorf("row mark = %q", m.table.Rows()[0][0])
	}

	m = send(t, m, key(" "))
	if len(m.Selected()) != 0 {
		t.Error("second space did not clear selection")
	}
}

func TestRescanPrunesSelection(t *testing.T) {
	m := loaded(t)
	m = send(t, m, key(" "))

	reg := category.Default()
	m = send(t, m, scanDoneMsg{res: &texlib.Result{Units: []*texlib.TextureUnit{unit(reg, "Wool_Knit")}}})
	if len(m.Selected()) != 0 || len(m.selected) != 0 {
		t.Errorf("stale selection kept: %v", m.selected)
	}
}

func TestRescanIgnoredWhileScanning(t *testing.T) {
	m := NewModel("/lib", nil)
	next, cmd := m.Update(key("enter"))
	m = next.(Model)
	if m.state != stateScanning || cmd == nil {
		t.Fatalf("enter: state=%v cmd=%v", m.state, cmd != nil)
	}

	for _, k := range []string{"enter", "r"} {
		next, cmd = m.Update(key(k))
		if cmd != nil {
			t.Errorf("%q started a second scan", k)
		}
		if next.(Model).state != stateScanning {
			t.Errorf("%q left scanning state", k)
		}
	}
}

func TestDetailAndWarnings(t *testing.T) {
	m := loaded(t)
	m = send(t, m, key("w"))
	if m.state != stateBrowsing {
		t.Error("w opened an empty warnings panel")
	}

	m = send(t, m, key("d"))
	if m.state != stateDetail {
		t.Fatalf("d: state = %v", m.state)
	}
	if v := m.View(); !bytes.Contains([]byte(v), []byte("Brushed_Steel_basecolor.png")) {
		t.Error("detail view does not list passes")
	}
	m = send(t, m, key("esc"))
	if m.state != stateBrowsing {
		t.Errorf("esc: state = %v", m.state)
	}
}

func TestScanDir(t *testing.T) {
	lib := t.TempDir()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"Copper_Plate", "Granite_Wall"} {
		dir := filepath.Join(lib, name)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, "albedo.png"), buf.Bytes(), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	m := NewModel(lib, nil)
	msg := m.scanDir()()
	done, ok := msg.(scanDoneMsg)
	if !ok || done.err != nil {
		t.Fatalf("scanDir() = %#v", msg)
	}
	m = send(t, m, done)
	if got := names(m.units); !equal(got, []string{"Copper_Plate", "Granite_Wall"}) {
		t.Errorf("units = %v", got)
	}
	if m.units[0].Category.Name != category.Metal {
		t.Errorf("category = %s", m.units[0].Category.Name)
	}

	// Scan progress arrives on the event channel.
	if e := (<-m.eventChan); e.Type != texlib.EventInfo {
		t.Errorf("first event = %+v", e)
	}
}
