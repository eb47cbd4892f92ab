package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mydehq/texlib"
	"github.com/mydehq/texlib/internal/category"
	"github.com/mydehq/texlib/internal/ui"
)

type state int

const (
	stateInitial state = iota
	stateScanning
	stateBrowsing
	stateSearching
	stateDetail
	stateWarnings
)

var (
	titleStyle = ui.StyleCommand

	subTitleStyle = ui.StyleDim

	infoStyle    = ui.StyleCommand
	successStyle = ui.StyleHeader
	warningStyle = ui.StyleWarn
	errorStyle   = ui.StyleWarn

	actionBarMsgStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "229", Dark: "229"}).
				Background(lipgloss.AdaptiveColor{Light: "57", Dark: "57"}).
				Padding(0, 1)

	actionBarKeyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "57", Dark: "57"}).
				Background(lipgloss.AdaptiveColor{Light: "229", Dark: "229"}).
				Padding(0, 1).
				Bold(true)
)

const maxEvents = 100

type scanDoneMsg struct {
	res *texlib.Result
	err error
}

type eventMsg texlib.Event

// Model is the texture browser.
type Model struct {
	state    state
	path     string
	opts     []texlib.Option
	err      error
	quitting bool

	table table.Model
	input textinput.Model

	units      []*texlib.TextureUnit
	visible    []*texlib.TextureUnit
	warnings   []texlib.Warning
	categories []string // Cycle order; index 0 shows every category
	catIdx     int
	selected   map[string]bool

	events []string

	width     int
	height    int
	eventChan chan texlib.Event
}

// NewModel returns a browser for the library at path. reg supplies the
// category filter cycle; opts are passed to every scan.
func NewModel(path string, reg *category.Registry, opts ...texlib.Option) Model {
	absPath, _ := filepath.Abs(path)
	if reg == nil {
		reg = category.Default()
	}

	t := table.New(
		table.WithColumns(columns(0)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true).
		Foreground(lipgloss.Color("86"))
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	ti := textinput.New()
	ti.Placeholder = "name or tag"
	ti.Prompt = "/ "
	ti.CharLimit = 128
	ti.Width = 40

	// Uncategorized doubles as "all" in Filter, so it leads the cycle.
	cats := []string{category.Uncategorized}
	for _, n := range reg.Names() {
		if n != category.Uncategorized {
			cats = append(cats, n)
		}
	}

	events := make(chan texlib.Event, 64)
	scanOpts := append([]texlib.Option{
		texlib.WithRegistry(reg),
		texlib.WithoutThumbnails(),
	}, opts...)
	scanOpts = append(scanOpts, texlib.WithEvents(func(e texlib.Event) {
		events <- e
	}))

	return Model{
		state:      stateInitial,
		path:       absPath,
		opts:       scanOpts,
		eventChan:  events,
		table:      t,
		input:      ti,
		categories: cats,
		selected:   make(map[string]bool),
	}
}

func (m Model) Init() tea.Cmd {
	return m.listenForEvents()
}

// Selected returns the selected units in library order.
func (m Model) Selected() []*texlib.TextureUnit {
	var out []*texlib.TextureUnit
	for _, u := range m.units {
		if m.selected[u.Name] {
			out = append(out, u)
		}
	}
	return out
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		if m.state == stateSearching {
			return m.updateSearch(msg)
		}

		switch msg.String() {
		case "q":
			if m.state == stateDetail || m.state == stateWarnings {
				m.state = stateBrowsing
				return m, nil
			}
			if m.state != stateScanning {
				m.quitting = true
				return m, tea.Quit
			}

		case "esc", "backspace":
			if m.state == stateDetail || m.state == stateWarnings {
				m.state = stateBrowsing
				return m, nil
			}

		case "enter", "r":
			if m.state == stateInitial || m.state == stateBrowsing {
				return m, m.startScan()
			}

		case "/":
			if m.state == stateBrowsing {
				m.state = stateSearching
				m.input.Focus()
				return m, textinput.Blink
			}

		case "c":
			if m.state == stateBrowsing {
				m.catIdx = (m.catIdx + 1) % len(m.categories)
				m.applyFilter()
				return m, nil
			}

		case " ":
			if m.state == stateBrowsing {
				if u := m.current(); u != nil {
					m.selected[u.Name] = !m.selected[u.Name]
					m.updateTable()
				}
				return m, nil
			}

		case "d":
			if m.state == stateBrowsing && m.current() != nil {
				m.state = stateDetail
				return m, nil
			}

		case "w":
			if m.state == stateBrowsing && len(m.warnings) > 0 {
				m.state = stateWarnings
				return m, nil
			}
		}

	case scanDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = stateInitial
			return m, nil
		}
		m.units = msg.res.Units
		m.warnings = msg.res.Warnings
		m.pruneSelection()
		m.state = stateBrowsing
		m.applyFilter()
		return m, nil

	case eventMsg:
		m.pushEvent(texlib.Event(msg))
		return m, m.listenForEvents()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeTable()

	case error:
		m.err = msg
		return m, nil
	}

	if m.state == stateBrowsing {
		m.table, cmd = m.table.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// startScan begins a scan unless one is already running.
func (m *Model) startScan() tea.Cmd {
	if m.state == stateScanning {
		return nil
	}
	m.state = stateScanning
	m.err = nil
	m.events = nil
	return m.scanDir()
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.input.SetValue("")
		m.input.Blur()
		m.state = stateBrowsing
		m.applyFilter()
		return m, nil
	case "enter":
		m.input.Blur()
		m.state = stateBrowsing
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m *Model) query() texlib.Query {
	return texlib.Query{Text: m.input.Value(), Category: m.categories[m.catIdx]}
}

func (m *Model) applyFilter() {
	m.visible = texlib.Filter(m.units, m.query())
	m.updateTable()
	if m.table.Cursor() >= len(m.visible) {
		m.table.SetCursor(max(len(m.visible)-1, 0))
	}
}

// pruneSelection drops selected names that vanished in a rescan.
func (m *Model) pruneSelection() {
	present := make(map[string]bool, len(m.units))
	for _, u := range m.units {
		present[u.Name] = true
	}
	for name := range m.selected {
		if !present[name] {
			delete(m.selected, name)
		}
	}
}

func (m *Model) current() *texlib.TextureUnit {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.visible) {
		return nil
	}
	return m.visible[i]
}

func (m *Model) pushEvent(e texlib.Event) {
	var styled string
	switch e.Type {
	case texlib.EventSuccess:
		styled = successStyle.Render(e.Message)
	case texlib.EventWarning:
		styled = warningStyle.Render(e.Message)
	case texlib.EventError:
		styled = errorStyle.Render(e.Message)
	default:
		styled = infoStyle.Render(e.Message)
	}
	m.events = append(m.events, fmt.Sprintf("[%s] %s", e.Type, styled))
	if len(m.events) > maxEvents {
		m.events = m.events[len(m.events)-maxEvents:]
	}
}

func (m *Model) updateTable() {
	rows := make([]table.Row, 0, len(m.visible))
	for _, u := range m.visible {
		mark := " "
		if m.selected[u.Name] {
			mark = "✓"
		}
		rows = append(rows, table.Row{mark, u.Name, u.Category.DisplayName, passSummary(u), u.Resolution})
	}
	m.table.SetRows(rows)
}

func passSummary(u *texlib.TextureUnit) string {
	types := u.PassTypes()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return strings.Join(names, ",")
}

func columns(width int) []table.Column {
	const markW, catW, resW = 2, 22, 11
	nameW, passW := 30, 40
	if width > 0 {
		flex := width - 4 - markW - catW - resW - 10
		nameW = max(flex*2/5, 12)
		passW = max(flex-nameW, 12)
	}
	return []table.Column{
		{Title: "", Width: markW},
		{Title: "Texture", Width: nameW},
		{Title: "Category", Width: catW},
		{Title: "Passes", Width: passW},
		{Title: "Resolution", Width: resW},
	}
}

func (m *Model) resizeTable() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	m.table.SetColumns(columns(m.width))

	headerH := 6 // Title, path, filter line and padding
	footerH := 2
	contentH := m.height - headerH - footerH
	if contentH < 5 {
		contentH = 5
	}
	m.table.SetHeight(contentH - 2)
}

func (m Model) scanDir() tea.Cmd {
	path, opts := m.path, m.opts
	return func() tea.Msg {
		res, err := texlib.Load(context.Background(), path, opts...)
		return scanDoneMsg{res: res, err: err}
	}
}

func (m Model) listenForEvents() tea.Cmd {
	ch := m.eventChan
	return func() tea.Msg {
		return eventMsg(<-ch)
	}
}

func (m Model) renderActionBar(actions []string) string {
	var rendered []string
	for _, a := range actions {
		parts := strings.SplitN(a, " ", 2)
		if len(parts) == 2 {
			rendered = append(rendered, actionBarKeyStyle.Render(parts[0])+actionBarMsgStyle.Render(parts[1]))
		}
	}
	bar := strings.Join(rendered, lipgloss.NewStyle().Background(lipgloss.Color("57")).Render("  "))

	padW := m.width - lipgloss.Width(bar)
	if padW < 0 {
		padW = 0
	}
	padding := lipgloss.NewStyle().Background(lipgloss.Color("57")).Render(strings.Repeat(" ", padW))

	return bar + padding
}

func (m Model) centered(s string) string {
	return lipgloss.Place(m.width, m.height-6, lipgloss.Center, lipgloss.Center, s)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.width <= 0 || m.height <= 0 {
		return "Starting..."
	}

	var s strings.Builder

	header := fmt.Sprintf("%s  %s", titleStyle.Render("TEXLIB"), subTitleStyle.Render("LIBRARY: "+m.path))
	s.WriteString(lipgloss.NewStyle().Padding(1, 2).Render(header))
	s.WriteString("\n")

	var contentView string
	var actionBarView string

	switch m.state {
	case stateInitial:
		if m.err != nil {
			contentView = m.centered(errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress Enter to try again.", m.err)))
		} else {
			contentView = m.centered("Press Enter to scan the library")
		}
		actionBarView = m.renderActionBar([]string{"Enter Scan", "q Quit"})

	case stateScanning:
		contentView = m.centered(infoStyle.Render("Scanning library...") + "\n\n" + m.logBox(8))
		actionBarView = m.renderActionBar([]string{"ctrl+c Abort"})

	case stateBrowsing, stateSearching:
		contentView = lipgloss.NewStyle().Padding(0, 2).Render(m.statusLine() + "\n\n" + m.table.View())
		if m.state == stateSearching {
			actionBarView = m.renderActionBar([]string{"Enter Apply", "Esc Clear"})
		} else {
			actions := []string{"/ Search", "c Category", "Space Select", "d Details", "r Rescan"}
			if len(m.warnings) > 0 {
				actions = append(actions, "w Warnings")
			}
			actionBarView = m.renderActionBar(append(actions, "q Quit"))
		}

	case stateDetail:
		contentView = lipgloss.NewStyle().Padding(0, 2).Render(m.detailView(m.current()))
		actionBarView = m.renderActionBar([]string{"Esc Back", "q Back"})

	case stateWarnings:
		contentView = lipgloss.NewStyle().Padding(0, 2).Render(m.warningsView())
		actionBarView = m.renderActionBar([]string{"Esc Back", "q Back"})
	}

	s.WriteString(contentView)

	currentLines := strings.Count(s.String(), "\n")
	neededNewLines := (m.height - 2) - currentLines
	if neededNewLines > 0 {
		s.WriteString(strings.Repeat("\n", neededNewLines))
	} else {
		s.WriteString("\n")
	}
	s.WriteString(actionBarView)

	return s.String()
}

func (m Model) statusLine() string {
	parts := []string{fmt.Sprintf("%d of %d textures", len(m.visible), len(m.units))}
	if c := m.categories[m.catIdx]; c != category.Uncategorized {
		parts = append(parts, "category "+ui.StyleCategory.Render(c))
	}
	if n := len(m.selected); n > 0 {
		parts = append(parts, fmt.Sprintf("%d selected", n))
	}
	if n := len(m.warnings); n > 0 {
		parts = append(parts, warningStyle.Render(fmt.Sprintf("%d warnings", n)))
	}
	line := subTitleStyle.Render(strings.Join(parts, " · "))
	if m.state == stateSearching || m.input.Value() != "" {
		line += "   " + m.input.View()
	}
	return line
}

func (m Model) detailView(u *texlib.TextureUnit) string {
	if u == nil {
		return ""
	}
	composite, _ := texlib.ExportPath(u, texlib.Composite)

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", titleStyle.Render(u.Name))
	field := func(k, v string) {
		fmt.Fprintf(&b, "%s %s\n", subTitleStyle.Render(fmt.Sprintf("%-11s", k)), v)
	}
	field("Folder", ui.StylePath.Render(u.FolderPath))
	field("Category", ui.StyleCategory.Render(u.Category.DisplayName))
	field("Resolution", u.Resolution)
	if !u.ImportDate.IsZero() {
		field("Added", humanize.Time(u.ImportDate))
	}
	if u.Source != "" {
		field("Source", u.Source)
	}
	if len(u.Tags) > 0 {
		field("Tags", strings.Join(u.Tags, ", "))
	}

	b.WriteString("\n")
	for _, p := range u.Passes {
		mark := "  "
		if p.Path == composite {
			mark = successStyle.Render("▸ ")
		}
		fmt.Fprintf(&b, "%s%-18s %s\n", mark, infoStyle.Render(p.Type.String()), p.Name)
	}
	b.WriteString("\n" + subTitleStyle.Render("▸ exported by default"))
	return b.String()
}

func (m Model) warningsView() string {
	var b strings.Builder
	b.WriteString(warningStyle.Render(fmt.Sprintf("%d warnings", len(m.warnings))) + "\n\n")
	limit := max(m.height-10, 1)
	for i, w := range m.warnings {
		if i == limit {
			fmt.Fprintf(&b, "%s\n", subTitleStyle.Render(fmt.Sprintf("... and %d more", len(m.warnings)-limit)))
			break
		}
		fmt.Fprintf(&b, "%s %s\n", ui.StyleHeader.Render(w.Unit+":"), w.Err)
	}
	return b.String()
}

func (m Model) logBox(lines int) string {
	start := 0
	if len(m.events) > lines {
		start = len(m.events) - lines
	}
	body := subTitleStyle.Render("Waiting for events...")
	if tail := m.events[start:]; len(tail) > 0 {
		body = strings.Join(tail, "\n")
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Width(max(m.width-10, 20)).
		Render(titleStyle.Render("Event Logs") + "\n" + body)
}
