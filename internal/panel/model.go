// Package panel is the interactive cleaner screen: a toggleable tree of
// categories, run progress and the last run's summary.
package panel

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/lakshaymaurya-felt/syscleaner/internal/clean"
	"github.com/lakshaymaurya-felt/syscleaner/internal/guard"
	"github.com/lakshaymaurya-felt/syscleaner/internal/ui"
)

// pollInterval is how often a running engine is observed.
const pollInterval = 100 * time.Millisecond

// Cleaner is the engine surface the panel drives.
type Cleaner interface {
	Analyze(*clean.Catalog) error
	Clean(*clean.Catalog) error
	State() clean.State
	Progress() float64
	ConsumeSummary() clean.Summary
	AddCustomPath(path string) (clean.CleanOption, error)
	RemoveCustomPath(id uuid.UUID)
	DisplayPath(id uuid.UUID) (string, bool)
}

// ─── Messages ────────────────────────────────────────────────────────────────

type pollMsg time.Time

func poll() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg { return pollMsg(t) })
}

// ─── Model ───────────────────────────────────────────────────────────────────

// row points at a category header (option < 0) or one of its options.
type row struct {
	item   int
	option int
}

// Model is the bubbletea Model for the cleaner panel.
type Model struct {
	cleaner Cleaner
	catalog *clean.Catalog
	rows    []row
	cursor  int
	offset  int
	width   int
	height  int

	keys    keyMap
	help    help.Model
	spinner spinner.Model
	bar     progress.Model
	input   textinput.Model

	adding       bool // text input for a new custom path is open
	confirmClean bool // two-key clean: c then enter
	running      bool
	summary      *clean.Summary
	status       string
	err          error
	quitting     bool
}

// New builds a panel over catalog. The catalog is mutated in place as the
// user toggles options.
func New(c Cleaner, catalog *clean.Catalog) Model {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = lipgloss.NewStyle().Foreground(ui.ColorPrimary)

	in := textinput.New()
	in.Placeholder = `C:\path\to\folder`
	in.Prompt = "  Add path: "
	in.CharLimit = guard.MaxPathLength

	m := Model{
		cleaner: c,
		catalog: catalog,
		width:   80,
		height:  24,
		keys:    newKeyMap(),
		help:    help.New(),
		spinner: sp,
		bar:     progress.New(progress.WithDefaultGradient()),
		input:   in,
	}
	m.rebuildRows()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = max(msg.Width-12, 10)
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if !m.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pollMsg:
		if !m.running {
			return m, nil
		}
		if !m.cleaner.State().Done() {
			return m, poll()
		}
		s := m.cleaner.ConsumeSummary()
		m.summary = &s
		m.running = false
		m.status = ""
		return m, nil

	case tea.KeyMsg:
		if m.adding {
			return m.updateInput(msg)
		}
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.adding = false
		m.input.Blur()
		m.input.Reset()
		return m, nil
	case tea.KeyEnter:
		path := strings.TrimSpace(m.input.Value())
		m.adding = false
		m.input.Blur()
		m.input.Reset()
		if path == "" {
			return m, nil
		}
		opt, err := m.cleaner.AddCustomPath(path)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.catalog.AddCustom(opt)
		m.rebuildRows()
		m.err = nil
		m.status = "Added " + opt.Name
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}
	if m.running {
		return m, nil
	}

	if m.confirmClean {
		m.confirmClean = false
		if msg.Type == tea.KeyEnter {
			return m.start(m.cleaner.Clean)
		}
		m.status = "Clean cancelled"
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.ensureVisible()
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
			m.ensureVisible()
		}
	case key.Matches(msg, m.keys.Toggle):
		m.toggle(false)
	case key.Matches(msg, m.keys.ToggleCategory):
		m.toggle(true)
	case key.Matches(msg, m.keys.Analyze):
		return m.start(m.cleaner.Analyze)
	case key.Matches(msg, m.keys.Clean):
		if m.catalog.NeedsCleaning() {
			m.confirmClean = true
		} else {
			m.status = "Nothing selected"
		}
	case key.Matches(msg, m.keys.Add):
		m.adding = true
		m.err = nil
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Remove):
		m.removeSelected()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m Model) start(run func(*clean.Catalog) error) (tea.Model, tea.Cmd) {
	if !m.catalog.NeedsCleaning() {
		m.status = "Nothing selected"
		return m, nil
	}
	if err := run(m.catalog); err != nil {
		if errors.Is(err, clean.ErrBusy) {
			m.status = "Busy"
			return m, nil
		}
		m.err = err
		return m, nil
	}
	m.running = true
	m.summary = nil
	m.err = nil
	return m, tea.Batch(m.spinner.Tick, poll())
}

// View delegates to view.go renderView.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.renderView()
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func (m *Model) rebuildRows() {
	m.rows = nil
	for i, it := range m.catalog.Items {
		m.rows = append(m.rows, row{item: i, option: -1})
		for j := range it.Options {
			m.rows = append(m.rows, row{item: i, option: j})
		}
	}
	if m.cursor >= len(m.rows) {
		m.cursor = max(len(m.rows)-1, 0)
	}
	m.ensureVisible()
}

func (m *Model) selected() (row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return row{}, false
	}
	return m.rows[m.cursor], true
}

// toggle flips the selected option, or the whole category when whole is set
// or a header is selected. A partly enabled category becomes fully enabled.
func (m *Model) toggle(whole bool) {
	r, ok := m.selected()
	if !ok {
		return
	}
	item := &m.catalog.Items[r.item]
	if whole || r.option < 0 {
		m.catalog.SetCategory(r.item, !allEnabled(*item))
		return
	}
	opt := &item.Options[r.option]
	opt.Enabled = !opt.Enabled
}

func (m *Model) removeSelected() {
	r, ok := m.selected()
	if !ok || r.option < 0 || m.catalog.Items[r.item].Kind != clean.KindCustomPath {
		return
	}
	opt := m.catalog.Items[r.item].Options[r.option]
	m.cleaner.RemoveCustomPath(opt.ID)
	m.catalog.RemoveOption(opt.ID)
	m.rebuildRows()
	m.status = "Removed " + opt.Name
}

func (m *Model) ensureVisible() {
	vh := m.viewportHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+vh {
		m.offset = m.cursor - vh + 1
	}
}

func (m *Model) viewportHeight() int {
	h := m.height - 10 // header, progress and footer
	if h < 3 {
		h = 3
	}
	return h
}

func allEnabled(it clean.CleaningItem) bool {
	for _, opt := range it.Options {
		if !opt.Enabled {
			return false
		}
	}
	return len(it.Options) > 0
}
