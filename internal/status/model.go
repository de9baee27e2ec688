package status

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ─── Messages ────────────────────────────────────────────────────────────────

type tickMsg time.Time

type reportMsg struct {
	report *Report
	err    error
}

// ─── Model ───────────────────────────────────────────────────────────────────

// StatusModel is the bubbletea Model for the live drive usage view.
type StatusModel struct {
	Report          *Report
	Width           int
	refreshInterval time.Duration
	quitting        bool
	Err             error
}

// NewStatusModel creates a StatusModel with the given refresh cadence.
func NewStatusModel(refreshInterval time.Duration) StatusModel {
	if refreshInterval <= 0 {
		refreshInterval = 2 * time.Second
	}
	return StatusModel{Width: 80, refreshInterval: refreshInterval}
}

func (m StatusModel) doTick() tea.Cmd {
	return tea.Tick(m.refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m StatusModel) collect() tea.Cmd {
	timeout := m.refreshInterval
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		r, err := Collect(ctx)
		return reportMsg{report: r, err: err}
	}
}

// ─── tea.Model interface ─────────────────────────────────────────────────────

func (m StatusModel) Init() tea.Cmd {
	// The first reportMsg starts the tick loop, so collection never overlaps.
	return m.collect()
}

func (m StatusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case tickMsg:
		return m, m.collect()

	case reportMsg:
		if msg.err != nil {
			m.Err = msg.err
		} else {
			m.Report = msg.report
			m.Err = nil
		}
		return m, m.doTick()
	}

	return m, nil
}

func (m StatusModel) View() string {
	if m.quitting {
		return ""
	}
	return m.renderView()
}
