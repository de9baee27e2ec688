package panel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lakshaymaurya-felt/syscleaner/internal/clean"
	"github.com/lakshaymaurya-felt/syscleaner/internal/core"
	"github.com/lakshaymaurya-felt/syscleaner/internal/ui"
)

// ─── Color tokens ────────────────────────────────────────────────────────────

var (
	clrCategory = ui.ColorSecondary
	clrOption   = ui.ColorText
	clrOff      = ui.ColorMuted
	clrCursor   = ui.ColorPrimary
)

// ─── Top-level view ──────────────────────────────────────────────────────────

func (m Model) renderView() string {
	w := m.width
	if w < 40 {
		w = 40
	}

	var s strings.Builder
	s.WriteString(m.renderHeader(w))
	s.WriteString("\n")
	s.WriteString(m.renderBody())
	s.WriteString("\n\n")

	switch {
	case m.running:
		s.WriteString(m.renderProgress())
		s.WriteString("\n")
	case m.summary != nil:
		s.WriteString(renderSummary(*m.summary, w))
		s.WriteString("\n")
	}

	s.WriteString(m.renderFooter())
	return s.String()
}

// ─── Header ──────────────────────────────────────────────────────────────────

func (m Model) renderHeader(w int) string {
	title := ui.TitleStyle.Render("  " + ui.IconDiamond + " System Cleaner")

	var enabled, total int
	for _, it := range m.catalog.Items {
		for _, opt := range it.Options {
			total++
			if opt.Enabled {
				enabled++
			}
		}
	}
	counts := lipgloss.NewStyle().
		Foreground(ui.ColorTextDim).
		Render(fmt.Sprintf("  %d of %d targets selected", enabled, total))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.ColorPrimary).
		Width(w - 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, counts))
}

// ─── Body (category tree) ────────────────────────────────────────────────────

func (m Model) renderBody() string {
	if len(m.rows) == 0 {
		return lipgloss.NewStyle().Foreground(ui.ColorMuted).Italic(true).Render("  (nothing to clean)")
	}

	vh := m.viewportHeight()
	var lines []string
	for i := m.offset; i < len(m.rows) && i < m.offset+vh; i++ {
		lines = append(lines, m.renderRow(m.rows[i], i == m.cursor))
	}
	if len(m.rows) > vh {
		lines = append(lines, lipgloss.NewStyle().Foreground(ui.ColorMuted).Italic(true).
			Render(fmt.Sprintf("  ── %d/%d ──", min(m.offset+vh, len(m.rows)), len(m.rows))))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderRow(r row, selected bool) string {
	cursor := "  "
	if selected {
		cursor = lipgloss.NewStyle().Foreground(clrCursor).Bold(true).Render(ui.IconChevron + " ")
	}

	it := m.catalog.Items[r.item]
	if r.option < 0 {
		box := ui.IconUnticked
		switch {
		case allEnabled(it):
			box = ui.IconChecked
		case it.NeedsCleaning():
			box = ui.IconPartial
		}
		name := lipgloss.NewStyle().Bold(true).Foreground(clrCategory).
			Render(ui.CategoryIcon(it.Icon) + " " + it.Name)
		if len(it.Options) == 0 {
			name += lipgloss.NewStyle().Foreground(ui.ColorMuted).Italic(true).Render("  (empty)")
		}
		return cursor + box + " " + name
	}

	opt := it.Options[r.option]
	box, color := ui.IconUnticked, clrOff
	if opt.Enabled {
		box, color = ui.IconChecked, clrOption
	}
	line := cursor + "    " + box + " " + lipgloss.NewStyle().Foreground(color).Render(opt.Name)
	if selected && it.Kind == clean.KindCustomPath {
		if full, ok := m.cleaner.DisplayPath(opt.ID); ok {
			line += lipgloss.NewStyle().Foreground(ui.ColorMuted).Render("  " + full)
		}
	}
	return line
}

// ─── Progress ────────────────────────────────────────────────────────────────

func (m Model) renderProgress() string {
	label := "Analyzing"
	if m.cleaner.State() == clean.StateCleaning {
		label = "Cleaning"
	}
	return fmt.Sprintf("  %s %s\n  %s", m.spinner.View(), label, m.bar.ViewAs(m.cleaner.Progress()))
}

// ─── Summary ─────────────────────────────────────────────────────────────────

func renderSummary(s clean.Summary, w int) string {
	head := "Analysis"
	verb := "found"
	if s.Kind == clean.SummaryCleaning {
		head = "Cleaning"
		verb = "removed"
	}

	var lines []string
	lines = append(lines, ui.TitleStyle.Render("  "+head+" summary"))
	for _, g := range groupResults(s.Results) {
		lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(clrCategory).
			Render("  "+ui.CategoryIcon(g.icon)+" "+g.category))
		for _, r := range g.results {
			lines = append(lines, fmt.Sprintf("      %-24s %10s files  %10s",
				r.Option, core.FormatCount(r.Files), core.FormatSize(int64(r.Bytes))))
		}
	}
	lines = append(lines, lipgloss.NewStyle().Foreground(ui.ColorMuted).Render("  "+strings.Repeat("─", min(w-4, 58))))
	lines = append(lines, ui.SuccessStyle.Render(fmt.Sprintf("  %s %s files, %s %s in %s",
		ui.IconCheck, core.FormatCount(s.TotalFiles), core.FormatSize(int64(s.TotalBytes)),
		verb, core.FormatElapsed(s.Elapsed))))
	return strings.Join(lines, "\n")
}

// ─── Footer ──────────────────────────────────────────────────────────────────

func (m Model) renderFooter() string {
	var lines []string
	switch {
	case m.adding:
		lines = append(lines, m.input.View())
		lines = append(lines, ui.HintBarStyle.Render("  enter add  "+ui.IconPipe+"  esc cancel"))
		return strings.Join(lines, "\n")
	case m.confirmClean:
		lines = append(lines, ui.TagWarningStyle.Render("  "+ui.IconWarning+" Press Enter to delete the selected targets, any other key to cancel"))
		return strings.Join(lines, "\n")
	}

	if m.err != nil {
		lines = append(lines, ui.ErrorStyle.Render("  "+ui.IconError+" "+m.err.Error()))
	} else if m.status != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(ui.ColorTextDim).Render("  "+m.status))
	}
	lines = append(lines, "  "+m.help.View(m.keys))
	return strings.Join(lines, "\n")
}
