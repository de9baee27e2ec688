package status

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/lakshaymaurya-felt/syscleaner/internal/core"
	"github.com/lakshaymaurya-felt/syscleaner/internal/ui"
)

// ─── Palette ─────────────────────────────────────────────────────────────────

var (
	clrGreen  = lipgloss.AdaptiveColor{Light: "#16a34a", Dark: "#4ade80"}
	clrYellow = lipgloss.AdaptiveColor{Light: "#ca8a04", Dark: "#facc15"}
	clrOrange = lipgloss.AdaptiveColor{Light: "#ea580c", Dark: "#fb923c"}
	clrRed    = lipgloss.AdaptiveColor{Light: "#dc2626", Dark: "#f87171"}
)

// ─── Top-level renderer ─────────────────────────────────────────────────────

func (m StatusModel) renderView() string {
	var s strings.Builder
	if m.Report == nil {
		s.WriteString(lipgloss.NewStyle().
			Foreground(ui.ColorMuted).
			Italic(true).
			Render("  Collecting drive information…"))
	} else {
		s.WriteString(Render(m.Report, m.Width))
	}

	s.WriteString("\n")
	if m.Err != nil {
		s.WriteString(ui.ErrorStyle.Render("  " + ui.IconError + " " + m.Err.Error()))
		s.WriteString("\n")
	}
	s.WriteString(ui.HintBarStyle.Render("  q quit  " + ui.IconPipe + "  refreshes every " + m.refreshInterval.String()))
	return s.String()
}

// Render draws the host line and one usage bar per drive.
func Render(r *Report, width int) string {
	if width < 50 {
		width = 50
	}
	barW := 24
	if width > 100 {
		barW = 36
	}

	var lines []string
	lines = append(lines, "")
	lines = append(lines, ui.TitleStyle.Render("  "+ui.IconDiamond+" Drives"))

	if h := r.Host; h.Hostname != "" {
		host := fmt.Sprintf("  %s  %s %s  %s  up %s", h.Hostname, ui.IconPipe, h.OS, h.Arch, formatUptime(h))
		lines = append(lines, lipgloss.NewStyle().Foreground(ui.ColorTextDim).Render(host))
	}
	lines = append(lines, "")

	if len(r.Drives) == 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(ui.ColorMuted).Italic(true).
			Render("  (no fixed drives found)"))
		return strings.Join(lines, "\n")
	}

	for _, d := range r.Drives {
		label := d.Path
		if d.Label != "" && d.Label != d.Path {
			label += " " + lipgloss.NewStyle().Foreground(ui.ColorMuted).Render("("+d.Label+")")
		}
		lines = append(lines, "  "+label)
		lines = append(lines,
			fmt.Sprintf("    %s  %5.1f%%  %s free of %s",
				colorBar(d.UsedPercent, barW), d.UsedPercent,
				core.FormatSize(int64(d.Free)),
				core.FormatSize(int64(d.Total))))
	}
	return strings.Join(lines, "\n")
}

func formatUptime(h HostInfo) string {
	d := h.Uptime.Truncate(time.Minute)
	days := int(d.Hours()) / 24
	if days > 0 {
		return fmt.Sprintf("%dd%dh", days, int(d.Hours())%24)
	}
	return d.String()
}

// ─── Drawing primitives ─────────────────────────────────────────────────────

// colorBar renders a ████░░░░ bar colored by severity.
func colorBar(pct float64, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := int(pct / 100 * float64(width))

	barColor := clrGreen
	switch {
	case pct >= 90:
		barColor = clrRed
	case pct >= 75:
		barColor = clrOrange
	case pct >= 50:
		barColor = clrYellow
	}

	fStr := lipgloss.NewStyle().Foreground(barColor).Render(strings.Repeat("█", filled))
	eStr := lipgloss.NewStyle().Foreground(ui.ColorMuted).Render(strings.Repeat("░", width-filled))
	return fStr + eStr
}
