// Package ui holds the palette, icons and small drawing helpers shared by
// every screen.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ─── Palette ─────────────────────────────────────────────────────────────────

var (
	ColorPrimary   = lipgloss.AdaptiveColor{Light: "#0f766e", Dark: "#2dd4bf"}
	ColorSecondary = lipgloss.AdaptiveColor{Light: "#4f46e5", Dark: "#a5b4fc"}
	ColorCoral     = lipgloss.AdaptiveColor{Light: "#e11d48", Dark: "#fb7185"}
	ColorText      = lipgloss.AdaptiveColor{Light: "#1f2937", Dark: "#e5e7eb"}
	ColorTextDim   = lipgloss.AdaptiveColor{Light: "#4b5563", Dark: "#9ca3af"}
	ColorMuted     = lipgloss.AdaptiveColor{Light: "#9ca3af", Dark: "#6b7280"}
	ColorSuccess   = lipgloss.AdaptiveColor{Light: "#16a34a", Dark: "#4ade80"}
	ColorWarning   = lipgloss.AdaptiveColor{Light: "#ca8a04", Dark: "#facc15"}
	ColorError     = lipgloss.AdaptiveColor{Light: "#dc2626", Dark: "#f87171"}
)

// ─── Icons ───────────────────────────────────────────────────────────────────

const (
	IconDiamond  = "◆"
	IconChevron  = "›"
	IconPipe     = "│"
	IconBullet   = "•"
	IconCheck    = "✓"
	IconError    = "✗"
	IconWarning  = "!"
	IconChecked  = "[x]"
	IconPartial  = "[-]"
	IconUnticked = "[ ]"
	IconFolder   = "▸ "
)

// categoryIcons maps catalog icon keys to glyphs.
var categoryIcons = map[string]string{
	"chrome":  "◉",
	"firefox": "◉",
	"yandex":  "◉",
	"edge":    "◉",
	"opera":   "◉",
	"brave":   "◉",
	"temp":    "◌",
	"system":  "⚙",
	"folder":  "▸",
}

// CategoryIcon returns the glyph for an icon key, or a bullet when unknown.
func CategoryIcon(key string) string {
	if g, ok := categoryIcons[key]; ok {
		return g
	}
	return IconBullet
}

// ─── Styles ──────────────────────────────────────────────────────────────────

var (
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)

	HintBarStyle = lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)

	TagWarningStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorWarning)

	ErrorStyle = lipgloss.NewStyle().Foreground(ColorError)

	SuccessStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorSuccess)
)

// GradientBar renders a pct-filled bar of width cells, shifting from the
// primary color to coral as it fills.
func GradientBar(pct float64, width int) string {
	if width <= 0 {
		return ""
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := int(pct / 100 * float64(width))

	fill := ColorPrimary
	switch {
	case pct >= 75:
		fill = ColorCoral
	case pct >= 40:
		fill = ColorWarning
	}

	return lipgloss.NewStyle().Foreground(fill).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(ColorMuted).Render(strings.Repeat("░", width-filled))
}
