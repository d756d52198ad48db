package theme

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Header      *lipgloss.Style
	Footer      *lipgloss.Style
	Error       *lipgloss.Style
	Info        *lipgloss.Style
	Panel       *lipgloss.Style
	PanelTitle  *lipgloss.Style
	Inspector   *lipgloss.Style
	PickerTitle *lipgloss.Style
	PickerItem  *lipgloss.Style
	PickerFocus *lipgloss.Style
	Disabled    *lipgloss.Style
}

var defaultStyles = Styles{
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Panel: ptr(
		lipgloss.NewStyle().Border(lipgloss.RoundedBorder()),
	),
	PanelTitle: ptr(
		lipgloss.NewStyle().Bold(true),
	),
	Inspector: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).PaddingLeft(1),
	),
	PickerTitle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	PickerItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	PickerFocus: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	Disabled: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}

// Terminal cells cannot be translucent, so a panel's alpha is rendered by
// blending its colours towards the backdrop.
var (
	backdrop = mustHex("#1c1c1c")
	text     = mustHex("#e4e4e4")
	accent   = mustHex("#0087ff")
)

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Fade returns the text colour at the given opacity.
func Fade(alpha float64) lipgloss.Color {
	return blend(text, alpha)
}

// FadeAccent returns the accent colour at the given opacity; the current
// window's border uses it.
func FadeAccent(alpha float64) lipgloss.Color {
	return blend(accent, alpha)
}

func blend(c colorful.Color, alpha float64) lipgloss.Color {
	switch {
	case alpha <= 0:
		return lipgloss.Color(backdrop.Hex())
	case alpha >= 1:
		return lipgloss.Color(c.Hex())
	}
	return lipgloss.Color(backdrop.BlendLab(c, alpha).Clamped().Hex())
}
