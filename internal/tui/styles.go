package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/famomatic/yttui/internal/types"
)

// Styles are derived from the ui section of the configuration.
type Styles struct {
	Pane     lipgloss.Style
	Selected lipgloss.Style
	Status   lipgloss.Style
	Notice   lipgloss.Style
}

func NewStyles(border, accent string) Styles {
	color := lipgloss.Color(accent)
	return Styles{
		Pane:     lipgloss.NewStyle().Border(borderStyle(border)).BorderForeground(color),
		Selected: lipgloss.NewStyle().Reverse(true),
		Status:   lipgloss.NewStyle().Foreground(color).Bold(true),
		Notice:   lipgloss.NewStyle().Foreground(lipgloss.Color("#ffaf00")),
	}
}

func borderStyle(name string) lipgloss.Border {
	switch name {
	case "normal":
		return lipgloss.NormalBorder()
	case "thick":
		return lipgloss.ThickBorder()
	case "double":
		return lipgloss.DoubleBorder()
	case "hidden":
		return lipgloss.HiddenBorder()
	}
	return lipgloss.RoundedBorder()
}

func spanStyle(s types.Span) lipgloss.Style {
	st := lipgloss.NewStyle().Bold(s.Bold).Italic(s.Italic).Underline(s.Underline)
	if s.HasColor {
		st = st.Foreground(lipgloss.Color(fmt.Sprintf("#%06x", s.Color)))
	}
	return st
}

// renderLine renders one styled line, truncated to width cells.
func renderLine(l types.Line, width int) string {
	out := ""
	left := width
	for _, s := range l {
		if left <= 0 {
			break
		}
		text := truncate(s.Text, left)
		left -= lipgloss.Width(text)
		out += spanStyle(s).Render(text)
	}
	return out
}

// renderBlock renders b as at most width cells per row.
func renderBlock(b types.Block, width int) []string {
	rows := make([]string, 0, len(b))
	for _, l := range b {
		rows = append(rows, renderLine(l, width))
	}
	return rows
}

func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r)) > width {
		r = r[:len(r)-1]
	}
	return string(r)
}
