package types

import "strings"

// Span is a run of text sharing one style.
type Span struct {
	Text      string
	Bold      bool
	Italic    bool
	Underline bool
	// Color is an RGB value, used only when HasColor is set.
	Color    uint32
	HasColor bool
}

// Line is one row of styled spans.
type Line []Span

// Block is a multi-line styled text.
type Block []Line

// Plain returns an unstyled span.
func Plain(s string) Span { return Span{Text: s} }

// Bold returns a bold span.
func Bold(s string) Span { return Span{Text: s, Bold: true} }

// Colored returns a span drawn in the given RGB color.
func Colored(s string, rgb uint32) Span { return Span{Text: s, Color: rgb, HasColor: true} }

// String returns the line without styling.
func (l Line) String() string {
	var b strings.Builder
	for _, s := range l {
		b.WriteString(s.Text)
	}
	return b.String()
}

// String returns the block without styling, one line per row.
func (b Block) String() string {
	rows := make([]string, len(b))
	for i, l := range b {
		rows[i] = l.String()
	}
	return strings.Join(rows, "\n")
}

// Lines splits s on newlines into unstyled lines.
func Lines(s string) Block {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, "\n")
	out := make(Block, len(parts))
	for i, p := range parts {
		out[i] = Line{Plain(p)}
	}
	return out
}
