package decoder

import (
	"strings"

	"github.com/famomatic/yttui/internal/types"
)

// Text is the backend's text object: either a simple string or styled runs.
type Text struct {
	SimpleText    string         `json:"simpleText"`
	Runs          []Run          `json:"runs"`
	Accessibility *Accessibility `json:"accessibility"`
}

type Run struct {
	Text               string    `json:"text"`
	Bold               bool      `json:"bold"`
	Italics            bool      `json:"italics"`
	NavigationEndpoint *Endpoint `json:"navigationEndpoint"`
}

type Accessibility struct {
	AccessibilityData struct {
		Label string `json:"label"`
	} `json:"accessibilityData"`
}

func (t Text) String() string {
	if t.SimpleText != "" {
		return t.SimpleText
	}
	var b strings.Builder
	for _, r := range t.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// Label prefers the accessibility label, which spells out counts and durations.
func (t Text) Label() string {
	if t.Accessibility != nil && t.Accessibility.AccessibilityData.Label != "" {
		return t.Accessibility.AccessibilityData.Label
	}
	return t.String()
}

// Block keeps run styling and splits on newlines.
func (t Text) Block() types.Block {
	if len(t.Runs) == 0 {
		return types.Lines(t.SimpleText)
	}
	block := types.Block{nil}
	for _, r := range t.Runs {
		parts := strings.Split(r.Text, "\n")
		for i, p := range parts {
			if i > 0 {
				block = append(block, nil)
			}
			if p == "" {
				continue
			}
			last := len(block) - 1
			block[last] = append(block[last], types.Span{Text: p, Bold: r.Bold, Italic: r.Italics, Underline: r.NavigationEndpoint != nil})
		}
	}
	return block
}

// Endpoint is the union of navigation targets the client understands.
type Endpoint struct {
	WatchEndpoint         *WatchEndpoint       `json:"watchEndpoint"`
	BrowseEndpoint        *BrowseEndpoint      `json:"browseEndpoint"`
	SearchEndpoint        *SearchEndpoint      `json:"searchEndpoint"`
	ContinuationCommand   *ContinuationCommand `json:"continuationCommand"`
	GetTranscriptEndpoint *ParamsEndpoint      `json:"getTranscriptEndpoint"`
	ReelWatchEndpoint     *WatchEndpoint       `json:"reelWatchEndpoint"`
}

type WatchEndpoint struct {
	VideoID string `json:"videoId"`
}

type BrowseEndpoint struct {
	BrowseID string `json:"browseId"`
	Params   string `json:"params"`
}

type SearchEndpoint struct {
	Query  string `json:"query"`
	Params string `json:"params"`
}

type ContinuationCommand struct {
	Token string `json:"token"`
}

type ParamsEndpoint struct {
	Params string `json:"params"`
}

// token returns the continuation token carried by e, or "".
func (e *Endpoint) token() string {
	if e == nil || e.ContinuationCommand == nil {
		return ""
	}
	return e.ContinuationCommand.Token
}

const (
	labelColor  = 0xcc0000
	mutedColor  = 0x909090
	accentColor = 0xff0000
)

func spaced(spans ...types.Span) types.Block {
	return types.Block{types.Line(spans), nil}
}

func underlined(s string) types.Block {
	return types.Block{{types.Span{Text: s, Underline: true}}}
}

func blank() types.Item {
	return types.Item{Title: types.Block{nil}}
}

// field appends "label: value" when value is not empty.
func field(b types.Block, label, value string) types.Block {
	if value == "" {
		return b
	}
	return append(b, types.Line{types.Colored(label+": ", labelColor), types.Plain(value)})
}
