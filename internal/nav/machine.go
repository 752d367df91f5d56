package nav

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/famomatic/yttui/internal/types"
)

// Outcome is what activating an item asks of the caller.
type Outcome struct {
	// Play is set when the selected item is a video.
	Play string
	// Notice is a message for the user when nothing happened.
	Notice string
}

// Machine owns the page stack, the loaded items and the cursor.
type Machine struct {
	backend Backend
	log     zerolog.Logger

	page     *Page
	items    []types.Item
	selected int
}

// NewMachine starts on start, or on Home when start is nil. Nothing is
// fetched until Load.
func NewMachine(b Backend, start *Page, log zerolog.Logger) *Machine {
	if start == nil {
		start = HomePage()
	}
	return &Machine{backend: b, log: log, page: start}
}

func (m *Machine) Page() *Page         { return m.page }
func (m *Machine) Items() []types.Item { return m.items }
func (m *Machine) Selected() int       { return m.selected }
func (m *Machine) HasMore() bool       { return m.page.Continuation != nil }

func (m *Machine) Titles() []types.Block {
	out := make([]types.Block, len(m.items))
	for i, it := range m.items {
		out[i] = it.Title
	}
	return out
}

// Selection returns the item under the cursor.
func (m *Machine) Selection() (types.Item, bool) {
	if m.selected < 0 || m.selected >= len(m.items) {
		return types.Item{}, false
	}
	return m.items[m.selected], true
}

// Load fetches the current page.
func (m *Machine) Load(ctx context.Context) error {
	return m.reload(ctx, 0)
}

// Refresh fetches the current page again and keeps the cursor where it can.
func (m *Machine) Refresh(ctx context.Context) error {
	return m.reload(ctx, m.selected)
}

func (m *Machine) reload(ctx context.Context, selected int) error {
	items, err := m.page.Request(ctx, m.backend)
	if err != nil {
		return err
	}
	m.items = items
	m.selected = clamp(selected, len(items))
	m.log.Debug().Str("page", m.page.Kind.String()).Int("items", len(items)).Bool("more", m.HasMore()).Msg("page loaded")
	return nil
}

// SelectDelta moves the cursor by delta. Moving down from the last loaded
// item fetches the next batch first.
func (m *Machine) SelectDelta(ctx context.Context, delta int) error {
	if len(m.items) == 0 {
		return nil
	}
	if delta > 0 && m.selected+1 >= len(m.items) {
		if err := m.more(ctx); err != nil {
			return err
		}
	}
	m.selected = clamp(m.selected+delta, len(m.items))
	return nil
}

// SelectPage moves the cursor by a page-sized delta. A target at or past
// the last loaded item fetches the next batch first.
func (m *Machine) SelectPage(ctx context.Context, delta int) error {
	if len(m.items) == 0 {
		return nil
	}
	target := m.selected + delta
	if delta > 0 && target >= len(m.items)-1 {
		if err := m.more(ctx); err != nil {
			return err
		}
	}
	m.selected = clamp(target, len(m.items))
	return nil
}

func (m *Machine) more(ctx context.Context) error {
	if m.page.Continuation == nil {
		return nil
	}
	before := len(m.items)
	items, err := m.page.Continue(ctx, m.backend, m.items)
	if err != nil {
		return err
	}
	m.items = items
	m.log.Debug().Str("page", m.page.Kind.String()).Int("added", len(items)-before).Bool("more", m.HasMore()).Msg("page continued")
	return nil
}

// Activate acts on the selected node: it opens a page, asks for playback or
// reports that the node leads nowhere.
func (m *Machine) Activate(ctx context.Context) (Outcome, error) {
	item, ok := m.Selection()
	if !ok {
		return Outcome{}, nil
	}
	n := item.Node
	switch n.Kind {
	case types.NodeNone:
		return Outcome{}, nil
	case types.NodeVideo:
		return Outcome{Play: n.ID}, nil
	case types.NodeChannel:
		return Outcome{Notice: "Channels are not supported yet"}, nil
	case types.NodePlaylist:
		return Outcome{Notice: "Playlists are not supported yet"}, nil
	}
	next := pageFor(n)
	if next == nil {
		return Outcome{}, nil
	}
	return Outcome{}, m.push(ctx, next)
}

// push opens next on top of the current page. The stack is left untouched
// when the first fetch fails.
func (m *Machine) push(ctx context.Context, next *Page) error {
	next.Previous = &Previous{Page: m.page, Selected: m.selected}
	items, err := next.Request(ctx, m.backend)
	if err != nil {
		next.Previous = nil
		return err
	}
	m.log.Info().Str("from", m.page.Kind.String()).Str("to", next.Kind.String()).Int("depth", next.Depth()).Msg("page opened")
	m.page = next
	m.items = items
	m.selected = 0
	return nil
}

// Back returns to the previous page, fetched fresh, with its old cursor
// clamped to the new items. On Home it only moves the cursor to the top.
func (m *Machine) Back(ctx context.Context) error {
	prev := m.page.Previous
	if prev == nil {
		m.selected = 0
		return nil
	}
	items, err := prev.Page.Request(ctx, m.backend)
	if err != nil {
		return err
	}
	m.log.Info().Str("from", m.page.Kind.String()).Str("to", prev.Page.Kind.String()).Msg("page closed")
	m.page = prev.Page
	m.items = items
	m.selected = clamp(prev.Selected, len(items))
	return nil
}

// GoHome drops the whole stack and loads a fresh Home.
func (m *Machine) GoHome(ctx context.Context) error {
	home := HomePage()
	items, err := home.Request(ctx, m.backend)
	if err != nil {
		return err
	}
	m.page = home
	m.items = items
	m.selected = 0
	return nil
}

// Search opens a search page for query. An empty query does nothing.
func (m *Machine) Search(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	return m.push(ctx, &Page{Kind: KindSearch, Query: query})
}

// ShowRecommendations opens the recommendations of the selected video.
func (m *Machine) ShowRecommendations(ctx context.Context) error {
	item, ok := m.Selection()
	if !ok || item.Node.Kind != types.NodeVideo {
		return nil
	}
	return m.push(ctx, &Page{Kind: KindRecommendations, VideoID: item.Node.ID})
}

func clamp(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}
