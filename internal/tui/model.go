// Package tui is the terminal front end: a page list on the left, the
// selected item's detail on the right and a status line.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/famomatic/yttui/internal/nav"
	"github.com/famomatic/yttui/internal/stream"
	"github.com/famomatic/yttui/internal/types"
)

// Player resolves a video into something to run.
type Player interface {
	Play(ctx context.Context, videoID string) (*stream.Playback, error)
}

type playedMsg struct{ err error }

type noticeDoneMsg struct{}

// Model is the bubbletea model. Machine operations run inside Update, so
// the list is blocked while a request is in flight.
type Model struct {
	ctx     context.Context
	machine *nav.Machine
	player  Player
	styles  Styles
	log     zerolog.Logger

	search    textinput.Model
	searching bool

	width, height int
	offset        int
	notice        string
	err           error
}

func New(ctx context.Context, m *nav.Machine, p Player, styles Styles, log zerolog.Logger) Model {
	ti := textinput.New()
	ti.Placeholder = "Search"
	ti.Prompt = "/ "
	ti.CharLimit = 200
	return Model{
		ctx:     ctx,
		machine: m,
		player:  p,
		styles:  styles,
		log:     log,
		search:  ti,
		width:   80,
		height:  24,
	}
}

// Err is the fatal error that ended the program, if any.
func (m Model) Err() error { return m.err }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case playedMsg:
		if msg.err != nil {
			m.notice = msg.err.Error()
			m.log.Warn().Err(msg.err).Msg("player exited with error")
		}
		return m, nil
	case noticeDoneMsg:
		return m, nil
	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		return m, nil
	case tea.KeyEnter:
		query := m.search.Value()
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		return m.run(m.machine.Search(m.ctx, query))
	case tea.KeyCtrlC:
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "j", "down":
		return m.run(m.machine.SelectDelta(m.ctx, 1))
	case "k", "up":
		return m.run(m.machine.SelectDelta(m.ctx, -1))
	case "pgdown":
		return m.run(m.machine.SelectPage(m.ctx, m.pageStep()))
	case "pgup":
		return m.run(m.machine.SelectPage(m.ctx, -m.pageStep()))
	case "l", "right", "enter":
		return m.activate()
	case "b", "left":
		return m.run(m.machine.Back(m.ctx))
	case "h":
		return m.run(m.machine.GoHome(m.ctx))
	case "s", "/":
		m.searching = true
		return m, m.search.Focus()
	case "r":
		return m.run(m.machine.Refresh(m.ctx))
	case "n":
		return m.run(m.machine.ShowRecommendations(m.ctx))
	}
	return m, nil
}

// run turns a machine error into the fatal path.
func (m Model) run(err error) (tea.Model, tea.Cmd) {
	if err != nil {
		return m.fail(err)
	}
	m.scroll()
	return m, nil
}

func (m Model) fail(err error) (tea.Model, tea.Cmd) {
	if types.IsRecoverable(err) {
		m.log.Info().Err(err).Msg("recoverable error")
		return m, tea.Exec(&noticeCommand{message: err.Error()}, func(error) tea.Msg { return noticeDoneMsg{} })
	}
	m.log.Error().Err(err).Str("page", m.machine.Page().Kind.String()).Msg("fatal error")
	m.err = err
	return m, tea.Quit
}

func (m Model) activate() (tea.Model, tea.Cmd) {
	out, err := m.machine.Activate(m.ctx)
	if err != nil {
		return m.fail(err)
	}
	if out.Notice != "" {
		m.notice = out.Notice
		return m, nil
	}
	if out.Play == "" {
		m.scroll()
		return m, nil
	}

	pb, err := m.player.Play(m.ctx, out.Play)
	if err != nil {
		return m.fail(err)
	}
	m.log.Info().Str("video_id", pb.VideoID).Str("invocation", pb.Invocation.String()).Msg("starting player")
	return m, tea.Exec(&playCommand{ctx: m.ctx, playback: pb}, func(err error) tea.Msg { return playedMsg{err: err} })
}

func (m Model) pageStep() int {
	return max(1, m.listHeight()/2)
}

func (m Model) paneWidth() int  { return max(10, m.width/2-2) }
func (m Model) listHeight() int { return max(1, m.height-3) }

// scroll keeps the selected item inside the visible list window.
func (m *Model) scroll() {
	items := m.machine.Items()
	sel := m.machine.Selected()
	if sel < m.offset {
		m.offset = sel
	}
	if m.offset >= len(items) {
		m.offset = 0
	}
	for m.offset < sel && linesBetween(items, m.offset, sel) > m.listHeight() {
		m.offset++
	}
}

func linesBetween(items []types.Item, from, to int) int {
	n := 0
	for i := from; i <= to && i < len(items); i++ {
		n += max(1, len(items[i].Title))
	}
	return n
}

func (m Model) View() string {
	width := m.paneWidth()
	height := m.listHeight()

	list := m.styles.Pane.Width(width).Height(height).Render(strings.Join(m.listRows(width, height), "\n"))
	detail := m.styles.Pane.Width(width).Height(height).Render(strings.Join(m.detailRows(width, height), "\n"))
	body := lipgloss.JoinHorizontal(lipgloss.Top, list, detail)

	bottom := m.statusLine()
	if m.searching {
		bottom = m.search.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, bottom)
}

func (m Model) listRows(width, height int) []string {
	items := m.machine.Items()
	sel := m.machine.Selected()
	var rows []string
	for i := m.offset; i < len(items) && len(rows) < height; i++ {
		block := renderBlock(items[i].Title, width)
		if len(block) == 0 {
			block = []string{""}
		}
		if i == sel {
			text := " "
			if len(items[i].Title) > 0 && len(items[i].Title[0]) > 0 {
				text = truncate(items[i].Title[0].String(), width)
			}
			block[0] = m.styles.Selected.Render(text)
		}
		rows = append(rows, block...)
	}
	if len(rows) > height {
		rows = rows[:height]
	}
	return rows
}

func (m Model) detailRows(width, height int) []string {
	item, ok := m.machine.Selection()
	if !ok {
		return nil
	}
	rows := renderBlock(item.Detail, width)
	if len(rows) > height {
		rows = rows[:height]
	}
	return rows
}

func (m Model) statusLine() string {
	page := m.machine.Page()
	parts := []string{page.Title(), fmt.Sprintf("%d items", len(m.machine.Items()))}
	if m.machine.HasMore() {
		parts = append(parts, "more")
	}
	line := m.styles.Status.Render(strings.Join(parts, " · "))
	if m.notice != "" {
		line += "  " + m.styles.Notice.Render(m.notice)
	}
	return line
}
