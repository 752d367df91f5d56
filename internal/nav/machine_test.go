package nav

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/famomatic/yttui/internal/innertube"
	"github.com/famomatic/yttui/internal/types"
)

func video(id string) string {
	return fmt.Sprintf(`{"videoRenderer":{"videoId":%q,"title":{"simpleText":%q}}}`, id, "Video "+id)
}

func chip(label, token string) string {
	return fmt.Sprintf(`{"chipCloudChipRenderer":{"text":{"simpleText":%q},"navigationEndpoint":{"continuationCommand":{"token":%q}}}}`, label, token)
}

func channel(id string) string {
	return fmt.Sprintf(`{"channelRenderer":{"channelId":%q,"title":{"simpleText":"Channel"}}}`, id)
}

func more(token string) string {
	return fmt.Sprintf(`{"continuationItemRenderer":{"continuationEndpoint":{"continuationCommand":{"token":%q}}}}`, token)
}

func homePage(items ...string) string {
	return `<html><script>var ytInitialData = {"contents":{"twoColumnBrowseResultsRenderer":{"tabs":[{"tabRenderer":{"selected":true,"content":{"richGridRenderer":{"contents":[` +
		strings.Join(items, ",") + `]}}}}]}}};</script></html>`
}

func appended(items ...string) string {
	return `{"onResponseReceivedActions":[{"appendContinuationItemsAction":{"continuationItems":[` + strings.Join(items, ",") + `]}}]}`
}

func searchResults(items ...string) string {
	return `{"contents":{"twoColumnSearchResultsRenderer":{"primaryContents":{"sectionListRenderer":{"contents":[{"itemSectionRenderer":{"contents":[` +
		strings.Join(items, ",") + `]}}]}}}}}`
}

func nextResults(items ...string) string {
	return `{"contents":{"twoColumnWatchNextResults":{"secondaryResults":{"secondaryResults":{"results":[` + strings.Join(items, ",") + `]}}}}}`
}

// fakeBackend answers by endpoint and the identifying field of the request.
type fakeBackend struct {
	home      string
	responses map[string]string
	requests  []string
}

func (f *fakeBackend) Get(_ context.Context, path string) ([]byte, error) {
	f.requests = append(f.requests, "GET "+path)
	return []byte(f.home), nil
}

func (f *fakeBackend) Post(_ context.Context, endpoint string, body innertube.Body) ([]byte, error) {
	var key string
	switch b := body.(type) {
	case *innertube.BrowseRequest:
		key = b.Continuation + b.BrowseID
	case *innertube.SearchRequest:
		key = b.Continuation + b.Query
	case *innertube.NextRequest:
		key = b.Continuation + b.VideoID
	case *innertube.TranscriptRequest:
		key = b.Params
	}
	req := endpoint + " " + key
	f.requests = append(f.requests, req)
	resp, ok := f.responses[req]
	if !ok {
		return nil, fmt.Errorf("%w: no response for %s", types.ErrTransport, req)
	}
	return []byte(resp), nil
}

func newMachine(t *testing.T, f *fakeBackend) *Machine {
	t.Helper()
	m := NewMachine(f, nil, zerolog.Nop())
	require.NoError(t, m.Load(context.Background()))
	return m
}

func ids(items []types.Item) []string {
	var out []string
	for _, it := range items {
		out = append(out, it.Node.ID)
	}
	return out
}

func TestContinueWithoutTokenIsNoop(t *testing.T) {
	f := &fakeBackend{}
	p := &Page{Kind: KindGame}
	items := []types.Item{{Node: types.VideoNode("a")}}

	got, err := p.Continue(context.Background(), f, items)
	require.NoError(t, err)
	require.Equal(t, items, got)
	require.Nil(t, p.Continuation)
	require.Empty(t, f.requests)
}

func TestTranscriptNeverContinues(t *testing.T) {
	token := "stale"
	p := &Page{Kind: KindTranscript, Continuation: &token}
	f := &fakeBackend{}
	got, err := p.Continue(context.Background(), f, nil)
	require.NoError(t, err)
	require.Empty(t, got)
	require.Nil(t, p.Continuation)
	require.Empty(t, f.requests)
}

func TestSelectDeltaContinuesFromLastItem(t *testing.T) {
	f := &fakeBackend{
		home: homePage(video("a"), video("b"), more("t1")),
		responses: map[string]string{
			"browse t1": appended(video("c"), video("d")),
		},
	}
	m := newMachine(t, f)
	ctx := context.Background()
	require.True(t, m.HasMore())

	require.NoError(t, m.SelectDelta(ctx, 1))
	require.Equal(t, 1, m.Selected())
	require.Len(t, m.Items(), 2, "no fetch before reaching the last item")

	require.NoError(t, m.SelectDelta(ctx, 1))
	require.Equal(t, 2, m.Selected())
	require.Equal(t, []string{"a", "b", "c", "d"}, ids(m.Items()))
	require.False(t, m.HasMore())

	require.NoError(t, m.SelectDelta(ctx, 1))
	require.NoError(t, m.SelectDelta(ctx, 1))
	require.Equal(t, 3, m.Selected())
	require.Len(t, m.Items(), 4)
	require.Equal(t, []string{"GET /", "browse t1"}, f.requests)

	require.NoError(t, m.SelectDelta(ctx, -10))
	require.Equal(t, 0, m.Selected())
}

func TestSelectPageContinuesPastLastItem(t *testing.T) {
	f := &fakeBackend{
		home: homePage(video("a"), video("b"), video("c"), more("t1")),
		responses: map[string]string{
			"browse t1": appended(video("d"), more("t2")),
			"browse t2": appended(video("e")),
		},
	}
	m := newMachine(t, f)
	ctx := context.Background()

	require.NoError(t, m.SelectPage(ctx, 1))
	require.Equal(t, 1, m.Selected())
	require.Len(t, m.Items(), 3)

	require.NoError(t, m.SelectPage(ctx, 5))
	require.Equal(t, 3, m.Selected())
	require.Len(t, m.Items(), 4)

	require.NoError(t, m.SelectPage(ctx, -5))
	require.Equal(t, 0, m.Selected())
}

func TestBackStackRoundTrip(t *testing.T) {
	f := &fakeBackend{
		home: homePage(video("a"), chip("Music", "cat")),
		responses: map[string]string{
			"browse cat": appended(video("m1"), video("m2")),
			"search go":  searchResults(video("s1")),
			"next m2":    nextResults(video("r1")),
		},
	}
	m := newMachine(t, f)
	ctx := context.Background()
	home := m.Page()

	// Home, select the chip.
	require.NoError(t, m.SelectDelta(ctx, 1))
	out, err := m.Activate(ctx)
	require.NoError(t, err)
	require.Equal(t, Outcome{}, out)
	require.Equal(t, KindCategory, m.Page().Kind)
	require.Equal(t, 0, m.Selected())

	require.NoError(t, m.SelectDelta(ctx, 1))
	require.NoError(t, m.Search(ctx, "  go "))
	require.Equal(t, KindSearch, m.Page().Kind)
	require.Equal(t, "go", m.Page().Title())

	require.NoError(t, m.Back(ctx))
	require.Equal(t, KindCategory, m.Page().Kind)
	require.Equal(t, 1, m.Selected())
	require.NoError(t, m.ShowRecommendations(ctx))
	require.Equal(t, KindRecommendations, m.Page().Kind)
	require.Equal(t, "m2", m.Page().VideoID)
	require.Equal(t, 2, m.Page().Depth())

	require.NoError(t, m.Back(ctx))
	require.NoError(t, m.Back(ctx))
	require.Same(t, home, m.Page())
	require.Nil(t, m.Page().Previous)
	require.Equal(t, 1, m.Selected())

	// Back on Home fetches nothing and moves to the top.
	n := len(f.requests)
	require.NoError(t, m.Back(ctx))
	require.Len(t, f.requests, n)
	require.Same(t, home, m.Page())
	require.Equal(t, 0, m.Selected())
}

func TestBackClampsSelection(t *testing.T) {
	f := &fakeBackend{
		home: homePage(video("a"), video("b"), video("c")),
		responses: map[string]string{
			"search q": searchResults(video("s1")),
		},
	}
	m := newMachine(t, f)
	ctx := context.Background()
	require.NoError(t, m.SelectDelta(ctx, 2))
	require.NoError(t, m.Search(ctx, "q"))

	f.home = homePage(video("a"))
	require.NoError(t, m.Back(ctx))
	require.Equal(t, 0, m.Selected())
}

func TestActivate(t *testing.T) {
	f := &fakeBackend{home: homePage(video("a"), channel("UC1"))}
	m := newMachine(t, f)
	ctx := context.Background()

	out, err := m.Activate(ctx)
	require.NoError(t, err)
	require.Equal(t, Outcome{Play: "a"}, out)
	require.Equal(t, KindHome, m.Page().Kind, "playing does not change page")

	require.NoError(t, m.SelectDelta(ctx, 1))
	out, err = m.Activate(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, out.Notice)
	require.Empty(t, out.Play)
	require.Equal(t, KindHome, m.Page().Kind)
}

func TestPushFailureKeepsPage(t *testing.T) {
	f := &fakeBackend{home: homePage(video("a"))}
	m := newMachine(t, f)
	err := m.Search(context.Background(), "unknown")
	require.ErrorIs(t, err, types.ErrTransport)
	require.Equal(t, KindHome, m.Page().Kind)
	require.Len(t, m.Items(), 1)
}

func TestEmptySearchIsNoop(t *testing.T) {
	f := &fakeBackend{home: homePage(video("a"))}
	m := newMachine(t, f)
	require.NoError(t, m.Search(context.Background(), "   "))
	require.Equal(t, []string{"GET /"}, f.requests)
}

func TestGoHomeDropsStack(t *testing.T) {
	f := &fakeBackend{
		home:      homePage(video("a")),
		responses: map[string]string{"search q": searchResults(video("s1"))},
	}
	m := NewMachine(f, SearchPage("q"), zerolog.Nop())
	ctx := context.Background()
	require.NoError(t, m.Load(ctx))
	require.Equal(t, KindSearch, m.Page().Kind)
	require.Equal(t, 1, m.Page().Depth())

	require.NoError(t, m.GoHome(ctx))
	require.Equal(t, KindHome, m.Page().Kind)
	require.Nil(t, m.Page().Previous)
}

func TestRefreshKeepsCursor(t *testing.T) {
	f := &fakeBackend{home: homePage(video("a"), video("b"))}
	m := newMachine(t, f)
	ctx := context.Background()
	require.NoError(t, m.SelectDelta(ctx, 1))
	require.NoError(t, m.Refresh(ctx))
	require.Equal(t, 1, m.Selected())
	require.Equal(t, []string{"GET /", "GET /"}, f.requests)
}

func TestDecodeFailureSurfaces(t *testing.T) {
	f := &fakeBackend{home: "<html></html>"}
	m := NewMachine(f, nil, zerolog.Nop())
	err := m.Load(context.Background())
	require.ErrorIs(t, err, types.ErrUnparseable)
	require.False(t, types.IsRecoverable(err))
}

func TestPageTitles(t *testing.T) {
	tests := []struct {
		page *Page
		want string
	}{
		{HomePage(), "Home"},
		{&Page{Kind: KindCategory}, "A category"},
		{&Page{Kind: KindGame}, "A game"},
		{&Page{Kind: KindSearch, Query: "cats"}, "cats"},
		{&Page{Kind: KindRecommendations}, "Recommendations"},
		{&Page{Kind: KindTranscript}, "Transcript"},
		{&Page{Kind: KindCommentSection}, "Comments"},
		{&Page{Kind: KindComment}, "A comment"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, tt.page.Title())
	}
}
