package decoder

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/famomatic/yttui/internal/types"
)

func loadFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("failed to read fixture %s: %v", name, err)
	}
	return data
}

// nodes lists the navigable nodes of items, skipping NodeNone.
func nodes(items []types.Item) []types.Node {
	var out []types.Node
	for _, it := range items {
		if it.Node.Kind != types.NodeNone {
			out = append(out, it.Node)
		}
	}
	return out
}

func findTitle(items []types.Item, title string) (types.Item, bool) {
	for _, it := range items {
		if it.Title.String() == title || (len(it.Title) > 0 && it.Title[0].String() == title) {
			return it, true
		}
	}
	return types.Item{}, false
}

func wantContinuation(t *testing.T, res *Result, want string) {
	t.Helper()
	if want == "" {
		if res.Continuation != nil {
			t.Fatalf("Continuation = %q, want nil", *res.Continuation)
		}
		return
	}
	if res.Continuation == nil || *res.Continuation != want {
		t.Fatalf("Continuation = %v, want %q", res.Continuation, want)
	}
}

func TestHome(t *testing.T) {
	res, err := Home(loadFixture(t, "home.html"))
	if err != nil {
		t.Fatalf("Home() error = %v", err)
	}
	wantContinuation(t, res, "home-next")

	got := nodes(res.Items)
	want := []types.Node{
		types.HeaderNode("chip-music"),
		types.VideoNode("vid00000001"),
		types.VideoNode("short000001"),
	}
	if len(got) != len(want) {
		t.Fatalf("Home() nodes = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i].Kind != want[i].Kind || got[i].ID != want[i].ID {
			t.Fatalf("node %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	video, ok := findTitle(res.Items, "First video 3:21")
	if !ok {
		t.Fatalf("video item not found in %v", res.Items)
	}
	if got := video.Detail.String(); !strings.Contains(got, "Length: 3 minutes, 21 seconds") {
		t.Fatalf("video detail = %q, want accessibility length", got)
	}
}

func TestHomeWithoutInitialData(t *testing.T) {
	_, err := Home([]byte("<html><script>var x = {};</script></html>"))
	if !errors.Is(err, types.ErrUnparseable) {
		t.Fatalf("Home() error = %v, want ErrUnparseable", err)
	}
}

func TestBrowseContinuation(t *testing.T) {
	res, err := BrowseContinuation(loadFixture(t, "browse_continuation.json"))
	if err != nil {
		t.Fatalf("BrowseContinuation() error = %v", err)
	}
	wantContinuation(t, res, "home-next-2")
	if len(res.Items) != 1 || res.Items[0].Node.ID != "vid00000002" {
		t.Fatalf("BrowseContinuation() items = %+v", res.Items)
	}

	res, err = BrowseContinuation(loadFixture(t, "browse_continuation_last.json"))
	if err != nil {
		t.Fatalf("BrowseContinuation() error = %v", err)
	}
	wantContinuation(t, res, "")
}

func TestBrowseSelectsTab(t *testing.T) {
	res, err := Browse(loadFixture(t, "game.json"))
	if err != nil {
		t.Fatalf("Browse() error = %v", err)
	}
	wantContinuation(t, res, "game-next")
	if len(res.Items) != 1 {
		t.Fatalf("Browse() items = %d, want 1", len(res.Items))
	}
	if got := res.Items[0].Detail.String(); !strings.Contains(got, "Badges: LIVE") {
		t.Fatalf("detail = %q, want badge", got)
	}
}

func TestUnknownRendererFailsWholeDecode(t *testing.T) {
	raw := []byte(`{"onResponseReceivedActions":[{"appendContinuationItemsAction":{"continuationItems":[
		{"videoRenderer":{"videoId":"ok","title":{"simpleText":"ok"}}},
		{"mysteryRenderer":{}}]}}]}`)
	res, err := BrowseContinuation(raw)
	if res != nil {
		t.Fatalf("BrowseContinuation() result = %+v, want nil", res)
	}
	var shape *ShapeError
	if !errors.As(err, &shape) {
		t.Fatalf("error = %v, want *ShapeError", err)
	}
	if shape.Shape != ShapeBrowseContinuation {
		t.Fatalf("Shape = %q, want %q", shape.Shape, ShapeBrowseContinuation)
	}
	if !errors.Is(err, types.ErrUnparseable) {
		t.Fatalf("error = %v, want ErrUnparseable", err)
	}
}

func TestInvalidJSON(t *testing.T) {
	decoders := map[string]func([]byte) (*Result, error){
		"Browse":             Browse,
		"BrowseContinuation": BrowseContinuation,
		"Search":             Search,
		"SearchContinuation": SearchContinuation,
		"Next":               Next,
		"NextContinuation":   NextContinuation,
		"Comments":           Comments,
		"Replies":            Replies,
		"Transcript":         Transcript,
	}
	for name, decode := range decoders {
		t.Run(name, func(t *testing.T) {
			if _, err := decode([]byte(`{"truncated":`)); !errors.Is(err, types.ErrUnparseable) {
				t.Fatalf("%s() error = %v, want ErrUnparseable", name, err)
			}
			if _, err := decode([]byte(`{}`)); !errors.Is(err, types.ErrUnparseable) {
				t.Fatalf("%s({}) error = %v, want ErrUnparseable", name, err)
			}
		})
	}
}

func TestSearch(t *testing.T) {
	res, err := Search(loadFixture(t, "search.json"))
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	wantContinuation(t, res, "search-next")

	if got := res.Items[0].Title.String(); got != "420 results\n" {
		t.Fatalf("first title = %q, want result count", got)
	}

	var kinds []types.NodeKind
	for _, n := range nodes(res.Items) {
		kinds = append(kinds, n.Kind)
	}
	want := []types.NodeKind{
		types.NodeSearch, types.NodeSearch, // refinements
		types.NodeSearch, // "Today" filter
		types.NodeChannel,
		types.NodeVideo,
		types.NodePlaylist, types.NodeVideo,
		types.NodeSearch, // refinement card
	}
	if len(kinds) != len(want) {
		t.Fatalf("Search() kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("kind %d = %v, want %v", i, kinds[i], want[i])
		}
	}

	today, ok := findTitle(res.Items, "Today")
	if !ok || today.Node.Params == nil || *today.Node.Params != "EgIIAg%3D%3D" {
		t.Fatalf("Today filter = %+v", today)
	}
	anyTime, ok := findTitle(res.Items, "Any time")
	if !ok || !anyTime.Title[0][0].Bold || anyTime.Node.Kind != types.NodeNone {
		t.Fatalf("selected filter = %+v, want bold without node", anyTime)
	}
}

func TestNext(t *testing.T) {
	res, err := Next(loadFixture(t, "next.json"))
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	wantContinuation(t, res, "next-more")

	got := nodes(res.Items)
	want := []types.Node{
		types.VideoNode("current0001"),
		types.TranscriptNode("transcript-params"),
		types.CommentSectionNode("comments-top"),
		types.CommentSectionNode("comments-new"),
		types.VideoNode("autoplay001"),
		types.VideoNode("related0001"),
	}
	if len(got) != len(want) {
		t.Fatalf("Next() nodes = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i].Kind != want[i].Kind || got[i].ID != want[i].ID || got[i].Token != want[i].Token {
			t.Fatalf("node %d = %+v, want %+v", i, got[i], want[i])
		}
		if want[i].Kind == types.NodeTranscript && (got[i].Params == nil || *got[i].Params != "transcript-params") {
			t.Fatalf("transcript params = %v", got[i].Params)
		}
	}

	comments, ok := findTitle(res.Items, "57 Comments")
	if !ok || comments.Node.Kind != types.NodeNone {
		t.Fatalf("comments header = %+v", comments)
	}

	desc := res.Items[0].Detail
	var link types.Span
	for _, line := range desc {
		for _, s := range line {
			if s.Text == "link" {
				link = s
			}
		}
	}
	if !link.HasColor || link.Color != 0x3ea6ff {
		t.Fatalf("link span = %+v, want colored", link)
	}
	if got := desc.String(); !strings.Contains(got, "1,000 likes") || !strings.Contains(got, "bye") {
		t.Fatalf("description = %q", got)
	}
}

func TestComments(t *testing.T) {
	res, err := Comments(loadFixture(t, "comments.json"))
	if err != nil {
		t.Fatalf("Comments() error = %v", err)
	}
	wantContinuation(t, res, "comments-page-2")
	if len(res.Items) != 2 {
		t.Fatalf("Comments() items = %d, want 2", len(res.Items))
	}
	alice, bob := res.Items[0], res.Items[1]
	if alice.Node.Kind != types.NodeComment || alice.Node.Token != "replies-alice" {
		t.Fatalf("alice node = %+v, want comment replies", alice.Node)
	}
	if bob.Node.Kind != types.NodeNone {
		t.Fatalf("bob node = %+v, want none", bob.Node)
	}
	if !bob.Title[0][0].HasColor {
		t.Fatalf("channel owner title not colored: %+v", bob.Title)
	}
	if got := alice.Detail.String(); !strings.Contains(got, "Replies: 3") {
		t.Fatalf("alice detail = %q", got)
	}
}

func TestTranscript(t *testing.T) {
	res, err := Transcript(loadFixture(t, "transcript.json"))
	if err != nil {
		t.Fatalf("Transcript() error = %v", err)
	}
	wantContinuation(t, res, "")

	got := nodes(res.Items)
	if len(got) != 2 || got[0].Kind != types.NodeTranscript || *got[1].Params != "lang-de" {
		t.Fatalf("language nodes = %+v", got)
	}
	english, ok := findTitle(res.Items, "English")
	if !ok || !english.Title[0][0].Underline {
		t.Fatalf("selected language = %+v, want underlined", english)
	}
	if _, ok := findTitle(res.Items, "hello there"); !ok {
		t.Fatalf("segment missing from %+v", res.Items)
	}
}

func TestPlayer(t *testing.T) {
	resp, err := Player(loadFixture(t, "player.json"))
	if err != nil {
		t.Fatalf("Player() error = %v", err)
	}
	if got := len(resp.StreamingData.AdaptiveFormats); got != 2 {
		t.Fatalf("adaptive formats = %d, want 2", got)
	}
	if got := resp.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks[0].LanguageCode; got != "en" {
		t.Fatalf("caption language = %q, want en", got)
	}
}

func TestPlayerUnavailable(t *testing.T) {
	_, err := Player(loadFixture(t, "player_unavailable.json"))
	var unavailable *UnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("Player() error = %v, want *UnavailableError", err)
	}
	if unavailable.Status != "LOGIN_REQUIRED" {
		t.Fatalf("Status = %q, want LOGIN_REQUIRED", unavailable.Status)
	}
	if !types.IsRecoverable(err) {
		t.Fatalf("IsRecoverable(%v) = false, want true", err)
	}
}
