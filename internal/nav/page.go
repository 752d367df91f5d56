// Package nav is the navigation state machine: a stack of pages, each able
// to fetch its first batch of items and to continue with more.
package nav

import (
	"context"
	"fmt"

	"github.com/famomatic/yttui/internal/decoder"
	"github.com/famomatic/yttui/internal/innertube"
	"github.com/famomatic/yttui/internal/types"
)

// Backend is the HTTP session as seen by pages.
type Backend interface {
	Get(ctx context.Context, path string) ([]byte, error)
	Post(ctx context.Context, endpoint string, body innertube.Body) ([]byte, error)
}

type Kind int

const (
	KindHome Kind = iota
	KindCategory
	KindGame
	KindSearch
	KindRecommendations
	KindTranscript
	KindCommentSection
	KindComment
)

func (k Kind) String() string {
	switch k {
	case KindHome:
		return "home"
	case KindCategory:
		return "category"
	case KindGame:
		return "game"
	case KindSearch:
		return "search"
	case KindRecommendations:
		return "recommendations"
	case KindTranscript:
		return "transcript"
	case KindCommentSection:
		return "comment section"
	case KindComment:
		return "comment"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Previous links a page to the one it was opened from.
type Previous struct {
	Page     *Page
	Selected int
}

// Page is one view. Only the fields its Kind needs are set.
type Page struct {
	Kind Kind

	VideoID  string  // Recommendations
	BrowseID string  // Game
	Query    string  // Search
	Params   *string // Game, Search, Transcript
	// Token is the first continuation of Category, CommentSection and Comment.
	Token string

	// Continuation is nil once the page is exhausted.
	Continuation *string
	// Previous is nil only for Home.
	Previous *Previous
}

func HomePage() *Page { return &Page{Kind: KindHome} }

// SearchPage is a search for query opened from Home.
func SearchPage(query string) *Page {
	return &Page{Kind: KindSearch, Query: query, Previous: &Previous{Page: HomePage()}}
}

// pageFor returns the page a node opens, or nil for nodes that do not open one.
func pageFor(n types.Node) *Page {
	switch n.Kind {
	case types.NodeHeader:
		return &Page{Kind: KindCategory, Token: n.Token}
	case types.NodeGame:
		return &Page{Kind: KindGame, BrowseID: n.ID, Params: n.Params}
	case types.NodeSearch:
		return &Page{Kind: KindSearch, Query: n.Query, Params: n.Params}
	case types.NodeTranscript:
		return &Page{Kind: KindTranscript, Params: n.Params}
	case types.NodeCommentSection:
		return &Page{Kind: KindCommentSection, Token: n.Token}
	case types.NodeComment:
		return &Page{Kind: KindComment, Token: n.Token}
	}
	return nil
}

func (p *Page) Title() string {
	switch p.Kind {
	case KindHome:
		return "Home"
	case KindCategory:
		return "A category"
	case KindGame:
		return "A game"
	case KindSearch:
		return p.Query
	case KindRecommendations:
		return "Recommendations"
	case KindTranscript:
		return "Transcript"
	case KindCommentSection:
		return "Comments"
	case KindComment:
		return "A comment"
	}
	return p.Kind.String()
}

// Depth is the number of pages below p.
func (p *Page) Depth() int {
	n := 0
	for prev := p.Previous; prev != nil; prev = prev.Page.Previous {
		n++
	}
	return n
}

// Request performs the page's initial fetch and replaces its continuation.
// Calling it again simply fetches again.
func (p *Page) Request(ctx context.Context, b Backend) ([]types.Item, error) {
	ctx = types.WithPage(ctx, p.Kind.String())

	var (
		raw    []byte
		err    error
		decode func([]byte) (*decoder.Result, error)
	)
	switch p.Kind {
	case KindHome:
		raw, err = b.Get(ctx, "/")
		decode = decoder.Home
	case KindCategory:
		raw, err = b.Post(ctx, innertube.EndpointBrowse, &innertube.BrowseRequest{Continuation: p.Token})
		decode = decoder.BrowseContinuation
	case KindGame:
		raw, err = b.Post(ctx, innertube.EndpointBrowse, &innertube.BrowseRequest{BrowseID: p.BrowseID, Params: deref(p.Params)})
		decode = decoder.Browse
	case KindSearch:
		raw, err = b.Post(ctx, innertube.EndpointSearch, &innertube.SearchRequest{Query: p.Query, Params: deref(p.Params)})
		decode = decoder.Search
	case KindRecommendations:
		raw, err = b.Post(ctx, innertube.EndpointNext, &innertube.NextRequest{VideoID: p.VideoID})
		decode = decoder.Next
	case KindTranscript:
		raw, err = b.Post(ctx, innertube.EndpointTranscript, &innertube.TranscriptRequest{Params: deref(p.Params)})
		decode = decoder.Transcript
	case KindCommentSection:
		raw, err = b.Post(ctx, innertube.EndpointNext, &innertube.NextRequest{Continuation: p.Token})
		decode = decoder.Comments
	case KindComment:
		raw, err = b.Post(ctx, innertube.EndpointNext, &innertube.NextRequest{Continuation: p.Token})
		decode = decoder.Replies
	default:
		return nil, fmt.Errorf("unknown page kind %v", p.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", p.Kind, err)
	}

	res, err := decode(raw)
	if err != nil {
		return nil, err
	}
	p.Continuation = res.Continuation
	return res.Items, nil
}

// Continue appends the next batch to items. With no continuation it returns
// items unchanged.
func (p *Page) Continue(ctx context.Context, b Backend, items []types.Item) ([]types.Item, error) {
	if p.Continuation == nil {
		return items, nil
	}
	ctx = types.WithPage(ctx, p.Kind.String())
	token := *p.Continuation

	var (
		raw    []byte
		err    error
		decode func([]byte) (*decoder.Result, error)
	)
	switch p.Kind {
	case KindHome, KindCategory, KindGame:
		raw, err = b.Post(ctx, innertube.EndpointBrowse, &innertube.BrowseRequest{Continuation: token})
		decode = decoder.BrowseContinuation
	case KindSearch:
		raw, err = b.Post(ctx, innertube.EndpointSearch, &innertube.SearchRequest{Continuation: token})
		decode = decoder.SearchContinuation
	case KindRecommendations:
		raw, err = b.Post(ctx, innertube.EndpointNext, &innertube.NextRequest{Continuation: token})
		decode = decoder.NextContinuation
	case KindCommentSection:
		raw, err = b.Post(ctx, innertube.EndpointNext, &innertube.NextRequest{Continuation: token})
		decode = decoder.Comments
	case KindComment:
		raw, err = b.Post(ctx, innertube.EndpointNext, &innertube.NextRequest{Continuation: token})
		decode = decoder.Replies
	default:
		// Transcripts arrive in one piece.
		p.Continuation = nil
		return items, nil
	}
	if err != nil {
		return items, fmt.Errorf("failed to continue %s: %w", p.Kind, err)
	}

	res, err := decode(raw)
	if err != nil {
		return items, err
	}
	p.Continuation = res.Continuation
	return append(items, res.Items...), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
