package decoder

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Shape names used in ShapeError.
const (
	ShapeHome               = "home"
	ShapeBrowse             = "browse"
	ShapeBrowseContinuation = "browse continuation"
	ShapeSearch             = "search"
	ShapeSearchContinuation = "search continuation"
	ShapeNext               = "next"
	ShapeNextContinuation   = "next continuation"
	ShapeComments           = "comments"
	ShapeReplies            = "replies"
	ShapeTranscript         = "transcript"
	ShapePlayer             = "player"
)

const initialDataMarker = "ytInitialData"

type browseResponse struct {
	Contents struct {
		TwoColumnBrowseResultsRenderer *struct {
			Tabs []struct {
				TabRenderer *struct {
					Selected bool        `json:"selected"`
					Content  *tabContent `json:"content"`
				} `json:"tabRenderer"`
			} `json:"tabs"`
		} `json:"twoColumnBrowseResultsRenderer"`
	} `json:"contents"`
	continuationEnvelope
}

type tabContent struct {
	RichGridRenderer *struct {
		Contents []renderer `json:"contents"`
		Header   renderer   `json:"header"`
	} `json:"richGridRenderer"`
	SectionListRenderer *struct {
		Contents []renderer `json:"contents"`
	} `json:"sectionListRenderer"`
}

// continuationEnvelope covers the three places the backend puts appended or
// reloaded items, depending on the endpoint.
type continuationEnvelope struct {
	OnResponseReceivedActions   []continuationAction `json:"onResponseReceivedActions"`
	OnResponseReceivedEndpoints []continuationAction `json:"onResponseReceivedEndpoints"`
	OnResponseReceivedCommands  []continuationAction `json:"onResponseReceivedCommands"`
}

type continuationAction struct {
	AppendContinuationItemsAction  *continuationItems `json:"appendContinuationItemsAction"`
	ReloadContinuationItemsCommand *continuationItems `json:"reloadContinuationItemsCommand"`
}

type continuationItems struct {
	ContinuationItems []renderer `json:"continuationItems"`
}

func (e continuationEnvelope) decode(b *builder) error {
	found := false
	for _, list := range [][]continuationAction{e.OnResponseReceivedActions, e.OnResponseReceivedEndpoints, e.OnResponseReceivedCommands} {
		for _, a := range list {
			for _, items := range []*continuationItems{a.AppendContinuationItemsAction, a.ReloadContinuationItemsCommand} {
				if items == nil {
					continue
				}
				found = true
				if err := b.addAll(items.ContinuationItems); err != nil {
					return err
				}
			}
		}
	}
	if !found {
		return shapeErr(b.shape, "no continuation items")
	}
	return nil
}

// selectedTab returns the selected tab's content, or the first tab with content.
func (r *browseResponse) selectedTab() *tabContent {
	cols := r.Contents.TwoColumnBrowseResultsRenderer
	if cols == nil {
		return nil
	}
	var first *tabContent
	for _, t := range cols.Tabs {
		if t.TabRenderer == nil || t.TabRenderer.Content == nil {
			continue
		}
		if t.TabRenderer.Selected {
			return t.TabRenderer.Content
		}
		if first == nil {
			first = t.TabRenderer.Content
		}
	}
	return first
}

func (b *builder) addTab(tab *tabContent) error {
	switch {
	case tab.RichGridRenderer != nil:
		if len(tab.RichGridRenderer.Header) > 0 {
			if err := b.add(tab.RichGridRenderer.Header); err != nil {
				return err
			}
		}
		return b.addAll(tab.RichGridRenderer.Contents)
	case tab.SectionListRenderer != nil:
		return b.addAll(tab.SectionListRenderer.Contents)
	}
	return shapeErr(b.shape, "tab without richGridRenderer or sectionListRenderer")
}

// Home decodes the home page HTML. The feed is embedded as the ytInitialData
// script; filter chips become category headers above the grid.
func Home(page []byte) (*Result, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, &ShapeError{Shape: ShapeHome, Reason: "invalid html", Err: err}
	}

	var data string
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.Text()
		i := strings.Index(text, initialDataMarker)
		if i < 0 {
			return true
		}
		start := strings.IndexByte(text[i:], '{')
		end := strings.LastIndexByte(text, '}')
		if start < 0 || end < i+start {
			return true
		}
		data = text[i+start : end+1]
		return false
	})
	if data == "" {
		return nil, shapeErr(ShapeHome, "%s script not found", initialDataMarker)
	}
	return browse(ShapeHome, []byte(data))
}

// Browse decodes a browse response for a game or channel-like page.
func Browse(raw []byte) (*Result, error) {
	return browse(ShapeBrowse, raw)
}

func browse(shape string, raw []byte) (*Result, error) {
	var resp browseResponse
	if err := decodeJSON(shape, raw, &resp); err != nil {
		return nil, err
	}
	tab := resp.selectedTab()
	if tab == nil {
		return nil, shapeErr(shape, "no tab content")
	}
	b := newBuilder(shape)
	if err := b.addTab(tab); err != nil {
		return nil, err
	}
	return b.result(), nil
}

// BrowseContinuation decodes more items for the home feed, a category or a game.
func BrowseContinuation(raw []byte) (*Result, error) {
	return continuation(ShapeBrowseContinuation, raw)
}

func continuation(shape string, raw []byte) (*Result, error) {
	var env continuationEnvelope
	if err := decodeJSON(shape, raw, &env); err != nil {
		return nil, err
	}
	b := newBuilder(shape)
	if err := env.decode(b); err != nil {
		return nil, err
	}
	return b.result(), nil
}
