package decoder

import (
	"encoding/json"
	"strings"

	"github.com/famomatic/yttui/internal/types"
)

const (
	panelDescription = "engagement-panel-structured-description"
	panelTranscript  = "engagement-panel-searchable-transcript"
	panelComments    = "engagement-panel-comments-section"
)

type nextResponse struct {
	CurrentVideoEndpoint struct {
		WatchEndpoint *WatchEndpoint `json:"watchEndpoint"`
	} `json:"currentVideoEndpoint"`
	Contents struct {
		TwoColumnWatchNextResults *struct {
			SecondaryResults struct {
				SecondaryResults struct {
					Results []renderer `json:"results"`
				} `json:"secondaryResults"`
			} `json:"secondaryResults"`
		} `json:"twoColumnWatchNextResults"`
	} `json:"contents"`
	EngagementPanels []struct {
		EngagementPanelSectionListRenderer engagementPanel `json:"engagementPanelSectionListRenderer"`
	} `json:"engagementPanels"`
	PlayerOverlays struct {
		PlayerOverlayRenderer struct {
			Autoplay *struct {
				PlayerOverlayAutoplayRenderer *autoplay `json:"playerOverlayAutoplayRenderer"`
			} `json:"autoplay"`
		} `json:"playerOverlayRenderer"`
	} `json:"playerOverlays"`
}

type engagementPanel struct {
	PanelIdentifier string `json:"panelIdentifier"`
	Header          *struct {
		EngagementPanelTitleHeaderRenderer *struct {
			ContextualInfo Text `json:"contextualInfo"`
			Menu           *struct {
				SortFilterSubMenuRenderer *struct {
					SubMenuItems []struct {
						Title           string   `json:"title"`
						ServiceEndpoint Endpoint `json:"serviceEndpoint"`
					} `json:"subMenuItems"`
				} `json:"sortFilterSubMenuRenderer"`
			} `json:"menu"`
		} `json:"engagementPanelTitleHeaderRenderer"`
	} `json:"header"`
	Content json.RawMessage `json:"content"`
}

type autoplay struct {
	VideoID            string `json:"videoId"`
	VideoTitle         Text   `json:"videoTitle"`
	Byline             Text   `json:"byline"`
	PublishedTimeText  Text   `json:"publishedTimeText"`
	ShortViewCountText Text   `json:"shortViewCountText"`
}

type structuredDescription struct {
	StructuredDescriptionContentRenderer struct {
		Items []struct {
			VideoDescriptionHeaderRenderer *struct {
				Title   Text `json:"title"`
				Channel Text `json:"channel"`
				Views   Text `json:"views"`
				Factoid []struct {
					FactoidRenderer struct {
						AccessibilityText string `json:"accessibilityText"`
					} `json:"factoidRenderer"`
				} `json:"factoid"`
			} `json:"videoDescriptionHeaderRenderer"`
			ExpandableVideoDescriptionBodyRenderer *struct {
				AttributedDescriptionBodyText attributedText `json:"attributedDescriptionBodyText"`
			} `json:"expandableVideoDescriptionBodyRenderer"`
		} `json:"items"`
	} `json:"structuredDescriptionContentRenderer"`
}

// attributedText is plain content plus color runs addressed by rune offset.
type attributedText struct {
	Content   string `json:"content"`
	StyleRuns []struct {
		StartIndex int     `json:"startIndex"`
		Length     int     `json:"length"`
		FontColor  *uint32 `json:"fontColor"`
	} `json:"styleRuns"`
}

func (a attributedText) block() types.Block {
	runes := []rune(a.Content)
	block := types.Block{nil}
	emit := func(s string, color *uint32) {
		for i, part := range strings.Split(s, "\n") {
			if i > 0 {
				block = append(block, nil)
			}
			if part == "" {
				continue
			}
			span := types.Plain(part)
			if color != nil {
				span = types.Colored(part, *color&0xffffff)
			}
			last := len(block) - 1
			block[last] = append(block[last], span)
		}
	}
	pos := 0
	for _, r := range a.StyleRuns {
		start, end := clamp(r.StartIndex, pos, len(runes)), clamp(r.StartIndex+r.Length, pos, len(runes))
		emit(string(runes[pos:start]), nil)
		emit(string(runes[start:end]), r.FontColor)
		pos = end
	}
	emit(string(runes[pos:]), nil)
	return block
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Next decodes the recommendations page of a video: its description,
// transcript and comment entries, the autoplay video, then related videos.
func Next(raw []byte) (*Result, error) {
	var resp nextResponse
	if err := decodeJSON(ShapeNext, raw, &resp); err != nil {
		return nil, err
	}
	if resp.Contents.TwoColumnWatchNextResults == nil {
		return nil, shapeErr(ShapeNext, "no twoColumnWatchNextResults")
	}
	videoID := ""
	if resp.CurrentVideoEndpoint.WatchEndpoint != nil {
		videoID = resp.CurrentVideoEndpoint.WatchEndpoint.VideoID
	}

	b := newBuilder(ShapeNext)
	for _, p := range resp.EngagementPanels {
		if err := b.addPanel(p.EngagementPanelSectionListRenderer, videoID); err != nil {
			return nil, err
		}
	}
	b.push(blank())

	if ap := resp.PlayerOverlays.PlayerOverlayRenderer.Autoplay; ap != nil && ap.PlayerOverlayAutoplayRenderer != nil {
		a := ap.PlayerOverlayAutoplayRenderer
		detail := types.Block{{types.Bold(a.VideoTitle.String())}, nil}
		detail = field(detail, "Channel", a.Byline.String())
		detail = field(detail, "Published", a.PublishedTimeText.String())
		detail = field(detail, "Views", a.ShortViewCountText.Label())
		b.push(types.Item{
			Title:  spaced(types.Colored("Autoplay video", accentColor)),
			Detail: detail,
			Node:   types.VideoNode(a.VideoID),
		})
	}

	if err := b.addAll(resp.Contents.TwoColumnWatchNextResults.SecondaryResults.SecondaryResults.Results); err != nil {
		return nil, err
	}
	return b.result(), nil
}

func (b *builder) addPanel(p engagementPanel, videoID string) error {
	switch p.PanelIdentifier {
	case panelDescription:
		var d structuredDescription
		if err := b.decode(p.PanelIdentifier, p.Content, &d); err != nil {
			return err
		}
		title := ""
		var detail types.Block
		for _, it := range d.StructuredDescriptionContentRenderer.Items {
			if h := it.VideoDescriptionHeaderRenderer; h != nil {
				title = h.Title.String()
				detail = append(detail, types.Line{types.Bold(title)}, nil)
				detail = field(detail, "Channel", h.Channel.String())
				for _, f := range h.Factoid {
					if t := f.FactoidRenderer.AccessibilityText; t != "" {
						detail = append(detail, types.Line{types.Plain(t)})
					}
				}
				detail = append(detail, nil)
			}
			if body := it.ExpandableVideoDescriptionBodyRenderer; body != nil {
				detail = append(detail, body.AttributedDescriptionBodyText.block()...)
			}
		}
		if title == "" {
			return shapeErr(b.shape, "description panel without header")
		}
		b.push(types.Item{Title: spaced(types.Bold(title)), Detail: detail, Node: types.VideoNode(videoID)})

	case panelTranscript:
		var c struct {
			ContinuationItemRenderer *struct {
				ContinuationEndpoint Endpoint `json:"continuationEndpoint"`
			} `json:"continuationItemRenderer"`
		}
		if err := b.decode(p.PanelIdentifier, p.Content, &c); err != nil {
			return err
		}
		if c.ContinuationItemRenderer == nil || c.ContinuationItemRenderer.ContinuationEndpoint.GetTranscriptEndpoint == nil {
			return shapeErr(b.shape, "transcript panel without getTranscriptEndpoint")
		}
		b.push(types.Item{
			Title:  types.Block{{types.Plain("Transcript")}},
			Detail: types.Block{{types.Plain("Open the transcript of this video")}},
			Node:   types.TranscriptNode(c.ContinuationItemRenderer.ContinuationEndpoint.GetTranscriptEndpoint.Params),
		})

	case panelComments:
		if p.Header == nil || p.Header.EngagementPanelTitleHeaderRenderer == nil {
			return shapeErr(b.shape, "comments panel without header")
		}
		h := p.Header.EngagementPanelTitleHeaderRenderer
		title := types.Line{types.Plain(h.ContextualInfo.String()), types.Plain(" Comments")}
		b.push(types.Item{Title: types.Block{title}})
		if h.Menu == nil || h.Menu.SortFilterSubMenuRenderer == nil {
			return nil
		}
		for _, s := range h.Menu.SortFilterSubMenuRenderer.SubMenuItems {
			token := s.ServiceEndpoint.token()
			if token == "" {
				return shapeErr(b.shape, "comment sort %q without token", s.Title)
			}
			b.push(types.Item{
				Title:  types.Block{{types.Plain("  " + s.Title)}},
				Detail: types.Block{{types.Plain("Comments sorted by "), types.Bold(s.Title)}},
				Node:   types.CommentSectionNode(token),
			})
		}
	}
	return nil
}

// NextContinuation decodes more related videos.
func NextContinuation(raw []byte) (*Result, error) {
	return continuation(ShapeNextContinuation, raw)
}
