package decoder

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/famomatic/yttui/internal/types"
)

// ignored renderers carry nothing navigable.
var ignored = map[string]bool{
	"adSlotRenderer":                  true,
	"backgroundPromoRenderer":         true,
	"brandVideoShelfRenderer":         true,
	"brandVideoSingletonRenderer":     true,
	"clarificationRenderer":           true,
	"commentsHeaderRenderer":          true,
	"compactMovieRenderer":            true,
	"didYouMeanRenderer":              true,
	"emergencyOneboxRenderer":         true,
	"feedNudgeRenderer":               true,
	"gridShelfViewModel":              true,
	"includingResultsForRenderer":     true,
	"inlineSurveyRenderer":            true,
	"messageRenderer":                 true,
	"movieRenderer":                   true,
	"primetimePromoRenderer":          true,
	"promotedSparklesWebRenderer":     true,
	"promotedVideoRenderer":           true,
	"relatedChipCloudRenderer":        true,
	"searchPyvRenderer":               true,
	"showingResultsForRenderer":       true,
	"statementBannerRenderer":         true,
	"transcriptSectionHeaderRenderer": true,
}

// builder accumulates items across nested renderers of one response.
type builder struct {
	shape        string
	items        []types.Item
	continuation *string
}

func newBuilder(shape string) *builder {
	return &builder{shape: shape}
}

func (b *builder) result() *Result {
	return &Result{Items: b.items, Continuation: b.continuation}
}

func (b *builder) push(item types.Item) {
	b.items = append(b.items, item)
}

func (b *builder) setContinuation(token string) {
	if token != "" {
		b.continuation = &token
	}
}

func (b *builder) addAll(list []renderer) error {
	for _, r := range list {
		if err := b.add(r); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) add(r renderer) error {
	for _, key := range r.keys() {
		if err := b.addOne(key, r[key]); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) decode(key string, raw json.RawMessage, v any) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return &ShapeError{Shape: b.shape, Reason: key, Err: err}
	}
	return nil
}

func (b *builder) addOne(key string, raw json.RawMessage) error {
	if ignored[key] {
		return nil
	}
	switch key {
	case "richItemRenderer":
		var v struct {
			Content renderer `json:"content"`
		}
		if err := b.decode(key, raw, &v); err != nil {
			return err
		}
		return b.add(v.Content)

	case "videoRenderer", "gridVideoRenderer", "compactVideoRenderer", "playlistVideoRenderer":
		var v videoRenderer
		if err := b.decode(key, raw, &v); err != nil {
			return err
		}
		if v.VideoID == "" {
			return shapeErr(b.shape, "%s without videoId", key)
		}
		b.push(v.item())
		return nil

	case "reelItemRenderer":
		var v struct {
			VideoID       string `json:"videoId"`
			Headline      Text   `json:"headline"`
			ViewCountText Text   `json:"viewCountText"`
		}
		if err := b.decode(key, raw, &v); err != nil {
			return err
		}
		if v.VideoID == "" {
			return shapeErr(b.shape, "%s without videoId", key)
		}
		b.push(shortItem(v.VideoID, v.Headline.String(), v.ViewCountText.Label()))
		return nil

	case "shortsLockupViewModel":
		var v struct {
			OnTap struct {
				InnertubeCommand Endpoint `json:"innertubeCommand"`
			} `json:"onTap"`
			OverlayMetadata struct {
				PrimaryText   struct{ Content string } `json:"primaryText"`
				SecondaryText struct{ Content string } `json:"secondaryText"`
			} `json:"overlayMetadata"`
		}
		if err := b.decode(key, raw, &v); err != nil {
			return err
		}
		watch := v.OnTap.InnertubeCommand.ReelWatchEndpoint
		if watch == nil || watch.VideoID == "" {
			return shapeErr(b.shape, "%s without reelWatchEndpoint", key)
		}
		b.push(shortItem(watch.VideoID, v.OverlayMetadata.PrimaryText.Content, v.OverlayMetadata.SecondaryText.Content))
		return nil

	case "lockupViewModel":
		var v struct {
			ContentID   string `json:"contentId"`
			ContentType string `json:"contentType"`
			Metadata    struct {
				LockupMetadataViewModel struct {
					Title struct{ Content string } `json:"title"`
				} `json:"lockupMetadataViewModel"`
			} `json:"metadata"`
		}
		if err := b.decode(key, raw, &v); err != nil {
			return err
		}
		title := v.Metadata.LockupMetadataViewModel.Title.Content
		node := types.Node{}
		switch v.ContentType {
		case "LOCKUP_CONTENT_TYPE_VIDEO":
			node = types.VideoNode(v.ContentID)
		case "LOCKUP_CONTENT_TYPE_PLAYLIST", "LOCKUP_CONTENT_TYPE_PODCAST":
			node = types.PlaylistNode(v.ContentID)
		}
		b.push(types.Item{
			Title:  spaced(types.Bold(title)),
			Detail: types.Block{{types.Bold(title)}},
			Node:   node,
		})
		return nil

	case "gameCardRenderer":
		var v struct {
			Game struct {
				GameDetailsRenderer struct {
					Title           Text     `json:"title"`
					Endpoint        Endpoint `json:"endpoint"`
					LiveViewersText Text     `json:"liveViewersText"`
				} `json:"gameDetailsRenderer"`
			} `json:"game"`
		}
		if err := b.decode(key, raw, &v); err != nil {
			return err
		}
		g := v.Game.GameDetailsRenderer
		if g.Endpoint.BrowseEndpoint == nil {
			return shapeErr(b.shape, "%s without browseEndpoint", key)
		}
		detail := types.Block{{types.Bold(g.Title.String())}}
		detail = field(detail, "Watching", g.LiveViewersText.String())
		b.push(types.Item{
			Title:  spaced(types.Bold(g.Title.String())),
			Detail: detail,
			Node:   types.GameNode(g.Endpoint.BrowseEndpoint.BrowseID, types.StringPtr(g.Endpoint.BrowseEndpoint.Params)),
		})
		return nil

	case "richSectionRenderer":
		var v struct {
			Content renderer `json:"content"`
		}
		if err := b.decode(key, raw, &v); err != nil {
			return err
		}
		return b.add(v.Content)

	case "richShelfRenderer":
		var v struct {
			Title    Text       `json:"title"`
			Endpoint *Endpoint  `json:"endpoint"`
			Contents []renderer `json:"contents"`
		}
		if err := b.decode(key, raw, &v); err != nil {
			return err
		}
		b.header(v.Title.String(), v.Endpoint)
		return b.addAll(v.Contents)

	case "shelfRenderer":
		var v struct {
			Title    Text      `json:"title"`
			Endpoint *Endpoint `json:"endpoint"`
			Content  struct {
				VerticalListRenderer          *listRenderer `json:"verticalListRenderer"`
				HorizontalListRenderer        *listRenderer `json:"horizontalListRenderer"`
				ExpandedShelfContentsRenderer *listRenderer `json:"expandedShelfContentsRenderer"`
				GridRenderer                  *listRenderer `json:"gridRenderer"`
			} `json:"content"`
		}
		if err := b.decode(key, raw, &v); err != nil {
			return err
		}
		b.header(v.Title.String(), v.Endpoint)
		for _, l := range []*listRenderer{
			v.Content.VerticalListRenderer,
			v.Content.HorizontalListRenderer,
			v.Content.ExpandedShelfContentsRenderer,
			v.Content.GridRenderer,
		} {
			if l != nil {
				if err := b.addAll(l.Items); err != nil {
					return err
				}
			}
		}
		return nil

	case "reelShelfRenderer":
		var v struct {
			Title Text       `json:"title"`
			Items []renderer `json:"items"`
		}
		if err := b.decode(key, raw, &v); err != nil {
			return err
		}
		b.header(v.Title.String(), nil)
		return b.addAll(v.Items)

	case "itemSectionRenderer", "feedFilterChipBarRenderer":
		var v struct {
			Contents []renderer `json:"contents"`
		}
		if err := b.decode(key, raw, &v); err != nil {
			return err
		}
		return b.addAll(v.Contents)

	case "horizontalCardListRenderer":
		var v struct {
			Cards []renderer `json:"cards"`
		}
		if err := b.decode(key, raw, &v); err != nil {
			return err
		}
		return b.addAll(v.Cards)

	case "searchRefinementCardRenderer":
		var v struct {
			Query          Text     `json:"query"`
			SearchEndpoint Endpoint `json:"searchEndpoint"`
		}
		if err := b.decode(key, raw, &v); err != nil {
			return err
		}
		se := v.SearchEndpoint.SearchEndpoint
		if se == nil {
			return shapeErr(b.shape, "%s without searchEndpoint", key)
		}
		b.push(types.Item{
			Title:  types.Block{{types.Plain(v.Query.String())}},
			Detail: types.Block{{types.Plain("Search for "), types.Bold(se.Query)}},
			Node:   types.SearchNode(se.Query, types.StringPtr(se.Params)),
		})
		return nil

	case "chipCloudChipRenderer":
		var v struct {
			Text               Text      `json:"text"`
			NavigationEndpoint *Endpoint `json:"navigationEndpoint"`
			IsSelected         bool      `json:"isSelected"`
		}
		if err := b.decode(key, raw, &v); err != nil {
			return err
		}
		token := v.NavigationEndpoint.token()
		if token == "" {
			return nil
		}
		b.push(types.Item{
			Title:  types.Block{{types.Span{Text: v.Text.String(), Underline: v.IsSelected, Color: accentColor, HasColor: true}}},
			Detail: types.Block{{types.Plain("Category: "), types.Bold(v.Text.String())}},
			Node:   types.HeaderNode(token),
		})
		return nil

	case "continuationItemRenderer":
		var v struct {
			ContinuationEndpoint *Endpoint `json:"continuationEndpoint"`
			Button               *struct {
				ButtonRenderer struct {
					Command *Endpoint `json:"command"`
				} `json:"buttonRenderer"`
			} `json:"button"`
		}
		if err := b.decode(key, raw, &v); err != nil {
			return err
		}
		token := v.ContinuationEndpoint.token()
		if token == "" && v.Button != nil {
			token = v.Button.ButtonRenderer.Command.token()
		}
		if token == "" {
			return shapeErr(b.shape, "%s without token", key)
		}
		b.setContinuation(token)
		return nil

	case "channelRenderer":
		var v struct {
			ChannelID           string   `json:"channelId"`
			Title               Text     `json:"title"`
			SubscriberCountText Text     `json:"subscriberCountText"`
			VideoCountText      Text     `json:"videoCountText"`
			DescriptionSnippet  Text     `json:"descriptionSnippet"`
			NavigationEndpoint  Endpoint `json:"navigationEndpoint"`
		}
		if err := b.decode(key, raw, &v); err != nil {
			return err
		}
		if v.ChannelID == "" {
			return shapeErr(b.shape, "%s without channelId", key)
		}
		var params *string
		if be := v.NavigationEndpoint.BrowseEndpoint; be != nil {
			params = types.StringPtr(be.Params)
		}
		detail := types.Block{{types.Bold(v.Title.String())}, nil}
		detail = field(detail, "Subscribers", v.SubscriberCountText.String())
		detail = field(detail, "Videos", v.VideoCountText.String())
		detail = append(detail, nil)
		detail = append(detail, v.DescriptionSnippet.Block()...)
		b.push(types.Item{
			Title:  spaced(types.Colored(v.Title.String(), accentColor)),
			Detail: detail,
			Node:   types.ChannelNode(v.ChannelID, params),
		})
		return nil

	case "playlistRenderer", "radioRenderer", "compactPlaylistRenderer", "compactRadioRenderer":
		var v struct {
			PlaylistID      string `json:"playlistId"`
			Title           Text   `json:"title"`
			VideoCount      string `json:"videoCount"`
			VideoCountText  Text   `json:"videoCountText"`
			ShortBylineText Text   `json:"shortBylineText"`
			LongBylineText  Text   `json:"longBylineText"`
			Videos          []struct {
				ChildVideoRenderer struct {
					VideoID    string `json:"videoId"`
					Title      Text   `json:"title"`
					LengthText Text   `json:"lengthText"`
				} `json:"childVideoRenderer"`
			} `json:"videos"`
		}
		if err := b.decode(key, raw, &v); err != nil {
			return err
		}
		if v.PlaylistID == "" {
			return shapeErr(b.shape, "%s without playlistId", key)
		}
		count := v.VideoCount
		if count == "" {
			count = v.VideoCountText.String()
		}
		byline := v.LongBylineText.String()
		if byline == "" {
			byline = v.ShortBylineText.String()
		}
		detail := types.Block{{types.Bold(v.Title.String())}, nil}
		detail = field(detail, "Channel", byline)
		detail = field(detail, "Videos", count)
		b.push(types.Item{
			Title:  types.Block{{types.Colored("[Playlist] ", mutedColor), types.Bold(v.Title.String())}},
			Detail: detail,
			Node:   types.PlaylistNode(v.PlaylistID),
		})
		for _, child := range v.Videos {
			c := child.ChildVideoRenderer
			if c.VideoID == "" {
				continue
			}
			cd := types.Block{{types.Bold(c.Title.String())}, nil}
			cd = field(cd, "Length", c.LengthText.Label())
			b.push(types.Item{
				Title:  types.Block{{types.Plain("  • " + c.Title.String())}},
				Detail: cd,
				Node:   types.VideoNode(c.VideoID),
			})
		}
		b.push(blank())
		return nil

	case "commentThreadRenderer":
		var v struct {
			Comment struct {
				CommentRenderer *commentRenderer `json:"commentRenderer"`
			} `json:"comment"`
			Replies *struct {
				CommentRepliesRenderer struct {
					Contents []renderer `json:"contents"`
				} `json:"commentRepliesRenderer"`
			} `json:"replies"`
		}
		if err := b.decode(key, raw, &v); err != nil {
			return err
		}
		if v.Comment.CommentRenderer == nil {
			return shapeErr(b.shape, "%s without commentRenderer", key)
		}
		item := v.Comment.CommentRenderer.item()
		if v.Replies != nil {
			replies := newBuilder(b.shape)
			if err := replies.addAll(v.Replies.CommentRepliesRenderer.Contents); err != nil {
				return err
			}
			if replies.continuation != nil {
				item.Node = types.CommentNode(*replies.continuation)
			}
		}
		b.push(item)
		return nil

	case "commentRenderer":
		var v commentRenderer
		if err := b.decode(key, raw, &v); err != nil {
			return err
		}
		b.push(v.item())
		return nil

	case "transcriptSegmentRenderer":
		var v struct {
			StartTimeText Text `json:"startTimeText"`
			Snippet       Text `json:"snippet"`
		}
		if err := b.decode(key, raw, &v); err != nil {
			return err
		}
		b.push(types.Item{
			Title:  spaced(types.Plain(v.Snippet.String())),
			Detail: types.Block{{types.Colored(v.StartTimeText.String(), labelColor)}, nil, {types.Plain(v.Snippet.String())}},
		})
		return nil
	}

	return shapeErr(b.shape, "unknown renderer %q", key)
}

type listRenderer struct {
	Items []renderer `json:"items"`
}

// header pushes a section title. A continuation endpoint makes it selectable.
func (b *builder) header(title string, endpoint *Endpoint) {
	if title == "" {
		return
	}
	node := types.Node{}
	if token := endpoint.token(); token != "" {
		node = types.HeaderNode(token)
	}
	b.push(types.Item{Title: underlined(title), Detail: types.Block{{types.Bold(title)}}, Node: node})
}

type videoRenderer struct {
	VideoID                  string `json:"videoId"`
	Title                    Text   `json:"title"`
	OwnerText                Text   `json:"ownerText"`
	LongBylineText           Text   `json:"longBylineText"`
	ShortBylineText          Text   `json:"shortBylineText"`
	PublishedTimeText        Text   `json:"publishedTimeText"`
	ViewCountText            Text   `json:"viewCountText"`
	LengthText               Text   `json:"lengthText"`
	DescriptionSnippet       Text   `json:"descriptionSnippet"`
	DetailedMetadataSnippets []struct {
		SnippetText Text `json:"snippetText"`
	} `json:"detailedMetadataSnippets"`
	Badges []struct {
		MetadataBadgeRenderer struct {
			Label string `json:"label"`
		} `json:"metadataBadgeRenderer"`
	} `json:"badges"`
}

func (v videoRenderer) channel() string {
	for _, t := range []Text{v.OwnerText, v.LongBylineText, v.ShortBylineText} {
		if s := t.String(); s != "" {
			return s
		}
	}
	return ""
}

func (v videoRenderer) item() types.Item {
	title := v.Title.String()
	detail := types.Block{{types.Bold(title)}, nil}
	detail = field(detail, "Channel", v.channel())
	detail = field(detail, "Views", v.ViewCountText.String())
	detail = field(detail, "Published", v.PublishedTimeText.String())
	detail = field(detail, "Length", v.LengthText.Label())

	var badges []string
	for _, b := range v.Badges {
		if l := b.MetadataBadgeRenderer.Label; l != "" {
			badges = append(badges, l)
		}
	}
	detail = field(detail, "Badges", strings.Join(badges, ", "))

	desc := v.DescriptionSnippet
	if len(desc.Runs) == 0 && desc.SimpleText == "" && len(v.DetailedMetadataSnippets) > 0 {
		desc = v.DetailedMetadataSnippets[0].SnippetText
	}
	if s := desc.String(); s != "" {
		detail = append(detail, nil)
		detail = append(detail, desc.Block()...)
	}

	titleLine := []types.Span{types.Bold(title)}
	if l := v.LengthText.String(); l != "" {
		titleLine = append(titleLine, types.Colored(" "+l, mutedColor))
	}
	return types.Item{
		Title:  spaced(titleLine...),
		Detail: detail,
		Node:   types.VideoNode(v.VideoID),
	}
}

func shortItem(videoID, title, views string) types.Item {
	detail := types.Block{{types.Bold(title)}, nil}
	detail = field(detail, "Views", views)
	return types.Item{
		Title:  spaced(types.Colored("[Short] ", mutedColor), types.Bold(title)),
		Detail: detail,
		Node:   types.VideoNode(videoID),
	}
}

type commentRenderer struct {
	AuthorText           Text  `json:"authorText"`
	ContentText          Text  `json:"contentText"`
	PublishedTimeText    Text  `json:"publishedTimeText"`
	VoteCount            *Text `json:"voteCount"`
	ReplyCount           int   `json:"replyCount"`
	AuthorIsChannelOwner bool  `json:"authorIsChannelOwner"`
	AuthorCommentBadge   *struct {
		AuthorCommentBadgeRenderer struct {
			IconTooltip string `json:"iconTooltip"`
			Color       *struct {
				BasicColorPaletteData struct {
					ForegroundTitleColor uint32 `json:"foregroundTitleColor"`
				} `json:"basicColorPaletteData"`
			} `json:"color"`
		} `json:"authorCommentBadgeRenderer"`
	} `json:"authorCommentBadge"`
}

func (c commentRenderer) item() types.Item {
	author := c.AuthorText.String()
	authorSpan := types.Bold(author)
	if c.AuthorIsChannelOwner {
		authorSpan = types.Span{Text: author, Bold: true, Color: accentColor, HasColor: true}
	}

	detail := c.ContentText.Block()
	detail = append(detail, nil, types.Line{types.Colored(c.PublishedTimeText.String(), mutedColor)})
	if c.VoteCount != nil {
		detail = append(detail, types.Line{types.Plain(c.VoteCount.Label())})
	}
	if badge := c.AuthorCommentBadge; badge != nil {
		r := badge.AuthorCommentBadgeRenderer
		span := types.Plain(r.IconTooltip)
		if r.Color != nil {
			span = types.Colored(r.IconTooltip, r.Color.BasicColorPaletteData.ForegroundTitleColor&0xffffff)
		}
		detail = append(detail, types.Line{span})
	}
	if c.ReplyCount > 0 {
		detail = field(detail, "Replies", strconv.Itoa(c.ReplyCount))
	}
	return types.Item{
		Title:  spaced(authorSpan),
		Detail: detail,
	}
}
