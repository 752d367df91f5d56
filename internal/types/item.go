package types

import "fmt"

// NodeKind enumerates what activating an item does.
type NodeKind int

const (
	NodeNone NodeKind = iota
	NodeHeader
	NodeVideo
	NodeGame
	NodeSearch
	NodeChannel
	NodePlaylist
	NodeTranscript
	NodeCommentSection
	NodeComment
)

var nodeKindNames = [...]string{
	NodeNone:           "none",
	NodeHeader:         "header",
	NodeVideo:          "video",
	NodeGame:           "game",
	NodeSearch:         "search",
	NodeChannel:        "channel",
	NodePlaylist:       "playlist",
	NodeTranscript:     "transcript",
	NodeCommentSection: "comment_section",
	NodeComment:        "comment",
}

func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return fmt.Sprintf("node(%d)", int(k))
}

// Node carries exactly the data needed to leave the current item.
//
// Field use per kind:
//   - Header, CommentSection, Comment: Token
//   - Video, Playlist: ID
//   - Game, Channel: ID (browse id) and optional Params
//   - Search: Query and optional Params
//   - Transcript: Params
type Node struct {
	Kind   NodeKind
	ID     string
	Token  string
	Query  string
	Params *string
}

func HeaderNode(token string) Node { return Node{Kind: NodeHeader, Token: token} }

func VideoNode(id string) Node { return Node{Kind: NodeVideo, ID: id} }

func GameNode(browseID string, params *string) Node {
	return Node{Kind: NodeGame, ID: browseID, Params: params}
}

func SearchNode(query string, params *string) Node {
	return Node{Kind: NodeSearch, Query: query, Params: params}
}

func ChannelNode(browseID string, params *string) Node {
	return Node{Kind: NodeChannel, ID: browseID, Params: params}
}

func PlaylistNode(id string) Node { return Node{Kind: NodePlaylist, ID: id} }

func TranscriptNode(params string) Node { return Node{Kind: NodeTranscript, Params: &params} }

func CommentSectionNode(token string) Node { return Node{Kind: NodeCommentSection, Token: token} }

func CommentNode(token string) Node { return Node{Kind: NodeComment, Token: token} }

// Item is one row in the list pane.
type Item struct {
	Title  Block
	Detail Block
	Node   Node
}

// StringPtr returns a pointer to s, or nil when s is empty.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
