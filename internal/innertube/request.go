package innertube

// ClientProfile is the client identity sent in every request context.
type ClientProfile struct {
	Name      string
	Version   string
	UserAgent string
	HL        string
	GL        string
}

// WebClient is the desktop web client.
var WebClient = ClientProfile{
	Name:      "WEB",
	Version:   "2.20240726.00.00",
	UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	HL:        "en",
	GL:        "US",
}

type Context struct {
	Client  ClientInfo     `json:"client"`
	User    UserContext    `json:"user"`
	Request RequestContext `json:"request"`
}

type ClientInfo struct {
	ClientName    string `json:"clientName"`
	ClientVersion string `json:"clientVersion"`
	UserAgent     string `json:"userAgent,omitempty"`
	HL            string `json:"hl,omitempty"`
	GL            string `json:"gl,omitempty"`
	VisitorData   string `json:"visitorData,omitempty"`
}

type UserContext struct {
	LockedSafetyMode bool `json:"lockedSafetyMode"`
}

type RequestContext struct {
	UseSsl bool `json:"useSsl"`
}

// Body is a POST payload. The session fills in the context before encoding.
type Body interface {
	SetContext(Context)
}

type envelope struct {
	Context Context `json:"context"`
}

func (e *envelope) SetContext(c Context) { e.Context = c }

// BrowseRequest drives the browse endpoint: home and category continuations, game pages.
type BrowseRequest struct {
	envelope
	BrowseID     string `json:"browseId,omitempty"`
	Params       string `json:"params,omitempty"`
	Continuation string `json:"continuation,omitempty"`
}

// NextRequest drives the next endpoint: recommendations, comments and replies.
type NextRequest struct {
	envelope
	VideoID      string `json:"videoId,omitempty"`
	Continuation string `json:"continuation,omitempty"`
}

type SearchRequest struct {
	envelope
	Query        string `json:"query,omitempty"`
	Params       string `json:"params,omitempty"`
	Continuation string `json:"continuation,omitempty"`
}

type TranscriptRequest struct {
	envelope
	Params string `json:"params"`
}

type PlayerRequest struct {
	envelope
	VideoID         string          `json:"videoId"`
	ContentCheckOk  bool            `json:"contentCheckOk"`
	RacyCheckOk     bool            `json:"racyCheckOk"`
	PlaybackContext PlaybackContext `json:"playbackContext"`
}

type PlaybackContext struct {
	ContentPlaybackContext ContentPlaybackContext `json:"contentPlaybackContext"`
}

type ContentPlaybackContext struct {
	Html5Preference    string `json:"html5Preference"`
	SignatureTimestamp int    `json:"signatureTimestamp,omitempty"`
}

// NewPlayerRequest builds a player request. sts is the player script's
// signature timestamp, zero when unknown.
func NewPlayerRequest(videoID string, sts int) *PlayerRequest {
	return &PlayerRequest{
		VideoID:        videoID,
		ContentCheckOk: true,
		RacyCheckOk:    true,
		PlaybackContext: PlaybackContext{
			ContentPlaybackContext: ContentPlaybackContext{
				Html5Preference:    "HTML5_PREF_WANTS",
				SignatureTimestamp: sts,
			},
		},
	}
}

func newContext(profile ClientProfile, visitorData string) Context {
	return Context{
		Client: ClientInfo{
			ClientName:    profile.Name,
			ClientVersion: profile.Version,
			UserAgent:     profile.UserAgent,
			HL:            profile.HL,
			GL:            profile.GL,
			VisitorData:   visitorData,
		},
		Request: RequestContext{UseSsl: true},
	}
}
