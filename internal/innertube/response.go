package innertube

// PlayerResponse is the top-level response from the /player endpoint.
// StreamingData is nil for age-restricted and otherwise unplayable videos.
type PlayerResponse struct {
	PlayabilityStatus PlayabilityStatus `json:"playabilityStatus"`
	StreamingData     *StreamingData    `json:"streamingData"`
	VideoDetails      VideoDetails      `json:"videoDetails"`
	Microformat       Microformat       `json:"microformat"`
	Captions          Captions          `json:"captions"`
}

type PlayabilityStatus struct {
	Status            string             `json:"status"`
	Reason            string             `json:"reason"`
	LiveStreamability *LiveStreamability `json:"liveStreamability"`
}

func (p *PlayabilityStatus) IsOK() bool {
	return p.Status == "OK"
}

func (p *PlayabilityStatus) IsLive() bool {
	return p.LiveStreamability != nil
}

type LiveStreamability struct {
	LiveStreamabilityRenderer LiveStreamabilityRenderer `json:"liveStreamabilityRenderer"`
}

type LiveStreamabilityRenderer struct {
	VideoId string `json:"videoId"`
}

type StreamingData struct {
	ExpiresInSeconds string   `json:"expiresInSeconds"`
	Formats          []Format `json:"formats"`
	AdaptiveFormats  []Format `json:"adaptiveFormats"`
	HlsManifestURL   string   `json:"hlsManifestUrl"`
}

type Format struct {
	Itag            int         `json:"itag"`
	URL             string      `json:"url"`
	SignatureCipher string      `json:"signatureCipher"`
	Cipher          string      `json:"cipher"` // Legacy
	MimeType        string      `json:"mimeType"`
	Bitrate         int         `json:"bitrate"`
	Width           int         `json:"width"`
	Height          int         `json:"height"`
	FPS             int         `json:"fps"`
	QualityLabel    string      `json:"qualityLabel"`
	AudioQuality    string      `json:"audioQuality"`
	AudioTrack      *AudioTrack `json:"audioTrack"`
}

// IsAudio reports whether the format carries audio only.
func (f Format) IsAudio() bool {
	return len(f.MimeType) >= 6 && f.MimeType[:6] == "audio/"
}

// CipherText returns the signature cipher, if any.
func (f Format) CipherText() string {
	if f.SignatureCipher != "" {
		return f.SignatureCipher
	}
	return f.Cipher
}

type AudioTrack struct {
	DisplayName    string `json:"displayName"`
	ID             string `json:"id"`
	AudioIsDefault bool   `json:"audioIsDefault"`
}

type VideoDetails struct {
	VideoID          string `json:"videoId"`
	Title            string `json:"title"`
	LengthSeconds    string `json:"lengthSeconds"`
	ChannelID        string `json:"channelId"`
	ShortDescription string `json:"shortDescription"`
	ViewCount        string `json:"viewCount"`
	Author           string `json:"author"`
	IsLiveContent    bool   `json:"isLiveContent"`
}

type Microformat struct {
	PlayerMicroformatRenderer PlayerMicroformatRenderer `json:"playerMicroformatRenderer"`
}

type PlayerMicroformatRenderer struct {
	Title            SimpleText `json:"title"`
	Description      SimpleText `json:"description"`
	LengthSeconds    string     `json:"lengthSeconds"`
	IsFamilySafe     bool       `json:"isFamilySafe"`
	IsUnlisted       bool       `json:"isUnlisted"`
	ViewCount        string     `json:"viewCount"`
	Category         string     `json:"category"`
	PublishDate      string     `json:"publishDate"`
	OwnerChannelName string     `json:"ownerChannelName"`
	UploadDate       string     `json:"uploadDate"`
}

type SimpleText struct {
	SimpleText string `json:"simpleText"`
}

type Captions struct {
	PlayerCaptionsTracklistRenderer PlayerCaptionsTracklistRenderer `json:"playerCaptionsTracklistRenderer"`
}

type PlayerCaptionsTracklistRenderer struct {
	CaptionTracks []CaptionTrack `json:"captionTracks"`
}

type CaptionTrack struct {
	BaseURL      string   `json:"baseUrl"`
	Name         LangText `json:"name"`
	VssID        string   `json:"vssId"`
	LanguageCode string   `json:"languageCode"`
	Kind         string   `json:"kind,omitempty"`
}

type LangText struct {
	SimpleText string    `json:"simpleText"`
	Runs       []TextRun `json:"runs"`
}

// String joins the runs, or returns the simple text.
func (t LangText) String() string {
	if t.SimpleText != "" {
		return t.SimpleText
	}
	var s string
	for _, r := range t.Runs {
		s += r.Text
	}
	return s
}

type TextRun struct {
	Text string `json:"text"`
}
