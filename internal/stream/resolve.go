package stream

import (
	"fmt"
	"strings"

	"github.com/famomatic/yttui/internal/innertube"
	"github.com/famomatic/yttui/internal/selector"
	"github.com/famomatic/yttui/internal/types"
)

// Media is a fully playable reference: either a live manifest or a pair of
// adaptive video and audio URLs.
type Media struct {
	Live     bool
	Manifest string

	Video     string
	Audio     string
	VideoItag int
	AudioItag int
	// Subtitle is a WebVTT caption URL, empty when no track matched.
	Subtitle string
}

// Resolve picks the best video and audio formats under the given policies
// and decrypts their URLs with script.
func Resolve(resp *innertube.PlayerResponse, video, audio selector.Policy, captionLanguage string, script Caller) (*Media, error) {
	if resp.StreamingData == nil {
		return nil, fmt.Errorf("%w: no streamingData", types.ErrUnavailable)
	}
	sd := resp.StreamingData
	if sd.HlsManifestURL != "" {
		return &Media{Live: true, Manifest: sd.HlsManifestURL}, nil
	}

	var videos, audios []innertube.Format
	for _, f := range sd.AdaptiveFormats {
		switch {
		case f.IsAudio():
			audios = append(audios, f)
		case strings.HasPrefix(f.MimeType, "video/"):
			videos = append(videos, f)
		}
	}

	v, err := pick(selector.Video, videos, video)
	if err != nil {
		return nil, err
	}
	a, err := pick(selector.Audio, audios, audio)
	if err != nil {
		return nil, err
	}

	d := NewDecrypter(script)
	videoURL, err := d.URL(v)
	if err != nil {
		return nil, fmt.Errorf("video itag %d: %w", v.Itag, err)
	}
	audioURL, err := d.URL(a)
	if err != nil {
		return nil, fmt.Errorf("audio itag %d: %w", a.Itag, err)
	}

	return &Media{
		Video:     videoURL,
		Audio:     audioURL,
		VideoItag: v.Itag,
		AudioItag: a.Itag,
		Subtitle:  CaptionURL(resp.Captions, captionLanguage),
	}, nil
}

func pick(kind selector.Kind, formats []innertube.Format, p selector.Policy) (innertube.Format, error) {
	candidates := make([]selector.Candidate, len(formats))
	for i, f := range formats {
		candidates[i] = candidate(f)
	}
	i, err := selector.Select(kind, candidates, p)
	if err != nil {
		return innertube.Format{}, err
	}
	return formats[i], nil
}

func candidate(f innertube.Format) selector.Candidate {
	c := selector.Candidate{Bitrate: f.Bitrate, Height: f.Height, MimeType: f.MimeType}
	if f.AudioTrack != nil {
		c.Language = f.AudioTrack.DisplayName
	}
	return c
}

// URL returns the playable URL of f, deciphering and solving n as needed.
func (d *Decrypter) URL(f innertube.Format) (string, error) {
	raw := f.URL
	if raw == "" {
		cipher := f.CipherText()
		if cipher == "" {
			return "", fmt.Errorf("%w: format has neither url nor signatureCipher", types.ErrUnparseable)
		}
		var err error
		if raw, err = d.DecodeCipher(cipher); err != nil {
			return "", err
		}
	}
	return d.SubstituteN(raw)
}

// CaptionURL returns the WebVTT URL of the first track whose name or
// language code equals language.
func CaptionURL(c innertube.Captions, language string) string {
	if language == "" {
		return ""
	}
	for _, t := range c.PlayerCaptionsTracklistRenderer.CaptionTracks {
		if t.Name.String() == language || t.LanguageCode == language {
			return t.BaseURL + "&fmt=vtt"
		}
	}
	return ""
}
