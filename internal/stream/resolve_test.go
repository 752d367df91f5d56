package stream

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/famomatic/yttui/internal/innertube"
	"github.com/famomatic/yttui/internal/playerjs"
	"github.com/famomatic/yttui/internal/selector"
	"github.com/famomatic/yttui/internal/types"
)

func loadPlayerResponse(t *testing.T) *innertube.PlayerResponse {
	t.Helper()
	raw, err := os.ReadFile("testdata/player.json")
	require.NoError(t, err)
	var resp innertube.PlayerResponse
	require.NoError(t, json.Unmarshal(raw, &resp))
	return &resp
}

func mustPolicy(t *testing.T, kind selector.Kind, specs ...string) selector.Policy {
	t.Helper()
	p, err := selector.ParsePolicy(kind, specs)
	require.NoError(t, err)
	return p
}

func TestResolve(t *testing.T) {
	resp := loadPlayerResponse(t)
	script := &fakeScript{results: map[string]string{playerjs.NFunction: "ZZ99"}}

	media, err := Resolve(resp,
		mustPolicy(t, selector.Video, "quality:closest:720", "bitrate:lowest"),
		mustPolicy(t, selector.Audio, "language:English", "bitrate:lowest"),
		"English", script)
	require.NoError(t, err)

	require.False(t, media.Live)
	require.Equal(t, 136, media.VideoItag)
	require.Equal(t, "https://media.example/videoplayback?itag=136&n=ZZ99&foo=1", media.Video)
	require.Equal(t, 140, media.AudioItag)
	require.Equal(t, "https://media.example/videoplayback?itag=140&n=ZZ99", media.Audio)
	require.Equal(t, "https://media.example/api/timedtext?v=jNQXAC9IVRw&lang=en&fmt=vtt", media.Subtitle)
	require.Len(t, script.calls[playerjs.NFunction], 1)
}

func TestResolveCipheredFormat(t *testing.T) {
	resp := loadPlayerResponse(t)
	media, err := Resolve(resp,
		mustPolicy(t, selector.Video, "format:webm"),
		mustPolicy(t, selector.Audio, "format:webm"),
		"", loadScript(t))
	require.NoError(t, err)
	require.Equal(t, 247, media.VideoItag)
	require.Equal(t, "https://media.example/videoplayback?itag=247&sig=YZ", media.Video)
	require.Equal(t, 251, media.AudioItag)
	require.True(t, strings.HasSuffix(media.Audio, "&n=21BA_}"), media.Audio)
	require.Empty(t, media.Subtitle)
}

func TestResolveIsDeterministic(t *testing.T) {
	resp := loadPlayerResponse(t)
	video := mustPolicy(t, selector.Video, "bitrate:highest")
	audio := mustPolicy(t, selector.Audio, "bitrate:highest")
	script := &fakeScript{results: map[string]string{playerjs.NFunction: "x", playerjs.SigFunction: ""}}

	first, err := Resolve(resp, video, audio, "", script)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Resolve(resp, video, audio, "", script)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestResolveLive(t *testing.T) {
	resp := &innertube.PlayerResponse{StreamingData: &innertube.StreamingData{
		HlsManifestURL:  "https://manifest.example/index.m3u8",
		AdaptiveFormats: []innertube.Format{{Itag: 1, MimeType: "video/mp4"}},
	}}
	media, err := Resolve(resp, nil, nil, "", &fakeScript{})
	require.NoError(t, err)
	require.True(t, media.Live)
	require.Equal(t, "https://manifest.example/index.m3u8", media.Manifest)
}

func TestResolveWithoutAudio(t *testing.T) {
	resp := &innertube.PlayerResponse{StreamingData: &innertube.StreamingData{
		AdaptiveFormats: []innertube.Format{{Itag: 1, MimeType: "video/mp4", URL: "u"}},
	}}
	_, err := Resolve(resp, nil, nil, "", &fakeScript{})
	require.ErrorIs(t, err, types.ErrNoCandidate)
	var exhausted *selector.ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	require.Equal(t, selector.Audio, exhausted.Kind)
}

func TestResolveUnavailable(t *testing.T) {
	_, err := Resolve(&innertube.PlayerResponse{}, nil, nil, "", &fakeScript{})
	require.True(t, types.IsRecoverable(err))
}

func TestCaptionURL(t *testing.T) {
	c := loadPlayerResponse(t).Captions
	require.NotEmpty(t, CaptionURL(c, "en"))
	require.NotEmpty(t, CaptionURL(c, "English"))
	require.Empty(t, CaptionURL(c, "fr"))
	require.Empty(t, CaptionURL(c, ""))
}
