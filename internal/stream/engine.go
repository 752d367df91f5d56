// Package stream turns a video id into a playable media reference: it
// selects adaptive formats, decrypts their URLs with functions extracted
// from the player script and builds the player invocation.
package stream

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/famomatic/yttui/internal/decoder"
	"github.com/famomatic/yttui/internal/innertube"
	"github.com/famomatic/yttui/internal/player"
	"github.com/famomatic/yttui/internal/playerjs"
	"github.com/famomatic/yttui/internal/selector"
)

// Backend is the part of the HTTP session the engine needs.
type Backend interface {
	Get(ctx context.Context, path string) ([]byte, error)
	Post(ctx context.Context, endpoint string, body innertube.Body) ([]byte, error)
}

type EngineConfig struct {
	Backend         Backend
	VideoPolicy     selector.Policy
	AudioPolicy     selector.Policy
	CaptionLanguage string
	VideoPlayer     player.Template
	StreamPlayer    player.Template
	Logger          zerolog.Logger
}

// Engine owns the script runtime. It is created on the first Play and kept
// for every later video of the session.
type Engine struct {
	cfg      EngineConfig
	resolver *playerjs.Resolver
	log      zerolog.Logger

	script *playerjs.Script
	sts    int
}

func NewEngine(cfg EngineConfig) *Engine {
	return &Engine{
		cfg:      cfg,
		resolver: playerjs.NewResolver(cfg.Backend, cfg.Logger),
		log:      cfg.Logger,
	}
}

// Playback is everything needed to start a player for one video.
type Playback struct {
	VideoID    string
	Media      *Media
	Summary    Summary
	Invocation player.Invocation
}

// Loaded reports whether the script runtime exists.
func (e *Engine) Loaded() bool { return e.script != nil }

// Play resolves videoID. An unplayable video yields an error matching
// types.ErrUnavailable.
func (e *Engine) Play(ctx context.Context, videoID string) (*Playback, error) {
	if err := e.ensureScript(ctx, videoID); err != nil {
		return nil, err
	}

	raw, err := e.cfg.Backend.Post(ctx, innertube.EndpointPlayer, innertube.NewPlayerRequest(videoID, e.sts))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch player response: %w", err)
	}
	resp, err := decoder.Player(raw)
	if err != nil {
		e.log.Info().Err(err).Str("video_id", videoID).Msg("player response rejected")
		return nil, err
	}

	media, err := Resolve(resp, e.cfg.VideoPolicy, e.cfg.AudioPolicy, e.cfg.CaptionLanguage, e.script)
	if err != nil {
		return nil, err
	}
	summary := NewSummary(resp)

	var inv player.Invocation
	if media.Live {
		inv = e.cfg.StreamPlayer.Expand(player.Vars{Manifest: media.Manifest, Title: summary.Title})
	} else {
		inv = e.cfg.VideoPlayer.Expand(player.Vars{
			Video:    media.Video,
			Audio:    media.Audio,
			Subtitle: media.Subtitle,
			Title:    summary.Title,
		})
	}

	e.log.Info().
		Str("video_id", videoID).
		Bool("live", media.Live).
		Int("video_itag", media.VideoItag).
		Int("audio_itag", media.AudioItag).
		Bool("subtitle", media.Subtitle != "").
		Str("program", inv.Program).
		Msg("stream resolved")

	return &Playback{VideoID: videoID, Media: media, Summary: summary, Invocation: inv}, nil
}

func (e *Engine) ensureScript(ctx context.Context, videoID string) error {
	if e.script != nil {
		return nil
	}
	snippet, err := e.resolver.Acquire(ctx, videoID)
	if err != nil {
		return fmt.Errorf("failed to acquire player script: %w", err)
	}
	script, err := playerjs.Load(snippet.Source)
	if err != nil {
		return fmt.Errorf("failed to load player script: %w", err)
	}
	e.script = script
	e.sts = snippet.SignatureTimestamp
	return nil
}
