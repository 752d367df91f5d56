package playerjs

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rs/zerolog"
)

// Fetcher is the GET half of the HTTP session.
type Fetcher interface {
	Get(ctx context.Context, path string) ([]byte, error)
}

// Resolver acquires the player script snippet for the session.
type Resolver struct {
	fetcher Fetcher
	log     zerolog.Logger
}

func NewResolver(fetcher Fetcher, log zerolog.Logger) *Resolver {
	return &Resolver{fetcher: fetcher, log: log}
}

// GetPlayerURL fetches the watch page of videoID and returns the player script path.
func (r *Resolver) GetPlayerURL(ctx context.Context, videoID string) (string, error) {
	body, err := r.fetcher.Get(ctx, "/watch?v="+url.QueryEscape(videoID))
	if err != nil {
		return "", fmt.Errorf("failed to fetch watch page: %w", err)
	}
	return PlayerPath(string(body))
}

// GetPlayerJS fetches the player script at path.
func (r *Resolver) GetPlayerJS(ctx context.Context, path string) (string, error) {
	body, err := r.fetcher.Get(ctx, path)
	if err != nil {
		return "", fmt.Errorf("failed to fetch player JS: %w", err)
	}
	return string(body), nil
}

// Acquire fetches the watch page, then the player script it points to, and extracts the snippet.
func (r *Resolver) Acquire(ctx context.Context, videoID string) (*Snippet, error) {
	path, err := r.GetPlayerURL(ctx, videoID)
	if err != nil {
		return nil, err
	}
	js, err := r.GetPlayerJS(ctx, path)
	if err != nil {
		return nil, err
	}
	snippet, err := Extract(js)
	if err != nil {
		r.log.Error().Err(err).Str("player", path).Msg("player script extraction failed")
		return nil, err
	}
	snippet.PlayerPath = path
	r.log.Info().
		Str("player", path).
		Int("script_bytes", len(js)).
		Int("snippet_bytes", len(snippet.Source)).
		Int("sts", snippet.SignatureTimestamp).
		Msg("player script extracted")
	return snippet, nil
}
