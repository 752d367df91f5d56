package innertube

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/famomatic/yttui/internal/types"
)

const (
	EndpointBrowse     = "browse"
	EndpointNext       = "next"
	EndpointSearch     = "search"
	EndpointTranscript = "get_transcript"
	EndpointPlayer     = "player"
)

const defaultBaseURL = "https://www.youtube.com"

// VisitorCookie holds the visitor data the backend expects echoed in the request context.
const VisitorCookie = "__Secure-YEC"

// SessionConfig contains externally tunable settings for the HTTP session.
type SessionConfig struct {
	BaseURL           string
	Profile           ClientProfile
	RequestsPerSecond float64
	// HTTPClient is used as a template; the session installs its own cookie jar
	// when the client has none.
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

// Session is the single HTTP session shared by navigation and stream resolution.
// It keeps one cookie jar for every request.
type Session struct {
	client  *http.Client
	base    *url.URL
	profile ClientProfile
	limiter *rate.Limiter
	log     zerolog.Logger
}

func NewSession(cfg SessionConfig) (*Session, error) {
	raw := cfg.BaseURL
	if raw == "" {
		raw = defaultBaseURL
	}
	base, err := url.Parse(strings.TrimRight(raw, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}

	client := &http.Client{}
	if cfg.HTTPClient != nil {
		c := *cfg.HTTPClient
		client = &c
	}
	if client.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create cookie jar: %w", err)
		}
		client.Jar = jar
	}

	profile := cfg.Profile
	if profile.Name == "" {
		profile = WebClient
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	return &Session{
		client:  client,
		base:    base,
		profile: profile,
		limiter: limiter,
		log:     cfg.Logger,
	}, nil
}

// BaseURL returns the backend origin.
func (s *Session) BaseURL() *url.URL {
	u := *s.base
	return &u
}

// Jar returns the session cookie jar.
func (s *Session) Jar() http.CookieJar { return s.client.Jar }

// URL resolves a path against the backend origin. Absolute URLs are returned unchanged.
func (s *Session) URL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return s.base.String() + path
}

// VisitorData returns the visitor cookie value, or "" before the backend has set it.
func (s *Session) VisitorData() string {
	for _, c := range s.client.Jar.Cookies(s.base) {
		if c.Name == VisitorCookie {
			return c.Value
		}
	}
	return ""
}

// Context returns the request context sent with POST bodies.
func (s *Session) Context() Context {
	return newContext(s.profile, s.VisitorData())
}

// Get fetches a page. path may be absolute or relative to the base URL.
func (s *Session) Get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL(path), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return s.do(ctx, req)
}

// Post sends body to an innertube endpoint such as EndpointBrowse.
func (s *Session) Post(ctx context.Context, endpoint string, body Body) ([]byte, error) {
	body.SetContext(s.Context())
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s request: %w", endpoint, err)
	}

	u := s.URL("/youtubei/v1/" + endpoint + "?prettyPrint=false")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	// The backend rejects form-encoded bodies.
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", s.base.String())
	req.Header.Set("X-Youtube-Client-Version", s.profile.Version)
	return s.do(ctx, req)
}

func (s *Session) do(ctx context.Context, req *http.Request) ([]byte, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %w", types.ErrTransport, err)
		}
	}
	if s.profile.UserAgent != "" {
		req.Header.Set("User-Agent", s.profile.UserAgent)
	}
	if s.profile.HL != "" {
		req.Header.Set("Accept-Language", s.profile.HL)
	}

	page, _ := types.PageFromContext(ctx)
	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Debug().Err(err).Str("method", req.Method).Str("url", req.URL.Path).Str("page", page).Msg("backend request failed")
		return nil, fmt.Errorf("%w: %s %s: %w", types.ErrTransport, req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.log.Warn().Str("method", req.Method).Str("url", req.URL.Path).Str("page", page).Int("status", resp.StatusCode).Msg("bad status code")
		return nil, &HTTPStatusError{Method: req.Method, URL: req.URL.Path, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read body: %w", types.ErrTransport, err)
	}
	s.log.Debug().
		Str("method", req.Method).
		Str("url", req.URL.Path).
		Str("page", page).
		Int("bytes", len(body)).
		Msg("backend request")
	return body, nil
}
