package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"

	"github.com/famomatic/yttui/internal/selector"
)

// Config is the on-disk configuration.
type Config struct {
	// BaseURL is the backend origin. Overridden in tests.
	BaseURL string `yaml:"base_url"`

	// Client is the innertube client identity sent with every POST.
	Client ClientConfig `yaml:"client"`

	// UserAgent is sent on every request.
	UserAgent string `yaml:"user_agent"`

	// RequestsPerSecond paces backend requests. Zero disables pacing.
	RequestsPerSecond float64 `yaml:"requests_per_second"`

	// CookieFile is a Netscape cookies.txt loaded at start-up and saved on exit.
	CookieFile string `yaml:"cookie_file"`

	// VideoSelector and AudioSelector are ordered criteria, see selector.ParseCriterion.
	VideoSelector []string `yaml:"video_selector"`
	AudioSelector []string `yaml:"audio_selector"`

	// CaptionLanguage picks a caption track by display name. Empty disables subtitles.
	CaptionLanguage string `yaml:"caption_language"`

	// VideoPlayer receives a video and an audio URL.
	VideoPlayer Command `yaml:"video_player"`

	// StreamPlayer receives an HLS manifest for live streams.
	StreamPlayer Command `yaml:"stream_player"`

	UI  UIConfig  `yaml:"ui"`
	Log LogConfig `yaml:"log"`
}

type ClientConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	HL      string `yaml:"hl"`
	GL      string `yaml:"gl"`
}

// Command is a program plus argument templates.
// Templates may reference {video}, {audio}, {subtitle}, {manifest} and {title}.
type Command struct {
	Program string   `yaml:"program"`
	Args    []string `yaml:"args"`
}

type UIConfig struct {
	// Border is one of normal, rounded, thick, double, hidden.
	Border string `yaml:"border"`
	// Accent is a lipgloss color for the selection and borders.
	Accent string `yaml:"accent"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		BaseURL: "https://www.youtube.com",
		Client: ClientConfig{
			Name:    "WEB",
			Version: "2.20240726.00.00",
			HL:      "en",
			GL:      "US",
		},
		UserAgent:     "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		VideoSelector: []string{"quality:closest:720", "bitrate:lowest"},
		AudioSelector: []string{"language:English", "bitrate:lowest"},
		VideoPlayer: Command{
			Program: "mpv",
			Args:    []string{"--audio-file={audio}", "--sub-file={subtitle}", "--force-media-title={title}", "{video}"},
		},
		StreamPlayer: Command{
			Program: "ffplay",
			Args:    []string{"{manifest}"},
		},
		UI: UIConfig{
			Border: "rounded",
			Accent: "#ff0000",
		},
		Log: LogConfig{Level: "info"},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/yttui/config.yaml, or YTTUI_CONFIG when set.
func DefaultPath() (string, error) {
	if p := os.Getenv("YTTUI_CONFIG"); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config dir: %w", err)
	}
	return filepath.Join(dir, "yttui", "config.yaml"), nil
}

// Load reads path on top of the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	if err := decode(f, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

// Validate checks selector syntax and player commands.
func (c Config) Validate() error {
	if _, err := c.VideoPolicy(); err != nil {
		return fmt.Errorf("video_selector: %w", err)
	}
	if _, err := c.AudioPolicy(); err != nil {
		return fmt.Errorf("audio_selector: %w", err)
	}
	if strings.TrimSpace(c.VideoPlayer.Program) == "" {
		return fmt.Errorf("video_player.program is empty")
	}
	if strings.TrimSpace(c.StreamPlayer.Program) == "" {
		return fmt.Errorf("stream_player.program is empty")
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("requests_per_second must not be negative")
	}
	switch c.UI.Border {
	case "", "normal", "rounded", "thick", "double", "hidden":
	default:
		return fmt.Errorf("ui.border: unknown style %q", c.UI.Border)
	}
	return nil
}

func (c Config) VideoPolicy() (selector.Policy, error) {
	return selector.ParsePolicy(selector.Video, c.VideoSelector)
}

func (c Config) AudioPolicy() (selector.Policy, error) {
	return selector.ParsePolicy(selector.Audio, c.AudioSelector)
}

// Marshal renders the configuration as YAML.
func (c Config) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteDefault atomically writes the default configuration to path.
// An existing file is left alone unless force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
	}
	data, err := Default().Marshal()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	return renameio.WriteFile(path, data, 0o644)
}
