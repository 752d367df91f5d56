package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/famomatic/yttui/internal/config"
	"github.com/famomatic/yttui/internal/cookies"
	"github.com/famomatic/yttui/internal/innertube"
	"github.com/famomatic/yttui/internal/logging"
	"github.com/famomatic/yttui/internal/player"
	"github.com/famomatic/yttui/internal/stream"
)

// app is everything a command needs once configuration is loaded.
type app struct {
	cfg     config.Config
	log     zerolog.Logger
	logFile io.Closer
	session *innertube.Session
	engine  *stream.Engine
}

// loadConfig reads the configuration and applies flag overrides.
func loadConfig(opts *options) (config.Config, error) {
	path := opts.configPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return config.Config{}, err
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if opts.logFile != "" {
		cfg.Log.File = opts.logFile
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if opts.cookieFile != "" {
		cfg.CookieFile = opts.cookieFile
	}
	return cfg, nil
}

func setup(opts *options) (*app, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	out, err := logging.OpenFile(cfg.Log.File)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log := logging.Configure(logging.Config{Level: cfg.Log.Level, Output: out})

	session, err := innertube.NewSession(innertube.SessionConfig{
		BaseURL: cfg.BaseURL,
		Profile: innertube.ClientProfile{
			Name:      cfg.Client.Name,
			Version:   cfg.Client.Version,
			UserAgent: cfg.UserAgent,
			HL:        cfg.Client.HL,
			GL:        cfg.Client.GL,
		},
		RequestsPerSecond: cfg.RequestsPerSecond,
		Logger:            logging.WithComponent("innertube"),
	})
	if err != nil {
		_ = out.Close()
		return nil, err
	}

	if cfg.CookieFile != "" {
		n, err := cookies.Load(cfg.CookieFile, session.Jar(), session.BaseURL())
		if err != nil {
			_ = out.Close()
			return nil, err
		}
		log.Info().Str("file", cfg.CookieFile).Int("cookies", n).Msg("cookies loaded")
	}

	video, err := cfg.VideoPolicy()
	if err != nil {
		_ = out.Close()
		return nil, err
	}
	audio, err := cfg.AudioPolicy()
	if err != nil {
		_ = out.Close()
		return nil, err
	}

	engine := stream.NewEngine(stream.EngineConfig{
		Backend:         session,
		VideoPolicy:     video,
		AudioPolicy:     audio,
		CaptionLanguage: cfg.CaptionLanguage,
		VideoPlayer:     player.Template{Program: cfg.VideoPlayer.Program, Args: cfg.VideoPlayer.Args},
		StreamPlayer:    player.Template{Program: cfg.StreamPlayer.Program, Args: cfg.StreamPlayer.Args},
		Logger:          logging.WithComponent("stream"),
	})

	return &app{cfg: cfg, log: log, logFile: out, session: session, engine: engine}, nil
}

// Close saves cookies and closes the log file.
func (a *app) Close() error {
	var errs []error
	if a.cfg.CookieFile != "" {
		if err := cookies.Save(a.cfg.CookieFile, a.session.Jar(), a.session.BaseURL()); err != nil {
			errs = append(errs, fmt.Errorf("failed to save cookies: %w", err))
		} else {
			a.log.Info().Str("file", a.cfg.CookieFile).Msg("cookies saved")
		}
	}
	if err := a.logFile.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
