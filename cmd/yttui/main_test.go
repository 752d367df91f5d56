package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/famomatic/yttui/internal/player"
	"github.com/famomatic/yttui/internal/stream"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "yttui", "config.yaml")

	out, err := execute(t, "config", "init", "--config", path)
	if err != nil {
		t.Fatalf("config init error = %v", err)
	}
	if !strings.Contains(out, path) {
		t.Fatalf("config init output = %q, want path", out)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	if _, err := execute(t, "config", "init", "--config", path); err == nil {
		t.Fatalf("second config init error = nil, want refusal to overwrite")
	}
	if _, err := execute(t, "config", "init", "--force", "--config", path); err != nil {
		t.Fatalf("config init --force error = %v", err)
	}

	out, err = execute(t, "config", "show", "--config", path, "--cookies", "/tmp/c.txt")
	if err != nil {
		t.Fatalf("config show error = %v", err)
	}
	for _, want := range []string{"video_selector:", "closest:720", "cookie_file: /tmp/c.txt"} {
		if !strings.Contains(out, want) {
			t.Fatalf("config show output missing %q:\n%s", want, out)
		}
	}
}

func TestConfigShowRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("no_such_key: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "config", "show", "--config", path); err == nil {
		t.Fatalf("config show error = nil, want unknown key error")
	}
}

func TestResolveNeedsVideoID(t *testing.T) {
	if _, err := execute(t, "resolve"); err == nil {
		t.Fatalf("resolve without id error = nil, want error")
	}
}

func TestPrintPlayback(t *testing.T) {
	var buf bytes.Buffer
	printPlayback(&buf, &stream.Playback{
		VideoID: "abc",
		Media: &stream.Media{
			Video:     "https://v",
			Audio:     "https://a",
			VideoItag: 136,
			AudioItag: 140,
		},
		Summary:    stream.Summary{Title: "T"},
		Invocation: player.Invocation{Program: "mpv", Args: []string{"--audio-file=https://a", "https://v"}},
	})
	got := buf.String()
	for _, want := range []string{
		"Title: T\n",
		"video [136]: https://v\n",
		"audio [140]: https://a\n",
		"command: mpv --audio-file=https://a https://v\n",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("printPlayback() missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "subtitle:") {
		t.Fatalf("printPlayback() printed empty subtitle:\n%s", got)
	}
}
