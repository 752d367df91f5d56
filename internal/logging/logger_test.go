package logging

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"
)

func TestWithComponentAddsField(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "debug", Output: &buf, Service: "test"})
	t.Cleanup(func() { Configure(Config{}) })

	l := WithComponent("nav")
	l.Debug().Str("page", "Home").Msg("request")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	if entry["component"] != "nav" {
		t.Fatalf("component = %v, want %q", entry["component"], "nav")
	}
	if entry["service"] != "test" {
		t.Fatalf("service = %v, want %q", entry["service"], "test")
	}
	if entry["page"] != "Home" {
		t.Fatalf("page = %v, want %q", entry["page"], "Home")
	}
}

func TestConfigureRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "warn", Output: &buf})
	t.Cleanup(func() { Configure(Config{}) })

	l := WithComponent("stream")
	l.Info().Msg("dropped")
	if buf.Len() != 0 {
		t.Fatalf("info entry written at warn level: %q", buf.String())
	}
	l.Warn().Msg("kept")
	if buf.Len() == 0 {
		t.Fatalf("warn entry not written")
	}
}

func TestOpenFile(t *testing.T) {
	w, err := OpenFile("")
	if err != nil {
		t.Fatalf("OpenFile(\"\") error = %v", err)
	}
	_ = w.Close()

	path := filepath.Join(t.TempDir(), "yttui.log")
	w, err = OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	if _, err := w.Write([]byte("{}\n")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	_ = w.Close()
}
