package player

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExpand(t *testing.T) {
	tmpl := Template{
		Program: "mpv",
		Args:    []string{"--audio-file={audio}", "--sub-file={subtitle}", "--force-media-title={title}", "{video}"},
	}

	tests := []struct {
		name string
		vars Vars
		want []string
	}{
		{
			name: "all values",
			vars: Vars{Video: "v", Audio: "a", Subtitle: "s", Title: "t"},
			want: []string{"--audio-file=a", "--sub-file=s", "--force-media-title=t", "v"},
		},
		{
			name: "no subtitle",
			vars: Vars{Video: "v", Audio: "a", Title: "t"},
			want: []string{"--audio-file=a", "--force-media-title=t", "v"},
		},
		{
			name: "values containing braces are not expanded twice",
			vars: Vars{Video: "https://x/?q={audio}", Audio: "a", Title: "t"},
			want: []string{"--audio-file=a", "--force-media-title=t", "https://x/?q={audio}"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tmpl.Expand(tt.vars)
			if got.Program != "mpv" {
				t.Fatalf("Program = %q, want mpv", got.Program)
			}
			if diff := cmp.Diff(tt.want, got.Args); diff != "" {
				t.Fatalf("Args mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestInvocationString(t *testing.T) {
	inv := Invocation{Program: "mpv", Args: []string{"--force-media-title=Two words", "u"}}
	want := `mpv "--force-media-title=Two words" u`
	if got := inv.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestRunMissingProgram(t *testing.T) {
	inv := Invocation{Program: "yttui-no-such-player"}
	if inv.Available() {
		t.Fatalf("Available() = true, want false")
	}
	if err := inv.Run(context.Background()); err == nil {
		t.Fatalf("Run() error = nil, want error")
	}
}
