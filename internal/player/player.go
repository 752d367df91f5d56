// Package player builds external media player invocations from templates.
package player

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Template is a program plus arguments that may contain placeholders:
// {video}, {audio}, {subtitle}, {manifest} and {title}.
type Template struct {
	Program string
	Args    []string
}

// Vars are the values substituted into a Template.
type Vars struct {
	Video    string
	Audio    string
	Subtitle string
	Manifest string
	Title    string
}

// Invocation is a fully expanded player command.
type Invocation struct {
	Program string
	Args    []string
}

// Expand substitutes v into t. Arguments that reference an empty
// placeholder are dropped, so a missing subtitle leaves no dangling flag.
func (t Template) Expand(v Vars) Invocation {
	pairs := []string{
		"{video}", v.Video,
		"{audio}", v.Audio,
		"{subtitle}", v.Subtitle,
		"{manifest}", v.Manifest,
		"{title}", v.Title,
	}
	r := strings.NewReplacer(pairs...)
	args := make([]string, 0, len(t.Args))
next:
	for _, a := range t.Args {
		for n := 0; n < len(pairs); n += 2 {
			if pairs[n+1] == "" && strings.Contains(a, pairs[n]) {
				continue next
			}
		}
		args = append(args, r.Replace(a))
	}
	return Invocation{Program: t.Program, Args: args}
}

// Available checks if the program is executable.
func (i Invocation) Available() bool {
	_, err := exec.LookPath(i.Program)
	return err == nil
}

// Command returns the command attached to the current terminal.
func (i Invocation) Command(ctx context.Context) *exec.Cmd {
	cmd := exec.CommandContext(ctx, i.Program, i.Args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd
}

// Run starts the player and waits for it to exit.
func (i Invocation) Run(ctx context.Context) error {
	if !i.Available() {
		return fmt.Errorf("player %q not found in PATH", i.Program)
	}
	if err := i.Command(ctx).Run(); err != nil {
		return fmt.Errorf("%s failed: %w", i.Program, err)
	}
	return nil
}

func (i Invocation) String() string {
	parts := append([]string{i.Program}, i.Args...)
	for n, p := range parts {
		if strings.ContainsAny(p, " \t\"'") {
			parts[n] = fmt.Sprintf("%q", p)
		}
	}
	return strings.Join(parts, " ")
}
