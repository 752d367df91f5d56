package tui

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/famomatic/yttui/internal/stream"
)

// playCommand runs the player on the normal screen. It satisfies
// tea.ExecCommand so bubbletea releases the terminal around it.
type playCommand struct {
	ctx      context.Context
	playback *stream.Playback
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
}

func (c *playCommand) SetStdin(r io.Reader)  { c.stdin = r }
func (c *playCommand) SetStdout(w io.Writer) { c.stdout = w }
func (c *playCommand) SetStderr(w io.Writer) { c.stderr = w }

func (c *playCommand) Run() error {
	fmt.Fprintln(c.stdout, c.playback.Summary.String())
	inv := c.playback.Invocation
	if !inv.Available() {
		return fmt.Errorf("player %q not found in PATH", inv.Program)
	}
	cmd := inv.Command(c.ctx)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = c.stdin, c.stdout, c.stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s failed: %w", inv.Program, err)
	}
	return nil
}

// noticeCommand prints a message and waits for Enter.
type noticeCommand struct {
	message string
	stdin   io.Reader
	stdout  io.Writer
}

func (c *noticeCommand) SetStdin(r io.Reader)  { c.stdin = r }
func (c *noticeCommand) SetStdout(w io.Writer) { c.stdout = w }
func (c *noticeCommand) SetStderr(io.Writer)   {}

func (c *noticeCommand) Run() error {
	fmt.Fprintf(c.stdout, "%s\n\nPress Enter to continue", c.message)
	_, err := bufio.NewReader(c.stdin).ReadString('\n')
	if err == io.EOF {
		return nil
	}
	return err
}
