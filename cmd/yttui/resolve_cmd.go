package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/famomatic/yttui/internal/stream"
)

func newResolveCmd(opts *options) *cobra.Command {
	var play bool
	cmd := &cobra.Command{
		Use:   "resolve <video-id>",
		Short: "Resolve a video without the terminal UI",
		Long:  "Resolve fetches the player script and the player response for a video and prints the selected stream URLs and the player command.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			a, err := setup(opts)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := a.Close(); cerr != nil && err == nil {
					err = cerr
				}
			}()

			pb, err := a.engine.Play(ctx, args[0])
			if err != nil {
				return err
			}
			printPlayback(cmd.OutOrStdout(), pb)
			if play {
				return pb.Invocation.Run(ctx)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&play, "play", false, "start the player after resolving")
	return cmd
}

func printPlayback(w io.Writer, pb *stream.Playback) {
	fmt.Fprintln(w, pb.Summary.String())
	if pb.Media.Live {
		fmt.Fprintf(w, "manifest: %s\n", pb.Media.Manifest)
	} else {
		fmt.Fprintf(w, "video [%d]: %s\n", pb.Media.VideoItag, pb.Media.Video)
		fmt.Fprintf(w, "audio [%d]: %s\n", pb.Media.AudioItag, pb.Media.Audio)
		if pb.Media.Subtitle != "" {
			fmt.Fprintf(w, "subtitle: %s\n", pb.Media.Subtitle)
		}
	}
	fmt.Fprintf(w, "command: %s\n", pb.Invocation)
}
