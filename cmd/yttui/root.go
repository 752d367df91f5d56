package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/famomatic/yttui/internal/logging"
	"github.com/famomatic/yttui/internal/nav"
	"github.com/famomatic/yttui/internal/tui"
)

// options holds the persistent command-line flags.
type options struct {
	configPath string
	logFile    string
	logLevel   string
	cookieFile string
	query      string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "yttui",
		Short:         "Browse and play videos from the terminal",
		Long:          "yttui browses the home feed, searches, recommendations, transcripts and comments, and hands videos to an external player.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to config.yaml (default $XDG_CONFIG_HOME/yttui/config.yaml)")
	flags.StringVar(&opts.logFile, "log-file", "", "write JSON logs to this file")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&opts.cookieFile, "cookies", "", "Netscape cookies.txt loaded at start-up and saved on exit")
	root.Flags().StringVar(&opts.query, "query", "", "start on a search for this query")

	root.AddCommand(newConfigCmd(opts), newResolveCmd(opts))
	return root
}

func runTUI(ctx context.Context, opts *options) (err error) {
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

	var start *nav.Page
	if opts.query != "" {
		start = nav.SearchPage(opts.query)
	}
	machine := nav.NewMachine(a.session, start, logging.WithComponent("nav"))
	if err := machine.Load(ctx); err != nil {
		return err
	}

	model := tui.New(ctx, machine, a.engine, tui.NewStyles(a.cfg.UI.Border, a.cfg.UI.Accent), logging.WithComponent("tui"))
	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("terminal ui failed: %w", err)
	}
	if m, ok := final.(tui.Model); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}
