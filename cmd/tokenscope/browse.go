package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/tokenscope/internal/source"
	"github.com/alexisbeaulieu97/tokenscope/internal/table"
	"github.com/alexisbeaulieu97/tokenscope/internal/tui"
)

// logFileName receives TUI logs when --verbose is set, since the alternate
// screen owns the terminal.
const logFileName = "tokenscope.log"

type browseOptions struct {
	watch bool
}

func addBrowseFlags(cmd *cobra.Command, opts *browseOptions) {
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Reload the table when the module file changes")
}

func newBrowseCmd(flags *rootFlags) *cobra.Command {
	opts := &browseOptions{}

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Open the interactive token table",
		Long: `Open the interactive token table for the configured prefix.

Press / to search with a case-insensitive regular expression, enter to
expand a mapping row and a to expand or collapse every mapping.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, flags, opts)
		},
	}

	addBrowseFlags(cmd, opts)
	return cmd
}

func runBrowse(cmd *cobra.Command, flags *rootFlags, opts *browseOptions) error {
	var logWriter io.Writer
	if flags.verbose {
		f, err := os.OpenFile(logFileName, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return newCommandError("browse", "opening log file", err, "Run from a writable directory or drop --verbose.")
		}
		defer f.Close()
		logWriter = f
	}

	app, err := newAppContext(cmd, flags, logWriter)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	entries, err := app.loadEntries(ctx)
	if err != nil {
		return loadError("browse", app, err)
	}

	tuiOpts := tui.Options{
		Prefix:         app.Config.Prefix,
		AutoLinkHeader: app.Config.AutoLinkHeader,
		Debounce:       app.Config.Debounce(),
		Unicode:        supportsUnicode(os.Stdout),
		Logger:         app.Log,
	}

	if opts.watch {
		watcher, err := startWatch(app)
		if err != nil {
			return newCommandError("browse", "watching the module", err, "Use --watch with a local --module path or glob.")
		}
		defer watcher.Close()
		tuiOpts.Reload = app.loadEntries
		tuiOpts.Changes = watcher.Changes()
	}

	app.Log.With("entries", len(entries)).Info("launching browser")

	m := tui.NewModel(table.New(entries, app.tableOptions()), tuiOpts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		app.Log.Error(err, "browser execution failed")
		return fmt.Errorf("failed to run browser: %w", err)
	}

	app.Log.Info("browser closed")
	return nil
}

func startWatch(app *appContext) (*source.Watcher, error) {
	fs, ok := app.Source.(*source.FileSource)
	if !ok {
		return nil, errors.New("only local modules can be watched")
	}
	return fs.Watch(source.DefaultWatchDelay)
}
