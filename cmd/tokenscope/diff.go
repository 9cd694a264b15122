package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/tokenscope/internal/source"
	"github.com/alexisbeaulieu97/tokenscope/pkg/diff"
)

type diffOptions struct {
	jsonOutput bool
	stat       bool
}

func newDiffCmd(flags *rootFlags) *cobra.Command {
	opts := &diffOptions{}

	cmd := &cobra.Command{
		Use:   "diff <old-module>",
		Short: "Show how the prefix's tokens changed since another module",
		Long: `Compare the tokens for the configured prefix in <old-module> (a path or
glob) against the configured module.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(cmd, flags, opts, args[0])
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output the added, removed and changed variables as JSON")
	cmd.Flags().BoolVar(&opts.stat, "stat", false, "Only print the change counts")

	return cmd
}

func runDiff(cmd *cobra.Command, flags *rootFlags, opts *diffOptions, oldModule string) error {
	app, err := newAppContext(cmd, flags, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	current, err := app.loadEntries(ctx)
	if err != nil {
		return loadError("diff", app, err)
	}

	previous := &appContext{Config: app.Config, Source: source.NewFileSource(oldModule, app.Log), Log: app.Log}
	old, err := previous.loadEntries(ctx)
	if err != nil {
		return loadError("diff", previous, err)
	}

	summary := diff.Entries(old, current)
	out := cmd.OutOrStdout()

	if opts.jsonOutput {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(summary)
	}

	fmt.Fprintf(out, "%s: %s\n", app.Config.Prefix, summary)
	if opts.stat || summary.Empty() {
		return nil
	}

	_, err = fmt.Fprint(out, diff.GenerateUnifiedDiff(diff.Lines(old), diff.Lines(current), oldModule, app.Source.String()))
	return err
}
