package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/tokenscope/internal/render"
	"github.com/alexisbeaulieu97/tokenscope/internal/table"
)

type listOptions struct {
	search string
	format string
	expand bool
}

func newListCmd(flags *rootFlags) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the token table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, flags, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.search, "search", "s", "", "Case-insensitive regular expression to filter by")
	cmd.Flags().StringVarP(&opts.format, "format", "f", string(render.FormatTable), "Output format: table, markdown or json")
	cmd.Flags().BoolVarP(&opts.expand, "expand", "e", false, "Include the values of mapping tokens")

	return cmd
}

func runList(cmd *cobra.Command, flags *rootFlags, opts *listOptions) error {
	format, err := render.ParseFormat(opts.format)
	if err != nil {
		return newCommandError("list", "parsing --format", err, "Use --format table, markdown or json.")
	}

	app, err := newAppContext(cmd, flags, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	entries, err := app.loadEntries(ctx)
	if err != nil {
		return loadError("list", app, err)
	}

	t := table.New(entries, app.tableOptions())
	if err := t.Search(opts.search); err != nil {
		return newCommandError("list", "applying --search", err, "Check the regular expression syntax.")
	}
	if opts.expand {
		t.SetAll(true)
	}

	out := cmd.OutOrStdout()
	unicode := supportsUnicode(out)
	return render.Render(out, t, format, render.Options{
		Prefix:  app.Config.Prefix,
		Heading: app.Config.AutoLinkHeader,
		Expand:  opts.expand,
		Color:   unicode,
		Unicode: unicode,
	})
}
