package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/tokenscope/internal/render"
)

func newComponentsCmd(flags *rootFlags) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "components",
		Short: "List the components a module defines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format := render.FormatTable
			if jsonOutput {
				format = render.FormatJSON
			}
			return runComponents(cmd, flags, format)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	return cmd
}

func runComponents(cmd *cobra.Command, flags *rootFlags, format render.Format) error {
	app, err := newComponentsContext(cmd, flags)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	module, err := app.Source.Load(ctx)
	if err != nil {
		return loadError("components", app, err)
	}
	return render.Components(cmd.OutOrStdout(), module.Components(), format)
}
