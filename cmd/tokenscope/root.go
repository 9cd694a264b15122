package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	configPath   string
	module       string
	repo         string
	ref          string
	prefix       string
	selector     string
	hideSelector bool
	noHeader     bool
	debounceMS   int
	verbose      bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	browse := &browseOptions{}

	cmd := &cobra.Command{
		Use:           "tokenscope",
		Short:         "Browse the CSS variables a design-token module defines",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Without a subcommand, open the browser.
			return runBrowse(cmd, flags, browse)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "Path to a config file (default ./.tokenscope.yaml when present)")
	pf.StringVarP(&flags.module, "module", "m", "", "Token module path or glob")
	pf.StringVar(&flags.repo, "repo", "", "Git repository to read the module from")
	pf.StringVar(&flags.ref, "ref", "", "Branch or tag to check out with --repo")
	pf.StringVarP(&flags.prefix, "prefix", "p", "", "CSS variable prefix, e.g. pf-v6-c-button")
	pf.StringVar(&flags.selector, "selector", "", "Only show tokens declared for this selector")
	pf.BoolVar(&flags.hideSelector, "hide-selector", false, "Hide the selector column and mapping detail")
	pf.BoolVar(&flags.noHeader, "no-header", false, "Do not show the linkable prefix heading")
	pf.IntVar(&flags.debounceMS, "debounce", 0, "Search debounce in milliseconds")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")

	addBrowseFlags(cmd, browse)

	cmd.AddCommand(newBrowseCmd(flags))
	cmd.AddCommand(newListCmd(flags))
	cmd.AddCommand(newComponentsCmd(flags))
	cmd.AddCommand(newDiffCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
