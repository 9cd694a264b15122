package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/tokenscope/internal/config"
	"github.com/alexisbeaulieu97/tokenscope/internal/logger"
	"github.com/alexisbeaulieu97/tokenscope/internal/source"
	"github.com/alexisbeaulieu97/tokenscope/internal/table"
	"github.com/alexisbeaulieu97/tokenscope/internal/tokens"
)

// appContext bundles what every command needs once flags are parsed.
type appContext struct {
	Config *config.Config
	Source source.Source
	Log    *logger.Logger
}

// resolveConfig loads the config file and applies the flags the user set.
func resolveConfig(cmd *cobra.Command, flags *rootFlags, validate func(*config.Config) error) (*config.Config, error) {
	cfg, path, err := config.Load(flags.configPath)
	if err != nil {
		return nil, newCommandError(cmd.Name(), fmt.Sprintf("loading config %q", path), err, "Fix the config file or pass --config with a valid path.")
	}

	changed := cmd.Flags().Changed
	var o config.Overrides
	if changed("module") {
		o.Module = &flags.module
	}
	if changed("repo") {
		o.Repo = &flags.repo
	}
	if changed("ref") {
		o.Ref = &flags.ref
	}
	if changed("prefix") {
		o.Prefix = &flags.prefix
	}
	if changed("selector") {
		o.Selector = &flags.selector
	}
	if changed("hide-selector") {
		o.HideSelectorColumn = &flags.hideSelector
	}
	if changed("no-header") {
		show := !flags.noHeader
		o.AutoLinkHeader = &show
	}
	if changed("debounce") {
		o.DebounceMS = &flags.debounceMS
	}
	if flags.verbose {
		level := "debug"
		o.LogLevel = &level
	}
	cfg.Apply(o)

	if err := validate(cfg); err != nil {
		return nil, newCommandError(cmd.Name(), "validating settings", err, "Pass --prefix or set prefix in the config file.")
	}
	return cfg, nil
}

// newAppContext resolves and validates the full config and builds the
// source. Logs go to logWriter, or nowhere when it is nil.
func newAppContext(cmd *cobra.Command, flags *rootFlags, logWriter io.Writer) (*appContext, error) {
	return buildAppContext(cmd, flags, logWriter, config.ValidateConfig)
}

// newComponentsContext is newAppContext for commands that read the whole
// module and need no prefix.
func newComponentsContext(cmd *cobra.Command, flags *rootFlags) (*appContext, error) {
	return buildAppContext(cmd, flags, cmd.ErrOrStderr(), config.ValidateSourceConfig)
}

func buildAppContext(cmd *cobra.Command, flags *rootFlags, logWriter io.Writer, validate func(*config.Config) error) (*appContext, error) {
	cfg, err := resolveConfig(cmd, flags, validate)
	if err != nil {
		return nil, err
	}

	log := logger.Nop()
	if logWriter != nil {
		log, err = logger.New(logger.Options{Level: cfg.LogLevel, HumanReadable: true, Writer: logWriter})
		if err != nil {
			return nil, newCommandError(cmd.Name(), "creating logger", err, "Use one of debug, info, warn or error for log_level.")
		}
	}
	log = log.With("command", cmd.Name())

	var src source.Source
	if cfg.Repo != "" {
		src = source.NewGitSource(cfg.Repo, cfg.Ref, cfg.Module, log)
	} else {
		src = source.NewFileSource(cfg.Module, log)
	}

	return &appContext{Config: cfg, Source: src, Log: log}, nil
}

// loadEntries reads the module and flattens the components matching the
// configured prefix and selector.
func (a *appContext) loadEntries(ctx context.Context) ([]tokens.Entry, error) {
	module, err := a.Source.Load(ctx)
	if err != nil {
		return nil, err
	}
	files := module.Applicable(a.Config.Prefix, a.Config.Selector)
	entries := tokens.Flatten(files)

	a.Log.WithFields(map[string]any{
		"source":     a.Source.String(),
		"components": len(files),
		"entries":    len(entries),
	}).Debug("module loaded")
	return entries, nil
}

func (a *appContext) tableOptions() table.Options {
	return table.Options{HideSelectorColumn: a.Config.HideSelectorColumn}
}

func loadError(operation string, a *appContext, err error) error {
	return newCommandError(operation, fmt.Sprintf("reading tokens from %s", a.Source), err, "Check --module (and --repo/--ref) point at a generated token module.")
}

func supportsUnicode(writer any) bool {
	if file, ok := writer.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}
