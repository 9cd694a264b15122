package config

import "time"

const (
	// DefaultFileName is looked up in the working directory when no explicit
	// config path is given.
	DefaultFileName = ".tokenscope.yaml"

	// DefaultDebounce is how long search input settles before refiltering.
	DefaultDebounce = 500 * time.Millisecond

	// DefaultModule is the generated token index looked up when none is configured.
	DefaultModule = "componentIndex.json"
)

// Config represents a tokenscope configuration document.
type Config struct {
	Version string `yaml:"version" validate:"required,semver"`

	// Module is a path or doublestar glob. With Repo set it is resolved
	// inside the cloned worktree.
	Module string `yaml:"module" validate:"required"`
	Repo   string `yaml:"repo,omitempty" validate:"omitempty,git_url"`
	Ref    string `yaml:"ref,omitempty" validate:"omitempty,excluded_without=Repo"`

	Prefix             string `yaml:"prefix" validate:"required,css_ident"`
	Selector           string `yaml:"selector,omitempty"`
	HideSelectorColumn bool   `yaml:"hide_selector_column,omitempty"`
	AutoLinkHeader     bool   `yaml:"auto_link_header"`

	DebounceMS int    `yaml:"debounce_ms" validate:"min=0,max=5000"`
	LogLevel   string `yaml:"log_level,omitempty" validate:"omitempty,log_level"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Version:        "1.0",
		Module:         DefaultModule,
		AutoLinkHeader: true,
		DebounceMS:     int(DefaultDebounce / time.Millisecond),
		LogLevel:       "info",
	}
}

// Debounce returns the search debounce delay.
func (c Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// Overrides carries command-line values that win over the file. Nil fields
// are left untouched.
type Overrides struct {
	Module             *string
	Repo               *string
	Ref                *string
	Prefix             *string
	Selector           *string
	HideSelectorColumn *bool
	AutoLinkHeader     *bool
	DebounceMS         *int
	LogLevel           *string
}

// Apply copies every set override into c.
func (c *Config) Apply(o Overrides) {
	setString(&c.Module, o.Module)
	setString(&c.Repo, o.Repo)
	setString(&c.Ref, o.Ref)
	setString(&c.Prefix, o.Prefix)
	setString(&c.Selector, o.Selector)
	setString(&c.LogLevel, o.LogLevel)
	if o.HideSelectorColumn != nil {
		c.HideSelectorColumn = *o.HideSelectorColumn
	}
	if o.AutoLinkHeader != nil {
		c.AutoLinkHeader = *o.AutoLinkHeader
	}
	if o.DebounceMS != nil {
		c.DebounceMS = *o.DebounceMS
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
