package config

import (
	"errors"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	tserrors "github.com/alexisbeaulieu97/tokenscope/pkg/errors"
)

// ParseConfig loads a configuration file from disk on top of the defaults.
// The result is not validated; command-line overrides are usually applied
// first and ValidateConfig run afterwards.
func ParseConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, tserrors.NewParseError(path, 0, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, tserrors.NewParseError(path, tserrors.ExtractLine(err), err)
	}

	return &cfg, nil
}

// Load resolves the configuration to use. An explicit path must exist. With
// no explicit path the default file is read when present and the defaults
// are used otherwise.
func Load(explicitPath string) (*Config, string, error) {
	if explicitPath != "" {
		cfg, err := ParseConfig(explicitPath)
		return cfg, explicitPath, err
	}

	cfg, err := ParseConfig(DefaultFileName)
	if err == nil {
		return cfg, DefaultFileName, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		def := Default()
		return &def, "", nil
	}
	return nil, DefaultFileName, err
}
