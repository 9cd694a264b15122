package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	tserrors "github.com/alexisbeaulieu97/tokenscope/pkg/errors"
)

func TestParseConfig(t *testing.T) {
	t.Parallel()

	validYAML := `version: "1.0"
module: ./dist/componentIndex.json
prefix: pf-v6-c-button
selector: .pf-v6-c-button
hide_selector_column: true
debounce_ms: 250
`

	invalidYAML := `version: "1.0"
prefix: [pf-v6-c-button
`

	partialYAML := `prefix: pf-v6-c-alert
`

	cases := []struct {
		name     string
		contents string
		assert   func(t *testing.T, cfg *Config, err error)
	}{
		{
			name:     "valid configuration is parsed",
			contents: validYAML,
			assert: func(t *testing.T, cfg *Config, err error) {
				require.NoError(t, err)
				require.NotNil(t, cfg)
				require.Equal(t, "./dist/componentIndex.json", cfg.Module)
				require.Equal(t, "pf-v6-c-button", cfg.Prefix)
				require.Equal(t, ".pf-v6-c-button", cfg.Selector)
				require.True(t, cfg.HideSelectorColumn)
				require.True(t, cfg.AutoLinkHeader, "unset fields keep their defaults")
				require.Equal(t, 250, cfg.DebounceMS)
			},
		},
		{
			name:     "invalid yaml returns parse error",
			contents: invalidYAML,
			assert: func(t *testing.T, cfg *Config, err error) {
				require.Error(t, err)
				var parseErr *tserrors.ParseError
				require.ErrorAs(t, err, &parseErr)
				require.Positive(t, parseErr.Line)
			},
		},
		{
			name:     "partial configuration keeps defaults",
			contents: partialYAML,
			assert: func(t *testing.T, cfg *Config, err error) {
				require.NoError(t, err)
				require.Equal(t, "pf-v6-c-alert", cfg.Prefix)
				require.Equal(t, DefaultModule, cfg.Module)
				require.Equal(t, 500, cfg.DebounceMS)
				require.NoError(t, ValidateConfig(cfg))
			},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			path := writeTempConfig(t, tc.contents)
			cfg, err := ParseConfig(path)
			tc.assert(t, cfg, err)
		})
	}
}

func TestParseConfigMissingFile(t *testing.T) {
	t.Parallel()

	_, err := ParseConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	var parseErr *tserrors.ParseError
	require.ErrorAs(t, err, &parseErr)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadExplicitPath(t *testing.T) {
	t.Parallel()

	path := writeTempConfig(t, "prefix: pf-v6-c-card\n")
	cfg, used, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, path, used)
	require.Equal(t, "pf-v6-c-card", cfg.Prefix)

	_, _, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoadFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	cfg, used, err := Load("")
	require.NoError(t, err)
	require.Empty(t, used)
	require.Equal(t, Default(), *cfg)

	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFileName), []byte("prefix: pf-v6-c-tabs\n"), 0o600))
	cfg, used, err = Load("")
	require.NoError(t, err)
	require.Equal(t, DefaultFileName, used)
	require.Equal(t, "pf-v6-c-tabs", cfg.Prefix)
}

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "tokenscope.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}
