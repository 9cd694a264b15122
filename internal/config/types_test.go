package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.Equal(t, DefaultModule, cfg.Module)
	require.True(t, cfg.AutoLinkHeader)
	require.Equal(t, DefaultDebounce, cfg.Debounce())
	require.Equal(t, 500*time.Millisecond, cfg.Debounce())
}

func TestApplyOverrides(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Prefix = "pf-v6-c-button"

	prefix := "pf-v6-c-alert"
	hide := true
	header := false
	debounce := 0
	cfg.Apply(Overrides{
		Prefix:             &prefix,
		HideSelectorColumn: &hide,
		AutoLinkHeader:     &header,
		DebounceMS:         &debounce,
	})

	require.Equal(t, "pf-v6-c-alert", cfg.Prefix)
	require.True(t, cfg.HideSelectorColumn)
	require.False(t, cfg.AutoLinkHeader)
	require.Equal(t, time.Duration(0), cfg.Debounce())
	require.Equal(t, DefaultModule, cfg.Module, "nil overrides leave fields alone")
}
