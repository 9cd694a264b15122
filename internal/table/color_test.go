package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseColor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value string
		hex   string
		dark  bool
		ok    bool
	}{
		{value: "#06c", hex: "#0066cc", dark: true, ok: true},
		{value: "#FFFFFF", hex: "#ffffff", ok: true},
		{value: "#ffffff80", hex: "#ffffff", ok: true},
		{value: "#000f", hex: "#000000", dark: true, ok: true},
		{value: "rgb(255, 0, 0)", hex: "#ff0000", ok: true},
		{value: "rgba(0 0 0 / 50%)", hex: "#000000", dark: true, ok: true},
		{value: "rgb(100%, 100%, 100%)", hex: "#ffffff", ok: true},
		{value: "rgb(300, -4, 0)", hex: "#ff0000", ok: true},
		{value: "#gggggg"},
		{value: "#12"},
		{value: "rgb(1, 2)"},
		{value: "rgb 1 2 3"},
		{value: "var(--pf-t--global--color)"},
		{value: "1rem"},
		{value: ""},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Parallel()
			swatch, ok := ParseColor(tt.value)
			assert.Equal(t, tt.ok, ok)
			if !tt.ok {
				return
			}
			assert.Equal(t, tt.hex, swatch.Hex)
			assert.Equal(t, tt.dark, swatch.Dark)
		})
	}
}
