package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/tokenscope/internal/table"
)

const swatchBlock = "  "

// Swatch renders a small block filled with value. Values that cannot be
// resolved to a terminal color render as blank padding of the same width.
func Swatch(value string) string {
	c, ok := table.ParseColor(value)
	if !ok {
		return swatchBlock
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(c.Hex)).Render(swatchBlock)
}
