package table

import (
	"regexp"

	"github.com/alexisbeaulieu97/tokenscope/internal/tokens"
)

// LightThemeNote prefixes color values; the swatch shows the light theme.
const LightThemeNote = "(In light theme)"

// Options controls row layout.
type Options struct {
	HideSelectorColumn bool
}

// Detail is the nested content of a mapping row.
type Detail struct {
	// Parent is the summary row's position in the rendered sequence, where
	// each detail occupies the slot right after its parent.
	Parent    int
	FullWidth bool
	// Lines holds the property followed by each sub-value.
	Lines []string
}

// Row is one displayed entry.
type Row struct {
	Entry tokens.Entry
	// Cells are selector (unless hidden), variable and value.
	Cells       []string
	Color       bool
	Collapsible bool
	Open        bool
	Detail      *Detail
}

// Filter builds rows for the entries that pass re, in entry order. Mapping
// rows start collapsed.
func Filter(entries []tokens.Entry, re *regexp.Regexp, opts Options) []Row {
	rows := make([]Row, 0, len(entries))
	position := 0
	for _, entry := range entries {
		if !Matches(entry, re) {
			continue
		}

		row := Row{
			Entry: entry,
			Color: IsColor(entry.Value),
		}
		row.Cells = cells(entry, row.Color, opts)

		if entry.IsMapping() {
			row.Collapsible = true
			row.Detail = &Detail{
				Parent:    position,
				FullWidth: true,
				Lines:     mappingLines(entry),
			}
			position++
		}
		position++
		rows = append(rows, row)
	}
	return rows
}

// ValueText is the value cell's text.
func ValueText(value string, color bool) string {
	if color {
		return LightThemeNote + " " + value
	}
	return value
}

func cells(entry tokens.Entry, color bool, opts Options) []string {
	out := make([]string, 0, 3)
	if !opts.HideSelectorColumn {
		out = append(out, entry.Selector)
	}
	return append(out, entry.Property, ValueText(entry.Value, color))
}

func mappingLines(entry tokens.Entry) []string {
	lines := make([]string, 0, len(entry.Values)+1)
	lines = append(lines, entry.Property)
	return append(lines, entry.Values...)
}
