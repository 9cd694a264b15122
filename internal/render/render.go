// Package render writes token tables as static text for non-interactive use.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"

	"github.com/alexisbeaulieu97/tokenscope/internal/table"
	"github.com/alexisbeaulieu97/tokenscope/internal/tokens"
)

// Format selects an output encoding.
type Format string

const (
	FormatTable    Format = "table"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTable, FormatMarkdown, FormatJSON:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown format %q (want table, markdown or json)", s)
	}
}

// Options controls static rendering.
type Options struct {
	Prefix string
	// Heading writes the linkable "Prefixed with" heading.
	Heading bool
	// Expand includes the detail of mapping rows.
	Expand bool
	// Color draws swatches next to color values.
	Color   bool
	Unicode bool
}

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	headerCell   = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	bodyCell     = lipgloss.NewStyle().Padding(0, 1)
	detailCell   = lipgloss.NewStyle().Padding(0, 1).Faint(true)
	swatchStyle  = lipgloss.NewStyle()
)

// Render writes t in the given format.
func Render(w io.Writer, t *table.Table, format Format, opts Options) error {
	switch format {
	case FormatMarkdown:
		return Markdown(w, t, opts)
	case FormatJSON:
		return JSON(w, t, opts)
	default:
		return Table(w, t, opts)
	}
}

func headers(opts table.Options) []string {
	if opts.HideSelectorColumn {
		return []string{"Variable", "Value"}
	}
	return []string{"Selector", "Variable", "Value"}
}

// Table writes a bordered terminal table.
func Table(w io.Writer, t *table.Table, opts Options) error {
	if opts.Heading {
		if _, err := fmt.Fprintln(w, headingStyle.Render(Heading(opts.Prefix))); err != nil {
			return err
		}
	}

	flat := t.Options().HideSelectorColumn
	cols := headers(t.Options())
	valueCol := len(cols) - 1

	var data [][]string
	detailRows := map[int]bool{}
	for _, row := range t.Rows() {
		cells := append([]string(nil), row.Cells...)
		if row.Color && opts.Color {
			cells[valueCol] = swatch(row.Entry.Value) + " " + cells[valueCol]
		}
		data = append(data, cells)

		if !opts.Expand || flat || row.Detail == nil {
			continue
		}
		detail := make([]string, len(cols))
		detail[valueCol-1] = strings.Join(detailLines(row.Detail, opts.Unicode), "\n")
		detailRows[len(data)] = true
		data = append(data, detail)
	}

	tbl := lgtable.New().
		Border(lipgloss.NormalBorder()).
		Headers(cols...).
		Rows(data...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch {
			case row == lgtable.HeaderRow:
				return headerCell
			case detailRows[row]:
				return detailCell
			default:
				return bodyCell
			}
		})

	_, err := fmt.Fprintln(w, tbl.String())
	return err
}

// swatch is a two-cell block in the value's color, or blank when the value
// cannot be parsed.
func swatch(value string) string {
	s, ok := table.ParseColor(value)
	if !ok {
		return "  "
	}
	return swatchStyle.Background(lipgloss.Color(s.Hex)).Render("  ")
}

// detailLines renders a mapping as its property followed by one indented
// line per sub-value.
func detailLines(d *table.Detail, unicode bool) []string {
	if d == nil || len(d.Lines) == 0 {
		return nil
	}
	arrow := "->"
	if unicode {
		arrow = "↳"
	}
	lines := []string{d.Lines[0]}
	for _, v := range d.Lines[1:] {
		lines = append(lines, "  "+arrow+" "+v)
	}
	return lines
}

// Markdown writes a heading, a pipe table and, with Expand, the mappings as
// nested lists.
func Markdown(w io.Writer, t *table.Table, opts Options) error {
	var b strings.Builder

	if opts.Heading {
		heading := Heading(opts.Prefix)
		fmt.Fprintf(&b, "<a id=\"%s\"></a>\n\n### %s\n\n", Anchor(heading), escapeMarkdown(heading))
	}

	cols := headers(t.Options())
	b.WriteString("| " + strings.Join(cols, " | ") + " |\n")
	b.WriteString("|" + strings.Repeat(" --- |", len(cols)) + "\n")
	for _, row := range t.Rows() {
		cells := make([]string, len(row.Cells))
		for i, c := range row.Cells {
			cells[i] = escapeMarkdown(c)
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}

	if opts.Expand && !t.Options().HideSelectorColumn {
		var mappings []table.Row
		for _, row := range t.Rows() {
			if row.Detail != nil {
				mappings = append(mappings, row)
			}
		}
		if len(mappings) > 0 {
			b.WriteString("\n#### Mappings\n\n")
			for _, row := range mappings {
				lines := row.Detail.Lines
				fmt.Fprintf(&b, "- %s\n", codeSpan(lines[0]))
				for _, v := range lines[1:] {
					fmt.Fprintf(&b, "  - %s\n", codeSpan(v))
				}
			}
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// codeSpan fences s with one more backtick than its longest backtick run.
func codeSpan(s string) string {
	longest, run := 0, 0
	for _, r := range s {
		if r != '`' {
			run = 0
			continue
		}
		run++
		longest = max(longest, run)
	}
	fence := strings.Repeat("`", longest+1)
	if strings.HasPrefix(s, "`") || strings.HasSuffix(s, "`") {
		s = " " + s + " "
	}
	return fence + s + fence
}

func escapeMarkdown(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

type jsonRow struct {
	tokens.Entry
	Color        bool `json:"color"`
	Mapping      bool `json:"mapping"`
	DetailParent *int `json:"detail_parent,omitempty"`
}

type jsonPayload struct {
	Version string    `json:"version"`
	Prefix  string    `json:"prefix"`
	Heading string    `json:"heading,omitempty"`
	Anchor  string    `json:"anchor,omitempty"`
	Pattern string    `json:"pattern"`
	Count   int       `json:"count"`
	Total   int       `json:"total"`
	Rows    []jsonRow `json:"rows"`
}

// JSON writes the filtered entries with their row metadata.
func JSON(w io.Writer, t *table.Table, opts Options) error {
	payload := jsonPayload{
		Version: "1.0",
		Prefix:  opts.Prefix,
		Pattern: t.Pattern(),
		Count:   t.Len(),
		Total:   t.Total(),
		Rows:    make([]jsonRow, 0, t.Len()),
	}
	if opts.Heading {
		payload.Heading = Heading(opts.Prefix)
		payload.Anchor = Anchor(payload.Heading)
	}

	for _, row := range t.Rows() {
		jr := jsonRow{Entry: row.Entry, Color: row.Color, Mapping: row.Collapsible}
		if row.Detail != nil {
			parent := row.Detail.Parent
			jr.DetailParent = &parent
		}
		payload.Rows = append(payload.Rows, jr)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

type componentsPayload struct {
	Version    string                    `json:"version"`
	Count      int                       `json:"count"`
	Components []tokens.ComponentSummary `json:"components"`
}

// Components writes a component listing. Markdown falls back to the table
// layout.
func Components(w io.Writer, summaries []tokens.ComponentSummary, format Format) error {
	if format == FormatJSON {
		if summaries == nil {
			summaries = []tokens.ComponentSummary{}
		}
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(componentsPayload{Version: "1.0", Count: len(summaries), Components: summaries})
	}

	if len(summaries) == 0 {
		_, err := fmt.Fprintln(w, "No components found.")
		return err
	}

	rows := make([][]string, len(summaries))
	for i, s := range summaries {
		rows[i] = []string{s.Key, fmt.Sprint(s.Selectors), fmt.Sprint(s.Tokens)}
	}
	tbl := lgtable.New().
		Border(lipgloss.NormalBorder()).
		Headers("Component", "Selectors", "Tokens").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == lgtable.HeaderRow {
				return headerCell
			}
			return bodyCell
		})
	_, err := fmt.Fprintln(w, tbl.String())
	return err
}
