package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/alexisbeaulieu97/tokenscope/internal/render"
	"github.com/alexisbeaulieu97/tokenscope/internal/table"
	"github.com/alexisbeaulieu97/tokenscope/internal/tui/components"
)

const (
	gutterWidth = 2
	markerWidth = 2
	columnGap   = "  "
	ellipsis    = "…"
	meterWidth  = 20
)

// bodyLine is one rendered line of the table body and the row it belongs to.
type bodyLine struct {
	text string
	row  int
}

type columns struct {
	marker   int
	selector int
	variable int
	value    int
}

// View renders the current model state
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	if m.viewMode == ViewHelp {
		return m.renderHelpView()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTop(),
		m.renderBody(),
		m.renderFooter(),
	)
}

// renderTop renders everything above the table: heading, search box and
// error banner.
func (m Model) renderTop() string {
	var parts []string
	if header := m.renderHeader(); header != "" {
		parts = append(parts, header)
	}
	parts = append(parts, m.renderSearch())
	if m.sizeWarning != "" {
		parts = append(parts, errorBannerStyle.Render(m.sizeWarning))
	}
	if m.showError {
		parts = append(parts, m.renderErrorBanner())
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderHeader renders the linkable heading naming the prefix.
func (m Model) renderHeader() string {
	if !m.opts.AutoLinkHeader {
		return ""
	}
	heading := render.Heading(m.opts.Prefix)
	return headerStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render(heading),
		anchorStyle.Render("#"+render.Anchor(heading)),
	))
}

func (m Model) renderSearch() string {
	if m.searching || m.input.Value() != "" {
		return m.input.View()
	}
	return searchHintStyle.Render("Press / to search")
}

// renderErrorBanner renders an error message banner
func (m Model) renderErrorBanner() string {
	return errorBannerStyle.Render(m.errorMsg)
}

// bodyHeight is the number of table lines that fit between the top and the
// footer, excluding the column header.
func (m Model) bodyHeight() int {
	h := m.height - lipgloss.Height(m.renderTop()) - lipgloss.Height(m.renderFooter()) - 1
	return max(h, 1)
}

// renderBody renders the column header and the visible window of rows.
func (m Model) renderBody() string {
	if m.table.Total() == 0 {
		return emptyStateStyle.Render(fmt.Sprintf("No tokens found for '%s'.", m.opts.Prefix))
	}
	if m.table.Len() == 0 {
		return emptyStateStyle.Render(fmt.Sprintf("No tokens match /%s/i.", m.table.Pattern()))
	}

	lines := m.bodyLines()
	start := min(m.scrollOffset, len(lines))
	end := min(start+m.bodyHeight(), len(lines))

	visible := make([]string, 0, end-start+1)
	visible = append(visible, m.renderColumnHeader(m.columns()))
	for _, l := range lines[start:end] {
		visible = append(visible, l.text)
	}
	return strings.Join(visible, "\n")
}

// columns sizes the table to the terminal width. Widths are computed over
// every row, not just the visible ones, so scrolling does not shift columns.
func (m Model) columns() columns {
	avail := max(m.width-gutterWidth, 20)
	selW := lipgloss.Width("Selector")
	varW := lipgloss.Width("Variable")
	for _, row := range m.table.Rows() {
		selW = max(selW, lipgloss.Width(row.Entry.Selector))
		varW = max(varW, lipgloss.Width(row.Entry.Property))
	}

	var c columns
	gap := lipgloss.Width(columnGap)
	if m.flat() {
		c.variable = min(varW, avail*6/10)
		c.value = avail - c.variable - gap
	} else {
		c.marker = markerWidth
		c.selector = min(selW, avail*3/10)
		c.variable = min(varW, avail*4/10)
		c.value = avail - c.marker - c.selector - c.variable - 2*gap
	}
	c.value = max(c.value, 8)
	return c
}

func (m Model) renderColumnHeader(c columns) string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", gutterWidth))
	if !m.flat() {
		b.WriteString(fit("", c.marker))
		b.WriteString(fit("Selector", c.selector))
		b.WriteString(columnGap)
	}
	b.WriteString(fit("Variable", c.variable))
	b.WriteString(columnGap)
	b.WriteString("Value")
	return columnHeaderStyle.Render(b.String())
}

// bodyLines renders every row followed by the detail of open mapping rows.
func (m Model) bodyLines() []bodyLine {
	c := m.columns()
	rows := m.table.Rows()
	lines := make([]bodyLine, 0, len(rows))

	for i, row := range rows {
		lines = append(lines, bodyLine{text: m.renderRow(i, row, c), row: i})
		if m.flat() || !row.Open || row.Detail == nil {
			continue
		}

		indent := strings.Repeat(" ", gutterWidth+c.marker)
		width := max(m.width-gutterWidth-c.marker, 10)
		for _, d := range components.NewDetailList(row.Detail, m.opts.Unicode).Lines() {
			lines = append(lines, bodyLine{text: indent + detailStyle.Render(ansi.Truncate(d, width, ellipsis)), row: i})
		}
	}
	return lines
}

// renderRow renders a single table row
func (m Model) renderRow(index int, row table.Row, c columns) string {
	style := rowStyle
	gutter := strings.Repeat(" ", gutterWidth)
	if index == m.cursor {
		style = selectedRowStyle
		gutter = selectedRowStyle.Render(fit(">", gutterWidth))
	}

	var b strings.Builder
	b.WriteString(gutter)

	cells := row.Cells
	if !m.flat() {
		b.WriteString(markerStyle.Render(fit(m.marker(row), c.marker)))
		b.WriteString(style.Render(fit(cells[0], c.selector)))
		b.WriteString(columnGap)
		cells = cells[1:]
	}
	b.WriteString(style.Render(fit(cells[0], c.variable)))
	b.WriteString(columnGap)

	value := cells[1]
	if row.Color {
		b.WriteString(components.Swatch(row.Entry.Value))
		b.WriteString(" ")
		b.WriteString(style.Render(ansi.Truncate(value, c.value-3, ellipsis)))
	} else {
		b.WriteString(style.Render(ansi.Truncate(value, c.value, ellipsis)))
	}
	return b.String()
}

// marker is the expand indicator of a mapping row.
func (m Model) marker(row table.Row) string {
	if !row.Collapsible {
		return ""
	}
	switch {
	case m.opts.Unicode && row.Open:
		return "▾"
	case m.opts.Unicode:
		return "▸"
	case row.Open:
		return "-"
	default:
		return "+"
	}
}

// renderFooter renders the match summary and keyboard shortcuts
func (m Model) renderFooter() string {
	data := components.SummaryData{
		Shown:      m.table.Len(),
		Total:      m.table.Total(),
		Pattern:    m.table.Pattern(),
		Reloads:    m.reloads,
		LastChange: m.lastChange,
	}
	if !m.flat() {
		for _, row := range m.table.Rows() {
			if !row.Collapsible {
				continue
			}
			data.Collapsible++
			if row.Open {
				data.Expanded++
			}
		}
	}

	status := lipgloss.JoinHorizontal(
		lipgloss.Left,
		components.NewMeter(m.table.Total(), meterWidth).View(m.table.Len()),
		"  ",
		components.NewSummary(data).View(),
	)

	bindings := m.keys.ShortHelp()
	if m.searching {
		bindings = m.keys.searchHelp()
	}
	if m.showError {
		bindings = append(bindings, m.keys.Dismiss)
	}

	return footerStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		status,
		m.help.ShortHelpView(bindings),
	))
}

// renderHelpView renders the help overlay
func (m Model) renderHelpView() string {
	title := helpTitleStyle.Render("tokenscope help")

	notes := searchHintStyle.Render(strings.Join([]string{
		"Search matches the selector, variable, value and mapped values.",
		"Patterns are case-insensitive regular expressions.",
		"Color values show a swatch of their light theme value.",
	}, "\n"))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		m.help.FullHelpView(m.keys.FullHelp()),
		"",
		notes,
		footerStyle.Render("Press ? or Esc to close"),
	)
}

// fit truncates or pads s to exactly width cells.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	t := ansi.Truncate(s, width, ellipsis)
	return t + strings.Repeat(" ", max(0, width-lipgloss.Width(t)))
}
