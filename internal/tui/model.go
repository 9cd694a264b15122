// Package tui implements the interactive token browser.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/tokenscope/internal/logger"
	"github.com/alexisbeaulieu97/tokenscope/internal/table"
)

// Options configures the browser.
type Options struct {
	Prefix         string
	AutoLinkHeader bool
	// Debounce is how long the search box must be idle before the query is
	// applied. Zero applies every keystroke immediately.
	Debounce time.Duration
	Unicode  bool
	Logger   *logger.Logger

	// Reload and Changes enable live reloading. Each value received on
	// Changes triggers Reload.
	Reload  ReloadFunc
	Changes <-chan struct{}
}

// Model is the browser state.
type Model struct {
	table *table.Table
	opts  Options
	keys  KeyMap

	// UI state
	viewMode     ViewMode
	cursor       int
	scrollOffset int

	// Component state
	input textinput.Model
	help  help.Model

	// Search state
	searching    bool
	debounceID   int
	pendingQuery string

	// Error state
	showError bool
	errorMsg  string

	sizeWarning string

	reloads    int
	lastChange string

	// Dimensions
	width  int
	height int
}

// NewModel creates a browser over t.
func NewModel(t *table.Table, opts Options) Model {
	input := textinput.New()
	input.Prompt = "/ "
	input.PromptStyle = searchPromptStyle
	input.Placeholder = "regular expression, case-insensitive"
	input.SetValue(t.Pattern())

	keys := DefaultKeyMap()
	if t.Options().HideSelectorColumn {
		keys = keys.flat()
	}

	return Model{
		table:        t,
		opts:         opts,
		keys:         keys,
		viewMode:     ViewTable,
		input:        input,
		help:         help.New(),
		pendingQuery: t.Pattern(),
		width:        80,
		height:       24,
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return waitForChangeCmd(m.opts.Changes)
}

// Table returns the table the browser drives.
func (m Model) Table() *table.Table {
	return m.table
}

// Cursor returns the selected row index.
func (m Model) Cursor() int {
	return m.cursor
}

// Searching reports whether the search box has focus.
func (m Model) Searching() bool {
	return m.searching
}

// Query returns the text in the search box, which may not be applied yet.
func (m Model) Query() string {
	return m.input.Value()
}

// ErrorMessage returns the banner text, or "" when no banner is shown.
func (m Model) ErrorMessage() string {
	if !m.showError {
		return ""
	}
	return m.errorMsg
}

// SizeWarning is the terminal size warning, or "" when the terminal is large
// enough. It is shown alongside, not instead of, the error banner.
func (m Model) SizeWarning() string {
	return m.sizeWarning
}

// GetViewMode returns the current view mode
func (m Model) GetViewMode() ViewMode {
	return m.viewMode
}

// flat reports whether rows are shown without expandable detail.
func (m Model) flat() bool {
	return m.table.Options().HideSelectorColumn
}

// MoveCursorUp moves cursor up with wrapping
func (m *Model) MoveCursorUp() {
	n := m.table.Len()
	if n == 0 {
		return
	}
	m.cursor--
	if m.cursor < 0 {
		m.cursor = n - 1
	}
	m.ensureVisible()
}

// MoveCursorDown moves cursor down with wrapping
func (m *Model) MoveCursorDown() {
	n := m.table.Len()
	if n == 0 {
		return
	}
	m.cursor++
	if m.cursor >= n {
		m.cursor = 0
	}
	m.ensureVisible()
}

// SetCursor sets cursor to specific index
func (m *Model) SetCursor(index int) {
	if index >= 0 && index < m.table.Len() {
		m.cursor = index
		m.ensureVisible()
	}
}

// clampCursor keeps the cursor on a row after the row set changed.
func (m *Model) clampCursor() {
	if m.cursor >= m.table.Len() {
		m.cursor = m.table.Len() - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.ensureVisible()
}

// ensureVisible scrolls so the selected row and its open detail fit in the
// body when possible.
func (m *Model) ensureVisible() {
	lines := m.bodyLines()
	height := m.bodyHeight()

	first, last := -1, -1
	for i, l := range lines {
		if l.row != m.cursor {
			continue
		}
		if first < 0 {
			first = i
		}
		last = i
	}
	if first < 0 {
		m.scrollOffset = 0
		return
	}

	if last-m.scrollOffset >= height {
		m.scrollOffset = last - height + 1
	}
	if first < m.scrollOffset || last-first >= height {
		m.scrollOffset = first
	}
	if limit := len(lines) - height; m.scrollOffset > limit {
		m.scrollOffset = limit
	}
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}
}

func (m *Model) setError(msg string) {
	m.showError = true
	m.errorMsg = msg
}

func (m *Model) clearError() {
	m.showError = false
	m.errorMsg = ""
}
