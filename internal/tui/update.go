package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/tokenscope/internal/table"
	"github.com/alexisbeaulieu97/tokenscope/pkg/diff"
)

const (
	minWidth  = 60
	minHeight = 12

	tooSmallPrefix = "Terminal too small"
)

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	// System messages
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		applyMaxWidth(m.width)
		m.help.Width = m.width
		m.input.Width = max(10, m.width-len(m.input.Prompt)-2)

		m.sizeWarning = ""
		if m.width < minWidth || m.height < minHeight {
			m.sizeWarning = fmt.Sprintf("%s (%dx%d). Minimum size: %dx%d",
				tooSmallPrefix, m.width, m.height, minWidth, minHeight)
		}
		m.ensureVisible()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	// Search messages
	case SearchDebounceMsg:
		if msg.ID != m.debounceID {
			return m, nil
		}
		m.applySearch(msg.Query)
		return m, nil

	// Live reload messages
	case ModuleChangedMsg:
		m.opts.Logger.Debug("module files changed")
		return m, reloadCmd(m.opts.Reload)

	case ModuleReloadedMsg:
		next := waitForChangeCmd(m.opts.Changes)
		if msg.Err != nil {
			m.opts.Logger.Error(msg.Err, "module reload failed")
			m.setError(fmt.Sprintf("Reload failed: %v", msg.Err))
			return m, next
		}
		m.replaceEntries(msg)
		return m, next

	// Error messages
	case ErrorMsg:
		m.setError(msg.Message)
		return m, nil

	case ClearErrorMsg:
		m.clearError()
		return m, nil
	}

	// Cursor blink and other component messages.
	if m.searching {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// applySearch refilters the table. An invalid pattern keeps the current
// rows and raises the error banner.
func (m *Model) applySearch(query string) {
	m.pendingQuery = query

	if err := m.table.Search(query); err != nil {
		m.opts.Logger.With("pattern", query).Debug("search pattern rejected")
		m.setError(err.Error())
		return
	}

	if m.showError && strings.HasPrefix(m.errorMsg, "invalid search pattern") {
		m.clearError()
	}
	m.cursor = 0
	m.scrollOffset = 0
	m.ensureVisible()

	m.opts.Logger.WithFields(map[string]any{
		"pattern": query,
		"rows":    m.table.Len(),
	}).Debug("search applied")
}

// scheduleSearch debounces query. Each call supersedes the previous one.
func (m *Model) scheduleSearch(query string) tea.Cmd {
	m.debounceID++
	m.pendingQuery = query
	if m.opts.Debounce <= 0 {
		m.applySearch(query)
		return nil
	}
	return debounceCmd(m.debounceID, query, m.opts.Debounce)
}

// replaceEntries swaps in a reloaded module, keeping the applied search.
func (m *Model) replaceEntries(msg ModuleReloadedMsg) {
	next := table.New(msg.Entries, m.table.Options())
	if err := next.Search(m.table.Pattern()); err != nil {
		m.setError(err.Error())
		return
	}

	change := diff.Entries(m.table.Entries(), msg.Entries)
	m.table = next
	m.reloads++
	m.lastChange = change.String()
	m.clampCursor()

	m.opts.Logger.WithFields(map[string]any{
		"entries": len(msg.Entries),
		"rows":    next.Len(),
		"added":   len(change.Added),
		"removed": len(change.Removed),
		"changed": len(change.Changed),
	}).Info("module reloaded")
}

// handleKeyPress handles keyboard input based on current view mode
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.viewMode == ViewHelp {
		return m.handleHelpKeys(msg)
	}
	if m.searching {
		return m.handleSearchKeys(msg)
	}
	return m.handleTableKeys(msg)
}

// handleTableKeys handles keys while the table has focus
func (m Model) handleTableKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Dismiss):
		if m.showError {
			m.clearError()
		}
		return m, nil

	// Navigation
	case key.Matches(msg, m.keys.Up):
		m.MoveCursorUp()
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.MoveCursorDown()
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.SetCursor(0)
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		m.SetCursor(m.table.Len() - 1)
		return m, nil

	// Mapping rows
	case key.Matches(msg, m.keys.Toggle):
		if m.table.Toggle(m.cursor) {
			m.ensureVisible()
		}
		return m, nil

	case key.Matches(msg, m.keys.ToggleAll):
		m.table.ToggleAll()
		m.ensureVisible()
		return m, nil

	// Search
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.ClearSearch):
		if m.input.Value() != "" || m.table.Pattern() != "" {
			m.input.SetValue("")
			m.debounceID++
			m.applySearch("")
			return m, nil
		}
		if m.showError {
			m.clearError()
		}
		return m, nil

	// Help
	case key.Matches(msg, m.keys.Help):
		m.viewMode = ViewHelp
		return m, nil
	}

	return m, nil
}

// handleSearchKeys handles keys while the search box has focus
func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit

	case key.Matches(msg, m.keys.Submit):
		m.searching = false
		m.input.Blur()
		m.debounceID++
		m.applySearch(m.input.Value())
		return m, nil

	case key.Matches(msg, m.keys.Leave):
		m.searching = false
		m.input.Blur()
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return m, cmd
	}
	return m, tea.Batch(cmd, m.scheduleSearch(m.input.Value()))
}

// handleHelpKeys handles keys in help view
func (m Model) handleHelpKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "?", "esc", "q":
		m.viewMode = ViewTable
		return m, nil
	}
	return m, nil
}
