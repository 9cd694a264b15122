package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/tokenscope/internal/table"
	"github.com/alexisbeaulieu97/tokenscope/internal/tokens"
)

func fixtureEntries() []tokens.Entry {
	return []tokens.Entry{
		{Selector: ".pf-v6-c-button", Property: "--pf-v6-c-button--BackgroundColor", Token: "c_button_BackgroundColor", Value: "#06c"},
		{Selector: ".pf-v6-c-button", Property: "--pf-v6-c-button--PaddingTop", Token: "c_button_PaddingTop", Value: "1rem"},
		{
			Selector: ".pf-v6-c-button",
			Property: "--pf-v6-c-button--m-primary--Color",
			Token:    "c_button_m_primary_Color",
			Value:    "#fff",
			Values:   []string{"--pf-t--global--text--color--on-brand", "#fff"},
		},
		{Selector: ".pf-v6-c-button.pf-m-plain", Property: "--pf-v6-c-button--m-plain--Color", Token: "c_button_m_plain_Color", Value: "rgb(21, 21, 21)"},
	}
}

func newTestModel(opts table.Options) Model {
	return NewModel(table.New(fixtureEntries(), opts), Options{
		Prefix:         "pf-v6-c-button",
		AutoLinkHeader: true,
		Debounce:       500 * time.Millisecond,
		Unicode:        true,
	})
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeQuery(t *testing.T, m Model, query string) (Model, []tea.Cmd) {
	t.Helper()
	var cmds []tea.Cmd
	for _, r := range query {
		var cmd tea.Cmd
		m, cmd = update(t, m, keyMsg(string(r)))
		cmds = append(cmds, cmd)
	}
	return m, cmds
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestUpdate_WindowSizeMsg(t *testing.T) {
	m := newTestModel(table.Options{})

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40, m.height)
	assert.Empty(t, m.ErrorMessage())
}

func TestUpdate_WindowSizeMsg_TooSmall(t *testing.T) {
	m := newTestModel(table.Options{})

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 10})
	assert.Contains(t, m.SizeWarning(), "Terminal too small")
	assert.Contains(t, plainView(m), "Terminal too small")

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.Empty(t, m.SizeWarning(), "size warning clears once the terminal is large enough")
}

func TestSizeWarningKeepsPatternError(t *testing.T) {
	m := newTestModel(table.Options{})

	m, _ = update(t, m, keyMsg("/"))
	m, _ = typeQuery(t, m, "(")
	m, _ = update(t, m, keyMsg("enter"))
	require.Contains(t, m.ErrorMessage(), "invalid search pattern")

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 10})
	assert.Contains(t, m.SizeWarning(), "Terminal too small")
	assert.Contains(t, m.ErrorMessage(), "invalid search pattern")

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Empty(t, m.SizeWarning())
	assert.Contains(t, m.ErrorMessage(), "invalid search pattern")
	assert.Contains(t, plainView(m), "invalid search pattern")
}

func TestNavigationWraps(t *testing.T) {
	m := newTestModel(table.Options{})

	m, _ = update(t, m, keyMsg("k"))
	assert.Equal(t, 3, m.Cursor())

	m, _ = update(t, m, keyMsg("j"))
	assert.Equal(t, 0, m.Cursor())

	m, _ = update(t, m, keyMsg("G"))
	assert.Equal(t, 3, m.Cursor())

	m, _ = update(t, m, keyMsg("g"))
	assert.Equal(t, 0, m.Cursor())
}

func TestToggleRow(t *testing.T) {
	m := newTestModel(table.Options{})

	// Plain rows have nothing to expand.
	m, _ = update(t, m, keyMsg("enter"))
	row, _ := m.Table().Row(0)
	assert.False(t, row.Open)

	m.SetCursor(2)
	m, _ = update(t, m, keyMsg("enter"))
	row, _ = m.Table().Row(2)
	assert.True(t, row.Open)

	m, _ = update(t, m, keyMsg(" "))
	row, _ = m.Table().Row(2)
	assert.False(t, row.Open)
}

func TestToggleAll(t *testing.T) {
	m := newTestModel(table.Options{})

	m, _ = update(t, m, keyMsg("a"))
	assert.True(t, m.Table().AllExpanded())
	row, _ := m.Table().Row(2)
	assert.True(t, row.Open)

	m, _ = update(t, m, keyMsg("a"))
	assert.False(t, m.Table().AllExpanded())
	row, _ = m.Table().Row(2)
	assert.False(t, row.Open)
}

func TestToggleDisabledWithoutSelectorColumn(t *testing.T) {
	m := newTestModel(table.Options{HideSelectorColumn: true})
	m.SetCursor(2)

	m, _ = update(t, m, keyMsg("enter"))
	m, _ = update(t, m, keyMsg("a"))

	row, _ := m.Table().Row(2)
	assert.False(t, row.Open)
	assert.False(t, m.Table().AllExpanded())
}

func TestSearchIsDebounced(t *testing.T) {
	m := newTestModel(table.Options{})

	m, cmd := update(t, m, keyMsg("/"))
	assert.True(t, m.Searching())
	assert.NotNil(t, cmd)

	m, _ = typeQuery(t, m, "plain")
	assert.Equal(t, "plain", m.Query())
	assert.Equal(t, 4, m.Table().Len(), "rows do not change before the debounce fires")

	// A tick from an earlier keystroke is ignored.
	m, _ = update(t, m, SearchDebounceMsg{ID: m.debounceID - 1, Query: "plai"})
	assert.Equal(t, 4, m.Table().Len())
	assert.Equal(t, "", m.Table().Pattern())

	m, _ = update(t, m, SearchDebounceMsg{ID: m.debounceID, Query: "plain"})
	assert.Equal(t, "plain", m.Table().Pattern())
	require.Equal(t, 1, m.Table().Len())
	row, _ := m.Table().Row(0)
	assert.Equal(t, "--pf-v6-c-button--m-plain--Color", row.Entry.Property)
}

func TestSearchKeystrokesScheduleDebounce(t *testing.T) {
	m := newTestModel(table.Options{})

	m, _ = update(t, m, keyMsg("/"))
	before := m.debounceID
	m, cmds := typeQuery(t, m, "abc")
	assert.Equal(t, before+3, m.debounceID, "each keystroke supersedes the last")
	for _, cmd := range cmds {
		assert.NotNil(t, cmd)
	}

	// Keys that leave the text unchanged schedule nothing.
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, before+3, m.debounceID)
}

func TestDebounceCmd(t *testing.T) {
	msg := debounceCmd(7, "color", time.Millisecond)()
	assert.Equal(t, SearchDebounceMsg{ID: 7, Query: "color"}, msg)
}

func TestSearchWithoutDebounceAppliesImmediately(t *testing.T) {
	m := newTestModel(table.Options{})
	m.opts.Debounce = 0

	m, _ = update(t, m, keyMsg("/"))
	m, _ = typeQuery(t, m, "padding")
	assert.Equal(t, 1, m.Table().Len())
}

func TestSearchSubmitAppliesAndLeaves(t *testing.T) {
	m := newTestModel(table.Options{})

	m, _ = update(t, m, keyMsg("/"))
	m, _ = typeQuery(t, m, "on-brand")
	pending := m.debounceID

	m, _ = update(t, m, keyMsg("enter"))
	assert.False(t, m.Searching())
	assert.Equal(t, "on-brand", m.Table().Pattern())
	assert.Equal(t, 1, m.Table().Len(), "matches the serialized mapping values")

	// The tick scheduled before enter no longer applies.
	m, _ = update(t, m, SearchDebounceMsg{ID: pending, Query: "on-brand"})
	assert.Equal(t, 1, m.Table().Len())
}

func TestSearchLeaveKeepsPendingQuery(t *testing.T) {
	m := newTestModel(table.Options{})

	m, _ = update(t, m, keyMsg("/"))
	m, _ = typeQuery(t, m, "rem")
	m, _ = update(t, m, keyMsg("esc"))
	assert.False(t, m.Searching())

	m, _ = update(t, m, SearchDebounceMsg{ID: m.debounceID, Query: "rem"})
	assert.Equal(t, 1, m.Table().Len())
}

func TestQuitKeyIsTypedWhileSearching(t *testing.T) {
	m := newTestModel(table.Options{})

	m, _ = update(t, m, keyMsg("/"))
	m, _ = update(t, m, keyMsg("q"))
	assert.Equal(t, "q", m.Query())
	assert.True(t, m.Searching())

	_, cmd := update(t, m, keyMsg("ctrl+c"))
	assert.True(t, isQuit(cmd))
}

func TestInvalidPatternShowsBannerAndKeepsRows(t *testing.T) {
	m := newTestModel(table.Options{})

	m, _ = update(t, m, keyMsg("/"))
	m, _ = typeQuery(t, m, "padding")
	m, _ = update(t, m, keyMsg("enter"))
	require.Equal(t, 1, m.Table().Len())

	m, _ = update(t, m, keyMsg("/"))
	m, _ = typeQuery(t, m, "[")
	m, _ = update(t, m, keyMsg("enter"))

	assert.Contains(t, m.ErrorMessage(), "invalid search pattern")
	assert.Equal(t, "padding", m.Table().Pattern())
	assert.Equal(t, 1, m.Table().Len())

	// Fixing the pattern clears the banner.
	m, _ = update(t, m, keyMsg("/"))
	m, _ = update(t, m, keyMsg("backspace"))
	m, _ = update(t, m, keyMsg("enter"))
	assert.Empty(t, m.ErrorMessage())
	assert.Equal(t, "padding", m.Table().Pattern())
}

func TestClearSearch(t *testing.T) {
	m := newTestModel(table.Options{})

	m, _ = update(t, m, keyMsg("/"))
	m, _ = typeQuery(t, m, "plain")
	m, _ = update(t, m, keyMsg("enter"))
	require.Equal(t, 1, m.Table().Len())

	m, _ = update(t, m, keyMsg("esc"))
	assert.Equal(t, "", m.Query())
	assert.Equal(t, "", m.Table().Pattern())
	assert.Equal(t, 4, m.Table().Len())
}

func TestSearchCollapsesRowsAndResetsCursor(t *testing.T) {
	m := newTestModel(table.Options{})
	m, _ = update(t, m, keyMsg("a"))
	m.SetCursor(3)

	m, _ = update(t, m, keyMsg("/"))
	m, _ = typeQuery(t, m, "button")
	m, _ = update(t, m, keyMsg("enter"))

	assert.Equal(t, 0, m.Cursor())
	assert.False(t, m.Table().AllExpanded())
	row, _ := m.Table().Row(2)
	assert.False(t, row.Open)
}

func TestDismissError(t *testing.T) {
	m := newTestModel(table.Options{})

	m, _ = update(t, m, ErrorMsg{Message: "boom"})
	assert.Equal(t, "boom", m.ErrorMessage())

	m, _ = update(t, m, keyMsg("x"))
	assert.Empty(t, m.ErrorMessage())

	m, _ = update(t, m, ErrorMsg{Message: "boom"})
	m, _ = update(t, m, ClearErrorMsg{})
	assert.Empty(t, m.ErrorMessage())
}

func TestHelpToggle(t *testing.T) {
	m := newTestModel(table.Options{})

	m, _ = update(t, m, keyMsg("?"))
	assert.Equal(t, ViewHelp, m.GetViewMode())

	m, cmd := update(t, m, keyMsg("q"))
	assert.Equal(t, ViewTable, m.GetViewMode())
	assert.False(t, isQuit(cmd))

	_, cmd = update(t, m, keyMsg("q"))
	assert.True(t, isQuit(cmd))
}

func TestModuleReloadKeepsSearch(t *testing.T) {
	changes := make(chan struct{}, 1)
	reloaded := append(fixtureEntries(), tokens.Entry{
		Selector: ".pf-v6-c-button",
		Property: "--pf-v6-c-button--m-plain--BackgroundColor",
		Value:    "transparent",
	})

	m := NewModel(table.New(fixtureEntries(), table.Options{}), Options{
		Prefix:  "pf-v6-c-button",
		Changes: changes,
		Reload: func(ctx context.Context) ([]tokens.Entry, error) {
			return reloaded, nil
		},
	})
	require.NotNil(t, m.Init())

	m, _ = update(t, m, keyMsg("/"))
	m, _ = typeQuery(t, m, "m-plain")
	m, _ = update(t, m, keyMsg("enter"))
	require.Equal(t, 1, m.Table().Len())

	m, cmd := update(t, m, ModuleChangedMsg{})
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, ModuleReloadedMsg{}, msg)

	m, next := update(t, m, msg)
	assert.NotNil(t, next, "waits for the next change")
	assert.Equal(t, "m-plain", m.Table().Pattern())
	assert.Equal(t, 2, m.Table().Len())
	assert.Equal(t, 5, m.Table().Total())
	assert.Equal(t, 1, m.reloads)
	assert.Equal(t, "+1 -0 ~0", m.lastChange)
}

func TestModuleReloadFailureShowsBanner(t *testing.T) {
	m := newTestModel(table.Options{})

	m, _ = update(t, m, ModuleReloadedMsg{Err: errors.New("unexpected end of JSON")})
	assert.Contains(t, m.ErrorMessage(), "Reload failed")
	assert.Equal(t, 4, m.Table().Len())
}

func TestWaitForChangeEndsOnClose(t *testing.T) {
	changes := make(chan struct{})
	close(changes)

	cmd := waitForChangeCmd(changes)
	require.NotNil(t, cmd)
	assert.Nil(t, cmd())
	assert.Nil(t, waitForChangeCmd(nil))
}
