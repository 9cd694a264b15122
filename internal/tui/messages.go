package tui

import (
	"github.com/alexisbeaulieu97/tokenscope/internal/tokens"
)

// ViewMode determines which screen to render
type ViewMode int

const (
	ViewTable ViewMode = iota
	ViewHelp
)

// SearchDebounceMsg is sent once the search box has been idle for the
// debounce delay. Only the message whose ID matches the latest keystroke
// applies the query.
type SearchDebounceMsg struct {
	ID    int
	Query string
}

// ModuleChangedMsg reports that the watched module files changed on disk.
type ModuleChangedMsg struct{}

// ModuleReloadedMsg carries a freshly flattened module, or the error that
// prevented loading it.
type ModuleReloadedMsg struct {
	Entries []tokens.Entry
	Err     error
}

// ErrorMsg indicates a general error occurred
type ErrorMsg struct {
	Message string
}

// ClearErrorMsg requests error banner dismissal
type ClearErrorMsg struct{}
