package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/tokenscope/internal/tokens"
)

const reloadTimeout = 30 * time.Second

// ReloadFunc reads the module again and returns the applicable entries.
type ReloadFunc func(ctx context.Context) ([]tokens.Entry, error)

// debounceCmd waits for delay and then reports the query typed at the time
// of keystroke id.
func debounceCmd(id int, query string, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return SearchDebounceMsg{ID: id, Query: query}
	})
}

// waitForChangeCmd blocks until the watcher signals a change. A closed
// channel ends the wait without a message.
func waitForChangeCmd(changes <-chan struct{}) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return ModuleChangedMsg{}
	}
}

// reloadCmd runs reload asynchronously.
func reloadCmd(reload ReloadFunc) tea.Cmd {
	if reload == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), reloadTimeout)
		defer cancel()

		entries, err := reload(ctx)
		return ModuleReloadedMsg{Entries: entries, Err: err}
	}
}
