package table

import (
	"github.com/alexisbeaulieu97/tokenscope/internal/tokens"
)

// Table is the stateful view over a fixed entry list: the active search
// pattern, the filtered rows and their expanded state.
type Table struct {
	entries     []tokens.Entry
	opts        Options
	pattern     string
	rows        []Row
	allExpanded bool
}

// New builds a table showing every entry with mapping rows collapsed.
func New(entries []tokens.Entry, opts Options) *Table {
	t := &Table{entries: entries, opts: opts}
	t.rows = Filter(entries, nil, opts)
	return t
}

// Search refilters the entries against expr. Rows are rebuilt, so every
// mapping row collapses again and AllExpanded resets. An invalid expression
// leaves the table as it was and returns a *errors.PatternError.
func (t *Table) Search(expr string) error {
	re, err := CompilePattern(expr)
	if err != nil {
		return err
	}
	t.pattern = expr
	t.rows = Filter(t.entries, re, t.opts)
	t.allExpanded = false
	return nil
}

// Toggle flips the open state of row i. It reports false when i is out of
// range or the row has no detail.
func (t *Table) Toggle(i int) bool {
	if i < 0 || i >= len(t.rows) || !t.rows[i].Collapsible {
		return false
	}
	t.rows[i].Open = !t.rows[i].Open
	return true
}

// SetAll opens or closes every collapsible row and returns how many rows
// changed state.
func (t *Table) SetAll(open bool) int {
	changed := 0
	for i := range t.rows {
		if !t.rows[i].Collapsible || t.rows[i].Open == open {
			continue
		}
		t.rows[i].Open = open
		changed++
	}
	return changed
}

// ToggleAll expands every mapping row when the table is collapsed and
// collapses them when it is expanded.
func (t *Table) ToggleAll() {
	t.SetAll(!t.allExpanded)
	t.allExpanded = !t.allExpanded
}

// AllExpanded reports the state the last ToggleAll left the table in.
func (t *Table) AllExpanded() bool {
	return t.allExpanded
}

// Rows returns the current rows. Callers must not modify them.
func (t *Table) Rows() []Row {
	return t.rows
}

// Row returns row i.
func (t *Table) Row(i int) (Row, bool) {
	if i < 0 || i >= len(t.rows) {
		return Row{}, false
	}
	return t.rows[i], true
}

// Len is the number of rows passing the current pattern.
func (t *Table) Len() int {
	return len(t.rows)
}

// Total is the number of entries regardless of pattern.
func (t *Table) Total() int {
	return len(t.entries)
}

// Pattern is the search expression currently applied.
func (t *Table) Pattern() string {
	return t.pattern
}

// Options returns the layout options the rows were built with.
func (t *Table) Options() Options {
	return t.opts
}

// Entries returns the flattened entries backing the table.
func (t *Table) Entries() []tokens.Entry {
	return t.entries
}
