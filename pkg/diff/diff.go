// Package diff compares flattened token lists.
package diff

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/alexisbeaulieu97/tokenscope/internal/tokens"
)

const (
	maxDiffLines    = 10000
	truncateMessage = "... (diff truncated, exceeds 10,000 lines) ..."
)

// Change is a variable whose value differs between two token lists.
type Change struct {
	Selector string `json:"selector"`
	Property string `json:"property"`
	Old      string `json:"old"`
	New      string `json:"new"`
}

// Summary lists the variables added, removed and changed between two token
// lists. Variables are identified by selector and property.
type Summary struct {
	Added   []tokens.Entry `json:"added"`
	Removed []tokens.Entry `json:"removed"`
	Changed []Change       `json:"changed"`
}

// Empty reports whether the lists were equivalent.
func (s Summary) Empty() bool {
	return len(s.Added) == 0 && len(s.Removed) == 0 && len(s.Changed) == 0
}

// String renders the counts, e.g. "+2 -0 ~1".
func (s Summary) String() string {
	return fmt.Sprintf("+%d -%d ~%d", len(s.Added), len(s.Removed), len(s.Changed))
}

type key struct {
	selector string
	property string
}

// Entries compares from against to. Added and Changed follow to's order,
// Removed follows from's.
func Entries(from, to []tokens.Entry) Summary {
	before := make(map[key]tokens.Entry, len(from))
	for _, e := range from {
		before[key{e.Selector, e.Property}] = e
	}
	after := make(map[key]struct{}, len(to))

	s := Summary{Added: []tokens.Entry{}, Removed: []tokens.Entry{}, Changed: []Change{}}
	for _, e := range to {
		k := key{e.Selector, e.Property}
		if _, seen := after[k]; seen {
			continue
		}
		after[k] = struct{}{}

		prev, ok := before[k]
		switch {
		case !ok:
			s.Added = append(s.Added, e)
		case valueText(prev) != valueText(e):
			s.Changed = append(s.Changed, Change{Selector: e.Selector, Property: e.Property, Old: valueText(prev), New: valueText(e)})
		}
	}

	for _, e := range from {
		k := key{e.Selector, e.Property}
		if _, ok := after[k]; ok {
			continue
		}
		after[k] = struct{}{}
		s.Removed = append(s.Removed, e)
	}
	return s
}

// Lines renders entries one per line for GenerateUnifiedDiff.
func Lines(entries []tokens.Entry) []byte {
	var buf bytes.Buffer
	for _, e := range entries {
		fmt.Fprintf(&buf, "%s %s: %s\n", e.Selector, e.Property, valueText(e))
	}
	return buf.Bytes()
}

func valueText(e tokens.Entry) string {
	if e.IsMapping() {
		return e.ValuesJSON()
	}
	return e.Value
}

// GenerateUnifiedDiff compares expected and actual line by line in unified
// diff format. It returns "" when they are identical and truncates output
// beyond 10,000 lines.
func GenerateUnifiedDiff(expected, actual []byte, expectedLabel, actualLabel string) string {
	if bytes.Equal(expected, actual) {
		return ""
	}

	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(string(expected), string(actual))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lineArray)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "--- %s\n", expectedLabel)
	fmt.Fprintf(&buf, "+++ %s\n", actualLabel)
	fmt.Fprintf(&buf, "@@ -1,%d +1,%d @@\n", countLines(expected), countLines(actual))

	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			buf.WriteString(prefix)
			buf.WriteString(strings.TrimSuffix(line, "\n"))
			buf.WriteString("\n")
		}
	}

	result := buf.String()
	lines := strings.Split(result, "\n")
	if len(lines) > maxDiffLines {
		truncated := strings.Join(lines[:maxDiffLines], "\n")
		return truncated + "\n" + truncateMessage + "\n"
	}

	return result
}

func countLines(b []byte) int {
	n := bytes.Count(b, []byte("\n"))
	if len(b) > 0 && b[len(b)-1] != '\n' {
		n++
	}
	return n
}
