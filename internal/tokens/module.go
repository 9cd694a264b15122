package tokens

import (
	"regexp"
	"sort"
	"strings"
)

const versionedPrefix = "pf-v6-"

var dashRun = regexp.MustCompile(`-+`)

// PrefixKey converts a CSS variable namespace into the component key used by
// the generated module: "pf-v6-c-button" becomes "c_button".
func PrefixKey(prefix string) string {
	return dashRun.ReplaceAllString(strings.Replace(prefix, versionedPrefix, "", 1), "_")
}

// Merge appends the files of other to m. A component already present is
// replaced in place; the replaced keys are returned so callers can report them.
func (m *Module) Merge(other *Module) []string {
	if other == nil {
		return nil
	}

	index := make(map[string]int, len(m.Files))
	for i, f := range m.Files {
		index[f.Component] = i
	}

	var replaced []string
	for _, f := range other.Files {
		if i, ok := index[f.Component]; ok {
			m.Files[i] = f
			replaced = append(replaced, f.Component)
			continue
		}
		index[f.Component] = len(m.Files)
		m.Files = append(m.Files, f)
	}
	m.Skipped += other.Skipped
	return replaced
}

// Applicable returns the component files that belong to prefix, sorted by
// component key. A non-empty selector narrows each file to that selector; a
// selector the component lacks yields a Missing group.
func (m *Module) Applicable(prefix, selector string) []File {
	if m == nil {
		return nil
	}

	key := PrefixKey(prefix)
	var files []File
	for _, f := range m.Files {
		if f.Component == key {
			files = append(files, f)
		}
	}
	sort.SliceStable(files, func(i, j int) bool {
		return files[i].Component < files[j].Component
	})

	if selector == "" {
		return files
	}

	narrowed := make([]File, len(files))
	for i, f := range files {
		group := Group{Selector: selector, Missing: true}
		for _, g := range f.Groups {
			if g.Selector == selector {
				group = g
				break
			}
		}
		narrowed[i] = File{Component: f.Component, Groups: []Group{group}}
	}
	return narrowed
}

// Components summarises every component in document order.
func (m *Module) Components() []ComponentSummary {
	if m == nil {
		return nil
	}

	summaries := make([]ComponentSummary, 0, len(m.Files))
	for _, f := range m.Files {
		summary := ComponentSummary{Key: f.Component}
		for _, g := range f.Groups {
			if g.Missing {
				continue
			}
			summary.Selectors++
			summary.Tokens += len(g.Tokens)
		}
		summaries = append(summaries, summary)
	}
	return summaries
}
