// Package tokens decodes generated design-token modules and flattens them
// into the entry list the token table is built from.
package tokens

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Definition is a single token as it appears in a generated module.
type Definition struct {
	Name  string
	Value string
	// Values is non-nil for mapping tokens, even when the group is empty.
	Values []string
	// Literals marks the Values that were numbers or booleans. It is nil
	// when every value was a string.
	Literals []bool
}

// Token pairs a definition with the key it was stored under.
type Token struct {
	Key        string
	Definition Definition
}

// Group holds the tokens declared for one selector. A Missing group stands in
// for a selector that was requested but not present in the component.
type Group struct {
	Selector string
	Tokens   []Token
	Missing  bool
}

// File is the token dictionary of one component, keyed by selector in
// document order.
type File struct {
	Component string
	Groups    []Group
}

// Module is an ordered collection of component files.
type Module struct {
	Files []File
	// Skipped counts token definitions that could not be decoded.
	Skipped int
}

// Entry is the flattened record for one CSS variable.
type Entry struct {
	Selector string   `json:"selector"`
	Property string   `json:"property"`
	Token    string   `json:"token"`
	Value    string   `json:"value"`
	Values   []string `json:"values,omitempty"`
	Literals []bool   `json:"-"`
}

// ValuesJSON renders Values as a compact JSON array without HTML escaping.
// Numbers and booleans stay unquoted, e.g. ["--x",12].
func (e Entry) ValuesJSON() string {
	items := make([]any, len(e.Values))
	for i, v := range e.Values {
		items[i] = v
		if i < len(e.Literals) && e.Literals[i] {
			items[i] = json.RawMessage(v)
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(items); err != nil {
		return ""
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// IsMapping reports whether the entry carries grouped sub-values.
func (e Entry) IsMapping() bool {
	return e.Values != nil
}

// ComponentSummary describes one component for listings.
type ComponentSummary struct {
	Key       string `json:"key"`
	Selectors int    `json:"selectors"`
	Tokens    int    `json:"tokens"`
}
