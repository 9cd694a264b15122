package components

import (
	"fmt"
	"strings"
)

// SummaryData aggregates counts for rendering the match summary. LastChange
// describes the latest reload, e.g. "+1 -0 ~2".
type SummaryData struct {
	Shown       int
	Total       int
	Pattern     string
	Collapsible int
	Expanded    int
	Reloads     int
	LastChange  string
}

// Summary renders a one-line description of what the table currently shows.
type Summary struct {
	data SummaryData
}

// NewSummary creates a new Summary component.
func NewSummary(data SummaryData) Summary {
	return Summary{data: data}
}

// View renders the summary.
func (s Summary) View() string {
	if s.data.Total == 0 {
		return "No tokens"
	}

	parts := []string{fmt.Sprintf("%d of %d tokens", s.data.Shown, s.data.Total)}
	if s.data.Pattern != "" {
		parts = append(parts, fmt.Sprintf("matching /%s/i", s.data.Pattern))
	}
	if s.data.Collapsible > 0 {
		parts = append(parts, fmt.Sprintf("%d/%d mappings expanded", s.data.Expanded, s.data.Collapsible))
	}
	if s.data.Reloads > 0 {
		reloaded := fmt.Sprintf("reloaded %d×", s.data.Reloads)
		if s.data.LastChange != "" {
			reloaded += " (" + s.data.LastChange + ")"
		}
		parts = append(parts, reloaded)
	}
	return strings.Join(parts, " · ")
}
