package components

import (
	"github.com/alexisbeaulieu97/tokenscope/internal/table"
)

const (
	levelUpIcon     = "↳"
	levelUpFallback = "->"
)

// DetailList renders the nested lines of an expanded mapping row: the
// variable itself, then each value it maps to one level up.
type DetailList struct {
	lines   []string
	unicode bool
}

// NewDetailList constructs a detail list for d.
func NewDetailList(d *table.Detail, unicode bool) DetailList {
	if d == nil {
		return DetailList{unicode: unicode}
	}
	return DetailList{lines: d.Lines, unicode: unicode}
}

// Lines returns the indented lines ready for display.
func (l DetailList) Lines() []string {
	if len(l.lines) == 0 {
		return nil
	}

	icon := levelUpIcon
	if !l.unicode {
		icon = levelUpFallback
	}

	out := make([]string, 0, len(l.lines))
	out = append(out, l.lines[0])
	for _, value := range l.lines[1:] {
		out = append(out, "  "+icon+" "+value)
	}
	return out
}
