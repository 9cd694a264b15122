package render

import (
	"fmt"
	"strings"
	"unicode"
)

// Heading is the title shown above a table of tokens sharing prefix.
func Heading(prefix string) string {
	return fmt.Sprintf("Prefixed with '%s'", prefix)
}

// Anchor is the link target for a heading: lower case, punctuation other
// than '-' and '_' dropped, and each space turned into '-'.
func Anchor(heading string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(heading)) {
		switch {
		case r == ' ':
			b.WriteByte('-')
		case r == '-' || r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		}
	}
	return b.String()
}
