// Package table filters flattened token entries into display rows and
// tracks which mapping rows are expanded.
package table

import (
	"regexp"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/alexisbeaulieu97/tokenscope/internal/tokens"
	tserrors "github.com/alexisbeaulieu97/tokenscope/pkg/errors"
)

const patternCacheSize = 128

var (
	colorPattern = regexp.MustCompile(`^(#|rgb)`)

	// Typing and backspacing revisits the same prefixes, so compiled
	// expressions are kept around.
	patternCache, _ = lru.New[string, *regexp.Regexp](patternCacheSize)
)

// CompilePattern compiles a case-insensitive search expression. An empty
// expression means "no filter" and yields a nil pattern.
func CompilePattern(expr string) (*regexp.Regexp, error) {
	if expr == "" {
		return nil, nil
	}
	if re, ok := patternCache.Get(expr); ok {
		return re, nil
	}

	re, err := regexp.Compile("(?i)" + expr)
	if err != nil {
		return nil, tserrors.NewPatternError(expr, err)
	}
	patternCache.Add(expr, re)
	return re, nil
}

// IsColor reports whether a value looks like a hex or rgb() color literal.
func IsColor(value string) bool {
	return colorPattern.MatchString(value)
}

// Matches reports whether an entry passes the pattern. A nil pattern passes
// everything.
func Matches(entry tokens.Entry, re *regexp.Regexp) bool {
	if re == nil {
		return true
	}
	return re.MatchString(entry.Selector) ||
		re.MatchString(entry.Property) ||
		re.MatchString(entry.Value) ||
		(entry.IsMapping() && re.MatchString(entry.ValuesJSON()))
}
