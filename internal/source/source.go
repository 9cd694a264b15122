// Package source locates generated token modules and reads them into a
// single merged tokens.Module.
package source

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/alexisbeaulieu97/tokenscope/internal/logger"
	"github.com/alexisbeaulieu97/tokenscope/internal/tokens"
	tserrors "github.com/alexisbeaulieu97/tokenscope/pkg/errors"
)

// Source yields a token module.
type Source interface {
	Load(ctx context.Context) (*tokens.Module, error)
	String() string
}

// readFunc reads one matched module file.
type readFunc func(name string) ([]byte, error)

// hasGlobMeta reports whether a module pattern needs expansion.
func hasGlobMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// decodeAll reads and merges the named files in lexical order. Components
// redefined by a later file replace earlier ones.
func decodeAll(ctx context.Context, names []string, read readFunc, log *logger.Logger) (*tokens.Module, error) {
	sort.Strings(names)

	merged := &tokens.Module{}
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, err := read(name)
		if err != nil {
			return nil, tserrors.NewParseError(name, 0, err)
		}

		module, err := tokens.Decode(name, data)
		if err != nil {
			return nil, err
		}

		for _, component := range merged.Merge(module) {
			log.WithFields(map[string]any{"component": component, "file": name}).Warn("component redefined by later module file")
		}
		log.WithFields(map[string]any{"file": name, "components": len(module.Files)}).Debug("module file decoded")
	}

	if merged.Skipped > 0 {
		log.With("skipped", merged.Skipped).Warn("ignored malformed token definitions")
	}
	return merged, nil
}

func validatePattern(pattern string) error {
	if strings.TrimSpace(pattern) == "" {
		return fmt.Errorf("module path is empty")
	}
	if !doublestar.ValidatePattern(pattern) {
		return fmt.Errorf("invalid module pattern %q", pattern)
	}
	return nil
}
