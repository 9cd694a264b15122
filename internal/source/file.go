package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/alexisbeaulieu97/tokenscope/internal/logger"
	"github.com/alexisbeaulieu97/tokenscope/internal/tokens"
	tserrors "github.com/alexisbeaulieu97/tokenscope/pkg/errors"
)

// FileSource reads a module from a local path or doublestar glob.
type FileSource struct {
	Pattern string
	Logger  *logger.Logger
}

// NewFileSource constructs a FileSource.
func NewFileSource(pattern string, log *logger.Logger) *FileSource {
	return &FileSource{Pattern: pattern, Logger: log}
}

func (s *FileSource) String() string {
	return s.Pattern
}

// Load reads every matching file.
func (s *FileSource) Load(ctx context.Context) (*tokens.Module, error) {
	names, err := s.Files()
	if err != nil {
		return nil, err
	}
	s.Logger.WithFields(map[string]any{"pattern": s.Pattern, "files": len(names)}).Debug("loading token module")
	return decodeAll(ctx, names, os.ReadFile, s.Logger)
}

// Files expands the pattern. A plain path is returned as-is so a missing
// file surfaces as a read error rather than an empty match.
func (s *FileSource) Files() ([]string, error) {
	if err := validatePattern(s.Pattern); err != nil {
		return nil, tserrors.NewSourceError(s.Pattern, err)
	}
	if !hasGlobMeta(s.Pattern) {
		return []string{s.Pattern}, nil
	}

	matches, err := doublestar.FilepathGlob(s.Pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, tserrors.NewSourceError(s.Pattern, err)
	}
	if len(matches) == 0 {
		return nil, tserrors.NewSourceError(s.Pattern, fmt.Errorf("no module files match"))
	}
	return matches, nil
}

// WatchPaths returns the directories whose changes may alter the module.
func (s *FileSource) WatchPaths() ([]string, error) {
	names, err := s.Files()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(names))
	var dirs []string
	for _, name := range names {
		dir := filepath.Dir(name)
		if _, ok := seen[dir]; ok {
			continue
		}
		seen[dir] = struct{}{}
		dirs = append(dirs, dir)
	}
	return dirs, nil
}
