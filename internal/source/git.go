package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/storage/memory"

	"github.com/alexisbeaulieu97/tokenscope/internal/logger"
	"github.com/alexisbeaulieu97/tokenscope/internal/tokens"
	tserrors "github.com/alexisbeaulieu97/tokenscope/pkg/errors"
)

// CloneFunc checks out a repository into an in-memory worktree.
type CloneFunc func(ctx context.Context, opts *git.CloneOptions) (billy.Filesystem, error)

// GitSource reads a module from a repository cloned into memory.
type GitSource struct {
	URL     string
	Ref     string
	Pattern string
	Logger  *logger.Logger

	clone CloneFunc
}

// NewGitSource constructs a GitSource that clones with go-git.
func NewGitSource(url, ref, pattern string, log *logger.Logger) *GitSource {
	return &GitSource{URL: url, Ref: ref, Pattern: pattern, Logger: log, clone: cloneInMemory}
}

func (s *GitSource) String() string {
	if s.Ref != "" {
		return fmt.Sprintf("%s@%s:%s", s.URL, s.Ref, s.Pattern)
	}
	return fmt.Sprintf("%s:%s", s.URL, s.Pattern)
}

// Load clones the repository and reads every file matching the pattern.
func (s *GitSource) Load(ctx context.Context) (*tokens.Module, error) {
	pattern := worktreePattern(s.Pattern)
	if err := validatePattern(pattern); err != nil {
		return nil, tserrors.NewSourceError(s.String(), err)
	}

	log := s.Logger.WithFields(map[string]any{"repo": s.URL, "ref": s.Ref})
	log.Info("cloning token repository")

	fs, err := s.checkout(ctx)
	if err != nil {
		return nil, tserrors.NewSourceError(s.URL, err)
	}

	names, err := matchWorktree(fs, pattern)
	if err != nil {
		return nil, tserrors.NewSourceError(s.String(), err)
	}
	if len(names) == 0 {
		return nil, tserrors.NewSourceError(s.String(), fmt.Errorf("no module files match"))
	}

	return decodeAll(ctx, names, func(name string) ([]byte, error) {
		return util.ReadFile(fs, name)
	}, log)
}

// checkout tries Ref as a branch first and then as a tag.
func (s *GitSource) checkout(ctx context.Context) (billy.Filesystem, error) {
	opts := &git.CloneOptions{URL: s.URL, Depth: 1, SingleBranch: true}
	if s.Ref == "" {
		return s.clone(ctx, opts)
	}

	opts.ReferenceName = plumbing.NewBranchReferenceName(s.Ref)
	fs, err := s.clone(ctx, opts)
	if err == nil || !isMissingRef(err) {
		return fs, err
	}

	s.Logger.With("ref", s.Ref).Debug("branch not found, retrying as tag")
	tagOpts := *opts
	tagOpts.ReferenceName = plumbing.NewTagReferenceName(s.Ref)
	return s.clone(ctx, &tagOpts)
}

func isMissingRef(err error) bool {
	return errors.Is(err, plumbing.ErrReferenceNotFound) || errors.Is(err, git.NoMatchingRefSpecError{})
}

func cloneInMemory(ctx context.Context, opts *git.CloneOptions) (billy.Filesystem, error) {
	fs := memfs.New()
	if _, err := git.CloneContext(ctx, memory.NewStorage(), fs, opts); err != nil {
		return nil, err
	}
	return fs, nil
}

// worktreePattern makes a pattern relative to the worktree root.
func worktreePattern(pattern string) string {
	return strings.TrimPrefix(path.Clean("/"+pattern), "/")
}

// matchWorktree walks fs and returns the files matching pattern, relative to
// the worktree root.
func matchWorktree(fs billy.Filesystem, pattern string) ([]string, error) {
	var matches []string
	err := util.Walk(fs, "/", func(name string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if info.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}

		rel := strings.TrimPrefix(filepath.ToSlash(name), "/")
		ok, err := doublestar.Match(pattern, rel)
		if err != nil {
			return err
		}
		if ok {
			matches = append(matches, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return matches, nil
}
