package compiler

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/specialistvlad/jessc/internal/args"
	"github.com/specialistvlad/jessc/internal/ctxlog"
	"github.com/specialistvlad/jessc/internal/fsutil"
	"github.com/specialistvlad/jessc/internal/graph"
	"github.com/specialistvlad/jessc/internal/registry"
)

// session is the state of one top-level compilation.
type session struct {
	c       *Compiler
	visited map[string]time.Time
	stack   []string
	graph   *graph.Graph
}

func (c *Compiler) newSession(root string) *session {
	s := &session{c: c, visited: make(map[string]time.Time)}
	if root != "" {
		s.graph = graph.New(root)
	}
	return s
}

// compileFile reads path, records it as visited and expands it with the
// file's directory appended to searchPath. The caller's slice is not modified.
func (s *session) compileFile(ctx context.Context, path string, searchPath []string) (string, error) {
	abs := absPath(path)
	for i, open := range s.stack {
		if open == abs {
			chain := append(append([]string(nil), s.stack[i:]...), abs)
			return "", fmt.Errorf("%w: %s", ErrRequireCycle, strings.Join(chain, " -> "))
		}
	}

	data, err := s.c.fs.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	mtime, err := fsutil.ModTime(s.c.fs, path)
	if err != nil {
		return "", fmt.Errorf("failed to stat %s: %w", path, err)
	}
	s.visited[abs] = mtime

	nested := make([]string, len(searchPath), len(searchPath)+1)
	copy(nested, searchPath)
	nested = append(nested, filepath.Dir(path))

	ctx = ctxlog.With(ctx, "file", path)
	ctxlog.FromContext(ctx).Debug("Compiling file.", "search_path", nested, "depth", len(s.stack))

	s.stack = append(s.stack, abs)
	defer func() { s.stack = s.stack[:len(s.stack)-1] }()

	return s.expand(ctx, string(data), path, nested)
}

// expand processes every directive found by a single scan of text.
func (s *session) expand(ctx context.Context, text, file string, searchPath []string) (string, error) {
	out := text
	for _, loc := range directiveRegex.FindAllStringSubmatchIndex(text, -1) {
		full, expansion, handled, err := s.expandCall(ctx, text, loc, file, searchPath)
		if err != nil {
			return "", err
		}
		if handled {
			out = strings.Replace(out, full, expansion, 1)
		}
	}
	return out, nil
}

// expandCall dispatches one regex match. handled is false for unknown directives.
func (s *session) expandCall(ctx context.Context, text string, loc []int, file string, searchPath []string) (full, expansion string, handled bool, err error) {
	full = text[loc[0]:loc[1]]
	name := text[loc[2]:loc[3]]
	rawArgs := text[loc[4]:loc[5]]
	line := 1 + strings.Count(text[:loc[0]], "\n")

	arguments, err := args.Parse(rawArgs)
	if err != nil {
		return full, "", false, &DirectiveError{File: file, Line: line, Directive: name, Err: err}
	}

	handler, ok := s.c.registry.Lookup(name)
	if !ok {
		ctxlog.FromContext(ctx).Debug("Unknown directive left verbatim.", "directive", name, "line", line)
		return full, "", false, nil
	}

	call := &registry.Call{
		Name:       name,
		Args:       arguments,
		FullMatch:  full,
		File:       file,
		Line:       line,
		SearchPath: searchPath,
		Env:        &callEnv{s: s, from: file, searchPath: searchPath},
	}
	expansion, err = handler(ctx, call)
	if err != nil {
		return full, "", false, &DirectiveError{File: file, Line: line, Directive: name, Err: err}
	}
	ctxlog.FromContext(ctx).Debug("Directive expanded.", "directive", name, "line", line, "bytes", len(expansion))
	return full, expansion, true, nil
}

// callEnv implements registry.Env for calls made from one file.
type callEnv struct {
	s          *session
	from       string
	searchPath []string
}

// Include compiles path as a dependency of the calling file, starting from
// the search path active for the call.
func (e *callEnv) Include(ctx context.Context, path string) (string, error) {
	if e.s.graph != nil && e.from != "" {
		e.s.graph.AddEdge(absPath(e.from), absPath(path))
	}
	return e.s.compileFile(ctx, path, e.searchPath)
}

func (e *callEnv) Exists(path string) bool {
	return fsutil.IsFile(e.s.c.fs, path)
}

func (e *callEnv) Extension() string {
	return e.s.c.extension
}
