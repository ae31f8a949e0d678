package compiler

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/specialistvlad/jessc/internal/ctxlog"
	"github.com/specialistvlad/jessc/internal/fsutil"
	"github.com/specialistvlad/jessc/internal/graph"
	"github.com/specialistvlad/jessc/internal/registry"
)

// DefaultExtension is appended to required names that lack it.
const DefaultExtension = ".jess"

// directiveRegex captures the directive name and the raw argument text.
var directiveRegex = regexp.MustCompile(`(?is)jess\s*\.\s*([a-z0-9_]*)\((.*?)\);`)

// Compiler expands directives. The zero value is not usable; call New.
type Compiler struct {
	registry   *registry.Registry
	fs         fsutil.FS
	searchPath []string
	extension  string
	now        func() time.Time
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithSearchPath sets the directories tried, in order, before the directory
// of the file being compiled.
func WithSearchPath(dirs ...string) Option {
	return func(c *Compiler) { c.searchPath = append([]string(nil), dirs...) }
}

// WithExtension overrides DefaultExtension.
func WithExtension(ext string) Option {
	return func(c *Compiler) {
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.extension = ext
	}
}

// WithRegistry replaces the default directive registry.
func WithRegistry(r *registry.Registry) Option {
	return func(c *Compiler) { c.registry = r }
}

// WithFS replaces the host file system.
func WithFS(fsys fsutil.FS) Option {
	return func(c *Compiler) { c.fs = fsys }
}

// WithClock sets the time source used for Record.Updated.
func WithClock(now func() time.Time) Option {
	return func(c *Compiler) { c.now = now }
}

// New creates a compiler.
func New(opts ...Option) *Compiler {
	c := &Compiler{
		fs:        fsutil.OS{},
		extension: DefaultExtension,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.registry == nil {
		c.registry = DefaultRegistry()
	}
	if c.extension == "" {
		c.extension = DefaultExtension
	}
	return c
}

// Extension returns the configured source extension.
func (c *Compiler) Extension() string { return c.extension }

// SearchPath returns a copy of the configured search path.
func (c *Compiler) SearchPath() []string { return append([]string(nil), c.searchPath...) }

// Result is the outcome of compiling one root file.
type Result struct {
	Root   string
	Output string
	// Files maps every file read during the compile, root included, to the
	// modification time it had when read.
	Files map[string]time.Time
	Graph *graph.Graph
}

// CompileFile compiles the file at path and everything it requires.
func (c *Compiler) CompileFile(ctx context.Context, path string) (*Result, error) {
	root := absPath(path)
	s := c.newSession(root)

	out, err := s.compileFile(ctx, path, c.SearchPath())
	if err != nil {
		return nil, err
	}

	ctxlog.FromContext(ctx).Debug("Compilation finished.", "root", path, "files", len(s.visited), "bytes", len(out))
	return &Result{Root: path, Output: out, Files: s.visited, Graph: s.graph}, nil
}

// CompileFileTo compiles path and writes the output to outputPath, returning
// the number of bytes written. Nothing is written when compilation fails.
func (c *Compiler) CompileFileTo(ctx context.Context, path, outputPath string) (int, error) {
	res, err := c.CompileFile(ctx, path)
	if err != nil {
		return 0, err
	}
	if err := c.fs.WriteFile(outputPath, []byte(res.Output)); err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", outputPath, err)
	}
	return len(res.Output), nil
}

// CompileString expands directives in text. dir, when not empty, is appended
// to the search path the way a file's own directory would be.
func (c *Compiler) CompileString(ctx context.Context, text, dir string) (string, error) {
	s := c.newSession("")
	searchPath := c.SearchPath()
	if dir != "" {
		searchPath = append(searchPath, dir)
	}
	return s.expand(ctx, text, "", searchPath)
}

// absPath is the key a file is tracked under. Symlinks are resolved when
// possible so that one file reached through different links is one key.
func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		return real
	}
	return abs
}
