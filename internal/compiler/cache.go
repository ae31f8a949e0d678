package compiler

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/specialistvlad/jessc/internal/ctxlog"
	"github.com/specialistvlad/jessc/internal/fsutil"
)

// Record is the persistable result of a compilation. Files holds exactly the
// files read while producing Compiled, with the modification time each had
// when read.
type Record struct {
	Root     string
	Compiled string
	Files    map[string]time.Time
	Updated  time.Time
}

// CachedCompile returns an up-to-date Record for in, which must be a root
// path (string) or a Record from an earlier call (*Record or Record).
//
// A path is always compiled. A record is recompiled from its Root when force
// is set, when it carries no file information, or when any recorded file is
// missing or was modified after it was recorded; otherwise in is returned
// unchanged. Any other input yields ErrInvalidInput.
func (c *Compiler) CachedCompile(ctx context.Context, in any, force bool) (*Record, error) {
	logger := ctxlog.FromContext(ctx)

	var prev *Record
	switch v := in.(type) {
	case string:
		if v == "" {
			return nil, ErrInvalidInput
		}
		return c.recompile(ctx, v)
	case *Record:
		prev = v
	case Record:
		prev = &v
	default:
		return nil, fmt.Errorf("%w: got %T", ErrInvalidInput, in)
	}

	if prev == nil || prev.Root == "" {
		return nil, fmt.Errorf("%w: record has no root", ErrInvalidInput)
	}

	switch {
	case force:
		logger.Debug("Recompiling: forced.", "root", prev.Root)
	case prev.Files == nil:
		logger.Debug("Recompiling: record has no file information.", "root", prev.Root)
	default:
		stale, reason := c.staleFile(prev.Files)
		if stale == "" {
			logger.Debug("Record is up to date.", "root", prev.Root, "files", len(prev.Files))
			return prev, nil
		}
		logger.Debug("Recompiling: file changed.", "root", prev.Root, "file", stale, "reason", reason)
	}
	return c.recompile(ctx, prev.Root)
}

func (c *Compiler) recompile(ctx context.Context, root string) (*Record, error) {
	res, err := c.CompileFile(ctx, root)
	if err != nil {
		return nil, err
	}
	return &Record{
		Root:     root,
		Compiled: res.Output,
		Files:    res.Files,
		Updated:  c.now(),
	}, nil
}

// staleFile returns the first recorded file, in path order, that is missing
// or newer than recorded, together with the reason. It returns "" when every
// file is current.
func (c *Compiler) staleFile(files map[string]time.Time) (string, string) {
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		mtime, err := fsutil.ModTime(c.fs, p)
		if err != nil {
			return p, "missing"
		}
		if mtime.After(files[p]) {
			return p, "modified"
		}
	}
	return "", ""
}
