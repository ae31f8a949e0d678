package require

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/jessc/internal/ctxlog"
	"github.com/specialistvlad/jessc/internal/registry"
)

var (
	ErrNoArguments      = errors.New("require needs exactly one argument")
	ErrNotString        = errors.New("require only accepts a string argument")
	ErrTooManyArguments = errors.New("require only accepts 1 argument")
	ErrNotFound         = errors.New("cannot require")
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// OnRequire inlines the compiled contents of the named file. The name gets
// the source extension appended unless it already ends with it, and the
// first search path directory holding the file wins.
func OnRequire(ctx context.Context, call *registry.Call) (string, error) {
	switch {
	case len(call.Args) == 0:
		return "", ErrNoArguments
	case !call.Args[0].IsString():
		return "", ErrNotString
	case len(call.Args) > 1:
		return "", ErrTooManyArguments
	}

	name := call.Args[0].Text
	if ext := call.Env.Extension(); !strings.HasSuffix(name, ext) {
		name += ext
	}

	logger := ctxlog.FromContext(ctx).With("directive", "require", "name", name)
	for _, dir := range call.SearchPath {
		candidate := filepath.Join(dir, name)
		if !call.Env.Exists(candidate) {
			continue
		}
		logger.Debug("Resolved required file.", "path", candidate)
		return call.Env.Include(ctx, candidate)
	}

	logger.Debug("Required file not found in search path.", "search_path", call.SearchPath)
	return "", fmt.Errorf("%w `%s`", ErrNotFound, name)
}

// Register registers the handler with the compiler.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterHandler("require", OnRequire)
}
