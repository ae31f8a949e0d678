package registry

import (
	"context"

	"github.com/specialistvlad/jessc/internal/args"
)

// Handler expands one directive call. The returned text replaces the call's
// full matched text in the file being compiled.
type Handler func(ctx context.Context, call *Call) (string, error)

// Env is the part of a running compilation exposed to handlers.
type Env interface {
	// Include compiles the file at path within the current compilation, with
	// the file's own directory appended to the search path, and returns the
	// expanded text.
	Include(ctx context.Context, path string) (string, error)

	// Exists reports whether path names a regular file.
	Exists(path string) bool

	// Extension is the source file extension, including the leading dot.
	Extension() string
}

// Call describes a single directive occurrence being dispatched.
type Call struct {
	// Name is the directive name as written after the namespace.
	Name string
	// Args are the classified arguments; unclassifiable ones are absent.
	Args []args.Argument
	// FullMatch is the complete matched text, `jess.name(...);` included.
	FullMatch string
	// File is the file containing the call; empty for in-memory input.
	File string
	// Line is the 1-based line the call starts on.
	Line int
	// SearchPath is the ordered list of directories active for this call.
	SearchPath []string

	Env Env
}
