package recordstore

import (
	"context"

	"github.com/specialistvlad/jessc/internal/compiler"
)

// Store loads and saves a single compilation record.
type Store interface {
	// Load returns the stored record, or nil when none has been saved.
	Load(ctx context.Context) (*compiler.Record, error)
	// Save replaces the stored record.
	Save(ctx context.Context, rec *compiler.Record) error
}
