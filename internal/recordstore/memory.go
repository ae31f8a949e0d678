package recordstore

import (
	"context"
	"sync"

	"github.com/specialistvlad/jessc/internal/compiler"
)

// Memory is a Store kept in process memory. It is safe for concurrent use.
type Memory struct {
	mu  sync.RWMutex
	rec *compiler.Record
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Load(ctx context.Context) (*compiler.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rec, nil
}

func (m *Memory) Save(ctx context.Context, rec *compiler.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rec = rec
	return nil
}
