package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubModule struct {
	name string
}

func (m stubModule) Register(r *Registry) {
	r.RegisterHandler(m.name, func(ctx context.Context, call *Call) (string, error) {
		return m.name, nil
	})
}

func TestRegistry_Lookup(t *testing.T) {
	reg := New(stubModule{name: "Require"}, stubModule{name: "env"})

	h, ok := reg.Lookup("REQUIRE")
	require.True(t, ok, "lookup must be case-insensitive")
	out, err := h(context.Background(), &Call{})
	require.NoError(t, err)
	assert.Equal(t, "Require", out)

	_, ok = reg.Lookup("unknown")
	assert.False(t, ok)

	assert.Equal(t, []string{"env", "require"}, reg.Names())
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	reg := New(stubModule{name: "require"})
	assert.Panics(t, func() {
		stubModule{name: "REQUIRE"}.Register(reg)
	})
}
