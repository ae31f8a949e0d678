package app

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

func TestReloadServer_PushesBuilds(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping socket.io round trip in short mode")
	}

	// --- Arrange ---
	r := newReloadServer(context.Background())
	srv := httptest.NewServer(r.Handler())
	defer srv.Close()
	defer r.Close(context.Background())

	r.Publish("build-1")

	received := make(chan string, 4)
	opts := socket.DefaultOptions()
	opts.SetTransports(types.NewSet(transports.WebSocket))
	client := socket.NewManager(srv.URL, opts).Socket("/", opts)
	client.On(types.EventName(CompiledEvent), func(data ...any) {
		if len(data) > 0 {
			if s, ok := data[0].(string); ok {
				received <- s
			}
		}
	})
	connected := make(chan struct{})
	client.Once(types.EventName("connect"), func(...any) { close(connected) })

	// --- Act ---
	client.Connect()
	defer client.Disconnect()

	// --- Assert ---
	select {
	case <-connected:
	case <-time.After(10 * time.Second):
		t.Fatal("client did not connect")
	}
	require.Equal(t, "build-1", waitFor(t, received), "a connecting client gets the latest build")

	r.Publish("build-2")
	require.Equal(t, "build-2", waitFor(t, received))
}

func waitFor(t *testing.T, ch <-chan string) string {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for a build")
		return ""
	}
}
