package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/specialistvlad/jessc/internal/ctxlog"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io/v2/socket"
)

// CompiledEvent is the socket.io event carrying the latest output.
const CompiledEvent = "compiled"

// reloadServer pushes every new build to connected browsers over socket.io.
// A client receives the latest build as soon as it connects.
type reloadServer struct {
	logger *slog.Logger
	io     *socket.Server
	mux    *http.ServeMux
	srv    *http.Server

	mu     sync.RWMutex
	latest string
	ready  bool
}

func newReloadServer(ctx context.Context) *reloadServer {
	logger := ctxlog.FromContext(ctx).With("component", "reload")

	opts := socket.DefaultServerOptions()
	opts.SetCors(&types.Cors{Origin: "*"})

	r := &reloadServer{
		logger: logger,
		io:     socket.NewServer(nil, nil),
		mux:    http.NewServeMux(),
	}
	r.mux.Handle("/socket.io/", r.io.ServeHandler(opts))

	r.io.On("connection", func(clients ...any) {
		client := clients[0].(*socket.Socket)
		logger.Debug("Reload client connected.", "sid", client.Id())

		r.mu.RLock()
		latest, ready := r.latest, r.ready
		r.mu.RUnlock()
		if ready {
			client.Emit(CompiledEvent, latest)
		}
	})
	return r
}

// Handler returns the HTTP handler serving the socket.io endpoint.
func (r *reloadServer) Handler() http.Handler {
	return r.mux
}

// Publish records output as the latest build and sends it to every client.
func (r *reloadServer) Publish(output string) {
	r.mu.Lock()
	r.latest, r.ready = output, true
	r.mu.Unlock()

	r.io.Emit(CompiledEvent, output)
	r.logger.Debug("Build published.", "bytes", len(output))
}

// Start listens on port and serves in the background.
func (r *reloadServer) Start(port int) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return fmt.Errorf("reload server: %w", err)
	}
	r.srv = &http.Server{Handler: r.mux, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		r.logger.Info("🔁 Reload server starting", "address", fmt.Sprintf("http://localhost:%d/socket.io/", port))
		if err := r.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			r.logger.Error("Reload server failed unexpectedly", "error", err)
		}
	}()
	return nil
}

// Close disconnects all clients and stops the HTTP listener, if any.
func (r *reloadServer) Close(ctx context.Context) {
	r.io.Close(nil)
	if r.srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := r.srv.Shutdown(ctx); err != nil {
		r.logger.Warn("Reload server shutdown failed", "error", err)
	}
}
