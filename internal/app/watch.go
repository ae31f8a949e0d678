package app

import (
	"context"
	"time"

	"github.com/specialistvlad/jessc/internal/ctxlog"
)

// watch recompiles the input whenever one of the files it was built from
// changes, until ctx is cancelled. Compile errors are logged and the loop
// keeps going; the last good output stays in place.
func (a *App) watch(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	interval := a.config.WatchInterval
	if interval <= 0 {
		interval = DefaultWatchInterval
	}

	if a.config.ReloadPort > 0 {
		a.reload = newReloadServer(ctx)
		if err := a.reload.Start(a.config.ReloadPort); err != nil {
			return err
		}
	}
	if a.config.HealthcheckPort > 0 {
		a.healthCheckServer(ctx)
	}
	defer a.shutdown(ctx)

	logger.Info("👀 Watching for changes.", "root", a.config.InputPath, "interval", interval)

	var lastErr string
	tick := func(first bool) {
		changed, err := a.compileOnce(ctx, first, a.config.Force && first)
		if err != nil {
			if msg := err.Error(); msg != lastErr {
				logger.Error("Compilation failed.", "error", err)
				lastErr = msg
			}
			return
		}
		lastErr = ""
		if (changed || first) && a.reload != nil {
			rec, err := a.store.Load(ctx)
			if err == nil && rec != nil {
				a.reload.Publish(a.render(rec.Compiled))
			}
		}
	}

	tick(true)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Info("Watch stopped.")
			return nil
		case <-ticker.C:
			tick(false)
		}
	}
}

func (a *App) shutdown(ctx context.Context) {
	if a.reload != nil {
		a.reload.Close(context.WithoutCancel(ctx))
	}
	if err := a.closeHealthCheckServer(context.WithoutCancel(ctx)); err != nil {
		ctxlog.FromContext(ctx).Warn("Health check server did not shut down cleanly.", "error", err)
	}
}
