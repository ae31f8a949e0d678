package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/specialistvlad/jessc/internal/compiler"
	"github.com/specialistvlad/jessc/internal/config"
	"github.com/specialistvlad/jessc/internal/ctxlog"
	"github.com/specialistvlad/jessc/internal/recordstore"
	"github.com/specialistvlad/jessc/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	compiler *compiler.Compiler
	store    recordstore.Store

	reload     *reloadServer
	httpServer *http.Server
}

// NewApp is the constructor for the main application. Compiled output goes
// to outW unless an output path is configured; logs go to logW. Modules
// replace the built-in directives when given.
//
// A project file that cannot be loaded is a fatal startup error and panics.
func NewApp(outW, logW io.Writer, appConfig *Config, modules ...registry.Module) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	if path := projectFile(appConfig); path != "" {
		file, err := config.Load(ctx, path)
		if err != nil {
			panic(fmt.Errorf("failed to load configuration: %w", err))
		}
		appConfig.merge(file)
		logger.Debug("Project file merged into configuration.", "path", path)
	}

	reg := compiler.DefaultRegistry()
	if len(modules) > 0 {
		reg = registry.New(modules...)
	}
	logger.Debug("Directive handlers registered.", "names", reg.Names())

	var store recordstore.Store = recordstore.NewMemory()
	if appConfig.CacheFile != "" {
		store = recordstore.NewFile(appConfig.CacheFile)
	}

	return &App{
		outW:   outW,
		logger: logger,
		config: appConfig,
		compiler: compiler.New(
			compiler.WithRegistry(reg),
			compiler.WithSearchPath(appConfig.SearchPath...),
			compiler.WithExtension(appConfig.Extension),
		),
		store: store,
	}
}

// Compiler returns the application's compiler. This is primarily for testing.
func (a *App) Compiler() *compiler.Compiler {
	return a.compiler
}

// Config returns the effective configuration after the project file merge.
func (a *App) Config() *Config {
	return a.config
}

func projectFile(cfg *Config) string {
	if cfg.ConfigPath != "" {
		return cfg.ConfigPath
	}
	dir := cfg.InputPath
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	return config.Discover(dir)
}
