package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/jessc/internal/ctxlog"
	"github.com/specialistvlad/jessc/internal/fsutil"
	"github.com/specialistvlad/jessc/internal/runtime"
)

// Run executes the main application logic based on the configuration.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	info, err := os.Stat(a.config.InputPath)
	if err != nil {
		return fmt.Errorf("cannot read input: %w", err)
	}

	switch {
	case a.config.Watch:
		if info.IsDir() {
			return errors.New("watch mode needs a single input file")
		}
		return a.watch(ctx)
	case info.IsDir():
		return a.compileDir(ctx)
	case a.config.PrintDeps:
		return a.printDeps(ctx)
	default:
		_, err := a.compileOnce(ctx, false, a.config.Force)
		return err
	}
}

// compileOnce brings the stored record up to date and writes the output when
// the record changed or when always is set. force bypasses the staleness
// check. It reports whether a new record was produced.
func (a *App) compileOnce(ctx context.Context, always, force bool) (bool, error) {
	logger := ctxlog.FromContext(ctx)

	prev, err := a.store.Load(ctx)
	if err != nil {
		return false, err
	}

	var in any = a.config.InputPath
	if prev != nil && sameFile(prev.Root, a.config.InputPath) {
		in = prev
	}

	rec, err := a.compiler.CachedCompile(ctx, in, force)
	if err != nil {
		return false, err
	}

	changed := rec != prev
	if changed {
		if err := a.store.Save(ctx, rec); err != nil {
			return false, err
		}
		logger.Info("Compiled.", "root", rec.Root, "files", len(rec.Files))
	} else {
		logger.Info("Up to date, compilation skipped.", "root", rec.Root)
	}

	out := a.config.OutputPath
	if changed || always || out == "" || !fsutil.IsFile(fsutil.OS{}, out) {
		if err := a.emit(a.render(rec.Compiled), out); err != nil {
			return false, err
		}
	}
	return changed, nil
}

// compileDir compiles every source file under the input directory into the
// output directory, mirroring the layout.
func (a *App) compileDir(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	if a.config.OutputPath == "" {
		return errors.New("directory input needs an output directory")
	}

	files, err := fsutil.FindFilesByExtension(a.config.InputPath, a.compiler.Extension())
	if err != nil {
		return err
	}
	if len(files) == 0 {
		logger.Warn("No source files found.", "dir", a.config.InputPath, "extension", a.compiler.Extension())
		return nil
	}

	for _, file := range files {
		rel, err := filepath.Rel(a.config.InputPath, file)
		if err != nil {
			return err
		}
		out := filepath.Join(a.config.OutputPath, strings.TrimSuffix(rel, a.compiler.Extension())+".js")

		res, err := a.compiler.CompileFile(ctx, file)
		if err != nil {
			return err
		}
		if err := a.emit(a.render(res.Output), out); err != nil {
			return err
		}
		logger.Info("Compiled.", "root", file, "output", out, "files", len(res.Files))
	}
	return nil
}

// printDeps writes the require tree of the input file to the output writer.
func (a *App) printDeps(ctx context.Context) error {
	res, err := a.compiler.CompileFile(ctx, a.config.InputPath)
	if err != nil {
		return err
	}
	base := filepath.Dir(absOrSelf(a.config.InputPath))
	_, err = io.WriteString(a.outW, res.Graph.Tree(base))
	return err
}

func (a *App) render(compiled string) string {
	if a.config.Bundle {
		return runtime.Bundle(compiled)
	}
	return compiled
}

// emit writes text to path, or to the output writer when path is empty.
func (a *App) emit(text, path string) error {
	if path == "" {
		_, err := io.WriteString(a.outW, text)
		return err
	}
	if err := (fsutil.OS{}).WriteFile(path, []byte(text)); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func sameFile(a, b string) bool {
	return absOrSelf(a) == absOrSelf(b)
}

func absOrSelf(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
