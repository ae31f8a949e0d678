package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/jessc/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// FileName is the name looked up by Discover.
const FileName = "jessc.hcl"

// File is the decoded content of a project file.
type File struct {
	SearchPath    []string `hcl:"search_path,optional"`
	Extension     string   `hcl:"extension,optional"`
	Output        string   `hcl:"output,optional"`
	CacheFile     string   `hcl:"cache_file,optional"`
	BundleRuntime bool     `hcl:"bundle_runtime,optional"`
	Watch         *Watch   `hcl:"watch,block"`

	// Path is the absolute path the file was loaded from.
	Path string
}

// Watch holds the watch mode settings.
type Watch struct {
	RawInterval     string `hcl:"interval,optional"`
	ReloadPort      int    `hcl:"reload_port,optional"`
	HealthcheckPort int    `hcl:"healthcheck_port,optional"`

	// Interval is RawInterval parsed; zero when unset.
	Interval time.Duration
}

// Discover returns the path of a project file in dir, or "" if there is none.
func Discover(dir string) string {
	candidate := filepath.Join(dir, FileName)
	if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
		return candidate
	}
	return ""
}

// Load parses and decodes the project file at path.
func Load(ctx context.Context, path string) (*File, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Decoding config file.", "path", path)

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path %s: %w", path, err)
	}
	if _, err := os.Stat(abs); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config file %s does not exist", path)
	}

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(abs)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %s", path, diags.Error())
	}

	var cfg File
	diags = gohcl.DecodeBody(hclFile.Body, evalContext(), &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %s", path, diags.Error())
	}
	cfg.Path = abs

	if err := cfg.finish(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	logger.Debug("Successfully decoded config file.", "path", path, "search_path", cfg.SearchPath)
	return &cfg, nil
}

// finish validates values and resolves relative paths against the file's
// directory.
func (f *File) finish() error {
	dir := filepath.Dir(f.Path)
	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}

	for i, p := range f.SearchPath {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("search_path entry %d is empty", i)
		}
		f.SearchPath[i] = resolve(p)
	}
	f.Output = resolve(f.Output)
	f.CacheFile = resolve(f.CacheFile)

	if f.Watch != nil {
		if f.Watch.RawInterval != "" {
			d, err := time.ParseDuration(f.Watch.RawInterval)
			if err != nil {
				return fmt.Errorf("watch.interval: %w", err)
			}
			if d <= 0 {
				return fmt.Errorf("watch.interval must be positive, got %s", d)
			}
			f.Watch.Interval = d
		}
		for name, port := range map[string]int{"reload_port": f.Watch.ReloadPort, "healthcheck_port": f.Watch.HealthcheckPort} {
			if port < 0 || port > 65535 {
				return fmt.Errorf("watch.%s out of range: %d", name, port)
			}
		}
	}
	return nil
}

// evalContext exposes the process environment as the `env` object.
func evalContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value)
	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		vars[name] = cty.StringVal(value)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": cty.ObjectVal(vars)},
	}
}
