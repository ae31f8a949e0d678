package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/specialistvlad/jessc/internal/registry"
	"github.com/specialistvlad/jessc/internal/runtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_CompileToStdout(t *testing.T) {
	// --- Arrange ---
	root := writeTree(t, map[string]string{
		"main.jess":     "app(jess.require('lib/util');)",
		"lib/util.jess": "util",
	})
	a, out, _ := SetupAppTest(t, &Config{InputPath: filepath.Join(root, "main.jess")})

	// --- Act ---
	err := a.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, "app(util)", out.String())
}

func TestRun_OutputFileWithRuntime(t *testing.T) {
	root := writeTree(t, map[string]string{"main.jess": "jess.define('main', 1);"})
	outPath := filepath.Join(root, "dist", "main.js")
	a, out, _ := SetupAppTest(t, &Config{InputPath: filepath.Join(root, "main.jess"), OutputPath: outPath, Bundle: true})

	require.NoError(t, a.Run(context.Background()))

	assert.Empty(t, out.String())
	assert.Equal(t, runtime.Bundle("jess.define('main', 1);"), readFile(t, outPath))
}

func TestRun_CacheFileSkipsUnchangedInput(t *testing.T) {
	// --- Arrange ---
	root := writeTree(t, map[string]string{
		"main.jess": "jess.require('dep');",
		"dep.jess":  "v1",
	})
	cfg := func() *Config {
		return &Config{
			InputPath:  filepath.Join(root, "main.jess"),
			OutputPath: filepath.Join(root, "out.js"),
			CacheFile:  filepath.Join(root, ".cache", "record.hcl"),
		}
	}

	// --- Act & Assert ---
	first, _, firstLogs := SetupAppTest(t, cfg())
	require.NoError(t, first.Run(context.Background()))
	assert.Contains(t, firstLogs.String(), `"msg":"Compiled."`)
	assert.FileExists(t, filepath.Join(root, ".cache", "record.hcl"))

	second, _, secondLogs := SetupAppTest(t, cfg())
	require.NoError(t, second.Run(context.Background()))
	assert.Contains(t, secondLogs.String(), `"msg":"Up to date, compilation skipped."`)

	dep := filepath.Join(root, "dep.jess")
	require.NoError(t, os.WriteFile(dep, []byte("v2"), 0o600))
	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(dep, future, future))

	third, _, thirdLogs := SetupAppTest(t, cfg())
	require.NoError(t, third.Run(context.Background()))
	assert.Contains(t, thirdLogs.String(), `"msg":"Compiled."`)
	assert.Equal(t, "v2", readFile(t, filepath.Join(root, "out.js")))
}

func TestRun_Directory(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/a.jess":         "A",
		"src/nested/b.jess":  "B[jess.require('c');]",
		"src/nested/c.jess":  "C",
		"src/.hidden/x.jess": "hidden",
		"src/readme.txt":     "ignored",
	})
	outDir := filepath.Join(root, "dist")
	a, _, _ := SetupAppTest(t, &Config{InputPath: filepath.Join(root, "src"), OutputPath: outDir})

	require.NoError(t, a.Run(context.Background()))

	assert.Equal(t, "A", readFile(t, filepath.Join(outDir, "a.js")))
	assert.Equal(t, "B[C]", readFile(t, filepath.Join(outDir, "nested", "b.js")))
	assert.Equal(t, "C", readFile(t, filepath.Join(outDir, "nested", "c.js")))
	assert.NoFileExists(t, filepath.Join(outDir, ".hidden", "x.js"))
}

func TestRun_DirectoryNeedsOutput(t *testing.T) {
	root := writeTree(t, map[string]string{"a.jess": "A"})
	a, _, _ := SetupAppTest(t, &Config{InputPath: root})

	err := a.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "needs an output directory")
}

func TestRun_PrintDeps(t *testing.T) {
	root := writeTree(t, map[string]string{
		"main.jess":     "jess.require('lib/a');jess.require('b');",
		"lib/a.jess":    "jess.require('util');",
		"lib/util.jess": "u",
		"b.jess":        "b",
	})
	a, out, _ := SetupAppTest(t, &Config{InputPath: filepath.Join(root, "main.jess"), PrintDeps: true})

	require.NoError(t, a.Run(context.Background()))

	want := "main.jess\n" +
		"├── lib/a.jess\n" +
		"│   └── lib/util.jess\n" +
		"└── b.jess\n"
	assert.Equal(t, want, out.String())
}

func TestRun_CompileErrorWritesNothing(t *testing.T) {
	root := writeTree(t, map[string]string{"main.jess": "x\njess.require('missing');"})
	outPath := filepath.Join(root, "out.js")
	a, _, _ := SetupAppTest(t, &Config{InputPath: filepath.Join(root, "main.jess"), OutputPath: outPath})

	err := a.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "main.jess:2: jess.require: cannot require `missing.jess`")
	assert.NoFileExists(t, outPath)
}

func TestRun_MissingInput(t *testing.T) {
	a, _, _ := SetupAppTest(t, &Config{InputPath: filepath.Join(t.TempDir(), "nope.jess")})

	err := a.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot read input")
}

func TestNewApp_ProjectFile(t *testing.T) {
	root := writeTree(t, map[string]string{
		"jessc.hcl":          "search_path = [\"vendor\"]\noutput = \"build/app.js\"\n",
		"main.jess":          "jess.require('shared');",
		"vendor/shared.jess": "from vendor",
	})
	a, _, _ := SetupAppTest(t, &Config{InputPath: filepath.Join(root, "main.jess")})

	require.NoError(t, a.Run(context.Background()))

	assert.Equal(t, []string{filepath.Join(root, "vendor")}, a.Config().SearchPath)
	assert.Equal(t, "from vendor", readFile(t, filepath.Join(root, "build", "app.js")))
}

func TestNewApp_BrokenProjectFilePanics(t *testing.T) {
	root := writeTree(t, map[string]string{"jessc.hcl": "search_path = [", "main.jess": ""})

	assert.Panics(t, func() {
		NewApp(&SafeBuffer{}, &SafeBuffer{}, &Config{InputPath: filepath.Join(root, "main.jess")})
	})
}

// upperModule registers a directive that upper-cases its string argument.
type upperModule struct{}

func (upperModule) Register(r *registry.Registry) {
	r.RegisterHandler("upper", func(ctx context.Context, call *registry.Call) (string, error) {
		return strings.ToUpper(call.Args[0].Text), nil
	})
}

func TestNewApp_CustomModulesReplaceBuiltins(t *testing.T) {
	root := writeTree(t, map[string]string{"main.jess": "jess.upper('hi'); jess.require('x');"})
	a, out, _ := SetupAppTest(t, &Config{InputPath: filepath.Join(root, "main.jess")}, upperModule{})

	require.NoError(t, a.Run(context.Background()))

	assert.Equal(t, "HI jess.require('x');", out.String())
}

func TestHealthHandler(t *testing.T) {
	root := writeTree(t, map[string]string{"main.jess": "ok"})
	a, _, _ := SetupAppTest(t, &Config{InputPath: filepath.Join(root, "main.jess")})

	before := httptest.NewRecorder()
	a.healthHandler(before, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, before.Code)

	require.NoError(t, a.Run(context.Background()))

	after := httptest.NewRecorder()
	a.healthHandler(after, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, after.Code)
	assert.True(t, strings.HasPrefix(after.Body.String(), "OK "))
}
