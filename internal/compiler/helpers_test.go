package compiler

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/jessc/internal/fsutil"
	"github.com/stretchr/testify/require"
)

// writeFiles creates the given files below root and returns root.
func writeFiles(t *testing.T, root string, files map[string]string) string {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	}
	return root
}

// recordingFS wraps the host file system and remembers every Stat call.
type recordingFS struct {
	fsutil.OS
	mu    sync.Mutex
	stats []string
}

func (r *recordingFS) Stat(path string) (fs.FileInfo, error) {
	r.mu.Lock()
	r.stats = append(r.stats, path)
	r.mu.Unlock()
	return r.OS.Stat(path)
}

func (r *recordingFS) statted() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.stats...)
}
