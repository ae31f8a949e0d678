package fsutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// FS is the set of file operations the compiler needs. Tests substitute
// their own implementation to observe or fail individual calls.
type FS interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
	Stat(path string) (fs.FileInfo, error)
}

// OS implements FS on top of the host file system.
type OS struct{}

func (OS) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }

// WriteFile creates parent directories as needed.
func (OS) WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

func (OS) Stat(path string) (fs.FileInfo, error) { return os.Stat(path) }

// IsFile reports whether path exists and is a regular file.
func IsFile(fsys FS, path string) bool {
	info, err := fsys.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// ModTime returns the modification time of path.
func ModTime(fsys FS, path string) (time.Time, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}
