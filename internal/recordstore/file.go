package recordstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/specialistvlad/jessc/internal/compiler"
	"github.com/specialistvlad/jessc/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// recordFile is the on-disk shape of a record. Times are Unix nanoseconds so
// that modification times survive the round trip exactly.
type recordFile struct {
	Root     string           `hcl:"root"`
	Compiled string           `hcl:"compiled,optional"`
	Updated  int64            `hcl:"updated,optional"`
	Files    map[string]int64 `hcl:"files,optional"`
}

// File is a Store backed by an HCL file.
type File struct {
	path string
}

// NewFile returns a store reading and writing path.
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the backing file path.
func (f *File) Path() string { return f.path }

// Load parses the record file. A missing file is not an error and yields a
// nil record.
func (f *File) Load(ctx context.Context) (*compiler.Record, error) {
	logger := ctxlog.FromContext(ctx).With("cache_file", f.path)

	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Debug("No cache file yet.")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cache file %s: %w", f.path, err)
	}

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, f.path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse cache file %s: %w", f.path, diags)
	}

	var rf recordFile
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &rf); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode cache file %s: %w", f.path, diags)
	}

	rec := &compiler.Record{
		Root:     rf.Root,
		Compiled: rf.Compiled,
	}
	if rf.Updated != 0 {
		rec.Updated = time.Unix(0, rf.Updated)
	}
	if rf.Files != nil {
		rec.Files = make(map[string]time.Time, len(rf.Files))
		for path, nanos := range rf.Files {
			rec.Files[path] = time.Unix(0, nanos)
		}
	}
	logger.Debug("Cache file loaded.", "root", rec.Root, "files", len(rec.Files))
	return rec, nil
}

// Save writes rec to the backing file, replacing it atomically.
func (f *File) Save(ctx context.Context, rec *compiler.Record) error {
	if rec == nil {
		return errors.New("cannot save a nil record")
	}

	out := hclwrite.NewEmptyFile()
	body := out.Body()
	body.SetAttributeValue("root", cty.StringVal(rec.Root))
	if !rec.Updated.IsZero() {
		body.SetAttributeValue("updated", cty.NumberIntVal(rec.Updated.UnixNano()))
	}
	if rec.Files != nil {
		paths := make([]string, 0, len(rec.Files))
		for p := range rec.Files {
			paths = append(paths, p)
		}
		sort.Strings(paths)

		attrs := make(map[string]cty.Value, len(paths))
		for _, p := range paths {
			attrs[p] = cty.NumberIntVal(rec.Files[p].UnixNano())
		}
		body.SetAttributeValue("files", cty.ObjectVal(attrs))
	}
	body.AppendNewline()
	body.SetAttributeValue("compiled", cty.StringVal(rec.Compiled))

	if err := writeAtomic(f.path, out.Bytes()); err != nil {
		return fmt.Errorf("failed to write cache file %s: %w", f.path, err)
	}
	ctxlog.FromContext(ctx).Debug("Cache file saved.", "cache_file", f.path, "files", len(rec.Files))
	return nil
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
