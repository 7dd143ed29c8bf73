package testutil

import (
	"path"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/konsave/pkg/types"
)

// FileTree describes a directory: string values are file contents,
// FileTree values are subdirectories.
type FileTree map[string]interface{}

// WriteTree creates tree below base.
func WriteTree(t *testing.T, fs types.FS, base string, tree FileTree) {
	t.Helper()

	if err := fs.MkdirAll(base, 0755); err != nil {
		t.Fatalf("Failed to create directory %s: %v", base, err)
	}

	for name, content := range tree {
		full := filepath.Join(base, name)
		switch v := content.(type) {
		case string:
			if err := fs.MkdirAll(filepath.Dir(full), 0755); err != nil {
				t.Fatalf("Failed to create directory %s: %v", filepath.Dir(full), err)
			}
			if err := fs.WriteFile(full, []byte(v), 0644); err != nil {
				t.Fatalf("Failed to write file %s: %v", full, err)
			}
		case FileTree:
			WriteTree(t, fs, full, v)
		default:
			t.Fatalf("Invalid file tree content type for %s: %T", name, content)
		}
	}
}

// ReadTree returns every file below base keyed by slash-separated
// relative path. Directories appear with a trailing slash and empty
// content, so empty directories are visible too.
func ReadTree(t *testing.T, fs types.FS, base string) map[string]string {
	t.Helper()

	out := map[string]string{}
	readTree(t, fs, base, "", out)
	return out
}

func readTree(t *testing.T, fs types.FS, dir, rel string, out map[string]string) {
	entries, err := fs.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to list %s: %v", dir, err)
	}
	for _, e := range entries {
		full := filepath.Join(dir, e.Name())
		name := path.Join(rel, e.Name())
		if e.IsDir() {
			out[name+"/"] = ""
			readTree(t, fs, full, name, out)
			continue
		}
		data, err := fs.ReadFile(full)
		if err != nil {
			t.Fatalf("Failed to read %s: %v", full, err)
		}
		out[name] = string(data)
	}
}

// Exists reports whether name exists on fs.
func Exists(fs types.FS, name string) bool {
	_, err := fs.Stat(name)
	return err == nil
}
