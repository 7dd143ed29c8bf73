// pkg/testutil/environment.go
// DEPENDENCIES: afero (memory environment), real temp dirs (isolated)
// PURPOSE: Orchestrate test environments with a ready runtime

package testutil

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/konsave/pkg/config"
	"github.com/arthur-debert/konsave/pkg/core"
	"github.com/arthur-debert/konsave/pkg/filesystem"
	"github.com/arthur-debert/konsave/pkg/paths"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// FixedTime is the clock of every test runtime.
var FixedTime = time.Date(2024, 5, 17, 10, 30, 0, 0, time.UTC)

// TestEnvironment provides a complete test environment with all dependencies
type TestEnvironment struct {
	// Fake home and XDG roots
	HomeDir    string
	ConfigHome string
	DataHome   string
	BinHome    string
	StateHome  string

	Runtime *core.Runtime
	// Stdout captures archives streamed by export
	Stdout *bytes.Buffer

	Type EnvType
	t    *testing.T
}

// NewTestEnvironment creates a new test environment
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	// Keep the caller's environment out of path derivation
	t.Setenv(paths.EnvKonsaveDir, "")
	t.Setenv(paths.EnvProfilesDir, "")

	env := &TestEnvironment{t: t, Type: envType, Stdout: &bytes.Buffer{}}

	root := "/virtual"
	fsys := filesystem.NewMemory()
	if envType == EnvIsolated {
		root = t.TempDir()
		fsys = filesystem.NewOS()
	}

	env.HomeDir = filepath.Join(root, "home")
	env.ConfigHome = filepath.Join(env.HomeDir, ".config")
	env.DataHome = filepath.Join(env.HomeDir, ".local", "share")
	env.BinHome = filepath.Join(env.HomeDir, ".local", "bin")
	env.StateHome = filepath.Join(env.HomeDir, ".local", "state")

	for _, dir := range []string{env.ConfigHome, env.DataHome, env.BinHome} {
		if err := fsys.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create %s: %v", dir, err)
		}
	}

	p, err := paths.New(paths.Options{
		Home:       env.HomeDir,
		ConfigHome: env.ConfigHome,
		DataHome:   env.DataHome,
		BinHome:    env.BinHome,
		StateHome:  env.StateHome,
	})
	if err != nil {
		t.Fatalf("Failed to create paths: %v", err)
	}

	cfg := config.Default()
	cfg.UI.Progress = false
	// flock needs real file descriptors
	cfg.Store.Lock = envType == EnvIsolated

	env.Runtime = &core.Runtime{
		FS:     fsys,
		Paths:  p,
		Config: cfg,
		Stdout: env.Stdout,
		Now:    func() time.Time { return FixedTime },
	}
	return env
}

// WriteTree creates tree below base on the environment's filesystem.
func (env *TestEnvironment) WriteTree(base string, tree FileTree) {
	env.t.Helper()
	WriteTree(env.t, env.Runtime.FS, base, tree)
}

// ReadTree reads the tree below base.
func (env *TestEnvironment) ReadTree(base string) map[string]string {
	env.t.Helper()
	return ReadTree(env.t, env.Runtime.FS, base)
}

// WriteManifest installs content as the global manifest.
func (env *TestEnvironment) WriteManifest(content string) {
	env.t.Helper()
	path := env.Runtime.Paths.ManifestPath()
	if err := env.Runtime.FS.MkdirAll(filepath.Dir(path), 0755); err != nil {
		env.t.Fatalf("Failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := env.Runtime.FS.WriteFile(path, []byte(content), 0644); err != nil {
		env.t.Fatalf("Failed to write manifest: %v", err)
	}
}

// ReadFile returns the content of name, failing the test if it is missing.
func (env *TestEnvironment) ReadFile(name string) string {
	env.t.Helper()
	data, err := env.Runtime.FS.ReadFile(name)
	if err != nil {
		env.t.Fatalf("Failed to read %s: %v", name, err)
	}
	return string(data)
}

// Exists reports whether name exists.
func (env *TestEnvironment) Exists(name string) bool {
	return Exists(env.Runtime.FS, name)
}

// StandardManifest is a small manifest covering both groups, keyword
// tokens and null entries.
const StandardManifest = `save:
  kwin:
    location: "$CONFIG_DIR"
    entries:
      - kwinrc
      - kdeglobals
  plasma:
    location: "$SHARE_DIR/plasma"
    entries:
      - desktoptheme
  empty:
    location: "$HOME"
    entries: null
export:
  scripts:
    location: "$BIN_DIR"
    entries:
      - theme-switch
  missing:
    location: "$SHARE_DIR/not-installed"
    entries:
      - anything
`

// WriteStandardLiveTree creates the live files StandardManifest refers to.
func (env *TestEnvironment) WriteStandardLiveTree() {
	env.t.Helper()
	env.WriteTree(env.ConfigHome, FileTree{
		"kwinrc":     "[Compositing]\nEnabled=true\n",
		"kdeglobals": "[General]\nColorScheme=BreezeDark\n",
		"unrelated":  "not in manifest",
	})
	env.WriteTree(filepath.Join(env.DataHome, "plasma"), FileTree{
		"desktoptheme": FileTree{
			"breeze-dark": FileTree{
				"metadata.json": `{"name":"Breeze Dark"}`,
				"widgets": FileTree{
					"panel.svg": "<svg/>",
				},
			},
		},
	})
	env.WriteTree(env.BinHome, FileTree{
		"theme-switch": "#!/bin/sh\necho switch\n",
	})
}
