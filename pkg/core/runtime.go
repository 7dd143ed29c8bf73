package core

import (
	"io"
	"os"
	"time"

	"github.com/arthur-debert/konsave/pkg/config"
	"github.com/arthur-debert/konsave/pkg/filesystem"
	"github.com/arthur-debert/konsave/pkg/lock"
	"github.com/arthur-debert/konsave/pkg/logging"
	"github.com/arthur-debert/konsave/pkg/manifest"
	"github.com/arthur-debert/konsave/pkg/mergecopy"
	"github.com/arthur-debert/konsave/pkg/paths"
	"github.com/arthur-debert/konsave/pkg/store"
	"github.com/arthur-debert/konsave/pkg/types"
)

// Runtime is the environment of one konsave invocation.
type Runtime struct {
	FS     types.FS
	Paths  paths.Paths
	Config *config.Config

	// Stdout receives archives streamed by export.
	Stdout io.Writer
	// Now is the clock used for export collision suffixes.
	Now func() time.Time
}

// NewRuntime builds the production runtime: the real filesystem, XDG
// locations and settings loaded from the user settings file and the
// environment. overrides are dotted settings keys from the command line
// and win over every other layer; nil is fine.
func NewRuntime(overrides map[string]interface{}) (*Runtime, error) {
	base, err := paths.New(paths.Options{})
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadWithOverrides(base.SettingsPath(), overrides)
	if err != nil {
		return nil, err
	}

	p, err := paths.New(paths.Options{
		ProfilesDir: cfg.Store.ProfilesDir,
		Manifest:    cfg.Store.Manifest,
	})
	if err != nil {
		return nil, err
	}

	logger := logging.GetLogger("core")
	logger.Debug().
		Str("profiles", p.ProfilesDir()).
		Str("manifest", p.ManifestPath()).
		Msg("Runtime ready")

	return &Runtime{
		FS:     filesystem.NewOS(),
		Paths:  p,
		Config: cfg,
		Stdout: os.Stdout,
		Now:    time.Now,
	}, nil
}

// Store returns the profile store.
func (rt *Runtime) Store() *store.Store {
	return store.New(rt.FS, rt.Paths)
}

// Resolver returns a token resolver bound to this runtime's keywords.
func (rt *Runtime) Resolver() *manifest.Resolver {
	return manifest.NewResolver(rt.FS, rt.Paths.Keywords())
}

// ParseManifest parses and resolves the manifest at path.
func (rt *Runtime) ParseManifest(path string) (*manifest.Manifest, error) {
	return manifest.Parse(rt.FS, path, rt.Resolver())
}

// Copier returns a merge-copier honouring copy.max_depth. onFile may be nil.
func (rt *Runtime) Copier(onFile func(src, dst string)) *mergecopy.Copier {
	return mergecopy.New(rt.FS, mergecopy.Options{
		MaxDepth: rt.Config.Copy.MaxDepth,
		OnFile:   onFile,
	})
}

// Lock takes the store lock when store.lock is enabled.
func (rt *Runtime) Lock() (lock.Lock, error) {
	if !rt.Config.Store.Lock {
		return lock.None(), nil
	}
	return lock.Acquire(rt.Paths.LockPath())
}

// Clock returns Now, defaulting to time.Now.
func (rt *Runtime) Clock() time.Time {
	if rt.Now == nil {
		return time.Now()
	}
	return rt.Now()
}
