package store

import (
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/arthur-debert/konsave/pkg/errors"
	"github.com/arthur-debert/konsave/pkg/logging"
	"github.com/arthur-debert/konsave/pkg/paths"
	"github.com/arthur-debert/konsave/pkg/types"
)

// Store is the profile store on a filesystem.
type Store struct {
	fs    types.FS
	paths paths.Paths
}

// New creates a Store rooted at p.ProfilesDir().
func New(fs types.FS, p paths.Paths) *Store {
	return &Store{fs: fs, paths: p}
}

// Root returns the profile store directory.
func (s *Store) Root() string {
	return s.paths.ProfilesDir()
}

// Path returns the directory of profile name.
func (s *Store) Path(name string) string {
	return s.paths.ProfilePath(name)
}

// ManifestPath returns the manifest stored inside profile name.
func (s *Store) ManifestPath(name string) string {
	return filepath.Join(s.Path(name), paths.ManifestFileName)
}

// SectionPath returns the folder holding one save section of a profile.
func (s *Store) SectionPath(name, section string) string {
	return filepath.Join(s.Path(name), section)
}

// Exists reports whether profile name is saved.
func (s *Store) Exists(name string) (bool, error) {
	info, err := s.fs.Stat(s.Path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, errors.ErrFileAccess, "cannot access profile %s", name)
	}
	return info.IsDir(), nil
}

// Require returns ErrProfileNotFound unless profile name is saved.
func (s *Store) Require(name string) error {
	if err := paths.ValidateProfileName(name); err != nil {
		return err
	}
	ok, err := s.Exists(name)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Newf(errors.ErrProfileNotFound, "profile %q not found", name).
			WithDetail("profile", name)
	}
	return nil
}

// Create makes the directory for a new profile. An existing profile is
// rejected with ErrProfileExists unless force is set, in which case it is
// reused and saved over. It reports whether the profile already existed.
func (s *Store) Create(name string, force bool) (bool, error) {
	if err := paths.ValidateProfileName(name); err != nil {
		return false, err
	}
	exists, err := s.Exists(name)
	if err != nil {
		return false, err
	}
	if exists && !force {
		return true, errors.Newf(errors.ErrProfileExists,
			"profile %q already exists, use --force to overwrite it", name).
			WithDetail("profile", name)
	}
	if err := s.fs.MkdirAll(s.Path(name), 0755); err != nil {
		return exists, errors.Wrapf(err, errors.ErrDirCreate, "cannot create profile directory %s", s.Path(name))
	}
	return exists, nil
}

// List returns the saved profiles sorted by name. A missing store is an
// empty list.
func (s *Store) List() ([]types.ProfileInfo, error) {
	entries, err := s.fs.ReadDir(s.Root())
	if err != nil {
		if os.IsNotExist(err) {
			return []types.ProfileInfo{}, nil
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot list profiles in %s", s.Root())
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	profiles := make([]types.ProfileInfo, 0, len(names))
	for i, name := range names {
		profiles = append(profiles, types.ProfileInfo{
			ID:      i,
			Name:    name,
			Path:    s.Path(name),
			SavedAt: s.savedAt(name),
		})
	}
	return profiles, nil
}

// savedAt is the modification time of the profile's manifest, or of the
// profile directory when the manifest is missing.
func (s *Store) savedAt(name string) time.Time {
	if info, err := s.fs.Stat(s.ManifestPath(name)); err == nil {
		return info.ModTime()
	}
	if info, err := s.fs.Stat(s.Path(name)); err == nil {
		return info.ModTime()
	}
	return time.Time{}
}

// Remove deletes profile name.
func (s *Store) Remove(name string) error {
	if err := s.Require(name); err != nil {
		return err
	}
	if err := s.fs.RemoveAll(s.Path(name)); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot remove profile %s", name)
	}
	logger := logging.GetLogger("store")
	logger.Info().Str("profile", name).Msg("Profile removed")
	return nil
}

// Wipe deletes the whole store and returns the names it held.
func (s *Store) Wipe() ([]string, error) {
	profiles, err := s.List()
	if err != nil {
		return nil, err
	}
	if err := s.fs.RemoveAll(s.Root()); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileWrite, "cannot remove profile store %s", s.Root())
	}
	names := make([]string, len(profiles))
	for i, p := range profiles {
		names[i] = p.Name
	}
	logger := logging.GetLogger("store")
	logger.Info().Strs("profiles", names).Msg("Profile store wiped")
	return names, nil
}
