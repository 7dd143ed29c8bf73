// pkg/paths/paths_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Environment variables only
// PURPOSE: Test location derivation, overrides and name validation

package paths

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/konsave/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ExplicitOptions(t *testing.T) {
	t.Setenv(EnvKonsaveDir, "")
	t.Setenv(EnvProfilesDir, "")

	p, err := New(Options{
		Home:       "/home/u",
		ConfigHome: "/home/u/.config",
		DataHome:   "/home/u/.local/share",
		BinHome:    "/home/u/.local/bin",
		StateHome:  "/home/u/.local/state",
	})
	require.NoError(t, err)

	assert.Equal(t, "/home/u/.config/konsave", p.AppDir())
	assert.Equal(t, "/home/u/.config/konsave/profiles", p.ProfilesDir())
	assert.Equal(t, "/home/u/.config/konsave/profiles/work", p.ProfilePath("work"))
	assert.Equal(t, "/home/u/.config/konsave/conf.yaml", p.ManifestPath())
	assert.Equal(t, "/home/u/.config/konsave/config.toml", p.SettingsPath())
	assert.Equal(t, "/home/u/.config/konsave/.lock", p.LockPath())
	assert.Equal(t, "/home/u/.local/state/konsave/konsave.log", p.LogFilePath())

	assert.Equal(t, map[string]string{
		"HOME":       "/home/u",
		"CONFIG_DIR": "/home/u/.config",
		"SHARE_DIR":  "/home/u/.local/share",
		"BIN_DIR":    "/home/u/.local/bin",
	}, p.Keywords())
}

func TestNew_EnvironmentOverrides(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv(EnvKonsaveDir, filepath.Join(tmp, "app"))
	t.Setenv(EnvProfilesDir, filepath.Join(tmp, "store"))

	p, err := New(Options{Home: tmp})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(tmp, "app"), p.AppDir())
	assert.Equal(t, filepath.Join(tmp, "store"), p.ProfilesDir())
	assert.Equal(t, filepath.Join(tmp, "app", "conf.yaml"), p.ManifestPath())
}

func TestNew_XDGFromEnvironment(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "cfg"))
	t.Setenv(EnvKonsaveDir, "")
	t.Setenv(EnvProfilesDir, "")

	p, err := New(Options{})
	require.NoError(t, err)

	assert.Equal(t, tmp, p.HomeDir())
	assert.Equal(t, filepath.Join(tmp, "cfg"), p.ConfigHome())
	assert.Equal(t, filepath.Join(tmp, "cfg", "konsave", "profiles"), p.ProfilesDir())
}

func TestValidateProfileName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "work", false},
		{"with dash and dot", "kde-2024.dark", false},
		{"empty", "", true},
		{"separator", "a/b", true},
		{"backslash", `a\b`, true},
		{"dot", ".", true},
		{"dotdot", "..", true},
		{"colon", "a:b", true},
		{"control", "a\tb", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProfileName(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEntry(t *testing.T) {
	tests := []struct {
		entry   string
		wantErr bool
	}{
		{"kwinrc", false},
		{"plasma-org.kde.plasma.desktop-appletsrc", false},
		{"gtk-3.0/settings.ini", false},
		{"/etc/passwd", true},
		{"../outside", true},
		{"a/../../outside", true},
		{".", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.entry, func(t *testing.T) {
			err := ValidateEntry(tt.entry)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSamePathAndContainsPath(t *testing.T) {
	assert.True(t, SamePath("/a/b/", "/a/b"))
	assert.True(t, SamePath("/a/./b", "/a/b"))
	assert.False(t, SamePath("/a/b", "/a/c"))

	assert.True(t, ContainsPath("/a", "/a/b/c"))
	assert.False(t, ContainsPath("/a/b", "/a/c"))
	assert.False(t, ContainsPath("/a/b", "/a/bc"))
}
