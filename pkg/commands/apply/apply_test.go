// pkg/commands/apply/apply_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: In-memory filesystem via testutil
// PURPOSE: Test restoring a profile onto the live system

package apply_test

import (
	stderrors "errors"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/konsave/pkg/commands/apply"
	"github.com/arthur-debert/konsave/pkg/commands/save"
	"github.com/arthur-debert/konsave/pkg/errors"
	"github.com/arthur-debert/konsave/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func savedEnv(t *testing.T) *testutil.TestEnvironment {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteManifest(testutil.StandardManifest)
	env.WriteStandardLiveTree()
	_, err := save.SaveProfile(save.SaveProfileOptions{Runtime: env.Runtime, Name: "work"})
	require.NoError(t, err)
	return env
}

func TestApplyProfile_RestoresSavedFiles(t *testing.T) {
	env := savedEnv(t)
	themeDir := filepath.Join(env.DataHome, "plasma", "desktoptheme")

	env.WriteTree(env.ConfigHome, testutil.FileTree{"kwinrc": "edited"})
	require.NoError(t, env.Runtime.FS.RemoveAll(themeDir))

	result, err := apply.ApplyProfile(apply.ApplyProfileOptions{Runtime: env.Runtime, Name: "work"})
	require.NoError(t, err)

	assert.Equal(t, "[Compositing]\nEnabled=true\n", env.ReadFile(filepath.Join(env.ConfigHome, "kwinrc")))
	assert.Equal(t, "<svg/>", env.ReadFile(filepath.Join(themeDir, "breeze-dark", "widgets", "panel.svg")))
	assert.Equal(t, 3, result.Stats.Sections)
	assert.Equal(t, 0, result.Stats.Skipped)
	assert.False(t, result.Reloaded)
}

func TestApplyProfile_KeepsLiveOnlyFiles(t *testing.T) {
	env := savedEnv(t)
	env.WriteTree(env.ConfigHome, testutil.FileTree{"newer-app.conf": "keep me"})
	env.WriteTree(filepath.Join(env.DataHome, "plasma", "desktoptheme", "breeze-dark"),
		testutil.FileTree{"extra.svg": "stale but kept"})

	_, err := apply.ApplyProfile(apply.ApplyProfileOptions{Runtime: env.Runtime, Name: "work"})
	require.NoError(t, err)

	assert.Equal(t, "keep me", env.ReadFile(filepath.Join(env.ConfigHome, "newer-app.conf")))
	assert.Equal(t, "not in manifest", env.ReadFile(filepath.Join(env.ConfigHome, "unrelated")))
	assert.Equal(t, "stale but kept",
		env.ReadFile(filepath.Join(env.DataHome, "plasma", "desktoptheme", "breeze-dark", "extra.svg")))
}

func TestApplyProfile_MissingSectionIsSkipped(t *testing.T) {
	env := savedEnv(t)
	require.NoError(t, env.Runtime.FS.RemoveAll(env.Runtime.Store().SectionPath("work", "plasma")))

	result, err := apply.ApplyProfile(apply.ApplyProfileOptions{Runtime: env.Runtime, Name: "work"})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Stats.Sections)
	assert.Equal(t, 1, result.Stats.Skipped)
}

func TestApplyProfile_UsesProfileManifest(t *testing.T) {
	env := savedEnv(t)
	// a later manifest without the kwin section must not change what the
	// profile restores
	env.WriteManifest("save: {}\nexport: {}\n")
	env.WriteTree(env.ConfigHome, testutil.FileTree{"kwinrc": "edited"})

	_, err := apply.ApplyProfile(apply.ApplyProfileOptions{Runtime: env.Runtime, Name: "work"})
	require.NoError(t, err)
	assert.Equal(t, "[Compositing]\nEnabled=true\n", env.ReadFile(filepath.Join(env.ConfigHome, "kwinrc")))
}

func TestApplyProfile_NotFound(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)

	_, err := apply.ApplyProfile(apply.ApplyProfileOptions{Runtime: env.Runtime, Name: "ghost"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrProfileNotFound))
}

func TestApplyProfile_Reload(t *testing.T) {
	env := savedEnv(t)
	env.Runtime.Config.Apply.ReloadCommand = "reload-desktop"

	var ran []string
	result, err := apply.ApplyProfile(apply.ApplyProfileOptions{
		Runtime: env.Runtime,
		Name:    "work",
		Reload:  true,
		RunCommand: func(command string) error {
			ran = append(ran, command)
			return nil
		},
	})
	require.NoError(t, err)
	assert.True(t, result.Reloaded)
	assert.Equal(t, []string{"reload-desktop"}, ran)
}

func TestApplyProfile_ReloadFailure(t *testing.T) {
	env := savedEnv(t)

	result, err := apply.ApplyProfile(apply.ApplyProfileOptions{
		Runtime:    env.Runtime,
		Name:       "work",
		Reload:     true,
		RunCommand: func(string) error { return stderrors.New("exit status 1") },
	})
	require.Error(t, err)
	require.NotNil(t, result, "files were applied before the reload failed")
	assert.False(t, result.Reloaded)
	assert.Equal(t, 3, result.Stats.Sections)
}
