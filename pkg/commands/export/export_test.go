// pkg/commands/export/export_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: In-memory filesystem via testutil
// PURPOSE: Test packing profiles into archives

package export_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/konsave/pkg/archive"
	"github.com/arthur-debert/konsave/pkg/commands/export"
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

func exportWork(t *testing.T, env *testutil.TestEnvironment, force bool, output string) string {
	t.Helper()
	result, err := export.ExportProfile(export.ExportProfileOptions{
		Runtime: env.Runtime,
		Name:    "work",
		Force:   force,
		Output:  output,
		WorkDir: env.HomeDir,
	})
	require.NoError(t, err)
	return result.ArchivePath
}

func TestExportProfile_Layout(t *testing.T) {
	env := savedEnv(t)

	result, err := export.ExportProfile(export.ExportProfileOptions{
		Runtime: env.Runtime,
		Name:    "work",
		WorkDir: env.HomeDir,
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(env.HomeDir, "work.knsv"), result.ArchivePath)
	assert.True(t, archive.IsArchive(env.Runtime.FS, result.ArchivePath, ".knsv"))
	assert.False(t, env.Exists(result.ArchivePath+".part"))

	out := "/virtual/unpacked"
	_, err = archive.Unpack(env.Runtime.FS, result.ArchivePath, out)
	require.NoError(t, err)
	tree := env.ReadTree(out)

	assert.Equal(t, testutil.StandardManifest, tree["conf.yaml"])
	assert.Equal(t, "[Compositing]\nEnabled=true\n", tree["save/kwin/kwinrc"])
	assert.Contains(t, tree, "save/plasma/desktoptheme/breeze-dark/metadata.json")
	assert.Contains(t, tree, "save/empty/")
	assert.Equal(t, "#!/bin/sh\necho switch\n", tree["export/scripts/theme-switch"])
	assert.Contains(t, tree, "export/missing/")
	assert.NotContains(t, tree, "save/conf.yaml")
}

func TestExportProfile_ReadsExportSectionsLive(t *testing.T) {
	env := savedEnv(t)
	env.WriteTree(env.BinHome, testutil.FileTree{"theme-switch": "newer"})

	path := exportWork(t, env, false, "")
	_, err := archive.Unpack(env.Runtime.FS, path, "/virtual/unpacked")
	require.NoError(t, err)
	assert.Equal(t, "newer", env.ReadFile("/virtual/unpacked/export/scripts/theme-switch"))
}

func TestExportProfile_AvoidsCollisions(t *testing.T) {
	env := savedEnv(t)

	first := exportWork(t, env, false, "")
	second := exportWork(t, env, false, "")
	assert.NotEqual(t, first, second)
	assert.Equal(t, filepath.Join(env.HomeDir, "work_2024-05-17T10-30-00.000000.knsv"), second)
	assert.True(t, env.Exists(first))
	assert.True(t, env.Exists(second))

	forced := exportWork(t, env, true, "")
	assert.Equal(t, first, forced)
}

func TestExportProfile_OutputPath(t *testing.T) {
	env := savedEnv(t)

	got := exportWork(t, env, false, "backups/laptop.tar.gz")
	assert.Equal(t, filepath.Join(env.HomeDir, "backups", "laptop.knsv"), got)
	assert.True(t, env.Exists(got))
}

func TestExportProfile_Stdout(t *testing.T) {
	for _, target := range []string{"-", "/dev/stdout"} {
		t.Run(target, func(t *testing.T) {
			env := savedEnv(t)

			got := exportWork(t, env, false, target)
			assert.Equal(t, "-", got)
			assert.True(t, bytes.HasPrefix(env.Stdout.Bytes(), []byte("PK")), "zip stream on stdout")
			assert.False(t, env.Exists(filepath.Join(env.HomeDir, "work.knsv")))
		})
	}
}

func TestExportProfile_NotFound(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)

	_, err := export.ExportProfile(export.ExportProfileOptions{Runtime: env.Runtime, Name: "ghost", WorkDir: env.HomeDir})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrProfileNotFound))
}
