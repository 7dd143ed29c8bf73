// cmd/konsave/commands_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Real filesystem in temp directory, cobra
// PURPOSE: Drive the command tree end to end: flags, rendering and first run

package konsave

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/konsave/pkg/core"
	"github.com/arthur-debert/konsave/pkg/errors"
	"github.com/arthur-debert/konsave/pkg/testutil"
	"github.com/arthur-debert/konsave/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCLI(t *testing.T) *testutil.TestEnvironment {
	t.Helper()

	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	t.Setenv("XDG_STATE_HOME", env.StateHome)
	t.Setenv("XDG_CURRENT_DESKTOP", "")

	orig := newRuntime
	newRuntime = func(overrides map[string]interface{}) (*core.Runtime, error) { return env.Runtime, nil }
	t.Cleanup(func() { newRuntime = orig })

	return env
}

// run executes konsave with args and returns stdout and stderr.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	if args == nil {
		args = []string{}
	}

	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(stdin))

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func decode[T any](t *testing.T, out string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(out), &v), out)
	return v
}

func TestFirstRunInstallsManifest(t *testing.T) {
	env := setupCLI(t)
	manifestPath := env.Runtime.Paths.ManifestPath()
	require.False(t, env.Exists(manifestPath))

	_, _, err := run(t, "", "list")
	assert.True(t, errors.IsErrorCode(err, errors.ErrProfileNotFound))
	assert.True(t, env.Exists(manifestPath), "any profile command installs the default manifest")
}

func TestGenConfigSkipsFirstRun(t *testing.T) {
	env := setupCLI(t)

	stdout, _, err := run(t, "", "genconfig")
	require.NoError(t, err)
	assert.Contains(t, stdout, "[export]")
	assert.Contains(t, stdout, ".knsv")
	assert.False(t, env.Exists(env.Runtime.Paths.ManifestPath()))
}

func TestSaveListRemove(t *testing.T) {
	env := setupCLI(t)
	env.WriteManifest(testutil.StandardManifest)
	env.WriteStandardLiveTree()

	stdout, _, err := run(t, "", "--format", "json", "save", "work")
	require.NoError(t, err)
	saved := decode[types.SaveResult](t, stdout)
	assert.Equal(t, "work", saved.Name)
	assert.Equal(t, 5, saved.Stats.Files)

	_, _, err = run(t, "", "save", "work")
	assert.True(t, errors.IsErrorCode(err, errors.ErrProfileExists))

	_, _, err = run(t, "", "save", "-f", "work")
	require.NoError(t, err)

	_, _, err = run(t, "", "save", "home")
	require.NoError(t, err)

	stdout, _, err = run(t, "", "--format", "text", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Konsave profiles:")
	assert.Contains(t, stdout, "0   home")
	assert.Contains(t, stdout, "1   work")

	stdout, _, err = run(t, "", "--format", "json", "rm", "home")
	require.NoError(t, err)
	removed := decode[types.RemoveResult](t, stdout)
	assert.Equal(t, []string{"home"}, removed.Removed)

	stdout, _, err = run(t, "", "--format", "json", "list")
	require.NoError(t, err)
	listed := decode[types.ListProfilesResult](t, stdout)
	require.Len(t, listed.Profiles, 1)
	assert.Equal(t, "work", listed.Profiles[0].Name)
}

func TestApplyRestoresFiles(t *testing.T) {
	env := setupCLI(t)
	env.WriteManifest(testutil.StandardManifest)
	env.WriteStandardLiveTree()

	_, _, err := run(t, "", "save", "work")
	require.NoError(t, err)

	kwinrc := filepath.Join(env.ConfigHome, "kwinrc")
	env.WriteTree(env.ConfigHome, testutil.FileTree{"kwinrc": "changed"})

	_, _, err = run(t, "", "apply", "work")
	require.NoError(t, err)
	assert.Equal(t, "[Compositing]\nEnabled=true\n", env.ReadFile(kwinrc))

	_, _, err = run(t, "", "apply", "nope")
	assert.True(t, errors.IsErrorCode(err, errors.ErrProfileNotFound))
}

func TestExportImportRoundTrip(t *testing.T) {
	env := setupCLI(t)
	env.WriteManifest(testutil.StandardManifest)
	env.WriteStandardLiveTree()

	_, _, err := run(t, "", "save", "work")
	require.NoError(t, err)

	target := filepath.Join(env.HomeDir, "backups", "laptop.tar.gz")
	stdout, _, err := run(t, "", "--format", "json", "export", "work", "-o", target)
	require.NoError(t, err)
	exported := decode[types.ExportResult](t, stdout)
	assert.Equal(t, filepath.Join(env.HomeDir, "backups", "laptop.knsv"), exported.ArchivePath)

	stdout, _, err = run(t, "", "--format", "json", "import", exported.ArchivePath)
	require.NoError(t, err)
	imported := decode[types.ImportResult](t, stdout)
	assert.Equal(t, "laptop", imported.Name)

	_, _, err = run(t, "", "import", exported.ArchivePath)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrProfileExists))

	_, _, err = run(t, "", "import", "-n", "copy", exported.ArchivePath)
	require.NoError(t, err)
	assert.Equal(t,
		env.ReadTree(env.Runtime.Paths.ProfilePath("work")),
		env.ReadTree(env.Runtime.Paths.ProfilePath("copy")))
}

func TestExportToStdout(t *testing.T) {
	env := setupCLI(t)
	env.WriteManifest(testutil.StandardManifest)
	env.WriteStandardLiveTree()

	_, _, err := run(t, "", "save", "work")
	require.NoError(t, err)

	stdout, stderr, err := run(t, "", "--format", "text", "export", "work", "-o", "-")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "PK"), "stdout carries the zip stream only")
	assert.Contains(t, stderr, `Exported profile "work"`)
}

func TestWipe(t *testing.T) {
	tests := []struct {
		name      string
		answer    string
		remaining int
	}{
		{"confirmed", "WIPE\n", 0},
		{"declined", "no\n", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupCLI(t)
			env.WriteManifest(testutil.StandardManifest)
			env.WriteStandardLiveTree()

			for _, name := range []string{"home", "work"} {
				_, _, err := run(t, "", "save", name)
				require.NoError(t, err)
			}

			_, stderr, err := run(t, tt.answer, "wipe")
			require.NoError(t, err)
			assert.Contains(t, stderr, "WIPE")

			profiles, err := env.Runtime.Store().List()
			require.NoError(t, err)
			assert.Len(t, profiles, tt.remaining)
		})
	}
}

func TestConfigCheckAndResetConfig(t *testing.T) {
	env := setupCLI(t)
	env.WriteManifest(testutil.StandardManifest)
	env.WriteStandardLiveTree()

	stdout, _, err := run(t, "", "--format", "json", "config-check")
	require.NoError(t, err)
	checked := decode[types.ConfigCheckResult](t, stdout)
	require.Len(t, checked.Sections, 1)
	assert.Equal(t, "kwin", checked.Sections[0].Name)

	stdout, _, err = run(t, "", "--format", "json", "reset-config")
	require.NoError(t, err)
	kept := decode[types.ResetConfigResult](t, stdout)
	assert.False(t, kept.Installed)
	assert.Equal(t, testutil.StandardManifest, env.ReadFile(env.Runtime.Paths.ManifestPath()))

	stdout, _, err = run(t, "", "--format", "json", "reset-config", "--force")
	require.NoError(t, err)
	replaced := decode[types.ResetConfigResult](t, stdout)
	assert.True(t, replaced.Installed)
	assert.NotEqual(t, testutil.StandardManifest, env.ReadFile(env.Runtime.Paths.ManifestPath()))
}

func TestUsageErrors(t *testing.T) {
	setupCLI(t)

	tests := []struct {
		name string
		args []string
	}{
		{"no_command", nil},
		{"missing_name", []string{"save"}},
		{"extra_argument", []string{"apply", "a", "b"}},
		{"bad_format", []string{"--format", "xml", "list"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, "", tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestHelpTopics(t *testing.T) {
	setupCLI(t)

	stdout, _, err := run(t, "", "help", "topics")
	require.NoError(t, err)
	for _, topic := range []string{"archive", "manifest", "tokens"} {
		assert.Contains(t, stdout, topic)
	}

	stdout, _, err = run(t, "", "help", "tokens")
	require.NoError(t, err)
	assert.Contains(t, stdout, "ENDS_WITH")
}

func TestVersion(t *testing.T) {
	setupCLI(t)

	stdout, _, err := run(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "konsave "))
}
