// pkg/commands/genconfig/genconfig_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: In-memory filesystem via testutil
// PURPOSE: Test printing and writing the settings file

package genconfig_test

import (
	"testing"

	"github.com/arthur-debert/konsave/pkg/commands/genconfig"
	"github.com/arthur-debert/konsave/pkg/config"
	"github.com/arthur-debert/konsave/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenConfig_Print(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.Runtime.Config.Export.Extension = ".kbak"

	result, err := genconfig.GenConfig(genconfig.GenConfigOptions{Runtime: env.Runtime})
	require.NoError(t, err)
	assert.Contains(t, result.ConfigContent, "[export]")
	assert.Contains(t, result.ConfigContent, ".kbak", "prints the effective settings")
	assert.Empty(t, result.FilesWritten)
	assert.False(t, env.Exists(env.Runtime.Paths.SettingsPath()))
}

func TestGenConfig_Write(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	target := env.Runtime.Paths.SettingsPath()

	result, err := genconfig.GenConfig(genconfig.GenConfigOptions{Runtime: env.Runtime, Write: true})
	require.NoError(t, err)
	assert.Equal(t, []string{target}, result.FilesWritten)
	assert.Equal(t, config.GenerateConfigContent(), env.ReadFile(target))

	env.WriteTree(env.Runtime.Paths.AppDir(), testutil.FileTree{"config.toml": "# mine\n"})
	result, err = genconfig.GenConfig(genconfig.GenConfigOptions{Runtime: env.Runtime, Write: true})
	require.NoError(t, err)
	assert.Empty(t, result.FilesWritten)
	assert.Equal(t, "# mine\n", env.ReadFile(target), "existing settings are kept")
}
