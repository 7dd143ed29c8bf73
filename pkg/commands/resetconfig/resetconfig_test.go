// pkg/commands/resetconfig/resetconfig_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: In-memory filesystem via testutil
// PURPOSE: Test installing the default manifest

package resetconfig_test

import (
	"testing"

	"github.com/arthur-debert/konsave/pkg/commands/resetconfig"
	"github.com/arthur-debert/konsave/pkg/defaults"
	"github.com/arthur-debert/konsave/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func desktop(name string) func(string) string {
	return func(key string) string {
		if key == "XDG_CURRENT_DESKTOP" {
			return name
		}
		return ""
	}
}

func embedded(t *testing.T, variant string) string {
	data, err := defaults.Manifest(variant)
	require.NoError(t, err)
	return string(data)
}

func TestResetConfig_FirstRun(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)

	result, err := resetconfig.ResetConfig(resetconfig.ResetConfigOptions{
		Runtime: env.Runtime,
		Getenv:  desktop("GNOME"),
	})
	require.NoError(t, err)
	assert.True(t, result.Installed)
	assert.Equal(t, defaults.VariantOther, result.Variant)
	assert.Equal(t, embedded(t, defaults.VariantOther), env.ReadFile(result.ManifestPath))

	_, err = env.Runtime.ParseManifest(result.ManifestPath)
	assert.NoError(t, err, "shipped manifest parses")
}

func TestResetConfig_KeepsExisting(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteManifest("save: {}\nexport: {}\n")

	result, err := resetconfig.ResetConfig(resetconfig.ResetConfigOptions{
		Runtime: env.Runtime,
		Getenv:  desktop("KDE"),
	})
	require.NoError(t, err)
	assert.False(t, result.Installed)
	assert.Equal(t, "save: {}\nexport: {}\n", env.ReadFile(env.Runtime.Paths.ManifestPath()))
}

func TestResetConfig_Force(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteManifest("save: {}\nexport: {}\n")

	result, err := resetconfig.ResetConfig(resetconfig.ResetConfigOptions{
		Runtime: env.Runtime,
		Force:   true,
		Getenv:  desktop("KDE"),
	})
	require.NoError(t, err)
	assert.True(t, result.Installed)
	assert.Equal(t, defaults.VariantKDE, result.Variant)
	assert.Equal(t, embedded(t, defaults.VariantKDE), env.ReadFile(env.Runtime.Paths.ManifestPath()))
}
