// pkg/commands/save/lock_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Real filesystem in a temp dir (flock)
// PURPOSE: Test that a held store lock blocks mutating commands

package save_test

import (
	"testing"

	"github.com/arthur-debert/konsave/pkg/commands/save"
	"github.com/arthur-debert/konsave/pkg/errors"
	"github.com/arthur-debert/konsave/pkg/lock"
	"github.com/arthur-debert/konsave/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveProfile_Locked(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.WriteManifest(testutil.StandardManifest)
	env.WriteStandardLiveTree()

	held, err := lock.Acquire(env.Runtime.Paths.LockPath())
	require.NoError(t, err)

	_, err = save.SaveProfile(save.SaveProfileOptions{Runtime: env.Runtime, Name: "work"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrLocked))

	require.NoError(t, held.Release())
	result, err := save.SaveProfile(save.SaveProfileOptions{Runtime: env.Runtime, Name: "work"})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Stats.Sections)
}
