// pkg/archive/archive_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: In-memory filesystem
// PURPOSE: Test zip packing, unpacking, detection and path-escape rejection

package archive_test

import (
	"bytes"
	"testing"

	"github.com/arthur-debert/konsave/pkg/archive"
	"github.com/arthur-debert/konsave/pkg/errors"
	"github.com/arthur-debert/konsave/pkg/filesystem"
	"github.com/arthur-debert/konsave/pkg/testutil"
	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var stageTree = testutil.FileTree{
	"conf.yaml": "save: {}\nexport: {}\n",
	"save": testutil.FileTree{
		"kwin": testutil.FileTree{"kwinrc": "[Compositing]\n"},
	},
	"export": testutil.FileTree{
		"empty": testutil.FileTree{},
	},
}

func TestPackUnpack_RoundTrip(t *testing.T) {
	for _, level := range []int{-1, 0, 9} {
		fs := filesystem.NewMemory()
		testutil.WriteTree(t, fs, "/stage", stageTree)

		var names []string
		var buf bytes.Buffer
		n, err := archive.Pack(fs, "/stage", &buf, archive.Options{
			Level:  level,
			OnFile: func(name string) { names = append(names, name) },
		})
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.ElementsMatch(t, []string{"conf.yaml", "save/kwin/kwinrc"}, names)

		require.NoError(t, fs.WriteFile("/out/p.knsv", buf.Bytes(), 0644))
		assert.True(t, archive.IsArchive(fs, "/out/p.knsv", ".knsv"))

		n, err = archive.Unpack(fs, "/out/p.knsv", "/unpacked")
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Equal(t, testutil.ReadTree(t, fs, "/stage"), testutil.ReadTree(t, fs, "/unpacked"))
	}
}

func TestIsArchive(t *testing.T) {
	fs := filesystem.NewMemory()
	testutil.WriteTree(t, fs, "/stage", stageTree)

	var buf bytes.Buffer
	_, err := archive.Pack(fs, "/stage", &buf, archive.Options{Level: -1})
	require.NoError(t, err)
	require.NoError(t, fs.WriteFile("/a/p.zip", buf.Bytes(), 0644))
	require.NoError(t, fs.WriteFile("/a/fake.knsv", []byte("not a zip"), 0644))

	assert.False(t, archive.IsArchive(fs, "/a/p.zip", ".knsv"), "wrong extension")
	assert.True(t, archive.IsArchive(fs, "/a/p.zip", ".zip"))
	assert.False(t, archive.IsArchive(fs, "/a/fake.knsv", ".knsv"), "no zip signature")
	assert.False(t, archive.IsArchive(fs, "/a/missing.knsv", ".knsv"))
}

func TestUnpack_RejectsEscapingEntries(t *testing.T) {
	for _, name := range []string{"../evil", "save/../../evil", "/etc/evil"} {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			zw := zip.NewWriter(&buf)
			w, err := zw.Create(name)
			require.NoError(t, err)
			_, err = w.Write([]byte("x"))
			require.NoError(t, err)
			require.NoError(t, zw.Close())

			fs := filesystem.NewMemory()
			require.NoError(t, fs.WriteFile("/in.knsv", buf.Bytes(), 0644))

			_, err = archive.Unpack(fs, "/in.knsv", "/stage/unpacked")
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrArchiveInvalid))
			assert.False(t, testutil.Exists(fs, "/stage/evil"))
			assert.False(t, testutil.Exists(fs, "/evil"))
		})
	}
}

func TestUnpack_InvalidArchive(t *testing.T) {
	fs := filesystem.NewMemory()
	require.NoError(t, fs.WriteFile("/bad.knsv", []byte("garbage"), 0644))

	_, err := archive.Unpack(fs, "/bad.knsv", "/out")
	assert.True(t, errors.IsErrorCode(err, errors.ErrArchiveInvalid))

	_, err = archive.Unpack(fs, "/missing.knsv", "/out")
	assert.True(t, errors.IsErrorCode(err, errors.ErrArchiveInvalid))
}
