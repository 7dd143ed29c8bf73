// pkg/manifest/resolver_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: In-memory filesystem
// PURPOSE: Test keyword and function token expansion

package manifest

import (
	"os"
	"testing"

	"github.com/arthur-debert/konsave/pkg/filesystem"
	"github.com/arthur-debert/konsave/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKeywords = map[string]string{
	"HOME":       "/home/u",
	"CONFIG_DIR": "/home/u/.config",
	"SHARE_DIR":  "/home/u/.local/share",
	"BIN_DIR":    "/home/u/.local/bin",
}

func newTestFS(t *testing.T, dirs ...string) types.FS {
	t.Helper()
	fsys := filesystem.NewMemory()
	for _, d := range dirs {
		require.NoError(t, fsys.MkdirAll(d, 0755))
	}
	return fsys
}

func TestExpandKeywords(t *testing.T) {
	r := NewResolver(newTestFS(t), testKeywords)

	tests := []struct {
		raw  string
		want string
	}{
		{"$HOME/.config", "/home/u/.config"},
		{"$CONFIG_DIR", "/home/u/.config"},
		{"$SHARE_DIR/plasma", "/home/u/.local/share/plasma"},
		{"$BIN_DIR", "/home/u/.local/bin"},
		{"$HOME/a/$HOME/b", "/home/u/a//home/u/b"},
		{"/etc/xdg", "/etc/xdg"},
		{"$UNKNOWN/x", "$UNKNOWN/x"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, r.ExpandKeywords(tt.raw))
		})
	}
}

func TestExpandKeywords_NoRecursiveExpansion(t *testing.T) {
	r := NewResolver(newTestFS(t), map[string]string{"HOME": "/x/$BIN_DIR", "BIN_DIR": "/bin"})

	got := r.ExpandKeywords("$HOME")
	assert.Equal(t, "/x/$BIN_DIR", got)
}

func TestExpandFunctions(t *testing.T) {
	fsys := newTestFS(t,
		"/home/u/.mozilla/firefox/abc123.default-release",
		"/home/u/.mozilla/firefox/Crash Reports",
		"/home/u/.local/share/themes/Breeze-Dark",
	)
	r := NewResolver(fsys, testKeywords)

	tests := []struct {
		name           string
		raw            string
		want           string
		wantUnresolved []string
	}{
		{
			name: "ends with",
			raw:  "/home/u/.mozilla/firefox/${ENDS_WITH='.default-release'}",
			want: "/home/u/.mozilla/firefox/abc123.default-release",
		},
		{
			name: "begins with double quotes",
			raw:  `/home/u/.local/share/themes/${BEGINS_WITH="Breeze"}/gtk-3.0`,
			want: "/home/u/.local/share/themes/Breeze-Dark/gtk-3.0",
		},
		{
			name:           "no match stays unresolved",
			raw:            "/home/u/.mozilla/firefox/${ENDS_WITH='.nope'}",
			want:           "/home/u/.mozilla/firefox/${ENDS_WITH='.nope'}",
			wantUnresolved: []string{"${ENDS_WITH='.nope'}"},
		},
		{
			name:           "missing prefix directory stays unresolved",
			raw:            "/nowhere/${BEGINS_WITH='a'}",
			want:           "/nowhere/${BEGINS_WITH='a'}",
			wantUnresolved: []string{"${BEGINS_WITH='a'}"},
		},
		{
			name: "unknown function is untouched",
			raw:  "/home/u/${CONTAINS='x'}",
			want: "/home/u/${CONTAINS='x'}",
		},
		{
			name: "two tokens resolve left to right",
			raw:  "/home/u/${BEGINS_WITH='.moz'}/firefox/${ENDS_WITH='release'}",
			want: "/home/u/.mozilla/firefox/abc123.default-release",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, unresolved := r.ExpandFunctions(tt.raw)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantUnresolved, unresolved)
		})
	}
}

func TestResolve_KeywordsBeforeFunctions(t *testing.T) {
	fsys := newTestFS(t, "/home/u/.mozilla/firefox/profile123.default")
	r := NewResolver(fsys, testKeywords)

	got, unresolved := r.Resolve("$HOME/.mozilla/firefox/${ENDS_WITH='.default'}/")
	assert.Empty(t, unresolved)
	assert.Equal(t, "/home/u/.mozilla/firefox/profile123.default/", got)
}

func TestExpandFunctions_EmptyPrefixListsWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	fsys := filesystem.NewOS()
	require.NoError(t, fsys.MkdirAll("profile123.default", 0755))

	r := NewResolver(fsys, testKeywords)
	got, unresolved := r.ExpandFunctions("${ENDS_WITH='.default'}/")
	assert.Empty(t, unresolved)
	assert.Equal(t, "profile123.default/", got)
}

func TestHasToken(t *testing.T) {
	assert.True(t, HasToken("/a/${ENDS_WITH='x'}"))
	assert.True(t, HasToken(`/a/${FOO="x"}/b`))
	assert.False(t, HasToken("/a/b"))
	assert.False(t, HasToken("/a/$HOME"))
}
