package styles_test

import (
	"testing"

	"github.com/arthur-debert/konsave/pkg/ui/output/styles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStyleRegistry(t *testing.T) {
	for _, name := range []string{
		"Header", "Success", "Error", "Warning", "Info", "Muted",
		"Profile", "FilePath", "TableHeader", "TableCell", "TableBorder", "Yes", "No",
	} {
		t.Run(name, func(t *testing.T) {
			_, ok := styles.StyleRegistry[name]
			assert.True(t, ok, "style %s should be registered", name)
		})
	}
}

func TestGetStyle_Unknown(t *testing.T) {
	assert.Equal(t, "text", styles.GetStyle("NoSuchStyle").Render("text"))
}

func TestLoadStylesFromData(t *testing.T) {
	t.Cleanup(styles.Reset)

	err := styles.LoadStylesFromData([]byte(`
colors:
  c:
    light: "#000000"
    dark: "#FFFFFF"
styles:
  Custom:
    bold: true
    foreground: c
`))
	require.NoError(t, err)
	assert.Len(t, styles.StyleRegistry, 1)
	assert.True(t, styles.GetStyle("Custom").GetBold())

	assert.Error(t, styles.LoadStylesFromData([]byte("styles: [")))
}
