package topics

import (
	"os"

	"github.com/charmbracelet/glamour"
)

// GlamourRenderer renders markdown topics for the terminal. Other formats
// pass through unchanged.
type GlamourRenderer struct {
	// Style is a glamour style name ("dark", "light", "notty") or a style
	// file path. Empty means auto-detect.
	Style string
	// Width wraps output; 0 keeps glamour's default.
	Width int
}

// NewGlamourRenderer creates a markdown renderer that picks its style from
// the terminal, and renders without color when NO_COLOR is set.
func NewGlamourRenderer() *GlamourRenderer {
	r := &GlamourRenderer{}
	if os.Getenv("NO_COLOR") != "" {
		r.Style = "notty"
	}
	return r
}

// Render converts markdown to styled terminal output. Rendering failures
// fall back to the raw markdown.
func (r *GlamourRenderer) Render(content string, format string) string {
	if format != ".md" {
		return content
	}

	var options []glamour.TermRendererOption
	if r.Style == "" || r.Style == "auto" {
		options = append(options, glamour.WithAutoStyle())
	} else {
		options = append(options, glamour.WithStandardStyle(r.Style))
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
