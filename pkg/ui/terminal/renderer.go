// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/konsave/pkg/errors"
	"github.com/arthur-debert/konsave/pkg/ui/display"
	"github.com/arthur-debert/konsave/pkg/ui/output/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var symbols = map[string]string{
	display.KindSuccess: "✓",
	display.KindInfo:    "•",
	display.KindWarning: "!",
}

// Renderer provides rich terminal output using lipgloss styles
type Renderer struct {
	output io.Writer
}

// New creates a new terminal renderer
func New(w io.Writer) *Renderer {
	return &Renderer{output: w}
}

// RenderResult renders a command result with rich terminal formatting
func (r *Renderer) RenderResult(result interface{}) error {
	v, ok := display.Build(result)
	if !ok {
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}

	var b strings.Builder
	for _, m := range v.Messages {
		b.WriteString(styles.GetStyle(m.Kind).Render(symbols[m.Kind] + " " + m.Text))
		b.WriteString("\n")
	}
	for _, t := range v.Tables {
		b.WriteString(renderTable(t))
		b.WriteString("\n")
	}
	b.WriteString(v.Raw)

	_, err := io.WriteString(r.output, b.String())
	return err
}

func renderTable(t display.Table) string {
	cell := styles.GetStyle("TableCell")
	header := styles.GetStyle("TableHeader")

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styles.GetStyle("TableBorder")).
		Headers(t.Headers...).
		Rows(t.Rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			if row >= 0 && row < len(t.Rows) && col < len(t.Rows[row]) {
				switch t.Rows[row][col] {
				case "yes":
					return cell.Inherit(styles.GetStyle("Yes"))
				case "no":
					return cell.Inherit(styles.GetStyle("No"))
				}
			}
			return cell
		})

	var b strings.Builder
	if t.Title != "" {
		b.WriteString(styles.GetStyle("Header").Render(t.Title))
		b.WriteString("\n")
	}
	b.WriteString(tbl.String())
	return b.String()
}

// RenderError renders an error with appropriate formatting
func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintln(r.output, styles.GetStyle("Error").Render("Error: "+errors.UserMessage(err)))
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, styles.GetStyle("Info").Render(msg))
	return err
}
