// Package display turns command results into a format-neutral view: a
// list of messages and tables that the terminal and text renderers lay
// out in their own way.
package display

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/konsave/pkg/types"
)

// TimeLayout formats profile save times.
const TimeLayout = "2006-01-02 15:04"

// Message kinds, matching style names
const (
	KindSuccess = "Success"
	KindInfo    = "Info"
	KindWarning = "Warning"
)

// Message is one line of feedback.
type Message struct {
	Kind string
	Text string
}

// Table is a titled grid of cells.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// View is everything a renderer shows for one result.
type View struct {
	Messages []Message
	Tables   []Table
	// Raw is printed verbatim, after tables
	Raw string
}

func (v *View) add(kind, format string, args ...interface{}) {
	v.Messages = append(v.Messages, Message{Kind: kind, Text: fmt.Sprintf(format, args...)})
}

// YesNo renders a boolean table cell.
func YesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	if strings.HasSuffix(word, "y") {
		return fmt.Sprintf("%d %sies", n, strings.TrimSuffix(word, "y"))
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func statsText(s types.CopyStats) string {
	return fmt.Sprintf("%s, %s, %s", plural(s.Sections, "section"), plural(s.Entries, "entry"), plural(s.Files, "file"))
}

// Build returns the view of a command result. Unknown results produce
// an empty view with ok false.
func Build(result interface{}) (View, bool) {
	var v View

	switch r := result.(type) {
	case *types.ListProfilesResult:
		t := Table{Title: "Konsave profiles", Headers: []string{"ID", "NAME", "SAVED"}}
		digests := false
		for _, p := range r.Profiles {
			digests = digests || p.Digest != ""
		}
		if digests {
			t.Headers = append(t.Headers, "DIGEST")
		}
		for _, p := range r.Profiles {
			saved := ""
			if !p.SavedAt.IsZero() {
				saved = p.SavedAt.Local().Format(TimeLayout)
			}
			row := []string{fmt.Sprint(p.ID), p.Name, saved}
			if digests {
				row = append(row, p.Digest)
			}
			t.Rows = append(t.Rows, row)
		}
		v.Tables = append(v.Tables, t)

	case *types.SaveResult:
		v.add(KindSuccess, "Saved profile %q (%s)", r.Name, statsText(r.Stats))
		if r.Overwrote {
			v.add(KindInfo, "Merged into the existing profile")
		}
		if r.Stats.Skipped > 0 {
			v.add(KindInfo, "%s not present on this system, skipped", plural(r.Stats.Skipped, "entry"))
		}

	case *types.ApplyResult:
		v.add(KindSuccess, "Applied profile %q (%s)", r.Name, statsText(r.Stats))
		if r.Stats.Skipped > 0 {
			v.add(KindWarning, "%s missing from the profile, skipped", plural(r.Stats.Skipped, "section"))
		}
		if r.Reloaded {
			v.add(KindInfo, "Desktop reloaded")
		} else {
			v.add(KindInfo, "Log out and back in to see every change")
		}

	case *types.ExportResult:
		v.add(KindSuccess, "Exported profile %q to %s (%s)", r.Name, r.ArchivePath, statsText(r.Stats))

	case *types.ImportResult:
		v.add(KindSuccess, "Imported profile %q (%s)", r.Name, statsText(r.Stats))
		if r.Stats.Skipped > 0 {
			v.add(KindInfo, "%s not in the archive, skipped", plural(r.Stats.Skipped, "entry"))
		}

	case *types.RemoveResult:
		switch {
		case r.Aborted:
			v.add(KindWarning, "Aborted, no profile removed")
		case len(r.Removed) == 1:
			v.add(KindSuccess, "Removed profile %q", r.Removed[0])
		default:
			v.add(KindSuccess, "Removed %s", plural(len(r.Removed), "profile"))
		}

	case *types.ConfigCheckResult:
		if len(r.Sections) == 0 {
			v.add(KindInfo, "No save section is located at %s", r.ConfigDir)
		}
		for _, s := range r.Sections {
			t := Table{
				Title:   fmt.Sprintf("Section %q (%s)", s.Name, r.ConfigDir),
				Headers: []string{"ENTRY", "BACKED UP", "IN CONFIG DIR"},
			}
			for _, e := range s.Entries {
				t.Rows = append(t.Rows, []string{e.Name, YesNo(e.BackedUp), YesNo(e.InConfigDir)})
			}
			v.Tables = append(v.Tables, t)
		}

	case *types.ResetConfigResult:
		if r.Installed {
			v.add(KindSuccess, "Installed the %s manifest at %s", r.Variant, r.ManifestPath)
		} else {
			v.add(KindInfo, "A manifest already exists at %s, use --force to replace it", r.ManifestPath)
		}

	case *types.GenConfigResult:
		if len(r.FilesWritten) == 0 {
			v.Raw = r.ConfigContent
		}
		for _, f := range r.FilesWritten {
			v.add(KindSuccess, "Wrote settings template to %s", f)
		}

	default:
		return v, false
	}

	return v, true
}
