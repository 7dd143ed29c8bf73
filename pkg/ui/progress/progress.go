// Package progress shows a spinner with a running file count while
// profiles are copied.
package progress

import (
	"io"

	"github.com/schollz/progressbar/v3"
)

// Reporter counts copied files. A disabled Reporter does nothing.
type Reporter struct {
	bar *progressbar.ProgressBar
}

// New creates a Reporter writing to w. When enabled is false it never
// writes.
func New(w io.Writer, description string, enabled bool) *Reporter {
	if !enabled {
		return &Reporter{}
	}
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
	return &Reporter{bar: bar}
}

// OnFile advances the spinner; it matches the copy callback signature.
func (r *Reporter) OnFile(src, dst string) {
	if r.bar != nil {
		_ = r.bar.Add(1)
	}
}

// Finish clears the spinner.
func (r *Reporter) Finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}
