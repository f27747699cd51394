// Package progress renders a terminal progress bar over the build matrix.
package progress

import (
	"io"

	"github.com/schollz/progressbar/v3"
)

// Bar tracks completed builds. A nil Bar is a valid no-op, so callers never
// have to guard their Add calls.
type Bar struct {
	bar *progressbar.ProgressBar
}

// New returns a bar expecting total builds, writing to w. Pass quiet to
// suppress rendering entirely.
func New(w io.Writer, total int, quiet bool) *Bar {
	if quiet {
		return nil
	}
	return &Bar{
		bar: progressbar.NewOptions(total,
			progressbar.OptionSetWriter(w),
			progressbar.OptionSetDescription("building"),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionShowCount(),
		),
	}
}

// Add advances the bar by n completed builds.
func (b *Bar) Add(n int) {
	if b == nil {
		return
	}
	_ = b.bar.Add(n)
}
