// Package progress renders sync progress on interactive terminals.
package progress

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"

	"github.com/klauern/skillhub/internal/logging"
	"github.com/klauern/skillhub/internal/ui"
)

// Bar is a counted progress bar. When drawing is disabled every method is a
// no-op apart from debug logging, so callers never branch on it.
type Bar struct {
	pb   *progressbar.ProgressBar
	desc string
}

// NewBar starts a bar of total steps on w. Drawing is skipped when
// Enabled(w) is false.
func NewBar(w io.Writer, total int, desc string) *Bar {
	b := &Bar{desc: desc}
	if !Enabled(w) {
		logging.Debug("progress started", logging.Operation(desc), logging.Count(total))
		return b
	}

	b.pb = progressbar.NewOptions(total,
		progressbar.OptionSetDescription(desc),
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetWidth(20),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(50*time.Millisecond),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(w) }),
	)
	return b
}

// Step advances the bar by one and relabels it.
func (b *Bar) Step(label string) {
	if b.pb == nil {
		logging.Debug("progress step", logging.Operation(b.desc), slog.String("step", label))
		return
	}
	b.pb.Describe(label)
	_ = b.pb.Add(1)
}

// Done completes the bar.
func (b *Bar) Done() {
	if b.pb == nil {
		logging.Debug("progress finished", logging.Operation(b.desc))
		return
	}
	_ = b.pb.Finish()
}

// Enabled reports whether bars should be drawn on w. Colors must be on, w
// must be a terminal and debug logging must be off so bars and log lines do
// not interleave.
func Enabled(w io.Writer) bool {
	if !ui.IsColorEnabled() || !IsTerminal(w) {
		return false
	}
	return !logging.Default().Enabled(context.Background(), logging.LevelDebug)
}

// IsTerminal reports whether w is a terminal. Writers that are not files,
// such as buffers in tests, are treated as terminals so callers decide.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return true
	}
	return term.IsTerminal(int(f.Fd())) // #nosec G115 - file descriptors fit in int
}
