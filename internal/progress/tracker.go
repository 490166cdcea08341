package progress

import (
	"fmt"
	"io"

	"github.com/klauern/skillhub/internal/sync"
)

// SyncTracker renders sync engine events: one bar while sources are fetched,
// then one over the planned install pairs.
type SyncTracker struct {
	w     io.Writer
	bar   *Bar
	phase sync.EventKind
}

// NewSyncTracker returns a tracker writing to w.
func NewSyncTracker(w io.Writer) *SyncTracker {
	return &SyncTracker{w: w}
}

// Handle consumes one event. Pass it to sync.WithProgress.
func (t *SyncTracker) Handle(ev sync.ProgressEvent) {
	switch ev.Kind {
	case sync.EventStart:
		t.start(sync.EventSource, ev.Total, "Fetching sources")
	case sync.EventSource:
		if t.bar == nil {
			return
		}
		t.bar.Step(fmt.Sprintf("Fetched @%s", ev.Scope))
	case sync.EventInstall:
		if t.phase != sync.EventInstall {
			t.start(sync.EventInstall, ev.Total, "Installing")
		}
		t.bar.Step(fmt.Sprintf("%s -> %s", ev.Skill, ev.Platform))
	case sync.EventComplete:
		t.Finish()
	}
}

// Finish completes the current bar, if any.
func (t *SyncTracker) Finish() {
	if t.bar != nil {
		t.bar.Done()
		t.bar = nil
	}
	t.phase = ""
}

func (t *SyncTracker) start(phase sync.EventKind, total int, desc string) {
	t.Finish()
	t.phase = phase
	t.bar = NewBar(t.w, total, desc)
}
