package sync

// EventKind identifies a progress event.
type EventKind string

const (
	EventStart    EventKind = "start"
	EventSource   EventKind = "source"
	EventInstall  EventKind = "install"
	EventComplete EventKind = "complete"
)

// ProgressEvent reports how far a run has got.
type ProgressEvent struct {
	Kind EventKind

	// Scope is set for EventSource and EventInstall.
	Scope string
	// Skill is the full name being installed (EventInstall).
	Skill string
	// Platform is the install target (EventInstall).
	Platform string

	// Current counts completed steps of this kind, starting at 1.
	// Total is the number of steps of this kind in the run: providers for
	// EventStart and EventSource, planned pairs for EventInstall.
	Current int
	Total   int

	// Err is set when the step failed.
	Err error
}

// ProgressFunc receives progress events.
type ProgressFunc func(ProgressEvent)

func (e *Engine) emit(ev ProgressEvent) {
	if e.progress != nil {
		e.progress(ev)
	}
}
