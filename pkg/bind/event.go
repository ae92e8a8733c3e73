package bind

import "fmt"

// EventKind discriminates seek bar events.
type EventKind int

const (
	// TrackingStarted is emitted when the user starts a touch gesture.
	TrackingStarted EventKind = iota
	// TrackingStopped is emitted when the user ends a touch gesture.
	TrackingStopped
	// ProgressChanged is emitted when the progress value changes.
	ProgressChanged
)

func (k EventKind) String() string {
	switch k {
	case TrackingStarted:
		return "tracking_started"
	case TrackingStopped:
		return "tracking_stopped"
	case ProgressChanged:
		return "progress_changed"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// SeekBarEvent is one occurrence on a seek bar. It is an immutable value;
// two events are equal when they come from the same view and carry the same
// progress, origin and kind.
type SeekBarEvent struct {
	view     SeekBar
	progress int
	fromUser bool
	kind     EventKind
}

// NewSeekBarEvent builds an event.
func NewSeekBarEvent(view SeekBar, progress int, fromUser bool, kind EventKind) SeekBarEvent {
	return SeekBarEvent{view: view, progress: progress, fromUser: fromUser, kind: kind}
}

// View returns the seek bar that produced the event.
func (e SeekBarEvent) View() SeekBar { return e.view }

// Progress returns the progress value at the time of the event.
func (e SeekBarEvent) Progress() int { return e.progress }

// FromUser reports whether a progress change came from a touch gesture.
// It is always false for tracking events and synthesized initial values.
func (e SeekBarEvent) FromUser() bool { return e.fromUser }

// Kind returns the event kind.
func (e SeekBarEvent) Kind() EventKind { return e.kind }

// Is reports whether the event is of kind k.
func (e SeekBarEvent) Is(k EventKind) bool { return e.kind == k }

func (e SeekBarEvent) String() string {
	return fmt.Sprintf("%s(progress=%d, fromUser=%t)", e.kind, e.progress, e.fromUser)
}
