package bind

import "testing"

func TestEventKindString(t *testing.T) {
	tests := []struct {
		kind EventKind
		want string
	}{
		{TrackingStarted, "tracking_started"},
		{TrackingStopped, "tracking_stopped"},
		{ProgressChanged, "progress_changed"},
		{EventKind(9), "EventKind(9)"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("EventKind(%d).String() = %q, want %q", int(tt.kind), got, tt.want)
		}
	}
}

func TestSeekBarEvent(t *testing.T) {
	view := &fakeSeekBar{}
	e := NewSeekBarEvent(view, 42, true, ProgressChanged)

	if e.View() != view || e.Progress() != 42 || !e.FromUser() || e.Kind() != ProgressChanged {
		t.Errorf("accessors returned %v", e)
	}
	if !e.Is(ProgressChanged) || e.Is(TrackingStarted) {
		t.Error("Is() does not match the event kind")
	}
	if got, want := e.String(), "progress_changed(progress=42, fromUser=true)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestSeekBarEventEquality(t *testing.T) {
	a, b := &fakeSeekBar{}, &fakeSeekBar{}

	if NewSeekBarEvent(a, 1, false, ProgressChanged) != NewSeekBarEvent(a, 1, false, ProgressChanged) {
		t.Error("identical events should be equal")
	}
	if NewSeekBarEvent(a, 1, false, ProgressChanged) == NewSeekBarEvent(b, 1, false, ProgressChanged) {
		t.Error("events from different seek bars should differ")
	}
}
