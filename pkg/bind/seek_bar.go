package bind

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/go-drift/bind/pkg/errors"
	"github.com/go-drift/bind/pkg/platform"
	"github.com/go-drift/bind/pkg/rx"
)

// SeekBar is the widget surface bindings need: its current value and its
// single callback slot. *platform.SeekBarView implements it.
type SeekBar interface {
	Progress() int
	SetClient(client platform.SeekBarClient)
}

// listeners maps each observed seek bar to its listener. It is only read or
// written on the UI thread.
var listeners = map[SeekBar]*seekBarListener{}

type listenerState int

const (
	listenerUnattached listenerState = iota
	listenerAttached
	listenerDetached
)

// seekBarListener is installed as the client of one seek bar and fans its
// callbacks out to every subscriber of that seek bar.
type seekBarListener struct {
	view        SeekBar
	state       listenerState
	subscribers []rx.Subscriber[SeekBarEvent]
	index       map[uuid.UUID]struct{}
}

var _ platform.SeekBarClient = (*seekBarListener)(nil)

// listenerFor returns the listener of view, creating and recording one if
// the seek bar has none.
func listenerFor(view SeekBar) *seekBarListener {
	if l, ok := listeners[view]; ok {
		return l
	}
	l := &seekBarListener{
		view:  view,
		index: make(map[uuid.UUID]struct{}),
	}
	listeners[view] = l
	metrics.listeners.Inc()
	return l
}

// addSubscriber registers s. Adding a subscriber with the same ID twice is a
// no-op.
func (l *seekBarListener) addSubscriber(s rx.Subscriber[SeekBarEvent]) {
	id := s.ID()
	if _, ok := l.index[id]; ok {
		return
	}
	l.index[id] = struct{}{}
	l.subscribers = append(l.subscribers, s)
	metrics.subscribers.Inc()
}

// removeSubscriber unregisters s and detaches the listener from the seek bar
// when no subscribers remain. Removing an unknown subscriber is a no-op.
func (l *seekBarListener) removeSubscriber(s rx.Subscriber[SeekBarEvent]) {
	platform.AssertUIThread("bind.removeSubscriber")
	id := s.ID()
	if _, ok := l.index[id]; !ok {
		return
	}
	delete(l.index, id)
	for i, sub := range l.subscribers {
		if sub.ID() == id {
			l.subscribers = append(l.subscribers[:i], l.subscribers[i+1:]...)
			break
		}
	}
	metrics.subscribers.Dec()

	if len(l.subscribers) == 0 {
		l.detach()
	}
}

// attach installs the listener as the seek bar's client. Installing it again
// is harmless; a detached listener is never reinstalled.
func (l *seekBarListener) attach() {
	if l.state == listenerDetached {
		return
	}
	l.view.SetClient(l)
	if l.state == listenerUnattached {
		l.state = listenerAttached
		metrics.attaches.Inc()
		logger.Debug("seek bar listener attached", viewAttr(l.view))
	}
}

func (l *seekBarListener) detach() {
	wasAttached := l.state == listenerAttached
	l.state = listenerDetached
	if wasAttached {
		l.view.SetClient(nil)
		metrics.detaches.Inc()
	}
	if listeners[l.view] == l {
		delete(listeners, l.view)
		metrics.listeners.Dec()
	}
	logger.Debug("seek bar listener detached", viewAttr(l.view))
}

// broadcast delivers e to every current subscriber in registration order.
// A subscriber removed or cancelled before its turn does not receive e, even
// while its removal is still waiting to hop onto the UI thread.
func (l *seekBarListener) broadcast(e SeekBarEvent) {
	subs := append([]rx.Subscriber[SeekBarEvent](nil), l.subscribers...)
	for _, s := range subs {
		if _, ok := l.index[s.ID()]; !ok || s.IsUnsubscribed() {
			continue
		}
		if l.deliver(s, e) {
			metrics.delivered.WithLabelValues(e.kind.String()).Inc()
		}
	}
}

// deliver hands e to s. A panicking subscriber is reported and skipped so the
// rest of the fan-out still runs; affinity violations stay fatal.
func (l *seekBarListener) deliver(s rx.Subscriber[SeekBarEvent], e SeekBarEvent) (ok bool) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if wc, isWrong := r.(*errors.WrongContextError); isWrong {
			panic(wc)
		}
		ok = false
		errors.Report(&errors.BindError{
			Op:         "bind.broadcast",
			Kind:       errors.KindDelivery,
			View:       viewID(l.view),
			Err:        fmt.Errorf("subscriber %s panicked on %s: %v", s.ID(), e.kind, r),
			StackTrace: errors.CaptureStack(),
		})
	}()
	s.OnNext(e)
	return true
}

func (l *seekBarListener) OnProgressChanged(progress int, fromUser bool) {
	l.broadcast(NewSeekBarEvent(l.view, progress, fromUser, ProgressChanged))
}

func (l *seekBarListener) OnStartTrackingTouch() {
	l.broadcast(NewSeekBarEvent(l.view, l.view.Progress(), false, TrackingStarted))
}

func (l *seekBarListener) OnStopTrackingTouch() {
	l.broadcast(NewSeekBarEvent(l.view, l.view.Progress(), false, TrackingStopped))
}

// SeekBarChanges returns an observable of view's events. Each subscription
// registers with the seek bar's shared listener. With emitInitial, the new
// subscriber first receives a ProgressChanged event carrying the current
// progress with fromUser=false; other subscribers do not see it.
//
// Subscribe must be called on the UI thread. Unsubscribe may be called from
// any goroutine.
func SeekBarChanges(view SeekBar, emitInitial bool) rx.Observable[SeekBarEvent] {
	return rx.Create(func(s rx.Subscriber[SeekBarEvent]) {
		platform.AssertUIThread("bind.SeekBarChanges")

		l := listenerFor(view)
		l.addSubscriber(s)

		s.Add(func() {
			platform.RunOnUIThread("bind.SeekBarChanges.unsubscribe", func() {
				l.removeSubscriber(s)
			})
		})

		if emitInitial && !s.IsUnsubscribed() {
			l.deliver(s, NewSeekBarEvent(view, view.Progress(), false, ProgressChanged))
		}

		l.attach()
	})
}

// Changes is SeekBarChanges without an initial value.
func Changes(view SeekBar) rx.Observable[SeekBarEvent] {
	return SeekBarChanges(view, false)
}

// ListenerAttached reports whether view currently has a listener.
// It must be called on the UI thread.
func ListenerAttached(view SeekBar) bool {
	platform.AssertUIThread("bind.ListenerAttached")
	_, ok := listeners[view]
	return ok
}

// SubscriberCount returns the number of live subscriptions on view.
// It must be called on the UI thread.
func SubscriberCount(view SeekBar) int {
	platform.AssertUIThread("bind.SubscriberCount")
	if l, ok := listeners[view]; ok {
		return len(l.subscribers)
	}
	return 0
}

// ListenerInfo describes the listener of one observed seek bar.
type ListenerInfo struct {
	// View is the platform view ID, or zero for seek bars outside the
	// platform view registry.
	View        int64 `json:"view"`
	Attached    bool  `json:"attached"`
	Subscribers int   `json:"subscribers"`
}

// Listeners returns every current listener ordered by view ID.
// It must be called on the UI thread.
func Listeners() []ListenerInfo {
	platform.AssertUIThread("bind.Listeners")
	out := make([]ListenerInfo, 0, len(listeners))
	for view, l := range listeners {
		out = append(out, ListenerInfo{
			View:        viewID(view),
			Attached:    l.state == listenerAttached,
			Subscribers: len(l.subscribers),
		})
	}
	slices.SortFunc(out, func(a, b ListenerInfo) int { return cmp.Compare(a.View, b.View) })
	return out
}

func viewID(view SeekBar) int64 {
	if v, ok := view.(interface{ ViewID() int64 }); ok {
		return v.ViewID()
	}
	return 0
}

func viewAttr(view SeekBar) slog.Attr {
	if v, ok := view.(interface{ ViewID() int64 }); ok {
		return slog.Int64("view", v.ViewID())
	}
	return slog.String("view", "unregistered")
}
