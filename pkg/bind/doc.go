// Package bind turns single-listener widget callbacks into observables that
// any number of subscribers can watch independently.
//
// A native seek bar holds exactly one client. For each seek bar with at
// least one subscriber, bind installs one listener that fans every callback
// out to all of that seek bar's subscribers. The listener is created on the
// first subscription and removed from the seek bar, and forgotten, as soon
// as the last subscription is cancelled. Subscribing again afterwards
// builds a fresh listener.
//
// Subscribing, delivery and teardown all happen on the UI thread (see
// platform.BindUIThread). Subscribing from another goroutine panics with a
// *errors.WrongContextError. Cancelling from another goroutine is allowed:
// the removal is dispatched onto the UI thread.
//
//	sub := bind.SeekBarChanges(view, true).Subscribe(func(e bind.SeekBarEvent) {
//		if e.Is(bind.ProgressChanged) {
//			volume.Set(e.Progress())
//		}
//	})
//	defer sub.Unsubscribe()
package bind
