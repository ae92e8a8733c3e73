// Package rx provides the small reactive surface bindings are exposed
// through: an Observable that runs a subscribe function per subscriber, a
// Subscriber that receives values, and a Subscription that cancels them.
package rx

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Subscription is a cancellation handle. It may be shared freely: Unsubscribe
// is safe from any goroutine and from any number of call sites, and runs the
// registered cleanups exactly once.
type Subscription struct {
	id           uuid.UUID
	mu           sync.Mutex
	cleanups     []func()
	unsubscribed atomic.Bool
}

// NewSubscription returns an active subscription with a fresh ID.
func NewSubscription() *Subscription {
	return &Subscription{id: uuid.New()}
}

// ID identifies the subscription in logs and registries.
func (s *Subscription) ID() uuid.UUID {
	return s.id
}

// Add registers a cleanup to run on Unsubscribe. If the subscription is
// already cancelled the cleanup runs immediately.
func (s *Subscription) Add(cleanup func()) {
	if cleanup == nil {
		return
	}
	s.mu.Lock()
	if s.unsubscribed.Load() {
		s.mu.Unlock()
		cleanup()
		return
	}
	s.cleanups = append(s.cleanups, cleanup)
	s.mu.Unlock()
}

// Unsubscribe cancels the subscription and runs its cleanups in reverse
// registration order. Calls after the first are no-ops.
func (s *Subscription) Unsubscribe() {
	if !s.unsubscribed.CompareAndSwap(false, true) {
		return
	}
	s.mu.Lock()
	cleanups := s.cleanups
	s.cleanups = nil
	s.mu.Unlock()

	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
}

// IsUnsubscribed reports whether Unsubscribe has been called.
func (s *Subscription) IsUnsubscribed() bool {
	return s.unsubscribed.Load()
}
