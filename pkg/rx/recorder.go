package rx

import "sync"

// Recorder collects delivered values in order. Pass Record as the onNext
// function of Subscribe.
type Recorder[T any] struct {
	mu     sync.Mutex
	values []T
}

// Record appends value.
func (r *Recorder[T]) Record(value T) {
	r.mu.Lock()
	r.values = append(r.values, value)
	r.mu.Unlock()
}

// Values returns a copy of the recorded values.
func (r *Recorder[T]) Values() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]T(nil), r.values...)
}

// Len returns the number of recorded values.
func (r *Recorder[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.values)
}

// Reset discards recorded values.
func (r *Recorder[T]) Reset() {
	r.mu.Lock()
	r.values = nil
	r.mu.Unlock()
}
