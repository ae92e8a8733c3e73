package rx

import "github.com/google/uuid"

// Subscriber receives values from an Observable.
type Subscriber[T any] interface {
	// ID identifies the subscriber. Sources key their subscriber sets by it,
	// so it must stay the same for the subscriber's lifetime.
	ID() uuid.UUID
	// OnNext delivers one value.
	OnNext(value T)
	// Add registers a cleanup to run when the subscriber is cancelled.
	Add(cleanup func())
	// IsUnsubscribed reports whether the subscriber has been cancelled.
	IsUnsubscribed() bool
}

// Observable is a cold source: its subscribe function runs once per subscriber.
type Observable[T any] struct {
	onSubscribe func(Subscriber[T])
}

// Create returns an Observable that calls onSubscribe for every subscriber.
func Create[T any](onSubscribe func(Subscriber[T])) Observable[T] {
	return Observable[T]{onSubscribe: onSubscribe}
}

// Subscribe registers onNext and returns the handle that cancels it.
// No value reaches onNext after the handle is unsubscribed.
func (o Observable[T]) Subscribe(onNext func(T)) *Subscription {
	s := NewFuncSubscriber(onNext)
	o.SubscribeWith(s)
	return s.Subscription
}

// SubscribeWith runs the subscribe function for s.
func (o Observable[T]) SubscribeWith(s Subscriber[T]) {
	if o.onSubscribe != nil {
		o.onSubscribe(s)
	}
}

// FuncSubscriber is a Subscriber backed by a function. Its embedded
// Subscription is the cancellation handle.
type FuncSubscriber[T any] struct {
	*Subscription
	onNext func(T)
}

// NewFuncSubscriber returns an active subscriber that calls onNext.
func NewFuncSubscriber[T any](onNext func(T)) *FuncSubscriber[T] {
	return &FuncSubscriber[T]{
		Subscription: NewSubscription(),
		onNext:       onNext,
	}
}

// OnNext calls the function unless the subscriber has been cancelled.
func (s *FuncSubscriber[T]) OnNext(value T) {
	if s.IsUnsubscribed() || s.onNext == nil {
		return
	}
	s.onNext(value)
}
