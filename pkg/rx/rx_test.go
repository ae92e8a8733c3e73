package rx

import (
	"sync"
	"testing"

	"github.com/google/uuid"
)

func TestSubscription_UnsubscribeRunsCleanupsOnceInReverse(t *testing.T) {
	s := NewSubscription()
	var order []int
	s.Add(func() { order = append(order, 1) })
	s.Add(func() { order = append(order, 2) })

	s.Unsubscribe()
	s.Unsubscribe()

	if len(order) != 2 || order[0] != 2 || order[1] != 1 {
		t.Errorf("cleanup order = %v, want [2 1]", order)
	}
	if !s.IsUnsubscribed() {
		t.Error("IsUnsubscribed() = false after Unsubscribe")
	}
}

func TestSubscription_AddAfterUnsubscribeRunsImmediately(t *testing.T) {
	s := NewSubscription()
	s.Unsubscribe()

	ran := false
	s.Add(func() { ran = true })

	if !ran {
		t.Error("cleanup added after Unsubscribe did not run")
	}
}

func TestSubscription_ConcurrentUnsubscribe(t *testing.T) {
	s := NewSubscription()
	var mu sync.Mutex
	calls := 0
	s.Add(func() {
		mu.Lock()
		calls++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Unsubscribe()
		}()
	}
	wg.Wait()

	if calls != 1 {
		t.Errorf("cleanup ran %d times, want 1", calls)
	}
}

func TestSubscription_ID(t *testing.T) {
	a, b := NewSubscription(), NewSubscription()
	if a.ID() == uuid.Nil {
		t.Error("ID() = uuid.Nil")
	}
	if a.ID() == b.ID() {
		t.Error("two subscriptions share an ID")
	}
}

func TestObservable_SubscribeDeliversUntilUnsubscribed(t *testing.T) {
	var sink Subscriber[int]
	obs := Create(func(s Subscriber[int]) { sink = s })

	rec := &Recorder[int]{}
	sub := obs.Subscribe(rec.Record)

	sink.OnNext(1)
	sink.OnNext(2)
	sub.Unsubscribe()
	sink.OnNext(3)

	got := rec.Values()
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("values = %v, want [1 2]", got)
	}
	if !sink.IsUnsubscribed() {
		t.Error("subscriber not marked unsubscribed")
	}
}

func TestObservable_ColdPerSubscriber(t *testing.T) {
	calls := 0
	obs := Create(func(s Subscriber[string]) {
		calls++
		s.OnNext("hello")
	})

	a, b := &Recorder[string]{}, &Recorder[string]{}
	obs.Subscribe(a.Record)
	obs.Subscribe(b.Record)

	if calls != 2 {
		t.Errorf("onSubscribe ran %d times, want 2", calls)
	}
	if a.Len() != 1 || b.Len() != 1 {
		t.Errorf("recorded %d and %d values, want 1 each", a.Len(), b.Len())
	}
}

func TestObservable_SubscriberCleanup(t *testing.T) {
	cleaned := false
	obs := Create(func(s Subscriber[int]) {
		s.Add(func() { cleaned = true })
	})

	sub := obs.Subscribe(func(int) {})
	if cleaned {
		t.Fatal("cleanup ran before Unsubscribe")
	}
	sub.Unsubscribe()
	if !cleaned {
		t.Error("cleanup did not run on Unsubscribe")
	}
}

func TestRecorderReset(t *testing.T) {
	rec := &Recorder[int]{}
	rec.Record(1)
	rec.Reset()
	if rec.Len() != 0 {
		t.Errorf("Len() = %d after Reset, want 0", rec.Len())
	}
}

func TestFuncSubscriber_CancelFromOnNext(t *testing.T) {
	obs := Create(func(s Subscriber[int]) {
		s.OnNext(1)
		s.OnNext(2)
	})

	var got []int
	var s *FuncSubscriber[int]
	s = NewFuncSubscriber(func(v int) {
		got = append(got, v)
		s.Unsubscribe()
	})
	obs.SubscribeWith(s)

	if len(got) != 1 || got[0] != 1 {
		t.Errorf("values = %v, want [1]", got)
	}
}
