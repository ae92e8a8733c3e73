package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-drift/bind/cmd/seekbar/internal/config"
	"github.com/go-drift/bind/pkg/bind"
	"github.com/go-drift/bind/pkg/engine"
	"github.com/go-drift/bind/pkg/platform"
	"github.com/go-drift/bind/pkg/rx"
)

// session owns one seek bar on a looper and the subscriptions watching it.
// Methods are called from a single non-UI goroutine; work reaches the seek
// bar through the looper in call order.
type session struct {
	looper      *engine.Looper
	cancel      context.CancelFunc
	view        *platform.SeekBarView
	emitInitial bool
	subs        []*rx.Subscription
	onEvent     func(sub int, e bind.SeekBarEvent)
	logger      *slog.Logger
}

func newSession(sc *config.Scenario, logger *slog.Logger, onEvent func(int, bind.SeekBarEvent)) (*session, error) {
	platform.SetNativeBridge(loopbackBridge{logger: logger})

	looper := engine.NewLooper()
	looper.Install()
	ctx, cancel := context.WithCancel(context.Background())
	go looper.Run(ctx)

	view, err := platform.GetPlatformViewRegistry().Create(platform.SeekBarViewType, map[string]any{
		"progress": sc.SeekBar.Initial,
		"max":      sc.SeekBar.Max,
	})
	if err != nil {
		cancel()
		<-looper.Done()
		return nil, fmt.Errorf("failed to create seek bar: %w", err)
	}

	return &session{
		looper:      looper,
		cancel:      cancel,
		view:        view.(*platform.SeekBarView),
		emitInitial: sc.EmitInitial,
		onEvent:     onEvent,
		logger:      logger,
	}, nil
}

// subscribe adds a subscriber and returns its index.
func (s *session) subscribe() int {
	idx := len(s.subs)
	var sub *rx.Subscription
	s.looper.Sync(func() {
		sub = bind.SeekBarChanges(s.view, s.emitInitial).Subscribe(func(e bind.SeekBarEvent) {
			s.onEvent(idx, e)
		})
	})
	s.subs = append(s.subs, sub)
	s.logger.Debug("subscribed", slog.Int("subscriber", idx), slog.String("id", sub.ID().String()))
	return idx
}

// unsubscribe cancels subscriber idx from this goroutine; the removal hops
// onto the looper.
func (s *session) unsubscribe(idx int) {
	if idx < 0 || idx >= len(s.subs) {
		return
	}
	s.subs[idx].Unsubscribe()
	s.logger.Debug("unsubscribed", slog.Int("subscriber", idx))
}

// lastActive returns the most recent live subscriber, or -1.
func (s *session) lastActive() int {
	for i := len(s.subs) - 1; i >= 0; i-- {
		if !s.subs[i].IsUnsubscribed() {
			return i
		}
	}
	return -1
}

// active returns the number of live subscribers.
func (s *session) active() int {
	n := 0
	for _, sub := range s.subs {
		if !sub.IsUnsubscribed() {
			n++
		}
	}
	return n
}

func (s *session) setProgress(progress int) {
	s.looper.Sync(func() { s.view.SetProgress(progress) })
}

// drag plays a user gesture ending at progress, as native would report it.
func (s *session) drag(progress int) error {
	if err := s.native(platform.SeekBarStartTrackingMethod, nil); err != nil {
		return err
	}
	if err := s.native(platform.SeekBarProgressChangedMethod, map[string]any{"progress": progress, "fromUser": true}); err != nil {
		return err
	}
	return s.native(platform.SeekBarStopTrackingMethod, nil)
}

func (s *session) native(method string, args map[string]any) error {
	payload := map[string]any{"viewId": s.view.ViewID()}
	for k, v := range args {
		payload[k] = v
	}
	data, err := platform.DefaultCodec.Encode(payload)
	if err != nil {
		return err
	}
	_, err = platform.HandleMethodCall(platform.PlatformViewsChannel, method, data)
	return err
}

// apply runs one scripted step.
func (s *session) apply(step config.Step) error {
	switch step.Op {
	case config.OpProgress:
		s.setProgress(step.Value)
	case config.OpDrag:
		return s.drag(step.Value)
	case config.OpStart:
		return s.native(platform.SeekBarStartTrackingMethod, nil)
	case config.OpStop:
		return s.native(platform.SeekBarStopTrackingMethod, nil)
	case config.OpSubscribe:
		s.subscribe()
	case config.OpUnsubscribe:
		s.unsubscribe(step.Subscriber)
	default:
		return fmt.Errorf("unknown op %q", step.Op)
	}
	return nil
}

// flush waits until everything posted so far has run on the looper.
func (s *session) flush() {
	s.looper.Sync(func() {})
}

// close cancels the remaining subscriptions, disposes the seek bar and
// stops the looper.
func (s *session) close() {
	for _, sub := range s.subs {
		sub.Unsubscribe()
	}
	s.flush()
	platform.GetPlatformViewRegistry().Dispose(s.view.ViewID())
	s.cancel()
	<-s.looper.Done()
}
