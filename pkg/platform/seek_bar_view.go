package platform

import (
	"sync"

	"github.com/go-drift/bind/pkg/errors"
)

// SeekBarViewType is the platform view type of the native range-input control.
const SeekBarViewType = "seek_bar"

// DefaultSeekBarMax is the upper bound used when none is configured.
const DefaultSeekBarMax = 100

// Methods native code calls on PlatformViewsChannel for seek bar views.
// Each takes a "viewId"; progress changes also carry "progress" and "fromUser".
const (
	SeekBarProgressChangedMethod = "onSeekBarProgressChanged"
	SeekBarStartTrackingMethod   = "onSeekBarStartTracking"
	SeekBarStopTrackingMethod    = "onSeekBarStopTracking"
)

// SeekBarViewConfig defines the range of a native seek bar.
type SeekBarViewConfig struct {
	// Max is the inclusive upper bound of the progress value.
	Max int
}

// SeekBarClient receives callbacks from a native seek bar.
// A seek bar holds at most one client at a time.
type SeekBarClient interface {
	// OnProgressChanged is called when the progress value changes.
	// fromUser is true only when the change came from a touch gesture.
	OnProgressChanged(progress int, fromUser bool)

	// OnStartTrackingTouch is called when the user starts a touch gesture.
	OnStartTrackingTouch()

	// OnStopTrackingTouch is called when the user finishes a touch gesture.
	OnStopTrackingTouch()
}

// SeekBarView is a platform view for a native seek bar (slider).
type SeekBarView struct {
	basePlatformView
	config   SeekBarViewConfig
	client   SeekBarClient
	progress int
	mu       sync.RWMutex
}

// NewSeekBarView creates a new seek bar platform view.
func NewSeekBarView(viewID int64, config SeekBarViewConfig, client SeekBarClient) *SeekBarView {
	if config.Max <= 0 {
		config.Max = DefaultSeekBarMax
	}
	return &SeekBarView{
		basePlatformView: basePlatformView{
			viewID:   viewID,
			viewType: SeekBarViewType,
		},
		config: config,
		client: client,
	}
}

// SetClient replaces the callback client for this view. Pass nil to clear it.
func (v *SeekBarView) SetClient(client SeekBarClient) {
	v.mu.Lock()
	v.client = client
	v.mu.Unlock()
}

// Client returns the currently installed callback client.
func (v *SeekBarView) Client() SeekBarClient {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.client
}

// Create initializes the native view.
func (v *SeekBarView) Create(params map[string]any) error {
	return nil
}

// Dispose cleans up the native view.
func (v *SeekBarView) Dispose() {
	v.SetClient(nil)
}

// Progress returns the current progress value.
func (v *SeekBarView) Progress() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.progress
}

// Max returns the upper bound of the progress value.
func (v *SeekBarView) Max() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.config.Max
}

// SetProgress updates the progress from Go. The value is clamped to
// [0, Max]. When the value changes the client is notified synchronously with
// fromUser=false and native is asked to move the thumb. It must be called on
// the UI thread.
func (v *SeekBarView) SetProgress(progress int) {
	AssertUIThread("platform.SeekBarView.SetProgress")
	if !v.updateProgress(progress, false) {
		return
	}
	GetPlatformViewRegistry().InvokeViewMethod(v.viewID, "setProgress", map[string]any{
		"progress": v.Progress(),
	})
}

// SetMax updates the upper bound. A progress above the new bound is clamped,
// which notifies the client like any programmatic change. It must be called
// on the UI thread.
func (v *SeekBarView) SetMax(limit int) {
	AssertUIThread("platform.SeekBarView.SetMax")
	if limit <= 0 {
		limit = DefaultSeekBarMax
	}
	v.mu.Lock()
	v.config.Max = limit
	over := v.progress > limit
	v.mu.Unlock()

	GetPlatformViewRegistry().InvokeViewMethod(v.viewID, "setMax", map[string]any{
		"max": limit,
	})
	if over {
		v.updateProgress(limit, false)
	}
}

// updateProgress stores progress and notifies the client if it changed.
func (v *SeekBarView) updateProgress(progress int, fromUser bool) bool {
	v.mu.Lock()
	progress = clamp(progress, 0, v.config.Max)
	if progress == v.progress {
		v.mu.Unlock()
		return false
	}
	v.progress = progress
	client := v.client
	v.mu.Unlock()

	if client != nil {
		client.OnProgressChanged(progress, fromUser)
	}
	return true
}

// handleProgressChanged processes progress events from native.
func (v *SeekBarView) handleProgressChanged(progress int, fromUser bool) {
	v.updateProgress(progress, fromUser)
}

// handleStartTracking processes the start of a native touch gesture.
func (v *SeekBarView) handleStartTracking() {
	if client := v.Client(); client != nil {
		client.OnStartTrackingTouch()
	}
}

// handleStopTracking processes the end of a native touch gesture.
func (v *SeekBarView) handleStopTracking() {
	if client := v.Client(); client != nil {
		client.OnStopTrackingTouch()
	}
}

func (v *SeekBarView) handleNativeCall(method string, args map[string]any) error {
	switch method {
	case SeekBarProgressChangedMethod:
		progress, ok := toInt(args["progress"])
		if !ok {
			return &errors.ParseError{Method: method, Field: "progress", Got: args["progress"]}
		}
		fromUser, _ := args["fromUser"].(bool)
		v.handleProgressChanged(progress, fromUser)
	case SeekBarStartTrackingMethod:
		v.handleStartTracking()
	case SeekBarStopTrackingMethod:
		v.handleStopTracking()
	default:
		return ErrMethodNotFound
	}
	return nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// seekBarViewFactory creates seek bar platform views.
type seekBarViewFactory struct{}

func (f *seekBarViewFactory) ViewType() string {
	return SeekBarViewType
}

func (f *seekBarViewFactory) Create(viewID int64, params map[string]any) (PlatformView, error) {
	config := SeekBarViewConfig{}
	if v, ok := toInt(params["max"]); ok {
		config.Max = v
	}

	view := NewSeekBarView(viewID, config, nil)

	// Initial progress does not notify; there is no client yet.
	if v, ok := toInt(params["progress"]); ok {
		view.progress = clamp(v, 0, view.config.Max)
	}

	return view, nil
}

// RegisterSeekBarViewFactory registers the seek bar view factory.
func RegisterSeekBarViewFactory() {
	GetPlatformViewRegistry().RegisterFactory(&seekBarViewFactory{})
}

func init() {
	RegisterSeekBarViewFactory()
}
