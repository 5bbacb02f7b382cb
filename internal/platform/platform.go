// Package platform defines the boundary between the core and the OS
// (spec.md §6 "Platform adapter contract"). Every call the core makes
// into the Accessibility API goes through the Adapter interface; the
// only concrete implementation shipped here is NullAdapter, an
// in-memory double standing in for the real macOS AX bindings, which
// have no Go binding in the pack this module is grounded on.
package platform

import (
	"context"

	"github.com/yourorg/tilecore/internal/geometry"
	"github.com/yourorg/tilecore/internal/model"
)

// WindowObservation is what the OS reports about a window at the moment
// the adapter discovers it, before the Event Processor or State Actor
// have decided whether it is a new top-level window or a tab of one
// already tracked.
type WindowObservation struct {
	WindowID     model.WindowID
	PID          int
	AppID        string
	AppName      string
	Title        string
	Frame        geometry.Rect
	MinimumSize  model.Size
	IsMinimized  bool
	IsFullscreen bool
}

// EventCallback receives raw window/app/screen observations from the
// adapter's OS event subscription. The caller (internal/events) decides
// how to dispatch or batch each kind; the adapter itself performs no
// batching (spec.md §4.2 is the Event Processor's job, not the
// adapter's).
type EventCallback interface {
	OnWindowCreated(screenID model.ScreenID, info WindowObservation)
	OnWindowDestroyed(id model.WindowID)
	OnWindowFocused(id model.WindowID)
	OnWindowUnfocused(id model.WindowID)
	OnWindowMoved(id model.WindowID, frame geometry.Rect)
	OnWindowResized(id model.WindowID, frame geometry.Rect)
	OnWindowMinimized(id model.WindowID, minimized bool)
	OnWindowTitleChanged(id model.WindowID, title string)
	OnWindowFullscreenChanged(id model.WindowID, fullscreen bool)
	OnAppLaunched(pid int, appID, appName string)
	OnAppTerminated(pid int)
	OnAppHidden(pid int)
	OnAppShown(pid int)
	OnAppActivated(pid int)
	OnScreensChanged(screens []model.Screen)
}

// Adapter is the platform adapter contract of spec.md §6: the core's
// only OS dependency. Every method that touches a specific window
// takes its model.WindowID; the adapter resolves it to the cached AX
// handle, returning tilingerr.NotFound if the handle has already been
// invalidated.
type Adapter interface {
	// EnumerateScreens lists every currently connected display. The
	// core calls this once at startup; later changes arrive as the
	// screen list carried by EventCallback.OnScreensChanged (spec.md
	// §4.5 "Screen hotplug").
	EnumerateScreens(ctx context.Context) ([]model.Screen, error)

	// SetWindowFrame pushes a computed frame to the OS. GetWindowFrame
	// reads the window's current frame, used by the effect applier's
	// frame diffing (spec.md §4.4) and by inferred-minimum-size
	// detection (spec.md §4.3).
	SetWindowFrame(ctx context.Context, id model.WindowID, frame geometry.Rect) error
	GetWindowFrame(ctx context.Context, id model.WindowID) (geometry.Rect, error)

	FocusWindow(ctx context.Context, id model.WindowID) error
	Minimize(ctx context.Context, id model.WindowID) error
	Unminimize(ctx context.Context, id model.WindowID) error

	HideApp(ctx context.Context, pid int) error
	UnhideApp(ctx context.Context, pid int) error

	// SubscribeWindowEvents registers cb to receive the event stream
	// described by EventCallback until ctx is canceled.
	SubscribeWindowEvents(ctx context.Context, cb EventCallback) error
}

// HandleCache tracks which window ids currently have a live OS handle,
// backing the events.HandleValidator interface the Event Processor
// uses to resolve pid-only destroy notifications into per-window
// Destroyed events (spec.md §4.2 duty 4, §3 "Platform handles ...
// owned by the Platform Adapter and looked up by window id").
type HandleCache interface {
	IsWindowValid(id model.WindowID) bool
}
