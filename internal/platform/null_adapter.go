package platform

import (
	"context"
	"sync"

	"github.com/yourorg/tilecore/internal/geometry"
	"github.com/yourorg/tilecore/internal/model"
	"github.com/yourorg/tilecore/internal/tilingerr"
)

// NullAdapter is an in-memory Adapter double. It never touches the real
// Accessibility API; it exists so the rest of the core can be built,
// wired, and tested without a macOS build target, and so integration
// tests can script window/app/screen fixtures directly. Seed/Destroy
// are test-only entry points; production code only ever calls the
// Adapter interface methods.
type NullAdapter struct {
	cache *handleCache

	mu      sync.RWMutex
	screens []model.Screen
	frames  map[model.WindowID]geometry.Rect
	hidden  map[int]bool

	subMu sync.Mutex
	cb    EventCallback
}

// NewNullAdapter builds an empty NullAdapter; call Seed* helpers to
// populate it before handing it to a Processor/Actor pair.
func NewNullAdapter() *NullAdapter {
	return &NullAdapter{
		cache:  newHandleCache(),
		frames: make(map[model.WindowID]geometry.Rect),
		hidden: make(map[int]bool),
	}
}

// HandleCache exposes the adapter's handle validity check as the
// events.HandleValidator the Event Processor depends on.
func (n *NullAdapter) HandleCache() HandleCache { return n.cache }

func (n *NullAdapter) EnumerateScreens(ctx context.Context) ([]model.Screen, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]model.Screen, len(n.screens))
	copy(out, n.screens)
	return out, nil
}

func (n *NullAdapter) SetWindowFrame(ctx context.Context, id model.WindowID, frame geometry.Rect) error {
	if !n.cache.IsWindowValid(id) {
		return tilingerr.New(tilingerr.NotFound, "platform.SetWindowFrame", "no handle for window")
	}
	n.mu.Lock()
	n.frames[id] = frame
	n.mu.Unlock()
	return nil
}

func (n *NullAdapter) GetWindowFrame(ctx context.Context, id model.WindowID) (geometry.Rect, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	frame, ok := n.frames[id]
	if !ok {
		return geometry.Rect{}, tilingerr.New(tilingerr.NotFound, "platform.GetWindowFrame", "no handle for window")
	}
	return frame, nil
}

func (n *NullAdapter) FocusWindow(ctx context.Context, id model.WindowID) error {
	if !n.cache.IsWindowValid(id) {
		return tilingerr.New(tilingerr.NotFound, "platform.FocusWindow", "no handle for window")
	}
	return nil
}

func (n *NullAdapter) Minimize(ctx context.Context, id model.WindowID) error {
	if !n.cache.IsWindowValid(id) {
		return tilingerr.New(tilingerr.NotFound, "platform.Minimize", "no handle for window")
	}
	return nil
}

func (n *NullAdapter) Unminimize(ctx context.Context, id model.WindowID) error {
	if !n.cache.IsWindowValid(id) {
		return tilingerr.New(tilingerr.NotFound, "platform.Unminimize", "no handle for window")
	}
	return nil
}

func (n *NullAdapter) HideApp(ctx context.Context, pid int) error {
	n.mu.Lock()
	n.hidden[pid] = true
	n.mu.Unlock()
	return nil
}

func (n *NullAdapter) UnhideApp(ctx context.Context, pid int) error {
	n.mu.Lock()
	n.hidden[pid] = false
	n.mu.Unlock()
	return nil
}

// IsHidden reports the app-level hidden state HideApp/UnhideApp last
// set, used by tests asserting the effect applier's app visibility sync
// (spec.md §4.4).
func (n *NullAdapter) IsHidden(pid int) bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.hidden[pid]
}

func (n *NullAdapter) SubscribeWindowEvents(ctx context.Context, cb EventCallback) error {
	n.subMu.Lock()
	n.cb = cb
	n.subMu.Unlock()
	go func() {
		<-ctx.Done()
		n.subMu.Lock()
		n.cb = nil
		n.subMu.Unlock()
	}()
	return nil
}

// SeedScreen registers a display, as EnumerateScreens or a real AX
// reconfiguration callback would, and forwards it to the subscribed
// callback if one is attached.
func (n *NullAdapter) SeedScreen(screen model.Screen) {
	n.mu.Lock()
	found := false
	for i, s := range n.screens {
		if s.ID == screen.ID {
			n.screens[i] = screen
			found = true
			break
		}
	}
	if !found {
		n.screens = append(n.screens, screen)
	}
	screens := append([]model.Screen(nil), n.screens...)
	n.mu.Unlock()

	n.forEachCallback(func(cb EventCallback) { cb.OnScreensChanged(screens) })
}

// SeedWindow creates a handle cache entry and an initial frame for id,
// then delivers a WindowCreated observation through the subscribed
// callback, the way a real AX window-created notification would.
func (n *NullAdapter) SeedWindow(screenID model.ScreenID, obs WindowObservation) {
	n.cache.put(obs.WindowID, obs.PID)
	n.mu.Lock()
	n.frames[obs.WindowID] = obs.Frame
	n.mu.Unlock()

	n.forEachCallback(func(cb EventCallback) { cb.OnWindowCreated(screenID, obs) })
}

// DestroyWindow invalidates id's handle and delivers the corresponding
// destroy observation.
func (n *NullAdapter) DestroyWindow(id model.WindowID) {
	n.cache.invalidate(id)
	n.mu.Lock()
	delete(n.frames, id)
	n.mu.Unlock()

	n.forEachCallback(func(cb EventCallback) { cb.OnWindowDestroyed(id) })
}

// MoveResizeWindow simulates the OS reporting a new frame for an
// already-created window, e.g. from a user drag.
func (n *NullAdapter) MoveResizeWindow(id model.WindowID, frame geometry.Rect) {
	n.mu.Lock()
	n.frames[id] = frame
	n.mu.Unlock()

	n.forEachCallback(func(cb EventCallback) { cb.OnWindowMoved(id, frame) })
}

// TerminateApp simulates the OS reporting pid's process has exited: its
// windows' AX handles go stale exactly as they would for a real
// terminated process, without a corresponding per-window destroy
// notification ever arriving first, the scenario internal/events'
// destroy inference (spec.md §4.2 duty 4) exists for.
func (n *NullAdapter) TerminateApp(pid int) {
	for _, id := range n.cache.windowsForPID(pid) {
		n.cache.invalidate(id)
	}
	n.forEachCallback(func(cb EventCallback) { cb.OnAppTerminated(pid) })
}

func (n *NullAdapter) forEachCallback(fn func(EventCallback)) {
	n.subMu.Lock()
	cb := n.cb
	n.subMu.Unlock()
	if cb != nil {
		fn(cb)
	}
}
