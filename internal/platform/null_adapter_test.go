package platform

import (
	"context"
	"testing"

	"github.com/yourorg/tilecore/internal/geometry"
	"github.com/yourorg/tilecore/internal/model"
)

type recordingCallback struct {
	created     []model.WindowID
	destroyed   []model.WindowID
	moved       map[model.WindowID]geometry.Rect
	screens     [][]model.Screen
	terminated  []int
}

func newRecordingCallback() *recordingCallback {
	return &recordingCallback{moved: make(map[model.WindowID]geometry.Rect)}
}

func (r *recordingCallback) OnWindowCreated(screenID model.ScreenID, info WindowObservation) {
	r.created = append(r.created, info.WindowID)
}
func (r *recordingCallback) OnWindowDestroyed(id model.WindowID) { r.destroyed = append(r.destroyed, id) }
func (r *recordingCallback) OnWindowFocused(id model.WindowID)   {}
func (r *recordingCallback) OnWindowUnfocused(id model.WindowID) {}
func (r *recordingCallback) OnWindowMoved(id model.WindowID, frame geometry.Rect)  { r.moved[id] = frame }
func (r *recordingCallback) OnWindowResized(id model.WindowID, frame geometry.Rect) { r.moved[id] = frame }
func (r *recordingCallback) OnWindowMinimized(id model.WindowID, minimized bool)     {}
func (r *recordingCallback) OnWindowTitleChanged(id model.WindowID, title string)    {}
func (r *recordingCallback) OnWindowFullscreenChanged(id model.WindowID, fullscreen bool) {}
func (r *recordingCallback) OnAppLaunched(pid int, appID, appName string)            {}
func (r *recordingCallback) OnAppTerminated(pid int)                                { r.terminated = append(r.terminated, pid) }
func (r *recordingCallback) OnAppHidden(pid int) {}
func (r *recordingCallback) OnAppShown(pid int)  {}
func (r *recordingCallback) OnAppActivated(pid int) {}
func (r *recordingCallback) OnScreensChanged(screens []model.Screen) {
	r.screens = append(r.screens, screens)
}

func TestNullAdapterEnumerateScreensReflectsSeeds(t *testing.T) {
	n := NewNullAdapter()
	n.SeedScreen(model.Screen{ID: 1, Name: "main", IsMain: true, Frame: geometry.NewRect(0, 0, 1920, 1080)})
	n.SeedScreen(model.Screen{ID: 2, Name: "side", Frame: geometry.NewRect(1920, 0, 1280, 720)})

	screens, err := n.EnumerateScreens(context.Background())
	if err != nil {
		t.Fatalf("EnumerateScreens: %v", err)
	}
	if len(screens) != 2 {
		t.Fatalf("screens = %d, want 2", len(screens))
	}
}

func TestNullAdapterWindowFrameRoundTrip(t *testing.T) {
	n := NewNullAdapter()
	n.SeedWindow(1, WindowObservation{WindowID: 10, PID: 100, Frame: geometry.NewRect(0, 0, 100, 100)})

	if err := n.SetWindowFrame(context.Background(), 10, geometry.NewRect(5, 5, 50, 50)); err != nil {
		t.Fatalf("SetWindowFrame: %v", err)
	}
	frame, err := n.GetWindowFrame(context.Background(), 10)
	if err != nil {
		t.Fatalf("GetWindowFrame: %v", err)
	}
	if !frame.ApproxEqual(geometry.NewRect(5, 5, 50, 50)) {
		t.Fatalf("frame = %+v, want {5 5 50 50}", frame)
	}
}

func TestNullAdapterUnknownWindowIsNotFound(t *testing.T) {
	n := NewNullAdapter()
	if _, err := n.GetWindowFrame(context.Background(), 999); err == nil {
		t.Fatal("expected error for unseeded window")
	}
	if err := n.FocusWindow(context.Background(), 999); err == nil {
		t.Fatal("expected error for unseeded window")
	}
}

func TestNullAdapterDestroyInvalidatesHandle(t *testing.T) {
	n := NewNullAdapter()
	n.SeedWindow(1, WindowObservation{WindowID: 10, PID: 100, Frame: geometry.NewRect(0, 0, 100, 100)})
	if !n.cache.IsWindowValid(10) {
		t.Fatal("window should be valid after seeding")
	}
	n.DestroyWindow(10)
	if n.cache.IsWindowValid(10) {
		t.Fatal("window should be invalid after destroy")
	}
	if _, err := n.GetWindowFrame(context.Background(), 10); err == nil {
		t.Fatal("expected error after destroy")
	}
}

func TestNullAdapterHideUnhideApp(t *testing.T) {
	n := NewNullAdapter()
	if n.IsHidden(100) {
		t.Fatal("app should start visible")
	}
	if err := n.HideApp(context.Background(), 100); err != nil {
		t.Fatalf("HideApp: %v", err)
	}
	if !n.IsHidden(100) {
		t.Fatal("app should be hidden")
	}
	if err := n.UnhideApp(context.Background(), 100); err != nil {
		t.Fatalf("UnhideApp: %v", err)
	}
	if n.IsHidden(100) {
		t.Fatal("app should be unhidden")
	}
}

func TestNullAdapterSubscriptionDeliversEvents(t *testing.T) {
	n := NewNullAdapter()
	cb := newRecordingCallback()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := n.SubscribeWindowEvents(ctx, cb); err != nil {
		t.Fatalf("SubscribeWindowEvents: %v", err)
	}

	n.SeedScreen(model.Screen{ID: 1, Name: "main", IsMain: true})
	n.SeedWindow(1, WindowObservation{WindowID: 10, PID: 100, Frame: geometry.NewRect(0, 0, 10, 10)})
	n.MoveResizeWindow(10, geometry.NewRect(1, 1, 10, 10))
	n.TerminateApp(100)

	if len(cb.screens) != 1 {
		t.Fatalf("screens callbacks = %d, want 1", len(cb.screens))
	}
	if len(cb.created) != 1 || cb.created[0] != 10 {
		t.Fatalf("created = %v, want [10]", cb.created)
	}
	if frame, ok := cb.moved[10]; !ok || frame.X != 1 {
		t.Fatalf("moved[10] = %+v, ok=%v", frame, ok)
	}
	if len(cb.terminated) != 1 || cb.terminated[0] != 100 {
		t.Fatalf("terminated = %v, want [100]", cb.terminated)
	}
}

func TestNullAdapterUnsubscribesOnContextCancel(t *testing.T) {
	n := NewNullAdapter()
	cb := newRecordingCallback()
	ctx, cancel := context.WithCancel(context.Background())
	if err := n.SubscribeWindowEvents(ctx, cb); err != nil {
		t.Fatalf("SubscribeWindowEvents: %v", err)
	}
	cancel()

	// give the unsubscribe goroutine a chance to run before asserting;
	// SeedScreen after cancellation must not panic on a stale callback.
	n.SeedScreen(model.Screen{ID: 5, Name: "late"})
}
