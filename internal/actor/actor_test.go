package actor

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourorg/tilecore/internal/config"
	"github.com/yourorg/tilecore/internal/geometry"
	"github.com/yourorg/tilecore/internal/model"
	"github.com/yourorg/tilecore/internal/tilingerr"
)

// recordingNotifier captures every notification the actor sends, for
// assertions that a handler fired the right kind of change.
type recordingNotifier struct {
	layoutChanged    []model.WorkspaceID
	focusChanged     []model.FocusState
	windowsChanged   []model.WorkspaceID
	workspaceActived []model.WorkspaceID
	appVisibility    map[int]bool
}

func (r *recordingNotifier) NotifyLayoutChanged(wsID model.WorkspaceID, urgent bool) {
	r.layoutChanged = append(r.layoutChanged, wsID)
}
func (r *recordingNotifier) NotifyFocusChanged(focus model.FocusState) {
	r.focusChanged = append(r.focusChanged, focus)
}
func (r *recordingNotifier) NotifyWorkspaceWindowsChanged(wsID model.WorkspaceID) {
	r.windowsChanged = append(r.windowsChanged, wsID)
}
func (r *recordingNotifier) NotifyWorkspaceActivated(wsID model.WorkspaceID) {
	r.workspaceActived = append(r.workspaceActived, wsID)
}
func (r *recordingNotifier) NotifyAppVisibility(pid int, hidden bool) {
	if r.appVisibility == nil {
		r.appVisibility = make(map[int]bool)
	}
	r.appVisibility[pid] = hidden
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Tiling.Master.Ratio = 60
	cfg.Tiling.Gaps.InnerH = 8
	cfg.Tiling.Gaps.InnerV = 8
	return cfg
}

// newTestActor spawns an actor over a fresh store with one screen and
// one workspace, returning the handle plus the ids for convenience.
func newTestActor(t *testing.T, notifier Notifier) (*Handle, model.ScreenID, model.WorkspaceID) {
	t.Helper()
	store := model.NewStore()
	screenID := model.ScreenID(1)
	store.UpsertScreen(model.Screen{
		ID:           screenID,
		Name:         "main",
		Frame:        geometry.NewRect(0, 0, 1920, 1080),
		VisibleFrame: geometry.NewRect(0, 0, 1920, 1080),
		IsMain:       true,
	})
	wsID := model.NewWorkspaceID()
	store.UpsertWorkspace(model.Workspace{
		ID:        wsID,
		Name:      "main",
		ScreenID:  screenID,
		Layout:    model.Dwindle,
		IsVisible: true,
		IsFocused: true,
	})

	a := New(store, testConfig(), testLogger(), notifier)
	h := a.Spawn(context.Background())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = h.Shutdown(ctx)
	})
	return h, screenID, wsID
}

func TestSpawnAndShutdown(t *testing.T) {
	h, _, _ := newTestActor(t, nil)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := h.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	// A second shutdown on an already-stopped actor is a no-op.
	if err := h.Shutdown(ctx); err != nil {
		t.Fatalf("second shutdown: %v", err)
	}
}

func TestWindowCreatedJoinsFocusedWorkspace(t *testing.T) {
	notifier := &recordingNotifier{}
	h, _, wsID := newTestActor(t, notifier)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := h.NotifyWindowCreated(WindowCreatedInfo{
		WindowID: 1, PID: 100, AppID: "com.test.app", AppName: "Test",
		Frame: geometry.NewRect(0, 0, 800, 600),
	}); err != nil {
		t.Fatalf("notify: %v", err)
	}

	ids, err := h.GetWorkspaceWindowIDs(ctx, wsID)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(ids) != 1 || ids[0] != 1 {
		t.Fatalf("window ids = %v, want [1]", ids)
	}

	has, err := h.HasWindow(ctx, 1)
	if err != nil || !has {
		t.Fatalf("HasWindow(1) = %v, %v, want true, nil", has, err)
	}
}

func TestWindowCreatedDetectsTab(t *testing.T) {
	h, _, _ := newTestActor(t, nil)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	frame := geometry.NewRect(0, 0, 800, 600)
	if err := h.NotifyWindowCreated(WindowCreatedInfo{
		WindowID: 1, PID: 100, AppID: "com.test.app", Frame: frame,
	}); err != nil {
		t.Fatalf("notify primary: %v", err)
	}
	if err := h.NotifyWindowCreated(WindowCreatedInfo{
		WindowID: 2, PID: 100, AppID: "com.test.app", Frame: frame,
	}); err != nil {
		t.Fatalf("notify tab: %v", err)
	}

	if has, _ := h.HasWindow(ctx, 2); has {
		t.Fatal("tab window should not be tracked as a standalone window")
	}
	tabs, err := h.QueryTabsOf(ctx, 1)
	if err != nil {
		t.Fatalf("QueryTabsOf: %v", err)
	}
	if len(tabs) != 1 || tabs[0] != 2 {
		t.Fatalf("tabs of 1 = %v, want [2]", tabs)
	}
	isTab, err := h.QueryIsTab(ctx, 2)
	if err != nil || !isTab {
		t.Fatalf("QueryIsTab(2) = %v, %v, want true, nil", isTab, err)
	}
}

func TestWindowDestroyedClearsFocusAndRelayouts(t *testing.T) {
	notifier := &recordingNotifier{}
	h, _, wsID := newTestActor(t, notifier)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_ = h.NotifyWindowCreated(WindowCreatedInfo{WindowID: 1, PID: 100, AppID: "a", Frame: geometry.NewRect(0, 0, 10, 10)})
	_ = h.NotifyWindowFocused(1)
	_ = h.NotifyWindowDestroyed(1)

	ids, err := h.GetWorkspaceWindowIDs(ctx, wsID)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("window ids = %v, want empty", ids)
	}

	focus, err := h.GetFocus(ctx)
	if err != nil {
		t.Fatalf("GetFocus: %v", err)
	}
	if focus.HasWindow {
		t.Fatal("destroyed window should no longer hold focus")
	}
}

func TestHandleWindowFocusedEnforcesSingleVisibleWorkspacePerScreen(t *testing.T) {
	h, screenID, wsA := newTestActor(t, nil)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	wsB := model.NewWorkspaceID()
	if _, err := h.ask(ctx, func(a *Actor) any {
		a.store.UpsertWorkspace(model.Workspace{ID: wsB, Name: "b", ScreenID: screenID, Layout: model.Dwindle})
		return nil
	}); err != nil {
		t.Fatalf("seed workspace b: %v", err)
	}

	_ = h.NotifyWindowCreated(WindowCreatedInfo{WindowID: 1, PID: 100, AppID: "a", Frame: geometry.NewRect(0, 0, 10, 10)})
	if err := h.MoveWindowToWorkspace(1, wsB); err != nil {
		t.Fatalf("move: %v", err)
	}
	_ = h.NotifyWindowFocused(1)

	wsAState, _, err := h.GetWorkspace(ctx, wsA)
	if err != nil {
		t.Fatalf("GetWorkspace a: %v", err)
	}
	wsBState, _, err := h.GetWorkspace(ctx, wsB)
	if err != nil {
		t.Fatalf("GetWorkspace b: %v", err)
	}
	if wsAState.IsVisible {
		t.Fatal("workspace a should have lost visibility once b's window was focused")
	}
	if !wsBState.IsVisible {
		t.Fatal("workspace b should be visible after its window is focused")
	}
}

func TestApplyPresetToFocusedWindow(t *testing.T) {
	h, _, _ := newTestActor(t, nil)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if _, err := h.ask(ctx, func(a *Actor) any {
		a.cfg.Tiling.Floating.Presets = append(a.cfg.Tiling.Floating.Presets,
			config.PresetSpec{Name: "center-small", Width: 0.5, Height: 0.5})
		return nil
	}); err != nil {
		t.Fatalf("seed preset: %v", err)
	}

	_ = h.NotifyWindowCreated(WindowCreatedInfo{WindowID: 1, PID: 1, AppID: "a", Frame: geometry.NewRect(0, 0, 10, 10)})
	_ = h.NotifyWindowFocused(1)

	if err := h.ApplyPreset("center-small"); err != nil {
		t.Fatalf("ApplyPreset: %v", err)
	}

	w, _, err := h.GetWindow(ctx, 1)
	if err != nil {
		t.Fatalf("GetWindow: %v", err)
	}
	if !w.IsFloating {
		t.Fatal("window should be floating after a preset is applied")
	}
	wantW, wantH := 1920*0.5, 1080*0.5
	if w.Frame.W != wantW || w.Frame.H != wantH {
		t.Fatalf("frame = %+v, want w=%v h=%v", w.Frame, wantW, wantH)
	}
	wantX, wantY := (1920-wantW)/2, (1080-wantH)/2
	if w.Frame.X != wantX || w.Frame.Y != wantY {
		t.Fatalf("frame origin = (%v, %v), want (%v, %v) (centered)", w.Frame.X, w.Frame.Y, wantX, wantY)
	}
}

func TestSwapWindowsWithinWorkspace(t *testing.T) {
	h, _, wsID := newTestActor(t, nil)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_ = h.NotifyWindowCreated(WindowCreatedInfo{WindowID: 1, PID: 1, AppID: "a", Frame: geometry.NewRect(0, 0, 1, 1)})
	_ = h.NotifyWindowCreated(WindowCreatedInfo{WindowID: 2, PID: 1, AppID: "a", Frame: geometry.NewRect(100, 100, 1, 1)})

	if err := h.SwapWindows(1, 2); err != nil {
		t.Fatalf("SwapWindows: %v", err)
	}

	ids, err := h.GetWorkspaceWindowIDs(ctx, wsID)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(ids) != 2 || ids[0] != 2 || ids[1] != 1 {
		t.Fatalf("window order = %v, want [2 1]", ids)
	}
}

func TestResizeSplitReportsClamping(t *testing.T) {
	h, _, wsID := newTestActor(t, nil)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_ = h.NotifyWindowCreated(WindowCreatedInfo{WindowID: 1, PID: 1, AppID: "a", Frame: geometry.NewRect(0, 0, 1, 1)})
	_ = h.NotifyWindowCreated(WindowCreatedInfo{WindowID: 2, PID: 1, AppID: "a", Frame: geometry.NewRect(100, 100, 1, 1)})

	ack, err := h.ResizeSplit(ctx, wsID, 0, 10.0)
	if err != nil {
		t.Fatalf("ResizeSplit: %v", err)
	}
	if !ack.Clamped {
		t.Fatalf("ack = %+v, want Clamped=true for an out-of-range delta", ack)
	}
	if ack.AppliedRatio != 0.95 {
		t.Fatalf("applied ratio = %v, want 0.95 (the upper clamp)", ack.AppliedRatio)
	}
}

func TestReloadConfigAppliesGapsLive(t *testing.T) {
	h, _, wsID := newTestActor(t, nil)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	// Inner gaps only separate adjacent cells, so two windows are needed
	// for an inner-gap change to move a frame.
	_ = h.NotifyWindowCreated(WindowCreatedInfo{WindowID: 1, PID: 1, AppID: "a", Frame: geometry.NewRect(0, 0, 1, 1)})
	_ = h.NotifyWindowCreated(WindowCreatedInfo{WindowID: 2, PID: 2, AppID: "b", Frame: geometry.NewRect(0, 0, 2, 2)})

	before, err := h.GetLayout(ctx, wsID)
	if err != nil || len(before) != 2 {
		t.Fatalf("GetLayout before reload: %+v, %v", before, err)
	}

	wide := testConfig()
	wide.Tiling.Gaps.InnerH = 80
	wide.Tiling.Gaps.InnerV = 80
	if err := h.ReloadConfig(ctx, wide); err != nil {
		t.Fatalf("ReloadConfig: %v", err)
	}

	after, err := h.GetLayout(ctx, wsID)
	if err != nil || len(after) != 2 {
		t.Fatalf("GetLayout after reload: %+v, %v", after, err)
	}
	if after[0].Frame == before[0].Frame {
		t.Fatalf("frame unchanged after gap reload: %+v", after[0].Frame)
	}
}

func TestReloadConfigRejectsTopologyChange(t *testing.T) {
	h, _, _ := newTestActor(t, nil)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	changed := testConfig()
	changed.Tiling.Workspaces = []config.WorkspaceSpec{{Name: "extra", Screen: "main"}}

	err := h.ReloadConfig(ctx, changed)
	if err == nil {
		t.Fatal("ReloadConfig: want InvalidArgument for a topology change, got nil")
	}
	if kind := tilingerr.KindOf(err); kind != tilingerr.InvalidArgument {
		t.Fatalf("error kind = %v, want InvalidArgument", kind)
	}
}

func TestSetEnabledIsObservedByNextCommand(t *testing.T) {
	h, _, _ := newTestActor(t, nil)
	if err := h.SetEnabled(false); err != nil {
		t.Fatalf("SetEnabled: %v", err)
	}
	// SetEnabled is fire-and-forget; round-trip through a query to
	// prove the command was actually processed in order.
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if _, err := h.GetAllScreens(ctx); err != nil {
		t.Fatalf("GetAllScreens: %v", err)
	}
}
