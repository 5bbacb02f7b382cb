package actor

import (
	"context"
	"time"

	"github.com/yourorg/tilecore/internal/geometry"
	"github.com/yourorg/tilecore/internal/model"
)

// geometryTolerancePx is the slack used when deciding whether a
// reported frame diverges enough from the expected one to update an
// inferred minimum size (spec.md §4.3 "Inferred minimums").
const geometryTolerancePx = 5.0

// handleWindowCreated admits a newly observed window into the model,
// unless it turns out to be a tab of an already-tracked window (same
// app, matching frame), in which case it is registered in the tab
// registry and never gains a workspace membership or triggers layout
// (spec.md §4.5 "Tab detection", grounded on handlers/window.rs's
// on_window_created_internal).
func (a *Actor) handleWindowCreated(ctx context.Context, info WindowCreatedInfo) {
	if existing, ok := a.store.GetWindow(info.WindowID); ok {
		existing.Frame = info.Frame
		existing.Title = info.Title
		a.store.UpsertWindow(existing)
		return
	}

	if primary, ok := a.findTabPrimary(info); ok {
		a.store.RegisterTab(info.WindowID, primary)
		return
	}

	wsID, ok := a.findWorkspaceForWindow(info)
	if !ok {
		a.logger.WithField("window_id", info.WindowID).Warn("no workspace available for new window")
		return
	}

	w := model.Window{
		ID:            info.WindowID,
		PID:           info.PID,
		AppID:         info.AppID,
		AppName:       info.AppName,
		Title:         info.Title,
		Frame:         info.Frame,
		ExpectedFrame: info.Frame,
		MinimumSize:   info.MinimumSize,
		WorkspaceID:   wsID,
		IsMinimized:   info.IsMinimized,
		IsFullscreen:  info.IsFullscreen,
		CreatedAt:     currentTime(),
	}
	a.store.UpsertWindow(w)

	focus := a.store.Focus()
	afterID, hasAfter := model.WindowID(0), false
	if focus.HasWindow {
		if fw, ok := a.store.GetWindow(focus.WindowID); ok && fw.WorkspaceID == wsID {
			afterID, hasAfter = focus.WindowID, true
		}
	}
	a.store.PlaceWindowAfter(info.WindowID, wsID, afterID, hasAfter)

	a.notifyWindowsChanged(wsID)
	a.relayout(wsID, false)
}

// findTabPrimary reports whether info matches an already-tracked
// window's app and frame closely enough to be considered one of its
// tabs, returning that window's id (spec.md §4.5, tabs::is_new_window_a_tab).
func (a *Actor) findTabPrimary(info WindowCreatedInfo) (model.WindowID, bool) {
	for _, w := range a.store.Windows() {
		if w.PID != info.PID || w.AppID != info.AppID {
			continue
		}
		if w.Frame.ApproxEqual(info.Frame) {
			return w.ID, true
		}
	}
	return 0, false
}

// findWorkspaceForWindow resolves which workspace a newly created
// window should join: the currently focused workspace if one exists,
// otherwise the visible workspace on the main screen, otherwise any
// workspace at all.
func (a *Actor) findWorkspaceForWindow(info WindowCreatedInfo) (model.WorkspaceID, bool) {
	focus := a.store.Focus()
	if focus.HasWorkspace {
		if _, ok := a.store.GetWorkspace(focus.WorkspaceID); ok {
			return focus.WorkspaceID, true
		}
	}
	if main, ok := a.store.MainScreen(); ok {
		if ws, ok := a.store.VisibleWorkspaceOnScreen(main.ID); ok {
			return ws.ID, true
		}
	}
	all := a.store.Workspaces()
	if len(all) == 0 {
		return model.WorkspaceID{}, false
	}
	return all[0].ID, true
}

// handleWindowDestroyed removes a window from the model and clears it
// from any focus state it held, then triggers a relayout of its
// workspace (grounded on handlers/window.rs's on_window_destroyed).
func (a *Actor) handleWindowDestroyed(ctx context.Context, id model.WindowID) {
	if _, ok := a.store.PrimaryForTab(id); ok {
		a.store.RemoveWindow(id)
		return
	}

	w, ok := a.store.RemoveWindow(id)
	if !ok {
		return
	}
	a.store.RemoveWindowFromWorkspace(id, w.WorkspaceID)

	if ws, ok := a.store.GetWorkspace(w.WorkspaceID); ok {
		if ws.FocusedWindowIndex >= len(ws.WindowIDs) {
			a.store.MutateWorkspace(ws.ID, func(ws *model.Workspace) {
				if len(ws.WindowIDs) == 0 {
					ws.FocusedWindowIndex = 0
				} else if ws.FocusedWindowIndex >= len(ws.WindowIDs) {
					ws.FocusedWindowIndex = len(ws.WindowIDs) - 1
				}
			})
		}
	}

	focus := a.store.Focus()
	if focus.HasWindow && focus.WindowID == id {
		focus.HasWindow = false
		a.store.SetFocus(focus)
	}

	a.notifyWindowsChanged(w.WorkspaceID)
	a.relayout(w.WorkspaceID, false)
}

// handleWindowFocused updates the global focus tuple and enforces the
// single-visible-workspace-per-screen invariant: the newly focused
// window's workspace becomes visible+focused, every other workspace on
// the same screen becomes non-visible, and workspaces on other screens
// are left untouched (spec.md §4.4 "App visibility sync", grounded on
// handlers/window.rs's on_window_focused + sync_window_visibility_for_workspaces).
func (a *Actor) handleWindowFocused(ctx context.Context, id model.WindowID) {
	w, ok := a.store.GetWindow(id)
	if !ok {
		return
	}
	ws, ok := a.store.GetWorkspace(w.WorkspaceID)
	if !ok {
		return
	}

	hiddenBefore := a.workspacesOnlyVisibleBefore(ws.ScreenID, ws.ID)
	wasVisible := ws.IsVisible

	for _, other := range a.store.WorkspacesOnScreen(ws.ScreenID) {
		shouldFocus := other.ID == ws.ID
		a.store.MutateWorkspace(other.ID, func(o *model.Workspace) {
			o.IsVisible = shouldFocus
			o.IsFocused = shouldFocus
		})
	}

	for i, wid := range ws.WindowIDs {
		if wid == id {
			a.store.MutateWorkspace(ws.ID, func(w *model.Workspace) { w.FocusedWindowIndex = i })
			break
		}
	}

	a.store.SetFocus(model.FocusState{
		WindowID: id, HasWindow: true,
		WorkspaceID: ws.ID, HasWorkspace: true,
		ScreenID: ws.ScreenID, HasScreen: true,
	})
	a.store.RecordFocusHistory(ws.ID, id)

	var justShown []model.Workspace
	if !wasVisible {
		justShown = []model.Workspace{ws}
	}
	a.syncAppVisibility(hiddenBefore, justShown)
	a.notifyFocusChanged()
}

// workspacesOnlyVisibleBefore snapshots, for every workspace on
// screenID other than keepID, whether it was visible prior to this
// focus change, so syncAppVisibility knows which apps to hide.
func (a *Actor) workspacesOnlyVisibleBefore(screenID model.ScreenID, keepID model.WorkspaceID) []model.Workspace {
	var out []model.Workspace
	for _, ws := range a.store.WorkspacesOnScreen(screenID) {
		if ws.ID != keepID && ws.IsVisible {
			out = append(out, ws)
		}
	}
	return out
}

// syncAppVisibility hides applications that were only present in
// workspaces that just became hidden and unhides applications needed
// in workspaces that just became visible, exempting PiP-hosting apps
// from hiding (spec.md §4.4 "App visibility sync", grounded on
// handlers/window.rs's sync_window_visibility_for_workspaces). Either
// slice may be nil.
func (a *Actor) syncAppVisibility(justHidden, justShown []model.Workspace) {
	if a.notifier == nil || (len(justHidden) == 0 && len(justShown) == 0) {
		return
	}
	visiblePIDs := map[int]bool{}
	for _, w := range a.store.Windows() {
		if ws, ok := a.store.GetWorkspace(w.WorkspaceID); ok && ws.IsVisible {
			visiblePIDs[w.PID] = true
		}
	}
	for _, ws := range justHidden {
		for _, id := range ws.WindowIDs {
			w, ok := a.store.GetWindow(id)
			if !ok || w.IsPictureInPicture || visiblePIDs[w.PID] {
				continue
			}
			a.hideApp(w.PID)
		}
	}
	for _, ws := range justShown {
		for _, id := range ws.WindowIDs {
			w, ok := a.store.GetWindow(id)
			if !ok {
				continue
			}
			a.unhideApp(w.PID)
		}
	}
}

// hideApp and unhideApp record the Effect Applier's hide/unhide intent
// through the Notifier; the actor never talks to the Platform Adapter
// directly (spec.md §5 "Ownership").
func (a *Actor) hideApp(pid int)   { a.notifier.NotifyAppVisibility(pid, true) }
func (a *Actor) unhideApp(pid int) { a.notifier.NotifyAppVisibility(pid, false) }

// handleWindowUnfocused is an explicit no-op: focus clearing only
// happens through handleWindowFocused's replacement of the global
// tuple, matching handlers/window.rs's on_window_unfocused comment
// that a stray unfocus notification must never clear focus state
// a subsequent focus event already moved past.
func (a *Actor) handleWindowUnfocused(ctx context.Context, id model.WindowID) {}

// handleWindowMoved and handleWindowResized both update the window's
// frame, detect an inferred minimum size when the reported frame
// undershoots the expected one, and request a relayout -- unless a
// drag/animation is in flight, in which case only the frame is stored
// (spec.md §4.4 "Drag detection", §4.3 "Inferred minimums").
func (a *Actor) handleWindowMoved(ctx context.Context, id model.WindowID, frame geometry.Rect) {
	a.applyReportedFrame(id, frame)
}

func (a *Actor) handleWindowResized(ctx context.Context, id model.WindowID, frame geometry.Rect) {
	a.applyReportedFrame(id, frame)
}

func (a *Actor) applyReportedFrame(id model.WindowID, frame geometry.Rect) {
	w, ok := a.store.GetWindow(id)
	if !ok {
		return
	}
	suppress := a.dragInProgress || a.inSettlingWindow()

	a.store.MutateWindow(id, func(w *model.Window) { w.Frame = frame })
	if suppress {
		return
	}

	if a.detectInferredMinimum(w, frame) {
		a.relayout(w.WorkspaceID, true)
		return
	}
	a.relayout(w.WorkspaceID, false)
}

// detectInferredMinimum compares the actual frame the OS reports back
// against the window's expected frame and, when it falls short beyond
// geometryTolerancePx on an axis, records that axis as its inferred
// minimum (spec.md §4.3). A window with any declared minimum size is
// skipped entirely.
func (a *Actor) detectInferredMinimum(w model.Window, actual geometry.Rect) bool {
	if !w.MinimumSize.IsZero() {
		return false
	}
	expected := w.ExpectedFrame
	if expected.IsEmpty() {
		return false
	}
	changed := false
	inferred := w.InferredMinimumSize
	if expected.W-actual.W > geometryTolerancePx {
		inferred.W = actual.W
		changed = true
	}
	if expected.H-actual.H > geometryTolerancePx {
		inferred.H = actual.H
		changed = true
	}
	if !changed {
		return false
	}
	a.store.MutateWindow(w.ID, func(w *model.Window) { w.InferredMinimumSize = inferred })
	return true
}

// inSettlingWindow reports whether the actor is currently inside the
// post-animation settling window the Effect Applier establishes, during
// which geometry events are known animation intermediates and must not
// corrupt the model (spec.md §4.4).
func (a *Actor) inSettlingWindow() bool {
	return !a.settleUntil.IsZero() && currentTime().Before(a.settleUntil)
}

func (a *Actor) handleWindowMinimized(ctx context.Context, id model.WindowID, minimized bool) {
	w, ok := a.store.GetWindow(id)
	if !ok {
		return
	}
	a.store.MutateWindow(id, func(w *model.Window) { w.IsMinimized = minimized })
	a.notifyWindowsChanged(w.WorkspaceID)
	a.relayout(w.WorkspaceID, false)
}

func (a *Actor) handleWindowTitleChanged(ctx context.Context, id model.WindowID, title string) {
	w, ok := a.store.GetWindow(id)
	if !ok {
		return
	}
	a.store.MutateWindow(id, func(w *model.Window) { w.Title = title })
	focus := a.store.Focus()
	if focus.HasWorkspace && focus.WorkspaceID == w.WorkspaceID {
		a.notifyWindowsChanged(w.WorkspaceID)
	}
}

func (a *Actor) handleWindowFullscreenChanged(ctx context.Context, id model.WindowID, fullscreen bool) {
	w, ok := a.store.GetWindow(id)
	if !ok {
		return
	}
	a.store.MutateWindow(id, func(w *model.Window) { w.IsFullscreen = fullscreen })
	a.relayout(w.WorkspaceID, false)
}

// handleBatchedGeometryUpdates applies a coalesced batch of move/resize
// events from one screen's per-display timer (spec.md §4.2). Each
// update is treated exactly as its single-event counterpart, except
// relayout notifications are deduplicated per workspace rather than
// fired once per window.
func (a *Actor) handleBatchedGeometryUpdates(ctx context.Context, updates []GeometryUpdate) {
	touched := map[model.WorkspaceID]bool{}
	urgent := map[model.WorkspaceID]bool{}

	for _, u := range updates {
		w, ok := a.store.GetWindow(u.WindowID)
		if !ok {
			continue
		}
		suppress := a.dragInProgress || a.inSettlingWindow()
		a.store.MutateWindow(u.WindowID, func(win *model.Window) { win.Frame = u.Frame })
		if suppress {
			continue
		}
		touched[w.WorkspaceID] = true
		if a.detectInferredMinimum(w, u.Frame) {
			urgent[w.WorkspaceID] = true
		}
	}

	for wsID := range touched {
		a.relayout(wsID, urgent[wsID])
	}
}

// handleSetExpectedFrames records the frame the Effect Applier just
// asked the platform adapter to set, so the next reported frame can be
// compared against it for inferred-minimum detection (spec.md §4.3).
func (a *Actor) handleSetExpectedFrames(ctx context.Context, frames map[model.WindowID]geometry.Rect) {
	for id, frame := range frames {
		a.store.MutateWindow(id, func(w *model.Window) { w.ExpectedFrame = frame })
	}
}

// currentTime is the only place this package touches wall-clock time,
// isolated so a future deterministic-clock injection point is a
// one-line change.
func currentTime() time.Time { return time.Now() }
