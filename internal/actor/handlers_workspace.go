package actor

import (
	"context"

	"github.com/yourorg/tilecore/internal/model"
)

// handleSwitchWorkspace makes the named workspace visible and focused
// on its screen, restoring its last-focused window if it has one.
// When the workspace has a configured preset and exactly one window,
// the preset is applied instead of the tiling layout (SPEC_FULL §C.1
// "Preset application on workspace activation").
func (a *Actor) handleSwitchWorkspace(ctx context.Context, name string) {
	ws, ok := a.store.WorkspaceByName(name)
	if !ok {
		a.logger.WithField("workspace", name).Warn("switch to unknown workspace")
		return
	}
	a.activateWorkspace(ws.ID)
}

// activateWorkspace is the shared body of SwitchWorkspace and
// CycleWorkspace: it enforces the one-visible-workspace-per-screen
// invariant, restores focus history, and either re-tiles or applies a
// configured preset.
func (a *Actor) activateWorkspace(wsID model.WorkspaceID) {
	ws, ok := a.store.GetWorkspace(wsID)
	if !ok {
		return
	}

	hiddenBefore := a.workspacesOnlyVisibleBefore(ws.ScreenID, ws.ID)
	wasVisible := ws.IsVisible

	for _, other := range a.store.WorkspacesOnScreen(ws.ScreenID) {
		isTarget := other.ID == ws.ID
		a.store.MutateWorkspace(other.ID, func(o *model.Workspace) {
			o.IsVisible = isTarget
			o.IsFocused = isTarget
		})
	}

	var justShown []model.Workspace
	if !wasVisible {
		justShown = []model.Workspace{ws}
	}
	a.syncAppVisibility(hiddenBefore, justShown)

	focusID, hasFocus := model.WindowID(0), false
	if last, ok := a.store.LastFocusedWindow(ws.ID); ok {
		if _, stillThere := a.store.GetWindow(last); stillThere {
			focusID, hasFocus = last, true
		}
	}
	if !hasFocus && len(ws.WindowIDs) > 0 {
		focusID, hasFocus = ws.WindowIDs[0], true
	}
	if hasFocus {
		a.store.SetFocus(model.FocusState{
			WindowID: focusID, HasWindow: true,
			WorkspaceID: ws.ID, HasWorkspace: true,
			ScreenID: ws.ScreenID, HasScreen: true,
		})
	} else {
		a.store.SetFocus(model.FocusState{
			WorkspaceID: ws.ID, HasWorkspace: true,
			ScreenID: ws.ScreenID, HasScreen: true,
		})
	}

	a.notifyActivated(ws.ID)
	a.notifyFocusChanged()

	if a.tryApplyPresetOnOpen(ws) {
		return
	}
	a.relayout(ws.ID, false)
}

// tryApplyPresetOnOpen applies ws's configured preset to its sole
// window instead of tiling it, when both conditions hold (SPEC_FULL
// §C.1). Returns true if it did so.
func (a *Actor) tryApplyPresetOnOpen(ws model.Workspace) bool {
	if ws.PresetOnOpen == "" || len(ws.WindowIDs) != 1 {
		return false
	}
	screen, ok := a.store.GetScreen(ws.ScreenID)
	if !ok {
		return false
	}
	return a.applyPresetToWindow(ws.WindowIDs[0], ws.PresetOnOpen, screen)
}

// handleCycleWorkspace activates the workspace adjacent to the
// currently focused one, in declaration order, wrapping around.
func (a *Actor) handleCycleWorkspace(ctx context.Context, dir CycleDirection) {
	all := a.store.Workspaces()
	if len(all) == 0 {
		return
	}
	focus := a.store.Focus()
	idx := 0
	for i, ws := range all {
		if focus.HasWorkspace && ws.ID == focus.WorkspaceID {
			idx = i
			break
		}
	}
	n := len(all)
	var next int
	if dir == CyclePrevious {
		next = (idx - 1 + n) % n
	} else {
		next = (idx + 1) % n
	}
	a.activateWorkspace(all[next].ID)
}

func (a *Actor) handleSetLayout(ctx context.Context, wsID model.WorkspaceID, tag model.LayoutTag) {
	if !a.store.MutateWorkspace(wsID, func(w *model.Workspace) { w.Layout = tag }) {
		return
	}
	a.relayout(wsID, false)
}

// layoutCycleOrder is the fixed rotation CycleLayout advances through.
var layoutCycleOrder = []model.LayoutTag{
	model.Dwindle, model.Split, model.Grid, model.Master, model.Monocle,
}

func (a *Actor) handleCycleLayout(ctx context.Context, wsID model.WorkspaceID) {
	ws, ok := a.store.GetWorkspace(wsID)
	if !ok {
		return
	}
	idx := 0
	for i, tag := range layoutCycleOrder {
		if tag == ws.Layout {
			idx = i
			break
		}
	}
	next := layoutCycleOrder[(idx+1)%len(layoutCycleOrder)]
	a.handleSetLayout(ctx, wsID, next)
}

// handleBalanceWorkspace resets a workspace's split ratios to an equal
// share, the "un-drag everything" command.
func (a *Actor) handleBalanceWorkspace(ctx context.Context, wsID model.WorkspaceID) {
	if !a.store.MutateWorkspace(wsID, func(w *model.Workspace) { w.SplitRatios = nil }) {
		return
	}
	a.relayout(wsID, false)
}

// handleMoveWindowToWorkspace relocates a window to another workspace,
// re-tiling both its origin and destination.
func (a *Actor) handleMoveWindowToWorkspace(ctx context.Context, windowID model.WindowID, destID model.WorkspaceID) {
	w, ok := a.store.GetWindow(windowID)
	if !ok {
		return
	}
	origin := w.WorkspaceID
	if !a.store.MoveWindowToWorkspace(windowID, destID) {
		return
	}
	a.notifyWindowsChanged(origin)
	a.notifyWindowsChanged(destID)
	a.relayout(origin, false)
	a.relayout(destID, false)
}

// handleSwapWindows exchanges the positions of two windows within
// their (possibly different) workspaces' WindowIDs order.
func (a *Actor) handleSwapWindows(ctx context.Context, wa, wb model.WindowID) {
	winA, okA := a.store.GetWindow(wa)
	winB, okB := a.store.GetWindow(wb)
	if !okA || !okB {
		return
	}

	if winA.WorkspaceID == winB.WorkspaceID {
		a.store.MutateWorkspace(winA.WorkspaceID, func(w *model.Workspace) {
			ia, ib := -1, -1
			for i, id := range w.WindowIDs {
				if id == wa {
					ia = i
				}
				if id == wb {
					ib = i
				}
			}
			if ia >= 0 && ib >= 0 {
				w.WindowIDs[ia], w.WindowIDs[ib] = w.WindowIDs[ib], w.WindowIDs[ia]
			}
		})
		a.relayout(winA.WorkspaceID, false)
		return
	}

	a.store.MutateWorkspace(winA.WorkspaceID, func(w *model.Workspace) {
		for i, id := range w.WindowIDs {
			if id == wa {
				w.WindowIDs[i] = wb
			}
		}
	})
	a.store.MutateWorkspace(winB.WorkspaceID, func(w *model.Workspace) {
		for i, id := range w.WindowIDs {
			if id == wb {
				w.WindowIDs[i] = wa
			}
		}
	})
	a.store.MutateWindow(wa, func(w *model.Window) { w.WorkspaceID = winB.WorkspaceID })
	a.store.MutateWindow(wb, func(w *model.Window) { w.WorkspaceID = winA.WorkspaceID })

	a.relayout(winA.WorkspaceID, false)
	a.relayout(winB.WorkspaceID, false)
}

func (a *Actor) handleFocusWindow(ctx context.Context, dir FocusDirection) {
	target, ok := a.neighborWindow(dir)
	if !ok {
		return
	}
	a.handleWindowFocused(ctx, target)
}

func (a *Actor) handleCycleFocus(ctx context.Context, dir CycleDirection) {
	fd := FocusNext
	if dir == CyclePrevious {
		fd = FocusPrevious
	}
	a.handleFocusWindow(ctx, fd)
}

// neighborWindow resolves FocusWindow/SwapWindowInDirection's target:
// next/previous cycle sequentially through the focused workspace's
// focusable windows; left/right/up/down search spatially from the
// currently focused window's frame (spec.md grounded on
// window_ops.rs's focus_window_in_direction/find_window_in_direction).
func (a *Actor) neighborWindow(dir FocusDirection) (model.WindowID, bool) {
	focus := a.store.Focus()
	if !focus.HasWorkspace {
		return 0, false
	}
	candidates := a.focusableWindows(focus.WorkspaceID)
	if len(candidates) == 0 {
		return 0, false
	}
	if dir == FocusNext || dir == FocusPrevious {
		return cycleNeighbor(candidates, focus.WindowID, dir)
	}
	if !focus.HasWindow {
		return candidates[0].ID, true
	}
	current, ok := a.store.GetWindow(focus.WindowID)
	if !ok {
		return candidates[0].ID, true
	}
	return spatialNeighbor(candidates, current, dir)
}

func (a *Actor) handleSwapWindowInDirection(ctx context.Context, dir FocusDirection) {
	focus := a.store.Focus()
	if !focus.HasWindow {
		return
	}
	target, ok := a.neighborWindow(dir)
	if !ok || target == focus.WindowID {
		return
	}
	a.handleSwapWindows(ctx, focus.WindowID, target)
}

func (a *Actor) handleToggleFloating(ctx context.Context, id model.WindowID) {
	w, ok := a.store.GetWindow(id)
	if !ok {
		return
	}
	a.store.MutateWindow(id, func(w *model.Window) { w.IsFloating = !w.IsFloating })
	a.relayout(w.WorkspaceID, false)
}

func (a *Actor) handleSendWindowToScreen(ctx context.Context, target TargetScreen) {
	focus := a.store.Focus()
	if !focus.HasWindow {
		return
	}
	screenID, ok := a.resolveTargetScreen(target)
	if !ok {
		a.logger.Warn("send window to screen: could not resolve target screen")
		return
	}
	destWS, ok := a.store.VisibleWorkspaceOnScreen(screenID)
	if !ok {
		return
	}
	a.handleMoveWindowToWorkspace(ctx, focus.WindowID, destWS.ID)
	a.handleWindowFocused(ctx, focus.WindowID)
}

func (a *Actor) handleSendWorkspaceToScreen(ctx context.Context, target TargetScreen) {
	focus := a.store.Focus()
	if !focus.HasWorkspace {
		return
	}
	screenID, ok := a.resolveTargetScreen(target)
	if !ok {
		a.logger.Warn("send workspace to screen: could not resolve target screen")
		return
	}
	a.store.MutateWorkspace(focus.WorkspaceID, func(w *model.Workspace) { w.ScreenID = screenID })
	a.relayout(focus.WorkspaceID, false)
}
