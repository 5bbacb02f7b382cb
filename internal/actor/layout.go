package actor

import (
	"github.com/yourorg/tilecore/internal/geometry"
	"github.com/yourorg/tilecore/internal/layout"
	"github.com/yourorg/tilecore/internal/model"
)

// computeLayout resolves a workspace's current placement, applying
// config-derived gaps and master ratio and walking the minimum-size
// solver (spec.md §4.3 "compute_layout"). It does not mutate the
// store; callers that need the result notified or applied to the OS do
// so separately.
func (a *Actor) computeLayout(wsID model.WorkspaceID) []layout.Placement {
	ws, ok := a.store.GetWorkspace(wsID)
	if !ok {
		return []layout.Placement{}
	}
	screen, ok := a.store.GetScreen(ws.ScreenID)
	if !ok {
		return []layout.Placement{}
	}

	ids := a.layoutableWindowIDs(ws)
	if len(ids) == 0 {
		return []layout.Placement{}
	}

	gaps := a.gapsForScreen(screen)
	opts := layout.Options{MasterPosition: model.MasterAuto, MasterRatio: a.masterRatioFor(ws)}

	minimums := func(id model.WindowID) (model.Size, bool) {
		w, ok := a.store.GetWindow(id)
		if !ok {
			return model.Size{}, false
		}
		min := w.EffectiveMinimumSize()
		return min, !min.IsZero()
	}

	return layout.Solve(ws.Layout, ids, gaps.Apply(screen.VisibleFrame), gaps, ws.SplitRatios, opts, minimums)
}

// layoutableWindowIDs filters a workspace's window list down to the
// ids the layout engine should place: minimized, hidden, fullscreen,
// floating, and picture-in-picture windows all manage their own
// geometry and are excluded (spec.md §4.3 "get_layoutable_windows").
// Tab windows never appear in WindowIDs to begin with (spec.md §4.5).
func (a *Actor) layoutableWindowIDs(ws model.Workspace) []model.WindowID {
	out := make([]model.WindowID, 0, len(ws.WindowIDs))
	for _, id := range ws.WindowIDs {
		w, ok := a.store.GetWindow(id)
		if !ok {
			continue
		}
		if w.IsMinimized || w.IsHidden || w.IsFullscreen || w.IsFloating || w.IsPictureInPicture {
			continue
		}
		out = append(out, id)
	}
	return out
}

// masterRatioFor returns the Master layout's ratio for ws: its own
// split-ratio override if ResizeFocusedWindow has set one (stored in
// SplitRatios[0], the one slot the Master algorithm's otherwise-unused
// ratio vector can carry), falling back to the configured
// tiling.master.ratio default (spec.md §6). The Master algorithm itself
// ignores the ratios slice and always clamps to [0.1, 0.9]
// (internal/layout/master.go), so a workspace-local override has to be
// threaded through opts instead.
func (a *Actor) masterRatioFor(ws model.Workspace) float64 {
	if ws.Layout == model.Master && len(ws.SplitRatios) > 0 {
		return ws.SplitRatios[0]
	}
	return a.cfg.MasterRatio()
}

// gapsForScreen resolves the gap specification for screen, applying any
// tiling.gaps.per_screen override by screen name and folding the status
// bar's height+padding into the main screen's outer-top gap (spec.md
// §4.3, §6).
func (a *Actor) gapsForScreen(screen model.Screen) geometry.Gaps {
	spec := a.cfg.Tiling.Gaps
	if override, ok := spec.PerScreen[screen.Name]; ok {
		spec = override
	}
	gaps := geometry.Gaps{
		OuterTop:    spec.OuterTop,
		OuterRight:  spec.OuterRight,
		OuterBottom: spec.OuterBottom,
		OuterLeft:   spec.OuterLeft,
		InnerH:      spec.InnerH,
		InnerV:      spec.InnerV,
	}
	if screen.IsMain {
		gaps.OuterTop += a.cfg.Bar.Height + a.cfg.Bar.Padding
	}
	return gaps
}

// relayout notifies subscribers that wsID's layout should be
// recomputed, the common tail of most mutating handlers. Layout itself
// is pure and stateless (internal/layout), so there is nothing to
// cache here; computeLayout recomputes on demand from current store
// state whenever GetLayout is queried or the Effect Applier reacts to
// this notification.
func (a *Actor) relayout(wsID model.WorkspaceID, urgent bool) {
	if a.notifier != nil {
		a.notifier.NotifyLayoutChanged(wsID, urgent)
	}
}

// notifyWindowsChanged, notifyFocusChanged, and notifyActivated guard
// every other notification site against a nil Notifier (tests commonly
// construct an Actor without one).
func (a *Actor) notifyWindowsChanged(wsID model.WorkspaceID) {
	if a.notifier != nil {
		a.notifier.NotifyWorkspaceWindowsChanged(wsID)
	}
}

func (a *Actor) notifyFocusChanged() {
	if a.notifier != nil {
		a.notifier.NotifyFocusChanged(a.store.Focus())
	}
}

func (a *Actor) notifyActivated(wsID model.WorkspaceID) {
	if a.notifier != nil {
		a.notifier.NotifyWorkspaceActivated(wsID)
	}
}
