package actor

import (
	"context"

	"github.com/yourorg/tilecore/internal/config"
	"github.com/yourorg/tilecore/internal/geometry"
	"github.com/yourorg/tilecore/internal/model"
	"github.com/yourorg/tilecore/internal/tilingerr"
)

// handleResizeFocusedWindow nudges the focused window's governing
// split ratio by amount pixels along dimension. Floating windows and
// the Monocle/Floating layouts expose no ratio to adjust and are a
// no-op; Master layout resize only meaningfully applies to width,
// since its stack subdivision along height is even shares with no
// ratio of its own (grounded on window_ops.rs's resize_focused_window).
func (a *Actor) handleResizeFocusedWindow(ctx context.Context, dim ResizeDimension, amount int) {
	focus := a.store.Focus()
	if !focus.HasWindow || !focus.HasWorkspace {
		return
	}
	w, ok := a.store.GetWindow(focus.WindowID)
	if !ok || w.IsFloating {
		return
	}
	ws, ok := a.store.GetWorkspace(focus.WorkspaceID)
	if !ok || ws.Layout == model.Monocle || ws.Layout == model.Floating {
		return
	}
	screen, ok := a.store.GetScreen(ws.ScreenID)
	if !ok {
		return
	}

	ids := a.layoutableWindowIDs(ws)
	index := indexOf(ids, focus.WindowID)
	if index < 0 {
		return
	}

	dimension := screen.VisibleFrame.W
	if dim == ResizeHeight {
		dimension = screen.VisibleFrame.H
	}
	if dimension <= 0 {
		return
	}
	delta := float64(amount) / dimension

	if ws.Layout == model.Master {
		if dim == ResizeHeight {
			return
		}
		current := a.masterRatioFor(ws)
		if index != 0 {
			delta = -delta
		}
		a.store.MutateWorkspace(ws.ID, func(w *model.Workspace) {
			w.SplitRatios = []float64{clampMasterRatio(current + delta)}
		})
		a.relayout(ws.ID, false)
		return
	}

	a.adjustSplitRatio(ws.ID, len(ids), index, delta)
	a.relayout(ws.ID, false)
}

// clampMasterRatio bounds a workspace-local master ratio override to
// the same [0.1, 0.9] range internal/layout/master.go enforces.
func clampMasterRatio(r float64) float64 {
	if r < 0.1 {
		return 0.1
	}
	if r > 0.9 {
		return 0.9
	}
	return r
}

// adjustSplitRatio nudges ws's ratio at index by delta, within the
// [0.05, 0.95] bound every split/dwindle/grid ratio respects. Ratios
// are stored un-renormalized; internal/layout's normalizeRatios
// renormalizes at compute time, so storing a raw clamped value here is
// sufficient.
func (a *Actor) adjustSplitRatio(wsID model.WorkspaceID, n, index int, delta float64) {
	a.store.MutateWorkspace(wsID, func(w *model.Workspace) {
		ratios := make([]float64, n)
		for i := range ratios {
			ratios[i] = geometry.RatioOrDefault(w.SplitRatios, i, 1.0/float64(n))
		}
		ratios[index] = geometry.ClampRatio(ratios[index] + delta)
		w.SplitRatios = ratios
	})
}

func indexOf(ids []model.WindowID, id model.WindowID) int {
	for i, cur := range ids {
		if cur == id {
			return i
		}
	}
	return -1
}

// handleResizeSplit is ResizeSplit's dispatch target. Like
// ReloadConfig, and unlike the other commands, it reports back through
// an ack channel whether the
// requested delta was clamped, because its caller is a live drag/resize
// UI that needs that feedback to stop over-dragging (SPEC_FULL §C.2).
func (a *Actor) handleResizeSplit(ctx context.Context, cmd *ResizeSplit) {
	ws, ok := a.store.GetWorkspace(cmd.WorkspaceID)
	if !ok {
		if cmd.ack != nil {
			cmd.ack <- ResizeSplitAck{}
		}
		return
	}
	ids := a.layoutableWindowIDs(ws)
	n := len(ids)
	if n == 0 || cmd.WindowIndex < 0 || cmd.WindowIndex >= n {
		if cmd.ack != nil {
			cmd.ack <- ResizeSplitAck{}
		}
		return
	}

	var applied float64
	var clamped bool
	a.store.MutateWorkspace(ws.ID, func(w *model.Workspace) {
		ratios := make([]float64, n)
		for i := range ratios {
			ratios[i] = geometry.RatioOrDefault(w.SplitRatios, i, 1.0/float64(n))
		}
		requested := ratios[cmd.WindowIndex] + cmd.Delta
		applied = geometry.ClampRatio(requested)
		clamped = applied != requested
		ratios[cmd.WindowIndex] = applied
		w.SplitRatios = ratios
	})
	a.relayout(ws.ID, false)

	if cmd.ack != nil {
		cmd.ack <- ResizeSplitAck{AppliedRatio: applied, Clamped: clamped}
	}
}

// handleApplyPreset applies the named floating preset to the focused
// window.
func (a *Actor) handleApplyPreset(ctx context.Context, name string) {
	focus := a.store.Focus()
	if !focus.HasWindow || !focus.HasWorkspace {
		return
	}
	ws, ok := a.store.GetWorkspace(focus.WorkspaceID)
	if !ok {
		return
	}
	screen, ok := a.store.GetScreen(ws.ScreenID)
	if !ok {
		return
	}
	if a.applyPresetToWindow(focus.WindowID, name, screen) {
		a.relayout(ws.ID, false)
	}
}

// applyPresetToWindow resolves name against the configured floating
// preset catalogue and sets windowID's frame to it, marking the window
// floating (grounded on window_ops.rs's apply_preset_to_window). A
// preset dimension at or below 1.0 is treated as a fraction of the
// screen's usable area; above 1.0 it is an absolute pixel size,
// mirroring preset.rs's width/height "resolve" against usable_width.
func (a *Actor) applyPresetToWindow(windowID model.WindowID, name string, screen model.Screen) bool {
	preset, ok := a.findPreset(name)
	if !ok {
		a.logger.WithField("preset", name).Warn("unknown floating preset")
		return false
	}

	usable := screen.VisibleFrame
	width := resolvePresetDimension(preset.Width, usable.W)
	height := resolvePresetDimension(preset.Height, usable.H)

	var x, y float64
	if preset.X == 0 && preset.Y == 0 {
		x = usable.X + (usable.W-width)/2
		y = usable.Y + (usable.H-height)/2
	} else {
		x = usable.X + resolvePresetDimension(preset.X, usable.W)
		y = usable.Y + resolvePresetDimension(preset.Y, usable.H)
	}

	frame := geometry.NewRect(x, y, width, height)
	frame = clampToUsable(frame, usable)

	a.store.MutateWindow(windowID, func(w *model.Window) {
		w.Frame = frame
		w.ExpectedFrame = frame
		w.IsFloating = true
	})
	return true
}

func (a *Actor) findPreset(name string) (presetSpecLike, bool) {
	for _, p := range a.cfg.Tiling.Floating.Presets {
		if p.Name == name {
			return presetSpecLike{X: p.X, Y: p.Y, Width: p.Width, Height: p.Height}, true
		}
	}
	return presetSpecLike{}, false
}

// presetSpecLike decouples applyPresetToWindow from config's struct
// shape so a future preset source (e.g. a runtime-registered preset)
// does not need to satisfy config.PresetSpec directly.
type presetSpecLike struct {
	X, Y, Width, Height float64
}

func resolvePresetDimension(v, usable float64) float64 {
	if v > 0 && v <= 1.0 {
		return v * usable
	}
	return v
}

func clampToUsable(frame, usable geometry.Rect) geometry.Rect {
	w := frame.W
	if w > usable.W {
		w = usable.W
	}
	h := frame.H
	if h > usable.H {
		h = usable.H
	}
	x := frame.X
	if x < usable.X {
		x = usable.X
	}
	if x+w > usable.Right() {
		x = usable.Right() - w
	}
	y := frame.Y
	if y < usable.Y {
		y = usable.Y
	}
	if y+h > usable.Bottom() {
		y = usable.Bottom() - h
	}
	return geometry.NewRect(x, y, w, h)
}

// handleUserResizeCompleted is the Effect Applier's mouse-up signal
// after a user-driven resize: drag suppression ends and the workspace
// is re-tiled from the window's settled frame (grounded on
// window_ops.rs's handle_user_resize, simplified to our flat ratio
// scheme: the window's width change, as a fraction of the screen's
// visible width, is added to its ratio rather than deriving a
// dwindle/grid-specific delta; a height change alone does not alter
// the ratio).
func (a *Actor) handleUserResizeCompleted(ctx context.Context, m UserResizeCompleted) {
	a.dragInProgress = false
	ws, ok := a.store.GetWorkspace(m.WorkspaceID)
	if !ok {
		return
	}
	ids := a.layoutableWindowIDs(ws)
	index := indexOf(ids, m.WindowID)
	if index < 0 {
		a.relayout(m.WorkspaceID, false)
		return
	}
	screen, ok := a.store.GetScreen(ws.ScreenID)
	if ok && screen.VisibleFrame.W > 0 {
		deltaW := (m.NewFrame.W - m.OldFrame.W) / screen.VisibleFrame.W
		a.adjustSplitRatio(ws.ID, len(ids), index, deltaW)
	}
	a.relayout(ws.ID, true)
}

// handleUserMoveCompleted ends drag suppression and re-tiles, snapping
// any window dragged out of its layout position back (grounded on
// window_ops.rs's handle_window_moved's snap-back, which exempts
// floating windows and the Floating layout).
func (a *Actor) handleUserMoveCompleted(ctx context.Context, wsID model.WorkspaceID) {
	a.dragInProgress = false
	a.relayout(wsID, true)
}

// handleReloadConfig is ReloadConfig's dispatch target. Workspace
// topology is fixed at handleSetScreens time (screen assignment and
// workspace identity), so a reload that changes tiling.workspaces is
// rejected rather than silently ignored or half-applied; gap, ratio,
// preset, and bar values take effect on the very next relayout since
// computeLayout/gapsForScreen/masterRatioFor all read a.cfg fresh on
// every call, and a new settling-window length applies to the next
// settling window. The Effect Applier copies the animation enabled
// flag and duration when it is built, so a reload does not change
// them (SPEC_FULL §A.4).
func (a *Actor) handleReloadConfig(ctx context.Context, cmd *ReloadConfig) {
	if !sameWorkspaceTopology(a.cfg.Tiling.Workspaces, cmd.Config.Tiling.Workspaces) {
		err := tilingerr.New(tilingerr.InvalidArgument, "actor.ReloadConfig",
			"tiling.workspaces topology changed; restart the core to apply it")
		a.logger.WithError(err).Warn("config reload rejected")
		if cmd.ack != nil {
			cmd.ack <- ReloadConfigAck{Err: err}
		}
		return
	}

	a.cfg = cmd.Config
	a.logger.Info("config reloaded: gap, ratio, preset, bar, and settling-window values applied live")

	for _, ws := range a.store.Workspaces() {
		if ws.IsVisible {
			a.relayout(ws.ID, false)
		}
	}

	if cmd.ack != nil {
		cmd.ack <- ReloadConfigAck{}
	}
}

// sameWorkspaceTopology reports whether two tiling.workspaces lists
// name the same workspaces on the same screens, in the same order.
// Layout/preset-on-open fields are deliberately excluded: those only
// take effect when a workspace is created, so changing them live
// carries no topology risk.
func sameWorkspaceTopology(a, b []config.WorkspaceSpec) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name || a[i].Screen != b[i].Screen {
			return false
		}
	}
	return true
}

// handleInitComplete notifies every visible workspace once, so the
// Effect Applier can apply the initial layout for all of them in one
// pass at startup (grounded on mod.rs's on_init_complete).
func (a *Actor) handleInitComplete(ctx context.Context) {
	if a.notifier == nil {
		return
	}
	for _, ws := range a.store.Workspaces() {
		if ws.IsVisible {
			a.notifier.NotifyLayoutChanged(ws.ID, false)
		}
	}
}
