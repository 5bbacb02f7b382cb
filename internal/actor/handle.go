package actor

import (
	"context"

	"github.com/yourorg/tilecore/internal/config"
	"github.com/yourorg/tilecore/internal/geometry"
	"github.com/yourorg/tilecore/internal/model"
	"github.com/yourorg/tilecore/internal/tilingerr"
)

// This file collects typed convenience wrappers over Send, one per
// command, mirroring handle.rs's pattern of a method per message
// rather than callers constructing command structs by hand.

func (h *Handle) NotifyWindowCreated(info WindowCreatedInfo) error {
	return h.Send(WindowCreated{Info: info})
}
func (h *Handle) NotifyWindowDestroyed(id model.WindowID) error {
	return h.Send(WindowDestroyed{WindowID: id})
}
func (h *Handle) NotifyWindowFocused(id model.WindowID) error {
	return h.Send(WindowFocused{WindowID: id})
}
func (h *Handle) NotifyWindowUnfocused(id model.WindowID) error {
	return h.Send(WindowUnfocused{WindowID: id})
}
func (h *Handle) NotifyWindowMoved(id model.WindowID, frame geometry.Rect) error {
	return h.Send(WindowMoved{WindowID: id, Frame: frame})
}
func (h *Handle) NotifyWindowResized(id model.WindowID, frame geometry.Rect) error {
	return h.Send(WindowResized{WindowID: id, Frame: frame})
}
func (h *Handle) NotifyWindowMinimized(id model.WindowID, minimized bool) error {
	return h.Send(WindowMinimized{WindowID: id, Minimized: minimized})
}
func (h *Handle) NotifyWindowTitleChanged(id model.WindowID, title string) error {
	return h.Send(WindowTitleChanged{WindowID: id, Title: title})
}
func (h *Handle) NotifyWindowFullscreenChanged(id model.WindowID, fullscreen bool) error {
	return h.Send(WindowFullscreenChanged{WindowID: id, Fullscreen: fullscreen})
}

func (h *Handle) NotifyAppLaunched(pid int, appID, appName string) error {
	return h.Send(AppLaunched{PID: pid, AppID: appID, AppName: appName})
}
func (h *Handle) NotifyAppTerminated(pid int) error { return h.Send(AppTerminated{PID: pid}) }
func (h *Handle) NotifyAppHidden(pid int) error     { return h.Send(AppHidden{PID: pid}) }
func (h *Handle) NotifyAppShown(pid int) error      { return h.Send(AppShown{PID: pid}) }
func (h *Handle) NotifyAppActivated(pid int) error  { return h.Send(AppActivated{PID: pid}) }

func (h *Handle) SetScreens(screens []model.Screen) error {
	return h.Send(SetScreens{Screens: screens})
}

func (h *Handle) BatchedGeometryUpdates(updates []GeometryUpdate) error {
	return h.Send(BatchedGeometryUpdates{Updates: updates})
}
func (h *Handle) BatchWindowsCreated(windows []WindowCreatedInfo) error {
	return h.Send(BatchWindowsCreated{Windows: windows})
}
func (h *Handle) InitComplete() error { return h.Send(InitComplete{}) }

func (h *Handle) SwitchWorkspace(name string) error { return h.Send(SwitchWorkspace{Name: name}) }
func (h *Handle) CycleWorkspace(dir CycleDirection) error {
	return h.Send(CycleWorkspace{Direction: dir})
}
func (h *Handle) SetLayout(wsID model.WorkspaceID, tag model.LayoutTag) error {
	return h.Send(SetLayout{WorkspaceID: wsID, Layout: tag})
}
func (h *Handle) CycleLayout(wsID model.WorkspaceID) error {
	return h.Send(CycleLayout{WorkspaceID: wsID})
}
func (h *Handle) BalanceWorkspace(wsID model.WorkspaceID) error {
	return h.Send(BalanceWorkspace{WorkspaceID: wsID})
}

func (h *Handle) MoveWindowToWorkspace(windowID model.WindowID, wsID model.WorkspaceID) error {
	return h.Send(MoveWindowToWorkspace{WindowID: windowID, WorkspaceID: wsID})
}
func (h *Handle) SwapWindows(a, b model.WindowID) error { return h.Send(SwapWindows{A: a, B: b}) }
func (h *Handle) FocusWindow(dir FocusDirection) error  { return h.Send(FocusWindow{Direction: dir}) }
func (h *Handle) CycleFocus(dir CycleDirection) error   { return h.Send(CycleFocus{Direction: dir}) }
func (h *Handle) SwapWindowInDirection(dir FocusDirection) error {
	return h.Send(SwapWindowInDirection{Direction: dir})
}
func (h *Handle) ToggleFloating(id model.WindowID) error {
	return h.Send(ToggleFloating{WindowID: id})
}
func (h *Handle) SendWindowToScreen(target TargetScreen) error {
	return h.Send(SendWindowToScreen{Target: target})
}
func (h *Handle) SendWorkspaceToScreen(target TargetScreen) error {
	return h.Send(SendWorkspaceToScreen{Target: target})
}
func (h *Handle) ResizeFocusedWindow(dim ResizeDimension, amount int) error {
	return h.Send(ResizeFocusedWindow{Dimension: dim, Amount: amount})
}
func (h *Handle) ApplyPreset(name string) error { return h.Send(ApplyPreset{Preset: name}) }

func (h *Handle) SetEnabled(enabled bool) error { return h.Send(SetEnabled{Enabled: enabled}) }
func (h *Handle) SetExpectedFrames(frames map[model.WindowID]geometry.Rect) error {
	return h.Send(SetExpectedFrames{Frames: frames})
}
func (h *Handle) UserResizeCompleted(wsID model.WorkspaceID, windowID model.WindowID, oldFrame, newFrame geometry.Rect) error {
	return h.Send(UserResizeCompleted{WorkspaceID: wsID, WindowID: windowID, OldFrame: oldFrame, NewFrame: newFrame})
}
func (h *Handle) UserMoveCompleted(wsID model.WorkspaceID) error {
	return h.Send(UserMoveCompleted{WorkspaceID: wsID})
}

// ResizeSplit sends a split-ratio adjustment and blocks for its clamp
// feedback; it and ReloadConfig are the two commands that acknowledge
// through an ack channel (SPEC_FULL §C.2).
func (h *Handle) ResizeSplit(ctx context.Context, wsID model.WorkspaceID, windowIndex int, delta float64) (ResizeSplitAck, error) {
	cmd := &ResizeSplit{WorkspaceID: wsID, WindowIndex: windowIndex, Delta: delta, ack: make(chan ResizeSplitAck, 1)}
	if err := h.SendWait(ctx, cmd); err != nil {
		return ResizeSplitAck{}, err
	}
	select {
	case ack := <-cmd.ack:
		return ack, nil
	case <-ctx.Done():
		return ResizeSplitAck{}, tilingerr.Wrap(tilingerr.Timeout, "actor.ResizeSplit", "no ack within deadline", ctx.Err())
	}
}

// ReloadConfig hot-swaps the actor's live configuration and blocks for
// the outcome: gap/ratio/preset/bar/settling-window changes apply
// immediately (the Effect Applier's animation enabled flag and
// duration are not changed by a reload), while a tiling.workspaces
// topology change is rejected
// with tilingerr.InvalidArgument instead of silently ignored (SPEC_FULL
// §A.4). Grounded on ResizeSplit's ack-channel pattern, the other
// command in this package whose caller needs to know the outcome.
func (h *Handle) ReloadConfig(ctx context.Context, cfg *config.Config) error {
	cmd := &ReloadConfig{Config: cfg, ack: make(chan ReloadConfigAck, 1)}
	if err := h.SendWait(ctx, cmd); err != nil {
		return err
	}
	select {
	case ack := <-cmd.ack:
		return ack.Err
	case <-ctx.Done():
		return tilingerr.Wrap(tilingerr.Timeout, "actor.ReloadConfig", "no ack within deadline", ctx.Err())
	}
}
