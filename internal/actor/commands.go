package actor

import (
	"strings"

	"github.com/yourorg/tilecore/internal/config"
	"github.com/yourorg/tilecore/internal/geometry"
	"github.com/yourorg/tilecore/internal/model"
)

// Command is a fire-and-forget mutation delivered over the actor's
// bounded queue (spec.md §4.1). Handlers run single-threaded inside the
// actor's message loop and never block on I/O.
type Command interface {
	commandName() string
}

// CycleDirection selects which neighbor CycleWorkspace/CycleLayout move
// to.
type CycleDirection int

const (
	CycleNext CycleDirection = iota
	CyclePrevious
)

// FocusDirection selects a spatial or sequential neighbor for
// FocusWindow and SwapWindowInDirection, grounded on the Rust source's
// "left/right/up/down/next/previous" string directions.
type FocusDirection int

const (
	FocusLeft FocusDirection = iota
	FocusRight
	FocusUp
	FocusDown
	FocusNext
	FocusPrevious
)

// ParseFocusDirection resolves a CLI/RPC direction string.
func ParseFocusDirection(s string) (FocusDirection, bool) {
	switch strings.ToLower(s) {
	case "left":
		return FocusLeft, true
	case "right":
		return FocusRight, true
	case "up":
		return FocusUp, true
	case "down":
		return FocusDown, true
	case "next":
		return FocusNext, true
	case "previous", "prev":
		return FocusPrevious, true
	default:
		return 0, false
	}
}

// ResizeDimension selects which axis ResizeFocusedWindow adjusts.
type ResizeDimension int

const (
	ResizeWidth ResizeDimension = iota
	ResizeHeight
)

// ParseResizeDimension resolves a CLI/RPC dimension string. Returns
// false for anything other than "width"/"height", matching
// resize_focused_window's invalid-dimension warning-and-noop behavior.
func ParseResizeDimension(s string) (ResizeDimension, bool) {
	switch strings.ToLower(s) {
	case "width":
		return ResizeWidth, true
	case "height":
		return ResizeHeight, true
	default:
		return 0, false
	}
}

// TargetScreenKind classifies how a TargetScreen should be resolved.
type TargetScreenKind int

const (
	TargetMain TargetScreenKind = iota
	TargetSecondary
	TargetNamed
)

// TargetScreen identifies the destination screen of
// SendWindowToScreen/SendWorkspaceToScreen.
type TargetScreen struct {
	Kind TargetScreenKind
	Name string // set only when Kind == TargetNamed
}

// ParseTargetScreen resolves "main"/"primary", "secondary", or a screen
// display name, mirroring handle.rs's send_window_to_screen contract.
func ParseTargetScreen(s string) TargetScreen {
	switch strings.ToLower(s) {
	case "main", "primary":
		return TargetScreen{Kind: TargetMain}
	case "secondary":
		return TargetScreen{Kind: TargetSecondary}
	default:
		return TargetScreen{Kind: TargetNamed, Name: s}
	}
}

// GeometryUpdateKind classifies a coalesced geometry event, produced by
// the Event Processor's per-display batching (spec.md §4.2).
type GeometryUpdateKind int

const (
	GeometryMove GeometryUpdateKind = iota
	GeometryResize
	GeometryMoveResize
)

// GeometryUpdate is one coalesced move/resize entry inside a
// BatchedGeometryUpdates command.
type GeometryUpdate struct {
	WindowID model.WindowID
	Frame    geometry.Rect
	Kind     GeometryUpdateKind
}

// WindowCreatedInfo carries what an OS-level window-created observation
// knows before the window is admitted into the model: it may turn out
// to be a tab of an already-tracked window (spec.md §4.5), in which
// case it never becomes a model.Window.
type WindowCreatedInfo struct {
	WindowID    model.WindowID
	PID         int
	AppID       string
	AppName     string
	Title       string
	Frame       geometry.Rect
	MinimumSize model.Size
	IsMinimized bool
	IsFullscreen bool
}

// ---------------------------------------------------------------------
// Window group
// ---------------------------------------------------------------------

type WindowCreated struct{ Info WindowCreatedInfo }
type WindowDestroyed struct{ WindowID model.WindowID }
type WindowFocused struct{ WindowID model.WindowID }
type WindowUnfocused struct{ WindowID model.WindowID }
type WindowMoved struct {
	WindowID model.WindowID
	Frame    geometry.Rect
}
type WindowResized struct {
	WindowID model.WindowID
	Frame    geometry.Rect
}
type WindowMinimized struct {
	WindowID  model.WindowID
	Minimized bool
}
type WindowTitleChanged struct {
	WindowID model.WindowID
	Title    string
}
type WindowFullscreenChanged struct {
	WindowID   model.WindowID
	Fullscreen bool
}

func (WindowCreated) commandName() string           { return "WindowCreated" }
func (WindowDestroyed) commandName() string          { return "WindowDestroyed" }
func (WindowFocused) commandName() string            { return "WindowFocused" }
func (WindowUnfocused) commandName() string          { return "WindowUnfocused" }
func (WindowMoved) commandName() string              { return "WindowMoved" }
func (WindowResized) commandName() string            { return "WindowResized" }
func (WindowMinimized) commandName() string          { return "WindowMinimized" }
func (WindowTitleChanged) commandName() string       { return "WindowTitleChanged" }
func (WindowFullscreenChanged) commandName() string  { return "WindowFullscreenChanged" }

// ---------------------------------------------------------------------
// App group
// ---------------------------------------------------------------------

type AppLaunched struct {
	PID            int
	AppID, AppName string
}
type AppTerminated struct{ PID int }
type AppHidden struct{ PID int }
type AppShown struct{ PID int }
type AppActivated struct{ PID int }

func (AppLaunched) commandName() string   { return "AppLaunched" }
func (AppTerminated) commandName() string { return "AppTerminated" }
func (AppHidden) commandName() string     { return "AppHidden" }
func (AppShown) commandName() string      { return "AppShown" }
func (AppActivated) commandName() string  { return "AppActivated" }

// ---------------------------------------------------------------------
// Screen group
// ---------------------------------------------------------------------

type ScreensChanged struct{}
type SetScreens struct{ Screens []model.Screen }

func (ScreensChanged) commandName() string { return "ScreensChanged" }
func (SetScreens) commandName() string     { return "SetScreens" }

// ---------------------------------------------------------------------
// Batch / init group
// ---------------------------------------------------------------------

type BatchedGeometryUpdates struct{ Updates []GeometryUpdate }
type BatchWindowsCreated struct{ Windows []WindowCreatedInfo }
type InitComplete struct{}

func (BatchedGeometryUpdates) commandName() string { return "BatchedGeometryUpdates" }
func (BatchWindowsCreated) commandName() string     { return "BatchWindowsCreated" }
func (InitComplete) commandName() string            { return "InitComplete" }

// ---------------------------------------------------------------------
// Workspace group
// ---------------------------------------------------------------------

type SwitchWorkspace struct{ Name string }
type CycleWorkspace struct{ Direction CycleDirection }
type SetLayout struct {
	WorkspaceID model.WorkspaceID
	Layout      model.LayoutTag
}
type CycleLayout struct{ WorkspaceID model.WorkspaceID }
type BalanceWorkspace struct{ WorkspaceID model.WorkspaceID }

func (SwitchWorkspace) commandName() string  { return "SwitchWorkspace" }
func (CycleWorkspace) commandName() string   { return "CycleWorkspace" }
func (SetLayout) commandName() string        { return "SetLayout" }
func (CycleLayout) commandName() string      { return "CycleLayout" }
func (BalanceWorkspace) commandName() string { return "BalanceWorkspace" }

// ---------------------------------------------------------------------
// Window-op group
// ---------------------------------------------------------------------

type MoveWindowToWorkspace struct {
	WindowID    model.WindowID
	WorkspaceID model.WorkspaceID
}
type SwapWindows struct{ A, B model.WindowID }
type FocusWindow struct{ Direction FocusDirection }
type CycleFocus struct{ Direction CycleDirection }
type SwapWindowInDirection struct{ Direction FocusDirection }
type ToggleFloating struct{ WindowID model.WindowID }

// ResizeSplit adjusts the split ratio at WindowIndex in WorkspaceID by
// Delta (a ratio delta, not pixels). Like ReloadConfig, and unlike the
// other commands, it is answered through an ack channel, because
// its caller is a live drag/resize UI that needs the clamp feedback to
// stop over-dragging (SPEC_FULL §C.2).
type ResizeSplit struct {
	WorkspaceID model.WorkspaceID
	WindowIndex int
	Delta       float64
	ack         chan ResizeSplitAck
}

// ResizeSplitAck reports whether ResizeSplit's requested ratio was
// clamped to [0.05, 0.95].
type ResizeSplitAck struct {
	AppliedRatio float64
	Clamped      bool
}

type SendWindowToScreen struct{ Target TargetScreen }
type SendWorkspaceToScreen struct{ Target TargetScreen }
type ResizeFocusedWindow struct {
	Dimension ResizeDimension
	Amount    int
}
type ApplyPreset struct{ Preset string }

func (MoveWindowToWorkspace) commandName() string { return "MoveWindowToWorkspace" }
func (SwapWindows) commandName() string           { return "SwapWindows" }
func (FocusWindow) commandName() string           { return "FocusWindow" }
func (CycleFocus) commandName() string            { return "CycleFocus" }
func (SwapWindowInDirection) commandName() string { return "SwapWindowInDirection" }
func (ToggleFloating) commandName() string        { return "ToggleFloating" }
func (*ResizeSplit) commandName() string          { return "ResizeSplit" }
func (SendWindowToScreen) commandName() string    { return "SendWindowToScreen" }
func (SendWorkspaceToScreen) commandName() string { return "SendWorkspaceToScreen" }
func (ResizeFocusedWindow) commandName() string   { return "ResizeFocusedWindow" }
func (ApplyPreset) commandName() string           { return "ApplyPreset" }

// ---------------------------------------------------------------------
// Sys group
// ---------------------------------------------------------------------

type SetEnabled struct{ Enabled bool }
type SetExpectedFrames struct{ Frames map[model.WindowID]geometry.Rect }
type UserResizeCompleted struct {
	WorkspaceID        model.WorkspaceID
	WindowID           model.WindowID
	OldFrame, NewFrame geometry.Rect
}
type UserMoveCompleted struct{ WorkspaceID model.WorkspaceID }
type Shutdown struct{}

// ReloadConfig swaps the actor's live configuration, applying
// gap/ratio/preset/bar/settling-window changes on the next relayout;
// the Effect Applier keeps the animation enabled flag and duration it
// was built with. It is
// answered through an ack like ResizeSplit, because a topology change
// in tiling.workspaces cannot be applied to already-created workspaces
// and must be rejected back to the caller rather than silently dropped
// (SPEC_FULL §A.4).
type ReloadConfig struct {
	Config *config.Config
	ack    chan ReloadConfigAck
}

// ReloadConfigAck carries the tilingerr.InvalidArgument a topology
// change was rejected with, or nil if the reload applied.
type ReloadConfigAck struct {
	Err error
}

func (SetEnabled) commandName() string          { return "SetEnabled" }
func (SetExpectedFrames) commandName() string   { return "SetExpectedFrames" }
func (UserResizeCompleted) commandName() string { return "UserResizeCompleted" }
func (UserMoveCompleted) commandName() string   { return "UserMoveCompleted" }
func (Shutdown) commandName() string            { return "Shutdown" }
func (*ReloadConfig) commandName() string       { return "ReloadConfig" }
