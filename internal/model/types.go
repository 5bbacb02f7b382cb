package model

import (
	"time"

	"github.com/yourorg/tilecore/internal/geometry"
)

// LayoutTag selects which pluggable algorithm (internal/layout) arranges
// a workspace's windows. See spec.md §4.3.
type LayoutTag int

const (
	Dwindle LayoutTag = iota
	Split
	SplitH
	SplitV
	Grid
	Master
	Monocle
	Floating
)

// String renders the layout tag the way config keys and the wire format
// spell it.
func (t LayoutTag) String() string {
	switch t {
	case Dwindle:
		return "dwindle"
	case Split:
		return "split"
	case SplitH:
		return "split_h"
	case SplitV:
		return "split_v"
	case Grid:
		return "grid"
	case Master:
		return "master"
	case Monocle:
		return "monocle"
	case Floating:
		return "floating"
	default:
		return "unknown"
	}
}

// ParseLayoutTag resolves a config/wire string into a LayoutTag. Returns
// false for an unrecognized tag so callers can surface InvalidArgument.
func ParseLayoutTag(s string) (LayoutTag, bool) {
	switch s {
	case "dwindle":
		return Dwindle, true
	case "split":
		return Split, true
	case "split_h", "splith":
		return SplitH, true
	case "split_v", "splitv":
		return SplitV, true
	case "grid":
		return Grid, true
	case "master":
		return Master, true
	case "monocle":
		return Monocle, true
	case "floating":
		return Floating, true
	default:
		return 0, false
	}
}

// MasterPosition selects which edge of the screen the Master layout's
// master window is pinned to.
type MasterPosition int

const (
	MasterLeft MasterPosition = iota
	MasterRight
	MasterTop
	MasterBottom
	MasterAuto
)

// Size is a width/height pair, used for declared and inferred window
// minimum sizes.
type Size struct {
	W, H float64
}

// IsZero reports whether the size carries no information (the window has
// neither reported nor had a minimum size inferred for it).
func (s Size) IsZero() bool { return s.W == 0 && s.H == 0 }

// Screen represents one physical display (spec.md §3 "Screen").
type Screen struct {
	ID           ScreenID  `json:"id"`
	Name         string    `json:"name"`
	Frame        geometry.Rect `json:"frame"`
	VisibleFrame geometry.Rect `json:"visible_frame"`
	ScaleFactor  float64   `json:"scale_factor"`
	RefreshRate  float64   `json:"refresh_rate"`
	IsMain       bool      `json:"is_main"`
	IsBuiltin    bool      `json:"is_builtin"`
}

// Workspace is a named virtual desktop bound to one screen at a time
// (spec.md §3 "Workspace").
type Workspace struct {
	ID                 WorkspaceID `json:"id"`
	Name               string      `json:"name"`
	ScreenID           ScreenID    `json:"screen_id"`
	ConfiguredScreen   string      `json:"configured_screen"`
	Layout             LayoutTag   `json:"layout"`
	WindowIDs          []WindowID  `json:"window_ids"`
	SplitRatios        []float64   `json:"split_ratios"`
	IsVisible          bool        `json:"is_visible"`
	IsFocused          bool        `json:"is_focused"`
	FocusedWindowIndex int         `json:"focused_window_index"`
	PresetOnOpen       string      `json:"preset_on_open,omitempty"`
}

// Clone returns a deep copy safe to hand to a caller outside the actor.
func (w Workspace) Clone() Workspace {
	out := w
	out.WindowIDs = append([]WindowID(nil), w.WindowIDs...)
	out.SplitRatios = append([]float64(nil), w.SplitRatios...)
	return out
}

// Window is a single tracked OS window (spec.md §3 "Window").
type Window struct {
	ID                  WindowID    `json:"id"`
	PID                 int         `json:"pid"`
	AppID               string      `json:"app_id"`
	AppName             string      `json:"app_name"`
	Title               string      `json:"title"`
	Frame               geometry.Rect `json:"frame"`
	ExpectedFrame       geometry.Rect `json:"expected_frame"`
	MinimumSize         Size        `json:"minimum_size"`
	InferredMinimumSize Size        `json:"inferred_minimum_size"`
	WorkspaceID         WorkspaceID `json:"workspace_id"`
	IsMinimized         bool        `json:"is_minimized"`
	IsFullscreen        bool        `json:"is_fullscreen"`
	IsHidden            bool        `json:"is_hidden"`
	IsFloating          bool        `json:"is_floating"`
	IsPictureInPicture  bool        `json:"is_picture_in_picture"`
	CreatedAt           time.Time   `json:"created_at"`
}

// EffectiveMinimumSize prefers the OS-declared minimum size, falling back
// to the empirically inferred one (spec.md §4.3 "Inferred minimums").
func (w Window) EffectiveMinimumSize() Size {
	if !w.MinimumSize.IsZero() {
		return w.MinimumSize
	}
	return w.InferredMinimumSize
}

// FocusState is the global focus tuple spec.md §4.1 describes.
type FocusState struct {
	WindowID    WindowID
	HasWindow   bool
	WorkspaceID WorkspaceID
	HasWorkspace bool
	ScreenID    ScreenID
	HasScreen   bool
}
