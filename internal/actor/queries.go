package actor

// Query surface (spec.md §4.1): every query returns one of a list of
// snapshots, a single optional snapshot, an existence boolean, or a
// precomputed layout. Zero-clone id-only variants exist for hot paths.
//
// A query is represented internally as a closure over the actor plus a
// reply channel; Handle exposes typed convenience methods so callers
// never construct a queryMsg by hand.

import (
	"context"

	"github.com/yourorg/tilecore/internal/layout"
	"github.com/yourorg/tilecore/internal/model"
	"github.com/yourorg/tilecore/internal/tilingerr"
)

// queryMsg is the internal envelope for a read-only request. It
// satisfies Command so it can travel through the same queue as
// mutating commands, preserving request ordering relative to commands
// already enqueued.
type queryMsg struct {
	run   func(*Actor) any
	reply chan any
}

func (*queryMsg) commandName() string { return "Query" }

// ask sends run through the actor's command queue and blocks for the
// reply, or returns ctx.Err() if ctx is cancelled first.
func (h *Handle) ask(ctx context.Context, run func(*Actor) any) (any, error) {
	msg := &queryMsg{run: run, reply: make(chan any, 1)}
	select {
	case h.commands <- msg:
	case <-ctx.Done():
		return nil, tilingerr.Wrap(tilingerr.Timeout, "actor.ask", "command queue full", ctx.Err())
	}
	select {
	case v := <-msg.reply:
		return v, nil
	case <-ctx.Done():
		h.actor.metrics.queryTimeouts.Inc()
		return nil, tilingerr.Wrap(tilingerr.Timeout, "actor.ask", "query timed out", ctx.Err())
	}
}

// Placement is a query's precomputed layout entry.
type Placement = layout.Placement

// --- Screens ---------------------------------------------------------

func (h *Handle) GetAllScreens(ctx context.Context) ([]model.Screen, error) {
	v, err := h.ask(ctx, func(a *Actor) any { return a.store.Screens() })
	if err != nil {
		return nil, err
	}
	return v.([]model.Screen), nil
}

func (h *Handle) GetScreen(ctx context.Context, id model.ScreenID) (model.Screen, bool, error) {
	v, err := h.ask(ctx, func(a *Actor) any {
		s, ok := a.store.GetScreen(id)
		return screenResult{s, ok}
	})
	if err != nil {
		return model.Screen{}, false, err
	}
	r := v.(screenResult)
	return r.screen, r.ok, nil
}

type screenResult struct {
	screen model.Screen
	ok     bool
}

// --- Workspaces -------------------------------------------------------

func (h *Handle) GetAllWorkspaces(ctx context.Context) ([]model.Workspace, error) {
	v, err := h.ask(ctx, func(a *Actor) any { return a.store.Workspaces() })
	if err != nil {
		return nil, err
	}
	return v.([]model.Workspace), nil
}

func (h *Handle) GetWorkspace(ctx context.Context, id model.WorkspaceID) (model.Workspace, bool, error) {
	v, err := h.ask(ctx, func(a *Actor) any {
		w, ok := a.store.GetWorkspace(id)
		return workspaceResult{w, ok}
	})
	if err != nil {
		return model.Workspace{}, false, err
	}
	r := v.(workspaceResult)
	return r.workspace, r.ok, nil
}

type workspaceResult struct {
	workspace model.Workspace
	ok        bool
}

func (h *Handle) GetWorkspaceByName(ctx context.Context, name string) (model.Workspace, bool, error) {
	v, err := h.ask(ctx, func(a *Actor) any {
		w, ok := a.store.WorkspaceByName(name)
		return workspaceResult{w, ok}
	})
	if err != nil {
		return model.Workspace{}, false, err
	}
	r := v.(workspaceResult)
	return r.workspace, r.ok, nil
}

func (h *Handle) GetFocusedWorkspace(ctx context.Context) (model.Workspace, bool, error) {
	v, err := h.ask(ctx, func(a *Actor) any {
		focus := a.store.Focus()
		if !focus.HasWorkspace {
			return workspaceResult{}
		}
		w, ok := a.store.GetWorkspace(focus.WorkspaceID)
		return workspaceResult{w, ok}
	})
	if err != nil {
		return model.Workspace{}, false, err
	}
	r := v.(workspaceResult)
	return r.workspace, r.ok, nil
}

// --- Windows -----------------------------------------------------------

func (h *Handle) GetAllWindows(ctx context.Context) ([]model.Window, error) {
	v, err := h.ask(ctx, func(a *Actor) any { return a.store.Windows() })
	if err != nil {
		return nil, err
	}
	return v.([]model.Window), nil
}

func (h *Handle) GetWindow(ctx context.Context, id model.WindowID) (model.Window, bool, error) {
	v, err := h.ask(ctx, func(a *Actor) any {
		w, ok := a.store.GetWindow(id)
		return windowResult{w, ok}
	})
	if err != nil {
		return model.Window{}, false, err
	}
	r := v.(windowResult)
	return r.window, r.ok, nil
}

type windowResult struct {
	window model.Window
	ok     bool
}

// GetWorkspaceWindowIDs returns a copy of a workspace's window id
// sequence, without the window records, for hot paths that only need
// identity.
func (h *Handle) GetWorkspaceWindowIDs(ctx context.Context, id model.WorkspaceID) ([]model.WindowID, error) {
	v, err := h.ask(ctx, func(a *Actor) any {
		w, ok := a.store.GetWorkspace(id)
		if !ok {
			return []model.WindowID{}
		}
		return append([]model.WindowID(nil), w.WindowIDs...)
	})
	if err != nil {
		return nil, err
	}
	return v.([]model.WindowID), nil
}

func (h *Handle) HasWindow(ctx context.Context, id model.WindowID) (bool, error) {
	v, err := h.ask(ctx, func(a *Actor) any {
		_, ok := a.store.GetWindow(id)
		return ok
	})
	if err != nil {
		return false, err
	}
	return v.(bool), nil
}

// --- Focus ---------------------------------------------------------------

func (h *Handle) GetFocus(ctx context.Context) (model.FocusState, error) {
	v, err := h.ask(ctx, func(a *Actor) any { return a.store.Focus() })
	if err != nil {
		return model.FocusState{}, err
	}
	return v.(model.FocusState), nil
}

// --- Enabled ---------------------------------------------------------------

func (h *Handle) GetEnabled(ctx context.Context) (bool, error) {
	v, err := h.ask(ctx, func(a *Actor) any { return a.enabled })
	if err != nil {
		return false, err
	}
	return v.(bool), nil
}

// --- Layout -----------------------------------------------------------

// GetLayout returns the (window id, frame) placement for a workspace,
// computed by the actor from its current state when the query runs
// (nothing is cached between queries).
func (h *Handle) GetLayout(ctx context.Context, id model.WorkspaceID) ([]Placement, error) {
	v, err := h.ask(ctx, func(a *Actor) any { return a.computeLayout(id) })
	if err != nil {
		return nil, err
	}
	return v.([]Placement), nil
}

// --- Tabs (SPEC_FULL §C.3) ------------------------------------------------

// QueryTabsOf returns the ids of windows registered as tabs of primary.
func (h *Handle) QueryTabsOf(ctx context.Context, primary model.WindowID) ([]model.WindowID, error) {
	v, err := h.ask(ctx, func(a *Actor) any { return a.store.TabsOf(primary) })
	if err != nil {
		return nil, err
	}
	return v.([]model.WindowID), nil
}

// QueryIsTab reports whether id is registered as a tab of some other
// window.
func (h *Handle) QueryIsTab(ctx context.Context, id model.WindowID) (bool, error) {
	v, err := h.ask(ctx, func(a *Actor) any { return a.store.IsTab(id) })
	if err != nil {
		return false, err
	}
	return v.(bool), nil
}

// --- Presets (SPEC_FULL §C.4) ------------------------------------------

// PresetInfo is one entry of the floating preset catalogue.
type PresetInfo struct {
	Name          string
	X, Y          float64
	Width, Height float64
}

// QueryPresets returns the configured tiling.floating.presets catalogue
// so a host UI can build a preset picker.
func (h *Handle) QueryPresets(ctx context.Context) ([]PresetInfo, error) {
	v, err := h.ask(ctx, func(a *Actor) any {
		specs := a.cfg.Tiling.Floating.Presets
		out := make([]PresetInfo, len(specs))
		for i, p := range specs {
			out[i] = PresetInfo{Name: p.Name, X: p.X, Y: p.Y, Width: p.Width, Height: p.Height}
		}
		return out
	})
	if err != nil {
		return nil, err
	}
	return v.([]PresetInfo), nil
}
