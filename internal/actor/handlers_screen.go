package actor

import (
	"context"
	"strings"

	"github.com/yourorg/tilecore/internal/model"
)

// handleSetScreens upserts the currently detected screens, removes
// vanished ones, and keeps workspace-to-screen assignment coherent
// across the hotplug (spec.md §4.5 "Screen hotplug/migration").
// Screen enumeration itself is a Platform Adapter concern; the actor
// only ever sees the already-detected list (grounded on
// handlers/screen.rs's on_set_screens, "the preferred way... doesn't
// require calling macOS APIs from the async actor task").
func (a *Actor) handleSetScreens(ctx context.Context, screens []model.Screen) {
	first := len(a.store.Screens()) == 0

	seen := map[model.ScreenID]bool{}
	for _, sc := range screens {
		seen[sc.ID] = true
		a.store.UpsertScreen(sc)
	}
	var removed []model.Screen
	for _, sc := range a.store.Screens() {
		if !seen[sc.ID] {
			if r, ok := a.store.RemoveScreen(sc.ID); ok {
				removed = append(removed, r)
			}
		}
	}

	if first {
		a.createWorkspacesFromConfig()
	} else {
		a.reassignWorkspacesFromRemovedScreens(removed)
		a.restoreWorkspacesToConfiguredScreens()
	}
	a.ensureScreenWorkspaces()

	focus := a.store.Focus()
	if !focus.HasWorkspace {
		a.setInitialFocus()
	}

	for _, ws := range a.store.Workspaces() {
		if ws.IsVisible {
			a.relayout(ws.ID, false)
		}
	}
}

// createWorkspacesFromConfig seeds every configured workspace on its
// resolved screen, or a single default workspace per screen if none
// are configured (spec.md §6, grounded on
// handlers/screen.rs's create_workspaces_from_config/create_default_workspaces).
func (a *Actor) createWorkspacesFromConfig() {
	specs := a.cfg.Tiling.Workspaces
	if len(specs) == 0 {
		a.createDefaultWorkspaces()
		return
	}
	for _, spec := range specs {
		screenID, ok := a.resolveScreenName(spec.Screen)
		if !ok {
			if main, ok := a.store.MainScreen(); ok {
				screenID = main.ID
			} else {
				continue
			}
		}
		layout, _ := model.ParseLayoutTag(spec.Layout)
		ws := model.Workspace{
			ID:               model.NewWorkspaceID(),
			Name:             spec.Name,
			ScreenID:         screenID,
			ConfiguredScreen: spec.Screen,
			Layout:           layout,
			PresetOnOpen:     spec.PresetOnOpen,
		}
		a.store.UpsertWorkspace(ws)
	}
}

// createDefaultWorkspaces gives every currently connected screen a
// single workspace named "main" with the default layout.
func (a *Actor) createDefaultWorkspaces() {
	for _, sc := range a.store.Screens() {
		a.store.UpsertWorkspace(model.Workspace{
			ID:       model.NewWorkspaceID(),
			Name:     "main",
			ScreenID: sc.ID,
			Layout:   model.Dwindle,
		})
	}
}

// reassignWorkspacesFromRemovedScreens moves every workspace that was
// bound to a now-vanished screen onto the main screen, so its windows
// remain reachable instead of orphaned (grounded on
// handlers/screen.rs's reassign_workspaces_from_removed_screens).
func (a *Actor) reassignWorkspacesFromRemovedScreens(removed []model.Screen) {
	if len(removed) == 0 {
		return
	}
	removedIDs := map[model.ScreenID]bool{}
	for _, sc := range removed {
		removedIDs[sc.ID] = true
	}
	main, ok := a.store.MainScreen()
	if !ok {
		return
	}
	for _, ws := range a.store.Workspaces() {
		if removedIDs[ws.ScreenID] {
			a.store.MutateWorkspace(ws.ID, func(w *model.Workspace) {
				w.ScreenID = main.ID
				w.IsVisible = false
				w.IsFocused = false
			})
		}
	}
}

// restoreWorkspacesToConfiguredScreens moves any workspace whose
// configured_screen names a screen that has just reappeared back onto
// it, undoing a prior reassignWorkspacesFromRemovedScreens (grounded on
// handlers/screen.rs's restore_workspaces_to_configured_screens).
func (a *Actor) restoreWorkspacesToConfiguredScreens() {
	for _, ws := range a.store.Workspaces() {
		if ws.ConfiguredScreen == "" {
			continue
		}
		screenID, ok := a.resolveScreenName(ws.ConfiguredScreen)
		if !ok || screenID == ws.ScreenID {
			continue
		}
		a.store.MutateWorkspace(ws.ID, func(w *model.Workspace) { w.ScreenID = screenID })
	}
}

// ensureScreenWorkspaces guarantees every connected screen has at least
// one workspace, synthesizing a fallback workspace named after the
// screen for any screen left without one (grounded on handlers/screen.rs's
// ensure_screen_workspaces).
func (a *Actor) ensureScreenWorkspaces() {
	for _, sc := range a.store.Screens() {
		if len(a.store.WorkspacesOnScreen(sc.ID)) > 0 {
			continue
		}
		a.store.UpsertWorkspace(model.Workspace{
			ID:       model.NewWorkspaceID(),
			Name:     sc.Name,
			ScreenID: sc.ID,
			Layout:   model.Dwindle,
		})
	}
}

// setInitialFocus makes one workspace per screen visible, and only the
// main screen's visible workspace focused, when no focus has been
// established yet (grounded on handlers/screen.rs's set_initial_focus).
func (a *Actor) setInitialFocus() {
	main, hasMain := a.store.MainScreen()
	for _, sc := range a.store.Screens() {
		wsOnScreen := a.store.WorkspacesOnScreen(sc.ID)
		if len(wsOnScreen) == 0 {
			continue
		}
		chosen := wsOnScreen[0]
		isMain := hasMain && sc.ID == main.ID
		a.store.MutateWorkspace(chosen.ID, func(w *model.Workspace) {
			w.IsVisible = true
			w.IsFocused = isMain
		})
		if isMain {
			a.store.SetFocus(model.FocusState{
				WorkspaceID: chosen.ID, HasWorkspace: true,
				ScreenID: sc.ID, HasScreen: true,
			})
		}
	}
}

// resolveScreenName resolves a configured screen label to a live
// screen id: "main"/"primary" select the main screen, "secondary"
// selects the first non-main screen, otherwise an exact name match is
// tried, falling back to a case-insensitive substring match (grounded
// on handlers/screen.rs's resolve_screen_name).
func (a *Actor) resolveScreenName(name string) (model.ScreenID, bool) {
	switch strings.ToLower(name) {
	case "", "main", "primary":
		if sc, ok := a.store.MainScreen(); ok {
			return sc.ID, true
		}
		return 0, false
	case "secondary":
		main, hasMain := a.store.MainScreen()
		for _, sc := range a.store.Screens() {
			if !hasMain || sc.ID != main.ID {
				return sc.ID, true
			}
		}
		return 0, false
	}

	if sc, ok := a.store.ScreenByName(name); ok {
		return sc.ID, true
	}
	lower := strings.ToLower(name)
	for _, sc := range a.store.Screens() {
		if strings.Contains(strings.ToLower(sc.Name), lower) {
			return sc.ID, true
		}
	}
	return 0, false
}

// resolveTargetScreen turns a parsed TargetScreen into a live screen
// id, reusing resolveScreenName for the named case.
func (a *Actor) resolveTargetScreen(t TargetScreen) (model.ScreenID, bool) {
	switch t.Kind {
	case TargetMain:
		return a.resolveScreenName("main")
	case TargetSecondary:
		return a.resolveScreenName("secondary")
	default:
		return a.resolveScreenName(t.Name)
	}
}
