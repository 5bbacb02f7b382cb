package model

// Store is the indexed container the state actor owns exclusively.
// Screens, workspaces, and windows are kept in insertion-ordered slices
// with auxiliary id->position maps, mirroring the ObservableVector +
// HashMap index pattern the tiling core's state layer uses: every
// mutation goes through an upsert/remove method that keeps the index in
// lock-step with the slice, so lookups stay O(1) and iteration order
// stays stable (spec.md §3 "Two auxiliary indices").
//
// Store is not safe for concurrent use; it is only ever touched from the
// state actor's single goroutine (spec.md §5).
type Store struct {
	screens    []Screen
	screenIdx  map[ScreenID]int

	workspaces   []Workspace
	workspaceIdx map[WorkspaceID]int

	windows   []Window
	windowIdx map[WindowID]int

	focus        FocusState
	focusHistory map[WorkspaceID]WindowID

	// tabs maps a tab window's id to the id of the primary window it
	// shadows (spec.md §4.5 "Window placement on creation", GLOSSARY
	// "Tab"). Tab windows are never present in any workspace's
	// WindowIDs.
	tabs map[WindowID]WindowID
}

// NewStore builds an empty store.
func NewStore() *Store {
	return &Store{
		screenIdx:    make(map[ScreenID]int),
		workspaceIdx: make(map[WorkspaceID]int),
		windowIdx:    make(map[WindowID]int),
		focusHistory: make(map[WorkspaceID]WindowID),
		tabs:         make(map[WindowID]WindowID),
	}
}

// ---------------------------------------------------------------------
// Screens
// ---------------------------------------------------------------------

// UpsertScreen inserts or updates a screen, preserving its existing
// position when it is being updated.
func (s *Store) UpsertScreen(screen Screen) {
	if idx, ok := s.screenIdx[screen.ID]; ok {
		s.screens[idx] = screen
		return
	}
	s.screenIdx[screen.ID] = len(s.screens)
	s.screens = append(s.screens, screen)
}

// RemoveScreen deletes a screen by id, compacting the slice and shifting
// every subsequent index down by one.
func (s *Store) RemoveScreen(id ScreenID) (Screen, bool) {
	idx, ok := s.screenIdx[id]
	if !ok {
		return Screen{}, false
	}
	removed := s.screens[idx]
	s.screens = append(s.screens[:idx], s.screens[idx+1:]...)
	delete(s.screenIdx, id)
	for sid, i := range s.screenIdx {
		if i > idx {
			s.screenIdx[sid] = i - 1
		}
	}
	return removed, true
}

// GetScreen looks up a screen by id in O(1).
func (s *Store) GetScreen(id ScreenID) (Screen, bool) {
	idx, ok := s.screenIdx[id]
	if !ok {
		return Screen{}, false
	}
	return s.screens[idx], true
}

// ScreenByName performs an O(n) lookup by the screen's human label, used
// to resolve a workspace's configured_screen back to a live id.
func (s *Store) ScreenByName(name string) (Screen, bool) {
	for _, sc := range s.screens {
		if sc.Name == name {
			return sc, true
		}
	}
	return Screen{}, false
}

// MainScreen returns the screen flagged is_main, if any is currently
// connected.
func (s *Store) MainScreen() (Screen, bool) {
	for _, sc := range s.screens {
		if sc.IsMain {
			return sc, true
		}
	}
	return Screen{}, false
}

// Screens returns a snapshot copy of every tracked screen, in insertion
// order.
func (s *Store) Screens() []Screen {
	out := make([]Screen, len(s.screens))
	copy(out, s.screens)
	return out
}

// ---------------------------------------------------------------------
// Workspaces
// ---------------------------------------------------------------------

// UpsertWorkspace inserts or updates a workspace.
func (s *Store) UpsertWorkspace(ws Workspace) {
	if idx, ok := s.workspaceIdx[ws.ID]; ok {
		s.workspaces[idx] = ws
		return
	}
	s.workspaceIdx[ws.ID] = len(s.workspaces)
	s.workspaces = append(s.workspaces, ws)
}

// RemoveWorkspace deletes a workspace by id.
func (s *Store) RemoveWorkspace(id WorkspaceID) (Workspace, bool) {
	idx, ok := s.workspaceIdx[id]
	if !ok {
		return Workspace{}, false
	}
	removed := s.workspaces[idx]
	s.workspaces = append(s.workspaces[:idx], s.workspaces[idx+1:]...)
	delete(s.workspaceIdx, id)
	for wid, i := range s.workspaceIdx {
		if i > idx {
			s.workspaceIdx[wid] = i - 1
		}
	}
	delete(s.focusHistory, id)
	return removed, true
}

// GetWorkspace looks up a workspace by id in O(1).
func (s *Store) GetWorkspace(id WorkspaceID) (Workspace, bool) {
	idx, ok := s.workspaceIdx[id]
	if !ok {
		return Workspace{}, false
	}
	return s.workspaces[idx], true
}

// WorkspaceByName performs an O(n) lookup by the workspace's unique
// display name.
func (s *Store) WorkspaceByName(name string) (Workspace, bool) {
	for _, ws := range s.workspaces {
		if ws.Name == name {
			return ws, true
		}
	}
	return Workspace{}, false
}

// Workspaces returns a snapshot copy of every workspace.
func (s *Store) Workspaces() []Workspace {
	out := make([]Workspace, len(s.workspaces))
	for i, ws := range s.workspaces {
		out[i] = ws.Clone()
	}
	return out
}

// WorkspacesOnScreen returns every workspace currently bound to screenID.
func (s *Store) WorkspacesOnScreen(screenID ScreenID) []Workspace {
	var out []Workspace
	for _, ws := range s.workspaces {
		if ws.ScreenID == screenID {
			out = append(out, ws.Clone())
		}
	}
	return out
}

// VisibleWorkspaceOnScreen returns the at-most-one workspace on screenID
// with IsVisible set (spec.md §3 invariant).
func (s *Store) VisibleWorkspaceOnScreen(screenID ScreenID) (Workspace, bool) {
	for _, ws := range s.workspaces {
		if ws.ScreenID == screenID && ws.IsVisible {
			return ws.Clone(), true
		}
	}
	return Workspace{}, false
}

// MutateWorkspace applies fn to the stored workspace in place and writes
// the result back, returning false if the id does not exist. This is the
// only way actor handlers should update a workspace, so the index never
// drifts from the backing slice.
func (s *Store) MutateWorkspace(id WorkspaceID, fn func(*Workspace)) bool {
	idx, ok := s.workspaceIdx[id]
	if !ok {
		return false
	}
	fn(&s.workspaces[idx])
	return true
}

// ---------------------------------------------------------------------
// Windows
// ---------------------------------------------------------------------

// UpsertWindow inserts or updates a window.
func (s *Store) UpsertWindow(w Window) {
	if idx, ok := s.windowIdx[w.ID]; ok {
		s.windows[idx] = w
		return
	}
	s.windowIdx[w.ID] = len(s.windows)
	s.windows = append(s.windows, w)
}

// RemoveWindow deletes a window by id. It does not remove the id from
// its workspace's WindowIDs slice; callers must do that explicitly via
// RemoveWindowFromWorkspace to keep the invariant auditable at the call
// site.
func (s *Store) RemoveWindow(id WindowID) (Window, bool) {
	idx, ok := s.windowIdx[id]
	if !ok {
		return Window{}, false
	}
	removed := s.windows[idx]
	s.windows = append(s.windows[:idx], s.windows[idx+1:]...)
	delete(s.windowIdx, id)
	for wid, i := range s.windowIdx {
		if i > idx {
			s.windowIdx[wid] = i - 1
		}
	}
	delete(s.tabs, id)
	return removed, true
}

// GetWindow looks up a window by id in O(1).
func (s *Store) GetWindow(id WindowID) (Window, bool) {
	idx, ok := s.windowIdx[id]
	if !ok {
		return Window{}, false
	}
	return s.windows[idx], true
}

// Windows returns a snapshot copy of every tracked window.
func (s *Store) Windows() []Window {
	out := make([]Window, len(s.windows))
	copy(out, s.windows)
	return out
}

// WindowsInWorkspace returns the windows belonging to wsID, in the
// workspace's WindowIDs order.
func (s *Store) WindowsInWorkspace(wsID WorkspaceID) []Window {
	ws, ok := s.GetWorkspace(wsID)
	if !ok {
		return nil
	}
	out := make([]Window, 0, len(ws.WindowIDs))
	for _, id := range ws.WindowIDs {
		if w, ok := s.GetWindow(id); ok {
			out = append(out, w)
		}
	}
	return out
}

// MutateWindow applies fn to the stored window in place.
func (s *Store) MutateWindow(id WindowID, fn func(*Window)) bool {
	idx, ok := s.windowIdx[id]
	if !ok {
		return false
	}
	fn(&s.windows[idx])
	return true
}

// ---------------------------------------------------------------------
// Placement: keeps Workspace.WindowIDs and Window.WorkspaceID consistent
// ---------------------------------------------------------------------

// PlaceWindowAfter inserts windowID into wsID's WindowIDs sequence
// immediately after afterID (or at the end if afterID is absent), and
// sets the window's WorkspaceID, satisfying spec.md §4.5 "Window
// placement on creation".
func (s *Store) PlaceWindowAfter(windowID WindowID, wsID WorkspaceID, afterID WindowID, hasAfter bool) bool {
	ok := s.MutateWorkspace(wsID, func(ws *Workspace) {
		pos := len(ws.WindowIDs)
		if hasAfter {
			for i, id := range ws.WindowIDs {
				if id == afterID {
					pos = i + 1
					break
				}
			}
		}
		ws.WindowIDs = append(ws.WindowIDs, 0)
		copy(ws.WindowIDs[pos+1:], ws.WindowIDs[pos:])
		ws.WindowIDs[pos] = windowID
	})
	if !ok {
		return false
	}
	s.MutateWindow(windowID, func(w *Window) { w.WorkspaceID = wsID })
	return true
}

// RemoveWindowFromWorkspace removes windowID from wsID's WindowIDs
// sequence, if present.
func (s *Store) RemoveWindowFromWorkspace(windowID WindowID, wsID WorkspaceID) {
	s.MutateWorkspace(wsID, func(ws *Workspace) {
		for i, id := range ws.WindowIDs {
			if id == windowID {
				ws.WindowIDs = append(ws.WindowIDs[:i], ws.WindowIDs[i+1:]...)
				return
			}
		}
	})
}

// MoveWindowToWorkspace removes windowID from its current workspace and
// appends it to the end of destID's sequence.
func (s *Store) MoveWindowToWorkspace(windowID WindowID, destID WorkspaceID) bool {
	w, ok := s.GetWindow(windowID)
	if !ok {
		return false
	}
	s.RemoveWindowFromWorkspace(windowID, w.WorkspaceID)
	return s.PlaceWindowAfter(windowID, destID, 0, false)
}

// ---------------------------------------------------------------------
// Focus
// ---------------------------------------------------------------------

// Focus returns the current global focus tuple.
func (s *Store) Focus() FocusState { return s.focus }

// SetFocus overwrites the global focus tuple.
func (s *Store) SetFocus(f FocusState) { s.focus = f }

// LastFocusedWindow returns the window id last focused in wsID, if the
// workspace has one recorded.
func (s *Store) LastFocusedWindow(wsID WorkspaceID) (WindowID, bool) {
	id, ok := s.focusHistory[wsID]
	return id, ok
}

// RecordFocusHistory remembers windowID as the last focused window of
// wsID, so a later SwitchWorkspace can restore it (spec.md §4.5).
func (s *Store) RecordFocusHistory(wsID WorkspaceID, windowID WindowID) {
	s.focusHistory[wsID] = windowID
}

// ---------------------------------------------------------------------
// Tab registry (spec.md §4.5, SPEC_FULL §C.3)
// ---------------------------------------------------------------------

// RegisterTab records windowID as a tab of primaryID. Tab windows are
// never placed into a workspace's WindowIDs.
func (s *Store) RegisterTab(windowID, primaryID WindowID) {
	s.tabs[windowID] = primaryID
}

// PrimaryForTab returns the primary window a tab id shadows.
func (s *Store) PrimaryForTab(windowID WindowID) (WindowID, bool) {
	id, ok := s.tabs[windowID]
	return id, ok
}

// IsTab reports whether windowID is registered as a tab of another
// window.
func (s *Store) IsTab(windowID WindowID) bool {
	_, ok := s.tabs[windowID]
	return ok
}

// TabsOf returns every tab window registered against primaryID, in
// arbitrary order (SPEC_FULL §C.3 QueryTabsOf).
func (s *Store) TabsOf(primaryID WindowID) []WindowID {
	var out []WindowID
	for tab, primary := range s.tabs {
		if primary == primaryID {
			out = append(out, tab)
		}
	}
	return out
}
