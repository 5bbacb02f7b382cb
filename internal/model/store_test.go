package model

import "testing"

func TestPlaceWindowAfterMaintainsOrder(t *testing.T) {
	s := NewStore()
	ws := Workspace{ID: NewWorkspaceID(), Name: "main"}
	s.UpsertWorkspace(ws)

	s.UpsertWindow(Window{ID: 1})
	s.UpsertWindow(Window{ID: 2})
	s.UpsertWindow(Window{ID: 3})

	if !s.PlaceWindowAfter(1, ws.ID, 0, false) {
		t.Fatal("place 1 failed")
	}
	if !s.PlaceWindowAfter(2, ws.ID, 1, true) {
		t.Fatal("place 2 failed")
	}
	if !s.PlaceWindowAfter(3, ws.ID, 1, true) {
		t.Fatal("place 3 failed")
	}

	got, _ := s.GetWorkspace(ws.ID)
	want := []WindowID{1, 3, 2}
	if len(got.WindowIDs) != len(want) {
		t.Fatalf("window order = %v, want %v", got.WindowIDs, want)
	}
	for i, id := range want {
		if got.WindowIDs[i] != id {
			t.Fatalf("window order = %v, want %v", got.WindowIDs, want)
		}
	}

	w, ok := s.GetWindow(3)
	if !ok || w.WorkspaceID != ws.ID {
		t.Fatalf("window 3 workspace id not updated: %+v", w)
	}
}

func TestRemoveScreenShiftsIndex(t *testing.T) {
	s := NewStore()
	s.UpsertScreen(Screen{ID: 1})
	s.UpsertScreen(Screen{ID: 2})
	s.UpsertScreen(Screen{ID: 3})

	if _, ok := s.RemoveScreen(2); !ok {
		t.Fatal("remove screen 2 failed")
	}

	if _, ok := s.GetScreen(2); ok {
		t.Fatal("screen 2 should be gone")
	}
	sc, ok := s.GetScreen(3)
	if !ok || sc.ID != 3 {
		t.Fatalf("screen 3 lookup broken after removal: %+v, ok=%v", sc, ok)
	}
	if got := s.Screens(); len(got) != 2 {
		t.Fatalf("expected 2 screens remaining, got %d", len(got))
	}
}

func TestMoveWindowToWorkspace(t *testing.T) {
	s := NewStore()
	wsA := Workspace{ID: NewWorkspaceID(), Name: "a"}
	wsB := Workspace{ID: NewWorkspaceID(), Name: "b"}
	s.UpsertWorkspace(wsA)
	s.UpsertWorkspace(wsB)
	s.UpsertWindow(Window{ID: 1})
	s.PlaceWindowAfter(1, wsA.ID, 0, false)

	if !s.MoveWindowToWorkspace(1, wsB.ID) {
		t.Fatal("move failed")
	}

	a, _ := s.GetWorkspace(wsA.ID)
	b, _ := s.GetWorkspace(wsB.ID)
	if len(a.WindowIDs) != 0 {
		t.Fatalf("workspace a should be empty, got %v", a.WindowIDs)
	}
	if len(b.WindowIDs) != 1 || b.WindowIDs[0] != 1 {
		t.Fatalf("workspace b should contain window 1, got %v", b.WindowIDs)
	}
	w, _ := s.GetWindow(1)
	if w.WorkspaceID != wsB.ID {
		t.Fatalf("window workspace id not updated: %+v", w)
	}
}
