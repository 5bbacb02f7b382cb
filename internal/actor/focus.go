package actor

import "github.com/yourorg/tilecore/internal/model"

// focusableWindows returns a workspace's layoutable windows in
// WindowIDs order, excluding picture-in-picture windows, which are
// never a focus/swap target (grounded on window_ops.rs's
// focus_window_in_direction, which filters PiP out of the candidate
// set before cycling or searching).
func (a *Actor) focusableWindows(wsID model.WorkspaceID) []model.Window {
	ws, ok := a.store.GetWorkspace(wsID)
	if !ok {
		return nil
	}
	out := make([]model.Window, 0, len(ws.WindowIDs))
	for _, id := range ws.WindowIDs {
		w, ok := a.store.GetWindow(id)
		if !ok || w.IsPictureInPicture {
			continue
		}
		out = append(out, w)
	}
	return out
}

// cycleNeighbor returns the window id adjacent to currentID in
// candidates, wrapping around, per dir. Returns false if currentID is
// not found or candidates is empty.
func cycleNeighbor(candidates []model.Window, currentID model.WindowID, dir FocusDirection) (model.WindowID, bool) {
	if len(candidates) == 0 {
		return 0, false
	}
	idx := -1
	for i, w := range candidates {
		if w.ID == currentID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return candidates[0].ID, true
	}
	n := len(candidates)
	switch dir {
	case FocusPrevious:
		return candidates[(idx-1+n)%n].ID, true
	default: // FocusNext
		return candidates[(idx+1)%n].ID, true
	}
}

// spatialNeighbor finds the candidate whose frame center lies in
// direction dir from current's frame center, breaking ties by Manhattan
// distance, grounded on window_ops.rs's find_window_in_direction.
func spatialNeighbor(candidates []model.Window, current model.Window, dir FocusDirection) (model.WindowID, bool) {
	cx, cy := center(current)
	best := model.WindowID(0)
	bestDist := -1.0
	found := false

	for _, w := range candidates {
		if w.ID == current.ID {
			continue
		}
		wx, wy := center(w)
		if !inDirection(dir, cx, cy, wx, wy) {
			continue
		}
		dist := manhattan(cx, cy, wx, wy)
		if !found || dist < bestDist {
			best, bestDist, found = w.ID, dist, true
		}
	}
	return best, found
}

func center(w model.Window) (float64, float64) {
	return w.Frame.X + w.Frame.W/2, w.Frame.Y + w.Frame.H/2
}

func inDirection(dir FocusDirection, cx, cy, wx, wy float64) bool {
	switch dir {
	case FocusLeft:
		return wx < cx
	case FocusRight:
		return wx > cx
	case FocusUp:
		return wy < cy
	case FocusDown:
		return wy > cy
	default:
		return false
	}
}

func manhattan(x1, y1, x2, y2 float64) float64 {
	return abs(x1-x2) + abs(y1-y2)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
