package effects

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/yourorg/tilecore/internal/geometry"
	"github.com/yourorg/tilecore/internal/model"
)

type stubMouse struct {
	mu   sync.Mutex
	down bool
}

func (s *stubMouse) IsMouseDown() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.down
}

func (s *stubMouse) set(down bool) {
	s.mu.Lock()
	s.down = down
	s.mu.Unlock()
}

type recordingDragSignal struct {
	mu             sync.Mutex
	dragStates     []bool
	resizeCalls    int
	moveCalls      int
	lastOld        geometry.Rect
	lastNew        geometry.Rect
	lastMoveWsID   model.WorkspaceID
}

func (r *recordingDragSignal) SetDragInProgress(inProgress bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dragStates = append(r.dragStates, inProgress)
	return nil
}

func (r *recordingDragSignal) UserResizeCompleted(wsID model.WorkspaceID, windowID model.WindowID, oldFrame, newFrame geometry.Rect) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resizeCalls++
	r.lastOld = oldFrame
	r.lastNew = newFrame
	return nil
}

func (r *recordingDragSignal) UserMoveCompleted(wsID model.WorkspaceID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.moveCalls++
	r.lastMoveWsID = wsID
	return nil
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition never became true")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestDragMonitorSignalsMoveOnMouseUpWithoutResize(t *testing.T) {
	mouse := &stubMouse{}
	signal := &recordingDragSignal{}
	mon := NewDragMonitor(mouse, signal, testLogger(), 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go mon.Run(ctx)

	mouse.set(true)
	waitFor(t, time.Second, func() bool {
		signal.mu.Lock()
		defer signal.mu.Unlock()
		return len(signal.dragStates) > 0 && signal.dragStates[0]
	})

	wsID := model.NewWorkspaceID()
	mon.OnGeometryDuringDrag(wsID, 1, geometry.NewRect(0, 0, 10, 10))
	mon.OnGeometryDuringDrag(wsID, 1, geometry.NewRect(5, 5, 10, 10))

	mouse.set(false)
	waitFor(t, time.Second, func() bool {
		signal.mu.Lock()
		defer signal.mu.Unlock()
		return signal.moveCalls == 1
	})

	signal.mu.Lock()
	defer signal.mu.Unlock()
	if signal.resizeCalls != 0 {
		t.Fatalf("resizeCalls = %d, want 0", signal.resizeCalls)
	}
	if signal.lastMoveWsID != wsID {
		t.Fatalf("lastMoveWsID = %v, want %v", signal.lastMoveWsID, wsID)
	}
}

func TestDragMonitorSignalsResizeWhenSizeChanges(t *testing.T) {
	mouse := &stubMouse{}
	signal := &recordingDragSignal{}
	mon := NewDragMonitor(mouse, signal, testLogger(), 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go mon.Run(ctx)

	mouse.set(true)
	waitFor(t, time.Second, func() bool {
		signal.mu.Lock()
		defer signal.mu.Unlock()
		return len(signal.dragStates) > 0
	})

	wsID := model.NewWorkspaceID()
	mon.OnGeometryDuringDrag(wsID, 1, geometry.NewRect(0, 0, 10, 10))
	mon.OnGeometryDuringDrag(wsID, 1, geometry.NewRect(0, 0, 30, 30))

	mouse.set(false)
	waitFor(t, time.Second, func() bool {
		signal.mu.Lock()
		defer signal.mu.Unlock()
		return signal.resizeCalls == 1
	})

	signal.mu.Lock()
	defer signal.mu.Unlock()
	if !signal.lastOld.ApproxEqual(geometry.NewRect(0, 0, 10, 10)) {
		t.Fatalf("lastOld = %+v, want the pre-resize frame", signal.lastOld)
	}
	if !signal.lastNew.ApproxEqual(geometry.NewRect(0, 0, 30, 30)) {
		t.Fatalf("lastNew = %+v, want the post-resize frame", signal.lastNew)
	}
}
