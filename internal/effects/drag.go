package effects

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourorg/tilecore/internal/geometry"
	"github.com/yourorg/tilecore/internal/model"
)

// MouseStateProvider reports whether the primary mouse button is
// currently held, the signal spec.md §4.4 "Drag detection" uses to
// distinguish a user-initiated move/resize from a programmatic one.
// This module ships no OS-backed implementation; tests provide a stub.
type MouseStateProvider interface {
	IsMouseDown() bool
}

// DragSignal is the subset of the actor handle the drag monitor drives:
// SetDragInProgress gates geometry-event suppression for the whole
// duration of the drag (grounded on actor.go's dragInProgress field),
// and UserResizeCompleted/UserMoveCompleted fire once on mouse-up so
// the actor can compute a new split ratio or snap the window back.
type DragSignal interface {
	SetDragInProgress(inProgress bool) error
	UserResizeCompleted(wsID model.WorkspaceID, windowID model.WindowID, oldFrame, newFrame geometry.Rect) error
	UserMoveCompleted(wsID model.WorkspaceID) error
}

// dragSnapshot is what DragMonitor remembers about the window being
// dragged, taken at mouse-down so mouse-up can report the size delta
// the resize case needs.
type dragSnapshot struct {
	workspaceID model.WorkspaceID
	windowID    model.WindowID
	startFrame  geometry.Rect
	latestFrame geometry.Rect
	isResize    bool
}

// DragMonitor polls a MouseStateProvider at pollInterval and turns the
// down/held/up sequence into DragSignal calls, per spec.md §4.4: "While
// mouse is held, geometry events are interpreted as user intent ...
// [on] mouse-up, the applier either snaps back ... or computes a new
// split ratio".
type DragMonitor struct {
	mouse        MouseStateProvider
	signal       DragSignal
	logger       *logrus.Logger
	pollInterval time.Duration

	mu      sync.Mutex
	active  *dragSnapshot
	started bool
}

// NewDragMonitor builds a DragMonitor. pollInterval defaults to 16ms
// (roughly one frame) if zero or negative.
func NewDragMonitor(mouse MouseStateProvider, signal DragSignal, logger *logrus.Logger, pollInterval time.Duration) *DragMonitor {
	if pollInterval <= 0 {
		pollInterval = 16 * time.Millisecond
	}
	return &DragMonitor{mouse: mouse, signal: signal, logger: logger, pollInterval: pollInterval}
}

// Run polls the mouse state until ctx is canceled. It is meant to run
// in its own goroutine for the lifetime of the process.
func (d *DragMonitor) Run(ctx context.Context) {
	ticker := time.NewTicker(d.pollInterval)
	defer ticker.Stop()

	wasDown := false
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			down := d.mouse.IsMouseDown()
			if down && !wasDown {
				d.onMouseDown()
			} else if !down && wasDown {
				d.onMouseUp()
			}
			wasDown = down
		}
	}
}

// OnGeometryDuringDrag is called by the event pipeline for every
// geometry observation that arrives while the mouse is down, so the
// monitor can record which window is being dragged and whether the
// operation looks like a resize (frame size differs from the
// snapshot) or a move. The first observation after mouse-down wins;
// later ones only update the tracked frame.
func (d *DragMonitor) OnGeometryDuringDrag(wsID model.WorkspaceID, windowID model.WindowID, frame geometry.Rect) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.active == nil {
		d.active = &dragSnapshot{workspaceID: wsID, windowID: windowID, startFrame: frame, latestFrame: frame}
		return
	}
	if d.active.windowID != windowID {
		return
	}
	if !approxEqual(d.active.startFrame.W, frame.W) || !approxEqual(d.active.startFrame.H, frame.H) {
		d.active.isResize = true
	}
	d.active.latestFrame = frame
}

func (d *DragMonitor) onMouseDown() {
	d.mu.Lock()
	d.active = nil
	d.mu.Unlock()

	if err := d.signal.SetDragInProgress(true); err != nil {
		d.logger.WithError(err).Warn("failed to signal drag start")
	}
}

func (d *DragMonitor) onMouseUp() {
	d.mu.Lock()
	snapshot := d.active
	d.active = nil
	d.mu.Unlock()

	if snapshot == nil {
		if err := d.signal.SetDragInProgress(false); err != nil {
			d.logger.WithError(err).Warn("failed to signal drag end")
		}
		return
	}

	var err error
	if snapshot.isResize {
		err = d.signal.UserResizeCompleted(snapshot.workspaceID, snapshot.windowID, snapshot.startFrame, snapshot.latestFrame)
	} else {
		err = d.signal.UserMoveCompleted(snapshot.workspaceID)
	}
	if err != nil {
		d.logger.WithError(err).Warn("failed to signal drag completion")
	}
}
