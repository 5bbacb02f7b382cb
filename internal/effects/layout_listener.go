package effects

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourorg/tilecore/internal/actor"
	"github.com/yourorg/tilecore/internal/geometry"
	"github.com/yourorg/tilecore/internal/model"
)

// layoutQueryTimeout bounds how long a layout notification waits on the
// actor's query queue. notify.Hub runs each notifier call on its own
// goroutine, so the query does not block the actor, but a stalled
// actor must not leave listener goroutines waiting indefinitely.
const layoutQueryTimeout = 500 * time.Millisecond

// LayoutListener implements notify.LayoutChangedSubscriber (spec.md
// §4.4), translating a bare workspace-recomputed notification into the
// Applier's ApplyFrames call: it queries the actor for the workspace's
// freshly computed placements and hands the resulting frame map to the
// Applier, the step between "layout changed" and "push frames to the
// OS" that the actor's notifier interface otherwise leaves implicit.
type LayoutListener struct {
	handle  *actor.Handle
	applier *Applier
	logger  *logrus.Logger
}

// NewLayoutListener builds a LayoutListener querying handle and
// applying through applier.
func NewLayoutListener(handle *actor.Handle, applier *Applier, logger *logrus.Logger) *LayoutListener {
	return &LayoutListener{handle: handle, applier: applier, logger: logger}
}

// NotifyLayoutChanged fetches the workspace's current placements and
// applies them. urgent is accepted for interface symmetry with the
// rest of the notifier surface; the Applier already decides per-window
// whether to animate or snap based on its own AnimationSpec, so there
// is nothing left for urgency to override here.
func (l *LayoutListener) NotifyLayoutChanged(workspaceID model.WorkspaceID, urgent bool) {
	ctx, cancel := context.WithTimeout(context.Background(), layoutQueryTimeout)
	defer cancel()

	placements, err := l.handle.GetLayout(ctx, workspaceID)
	if err != nil {
		l.logger.WithError(err).WithField("workspace_id", workspaceID).Warn("layout listener: could not fetch placements")
		return
	}

	targets := make(map[model.WindowID]geometry.Rect, len(placements))
	for _, p := range placements {
		targets[p.WindowID] = p.Frame
	}
	l.applier.ApplyFrames(ctx, targets)
}
