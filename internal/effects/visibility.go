package effects

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/yourorg/tilecore/internal/platform"
)

// VisibilitySync implements the actor.Notifier hide/unhide leg (spec.md
// §4.4 "App visibility sync") by forwarding it to the Platform Adapter.
// It is meant to be embedded alongside whatever else subscribes to the
// rest of the Notifier interface (internal/notify's fan-out).
type VisibilitySync struct {
	adapter platform.Adapter
	logger  *logrus.Logger
}

// NewVisibilitySync builds a VisibilitySync over adapter.
func NewVisibilitySync(adapter platform.Adapter, logger *logrus.Logger) *VisibilitySync {
	return &VisibilitySync{adapter: adapter, logger: logger}
}

// NotifyAppVisibility hides or unhides pid through the adapter. When
// subscribed through notify.Hub it runs on a goroutine of its own per
// notification, so a slow HideApp/UnhideApp call does not hold up the
// actor or other subscribers.
func (v *VisibilitySync) NotifyAppVisibility(pid int, hidden bool) {
	ctx := context.Background()
	var err error
	if hidden {
		err = v.adapter.HideApp(ctx, pid)
	} else {
		err = v.adapter.UnhideApp(ctx, pid)
	}
	if err != nil {
		v.logger.WithError(err).WithField("pid", pid).Warn("app visibility sync failed")
	}
}
