package actor

import (
	"context"

	"github.com/yourorg/tilecore/internal/model"
)

// handleAppLaunched is presently a log-only observation point: the
// model has nothing to record until the app's windows are themselves
// observed via WindowCreated. Kept as its own handler (rather than
// folded into the default case) so a future need -- e.g. seeding
// per-app defaults -- has somewhere to go without touching dispatch.
func (a *Actor) handleAppLaunched(ctx context.Context, m AppLaunched) {
	a.logger.WithFields(map[string]any{"pid": m.PID, "app_id": m.AppID}).Debug("app launched")
}

// handleAppTerminated tears down every window still attributed to pid,
// mirroring what a burst of individual WindowDestroyed commands would
// do, since some app terminations do not produce a destroy
// notification per window.
func (a *Actor) handleAppTerminated(ctx context.Context, pid int) {
	for _, w := range a.store.Windows() {
		if w.PID == pid {
			a.handleWindowDestroyed(ctx, w.ID)
		}
	}
}

// handleAppHidden and handleAppShown mark every window of pid hidden or
// shown, so the layout engine excludes them from layoutable windows
// while the app itself is hidden (via layoutableWindowIDs' w.IsHidden
// check; tabs are excluded differently, by never entering WindowIDs).
func (a *Actor) handleAppHidden(ctx context.Context, pid int) {
	a.setAppHidden(ctx, pid, true)
}

func (a *Actor) handleAppShown(ctx context.Context, pid int) {
	a.setAppHidden(ctx, pid, false)
}

func (a *Actor) setAppHidden(ctx context.Context, pid int, hidden bool) {
	touchedWorkspaces := map[model.WorkspaceID]bool{}
	for _, w := range a.store.Windows() {
		if w.PID != pid {
			continue
		}
		a.store.MutateWindow(w.ID, func(win *model.Window) { win.IsHidden = hidden })
		touchedWorkspaces[w.WorkspaceID] = true
	}
	for wsID := range touchedWorkspaces {
		a.relayout(wsID, false)
	}
}

// handleAppActivated is a log-only hook: activation alone does not
// change window or focus state (that arrives as a subsequent
// WindowFocused command once the OS reports which window took focus).
func (a *Actor) handleAppActivated(ctx context.Context, pid int) {
	a.logger.WithField("pid", pid).Debug("app activated")
}
