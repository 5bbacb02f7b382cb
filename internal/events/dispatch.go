package events

import (
	"github.com/yourorg/tilecore/internal/actor"
	"github.com/yourorg/tilecore/internal/geometry"
	"github.com/yourorg/tilecore/internal/model"
)

// This file is the Event Processor's immediate-dispatch half (spec.md
// §4.2 duty 1): every event here is time-sensitive and is forwarded to
// the actor as soon as it arrives, never batched.

// OnWindowCreated dispatches a window-created observation and records
// screenID for this window's later geometry routing (duty 3), plus the
// pid->window membership destroy inference needs (duty 4).
func (p *Processor) OnWindowCreated(screenID model.ScreenID, info actor.WindowCreatedInfo) {
	p.mu.Lock()
	p.windowScreen[info.WindowID] = screenID
	if p.pidWindows[info.PID] == nil {
		p.pidWindows[info.PID] = make(map[model.WindowID]struct{})
	}
	p.pidWindows[info.PID][info.WindowID] = struct{}{}
	p.mu.Unlock()

	p.dropWarn("window-created", p.handle.NotifyWindowCreated(info))
}

// OnWindowDestroyed dispatches a destroy and forgets the window's
// routing and pid-membership entries.
func (p *Processor) OnWindowDestroyed(id model.WindowID) {
	p.forget(id)
	p.dropWarn("window-destroyed", p.handle.NotifyWindowDestroyed(id))
}

func (p *Processor) forget(id model.WindowID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.windowScreen, id)
	for pid, set := range p.pidWindows {
		if _, ok := set[id]; ok {
			delete(set, id)
			if len(set) == 0 {
				delete(p.pidWindows, pid)
			}
		}
	}
}

func (p *Processor) OnWindowFocused(id model.WindowID) {
	p.dropWarn("window-focused", p.handle.NotifyWindowFocused(id))
}

func (p *Processor) OnWindowUnfocused(id model.WindowID) {
	p.dropWarn("window-unfocused", p.handle.NotifyWindowUnfocused(id))
}

func (p *Processor) OnWindowMinimized(id model.WindowID, minimized bool) {
	p.dropWarn("window-minimized", p.handle.NotifyWindowMinimized(id, minimized))
}

func (p *Processor) OnWindowTitleChanged(id model.WindowID, title string) {
	p.dropWarn("window-title-changed", p.handle.NotifyWindowTitleChanged(id, title))
}

func (p *Processor) OnWindowFullscreenChanged(id model.WindowID, fullscreen bool) {
	p.dropWarn("window-fullscreen-changed", p.handle.NotifyWindowFullscreenChanged(id, fullscreen))
}

func (p *Processor) OnAppLaunched(pid int, appID, appName string) {
	p.dropWarn("app-launched", p.handle.NotifyAppLaunched(pid, appID, appName))
}

// OnAppTerminated resolves duty 4 "Destroy inference" before
// forwarding the termination itself: a pid-only destroy signal is
// cross-referenced against the known pid->window set and the handle
// cache's liveness check, synthesizing a Destroyed event for every
// window that is no longer valid.
func (p *Processor) OnAppTerminated(pid int) {
	p.inferDestroyedForPID(pid)
	p.dropWarn("app-terminated", p.handle.NotifyAppTerminated(pid))
}

func (p *Processor) inferDestroyedForPID(pid int) {
	p.mu.RLock()
	ids := make([]model.WindowID, 0, len(p.pidWindows[pid]))
	for id := range p.pidWindows[pid] {
		ids = append(ids, id)
	}
	p.mu.RUnlock()

	for _, id := range ids {
		if p.validator != nil && p.validator.IsWindowValid(id) {
			continue
		}
		p.OnWindowDestroyed(id)
	}
}

func (p *Processor) OnAppHidden(pid int) {
	p.dropWarn("app-hidden", p.handle.NotifyAppHidden(pid))
}

func (p *Processor) OnAppShown(pid int) {
	p.dropWarn("app-shown", p.handle.NotifyAppShown(pid))
}

func (p *Processor) OnAppActivated(pid int) {
	p.dropWarn("app-activated", p.handle.NotifyAppActivated(pid))
}

// OnScreensChanged forwards a freshly enumerated screen list straight
// to the actor; registering/unregistering this processor's own
// per-screen batch timers is the caller's job once it knows which
// screens were added or removed (platform.ProcessorBridge does this by
// diffing successive screen lists).
func (p *Processor) OnScreensChanged(screens []model.Screen) {
	p.dropWarn("screens-changed", p.handle.SetScreens(screens))
}

// OnWindowMoved and OnWindowResized both coalesce into the same
// pending-frame entry per window (spec.md §4.2 duty 2): a move
// followed by a resize within one refresh interval merges to the
// latest frame rather than producing two commands.
func (p *Processor) OnWindowMoved(id model.WindowID, frame geometry.Rect) {
	p.stageGeometry(id, frame)
}

func (p *Processor) OnWindowResized(id model.WindowID, frame geometry.Rect) {
	p.stageGeometry(id, frame)
}

// stageGeometry routes a geometry event to its window's screen batch
// (duty 3 "Routing"), falling back to the first registered screen, or
// dispatching immediately if no screen is registered at all.
func (p *Processor) stageGeometry(id model.WindowID, frame geometry.Rect) {
	if sb, ok := p.batchFor(id); ok {
		sb.mu.Lock()
		sb.pending[id] = frame
		sb.mu.Unlock()
		return
	}
	p.dropWarn("geometry", p.handle.BatchedGeometryUpdates([]actor.GeometryUpdate{
		{WindowID: id, Frame: frame, Kind: actor.GeometryMoveResize},
	}))
}

func (p *Processor) batchFor(id model.WindowID) (*screenBatch, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if screenID, known := p.windowScreen[id]; known {
		if sb, ok := p.batches[screenID]; ok {
			return sb, true
		}
	}
	if len(p.screenOrder) > 0 {
		if sb, ok := p.batches[p.screenOrder[0]]; ok {
			return sb, true
		}
	}
	return nil, false
}

func (p *Processor) dropWarn(what string, err error) {
	if err != nil {
		p.logger.WithError(err).WithField("event", what).Warn("dropping event, actor queue full")
	}
}
