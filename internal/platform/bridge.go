package platform

import (
	"context"
	"sync"

	"github.com/yourorg/tilecore/internal/actor"
	"github.com/yourorg/tilecore/internal/events"
	"github.com/yourorg/tilecore/internal/geometry"
	"github.com/yourorg/tilecore/internal/model"
)

// defaultRefreshHz is the fallback batching rate (spec.md §4.2) for a
// screen whose RefreshRate the adapter reported as zero.
const defaultRefreshHz = 60.0

// EventProcessor is the subset of events.Processor the bridge forwards
// to. Declaring it here rather than depending on *events.Processor
// directly keeps this package's only import of internal/events narrow
// and mockable in tests.
type EventProcessor interface {
	OnWindowCreated(screenID model.ScreenID, info actor.WindowCreatedInfo)
	OnWindowDestroyed(id model.WindowID)
	OnWindowFocused(id model.WindowID)
	OnWindowUnfocused(id model.WindowID)
	OnWindowMinimized(id model.WindowID, minimized bool)
	OnWindowTitleChanged(id model.WindowID, title string)
	OnWindowFullscreenChanged(id model.WindowID, fullscreen bool)
	OnAppLaunched(pid int, appID, appName string)
	OnAppTerminated(pid int)
	OnAppHidden(pid int)
	OnAppShown(pid int)
	OnAppActivated(pid int)
	OnScreensChanged(screens []model.Screen)
	OnWindowMoved(id model.WindowID, frame geometry.Rect)
	OnWindowResized(id model.WindowID, frame geometry.Rect)
	RegisterScreen(ctx context.Context, screenID model.ScreenID, refreshHz float64)
	UnregisterScreen(screenID model.ScreenID)
}

var _ EventProcessor = (*events.Processor)(nil)

// ProcessorBridge implements EventCallback by forwarding every
// observation to an Event Processor, so an Adapter implementation never
// needs to import internal/events directly. This is the only place
// WindowObservation is converted to actor.WindowCreatedInfo. It also
// owns the per-screen batch registration dispatch.go leaves to its
// caller: on every OnScreensChanged it diffs against the screen set it
// last saw and registers/unregisters the processor's batch timers for
// whatever was added or removed.
type ProcessorBridge struct {
	processor EventProcessor
	ctx       context.Context

	mu    sync.Mutex
	known map[model.ScreenID]bool
}

// NewProcessorBridge returns a ProcessorBridge forwarding to processor.
// ctx bounds the lifetime of any screen batch timers it registers.
func NewProcessorBridge(ctx context.Context, processor EventProcessor) *ProcessorBridge {
	return &ProcessorBridge{processor: processor, ctx: ctx, known: make(map[model.ScreenID]bool)}
}

func (b *ProcessorBridge) OnWindowCreated(screenID model.ScreenID, info WindowObservation) {
	b.processor.OnWindowCreated(screenID, actor.WindowCreatedInfo{
		WindowID:     info.WindowID,
		PID:          info.PID,
		AppID:        info.AppID,
		AppName:      info.AppName,
		Title:        info.Title,
		Frame:        info.Frame,
		MinimumSize:  info.MinimumSize,
		IsMinimized:  info.IsMinimized,
		IsFullscreen: info.IsFullscreen,
	})
}

func (b *ProcessorBridge) OnWindowDestroyed(id model.WindowID) {
	b.processor.OnWindowDestroyed(id)
}

func (b *ProcessorBridge) OnWindowFocused(id model.WindowID) {
	b.processor.OnWindowFocused(id)
}

func (b *ProcessorBridge) OnWindowUnfocused(id model.WindowID) {
	b.processor.OnWindowUnfocused(id)
}

func (b *ProcessorBridge) OnWindowMoved(id model.WindowID, frame geometry.Rect) {
	b.processor.OnWindowMoved(id, frame)
}

func (b *ProcessorBridge) OnWindowResized(id model.WindowID, frame geometry.Rect) {
	b.processor.OnWindowResized(id, frame)
}

func (b *ProcessorBridge) OnWindowMinimized(id model.WindowID, minimized bool) {
	b.processor.OnWindowMinimized(id, minimized)
}

func (b *ProcessorBridge) OnWindowTitleChanged(id model.WindowID, title string) {
	b.processor.OnWindowTitleChanged(id, title)
}

func (b *ProcessorBridge) OnWindowFullscreenChanged(id model.WindowID, fullscreen bool) {
	b.processor.OnWindowFullscreenChanged(id, fullscreen)
}

func (b *ProcessorBridge) OnAppLaunched(pid int, appID, appName string) {
	b.processor.OnAppLaunched(pid, appID, appName)
}

func (b *ProcessorBridge) OnAppTerminated(pid int) {
	b.processor.OnAppTerminated(pid)
}

func (b *ProcessorBridge) OnAppHidden(pid int) {
	b.processor.OnAppHidden(pid)
}

func (b *ProcessorBridge) OnAppShown(pid int) {
	b.processor.OnAppShown(pid)
}

func (b *ProcessorBridge) OnAppActivated(pid int) {
	b.processor.OnAppActivated(pid)
}

// OnScreensChanged forwards the new screen list to the processor, then
// registers a batch timer for every newly connected screen and
// unregisters one for every screen that disappeared, clamping each
// screen's batching rate to the 30-360Hz range spec.md §4.2 requires.
func (b *ProcessorBridge) OnScreensChanged(screens []model.Screen) {
	b.processor.OnScreensChanged(screens)

	b.mu.Lock()
	defer b.mu.Unlock()

	seen := make(map[model.ScreenID]bool, len(screens))
	for _, sc := range screens {
		seen[sc.ID] = true
		if b.known[sc.ID] {
			continue
		}
		b.known[sc.ID] = true
		b.processor.RegisterScreen(b.ctx, sc.ID, clampRefreshHz(sc.RefreshRate))
	}
	for id := range b.known {
		if !seen[id] {
			delete(b.known, id)
			b.processor.UnregisterScreen(id)
		}
	}
}

func clampRefreshHz(hz float64) float64 {
	if hz <= 0 {
		return defaultRefreshHz
	}
	if hz < 30 {
		return 30
	}
	if hz > 360 {
		return 360
	}
	return hz
}

var _ EventCallback = (*ProcessorBridge)(nil)
