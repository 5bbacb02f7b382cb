// Package events implements the Event Processor (spec.md §4.2): the
// funnel between raw Platform Adapter observations and the State
// Actor's command queue. Create/destroy/focus/app/screen events
// dispatch immediately; geometry events coalesce per screen behind a
// refresh-rate-paced timer so a window being dragged does not flood
// the actor with one command per pixel.
package events

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/yourorg/tilecore/internal/actor"
	"github.com/yourorg/tilecore/internal/geometry"
	"github.com/yourorg/tilecore/internal/model"
)

const (
	minRefreshHz     = 30.0
	maxRefreshHz     = 360.0
	defaultRefreshHz = 60.0
)

// HandleValidator reports whether id still refers to a window the OS
// considers live, backed by the Platform Adapter's handle cache. The
// processor uses it to resolve pid-only destroy notifications into
// per-window Destroyed events (spec.md §4.2 duty 4).
type HandleValidator interface {
	IsWindowValid(id model.WindowID) bool
}

// Processor is the Event Processor. It owns no model state of its
// own -- only the window->screen routing table and the per-screen
// pending-geometry maps duty 2 and duty 3 require -- and funnels
// everything else straight to the actor.
type Processor struct {
	handle    *actor.Handle
	validator HandleValidator
	logger    *logrus.Logger
	tracer    trace.Tracer

	mu           sync.RWMutex
	windowScreen map[model.WindowID]model.ScreenID
	screenOrder  []model.ScreenID
	batches      map[model.ScreenID]*screenBatch
	pidWindows   map[int]map[model.WindowID]struct{}
}

// screenBatch holds one screen's pending geometry events and the
// rate.Limiter pacing how often they drain, clamped to the display's
// refresh rate (spec.md §4.2 duty 2).
type screenBatch struct {
	mu      sync.Mutex
	pending map[model.WindowID]geometry.Rect
	limiter *rate.Limiter
	cancel  context.CancelFunc
}

// New builds a Processor. validator may be nil, in which case
// pid-only destroy notifications are forwarded without per-window
// inference (every tracked window of that pid is assumed gone).
func New(handle *actor.Handle, validator HandleValidator, logger *logrus.Logger) *Processor {
	return &Processor{
		handle:       handle,
		validator:    validator,
		logger:       logger,
		tracer:       otel.Tracer("tilecore/events"),
		windowScreen: make(map[model.WindowID]model.ScreenID),
		batches:      make(map[model.ScreenID]*screenBatch),
		pidWindows:   make(map[int]map[model.WindowID]struct{}),
	}
}

func clampHz(hz float64) float64 {
	if hz <= 0 {
		hz = defaultRefreshHz
	}
	if hz < minRefreshHz {
		return minRefreshHz
	}
	if hz > maxRefreshHz {
		return maxRefreshHz
	}
	return hz
}

// RegisterScreen starts screenID's batching timer paced at refreshHz
// (clamped to [30, 360], spec.md §4.2), a no-op if the screen is
// already registered. The first screen ever registered also becomes
// the routing fallback for windows whose screen is unknown (duty 3).
func (p *Processor) RegisterScreen(ctx context.Context, screenID model.ScreenID, refreshHz float64) {
	p.mu.Lock()
	if _, exists := p.batches[screenID]; exists {
		p.mu.Unlock()
		return
	}
	p.screenOrder = append(p.screenOrder, screenID)
	batchCtx, cancel := context.WithCancel(ctx)
	sb := &screenBatch{
		pending: make(map[model.WindowID]geometry.Rect),
		limiter: rate.NewLimiter(rate.Limit(clampHz(refreshHz)), 1),
		cancel:  cancel,
	}
	p.batches[screenID] = sb
	p.mu.Unlock()

	go p.runBatchLoop(batchCtx, screenID, sb)
}

// UnregisterScreen stops screenID's batching timer and drops its
// routing entries, called when a display disconnects (spec.md §4.5
// "Screen hotplug"). Windows it covered have already migrated
// workspaces via SetScreens by the time this runs; their next
// geometry event re-routes through the fallback screen.
func (p *Processor) UnregisterScreen(screenID model.ScreenID) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if sb, ok := p.batches[screenID]; ok {
		sb.cancel()
		delete(p.batches, screenID)
	}
	for i, id := range p.screenOrder {
		if id == screenID {
			p.screenOrder = append(p.screenOrder[:i], p.screenOrder[i+1:]...)
			break
		}
	}
	for wid, sid := range p.windowScreen {
		if sid == screenID {
			delete(p.windowScreen, wid)
		}
	}
}

// Close stops every screen's batching timer, for process shutdown.
func (p *Processor) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, sb := range p.batches {
		sb.cancel()
	}
}

func (p *Processor) runBatchLoop(ctx context.Context, screenID model.ScreenID, sb *screenBatch) {
	for {
		if err := sb.limiter.Wait(ctx); err != nil {
			return
		}
		p.drainBatch(ctx, screenID, sb)
	}
}

func (p *Processor) drainBatch(ctx context.Context, screenID model.ScreenID, sb *screenBatch) {
	sb.mu.Lock()
	if len(sb.pending) == 0 {
		sb.mu.Unlock()
		return
	}
	updates := make([]actor.GeometryUpdate, 0, len(sb.pending))
	for id, frame := range sb.pending {
		updates = append(updates, actor.GeometryUpdate{WindowID: id, Frame: frame, Kind: actor.GeometryMoveResize})
	}
	sb.pending = make(map[model.WindowID]geometry.Rect, len(sb.pending))
	sb.mu.Unlock()

	_, span := p.tracer.Start(ctx, "events.drainBatch")
	span.SetAttributes(attribute.Int64("tilecore.screen_id", int64(screenID)))
	defer span.End()

	if err := p.handle.BatchedGeometryUpdates(updates); err != nil {
		p.logger.WithError(err).Warn("dropping batched geometry update, actor queue full")
	}
}
