package effects

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourorg/tilecore/internal/config"
	"github.com/yourorg/tilecore/internal/geometry"
	"github.com/yourorg/tilecore/internal/model"
)

// animationFPS is the tween step rate, grounded on
// internal/desktop/window_animator.go's ticker-driven animation loop.
const animationFPS = 60

// tween is one window's in-flight frame interpolation.
type tween struct {
	windowID  model.WindowID
	start     geometry.Rect
	end       geometry.Rect
	startedAt time.Time
	duration  time.Duration
	sink      func(geometry.Rect)
	cancel    func()
}

// animator owns every concurrent frame transition (spec.md §4.4
// "Animation": "a single animator owns all concurrent tweens").
// Starting a new tween for a window already animating replaces it; the
// in-flight frame is abandoned in favor of the newer target.
type animator struct {
	cfg    config.AnimationSpec
	settle SettlingSignal
	logger *logrus.Logger

	mu     sync.Mutex
	active map[model.WindowID]*tween
}

func newAnimator(cfg config.AnimationSpec, settle SettlingSignal, logger *logrus.Logger) *animator {
	if settle == nil {
		settle = noopSettle{}
	}
	return &animator{
		cfg:    cfg,
		settle: settle,
		logger: logger,
		active: make(map[model.WindowID]*tween),
	}
}

// animate interpolates windowID's frame from current to target over
// the configured duration, delivering each step to sink, then opens the
// settling window (spec.md §4.4) once the transition completes.
func (a *animator) animate(ctx context.Context, windowID model.WindowID, current, target geometry.Rect, sink func(geometry.Rect)) {
	ctx, cancel := context.WithCancel(ctx)
	t := &tween{
		windowID:  windowID,
		start:     current,
		end:       target,
		startedAt: time.Now(),
		duration:  a.cfg.Duration,
		sink:      sink,
		cancel:    cancel,
	}

	a.mu.Lock()
	if prev, ok := a.active[windowID]; ok {
		prev.cancel()
	}
	a.active[windowID] = t
	a.mu.Unlock()

	go a.run(ctx, t)
}

func (a *animator) run(ctx context.Context, t *tween) {
	interval := time.Second / animationFPS
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			elapsed := now.Sub(t.startedAt)
			progress := float64(elapsed) / float64(t.duration)
			done := progress >= 1.0
			if done {
				progress = 1.0
			}
			t.sink(lerpRect(t.start, t.end, easeOutCubic(progress)))
			if done {
				a.finish(t)
				return
			}
		}
	}
}

func (a *animator) finish(t *tween) {
	a.mu.Lock()
	if a.active[t.windowID] == t {
		delete(a.active, t.windowID)
	}
	a.mu.Unlock()

	if err := a.settle.BeginSettlingWindow(); err != nil {
		a.logger.WithError(err).Warn("failed to open settling window after animation")
	}
}

// stopAll cancels every in-flight tween without delivering a final
// frame, for process shutdown.
func (a *animator) stopAll() {
	a.mu.Lock()
	defer a.mu.Unlock()
	for id, t := range a.active {
		t.cancel()
		delete(a.active, id)
	}
}

func lerpRect(start, end geometry.Rect, progress float64) geometry.Rect {
	return geometry.NewRect(
		lerp(start.X, end.X, progress),
		lerp(start.Y, end.Y, progress),
		lerp(start.W, end.W, progress),
		lerp(start.H, end.H, progress),
	)
}

func lerp(start, end, progress float64) float64 {
	return start + (end-start)*progress
}

// easeOutCubic matches internal/desktop/window_animator.go's
// EaseOutCubic: fast start, settling gently into the target frame.
func easeOutCubic(t float64) float64 {
	t--
	return t*t*t + 1
}
