// Package effects implements the Effect Applier (spec.md §4.4): the
// component that pushes the State Actor's computed frames through the
// Platform Adapter, animates the transition, and tells the difference
// between a programmatic move and a user drag so the two do not feed
// back on each other.
package effects

import (
	"context"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/yourorg/tilecore/internal/config"
	"github.com/yourorg/tilecore/internal/geometry"
	"github.com/yourorg/tilecore/internal/model"
	"github.com/yourorg/tilecore/internal/platform"
)

// frameTolerance matches the 1px tolerance geometry.Rect.ApproxEqual
// already applies; frame diffing reuses that rather than inventing its
// own slack.
const frameTolerance = 1.0

// Applier pushes target frames computed by the State Actor's layout
// pass through a platform.Adapter, diffing against the window's
// current frame and animating the transition when enabled.
type Applier struct {
	adapter platform.Adapter
	logger  *logrus.Logger
	tracer  trace.Tracer
	cfg     config.AnimationSpec

	animator *animator
}

// SettlingSignal is called once a transition's settling window opens so
// the State Actor can ignore intermediate geometry events for its
// duration (spec.md §4.4 "Animation").
type SettlingSignal interface {
	BeginSettlingWindow() error
}

// noopSettle is the SettlingSignal default when NewApplier is given a
// nil settle, so tests that don't care about settling behavior don't
// need to stub it out.
type noopSettle struct{}

func (noopSettle) BeginSettlingWindow() error { return nil }

// NewApplier builds an Applier. settle receives the settling-window
// signal after every animated transition; pass the real
// *actor.Handle in production, a stub in tests.
func NewApplier(adapter platform.Adapter, cfg config.AnimationSpec, settle SettlingSignal, logger *logrus.Logger) *Applier {
	return &Applier{
		adapter:  adapter,
		logger:   logger,
		tracer:   otel.Tracer("tilecore/effects"),
		cfg:      cfg,
		animator: newAnimator(cfg, settle, logger),
	}
}

// Close stops any in-flight animations without waiting for them to
// finish, for process shutdown.
func (a *Applier) Close() {
	a.animator.stopAll()
}

// ApplyFrames applies target frames for a layout pass (spec.md §4.4
// "Frame diffing"). Per window: equal-within-tolerance is skipped;
// when animation is enabled every other change goes through the
// animator; when it is not, applyFrameNow applies a position-only or
// size-only change directly and a change to both dimensions with the
// size->position->size sequence.
func (a *Applier) ApplyFrames(ctx context.Context, targets map[model.WindowID]geometry.Rect) {
	ctx, span := a.tracer.Start(ctx, "effects.ApplyFrames")
	defer span.End()

	for id, target := range targets {
		current, err := a.adapter.GetWindowFrame(ctx, id)
		if err != nil {
			a.logger.WithError(err).WithField("window_id", id).Warn("skipping frame apply, could not read current frame")
			continue
		}
		if current.ApproxEqual(target) {
			continue
		}

		if a.cfg.Enabled && a.cfg.Duration > 0 {
			a.animator.animate(ctx, id, current, target, func(frame geometry.Rect) {
				if err := a.adapter.SetWindowFrame(ctx, id, frame); err != nil {
					a.logger.WithError(err).WithField("window_id", id).Warn("animated frame apply failed")
				}
			})
			continue
		}
		if err := a.applyFrameNow(ctx, id, current, target); err != nil {
			a.logger.WithError(err).WithField("window_id", id).Warn("frame apply failed")
		}
	}
}

// applyFrameNow applies target in one step, without animation, using
// the size -> position -> size sequence macOS needs when both
// dimensions change: shrinking first guarantees the window fits at the
// new position, and the trailing size re-apply recovers from any
// OS-side clamp the intervening move caused (spec.md §4.4).
func (a *Applier) applyFrameNow(ctx context.Context, id model.WindowID, current, target geometry.Rect) error {
	positionMatches := approxEqual(current.X, target.X) && approxEqual(current.Y, target.Y)
	sizeMatches := approxEqual(current.W, target.W) && approxEqual(current.H, target.H)

	if sizeMatches || positionMatches {
		return a.adapter.SetWindowFrame(ctx, id, target)
	}

	sizeFirst := geometry.NewRect(current.X, current.Y, target.W, target.H)
	if err := a.adapter.SetWindowFrame(ctx, id, sizeFirst); err != nil {
		return err
	}
	if err := a.adapter.SetWindowFrame(ctx, id, target); err != nil {
		return err
	}
	after, err := a.adapter.GetWindowFrame(ctx, id)
	if err != nil {
		return nil
	}
	if !approxEqual(after.W, target.W) || !approxEqual(after.H, target.H) {
		return a.adapter.SetWindowFrame(ctx, id, target)
	}
	return nil
}

func approxEqual(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= frameTolerance
}
