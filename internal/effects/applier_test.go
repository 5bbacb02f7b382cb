package effects

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourorg/tilecore/internal/config"
	"github.com/yourorg/tilecore/internal/geometry"
	"github.com/yourorg/tilecore/internal/model"
	"github.com/yourorg/tilecore/internal/platform"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type recordingSettle struct {
	calls int
}

func (r *recordingSettle) BeginSettlingWindow() error {
	r.calls++
	return nil
}

func TestApplyFramesSkipsWindowAlreadyAtTarget(t *testing.T) {
	n := platform.NewNullAdapter()
	n.SeedWindow(1, platform.WindowObservation{WindowID: 10, PID: 1, Frame: geometry.NewRect(0, 0, 100, 100)})

	a := NewApplier(n, config.AnimationSpec{}, nil, testLogger())
	a.ApplyFrames(context.Background(), map[model.WindowID]geometry.Rect{
		10: geometry.NewRect(0, 0, 100, 100),
	})

	frame, err := n.GetWindowFrame(context.Background(), 10)
	if err != nil {
		t.Fatalf("GetWindowFrame: %v", err)
	}
	if !frame.ApproxEqual(geometry.NewRect(0, 0, 100, 100)) {
		t.Fatalf("frame changed unexpectedly: %+v", frame)
	}
}

func TestApplyFramesWithoutAnimationAppliesImmediately(t *testing.T) {
	n := platform.NewNullAdapter()
	n.SeedWindow(1, platform.WindowObservation{WindowID: 10, PID: 1, Frame: geometry.NewRect(0, 0, 100, 100)})

	a := NewApplier(n, config.AnimationSpec{Enabled: false}, nil, testLogger())
	a.ApplyFrames(context.Background(), map[model.WindowID]geometry.Rect{
		10: geometry.NewRect(50, 50, 200, 200),
	})

	frame, err := n.GetWindowFrame(context.Background(), 10)
	if err != nil {
		t.Fatalf("GetWindowFrame: %v", err)
	}
	if !frame.ApproxEqual(geometry.NewRect(50, 50, 200, 200)) {
		t.Fatalf("frame = %+v, want {50 50 200 200}", frame)
	}
}

func TestApplyFramesPositionOnlyChange(t *testing.T) {
	n := platform.NewNullAdapter()
	n.SeedWindow(1, platform.WindowObservation{WindowID: 10, PID: 1, Frame: geometry.NewRect(0, 0, 100, 100)})

	a := NewApplier(n, config.AnimationSpec{}, nil, testLogger())
	a.ApplyFrames(context.Background(), map[model.WindowID]geometry.Rect{
		10: geometry.NewRect(40, 40, 100, 100),
	})

	frame, _ := n.GetWindowFrame(context.Background(), 10)
	if !frame.ApproxEqual(geometry.NewRect(40, 40, 100, 100)) {
		t.Fatalf("frame = %+v, want position-only move applied", frame)
	}
}

func TestApplyFramesWithAnimationSettlesAndReachesTarget(t *testing.T) {
	n := platform.NewNullAdapter()
	n.SeedWindow(1, platform.WindowObservation{WindowID: 10, PID: 1, Frame: geometry.NewRect(0, 0, 100, 100)})

	settle := &recordingSettle{}
	a := NewApplier(n, config.AnimationSpec{Enabled: true, Duration: 30 * time.Millisecond}, settle, testLogger())
	defer a.Close()

	a.ApplyFrames(context.Background(), map[model.WindowID]geometry.Rect{
		10: geometry.NewRect(100, 100, 300, 300),
	})

	deadline := time.Now().Add(2 * time.Second)
	for {
		frame, err := n.GetWindowFrame(context.Background(), 10)
		if err != nil {
			t.Fatalf("GetWindowFrame: %v", err)
		}
		if frame.ApproxEqual(geometry.NewRect(100, 100, 300, 300)) {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("animation never reached target, last frame = %+v", frame)
		}
		time.Sleep(5 * time.Millisecond)
	}

	deadline = time.Now().Add(time.Second)
	for settle.calls == 0 {
		if time.Now().After(deadline) {
			t.Fatal("settling window was never opened after animation completed")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestApplyFrameNowUsesSizeThenPositionThenSizeWhenBothChange(t *testing.T) {
	n := platform.NewNullAdapter()
	n.SeedWindow(1, platform.WindowObservation{WindowID: 10, PID: 1, Frame: geometry.NewRect(0, 0, 100, 100)})

	a := NewApplier(n, config.AnimationSpec{}, nil, testLogger())
	if err := a.applyFrameNow(context.Background(), 10, geometry.NewRect(0, 0, 100, 100), geometry.NewRect(500, 500, 10, 10)); err != nil {
		t.Fatalf("applyFrameNow: %v", err)
	}

	frame, _ := n.GetWindowFrame(context.Background(), 10)
	if !frame.ApproxEqual(geometry.NewRect(500, 500, 10, 10)) {
		t.Fatalf("frame = %+v, want {500 500 10 10}", frame)
	}
}
