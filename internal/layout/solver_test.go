package layout

import (
	"testing"

	"github.com/yourorg/tilecore/internal/geometry"
	"github.com/yourorg/tilecore/internal/model"
)

func TestSolveGrowsWindowBelowMinimum(t *testing.T) {
	screen := geometry.NewRect(0, 0, 1000, 1000)
	minimums := map[model.WindowID]model.Size{
		1: {W: 700, H: 0},
	}
	lookup := func(id model.WindowID) (model.Size, bool) {
		s, ok := minimums[id]
		return s, ok
	}

	out := Solve(model.Split, []model.WindowID{1, 2}, screen, geometry.Gaps{}, []float64{0.5, 0.5}, DefaultOptions(), lookup)
	if len(out) != 2 {
		t.Fatalf("expected 2 placements, got %d", len(out))
	}
	if out[0].Frame.W < 699 || out[0].Frame.W > 701 {
		t.Fatalf("window 1 width = %v, want ~700", out[0].Frame.W)
	}
}

func TestSolveMatchesSeedScenario(t *testing.T) {
	// spec seed scenario: split, two windows, screen 1000x800, window B
	// reports minimum_size=(700,0); default ratio 0.5 would give B 500px;
	// the solver adjusts the first ratio to 0.3, yielding B width 700.
	screen := geometry.NewRect(0, 0, 1000, 800)
	minimums := map[model.WindowID]model.Size{2: {W: 700}}
	lookup := func(id model.WindowID) (model.Size, bool) {
		s, ok := minimums[id]
		return s, ok
	}
	out := Solve(model.Split, []model.WindowID{1, 2}, screen, geometry.Gaps{}, nil, DefaultOptions(), lookup)
	if out[1].Frame.W < 699 || out[1].Frame.W > 701 {
		t.Fatalf("window B width = %v, want 700", out[1].Frame.W)
	}
	if out[0].Frame.W < 299 || out[0].Frame.W > 301 {
		t.Fatalf("window A width = %v, want 300 (ratio 0.3 of 1000)", out[0].Frame.W)
	}
}

func TestSolveNoMinimumsReturnsPlainCompute(t *testing.T) {
	screen := geometry.NewRect(0, 0, 1920, 1080)
	out := Solve(model.Split, []model.WindowID{1, 2}, screen, geometry.Gaps{}, nil, DefaultOptions(), nil)
	if len(out) != 2 {
		t.Fatalf("expected 2 placements, got %d", len(out))
	}
}

func TestSolveMasterPassesThroughUnchanged(t *testing.T) {
	screen := geometry.NewRect(0, 0, 1920, 1080)
	lookup := func(model.WindowID) (model.Size, bool) { return model.Size{}, false }
	out := Solve(model.Master, []model.WindowID{1, 2}, screen, geometry.Gaps{}, nil, DefaultOptions(), lookup)
	if len(out) != 2 {
		t.Fatalf("expected 2 placements, got %d", len(out))
	}
}
