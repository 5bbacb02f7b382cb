package layout

import (
	"testing"

	"github.com/yourorg/tilecore/internal/geometry"
	"github.com/yourorg/tilecore/internal/model"
)

func TestSplitHAlwaysRow(t *testing.T) {
	screen := geometry.NewRect(0, 0, 1080, 1920) // portrait
	out := Compute(model.SplitH, []model.WindowID{1, 2}, screen, geometry.Gaps{}, nil, DefaultOptions())
	if out[0].Frame.H != screen.H || out[1].Frame.H != screen.H {
		t.Fatalf("split_h should keep full height on both cells: %+v", out)
	}
	if out[0].Frame.X >= out[1].Frame.X {
		t.Fatalf("expected window 1 left of window 2: %+v", out)
	}
}

func TestSplitVAlwaysColumn(t *testing.T) {
	screen := geometry.NewRect(0, 0, 1920, 1080) // landscape
	out := Compute(model.SplitV, []model.WindowID{1, 2}, screen, geometry.Gaps{}, nil, DefaultOptions())
	if out[0].Frame.W != screen.W || out[1].Frame.W != screen.W {
		t.Fatalf("split_v should keep full width on both cells: %+v", out)
	}
	if out[0].Frame.Y >= out[1].Frame.Y {
		t.Fatalf("expected window 1 above window 2: %+v", out)
	}
}

func TestSplitWithGaps(t *testing.T) {
	screen := geometry.NewRect(0, 0, 1000, 500)
	gaps := geometry.Gaps{InnerH: 20}
	out := Compute(model.SplitH, []model.WindowID{1, 2}, screen, gaps, []float64{0.5, 0.5}, DefaultOptions())
	gap := out[1].Frame.X - out[0].Frame.Right()
	if gap < 19.9 || gap > 20.1 {
		t.Fatalf("expected 20px gap between cells, got %v", gap)
	}
}

func TestSplitThreeWindowsEqualShare(t *testing.T) {
	screen := geometry.NewRect(0, 0, 900, 300)
	out := Compute(model.SplitH, []model.WindowID{1, 2, 3}, screen, geometry.Gaps{}, nil, DefaultOptions())
	if len(out) != 3 {
		t.Fatalf("expected 3 placements, got %d", len(out))
	}
	for i, p := range out {
		if p.Frame.W < 299 || p.Frame.W > 301 {
			t.Fatalf("cell %d width = %v, want ~300", i, p.Frame.W)
		}
	}
}
