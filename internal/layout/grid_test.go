package layout

import (
	"testing"

	"github.com/yourorg/tilecore/internal/geometry"
	"github.com/yourorg/tilecore/internal/model"
)

func TestGridFourWindows(t *testing.T) {
	screen := geometry.NewRect(0, 0, 1920, 1080)
	out := Compute(model.Grid, []model.WindowID{1, 2, 3, 4}, screen, geometry.Gaps{}, nil, DefaultOptions())
	if len(out) != 4 {
		t.Fatalf("expected 4 placements, got %d", len(out))
	}
	want := []geometry.Rect{
		geometry.NewRect(0, 0, 960, 540),
		geometry.NewRect(960, 0, 960, 540),
		geometry.NewRect(0, 540, 960, 540),
		geometry.NewRect(960, 540, 960, 540),
	}
	for i, p := range out {
		if !p.Frame.ApproxEqual(want[i]) {
			t.Fatalf("placement %d = %+v, want %+v", i, p.Frame, want[i])
		}
	}
}

func TestGridExtraWindowsIgnoredBeyondTwelve(t *testing.T) {
	screen := geometry.NewRect(0, 0, 1920, 1080)
	ids := make([]model.WindowID, 15)
	for i := range ids {
		ids[i] = model.WindowID(i + 1)
	}
	out := Compute(model.Grid, ids, screen, geometry.Gaps{}, nil, DefaultOptions())
	if len(out) != maxGridWindows {
		t.Fatalf("expected %d placements, got %d", maxGridWindows, len(out))
	}
}

func TestGridMasterStackThreeWindows(t *testing.T) {
	screen := geometry.NewRect(0, 0, 1920, 1080)
	out := Compute(model.Grid, []model.WindowID{1, 2, 3}, screen, geometry.Gaps{}, nil, DefaultOptions())
	if len(out) != 3 {
		t.Fatalf("expected 3 placements, got %d", len(out))
	}
	// master (id 1) spans the full left column, width = 1/2 of 1920.
	if !out[0].Frame.ApproxEqual(geometry.NewRect(0, 0, 960, 1080)) {
		t.Fatalf("master placement = %+v", out[0].Frame)
	}
}

func TestGridSingleWindowFillsScreen(t *testing.T) {
	screen := geometry.NewRect(0, 0, 1920, 1080)
	out := Compute(model.Grid, []model.WindowID{1}, screen, geometry.Gaps{}, nil, DefaultOptions())
	if len(out) != 1 || !out[0].Frame.ApproxEqual(screen) {
		t.Fatalf("single window placement = %+v", out)
	}
}

func TestGridPortraitFlipsDimensions(t *testing.T) {
	screen := geometry.NewRect(0, 0, 1080, 1920)
	out := Compute(model.Grid, []model.WindowID{1, 2, 3, 4, 5, 6}, screen, geometry.Gaps{}, nil, DefaultOptions())
	if len(out) != 6 {
		t.Fatalf("expected 6 placements, got %d", len(out))
	}
	// portrait flips the 2x3 shape to 3x2: each cell is half-width, third-height.
	wantW, wantH := 1080.0/2, 1920.0/3
	if out[0].Frame.W != wantW || out[0].Frame.H != wantH {
		t.Fatalf("cell 0 = %+v, want w=%v h=%v", out[0].Frame, wantW, wantH)
	}
}
