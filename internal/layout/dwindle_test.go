package layout

import (
	"testing"

	"github.com/yourorg/tilecore/internal/geometry"
	"github.com/yourorg/tilecore/internal/model"
)

func TestDwindleTwoWindowsLandscape(t *testing.T) {
	screen := geometry.NewRect(0, 0, 1920, 1080)
	out := Compute(model.Dwindle, []model.WindowID{1, 2}, screen, geometry.Gaps{}, nil, DefaultOptions())

	if len(out) != 2 {
		t.Fatalf("expected 2 placements, got %d", len(out))
	}
	want := []geometry.Rect{
		geometry.NewRect(0, 0, 960, 1080),
		geometry.NewRect(960, 0, 960, 1080),
	}
	for i, p := range out {
		if !p.Frame.ApproxEqual(want[i]) {
			t.Fatalf("placement %d = %+v, want %+v", i, p.Frame, want[i])
		}
	}
}

func TestDwindleSingleWindowFillsScreen(t *testing.T) {
	screen := geometry.NewRect(0, 0, 1920, 1080)
	out := Compute(model.Dwindle, []model.WindowID{1}, screen, geometry.Gaps{}, nil, DefaultOptions())
	if len(out) != 1 || !out[0].Frame.ApproxEqual(screen) {
		t.Fatalf("single window placement = %+v, want full screen", out)
	}
}

func TestDwindleEmptyListIsEmptyNoError(t *testing.T) {
	screen := geometry.NewRect(0, 0, 1920, 1080)
	out := Compute(model.Dwindle, nil, screen, geometry.Gaps{}, nil, DefaultOptions())
	if len(out) != 0 {
		t.Fatalf("expected empty result, got %v", out)
	}
}

func TestDwindleThreeWindowsAlternatesOrientation(t *testing.T) {
	screen := geometry.NewRect(0, 0, 1920, 1080)
	out := Compute(model.Dwindle, []model.WindowID{1, 2, 3}, screen, geometry.Gaps{}, nil, DefaultOptions())
	if len(out) != 3 {
		t.Fatalf("expected 3 placements, got %d", len(out))
	}
	// first split is vertical (landscape -> row=true): window 1 takes the left half.
	if !out[0].Frame.ApproxEqual(geometry.NewRect(0, 0, 960, 1080)) {
		t.Fatalf("window 1 = %+v", out[0].Frame)
	}
	// remaining half splits horizontally (row=false) between 2 and 3.
	if !out[1].Frame.ApproxEqual(geometry.NewRect(960, 0, 960, 540)) {
		t.Fatalf("window 2 = %+v", out[1].Frame)
	}
	if !out[2].Frame.ApproxEqual(geometry.NewRect(960, 540, 960, 540)) {
		t.Fatalf("window 3 = %+v", out[2].Frame)
	}
}
