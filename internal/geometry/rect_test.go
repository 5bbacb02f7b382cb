package geometry

import "testing"

func TestGapsApply(t *testing.T) {
	g := Gaps{OuterTop: 10, OuterRight: 5, OuterBottom: 5, OuterLeft: 5}
	frame := NewRect(0, 0, 1920, 1080)

	got := g.Apply(frame)
	want := NewRect(5, 10, 1910, 1065)

	if !got.ApproxEqual(want) {
		t.Fatalf("Apply() = %+v, want %+v", got, want)
	}
}

func TestApproxEqualTolerance(t *testing.T) {
	a := NewRect(0, 0, 960, 1080)
	b := NewRect(0.5, -0.5, 960.9, 1080.2)
	if !a.ApproxEqual(b) {
		t.Fatalf("expected rects within 1px tolerance to be equal: %+v vs %+v", a, b)
	}
	c := NewRect(2, 0, 960, 1080)
	if a.ApproxEqual(c) {
		t.Fatalf("expected rects outside tolerance to differ: %+v vs %+v", a, c)
	}
}

func TestConvertOrigin(t *testing.T) {
	// macOS: a 1920x1080 window flush with the bottom of a 1080-tall screen,
	// at bottom-left y=0, should land at top-left y=0 too.
	r := NewRect(0, 0, 1920, 1080)
	got := ConvertOrigin(r, 1080)
	want := NewRect(0, 0, 1920, 1080)
	if !got.ApproxEqual(want) {
		t.Fatalf("ConvertOrigin() = %+v, want %+v", got, want)
	}

	// A 24px-tall menu bar region sitting at the very top in bottom-left
	// coordinates (y = screenHeight - barHeight) should map to y=0.
	bar := NewRect(0, 1080-24, 1920, 24)
	gotBar := ConvertOrigin(bar, 1080)
	if gotBar.Y != 0 {
		t.Fatalf("expected bar to convert to y=0, got %+v", gotBar)
	}
}

func TestClampRatio(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0, 0.05},
		{1, 0.95},
		{0.5, 0.5},
		{-10, 0.05},
		{10, 0.95},
	}
	for _, c := range cases {
		if got := ClampRatio(c.in); got != c.want {
			t.Errorf("ClampRatio(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestEqualSplit(t *testing.T) {
	ratios := EqualSplit(4)
	if len(ratios) != 4 {
		t.Fatalf("expected 4 ratios, got %d", len(ratios))
	}
	sum := 0.0
	for _, r := range ratios {
		sum += r
	}
	if diff := sum - 1.0; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("ratios should sum to 1, got %v", sum)
	}
}
