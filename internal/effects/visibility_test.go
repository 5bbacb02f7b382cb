package effects

import (
	"testing"

	"github.com/yourorg/tilecore/internal/geometry"
	"github.com/yourorg/tilecore/internal/platform"
)

func TestVisibilitySyncHidesAndUnhidesThroughAdapter(t *testing.T) {
	n := platform.NewNullAdapter()
	n.SeedWindow(1, platform.WindowObservation{WindowID: 1, PID: 42, Frame: geometry.NewRect(0, 0, 1, 1)})

	v := NewVisibilitySync(n, testLogger())

	v.NotifyAppVisibility(42, true)
	if !n.IsHidden(42) {
		t.Fatal("pid 42 should be hidden")
	}

	v.NotifyAppVisibility(42, false)
	if n.IsHidden(42) {
		t.Fatal("pid 42 should be unhidden")
	}
}
