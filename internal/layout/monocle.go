package layout

import (
	"github.com/yourorg/tilecore/internal/geometry"
	"github.com/yourorg/tilecore/internal/model"
)

// monocleAlgorithm gives every window the full screen frame: only the
// focused one is visible at a time, so overlap is intentional (spec.md
// §4.3). It has no ratio tree for the solver to walk.
type monocleAlgorithm struct{}

func (monocleAlgorithm) Tag() model.LayoutTag { return model.Monocle }
func (monocleAlgorithm) Name() string         { return "monocle" }
func (monocleAlgorithm) SupportsSolver() bool { return false }

func (monocleAlgorithm) Compute(ids []model.WindowID, screen geometry.Rect, _ geometry.Gaps, _ []float64, _ Options) []Placement {
	out := make([]Placement, len(ids))
	for i, id := range ids {
		out[i] = Placement{WindowID: id, Frame: screen}
	}
	return out
}
