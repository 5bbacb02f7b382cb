package layout

import (
	"github.com/yourorg/tilecore/internal/geometry"
	"github.com/yourorg/tilecore/internal/model"
)

// floatingAlgorithm tiles nothing: floating windows keep whatever frame
// they already have, so Compute always returns an empty result (spec.md
// §4.3 "Floating participates in the id set but never receives a
// computed frame"). It has no ratio tree for the solver to walk.
type floatingAlgorithm struct{}

func (floatingAlgorithm) Tag() model.LayoutTag { return model.Floating }
func (floatingAlgorithm) Name() string         { return "floating" }
func (floatingAlgorithm) SupportsSolver() bool { return false }

func (floatingAlgorithm) Compute(_ []model.WindowID, _ geometry.Rect, _ geometry.Gaps, _ []float64, _ Options) []Placement {
	return []Placement{}
}
