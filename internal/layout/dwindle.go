package layout

import (
	"github.com/yourorg/tilecore/internal/geometry"
	"github.com/yourorg/tilecore/internal/model"
)

// dwindleAlgorithm implements a binary space partition: each window after
// the first bisects the remaining rectangle, alternating split
// orientation with depth. split_ratios[i] is the fraction of the split
// at depth i; the orientation of the first split depends on the
// screen's aspect (spec.md §4.3).
type dwindleAlgorithm struct{}

func (dwindleAlgorithm) Tag() model.LayoutTag  { return model.Dwindle }
func (dwindleAlgorithm) Name() string          { return "dwindle" }
func (dwindleAlgorithm) SupportsSolver() bool  { return true }

func (dwindleAlgorithm) Compute(ids []model.WindowID, screen geometry.Rect, gaps geometry.Gaps, ratios []float64, _ Options) []Placement {
	if len(ids) == 0 {
		return nil
	}
	startRow := screen.IsLandscape()
	return dwindleRecurse(ids, screen, gaps, ratios, 0, startRow)
}

func dwindleRecurse(ids []model.WindowID, rect geometry.Rect, gaps geometry.Gaps, ratios []float64, depth int, startRow bool) []Placement {
	if len(ids) == 0 {
		return nil
	}
	if len(ids) == 1 {
		return []Placement{{WindowID: ids[0], Frame: rect}}
	}

	row := depth%2 == 0
	if !startRow {
		row = !row
	}
	ratio := geometry.ClampRatio(geometry.RatioOrDefault(ratios, depth, 0.5))

	var head, tail geometry.Rect
	if row {
		gap := gaps.InnerH
		avail := rect.W - gap
		headW := avail * ratio
		head = geometry.NewRect(rect.X, rect.Y, headW, rect.H)
		tail = geometry.NewRect(rect.X+headW+gap, rect.Y, rect.Right()-(rect.X+headW+gap), rect.H)
	} else {
		gap := gaps.InnerV
		avail := rect.H - gap
		headH := avail * ratio
		head = geometry.NewRect(rect.X, rect.Y, rect.W, headH)
		tail = geometry.NewRect(rect.X, rect.Y+headH+gap, rect.W, rect.Bottom()-(rect.Y+headH+gap))
	}

	out := []Placement{{WindowID: ids[0], Frame: head}}
	out = append(out, dwindleRecurse(ids[1:], tail, gaps, ratios, depth+1, startRow)...)
	return out
}
