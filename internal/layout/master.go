package layout

import (
	"github.com/yourorg/tilecore/internal/geometry"
	"github.com/yourorg/tilecore/internal/model"
)

// masterAlgorithm gives the first window a configurable share of the
// screen and stacks the rest in the remaining space. MasterAuto resolves
// to MasterLeft on landscape screens and MasterTop on portrait ones
// (spec.md §4.3). The master ratio is clamped to [0.1, 0.9], distinct
// from the general split clamp of [0.05, 0.95] -- a master window that
// shrank past 10% would leave the stack with no readable master at all.
// Master has no ratio tree for the minimum-size solver to walk; its
// single ratio is clamped directly.
type masterAlgorithm struct{}

func (masterAlgorithm) Tag() model.LayoutTag { return model.Master }
func (masterAlgorithm) Name() string         { return "master" }
func (masterAlgorithm) SupportsSolver() bool { return false }

func (masterAlgorithm) Compute(ids []model.WindowID, screen geometry.Rect, gaps geometry.Gaps, _ []float64, opts Options) []Placement {
	if len(ids) == 0 {
		return nil
	}
	if len(ids) == 1 {
		return []Placement{{WindowID: ids[0], Frame: screen}}
	}

	ratio := clampMasterStackRatio(opts.MasterRatio)
	position := opts.MasterPosition
	if position == model.MasterAuto {
		if screen.IsLandscape() {
			position = model.MasterLeft
		} else {
			position = model.MasterTop
		}
	}

	switch position {
	case model.MasterRight:
		return masterRight(ids, screen, ratio, gaps)
	case model.MasterTop:
		return masterTop(ids, screen, ratio, gaps)
	case model.MasterBottom:
		return masterBottom(ids, screen, ratio, gaps)
	default: // MasterLeft
		return masterLeft(ids, screen, ratio, gaps)
	}
}

func masterLeft(ids []model.WindowID, screen geometry.Rect, ratio float64, gaps geometry.Gaps) []Placement {
	out := make([]Placement, 0, len(ids))
	availW := screen.W - gaps.InnerH

	masterW := availW * ratio
	out = append(out, Placement{WindowID: ids[0], Frame: geometry.NewRect(screen.X, screen.Y, masterW, screen.H)})

	stackX := screen.X + masterW + gaps.InnerH
	stackW := availW - masterW
	stackCount := len(ids) - 1
	stackH := (screen.H - gaps.InnerV*float64(stackCount-1)) / float64(stackCount)

	for i, id := range ids[1:] {
		y := screen.Y + float64(i)*(stackH+gaps.InnerV)
		out = append(out, Placement{WindowID: id, Frame: geometry.NewRect(stackX, y, stackW, stackH)})
	}
	return out
}

func masterRight(ids []model.WindowID, screen geometry.Rect, ratio float64, gaps geometry.Gaps) []Placement {
	out := make([]Placement, 0, len(ids))
	availW := screen.W - gaps.InnerH

	stackW := availW * (1 - ratio)
	stackCount := len(ids) - 1
	stackH := (screen.H - gaps.InnerV*float64(stackCount-1)) / float64(stackCount)

	masterW := availW * ratio
	masterX := screen.X + stackW + gaps.InnerH
	out = append(out, Placement{WindowID: ids[0], Frame: geometry.NewRect(masterX, screen.Y, masterW, screen.H)})

	for i, id := range ids[1:] {
		y := screen.Y + float64(i)*(stackH+gaps.InnerV)
		out = append(out, Placement{WindowID: id, Frame: geometry.NewRect(screen.X, y, stackW, stackH)})
	}
	return out
}

func masterTop(ids []model.WindowID, screen geometry.Rect, ratio float64, gaps geometry.Gaps) []Placement {
	out := make([]Placement, 0, len(ids))
	availH := screen.H - gaps.InnerV

	masterH := availH * ratio
	out = append(out, Placement{WindowID: ids[0], Frame: geometry.NewRect(screen.X, screen.Y, screen.W, masterH)})

	stackY := screen.Y + masterH + gaps.InnerV
	stackH := availH - masterH
	stackCount := len(ids) - 1
	stackW := (screen.W - gaps.InnerH*float64(stackCount-1)) / float64(stackCount)

	for i, id := range ids[1:] {
		x := screen.X + float64(i)*(stackW+gaps.InnerH)
		out = append(out, Placement{WindowID: id, Frame: geometry.NewRect(x, stackY, stackW, stackH)})
	}
	return out
}

func masterBottom(ids []model.WindowID, screen geometry.Rect, ratio float64, gaps geometry.Gaps) []Placement {
	out := make([]Placement, 0, len(ids))
	availH := screen.H - gaps.InnerV

	stackH := availH * (1 - ratio)
	stackCount := len(ids) - 1
	stackW := (screen.W - gaps.InnerH*float64(stackCount-1)) / float64(stackCount)

	masterH := availH * ratio
	masterY := screen.Y + stackH + gaps.InnerV
	out = append(out, Placement{WindowID: ids[0], Frame: geometry.NewRect(screen.X, masterY, screen.W, masterH)})

	for i, id := range ids[1:] {
		x := screen.X + float64(i)*(stackW+gaps.InnerH)
		out = append(out, Placement{WindowID: id, Frame: geometry.NewRect(x, screen.Y, stackW, stackH)})
	}
	return out
}
