package layout

import (
	"github.com/yourorg/tilecore/internal/geometry"
	"github.com/yourorg/tilecore/internal/model"
)

// maxGridWindows caps the grid layout at 12 windows; any id beyond that
// is left unplaced (spec.md §4.3 "Grid caps at 12 windows, extras are
// left at their last frame").
const maxGridWindows = 12

// gridAlgorithm arranges windows in rows and columns, as close to square
// as the count allows. Counts 3, 5, and 7 get a master-stack shape (one
// window spanning a full column, the rest filling a grid beside it);
// counts 10 and 11 get a 3x4 grid with the master spanning 3 or 2 cells;
// every other count from 2 to 12 gets a plain equal or ratio'd grid.
// Orientation (rows x cols) flips for portrait screens in every case,
// per spec.md §4.3 -- a broader flip than original_source applies, which
// only flips the master-stack and master-3x4 shapes (see DESIGN.md).
type gridAlgorithm struct{}

func (gridAlgorithm) Tag() model.LayoutTag { return model.Grid }
func (gridAlgorithm) Name() string         { return "grid" }
func (gridAlgorithm) SupportsSolver() bool { return true }

func (gridAlgorithm) Compute(ids []model.WindowID, screen geometry.Rect, gaps geometry.Gaps, ratios []float64, _ Options) []Placement {
	if len(ids) == 0 {
		return nil
	}
	if len(ids) > maxGridWindows {
		ids = ids[:maxGridWindows]
	}
	count := len(ids)
	landscape := screen.IsLandscape()

	switch count {
	case 1:
		return []Placement{{WindowID: ids[0], Frame: screen}}
	case 2:
		return gridTwo(ids, screen, gaps, landscape, ratios)
	case 3, 5:
		return gridMasterStack(ids, screen, gaps, 2, landscape, ratios)
	case 4:
		return gridRegular(ids, screen, gaps, 2, 2, landscape, ratios)
	case 6:
		return gridRegular(ids, screen, gaps, 2, 3, landscape, ratios)
	case 7:
		return gridMasterStack(ids, screen, gaps, 3, landscape, ratios)
	case 8:
		return gridRegular(ids, screen, gaps, 2, 4, landscape, ratios)
	case 9:
		return gridRegular(ids, screen, gaps, 3, 3, landscape, ratios)
	case 10:
		return gridMaster3x4(ids, screen, gaps, 3, landscape, ratios)
	case 11:
		return gridMaster3x4(ids, screen, gaps, 2, landscape, ratios)
	default: // 12
		return gridRegular(ids, screen, gaps, 3, 4, landscape, ratios)
	}
}

func gridTwo(ids []model.WindowID, screen geometry.Rect, gaps geometry.Gaps, landscape bool, ratios []float64) []Placement {
	ratio := geometry.ClampRatio(geometry.RatioOrDefault(ratios, 0, 0.5))
	if landscape {
		gap := gaps.InnerH
		avail := screen.W - gap
		w1 := avail * ratio
		w2 := avail * (1 - ratio)
		return []Placement{
			{WindowID: ids[0], Frame: geometry.NewRect(screen.X, screen.Y, w1, screen.H)},
			{WindowID: ids[1], Frame: geometry.NewRect(screen.X+w1+gap, screen.Y, w2, screen.H)},
		}
	}
	gap := gaps.InnerV
	avail := screen.H - gap
	h1 := avail * ratio
	h2 := avail * (1 - ratio)
	return []Placement{
		{WindowID: ids[0], Frame: geometry.NewRect(screen.X, screen.Y, screen.W, h1)},
		{WindowID: ids[1], Frame: geometry.NewRect(screen.X, screen.Y+h1+gap, screen.W, h2)},
	}
}

// gridDims returns rows/cols, flipping for portrait screens so the grid
// stays wider-than-tall on a landscape display and taller-than-wide on
// a portrait one.
func gridDims(rows, cols int, landscape bool) (int, int) {
	if landscape {
		return rows, cols
	}
	return cols, rows
}

func gridRegular(ids []model.WindowID, screen geometry.Rect, gaps geometry.Gaps, rows, cols int, landscape bool, ratios []float64) []Placement {
	rows, cols = gridDims(rows, cols, landscape)
	if len(ratios) == 0 {
		return gridEqual(ids, screen, gaps, rows, cols)
	}
	return gridCustomRatios(ids, screen, gaps, rows, cols, ratios)
}

func gridEqual(ids []model.WindowID, screen geometry.Rect, gaps geometry.Gaps, rows, cols int) []Placement {
	count := len(ids)
	hGapsTotal := gaps.InnerH * float64(cols-1)
	vGapsTotal := gaps.InnerV * float64(rows-1)
	cellW := (screen.W - hGapsTotal) / float64(cols)
	cellH := (screen.H - vGapsTotal) / float64(rows)

	out := make([]Placement, 0, count)
	idx := 0
	for row := 0; row < rows; row++ {
		y := screen.Y + float64(row)*(cellH+gaps.InnerV)
		for col := 0; col < cols; col++ {
			if idx >= count {
				break
			}
			x := screen.X + float64(col)*(cellW+gaps.InnerH)
			out = append(out, Placement{WindowID: ids[idx], Frame: geometry.NewRect(x, y, cellW, cellH)})
			idx++
		}
	}
	return out
}

func gridCustomRatios(ids []model.WindowID, screen geometry.Rect, gaps geometry.Gaps, rows, cols int, ratios []float64) []Placement {
	count := len(ids)
	hGapsTotal := gaps.InnerH * float64(cols-1)
	vGapsTotal := gaps.InnerV * float64(rows-1)
	availW := screen.W - hGapsTotal
	availH := screen.H - vGapsTotal

	colRatioCount := cols - 1
	rowRatioCount := rows - 1

	colPos := make([]float64, cols)
	for c := 0; c < cols; c++ {
		if c == 0 {
			colPos[c] = 0
		} else if c <= len(ratios) && c <= colRatioCount {
			colPos[c] = geometry.ClampRatio(ratios[c-1])
		} else {
			colPos[c] = float64(c) / float64(cols)
		}
	}
	rowPos := make([]float64, rows)
	for r := 0; r < rows; r++ {
		if r == 0 {
			rowPos[r] = 0
		} else {
			idx := colRatioCount + r - 1
			if idx < len(ratios) && r <= rowRatioCount {
				rowPos[r] = geometry.ClampRatio(ratios[idx])
			} else {
				rowPos[r] = float64(r) / float64(rows)
			}
		}
	}

	out := make([]Placement, 0, count)
	idx := 0
	for row := 0; row < rows; row++ {
		rowStart := rowPos[row]
		rowEnd := 1.0
		if row+1 < rows {
			rowEnd = rowPos[row+1]
		}
		cellH := (rowEnd - rowStart) * availH
		y := screen.Y + rowStart*availH + float64(row)*gaps.InnerV

		for col := 0; col < cols; col++ {
			if idx >= count {
				break
			}
			colStart := colPos[col]
			colEnd := 1.0
			if col+1 < cols {
				colEnd = colPos[col+1]
			}
			cellW := (colEnd - colStart) * availW
			x := screen.X + colStart*availW + float64(col)*gaps.InnerH

			out = append(out, Placement{WindowID: ids[idx], Frame: geometry.NewRect(x, y, cellW, cellH)})
			idx++
		}
	}
	return out
}

// gridMasterStack gives the first window a full column (landscape) or
// row (portrait) and fills the rest of the grid with the remaining
// windows, `rows` deep. Used for counts 3, 5, and 7.
func gridMasterStack(ids []model.WindowID, screen geometry.Rect, gaps geometry.Gaps, rows int, landscape bool, ratios []float64) []Placement {
	count := len(ids)
	stackCount := count - 1
	stackCols := ceilDiv(stackCount, rows)
	totalCols := 1 + stackCols

	out := make([]Placement, 0, count)

	if landscape {
		defaultRatio := 1.0 / float64(totalCols)
		masterRatio := clampMasterStackRatio(geometry.RatioOrDefault(ratios, 0, defaultRatio))

		hGapsTotal := gaps.InnerH * float64(totalCols-1)
		vGapsTotal := gaps.InnerV * float64(rows-1)
		availW := screen.W - hGapsTotal
		availH := screen.H - vGapsTotal

		masterW := availW * masterRatio
		stackColW := 0.0
		if stackCols > 0 {
			stackColW = (availW * (1 - masterRatio)) / float64(stackCols)
		}
		cellH := availH / float64(rows)
		masterH := cellH*float64(rows) + gaps.InnerV*float64(rows-1)

		out = append(out, Placement{WindowID: ids[0], Frame: geometry.NewRect(screen.X, screen.Y, masterW, masterH)})

		idx := 1
		for row := 0; row < rows; row++ {
			y := screen.Y + float64(row)*(cellH+gaps.InnerV)
			for col := 0; col < stackCols; col++ {
				if idx >= count {
					break
				}
				x := screen.X + masterW + gaps.InnerH + float64(col)*(stackColW+gaps.InnerH)
				out = append(out, Placement{WindowID: ids[idx], Frame: geometry.NewRect(x, y, stackColW, cellH)})
				idx++
			}
		}
		return out
	}

	totalRows := 1 + rows
	defaultRatio := 1.0 / float64(totalRows)
	masterRatio := clampMasterStackRatio(geometry.RatioOrDefault(ratios, 0, defaultRatio))

	hGapsTotal := gaps.InnerH * float64(stackCols-1)
	vGapsTotal := gaps.InnerV * float64(totalRows-1)
	availW := screen.W - hGapsTotal
	availH := screen.H - vGapsTotal

	masterH := availH * masterRatio
	stackRowH := 0.0
	if rows > 0 {
		stackRowH = (availH * (1 - masterRatio)) / float64(rows)
	}
	cellW := availW / float64(stackCols)
	masterW := cellW*float64(stackCols) + gaps.InnerH*float64(stackCols-1)

	out = append(out, Placement{WindowID: ids[0], Frame: geometry.NewRect(screen.X, screen.Y, masterW, masterH)})

	idx := 1
	for row := 0; row < rows; row++ {
		y := screen.Y + masterH + gaps.InnerV + float64(row)*(stackRowH+gaps.InnerV)
		for col := 0; col < stackCols; col++ {
			if idx >= count {
				break
			}
			x := screen.X + float64(col)*(cellW+gaps.InnerH)
			out = append(out, Placement{WindowID: ids[idx], Frame: geometry.NewRect(x, y, cellW, stackRowH)})
			idx++
		}
	}
	return out
}

// gridMaster3x4 lays out a 3x4 grid (or 4x3 in portrait) where the first
// window spans masterSpan rows of the first column. Used for counts 10
// (span 3) and 11 (span 2).
func gridMaster3x4(ids []model.WindowID, screen geometry.Rect, gaps geometry.Gaps, masterSpan int, landscape bool, ratios []float64) []Placement {
	count := len(ids)
	rows, cols := 3, 4
	if !landscape {
		rows, cols = 4, 3
	}

	defaultRatio := 1.0 / float64(cols)
	masterRatio := clampMasterStackRatio(geometry.RatioOrDefault(ratios, 0, defaultRatio))

	hGapsTotal := gaps.InnerH * float64(cols-1)
	vGapsTotal := gaps.InnerV * float64(rows-1)
	availW := screen.W - hGapsTotal
	availH := screen.H - vGapsTotal

	masterW := availW * masterRatio
	stackCols := cols - 1
	stackColW := 0.0
	if stackCols > 0 {
		stackColW = (availW * (1 - masterRatio)) / float64(stackCols)
	}
	cellH := availH / float64(rows)

	out := make([]Placement, 0, count)
	masterH := cellH*float64(masterSpan) + gaps.InnerV*float64(masterSpan-1)
	out = append(out, Placement{WindowID: ids[0], Frame: geometry.NewRect(screen.X, screen.Y, masterW, masterH)})

	idx := 1
	for row := 0; row < rows; row++ {
		y := screen.Y + float64(row)*(cellH+gaps.InnerV)
		startCol := 0
		if row < masterSpan {
			startCol = 1
		}
		for col := startCol; col < cols; col++ {
			if idx >= count {
				break
			}
			var x, w float64
			if col == 0 {
				x, w = screen.X, masterW
			} else {
				stackCol := col - 1
				x = screen.X + masterW + gaps.InnerH + float64(stackCol)*(stackColW+gaps.InnerH)
				w = stackColW
			}
			out = append(out, Placement{WindowID: ids[idx], Frame: geometry.NewRect(x, y, w, cellH)})
			idx++
		}
	}
	return out
}

// clampMasterStackRatio matches original_source's master-stack clamp of
// [0.1, 0.9], distinct from the general split clamp of [0.05, 0.95].
func clampMasterStackRatio(r float64) float64 {
	if r < 0.1 {
		return 0.1
	}
	if r > 0.9 {
		return 0.9
	}
	return r
}

func ceilDiv(a, b int) int {
	if b == 0 {
		return 0
	}
	return (a + b - 1) / b
}
