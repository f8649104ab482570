package layout

import (
	"github.com/1broseidon/icontile/internal/classify"
	"github.com/1broseidon/icontile/internal/surface"
)

// Engine computes icon grid positions. It is stateless across calls apart
// from the settings it holds and never retains icon references.
type Engine struct {
	Settings Settings

	stat statFunc
}

// NewEngine creates an engine with the given settings.
func NewEngine(settings Settings) *Engine {
	return &Engine{Settings: settings, stat: statPath}
}

// Result is the outcome of one placement pass. Skipped counts icons that
// could not be placed because the grid was full; they keep no computed
// position and are left untouched on the surface.
type Result struct {
	Positions map[string]surface.Point
	Placed    int
	Skipped   int
}

// cell is one grid slot.
type cell struct {
	col, row int
}

// unit is one placement block: a single group, or several groups merged
// under a shared merge key with icons tagged by their original priority.
type unit struct {
	key   string
	icons []prioritizedIcon
}

// CalculatePositions assigns one grid cell per icon and maps it to pixels.
//
// classified maps group name to icons; groups is the enabled group list in
// ascending priority order; origin is the detected grid origin, or nil to
// derive one from the work area plus margins. Identical inputs always yield
// identical output: units, icons, and free-cell probes are all visited in a
// fixed order.
func (e *Engine) CalculatePositions(
	classified map[string][]surface.Icon,
	groups []classify.Group,
	monitor surface.Monitor,
	spacing surface.Spacing,
	origin *surface.Point,
) Result {
	res := Result{Positions: make(map[string]surface.Point)}

	units := buildUnits(classified, groups)
	if len(units) == 0 {
		return res
	}

	if spacing.H < 1 {
		spacing.H = surface.DefaultSpacingH
	}
	if spacing.V < 1 {
		spacing.V = surface.DefaultSpacingV
	}

	work := monitor.WorkArea
	var originX, originY int
	if origin != nil {
		originX, originY = origin.X, origin.Y
	} else {
		originX = work.Left + e.Settings.MarginLeft
		originY = work.Top + e.Settings.MarginTop
	}

	availWidth := work.Width() - e.Settings.MarginLeft - e.Settings.MarginRight
	availHeight := work.Height() - e.Settings.MarginTop - e.Settings.MarginBottom
	maxCols := max(1, availWidth/spacing.H)
	maxRows := max(1, availHeight/spacing.V)

	g := &grid{
		maxCols:  maxCols,
		maxRows:  maxRows,
		occupied: make(map[cell]struct{}, maxCols*maxRows),
	}

	stat := e.stat
	if stat == nil {
		stat = statPath
	}

	if e.Settings.Direction == DirectionHorizontal {
		e.placeHorizontal(units, g, &res, stat)
	} else {
		e.placeVertical(units, g, &res, stat)
	}

	for name, c := range g.cells {
		res.Positions[name] = surface.Point{
			X: originX + c.col*spacing.H,
			Y: originY + c.row*spacing.V,
		}
	}
	return res
}

// grid tracks cell occupancy during one placement pass.
type grid struct {
	maxCols  int
	maxRows  int
	occupied map[cell]struct{}
	cells    map[string]cell
}

func (g *grid) free(c cell) bool {
	_, taken := g.occupied[c]
	return !taken
}

func (g *grid) take(name string, c cell) {
	g.occupied[c] = struct{}{}
	if g.cells == nil {
		g.cells = make(map[string]cell)
	}
	g.cells[name] = c
}

func (g *grid) wrapCol(col int) int {
	col %= g.maxCols
	if col < 0 {
		col += g.maxCols
	}
	return col
}

func (g *grid) wrapRow(row int) int {
	row %= g.maxRows
	if row < 0 {
		row += g.maxRows
	}
	return row
}

// nextFreeVertical scans from the preferred cell: the rest of its column
// downward, then subsequent columns in the placement direction (whole
// columns), wrapping to the opposite edge. Returns ok=false when the grid is
// saturated.
func (g *grid) nextFreeVertical(start cell, dir int) (cell, bool) {
	for k := 0; k < g.maxCols; k++ {
		col := g.wrapCol(start.col + dir*k)
		rowStart := 0
		if k == 0 {
			rowStart = start.row
		}
		for row := rowStart; row < g.maxRows; row++ {
			if c := (cell{col, row}); g.free(c) {
				return c, true
			}
		}
	}
	return cell{}, false
}

// nextFreeHorizontal is the row-major mirror: the rest of the preferred row
// in the fill direction, then subsequent rows downward, wrapping.
func (g *grid) nextFreeHorizontal(start cell, dir int) (cell, bool) {
	leading := 0
	if dir < 0 {
		leading = g.maxCols - 1
	}
	for k := 0; k < g.maxRows; k++ {
		row := g.wrapRow(start.row + k)
		colStart := leading
		if k == 0 {
			colStart = start.col
		}
		for col := colStart; col >= 0 && col < g.maxCols; col += dir {
			if c := (cell{col, row}); g.free(c) {
				return c, true
			}
		}
	}
	return cell{}, false
}

// placeVertical gives each unit its own column block, filling top to bottom.
// Units are processed in priority order; with StartFromRight the column
// cursor starts at the right edge and advances left, so the first unit lands
// in the rightmost column.
func (e *Engine) placeVertical(units []unit, g *grid, res *Result, stat statFunc) {
	dir := 1
	cursor := 0
	if e.Settings.StartFromRight {
		dir = -1
		cursor = g.maxCols - 1
	}

	for _, u := range units {
		sorted := sortUnit(u.icons, e.Settings.SortOrder, stat)
		startCol := cursor
		placed := 0

		for i, ic := range sorted {
			preferred := cell{
				col: clamp(startCol+dir*(i/g.maxRows), 0, g.maxCols-1),
				row: i % g.maxRows,
			}
			target := preferred
			if !g.free(target) {
				next, ok := g.nextFreeVertical(preferred, dir)
				if !ok {
					res.Skipped++
					continue
				}
				target = next
			}
			g.take(ic.Name, target)
			placed++
		}

		res.Placed += placed
		colsUsed := max(1, ceilDiv(placed, g.maxRows))
		cursor = clamp(cursor+dir*colsUsed, 0, g.maxCols-1)
	}
}

// placeHorizontal is the symmetric row layout: each unit gets its own row
// block, icons fill left to right (right to left with StartFromRight), and
// the row cursor advances downward.
func (e *Engine) placeHorizontal(units []unit, g *grid, res *Result, stat statFunc) {
	dir := 1
	leading := 0
	if e.Settings.StartFromRight {
		dir = -1
		leading = g.maxCols - 1
	}
	cursor := 0

	for _, u := range units {
		sorted := sortUnit(u.icons, e.Settings.SortOrder, stat)
		startRow := cursor
		placed := 0

		for i, ic := range sorted {
			preferred := cell{
				col: leading + dir*(i%g.maxCols),
				row: min(g.maxRows-1, startRow+i/g.maxCols),
			}
			target := preferred
			if !g.free(target) {
				next, ok := g.nextFreeHorizontal(preferred, dir)
				if !ok {
					res.Skipped++
					continue
				}
				target = next
			}
			g.take(ic.Name, target)
			placed++
		}

		res.Placed += placed
		rowsUsed := max(1, ceilDiv(placed, g.maxCols))
		cursor = min(g.maxRows-1, cursor+rowsUsed)
	}
}

// buildUnits resolves merge groups into ordered placement units. A merge
// unit sits at the position of the first group carrying its key; icons keep
// their original group's priority. Only units with icons participate.
func buildUnits(classified map[string][]surface.Icon, groups []classify.Group) []unit {
	var units []unit
	mergeIndex := make(map[string]int)

	for _, grp := range groups {
		icons := classified[grp.Name]
		if len(icons) == 0 {
			continue
		}
		tagged := make([]prioritizedIcon, len(icons))
		for i, ic := range icons {
			tagged[i] = prioritizedIcon{priority: grp.Priority, icon: ic}
		}

		if grp.MergeGroup != "" {
			if idx, ok := mergeIndex[grp.MergeGroup]; ok {
				units[idx].icons = append(units[idx].icons, tagged...)
				continue
			}
			mergeIndex[grp.MergeGroup] = len(units)
			units = append(units, unit{key: grp.MergeGroup, icons: tagged})
			continue
		}
		units = append(units, unit{key: grp.Name, icons: tagged})
	}
	return units
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
