package surface

import "sort"

const (
	// Deltas at or below this are grid noise (overlapping icons, sub-cell
	// nudges) and never count as spacing.
	spacingNoisePx = 50

	// Fallback cell metrics when detection has too few icons to work with.
	DefaultSpacingH = 110
	DefaultSpacingV = 100
)

// DefaultOrigin is the grid origin used when no icons exist to derive one.
var DefaultOrigin = Point{X: 20, Y: 2}

// DetectSpacing derives the live grid spacing from current icon positions:
// the minimum consecutive delta above the noise threshold across sorted
// unique x's and y's. Returns ok=false when fewer than two icons or no
// usable delta on either axis.
func DetectSpacing(icons []Icon) (Spacing, bool) {
	if len(icons) < 2 {
		return Spacing{}, false
	}

	h := minStep(uniqueSorted(icons, func(ic Icon) int { return ic.X }))
	v := minStep(uniqueSorted(icons, func(ic Icon) int { return ic.Y }))
	if h == 0 || v == 0 {
		return Spacing{}, false
	}
	return Spacing{H: h, V: v}, true
}

func uniqueSorted(icons []Icon, coord func(Icon) int) []int {
	seen := make(map[int]struct{}, len(icons))
	var vals []int
	for _, ic := range icons {
		c := coord(ic)
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		vals = append(vals, c)
	}
	sort.Ints(vals)
	return vals
}

func minStep(vals []int) int {
	best := 0
	for i := 1; i < len(vals); i++ {
		d := vals[i] - vals[i-1]
		if d <= spacingNoisePx {
			continue
		}
		if best == 0 || d < best {
			best = d
		}
	}
	return best
}

// DeriveOrigin returns the minimum observed (x, y) among icons, or
// DefaultOrigin when the desktop is empty.
func DeriveOrigin(icons []Icon) Point {
	if len(icons) == 0 {
		return DefaultOrigin
	}
	origin := Point{X: icons[0].X, Y: icons[0].Y}
	for _, ic := range icons[1:] {
		if ic.X < origin.X {
			origin.X = ic.X
		}
		if ic.Y < origin.Y {
			origin.Y = ic.Y
		}
	}
	return origin
}

// SnapToGrid snaps a pixel position to the nearest cell of the grid defined
// by origin and spacing.
func SnapToGrid(p, origin Point, sp Spacing) Point {
	col := roundDiv(p.X-origin.X, sp.H)
	row := roundDiv(p.Y-origin.Y, sp.V)
	return Point{X: origin.X + col*sp.H, Y: origin.Y + row*sp.V}
}

func roundDiv(a, b int) int {
	if b == 0 {
		return 0
	}
	if a >= 0 {
		return (a + b/2) / b
	}
	return -((-a + b/2) / b)
}
