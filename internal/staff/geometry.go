package staff

import "math"

// Geometry describes where a rendered staff sits, in terminal cell
// coordinates supplied by the renderer. LineSpacing is the distance
// between adjacent staff lines, so a half-spacing step moves one line
// position.
type Geometry struct {
	TopY        int // y of the top staff line (position 8)
	BottomY     int // y of the bottom staff line (position 0)
	LeftX       int
	RightX      int
	LineSpacing int
}

// hoverMargin extends the interactive area this many line spaces above
// and below the staff so ledger positions stay reachable.
const hoverMargin = 3

func (g Geometry) halfSpacing() float64 {
	return float64(g.LineSpacing) / 2
}

// PositionAt snaps a point to the nearest line position, clamped to the
// table range.
func (g Geometry) PositionAt(x, y int) int {
	p := int(math.Round(float64(g.BottomY-y) / g.halfSpacing()))
	return clamp(p, MinPosition, MaxPosition)
}

// YForPosition is the inverse of PositionAt for the vertical axis.
func (g Geometry) YForPosition(position int) int {
	return g.BottomY - int(math.Round(float64(position)*g.halfSpacing()))
}

// Contains reports whether a point lies within the interactive staff
// area: the staff bounding box expanded by the hover margin on top and
// bottom.
func (g Geometry) Contains(x, y int) bool {
	margin := hoverMargin * g.LineSpacing
	return x >= g.LeftX && x <= g.RightX &&
		y >= g.TopY-margin && y <= g.BottomY+margin
}

// PositionInfoAt builds the full staff position under a point. The
// second return is false when the point is outside the interactive area.
func (g Geometry) PositionInfoAt(x, y int) (Position, bool) {
	if !g.Contains(x, y) {
		return Position{}, false
	}
	return PositionInfo(g.PositionAt(x, y)), true
}
