package staff

import "testing"

// testGeom mirrors the renderer's layout: one staff line every 2 rows,
// bottom line at y=24, staff columns 4..60.
var testGeom = Geometry{TopY: 8, BottomY: 24, LeftX: 4, RightX: 60, LineSpacing: 2}

func TestPositionAtSnapsToNearest(t *testing.T) {
	tests := []struct {
		y    int
		want int
	}{
		{24, 0},  // bottom line
		{23, 1},  // first space
		{16, 8},  // top line
		{8, 16},  // clamped: above table top would be 16? no: (24-8)/1 = 16 -> clamp 14
		{26, -2}, // middle C
		{40, -6}, // far below, clamped
	}
	for _, tt := range tests {
		want := clamp(tt.want, MinPosition, MaxPosition)
		if got := testGeom.PositionAt(10, tt.y); got != want {
			t.Errorf("PositionAt(y=%d) = %d, want %d", tt.y, got, want)
		}
	}
}

func TestYForPositionRoundTrip(t *testing.T) {
	for p := MinPosition; p <= MaxPosition; p++ {
		y := testGeom.YForPosition(p)
		if got := testGeom.PositionAt(10, y); got != p {
			t.Errorf("position %d -> y %d -> %d", p, y, got)
		}
	}
}

func TestContainsMargin(t *testing.T) {
	margin := hoverMargin * testGeom.LineSpacing
	tests := []struct {
		x, y int
		want bool
	}{
		{10, 16, true},                       // on the staff
		{10, testGeom.TopY - margin, true},   // top of expanded box
		{10, testGeom.TopY - margin - 1, false},
		{10, testGeom.BottomY + margin, true},
		{10, testGeom.BottomY + margin + 1, false},
		{3, 16, false},  // left of staff
		{61, 16, false}, // right of staff
	}
	for _, tt := range tests {
		if got := testGeom.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestPositionInfoAt(t *testing.T) {
	pos, ok := testGeom.PositionInfoAt(10, 26)
	if !ok {
		t.Fatal("point should be inside the interactive area")
	}
	if pos.LinePosition != -2 || !pos.Ledger {
		t.Errorf("got %+v, want middle C on a ledger line", pos)
	}

	if _, ok := testGeom.PositionInfoAt(0, 0); ok {
		t.Error("far point should be outside")
	}
}
