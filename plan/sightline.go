package plan

import (
	"math"

	"github.com/bob-anderson-ok/deltaplan/field"
)

// cellBox is an axis-aligned rectangle in (row, col) cell-centre coordinates.
type cellBox struct {
	minRow, maxRow float64
	minCol, maxCol float64
	empty          bool
}

// landBox returns the bounding box of every land (false) cell in below,
// grown by one cell so that rasterised lines that wander half a cell off the
// true segment are still caught by the clip test.
func landBox(below *field.Binary) cellBox {
	s := below.Shape()
	box := cellBox{
		minRow: math.Inf(1), maxRow: math.Inf(-1),
		minCol: math.Inf(1), maxCol: math.Inf(-1),
		empty: true,
	}
	for i := 0; i < s.R; i++ {
		for j := 0; j < s.C; j++ {
			if below.At(0, i, j) {
				continue
			}
			box.empty = false
			box.minRow = math.Min(box.minRow, float64(i))
			box.maxRow = math.Max(box.maxRow, float64(i))
			box.minCol = math.Min(box.minCol, float64(j))
			box.maxCol = math.Max(box.maxCol, float64(j))
		}
	}
	if !box.empty {
		box.minRow--
		box.minCol--
		box.maxRow++
		box.maxCol++
	}
	return box
}

// crosses reports whether the segment from (r1, c1) to (r2, c2) touches the box.
// The segment is written parametrically, p = p1 + t*(p2-p1) for t in [0, 1],
// and clipped against each of the four sides in turn.
func (b cellBox) crosses(r1, c1, r2, c2 float64) bool {
	if b.empty {
		return false
	}
	dr := r2 - r1
	dc := c2 - c1
	tLo, tHi := 0.0, 1.0

	clip := func(p, q float64) bool {
		// p is the projection of the direction on the side's outward normal,
		// q the distance from the start point to that side.
		if math.Abs(p) < 1e-12 {
			return q >= 0
		}
		t := q / p
		if p < 0 {
			if t > tHi {
				return false
			}
			if t > tLo {
				tLo = t
			}
		} else {
			if t < tLo {
				return false
			}
			if t < tHi {
				tHi = t
			}
		}
		return true
	}

	// top, bottom, left and right sides of the box
	return clip(-dr, r1-b.minRow) &&
		clip(dr, b.maxRow-r1) &&
		clip(-dc, c1-b.minCol) &&
		clip(dc, b.maxCol-c1) &&
		tLo <= tHi
}

// lineOfSight walks the Bresenham line from cell (r1, c1) to the boundary
// position (r2, c2) and reports whether it reaches the boundary without
// entering a land cell. The starting cell and positions outside the grid are
// not tested.
func lineOfSight(below *field.Binary, box cellBox, r1, c1, r2, c2 int) bool {
	if !box.crosses(float64(r1), float64(c1), float64(r2), float64(c2)) {
		return true
	}

	s := below.Shape()
	dc := absInt(c2 - c1)
	dr := absInt(r2 - r1)
	sc := -1
	if c1 < c2 {
		sc = 1
	}
	sr := -1
	if r1 < r2 {
		sr = 1
	}
	err := dc - dr

	r, c := r1, c1
	for {
		if r == r2 && c == c2 {
			return true
		}
		e2 := 2 * err
		if e2 > -dr {
			err -= dr
			c += sc
		}
		if e2 < dc {
			err += dc
			r += sr
		}
		if r >= 0 && r < s.R && c >= 0 && c < s.C && !below.At(0, r, c) {
			return false
		}
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
