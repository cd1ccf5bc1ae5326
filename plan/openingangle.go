package plan

import (
	"math"

	"github.com/bob-anderson-ok/deltaplan/field"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"
)

// MaxAngle is the opening angle, in degrees, of a cell with an unobstructed
// view of the whole seaward boundary.
const MaxAngle = 180.0

// DefaultNumViews is the number of dilation passes applied to the ocean
// indicator before angles are computed.
const DefaultNumViews = 3

// DefaultSeaward lists the grid edges treated as open water. The top row is
// the landward wall where the feeder channel enters.
var DefaultSeaward = []field.Edge{field.Left, field.Bottom, field.Right}

// oceanMajority is how many of the eight neighbours must be ocean for a land
// cell to be flooded during a dilation pass.
const oceanMajority = 5

// dilateOcean grows the ocean indicator by up to passes rounds of the
// majority rule and returns the grown copy. It stops early once a pass
// changes nothing.
func dilateOcean(ocean *field.Binary, passes int) *field.Binary {
	below := ocean.Clone()
	for pass := 0; pass < passes; pass++ {
		counts := below.NeighborCount(field.Square, field.PadReplicate)
		changed := false
		data := below.Data()
		for k, n := range counts.Data() {
			if !data[k] && n >= oceanMajority {
				data[k] = true
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return below
}

// boundaryPoint is a position on the ring of cells just outside the grid.
type boundaryPoint struct {
	row, col int
	seaward  bool
}

// boundaryRing walks the ring just outside an rows x cols grid: down the left
// side, along the bottom, up the right side and back across the top. Each
// point records whether its edge is open water. Corners belong to the top and
// bottom edges.
func boundaryRing(rows, cols int, seaward []field.Edge) []boundaryPoint {
	open := map[field.Edge]bool{}
	for _, e := range seaward {
		open[e] = true
	}

	ring := make([]boundaryPoint, 0, 2*(rows+cols)+4)
	for i := 0; i < rows; i++ {
		ring = append(ring, boundaryPoint{i, -1, open[field.Left]})
	}
	for j := -1; j <= cols; j++ {
		ring = append(ring, boundaryPoint{rows, j, open[field.Bottom]})
	}
	for i := rows - 1; i >= 0; i-- {
		ring = append(ring, boundaryPoint{i, cols, open[field.Right]})
	}
	for j := cols; j >= -1; j-- {
		ring = append(ring, boundaryPoint{-1, j, open[field.Top]})
	}
	return ring
}

// sweep is the unsigned angle, in radians, between two sightlines.
func sweep(a, b r2.Vec) float64 {
	return math.Atan2(math.Abs(r2.Cross(a, b)), r2.Dot(a, b))
}

// openingAngle returns the widest contiguous arc, in degrees, of boundary
// points visible from cell (i, j). The ring is circular, so a run that
// reaches its end continues into the run at its start.
func openingAngle(below *field.Binary, box cellBox, ring []boundaryPoint, i, j int) float64 {
	n := len(ring)
	if n == 0 {
		return 0
	}
	maxRad := MaxAngle * math.Pi / 180
	from := r2.Vec{X: float64(j), Y: float64(i)}
	vec := func(k int) r2.Vec {
		return r2.Sub(r2.Vec{X: float64(ring[k].col), Y: float64(ring[k].row)}, from)
	}
	visible := func(k int) bool {
		p := ring[k]
		return p.seaward && lineOfSight(below, box, i, j, p.row, p.col)
	}

	var (
		best, run, prefix float64
		inPrefix          = true
		prevVisible       bool
		prevVec           r2.Vec
	)
	firstVisible := visible(0)
	for k := 0; k < n; k++ {
		vis := firstVisible
		if k > 0 {
			vis = visible(k)
		}
		v := vec(k)
		switch {
		case !vis:
			if inPrefix {
				prefix = run
				inPrefix = false
			}
			best = math.Max(best, run)
			run = 0
		case k > 0 && prevVisible:
			run += sweep(prevVec, v)
		}
		if run >= maxRad {
			return MaxAngle
		}
		prevVisible = vis
		prevVec = v
	}
	if inPrefix {
		// every boundary point is in view
		return MaxAngle
	}
	if prevVisible && firstVisible {
		run += sweep(prevVec, vec(0)) + prefix
	}
	best = math.Max(best, run)
	return math.Min(best*180/math.Pi, MaxAngle)
}

// seaAngles computes the opening angle of every cell of a single-plane
// below-water mask. Land cells get 0. A mask with no land gets MaxAngle
// everywhere and a mask with no ocean gets 0 everywhere.
func seaAngles(below *field.Binary, seaward []field.Edge) *mat.Dense {
	s := below.Shape()
	angles := mat.NewDense(s.R, s.C, nil)

	ocean := below.Count()
	switch {
	case ocean == 0:
		return angles
	case ocean == s.PlaneSize():
		for i := 0; i < s.R; i++ {
			for j := 0; j < s.C; j++ {
				angles.Set(i, j, MaxAngle)
			}
		}
		return angles
	}

	ring := boundaryRing(s.R, s.C, seaward)
	box := landBox(below)
	for i := 0; i < s.R; i++ {
		for j := 0; j < s.C; j++ {
			if !below.At(0, i, j) {
				continue
			}
			angles.Set(i, j, openingAngle(below, box, ring, i, j))
		}
	}
	return angles
}
