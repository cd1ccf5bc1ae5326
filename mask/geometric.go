package mask

import (
	"fmt"
	"math"

	"github.com/bob-anderson-ok/deltaplan/field"
)

// End stands for the far edge of the grid in Strike and Dip.
const End = -1

// GeometricMask is a user-composed region. It starts with every cell set and
// each call intersects one more analytic region into it. Positions are
// measured in cells from an origin that defaults to the middle of the top row,
// where the feeder channel enters.
type GeometricMask struct {
	Mask
	row0, col0 float64 // origin
}

type geometricPolicy struct{}

func (geometricPolicy) defaults(*Settings) {}

func (geometricPolicy) dependencies() []Type { return nil }

func (geometricPolicy) classify(f *field.Field, _ *options) (*field.Binary, error) {
	return field.Full(f.Shape(), true), nil
}

// NewGeometricMask starts a geometric mask covering the grid of data. Only
// the shape of data is used, unless WithIsMask is given.
func NewGeometricMask(data any, opts ...Option) (*GeometricMask, error) {
	m, err := build(Geometric, geometricPolicy{}, data, opts)
	if err != nil {
		return nil, err
	}
	g := &GeometricMask{Mask: m}
	if o := m.settings.Origin; o != nil {
		g.col0, g.row0 = o[0], o[1]
	} else if s, ok := m.Shape(); ok {
		g.col0 = float64(s.C / 2)
	}
	return g, nil
}

// Origin returns the point distances are measured from, x being the column
// and y the row.
func (g *GeometricMask) Origin() (x, y float64) { return g.col0, g.row0 }

// intersect clears every cell for which keep is false, in every time slice.
func (g *GeometricMask) intersect(keep func(i, j int) bool) error {
	if g.mask == nil {
		return fmt.Errorf("%w: geometric mask is empty", field.ErrValue)
	}
	s := g.mask.Shape()
	for i := 0; i < s.R; i++ {
		for j := 0; j < s.C; j++ {
			if keep(i, j) {
				continue
			}
			for t := 0; t < s.T; t++ {
				g.mask.Set(t, i, j, false)
			}
		}
	}
	return nil
}

// Circular keeps the annulus inner <= distance <= outer around the origin.
// Pass math.Inf(1) for an open outer edge.
func (g *GeometricMask) Circular(inner, outer float64) error {
	if inner < 0 || outer < inner {
		return fmt.Errorf("%w: bad radii %g, %g", field.ErrValue, inner, outer)
	}
	return g.intersect(func(i, j int) bool {
		d := math.Hypot(float64(i)-g.row0, float64(j)-g.col0)
		return inner <= d && d <= outer
	})
}

// CircularAt moves the origin to column x, row y and then keeps the annulus
// inner <= distance <= outer around it. The new origin applies to later
// calls too.
func (g *GeometricMask) CircularAt(x, y, inner, outer float64) error {
	if inner < 0 || outer < inner {
		return fmt.Errorf("%w: bad radii %g, %g", field.ErrValue, inner, outer)
	}
	g.col0, g.row0 = x, y
	return g.Circular(inner, outer)
}

// Angular keeps the wedge theta1 <= theta <= theta2, theta being measured in
// radians from the direction of decreasing column, counterclockwise toward
// increasing row. The mask must be a single plane.
func (g *GeometricMask) Angular(theta1, theta2 float64) error {
	if g.mask != nil && g.mask.Shape().T != 1 {
		return fmt.Errorf("%w: angular region needs a single plane, got %s", field.ErrValue, g.mask.Shape())
	}
	return g.intersect(func(i, j int) bool {
		theta := math.Atan2(float64(i)-g.row0, g.col0-float64(j))
		return theta1 <= theta && theta <= theta2
	})
}

// Strike keeps rows low <= row < high; high may be End.
func (g *GeometricMask) Strike(low, high int) error {
	if g.mask == nil {
		return g.intersect(nil)
	}
	if high == End {
		high = g.mask.Shape().R
	}
	return g.intersect(func(i, _ int) bool { return low <= i && i < high })
}

// Dip keeps columns low <= col < high; high may be End.
func (g *GeometricMask) Dip(low, high int) error {
	if g.mask == nil {
		return g.intersect(nil)
	}
	if high == End {
		high = g.mask.Shape().C
	}
	return g.intersect(func(_, j int) bool { return low <= j && j < high })
}

// DipBand keeps a band of columns width wide centred on the origin column.
func (g *GeometricMask) DipBand(width int) error {
	half := float64(width / 2)
	return g.intersect(func(_, j int) bool { return math.Abs(float64(j)-g.col0) <= half })
}
