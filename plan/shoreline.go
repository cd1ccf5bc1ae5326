package plan

import (
	"fmt"
	"math"

	"github.com/bob-anderson-ok/deltaplan/field"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrNoShoreline is returned when a shoreline mask has no true pixels.
	ErrNoShoreline = fmt.Errorf("%w: no pixels in shoreline mask", field.ErrValue)
	// ErrNoLand is returned when a land mask has no true pixels.
	ErrNoLand = fmt.Errorf("%w: no pixels in land mask", field.ErrValue)
)

// MetricOption configures the shoreline metrics.
type MetricOption func(*metricOptions)

type metricOptions struct {
	origin     []float64 // x (column), y (row)
	returnLine bool
}

func newMetricOptions(opts []MetricOption) metricOptions {
	o := metricOptions{origin: []float64{0, 0}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithOrigin sets the reference point, x being the column and y the row.
// The default is the top-left corner.
func WithOrigin(x, y float64) MetricOption {
	return func(o *metricOptions) { o.origin = []float64{x, y} }
}

// WithReturnLine asks for the traced line. ShorelineRoughness accepts it and
// ignores it.
func WithReturnLine(b bool) MetricOption {
	return func(o *metricOptions) { o.returnLine = b }
}

// shorelinePixels extracts the (x, y) position of every true pixel of a single
// plane shoreline mask, in row-major order.
func shorelinePixels(sm any) ([][]float64, error) {
	b, err := singlePlane(sm)
	if err != nil {
		return nil, err
	}
	s := b.Shape()
	var pts [][]float64
	for i := 0; i < s.R; i++ {
		for j := 0; j < s.C; j++ {
			if b.At(0, i, j) {
				pts = append(pts, []float64{float64(j), float64(i)})
			}
		}
	}
	if len(pts) == 0 {
		return nil, ErrNoShoreline
	}
	return pts, nil
}

func singlePlane(v any) (*field.Binary, error) {
	b, err := field.BinaryFromValue(v)
	if err != nil {
		return nil, err
	}
	if b.Shape().T != 1 {
		return nil, fmt.Errorf("%w: expected a single plane, got shape %s", field.ErrValue, b.Shape())
	}
	return b, nil
}

// traceLine chains pixels into a polyline: it starts at the pixel nearest
// origin and repeatedly steps to the nearest pixel not yet on the line.
// Ties go to the earlier pixel in row-major order.
func traceLine(pts [][]float64, origin []float64) [][]float64 {
	visited := make([]bool, len(pts))
	nearest := func(from []float64) int {
		best, bestDist := -1, math.Inf(1)
		for k, p := range pts {
			if visited[k] {
				continue
			}
			if d := floats.Distance(from, p, 2); d < bestDist {
				best, bestDist = k, d
			}
		}
		return best
	}

	line := make([][]float64, 0, len(pts))
	cur := nearest(origin)
	for cur >= 0 {
		visited[cur] = true
		line = append(line, pts[cur])
		cur = nearest(pts[cur])
	}
	return line
}

// ShorelineLength traces the shoreline mask into a polyline and returns its
// length in pixels. sm may be a mask or a raw array.
func ShorelineLength(sm any, opts ...MetricOption) (float64, error) {
	length, _, err := ShorelineLine(sm, opts...)
	return length, err
}

// ShorelineLine is ShorelineLength that also returns the traced line as
// (x, y) pairs.
func ShorelineLine(sm any, opts ...MetricOption) (float64, [][2]float64, error) {
	o := newMetricOptions(opts)
	pts, err := shorelinePixels(sm)
	if err != nil {
		return 0, nil, err
	}
	line := traceLine(pts, o.origin)

	segments := make([]float64, 0, len(line))
	out := make([][2]float64, len(line))
	for k, p := range line {
		out[k] = [2]float64{p[0], p[1]}
		if k > 0 {
			segments = append(segments, floats.Distance(line[k-1], p, 2))
		}
	}
	return floats.Sum(segments), out, nil
}

// ShorelineRoughness is the shoreline length divided by the square root of
// the land area (its count of true pixels).
func ShorelineRoughness(sm, lm any, opts ...MetricOption) (float64, error) {
	land, err := singlePlane(lm)
	if err != nil {
		return 0, err
	}
	if _, err := shorelinePixels(sm); err != nil {
		return 0, err
	}
	area := land.Count()
	if area == 0 {
		return 0, ErrNoLand
	}
	length, err := ShorelineLength(sm, opts...)
	if err != nil {
		return 0, err
	}
	return length / math.Sqrt(float64(area)), nil
}

// ShorelineDistance returns the mean and population standard deviation of
// the distance from origin to every shoreline pixel.
func ShorelineDistance(sm any, opts ...MetricOption) (mean, std float64, err error) {
	mean, std, _, err = ShorelineDistances(sm, opts...)
	return mean, std, err
}

// ShorelineDistances is ShorelineDistance that also returns the distance of
// every pixel, in row-major order.
func ShorelineDistances(sm any, opts ...MetricOption) (mean, std float64, dists []float64, err error) {
	o := newMetricOptions(opts)
	pts, err := shorelinePixels(sm)
	if err != nil {
		return 0, 0, nil, err
	}
	dists = make([]float64, len(pts))
	for k, p := range pts {
		dists[k] = floats.Distance(p, o.origin, 2)
	}
	mean, std = stat.PopMeanStdDev(dists, nil)
	return mean, std, dists, nil
}
