// Package plan computes plan-view (planform) properties of a delta: the
// opening angle of every cell toward open water, and geometric metrics of a
// traced shoreline.
//
// The opening angle of a cell is the widest contiguous arc of the seaward
// domain boundary visible from it along straight sightlines that do not cross
// land. Open water sees close to 180 degrees; cells tucked behind land see
// little or nothing. Thresholding the angle field separates land (including
// sheltered water) from the open sea without relying on elevation alone.
package plan

import (
	"fmt"
	"time"

	"github.com/bob-anderson-ok/deltaplan/field"
	"github.com/bob-anderson-ok/deltaplan/internal/log"
	"gonum.org/v1/gonum/mat"
)

// CubeSource is a space-time data source that can hand out an elevation plane
// for a time index.
type CubeSource interface {
	Elevation(t int) (*field.Field, error)
}

// Option configures a planform.
type Option func(*options)

type options struct {
	numViews  int
	seaward   []field.Edge
	threshold *float64
	offset    float64
}

func defaultOptions() options {
	return options{numViews: DefaultNumViews, seaward: DefaultSeaward}
}

// WithNumViews sets the number of ocean dilation passes (default 3).
func WithNumViews(n int) Option {
	return func(o *options) { o.numViews = n }
}

// WithSeaward sets which grid edges are open water.
func WithSeaward(edges ...field.Edge) Option {
	return func(o *options) { o.seaward = append([]field.Edge(nil), edges...) }
}

// WithElevationThreshold classifies elevation data: cells at or below the
// threshold are ocean.
func WithElevationThreshold(v float64) Option {
	return func(o *options) { o.threshold = &v }
}

// WithElevationOffset shifts the elevation threshold.
func WithElevationOffset(v float64) Option {
	return func(o *options) { o.offset = v }
}

// OpeningAnglePlanform holds the opening-angle field computed from one ocean
// indicator. It is built once and never changes.
type OpeningAnglePlanform struct {
	ocean     *field.Binary
	below     *field.Binary
	seaAngles *mat.Dense
	numViews  int
	seaward   []field.Edge
}

// New builds a planform from a boolean or integer ocean indicator (non-zero is
// ocean). With WithElevationThreshold the data is treated as elevation and
// classified first.
func New(data any, opts ...Option) (*OpeningAnglePlanform, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	f, err := field.FromValue(data)
	if err != nil {
		return nil, err
	}
	c := field.Classifier{Threshold: o.threshold, Offset: o.offset, Binary: o.threshold == nil}
	ocean, err := c.Below(f)
	if err != nil {
		return nil, err
	}
	return fromOcean(ocean, o)
}

// FromElevationData classifies an elevation field and builds a planform from
// it. WithElevationThreshold is required.
func FromElevationData(data any, opts ...Option) (*OpeningAnglePlanform, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.threshold == nil {
		return nil, fmt.Errorf("%w: elevation threshold required", field.ErrType)
	}
	return New(data, opts...)
}

// FromElevationMask builds a planform from a mask marking land (above-water)
// cells. Ocean is its complement.
func FromElevationMask(m field.Masker, opts ...Option) (*OpeningAnglePlanform, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if field.IsNil(m) || m.BinaryMask() == nil {
		return nil, fmt.Errorf("%w: no elevation mask given", field.ErrValue)
	}
	return fromOcean(m.BinaryMask().Not(), o)
}

// FromCube will build a planform directly from time index t of a cube. It is
// not implemented; slice the elevation and use FromElevationData.
func FromCube(src CubeSource, t int, opts ...Option) (*OpeningAnglePlanform, error) {
	return nil, fmt.Errorf("%w: planform from cube", field.ErrNotImplemented)
}

func fromOcean(ocean *field.Binary, o options) (*OpeningAnglePlanform, error) {
	s := ocean.Shape()
	if s.T != 1 {
		return nil, fmt.Errorf("%w: planform needs a single plane, got shape %s", field.ErrValue, s)
	}
	if o.numViews < 0 {
		return nil, fmt.Errorf("%w: numviews must be >= 0, got %d", field.ErrValue, o.numViews)
	}
	if len(o.seaward) == 0 {
		return nil, fmt.Errorf("%w: at least one seaward edge is required", field.ErrValue)
	}

	start := time.Now()
	ocean = ocean.Plane(0).Clone()
	below := dilateOcean(ocean, o.numViews)
	angles := seaAngles(below, o.seaward)

	log.Debugw("opening angle planform computed",
		"rows", s.R,
		"cols", s.C,
		"ocean_cells", ocean.Count(),
		"below_cells", below.Count(),
		"numviews", o.numViews,
		"elapsed", time.Since(start),
	)

	return &OpeningAnglePlanform{
		ocean:     ocean,
		below:     below,
		seaAngles: angles,
		numViews:  o.numViews,
		seaward:   o.seaward,
	}, nil
}

// SeaAngles returns a copy of the opening angle field, in degrees.
func (p *OpeningAnglePlanform) SeaAngles() *mat.Dense {
	return mat.DenseCopyOf(p.seaAngles)
}

// BelowMask returns a copy of the dilated ocean indicator the angles were
// computed on.
func (p *OpeningAnglePlanform) BelowMask() *field.Binary { return p.below.Clone() }

// OceanIndicator returns a copy of the ocean indicator before dilation.
func (p *OpeningAnglePlanform) OceanIndicator() *field.Binary { return p.ocean.Clone() }

func (p *OpeningAnglePlanform) NumViews() int { return p.numViews }

func (p *OpeningAnglePlanform) Seaward() []field.Edge {
	return append([]field.Edge(nil), p.seaward...)
}

func (p *OpeningAnglePlanform) Shape() field.Shape { return p.ocean.Shape() }
