package mask

import (
	"fmt"

	"github.com/bob-anderson-ok/deltaplan/field"
	"github.com/bob-anderson-ok/deltaplan/plan"
	"gonum.org/v1/gonum/mat"
)

// LandMask marks cells whose opening angle toward open water is below the
// angle threshold: dry land and the water it shelters.
type LandMask struct {
	Mask
}

type landPolicy struct{}

func (landPolicy) defaults(s *Settings) { s.ElevationThreshold = field.Threshold(0) }

func (landPolicy) dependencies() []Type { return nil }

func (landPolicy) classify(f *field.Field, o *options) (*field.Binary, error) {
	return landFromElevation(f, o.Settings)
}

// landFromElevation builds an opening-angle planform for every time slice of
// an elevation field and thresholds its angles.
func landFromElevation(f *field.Field, s Settings) (*field.Binary, error) {
	return planes(f, func(_ int, plane *field.Field) (*field.Binary, error) {
		oap, err := plan.New(plane, s.planOptions()...)
		if err != nil {
			return nil, err
		}
		return landFromAngles(oap.SeaAngles(), s.AngleThreshold), nil
	})
}

// landFromAngles marks every cell whose angle is below threshold.
func landFromAngles(angles *mat.Dense, threshold float64) *field.Binary {
	r, c := angles.Dims()
	land := field.NewBinary(field.Shape{T: 1, R: r, C: c})
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			land.Set(0, i, j, angles.At(i, j) < threshold)
		}
	}
	return land
}

// NewLandMask computes a land mask from elevation. The elevation threshold
// defaults to 0.
func NewLandMask(elevation any, opts ...Option) (*LandMask, error) {
	m, err := build(Land, landPolicy{}, elevation, opts)
	if err != nil {
		return nil, err
	}
	return &LandMask{Mask: m}, nil
}

// LandMaskFromOAP thresholds the angles of an existing planform. Only the
// angle threshold option applies.
func LandMaskFromOAP(oap *plan.OpeningAnglePlanform, opts ...Option) (*LandMask, error) {
	if oap == nil {
		return nil, fmt.Errorf("%w: no planform given", field.ErrValue)
	}
	o := newOptions()
	landPolicy{}.defaults(&o.Settings)
	for _, opt := range opts {
		opt(o)
	}
	o.NumViews = oap.NumViews()
	o.Seaward = oap.Seaward()

	return &LandMask{Mask: Mask{
		kind:     Land,
		mask:     landFromAngles(oap.SeaAngles(), o.AngleThreshold),
		settings: o.Settings,
	}}, nil
}

// LandMaskFromMask computes a land mask from an elevation mask (true above
// water), or any other mask marking dry cells.
func LandMaskFromMask(m field.Masker, opts ...Option) (*LandMask, error) {
	o := newOptions()
	landPolicy{}.defaults(&o.Settings)
	for _, opt := range opts {
		opt(o)
	}
	oap, err := plan.FromElevationMask(m, plan.WithNumViews(o.NumViews), plan.WithSeaward(o.Seaward...))
	if err != nil {
		return nil, err
	}
	return LandMaskFromOAP(oap, opts...)
}
