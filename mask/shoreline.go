package mask

import (
	"fmt"

	"github.com/bob-anderson-ok/deltaplan/field"
	"github.com/bob-anderson-ok/deltaplan/plan"
)

// ShorelineMask is the one-cell-wide seaward contour of the land mask: cells
// outside the land mask that share a side with it.
type ShorelineMask struct {
	Mask
	land *field.Binary
}

type shorelinePolicy struct {
	land *field.Binary
}

func (*shorelinePolicy) defaults(s *Settings) { s.ElevationThreshold = field.Threshold(0) }

func (*shorelinePolicy) dependencies() []Type { return []Type{Land} }

func (p *shorelinePolicy) classify(f *field.Field, o *options) (*field.Binary, error) {
	var err error
	if p.land, err = resolveLand(f, o); err != nil {
		return nil, err
	}
	return shorelineFrom(p.land), nil
}

func shorelineFrom(land *field.Binary) *field.Binary {
	return boundary(land.Not(), land, field.Cross)
}

// NewShorelineMask computes a shoreline mask from elevation.
func NewShorelineMask(elevation any, opts ...Option) (*ShorelineMask, error) {
	p := &shorelinePolicy{}
	m, err := build(Shoreline, p, elevation, opts)
	if err != nil {
		return nil, err
	}
	return &ShorelineMask{Mask: m, land: p.land}, nil
}

// ShorelineMaskFromOAP traces the shoreline of the land mask implied by an
// existing planform and the angle threshold.
func ShorelineMaskFromOAP(oap *plan.OpeningAnglePlanform, opts ...Option) (*ShorelineMask, error) {
	if oap == nil {
		return nil, fmt.Errorf("%w: no planform given", field.ErrValue)
	}
	land, err := LandMaskFromOAP(oap, opts...)
	if err != nil {
		return nil, err
	}
	return &ShorelineMask{
		Mask: Mask{kind: Shoreline, mask: shorelineFrom(land.mask), settings: land.settings},
		land: land.mask,
	}, nil
}

func (m *ShorelineMask) LandMask() *field.Binary { return cloneOrNil(m.land) }
