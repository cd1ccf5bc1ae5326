package mask

import (
	"github.com/bob-anderson-ok/deltaplan/field"
)

// EdgeMask marks the land cells that border wet cells: land, not wet, with
// at least one wet cell among its eight neighbours.
type EdgeMask struct {
	Mask
	land *field.Binary
	wet  *field.Binary
}

type edgePolicy struct {
	land, wet *field.Binary
}

func (*edgePolicy) defaults(s *Settings) { s.ElevationThreshold = field.Threshold(0) }

func (*edgePolicy) dependencies() []Type { return []Type{Land, Wet} }

func (p *edgePolicy) classify(f *field.Field, o *options) (*field.Binary, error) {
	var err error
	if p.land, err = resolveLand(f, o); err != nil {
		return nil, err
	}
	if p.wet, err = resolveWet(f, p.land, o); err != nil {
		return nil, err
	}
	return boundary(p.land.And(p.wet.Not()), p.wet, field.Square), nil
}

// boundary keeps the cells of inside that have a neighbour in other.
func boundary(inside, other *field.Binary, conn field.Connectivity) *field.Binary {
	counts := other.NeighborCount(conn, field.PadZeros).Data()
	out := inside.Clone()
	data := out.Data()
	for k := range data {
		data[k] = data[k] && counts[k] > 0
	}
	return out
}

// NewEdgeMask computes the land/wet boundary from elevation. WithLandMask and
// WithWetMask supply masks to reuse.
func NewEdgeMask(elevation any, opts ...Option) (*EdgeMask, error) {
	p := &edgePolicy{}
	m, err := build(Edge, p, elevation, opts)
	if err != nil {
		return nil, err
	}
	return &EdgeMask{Mask: m, land: p.land, wet: p.wet}, nil
}

func (m *EdgeMask) LandMask() *field.Binary { return cloneOrNil(m.land) }

func (m *EdgeMask) WetMask() *field.Binary { return cloneOrNil(m.wet) }
