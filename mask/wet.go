package mask

import (
	"github.com/bob-anderson-ok/deltaplan/field"
)

// WetMask marks sheltered water: cells that are under water, inside the land
// mask, and shallower than the topo threshold.
type WetMask struct {
	Mask
	ocean *field.Binary
	land  *field.Binary
}

type wetPolicy struct {
	ocean, land *field.Binary
}

func (*wetPolicy) defaults(s *Settings) { s.ElevationThreshold = field.Threshold(0) }

func (*wetPolicy) dependencies() []Type { return []Type{Land} }

func (p *wetPolicy) classify(f *field.Field, o *options) (*field.Binary, error) {
	land, err := resolveLand(f, o)
	if err != nil {
		return nil, err
	}
	ocean, err := o.classifier().Below(f)
	if err != nil {
		return nil, err
	}
	p.land, p.ocean = land, ocean
	return wetFrom(f, ocean, land, o.TopoThreshold), nil
}

// resolveLand returns the caller's land mask when one was usable, and
// computes it otherwise.
func resolveLand(f *field.Field, o *options) (*field.Binary, error) {
	if land, ok := o.given[Land]; ok {
		return land, nil
	}
	return landFromElevation(f, o.Settings)
}

// resolveWet returns the caller's wet mask, or computes it along with the
// land mask it depends on.
func resolveWet(f *field.Field, land *field.Binary, o *options) (*field.Binary, error) {
	if wet, ok := o.given[Wet]; ok {
		return wet, nil
	}
	ocean, err := o.classifier().Below(f)
	if err != nil {
		return nil, err
	}
	return wetFrom(f, ocean, land, o.TopoThreshold), nil
}

func wetFrom(elevation *field.Field, ocean, land *field.Binary, topo float64) *field.Binary {
	wet := ocean.And(land)
	data := wet.Data()
	for k, z := range elevation.Data() {
		data[k] = data[k] && z > topo
	}
	return wet
}

// NewWetMask computes a wet mask from elevation. WithLandMask supplies a land
// mask to reuse.
func NewWetMask(elevation any, opts ...Option) (*WetMask, error) {
	p := &wetPolicy{}
	m, err := build(Wet, p, elevation, opts)
	if err != nil {
		return nil, err
	}
	return &WetMask{Mask: m, ocean: p.ocean, land: p.land}, nil
}

// OceanMap is the below-water indicator the mask was derived from. It is nil
// when the mask was given with WithIsMask.
func (m *WetMask) OceanMap() *field.Binary { return cloneOrNil(m.ocean) }

// LandMask is the land mask used, given or computed.
func (m *WetMask) LandMask() *field.Binary { return cloneOrNil(m.land) }

func cloneOrNil(b *field.Binary) *field.Binary {
	if b == nil {
		return nil
	}
	return b.Clone()
}
