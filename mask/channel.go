package mask

import (
	"fmt"

	"github.com/bob-anderson-ok/deltaplan/field"
)

// ChannelMask marks wet cells where the flow is faster than the velocity
// threshold.
type ChannelMask struct {
	Mask
	velocity *field.Field
	flow     *field.Binary
	land     *field.Binary
	wet      *field.Binary
}

type channelPolicy struct {
	elevation any

	velocity        *field.Field
	flow, land, wet *field.Binary
}

func (*channelPolicy) defaults(s *Settings) { s.ElevationThreshold = field.Threshold(0) }

func (*channelPolicy) dependencies() []Type { return []Type{Land, Wet} }

// classify receives the velocity field; elevation rides along on the policy.
func (p *channelPolicy) classify(velocity *field.Field, o *options) (*field.Binary, error) {
	if velocity.Kind() == field.Boolean {
		return nil, fmt.Errorf("%w: velocity must be numeric, got %s data", field.ErrType, velocity.Kind())
	}
	elevation, err := field.FromValue(p.elevation)
	if err != nil {
		return nil, fmt.Errorf("elevation: %w", err)
	}
	if !elevation.Shape().Matches(velocity.Shape()) {
		return nil, fmt.Errorf("%w: velocity %s and elevation %s differ in shape",
			field.ErrValue, velocity.Shape(), elevation.Shape())
	}

	if p.land, err = resolveLand(elevation, o); err != nil {
		return nil, err
	}
	if p.wet, err = resolveWet(elevation, p.land, o); err != nil {
		return nil, err
	}

	p.velocity = velocity
	p.flow = field.NewBinary(velocity.Shape())
	flow := p.flow.Data()
	for k, v := range velocity.Data() {
		flow[k] = v > o.VelocityThreshold
	}
	return p.wet.And(p.flow), nil
}

// NewChannelMask computes a channel mask from flow velocity and elevation
// grids of the same shape. With WithIsMask the velocity argument is taken as
// the finished mask and elevation is ignored.
func NewChannelMask(velocity, elevation any, opts ...Option) (*ChannelMask, error) {
	p := &channelPolicy{elevation: elevation}
	m, err := build(Channel, p, velocity, opts)
	if err != nil {
		return nil, err
	}
	return &ChannelMask{Mask: m, velocity: p.velocity, flow: p.flow, land: p.land, wet: p.wet}, nil
}

// FlowMap marks every cell faster than the velocity threshold.
func (m *ChannelMask) FlowMap() *field.Binary { return cloneOrNil(m.flow) }

// Velocity is a copy of the velocity field the mask was computed from.
func (m *ChannelMask) Velocity() *field.Field {
	if m.velocity == nil {
		return nil
	}
	return m.velocity.Clone()
}

func (m *ChannelMask) LandMask() *field.Binary { return cloneOrNil(m.land) }

func (m *ChannelMask) WetMask() *field.Binary { return cloneOrNil(m.wet) }
