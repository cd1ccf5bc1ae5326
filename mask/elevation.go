package mask

import (
	"fmt"

	"github.com/bob-anderson-ok/deltaplan/field"
)

// ElevationMask marks cells above the water level:
// elevation > threshold + offset.
type ElevationMask struct {
	Mask
}

type elevationPolicy struct{}

func (elevationPolicy) defaults(*Settings) {}

func (elevationPolicy) dependencies() []Type { return nil }

func (elevationPolicy) classify(f *field.Field, o *options) (*field.Binary, error) {
	if o.ElevationThreshold == nil {
		return nil, fmt.Errorf("%w: elevation threshold required", field.ErrType)
	}
	below, err := o.classifier().Below(f)
	if err != nil {
		return nil, err
	}
	return below.Not(), nil
}

// NewElevationMask thresholds an elevation field. WithElevationThreshold is
// required.
func NewElevationMask(elevation any, opts ...Option) (*ElevationMask, error) {
	m, err := build(Elevation, elevationPolicy{}, elevation, opts)
	if err != nil {
		return nil, err
	}
	return &ElevationMask{Mask: m}, nil
}
