package mask

import (
	"github.com/bob-anderson-ok/deltaplan/field"
	"github.com/bob-anderson-ok/deltaplan/plan"
)

// Default thresholds.
const (
	DefaultAngleThreshold    = 75.0
	DefaultTopoThreshold     = -0.5
	DefaultVelocityThreshold = 0.3
	DefaultMethod            = "skeletonize"
)

// Settings holds the thresholds and flags a mask is built with. Fields that
// do not apply to a mask type are carried but unused.
type Settings struct {
	ElevationThreshold *float64
	ElevationOffset    float64
	AngleThreshold     float64 // degrees
	NumViews           int
	Seaward            []field.Edge
	TopoThreshold      float64
	VelocityThreshold  float64
	Method             string
	Origin             *[2]float64 // x (column), y (row)

	IsMask     bool
	AllowEmpty bool
}

type options struct {
	Settings
	collaborators map[Type]Collaborator
	given         map[Type]*field.Binary
}

func newOptions() *options {
	return &options{
		Settings: Settings{
			AngleThreshold:    DefaultAngleThreshold,
			NumViews:          plan.DefaultNumViews,
			Seaward:           plan.DefaultSeaward,
			TopoThreshold:     DefaultTopoThreshold,
			VelocityThreshold: DefaultVelocityThreshold,
			Method:            DefaultMethod,
		},
		collaborators: map[Type]Collaborator{},
	}
}

// planOptions translates the settings into planform options.
func (s Settings) planOptions() []plan.Option {
	opts := []plan.Option{
		plan.WithNumViews(s.NumViews),
		plan.WithSeaward(s.Seaward...),
		plan.WithElevationOffset(s.ElevationOffset),
	}
	if s.ElevationThreshold != nil {
		opts = append(opts, plan.WithElevationThreshold(*s.ElevationThreshold))
	}
	return opts
}

// classifier is the ocean classifier matching the elevation settings.
func (s Settings) classifier() field.Classifier {
	return field.Classifier{Threshold: s.ElevationThreshold, Offset: s.ElevationOffset}
}

// Option configures a mask.
type Option func(*options)

// WithIsMask uses the input as the finished mask (non-zero is true) without
// classification.
func WithIsMask() Option {
	return func(o *options) { o.IsMask = true }
}

// WithAllowEmpty lets a constructor given no data return an empty mask
// instead of an error.
func WithAllowEmpty() Option {
	return func(o *options) { o.AllowEmpty = true }
}

// WithElevationThreshold sets the water level. Cells at or below it are
// under water.
func WithElevationThreshold(v float64) Option {
	return func(o *options) { o.ElevationThreshold = &v }
}

func WithElevationOffset(v float64) Option {
	return func(o *options) { o.ElevationOffset = v }
}

// WithAngleThreshold sets the opening angle, in degrees, below which a cell
// counts as land (default 75).
func WithAngleThreshold(v float64) Option {
	return func(o *options) { o.AngleThreshold = v }
}

// WithNumViews sets the planform dilation passes (default 3).
func WithNumViews(n int) Option {
	return func(o *options) { o.NumViews = n }
}

// WithSeaward sets the grid edges the planform treats as open water.
func WithSeaward(edges ...field.Edge) Option {
	return func(o *options) { o.Seaward = append([]field.Edge(nil), edges...) }
}

// WithTopoThreshold sets the depth below which water is too deep to be wet
// (default -0.5).
func WithTopoThreshold(v float64) Option {
	return func(o *options) { o.TopoThreshold = v }
}

// WithVelocityThreshold sets the flow speed above which wet cells are
// channel (default 0.3).
func WithVelocityThreshold(v float64) Option {
	return func(o *options) { o.VelocityThreshold = v }
}

// WithMethod selects the centerline extraction method.
func WithMethod(m string) Option {
	return func(o *options) { o.Method = m }
}

// WithOrigin sets the geometric mask origin: x is the column, y the row, the
// same order plan.WithOrigin uses.
func WithOrigin(x, y float64) Option {
	return func(o *options) { o.Origin = &[2]float64{x, y} }
}

// WithLandMask offers a land mask (a mask or a raw grid) to reuse instead of
// recomputing one. See Collaborator.
func WithLandMask(v any) Option {
	return func(o *options) { o.collaborators[Land] = NewCollaborator(v) }
}

// WithWetMask offers a wet mask to reuse. See Collaborator.
func WithWetMask(v any) Option {
	return func(o *options) { o.collaborators[Wet] = NewCollaborator(v) }
}
