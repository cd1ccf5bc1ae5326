// Package mask derives typed binary masks (land, wet, channel, edge,
// shoreline, centerline, geometric, elevation) from delta elevation and flow
// fields.
//
// Every constructor accepts either raw grids, which are classified, or a
// finished mask together with WithIsMask, which is used as given. Masks that
// need other masks (a wet mask needs land, a channel mask needs land and wet)
// accept them through WithLandMask and WithWetMask; anything that cannot be
// used is quietly recomputed.
package mask

import (
	"fmt"
	"time"

	"github.com/bob-anderson-ok/deltaplan/field"
	"github.com/bob-anderson-ok/deltaplan/internal/log"
)

// Type tags what a mask marks.
type Type string

const (
	Land       Type = "land"
	Wet        Type = "wet"
	Channel    Type = "channel"
	Shoreline  Type = "shoreline"
	Edge       Type = "edge"
	Centerline Type = "centerline"
	Geometric  Type = "geometric"
	Elevation  Type = "elevation"
	Base       Type = "base"
)

// Mask is the part shared by every mask type: a binary grid and the settings
// it was built with. A mask built from no data is empty and has no shape.
type Mask struct {
	kind     Type
	mask     *field.Binary
	settings Settings
}

// policy is what a mask variant contributes to the shared construction path.
type policy interface {
	// defaults adjusts the settings before caller options are applied.
	defaults(s *Settings)
	// dependencies names the masks classify can reuse when the caller
	// supplies them.
	dependencies() []Type
	// classify computes the mask from the converted input.
	classify(f *field.Field, o *options) (*field.Binary, error)
}

// build runs the steps every constructor shares: option handling, the empty
// and verbatim pathways, collaborator resolution and classification.
func build(kind Type, p policy, data any, opts []Option) (Mask, error) {
	o := newOptions()
	p.defaults(&o.Settings)
	for _, opt := range opts {
		opt(o)
	}
	m := Mask{kind: kind, settings: o.Settings}

	if field.IsNil(data) {
		if o.AllowEmpty {
			return m, nil
		}
		return m, fmt.Errorf("%w: expected 1 input, got 0", field.ErrValue)
	}

	start := time.Now()
	if o.IsMask {
		b, err := field.BinaryFromValue(data)
		if err != nil {
			return m, fmt.Errorf("%s mask: %w", kind, err)
		}
		m.mask = b
		return m, nil
	}

	f, err := field.FromValue(data)
	if err != nil {
		return m, fmt.Errorf("%s mask: %w", kind, err)
	}

	o.given = map[Type]*field.Binary{}
	for _, dep := range p.dependencies() {
		c := o.collaborators[dep]
		if b, ok := c.Resolve(f.Shape()); ok {
			o.given[dep] = b
		} else if c.Kind() != Unset {
			log.Debugw("collaborator unusable, recomputing",
				"mask", kind,
				"collaborator", dep,
				"given", c.Kind(),
				"shape", f.Shape(),
			)
		}
	}

	b, err := p.classify(f, o)
	if err != nil {
		return m, fmt.Errorf("%s mask: %w", kind, err)
	}
	m.mask = b

	log.Debugw("mask computed",
		"mask", kind,
		"shape", b.Shape(),
		"true_cells", b.Count(),
		"elapsed", time.Since(start),
	)
	return m, nil
}

func (m *Mask) Type() Type { return m.kind }

// Mask returns a copy of the binary grid, or nil for an empty mask.
func (m *Mask) Mask() *field.Binary {
	if m.mask == nil {
		return nil
	}
	return m.mask.Clone()
}

// BinaryMask returns the grid itself; callers must not modify it.
func (m *Mask) BinaryMask() *field.Binary { return m.mask }

// Shape reports the grid shape; ok is false for an empty mask.
func (m *Mask) Shape() (shape field.Shape, ok bool) {
	if m.mask == nil {
		return field.Shape{}, false
	}
	return m.mask.Shape(), true
}

// Empty reports whether the mask was built without data.
func (m *Mask) Empty() bool { return m.mask == nil }

// IntegerMask returns the grid as row-major 0/1 values.
func (m *Mask) IntegerMask() []int {
	if m.mask == nil {
		return nil
	}
	return m.mask.Ints()
}

// Settings returns the thresholds and flags the mask was built with.
func (m *Mask) Settings() Settings { return m.settings }

// Equal compares the mask with another mask or raw grid, cell by cell.
// Two empty masks are equal.
func (m *Mask) Equal(v any) bool {
	if m.mask == nil {
		if field.IsNil(v) {
			return true
		}
		if mk, ok := v.(field.Masker); ok {
			return mk.BinaryMask() == nil
		}
		return false
	}
	o, err := field.BinaryFromValue(v)
	if err != nil {
		return false
	}
	return m.mask.Equal(o)
}

// Trim clears a strip length cells wide along the given edges of every time
// slice, or along the top edge when none are given.
func (m *Mask) Trim(length int, edges ...field.Edge) {
	if m.mask == nil || length <= 0 {
		return
	}
	if len(edges) == 0 {
		edges = []field.Edge{field.Top}
	}
	for _, e := range edges {
		m.mask.Fill(e, length, false)
	}
}

func (m *Mask) String() string {
	if m.mask == nil {
		return fmt.Sprintf("%s mask (empty)", m.kind)
	}
	return fmt.Sprintf("%s mask %s, %d of %d cells set", m.kind, m.mask.Shape(), m.mask.Count(), m.mask.Shape().Size())
}

type basePolicy struct{}

func (basePolicy) defaults(*Settings) {}

func (basePolicy) dependencies() []Type { return nil }

func (basePolicy) classify(f *field.Field, _ *options) (*field.Binary, error) {
	return field.NewBinary(f.Shape()), nil
}

// New returns an all-false mask of type t with the shape of data. With
// WithIsMask, data is used as the mask instead.
func New(t Type, data any, opts ...Option) (*Mask, error) {
	m, err := build(t, basePolicy{}, data, opts)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FromArray wraps a finished binary grid (non-zero is true) as a mask of type t.
func FromArray(t Type, data any) (*Mask, error) {
	return New(t, data, WithIsMask())
}

// planes runs fn on every time slice of f and stacks the results into one
// binary grid of f's shape.
func planes(f *field.Field, fn func(t int, plane *field.Field) (*field.Binary, error)) (*field.Binary, error) {
	out := field.NewBinary(f.Shape())
	for t := 0; t < f.Shape().T; t++ {
		b, err := fn(t, f.Plane(t))
		if err != nil {
			return nil, err
		}
		copy(out.Plane(t).Data(), b.Data())
	}
	return out, nil
}
