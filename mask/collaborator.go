package mask

import "github.com/bob-anderson-ok/deltaplan/field"

// CollaboratorKind says what the caller handed over.
type CollaboratorKind int

const (
	Unset CollaboratorKind = iota
	Raw                    // a plain grid, taken as already final
	Typed                  // a mask object
)

func (k CollaboratorKind) String() string {
	switch k {
	case Raw:
		return "raw"
	case Typed:
		return "typed"
	}
	return "unset"
}

// Collaborator is an auxiliary mask offered to a constructor. It is only
// read, once, during construction. A collaborator that cannot be turned into
// a binary grid of the right shape is ignored and the mask it stands for is
// recomputed; this is never an error.
type Collaborator struct {
	kind  CollaboratorKind
	raw   any
	typed field.Masker
}

// NewCollaborator sorts v into its variant: nil (typed nil pointers
// included) is Unset, anything with a binary mask is Typed, everything else
// is Raw.
func NewCollaborator(v any) Collaborator {
	if field.IsNil(v) {
		return Collaborator{}
	}
	if m, ok := v.(field.Masker); ok {
		return Collaborator{kind: Typed, typed: m}
	}
	return Collaborator{kind: Raw, raw: v}
}

func (c Collaborator) Kind() CollaboratorKind { return c.kind }

// Resolve extracts a private copy of the collaborator's grid. ok is false
// when it is unset, unreadable, or does not cover shape.
func (c Collaborator) Resolve(shape field.Shape) (b *field.Binary, ok bool) {
	switch c.kind {
	case Typed:
		m := c.typed.BinaryMask()
		if m == nil {
			return nil, false
		}
		b = m.Clone()
	case Raw:
		var err error
		if b, err = field.BinaryFromValue(c.raw); err != nil {
			return nil, false
		}
	default:
		return nil, false
	}
	if !b.Shape().Matches(shape) {
		return nil, false
	}
	return b, true
}
