package mask

import (
	"fmt"

	"github.com/bob-anderson-ok/deltaplan/field"
)

// Centerline extraction methods.
const (
	MethodSkeletonize = "skeletonize"
	MethodRivamap     = "rivamap"
)

// CenterlineMask thins a channel mask down to one-cell-wide centerlines.
type CenterlineMask struct {
	Mask
}

type centerlinePolicy struct{}

func (centerlinePolicy) defaults(*Settings) {}

func (centerlinePolicy) dependencies() []Type { return nil }

func (centerlinePolicy) classify(f *field.Field, _ *options) (*field.Binary, error) {
	channels := f.NonZero()
	out := field.NewBinary(channels.Shape())
	for t := 0; t < channels.Shape().T; t++ {
		copy(out.Plane(t).Data(), thin(channels.Plane(t)).Data())
	}
	return out, nil
}

// NewCenterlineMask skeletonizes a channel mask, given as a ChannelMask or a
// grid where non-zero cells are channel. The rivamap ridge-detection method
// is not implemented.
func NewCenterlineMask(channel any, opts ...Option) (*CenterlineMask, error) {
	o := newOptions()
	for _, opt := range opts {
		opt(o)
	}
	switch o.Method {
	case MethodSkeletonize:
	case MethodRivamap:
		return nil, fmt.Errorf("%w: centerline method %q", field.ErrNotImplemented, o.Method)
	default:
		return nil, fmt.Errorf("%w: unknown centerline method %q", field.ErrValue, o.Method)
	}

	m, err := build(Centerline, centerlinePolicy{}, channel, opts)
	if err != nil {
		return nil, err
	}
	return &CenterlineMask{Mask: m}, nil
}

// CenterlineMaskFromFields computes the channel mask from velocity and
// elevation first.
func CenterlineMaskFromFields(velocity, elevation any, opts ...Option) (*CenterlineMask, error) {
	channel, err := NewChannelMask(velocity, elevation, opts...)
	if err != nil {
		return nil, err
	}
	return NewCenterlineMask(channel, opts...)
}

// thin applies Zhang-Suen thinning to a single plane until nothing changes.
// Cells outside the grid count as background.
func thin(b *field.Binary) *field.Binary {
	s := b.Shape()
	img := b.Clone()
	at := func(i, j int) int {
		if i < 0 || i >= s.R || j < 0 || j >= s.C || !img.At(0, i, j) {
			return 0
		}
		return 1
	}

	// isolatedBlock reports whether (i, j) is the top-left corner of a 2x2
	// block with nothing around it. Zhang-Suen would erase such a block
	// entirely; its top-left cell is kept instead.
	isolatedBlock := func(i, j int) bool {
		for a := -1; a <= 2; a++ {
			for b := -1; b <= 2; b++ {
				inBlock := (a == 0 || a == 1) && (b == 0 || b == 1)
				if !inBlock && at(i+a, j+b) == 1 {
					return false
				}
			}
		}
		return true
	}

	var remove [][2]int
	for {
		changed := false
		for step := 0; step < 2; step++ {
			remove = remove[:0]
			for i := 0; i < s.R; i++ {
				for j := 0; j < s.C; j++ {
					if !img.At(0, i, j) {
						continue
					}
					// P2..P9, clockwise from north
					p := [8]int{
						at(i-1, j), at(i-1, j+1), at(i, j+1), at(i+1, j+1),
						at(i+1, j), at(i+1, j-1), at(i, j-1), at(i-1, j-1),
					}
					n, transitions := 0, 0
					for k := 0; k < 8; k++ {
						n += p[k]
						if p[k] == 0 && p[(k+1)%8] == 1 {
							transitions++
						}
					}
					if n < 2 || n > 6 || transitions != 1 {
						continue
					}
					if n == 3 && p[2] == 1 && p[3] == 1 && p[4] == 1 && isolatedBlock(i, j) {
						continue
					}
					if step == 0 {
						if p[0]*p[2]*p[4] != 0 || p[2]*p[4]*p[6] != 0 {
							continue
						}
					} else {
						if p[0]*p[2]*p[6] != 0 || p[0]*p[4]*p[6] != 0 {
							continue
						}
					}
					remove = append(remove, [2]int{i, j})
				}
			}
			for _, c := range remove {
				img.Set(0, c[0], c[1], false)
			}
			if len(remove) > 0 {
				changed = true
			}
		}
		if !changed {
			return img
		}
	}
}
