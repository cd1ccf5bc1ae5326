// Package field provides the grid value types shared by the planform and mask
// packages: continuous fields (elevation, velocity, opening angles) and binary
// masks, either as a single plan-view plane or stacked over time.
//
// Grids are stored row major. A stacked grid is indexed (t, row, col); a single
// plane is a stack of one. Nothing in this package mutates a grid it was handed:
// constructors copy their input so every mask and planform owns its own data.
package field

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Kind records what sort of values a Field was built from. The classifier uses
// it to decide whether a field may be read as an ocean indicator directly.
type Kind int

const (
	Continuous Kind = iota
	Integer
	Boolean
)

func (k Kind) String() string {
	switch k {
	case Continuous:
		return "continuous"
	case Integer:
		return "integer"
	case Boolean:
		return "boolean"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Shape is the extent of a grid. T is 1 for a single plane.
type Shape struct {
	T, R, C int
	Stacked bool // the input carried an explicit time axis
}

// Size is the total number of cells.
func (s Shape) Size() int { return s.T * s.R * s.C }

// PlaneSize is the number of cells in one time slice.
func (s Shape) PlaneSize() int { return s.R * s.C }

// Matches reports whether two grids cover the same cells. A plane matches a
// stack of one.
func (s Shape) Matches(o Shape) bool {
	return s.T == o.T && s.R == o.R && s.C == o.C
}

func (s Shape) String() string {
	if s.Stacked {
		return fmt.Sprintf("(%d, %d, %d)", s.T, s.R, s.C)
	}
	return fmt.Sprintf("(%d, %d)", s.R, s.C)
}

// Masker is implemented by anything that can hand out a binary mask: the
// typed masks and Binary itself.
type Masker interface {
	BinaryMask() *Binary
}

// Field is a continuous grid.
type Field struct {
	shape Shape
	kind  Kind
	data  []float64
}

// New returns a zero-valued continuous field of the given shape.
func New(shape Shape) *Field {
	return &Field{shape: shape, kind: Continuous, data: make([]float64, shape.Size())}
}

// NewPlane returns a zero-valued single-plane field.
func NewPlane(rows, cols int) *Field {
	return New(Shape{T: 1, R: rows, C: cols})
}

func (f *Field) Shape() Shape { return f.shape }

func (f *Field) Kind() Kind { return f.kind }

// Data exposes the row-major backing slice.
func (f *Field) Data() []float64 { return f.data }

func (f *Field) index(t, i, j int) int {
	return (t*f.shape.R+i)*f.shape.C + j
}

func (f *Field) At(t, i, j int) float64 { return f.data[f.index(t, i, j)] }

func (f *Field) Set(t, i, j int, v float64) { f.data[f.index(t, i, j)] = v }

// Plane returns time slice t as a single-plane field sharing storage with f.
func (f *Field) Plane(t int) *Field {
	n := f.shape.PlaneSize()
	return &Field{
		shape: Shape{T: 1, R: f.shape.R, C: f.shape.C},
		kind:  f.kind,
		data:  f.data[t*n : (t+1)*n],
	}
}

// Dense returns time slice t as a gonum matrix sharing storage with f.
func (f *Field) Dense(t int) *mat.Dense {
	return mat.NewDense(f.shape.R, f.shape.C, f.Plane(t).data)
}

// Rows copies time slice t into a freshly allocated [][]float64.
func (f *Field) Rows(t int) [][]float64 {
	out := make([][]float64, f.shape.R)
	for i := range out {
		out[i] = make([]float64, f.shape.C)
		copy(out[i], f.data[f.index(t, i, 0):f.index(t, i, 0)+f.shape.C])
	}
	return out
}

func (f *Field) Clone() *Field {
	data := make([]float64, len(f.data))
	copy(data, f.data)
	return &Field{shape: f.shape, kind: f.kind, data: data}
}

// NonZero marks every cell that is not exactly zero.
func (f *Field) NonZero() *Binary {
	b := NewBinary(f.shape)
	for k, v := range f.data {
		b.data[k] = v != 0
	}
	return b
}

// Binary is a boolean grid. Values are always strictly true or false.
type Binary struct {
	shape Shape
	data  []bool
}

// NewBinary returns an all-false grid of the given shape.
func NewBinary(shape Shape) *Binary {
	return &Binary{shape: shape, data: make([]bool, shape.Size())}
}

// Full returns a grid of the given shape with every cell set to v.
func Full(shape Shape, v bool) *Binary {
	b := NewBinary(shape)
	if v {
		for k := range b.data {
			b.data[k] = true
		}
	}
	return b
}

func (b *Binary) Shape() Shape { return b.shape }

// Data exposes the row-major backing slice.
func (b *Binary) Data() []bool { return b.data }

// BinaryMask lets a bare Binary stand in wherever a Masker is accepted.
func (b *Binary) BinaryMask() *Binary { return b }

func (b *Binary) index(t, i, j int) int {
	return (t*b.shape.R+i)*b.shape.C + j
}

func (b *Binary) At(t, i, j int) bool { return b.data[b.index(t, i, j)] }

func (b *Binary) Set(t, i, j int, v bool) { b.data[b.index(t, i, j)] = v }

// Plane returns time slice t as a single-plane grid sharing storage with b.
func (b *Binary) Plane(t int) *Binary {
	n := b.shape.PlaneSize()
	return &Binary{
		shape: Shape{T: 1, R: b.shape.R, C: b.shape.C},
		data:  b.data[t*n : (t+1)*n],
	}
}

// Rows copies time slice t into a freshly allocated [][]bool.
func (b *Binary) Rows(t int) [][]bool {
	out := make([][]bool, b.shape.R)
	for i := range out {
		out[i] = make([]bool, b.shape.C)
		copy(out[i], b.data[b.index(t, i, 0):b.index(t, i, 0)+b.shape.C])
	}
	return out
}

// Count is the number of true cells.
func (b *Binary) Count() int {
	n := 0
	for _, v := range b.data {
		if v {
			n++
		}
	}
	return n
}

func (b *Binary) Clone() *Binary {
	data := make([]bool, len(b.data))
	copy(data, b.data)
	return &Binary{shape: b.shape, data: data}
}

// Equal reports whether o covers the same cells with the same values.
func (b *Binary) Equal(o *Binary) bool {
	if o == nil || !b.shape.Matches(o.shape) {
		return false
	}
	for k, v := range b.data {
		if o.data[k] != v {
			return false
		}
	}
	return true
}

// Not returns the complement of b.
func (b *Binary) Not() *Binary {
	out := NewBinary(b.shape)
	for k, v := range b.data {
		out.data[k] = !v
	}
	return out
}

// And returns the cell-wise conjunction of b and o, which must match in shape.
func (b *Binary) And(o *Binary) *Binary {
	out := NewBinary(b.shape)
	for k, v := range b.data {
		out.data[k] = v && o.data[k]
	}
	return out
}

// Ints returns the mask as 0/1 integers.
func (b *Binary) Ints() []int {
	out := make([]int, len(b.data))
	for k, v := range b.data {
		if v {
			out[k] = 1
		}
	}
	return out
}

// Float returns the mask as a 0/1 field of boolean kind.
func (b *Binary) Float() *Field {
	f := &Field{shape: b.shape, kind: Boolean, data: make([]float64, len(b.data))}
	for k, v := range b.data {
		if v {
			f.data[k] = 1
		}
	}
	return f
}

// Fill sets a strip of the given width along one edge of every time slice.
func (b *Binary) Fill(edge Edge, length int, v bool) {
	s := b.shape
	for t := 0; t < s.T; t++ {
		for i := 0; i < s.R; i++ {
			for j := 0; j < s.C; j++ {
				var inside bool
				switch edge {
				case Top:
					inside = i < length
				case Bottom:
					inside = i >= s.R-length
				case Left:
					inside = j < length
				case Right:
					inside = j >= s.C-length
				}
				if inside {
					b.Set(t, i, j, v)
				}
			}
		}
	}
}
