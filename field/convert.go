package field

import (
	"fmt"
	"reflect"

	"gonum.org/v1/gonum/mat"
)

type cell interface {
	float64 | float32 | int | bool
}

// FromValue converts a loosely typed grid into a Field.
//
// Accepted: [][]float64, [][]float32, [][]int, [][]bool, the same with a
// leading time axis, any gonum mat.Matrix, *Field, *Binary and any Masker.
// Rank-one input and ragged or empty grids fail with ErrValue; anything else
// (text included) fails with ErrType.
func FromValue(v any) (*Field, error) {
	switch x := v.(type) {
	case nil:
		return nil, fmt.Errorf("%w: no data given", ErrValue)
	case *Field:
		if x == nil {
			return nil, fmt.Errorf("%w: nil field", ErrValue)
		}
		return x.Clone(), nil
	case *Binary:
		if x == nil {
			return nil, fmt.Errorf("%w: nil mask", ErrValue)
		}
		return x.Float(), nil
	case Masker:
		if IsNil(x) {
			return nil, fmt.Errorf("%w: nil %T", ErrValue, v)
		}
		m := x.BinaryMask()
		if m == nil {
			return nil, fmt.Errorf("%w: %T holds no mask", ErrValue, v)
		}
		return m.Float(), nil
	case mat.Matrix:
		r, c := x.Dims()
		if r == 0 || c == 0 {
			return nil, fmt.Errorf("%w: empty matrix", ErrValue)
		}
		f := NewPlane(r, c)
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				f.Set(0, i, j, x.At(i, j))
			}
		}
		return f, nil
	case [][]float64:
		return fromPlanes([][][]float64{x}, false, Continuous)
	case [][]float32:
		return fromPlanes([][][]float32{x}, false, Continuous)
	case [][]int:
		return fromPlanes([][][]int{x}, false, Integer)
	case [][]bool:
		return fromPlanes([][][]bool{x}, false, Boolean)
	case [][][]float64:
		return fromPlanes(x, true, Continuous)
	case [][][]float32:
		return fromPlanes(x, true, Continuous)
	case [][][]int:
		return fromPlanes(x, true, Integer)
	case [][][]bool:
		return fromPlanes(x, true, Boolean)
	case []float64, []float32, []int, []bool:
		return nil, fmt.Errorf("%w: a grid needs 2 or 3 dimensions, got 1", ErrValue)
	}
	return nil, fmt.Errorf("%w: cannot build a grid from %T", ErrType, v)
}

// BinaryFromValue converts v into a Binary, treating every non-zero cell as
// true. It accepts whatever FromValue accepts.
func BinaryFromValue(v any) (*Binary, error) {
	switch x := v.(type) {
	case *Binary:
		if x != nil {
			return x.Clone(), nil
		}
	case Masker:
		if IsNil(x) {
			break
		}
		if m := x.BinaryMask(); m != nil {
			return m.Clone(), nil
		}
	}
	f, err := FromValue(v)
	if err != nil {
		return nil, err
	}
	return f.NonZero(), nil
}

// IsNil reports whether v is nil or a nil pointer, map, slice or func held
// in an interface. A typed nil mask satisfies Masker but cannot be read.
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func fromPlanes[T cell](planes [][][]T, stacked bool, kind Kind) (*Field, error) {
	if len(planes) == 0 || len(planes[0]) == 0 || len(planes[0][0]) == 0 {
		return nil, fmt.Errorf("%w: empty grid", ErrValue)
	}
	shape := Shape{T: len(planes), R: len(planes[0]), C: len(planes[0][0]), Stacked: stacked}
	f := &Field{shape: shape, kind: kind, data: make([]float64, 0, shape.Size())}
	for t, plane := range planes {
		if len(plane) != shape.R {
			return nil, fmt.Errorf("%w: time slice %d has %d rows, want %d", ErrValue, t, len(plane), shape.R)
		}
		for i, row := range plane {
			if len(row) != shape.C {
				return nil, fmt.Errorf("%w: ragged matrix at row %d", ErrValue, i)
			}
			for _, v := range row {
				f.data = append(f.data, toFloat(v))
			}
		}
	}
	return f, nil
}

func toFloat[T cell](v T) float64 {
	switch x := any(v).(type) {
	case bool:
		if x {
			return 1
		}
		return 0
	case float64:
		return x
	case float32:
		return float64(x)
	case int:
		return float64(x)
	}
	return 0
}
