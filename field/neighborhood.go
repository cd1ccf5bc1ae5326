package field

import (
	"fmt"
	"strings"
)

// PaddingMode says what a sample just outside the grid reads as.
type PaddingMode int

const (
	PadZeros     PaddingMode = iota // outside reads as 0
	PadReplicate                    // outside reads as the nearest edge cell
)

// Edge names one side of a plan-view grid. Row 0 is the Top edge.
type Edge int

const (
	Top Edge = iota
	Bottom
	Left
	Right
)

func (e Edge) String() string {
	switch e {
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("Edge(%d)", int(e))
}

// ParseEdge reads "top", "bottom", "left" or "right" (any case).
func ParseEdge(s string) (Edge, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top":
		return Top, nil
	case "bottom":
		return Bottom, nil
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	}
	return Top, fmt.Errorf("%w: unknown edge %q", ErrValue, s)
}

// Connectivity selects a neighbourhood.
type Connectivity int

const (
	Cross  Connectivity = 4 // the four edge-sharing neighbours
	Square Connectivity = 8 // all eight surrounding cells
)

// Kernel returns the 3x3 counting kernel for c, centre excluded.
func (c Connectivity) Kernel() [][]float64 {
	if c == Cross {
		return [][]float64{
			{0, 1, 0},
			{1, 0, 1},
			{0, 1, 0},
		}
	}
	return [][]float64{
		{1, 1, 1},
		{1, 0, 1},
		{1, 1, 1},
	}
}

// Sample reads plane t of f at (i, j), resolving out-of-grid positions with mode.
func (f *Field) Sample(t, i, j int, mode PaddingMode) float64 {
	H := f.shape.R
	W := f.shape.C

	if 0 <= i && i < H && 0 <= j && j < W {
		return f.At(t, i, j)
	}

	switch mode {
	case PadZeros:
		return 0

	case PadReplicate:
		return f.At(t, clamp(i, 0, H-1), clamp(j, 0, W-1))
	}

	return 0
}

// Convolve correlates every time slice of f with a small odd-sized kernel
// and returns a field of the same shape ("same" mode). The kernel is applied
// as given, not flipped; the counting kernels used here are symmetric anyway.
func (f *Field) Convolve(kernel [][]float64, pad PaddingMode) (*Field, error) {
	kh, kw, err := rectSize(kernel)
	if err != nil {
		return nil, err
	}
	if kh == 0 || kw == 0 || kh%2 == 0 || kw%2 == 0 {
		return nil, fmt.Errorf("%w: kernel must have odd, non-zero dimensions", ErrValue)
	}
	offY := kh / 2
	offX := kw / 2

	out := New(f.shape)
	for t := 0; t < f.shape.T; t++ {
		for y := 0; y < f.shape.R; y++ {
			for x := 0; x < f.shape.C; x++ {
				sum := 0.0
				for ky := 0; ky < kh; ky++ {
					for kx := 0; kx < kw; kx++ {
						w := kernel[ky][kx]
						if w == 0 {
							continue
						}
						sum += w * f.Sample(t, y+ky-offY, x+kx-offX, pad)
					}
				}
				out.Set(t, y, x, sum)
			}
		}
	}
	return out, nil
}

// NeighborCount returns, for every cell, how many of its neighbours in b are true.
func (b *Binary) NeighborCount(conn Connectivity, pad PaddingMode) *Field {
	counts, err := b.Float().Convolve(conn.Kernel(), pad)
	if err != nil {
		// the connectivity kernels are always 3x3
		panic(err)
	}
	return counts
}

// -------------------- utility --------------------

func rectSize(m [][]float64) (h, w int, err error) {
	h = len(m)
	if h == 0 {
		return 0, 0, nil
	}
	w = len(m[0])
	for i := 1; i < h; i++ {
		if len(m[i]) != w {
			return 0, 0, fmt.Errorf("%w: ragged matrix", ErrValue)
		}
	}
	return h, w, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
