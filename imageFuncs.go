package main

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"sort"

	"github.com/bob-anderson-ok/deltaplan/field"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// LoadGray16Grid reads a grayscale png and maps each pixel to a physical value:
// v = Y16 * scale + offset. Images in other color models are converted to
// 16-bit gray first.
func LoadGray16Grid(filename string, scale, offset float64) (grid [][]float64, err error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", filename, err)
	}

	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("image %q is empty", filename)
	}
	grid = make([][]float64, b.Dy())
	for y := 0; y < b.Dy(); y++ {
		grid[y] = make([]float64, b.Dx())
		for x := 0; x < b.Dx(); x++ {
			g := color.Gray16Model.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray16)
			grid[y][x] = float64(g.Y)*scale + offset
		}
	}
	return grid, nil
}

// MatrixToGray16Data -------------------- Data PNG (Gray16, fixed physical scaling) --------------------
// Mapping: Y16 = round(v * scale), clamped to [0, 65535]
func MatrixToGray16Data(m mat.Matrix, scale float64) (*image.Gray16, error) {
	h, w := m.Dims()
	if h == 0 || w == 0 {
		return nil, errors.New("empty matrix")
	}
	if scale <= 0 {
		return nil, errors.New("scale must be > 0")
	}

	img := image.NewGray16(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := m.At(y, x)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				img.SetGray16(x, y, color.Gray16{})
				continue
			}
			u := math.Round(v * scale)
			if u < 0 {
				u = 0
			} else if u > 65535 {
				u = 65535
			}
			img.SetGray16(x, y, color.Gray16{Y: uint16(u)})
		}
	}
	return img, nil
}

// MatrixToGrayViewPercentile -------------------- View PNG (Gray8, auto-stretch) --------------------
// Percentile stretch: map pLow..pHigh to 0..255 and clamp.
func MatrixToGrayViewPercentile(m mat.Matrix, pLow, pHigh float64) (*image.Gray, error) {
	h, w := m.Dims()
	if h == 0 || w == 0 {
		return nil, errors.New("empty matrix")
	}
	if !(0 <= pLow && pLow < pHigh && pHigh <= 100) {
		return nil, errors.New("percentiles must satisfy 0 <= pLow < pHigh <= 100")
	}

	// Collect finite values for percentile computation
	vals := make([]float64, 0, h*w)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := m.At(y, x)
			if !math.IsNaN(v) && !math.IsInf(v, 0) {
				vals = append(vals, v)
			}
		}
	}
	if len(vals) == 0 {
		return nil, errors.New("matrix has no finite values")
	}
	sort.Float64s(vals)

	lo := stat.Quantile(pLow/100, stat.LinInterp, vals, nil)
	hi := stat.Quantile(pHigh/100, stat.LinInterp, vals, nil)
	if hi == lo {
		hi = lo + 1 // avoid divide-by-zero; image becomes mostly constant
	}

	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		row := y * img.Stride
		for x := 0; x < w; x++ {
			v := m.At(y, x)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				img.Pix[row+x] = 0
				continue
			}
			t := (v - lo) / (hi - lo) // normalize
			if t < 0 {
				t = 0
			} else if t > 1 {
				t = 1
			}
			img.Pix[row+x] = uint8(math.Round(t * 255.0))
		}
	}
	return img, nil
}

// BinaryToGray draws one plane of a mask: set cells white, the rest black.
func BinaryToGray(b *field.Binary, t int) *image.Gray {
	s := b.Shape()
	img := image.NewGray(image.Rect(0, 0, s.C, s.R))
	for y := 0; y < s.R; y++ {
		row := y * img.Stride
		for x := 0; x < s.C; x++ {
			if b.At(t, y, x) {
				img.Pix[row+x] = 255
			}
		}
	}
	return img
}

func SaveGrayPNG(filename string, img *image.Gray) (err error) {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return png.Encode(f, img)
}

func SaveGray16PNG(filename string, img *image.Gray16) (err error) {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return png.Encode(f, img)
}
