// Package synth builds small synthetic deltas: an elevation grid with a lobate
// land body cut by a single feeder channel, and a matching velocity grid. The
// deltaplan program uses it when no input image is given, and tests use it as
// a realistic fixture.
package synth

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/bob-anderson-ok/deltaplan/field"
)

// Delta describes a synthetic delta. Zero values are replaced by defaults
// scaled to the grid size.
type Delta struct {
	Rows, Cols int
	Seed       int64

	ShoreFraction float64 // mean shoreline row as a fraction of Rows
	Lobe          float64 // extra seaward reach of the shoreline at the centre, in rows
	ChannelWidth  int
	Noise         float64 // standard deviation of the land surface roughness
}

const (
	minSize        = 8
	landBase       = 0.2
	channelDepth   = -0.3
	channelSpeed   = 1.0
	landSpeed      = 0.05
	plumeSpeed     = 0.6
	defaultShore   = 0.4
	defaultNoise   = 0.05
	offshoreSlope  = 4.0
	shelfBreakDrop = 0.2
)

func (d Delta) withDefaults() Delta {
	if d.ShoreFraction == 0 {
		d.ShoreFraction = defaultShore
	}
	if d.Lobe == 0 {
		d.Lobe = 0.15 * float64(d.Rows)
	}
	if d.ChannelWidth == 0 {
		d.ChannelWidth = max(2, d.Cols/20)
	}
	if d.Noise == 0 {
		d.Noise = defaultNoise
	}
	return d
}

// shoreRow is the first under-water row in column j.
func (d Delta) shoreRow(j int) float64 {
	cc := float64(d.Cols-1) / 2
	u := (float64(j) - cc) / cc
	return d.ShoreFraction*float64(d.Rows) + d.Lobe*(1-u*u)
}

func (d Delta) inChannel(j int) bool {
	left := (d.Cols - d.ChannelWidth) / 2
	return j >= left && j < left+d.ChannelWidth
}

// Generate returns elevation and velocity grids indexed [row][col]. Row 0 is
// the landward wall; the sea opens to the left, bottom and right edges.
func (d Delta) Generate() (elevation, velocity [][]float64, err error) {
	if d.Rows < minSize || d.Cols < minSize {
		return nil, nil, fmt.Errorf("synthetic delta must be at least %d x %d, got %d x %d: %w",
			minSize, minSize, d.Rows, d.Cols, field.ErrValue)
	}
	if d.ShoreFraction < 0 || d.ShoreFraction >= 1 || d.Noise < 0 || d.ChannelWidth < 0 {
		return nil, nil, fmt.Errorf("invalid synthetic delta parameters %+v: %w", d, field.ErrValue)
	}
	d = d.withDefaults()

	rng := rand.New(rand.NewSource(d.Seed))

	mouthRow := d.shoreRow(d.Cols / 2)
	mouthCol := float64(d.Cols-1) / 2

	elevation = make([][]float64, d.Rows)
	velocity = make([][]float64, d.Rows)
	for i := 0; i < d.Rows; i++ {
		elevation[i] = make([]float64, d.Cols)
		velocity[i] = make([]float64, d.Cols)
		for j := 0; j < d.Cols; j++ {
			shore := d.shoreRow(j)
			y := float64(i)
			switch {
			case y < shore && d.inChannel(j):
				elevation[i][j] = channelDepth
				velocity[i][j] = channelSpeed
			case y < shore:
				// the surface rises gently towards the landward wall
				h := landBase + (shore-y)/shore + d.Noise*rng.NormFloat64()
				elevation[i][j] = math.Max(h, landBase/2)
				velocity[i][j] = landSpeed
			default:
				elevation[i][j] = -shelfBreakDrop - offshoreSlope*(y-shore)/float64(d.Rows)
				dist := math.Hypot(y-mouthRow, float64(j)-mouthCol)
				velocity[i][j] = plumeSpeed * math.Exp(-dist/(float64(d.Rows)/4))
			}
		}
	}
	return elevation, velocity, nil
}
