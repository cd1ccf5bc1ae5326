package plan

import (
	"math"
	"testing"

	"github.com/bob-anderson-ok/deltaplan/field"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// simpleShore is a 10 x 10 shoreline that dips down one row in the middle.
func simpleShore() [][]int {
	g := make([][]int, 10)
	for i := range g {
		g[i] = make([]int, 10)
	}
	for _, p := range [][2]int{{3, 0}, {3, 1}, {4, 2}, {4, 3}, {4, 4}, {4, 5}, {4, 6}, {3, 7}, {3, 8}, {3, 9}} {
		g[p[0]][p[1]] = 1
	}
	return g
}

// simpleLand is the 45-cell land mask behind simpleShore.
func simpleLand() [][]int {
	g := make([][]int, 10)
	for i := range g {
		g[i] = make([]int, 10)
		for j := range g[i] {
			if i < 4 || (i == 4 && j >= 2 && j <= 6) {
				g[i][j] = 1
			}
		}
	}
	return g
}

func singlePixel(row, col int) [][]bool {
	g := make([][]bool, 10)
	for i := range g {
		g[i] = make([]bool, 10)
	}
	g[row][col] = true
	return g
}

func TestShorelineLength(t *testing.T) {
	length, err := ShorelineLength(simpleShore())
	require.NoError(t, err)
	assert.InDelta(t, 7+2*math.Sqrt2, length, 1e-9)

	length, line, err := ShorelineLine(simpleShore())
	require.NoError(t, err)
	assert.InDelta(t, 7+2*math.Sqrt2, length, 1e-9)
	require.Len(t, line, 10)
	assert.Equal(t, [2]float64{0, 3}, line[0])
	assert.Equal(t, [2]float64{2, 4}, line[2])
	assert.Equal(t, [2]float64{9, 3}, line[9])
}

func TestShorelineLengthOrigin(t *testing.T) {
	// starting mid-shore, the line runs west first and then jumps back east
	length, line, err := ShorelineLine(simpleShore(), WithOrigin(9, 9))
	require.NoError(t, err)
	assert.InDelta(t, 14+math.Sqrt2, length, 1e-9)
	assert.Equal(t, [2]float64{6, 4}, line[0])
	assert.Equal(t, [2]float64{7, 3}, line[7])
}

func TestShorelineLengthAcceptsMasks(t *testing.T) {
	b, err := field.BinaryFromValue(simpleShore())
	require.NoError(t, err)

	fromMask, err := ShorelineLength(b)
	require.NoError(t, err)
	fromArray, err := ShorelineLength(simpleShore())
	require.NoError(t, err)
	assert.Equal(t, fromArray, fromMask)

	stacked, err := ShorelineLength([][][]int{simpleShore()})
	require.NoError(t, err)
	assert.Equal(t, fromArray, stacked)
}

func TestShorelineRoughness(t *testing.T) {
	rough, err := ShorelineRoughness(simpleShore(), simpleLand())
	require.NoError(t, err)
	assert.InDelta(t, (7+2*math.Sqrt2)/math.Sqrt(45), rough, 1e-9)

	withLine, err := ShorelineRoughness(simpleShore(), simpleLand(), WithReturnLine(true))
	require.NoError(t, err)
	assert.Equal(t, rough, withLine)
}

func TestShorelineDistance(t *testing.T) {
	mean, std, err := ShorelineDistance(singlePixel(7, 5))
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(74), mean, 1e-12)
	assert.Zero(t, std)

	mean, std, err = ShorelineDistance(singlePixel(7, 5), WithOrigin(5, 0))
	require.NoError(t, err)
	assert.InDelta(t, 7.0, mean, 1e-12)
	assert.Zero(t, std)
}

func TestShorelineDistances(t *testing.T) {
	g := singlePixel(0, 3)
	g[0][5] = true
	mean, std, dists, err := ShorelineDistances(g)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 5}, dists)
	assert.InDelta(t, 4.0, mean, 1e-12)
	assert.InDelta(t, 1.0, std, 1e-12, "population standard deviation")
}

func TestShorelineNoPixels(t *testing.T) {
	empty := make([][]bool, 5)
	for i := range empty {
		empty[i] = make([]bool, 5)
	}

	_, err := ShorelineLength(empty)
	assert.ErrorIs(t, err, ErrNoShoreline)
	assert.ErrorIs(t, err, field.ErrValue)

	_, _, err = ShorelineDistance(empty)
	assert.ErrorIs(t, err, ErrNoShoreline)

	_, err = ShorelineRoughness(empty, simpleLand())
	assert.ErrorIs(t, err, ErrNoShoreline)
	assert.NotErrorIs(t, err, ErrNoLand)

	emptyLand := make([][]int, 10)
	for i := range emptyLand {
		emptyLand[i] = make([]int, 10)
	}
	_, err = ShorelineRoughness(simpleShore(), emptyLand)
	assert.ErrorIs(t, err, ErrNoLand)
	assert.NotErrorIs(t, err, ErrNoShoreline)
}

func TestShorelineBadInput(t *testing.T) {
	_, err := ShorelineLength("shoreline")
	assert.ErrorIs(t, err, field.ErrType)

	_, err = ShorelineLength([][][]int{simpleShore(), simpleShore()})
	assert.ErrorIs(t, err, field.ErrValue)
}
