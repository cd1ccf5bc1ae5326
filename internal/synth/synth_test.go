package synth

import (
	"testing"

	"github.com/bob-anderson-ok/deltaplan/field"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateShape(t *testing.T) {
	elevation, velocity, err := Delta{Rows: 40, Cols: 60, Seed: 1}.Generate()
	require.NoError(t, err)
	require.Len(t, elevation, 40)
	require.Len(t, velocity, 40)
	for i := range elevation {
		assert.Len(t, elevation[i], 60)
		assert.Len(t, velocity[i], 60)
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	d := Delta{Rows: 30, Cols: 30, Seed: 7}
	a, _, err := d.Generate()
	require.NoError(t, err)
	b, _, err := d.Generate()
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, _, err := Delta{Rows: 30, Cols: 30, Seed: 8}.Generate()
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestGenerateLayout(t *testing.T) {
	d := Delta{Rows: 40, Cols: 60, Seed: 3}
	elevation, velocity, err := d.Generate()
	require.NoError(t, err)

	// top corners are land, bottom row is deep water
	assert.Greater(t, elevation[0][0], 0.0)
	assert.Greater(t, elevation[0][59], 0.0)
	for j := 0; j < 60; j++ {
		assert.Less(t, elevation[39][j], 0.0)
	}

	// the feeder channel is shallow, under water and fast
	for i := 0; i < 10; i++ {
		assert.Equal(t, channelDepth, elevation[i][30])
		assert.Equal(t, channelSpeed, velocity[i][30])
		assert.Equal(t, landSpeed, velocity[i][10])
	}
	// the lobe reaches further seaward at the centre than at the flanks
	assert.Greater(t, d.withDefaults().shoreRow(30), d.withDefaults().shoreRow(0))
}

func TestGenerateErrors(t *testing.T) {
	_, _, err := Delta{Rows: 4, Cols: 40}.Generate()
	assert.ErrorIs(t, err, field.ErrValue)

	_, _, err = Delta{Rows: 20, Cols: 20, ShoreFraction: 1.5}.Generate()
	assert.ErrorIs(t, err, field.ErrValue)

	_, _, err = Delta{Rows: 20, Cols: 20, Noise: -1}.Generate()
	assert.ErrorIs(t, err, field.ErrValue)
}
