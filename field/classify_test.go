package field

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifierThreshold(t *testing.T) {
	f, err := FromValue([][]float64{{-1, 0, 0.5}, {1, 2, -0.25}})
	require.NoError(t, err)

	below, err := Classifier{Threshold: Threshold(0)}.Below(f)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1, 0, 0, 0, 1}, below.Ints())

	below, err = Classifier{Threshold: Threshold(0), Offset: 0.5}.Below(f)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1, 1, 0, 0, 1}, below.Ints())
}

func TestClassifierIndicators(t *testing.T) {
	ints, err := FromValue([][]int{{0, 1}, {2, 0}})
	require.NoError(t, err)
	bools, err := FromValue([][]bool{{false, true}, {true, false}})
	require.NoError(t, err)
	floats, err := FromValue([][]float64{{0, 1}, {1, 0}})
	require.NoError(t, err)

	b, err := Classifier{Binary: true}.Below(ints)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 1, 0}, b.Ints())

	b, err = Classifier{Binary: true}.Below(bools)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 1, 0}, b.Ints())

	b, err = Classifier{}.Below(bools)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 1, 0}, b.Ints())

	_, err = Classifier{Binary: true}.Below(floats)
	assert.ErrorIs(t, err, ErrType)

	_, err = Classifier{}.Below(floats)
	assert.ErrorIs(t, err, ErrType)

	_, err = Classifier{}.Below(ints)
	assert.ErrorIs(t, err, ErrType)

	_, err = Classifier{}.Below(nil)
	assert.ErrorIs(t, err, ErrValue)
}
