package util

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SiegfriedLudwig/is-constructs/matrix"
)

func TestVectorSum(t *testing.T) {
	assert.Equal(t, float64(6), VectorSum([]float64{1, 2, 3}))
	assert.Equal(t, float64(0), VectorSum(nil))
}

func TestNorm2(t *testing.T) {
	assert.Equal(t, float64(5), Norm2([]float64{3, 4}))
	assert.Equal(t, float64(0), Norm2([]float64{0, 0}))
}

func TestNormalizeRows(t *testing.T) {
	m := matrix.NewDense(2, 2)
	m.Set(0, 0, 3)
	m.Set(0, 1, 4)

	NormalizeRows(m)

	assert.InDelta(t, 0.6, m.Get(0, 0), 1e-9)
	assert.InDelta(t, 0.8, m.Get(0, 1), 1e-9)
	// zero row stays zero
	assert.Equal(t, float64(0), m.Get(1, 0))
	assert.Equal(t, float64(0), m.Get(1, 1))
}

func TestNanToZero(t *testing.T) {
	m := matrix.NewDense(1, 3)
	m.Set(0, 0, math.NaN())
	m.Set(0, 1, math.Inf(1))
	m.Set(0, 2, 1.5)

	NanToZero(m)

	assert.Equal(t, float64(0), m.Get(0, 0))
	assert.Equal(t, float64(0), m.Get(0, 1))
	assert.Equal(t, 1.5, m.Get(0, 2))
}

func TestTopKMean(t *testing.T) {
	avg, used := TopKMean([]float64{0.1, 0.9, 0.5, 0.7}, 2)
	assert.InDelta(t, 0.8, avg, 1e-9)
	assert.Equal(t, 2, used)
}

func TestTopKMeanFewerThanK(t *testing.T) {
	avg, used := TopKMean([]float64{0.3}, 2)
	assert.Equal(t, 0.3, avg)
	assert.Equal(t, 1, used)
}

func TestTopKMeanEmpty(t *testing.T) {
	avg, used := TopKMean(nil, 2)
	assert.Equal(t, float64(0), avg)
	assert.Equal(t, 0, used)
}
