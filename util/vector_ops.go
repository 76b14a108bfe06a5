package util

import (
	"math"
	"sort"

	"github.com/SiegfriedLudwig/is-constructs/matrix"
)

// sum the vector
func VectorSum(data []float64) float64 {
	sum := float64(0)
	for _, d := range data {
		sum += d
	}
	return sum
}

// L2 norm of the vector
func Norm2(data []float64) float64 {
	ss := float64(0)
	for _, d := range data {
		ss += d * d
	}
	return math.Sqrt(ss)
}

// NormalizeRows scales every row of m to unit L2 norm in place.
// All-zero rows are left untouched.
func NormalizeRows(m *matrix.Dense) {
	r, _ := m.Shape()
	for i := 0; i < r; i += 1 {
		row := m.RowView(i)
		norm := Norm2(row)
		if norm == 0 {
			continue
		}
		for j := range row {
			row[j] /= norm
		}
	}
}

// NanToZero replaces NaN and Inf entries of m with zero in place.
func NanToZero(m *matrix.Dense) {
	data := m.RawData()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			data[i] = 0
		}
	}
}

// TopKMean returns the mean of the k largest values. When fewer than k
// values are available it falls back to the single largest value, or zero
// for an empty input. The second return reports how many values entered
// the mean.
func TopKMean(vals []float64, k int) (float64, int) {
	if len(vals) == 0 {
		return 0, 0
	}
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)
	if len(sorted) < k {
		return sorted[len(sorted)-1], 1
	}
	top := sorted[len(sorted)-k:]
	return VectorSum(top) / float64(k), k
}
