package cluster

import (
	"fmt"
	"math"
)

// NormalizeL2InPlace scales vec to unit Euclidean length so that
// distances between vectors are scale invariant. It reports false when
// the vector has zero norm and was left unchanged.
func NormalizeL2InPlace(vec []float32) bool {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return false
	}
	inv := 1 / math.Sqrt(sum)
	for i := range vec {
		vec[i] = float32(float64(vec[i]) * inv)
	}
	return true
}

// ManhattanMatrix computes the pairwise L1 distance matrix for a set of
// equal-dimension vectors. The result is symmetric with a zero diagonal.
func ManhattanMatrix(vecs [][]float32) ([][]float64, error) {
	n := len(vecs)
	matrix := make([][]float64, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		if len(vecs[i]) != len(vecs[0]) {
			return nil, fmt.Errorf("vector %d has dimension %d, want %d", i, len(vecs[i]), len(vecs[0]))
		}
		for j := i + 1; j < n; j++ {
			d := manhattan(vecs[i], vecs[j])
			matrix[i][j] = d
			matrix[j][i] = d
		}
	}
	return matrix, nil
}

func manhattan(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += math.Abs(float64(a[i]) - float64(b[i]))
	}
	return sum
}
