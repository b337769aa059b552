package stats

import (
	"sort"

	"gonum.org/v1/gonum/floats"
)

// DistanceFunction is a function type for computing distance between two vectors
type DistanceFunction func(a, b []float64) float64

// EuclideanDistanceFunc calculates the Euclidean distance over the shared
// prefix of a and b. Element order matters.
func EuclideanDistanceFunc(a, b []float64) float64 {
	n := min(len(a), len(b))
	if n == 0 {
		return 0.0
	}
	return floats.Distance(a[:n], b[:n], 2)
}

// SortedEuclideanDistanceFunc sorts copies of both vectors ascending before
// taking the Euclidean distance over the shared prefix, so the result does
// not depend on element order.
func SortedEuclideanDistanceFunc(a, b []float64) float64 {
	return EuclideanDistanceFunc(sortedCopy(a), sortedCopy(b))
}

func sortedCopy(values []float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	sort.Float64s(out)
	return out
}
