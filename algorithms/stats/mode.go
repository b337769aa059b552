package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// ModeResult describes the most frequent value of an integer sequence
type ModeResult struct {
	Value int  `json:"value"`
	Count int  `json:"count"`
	Tied  bool `json:"tied"` // another value reached the same count
}

// RoundHz rounds a frequency to the nearest integer Hz, halves to even.
// Exact float frequencies almost never repeat, so modes are taken over
// these integer buckets.
func RoundHz(frequency float64) int {
	return int(math.RoundToEven(frequency))
}

// Mode returns the most frequent value. Ties go to the value encountered
// first. The second return value is false for an empty sequence.
//
// gonum's stat.Mode breaks ties by the smallest value, which is why the
// counting is done here.
func Mode(values []int) (ModeResult, bool) {
	if len(values) == 0 {
		return ModeResult{}, false
	}

	counts := make(map[int]int, len(values))
	order := make([]int, 0, len(values))
	for _, v := range values {
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}

	best := ModeResult{Value: order[0], Count: counts[order[0]]}
	for _, v := range order[1:] {
		switch c := counts[v]; {
		case c > best.Count:
			best = ModeResult{Value: v, Count: c}
		case c == best.Count:
			best.Tied = true
		}
	}

	return best, true
}

// TopModes extracts up to k distinct values by repeatedly taking the mode
// and removing every occurrence of it. Fewer than k results are returned
// when the sequence runs out of distinct values.
func TopModes(values []int, k int) []ModeResult {
	remaining := make([]int, len(values))
	copy(remaining, values)

	var modes []ModeResult
	for len(modes) < k {
		mode, ok := Mode(remaining)
		if !ok {
			break
		}
		modes = append(modes, mode)

		kept := remaining[:0]
		for _, v := range remaining {
			if v != mode.Value {
				kept = append(kept, v)
			}
		}
		remaining = kept
	}

	return modes
}

// BucketMean averages the frequencies whose rounded value equals bucket.
// frequencies and rounded are parallel slices. It returns NaN when the
// bucket is empty.
func BucketMean(frequencies []float64, rounded []int, bucket int) float64 {
	var members []float64
	for i, r := range rounded {
		if r == bucket {
			members = append(members, frequencies[i])
		}
	}

	if len(members) == 0 {
		return math.NaN()
	}
	return stat.Mean(members, nil)
}
