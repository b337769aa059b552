package pitch

import (
	"fmt"

	"github.com/RyanBlaney/sonido-nota/algorithms/stats"
)

// Observations are the accepted per-chunk frequency estimates of one run
type Observations struct {
	Frequencies []float64 `json:"frequencies"` // Hz, in chunk order
	Rounded     []int     `json:"rounded"`     // Frequencies rounded to whole Hz

	ChunksAnalyzed   int `json:"chunks_analyzed"`
	ChunksRejected   int `json:"chunks_rejected"`   // no peak, or peak out of range
	DiscardedSamples int `json:"discarded_samples"` // trailing partial chunk
}

// Estimate is the dominant frequency of a recording
type Estimate struct {
	Frequency float64 `json:"frequency"` // mean of the estimates in the winning bucket
	Bucket    int     `json:"bucket"`    // winning whole-Hz bucket
	Count     int     `json:"count"`     // chunks that landed in the bucket
	Ambiguous bool    `json:"ambiguous"` // another bucket was just as popular
}

func (o *Observations) add(frequency float64) {
	o.Frequencies = append(o.Frequencies, frequency)
	o.Rounded = append(o.Rounded, stats.RoundHz(frequency))
}

// Dominant takes the most popular whole-Hz bucket and averages the exact
// estimates inside it. Ties go to the bucket seen first.
func (o *Observations) Dominant() (*Estimate, error) {
	mode, ok := stats.Mode(o.Rounded)
	if !ok {
		return nil, fmt.Errorf("%w: no accepted chunk estimates", ErrNoDominantFrequency)
	}

	return &Estimate{
		Frequency: stats.BucketMean(o.Frequencies, o.Rounded, mode.Value),
		Bucket:    mode.Value,
		Count:     mode.Count,
		Ambiguous: mode.Tied,
	}, nil
}

// Top returns up to k distinct whole-Hz buckets, most popular first.
// Fewer are returned when the observations run out of distinct values.
func (o *Observations) Top(k int) []float64 {
	modes := stats.TopModes(o.Rounded, k)

	top := make([]float64, len(modes))
	for i, m := range modes {
		top[i] = float64(m.Value)
	}
	return top
}
