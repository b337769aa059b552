package spectral

import (
	"github.com/mjibson/go-dsp/fft"
)

// FFT computes spectra of real frames
type FFT struct {
	// No state needed
}

// NewFFT creates a new FFT calculator
func NewFFT() *FFT {
	return &FFT{}
}

// ComputeOneSided returns bins 0..len(x)/2 of the transform of a real
// frame. The remaining bins mirror these and are dropped.
func (f *FFT) ComputeOneSided(x []float64) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}

	// go-dsp handles non-power-of-2 lengths as well
	full := fft.FFTReal(x)
	return full[:len(x)/2+1]
}
