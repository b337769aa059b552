package spectral

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// SpectralPeak is the dominant bin of one power spectrum
type SpectralPeak struct {
	BinIndex     int     // bin of maximum power, never 0 (DC)
	Offset       float64 // sub-bin correction from quadratic interpolation
	Power        float64 // power at BinIndex
	Frequency    float64 // Hz
	Interpolated bool    // false when the peak sits on the last bin
}

// PeakPicker locates the dominant bin of a one-sided power spectrum and
// refines it with quadratic interpolation of log power.
//
// The spectrum is expected to come from a frame of 2*chunkSize samples
// (a zero-padded chunk), so bins are sampleRate/(2*chunkSize) Hz apart.
type PeakPicker struct {
	sampleRate int
	chunkSize  int
}

// NewPeakPicker creates a peak picker for the given sample rate and chunk size
func NewPeakPicker(sampleRate, chunkSize int) *PeakPicker {
	return &PeakPicker{
		sampleRate: sampleRate,
		chunkSize:  chunkSize,
	}
}

// FindPeak returns the refined peak of a power spectrum. The second return
// value is false when no usable peak exists: the spectrum has no bin past
// DC, the peak power is zero, or the log power around the peak is not
// finite.
func (pp *PeakPicker) FindPeak(power []float64) (SpectralPeak, bool) {
	if len(power) < 2 {
		return SpectralPeak{}, false
	}

	// Skip DC; MaxIdx returns the first index on ties
	peakBin := floats.MaxIdx(power[1:]) + 1
	peak := SpectralPeak{
		BinIndex: peakBin,
		Power:    power[peakBin],
	}
	if peak.Power <= 0 || math.IsNaN(peak.Power) {
		return SpectralPeak{}, false
	}

	// No right-hand neighbour on the last bin
	if peakBin == len(power)-1 {
		peak.Frequency = float64(peakBin) * float64(pp.sampleRate) / float64(pp.chunkSize)
		return peak, true
	}

	offset, ok := QuadraticOffset(
		math.Log(power[peakBin-1]),
		math.Log(power[peakBin]),
		math.Log(power[peakBin+1]),
	)
	if !ok {
		return SpectralPeak{}, false
	}

	peak.Offset = offset
	peak.Interpolated = true
	peak.Frequency = pp.BinFrequency(float64(peakBin) + offset)
	return peak, true
}

// BinFrequency converts a (fractional) bin index to Hz
func (pp *PeakPicker) BinFrequency(bin float64) float64 {
	return bin * float64(pp.sampleRate) / float64(2*pp.chunkSize)
}

// QuadraticOffset fits a parabola through three equally spaced values
// (left, centre, right) and returns the vertex position relative to the
// centre. It fails when any value is not finite; a flat triple yields 0.
func QuadraticOffset(left, centre, right float64) (float64, bool) {
	for _, v := range []float64{left, centre, right} {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return 0, false
		}
	}

	denom := left - 2*centre + right
	if denom == 0 {
		return 0, true
	}

	return 0.5 * (left - right) / denom, true
}
