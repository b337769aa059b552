package spectral

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/sonido-nota/algorithms/windowing"
	"github.com/RyanBlaney/sonido-nota/config"
)

const (
	testRate  = 44100
	testChunk = 2048
)

func sineChunk(freq float64) []float64 {
	chunk := make([]float64, testChunk)
	for n := range chunk {
		chunk[n] = 10000 * math.Sin(2*math.Pi*freq*float64(n)/testRate)
	}
	return chunk
}

func peakOf(t *testing.T, freq float64) SpectralPeak {
	t.Helper()

	w, err := windowing.NewWindow(config.WindowBlackman, testChunk)
	require.NoError(t, err)

	frame, err := w.ApplyToChunk(sineChunk(freq))
	require.NoError(t, err)

	spectrum := NewFFT().ComputeOneSided(frame)
	require.Len(t, spectrum, testChunk+1)

	power := NewPowerSpectrum().ComputeFromComplex(spectrum)
	peak, ok := NewPeakPicker(testRate, testChunk).FindPeak(power)
	require.True(t, ok)
	return peak
}

func TestBinCentredSinusoid(t *testing.T) {
	picker := NewPeakPicker(testRate, testChunk)
	freq := picker.BinFrequency(40)

	peak := peakOf(t, freq)

	assert := assert.New(t)
	assert.Equal(40, peak.BinIndex)
	assert.True(peak.Interpolated)
	assert.InDelta(0.0, peak.Offset, 0.05)
	assert.InDelta(freq, peak.Frequency, 0.5)
}

func TestOffBinInterpolationReducesError(t *testing.T) {
	picker := NewPeakPicker(testRate, testChunk)

	for _, fraction := range []float64{0.2, 0.3, 0.45, -0.35} {
		freq := picker.BinFrequency(60 + fraction)
		peak := peakOf(t, freq)

		binCentre := picker.BinFrequency(float64(peak.BinIndex))
		assert.Less(t,
			math.Abs(peak.Frequency-freq),
			math.Abs(binCentre-freq),
			"fraction %.2f", fraction)
	}
}

func TestFindPeakSkipsDC(t *testing.T) {
	power := []float64{100, 1, 5, 2, 1}
	peak, ok := NewPeakPicker(8000, 4).FindPeak(power)

	require.True(t, ok)
	assert.Equal(t, 2, peak.BinIndex)
}

func TestFindPeakFirstAnalyzedBin(t *testing.T) {
	power := []float64{1, 9, 4, 2, 1}
	peak, ok := NewPeakPicker(8000, 4).FindPeak(power)

	require.True(t, ok)
	assert.Equal(t, 1, peak.BinIndex)
	assert.True(t, peak.Interpolated)
}

func TestFindPeakLastBinSkipsInterpolation(t *testing.T) {
	power := []float64{1, 2, 3, 4, 9}
	peak, ok := NewPeakPicker(8000, 4).FindPeak(power)

	require.True(t, ok)
	assert := assert.New(t)
	assert.Equal(4, peak.BinIndex)
	assert.False(peak.Interpolated)
	assert.Equal(4.0*8000/4, peak.Frequency)
}

func TestFindPeakRejectsSilence(t *testing.T) {
	_, ok := NewPeakPicker(8000, 4).FindPeak(make([]float64, 5))
	assert.False(t, ok)

	_, ok = NewPeakPicker(8000, 4).FindPeak([]float64{1})
	assert.False(t, ok)

	// zero neighbour makes the log power infinite
	_, ok = NewPeakPicker(8000, 4).FindPeak([]float64{1, 0, 5, 1, 1})
	assert.False(t, ok)
}

func TestQuadraticOffset(t *testing.T) {
	offset, ok := QuadraticOffset(1, 2, 1)
	assert.True(t, ok)
	assert.Zero(t, offset)

	offset, ok = QuadraticOffset(1, 2, 0)
	assert.True(t, ok)
	assert.InDelta(t, -1.0/6.0, offset, 1e-12)

	offset, ok = QuadraticOffset(3, 3, 3)
	assert.True(t, ok)
	assert.Zero(t, offset)

	_, ok = QuadraticOffset(math.Inf(-1), 1, 0)
	assert.False(t, ok)
}

func TestPowerSpectrum(t *testing.T) {
	ps := NewPowerSpectrum()

	assert.Equal(t, []float64{25, 1}, ps.ComputeFromComplex([]complex128{complex(3, 4), complex(0, -1)}))
	assert.Empty(t, ps.ComputeFromComplex(nil))
}
