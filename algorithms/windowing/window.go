package windowing

import (
	"fmt"

	"github.com/mjibson/go-dsp/window"

	"github.com/RyanBlaney/sonido-nota/config"
)

// Window is a precomputed tapering window of twice the chunk length.
//
// A chunk of n samples is weighted by every other coefficient (sample k
// gets coefficient 2k), so the taper covers the whole chunk, and the
// product is zero-padded back to 2n samples. Transforming 2n points
// halves the bin spacing to sampleRate/(2n).
type Window struct {
	windowType   config.WindowType
	chunkSize    int
	coefficients []float64
}

// NewWindow creates a window for chunks of chunkSize frames
func NewWindow(windowType config.WindowType, chunkSize int) (*Window, error) {
	if chunkSize < 1 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}

	generate, err := generator(windowType)
	if err != nil {
		return nil, err
	}

	return &Window{
		windowType:   windowType,
		chunkSize:    chunkSize,
		coefficients: generate(2 * chunkSize),
	}, nil
}

func generator(windowType config.WindowType) (func(int) []float64, error) {
	switch windowType {
	case config.WindowBlackman:
		return window.Blackman, nil
	case config.WindowHann:
		return window.Hann, nil
	case config.WindowHamming:
		return window.Hamming, nil
	case config.WindowBartlett:
		return window.Bartlett, nil
	case config.WindowFlatTop:
		return window.FlatTop, nil
	case config.WindowRectangular:
		return window.Rectangular, nil
	default:
		return nil, fmt.Errorf("unsupported window type %q", windowType)
	}
}

// ApplyToChunk weights a chunk and returns the zero-padded frame of
// length 2*chunkSize ready for the transform
func (w *Window) ApplyToChunk(chunk []float64) ([]float64, error) {
	if len(chunk) != w.chunkSize {
		return nil, fmt.Errorf("chunk length (%d) doesn't match window chunk size (%d)", len(chunk), w.chunkSize)
	}

	frame := make([]float64, 2*w.chunkSize)
	for i, sample := range chunk {
		frame[i] = sample * w.coefficients[2*i]
	}

	return frame, nil
}

// GetCoefficients returns a copy of the window coefficients
func (w *Window) GetCoefficients() []float64 {
	coeffs := make([]float64, len(w.coefficients))
	copy(coeffs, w.coefficients)
	return coeffs
}

// GetSize returns the window length (twice the chunk size)
func (w *Window) GetSize() int {
	return len(w.coefficients)
}

// GetChunkSize returns the number of samples the window expects per chunk
func (w *Window) GetChunkSize() int {
	return w.chunkSize
}

// GetType returns the window type
func (w *Window) GetType() config.WindowType {
	return w.windowType
}
