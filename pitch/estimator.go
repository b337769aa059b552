package pitch

import (
	"errors"
	"fmt"
	"io"

	"github.com/RyanBlaney/sonido-nota/algorithms/spectral"
	"github.com/RyanBlaney/sonido-nota/algorithms/windowing"
	"github.com/RyanBlaney/sonido-nota/config"
	"github.com/RyanBlaney/sonido-nota/logging"
	"github.com/RyanBlaney/sonido-nota/waveform"
)

// Estimator finds the dominant frequency of a waveform by windowed
// spectral analysis of consecutive chunks.
//
// Each chunk is downmixed to mono, tapered, zero-padded to twice its
// length and transformed. The strongest bin past DC is refined by
// quadratic interpolation of log power. Only complete chunks are analyzed.
type Estimator struct {
	config *config.DetectorConfig
	window *windowing.Window
	fft    *spectral.FFT
	power  *spectral.PowerSpectrum
	logger logging.Logger
}

// NewEstimator creates an estimator. A nil config selects the defaults.
func NewEstimator(cfg *config.DetectorConfig) (*Estimator, error) {
	if cfg == nil {
		cfg = config.DefaultDetectorConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid detector config: %w", err)
	}

	window, err := windowing.NewWindow(cfg.WindowType, cfg.ChunkSize)
	if err != nil {
		return nil, err
	}

	return &Estimator{
		config: cfg,
		window: window,
		fft:    spectral.NewFFT(),
		power:  spectral.NewPowerSpectrum(),
		logger: logging.WithFields(logging.Fields{
			"component":  "pitch_estimator",
			"chunk_size": window.GetChunkSize(),
			"frame_size": window.GetSize(),
			"window":     string(window.GetType()),
		}),
	}, nil
}

// ChunkFrequency estimates the dominant frequency of one mono chunk of
// exactly ChunkSize samples. The second return value is false when the
// chunk has the wrong length or no usable peak.
func (e *Estimator) ChunkFrequency(samples []float64, frameRate int) (float64, bool) {
	if frameRate <= 0 {
		return 0, false
	}
	return e.chunkFrequency(samples, spectral.NewPeakPicker(frameRate, e.window.GetChunkSize()))
}

func (e *Estimator) chunkFrequency(samples []float64, picker *spectral.PeakPicker) (float64, bool) {
	frame, err := e.window.ApplyToChunk(samples)
	if err != nil {
		return 0, false
	}

	spectrum := e.fft.ComputeOneSided(frame)
	peak, ok := picker.FindPeak(e.power.ComputeFromComplex(spectrum))
	if !ok {
		return 0, false
	}
	return peak.Frequency, true
}

// Observe reads src to its end, or to its first incomplete chunk, and
// collects the per-chunk estimates that fall strictly inside the
// configured frequency range.
//
// It fails with ErrInsufficientData when not one complete chunk was read
// and with ErrNoDominantFrequency when no chunk produced an accepted
// estimate.
func (e *Estimator) Observe(src waveform.Source) (*Observations, error) {
	logger := e.logger.WithFields(logging.Fields{
		"function": "Observe",
	})

	format := src.Format()
	if err := format.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInputUnreadable, err)
	}

	chunkSize := e.window.GetChunkSize()
	picker := spectral.NewPeakPicker(format.FrameRate, chunkSize)
	obs := &Observations{}

	for {
		raw, err := src.ReadChunk(chunkSize)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInputUnreadable, err)
		}

		if len(raw) < chunkSize*format.Channels {
			obs.DiscardedSamples = len(raw)
			break
		}

		obs.ChunksAnalyzed++
		freq, ok := e.chunkFrequency(waveform.Downmix(raw, format.Channels), picker)
		if !ok || freq <= e.config.MinFrequency || freq >= e.config.MaxFrequency {
			obs.ChunksRejected++
			continue
		}
		obs.add(freq)
	}

	logger.Debug("Chunk analysis complete", logging.Fields{
		"frame_rate":        format.FrameRate,
		"channels":          format.Channels,
		"chunks_analyzed":   obs.ChunksAnalyzed,
		"chunks_rejected":   obs.ChunksRejected,
		"discarded_samples": obs.DiscardedSamples,
	})

	if obs.ChunksAnalyzed == 0 {
		return nil, fmt.Errorf("%w: need at least %d frames", ErrInsufficientData, chunkSize)
	}
	if len(obs.Frequencies) == 0 {
		return nil, fmt.Errorf("%w: all %d chunks rejected", ErrNoDominantFrequency, obs.ChunksRejected)
	}

	return obs, nil
}

// EstimateFrequency returns the single dominant frequency of src
func (e *Estimator) EstimateFrequency(src waveform.Source) (*Estimate, error) {
	obs, err := e.Observe(src)
	if err != nil {
		return nil, err
	}

	estimate, err := obs.Dominant()
	if err != nil {
		return nil, err
	}

	if estimate.Ambiguous {
		e.logger.Warn("Dominant frequency is tied with another bucket, keeping the first", logging.Fields{
			"bucket": estimate.Bucket,
			"count":  estimate.Count,
		})
	}

	return estimate, nil
}

// EstimateFrequencies returns the ChordSize most popular distinct whole-Hz
// frequencies of src, most popular first. Fewer are returned when the
// recording does not contain enough distinct values.
func (e *Estimator) EstimateFrequencies(src waveform.Source) ([]float64, error) {
	obs, err := e.Observe(src)
	if err != nil {
		return nil, err
	}

	top := obs.Top(e.config.ChordSize)
	if len(top) < e.config.ChordSize {
		e.logger.Warn("Fewer distinct frequencies than requested", logging.Fields{
			"requested": e.config.ChordSize,
			"found":     len(top),
		})
	}

	return top, nil
}
