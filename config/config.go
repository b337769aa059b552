package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// WindowType names the tapering window applied to each chunk
type WindowType string

const (
	WindowBlackman    WindowType = "blackman"
	WindowHann        WindowType = "hann"
	WindowHamming     WindowType = "hamming"
	WindowBartlett    WindowType = "bartlett"
	WindowFlatTop     WindowType = "flattop"
	WindowRectangular WindowType = "rectangular"
)

// ChordMetric selects how estimated chord vectors are compared to templates
type ChordMetric string

const (
	// ChordMetricPositional compares vectors element by element in the order
	// the frequencies were extracted.
	ChordMetricPositional ChordMetric = "positional"
	// ChordMetricSorted sorts both vectors ascending before comparing them.
	ChordMetricSorted ChordMetric = "sorted"
)

// Instrument selects a preset for ConfigForInstrument
type Instrument string

const (
	InstrumentGeneric Instrument = "generic"
	InstrumentGuitar  Instrument = "guitar"
	InstrumentPiano   Instrument = "piano"
	InstrumentVoice   Instrument = "voice"
)

// DetectorConfig holds every tunable of the detection pipeline
type DetectorConfig struct {
	// Spectral analysis
	ChunkSize  int        `json:"chunk_size"` // frames per analysis chunk
	WindowType WindowType `json:"window_type"`

	// Accepted per-chunk estimates, both bounds exclusive (Hz)
	MinFrequency float64 `json:"min_frequency"`
	MaxFrequency float64 `json:"max_frequency"`

	// Reference tables
	ReferencePitch float64 `json:"reference_pitch"` // A4 in Hz

	// Chord matching
	ChordSize   int         `json:"chord_size"` // candidate frequencies per chord
	ChordMetric ChordMetric `json:"chord_metric"`
}

// DefaultDetectorConfig returns the reference configuration: 2048-frame
// chunks, Blackman window, audible range (0, 20000) Hz, A4 = 440 Hz and
// three-note positional chord matching.
func DefaultDetectorConfig() *DetectorConfig {
	return &DetectorConfig{
		ChunkSize:      2048,
		WindowType:     WindowBlackman,
		MinFrequency:   0.0,
		MaxFrequency:   20000.0,
		ReferencePitch: 440.0,
		ChordSize:      3,
		ChordMetric:    ChordMetricPositional,
	}
}

// ConfigForInstrument returns a configuration tuned for an instrument.
//
// Only the chunk size and the accepted frequency range differ; larger
// chunks buy frequency resolution for low-pitched sources.
func ConfigForInstrument(instrument Instrument) *DetectorConfig {
	cfg := DefaultDetectorConfig()

	switch instrument {
	case InstrumentGuitar:
		cfg.ChunkSize = 4096
		cfg.MinFrequency = 70.0 // below low E2
		cfg.MaxFrequency = 1400.0

	case InstrumentPiano:
		cfg.ChunkSize = 4096
		cfg.MinFrequency = 26.0 // below A0
		cfg.MaxFrequency = 4500.0

	case InstrumentVoice:
		cfg.MinFrequency = 60.0
		cfg.MaxFrequency = 1600.0

	default:
		// Use defaults
	}

	return cfg
}

// LoadDetectorConfig reads a JSON configuration file. Fields missing from
// the file keep their default values.
func LoadDetectorConfig(path string) (*DetectorConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := DefaultDetectorConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first invalid field
func (c *DetectorConfig) Validate() error {
	if c.ChunkSize < 4 {
		return fmt.Errorf("chunk_size must be at least 4, got %d", c.ChunkSize)
	}
	if c.MinFrequency < 0 {
		return fmt.Errorf("min_frequency must not be negative, got %.2f", c.MinFrequency)
	}
	if c.MaxFrequency <= c.MinFrequency {
		return fmt.Errorf("max_frequency (%.2f) must exceed min_frequency (%.2f)", c.MaxFrequency, c.MinFrequency)
	}
	if c.ReferencePitch <= 0 {
		return fmt.Errorf("reference_pitch must be positive, got %.2f", c.ReferencePitch)
	}
	if c.ChordSize < 1 {
		return fmt.Errorf("chord_size must be at least 1, got %d", c.ChordSize)
	}

	switch c.WindowType {
	case WindowBlackman, WindowHann, WindowHamming, WindowBartlett, WindowFlatTop, WindowRectangular:
	default:
		return fmt.Errorf("unknown window_type %q", c.WindowType)
	}

	switch c.ChordMetric {
	case ChordMetricPositional, ChordMetricSorted:
	default:
		return fmt.Errorf("unknown chord_metric %q", c.ChordMetric)
	}

	return nil
}
