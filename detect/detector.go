package detect

import (
	"fmt"

	"github.com/RyanBlaney/sonido-nota/classify"
	"github.com/RyanBlaney/sonido-nota/config"
	"github.com/RyanBlaney/sonido-nota/logging"
	"github.com/RyanBlaney/sonido-nota/pitch"
	"github.com/RyanBlaney/sonido-nota/reference"
	"github.com/RyanBlaney/sonido-nota/waveform"
)

// Mode selects what a detector reports
type Mode string

const (
	ModeNote  Mode = "note"
	ModeChord Mode = "chord"
)

// ParseMode validates a mode name
func ParseMode(name string) (Mode, error) {
	switch Mode(name) {
	case ModeNote, ModeChord:
		return Mode(name), nil
	default:
		return "", fmt.Errorf("unknown mode %q, expected %q or %q", name, ModeNote, ModeChord)
	}
}

// Result holds the outcome of one detection run. Exactly one of Note and
// Chord is set, matching Mode.
type Result struct {
	Mode  Mode                  `json:"mode"`
	File  string                `json:"file,omitempty"`
	Note  *classify.NoteResult  `json:"note,omitempty"`
	Chord *classify.ChordResult `json:"chord,omitempty"`
}

// String returns the one-line report for the mode
func (r *Result) String() string {
	switch {
	case r.Note != nil:
		return r.Note.String()
	case r.Chord != nil:
		return r.Chord.String()
	default:
		return ""
	}
}

// Detector runs the estimator and hands its output to the classifier
// for the requested mode
type Detector struct {
	estimator *pitch.Estimator
	notes     *classify.NoteClassifier
	chords    *classify.ChordClassifier
}

// NewDetector creates a detector with the default reference tables tuned
// to cfg.ReferencePitch. A nil config selects the defaults.
func NewDetector(cfg *config.DetectorConfig) (*Detector, error) {
	if cfg == nil {
		cfg = config.DefaultDetectorConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid detector config: %w", err)
	}

	table, err := reference.NewNoteTable(cfg.ReferencePitch)
	if err != nil {
		return nil, err
	}

	return NewDetectorWithReferences(cfg, table, reference.DefaultChordTemplates())
}

// NewDetectorWithReferences creates a detector over caller-supplied
// reference tables. Tables are only read and may be shared.
func NewDetectorWithReferences(cfg *config.DetectorConfig, table *reference.NoteTable, templates *reference.ChordTemplateSet) (*Detector, error) {
	if cfg == nil {
		cfg = config.DefaultDetectorConfig()
	}

	estimator, err := pitch.NewEstimator(cfg)
	if err != nil {
		return nil, err
	}

	chords, err := classify.NewChordClassifier(templates, cfg.ChordMetric)
	if err != nil {
		return nil, err
	}

	return &Detector{
		estimator: estimator,
		notes:     classify.NewNoteClassifier(table),
		chords:    chords,
	}, nil
}

// DetectNote estimates the dominant frequency of src and names the note
func (d *Detector) DetectNote(src waveform.Source) (*classify.NoteResult, error) {
	estimate, err := d.estimator.EstimateFrequency(src)
	if err != nil {
		return nil, err
	}
	return d.notes.Classify(estimate)
}

// DetectChord estimates the most popular frequencies of src and matches
// them against the chord templates
func (d *Detector) DetectChord(src waveform.Source) (*classify.ChordResult, error) {
	freqs, err := d.estimator.EstimateFrequencies(src)
	if err != nil {
		return nil, err
	}
	return d.chords.Classify(freqs)
}

// Detect runs the detection selected by mode
func (d *Detector) Detect(src waveform.Source, mode Mode) (*Result, error) {
	result := &Result{Mode: mode}

	switch mode {
	case ModeNote:
		note, err := d.DetectNote(src)
		if err != nil {
			return nil, err
		}
		result.Note = note

	case ModeChord:
		chord, err := d.DetectChord(src)
		if err != nil {
			return nil, err
		}
		result.Chord = chord

	default:
		return nil, fmt.Errorf("unknown mode %q", mode)
	}

	return result, nil
}

// DetectFile opens a WAV file, runs Detect on it and closes it.
// Failures to open or parse the file wrap pitch.ErrInputUnreadable.
func (d *Detector) DetectFile(path string, mode Mode) (*Result, error) {
	logger := logging.WithFields(logging.Fields{
		"component": "detector",
		"function":  "DetectFile",
		"path":      path,
		"mode":      string(mode),
	})

	if _, err := ParseMode(string(mode)); err != nil {
		return nil, err
	}

	src, err := waveform.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", pitch.ErrInputUnreadable, err)
	}
	defer src.Close()

	result, err := d.Detect(src, mode)
	if err != nil {
		logger.Debug("Detection failed", logging.Fields{"error": err.Error()})
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	result.File = path

	logger.Debug("Detection complete", logging.Fields{"result": result.String()})
	return result, nil
}
