package classify

import (
	"fmt"
	"math"

	"github.com/RyanBlaney/sonido-nota/pitch"
	"github.com/RyanBlaney/sonido-nota/reference"
)

// NoteResult is a classified single note
type NoteResult struct {
	Note       reference.Note `json:"note"`
	Reference  float64        `json:"reference"`  // Hz of the matched table entry
	Frequency  float64        `json:"frequency"`  // estimated Hz
	Confidence float64        `json:"confidence"` // percent, see NoteConfidence
	Ambiguous  bool           `json:"ambiguous"`
}

// String formats the result as "Note: A Octave: 4 Confidence: 100.00"
func (r *NoteResult) String() string {
	return fmt.Sprintf("Note: %s Octave: %d Confidence: %.2f", r.Note.Name(), r.Note.Octave, r.Confidence)
}

// NoteClassifier names an estimated frequency after the closest note
type NoteClassifier struct {
	table *reference.NoteTable
}

// NewNoteClassifier creates a classifier over table. A nil table selects
// the A4 = 440 Hz table.
func NewNoteClassifier(table *reference.NoteTable) *NoteClassifier {
	if table == nil {
		table = reference.DefaultNoteTable()
	}
	return &NoteClassifier{table: table}
}

// Classify matches an estimate against the note table
func (nc *NoteClassifier) Classify(estimate *pitch.Estimate) (*NoteResult, error) {
	if estimate == nil {
		return nil, fmt.Errorf("%w: no frequency estimate", pitch.ErrClassificationUnavailable)
	}

	result, err := nc.ClassifyFrequency(estimate.Frequency)
	if err != nil {
		return nil, err
	}
	result.Ambiguous = estimate.Ambiguous
	return result, nil
}

// ClassifyFrequency matches a bare frequency against the note table
func (nc *NoteClassifier) ClassifyFrequency(frequency float64) (*NoteResult, error) {
	if frequency <= 0 || math.IsNaN(frequency) || math.IsInf(frequency, 0) {
		return nil, fmt.Errorf("%w: invalid frequency %v", pitch.ErrClassificationUnavailable, frequency)
	}

	ref, note := nc.table.Nearest(frequency)
	return &NoteResult{
		Note:       note,
		Reference:  ref,
		Frequency:  frequency,
		Confidence: NoteConfidence(frequency, ref),
	}, nil
}

// NoteConfidence is 100 * (1 - |estimated - reference| / estimated).
//
// The deviation is relative to the estimate, not the reference, so the
// score is asymmetric and can leave the 0..100 range for large errors.
func NoteConfidence(estimated, reference float64) float64 {
	return 100 * (1 - math.Abs(estimated-reference)/estimated)
}
