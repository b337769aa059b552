package reference

import (
	"fmt"
	"math"
	"sort"
)

// Accidental marks a note as natural or sharp
type Accidental string

const (
	Natural Accidental = "natural"
	Sharp   Accidental = "sharp"
)

const (
	// DefaultReferencePitch is the frequency of A4 in Hz
	DefaultReferencePitch = 440.0

	lowestMIDI  = 12  // C0
	highestMIDI = 119 // B8
	a4MIDI      = 69
)

var pitchClasses = []struct {
	letter     string
	accidental Accidental
}{
	{"C", Natural}, {"C", Sharp}, {"D", Natural}, {"D", Sharp},
	{"E", Natural}, {"F", Natural}, {"F", Sharp}, {"G", Natural},
	{"G", Sharp}, {"A", Natural}, {"A", Sharp}, {"B", Natural},
}

// Note is an equal-tempered note name
type Note struct {
	Letter     string     `json:"letter"`
	Accidental Accidental `json:"accidental"`
	Octave     int        `json:"octave"`
	MIDI       int        `json:"midi"`
}

// NoteFromMIDI names a MIDI note number
func NoteFromMIDI(midi int) Note {
	pc := pitchClasses[((midi%12)+12)%12]
	return Note{
		Letter:     pc.letter,
		Accidental: pc.accidental,
		Octave:     floorDiv(midi, 12) - 1,
		MIDI:       midi,
	}
}

// Name returns the letter with a trailing # for sharps, e.g. "C#"
func (n Note) Name() string {
	if n.Accidental == Sharp {
		return n.Letter + "#"
	}
	return n.Letter
}

// String returns the name with its octave, e.g. "A4"
func (n Note) String() string {
	return fmt.Sprintf("%s%d", n.Name(), n.Octave)
}

// NoteTable maps reference frequencies to notes. It is never modified
// after construction and can be shared.
type NoteTable struct {
	referencePitch float64
	keys           []float64
	notes          map[float64]Note
}

// NewNoteTable builds the equal-tempered table for C0..B8 tuned so that A4
// sounds at referencePitch. Frequencies are rounded to 0.01 Hz.
func NewNoteTable(referencePitch float64) (*NoteTable, error) {
	if referencePitch <= 0 || math.IsNaN(referencePitch) || math.IsInf(referencePitch, 0) {
		return nil, fmt.Errorf("invalid reference pitch: %v", referencePitch)
	}

	nt := &NoteTable{
		referencePitch: referencePitch,
		keys:           make([]float64, 0, highestMIDI-lowestMIDI+1),
		notes:          make(map[float64]Note, highestMIDI-lowestMIDI+1),
	}

	for midi := lowestMIDI; midi <= highestMIDI; midi++ {
		freq := referencePitch * math.Pow(2, float64(midi-a4MIDI)/12.0)
		freq = math.Round(freq*100) / 100
		if _, exists := nt.notes[freq]; exists {
			// Very low reference pitches collapse neighbours after rounding
			continue
		}
		nt.keys = append(nt.keys, freq)
		nt.notes[freq] = NoteFromMIDI(midi)
	}

	sort.Float64s(nt.keys)
	return nt, nil
}

// DefaultNoteTable returns the table for A4 = 440 Hz
func DefaultNoteTable() *NoteTable {
	nt, _ := NewNoteTable(DefaultReferencePitch)
	return nt
}

// ReferencePitch returns the A4 frequency the table was built for
func (nt *NoteTable) ReferencePitch() float64 {
	return nt.referencePitch
}

// Keys returns a copy of the sorted reference frequencies
func (nt *NoteTable) Keys() []float64 {
	keys := make([]float64, len(nt.keys))
	copy(keys, nt.keys)
	return keys
}

// Lookup returns the note stored under an exact reference frequency
func (nt *NoteTable) Lookup(frequency float64) (Note, bool) {
	note, ok := nt.notes[frequency]
	return note, ok
}

// Nearest returns the reference frequency closest to frequency and its
// note. When two keys are equally close the lower one wins.
func (nt *NoteTable) Nearest(frequency float64) (float64, Note) {
	i := sort.SearchFloat64s(nt.keys, frequency)

	switch {
	case i == 0:
		// below or at the lowest key
	case i == len(nt.keys):
		i--
	default:
		below, above := nt.keys[i-1], nt.keys[i]
		if frequency-below <= above-frequency {
			i--
		}
	}

	key := nt.keys[i]
	return key, nt.notes[key]
}

// Len returns the number of reference notes
func (nt *NoteTable) Len() int {
	return len(nt.keys)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
