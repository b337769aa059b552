package reference

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultNoteTable(t *testing.T) {
	nt := DefaultNoteTable()

	assert := assert.New(t)
	assert.Equal(108, nt.Len())
	assert.Equal(440.0, nt.ReferencePitch())

	keys := nt.Keys()
	assert.True(sort.Float64sAreSorted(keys))
	assert.Equal(16.35, keys[0])
	assert.Equal(7902.13, keys[len(keys)-1])

	note, ok := nt.Lookup(440.0)
	require.True(t, ok)
	assert.Equal(Note{Letter: "A", Accidental: Natural, Octave: 4, MIDI: 69}, note)

	note, ok = nt.Lookup(261.63)
	require.True(t, ok)
	assert.Equal("C4", note.String())
}

func TestNearest(t *testing.T) {
	nt := DefaultNoteTable()

	tests := []struct {
		name      string
		frequency float64
		wantKey   float64
		wantNote  string
	}{
		{"exact", 440.0, 440.0, "A4"},
		{"slightly sharp", 445.0, 440.0, "A4"},
		{"closer to A#", 460.0, 466.16, "A#4"},
		{"below range", 5.0, 16.35, "C0"},
		{"above range", 19000.0, 7902.13, "B8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, note := nt.Nearest(tt.frequency)
			assert.Equal(t, tt.wantKey, key)
			assert.Equal(t, tt.wantNote, note.String())
		})
	}
}

func TestNearestEquidistantPrefersLower(t *testing.T) {
	nt := &NoteTable{
		keys: []float64{100, 200},
		notes: map[float64]Note{
			100: NoteFromMIDI(43),
			200: NoteFromMIDI(55),
		},
	}

	key, note := nt.Nearest(150)
	assert.Equal(t, 100.0, key)
	assert.Equal(t, "G2", note.String())
}

func TestNoteTableReferencePitch(t *testing.T) {
	nt, err := NewNoteTable(432)
	require.NoError(t, err)

	_, note := nt.Nearest(432)
	assert.Equal(t, "A4", note.String())

	_, err = NewNoteTable(0)
	assert.Error(t, err)
	_, err = NewNoteTable(-440)
	assert.Error(t, err)
}

func TestNoteNames(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("C#", NoteFromMIDI(61).Name())
	assert.Equal(Sharp, NoteFromMIDI(61).Accidental)
	assert.Equal("B3", NoteFromMIDI(59).String())
	assert.Equal("C0", NoteFromMIDI(12).String())
	assert.Equal(-1, NoteFromMIDI(0).Octave)
}

func TestDefaultChordTemplates(t *testing.T) {
	set := DefaultChordTemplates()

	assert.Equal(t, 7, set.Len())
	assert.Equal(t, []string{"A Major", "B Major", "C Major", "D Major", "E Major", "F Major", "G Major"}, set.Labels())
	assert.Equal(t, []float64{62, 124, 61}, set.At(0).Frequencies)

	// At hands out copies
	set.At(0).Frequencies[0] = 0
	assert.Equal(t, 62.0, set.At(0).Frequencies[0])
}

func TestNewChordTemplateSetValidation(t *testing.T) {
	tests := []struct {
		name      string
		templates []ChordTemplate
	}{
		{"empty", nil},
		{"no label", []ChordTemplate{{Frequencies: []float64{1}}}},
		{"no frequencies", []ChordTemplate{{Label: "X"}}},
		{"duplicate", []ChordTemplate{
			{Label: "X", Frequencies: []float64{1}},
			{Label: "X", Frequencies: []float64{2}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewChordTemplateSet(tt.templates)
			assert.Error(t, err)
		})
	}
}

func TestNewChordTemplateSetCopiesInput(t *testing.T) {
	freqs := []float64{1, 2, 3}
	set, err := NewChordTemplateSet([]ChordTemplate{{Label: "X", Frequencies: freqs}})
	require.NoError(t, err)

	freqs[0] = 100
	assert.Equal(t, []float64{1, 2, 3}, set.At(0).Frequencies)
}
