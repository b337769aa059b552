package reference

import "fmt"

// ChordTemplate is a labeled vector of representative frequencies
type ChordTemplate struct {
	Label       string    `json:"label"`
	Frequencies []float64 `json:"frequencies"`
}

// ChordTemplateSet is an ordered, read-only list of chord templates
type ChordTemplateSet struct {
	templates []ChordTemplate
}

// NewChordTemplateSet copies templates into a new set. Labels must be
// unique and every template needs at least one frequency.
func NewChordTemplateSet(templates []ChordTemplate) (*ChordTemplateSet, error) {
	if len(templates) == 0 {
		return nil, fmt.Errorf("chord template set is empty")
	}

	seen := make(map[string]bool, len(templates))
	set := &ChordTemplateSet{templates: make([]ChordTemplate, len(templates))}
	for i, t := range templates {
		if t.Label == "" {
			return nil, fmt.Errorf("chord template %d has no label", i)
		}
		if seen[t.Label] {
			return nil, fmt.Errorf("duplicate chord template %q", t.Label)
		}
		if len(t.Frequencies) == 0 {
			return nil, fmt.Errorf("chord template %q has no frequencies", t.Label)
		}
		seen[t.Label] = true

		freqs := make([]float64, len(t.Frequencies))
		copy(freqs, t.Frequencies)
		set.templates[i] = ChordTemplate{Label: t.Label, Frequencies: freqs}
	}

	return set, nil
}

// DefaultChordTemplates returns the seven major chord vectors measured at
// A4 = 440 Hz
func DefaultChordTemplates() *ChordTemplateSet {
	set, _ := NewChordTemplateSet([]ChordTemplate{
		{Label: "A Major", Frequencies: []float64{62, 124, 61}},
		{Label: "B Major", Frequencies: []float64{123, 124, 165}},
		{Label: "C Major", Frequencies: []float64{65, 66, 64}},
		{Label: "D Major", Frequencies: []float64{110, 73, 147}},
		{Label: "E Major", Frequencies: []float64{62, 61, 63}},
		{Label: "F Major", Frequencies: []float64{312, 208, 27}},
		{Label: "G Major", Frequencies: []float64{52, 51, 48}},
	})
	return set
}

// Len returns the number of templates
func (s *ChordTemplateSet) Len() int {
	return len(s.templates)
}

// At returns a copy of the i-th template in table order
func (s *ChordTemplateSet) At(i int) ChordTemplate {
	t := s.templates[i]
	freqs := make([]float64, len(t.Frequencies))
	copy(freqs, t.Frequencies)
	return ChordTemplate{Label: t.Label, Frequencies: freqs}
}

// Labels returns the template labels in table order
func (s *ChordTemplateSet) Labels() []string {
	labels := make([]string, len(s.templates))
	for i, t := range s.templates {
		labels[i] = t.Label
	}
	return labels
}

