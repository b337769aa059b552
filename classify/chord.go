package classify

import (
	"fmt"
	"math"

	"github.com/RyanBlaney/sonido-nota/algorithms/stats"
	"github.com/RyanBlaney/sonido-nota/config"
	"github.com/RyanBlaney/sonido-nota/logging"
	"github.com/RyanBlaney/sonido-nota/pitch"
	"github.com/RyanBlaney/sonido-nota/reference"
)

// ChordCandidate is the distance from an estimate to one template
type ChordCandidate struct {
	Label    string  `json:"label"`
	Distance float64 `json:"distance"`
}

// ChordResult is a classified chord
type ChordResult struct {
	Label       string             `json:"label"`
	Distance    float64            `json:"distance"`
	Frequencies []float64          `json:"frequencies"` // the estimated vector
	Metric      config.ChordMetric `json:"metric"`
	Candidates  []ChordCandidate   `json:"candidates"` // every template, table order
}

// String formats the result as "Chord: A Major Distance: 1.73"
func (r *ChordResult) String() string {
	return fmt.Sprintf("Chord: %s Distance: %.2f", r.Label, r.Distance)
}

// ChordClassifier picks the template closest to an estimated frequency
// vector in Euclidean distance
type ChordClassifier struct {
	templates *reference.ChordTemplateSet
	metric    config.ChordMetric
	distance  stats.DistanceFunction
	logger    logging.Logger
}

// NewChordClassifier creates a classifier. A nil template set selects the
// default major chords; an empty metric selects positional matching.
func NewChordClassifier(templates *reference.ChordTemplateSet, metric config.ChordMetric) (*ChordClassifier, error) {
	if templates == nil {
		templates = reference.DefaultChordTemplates()
	}

	var distance stats.DistanceFunction
	switch metric {
	case config.ChordMetricPositional, "":
		metric = config.ChordMetricPositional
		distance = stats.EuclideanDistanceFunc
	case config.ChordMetricSorted:
		distance = stats.SortedEuclideanDistanceFunc
	default:
		return nil, fmt.Errorf("unknown chord metric %q", metric)
	}

	return &ChordClassifier{
		templates: templates,
		metric:    metric,
		distance:  distance,
		logger: logging.WithFields(logging.Fields{
			"component": "chord_classifier",
			"metric":    string(metric),
		}),
	}, nil
}

// Classify compares frequencies with every template over their shared
// length. The smallest distance wins; ties go to the earlier template.
func (cc *ChordClassifier) Classify(frequencies []float64) (*ChordResult, error) {
	if len(frequencies) == 0 {
		return nil, fmt.Errorf("%w: no chord frequencies", pitch.ErrClassificationUnavailable)
	}

	estimate := make([]float64, len(frequencies))
	copy(estimate, frequencies)

	result := &ChordResult{
		Distance:    math.Inf(1),
		Frequencies: estimate,
		Metric:      cc.metric,
		Candidates:  make([]ChordCandidate, 0, cc.templates.Len()),
	}

	for i := range cc.templates.Len() {
		template := cc.templates.At(i)
		if len(template.Frequencies) != len(estimate) {
			cc.logger.Debug("Comparing vectors of different length over their shared prefix", logging.Fields{
				"label":           template.Label,
				"template_length": len(template.Frequencies),
				"estimate_length": len(estimate),
			})
		}

		d := cc.distance(estimate, template.Frequencies)
		result.Candidates = append(result.Candidates, ChordCandidate{Label: template.Label, Distance: d})
		if d < result.Distance {
			result.Label = template.Label
			result.Distance = d
		}
	}

	return result, nil
}
