// Package policy validates classifier output before an item may be staged.
// The classifier itself is an external collaborator; this package only decides
// whether its ranked predictions can be safely attributed to a single garment.
package policy

import (
	"errors"
	"fmt"
)

// Prediction is a single classifier candidate. Classifier responses are
// ordered by descending confidence on a 0-1 scale.
type Prediction struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Decision is an accepted classification mapped to inventory terms.
type Decision struct {
	Label      string
	Category   string
	Type       string
	Confidence float64
}

// Thresholds for the multi-item rule.
const (
	// MaxConfidenceDelta is the minimum gap the winner must have over the
	// runner-up. A smaller gap suggests two garments are present.
	MaxConfidenceDelta = 0.20

	// SecondaryThreshold is the confidence the runner-up must reach before
	// it counts as a competing garment at all.
	SecondaryThreshold = 0.30

	// deltaEpsilon absorbs float64 rounding in the gap comparison, so a
	// nominal gap of exactly MaxConfidenceDelta (e.g. 0.60 vs 0.40) is not
	// rejected because the subtraction lands a hair below it.
	deltaEpsilon = 1e-9
)

// ErrNoPredictions is returned when the classifier output is empty.
var ErrNoPredictions = errors.New("classifier returned no predictions")

// AmbiguousError rejects a classification because two candidate garments are
// too close in confidence, meaning the image likely contains more than one
// item. Both candidates are carried for diagnostic reporting.
type AmbiguousError struct {
	Top    Prediction
	Second Prediction
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("multiple garments detected: %s (%.2f) vs %s (%.2f)",
		e.Top.Label, e.Top.Confidence, e.Second.Label, e.Second.Confidence)
}

// labelMap is the fixed label to (category, type) lookup table. Labels the
// classifier may learn later resolve to unknown/unknown rather than failing.
var labelMap = map[string][2]string{
	"shirt":       {"topwear", "shirt"},
	"t-shirt":     {"topwear", "tshirt"},
	"pants":       {"bottomwear", "pants"},
	"shorts":      {"bottomwear", "shorts"},
	"shoes":       {"footwear", "shoes"},
	"accessories": {"accessories", "accessories"},
}

// Decide validates ranked classifier predictions and extracts the winning
// label. It returns ErrNoPredictions for empty input and an *AmbiguousError
// when the top two candidates are too close to attribute the image to a
// single garment.
func Decide(ranked []Prediction) (*Decision, error) {
	if len(ranked) == 0 {
		return nil, ErrNoPredictions
	}

	top := ranked[0]
	if len(ranked) > 1 {
		second := ranked[1]
		if second.Confidence >= SecondaryThreshold && top.Confidence-second.Confidence < MaxConfidenceDelta-deltaEpsilon {
			return nil, &AmbiguousError{Top: top, Second: second}
		}
	}

	category, itemType := "unknown", "unknown"
	if mapped, ok := labelMap[top.Label]; ok {
		category, itemType = mapped[0], mapped[1]
	}

	return &Decision{
		Label:      top.Label,
		Category:   category,
		Type:       itemType,
		Confidence: top.Confidence,
	}, nil
}
