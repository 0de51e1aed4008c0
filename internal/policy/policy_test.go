package policy

import (
	"errors"
	"testing"
)

func TestDecideEmptyInput(t *testing.T) {
	_, err := Decide(nil)
	if !errors.Is(err, ErrNoPredictions) {
		t.Fatalf("expected ErrNoPredictions, got %v", err)
	}
}

func TestDecideAcceptsClearWinner(t *testing.T) {
	decision, err := Decide([]Prediction{
		{Label: "shirt", Confidence: 0.80},
		{Label: "pants", Confidence: 0.10},
	})
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if decision.Label != "shirt" {
		t.Errorf("expected label 'shirt', got %q", decision.Label)
	}
	if decision.Category != "topwear" || decision.Type != "shirt" {
		t.Errorf("expected topwear/shirt, got %s/%s", decision.Category, decision.Type)
	}
}

func TestDecideRejectsCloseCandidates(t *testing.T) {
	_, err := Decide([]Prediction{
		{Label: "shirt", Confidence: 0.65},
		{Label: "pants", Confidence: 0.52},
	})

	var ambiguous *AmbiguousError
	if !errors.As(err, &ambiguous) {
		t.Fatalf("expected AmbiguousError, got %v", err)
	}
	if ambiguous.Top.Label != "shirt" || ambiguous.Second.Label != "pants" {
		t.Errorf("expected both candidates carried, got %+v", ambiguous)
	}
}

func TestDecideIgnoresWeakRunnerUp(t *testing.T) {
	// Delta is small but the runner-up is below the reportable threshold.
	decision, err := Decide([]Prediction{
		{Label: "shoes", Confidence: 0.35},
		{Label: "shorts", Confidence: 0.25},
	})
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if decision.Category != "footwear" || decision.Type != "shoes" {
		t.Errorf("expected footwear/shoes, got %s/%s", decision.Category, decision.Type)
	}
}

func TestDecideDeltaBoundary(t *testing.T) {
	// A gap of exactly 0.20 is enough to accept.
	decision, err := Decide([]Prediction{
		{Label: "pants", Confidence: 0.60},
		{Label: "shorts", Confidence: 0.40},
	})
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if decision.Label != "pants" {
		t.Errorf("expected label 'pants', got %q", decision.Label)
	}

	// Just below the boundary still rejects.
	_, err = Decide([]Prediction{
		{Label: "pants", Confidence: 0.59},
		{Label: "shorts", Confidence: 0.40},
	})
	var ambiguous *AmbiguousError
	if !errors.As(err, &ambiguous) {
		t.Fatalf("expected AmbiguousError below the boundary, got %v", err)
	}
}

func TestDecideSingleCandidate(t *testing.T) {
	decision, err := Decide([]Prediction{{Label: "t-shirt", Confidence: 0.42}})
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if decision.Category != "topwear" || decision.Type != "tshirt" {
		t.Errorf("expected topwear/tshirt, got %s/%s", decision.Category, decision.Type)
	}
}

func TestDecideUnmappedLabel(t *testing.T) {
	decision, err := Decide([]Prediction{{Label: "scarf", Confidence: 0.90}})
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if decision.Category != "unknown" || decision.Type != "unknown" {
		t.Errorf("expected unknown/unknown, got %s/%s", decision.Category, decision.Type)
	}
	if decision.Label != "scarf" {
		t.Errorf("expected original label preserved, got %q", decision.Label)
	}
}
