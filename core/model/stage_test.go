package model

import (
	"testing"

	"github.com/Bantey17/river/core/feature"
)

type fakeTransformer struct{}

func (fakeTransformer) TransformOne(x feature.Record) (feature.Record, error) { return x, nil }
func (fakeTransformer) ObserveOne(feature.Record) error                       { return nil }

type fakePredictor struct{}

func (fakePredictor) PredictOne(feature.Record) (float64, error) { return 0, nil }

type fakeLearner struct {
	fakePredictor
}

func (fakeLearner) LearnOne(feature.Record, float64) error { return nil }

func TestCapabilityChecks(t *testing.T) {
	tests := []struct {
		name        string
		stage       Stage
		transformer bool
		predictor   bool
		learner     bool
	}{
		{"transformer", fakeTransformer{}, true, false, false},
		{"predictor", fakePredictor{}, false, true, false},
		{"predictor+learner", fakeLearner{}, false, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTransformer(tt.stage); got != tt.transformer {
				t.Errorf("IsTransformer = %v, want %v", got, tt.transformer)
			}
			if got := IsPredictor(tt.stage); got != tt.predictor {
				t.Errorf("IsPredictor = %v, want %v", got, tt.predictor)
			}
			if got := IsLearner(tt.stage); got != tt.learner {
				t.Errorf("IsLearner = %v, want %v", got, tt.learner)
			}
		})
	}
}

func TestBaseEstimator(t *testing.T) {
	var e BaseEstimator
	if e.IsFitted() {
		t.Error("zero estimator reports fitted")
	}

	e.MarkSeen()
	e.MarkSeen()
	if !e.IsFitted() {
		t.Error("estimator with observations reports unfitted")
	}
	if e.NSeen() != 2 {
		t.Errorf("NSeen() = %v, want 2", e.NSeen())
	}

	e.Reset()
	if e.IsFitted() || e.NSeen() != 0 {
		t.Error("Reset did not clear observation count")
	}
}
