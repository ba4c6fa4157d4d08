// Package model defines the capability contracts satisfied by every pipeline
// stage.
//
// A stage declares what it can do by implementing one or more of the small
// interfaces below. Capabilities are checked by the pipeline at construction
// time, never by probing method presence on first call.
//
// Update channels are strictly separated: ObserveOne is the unsupervised
// channel (running statistics advance when a record is seen), LearnOne is the
// supervised channel (parameters advance when the ground truth arrives). A
// call on one channel must never trigger updates on the other.
package model

import (
	"github.com/Bantey17/river/core/feature"
)

// Stage is the common umbrella for pipeline steps. Concrete capabilities are
// discovered with type assertions against the interfaces below.
type Stage interface{}

// Transformer maps a feature record to a (possibly augmented) record and
// maintains unsupervised internal state.
//
// TransformOne must be a pure projection from the current internal state: it
// never mutates the transformer and never mutates its input record. State
// advances only through ObserveOne. Both methods must be atomic per call:
// validate the input fully before committing any internal change, so an
// error leaves the stage exactly as it was.
type Transformer interface {
	// TransformOne produces the output record for x using the statistics
	// accumulated so far.
	TransformOne(x feature.Record) (feature.Record, error)

	// ObserveOne folds x into the transformer's running statistics. This is
	// the unsupervised update channel.
	ObserveOne(x feature.Record) error
}

// Predictor produces a prediction from a feature record.
type Predictor interface {
	// PredictOne returns the prediction for x without mutating any state.
	PredictOne(x feature.Record) (float64, error)
}

// Learner updates supervised internal state (e.g. model weights) from one
// labeled observation. This is the supervised update channel.
type Learner interface {
	LearnOne(x feature.Record, y float64) error
}

// IsTransformer reports whether the stage carries the Transformer capability.
func IsTransformer(s Stage) bool {
	_, ok := s.(Transformer)
	return ok
}

// IsPredictor reports whether the stage carries the Predictor capability.
func IsPredictor(s Stage) bool {
	_, ok := s.(Predictor)
	return ok
}

// IsLearner reports whether the stage carries the Learner capability.
func IsLearner(s Stage) bool {
	_, ok := s.(Learner)
	return ok
}
