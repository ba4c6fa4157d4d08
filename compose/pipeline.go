// Package compose wires stages into pipelines and parallel unions.
//
// A pipeline is an ordered sequence of stages where every element except
// possibly the last is a transformer. Records flow through the sequence one
// observation at a time, under a strict timing rule:
//
//   - PredictOne is the only path that advances unsupervised (transformer)
//     state. Each non-terminal stage observes the record and then transforms
//     it for the next stage.
//   - LearnOne re-runs the pure transforms to reproduce the features the
//     prediction saw, without a second unsupervised update, and routes the
//     learning signal to the supervised stages only.
//
// Calling PredictOne then LearnOne exactly once each on the same record
// therefore updates transformer state exactly once and supervised parameters
// exactly once.
//
// Pipelines and unions assume strictly sequential calls; no stage performs
// internal locking. Callers that share an instance across goroutines must
// serialize access themselves.
package compose

import (
	"fmt"
	"strings"

	"github.com/Bantey17/river/core/feature"
	"github.com/Bantey17/river/core/model"
	"github.com/Bantey17/river/pkg/errors"
)

// Pipeline chains stages in order. Construct with NewPipeline, Chain or
// Union; the zero value is not usable.
//
// A Pipeline whose terminal stage is itself a transformer satisfies
// model.Transformer, so it can serve as a branch of a TransformerUnion.
type Pipeline struct {
	stages []model.Stage
}

// NewPipeline builds a pipeline from the given stages. Nested pipelines are
// flattened, so composing pairwise or all at once yields the same sequence.
//
// Every stage before the last must implement model.Transformer; a
// non-terminal predictor is a configuration error reported here, not at
// first use.
func NewPipeline(stages ...model.Stage) (*Pipeline, error) {
	flat := flattenStages(stages)
	if len(flat) == 0 {
		return nil, errors.NewConfigurationError("NewPipeline", "a pipeline needs at least one stage")
	}
	for i, s := range flat[:len(flat)-1] {
		if !model.IsTransformer(s) {
			return nil, errors.NewConfigurationErrorf("NewPipeline",
				"stage %d (%s) is not a transformer but precedes the terminal stage", i, StageName(s))
		}
	}
	return &Pipeline{stages: flat}, nil
}

// flattenStages splices nested *Pipeline values into a single ordered list.
// Unions are kept intact: they are explicit boundaries, not sequences.
func flattenStages(stages []model.Stage) []model.Stage {
	flat := make([]model.Stage, 0, len(stages))
	for _, s := range stages {
		if p, ok := s.(*Pipeline); ok {
			flat = append(flat, p.stages...)
			continue
		}
		flat = append(flat, s)
	}
	return flat
}

// Chain returns a new pipeline with the given stage appended. The receiver
// is left untouched.
func (p *Pipeline) Chain(s model.Stage) (*Pipeline, error) {
	combined := make([]model.Stage, 0, len(p.stages)+1)
	combined = append(combined, p.stages...)
	combined = append(combined, s)
	return NewPipeline(combined...)
}

// Steps returns the flat ordered list of stages. Union boundaries appear as
// single *TransformerUnion elements. The returned slice is a copy.
func (p *Pipeline) Steps() []model.Stage {
	out := make([]model.Stage, len(p.stages))
	copy(out, p.stages)
	return out
}

// terminal returns the last stage.
func (p *Pipeline) terminal() model.Stage {
	return p.stages[len(p.stages)-1]
}

// PredictOne runs the record through the pipeline and returns the terminal
// stage's prediction. Each non-terminal transformer first observes the
// record (the one unsupervised update per observation) and then transforms
// it for the next stage. If the terminal stage is also a transformer it is
// observed as well.
//
// The input record is never mutated.
func (p *Pipeline) PredictOne(x feature.Record) (y float64, err error) {
	defer errors.Recover(&err, "Pipeline.PredictOne")

	last := p.terminal()
	pred, ok := last.(model.Predictor)
	if !ok {
		// Checked before any stage is touched so a failed call leaves every
		// running statistic exactly as it was.
		return 0, errors.NewCapabilityError(StageName(last), "Predictor")
	}

	for _, s := range p.stages[:len(p.stages)-1] {
		t := s.(model.Transformer)
		if err := t.ObserveOne(x); err != nil {
			return 0, err
		}
		x, err = t.TransformOne(x)
		if err != nil {
			return 0, err
		}
	}

	if t, ok := last.(model.Transformer); ok {
		if err := t.ObserveOne(x); err != nil {
			return 0, err
		}
	}
	return pred.PredictOne(x)
}

// LearnOne routes one labeled observation through the pipeline. Non-terminal
// transformers produce their output purely (no unsupervised update; that
// happened in PredictOne) and supervised transformers such as TargetAgg are
// updated with the observation only after their output has been produced, so
// the features fed downstream never contain the current target. The terminal
// stage receives the transformed record together with the target.
//
// A terminal stage without the Learner capability (a pure transformer)
// receives no learning signal.
func (p *Pipeline) LearnOne(x feature.Record, y float64) (err error) {
	defer errors.Recover(&err, "Pipeline.LearnOne")

	for _, s := range p.stages[:len(p.stages)-1] {
		t := s.(model.Transformer)
		out, err := t.TransformOne(x)
		if err != nil {
			return err
		}
		if l, ok := s.(model.Learner); ok {
			if err := l.LearnOne(x, y); err != nil {
				return err
			}
		}
		x = out
	}

	if l, ok := p.terminal().(model.Learner); ok {
		return l.LearnOne(x, y)
	}
	return nil
}

// TransformOne runs the record through every stage's pure transform. It
// never advances any state, which also makes it the replay path used by
// DebugOne. The terminal stage must be a transformer.
func (p *Pipeline) TransformOne(x feature.Record) (out feature.Record, err error) {
	defer errors.Recover(&err, "Pipeline.TransformOne")

	for _, s := range p.stages {
		t, ok := s.(model.Transformer)
		if !ok {
			return nil, errors.NewCapabilityError(StageName(s), "Transformer")
		}
		x, err = t.TransformOne(x)
		if err != nil {
			return nil, err
		}
	}
	return x, nil
}

// ObserveOne advances the unsupervised state of every stage, feeding each
// stage's transformed output to the next. This is what an enclosing pipeline
// or union calls when this pipeline is used as a transformer branch, keeping
// nested composition equivalent to inlined stages on both update channels.
func (p *Pipeline) ObserveOne(x feature.Record) (err error) {
	defer errors.Recover(&err, "Pipeline.ObserveOne")

	for i, s := range p.stages {
		t, ok := s.(model.Transformer)
		if !ok {
			return errors.NewCapabilityError(StageName(s), "Transformer")
		}
		if err := t.ObserveOne(x); err != nil {
			return err
		}
		if i == len(p.stages)-1 {
			break
		}
		x, err = t.TransformOne(x)
		if err != nil {
			return err
		}
	}
	return nil
}

// String renders the pipeline as "a | b | c".
func (p *Pipeline) String() string {
	names := make([]string, len(p.stages))
	for i, s := range p.stages {
		names[i] = StageName(s)
	}
	return strings.Join(names, " | ")
}

// StageName returns a short human-readable identifier for a stage: the
// concrete type name without package path or pointer marker. Unions and
// nested pipelines render their structure instead.
func StageName(s model.Stage) string {
	switch v := s.(type) {
	case *Pipeline:
		return "(" + v.String() + ")"
	case *TransformerUnion:
		return "(" + v.String() + ")"
	}
	name := fmt.Sprintf("%T", s)
	name = strings.TrimPrefix(name, "*")
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}
