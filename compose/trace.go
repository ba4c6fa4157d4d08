package compose

import (
	"fmt"
	"strings"

	"github.com/Bantey17/river/core/feature"
	"github.com/Bantey17/river/core/model"
	"github.com/Bantey17/river/pkg/errors"
)

// TraceStep is one intermediate snapshot captured by DebugOne: the record as
// it left a stage. For union branches, Branch names the branch whose output
// was captured before merging.
type TraceStep struct {
	Stage  string
	Branch string
	Record feature.Record
}

// Trace is the ordered sequence of intermediate records for a single call.
// It is finite and belongs to that call alone; run DebugOne again for a
// fresh one.
type Trace struct {
	Input         feature.Record
	Steps         []TraceStep
	Prediction    float64
	HasPrediction bool
}

// DebugOne replays the record through the pipeline's pure transforms and
// captures the record state after each stage, with per-branch snapshots
// inside unions. No stage state is mutated: the replay observes exactly what
// PredictOne would feed each stage given the current statistics, without
// advancing them. If the pipeline ends in a predictor the trace also carries
// its prediction.
func (p *Pipeline) DebugOne(x feature.Record) (tr *Trace, err error) {
	defer errors.Recover(&err, "Pipeline.DebugOne")

	tr = &Trace{Input: x.Clone()}
	last := p.terminal()

	for _, s := range p.stages[:len(p.stages)-1] {
		x, err = p.traceStage(tr, s, x)
		if err != nil {
			return nil, err
		}
	}

	if pred, ok := last.(model.Predictor); ok {
		y, err := pred.PredictOne(x)
		if err != nil {
			return nil, err
		}
		tr.Prediction = y
		tr.HasPrediction = true
		return tr, nil
	}

	// Transformer-terminal pipeline: the final record is the result.
	if _, err = p.traceStage(tr, last, x); err != nil {
		return nil, err
	}
	return tr, nil
}

// traceStage runs one stage's pure transform, appending snapshots to the
// trace. Unions get one snapshot per branch plus the merged record.
func (p *Pipeline) traceStage(tr *Trace, s model.Stage, x feature.Record) (feature.Record, error) {
	if u, ok := s.(*TransformerUnion); ok {
		merged := feature.New()
		for _, b := range u.branches {
			bx, err := b.(model.Transformer).TransformOne(x.Clone())
			if err != nil {
				return nil, err
			}
			tr.Steps = append(tr.Steps, TraceStep{
				Stage:  StageName(u),
				Branch: StageName(b),
				Record: bx.Clone(),
			})
			if err := merged.Merge(bx); err != nil {
				return nil, errors.Wrapf(err, "in union %s", u.String())
			}
		}
		tr.Steps = append(tr.Steps, TraceStep{Stage: StageName(u), Record: merged.Clone()})
		return merged, nil
	}

	t, ok := s.(model.Transformer)
	if !ok {
		return nil, errors.NewCapabilityError(StageName(s), "Transformer")
	}
	out, err := t.TransformOne(x)
	if err != nil {
		return nil, err
	}
	tr.Steps = append(tr.Steps, TraceStep{Stage: StageName(s), Record: out.Clone()})
	return out, nil
}

// String renders the trace for humans:
//
//	0. Input              {x: 1}
//	1. StandardScaler     {x: -1.22}
//	Prediction: 4.2
func (t *Trace) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "0. Input  %s\n", t.Input)
	for i, step := range t.Steps {
		if step.Branch != "" {
			fmt.Fprintf(&sb, "%d. %s / %s  %s\n", i+1, step.Stage, step.Branch, step.Record)
			continue
		}
		fmt.Fprintf(&sb, "%d. %s  %s\n", i+1, step.Stage, step.Record)
	}
	if t.HasPrediction {
		fmt.Fprintf(&sb, "Prediction: %g\n", t.Prediction)
	}
	return sb.String()
}
