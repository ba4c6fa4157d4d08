package compose

import (
	"strings"

	"github.com/Bantey17/river/core/feature"
	"github.com/Bantey17/river/core/model"
	"github.com/Bantey17/river/pkg/errors"
)

// TransformerUnion runs sibling transformers over the same input record and
// merges their outputs into one record.
//
// Branches execute in declaration order against a clone of the input, so no
// branch observes another branch's output; as long as the branches emit
// disjoint keys, execution order cannot change the merged result. A key
// emitted by more than one branch is a configuration error surfaced on the
// first call that hits it.
//
// The union itself satisfies model.Transformer, and model.Learner so that a
// supervised branch (e.g. a target aggregation) still receives the learning
// signal when the union sits inside a pipeline.
type TransformerUnion struct {
	branches []model.Stage
}

// Union builds a TransformerUnion from the given branches. Nested unions are
// flattened. Every branch must be a transformer; a branch pipeline whose
// terminal stage is a predictor is rejected here.
func Union(branches ...model.Stage) (*TransformerUnion, error) {
	flat := make([]model.Stage, 0, len(branches))
	for _, b := range branches {
		if u, ok := b.(*TransformerUnion); ok {
			flat = append(flat, u.branches...)
			continue
		}
		flat = append(flat, b)
	}
	if len(flat) == 0 {
		return nil, errors.NewConfigurationError("Union", "a union needs at least one branch")
	}
	for i, b := range flat {
		if !model.IsTransformer(b) {
			return nil, errors.NewConfigurationErrorf("Union",
				"branch %d (%s) is not a transformer", i, StageName(b))
		}
		if p, ok := b.(*Pipeline); ok {
			if !model.IsTransformer(p.terminal()) {
				return nil, errors.NewConfigurationErrorf("Union",
					"branch %d (%s) ends in a non-transformer stage", i, StageName(b))
			}
		}
	}
	return &TransformerUnion{branches: flat}, nil
}

// Branches returns the union's branches in declaration order. The returned
// slice is a copy.
func (u *TransformerUnion) Branches() []model.Stage {
	out := make([]model.Stage, len(u.branches))
	copy(out, u.branches)
	return out
}

// TransformOne implements model.Transformer. Each branch transforms a clone
// of the input; the outputs merge into a fresh record. A key collision
// aborts the call before any state is touched (transforms are pure).
func (u *TransformerUnion) TransformOne(x feature.Record) (feature.Record, error) {
	out := feature.New()
	for _, b := range u.branches {
		bx, err := b.(model.Transformer).TransformOne(x.Clone())
		if err != nil {
			return nil, err
		}
		if err := out.Merge(bx); err != nil {
			return nil, errors.Wrapf(err, "in union %s", u.String())
		}
	}
	return out, nil
}

// ObserveOne implements model.Transformer by fanning the unsupervised update
// out to every branch.
func (u *TransformerUnion) ObserveOne(x feature.Record) error {
	for _, b := range u.branches {
		if err := b.(model.Transformer).ObserveOne(x); err != nil {
			return err
		}
	}
	return nil
}

// LearnOne implements model.Learner by fanning the supervised update out to
// the branches that carry the Learner capability. Branches without it are
// skipped.
func (u *TransformerUnion) LearnOne(x feature.Record, y float64) error {
	for _, b := range u.branches {
		if l, ok := b.(model.Learner); ok {
			if err := l.LearnOne(x, y); err != nil {
				return err
			}
		}
	}
	return nil
}

// String renders the union as "a + b".
func (u *TransformerUnion) String() string {
	names := make([]string, len(u.branches))
	for i, b := range u.branches {
		names[i] = StageName(b)
	}
	return strings.Join(names, " + ")
}
