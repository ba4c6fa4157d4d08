package featx

import (
	"strings"

	"github.com/Bantey17/river/core/feature"
	"github.com/Bantey17/river/core/model"
	"github.com/Bantey17/river/pkg/errors"
	"github.com/Bantey17/river/stats"
)

// TargetAgg emits, for each record, the running statistic of the target
// within the record's group. Because the statistic is derived from the label,
// it advances on the supervised channel only: the feature emitted for the
// Nth observation of a group reflects the first N-1 targets, never the Nth.
type TargetAgg struct {
	model.BaseEstimator
	groupBy
	name string
}

// NewTargetAgg builds a target aggregation grouped by the given fields. The
// emitted feature is named "target_<stat>_by_<by...>".
func NewTargetAgg(by []string, how stats.Factory) (*TargetAgg, error) {
	if len(by) == 0 {
		return nil, errors.NewConfigurationError("NewTargetAgg", "at least one group-by field is required")
	}
	return &TargetAgg{
		groupBy: newGroupBy(by, how),
		name:    "target_" + how().Name() + "_by_" + strings.Join(by, "_and_"),
	}, nil
}

// FeatureName returns the name of the feature this stage emits.
func (a *TargetAgg) FeatureName() string { return a.name }

// TransformOne implements model.Transformer. It emits the group's current
// target statistic as the stage's sole output feature and touches no internal
// state.
func (a *TargetAgg) TransformOne(x feature.Record) (feature.Record, error) {
	key, err := a.key("TargetAgg", x)
	if err != nil {
		return nil, err
	}
	out := feature.New()
	out.Set(a.name, feature.Num(a.current(key)))
	return out, nil
}

// ObserveOne implements model.Transformer. The statistic is label-driven, so
// the unsupervised channel carries nothing for this stage.
func (a *TargetAgg) ObserveOne(feature.Record) error { return nil }

// LearnOne implements model.Learner. It folds the target into the group's
// statistic, creating the entry on first encounter. The pipeline calls this
// after the stage has produced its output for the observation, which is what
// keeps the emitted feature one observation behind the store.
func (a *TargetAgg) LearnOne(x feature.Record, y float64) error {
	key, err := a.key("TargetAgg", x)
	if err != nil {
		return err
	}
	a.getOrCreate(key).Update(y)
	a.MarkSeen()
	return nil
}

// Groups returns the number of distinct group keys seen so far.
func (a *TargetAgg) Groups() int { return len(a.groups) }

// String renders the stage with its emitted feature name.
func (a *TargetAgg) String() string { return "TargetAgg(" + a.name + ")" }
