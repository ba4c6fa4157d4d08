// Package featx provides feature-extraction stages backed by a keyed store
// of running statistics.
//
// Both stages group observations by one or more fields and emit the current
// value of a per-group statistic as a new feature. The store is read-before-
// write: a transform emits the statistic as of the previous observations and
// never folds in the current one, so a prediction can never see information
// derived from the value it is about to predict. Entries are created lazily
// on the first update for a key and are never evicted; bounding the store is
// the caller's concern.
package featx

import (
	"strings"

	"github.com/Bantey17/river/core/feature"
	"github.com/Bantey17/river/core/model"
	"github.com/Bantey17/river/pkg/errors"
	"github.com/Bantey17/river/stats"
)

// groupBy is the keyed statistic store shared by Agg and TargetAgg. It owns
// its entries exclusively; no other component mutates them.
type groupBy struct {
	by      []string
	factory stats.Factory
	groups  map[string]stats.Univariate
}

func newGroupBy(by []string, how stats.Factory) groupBy {
	return groupBy{by: by, factory: how, groups: make(map[string]stats.Univariate)}
}

// key builds the composite group key by joining the string form of each
// grouping field's value. A missing field is an input-shape error.
func (g *groupBy) key(stage string, x feature.Record) (string, error) {
	parts := make([]string, len(g.by))
	for i, field := range g.by {
		v, ok := x.Get(field)
		if !ok {
			return "", errors.NewInputShapeError(stage, field, "missing group-by field")
		}
		parts[i] = v.String()
	}
	return strings.Join(parts, "_"), nil
}

// current returns the statistic's present value for the key without creating
// an entry: an unseen group reads as the statistic's identity value.
func (g *groupBy) current(key string) float64 {
	if st, ok := g.groups[key]; ok {
		return st.Get()
	}
	return g.factory().Get()
}

// getOrCreate performs the lazy insert on the update path.
func (g *groupBy) getOrCreate(key string) stats.Univariate {
	st, ok := g.groups[key]
	if !ok {
		st = g.factory()
		g.groups[key] = st
	}
	return st
}

// Agg emits, for each record, the running statistic of feature `on` within
// the record's group. The statistic advances on the unsupervised channel, so
// it is updated when the pipeline predicts, after the feature has been
// emitted for that observation.
type Agg struct {
	model.BaseEstimator
	groupBy
	on   string
	name string
}

// NewAgg builds an aggregation stage computing how(on) grouped by the given
// fields. The emitted feature is named "<on>_<stat>_by_<by...>".
func NewAgg(on string, by []string, how stats.Factory) (*Agg, error) {
	if on == "" {
		return nil, errors.NewConfigurationError("NewAgg", "the aggregated feature name is empty")
	}
	if len(by) == 0 {
		return nil, errors.NewConfigurationError("NewAgg", "at least one group-by field is required")
	}
	return &Agg{
		groupBy: newGroupBy(by, how),
		on:      on,
		name:    on + "_" + how().Name() + "_by_" + strings.Join(by, "_and_"),
	}, nil
}

// FeatureName returns the name of the feature this stage emits.
func (a *Agg) FeatureName() string { return a.name }

// TransformOne implements model.Transformer. It emits the group's current
// statistic as the stage's sole output feature and touches no internal state.
// Emitting only the extracted feature keeps sibling union branches disjoint;
// raw features that should survive the union travel through a Select branch.
func (a *Agg) TransformOne(x feature.Record) (feature.Record, error) {
	key, err := a.key("Agg", x)
	if err != nil {
		return nil, err
	}
	out := feature.New()
	out.Set(a.name, feature.Num(a.current(key)))
	return out, nil
}

// ObserveOne implements model.Transformer. It folds the record's `on` value
// into the group's statistic, creating the entry on first encounter. The
// input is validated in full before any state changes.
func (a *Agg) ObserveOne(x feature.Record) error {
	key, err := a.key("Agg", x)
	if err != nil {
		return err
	}
	v, ok := x.Get(a.on)
	if !ok {
		return errors.NewInputShapeError("Agg", a.on, "missing aggregated feature")
	}
	val, ok := v.Float()
	if !ok {
		return errors.NewInputShapeError("Agg", a.on, "aggregated feature is not numeric")
	}
	a.getOrCreate(key).Update(val)
	a.MarkSeen()
	return nil
}

// Groups returns the number of distinct group keys seen so far.
func (a *Agg) Groups() int { return len(a.groups) }

// String renders the stage with its emitted feature name.
func (a *Agg) String() string { return "Agg(" + a.name + ")" }
