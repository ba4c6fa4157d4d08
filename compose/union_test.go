package compose_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bantey17/river/compose"
	"github.com/Bantey17/river/core/feature"
	"github.com/Bantey17/river/featx"
	riverrors "github.com/Bantey17/river/pkg/errors"
	"github.com/Bantey17/river/stats"
)

// renamer emits the input's features under new names. It also mutates its
// input record, which the union must shield sibling branches from.
type renamer struct {
	prefix string
}

func (r *renamer) TransformOne(x feature.Record) (feature.Record, error) {
	out := feature.New()
	for _, k := range x.Keys() {
		v, _ := x.Get(k)
		out.Set(r.prefix+k, v)
		x.Set(k, feature.Str("clobbered"))
	}
	return out, nil
}

func (r *renamer) ObserveOne(feature.Record) error { return nil }

func TestUnionMergesDisjointBranches(t *testing.T) {
	u, err := compose.Union(&renamer{prefix: "a_"}, &renamer{prefix: "b_"})
	require.NoError(t, err)

	out, err := u.TransformOne(feature.Record{"x": feature.Num(1)})
	require.NoError(t, err)

	assert.Len(t, out, 2)
	va, _ := out.Float("a_x")
	vb, _ := out.Float("b_x")
	assert.Equal(t, 1.0, va)
	assert.Equal(t, 1.0, vb)
}

func TestUnionBranchIsolation(t *testing.T) {
	// The first branch mutates its input. The second must still see the
	// original record, and so must the caller.
	u, err := compose.Union(&renamer{prefix: "a_"}, &renamer{prefix: "b_"})
	require.NoError(t, err)

	x := feature.Record{"x": feature.Num(1)}
	out, err := u.TransformOne(x)
	require.NoError(t, err)

	vb, ok := out.Float("b_x")
	require.True(t, ok)
	assert.Equal(t, 1.0, vb, "second branch saw the first branch's mutation")

	vx, ok := x.Float("x")
	require.True(t, ok)
	assert.Equal(t, 1.0, vx, "caller's record was mutated through a branch")
}

func TestUnionKeyCollision(t *testing.T) {
	u, err := compose.Union(&renamer{prefix: "same_"}, &renamer{prefix: "same_"})
	require.NoError(t, err)

	_, err = u.TransformOne(feature.Record{"x": feature.Num(1)})
	require.Error(t, err)

	var cfgErr *riverrors.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestUnionOrderIndependence(t *testing.T) {
	ab, err := compose.Union(&renamer{prefix: "a_"}, &renamer{prefix: "b_"})
	require.NoError(t, err)
	ba, err := compose.Union(&renamer{prefix: "b_"}, &renamer{prefix: "a_"})
	require.NoError(t, err)

	x := feature.Record{"x": feature.Num(2)}
	out1, err := ab.TransformOne(x.Clone())
	require.NoError(t, err)
	out2, err := ba.TransformOne(x.Clone())
	require.NoError(t, err)

	assert.True(t, out1.Equal(out2), "disjoint branches must commute: %v vs %v", out1, out2)
}

func TestUnionFlattening(t *testing.T) {
	inner, err := compose.Union(&renamer{prefix: "a_"}, &renamer{prefix: "b_"})
	require.NoError(t, err)
	outer, err := compose.Union(inner, &renamer{prefix: "c_"})
	require.NoError(t, err)

	assert.Len(t, outer.Branches(), 3)
	assert.Equal(t, "renamer + renamer + renamer", outer.String())
}

func TestUnionRejectsEmptyAndNonTransformer(t *testing.T) {
	_, err := compose.Union()
	require.Error(t, err)

	_, err = compose.Union(&countingPredictor{})
	require.Error(t, err)
}

func TestUnionRejectsPredictorTerminalPipeline(t *testing.T) {
	branch, err := compose.NewPipeline(&renamer{prefix: "a_"}, &countingPredictor{})
	require.NoError(t, err)

	_, err = compose.Union(branch, &renamer{prefix: "b_"})
	require.Error(t, err)

	var cfgErr *riverrors.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestUnionRoutesLearnToSupervisedBranches(t *testing.T) {
	target, err := featx.NewTargetAgg([]string{"shop"}, func() stats.Univariate { return stats.NewMean() })
	require.NoError(t, err)
	u, err := compose.Union(&renamer{prefix: "r_"}, target)
	require.NoError(t, err)

	x := feature.Record{"shop": feature.Str("north"), "x": feature.Num(1)}
	require.NoError(t, u.LearnOne(x.Clone(), 10))
	require.NoError(t, u.LearnOne(x.Clone(), 20))

	out, err := target.TransformOne(x.Clone())
	require.NoError(t, err)
	v, ok := out.Float(target.FeatureName())
	require.True(t, ok)
	assert.Equal(t, 15.0, v)
}

func TestUnionInsidePipeline(t *testing.T) {
	u, err := compose.Union(&renamer{prefix: "a_"}, &renamer{prefix: "b_"})
	require.NoError(t, err)
	pred := &countingPredictor{}
	p, err := compose.NewPipeline(u, pred)
	require.NoError(t, err)

	// The union stays a single step; pipelines flatten, unions do not.
	assert.Len(t, p.Steps(), 2)
	assert.Equal(t, "(renamer + renamer) | countingPredictor", p.String())

	_, err = p.PredictOne(feature.Record{"x": feature.Num(1)})
	require.NoError(t, err)
	assert.Equal(t, 1, pred.predicts)
}

func TestNestedPipelineAsUnionBranch(t *testing.T) {
	sub, err := compose.NewPipeline(&renamer{prefix: "p_"}, &renamer{prefix: "q_"})
	require.NoError(t, err)
	u, err := compose.Union(sub, &renamer{prefix: "r_"})
	require.NoError(t, err)

	out, err := u.TransformOne(feature.Record{"x": feature.Num(1)})
	require.NoError(t, err)

	// The sub-pipeline branch applies its stages in sequence.
	_, ok := out.Get("q_p_x")
	assert.True(t, ok, "got %v", out)
	_, ok = out.Get("r_x")
	assert.True(t, ok)
}
