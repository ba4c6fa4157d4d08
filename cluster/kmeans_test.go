package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bantey17/river/core/feature"
	"github.com/Bantey17/river/core/model"
)

func rec(x, y float64) feature.Record {
	return feature.Record{"x": feature.Num(x), "y": feature.Num(y)}
}

func TestKMeansCapabilities(t *testing.T) {
	km := NewKMeans(WithK(2))
	assert.True(t, model.IsTransformer(km))
	assert.True(t, model.IsPredictor(km))
	assert.False(t, model.IsLearner(km), "clustering has no supervised channel")
}

func TestKMeansSeparatesClusters(t *testing.T) {
	km := NewKMeans(WithK(2))

	// Two well-separated blobs around (0,0) and (10,10).
	for i := 0; i < 50; i++ {
		d := float64(i%3) * 0.1
		require.NoError(t, km.ObserveOne(rec(d, -d)))
		require.NoError(t, km.ObserveOne(rec(10+d, 10-d)))
	}

	a, err := km.PredictOne(rec(0.2, 0.1))
	require.NoError(t, err)
	b, err := km.PredictOne(rec(9.8, 10.2))
	require.NoError(t, err)
	assert.NotEqual(t, a, b, "points from different blobs share a cluster")

	a2, err := km.PredictOne(rec(-0.3, 0.0))
	require.NoError(t, err)
	assert.Equal(t, a, a2, "nearby points landed in different clusters")
}

func TestKMeansCenterConverges(t *testing.T) {
	km := NewKMeans(WithK(1))
	for i := 0; i < 100; i++ {
		require.NoError(t, km.ObserveOne(rec(4, 6)))
	}

	centers := km.Centers()
	require.Len(t, centers, 1)
	assert.InDelta(t, 4.0, centers[0]["x"], 1e-9)
	assert.InDelta(t, 6.0, centers[0]["y"], 1e-9)
}

func TestKMeansTransformAddsDistances(t *testing.T) {
	km := NewKMeans(WithK(2))
	require.NoError(t, km.ObserveOne(rec(0, 0)))
	require.NoError(t, km.ObserveOne(rec(3, 4)))

	out, err := km.TransformOne(rec(0, 0))
	require.NoError(t, err)

	d0, ok := out.Float("cluster_0_dist")
	require.True(t, ok)
	d1, ok := out.Float("cluster_1_dist")
	require.True(t, ok)
	assert.InDelta(t, 0.0, d0, 1e-9)
	assert.InDelta(t, 5.0, d1, 1e-9)

	// Original features survive the augmentation.
	_, ok = out.Float("x")
	assert.True(t, ok)
}

func TestKMeansTransformIsPure(t *testing.T) {
	km := NewKMeans(WithK(1))
	require.NoError(t, km.ObserveOne(rec(1, 1)))

	before := km.Centers()
	for i := 0; i < 3; i++ {
		_, err := km.TransformOne(rec(100, 100))
		require.NoError(t, err)
	}
	assert.Equal(t, before, km.Centers())
	assert.Equal(t, int64(1), km.NSeen())
}

func TestKMeansPredictUnfitted(t *testing.T) {
	km := NewKMeans(WithK(2))
	_, err := km.PredictOne(rec(1, 2))
	require.Error(t, err)
}

func TestKMeansRejectsNonNumericRecord(t *testing.T) {
	km := NewKMeans(WithK(1))
	err := km.ObserveOne(feature.Record{"name": feature.Str("abc")})
	require.Error(t, err)
	assert.Empty(t, km.Centers())
}
