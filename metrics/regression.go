// Package metrics provides evaluation metrics updated one prediction at a
// time. Each metric folds in a (true value, predicted value) pair with Update
// and reports its current score with Get, so an evaluation driver can track
// model quality while the stream is still running.
package metrics

import (
	"math"

	"github.com/Bantey17/river/stats"
)

// Metric is an incrementally updated evaluation score.
type Metric interface {
	// Update folds one (true, predicted) pair into the score.
	Update(yTrue, yPred float64)

	// Get returns the current score. Metrics that are undefined before the
	// first update return 0.
	Get() float64

	// Name identifies the metric in logs, e.g. "MAE".
	Name() string
}

// MAE is the running mean absolute error.
type MAE struct {
	mean stats.Mean
}

// NewMAE returns a zeroed MAE.
func NewMAE() *MAE { return &MAE{} }

// Update implements Metric.
func (m *MAE) Update(yTrue, yPred float64) {
	m.mean.Update(math.Abs(yTrue - yPred))
}

// Get implements Metric.
func (m *MAE) Get() float64 { return m.mean.Get() }

// Name implements Metric.
func (m *MAE) Name() string { return "MAE" }

// MSE is the running mean squared error.
type MSE struct {
	mean stats.Mean
}

// NewMSE returns a zeroed MSE.
func NewMSE() *MSE { return &MSE{} }

// Update implements Metric.
func (m *MSE) Update(yTrue, yPred float64) {
	diff := yTrue - yPred
	m.mean.Update(diff * diff)
}

// Get implements Metric.
func (m *MSE) Get() float64 { return m.mean.Get() }

// Name implements Metric.
func (m *MSE) Name() string { return "MSE" }

// RMSE is the running root mean squared error.
type RMSE struct {
	mse MSE
}

// NewRMSE returns a zeroed RMSE.
func NewRMSE() *RMSE { return &RMSE{} }

// Update implements Metric.
func (m *RMSE) Update(yTrue, yPred float64) { m.mse.Update(yTrue, yPred) }

// Get implements Metric.
func (m *RMSE) Get() float64 { return math.Sqrt(m.mse.Get()) }

// Name implements Metric.
func (m *RMSE) Name() string { return "RMSE" }

// R2 is the running coefficient of determination: 1 - SSE/SST, where SST is
// computed against the running mean of the true values. Returns 0 until the
// true values show any variance.
type R2 struct {
	sse  float64
	yVar *stats.Var
}

// NewR2 returns a zeroed R2.
func NewR2() *R2 {
	return &R2{yVar: stats.NewPopulationVar()}
}

// Update implements Metric.
func (m *R2) Update(yTrue, yPred float64) {
	diff := yTrue - yPred
	m.sse += diff * diff
	m.yVar.Update(yTrue)
}

// Get implements Metric.
func (m *R2) Get() float64 {
	sst := m.yVar.Get() * float64(m.yVar.N())
	if sst == 0 {
		return 0
	}
	return 1 - m.sse/sst
}

// Name implements Metric.
func (m *R2) Name() string { return "R2" }
