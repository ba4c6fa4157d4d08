// Package stats provides running statistics updated one observation at a
// time. Every statistic starts from its identity value and can be queried at
// any point, which is what the aggregation stages rely on for their
// read-before-write contract.
package stats

// Univariate is a running statistic over a single variable.
type Univariate interface {
	// Update folds one observation into the statistic.
	Update(x float64)

	// Get returns the current value of the statistic. Statistics that are
	// undefined before any observation return 0.
	Get() float64

	// Name identifies the statistic in generated feature names, e.g. "mean".
	Name() string
}

// Bivariate is a running statistic over a pair of variables.
type Bivariate interface {
	Update(x, y float64)
	Get() float64
	Name() string
}

// Factory produces fresh univariate statistics. Aggregation stages use one
// per group key.
type Factory func() Univariate
