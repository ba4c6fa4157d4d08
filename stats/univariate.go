package stats

import "math"

// Count counts observations.
type Count struct {
	n int64
}

// NewCount returns a zeroed Count.
func NewCount() *Count { return &Count{} }

// Update implements Univariate.
func (c *Count) Update(float64) { c.n++ }

// Get implements Univariate.
func (c *Count) Get() float64 { return float64(c.n) }

// Name implements Univariate.
func (c *Count) Name() string { return "count" }

// N returns the count as an integer.
func (c *Count) N() int64 { return c.n }

// Sum accumulates the sum of observations.
type Sum struct {
	sum float64
}

// NewSum returns a zeroed Sum.
func NewSum() *Sum { return &Sum{} }

// Update implements Univariate.
func (s *Sum) Update(x float64) { s.sum += x }

// Get implements Univariate.
func (s *Sum) Get() float64 { return s.sum }

// Name implements Univariate.
func (s *Sum) Name() string { return "sum" }

// Mean is a running arithmetic mean computed with Welford's recurrence, which
// stays stable when observation counts grow large.
type Mean struct {
	n    int64
	mean float64
}

// NewMean returns a zeroed Mean.
func NewMean() *Mean { return &Mean{} }

// Update implements Univariate.
func (m *Mean) Update(x float64) {
	m.n++
	m.mean += (x - m.mean) / float64(m.n)
}

// Get implements Univariate. Returns 0 before the first observation.
func (m *Mean) Get() float64 { return m.mean }

// Name implements Univariate.
func (m *Mean) Name() string { return "mean" }

// N returns the number of observations folded in so far.
func (m *Mean) N() int64 { return m.n }

// Var is a running variance computed with Welford's algorithm.
type Var struct {
	mean Mean
	m2   float64
	ddof int64
}

// NewVar returns a running sample variance (ddof=1).
func NewVar() *Var { return &Var{ddof: 1} }

// NewPopulationVar returns a running population variance (ddof=0).
func NewPopulationVar() *Var { return &Var{} }

// Update implements Univariate.
func (v *Var) Update(x float64) {
	before := v.mean.Get()
	v.mean.Update(x)
	v.m2 += (x - before) * (x - v.mean.Get())
}

// Get implements Univariate. Returns 0 while fewer than ddof+1 observations
// have been seen.
func (v *Var) Get() float64 {
	if v.mean.N() <= v.ddof {
		return 0
	}
	return v.m2 / float64(v.mean.N()-v.ddof)
}

// Name implements Univariate.
func (v *Var) Name() string { return "var" }

// Mean exposes the running mean tracked alongside the variance.
func (v *Var) Mean() float64 { return v.mean.Get() }

// N returns the number of observations folded in so far.
func (v *Var) N() int64 { return v.mean.N() }

// Std derives the running standard deviation from Var.
type Std struct {
	variance Var
}

// NewStd returns a running sample standard deviation.
func NewStd() *Std { return &Std{variance: Var{ddof: 1}} }

// Update implements Univariate.
func (s *Std) Update(x float64) { s.variance.Update(x) }

// Get implements Univariate.
func (s *Std) Get() float64 { return math.Sqrt(s.variance.Get()) }

// Name implements Univariate.
func (s *Std) Name() string { return "std" }

// EWMean is an exponentially weighted mean. Recent observations weigh more;
// alpha in (0, 1] controls how fast old observations fade.
type EWMean struct {
	alpha float64
	mean  float64
	seen  bool
}

// NewEWMean returns an exponentially weighted mean with the given alpha.
// The first observation initializes the mean directly.
func NewEWMean(alpha float64) *EWMean {
	return &EWMean{alpha: alpha}
}

// Update implements Univariate.
func (e *EWMean) Update(x float64) {
	if !e.seen {
		e.mean = x
		e.seen = true
		return
	}
	e.mean = e.alpha*x + (1-e.alpha)*e.mean
}

// Get implements Univariate.
func (e *EWMean) Get() float64 { return e.mean }

// Name implements Univariate.
func (e *EWMean) Name() string { return "ewm" }

// Min tracks the smallest observation.
type Min struct {
	min  float64
	seen bool
}

// NewMin returns a zeroed Min.
func NewMin() *Min { return &Min{} }

// Update implements Univariate.
func (m *Min) Update(x float64) {
	if !m.seen || x < m.min {
		m.min = x
		m.seen = true
	}
}

// Get implements Univariate. Returns 0 before the first observation.
func (m *Min) Get() float64 { return m.min }

// Name implements Univariate.
func (m *Min) Name() string { return "min" }

// Max tracks the largest observation.
type Max struct {
	max  float64
	seen bool
}

// NewMax returns a zeroed Max.
func NewMax() *Max { return &Max{} }

// Update implements Univariate.
func (m *Max) Update(x float64) {
	if !m.seen || x > m.max {
		m.max = x
		m.seen = true
	}
}

// Get implements Univariate. Returns 0 before the first observation.
func (m *Max) Get() float64 { return m.max }

// Name implements Univariate.
func (m *Max) Name() string { return "max" }
