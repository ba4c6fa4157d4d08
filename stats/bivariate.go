package stats

import "math"

// Cov is a running sample covariance between two variables, computed with a
// Welford-style recurrence.
type Cov struct {
	meanX Mean
	meanY Mean
	cm    float64
	ddof  int64
}

// NewCov returns a running sample covariance (ddof=1).
func NewCov() *Cov { return &Cov{ddof: 1} }

// Update implements Bivariate.
func (c *Cov) Update(x, y float64) {
	dx := x - c.meanX.Get()
	c.meanX.Update(x)
	c.meanY.Update(y)
	c.cm += dx * (y - c.meanY.Get())
}

// Get implements Bivariate. Returns 0 while fewer than ddof+1 observations
// have been seen.
func (c *Cov) Get() float64 {
	if c.meanX.N() <= c.ddof {
		return 0
	}
	return c.cm / float64(c.meanX.N()-c.ddof)
}

// Name implements Bivariate.
func (c *Cov) Name() string { return "cov" }

// N returns the number of observation pairs folded in so far.
func (c *Cov) N() int64 { return c.meanX.N() }

// PearsonCorr is a running Pearson correlation coefficient.
type PearsonCorr struct {
	cov  Cov
	varX Var
	varY Var
}

// NewPearsonCorr returns a zeroed PearsonCorr.
func NewPearsonCorr() *PearsonCorr {
	return &PearsonCorr{cov: Cov{ddof: 1}, varX: Var{ddof: 1}, varY: Var{ddof: 1}}
}

// Update implements Bivariate.
func (p *PearsonCorr) Update(x, y float64) {
	p.cov.Update(x, y)
	p.varX.Update(x)
	p.varY.Update(y)
}

// Get implements Bivariate. Returns 0 when either variance is zero.
func (p *PearsonCorr) Get() float64 {
	sx := math.Sqrt(p.varX.Get())
	sy := math.Sqrt(p.varY.Get())
	if sx == 0 || sy == 0 {
		return 0
	}
	return p.cov.Get() / (sx * sy)
}

// Name implements Bivariate.
func (p *PearsonCorr) Name() string { return "pearson" }
