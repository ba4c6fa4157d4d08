package linear

// Option is a function that configures LinearRegression
type Option func(*LinearRegression)

// WithLearningRate sets the base step size eta0 (default 0.01)
func WithLearningRate(eta0 float64) Option {
	return func(lr *LinearRegression) {
		lr.eta0 = eta0
	}
}

// WithInvScaling makes the step size decay as eta0 / (n+1)^power, where n is
// the number of observations learned so far
func WithInvScaling(power float64) Option {
	return func(lr *LinearRegression) {
		lr.schedule = scheduleInvScaling
		lr.power = power
	}
}

// WithL2 sets the L2 regularization strength (default 0)
func WithL2(l2 float64) Option {
	return func(lr *LinearRegression) {
		lr.l2 = l2
	}
}

// WithGradientClipping clips each gradient step to the given L2 norm
func WithGradientClipping(maxNorm float64) Option {
	return func(lr *LinearRegression) {
		lr.clipNorm = maxNorm
	}
}
