package errors

import (
	"math"
)

// CheckScalar checks a single scalar value for numerical instability.
// Returns a NumericalInstabilityWarning wrapped with a stacktrace if the
// value is NaN or Inf, nil otherwise.
func CheckScalar(operation string, value float64, sample int64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return WithStack(NewNumericalInstabilityWarning(operation, []float64{value}, sample))
	}
	return nil
}

// CheckWeights checks the values of a named weight vector for NaN or Inf.
// At most ten offending values are collected for the error message.
func CheckWeights(operation string, weights map[string]float64, sample int64) error {
	var unstable []float64
	for _, v := range weights {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			unstable = append(unstable, v)
			if len(unstable) >= 10 {
				break
			}
		}
	}
	if len(unstable) > 0 {
		return WithStack(NewNumericalInstabilityWarning(operation, unstable, sample))
	}
	return nil
}

// SafeDivide performs division with protection against division by zero.
// Returns 0 if denominator is zero or close to zero.
func SafeDivide(numerator, denominator float64) float64 {
	if math.Abs(denominator) < 1e-10 {
		return 0
	}
	return numerator / denominator
}

// ClipValue clips a value to the range [min, max].
func ClipValue(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// ClipGradient clips gradient values to prevent explosion.
func ClipGradient(gradient []float64, maxNorm float64) []float64 {
	// Calculate L2 norm
	var norm float64
	for _, g := range gradient {
		norm += g * g
	}
	norm = math.Sqrt(norm)

	// If norm exceeds maxNorm, scale down
	if norm > maxNorm {
		scale := maxNorm / norm
		clipped := make([]float64, len(gradient))
		for i, g := range gradient {
			clipped[i] = g * scale
		}
		return clipped
	}

	return gradient
}
