package mlp

import "math"

// Sigmoid is the logistic function.
//
// Applies σ(x) = 1 / (1 + exp(-x)), squashing any real into (0, 1).
// Very large negative inputs yield values that round to 0 in float64;
// the open interval holds for inputs of moderate magnitude.
func Sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// SigmoidDerivative returns σ'(x) = σ(x)(1 - σ(x)).
//
// It is evaluated from the pre-activation sum x, never from a cached
// activation value that may have been overwritten since.
func SigmoidDerivative(x float64) float64 {
	s := Sigmoid(x)
	return s * (1 - s)
}
