package mlp

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Run performs a plain forward pass.
//
// For every transition n and destination unit j it computes
// sum_k acts[n][k]·w[n][k][j] and stores sigmoid(sum) in acts[n+1][j].
// Layer 0 of acts must already hold the inputs.
func Run(acts *Activations, w *Weights) {
	checkShapes(acts, w)
	for n := 0; n < numTransitions; n++ {
		forwardLayer(acts.layers[n], w.m[n], acts.layers[n+1], nil)
	}
}

// Propagate performs the instrumented forward pass used by training.
//
// It runs the three transitions explicitly, recording the pre-activation
// sums of hidden1 (ThetaK), hidden2 (ThetaJ) and output (ThetaI) in sc,
// then computes the output error signal
//
//	PsiI[i] = (expected[i] - out[i]) · σ'(ThetaI[i])
//
// It returns the output layer of acts.
func Propagate(acts *Activations, w *Weights, expected []float64, sc *Scratch) []float64 {
	checkShapes(acts, w)
	if len(expected) != len(acts.layers[3]) {
		panic(fmt.Sprintf("Propagate: expected %d target values, got %d", len(acts.layers[3]), len(expected)))
	}

	// input → hidden1
	forwardLayer(acts.layers[0], w.m[0], acts.layers[1], sc.ThetaK)
	// hidden1 → hidden2
	forwardLayer(acts.layers[1], w.m[1], acts.layers[2], sc.ThetaJ)
	// hidden2 → output
	forwardLayer(acts.layers[2], w.m[2], acts.layers[3], sc.ThetaI)

	out := acts.layers[3]
	for i := range out {
		sc.PsiI[i] = (expected[i] - out[i]) * SigmoidDerivative(sc.ThetaI[i])
	}
	return out
}

// forwardLayer computes dst[j] = σ(Σ_k src[k]·m[k][j]). When theta is not
// nil the pre-activation sums are stored there as well.
func forwardLayer(src []float64, m *mat.Dense, dst, theta []float64) {
	raw := m.RawMatrix()
	for j := range dst {
		var sum float64
		for k, a := range src {
			sum += a * raw.Data[k*raw.Stride+j]
		}
		if theta != nil {
			theta[j] = sum
		}
		dst[j] = Sigmoid(sum)
	}
}

func checkShapes(acts *Activations, w *Weights) {
	widths := w.topo.Widths()
	for n := 0; n < numLayers; n++ {
		if len(acts.layers[n]) != widths[n] {
			panic(fmt.Sprintf("mlp: activation layer %d has %d units, weights expect %d", n, len(acts.layers[n]), widths[n]))
		}
	}
}
