package mlp

import "fmt"

// TrainCase applies one online gradient-descent update for a single case
// and returns the case error measured after the update.
//
// Propagate must have been called with the same acts, w, sc and expected
// immediately before. The steps run in a fixed order and each omega sum
// reads the weights as they stood before that layer's own update:
//
//  1. hidden2 ← output: OmegaJ from W2, update W2, PsiJ = OmegaJ·σ'(ThetaJ)
//  2. hidden1 ← hidden2: OmegaK from W1, update W1, PsiK = OmegaK·σ'(ThetaK)
//  3. input ← hidden1: update W0
//  4. plain forward pass with the updated weights
//  5. error = Σ_i ½(expected[i] - out[i])²
//
// The update rule is w += learningRate · psi(dst) · activation(src).
func TrainCase(acts *Activations, w *Weights, sc *Scratch, expected []float64, learningRate float64) float64 {
	if len(expected) != len(acts.layers[3]) {
		panic(fmt.Sprintf("TrainCase: expected %d target values, got %d", len(acts.layers[3]), len(expected)))
	}

	backwardLayer(acts.layers[2], w.m[2].RawMatrix().Data, w.m[2].RawMatrix().Stride,
		sc.PsiI, sc.OmegaJ, sc.ThetaJ, sc.PsiJ, learningRate)

	backwardLayer(acts.layers[1], w.m[1].RawMatrix().Data, w.m[1].RawMatrix().Stride,
		sc.PsiJ, sc.OmegaK, sc.ThetaK, sc.PsiK, learningRate)

	// No error signal is needed past the input layer.
	in := acts.layers[0]
	raw := w.m[0].RawMatrix()
	for m, a := range in {
		row := raw.Data[m*raw.Stride : m*raw.Stride+len(sc.PsiK)]
		for k, psi := range sc.PsiK {
			row[k] += learningRate * psi * a
		}
	}

	Run(acts, w)
	return CaseError(expected, acts.layers[3])
}

// backwardLayer handles one hidden layer. For each source unit s it sums
// omega[s] = Σ_d psiDst[d]·W[s][d] from the current weights, then updates
// W[s][d] += lr·psiDst[d]·act[s], then sets psiSrc[s] = omega[s]·σ'(theta[s]).
//
// Rows are independent: the omega of row s only reads row s, which has
// not been updated yet when the sum is taken.
func backwardLayer(act, data []float64, stride int, psiDst, omega, theta, psiSrc []float64, lr float64) {
	for s, a := range act {
		row := data[s*stride : s*stride+len(psiDst)]

		var sum float64
		for d, psi := range psiDst {
			sum += psi * row[d]
		}
		omega[s] = sum

		for d, psi := range psiDst {
			row[d] += lr * psi * a
		}

		psiSrc[s] = sum * SigmoidDerivative(theta[s])
	}
}

// CaseError returns Σ_i ½(expected[i] - out[i])².
func CaseError(expected, out []float64) float64 {
	var e float64
	for i, want := range expected {
		d := want - out[i]
		e += 0.5 * d * d
	}
	return e
}
