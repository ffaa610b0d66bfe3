package mlp

import (
	"fmt"
)

// Activations holds the current value of every unit, one vector per layer.
//
// Layer 0 holds the raw external inputs and is never passed through the
// sigmoid. Layers 1..3 are overwritten by every propagation.
type Activations struct {
	layers [numLayers][]float64
}

// NewActivations allocates zeroed vectors sized for topo.
func NewActivations(topo Topology) *Activations {
	a := &Activations{}
	for n, w := range topo.Widths() {
		a.layers[n] = make([]float64, w)
	}
	return a
}

// Layer returns the vector for layer n. It aliases the buffer.
func (a *Activations) Layer(n int) []float64 {
	return a.layers[n]
}

// Input returns layer 0.
func (a *Activations) Input() []float64 { return a.layers[0] }

// Hidden1 returns layer 1.
func (a *Activations) Hidden1() []float64 { return a.layers[1] }

// Hidden2 returns layer 2.
func (a *Activations) Hidden2() []float64 { return a.layers[2] }

// Output returns layer 3.
func (a *Activations) Output() []float64 { return a.layers[3] }

// SetInput copies in into layer 0.
func (a *Activations) SetInput(in []float64) {
	if len(in) != len(a.layers[0]) {
		panic(fmt.Sprintf("Activations.SetInput: expected %d inputs, got %d", len(a.layers[0]), len(in)))
	}
	copy(a.layers[0], in)
}

// Scratch holds per-case intermediate values of the backward pass.
//
// Suffix k refers to hidden1 units, j to hidden2 units and i to output
// units. Theta is a pre-activation sum, Psi a local error signal and Omega
// the weighted sum of downstream psi values. All fields are rewritten for
// every case.
type Scratch struct {
	ThetaK, ThetaJ, ThetaI []float64
	PsiK, PsiJ, PsiI       []float64
	OmegaK, OmegaJ         []float64
}

// NewScratch allocates scratch vectors sized for topo.
func NewScratch(topo Topology) *Scratch {
	return &Scratch{
		ThetaK: make([]float64, topo.Hidden1),
		ThetaJ: make([]float64, topo.Hidden2),
		ThetaI: make([]float64, topo.Output),
		PsiK:   make([]float64, topo.Hidden1),
		PsiJ:   make([]float64, topo.Hidden2),
		PsiI:   make([]float64, topo.Output),
		OmegaK: make([]float64, topo.Hidden1),
		OmegaJ: make([]float64, topo.Hidden2),
	}
}
