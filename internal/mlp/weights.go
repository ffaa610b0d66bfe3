package mlp

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const (
	numLayers      = 4
	numTransitions = numLayers - 1
)

// RandSource supplies uniform values in [0, 1).
//
// *rand.Rand from math/rand and math/rand/v2 both satisfy it.
type RandSource interface {
	Float64() float64
}

// Weights owns the three weight matrices of the network.
//
// Matrix n connects layer n to layer n+1. Rows index source units and
// columns index destination units, so At(k, j) is the weight from unit k
// of layer n to unit j of layer n+1.
type Weights struct {
	topo Topology
	m    [numTransitions]*mat.Dense
}

// NewWeights allocates zeroed weight matrices sized exactly for topo.
func NewWeights(topo Topology) (*Weights, error) {
	if err := topo.Validate(); err != nil {
		return nil, err
	}
	widths := topo.Widths()
	w := &Weights{topo: topo}
	for n := 0; n < numTransitions; n++ {
		w.m[n] = mat.NewDense(widths[n], widths[n+1], nil)
	}
	return w, nil
}

// NewRandomWeights allocates weights and fills them with values drawn
// uniformly from [minRand, maxRand].
//
// Matrices are filled in flat order (layer, source, destination), so the
// same source seed always yields the same weights.
func NewRandomWeights(topo Topology, rng RandSource, minRand, maxRand float64) (*Weights, error) {
	if !(minRand <= maxRand) {
		return nil, fmt.Errorf("%w: random range [%v, %v] is empty", ErrInvalidHyperparameters, minRand, maxRand)
	}
	w, err := NewWeights(topo)
	if err != nil {
		return nil, err
	}
	span := maxRand - minRand
	for n := 0; n < numTransitions; n++ {
		data := w.m[n].RawMatrix().Data
		for i := range data {
			data[i] = minRand + span*rng.Float64()
		}
	}
	return w, nil
}

// NewWeightsFromFlat builds weights from a flat sequence laid out as
// returned by Flatten.
func NewWeightsFromFlat(topo Topology, flat []float64) (*Weights, error) {
	w, err := NewWeights(topo)
	if err != nil {
		return nil, err
	}
	if err := w.SetFlat(flat); err != nil {
		return nil, err
	}
	return w, nil
}

// Topology returns the topology the matrices are sized for.
func (w *Weights) Topology() Topology {
	return w.topo
}

// Layer returns matrix n (0: input→hidden1, 1: hidden1→hidden2,
// 2: hidden2→output). The returned matrix is owned by w.
func (w *Weights) Layer(n int) *mat.Dense {
	return w.m[n]
}

// At returns the weight from source unit k of layer n to destination unit j.
func (w *Weights) At(n, k, j int) float64 {
	return w.m[n].At(k, j)
}

// Set assigns the weight from source unit k of layer n to destination unit j.
func (w *Weights) Set(n, k, j int, v float64) {
	w.m[n].Set(k, j, v)
}

// Len returns the total number of weights.
func (w *Weights) Len() int {
	total := 0
	for n := 0; n < numTransitions; n++ {
		r, c := w.m[n].Dims()
		total += r * c
	}
	return total
}

// Flatten returns all weights as one sequence, grouped layer-major,
// then source-major, then destination-major.
func (w *Weights) Flatten() []float64 {
	out := make([]float64, 0, w.Len())
	for n := 0; n < numTransitions; n++ {
		out = append(out, w.m[n].RawMatrix().Data...)
	}
	return out
}

// SetFlat overwrites all weights from a sequence in Flatten order.
func (w *Weights) SetFlat(flat []float64) error {
	if len(flat) != w.Len() {
		return fmt.Errorf("%w: topology %s needs %d weights, got %d", ErrShapeMismatch, w.topo, w.Len(), len(flat))
	}
	off := 0
	for n := 0; n < numTransitions; n++ {
		data := w.m[n].RawMatrix().Data
		copy(data, flat[off:off+len(data)])
		off += len(data)
	}
	return nil
}

// Clone returns a deep copy.
func (w *Weights) Clone() *Weights {
	c := &Weights{topo: w.topo}
	for n := 0; n < numTransitions; n++ {
		c.m[n] = mat.DenseCopyOf(w.m[n])
	}
	return c
}

// Equal reports whether both stores have the same topology and weights.
func (w *Weights) Equal(other *Weights) bool {
	if w.topo != other.topo {
		return false
	}
	for n := 0; n < numTransitions; n++ {
		if !mat.Equal(w.m[n], other.m[n]) {
			return false
		}
	}
	return true
}

// IsFinite reports whether every weight is neither NaN nor infinite.
func (w *Weights) IsFinite() bool {
	for n := 0; n < numTransitions; n++ {
		if !allFinite(w.m[n].RawMatrix().Data) {
			return false
		}
	}
	return true
}

func allFinite(v []float64) bool {
	if floats.HasNaN(v) {
		return false
	}
	for _, x := range v {
		if math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
