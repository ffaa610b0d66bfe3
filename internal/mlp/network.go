package mlp

import "fmt"

// Network pairs weights with an activation buffer for inference.
//
// Example:
//
//	net := mlp.NewNetwork(w)
//	out, err := net.Predict([]float64{0, 1})
type Network struct {
	w    *Weights
	acts *Activations
}

// NewNetwork wraps w for inference. The weights are shared, not copied.
func NewNetwork(w *Weights) *Network {
	return &Network{
		w:    w,
		acts: NewActivations(w.Topology()),
	}
}

// Topology returns the network's layer widths.
func (n *Network) Topology() Topology {
	return n.w.Topology()
}

// Weights returns the underlying weights.
func (n *Network) Weights() *Weights {
	return n.w
}

// Predict runs a plain forward pass and returns a copy of the outputs.
func (n *Network) Predict(input []float64) ([]float64, error) {
	if len(input) != n.w.topo.Input {
		return nil, fmt.Errorf("%w: got %d inputs, network expects %d", ErrShapeMismatch, len(input), n.w.topo.Input)
	}
	n.acts.SetInput(input)
	Run(n.acts, n.w)
	return append([]float64(nil), n.acts.Output()...), nil
}
