// Package mlp implements a fixed-depth multilayer perceptron trained with
// online stochastic gradient descent.
//
// The network always has exactly four layers:
//
//	input → hidden1 → hidden2 → output
//
// Every non-input unit applies the logistic sigmoid. Training processes one
// case at a time and updates the weights immediately, so case n+1 sees the
// weights produced by case n.
//
// State is explicit. Operations take the values they read and write:
//   - Run reads Activations layer 0 and Weights, writes Activations layers 1..3
//   - Propagate additionally writes the Scratch thetas and output psi
//   - TrainCase reads Scratch and Activations, writes Weights, Scratch and Activations
//
// Nothing in this package performs I/O.
package mlp

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrInvalidTopology        = errors.New("invalid topology")
	ErrInvalidHyperparameters = errors.New("invalid hyperparameters")
	ErrShapeMismatch          = errors.New("shape mismatch")
	ErrNoCases                = errors.New("no training cases")
	ErrAlreadyTrained         = errors.New("trainer already finished")
)

// Topology describes the layer widths of the network.
type Topology struct {
	Input   int `json:"input" yaml:"input"`
	Hidden1 int `json:"hidden1" yaml:"hidden1"`
	Hidden2 int `json:"hidden2" yaml:"hidden2"`
	Output  int `json:"output" yaml:"output"`
}

// Widths returns the four layer widths in propagation order.
func (t Topology) Widths() [numLayers]int {
	return [numLayers]int{t.Input, t.Hidden1, t.Hidden2, t.Output}
}

// MaxWidth returns the widest layer.
func (t Topology) MaxWidth() int {
	m := 0
	for _, w := range t.Widths() {
		m = max(m, w)
	}
	return m
}

// Validate checks that every layer has at least one unit.
func (t Topology) Validate() error {
	names := [numLayers]string{"input", "hidden1", "hidden2", "output"}
	for i, w := range t.Widths() {
		if w <= 0 {
			return fmt.Errorf("%w: %s width must be positive, got %d", ErrInvalidTopology, names[i], w)
		}
	}
	return nil
}

// String formats the topology as "in-h1-h2-out".
func (t Topology) String() string {
	return fmt.Sprintf("%d-%d-%d-%d", t.Input, t.Hidden1, t.Hidden2, t.Output)
}

// Hyperparameters are fixed for the lifetime of a training run.
type Hyperparameters struct {
	LearningRate   float64
	ErrorThreshold float64
	MaxIterations  int
	MinRand        float64
	MaxRand        float64
	Seed           int64
}

// Validate checks the ranges required by the training loop.
func (h Hyperparameters) Validate() error {
	switch {
	case !(h.LearningRate > 0):
		return fmt.Errorf("%w: learning rate must be positive, got %v", ErrInvalidHyperparameters, h.LearningRate)
	case !(h.ErrorThreshold >= 0):
		return fmt.Errorf("%w: error threshold must be non-negative, got %v", ErrInvalidHyperparameters, h.ErrorThreshold)
	case h.MaxIterations < 1:
		return fmt.Errorf("%w: max iterations must be at least 1, got %d", ErrInvalidHyperparameters, h.MaxIterations)
	case !(h.MinRand <= h.MaxRand):
		return fmt.Errorf("%w: random range [%v, %v] is empty", ErrInvalidHyperparameters, h.MinRand, h.MaxRand)
	}
	return nil
}

// TrainingCase is one input vector with its expected output.
type TrainingCase struct {
	Input    []float64
	Expected []float64
}

// Check verifies the case matches the topology.
func (c TrainingCase) Check(t Topology) error {
	if len(c.Input) != t.Input {
		return fmt.Errorf("%w: case has %d inputs, topology expects %d", ErrShapeMismatch, len(c.Input), t.Input)
	}
	if len(c.Expected) != t.Output {
		return fmt.Errorf("%w: case has %d expected outputs, topology expects %d", ErrShapeMismatch, len(c.Expected), t.Output)
	}
	return nil
}
