// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package mlp

import (
	"github.com/born-ml/mlp/internal/mlp"
)

// Errors returned by this package.
var (
	ErrInvalidTopology        = mlp.ErrInvalidTopology
	ErrInvalidHyperparameters = mlp.ErrInvalidHyperparameters
	ErrShapeMismatch          = mlp.ErrShapeMismatch
	ErrNoCases                = mlp.ErrNoCases
	ErrAlreadyTrained         = mlp.ErrAlreadyTrained
)

// Run description

// Topology describes the four layer widths.
type Topology = mlp.Topology

// Hyperparameters are fixed for the lifetime of a training run.
type Hyperparameters = mlp.Hyperparameters

// TrainingCase is one input vector with its expected output.
type TrainingCase = mlp.TrainingCase

// State

// Weights owns the three weight matrices.
type Weights = mlp.Weights

// Activations holds the per-layer unit values.
type Activations = mlp.Activations

// Scratch holds per-case theta, psi and omega vectors.
type Scratch = mlp.Scratch

// RandSource supplies uniform values in [0, 1).
type RandSource = mlp.RandSource

// NewWeights allocates zeroed weights for topo.
func NewWeights(topo Topology) (*Weights, error) {
	return mlp.NewWeights(topo)
}

// NewRandomWeights draws every weight uniformly from [minRand, maxRand].
func NewRandomWeights(topo Topology, rng RandSource, minRand, maxRand float64) (*Weights, error) {
	return mlp.NewRandomWeights(topo, rng, minRand, maxRand)
}

// NewWeightsFromFlat builds weights from a Flatten-ordered sequence.
func NewWeightsFromFlat(topo Topology, flat []float64) (*Weights, error) {
	return mlp.NewWeightsFromFlat(topo, flat)
}

// NewActivations allocates an activation buffer for topo.
func NewActivations(topo Topology) *Activations {
	return mlp.NewActivations(topo)
}

// NewScratch allocates scratch space for topo.
func NewScratch(topo Topology) *Scratch {
	return mlp.NewScratch(topo)
}

// Numeric primitives

// Sigmoid is the logistic function.
func Sigmoid(x float64) float64 { return mlp.Sigmoid(x) }

// SigmoidDerivative returns σ(x)(1 - σ(x)).
func SigmoidDerivative(x float64) float64 { return mlp.SigmoidDerivative(x) }

// Run performs a plain forward pass.
func Run(acts *Activations, w *Weights) { mlp.Run(acts, w) }

// Propagate performs the instrumented forward pass used by training.
func Propagate(acts *Activations, w *Weights, expected []float64, sc *Scratch) []float64 {
	return mlp.Propagate(acts, w, expected, sc)
}

// TrainCase applies one online update and returns the post-update case error.
func TrainCase(acts *Activations, w *Weights, sc *Scratch, expected []float64, learningRate float64) float64 {
	return mlp.TrainCase(acts, w, sc, expected, learningRate)
}

// CaseError returns Σ ½(expected - out)².
func CaseError(expected, out []float64) float64 { return mlp.CaseError(expected, out) }

// Training loop

// Reason is why a training run stopped.
type Reason = mlp.Reason

// Termination reasons.
const (
	ReasonNone = mlp.ReasonNone
	Converged  = mlp.Converged
	Exhausted  = mlp.Exhausted
	Diverged   = mlp.Diverged
)

// State is the lifecycle stage of a Trainer.
type State = mlp.State

// Trainer states.
const (
	StateUntrained = mlp.StateUntrained
	StateTraining  = mlp.StateTraining
	StateConverged = mlp.StateConverged
	StateExhausted = mlp.StateExhausted
	StateDiverged  = mlp.StateDiverged
)

// EpochStats summarizes one completed epoch.
type EpochStats = mlp.EpochStats

// Observer is notified after every epoch.
type Observer = mlp.Observer

// ObserverFunc adapts a function to Observer.
type ObserverFunc = mlp.ObserverFunc

// CaseResult is the network's answer for one case.
type CaseResult = mlp.CaseResult

// Result is the outcome of a training run.
type Result = mlp.Result

// Trainer runs the epoch loop.
type Trainer = mlp.Trainer

// NewTrainer validates its inputs and returns an untrained Trainer.
func NewTrainer(w *Weights, hp Hyperparameters, cases []TrainingCase) (*Trainer, error) {
	return mlp.NewTrainer(w, hp, cases)
}

// Train trains w in place until convergence, exhaustion or divergence.
func Train(w *Weights, hp Hyperparameters, cases []TrainingCase, observer Observer) (*Result, error) {
	return mlp.Train(w, hp, cases, observer)
}

// Evaluate runs every case through the network without training.
func Evaluate(w *Weights, cases []TrainingCase) []CaseResult {
	return mlp.Evaluate(w, cases)
}

// Inference and persistence

// Network pairs weights with a buffer for inference.
type Network = mlp.Network

// NewNetwork wraps w for inference.
func NewNetwork(w *Weights) *Network {
	return mlp.NewNetwork(w)
}

// Checkpoint is a weight snapshot with training metadata.
type Checkpoint = mlp.Checkpoint

// LoadCheckpoint reads a .mlpw file saved for topo.
func LoadCheckpoint(path string, topo Topology) (*Checkpoint, error) {
	return mlp.LoadCheckpoint(path, topo)
}

// SaveWeights saves bare weights to a .mlpw file.
func SaveWeights(path string, w *Weights) error {
	return mlp.SaveWeights(path, w)
}

// LoadWeights loads weights saved for topo.
func LoadWeights(path string, topo Topology) (*Weights, error) {
	return mlp.LoadWeights(path, topo)
}
