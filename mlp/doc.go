// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package mlp trains and runs a four-layer sigmoid perceptron.
//
// # Overview
//
// The network shape is fixed: input → hidden1 → hidden2 → output. Training
// is online gradient descent: every case updates the weights before the
// next case is seen, and cases are always visited in the order given.
//
// This package contains:
//   - Topology, Hyperparameters, TrainingCase: run description
//   - Weights: the three weight matrices, sized exactly per transition
//   - Run, Propagate, TrainCase: the numeric primitives
//   - Trainer, Train: the epoch loop
//   - Network: inference
//   - Checkpoint, SaveWeights, LoadWeights: .mlpw persistence
//
// # Basic Usage
//
//	import (
//	    "math/rand"
//
//	    "github.com/born-ml/mlp/mlp"
//	)
//
//	func main() {
//	    topo := mlp.Topology{Input: 2, Hidden1: 2, Hidden2: 2, Output: 1}
//	    hp := mlp.Hyperparameters{LearningRate: 0.3, ErrorThreshold: 0.001, MaxIterations: 100000, MinRand: -1, MaxRand: 1}
//
//	    w, _ := mlp.NewRandomWeights(topo, rand.New(rand.NewSource(7)), hp.MinRand, hp.MaxRand)
//	    result, err := mlp.Train(w, hp, cases, nil)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(result.Reason, result.AverageError)
//	}
//
// # Termination
//
// After each epoch the loop stops with Diverged if the average error or any
// weight is NaN or infinite, with Converged if the average error is below
// ErrorThreshold, and with Exhausted once more than MaxIterations epochs
// have run.
package mlp
