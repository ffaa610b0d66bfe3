package mlp

import (
	"fmt"

	"github.com/born-ml/mlp/internal/serialization"
)

// TensorName returns the name under which weight matrix n is stored.
func TensorName(n int) string {
	return fmt.Sprintf("weights.%d", n)
}

// Checkpoint is a weight snapshot together with how it was produced.
//
// Example:
//
//	cp := &mlp.Checkpoint{Weights: w, Hyperparameters: hp, Result: result}
//	if err := cp.Save("xor.mlpw"); err != nil {
//	    log.Fatal(err)
//	}
//
// To continue from saved weights:
//
//	cp, err := mlp.LoadCheckpoint("xor.mlpw", topo)
//	trainer, err := mlp.NewTrainer(cp.Weights, hp, cases)
type Checkpoint struct {
	Weights         *Weights
	Hyperparameters Hyperparameters
	Result          *Result           // optional
	Metadata        map[string]string // optional
	RunID           string            // assigned on save when empty
}

// Save writes the checkpoint to a .mlpw file.
func (c *Checkpoint) Save(path string) (err error) {
	topo := c.Weights.Topology()
	widths := topo.Widths()

	tensors := make([]serialization.Tensor, numTransitions)
	for n := 0; n < numTransitions; n++ {
		tensors[n] = serialization.Tensor{
			Name:  TensorName(n),
			Shape: []int{widths[n], widths[n+1]},
			Data:  append([]float64(nil), c.Weights.m[n].RawMatrix().Data...),
		}
	}

	header := serialization.Header{
		RunID:    c.RunID,
		Topology: widths[:],
		Metadata: c.Metadata,
	}
	if c.Result != nil {
		header.Training = &serialization.TrainingMeta{
			Iterations:     c.Result.Iterations,
			AverageError:   c.Result.AverageError,
			Reason:         c.Result.Reason.String(),
			LearningRate:   c.Hyperparameters.LearningRate,
			ErrorThreshold: c.Hyperparameters.ErrorThreshold,
			MaxIterations:  c.Hyperparameters.MaxIterations,
			Seed:           c.Hyperparameters.Seed,
		}
	}

	writer, err := serialization.NewWriter(path)
	if err != nil {
		return fmt.Errorf("failed to create writer: %w", err)
	}
	defer func() {
		if closeErr := writer.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if err := writer.Write(tensors, header); err != nil {
		return fmt.Errorf("failed to write weights: %w", err)
	}
	return nil
}

// LoadCheckpoint reads a .mlpw file and checks it against topo.
//
// Hyperparameters are restored from the training metadata when present.
// Result is always nil: per-case outputs are not stored.
func LoadCheckpoint(path string, topo Topology) (*Checkpoint, error) {
	reader, err := serialization.NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create reader: %w", err)
	}
	defer func() { _ = reader.Close() }()

	header := reader.Header()
	widths := topo.Widths()
	if len(header.Topology) != numLayers || [numLayers]int(header.Topology) != widths {
		return nil, fmt.Errorf("%w: file topology %v, expected %s", ErrShapeMismatch, header.Topology, topo)
	}

	w, err := NewWeights(topo)
	if err != nil {
		return nil, err
	}
	for n := 0; n < numTransitions; n++ {
		t, err := reader.ReadTensor(TensorName(n))
		if err != nil {
			return nil, fmt.Errorf("failed to read weights: %w", err)
		}
		if len(t.Shape) != 2 || t.Shape[0] != widths[n] || t.Shape[1] != widths[n+1] {
			return nil, fmt.Errorf("%w: %s has shape %v, expected [%d %d]",
				ErrShapeMismatch, t.Name, t.Shape, widths[n], widths[n+1])
		}
		copy(w.m[n].RawMatrix().Data, t.Data)
	}

	cp := &Checkpoint{
		Weights:  w,
		Metadata: header.Metadata,
		RunID:    header.RunID,
	}
	if tm := header.Training; tm != nil {
		cp.Hyperparameters = Hyperparameters{
			LearningRate:   tm.LearningRate,
			ErrorThreshold: tm.ErrorThreshold,
			MaxIterations:  tm.MaxIterations,
			Seed:           tm.Seed,
		}
	}
	return cp, nil
}

// SaveWeights saves bare weights without training metadata.
func SaveWeights(path string, w *Weights) error {
	return (&Checkpoint{Weights: w}).Save(path)
}

// LoadWeights loads weights saved for topo.
func LoadWeights(path string, topo Topology) (*Weights, error) {
	cp, err := LoadCheckpoint(path, topo)
	if err != nil {
		return nil, err
	}
	return cp.Weights, nil
}
