package mlp

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadReproducesOutputs(t *testing.T) {
	topo := Topology{Input: 3, Hidden1: 5, Hidden2: 4, Output: 2}
	w, err := NewRandomWeights(topo, rand.New(rand.NewSource(99)), -3, 3)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "net.mlpw")
	require.NoError(t, SaveWeights(path, w))

	loaded, err := LoadWeights(path, topo)
	require.NoError(t, err)
	assert.True(t, w.Equal(loaded))

	a, b := NewNetwork(w), NewNetwork(loaded)
	rng := rand.New(rand.NewSource(1))
	for _i := 0; _i < 20; _i++ {
		in := []float64{rng.Float64()*4 - 2, rng.Float64(), -rng.Float64()}
		want, err := a.Predict(in)
		require.NoError(t, err)
		got, err := b.Predict(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestCheckpointKeepsTrainingMeta(t *testing.T) {
	w, err := NewRandomWeights(topo2221, rand.New(rand.NewSource(5)), -1, 1)
	require.NoError(t, err)
	hp := Hyperparameters{LearningRate: 0.3, ErrorThreshold: 0.001, MaxIterations: 50, Seed: 5}
	result, err := Train(w, hp, xorCases(), nil)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "xor.mlpw")
	cp := &Checkpoint{
		Weights:         w,
		Hyperparameters: hp,
		Result:          result,
		Metadata:        map[string]string{"dataset": "xor"},
		RunID:           "run-1",
	}
	require.NoError(t, cp.Save(path))

	got, err := LoadCheckpoint(path, topo2221)
	require.NoError(t, err)
	assert.Equal(t, "run-1", got.RunID)
	assert.Equal(t, "xor", got.Metadata["dataset"])
	assert.Equal(t, hp.LearningRate, got.Hyperparameters.LearningRate)
	assert.Equal(t, hp.MaxIterations, got.Hyperparameters.MaxIterations)
	assert.Equal(t, hp.Seed, got.Hyperparameters.Seed)
	assert.Nil(t, got.Result)
	assert.True(t, w.Equal(got.Weights))
}

func TestLoadWeightsTopologyMismatch(t *testing.T) {
	w, err := NewWeights(topo2221)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "w.mlpw")
	require.NoError(t, SaveWeights(path, w))

	_, err = LoadWeights(path, Topology{Input: 2, Hidden1: 3, Hidden2: 2, Output: 1})
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestLoadWeightsMissingFile(t *testing.T) {
	_, err := LoadWeights(filepath.Join(t.TempDir(), "absent.mlpw"), topo2221)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestTensorName(t *testing.T) {
	assert.Equal(t, "weights.0", TensorName(0))
	assert.Equal(t, "weights.2", TensorName(2))
}

func TestNetworkPredictRejectsWrongWidth(t *testing.T) {
	w, err := NewWeights(topo2221)
	require.NoError(t, err)
	net := NewNetwork(w)
	_, err = net.Predict([]float64{1})
	assert.ErrorIs(t, err, ErrShapeMismatch)

	out, err := net.Predict([]float64{1, 1})
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5}, out)
	assert.Equal(t, topo2221, net.Topology())
}
