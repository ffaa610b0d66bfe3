package mlp

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var topo1111 = Topology{Input: 1, Hidden1: 1, Hidden2: 1, Output: 1}

func mustFlat(t *testing.T, topo Topology, flat ...float64) *Weights {
	t.Helper()
	w, err := NewWeightsFromFlat(topo, flat)
	require.NoError(t, err)
	return w
}

func TestRunHandComputed(t *testing.T) {
	w := mustFlat(t, topo1111, 0.5, -1.5, 2)
	acts := NewActivations(topo1111)
	acts.SetInput([]float64{3})

	Run(acts, w)

	h1 := Sigmoid(3 * 0.5)
	h2 := Sigmoid(h1 * -1.5)
	out := Sigmoid(h2 * 2)
	assert.Equal(t, []float64{3}, acts.Input(), "layer 0 keeps raw inputs")
	assert.InDelta(t, h1, acts.Hidden1()[0], 1e-15)
	assert.InDelta(t, h2, acts.Hidden2()[0], 1e-15)
	assert.InDelta(t, out, acts.Output()[0], 1e-15)
}

func TestRunSumsOverSources(t *testing.T) {
	// layer 0 [2x2] = [[1, 2], [3, 4]]: hidden1[j] = σ(x0·w[0][j] + x1·w[1][j])
	w := mustFlat(t, topo2221, 1, 2, 3, 4, 0, 0, 0, 0, 0, 0)
	acts := NewActivations(topo2221)
	acts.SetInput([]float64{0.5, -1})

	Run(acts, w)

	assert.InDelta(t, Sigmoid(0.5*1+-1*3), acts.Hidden1()[0], 1e-15)
	assert.InDelta(t, Sigmoid(0.5*2+-1*4), acts.Hidden1()[1], 1e-15)
	// All-zero downstream weights give σ(0) everywhere.
	assert.Equal(t, []float64{0.5, 0.5}, acts.Hidden2())
	assert.Equal(t, []float64{0.5}, acts.Output())
}

func TestRunDeterministic(t *testing.T) {
	topo := Topology{Input: 4, Hidden1: 6, Hidden2: 3, Output: 2}
	w, err := NewRandomWeights(topo, rand.New(rand.NewSource(9)), -2, 2)
	require.NoError(t, err)
	input := []float64{0.1, -3, 7, 0}

	a := NewActivations(topo)
	a.SetInput(input)
	Run(a, w)
	first := append([]float64(nil), a.Output()...)

	for _i := 0; _i < 5; _i++ {
		b := NewActivations(topo)
		b.SetInput(input)
		Run(b, w)
		assert.Equal(t, first, b.Output())
	}

	// Running again on a dirty buffer gives the same answer.
	Run(a, w)
	assert.Equal(t, first, a.Output())
}

func TestPropagateRecordsThetaAndPsi(t *testing.T) {
	w, err := NewRandomWeights(topo2221, rand.New(rand.NewSource(3)), -1, 1)
	require.NoError(t, err)
	input := []float64{1, 0.25}
	expected := []float64{0.8}

	plain := NewActivations(topo2221)
	plain.SetInput(input)
	Run(plain, w)

	acts := NewActivations(topo2221)
	acts.SetInput(input)
	sc := NewScratch(topo2221)
	out := Propagate(acts, w, expected, sc)

	assert.Equal(t, plain.Output(), out, "instrumented and plain passes agree")
	assert.Equal(t, plain.Hidden1(), acts.Hidden1())
	assert.Equal(t, plain.Hidden2(), acts.Hidden2())

	for k := 0; k < 2; k++ {
		theta := input[0]*w.At(0, 0, k) + input[1]*w.At(0, 1, k)
		assert.InDelta(t, theta, sc.ThetaK[k], 1e-15)
		assert.InDelta(t, Sigmoid(theta), acts.Hidden1()[k], 1e-15)
	}
	for j := 0; j < 2; j++ {
		theta := acts.Hidden1()[0]*w.At(1, 0, j) + acts.Hidden1()[1]*w.At(1, 1, j)
		assert.InDelta(t, theta, sc.ThetaJ[j], 1e-15)
	}
	thetaI := acts.Hidden2()[0]*w.At(2, 0, 0) + acts.Hidden2()[1]*w.At(2, 1, 0)
	assert.InDelta(t, thetaI, sc.ThetaI[0], 1e-15)

	wantPsi := (expected[0] - out[0]) * SigmoidDerivative(sc.ThetaI[0])
	assert.InDelta(t, wantPsi, sc.PsiI[0], 1e-15)
}

func TestPropagatePanicsOnWrongTarget(t *testing.T) {
	w, err := NewWeights(topo2221)
	require.NoError(t, err)
	acts := NewActivations(topo2221)
	assert.Panics(t, func() {
		Propagate(acts, w, []float64{1, 2}, NewScratch(topo2221))
	})
}

func TestRunPanicsOnMismatchedBuffer(t *testing.T) {
	w, err := NewWeights(topo2221)
	require.NoError(t, err)
	assert.Panics(t, func() {
		Run(NewActivations(topo1111), w)
	})
}
