package mlp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSigmoidKnownValues(t *testing.T) {
	assert.Equal(t, 0.5, Sigmoid(0))
	assert.InDelta(t, 0.7310585786, Sigmoid(1), 1e-9)
	assert.InDelta(t, 0.2689414214, Sigmoid(-1), 1e-9)
	assert.InDelta(t, 1-Sigmoid(3), Sigmoid(-3), 1e-15)
}

func TestSigmoidBoundedAndMonotonic(t *testing.T) {
	prev := Sigmoid(-30)
	for x := -30.0 + 0.25; x <= 30; x += 0.25 {
		s := Sigmoid(x)
		assert.Greater(t, s, 0.0, "σ(%v)", x)
		assert.Less(t, s, 1.0, "σ(%v)", x)
		assert.Greater(t, s, prev, "σ must increase at %v", x)
		prev = s
	}
}

func TestSigmoidDerivative(t *testing.T) {
	assert.Equal(t, 0.25, SigmoidDerivative(0))

	for _, x := range []float64{-12, -3.5, -1, -0.1, 0.3, 2, 7.25} {
		s := Sigmoid(x)
		assert.InDelta(t, s*(1-s), SigmoidDerivative(x), 1e-15, "x=%v", x)

		// Central difference agrees with the closed form.
		const h = 1e-6
		numeric := (Sigmoid(x+h) - Sigmoid(x-h)) / (2 * h)
		assert.InDelta(t, numeric, SigmoidDerivative(x), 1e-8, "x=%v", x)
	}
}

func TestSigmoidSaturates(t *testing.T) {
	assert.False(t, math.IsNaN(Sigmoid(-1000)))
	assert.False(t, math.IsNaN(Sigmoid(1000)))
	assert.Equal(t, 0.0, SigmoidDerivative(1000))
}
