package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImpermanentLossNoChange(t *testing.T) {
	for _, r := range []float64{0.01, 1, 1.5, 42, 1e6} {
		assert.InDelta(t, 0, ImpermanentLoss(r, r), 1e-9, "ratio %v", r)
	}
}

func TestImpermanentLossClosedForm(t *testing.T) {
	// 2*sqrt(1.5)/2.5 - 1 = -0.020204...
	assert.InDelta(t, 2.0204, ImpermanentLoss(1.0, 1.5), 1e-4)
	// price x4: 2*2/5 - 1 = -0.2
	assert.InDelta(t, 20.0, ImpermanentLoss(1, 4), 1e-9)
}

func TestImpermanentLossSwappedArguments(t *testing.T) {
	// r and 1/r agree up to float error, never compare exactly
	a := ImpermanentLoss(1, 4)
	b := ImpermanentLoss(4, 1)
	assert.InDelta(t, a, b, 1e-9)
}

func TestImpermanentLossNonPositive(t *testing.T) {
	assert.Equal(t, 0.0, ImpermanentLoss(0, 1))
	assert.Equal(t, 0.0, ImpermanentLoss(1, 0))
	assert.Equal(t, 0.0, ImpermanentLoss(-1, 2))
	assert.Equal(t, 0.0, ImpermanentLoss(2, -3))
}
