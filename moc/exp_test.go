package moc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpTableAccuracy(t *testing.T) {
	e := newExpTable(expTableMax, expTableStep)
	for tau := 0.0; tau < 2*expTableMax; tau += 0.0137 {
		exact := 1 - math.Exp(-tau)
		if math.Abs(e.eval(tau)-exact) > 1e-6 {
			t.Errorf(
				"At tau = %g expected %g, got %g.", tau, exact, e.eval(tau),
			)
		}
	}
}

func TestExpTableEdges(t *testing.T) {
	e := newExpTable(expTableMax, expTableStep)
	assert.Equal(t, 0.0, e.eval(0))
	assert.InDelta(t, 1.0, e.eval(50), 1e-15)
	assert.Panics(t, func() { e.eval(-1e-9) })
}
