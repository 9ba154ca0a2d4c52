package moc

import (
	"math"
)

const (
	expTableMax  = 10.0
	expTableStep = 1.0 / 512
)

// expTable evaluates the attenuation factor 1 - exp(-tau) by linear
// interpolation on a uniform optical-depth grid, falling back to the exact
// exponential beyond the table range. The sweep calls this for every
// (segment, group, polar angle) triple, so lookups are O(1).
type expTable struct {
	dx, inv float64
	max     float64
	vals    []float64
}

func newExpTable(max, dx float64) *expTable {
	n := int(max/dx) + 2
	e := &expTable{dx: dx, inv: 1 / dx, max: max, vals: make([]float64, n)}
	for i := range e.vals {
		e.vals[i] = 1 - math.Exp(-float64(i)*dx)
	}
	return e
}

// eval returns 1 - exp(-tau). tau must not be negative: optical depths are
// products of positive cross sections and non-negative lengths, so a
// negative argument is a programmer error.
func (e *expTable) eval(tau float64) float64 {
	if tau < 0 {
		panic("negative optical depth")
	}
	if tau >= e.max {
		return 1 - math.Exp(-tau)
	}
	i := int(tau * e.inv)
	t0 := float64(i) * e.dx
	return e.vals[i] + (e.vals[i+1]-e.vals[i])*(tau-t0)*e.inv
}
