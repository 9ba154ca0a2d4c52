package moc

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nverley/moc2d/geom"
	"github.com/nverley/moc2d/quad"
	"github.com/nverley/moc2d/xs"
)

func TestFixedSourcePureAbsorber(t *testing.T) {
	// In a reflecting pure absorber the flux is the source divided by the
	// total cross section, independent of the discretization.
	for _, n := range []int{1, 2} {
		dr := uniformDriver(t, n, 1.0, absorberXS(t, 0.5), geom.Reflective, 8, 0.1)
		res, err := dr.SolveFixedSource([]float64{2.0})
		assert.NoError(t, err)
		assert.True(t, res.Converged)
		assert.Equal(t, 0.0, res.Keff)

		for i := 0; i < dr.NumFSRs(); i++ {
			assert.InDelta(t, 4.0, dr.FSR(i).Flux[0], 1e-3, "lattice %dx%d", n, n)
		}
	}
}

func TestFixedSourcePureAbsorberMergedAngles(t *testing.T) {
	// Spacing this coarse collapses several azimuthal families onto the
	// same track counts. The merged quadrature must still reproduce the
	// exact infinite-medium fixed point.
	dr := uniformDriver(t, 1, 1.0, absorberXS(t, 0.5), geom.Reflective, 64, 0.1)
	res, err := dr.SolveFixedSource([]float64{2.0})
	assert.NoError(t, err)
	assert.True(t, res.Converged)
	assert.InDelta(t, 4.0, dr.FSR(0).Flux[0], 1e-3)
}

func TestFixedSourceVacuumLeakage(t *testing.T) {
	dr := uniformDriver(t, 1, 1.0, absorberXS(t, 0.5), geom.Vacuum, 8, 0.1)
	res, err := dr.SolveFixedSource([]float64{2.0})
	assert.NoError(t, err)
	assert.True(t, res.Converged)

	phi := dr.FSR(0).Flux[0]
	if phi <= 0 || phi >= 4.0 {
		t.Errorf("Expected a leakage-reduced flux in (0, 4), got %g.", phi)
	}
}

func TestFixedSourceTwoGroupDownscatter(t *testing.T) {
	// Group 1: flux = Q1/Et1. Group 2: flux = (Q2 + Es12*flux1)/Et2.
	mat, err := xs.New(
		[]float64{0.5, 0.8}, []float64{0.3, 0.8},
		[][]float64{{0, 0.2}, {0, 0}},
	)
	assert.NoError(t, err)

	dr := uniformDriver(t, 1, 1.0, mat, geom.Reflective, 8, 0.1)
	res, err := dr.SolveFixedSource([]float64{2.0, 1.0})
	assert.NoError(t, err)
	assert.True(t, res.Converged)

	assert.InDelta(t, 4.0, dr.FSR(0).Flux[0], 1e-3)
	assert.InDelta(t, 2.25, dr.FSR(0).Flux[1], 1e-3)
}

func TestSolveKeffInfiniteMedium(t *testing.T) {
	// One-group reflecting medium: k = nuEf / (Et - Es) = 0.9/0.6 = 1.5.
	mat, err := xs.NewFissile(
		[]float64{1.0}, []float64{0.6}, []float64{0.9}, []float64{1.0},
		[][]float64{{0.4}},
	)
	assert.NoError(t, err)

	dr := uniformDriver(t, 2, 1.0, mat, geom.Reflective, 8, 0.1)
	dr.FluxTolerance = 1e-7
	dr.KeffTolerance = 1e-7

	res, err := dr.SolveKeff()
	assert.NoError(t, err)
	assert.True(t, res.Converged)
	assert.InDelta(t, 1.5, res.Keff, 1e-4)
	assert.Equal(t, res.Iterations, len(res.KHistory))
	assert.Equal(t, res.Keff, res.KHistory[len(res.KHistory)-1])

	// Past the boundary transient of the first iterations the residual
	// decays geometrically; allow small wiggles but no sustained growth.
	hist := res.ResidualHistory
	assert.Equal(t, res.Iterations, len(hist))
	for i := 2; i < len(hist)-1; i++ {
		if hist[i+1] > hist[i]*1.05 {
			t.Errorf(
				"Residual grew from %g to %g at iteration %d.",
				hist[i], hist[i+1], i+2,
			)
		}
	}
	assert.True(t, hist[len(hist)-1] < hist[2]/100, "residual decayed")
}

func TestSolveKeffVacuumLowersK(t *testing.T) {
	mat, err := xs.NewFissile(
		[]float64{1.0}, []float64{0.6}, []float64{0.9}, []float64{1.0},
		[][]float64{{0.4}},
	)
	assert.NoError(t, err)

	dr := uniformDriver(t, 1, 1.0, mat, geom.Vacuum, 8, 0.1)
	res, err := dr.SolveKeff()
	assert.NoError(t, err)
	assert.True(t, res.Converged)
	if res.Keff <= 0 || res.Keff >= 1.5 {
		t.Errorf("Expected leakage to pull k below 1.5, got %g.", res.Keff)
	}
}

func TestSolveKeffIterationCap(t *testing.T) {
	mat, err := xs.NewFissile(
		[]float64{1.0}, []float64{0.6}, []float64{0.9}, []float64{1.0},
		[][]float64{{0.4}},
	)
	assert.NoError(t, err)

	dr := uniformDriver(t, 1, 1.0, mat, geom.Reflective, 8, 0.1)
	dr.MaxIterations = 1

	res, err := dr.SolveKeff()
	assert.NoError(t, err, "hitting the cap is not an error")
	assert.False(t, res.Converged)
	assert.Equal(t, 1, res.Iterations)
	assert.True(t, dr.FSR(0).Flux[0] > 0, "flux state remains queryable")
}

func TestSolveErrors(t *testing.T) {
	mat := absorberXS(t, 1.0)
	g := uniformGeometry(t, 1, 1.0, mat)
	p, err := quad.Polar("yamamoto-tabuchi-4")
	assert.NoError(t, err)
	dr, err := NewDriver(g, p)
	assert.NoError(t, err)

	_, err = dr.SolveKeff()
	assert.Error(t, err, "solve before tracks are drawn")
	_, err = dr.SolveFixedSource([]float64{1.0})
	assert.Error(t, err, "solve before tracks are drawn")

	assert.NoError(t, dr.DrawTracks(8, 0.1))
	_, err = dr.SolveKeff()
	assert.Error(t, err, "no fissile region")
	_, err = dr.SolveFixedSource([]float64{1.0, 1.0})
	assert.Error(t, err, "source group count mismatch")
}

func TestSolveKeffPinCell(t *testing.T) {
	// A few power iterations on a seven-group fuel pin, as a smoke test of
	// the full pipeline on realistic data.
	fuel, err := xs.ReadMaterial("../xs/testdata/uo2.xs", 7)
	assert.NoError(t, err)
	mod, err := xs.ReadMaterial("../xs/testdata/mod.xs", 7)
	assert.NoError(t, err)

	dr := pinDriver(t, fuel, mod, 1.26, 0.54, 3, 16, 0.05)
	dr.MaxIterations = 5

	res, err := dr.SolveKeff()
	assert.NoError(t, err)
	assert.Equal(t, 5, res.Iterations)
	if res.Keff <= 0.5 || res.Keff >= 2.5 {
		t.Errorf("Expected a physical k estimate, got %g.", res.Keff)
	}
	for i := 0; i < dr.NumFSRs(); i++ {
		for g, phi := range dr.FSR(i).Flux {
			if phi < 0 {
				t.Errorf("Region %d group %d has negative flux %g.", i, g, phi)
			}
		}
	}
}
