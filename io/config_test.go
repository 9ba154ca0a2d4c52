package io

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/gcfg.v1"
)

func TestExampleLatticeFile(t *testing.T) {
	con := DefaultLatticeWrapper()
	err := gcfg.ReadStringInto(con, ExampleLatticeFile)
	assert.NoError(t, err)
	assert.NoError(t, con.Lattice.Validate())

	assert.Equal(t, 7, con.Lattice.Groups)
	assert.Equal(t, "uo2.xs", con.Lattice.FuelMaterial)
	assert.Equal(t, 3, con.Lattice.LatticeNX)
	assert.InDelta(t, 0.54, con.Lattice.PinRadius, 1e-12)

	// Commented-out optional parameters keep their defaults.
	assert.Equal(t, 32, con.Lattice.NAngles)
	assert.Equal(t, "yamamoto-tabuchi-6", con.Lattice.PolarQuadrature)
	assert.Equal(t, "reflective", con.Lattice.XMinBC)
}

func TestLatticeOverrides(t *testing.T) {
	file := `[Lattice]
Groups = 2
FuelMaterial = f.xs
ModeratorMaterial = m.xs
PinRadius = 0.4
Pitch = 1.0
LatticeNX = 1
LatticeNY = 1
NAngles = 16
PolarQuadrature = gauss-legendre-4
XMinBC = vacuum
MaxIterations = 50
`
	con := DefaultLatticeWrapper()
	assert.NoError(t, gcfg.ReadStringInto(con, file))
	assert.NoError(t, con.Lattice.Validate())

	assert.Equal(t, 16, con.Lattice.NAngles)
	assert.Equal(t, "gauss-legendre-4", con.Lattice.PolarQuadrature)
	assert.Equal(t, "vacuum", con.Lattice.XMinBC)
	assert.Equal(t, "reflective", con.Lattice.XMaxBC)
	assert.Equal(t, 50, con.Lattice.MaxIterations)
	assert.Equal(t, 3, con.Lattice.PinRings)
}

func TestValidateErrors(t *testing.T) {
	table := []func(con *LatticeConfig){
		func(con *LatticeConfig) { con.Groups = 0 },
		func(con *LatticeConfig) { con.FuelMaterial = "" },
		func(con *LatticeConfig) { con.ModeratorMaterial = "" },
		func(con *LatticeConfig) { con.PinRadius = -1 },
		func(con *LatticeConfig) { con.PinRadius = 0.7 },
		func(con *LatticeConfig) { con.Pitch = 0 },
		func(con *LatticeConfig) { con.LatticeNX = 0 },
		func(con *LatticeConfig) { con.PinRings = 0 },
		func(con *LatticeConfig) { con.NAngles = 6 },
		func(con *LatticeConfig) { con.TrackSpacing = -0.05 },
		func(con *LatticeConfig) { con.FluxTolerance = 0 },
		func(con *LatticeConfig) { con.MaxIterations = 0 },
		func(con *LatticeConfig) { con.Threads = 0 },
	}
	for i, breakIt := range table {
		con := DefaultLatticeWrapper()
		con.Lattice.Groups = 7
		con.Lattice.FuelMaterial = "f.xs"
		con.Lattice.ModeratorMaterial = "m.xs"
		con.Lattice.PinRadius = 0.54
		con.Lattice.Pitch = 1.26
		con.Lattice.LatticeNX = 1
		con.Lattice.LatticeNY = 1

		if err := con.Lattice.Validate(); err != nil {
			t.Fatalf("%d) A complete configuration failed to validate: %v", i, err)
		}
		breakIt(&con.Lattice)
		if err := con.Lattice.Validate(); err == nil {
			t.Errorf("%d) Expected a validation error, got none.", i)
		}
	}
}
