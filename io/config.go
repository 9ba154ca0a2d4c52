/*package io reads the solver's run-configuration files. Configuration is
a gcfg-style INI file with a single [Lattice] section describing the pin
lattice, the quadrature, the boundary conditions, and the iteration
controls.
*/
package io

import (
	"fmt"
	"runtime"
)

const ExampleLatticeFile = `[Lattice]

#######################
# Required Parameters #
#######################

# Number of energy groups in the material files.
Groups = 7

# Material table files. Each file has one row per group with the columns
# Et Ea nuEf chi Es_0 ... Es_{G-1}.
FuelMaterial = uo2.xs
ModeratorMaterial = mod.xs

# Pin and lattice geometry, in cm. The lattice is LatticeNX x LatticeNY
# identical pin cells of the given pitch; the fuel pin of radius PinRadius
# is subdivided into PinRings equal-area rings.
PinRadius = 0.54
Pitch = 1.26
LatticeNX = 3
LatticeNY = 3

#######################
# Optional Parameters #
#######################

# Azimuthal angles over the full circle (multiple of 4) and nominal track
# spacing in cm.
# NAngles = 32
# TrackSpacing = 0.05

# Fuel ring count.
# PinRings = 3

# Polar quadrature: yamamoto-tabuchi-N or gauss-legendre-N, N in {2,4,6}.
# PolarQuadrature = yamamoto-tabuchi-6

# Per-edge boundary conditions: reflective, vacuum, or periodic.
# XMinBC = reflective
# XMaxBC = reflective
# YMinBC = reflective
# YMaxBC = reflective

# Convergence controls.
# FluxTolerance = 1e-5
# KTolerance = 1e-5
# MaxIterations = 1000

# Worker threads for the transport sweep. Defaults to all cores.
# Threads = 8

# Converged per-region fluxes and the k-eff history are written to these
# files as whitespace-separated tables when set.
# FluxOutput = flux.dat
# KHistoryOutput = khist.dat

# Output files which are useful for profiling and debugging.
# ProfileFile = prof.out
`

// LatticeConfig mirrors the [Lattice] configuration section.
type LatticeConfig struct {
	Groups            int
	FuelMaterial      string
	ModeratorMaterial string

	PinRadius float64
	Pitch     float64
	LatticeNX int
	LatticeNY int
	PinRings  int

	NAngles         int
	TrackSpacing    float64
	PolarQuadrature string

	XMinBC, XMaxBC string
	YMinBC, YMaxBC string

	FluxTolerance float64
	KTolerance    float64
	MaxIterations int
	Threads       int

	FluxOutput     string
	KHistoryOutput string
	ProfileFile    string
}

// LatticeWrapper is the gcfg wrapper for files containing a [Lattice]
// section.
type LatticeWrapper struct {
	Lattice LatticeConfig
}

// DefaultLatticeWrapper returns a wrapper pre-loaded with the default
// values of all optional parameters.
func DefaultLatticeWrapper() *LatticeWrapper {
	return &LatticeWrapper{Lattice: LatticeConfig{
		PinRings:        3,
		NAngles:         32,
		TrackSpacing:    0.05,
		PolarQuadrature: "yamamoto-tabuchi-6",
		XMinBC:          "reflective",
		XMaxBC:          "reflective",
		YMinBC:          "reflective",
		YMaxBC:          "reflective",
		FluxTolerance:   1e-5,
		KTolerance:      1e-5,
		MaxIterations:   1000,
		Threads:         runtime.NumCPU(),
	}}
}

// Validate checks the required fields and the basic sanity of the
// optional ones.
func (con *LatticeConfig) Validate() error {
	switch {
	case con.Groups <= 0:
		return fmt.Errorf("Groups must be positive")
	case con.FuelMaterial == "":
		return fmt.Errorf("FuelMaterial is required")
	case con.ModeratorMaterial == "":
		return fmt.Errorf("ModeratorMaterial is required")
	case con.PinRadius <= 0:
		return fmt.Errorf("PinRadius must be positive")
	case con.Pitch <= 0:
		return fmt.Errorf("Pitch must be positive")
	case con.PinRadius >= con.Pitch/2:
		return fmt.Errorf(
			"PinRadius = %g does not fit in a pitch of %g",
			con.PinRadius, con.Pitch,
		)
	case con.LatticeNX <= 0 || con.LatticeNY <= 0:
		return fmt.Errorf("LatticeNX and LatticeNY must be positive")
	case con.PinRings <= 0:
		return fmt.Errorf("PinRings must be positive")
	case con.NAngles <= 0 || con.NAngles%4 != 0:
		return fmt.Errorf("NAngles must be a positive multiple of 4")
	case con.TrackSpacing <= 0:
		return fmt.Errorf("TrackSpacing must be positive")
	case con.FluxTolerance <= 0 || con.KTolerance <= 0:
		return fmt.Errorf("tolerances must be positive")
	case con.MaxIterations <= 0:
		return fmt.Errorf("MaxIterations must be positive")
	case con.Threads <= 0:
		return fmt.Errorf("Threads must be positive")
	}
	return nil
}
