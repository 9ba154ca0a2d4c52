/*package geom contains the 2D geometry used by the transport solver: vectors,
directions, boundary conditions, and the rectangular cell tiling that rays
are traced through.

All cells are rectangular tiles. A tile is either filled by a single leaf
cell or by a nested Cartesian2D lattice whose bounding box matches the tile
exactly.
*/
package geom

import (
	"fmt"
	"math"
)

// Eps is the distance tolerance used to step over internal surfaces when
// resolving regions and generating segments. Points closer than Eps to a
// surface are treated as sitting on it.
const Eps = 1e-8

// Vec is a two dimensional position vector.
type Vec [2]float64

// Dist returns the Euclidean distance between v and w.
func (v Vec) Dist(w Vec) float64 {
	dx, dy := w[0]-v[0], w[1]-v[1]
	return math.Sqrt(dx*dx + dy*dy)
}

// Direction is a unit vector in the plane. The azimuthal angle is kept
// alongside the components so that directions produced by the quadrature
// can be compared exactly.
type Direction struct {
	Phi  float64
	X, Y float64
}

// NewDirection creates the unit direction at the azimuthal angle phi.
// phi is normalized into [0, 2*pi).
func NewDirection(phi float64) Direction {
	phi = NormalizeAngle(phi)
	return Direction{phi, math.Cos(phi), math.Sin(phi)}
}

// Reverse returns the direction rotated by pi.
func (u Direction) Reverse() Direction {
	return NewDirection(u.Phi + math.Pi)
}

// ReflectX returns u reflected off a vertical (x = const) edge.
func (u Direction) ReflectX() Direction {
	return NewDirection(math.Pi - u.Phi)
}

// ReflectY returns u reflected off a horizontal (y = const) edge.
func (u Direction) ReflectY() Direction {
	return NewDirection(-u.Phi)
}

// NormalizeAngle maps phi into [0, 2*pi).
func NormalizeAngle(phi float64) float64 {
	phi = math.Mod(phi, 2*math.Pi)
	if phi < 0 {
		phi += 2 * math.Pi
	}
	return phi
}

// BoundaryCondition describes what happens to neutrons which reach one of
// the four edges of the domain.
type BoundaryCondition int

const (
	Reflective BoundaryCondition = iota
	Vacuum
	Periodic
)

func (bc BoundaryCondition) String() string {
	switch bc {
	case Reflective:
		return "reflective"
	case Vacuum:
		return "vacuum"
	case Periodic:
		return "periodic"
	}
	return fmt.Sprintf("BoundaryCondition(%d)", int(bc))
}

// ParseBC converts a configuration string into a BoundaryCondition.
func ParseBC(s string) (BoundaryCondition, error) {
	switch s {
	case "reflective":
		return Reflective, nil
	case "vacuum":
		return Vacuum, nil
	case "periodic":
		return Periodic, nil
	}
	return 0, fmt.Errorf("unknown boundary condition %q", s)
}

// Edge identifies one of the four edges of the domain bounding box.
type Edge int

const (
	XMinEdge Edge = iota
	XMaxEdge
	YMinEdge
	YMaxEdge
)

func (e Edge) String() string {
	switch e {
	case XMinEdge:
		return "x-min"
	case XMaxEdge:
		return "x-max"
	case YMinEdge:
		return "y-min"
	case YMaxEdge:
		return "y-max"
	}
	return fmt.Sprintf("Edge(%d)", int(e))
}
