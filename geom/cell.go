package geom

import (
	"fmt"
	"math"

	"github.com/nverley/moc2d/xs"
)

// Cell is a leaf element of the tiling: a rectangular tile subdivided into
// one or more homogeneous regions. Positions handed to a Cell are in
// tile-local coordinates with the origin at the tile center.
//
// The set of cell variants is closed: SimpleCell and AnnularPinCell are the
// only leaf cells, and nested lattices are expressed through Tile, not
// through this interface.
type Cell interface {
	// NumRegions returns the number of homogeneous regions in the cell.
	NumRegions() int
	// RegionAt returns the local region index at r. Points within Eps of
	// an internal surface are classified by nudging along u.
	RegionAt(r Vec, u Direction) int
	// DistanceToSurface returns the distance along u from r to the
	// nearest internal surface or tile edge.
	DistanceToSurface(r Vec, u Direction) float64
	// XS returns the material data of the given local region.
	XS(local int) *xs.CrossSections
}

// SimpleCell is a homogeneous rectangular tile with a single region.
type SimpleCell struct {
	W, H float64
	Mat  *xs.CrossSections
}

func NewSimpleCell(w, h float64, mat *xs.CrossSections) (*SimpleCell, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("simple cell has non-positive size %g x %g", w, h)
	}
	if mat == nil {
		return nil, fmt.Errorf("simple cell has no material")
	}
	return &SimpleCell{w, h, mat}, nil
}

func (c *SimpleCell) NumRegions() int { return 1 }

func (c *SimpleCell) RegionAt(r Vec, u Direction) int { return 0 }

func (c *SimpleCell) DistanceToSurface(r Vec, u Direction) float64 {
	return distanceToTileEdge(r, u, c.W/2, c.H/2)
}

func (c *SimpleCell) XS(local int) *xs.CrossSections { return c.Mat }

// AnnularPinCell is a rectangular tile containing concentric rings centered
// on the tile. Region i is the area inside Radii[i] and outside Radii[i-1];
// the last region is the remainder of the tile outside the outermost ring.
type AnnularPinCell struct {
	W, H  float64
	Radii []float64
	Mats  []*xs.CrossSections // len(Radii)+1, innermost first
}

// NewAnnularPinCell creates a pin cell from strictly increasing radii and
// their ring materials. mats[len(radii)] fills the tile outside the rings.
func NewAnnularPinCell(
	w, h float64, radii []float64, mats []*xs.CrossSections,
) (*AnnularPinCell, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("pin cell has non-positive size %g x %g", w, h)
	}
	if len(mats) != len(radii)+1 {
		return nil, fmt.Errorf(
			"pin cell with %d radii needs %d materials, got %d",
			len(radii), len(radii)+1, len(mats),
		)
	}
	prev := 0.0
	for i, r := range radii {
		if r <= prev {
			return nil, fmt.Errorf(
				"pin cell radii must be strictly increasing: radius %d is %g",
				i, r,
			)
		}
		prev = r
	}
	if half := math.Min(w, h) / 2; radii[len(radii)-1] > half {
		return nil, fmt.Errorf(
			"outer pin radius %g does not fit in a %g x %g tile",
			radii[len(radii)-1], w, h,
		)
	}
	for i, m := range mats {
		if m == nil {
			return nil, fmt.Errorf("pin cell material %d is missing", i)
		}
	}
	return &AnnularPinCell{w, h, radii, mats}, nil
}

// EqualAreaRadii subdivides a disk of radius r into n rings of equal area
// and returns the n ring radii, the last of which is r.
func EqualAreaRadii(r float64, n int) []float64 {
	radii := make([]float64, n)
	for i := 0; i < n; i++ {
		radii[i] = r * math.Sqrt(float64(i+1)/float64(n))
	}
	return radii
}

func (c *AnnularPinCell) NumRegions() int { return len(c.Radii) + 1 }

func (c *AnnularPinCell) RegionAt(r Vec, u Direction) int {
	// Nudge along u so that points on a ring surface land in the region
	// the ray is about to enter.
	x := r[0] + Eps*u.X
	y := r[1] + Eps*u.Y
	rr := math.Sqrt(x*x + y*y)
	for i, radius := range c.Radii {
		if rr < radius {
			return i
		}
	}
	return len(c.Radii)
}

func (c *AnnularPinCell) DistanceToSurface(r Vec, u Direction) float64 {
	d := distanceToTileEdge(r, u, c.W/2, c.H/2)
	for _, radius := range c.Radii {
		if t, ok := rayCircleDistance(r, u, radius); ok && t < d {
			d = t
		}
	}
	return d
}

func (c *AnnularPinCell) XS(local int) *xs.CrossSections { return c.Mats[local] }

// distanceToTileEdge returns the distance along u from r to the rectangle
// [-hw, hw] x [-hh, hh].
func distanceToTileEdge(r Vec, u Direction, hw, hh float64) float64 {
	d := math.Inf(1)
	if u.X > 0 {
		d = (hw - r[0]) / u.X
	} else if u.X < 0 {
		d = (-hw - r[0]) / u.X
	}
	if u.Y > 0 {
		if t := (hh - r[1]) / u.Y; t < d {
			d = t
		}
	} else if u.Y < 0 {
		if t := (-hh - r[1]) / u.Y; t < d {
			d = t
		}
	}
	if d < 0 {
		d = 0
	}
	return d
}

// rayCircleDistance returns the smallest distance greater than Eps along u
// from r to the circle of the given radius centered on the origin.
func rayCircleDistance(r Vec, u Direction, radius float64) (float64, bool) {
	b := r[0]*u.X + r[1]*u.Y
	c := r[0]*r[0] + r[1]*r[1] - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	if t := -b - sq; t > Eps {
		return t, true
	}
	if t := -b + sq; t > Eps {
		return t, true
	}
	return 0, false
}
