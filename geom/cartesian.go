package geom

import (
	"fmt"
	"sort"

	"github.com/nverley/moc2d/xs"
)

// Tile is one rectangular element of a Cartesian2D lattice. It is filled
// either by a leaf Cell or by a nested Cartesian2D whose bounding box
// matches the tile exactly.
type Tile struct {
	Cell   Cell
	Nested *Cartesian2D
}

func (t *Tile) numRegions() int {
	if t.Nested != nil {
		return t.Nested.NumRegions()
	}
	return t.Cell.NumRegions()
}

// Cartesian2D is a rectangular array of rectangular tiles. Every leaf
// region in the lattice, including regions of nested lattices, is assigned
// a stable global index at construction time.
type Cartesian2D struct {
	xb, yb  []float64 // tile edges, ascending
	tiles   []Tile    // row-major, x fastest
	offsets []int     // first region index of each tile
	regXS   []*xs.CrossSections
}

// NewCartesian2D creates a lattice with the given tile edges. tiles is
// row-major with x varying fastest and must have (len(xb)-1)*(len(yb)-1)
// entries. Nested lattices must already be constructed and must have the
// same extents as the tile they fill.
func NewCartesian2D(xb, yb []float64, tiles []Tile) (*Cartesian2D, error) {
	if len(xb) < 2 || len(yb) < 2 {
		return nil, fmt.Errorf("lattice needs at least one tile per axis")
	}
	for _, edges := range [][]float64{xb, yb} {
		for i := 1; i < len(edges); i++ {
			if edges[i] <= edges[i-1] {
				return nil, fmt.Errorf(
					"lattice edges must be ascending: %g follows %g",
					edges[i], edges[i-1],
				)
			}
		}
	}
	nx, ny := len(xb)-1, len(yb)-1
	if len(tiles) != nx*ny {
		return nil, fmt.Errorf(
			"a %d x %d lattice needs %d tiles, got %d",
			nx, ny, nx*ny, len(tiles),
		)
	}

	c := &Cartesian2D{
		xb: xb, yb: yb,
		tiles:   tiles,
		offsets: make([]int, len(tiles)),
	}
	n := 0
	for i := range tiles {
		t := &tiles[i]
		if (t.Cell == nil) == (t.Nested == nil) {
			return nil, fmt.Errorf(
				"tile %d must hold exactly one of a cell or a nested lattice",
				i,
			)
		}
		ix, iy := i%nx, i/nx
		w := xb[ix+1] - xb[ix]
		h := yb[iy+1] - yb[iy]
		if err := t.checkSize(w, h); err != nil {
			return nil, fmt.Errorf("tile %d: %v", i, err)
		}

		c.offsets[i] = n
		if t.Nested != nil {
			c.regXS = append(c.regXS, t.Nested.regXS...)
		} else {
			for local := 0; local < t.Cell.NumRegions(); local++ {
				c.regXS = append(c.regXS, t.Cell.XS(local))
			}
		}
		n += t.numRegions()
	}
	return c, nil
}

func (t *Tile) checkSize(w, h float64) error {
	var tw, th float64
	switch {
	case t.Nested != nil:
		tw, th = t.Nested.Width(), t.Nested.Height()
	default:
		switch cell := t.Cell.(type) {
		case *SimpleCell:
			tw, th = cell.W, cell.H
		case *AnnularPinCell:
			tw, th = cell.W, cell.H
		default:
			return fmt.Errorf("unknown cell variant %T", t.Cell)
		}
	}
	if tw < w-Eps || tw > w+Eps || th < h-Eps || th > h+Eps {
		return fmt.Errorf(
			"fill is %g x %g but the tile is %g x %g", tw, th, w, h,
		)
	}
	return nil
}

func (c *Cartesian2D) XMin() float64   { return c.xb[0] }
func (c *Cartesian2D) XMax() float64   { return c.xb[len(c.xb)-1] }
func (c *Cartesian2D) YMin() float64   { return c.yb[0] }
func (c *Cartesian2D) YMax() float64   { return c.yb[len(c.yb)-1] }
func (c *Cartesian2D) Width() float64  { return c.XMax() - c.XMin() }
func (c *Cartesian2D) Height() float64 { return c.YMax() - c.YMin() }

// NumRegions returns the total number of leaf regions in the lattice.
func (c *Cartesian2D) NumRegions() int { return len(c.regXS) }

// XS returns the material of the leaf region with the given global index.
func (c *Cartesian2D) XS(region int) *xs.CrossSections { return c.regXS[region] }

// FindFSR resolves the global index of the leaf region containing r. For
// points within Eps of a surface, u selects the region the ray is entering.
// Nested lattices are descended iteratively, translating into each nested
// frame as it is entered.
func (c *Cartesian2D) FindFSR(r Vec, u Direction) (int, error) {
	x := r[0] + Eps*u.X
	y := r[1] + Eps*u.Y
	lat := c
	offset := 0
	for {
		ix, okx := findBin(lat.xb, x)
		iy, oky := findBin(lat.yb, y)
		if !okx || !oky {
			return 0, fmt.Errorf(
				"point (%g, %g) is outside the lattice", r[0], r[1],
			)
		}
		idx := iy*(len(lat.xb)-1) + ix
		t := &lat.tiles[idx]
		offset += lat.offsets[idx]
		if t.Nested != nil {
			x += t.Nested.xb[0] - lat.xb[ix]
			y += t.Nested.yb[0] - lat.yb[iy]
			lat = t.Nested
			continue
		}
		cx := (lat.xb[ix] + lat.xb[ix+1]) / 2
		cy := (lat.yb[iy] + lat.yb[iy+1]) / 2
		local := t.Cell.RegionAt(Vec{x - cx, y - cy}, u)
		return offset + local, nil
	}
}

// DistanceToSurface returns the distance along u from r to the next
// internal surface or tile boundary.
func (c *Cartesian2D) DistanceToSurface(r Vec, u Direction) (float64, error) {
	x := r[0] + Eps*u.X
	y := r[1] + Eps*u.Y
	lat := c
	for {
		ix, okx := findBin(lat.xb, x)
		iy, oky := findBin(lat.yb, y)
		if !okx || !oky {
			return 0, fmt.Errorf(
				"point (%g, %g) is outside the lattice", r[0], r[1],
			)
		}
		idx := iy*(len(lat.xb)-1) + ix
		t := &lat.tiles[idx]
		if t.Nested != nil {
			x += t.Nested.xb[0] - lat.xb[ix]
			y += t.Nested.yb[0] - lat.yb[iy]
			lat = t.Nested
			continue
		}
		cx := (lat.xb[ix] + lat.xb[ix+1]) / 2
		cy := (lat.yb[iy] + lat.yb[iy+1]) / 2
		return t.Cell.DistanceToSurface(Vec{x - cx, y - cy}, u), nil
	}
}

func findBin(edges []float64, v float64) (int, bool) {
	n := len(edges) - 1
	if v < edges[0]-Eps || v > edges[n]+Eps {
		return 0, false
	}
	i := sort.SearchFloat64s(edges, v) - 1
	if i < 0 {
		i = 0
	} else if i >= n {
		i = n - 1
	}
	return i, true
}
