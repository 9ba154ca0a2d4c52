package moc

import (
	"github.com/nverley/moc2d/xs"
)

// FlatSourceRegion is one homogeneous region of the geometry, discovered
// the first time a track crosses it. Indices are assigned in discovery
// order and are stable for the life of the driver.
//
// Volume is the track-length estimate accumulated during segmentation,
// Sum(segment length * angle weight * spacing) over both traversal
// directions. It is the normalization volume of the flux update, so that
// ray-density errors cancel between the accumulator and the volume.
type FlatSourceRegion struct {
	XS     *xs.CrossSections
	Volume float64
	Flux   []float64 // scalar flux per group

	id     int
	region int       // geometry region index
	source []float64 // isotropic source per steradian, per group
}

// ID returns the region's discovery-order index.
func (f *FlatSourceRegion) ID() int { return f.id }
