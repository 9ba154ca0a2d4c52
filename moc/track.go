package moc

import (
	"github.com/nverley/moc2d/geom"
)

// Segment is the intersection of a track with a single flat source region.
type Segment struct {
	FSR    int // index into the driver's region list
	Length float64
}

// A link records where the angular flux leaving one end of a track goes:
// either into the incoming buffer of another traversal, or out of the
// problem through a vacuum edge.
type link struct {
	track  *Track
	dir    int
	vacuum bool
}

// Track is a single characteristic line across the domain. The stored
// direction has a positive y component; traversal direction 0 runs from
// Entry to Exit along Dir and direction 1 runs from Exit to Entry along
// the reversed direction, so one Track covers the angles phi and phi+pi
// with shared segment storage.
type Track struct {
	Entry, Exit geom.Vec
	Dir         geom.Direction
	Wgt, D      float64 // azimuthal weight fraction and track spacing
	Segs        []Segment

	// Boundary coupling, indexed by traversal direction. in holds the
	// incoming angular flux read during the current sweep and next the
	// fluxes being written for the following one (Jacobi hand-off); the
	// two are swapped after each sweep. Buffers are flattened as
	// [group*npolar + polar].
	out      [2]link
	in, next [2][]float64
}

// Chord returns the geometric length of the track.
func (t *Track) Chord() float64 { return t.Entry.Dist(t.Exit) }
