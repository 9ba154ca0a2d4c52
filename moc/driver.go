/*package moc implements the 2D method-of-characteristics transport solver:
track generation over the geometry, segmentation into flat source regions,
boundary stitching between track ends, and the parallel transport sweep
driven to a converged eigenvalue by power iteration.
*/
package moc

import (
	"math"
	"runtime"

	"github.com/nverley/moc2d/geom"
	"github.com/nverley/moc2d/quad"
)

// maxTrackSegments caps the ray-tracing loop for a single track. Tracks
// that fail to reach their exit point within the cap indicate degenerate
// geometry or a tolerance mismatch.
const maxTrackSegments = 1 << 20

// Driver owns the tracks, flat source regions, and iteration state of one
// transport problem. The geometry and cross sections it references are
// never mutated; only flux and source state changes during a solve.
type Driver struct {
	// Solver knobs. These may be changed freely between solves.
	FluxTolerance float64
	KeffTolerance float64
	MaxIterations int
	Workers       int
	Verbose       bool

	geometry *geom.Cartesian2D
	polar    quad.PolarQuadrature
	bcs      [4]geom.BoundaryCondition
	ngroups  int

	angles []quad.AngleInfo
	tracks []*Track
	fsrs   []*FlatSourceRegion
	fsrIdx map[int]int // geometry region index -> discovery index
	exp    *expTable
}

// NewDriver creates a driver for the given geometry and polar quadrature.
// All four boundary conditions default to reflective. The group count is
// taken from the geometry's materials, which must agree.
func NewDriver(g *geom.Cartesian2D, polar quad.PolarQuadrature) (*Driver, error) {
	if g.NumRegions() == 0 {
		return nil, configErrf("geometry has no regions")
	}
	if polar.NPolar() == 0 {
		return nil, configErrf("polar quadrature is empty")
	}
	ng := g.XS(0).NGroups()
	for i := 1; i < g.NumRegions(); i++ {
		if n := g.XS(i).NGroups(); n != ng {
			return nil, configErrf(
				"region 0 has %d groups but region %d has %d", ng, i, n,
			)
		}
	}

	dr := &Driver{
		FluxTolerance: 1e-5,
		KeffTolerance: 1e-5,
		MaxIterations: 1000,
		Workers:       runtime.NumCPU(),

		geometry: g,
		polar:    polar,
		ngroups:  ng,
		fsrIdx:   make(map[int]int),
	}
	return dr, nil
}

// Drawn reports whether DrawTracks has been called.
func (dr *Driver) Drawn() bool { return len(dr.angles) > 0 }

// NGroups returns the number of energy groups.
func (dr *Driver) NGroups() int { return dr.ngroups }

// PolarQuadrature returns the polar quadrature in use.
func (dr *Driver) PolarQuadrature() *quad.PolarQuadrature { return &dr.polar }

// Geometry returns the geometry the driver traces.
func (dr *Driver) Geometry() *geom.Cartesian2D { return dr.geometry }

// NumFSRs returns the number of flat source regions discovered so far.
func (dr *Driver) NumFSRs() int { return len(dr.fsrs) }

// FSR returns the flat source region with the given discovery index.
func (dr *Driver) FSR(i int) *FlatSourceRegion { return dr.fsrs[i] }

// BoundaryCondition returns the condition applied to the given edge.
func (dr *Driver) BoundaryCondition(e geom.Edge) geom.BoundaryCondition {
	return dr.bcs[e]
}

// SetBoundaryCondition sets the condition of one edge. Boundary conditions
// are baked into the track links, so they must be set before DrawTracks.
func (dr *Driver) SetBoundaryCondition(
	e geom.Edge, bc geom.BoundaryCondition,
) error {
	if dr.Drawn() {
		return configErrf("boundary conditions cannot change after tracks are drawn")
	}
	dr.bcs[e] = bc
	return nil
}

// DrawTracks generates the azimuthal quadrature, lays out and segments all
// tracks, stitches their ends per the boundary conditions, and allocates
// the flux state. nAngles is the number of azimuthal angles over the full
// circle and must be a multiple of 4; spacing is the nominal perpendicular
// track spacing.
//
// A driver can only be drawn once; create a new driver to retrace.
func (dr *Driver) DrawTracks(nAngles int, spacing float64) error {
	if dr.Drawn() {
		return configErrf("tracks have already been drawn")
	}
	g := dr.geometry

	angles, err := quad.GenerateAzimuthal(nAngles, spacing, g.Width(), g.Height())
	if err != nil {
		return configErrf("%v", err)
	}

	var tracks []*Track
	for i := range angles {
		tracks = append(tracks, dr.generateTracks(&angles[i])...)
	}
	dr.angles = angles
	dr.tracks = tracks

	for _, t := range dr.tracks {
		if err := dr.segmentTrack(t); err != nil {
			return err
		}
	}
	if err := dr.linkTracks(); err != nil {
		return err
	}

	size := dr.ngroups * dr.polar.NPolar()
	for _, t := range dr.tracks {
		for d := 0; d < 2; d++ {
			t.in[d] = make([]float64, size)
			t.next[d] = make([]float64, size)
		}
	}
	for _, f := range dr.fsrs {
		f.Flux = make([]float64, dr.ngroups)
		f.source = make([]float64, dr.ngroups)
	}
	dr.exp = newExpTable(expTableMax, expTableStep)
	return nil
}

// generateTracks lays out the physical tracks of one azimuthal angle.
// Entry points sit at half-offset grid positions on the y-min edge and on
// the x-min (phi < pi/2) or x-max (phi > pi/2) edge, so that the cyclic
// quadrature makes every exit point coincide with an entry point of the
// mirrored angle.
func (dr *Driver) generateTracks(a *quad.AngleInfo) []*Track {
	g := dr.geometry
	u := geom.NewDirection(a.Phi)
	dx := g.Width() / float64(a.Nx)
	dy := g.Height() / float64(a.Ny)

	starts := make([]geom.Vec, 0, int(a.Nx+a.Ny))
	for i := uint32(0); i < a.Nx; i++ {
		starts = append(starts, geom.Vec{
			g.XMin() + (float64(i)+0.5)*dx, g.YMin(),
		})
	}
	sideX := g.XMin()
	if u.X < 0 {
		sideX = g.XMax()
	}
	for j := uint32(0); j < a.Ny; j++ {
		starts = append(starts, geom.Vec{
			sideX, g.YMin() + (float64(j)+0.5)*dy,
		})
	}

	tracks := make([]*Track, len(starts))
	for i, entry := range starts {
		tracks[i] = &Track{
			Entry: entry,
			Exit:  dr.exitPoint(entry, u),
			Dir:   u,
			Wgt:   a.Wgt,
			D:     a.D,
		}
	}
	return tracks
}

// exitPoint traces a straight line from the entry point to the domain
// boundary and snaps the result onto the bounding box.
func (dr *Driver) exitPoint(entry geom.Vec, u geom.Direction) geom.Vec {
	g := dr.geometry
	t := math.Inf(1)
	if u.X > 0 {
		t = (g.XMax() - entry[0]) / u.X
	} else if u.X < 0 {
		t = (g.XMin() - entry[0]) / u.X
	}
	if u.Y > 0 {
		if ty := (g.YMax() - entry[1]) / u.Y; ty < t {
			t = ty
		}
	}
	p := geom.Vec{entry[0] + t*u.X, entry[1] + t*u.Y}
	for c, lo := range []float64{g.XMin(), g.YMin()} {
		hi := []float64{g.XMax(), g.YMax()}[c]
		if math.Abs(p[c]-lo) < geom.Eps {
			p[c] = lo
		} else if math.Abs(p[c]-hi) < geom.Eps {
			p[c] = hi
		}
	}
	return p
}

// segmentTrack walks the track through the geometry, emitting one segment
// per region crossing and registering newly discovered regions. Region
// volumes accumulate the track-length area estimate as segments are
// emitted.
func (dr *Driver) segmentTrack(t *Track) error {
	pos := t.Entry
	total := t.Chord()
	traveled := 0.0

	for iter := 0; ; iter++ {
		if iter == maxTrackSegments {
			return geomErrf(
				"track from (%g, %g) to (%g, %g) did not terminate after %d segments",
				t.Entry[0], t.Entry[1], t.Exit[0], t.Exit[1], iter,
			)
		}
		remaining := total - traveled
		if remaining <= geom.Eps {
			break
		}

		region, err := dr.geometry.FindFSR(pos, t.Dir)
		if err != nil {
			return geomErrf("segmenting track: %v", err)
		}
		d, err := dr.geometry.DistanceToSurface(pos, t.Dir)
		if err != nil {
			return geomErrf("segmenting track: %v", err)
		}
		// Step at least Eps so that rays passing through region corners
		// cannot stall on a zero-length crossing.
		d += geom.Eps
		if d > remaining {
			d = remaining
		}

		fi := dr.registerFSR(region)
		t.Segs = append(t.Segs, Segment{fi, d})
		dr.fsrs[fi].Volume += 2 * t.Wgt * t.D * d

		pos[0] += t.Dir.X * d
		pos[1] += t.Dir.Y * d
		traveled += d
	}
	if len(t.Segs) == 0 {
		return geomErrf(
			"track from (%g, %g) to (%g, %g) produced no segments",
			t.Entry[0], t.Entry[1], t.Exit[0], t.Exit[1],
		)
	}
	return nil
}

func (dr *Driver) registerFSR(region int) int {
	if fi, ok := dr.fsrIdx[region]; ok {
		return fi
	}
	fi := len(dr.fsrs)
	dr.fsrIdx[region] = fi
	dr.fsrs = append(dr.fsrs, &FlatSourceRegion{
		XS:     dr.geometry.XS(region),
		id:     fi,
		region: region,
	})
	return fi
}

// GetFSR resolves the flat source region containing r, with u breaking
// ties for points on internal surfaces. Tracks must already be drawn.
func (dr *Driver) GetFSR(r geom.Vec, u geom.Direction) (*FlatSourceRegion, error) {
	if !dr.Drawn() {
		return nil, configErrf("GetFSR called before tracks were drawn")
	}
	region, err := dr.geometry.FindFSR(r, u)
	if err != nil {
		return nil, geomErrf("%v", err)
	}
	fi, ok := dr.fsrIdx[region]
	if !ok {
		return nil, geomErrf(
			"no track crossed the region at (%g, %g); refine the track spacing",
			r[0], r[1],
		)
	}
	return dr.fsrs[fi], nil
}

// TrackEndpoints returns the entry and exit points of every track, for
// plotting and diagnostics.
func (dr *Driver) TrackEndpoints() [][2]geom.Vec {
	out := make([][2]geom.Vec, len(dr.tracks))
	for i, t := range dr.tracks {
		out[i] = [2]geom.Vec{t.Entry, t.Exit}
	}
	return out
}
