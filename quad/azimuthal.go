/*package quad generates the angular quadratures used by the transport
sweep: the azimuthal track-laying quadrature and the named polar sets.
*/
package quad

import (
	"fmt"
	"math"
)

// AngleInfo describes one stored azimuthal angle. Angles are stored for
// phi in (0, pi); traversing each track in both directions covers the full
// circle.
type AngleInfo struct {
	Phi float64 // effective azimuthal angle
	D   float64 // effective perpendicular track spacing
	Wgt float64 // sector fraction of the full circle
	Nx  uint32  // tracks entering on the y-min edge
	Ny  uint32  // tracks entering on the x-min or x-max edge
}

// GenerateAzimuthal builds the azimuthal quadrature for a w x h domain.
// nAngles is the total number of azimuthal angles over the full circle and
// must be a positive multiple of 4; d is the nominal track spacing.
//
// Track counts are rounded to integers and the angle and spacing are then
// recomputed so that every track's far endpoint lands exactly on an entry
// point of the same or mirrored angle. This exactness is what lets the
// boundary linker stitch track ends together. Neighboring nominal angles
// whose rounded track counts coincide describe the same track geometry and
// are merged into one angle carrying their combined sector weight, so fewer
// than nAngles/2 angles may be returned. The returned angles cover (0, pi),
// quadrant angles first, then their mirrors about pi/2 in descending-mirror
// order; weights sum to 1/2.
func GenerateAzimuthal(nAngles int, d, w, h float64) ([]AngleInfo, error) {
	if nAngles <= 0 || nAngles%4 != 0 {
		return nil, fmt.Errorf(
			"number of azimuthal angles must be a positive multiple of 4, got %d",
			nAngles,
		)
	}
	if d <= 0 {
		return nil, fmt.Errorf("track spacing must be positive, got %g", d)
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("domain size %g x %g is not positive", w, h)
	}

	m := nAngles / 4
	delta := 2 * math.Pi / float64(nAngles)
	q := make([]AngleInfo, 0, m)
	for i := 0; i < m; i++ {
		phi := delta * (float64(i) + 0.5)
		nx := roundCount(w * math.Sin(phi) / d)
		ny := roundCount(h * math.Cos(phi) / d)
		// Identical track counts mean identical tracks. Keeping both
		// families would register the same start points twice and break
		// the one-producer rule on the boundary buffers, so the families
		// collapse into one angle; the midpoint weights below hand it
		// the whole merged sector. Track counts change monotonically
		// across the quadrant, so duplicates are always adjacent.
		if n := len(q); n > 0 && q[n-1].Nx == nx && q[n-1].Ny == ny {
			continue
		}
		eff := math.Atan2(h*float64(nx), w*float64(ny))
		q = append(q, AngleInfo{
			Phi: eff,
			D:   (w / float64(nx)) * math.Sin(eff),
			Nx:  nx,
			Ny:  ny,
		})
	}

	// Sector weights from the half-angle midpoints between neighboring
	// effective angles, with the quadrant edges at 0 and pi/2.
	for i := range q {
		lo, hi := 0.0, math.Pi/2
		if i > 0 {
			lo = (q[i-1].Phi + q[i].Phi) / 2
		}
		if i < len(q)-1 {
			hi = (q[i].Phi + q[i+1].Phi) / 2
		}
		q[i].Wgt = (hi - lo) / (2 * math.Pi)
	}

	// Mirror into (pi/2, pi). The mirrored angles reuse the same track
	// counts and spacing, so their endpoints share the boundary grid.
	out := make([]AngleInfo, 0, 2*len(q))
	out = append(out, q...)
	for i := len(q) - 1; i >= 0; i-- {
		a := q[i]
		a.Phi = math.Pi - a.Phi
		out = append(out, a)
	}
	return out, nil
}

func roundCount(x float64) uint32 {
	n := math.Round(x)
	if n < 1 {
		return 1
	}
	return uint32(n)
}
