package moc

import (
	"math"
	"testing"

	"github.com/nverley/moc2d/geom"
)

// endpoint returns the boundary point a traversal leaves through, and
// start the point a link's receiving traversal begins at.
func endpoint(t *Track, d int) geom.Vec {
	if d == 0 {
		return t.Exit
	}
	return t.Entry
}

func start(lk link) geom.Vec {
	if lk.dir == 0 {
		return lk.track.Entry
	}
	return lk.track.Exit
}

func outgoingPhi(t *Track, d int) float64 {
	if d == 0 {
		return t.Dir.Phi
	}
	return t.Dir.Reverse().Phi
}

func TestLinkReflective(t *testing.T) {
	dr := uniformDriver(t, 1, 1.0, absorberXS(t, 1.0), geom.Reflective, 8, 0.3)

	for i, tr := range dr.tracks {
		for d := 0; d < 2; d++ {
			lk := tr.out[d]
			if lk.vacuum || lk.track == nil {
				t.Errorf("Track %d dir %d: reflective end is unlinked.", i, d)
				continue
			}
			end := endpoint(tr, d)
			if end.Dist(start(lk)) > 1e-6 {
				t.Errorf(
					"Track %d dir %d: reflects from %v into a track starting at %v.",
					i, d, end, start(lk),
				)
			}
		}
	}
}

func TestLinkVacuum(t *testing.T) {
	dr := uniformDriver(t, 1, 1.0, absorberXS(t, 1.0), geom.Vacuum, 8, 0.3)

	for i, tr := range dr.tracks {
		for d := 0; d < 2; d++ {
			if !tr.out[d].vacuum {
				t.Errorf("Track %d dir %d: vacuum end is not marked vacuum.", i, d)
			}
		}
	}
}

func TestLinkPeriodic(t *testing.T) {
	dr := uniformDriver(t, 1, 1.0, absorberXS(t, 1.0), geom.Periodic, 8, 0.3)

	for i, tr := range dr.tracks {
		for d := 0; d < 2; d++ {
			lk := tr.out[d]
			if lk.vacuum || lk.track == nil {
				t.Errorf("Track %d dir %d: periodic end is unlinked.", i, d)
				continue
			}

			// The receiving traversal keeps the direction and starts at
			// the same point translated across the domain.
			dphi := math.Abs(
				geom.NormalizeAngle(outgoingPhi(tr, d) - outgoingPhi(lk.track, lk.dir)),
			)
			if dphi > 1e-6 && math.Abs(dphi-2*math.Pi) > 1e-6 {
				t.Errorf(
					"Track %d dir %d: periodic partner changes direction by %g.",
					i, d, dphi,
				)
			}

			end, s := endpoint(tr, d), start(lk)
			dx := math.Abs(end[0] - s[0])
			dy := math.Abs(end[1] - s[1])
			okx := dx < 1e-6 || math.Abs(dx-1.0) < 1e-6
			oky := dy < 1e-6 || math.Abs(dy-1.0) < 1e-6
			if !okx || !oky || (dx < 1e-6 && dy < 1e-6) {
				t.Errorf(
					"Track %d dir %d: periodic partner start %v does not wrap %v.",
					i, d, s, end,
				)
			}
		}
	}
}
