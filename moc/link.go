package moc

import (
	"math"

	"github.com/nverley/moc2d/geom"
)

// A traversal start is keyed by its quantized position and direction.
// Track endpoints are exact boundary grid points up to floating error, so
// matching quantizes coarsely and probes the neighboring buckets.
type startKey struct {
	x, y, phi int64
}

type startTable struct {
	posQ, angQ float64
	m          map[startKey]link
}

func newStartTable(scale float64) *startTable {
	return &startTable{
		posQ: 1e-7 * scale,
		angQ: 1e-9,
		m:    make(map[startKey]link),
	}
}

func (st *startTable) key(p geom.Vec, phi float64) startKey {
	return startKey{
		x:   int64(math.Round(p[0] / st.posQ)),
		y:   int64(math.Round(p[1] / st.posQ)),
		phi: int64(math.Round(phi / st.angQ)),
	}
}

func (st *startTable) add(p geom.Vec, phi float64, lk link) {
	st.m[st.key(p, phi)] = lk
}

func (st *startTable) find(p geom.Vec, phi float64) (link, bool) {
	k := st.key(p, phi)
	for _, dx := range []int64{0, -1, 1} {
		for _, dy := range []int64{0, -1, 1} {
			for _, dp := range []int64{0, -1, 1} {
				lk, ok := st.m[startKey{k.x + dx, k.y + dy, k.phi + dp}]
				if ok {
					return lk, true
				}
			}
		}
	}
	return link{}, false
}

// linkTracks resolves, for both traversal directions of every track, where
// the outgoing angular flux goes. Reflective ends couple to the mirrored
// traversal starting at the same boundary point; periodic ends couple to
// the same direction at the matching point on the opposite edge; vacuum
// ends discard their flux. Every end must resolve, so the links form
// closed cycles (with vacuum acting as a fixed zero source).
func (dr *Driver) linkTracks() error {
	g := dr.geometry
	st := newStartTable(math.Max(g.Width(), g.Height()))

	for _, t := range dr.tracks {
		st.add(t.Entry, t.Dir.Phi, link{track: t, dir: 0})
		st.add(t.Exit, t.Dir.Reverse().Phi, link{track: t, dir: 1})
	}

	for _, t := range dr.tracks {
		for d := 0; d < 2; d++ {
			end, out := t.Exit, t.Dir
			if d == 1 {
				end, out = t.Entry, t.Dir.Reverse()
			}

			edge, ok := dr.edgeAt(end, out)
			if !ok {
				return geomErrf(
					"track end (%g, %g) with direction %g does not exit "+
						"through a domain edge",
					end[0], end[1], out.Phi,
				)
			}

			switch dr.bcs[edge] {
			case geom.Vacuum:
				t.out[d] = link{vacuum: true}
				continue
			case geom.Reflective:
				refl := out.ReflectY()
				if edge == geom.XMinEdge || edge == geom.XMaxEdge {
					refl = out.ReflectX()
				}
				lk, ok := st.find(end, refl.Phi)
				if !ok {
					return geomErrf(
						"no reflective partner at (%g, %g) for direction %g on the %v edge",
						end[0], end[1], refl.Phi, edge,
					)
				}
				t.out[d] = lk
			case geom.Periodic:
				p := end
				switch edge {
				case geom.XMinEdge:
					p[0] = g.XMax()
				case geom.XMaxEdge:
					p[0] = g.XMin()
				case geom.YMinEdge:
					p[1] = g.YMax()
				case geom.YMaxEdge:
					p[1] = g.YMin()
				}
				lk, ok := st.find(p, out.Phi)
				if !ok {
					return geomErrf(
						"no periodic partner at (%g, %g) for direction %g on the %v edge",
						p[0], p[1], out.Phi, edge,
					)
				}
				t.out[d] = lk
			}
		}
	}
	return nil
}

// edgeAt identifies the domain edge a traversal exits through: the edge
// the end point sits on whose outward normal the direction crosses.
func (dr *Driver) edgeAt(p geom.Vec, u geom.Direction) (geom.Edge, bool) {
	g := dr.geometry
	switch {
	case u.X > 0 && math.Abs(p[0]-g.XMax()) <= geom.Eps:
		return geom.XMaxEdge, true
	case u.X < 0 && math.Abs(p[0]-g.XMin()) <= geom.Eps:
		return geom.XMinEdge, true
	case u.Y > 0 && math.Abs(p[1]-g.YMax()) <= geom.Eps:
		return geom.YMaxEdge, true
	case u.Y < 0 && math.Abs(p[1]-g.YMin()) <= geom.Eps:
		return geom.YMinEdge, true
	}
	return 0, false
}
