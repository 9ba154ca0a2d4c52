package moc

// The sweep is parallelized over tracks: each worker owns a workspace with
// its own scalar-flux partial sums, merged after all workers join. The
// only shared writes during a sweep go to the per-traversal `next` flux
// buffers, and each of those has exactly one producer, so the sweep is
// race-free and independent of track order.

type workspace struct {
	accum []float64 // per-region, per-group partial sums
	psi   []float64 // angular flux scratch for one traversal
}

func (dr *Driver) makeWorkspaces() []*workspace {
	n := dr.Workers
	if n < 1 {
		n = 1
	}
	wss := make([]*workspace, n)
	for i := range wss {
		wss[i] = &workspace{
			accum: make([]float64, len(dr.fsrs)*dr.ngroups),
			psi:   make([]float64, dr.ngroups*dr.polar.NPolar()),
		}
	}
	return wss
}

// sweep propagates the angular flux along every track in both directions
// and returns the merged scalar-flux accumulator. Incoming boundary fluxes
// are read from the buffers written during the previous sweep and outgoing
// fluxes are stored for the next one, swapped at the end.
func (dr *Driver) sweep(wss []*workspace) []float64 {
	out := make(chan int, len(wss))
	for id := 0; id < len(wss)-1; id++ {
		go dr.chanSweep(id, wss, out)
	}
	dr.chanSweep(len(wss)-1, wss, out)
	for i := 0; i < len(wss); i++ {
		<-out
	}

	merged := wss[0].accum
	for i := 1; i < len(wss); i++ {
		ws := wss[i]
		for j, v := range ws.accum {
			merged[j] += v
		}
	}

	for _, t := range dr.tracks {
		for d := 0; d < 2; d++ {
			t.in[d], t.next[d] = t.next[d], t.in[d]
		}
	}
	return merged
}

func (dr *Driver) chanSweep(id int, wss []*workspace, out chan<- int) {
	ws := wss[id]
	for j := range ws.accum {
		ws.accum[j] = 0
	}
	for ti := id; ti < len(dr.tracks); ti += len(wss) {
		t := dr.tracks[ti]
		dr.sweepTrack(t, 0, ws)
		dr.sweepTrack(t, 1, ws)
	}
	out <- id
}

// sweepTrack propagates one traversal of one track. For every segment the
// angular flux is attenuated toward the region's source,
//
//	psi_out = psi_in*exp(-tau) + (q/Et)*(1 - exp(-tau)),
//
// and the flux lost to the region, weighted by the polar weight and sine,
// accumulates into the region's scalar-flux partial sum.
func (dr *Driver) sweepTrack(t *Track, d int, ws *workspace) {
	np := dr.polar.NPolar()
	ng := dr.ngroups

	psi := ws.psi
	copy(psi, t.in[d])

	nseg := len(t.Segs)
	for si := 0; si < nseg; si++ {
		s := &t.Segs[si]
		if d == 1 {
			s = &t.Segs[nseg-1-si]
		}
		f := dr.fsrs[s.FSR]

		for g := 0; g < ng; g++ {
			et := f.XS.Et[g]
			sq := f.source[g] / et
			tauG := et * s.Length

			sum := 0.0
			for p := 0; p < np; p++ {
				atten := dr.exp.eval(tauG / dr.polar.Sin[p])
				delta := (psi[g*np+p] - sq) * atten
				psi[g*np+p] -= delta
				sum += delta * dr.polar.Wgt[p] * dr.polar.Sin[p]
			}
			ws.accum[s.FSR*ng+g] += sum * t.Wgt * t.D
		}
	}

	if lk := t.out[d]; !lk.vacuum {
		copy(lk.track.next[lk.dir], psi)
	}
}
