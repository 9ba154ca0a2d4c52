package moc

import (
	"log"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Result holds the outcome of a solve. A run that hits the iteration cap
// is reported with Converged false rather than as an error; the driver's
// flux state remains queryable either way.
type Result struct {
	Keff         float64
	Iterations   int
	Converged    bool
	FluxResidual float64
	KHistory     []float64

	// ResidualHistory holds the per-iteration maximum relative flux
	// change, one entry per iteration.
	ResidualHistory []float64
}

// SolveKeff runs the power iteration to convergence or to the iteration
// cap. Each iteration recomputes the fission and scattering source from
// the previous flux and k estimate, sweeps all tracks, updates the
// region-averaged scalar flux, and rescales k by the ratio of fission
// production. Convergence requires both the maximum relative flux change
// and the change in k to fall below their tolerances.
func (dr *Driver) SolveKeff() (*Result, error) {
	if !dr.Drawn() {
		return nil, configErrf("SolveKeff called before tracks were drawn")
	}
	fissile := false
	for _, f := range dr.fsrs {
		if f.XS.Fissile {
			fissile = true
			break
		}
	}
	if !fissile {
		return nil, configErrf("no fissile region in the geometry")
	}

	dr.resetState()
	wss := dr.makeWorkspaces()

	k := 1.0
	prod := dr.production()
	res := &Result{Keff: k}

	for it := 1; it <= dr.MaxIterations; it++ {
		clipped := dr.updateSource(k, nil)
		accum := dr.sweep(wss)
		resid, fluxClipped := dr.updateFlux(accum)
		clipped += fluxClipped

		newProd := dr.production()
		kNew := k * newProd / prod
		dk := math.Abs(kNew - k)
		k, prod = kNew, newProd

		res.Iterations = it
		res.FluxResidual = resid
		res.KHistory = append(res.KHistory, k)
		res.ResidualHistory = append(res.ResidualHistory, resid)

		if clipped > 0 {
			log.Printf(
				"iteration %d: clipped %d negative flux/source values to zero",
				it, clipped,
			)
		}
		if dr.Verbose {
			log.Printf(
				"iteration %3d: k-eff = %.6f, dk = %.2e, flux residual = %.2e",
				it, k, dk, resid,
			)
		}

		if resid < dr.FluxTolerance && dk < dr.KeffTolerance {
			res.Converged = true
			break
		}
	}
	res.Keff = k
	if !res.Converged {
		log.Printf(
			"eigenvalue iteration hit the cap of %d iterations "+
				"(k-eff = %.6f, flux residual = %.2e)",
			dr.MaxIterations, k, res.FluxResidual,
		)
	}
	return res, nil
}

// SolveFixedSource iterates the flux to convergence under a frozen
// external isotropic source, qext, given as the total emission density of
// each group, uniform over the domain. Fission, if present, contributes
// at k = 1. Only the flux residual drives convergence and the returned
// Keff is zero.
func (dr *Driver) SolveFixedSource(qext []float64) (*Result, error) {
	if !dr.Drawn() {
		return nil, configErrf("SolveFixedSource called before tracks were drawn")
	}
	if len(qext) != dr.ngroups {
		return nil, configErrf(
			"external source has %d groups, problem has %d",
			len(qext), dr.ngroups,
		)
	}

	dr.resetState()
	wss := dr.makeWorkspaces()
	res := &Result{}

	for it := 1; it <= dr.MaxIterations; it++ {
		clipped := dr.updateSource(1, qext)
		accum := dr.sweep(wss)
		resid, fluxClipped := dr.updateFlux(accum)
		clipped += fluxClipped

		res.Iterations = it
		res.FluxResidual = resid
		res.ResidualHistory = append(res.ResidualHistory, resid)

		if clipped > 0 {
			log.Printf(
				"iteration %d: clipped %d negative flux/source values to zero",
				it, clipped,
			)
		}
		if dr.Verbose {
			log.Printf(
				"iteration %3d: flux residual = %.2e", it, resid,
			)
		}

		if resid < dr.FluxTolerance {
			res.Converged = true
			break
		}
	}
	if !res.Converged {
		log.Printf(
			"fixed-source iteration hit the cap of %d iterations "+
				"(flux residual = %.2e)",
			dr.MaxIterations, res.FluxResidual,
		)
	}
	return res, nil
}

// resetState restores the pre-iteration state: unit scalar flux, zero
// sources, and zero boundary fluxes.
func (dr *Driver) resetState() {
	for _, f := range dr.fsrs {
		for g := range f.Flux {
			f.Flux[g] = 1
			f.source[g] = 0
		}
	}
	for _, t := range dr.tracks {
		for d := 0; d < 2; d++ {
			for i := range t.in[d] {
				t.in[d][i] = 0
				t.next[d][i] = 0
			}
		}
	}
}

// updateSource recomputes each region's isotropic per-steradian source
// from the current scalar flux:
//
//	q_g = (chi_g/k * sum nuEf_g' flux_g' + sum Es_{g'->g} flux_g' + qext_g) / 4pi
//
// Negative values from numerical noise are clipped to zero; the clip count
// is returned so the caller can log a warning.
func (dr *Driver) updateSource(k float64, qext []float64) int {
	clipped := 0
	for _, f := range dr.fsrs {
		x := f.XS
		fis := 0.0
		if x.Fissile {
			fis = floats.Dot(x.NuEf, f.Flux) / k
		}

		for g := range f.source {
			f.source[g] = 0
		}
		for gf, row := range x.Es {
			phi := f.Flux[gf]
			if phi == 0 {
				continue
			}
			for gt, s := range row {
				f.source[gt] += s * phi
			}
		}
		for g := range f.source {
			q := f.source[g] + x.Chi[g]*fis
			if qext != nil {
				q += qext[g]
			}
			if q < 0 {
				q = 0
				clipped++
			}
			f.source[g] = q / (4 * math.Pi)
		}
	}
	return clipped
}

// updateFlux applies the flat-source flux equation to every region using
// the sweep accumulator and the track-length volume estimate, and returns
// the maximum relative flux change along with the negative-flux clip
// count.
func (dr *Driver) updateFlux(accum []float64) (maxResid float64, clipped int) {
	ng := dr.ngroups
	for i, f := range dr.fsrs {
		for g := 0; g < ng; g++ {
			et := f.XS.Et[g]
			phi := 4*math.Pi*f.source[g]/et +
				4*math.Pi*accum[i*ng+g]/(et*f.Volume)
			if phi < 0 {
				phi = 0
				clipped++
			}

			old := f.Flux[g]
			switch {
			case old > 0:
				if r := math.Abs(phi-old) / old; r > maxResid {
					maxResid = r
				}
			case phi > 0:
				maxResid = math.Max(maxResid, 1)
			}
			f.Flux[g] = phi
		}
	}
	return maxResid, clipped
}

// production returns the total fission production integrated over the
// track-estimated region volumes.
func (dr *Driver) production() float64 {
	p := 0.0
	for _, f := range dr.fsrs {
		if f.XS.Fissile {
			p += f.Volume * floats.Dot(f.XS.NuEf, f.Flux)
		}
	}
	return p
}
