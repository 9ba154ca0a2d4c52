package xs

import (
	"fmt"

	"github.com/phil-mansfield/table"
)

// ReadMaterial reads an ngroups-group material from a whitespace-separated
// text table with one row per group and the columns
//
//	Et Ea nuEf chi Es_0 ... Es_{ngroups-1}
//
// where Es_g is the scattering cross section from the row's group into
// group g. The material is fissile if any nuEf entry is positive.
func ReadMaterial(fname string, ngroups int) (*CrossSections, error) {
	colIdxs := make([]int, 4+ngroups)
	for i := range colIdxs {
		colIdxs[i] = i
	}
	cols, err := table.ReadTable(fname, colIdxs, nil)
	if err != nil {
		return nil, err
	}

	et, ea, nuEf, chi := cols[0], cols[1], cols[2], cols[3]
	if len(et) != ngroups {
		return nil, fmt.Errorf(
			"%s: expected %d group rows, got %d", fname, ngroups, len(et),
		)
	}

	es := make([][]float64, ngroups)
	for g := range es {
		es[g] = make([]float64, ngroups)
		for gp := 0; gp < ngroups; gp++ {
			es[g][gp] = cols[4+gp][g]
		}
	}

	fissile := false
	for _, v := range nuEf {
		if v > 0 {
			fissile = true
			break
		}
	}
	if fissile {
		return NewFissile(et, ea, nuEf, chi, es)
	}
	return New(et, ea, es)
}
