/*package xs holds the multigroup macroscopic cross sections attached to
each region of the geometry. The transport solver treats these values as
opaque read-only data.
*/
package xs

import (
	"fmt"
)

// CrossSections is the multigroup data of one material. Slices are indexed
// by energy group, fastest group first. The scattering matrix is indexed
// Es[from][to].
type CrossSections struct {
	Et, Ea    []float64
	Es        [][]float64
	NuEf, Chi []float64
	Fissile   bool
}

// New creates the cross sections of a non-fissile material.
func New(et, ea []float64, es [][]float64) (*CrossSections, error) {
	ng := len(et)
	zero := make([]float64, ng)
	x := &CrossSections{
		Et: et, Ea: ea, Es: es,
		NuEf: zero, Chi: make([]float64, ng),
	}
	if err := x.validate(); err != nil {
		return nil, err
	}
	return x, nil
}

// NewFissile creates the cross sections of a fissile material from its
// fission production, nuEf, and fission spectrum, chi.
func NewFissile(
	et, ea, nuEf, chi []float64, es [][]float64,
) (*CrossSections, error) {
	x := &CrossSections{
		Et: et, Ea: ea, Es: es, NuEf: nuEf, Chi: chi, Fissile: true,
	}
	if err := x.validate(); err != nil {
		return nil, err
	}
	return x, nil
}

// NGroups returns the number of energy groups.
func (x *CrossSections) NGroups() int { return len(x.Et) }

func (x *CrossSections) validate() error {
	ng := len(x.Et)
	if ng == 0 {
		return fmt.Errorf("material has no energy groups")
	}
	if len(x.Ea) != ng || len(x.NuEf) != ng || len(x.Chi) != ng {
		return fmt.Errorf(
			"material group counts disagree: Et %d, Ea %d, nuEf %d, chi %d",
			ng, len(x.Ea), len(x.NuEf), len(x.Chi),
		)
	}
	if len(x.Es) != ng {
		return fmt.Errorf(
			"scattering matrix has %d rows for %d groups", len(x.Es), ng,
		)
	}
	for g, row := range x.Es {
		if len(row) != ng {
			return fmt.Errorf(
				"scattering matrix row %d has %d columns for %d groups",
				g, len(row), ng,
			)
		}
	}
	for g, et := range x.Et {
		if et <= 0 {
			return fmt.Errorf("total cross section of group %d is %g", g, et)
		}
	}
	return nil
}
