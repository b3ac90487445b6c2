// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package derive computes separation energies and beta-decay Q-values from
// binding energies and mass excesses of neighboring nuclides in one table,
// and classifies nuclides as bound against particle emission.
package derive

import (
	"errors"
	"fmt"

	"github.com/pdiddy/nuclide-engine/pkg/types"
)

// NeutronMassExcess is the neutron mass excess in MeV.
const NeutronMassExcess = 8.07131806

// ErrUnresolvedNeighbor is returned when a neighbor a quantity depends on is
// not in the table.
var ErrUnresolvedNeighbor = errors.New("unresolved neighbor")

// Offsets of the neighbors each quantity is computed against, as (dZ, dN).
var (
	offsetS1n = [2]int{0, -1}
	offsetS2n = [2]int{0, -2}
	offsetS1p = [2]int{-1, 0}
	offsetS2p = [2]int{-2, 0}
	offsetQb  = [2]int{1, -1}
	offsetQbn = [2]int{1, -2}
)

// Stats counts quantities left unavailable because a neighbor was missing.
type Stats struct {
	Records    int
	Unresolved int
}

// Neighbor returns the record at key shifted by offset (dZ, dN).
func Neighbor(ix types.Index, key types.Key, offset [2]int) (types.Nuclide, error) {
	k := key.Offset(offset[0], offset[1])
	rec, ok := ix.Lookup(k)
	if !ok {
		return types.Nuclide{}, fmt.Errorf("%w: %s", ErrUnresolvedNeighbor, k)
	}
	return rec, nil
}

// Compute derives every quantity for rec against the records in ix. A
// quantity whose neighbor is absent, or whose inputs are unavailable, is
// unavailable. The second return value counts missing neighbors.
func Compute(ix types.Index, rec types.Nuclide) (types.Derived, int) {
	d := types.Derived{Nuclide: rec}
	unresolved := 0

	against := func(offset [2]int, f func(types.Nuclide) types.Quantity) types.Quantity {
		nb, err := Neighbor(ix, rec.Key, offset)
		if err != nil {
			unresolved++
			return types.None()
		}
		return f(nb)
	}
	binding := func(nb types.Nuclide) types.Quantity {
		return rec.BindingEnergy.Sub(nb.BindingEnergy)
	}
	mass := func(nb types.Nuclide) types.Quantity {
		return rec.MassExcess.Sub(nb.MassExcess)
	}

	d.S1n = against(offsetS1n, binding)
	d.S2n = against(offsetS2n, binding)
	d.S1p = against(offsetS1p, binding)
	d.S2p = against(offsetS2p, binding)
	d.Qb = against(offsetQb, mass)
	d.Qbn = against(offsetQbn, func(nb types.Nuclide) types.Quantity {
		return mass(nb).Minus(NeutronMassExcess)
	})
	return d, unresolved
}

// Table derives quantities for every record, in input order.
func Table(records []types.Nuclide) ([]types.Derived, Stats) {
	ix := types.NewIndex(records)
	out := make([]types.Derived, 0, len(records))
	stats := Stats{Records: len(records)}
	for _, r := range records {
		d, n := Compute(ix, r)
		stats.Unresolved += n
		out = append(out, d)
	}
	return out, stats
}

// IsBound reports whether all four separation energies are available and
// strictly positive.
func IsBound(d types.Derived) bool {
	return d.S1n.Positive() && d.S2n.Positive() && d.S1p.Positive() && d.S2p.Positive()
}

// Bound returns the bound subset of derived records, in input order.
func Bound(derived []types.Derived) []types.Derived {
	var out []types.Derived
	for _, d := range derived {
		if IsBound(d) {
			out = append(out, d)
		}
	}
	return out
}

// BetaDelayedNeutronCandidates returns the bound records for which both
// beta decay and beta-delayed single-neutron emission are energetically
// open.
func BetaDelayedNeutronCandidates(bound []types.Derived) []types.Derived {
	var out []types.Derived
	for _, d := range bound {
		if d.Qb.Positive() && d.Qbn.Positive() {
			out = append(out, d)
		}
	}
	return out
}

// Nuclides strips derived quantities, for passing a derived set back into
// the merge stage.
func Nuclides(derived []types.Derived) []types.Nuclide {
	out := make([]types.Nuclide, len(derived))
	for i, d := range derived {
		out[i] = d.Nuclide
	}
	return out
}
