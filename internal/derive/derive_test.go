// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package derive

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/nuclide-engine/pkg/types"
)

func nuc(z, n int, ebind float64) types.Nuclide {
	return types.Nuclide{Key: types.Key{Z: z, N: n}, BindingEnergy: types.Some(ebind)}
}

// neighborhood returns the target at (10, 12) and its four separation
// neighbors with the given binding energies.
func neighborhood(target, n1, n2, p1, p2 float64) []types.Nuclide {
	return []types.Nuclide{
		nuc(10, 12, target),
		nuc(10, 11, n1),
		nuc(10, 10, n2),
		nuc(9, 12, p1),
		nuc(8, 12, p2),
	}
}

func TestCompute_SeparationEnergies(t *testing.T) {
	records := neighborhood(8.0, 7.5, 6.8, 7.2, 6.1)
	ix := types.NewIndex(records)

	d, _ := Compute(ix, records[0])
	assert.InDelta(t, 0.5, d.S1n.Value, 1e-12)
	assert.InDelta(t, 1.2, d.S2n.Value, 1e-12)
	assert.InDelta(t, 0.8, d.S1p.Value, 1e-12)
	assert.InDelta(t, 1.9, d.S2p.Value, 1e-12)
	assert.True(t, IsBound(d))
}

func TestIsBound(t *testing.T) {
	tests := []struct {
		name    string
		records []types.Nuclide
		want    bool
	}{
		{"all positive", neighborhood(8.0, 7.5, 6.8, 7.2, 6.1), true},
		{"zero S1n is unbound", neighborhood(8.0, 8.0, 6.8, 7.2, 6.1), false},
		{"negative S2p is unbound", neighborhood(8.0, 7.5, 6.8, 7.2, 8.5), false},
		{"missing neighbor is unbound", neighborhood(8.0, 7.5, 6.8, 7.2, 6.1)[:4], false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _ := Compute(types.NewIndex(tt.records), tt.records[0])
			if got := IsBound(d); got != tt.want {
				t.Errorf("IsBound = %v, want %v (S1n=%v S2n=%v S1p=%v S2p=%v)",
					got, tt.want, d.S1n, d.S2n, d.S1p, d.S2p)
			}
		})
	}
}

func TestCompute_UnavailableInputs(t *testing.T) {
	records := neighborhood(8.0, 7.5, 6.8, 7.2, 6.1)
	records[1].BindingEnergy = types.None()

	d, unresolved := Compute(types.NewIndex(records), records[0])
	assert.False(t, d.S1n.Valid, "unavailable neighbor energy propagates")
	assert.True(t, d.S2n.Valid)
	assert.False(t, IsBound(d))
	// Qb and Qbn neighbors are absent
	assert.Equal(t, 2, unresolved)
}

func TestCompute_QValues(t *testing.T) {
	parent := types.Nuclide{Key: types.Key{Z: 35, N: 53}, MassExcess: types.Some(-70.7)}
	daughter := types.Nuclide{Key: types.Key{Z: 36, N: 52}, MassExcess: types.Some(-79.7)}
	afterN := types.Nuclide{Key: types.Key{Z: 36, N: 51}, MassExcess: types.Some(-84.6)}
	ix := types.NewIndex([]types.Nuclide{parent, daughter, afterN})

	d, _ := Compute(ix, parent)
	assert.InDelta(t, 9.0, d.Qb.Value, 1e-9)
	assert.InDelta(t, 13.9-NeutronMassExcess, d.Qbn.Value, 1e-9)
}

func TestNeighbor(t *testing.T) {
	ix := types.NewIndex([]types.Nuclide{nuc(10, 11, 1)})

	rec, err := Neighbor(ix, types.Key{Z: 10, N: 12}, offsetS1n)
	require.NoError(t, err)
	assert.Equal(t, types.Key{Z: 10, N: 11}, rec.Key)

	_, err = Neighbor(ix, types.Key{Z: 10, N: 12}, offsetS2n)
	assert.True(t, errors.Is(err, ErrUnresolvedNeighbor))
}

func TestTable_BoundAndCandidates(t *testing.T) {
	records := neighborhood(8.0, 7.5, 6.8, 7.2, 6.1)
	records[0].MassExcess = types.Some(20)
	records = append(records,
		types.Nuclide{Key: types.Key{Z: 11, N: 11}, MassExcess: types.Some(5)},
		types.Nuclide{Key: types.Key{Z: 11, N: 10}, MassExcess: types.Some(1)},
	)

	derived, stats := Table(records)
	require.Len(t, derived, len(records))
	assert.Equal(t, len(records), stats.Records)
	assert.Positive(t, stats.Unresolved)

	bound := Bound(derived)
	require.Len(t, bound, 1)
	assert.Equal(t, types.Key{Z: 10, N: 12}, bound[0].Key)

	cands := BetaDelayedNeutronCandidates(bound)
	require.Len(t, cands, 1)
	assert.InDelta(t, 15, cands[0].Qb.Value, 1e-9)
	assert.InDelta(t, 19-NeutronMassExcess, cands[0].Qbn.Value, 1e-9)

	assert.Equal(t, records[0], Nuclides(bound)[0])
}
