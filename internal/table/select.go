package table

import "github.com/pdiddy/nuclide-engine/pkg/types"

// SelectStable returns the records flagged stable.
func SelectStable(records []types.Nuclide) []types.Nuclide {
	return filter(records, func(r types.Nuclide) bool { return r.Stable })
}

// SelectBetaMinus returns the records whose decay-mode annotation lists
// beta-minus decay.
func SelectBetaMinus(records []types.Nuclide) []types.Nuclide {
	return filter(records, func(r types.Nuclide) bool {
		return HasMode(ParseDecayModes(r.DecayModes), ModeBetaMinus)
	})
}

func filter(records []types.Nuclide, keep func(types.Nuclide) bool) []types.Nuclide {
	var out []types.Nuclide
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
