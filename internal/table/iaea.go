package table

import (
	"fmt"

	"github.com/pdiddy/nuclide-engine/internal/element"
	"github.com/pdiddy/nuclide-engine/pkg/types"
)

// IAEACRPColumns names the leading columns of the IAEA CRP beta-delayed
// neutron evaluation table. Unnamed positions are not used.
var IAEACRPColumns = Tokens{
	0: "", 1: "Z", 2: "A", 3: "liso",
	4: "", 5: "", 6: "", 7: "", 8: "", 9: "", 10: "", 11: "", 12: "", 13: "", 14: "", 15: "",
	16: "T12", 17: "dT12",
	18: "P1n", 19: "dP1n",
	20: "P2n", 21: "dP2n",
	22: "P3n", 23: "dP3n",
	24: "", 25: "", 26: "", 27: "", 28: "", 29: "",
	30: "dT12hi", 31: "dP1nhi", 32: "dP2nhi",
}

// IAEACRP decodes ground states of the IAEA CRP evaluation. Half-lives are
// already in seconds.
var IAEACRP Decoder = DecoderFunc(decodeIAEACRP)

func decodeIAEACRP(line Line) (types.Nuclide, bool, error) {
	row, err := IAEACRPColumns.Split(line)
	if err != nil {
		return types.Nuclide{}, false, err
	}

	z, err := row.Int("Z")
	if err != nil {
		return types.Nuclide{}, false, err
	}
	a, err := row.Int("A")
	if err != nil {
		return types.Nuclide{}, false, err
	}
	liso, err := row.Int("liso")
	if err != nil {
		return types.Nuclide{}, false, err
	}
	if liso != 0 {
		return types.Nuclide{}, false, nil
	}
	if z < 0 || a < z {
		return types.Nuclide{}, false, malformed(line.Number, "A", row.Str("A"),
			fmt.Errorf("inconsistent Z=%d, A=%d", z, a))
	}
	sym, err := element.ZToSymbol(z)
	if err != nil {
		return types.Nuclide{}, false, malformed(line.Number, "Z", row.Str("Z"), err)
	}

	rec := types.Nuclide{
		Key:    types.Key{Z: z, N: a - z},
		Symbol: sym,
		Source: types.SourceIAEA,
	}

	fields := []struct {
		name string
		dst  *types.Quantity
	}{
		{"T12", &rec.HalfLife},
		{"dT12", &rec.HalfLifeUnc},
		{"dT12hi", &rec.HalfLifeUncHigh},
		{"P1n", &rec.P1n.Prob},
		{"dP1n", &rec.P1n.Unc},
		{"dP1nhi", &rec.P1n.UncHigh},
		{"P2n", &rec.P2n.Prob},
		{"dP2n", &rec.P2n.Unc},
		{"dP2nhi", &rec.P2n.UncHigh},
		{"P3n", &rec.P3n.Prob},
		{"dP3n", &rec.P3n.Unc},
	}
	for _, f := range fields {
		q, err := row.Quantity(f.name)
		if err != nil {
			return types.Nuclide{}, false, err
		}
		*f.dst = q
	}

	return rec, true, nil
}
