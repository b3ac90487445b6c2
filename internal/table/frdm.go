package table

import (
	"fmt"

	"github.com/pdiddy/nuclide-engine/internal/element"
	"github.com/pdiddy/nuclide-engine/pkg/types"
)

// FRDMLayout is the fixed-width layout of the FRDM2012 mass table: three
// 5-column integers followed by sixteen 10-column floats.
var FRDMLayout = NewLayout(
	Column{"Z", 5}, Column{"N", 5}, Column{"A", 5},
	Column{"e2", 10}, Column{"e3", 10}, Column{"e4", 10}, Column{"e6", 10},
	Column{"b2", 10}, Column{"b3", 10}, Column{"b4", 10}, Column{"b6", 10},
	Column{"Esp", 10}, Column{"Emic", 10}, Column{"Ebind", 10},
	Column{"Mth", 10}, Column{"Mexp", 10}, Column{"sexp", 10},
	Column{"EFLmic", 10}, Column{"MFLth", 10},
)

// FRDM decodes the FRDM2012 table. Every row is a ground state.
var FRDM Decoder = DecoderFunc(decodeFRDM)

func decodeFRDM(line Line) (types.Nuclide, bool, error) {
	row := FRDMLayout.Split(line)

	var zna [3]int
	for i, name := range []string{"Z", "N", "A"} {
		v, err := row.Int(name)
		if err != nil {
			return types.Nuclide{}, false, err
		}
		zna[i] = v
	}
	z, n, a := zna[0], zna[1], zna[2]
	if z < 0 || n < 0 || a != z+n {
		return types.Nuclide{}, false, malformed(line.Number, "A", row.Str("A"),
			fmt.Errorf("A=%d is not Z+N=%d", a, z+n))
	}
	sym, err := element.ZToSymbol(z)
	if err != nil {
		return types.Nuclide{}, false, malformed(line.Number, "Z", row.Str("Z"), err)
	}

	rec := types.Nuclide{
		Key:    types.Key{Z: z, N: n},
		Symbol: sym,
		Source: types.SourceFRDM,
	}
	if rec.BindingEnergy, err = row.Optional("Ebind"); err != nil {
		return types.Nuclide{}, false, err
	}
	if rec.MassExcess, err = row.Optional("Mth"); err != nil {
		return types.Nuclide{}, false, err
	}
	if rec.MassExcessExp, err = row.Optional("Mexp"); err != nil {
		return types.Nuclide{}, false, err
	}
	return rec, true, nil
}
