package table

import (
	"fmt"

	"github.com/pdiddy/nuclide-engine/internal/element"
	"github.com/pdiddy/nuclide-engine/pkg/types"
)

// WS36Columns names the tokens of the WS3.6 mass table.
var WS36Columns = Tokens{"A", "Z", "beta2", "beta4", "beta6", "Esh", "Dres", "Eexp", "Eth", "Mexp", "Mth"}

// WS36 decodes the WS3.6 table. The table lists the theoretical energy Eth,
// whose negation is the binding energy.
var WS36 Decoder = DecoderFunc(decodeWS36)

func decodeWS36(line Line) (types.Nuclide, bool, error) {
	row, err := WS36Columns.Split(line)
	if err != nil {
		return types.Nuclide{}, false, err
	}
	a, err := row.Int("A")
	if err != nil {
		return types.Nuclide{}, false, err
	}
	z, err := row.Int("Z")
	if err != nil {
		return types.Nuclide{}, false, err
	}
	if z < 0 || a < z {
		return types.Nuclide{}, false, malformed(line.Number, "Z", row.Str("Z"),
			fmt.Errorf("inconsistent Z=%d, A=%d", z, a))
	}
	sym, err := element.ZToSymbol(z)
	if err != nil {
		return types.Nuclide{}, false, malformed(line.Number, "Z", row.Str("Z"), err)
	}

	eth, err := row.Quantity("Eth")
	if err != nil {
		return types.Nuclide{}, false, err
	}
	mth, err := row.Quantity("Mth")
	if err != nil {
		return types.Nuclide{}, false, err
	}
	mexp, err := row.Quantity("Mexp")
	if err != nil {
		return types.Nuclide{}, false, err
	}

	binding := types.None()
	if eth.Valid {
		binding = types.Some(-eth.Value)
	}
	return types.Nuclide{
		Key:           types.Key{Z: z, N: a - z},
		Symbol:        sym,
		BindingEnergy: binding,
		MassExcess:    mth,
		MassExcessExp: mexp,
		Source:        types.SourceWS36,
	}, true, nil
}
