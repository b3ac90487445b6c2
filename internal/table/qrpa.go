// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package table

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/pdiddy/nuclide-engine/internal/element"
	"github.com/pdiddy/nuclide-engine/pkg/types"
)

// QRPAPnColumns names the tokens of the FRDM+QRPA delayed-neutron table.
// Only P0n through P3n are carried into records.
var QRPAPnColumns = Tokens{
	"Z", "N", "A",
	"P0n", "P1n", "P2n", "P3n", "P4n", "P5n", "P6n", "P7n", "P8n", "P9n", "P10n",
	"E_n", "n", "exp",
}

// QRPAHalfLifeColumns names the tokens of the FRDM+QRPA half-life table.
var QRPAHalfLifeColumns = Tokens{"Z", "N", "T12"}

// QRPAPn decodes the FRDM+QRPA delayed-neutron emission probabilities.
var QRPAPn Decoder = DecoderFunc(decodeQRPAPn)

// QRPAHalfLife decodes the FRDM+QRPA beta-decay half-lives in seconds.
var QRPAHalfLife Decoder = DecoderFunc(decodeQRPAHalfLife)

func decodeQRPAPn(line Line) (types.Nuclide, bool, error) {
	row, err := QRPAPnColumns.Split(line)
	if err != nil {
		return types.Nuclide{}, false, err
	}
	rec, err := qrpaIdentity(row)
	if err != nil {
		return types.Nuclide{}, false, err
	}
	a, err := row.Int("A")
	if err != nil {
		return types.Nuclide{}, false, err
	}
	if a != rec.A() {
		return types.Nuclide{}, false, malformed(line.Number, "A", row.Str("A"),
			fmt.Errorf("A=%d is not Z+N=%d", a, rec.A()))
	}

	for _, b := range []struct {
		name string
		dst  *types.Branch
	}{
		{"P0n", &rec.P0n},
		{"P1n", &rec.P1n},
		{"P2n", &rec.P2n},
		{"P3n", &rec.P3n},
	} {
		q, err := row.Quantity(b.name)
		if err != nil {
			return types.Nuclide{}, false, err
		}
		b.dst.Prob = q
	}
	return rec, true, nil
}

func decodeQRPAHalfLife(line Line) (types.Nuclide, bool, error) {
	row, err := QRPAHalfLifeColumns.Split(line)
	if err != nil {
		return types.Nuclide{}, false, err
	}
	rec, err := qrpaIdentity(row)
	if err != nil {
		return types.Nuclide{}, false, err
	}
	if rec.HalfLife, err = row.Quantity("T12"); err != nil {
		return types.Nuclide{}, false, err
	}
	return rec, true, nil
}

func qrpaIdentity(row Row) (types.Nuclide, error) {
	z, err := row.Int("Z")
	if err != nil {
		return types.Nuclide{}, err
	}
	n, err := row.Int("N")
	if err != nil {
		return types.Nuclide{}, err
	}
	if z < 0 || n < 0 {
		return types.Nuclide{}, malformed(row.Line(), "Z", row.Str("Z"),
			fmt.Errorf("negative nucleon number Z=%d, N=%d", z, n))
	}
	sym, err := element.ZToSymbol(z)
	if err != nil {
		return types.Nuclide{}, malformed(row.Line(), "Z", row.Str("Z"), err)
	}
	return types.Nuclide{
		Key:    types.Key{Z: z, N: n},
		Symbol: sym,
		Source: types.SourceFRDMQRPA,
	}, nil
}

// JoinHalfLives returns a copy of pn with each record's half-life taken
// from the half-life table entry with the same (Z, N). Records without a
// match keep an unavailable half-life and are logged. The second return
// value counts them.
func JoinHalfLives(pn, t12 []types.Nuclide, logger *zap.Logger) ([]types.Nuclide, int) {
	if logger == nil {
		logger = zap.NewNop()
	}
	ix := types.NewIndex(t12)
	out := make([]types.Nuclide, 0, len(pn))
	missing := 0
	for _, rec := range pn {
		if m, ok := ix.Lookup(rec.Key); ok {
			rec.HalfLife = m.HalfLife
		} else {
			missing++
			logger.Warn("no half-life for nuclide",
				zap.Int("Z", rec.Z), zap.Int("N", rec.N), zap.Int("A", rec.A()))
		}
		out = append(out, rec)
	}
	return out, missing
}
