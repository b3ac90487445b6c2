package table

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/pdiddy/nuclide-engine/internal/element"
	"github.com/pdiddy/nuclide-engine/pkg/types"
)

// Column names of the NUBASE layout.
const (
	nubaseA         = "A"
	nubaseZi        = "ZZZi"
	nubaseLabel     = "A El"
	nubaseState     = "s"
	nubaseMass      = "Mass"
	nubaseMassUnc   = "dMass"
	nubaseExc       = "Exc"
	nubaseExcUnc    = "dExc"
	nubaseOrig      = "Orig"
	nubaseIsomUnc   = "Isom.Unc"
	nubaseIsomInv   = "Isom.Inv"
	nubaseHalfLife  = "T"
	nubaseUnit      = "unit T"
	nubaseHalfUnc   = "dT"
	nubaseSpin      = "Jpi"
	nubaseEnsdfYear = "Ensdf year"
	nubaseDiscovery = "Discovery"
	nubaseBR        = "BR"
)

// NUBASELayout is the fixed-width layout of the NUBASE table. Lines are
// padded to 220 columns before slicing.
var NUBASELayout = NewLayout(
	Column{nubaseA, 3},
	Column{"", 1},
	Column{nubaseZi, 4},
	Column{"", 3},
	Column{nubaseLabel, 5},
	Column{nubaseState, 1},
	Column{"", 1},
	Column{nubaseMass, 13},
	Column{nubaseMassUnc, 11},
	Column{nubaseExc, 12},
	Column{nubaseExcUnc, 11},
	Column{nubaseOrig, 2},
	Column{nubaseIsomUnc, 1},
	Column{nubaseIsomInv, 1},
	Column{nubaseHalfLife, 9},
	Column{nubaseUnit, 2},
	Column{"", 1},
	Column{nubaseHalfUnc, 7},
	Column{nubaseSpin, 14},
	Column{nubaseEnsdfYear, 2},
	Column{nubaseDiscovery, 4},
	Column{nubaseBR, 90},
	Column{"", 22},
)

// Half-life field tokens that carry no numeric value.
const (
	halfLifeStable   = "stbl"
	halfLifeUnstable = "p-unst"
)

// NUBASE decodes NUBASE ground states. Mass excesses are converted from keV
// to MeV and half-lives to seconds.
var NUBASE Decoder = DecoderFunc(decodeNUBASE)

func decodeNUBASE(line Line) (types.Nuclide, bool, error) {
	row := NUBASELayout.Split(line)

	a, err := row.Int(nubaseA)
	if err != nil {
		return types.Nuclide{}, false, err
	}
	zi, err := row.Int(nubaseZi)
	if err != nil {
		return types.Nuclide{}, false, err
	}
	z, isomer := zi/10, zi%10
	if isomer != 0 {
		return types.Nuclide{}, false, nil
	}
	if z > a {
		return types.Nuclide{}, false, malformed(line.Number, nubaseZi, row.Str(nubaseZi),
			fmt.Errorf("Z=%d exceeds A=%d", z, a))
	}

	label := row.Str(nubaseLabel)
	if _, la, err := element.ParseIsotopeLabel(label); err != nil {
		return types.Nuclide{}, false, malformed(line.Number, nubaseLabel, label, err)
	} else if la != element.MissingA && la != a {
		return types.Nuclide{}, false, malformed(line.Number, nubaseLabel, label,
			fmt.Errorf("mass number %d does not match A=%d", la, a))
	}

	sym, err := element.ZToSymbol(z)
	if err != nil {
		return types.Nuclide{}, false, malformed(line.Number, nubaseZi, row.Str(nubaseZi), err)
	}

	mass, err := row.Optional(nubaseMass)
	if err != nil {
		return types.Nuclide{}, false, err
	}

	rec := types.Nuclide{
		Key:        types.Key{Z: z, N: a - z},
		Symbol:     sym,
		MassExcess: keVToMeV(mass),
		DecayModes: row.Str(nubaseBR),
		Source:     types.SourceNUBASE,
	}

	if err := decodeNUBASEHalfLife(row, &rec); err != nil {
		return types.Nuclide{}, false, err
	}

	modes := ParseDecayModes(rec.DecayModes)
	if HasMode(modes, ModeIsotopic) {
		rec.Stable = true
	}
	rec.P1n, rec.P2n, rec.P3n = NeutronBranches(modes)

	return rec, true, nil
}

// decodeNUBASEHalfLife fills the half-life fields. Stable nuclides have no
// half-life; a numeric half-life with a unit outside the conversion table
// returns ErrUnknownUnit.
func decodeNUBASEHalfLife(row Row, rec *types.Nuclide) error {
	raw := row.Str(nubaseHalfLife)
	switch raw {
	case halfLifeStable:
		rec.Stable = true
		return nil
	case "", halfLifeUnstable:
		return nil
	}

	value, err := parseHalfLifeValue(raw)
	if errors.Is(err, errNotPointValue) {
		return nil
	}
	if err != nil {
		return malformed(row.Line(), nubaseHalfLife, raw, err)
	}
	unit := row.Str(nubaseUnit)
	secs, err := ToSeconds(value, unit)
	if err != nil {
		return fmt.Errorf("line %d: %w", row.Line(), err)
	}
	rec.HalfLife = types.Some(secs)

	uncRaw := row.Str(nubaseHalfUnc)
	if uncRaw == "" {
		return nil
	}
	unc, err := parseHalfLifeValue(uncRaw)
	if err != nil {
		// Limits such as "LT" or "GT" carry no symmetric uncertainty.
		if errors.Is(err, errNotPointValue) {
			return nil
		}
		return malformed(row.Line(), nubaseHalfUnc, uncRaw, err)
	}
	uncSecs, _ := ToSeconds(unc, unit)
	rec.HalfLifeUnc = types.Some(uncSecs)
	return nil
}

var errNotPointValue = errors.New("not a point value")

// parseHalfLifeValue strips estimate and relation markers from a half-life
// field. Alphabetic limit markers return errNotPointValue.
func parseHalfLifeValue(s string) (float64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, "#", ""))
	s = strings.TrimLeft(s, "<>~")
	switch s {
	case "LT", "GT", "AP", "?", "":
		return 0, errNotPointValue
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.New("not a number")
	}
	return v, nil
}

func keVToMeV(q types.Quantity) types.Quantity {
	if !q.Valid {
		return q
	}
	return types.Some(q.Value / 1000)
}
