package table

import (
	"strconv"
	"strings"

	"github.com/pdiddy/nuclide-engine/pkg/types"
)

// Relations that follow a decay-mode name in an annotation.
const (
	RelEqual   = '='
	RelApprox  = '~'
	RelBelow   = '<'
	RelAbove   = '>'
	RelUnknown = '?'
)

// Decay-mode names used by the selectors and branch extraction.
const (
	ModeBetaMinus = "B-"
	ModeBetaN     = "B-n"
	ModeBeta2N    = "B-2n"
	ModeBeta3N    = "B-3n"
	ModeIsotopic  = "IS"
)

// DecayMode is one entry of a decay-mode annotation such as "B-n~12.3 4".
// Value and Uncertainty are available only for point estimates.
type DecayMode struct {
	Name        string
	Relation    byte
	Value       types.Quantity
	Uncertainty types.Quantity
}

// ParseDecayModes splits a ';'-separated annotation into modes. A '=' or '~'
// relation yields a point value and an optional uncertainty token. Bounds
// ('<', '>') and unknowns ('?', "=?") are not usable as point estimates and
// leave both quantities unavailable.
func ParseDecayModes(annotation string) []DecayMode {
	var modes []DecayMode
	for _, part := range strings.Split(annotation, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		i := strings.IndexAny(part, "=~<>?")
		if i < 0 {
			modes = append(modes, DecayMode{Name: part, Relation: RelUnknown})
			continue
		}
		m := DecayMode{
			Name:     strings.TrimSpace(part[:i]),
			Relation: part[i],
		}
		rest := strings.TrimSpace(part[i+1:])
		if m.Relation == RelEqual && strings.HasPrefix(rest, "?") {
			m.Relation = RelUnknown
		}
		if m.Relation == RelEqual || m.Relation == RelApprox {
			tokens := strings.Fields(rest)
			if len(tokens) > 0 {
				m.Value = parseToken(tokens[0])
			}
			if len(tokens) > 1 && m.Value.Valid {
				m.Uncertainty = parseToken(tokens[1])
			}
		}
		modes = append(modes, m)
	}
	return modes
}

// NeutronBranches extracts P1n, P2n and P3n from parsed decay modes.
// Modes that are absent or bound-only yield unavailable branches.
func NeutronBranches(modes []DecayMode) (p1n, p2n, p3n types.Branch) {
	for _, m := range modes {
		b := types.Branch{Prob: m.Value, Unc: m.Uncertainty}
		switch m.Name {
		case ModeBetaN:
			p1n = b
		case ModeBeta2N:
			p2n = b
		case ModeBeta3N:
			p3n = b
		}
	}
	return p1n, p2n, p3n
}

// HasMode reports whether the annotation lists the named decay mode.
func HasMode(modes []DecayMode, name string) bool {
	for _, m := range modes {
		if m.Name == name {
			return true
		}
	}
	return false
}

func parseToken(s string) types.Quantity {
	s = strings.TrimSuffix(s, "#")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return types.None()
	}
	return types.QuantityOf(f)
}
