// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package element resolves element symbols, atomic numbers, and isotope
// labels. The periodic table is built once at initialization and is
// read-only afterwards.
package element

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// ErrUnknownSymbol is returned for a symbol outside the table that is not
	// one of the special particle tokens.
	ErrUnknownSymbol = errors.New("unknown element symbol")

	// ErrOutOfRange is returned for an atomic number outside the table.
	ErrOutOfRange = errors.New("atomic number out of range")
)

const (
	// MissingZ is returned by SymbolToZ for an empty symbol.
	MissingZ = -8888
	// MissingA is returned by ParseIsotopeLabel for an empty label.
	MissingA = -9999

	// MaxZ is the largest atomic number in the table, including placeholders.
	MaxZ = 136
)

// symbols is indexed by Z. Index 0 is the neutron; 119..136 are placeholders
// for superheavy systems that model tables extend into.
var symbols = [MaxZ + 1]string{
	"n",
	"h", "he", "li", "be", "b", "c", "n", "o", "f", "ne",
	"na", "mg", "al", "si", "p", "s", "cl", "ar", "k", "ca",
	"sc", "ti", "v", "cr", "mn", "fe", "co", "ni", "cu", "zn",
	"ga", "ge", "as", "se", "br", "kr", "rb", "sr", "y", "zr",
	"nb", "mo", "tc", "ru", "rh", "pd", "ag", "cd", "in", "sn",
	"sb", "te", "i", "xe", "cs", "ba", "la", "ce", "pr", "nd",
	"pm", "sm", "eu", "gd", "tb", "dy", "ho", "er", "tm", "yb",
	"lu", "hf", "ta", "w", "re", "os", "ir", "pt", "au", "hg",
	"tl", "pb", "bi", "po", "at", "rn", "fr", "ra", "ac", "th",
	"pa", "u", "np", "pu", "am", "cm", "bk", "cf", "es", "fm",
	"md", "no", "lr", "rf", "db", "sg", "bh", "hs", "mt", "ds",
	"rg", "cn", "nh", "fl", "mc", "lv", "ts", "og",
	"119", "120", "121", "122", "123", "124", "125", "126", "127",
	"128", "129", "130", "131", "132", "133", "134", "135", "136",
}

// particles are the bare tokens that name light particles rather than elements.
var particles = map[string]struct{ z, a int }{
	"n": {0, 1},
	"p": {1, 1},
	"d": {1, 2},
	"t": {1, 3},
}

// byName maps lower-case element symbols to Z. Nitrogen owns "n"; the neutron
// reading of "n" only applies to bare particle labels.
var byName = func() map[string]int {
	m := make(map[string]int, MaxZ)
	for z := 1; z <= MaxZ; z++ {
		m[symbols[z]] = z
	}
	return m
}()

var titleCaser = cases.Title(language.Und)

// SymbolToZ returns the atomic number for a case-insensitive element symbol.
// The particle tokens "n", "p", "d" and "t" resolve to 0, 1, 1 and 1. A label
// with a mass-number prefix such as "136Xe" resolves through its symbol. An
// empty symbol yields MissingZ without an error.
func SymbolToZ(symbol string) (int, error) {
	s := strings.ToLower(strings.TrimSpace(symbol))
	if s == "" {
		return MissingZ, nil
	}
	digits, rest := splitDigits(s)
	if digits == "" {
		if p, ok := particles[rest]; ok {
			return p.z, nil
		}
	}
	if z, ok := byName[rest]; ok {
		return z, nil
	}
	if digits != "" && rest == "" {
		// Placeholder symbols are themselves digit runs.
		if z, ok := byName[digits]; ok {
			return z, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSymbol, symbol)
}

// ZToSymbol returns the lower-case symbol for atomic number z.
func ZToSymbol(z int) (string, error) {
	if z < 0 || z > MaxZ {
		return "", fmt.Errorf("%w: %d", ErrOutOfRange, z)
	}
	return symbols[z], nil
}

// ParseIsotopeLabel splits a label such as "136Xe" into its lower-case
// symbol and mass number. The bare particle labels "n", "p", "d" and "t"
// have mass numbers 1, 1, 2 and 3. An empty label yields MissingA.
func ParseIsotopeLabel(label string) (string, int, error) {
	s := strings.ToLower(strings.TrimSpace(label))
	if s == "" {
		return "", MissingA, nil
	}
	digits, rest := splitDigits(s)
	if digits == "" {
		if p, ok := particles[rest]; ok {
			return rest, p.a, nil
		}
		return "", 0, fmt.Errorf("%w: %q has no mass number", ErrUnknownSymbol, label)
	}
	a, err := strconv.Atoi(digits)
	if err != nil {
		return "", 0, fmt.Errorf("parsing mass number of %q: %w", label, err)
	}
	if rest == "" {
		return "", 0, fmt.Errorf("%w: %q has no symbol", ErrUnknownSymbol, label)
	}
	if _, ok := byName[rest]; !ok {
		if _, ok := particles[rest]; !ok {
			return "", 0, fmt.Errorf("%w: %q", ErrUnknownSymbol, label)
		}
	}
	return rest, a, nil
}

// Display returns the conventional capitalization of a symbol ("xe" -> "Xe").
func Display(symbol string) string {
	return titleCaser.String(symbol)
}

// Label formats the isotope label for z and a, e.g. "136Xe".
func Label(z, a int) (string, error) {
	sym, err := ZToSymbol(z)
	if err != nil {
		return "", err
	}
	return strconv.Itoa(a) + Display(sym), nil
}

func splitDigits(s string) (digits, rest string) {
	i := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsDigit(r) })
	if i < 0 {
		return s, ""
	}
	return s[:i], s[i:]
}
