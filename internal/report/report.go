// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report writes line-oriented text reports of merged records.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/nuclide-engine/internal/element"
	"github.com/pdiddy/nuclide-engine/pkg/types"
)

// Columns is the fixed column order of the added-records report.
var Columns = []string{"A", "El", "Z", "N", "T12", "dT12", "P1n", "dP1n", "P2n", "dP2n", "P3n", "dP3n", "source"}

const (
	rowFormat = "%4s %-3s %4s %4s %12s %12s %10s %10s %10s %10s %10s %10s  %s\n"
	ruleWidth = 110
)

// Added returns the records that entered a merge as complements.
func Added(records []types.MergedRecord) []types.MergedRecord {
	var out []types.MergedRecord
	for _, r := range records {
		if r.Origin == types.OriginComplement {
			out = append(out, r)
		}
	}
	return out
}

// WriteAdded writes one line per record in Columns order followed by a
// count line. Unavailable values print as -9999.
func WriteAdded(w io.Writer, records []types.MergedRecord) error {
	header := make([]any, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if _, err := fmt.Fprintf(w, rowFormat, header...); err != nil {
		return fmt.Errorf("writing report header: %w", err)
	}
	fmt.Fprintln(w, strings.Repeat("-", ruleWidth))

	for _, r := range records {
		sym := r.Symbol
		if sym == "" {
			sym, _ = element.ZToSymbol(r.Z)
		}
		_, err := fmt.Fprintf(w, rowFormat,
			fmt.Sprint(r.A()), element.Display(sym), fmt.Sprint(r.Z), fmt.Sprint(r.N),
			r.HalfLife, r.HalfLifeUnc,
			r.P1n.Prob, r.P1n.Unc,
			r.P2n.Prob, r.P2n.Unc,
			r.P3n.Prob, r.P3n.Unc,
			r.Source)
		if err != nil {
			return fmt.Errorf("writing report row %s: %w", r.Key, err)
		}
	}

	if _, err := fmt.Fprintf(w, "\n%d records\n", len(records)); err != nil {
		return fmt.Errorf("writing report footer: %w", err)
	}
	return nil
}
