// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"fmt"

	"github.com/pdiddy/nuclide-engine/internal/store"
	"github.com/pdiddy/nuclide-engine/internal/table"
	"github.com/pdiddy/nuclide-engine/pkg/types"
)

// TableResult reports one stored table.
type TableResult struct {
	Artifact string `json:"artifact"`
	Loaded   int    `json:"loaded"`
	Isomers  int    `json:"isomers"`
	Skipped  int    `json:"skipped"`
}

// LoadSummary holds the outcome of the load stage.
type LoadSummary struct {
	Tables []TableResult `json:"tables"`

	// HalfLifeMissing counts FRDM+QRPA records with no half-life match.
	HalfLifeMissing int `json:"half_life_missing"`
}

// Skipped returns the rows skipped across all tables.
func (s LoadSummary) Skipped() int {
	n := 0
	for _, t := range s.Tables {
		n += t.Skipped
	}
	return n
}

// Load decodes every configured input table and stores it. NUBASE is also
// stored as its stable and beta-minus partitions. A malformed record aborts
// the stage; tables stored before it are kept.
func (p *Pipeline) Load(ctx context.Context) (LoadSummary, error) {
	return track(ctx, p, StageLoad, func(runID string) (LoadSummary, error) {
		var sum LoadSummary
		in := p.cfg.Inputs

		save := func(name string, records []types.Nuclide, s table.Summary) error {
			if err := store.SaveTable(ctx, p.store, name, store.KindNuclides, records, runID); err != nil {
				return err
			}
			sum.Tables = append(sum.Tables, TableResult{
				Artifact: name, Loaded: len(records), Isomers: s.Isomers, Skipped: s.Skipped,
			})
			fmt.Fprintf(p.out, "stored: %-22s %6d records (%d isomers dropped, %d rows skipped)\n",
				name, len(records), s.Isomers, s.Skipped)
			return nil
		}

		if in.NUBASE != "" {
			res, err := table.Load(in.NUBASE, table.NUBASE, p.logger)
			if err != nil {
				return sum, fmt.Errorf("loading NUBASE: %w", err)
			}
			for _, part := range []struct {
				name    string
				records []types.Nuclide
			}{
				{ArtifactNUBASE, res.Records},
				{ArtifactNUBASEStable, table.SelectStable(res.Records)},
				{ArtifactNUBASEBMinus, table.SelectBetaMinus(res.Records)},
			} {
				if err := save(part.name, part.records, res.Summary); err != nil {
					return sum, err
				}
			}
		}

		for _, src := range []struct {
			path, name string
			dec        table.Decoder
		}{
			{in.IAEACRP, ArtifactIAEACRP, table.IAEACRP},
			{in.FRDM, ArtifactFRDM, table.FRDM},
			{in.WS36, ArtifactWS36, table.WS36},
		} {
			if src.path == "" {
				continue
			}
			res, err := table.Load(src.path, src.dec, p.logger)
			if err != nil {
				return sum, fmt.Errorf("loading %s: %w", src.name, err)
			}
			if err := save(src.name, res.Records, res.Summary); err != nil {
				return sum, err
			}
		}

		if in.QRPAPn != "" {
			pn, err := table.Load(in.QRPAPn, table.QRPAPn, p.logger)
			if err != nil {
				return sum, fmt.Errorf("loading FRDM+QRPA Pn: %w", err)
			}
			t12, err := table.Load(in.QRPAHalfLife, table.QRPAHalfLife, p.logger)
			if err != nil {
				return sum, fmt.Errorf("loading FRDM+QRPA half-lives: %w", err)
			}
			joined, missing := table.JoinHalfLives(pn.Records, t12.Records, p.logger)
			sum.HalfLifeMissing = missing
			if err := save(ArtifactFRDMQRPA, joined, pn.Summary); err != nil {
				return sum, err
			}
		}

		if len(sum.Tables) == 0 {
			return sum, fmt.Errorf("no input tables configured")
		}
		fmt.Fprintf(p.out, "\nLoad summary: %d tables stored, %d rows skipped, %d half-lives unmatched\n",
			len(sum.Tables), sum.Skipped(), sum.HalfLifeMissing)
		return sum, nil
	})
}
