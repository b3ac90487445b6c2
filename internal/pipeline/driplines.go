// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pdiddy/nuclide-engine/internal/derive"
	"github.com/pdiddy/nuclide-engine/internal/store"
	"github.com/pdiddy/nuclide-engine/pkg/types"
)

// DriplineResult reports one mass model's drip-line dataset.
type DriplineResult struct {
	Source     string `json:"source"`
	Records    int    `json:"records"`
	Bound      int    `json:"bound"`
	Candidates int    `json:"qbn_candidates,omitempty"`
	Unresolved int    `json:"unresolved"`
}

// DriplineSummary holds the outcome of the driplines stage.
type DriplineSummary struct {
	Datasets []DriplineResult `json:"datasets"`
}

// Driplines derives separation energies for the FRDM and WS3.6 tables and
// stores their bound subsets. WS3.6 also yields the beta-delayed neutron
// candidates. A mass model that was not loaded is skipped.
func (p *Pipeline) Driplines(ctx context.Context) (DriplineSummary, error) {
	return track(ctx, p, StageDriplines, func(runID string) (DriplineSummary, error) {
		var sum DriplineSummary
		for _, m := range []struct {
			source, bound, candidates string
		}{
			{ArtifactFRDM, ArtifactFRDMBound, ""},
			{ArtifactWS36, ArtifactWS36Bound, ArtifactWS36BoundQb},
		} {
			records, ok, err := loadOptional[types.Nuclide](ctx, p.store, m.source)
			if err != nil {
				return sum, err
			}
			if !ok {
				fmt.Fprintf(p.out, "skipped: %s (not loaded)\n", m.source)
				continue
			}

			derived, stats := derive.Table(records)
			bound := derive.Bound(derived)
			if stats.Unresolved > 0 {
				p.logger.Info("quantities left unavailable by missing neighbors",
					zap.String("source", m.source), zap.Int("unresolved", stats.Unresolved))
			}
			if err := store.SaveTable(ctx, p.store, m.bound, store.KindDerived, bound, runID); err != nil {
				return sum, err
			}
			res := DriplineResult{
				Source:     m.source,
				Records:    len(records),
				Bound:      len(bound),
				Unresolved: stats.Unresolved,
			}
			if m.candidates != "" {
				cands := derive.BetaDelayedNeutronCandidates(bound)
				if err := store.SaveTable(ctx, p.store, m.candidates, store.KindDerived, cands, runID); err != nil {
					return sum, err
				}
				res.Candidates = len(cands)
			}
			sum.Datasets = append(sum.Datasets, res)
			fmt.Fprintf(p.out, "bound:   %-22s %6d of %d\n", m.bound, res.Bound, res.Records)
		}

		if len(sum.Datasets) == 0 {
			return sum, fmt.Errorf("no mass table loaded; run the load stage with frdm or ws36 inputs")
		}
		return sum, nil
	})
}
