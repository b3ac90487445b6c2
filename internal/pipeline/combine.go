package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pdiddy/nuclide-engine/internal/derive"
	"github.com/pdiddy/nuclide-engine/internal/merge"
	"github.com/pdiddy/nuclide-engine/internal/store"
	"github.com/pdiddy/nuclide-engine/pkg/types"
)

// CombineSummary holds the outcome of the combine stage.
type CombineSummary struct {
	Reference    int `json:"reference"`
	BMinusAdded  int `json:"nubase_bminus_added"`
	QRPAAdded    int `json:"frdm_qrpa_added"`
	StableAdded  int `json:"nubase_stable_added"`
	Combined     int `json:"combined"`
	RestrictedTo int `json:"restricted_to,omitempty"`
}

// Combine chains the NUBASE beta-minus and FRDM+QRPA complements onto the
// IAEA CRP reference and stores each complement plus the combined table.
// Stable NUBASE nuclides missing from the reference are stored for the
// chart but do not join the combined table.
func (p *Pipeline) Combine(ctx context.Context) (CombineSummary, error) {
	return track(ctx, p, StageCombine, func(runID string) (CombineSummary, error) {
		var sum CombineSummary

		iaea, err := store.LoadTable[types.Nuclide](ctx, p.store, ArtifactIAEACRP)
		if err != nil {
			return sum, fmt.Errorf("reading reference %s: %w", ArtifactIAEACRP, err)
		}
		sum.Reference = len(iaea)
		reference := merge.Source{Name: ArtifactIAEACRP, Provenance: types.SourceIAEA, Records: iaea}

		var candidates []merge.Source
		bminus, ok, err := loadOptional[types.Nuclide](ctx, p.store, ArtifactNUBASEBMinus)
		if err != nil {
			return sum, err
		}
		if ok {
			candidates = append(candidates, merge.Source{
				Name: ArtifactNUBASEBMinus, Provenance: types.SourceNUBASE, Records: bminus,
			})
		}

		qrpa, ok, err := loadOptional[types.Nuclide](ctx, p.store, ArtifactFRDMQRPA)
		if err != nil {
			return sum, err
		}
		if ok {
			if p.cfg.Merge.RestrictToBound {
				qrpa, err = p.restrictToBound(ctx, qrpa)
				if err != nil {
					return sum, err
				}
				sum.RestrictedTo = len(qrpa)
			}
			candidates = append(candidates, merge.Source{
				Name: ArtifactFRDMQRPA, Provenance: types.SourceFRDMQRPA, Records: qrpa,
			})
		}

		stages, err := merge.Chain(reference, candidates...)
		if err != nil {
			return sum, err
		}
		for _, st := range stages {
			var name string
			switch st.Source.Name {
			case ArtifactNUBASEBMinus:
				name = ArtifactBMinusAdded
				sum.BMinusAdded = len(st.Accepted)
			case ArtifactFRDMQRPA:
				name = ArtifactQRPAAdded
				sum.QRPAAdded = len(st.Accepted)
			}
			if err := store.SaveTable(ctx, p.store, name, store.KindNuclides, st.Accepted, runID); err != nil {
				return sum, err
			}
			fmt.Fprintf(p.out, "added:   %-34s %6d records\n", name, len(st.Accepted))
		}

		stable, ok, err := loadOptional[types.Nuclide](ctx, p.store, ArtifactNUBASEStable)
		if err != nil {
			return sum, err
		}
		if ok {
			added := merge.Complement(iaea, stable)
			sum.StableAdded = len(added)
			if err := store.SaveTable(ctx, p.store, ArtifactStableAdded, store.KindNuclides, added, runID); err != nil {
				return sum, err
			}
			fmt.Fprintf(p.out, "added:   %-34s %6d records\n", ArtifactStableAdded, len(added))
		}

		combined := merge.Combine(reference, stages)
		sum.Combined = len(combined)
		if err := store.SaveTable(ctx, p.store, ArtifactCombined, store.KindMerged, combined, runID); err != nil {
			return sum, err
		}
		fmt.Fprintf(p.out, "\nCombine summary: %d reference + %d nubase + %d frdm+qrpa = %d records\n",
			sum.Reference, sum.BMinusAdded, sum.QRPAAdded, sum.Combined)
		return sum, nil
	})
}

// restrictToBound keeps FRDM+QRPA records inside the FRDM drip lines. The
// bound set comes from the driplines stage; without it the records pass
// through unchanged.
func (p *Pipeline) restrictToBound(ctx context.Context, records []types.Nuclide) ([]types.Nuclide, error) {
	bound, ok, err := loadOptional[types.Derived](ctx, p.store, ArtifactFRDMBound)
	if err != nil {
		return nil, err
	}
	if !ok {
		p.logger.Warn("bound restriction requested but no FRDM bound set stored",
			zap.String("artifact", ArtifactFRDMBound))
		return records, nil
	}
	return merge.Restrict(records, derive.Nuclides(bound)), nil
}
