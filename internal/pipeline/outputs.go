package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/nuclide-engine/internal/chart"
	"github.com/pdiddy/nuclide-engine/internal/derive"
	"github.com/pdiddy/nuclide-engine/internal/report"
	"github.com/pdiddy/nuclide-engine/internal/store"
	"github.com/pdiddy/nuclide-engine/pkg/types"
)

// Export formats.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// ReportSummary holds the outcome of the report stage.
type ReportSummary struct {
	Added int `json:"added"`
}

// Report writes the records the combine stage added to the reference.
func (p *Pipeline) Report(ctx context.Context, w io.Writer) (ReportSummary, error) {
	return track(ctx, p, StageReport, func(string) (ReportSummary, error) {
		combined, err := store.LoadTable[types.MergedRecord](ctx, p.store, ArtifactCombined)
		if err != nil {
			return ReportSummary{}, fmt.Errorf("reading %s: %w", ArtifactCombined, err)
		}
		added := report.Added(combined)
		if err := report.WriteAdded(w, added); err != nil {
			return ReportSummary{}, err
		}
		return ReportSummary{Added: len(added)}, nil
	})
}

// ChartSummary holds the outcome of the chart stage.
type ChartSummary struct {
	Path  string         `json:"path"`
	Cells map[string]int `json:"cells"`
}

// Chart draws every stored dataset that exists onto the complement chart
// and writes it to the configured output. The bound region comes from
// WS3.6 when present, otherwise FRDM.
func (p *Pipeline) Chart(ctx context.Context) (string, error) {
	sum, err := track(ctx, p, StageChart, func(string) (ChartSummary, error) {
		sum := ChartSummary{Path: p.cfg.Chart.Output, Cells: map[string]int{}}
		if sum.Path == "" {
			return sum, fmt.Errorf("no chart output configured")
		}

		var layers []chart.LayerRecords
		addDerived := func(layer chart.Layer, names ...string) error {
			for _, name := range names {
				records, ok, err := loadOptional[types.Derived](ctx, p.store, name)
				if err != nil {
					return err
				}
				if ok {
					layers = append(layers, chart.LayerRecords{Layer: layer, Records: derive.Nuclides(records)})
					return nil
				}
			}
			return nil
		}
		addNuclides := func(layer chart.Layer, name string) error {
			records, ok, err := loadOptional[types.Nuclide](ctx, p.store, name)
			if err != nil || !ok {
				return err
			}
			layers = append(layers, chart.LayerRecords{Layer: layer, Records: records})
			return nil
		}

		if err := addDerived(chart.LayerBound, ArtifactWS36Bound, ArtifactFRDMBound); err != nil {
			return sum, err
		}
		if err := addDerived(chart.LayerQbnCandidate, ArtifactWS36BoundQb); err != nil {
			return sum, err
		}
		for _, l := range []struct {
			layer chart.Layer
			name  string
		}{
			{chart.LayerStableAdded, ArtifactStableAdded},
			{chart.LayerQRPAAdded, ArtifactQRPAAdded},
			{chart.LayerBMinusAdded, ArtifactBMinusAdded},
			{chart.LayerIAEA, ArtifactIAEACRP},
		} {
			if err := addNuclides(l.layer, l.name); err != nil {
				return sum, err
			}
		}
		if len(layers) == 0 {
			return sum, fmt.Errorf("nothing to draw; run the load stage first")
		}

		for _, l := range layers {
			sum.Cells[l.Layer.Category] += len(l.Records)
		}
		if err := chart.WriteFile(sum.Path, chart.New(p.cfg.Chart, layers...)); err != nil {
			return sum, err
		}
		fmt.Fprintf(p.out, "chart:   %s (%d layers)\n", sum.Path, len(layers))
		return sum, nil
	})
	return sum.Path, err
}

// Export writes the named artifacts to the store's export directory in
// format and returns the written paths. An empty names list exports every
// stored artifact.
func (p *Pipeline) Export(ctx context.Context, names []string, format string) ([]string, error) {
	export := p.store.ExportYAML
	switch format {
	case FormatYAML, "":
	case FormatJSON:
		export = p.store.ExportJSON
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}

	if len(names) == 0 {
		arts, err := p.store.List(ctx)
		if err != nil {
			return nil, err
		}
		for _, a := range arts {
			names = append(names, a.Name)
		}
	}

	paths := make([]string, 0, len(names))
	for _, name := range names {
		path, err := export(ctx, name)
		if err != nil {
			return paths, fmt.Errorf("exporting %s: %w", name, err)
		}
		paths = append(paths, path)
		fmt.Fprintf(p.out, "exported: %s\n", path)
	}
	return paths, nil
}
