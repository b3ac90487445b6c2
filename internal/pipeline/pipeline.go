// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs the batch stages: load raw tables, derive drip-line
// datasets, merge complements into the IAEA CRP reference, and write the
// report and chart. Every stage reads its inputs from the artifact store and
// overwrites its outputs there.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/pdiddy/nuclide-engine/internal/store"
	"github.com/pdiddy/nuclide-engine/pkg/types"
)

// Artifact names.
const (
	ArtifactNUBASE       = "nubase"
	ArtifactNUBASEStable = "nubase_stable"
	ArtifactNUBASEBMinus = "nubase_bminus"
	ArtifactIAEACRP      = "iaea_crp_bdn"
	ArtifactFRDM         = "frdm"
	ArtifactWS36         = "ws36"
	ArtifactFRDMQRPA     = "frdm_qrpa_pxn_t12"

	ArtifactFRDMBound   = "frdm_bound"
	ArtifactWS36Bound   = "ws36_bound"
	ArtifactWS36BoundQb = "ws36_bound_qbn"

	ArtifactBMinusAdded = "nubase_bminus_add_to_iaea_crp_bdn"
	ArtifactStableAdded = "nubase_stable_add_to_iaea_crp_bdn"
	ArtifactQRPAAdded   = "frdm_qrpa_add_to_iaea_crp_bdn"
	ArtifactCombined    = "iaea_crp_nubase_combined"
)

// Stage names recorded in the store's run table.
const (
	StageLoad      = "load"
	StageDriplines = "driplines"
	StageCombine   = "combine"
	StageReport    = "report"
	StageChart     = "chart"
)

// Pipeline holds what every stage needs.
type Pipeline struct {
	cfg    types.PipelineConfig
	store  *store.Store
	logger *zap.Logger
	out    io.Writer
}

// New returns a pipeline writing progress lines to out.
func New(cfg types.PipelineConfig, st *store.Store, logger *zap.Logger, out io.Writer) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	if out == nil {
		out = io.Discard
	}
	return &Pipeline{cfg: cfg, store: st, logger: logger, out: out}
}

// RunSummary collects the summaries of a full run.
type RunSummary struct {
	Load      LoadSummary
	Driplines DriplineSummary
	Combine   CombineSummary
	ChartPath string
}

// Run executes load, driplines, combine and chart in order, stopping at the
// first failing stage.
func (p *Pipeline) Run(ctx context.Context) (RunSummary, error) {
	var sum RunSummary
	var err error
	if sum.Load, err = p.Load(ctx); err != nil {
		return sum, err
	}
	if sum.Driplines, err = p.Driplines(ctx); err != nil {
		return sum, err
	}
	if sum.Combine, err = p.Combine(ctx); err != nil {
		return sum, err
	}
	if p.cfg.Chart.Output != "" {
		if sum.ChartPath, err = p.Chart(ctx); err != nil {
			return sum, err
		}
	}
	return sum, nil
}

// track records a stage run around fn. The run is finished with fn's
// summary even when fn fails, so partial progress stays visible.
func track[S any](ctx context.Context, p *Pipeline, stage string, fn func(runID string) (S, error)) (S, error) {
	runID, err := p.store.BeginRun(ctx, stage)
	if err != nil {
		var zero S
		return zero, fmt.Errorf("%s: %w", stage, err)
	}
	p.logger.Debug("stage started", zap.String("stage", stage), zap.String("run_id", runID))

	sum, fnErr := fn(runID)
	if err := p.store.FinishRun(ctx, runID, sum); err != nil {
		p.logger.Warn("recording stage finish", zap.String("stage", stage), zap.Error(err))
	}
	if fnErr != nil {
		return sum, fmt.Errorf("%s: %w", stage, fnErr)
	}
	p.logger.Info("stage finished", zap.String("stage", stage), zap.String("run_id", runID))
	return sum, nil
}

// loadOptional reads an artifact, reporting absent ones as ok=false.
func loadOptional[T any](ctx context.Context, st *store.Store, name string) (records []T, ok bool, err error) {
	records, err = store.LoadTable[T](ctx, st, name)
	if errors.Is(err, store.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return records, true, nil
}
