// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package chart lays out nuclide records on an N-Z grid and renders the
// grid as SVG.
package chart

import (
	"strconv"

	"github.com/pdiddy/nuclide-engine/internal/element"
	"github.com/pdiddy/nuclide-engine/pkg/types"
)

// MagicNumbers are the nucleon shell closures drawn as gridlines.
var MagicNumbers = []int{2, 8, 20, 28, 50, 82, 126}

// Defaults for the plotted grid.
const (
	DefaultMaxN     = 200
	DefaultMaxZ     = 116
	DefaultCellSize = 4.0
)

// Layer styles one dataset or category on the chart. Layers are drawn in
// order, so later layers cover earlier ones.
type Layer struct {
	Category string
	Fill     string
	Opacity  float64
	Outline  bool
	Labeled  bool
}

// The standard complement chart layers, bottom to top.
var (
	LayerBound        = Layer{Category: "bound", Fill: "gray", Opacity: 0.5}
	LayerStableAdded  = Layer{Category: "nubase_stable_added", Fill: "black", Opacity: 1}
	LayerQRPAAdded    = Layer{Category: "frdm_qrpa_added", Fill: "green", Opacity: 1, Outline: true}
	LayerBMinusAdded  = Layer{Category: "nubase_bminus_added", Fill: "red", Opacity: 1, Outline: true}
	LayerIAEA         = Layer{Category: "iaea", Fill: "yellow", Opacity: 1, Outline: true, Labeled: true}
	LayerQbnCandidate = Layer{Category: "qbn_candidate", Fill: "red", Opacity: 0.5}
)

// Cell is one nuclide box on the chart.
type Cell struct {
	N, Z     int
	Category string
	Fill     string
	Opacity  float64
	Outline  bool
	Label    string
}

// Cells places records on the grid with the layer's style. Labeled layers
// carry an "A+El" label such as "88Br".
func Cells(layer Layer, records []types.Nuclide) []Cell {
	out := make([]Cell, 0, len(records))
	for _, r := range records {
		c := Cell{
			N:        r.N,
			Z:        r.Z,
			Category: layer.Category,
			Fill:     layer.Fill,
			Opacity:  layer.Opacity,
			Outline:  layer.Outline,
		}
		if layer.Labeled {
			c.Label = label(r)
		}
		out = append(out, c)
	}
	return out
}

func label(r types.Nuclide) string {
	sym := r.Symbol
	if sym == "" {
		sym, _ = element.ZToSymbol(r.Z)
	}
	return strconv.Itoa(r.A()) + element.Display(sym)
}

// Axis names a chart axis.
type Axis string

const (
	AxisN Axis = "N"
	AxisZ Axis = "Z"
)

// Gridline is a dashed line across the chart at Pos on Axis.
type Gridline struct {
	Axis Axis
	Pos  float64
}

// Gridlines returns lines half a cell either side of every magic number,
// on both axes.
func Gridlines() []Gridline {
	out := make([]Gridline, 0, 4*len(MagicNumbers))
	for _, m := range MagicNumbers {
		for _, axis := range []Axis{AxisZ, AxisN} {
			out = append(out,
				Gridline{Axis: axis, Pos: float64(m) + 0.5},
				Gridline{Axis: axis, Pos: float64(m) - 0.5},
			)
		}
	}
	return out
}

// Chart is a complete figure ready to render.
type Chart struct {
	Cells     []Cell
	Gridlines []Gridline
	MaxN      int
	MaxZ      int
	CellSize  float64
}

// New builds a chart from layers of records, applying defaults for zero
// sizes.
func New(cfg types.ChartConfig, layers ...LayerRecords) Chart {
	c := Chart{
		Gridlines: Gridlines(),
		MaxN:      cfg.MaxN,
		MaxZ:      cfg.MaxZ,
		CellSize:  cfg.CellSize,
	}
	if c.MaxN <= 0 {
		c.MaxN = DefaultMaxN
	}
	if c.MaxZ <= 0 {
		c.MaxZ = DefaultMaxZ
	}
	if c.CellSize <= 0 {
		c.CellSize = DefaultCellSize
	}
	for _, l := range layers {
		c.Cells = append(c.Cells, Cells(l.Layer, l.Records)...)
	}
	return c
}

// LayerRecords pairs a layer style with the records drawn in it.
type LayerRecords struct {
	Layer   Layer
	Records []types.Nuclide
}
