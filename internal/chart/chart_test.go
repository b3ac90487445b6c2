// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package chart

import (
	"bytes"
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/nuclide-engine/pkg/types"
)

func TestGridlines(t *testing.T) {
	lines := Gridlines()
	require.Len(t, lines, 28)

	var nPos, zPos []float64
	for _, g := range lines {
		if g.Axis == AxisN {
			nPos = append(nPos, g.Pos)
		} else {
			zPos = append(zPos, g.Pos)
		}
	}
	assert.ElementsMatch(t, nPos, zPos)
	assert.Contains(t, nPos, 81.5)
	assert.Contains(t, nPos, 82.5)
	assert.Contains(t, zPos, 1.5)
	assert.Contains(t, zPos, 126.5)
}

func TestCells(t *testing.T) {
	records := []types.Nuclide{
		{Key: types.Key{Z: 35, N: 53}, Symbol: "br"},
		{Key: types.Key{Z: 54, N: 82}},
	}

	cells := Cells(LayerIAEA, records)
	require.Len(t, cells, 2)
	assert.Equal(t, Cell{N: 53, Z: 35, Category: "iaea", Fill: "yellow", Opacity: 1, Outline: true, Label: "88Br"}, cells[0])
	assert.Equal(t, "136Xe", cells[1].Label)

	plain := Cells(LayerBound, records)
	assert.Empty(t, plain[0].Label)
	assert.Equal(t, 0.5, plain[0].Opacity)
}

func TestNew_Defaults(t *testing.T) {
	c := New(types.ChartConfig{}, LayerRecords{Layer: LayerBound, Records: []types.Nuclide{{Key: types.Key{Z: 1, N: 1}}}})
	assert.Equal(t, DefaultMaxN, c.MaxN)
	assert.Equal(t, DefaultMaxZ, c.MaxZ)
	assert.Equal(t, DefaultCellSize, c.CellSize)
	assert.Len(t, c.Cells, 1)
	assert.Len(t, c.Gridlines, 28)
}

func TestWriteSVG(t *testing.T) {
	c := New(types.ChartConfig{MaxN: 10, MaxZ: 10, CellSize: 2},
		LayerRecords{Layer: LayerIAEA, Records: []types.Nuclide{
			{Key: types.Key{Z: 2, N: 3}, Symbol: "he"},
			{Key: types.Key{Z: 50, N: 82}, Symbol: "sn"},
		}},
	)

	var buf bytes.Buffer
	require.NoError(t, WriteSVG(&buf, c))
	out := buf.String()

	// well-formed XML
	dec := xml.NewDecoder(strings.NewReader(out))
	for {
		_, err := dec.Token()
		if err != nil {
			assert.Equal(t, "EOF", err.Error())
			break
		}
	}

	assert.Equal(t, 1, strings.Count(out, `class="iaea"`), "cells outside the grid are dropped")
	assert.Contains(t, out, ">5He</text>")
	// N=3 spans x in [6, 8); Z=2 spans y in [16, 18) with MaxZ=10 and size 2.
	assert.Contains(t, out, `x="6" y="16" width="2" height="2" fill="yellow"`)
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "charts", "complement.svg")
	require.NoError(t, WriteFile(path, New(types.ChartConfig{})))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "<svg"))
}
