package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"
)

func TestQuantityArithmetic(t *testing.T) {
	assert.Equal(t, Some(1.5), Some(4).Sub(Some(2.5)))
	assert.False(t, Some(4).Sub(None()).Valid)
	assert.False(t, None().Sub(Some(1)).Valid)

	assert.InDelta(t, 2, Some(10.07131806).Minus(8.07131806).Value, 1e-9)
	assert.False(t, None().Minus(1).Valid)

	assert.True(t, Some(0.1).Positive())
	assert.False(t, Some(0).Positive())
	assert.False(t, Some(-1).Positive())
	assert.False(t, None().Positive())

	assert.Equal(t, Some(3), None().Or(Some(3)))
	assert.Equal(t, Some(1), Some(1).Or(Some(3)))
}

func TestQuantityOf(t *testing.T) {
	assert.False(t, QuantityOf(Unavailable).Valid)
	assert.False(t, QuantityOf(Missing).Valid)
	assert.Equal(t, Some(-9998), QuantityOf(-9998))
	assert.Equal(t, "-9999", None().String())
	assert.Equal(t, "6.58", Some(6.58).String())
}

func TestQuantityJSON(t *testing.T) {
	b := Branch{Prob: Some(12.3), Unc: None()}
	data, err := json.Marshal(b)
	require.NoError(t, err)
	assert.JSONEq(t, `{"P": 12.3, "dP": -9999, "dPhi": -9999}`, string(data))

	var got Branch
	require.NoError(t, json.Unmarshal([]byte(`{"P": -8888, "dP": 4, "dPhi": null}`), &got))
	assert.Equal(t, Branch{Prob: None(), Unc: Some(4), UncHigh: None()}, got)

	var q Quantity
	assert.Error(t, json.Unmarshal([]byte(`"x"`), &q))
}

func TestQuantityYAML(t *testing.T) {
	n := Nuclide{Key: Key{Z: 35, N: 53}, Symbol: "br", HalfLife: Some(16.34), Source: SourceIAEA}
	data, err := yaml.Marshal(n)
	require.NoError(t, err)
	assert.Contains(t, string(data), "T12: 16.34\n")
	assert.Contains(t, string(data), "Mth: -9999\n")
	assert.Contains(t, string(data), "Z: 35\n")

	var got Nuclide
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, n, got)
}

func TestIndex_FirstRecordWins(t *testing.T) {
	ix := NewIndex([]Nuclide{
		{Key: Key{Z: 1, N: 1}, Source: SourceNUBASE},
		{Key: Key{Z: 1, N: 1}, Source: SourceFRDM},
	})
	r, ok := ix.Lookup(Key{Z: 1, N: 1})
	require.True(t, ok)
	assert.Equal(t, SourceNUBASE, r.Source)
	assert.False(t, ix.Has(Key{Z: 2, N: 1}))
	assert.Equal(t, 3, Key{Z: 1, N: 2}.A())
	assert.Equal(t, Key{Z: 2, N: 0}, Key{Z: 1, N: 1}.Offset(1, -1))
}
