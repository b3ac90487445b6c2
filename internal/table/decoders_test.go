package table

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pdiddy/nuclide-engine/pkg/types"
)

// frdmLine formats one FRDM2012 row. Only Ebind, Mth and Mexp carry values;
// the remaining float columns are zero.
func frdmLine(z, n, a int, ebind, mth, mexp string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%5d%5d%5d", z, n, a)
	floats := make([]string, 16)
	for i := range floats {
		floats[i] = "0.00"
	}
	floats[10], floats[11], floats[12] = ebind, mth, mexp
	for _, f := range floats {
		fmt.Fprintf(&b, "%10s", f)
	}
	return b.String()
}

func TestFRDM(t *testing.T) {
	res, err := Read(strings.NewReader(frdmLine(50, 82, 132, "-1102.84", "-76.55", "")), "frdm.dat", FRDM, nil)
	require.NoError(t, err)
	require.Len(t, res.Records, 1)

	r := res.Records[0]
	assert.Equal(t, types.Key{Z: 50, N: 82}, r.Key)
	assert.Equal(t, "sn", r.Symbol)
	assert.Equal(t, types.Some(-1102.84), r.BindingEnergy)
	assert.Equal(t, types.Some(-76.55), r.MassExcess)
	assert.False(t, r.MassExcessExp.Valid, "blank Mexp is unavailable")
	assert.Equal(t, types.SourceFRDM, r.Source)
}

func TestFRDM_MassNumberMismatch(t *testing.T) {
	_, err := Read(strings.NewReader(frdmLine(50, 82, 133, "1", "1", "1")), "frdm.dat", FRDM, nil)
	var me *MalformedRecordError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, "A", me.Field)
	assert.Equal(t, "frdm.dat", me.File)
}

func TestWS36(t *testing.T) {
	line := "132 50 0.001 -0.002 0.000 -4.10 0.00 -1102.85 -1102.91 -76.55 -76.49"
	res, err := Read(strings.NewReader(line), "ws36.txt", WS36, nil)
	require.NoError(t, err)
	require.Len(t, res.Records, 1)

	r := res.Records[0]
	assert.Equal(t, types.Key{Z: 50, N: 82}, r.Key)
	assert.InDelta(t, 1102.91, r.BindingEnergy.Value, 1e-9)
	assert.InDelta(t, -76.49, r.MassExcess.Value, 1e-9)
	assert.InDelta(t, -76.55, r.MassExcessExp.Value, 1e-9)
	assert.Equal(t, types.SourceWS36, r.Source)
}

func TestWS36_SentinelExperimentalMass(t *testing.T) {
	line := "180 50 0.1 0.0 0.0 1.0 0.0 -9999 -1300.0 -9999 30.0"
	res, err := Read(strings.NewReader(line), "ws36.txt", WS36, nil)
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	assert.False(t, res.Records[0].MassExcessExp.Valid)
	assert.True(t, res.Records[0].MassExcess.Valid)
}

func iaeaLine(fields map[int]string) string {
	tok := make([]string, 33)
	for i := range tok {
		tok[i] = "0"
	}
	for i, v := range fields {
		tok[i] = v
	}
	return strings.Join(tok, " ")
}

func TestIAEACRP(t *testing.T) {
	ground := iaeaLine(map[int]string{
		0: "1", 1: "35", 2: "88", 3: "0",
		16: "16.34", 17: "0.08",
		18: "6.58", 19: "0.18",
		20: "-9999", 21: "-9999",
		22: "-9999", 23: "-9999",
		30: "0.09", 31: "0.20", 32: "-9999",
	})
	isomer := iaeaLine(map[int]string{0: "2", 1: "35", 2: "88", 3: "1", 16: "1.0"})

	res, err := Read(strings.NewReader(ground+"\n"+isomer), "iaea.csv", IAEACRP, nil)
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	assert.Equal(t, 1, res.Summary.Isomers)

	r := res.Records[0]
	assert.Equal(t, types.Key{Z: 35, N: 53}, r.Key)
	assert.Equal(t, types.Some(16.34), r.HalfLife)
	assert.Equal(t, types.Some(0.08), r.HalfLifeUnc)
	assert.Equal(t, types.Some(0.09), r.HalfLifeUncHigh)
	assert.Equal(t, types.Some(6.58), r.P1n.Prob)
	assert.Equal(t, types.Some(0.18), r.P1n.Unc)
	assert.Equal(t, types.Some(0.20), r.P1n.UncHigh)
	assert.False(t, r.P2n.Prob.Valid)
	assert.False(t, r.P2n.UncHigh.Valid)
	assert.Equal(t, types.SourceIAEA, r.Source)
}

func TestIAEACRP_ShortLine(t *testing.T) {
	_, err := Read(strings.NewReader("1 35 88 0 5"), "iaea.csv", IAEACRP, nil)
	assert.ErrorIs(t, err, ErrMalformedRecord)
}

func TestQRPA_JoinHalfLives(t *testing.T) {
	pn := strings.Join([]string{
		"35 53 88 93.1 6.5 0.4 0.0 0 0 0 0 0 0 0 1.2 0.07 1",
		"35 54 89 80.0 19.0 1.0 0.0 0 0 0 0 0 0 0 1.5 0.21 0",
	}, "\n")
	t12 := "35 53 15.9\n36 60 0.2"

	pnRes, err := Read(strings.NewReader(pn), "pn.dat", QRPAPn, nil)
	require.NoError(t, err)
	t12Res, err := Read(strings.NewReader(t12), "t12.dat", QRPAHalfLife, nil)
	require.NoError(t, err)

	core, logs := observer.New(zapcore.WarnLevel)
	joined, missing := JoinHalfLives(pnRes.Records, t12Res.Records, zap.New(core))
	require.Len(t, joined, 2)
	assert.Equal(t, 1, missing)

	assert.Equal(t, types.Some(15.9), joined[0].HalfLife)
	assert.Equal(t, types.Some(6.5), joined[0].P1n.Prob)
	assert.Equal(t, types.Some(93.1), joined[0].P0n.Prob)
	assert.Equal(t, types.SourceFRDMQRPA, joined[0].Source)

	assert.False(t, joined[1].HalfLife.Valid)
	assert.Equal(t, 1, logs.FilterMessage("no half-life for nuclide").Len())

	// the inputs are not modified
	assert.False(t, pnRes.Records[0].HalfLife.Valid)
}

func TestQRPAPn_MassNumberMismatch(t *testing.T) {
	_, err := Read(strings.NewReader("35 53 90 93.1 6.5 0.4 0.0 0 0 0 0 0 0 0 1.2 0.07 1"), "pn.dat", QRPAPn, nil)
	assert.True(t, errors.Is(err, ErrMalformedRecord))
}

func TestToSeconds(t *testing.T) {
	tests := []struct {
		text string
		want float64
	}{
		{"1 y", 31536000},
		{"60 m", 3600},
		{"2 h", 7200},
		{"1 d", 86400},
		{"250 ms", 0.25},
		{"3 s", 3},
		{"1 ky", 31536000000},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := ParseHalfLife(tt.text)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestToSeconds_UnknownUnit(t *testing.T) {
	_, err := ToSeconds(1, "fortnight")
	assert.ErrorIs(t, err, ErrUnknownUnit)

	_, err = ParseHalfLife("1.0")
	assert.Error(t, err)
}

func TestParseDecayModes(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantP1n types.Quantity
		wantUnc types.Quantity
	}{
		{"approximate with uncertainty", "B-n~12.3 4", types.Some(12.3), types.Some(4)},
		{"equal without uncertainty", "B-=100;B-n=6.5", types.Some(6.5), types.None()},
		{"upper bound", "B-n<5", types.None(), types.None()},
		{"lower bound", "B-n>5", types.None(), types.None()},
		{"unknown", "B-n=?", types.None(), types.None()},
		{"estimate marker", "B-n=2.1# 3#", types.Some(2.1), types.Some(3)},
		{"absent", "B-=100", types.None(), types.None()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p1n, _, _ := NeutronBranches(ParseDecayModes(tt.in))
			if p1n.Prob != tt.wantP1n {
				t.Errorf("P1n = %v, want %v", p1n.Prob, tt.wantP1n)
			}
			if p1n.Unc != tt.wantUnc {
				t.Errorf("dP1n = %v, want %v", p1n.Unc, tt.wantUnc)
			}
		})
	}
}

func TestNeutronBranches_Multiple(t *testing.T) {
	p1n, p2n, p3n := NeutronBranches(ParseDecayModes("B-=100; B-n=35 3; B-2n=1.9 5; B-3n<0.1"))
	assert.Equal(t, types.Some(35), p1n.Prob)
	assert.Equal(t, types.Some(1.9), p2n.Prob)
	assert.Equal(t, types.Some(5), p2n.Unc)
	assert.False(t, p3n.Prob.Valid)
}

func TestSelectors(t *testing.T) {
	records := []types.Nuclide{
		{Key: types.Key{Z: 54, N: 82}, Stable: true, DecayModes: "IS=8.8573 44"},
		{Key: types.Key{Z: 35, N: 53}, DecayModes: "B-=100;B-n=6.58 18"},
		{Key: types.Key{Z: 50, N: 50}, DecayModes: "B+=100"},
	}

	stable := SelectStable(records)
	require.Len(t, stable, 1)
	assert.Equal(t, 54, stable[0].Z)

	bminus := SelectBetaMinus(records)
	require.Len(t, bminus, 1)
	assert.Equal(t, 35, bminus[0].Z)
}
