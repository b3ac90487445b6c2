// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package table

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// nubaseLine lays out fields in NUBASE column order. Trailing blanks are
// stripped the way many distributed copies of the table are.
func nubaseLine(t *testing.T, fields map[string]string) string {
	t.Helper()
	var b strings.Builder
	for _, c := range NUBASELayout.columns {
		v := ""
		if c.Name != "" {
			v = fields[c.Name]
		}
		require.LessOrEqual(t, len(v), c.Width, "field %q too wide", c.Name)
		fmt.Fprintf(&b, "%-*s", c.Width, v)
	}
	return strings.TrimRight(b.String(), " ")
}

func xe136(t *testing.T) string {
	return nubaseLine(t, map[string]string{
		nubaseA: "136", nubaseZi: "0540", nubaseLabel: "136Xe",
		nubaseMass: "-86429.159", nubaseHalfLife: halfLifeStable,
		nubaseBR: "IS=8.8573 44",
	})
}

func br88(t *testing.T) string {
	return nubaseLine(t, map[string]string{
		nubaseA: "88", nubaseZi: "0350", nubaseLabel: "88Br",
		nubaseMass: "-70716", nubaseHalfLife: "16.34", nubaseUnit: "s",
		nubaseHalfUnc: "0.08", nubaseBR: "B-=100;B-n=6.58 18",
	})
}

func TestNUBASE_GroundState(t *testing.T) {
	res, err := Read(strings.NewReader(br88(t)+"\n"), "nubase.txt", NUBASE, nil)
	require.NoError(t, err)
	require.Len(t, res.Records, 1)

	r := res.Records[0]
	assert.Equal(t, 35, r.Z)
	assert.Equal(t, 53, r.N)
	assert.Equal(t, "br", r.Symbol)
	assert.False(t, r.Stable)
	assert.InDelta(t, -70.716, r.MassExcess.Value, 1e-9)
	assert.InDelta(t, 16.34, r.HalfLife.Value, 1e-9)
	assert.InDelta(t, 0.08, r.HalfLifeUnc.Value, 1e-9)
	assert.InDelta(t, 6.58, r.P1n.Prob.Value, 1e-9)
	assert.InDelta(t, 18, r.P1n.Unc.Value, 1e-9)
	assert.False(t, r.P2n.Prob.Valid)
	assert.Equal(t, "nubase", string(r.Source))
}

func TestNUBASE_Stable(t *testing.T) {
	res, err := Read(strings.NewReader(xe136(t)), "nubase.txt", NUBASE, nil)
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	assert.True(t, res.Records[0].Stable)
	assert.False(t, res.Records[0].HalfLife.Valid)
}

func TestRead_IsomerAndMalformed(t *testing.T) {
	isomer := nubaseLine(t, map[string]string{
		nubaseA: "136", nubaseZi: "0541", nubaseLabel: "136Xe", nubaseState: "i",
		nubaseMass: "-84537", nubaseHalfLife: "2.95", nubaseUnit: "us",
	})
	bad := nubaseLine(t, map[string]string{
		nubaseA: "137", nubaseZi: "0540", nubaseLabel: "137Xe",
		nubaseMass: "abc", nubaseHalfLife: "3.818", nubaseUnit: "m",
	})
	input := strings.Join([]string{xe136(t), isomer, bad}, "\n")

	res, err := Read(strings.NewReader(input), "nubase.txt", NUBASE, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedRecord))

	var me *MalformedRecordError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, "nubase.txt", me.File)
	assert.Equal(t, 3, me.Line)
	assert.Equal(t, nubaseMass, me.Field)
	assert.Equal(t, "abc", me.Value)

	require.Len(t, res.Records, 1)
	assert.Equal(t, 54, res.Records[0].Z)
	assert.Equal(t, 82, res.Records[0].N)
	assert.Equal(t, 1, res.Summary.Isomers)
}

func TestRead_SkipsCommentsAndBlankLines(t *testing.T) {
	input := "# NUBASE2020\n\n" + xe136(t) + "\n#trailer\n"
	res, err := Read(strings.NewReader(input), "nubase.txt", NUBASE, nil)
	require.NoError(t, err)
	assert.Equal(t, Summary{Loaded: 1}, res.Summary)
}

func TestRead_UnknownUnitIsSkippedAndLogged(t *testing.T) {
	odd := nubaseLine(t, map[string]string{
		nubaseA: "100", nubaseZi: "0500", nubaseLabel: "100Sn",
		nubaseMass: "-57280", nubaseHalfLife: "1.16", nubaseUnit: "zz",
		nubaseBR: "B+=100",
	})
	core, logs := observer.New(zapcore.WarnLevel)

	res, err := Read(strings.NewReader(odd+"\n"+br88(t)), "nubase.txt", NUBASE, zap.New(core))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Summary.Loaded)
	assert.Equal(t, 1, res.Summary.Skipped)
	assert.Equal(t, 2, res.Summary.Total())

	entries := logs.FilterMessage("skipping row with unknown half-life unit").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(1), entries[0].ContextMap()["line"])
}

func TestRead_DuplicateKey(t *testing.T) {
	input := br88(t) + "\n" + br88(t)
	res, err := Read(strings.NewReader(input), "nubase.txt", NUBASE, nil)

	var me *MalformedRecordError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, 2, me.Line)
	assert.Equal(t, "key", me.Field)
	assert.Len(t, res.Records, 1)
}

func TestRead_KeysAreUnique(t *testing.T) {
	var lines []string
	for z := 1; z <= 10; z++ {
		for n := z; n <= z+3; n++ {
			lines = append(lines, frdmLine(z, n, z+n, "-1.0", "2.0", ""))
		}
	}
	res, err := Read(strings.NewReader(strings.Join(lines, "\n")), "frdm.dat", FRDM, nil)
	require.NoError(t, err)

	seen := make(map[string]bool)
	for _, r := range res.Records {
		assert.False(t, seen[r.Key.String()], "duplicate %s", r.Key)
		seen[r.Key.String()] = true
	}
	assert.Len(t, res.Records, 40)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.dat"), FRDM, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLayout_PadsShortLines(t *testing.T) {
	l := NewLayout(Column{"a", 3}, Column{"", 2}, Column{"b", 4})
	assert.Equal(t, 9, l.Width())

	row := l.Split(Line{Number: 7, Text: " 12"})
	assert.Equal(t, "12", row.Str("a"))
	assert.Equal(t, "", row.Str("b"))
	assert.Equal(t, 7, row.Line())

	q, err := row.Optional("b")
	require.NoError(t, err)
	assert.False(t, q.Valid)
}

func TestTokens_TooFew(t *testing.T) {
	_, err := WS36Columns.Split(Line{Number: 4, Text: "1 2 3"})
	var me *MalformedRecordError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, 4, me.Line)
}

func TestRow_Int(t *testing.T) {
	row, err := Tokens{"a", "b", "c"}.Split(Line{Number: 1, Text: "50 50.0 50.5"})
	require.NoError(t, err)

	n, err := row.Int("a")
	require.NoError(t, err)
	assert.Equal(t, 50, n)

	n, err = row.Int("b")
	require.NoError(t, err)
	assert.Equal(t, 50, n)

	_, err = row.Int("c")
	assert.ErrorIs(t, err, ErrMalformedRecord)
}
