// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package table

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pdiddy/nuclide-engine/pkg/types"
)

// Line is one data line of a source table with its 1-based line number.
type Line struct {
	Number int
	Text   string
}

// Column declares one fixed-width field. Columns with an empty name are
// fillers and are not exposed on the Row.
type Column struct {
	Name  string
	Width int
}

// Layout is an ordered list of fixed-width columns.
type Layout struct {
	columns []Column
	width   int
}

// NewLayout builds a Layout from columns in file order.
func NewLayout(cols ...Column) Layout {
	l := Layout{columns: cols}
	for _, c := range cols {
		l.width += c.Width
	}
	return l
}

// Width returns the total line width the layout expects.
func (l Layout) Width() int {
	return l.width
}

// Split slices a line into named fields. Lines shorter than the layout are
// right-padded with spaces first, so tables whose trailing blank fields were
// stripped still decode. Longer lines are truncated to the layout width.
func (l Layout) Split(line Line) Row {
	text := line.Text
	if n := len(text); n < l.width {
		text += strings.Repeat(" ", l.width-n)
	}
	fields := make(map[string]string, len(l.columns))
	pos := 0
	for _, c := range l.columns {
		if c.Name != "" {
			fields[c.Name] = strings.TrimSpace(text[pos : pos+c.Width])
		}
		pos += c.Width
	}
	return Row{line: line.Number, fields: fields}
}

// Tokens names the leading whitespace-separated tokens of a line.
type Tokens []string

// Split names the first len(t) tokens of a line. A line with fewer tokens is
// malformed; extra tokens are ignored. Empty names skip a position.
func (t Tokens) Split(line Line) (Row, error) {
	vals := strings.Fields(line.Text)
	if len(vals) < len(t) {
		return Row{}, malformed(line.Number, "", "",
			fmt.Errorf("expected at least %d columns, found %d", len(t), len(vals)))
	}
	fields := make(map[string]string, len(t))
	for i, name := range t {
		if name != "" {
			fields[name] = vals[i]
		}
	}
	return Row{line: line.Number, fields: fields}, nil
}

// Row is a decoded line with typed field accessors. Conversion failures are
// returned as *MalformedRecordError.
type Row struct {
	line   int
	fields map[string]string
}

// Line returns the source line number.
func (r Row) Line() int {
	return r.line
}

// Str returns the trimmed text of a field.
func (r Row) Str(name string) string {
	return r.fields[name]
}

// Int parses a required integer field. Integral floats such as "50.0" are
// accepted since some tables write every column as a float.
func (r Row) Int(name string) (int, error) {
	s := r.fields[name]
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, malformed(r.line, name, s, errors.New("not an integer"))
	}
	if f != math.Trunc(f) {
		return 0, malformed(r.line, name, s, errors.New("not an integer"))
	}
	return int(f), nil
}

// Float parses a required float field.
func (r Row) Float(name string) (float64, error) {
	s := r.fields[name]
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, malformed(r.line, name, s, errors.New("not a number"))
	}
	return f, nil
}

// Optional parses a field that may be blank. Blank fields and sentinel
// values are unavailable. A '#' marks a value estimated from systematics
// and is dropped before parsing.
func (r Row) Optional(name string) (types.Quantity, error) {
	s := strings.TrimSpace(strings.ReplaceAll(r.fields[name], "#", ""))
	if s == "" {
		return types.None(), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return types.None(), malformed(r.line, name, r.fields[name], errors.New("not a number"))
	}
	return types.QuantityOf(f), nil
}

// Quantity parses a required field into a Quantity.
func (r Row) Quantity(name string) (types.Quantity, error) {
	f, err := r.Float(name)
	if err != nil {
		return types.None(), err
	}
	return types.QuantityOf(f), nil
}
