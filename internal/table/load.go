// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package table decodes nuclear data tables into nuclide records.
//
// Every format shares one loader contract: comment lines starting with '#'
// and blank lines are skipped, each remaining line goes through a Decoder,
// isomers are dropped silently, rows with an unknown half-life unit are
// logged and skipped, and any other decode failure aborts the load with a
// *MalformedRecordError naming the file, line and field.
package table

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/nuclide-engine/pkg/types"
)

const commentMarker = '#'

// Decoder turns one data line into a record. It returns keep=false for lines
// that are dropped without a diagnostic (isomeric states).
type Decoder interface {
	Decode(line Line) (rec types.Nuclide, keep bool, err error)
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(line Line) (types.Nuclide, bool, error)

// Decode calls f.
func (f DecoderFunc) Decode(line Line) (types.Nuclide, bool, error) {
	return f(line)
}

// Summary holds counts from one load.
type Summary struct {
	Loaded  int
	Isomers int
	Skipped int
}

// Total returns the number of data lines seen.
func (s Summary) Total() int {
	return s.Loaded + s.Isomers + s.Skipped
}

// Result is the outcome of a load.
type Result struct {
	Records []types.Nuclide
	Summary Summary
}

// Load opens path and reads it with dec.
func Load(path string, dec Decoder, logger *zap.Logger) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return Read(f, path, dec, logger)
}

// Read decodes every data line of r. name identifies the source in
// diagnostics. On a malformed record it returns the records decoded so far
// together with the error.
func Read(r io.Reader, name string, dec Decoder, logger *zap.Logger) (Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var res Result
	seen := make(map[types.Key]int)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		text := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(text) == "" || text[0] == commentMarker {
			continue
		}

		rec, keep, err := dec.Decode(Line{Number: lineNo, Text: text})
		if err != nil {
			if errors.Is(err, ErrUnknownUnit) {
				logger.Warn("skipping row with unknown half-life unit",
					zap.String("file", name), zap.Int("line", lineNo), zap.Error(err))
				res.Summary.Skipped++
				continue
			}
			return res, withFile(err, name, lineNo)
		}
		if !keep {
			res.Summary.Isomers++
			continue
		}

		if first, dup := seen[rec.Key]; dup {
			return res, &MalformedRecordError{
				File:  name,
				Line:  lineNo,
				Field: "key",
				Value: rec.Key.String(),
				Err:   fmt.Errorf("duplicate ground state, first seen on line %d", first),
			}
		}
		seen[rec.Key] = lineNo

		res.Records = append(res.Records, rec)
		res.Summary.Loaded++
	}
	if err := sc.Err(); err != nil {
		return res, fmt.Errorf("reading %s: %w", name, err)
	}

	logger.Debug("table loaded",
		zap.String("file", name),
		zap.Int("loaded", res.Summary.Loaded),
		zap.Int("isomers", res.Summary.Isomers),
		zap.Int("skipped", res.Summary.Skipped))
	return res, nil
}

// withFile stamps the file name and line onto a malformed-record error.
func withFile(err error, name string, lineNo int) error {
	var me *MalformedRecordError
	if errors.As(err, &me) {
		if me.File == "" {
			me.File = name
		}
		if me.Line == 0 {
			me.Line = lineNo
		}
		return me
	}
	return &MalformedRecordError{File: name, Line: lineNo, Err: err}
}
