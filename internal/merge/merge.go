// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package merge reconciles partially overlapping nuclide tables by (Z, N).
// A complement is an anti-join of a candidate table against a reference;
// a chain applies complements in a fixed precedence so that a key accepted
// from one source is never replaced by a later one.
package merge

import (
	"errors"
	"fmt"
	"sort"

	"github.com/pdiddy/nuclide-engine/pkg/types"
)

// ErrUnknownSource is returned by Chain for a provenance with no precedence.
var ErrUnknownSource = errors.New("unknown source provenance")

// Precedence orders sources from most to least trusted.
var Precedence = []types.Provenance{
	types.SourceIAEA,
	types.SourceNUBASE,
	types.SourceFRDMQRPA,
}

func rank(p types.Provenance) (int, bool) {
	for i, q := range Precedence {
		if p == q {
			return i, true
		}
	}
	return 0, false
}

// Source is a named table taking part in a merge.
type Source struct {
	Name       string
	Provenance types.Provenance
	Records    []types.Nuclide
}

// Stage is the outcome of one complement step in a chain.
type Stage struct {
	Source   Source
	Accepted []types.Nuclide
}

// Complement returns the candidate records whose key is absent from
// reference, in candidate order.
func Complement(reference, candidate []types.Nuclide) []types.Nuclide {
	ix := types.NewIndex(reference)
	var out []types.Nuclide
	for _, c := range candidate {
		if !ix.Has(c.Key) {
			out = append(out, c)
		}
	}
	return out
}

// Chain applies complements of each candidate against the reference in
// precedence order. Keys accepted by an earlier stage are excluded from
// later stages, and a key repeated within one candidate keeps its first
// record. Candidates of equal precedence keep their argument order.
func Chain(reference Source, candidates ...Source) ([]Stage, error) {
	if _, ok := rank(reference.Provenance); !ok {
		return nil, fmt.Errorf("reference %s: %w: %q", reference.Name, ErrUnknownSource, reference.Provenance)
	}
	ordered := make([]Source, len(candidates))
	copy(ordered, candidates)
	for _, c := range ordered {
		if _, ok := rank(c.Provenance); !ok {
			return nil, fmt.Errorf("candidate %s: %w: %q", c.Name, ErrUnknownSource, c.Provenance)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		ri, _ := rank(ordered[i].Provenance)
		rj, _ := rank(ordered[j].Provenance)
		return ri < rj
	})

	taken := make(map[types.Key]struct{}, len(reference.Records))
	for _, r := range reference.Records {
		taken[r.Key] = struct{}{}
	}

	stages := make([]Stage, 0, len(ordered))
	for _, c := range ordered {
		st := Stage{Source: c}
		for _, r := range c.Records {
			if _, ok := taken[r.Key]; ok {
				continue
			}
			taken[r.Key] = struct{}{}
			st.Accepted = append(st.Accepted, r)
		}
		stages = append(stages, st)
	}
	return stages, nil
}

// Combine returns the reference records followed by every stage's accepted
// records. Each record is tagged with its provenance and origin. Complement
// records without a high-side uncertainty take the symmetric one.
func Combine(reference Source, stages []Stage) []types.MergedRecord {
	n := len(reference.Records)
	for _, st := range stages {
		n += len(st.Accepted)
	}
	out := make([]types.MergedRecord, 0, n)
	for _, r := range reference.Records {
		out = append(out, types.MergedRecord{
			Nuclide: tag(r, reference.Provenance),
			Origin:  types.OriginReference,
		})
	}
	for _, st := range stages {
		for _, r := range st.Accepted {
			r = tag(r, st.Source.Provenance)
			r.HalfLifeUncHigh = r.HalfLifeUncHigh.Or(r.HalfLifeUnc)
			r.P1n.UncHigh = r.P1n.UncHigh.Or(r.P1n.Unc)
			r.P2n.UncHigh = r.P2n.UncHigh.Or(r.P2n.Unc)
			out = append(out, types.MergedRecord{Nuclide: r, Origin: types.OriginComplement})
		}
	}
	return out
}

func tag(r types.Nuclide, p types.Provenance) types.Nuclide {
	if r.Source == "" {
		r.Source = p
	}
	return r
}

// Restrict keeps the records whose key appears in allowed, in record order.
func Restrict(records, allowed []types.Nuclide) []types.Nuclide {
	ix := types.NewIndex(allowed)
	var out []types.Nuclide
	for _, r := range records {
		if ix.Has(r.Key) {
			out = append(out, r)
		}
	}
	return out
}

// Accepted flattens the accepted records of every stage, in stage order.
func Accepted(stages []Stage) []types.Nuclide {
	var out []types.Nuclide
	for _, st := range stages {
		out = append(out, st.Accepted...)
	}
	return out
}
