// Package mutation defines the de novo mutation (DNM) record model and
// loaders for the delimited tables produced by the upstream calling
// pipeline.
package mutation

import (
	"strings"
)

// Phase is the parent-of-origin assignment of a DNM.
type Phase int

const (
	// PhaseUnknown marks records the upstream phasing step could not assign.
	PhaseUnknown Phase = iota
	PhasePaternal
	PhaseMaternal
)

// ParsePhase maps the phase labels observed in DNM tables ("paternal",
// "father", "dad", "P", and the maternal equivalents) onto a Phase.
// Unrecognized labels, including the empty string, map to PhaseUnknown.
func ParsePhase(s string) Phase {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "paternal", "father", "dad", "p":
		return PhasePaternal
	case "maternal", "mother", "mom", "m":
		return PhaseMaternal
	}
	return PhaseUnknown
}

func (p Phase) String() string {
	switch p {
	case PhasePaternal:
		return "paternal"
	case PhaseMaternal:
		return "maternal"
	}
	return "unknown"
}

// Record is one observed DNM. Records are immutable once loaded; the
// analysis packages never modify or persist them.
type Record struct {
	// Chrom is the chromosome label as it appears in the table, e.g. "1",
	// "chr1", "X".
	Chrom string
	// MutType is the mutation class label, e.g. "C>T" or "indel".
	MutType string
	// Phase is the parent-of-origin assignment, if phased.
	Phase Phase
	// FathersAge and MothersAge are the parental ages at the proband's
	// birth, in years. NaN when the column is absent or the field is empty.
	// They are carried for subset selection only; the spectrum analysis
	// itself never reads them.
	FathersAge float64
	MothersAge float64
}

// Autosomal reports whether the record's chromosome is not the X sentinel.
// The DNM tables use "X" or "chrX"; Y-chromosome calls are removed upstream,
// so no broader sex-chromosome handling is needed here.
func (r *Record) Autosomal() bool {
	return strings.TrimPrefix(r.Chrom, "chr") != "X"
}

// Indel reports whether the record's mutation class is the insertion/deletion
// sentinel rather than a single-base substitution class.
func (r *Record) Indel() bool {
	return strings.EqualFold(r.MutType, "indel")
}

// IndividualCounts is one row of a per-individual DNM summary table.
type IndividualCounts struct {
	ID       string
	Paternal int
	Maternal int
	// Total includes unphased DNMs, so it can exceed Paternal+Maternal.
	Total int
}
