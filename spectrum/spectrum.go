// Package spectrum aggregates DNM records into mutation-type spectra:
// mappings from mutation class to the number of retained records.
package spectrum

import (
	"sort"

	"github.com/grailbio/dnm/mutation"
	"github.com/pkg/errors"
)

// Opts controls which records enter a spectrum.
type Opts struct {
	// AutosomesOnly drops X-chromosome records.
	AutosomesOnly bool
	// IncludeIndels retains the insertion/deletion class alongside the
	// single-base substitution classes.
	IncludeIndels bool
}

// DefaultOpts matches the filtering used for the published figures:
// autosomal substitutions only.
var DefaultOpts = Opts{
	AutosomesOnly: true,
	IncludeIndels: false,
}

// Spectrum maps a mutation class label to the number of records observed
// with that class. Counts are raw; use Fractions for relative frequencies.
type Spectrum map[string]int

// Filter returns the subsequence of recs retained under opts. It never
// modifies recs, and it is idempotent: filtering an already-filtered slice
// returns an equal slice.
func Filter(recs []mutation.Record, opts Opts) []mutation.Record {
	kept := make([]mutation.Record, 0, len(recs))
	for _, r := range recs {
		if opts.AutosomesOnly && !r.Autosomal() {
			continue
		}
		if !opts.IncludeIndels && r.Indel() {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

// ByPhase returns the records with the given parent-of-origin assignment,
// so a single phased table can be split into two comparable sets.
func ByPhase(recs []mutation.Record, phase mutation.Phase) []mutation.Record {
	kept := make([]mutation.Record, 0, len(recs))
	for _, r := range recs {
		if r.Phase == phase {
			kept = append(kept, r)
		}
	}
	return kept
}

// Count builds the spectrum of the records retained under opts. It is a pure
// function of its inputs; an empty retained set yields an empty Spectrum.
func Count(recs []mutation.Record, opts Opts) Spectrum {
	s := make(Spectrum)
	for _, r := range Filter(recs, opts) {
		s[r.MutType]++
	}
	return s
}

// Total returns the sum of all counts.
func (s Spectrum) Total() int {
	n := 0
	for _, c := range s {
		n += c
	}
	return n
}

// Categories returns the mutation class labels in lexicographic order. This
// is the single ordering rule used everywhere two spectra are paired, so
// corresponding categories always align across sets.
func (s Spectrum) Categories() []string {
	cats := make([]string, 0, len(s))
	for c := range s {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	return cats
}

// Fractions returns each category's share of the total, keyed like s.
// It fails rather than divide by zero when the spectrum is empty.
func (s Spectrum) Fractions() (map[string]float64, error) {
	total := s.Total()
	if total == 0 {
		return nil, errors.New("cannot normalize an empty spectrum (zero total count)")
	}
	fracs := make(map[string]float64, len(s))
	for c, n := range s {
		fracs[c] = float64(n) / float64(total)
	}
	return fracs, nil
}
