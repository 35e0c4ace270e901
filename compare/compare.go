// Package compare tests two mutation spectra for per-category enrichment
// and produces the normalized fractions behind the grouped-bar figures.
package compare

import (
	"github.com/grailbio/base/log"
	"github.com/grailbio/dnm/spectrum"
	"github.com/grailbio/dnm/stats"
	"github.com/pkg/errors"
)

// Opts configures one spectrum comparison.
type Opts struct {
	// LabelA and LabelB name the two sets in reports and figures.
	LabelA, LabelB string
	// FDR is the Benjamini-Hochberg false-discovery-rate level. Zero means
	// stats.DefaultFDR.
	FDR float64
}

// CategoryResult holds one mutation class's comparison outcome.
type CategoryResult struct {
	Category       string
	CountA, CountB int
	FracA, FracB   float64
	// P is the unadjusted chi-square p-value. Meaningless when Untestable.
	P float64
	// Significant is set when the category passes Benjamini-Hochberg
	// correction at the comparison's FDR level.
	Significant bool
	// Untestable marks categories whose contingency table had a zero
	// margin. They are excluded from the correction step.
	Untestable bool
}

// Result is the outcome of one spectrum comparison. It is self-contained;
// nothing is retained across calls.
type Result struct {
	LabelA, LabelB string
	TotalA, TotalB int
	FDR            float64
	// Categories is ordered by the shared lexicographic rule, one entry per
	// category of set A.
	Categories []CategoryResult
}

// Spectra compares two spectra category by category. For each mutation class
// of set A it builds the 2x2 table of (this class vs. all others) x (set A
// vs. set B) and runs a chi-square test of independence, then applies
// Benjamini-Hochberg correction across all testable classes.
//
// Set A's category enumeration is authoritative, matching the published
// analysis: classes present only in set B are not tested. They are logged so
// the asymmetry is visible.
func Spectra(a, b spectrum.Spectrum, opts Opts) (*Result, error) {
	fdr := opts.FDR
	if fdr == 0 {
		fdr = stats.DefaultFDR
	}
	totalA, totalB := a.Total(), b.Total()
	if totalA == 0 || totalB == 0 {
		return nil, errors.Errorf("cannot compare spectra: empty set (%s: %d DNMs, %s: %d DNMs)",
			opts.LabelA, totalA, opts.LabelB, totalB)
	}
	log.Printf("comparing spectra: %s n=%d, %s n=%d", opts.LabelA, totalA, opts.LabelB, totalB)
	for _, cat := range b.Categories() {
		if _, ok := a[cat]; !ok {
			log.Error.Printf("category %q present only in %s (%d DNMs): not tested",
				cat, opts.LabelB, b[cat])
		}
	}

	r := &Result{
		LabelA: opts.LabelA,
		LabelB: opts.LabelB,
		TotalA: totalA,
		TotalB: totalB,
		FDR:    fdr,
	}
	var pvals []float64
	var testable []int
	for _, cat := range a.Categories() {
		countA, countB := a[cat], b[cat]
		cr := CategoryResult{
			Category: cat,
			CountA:   countA,
			CountB:   countB,
			FracA:    float64(countA) / float64(totalA),
			FracB:    float64(countB) / float64(totalB),
		}
		table := stats.Table2x2{
			A: float64(countA), B: float64(totalA - countA),
			C: float64(countB), D: float64(totalB - countB),
		}
		_, p, err := table.ChiSquared()
		switch {
		case errors.Cause(err) == stats.ErrDegenerate:
			cr.Untestable = true
			log.Error.Printf("category %q: %v; reported as untestable", cat, err)
		case err != nil:
			return nil, errors.Wrapf(err, "category %q", cat)
		default:
			cr.P = p
			testable = append(testable, len(r.Categories))
			pvals = append(pvals, p)
		}
		r.Categories = append(r.Categories, cr)
	}
	for i, sig := range stats.BenjaminiHochberg(pvals, fdr) {
		r.Categories[testable[i]].Significant = sig
	}
	return r, nil
}
