package stats

import "sort"

// DefaultFDR is the false-discovery-rate level used for the published
// figures. Every consumer takes the level as a parameter; this constant is
// only the conventional default.
const DefaultFDR = 0.05

// BenjaminiHochberg applies the Benjamini-Hochberg step-up procedure to a
// vector of unadjusted p-values and reports, in the same order, whether each
// hypothesis is significant at the given FDR level. An empty input yields an
// empty result.
func BenjaminiHochberg(pvals []float64, fdr float64) []bool {
	m := len(pvals)
	flags := make([]bool, m)
	if m == 0 {
		return flags
	}
	order := make([]int, m)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool { return pvals[order[i]] < pvals[order[j]] })

	// Find the largest rank k (1-based) with p_(k) <= k/m * fdr; every
	// hypothesis with rank <= k is significant.
	maxRank := 0
	for rank := 1; rank <= m; rank++ {
		if pvals[order[rank-1]] <= float64(rank)/float64(m)*fdr {
			maxRank = rank
		}
	}
	for rank := 1; rank <= maxRank; rank++ {
		flags[order[rank-1]] = true
	}
	return flags
}
