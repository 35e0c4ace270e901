// Package stats provides the small statistical toolkit used by the spectrum
// comparison: 2x2 chi-square tests of independence and Benjamini-Hochberg
// false-discovery-rate correction.
package stats

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat/distuv"
)

// ErrDegenerate is returned when a contingency table has a zero row or
// column margin, leaving the test statistic undefined. Callers are expected
// to classify the corresponding hypothesis as untestable rather than feed an
// invalid p-value into the correction step.
var ErrDegenerate = errors.New("degenerate contingency table (zero margin)")

// Table2x2 is a 2x2 contingency table:
//
//	         in category   out of category
//	set A:   A             B
//	set B:   C             D
type Table2x2 struct {
	A, B, C, D float64
}

func (t Table2x2) String() string {
	return fmt.Sprintf("[[%g %g] [%g %g]]", t.A, t.B, t.C, t.D)
}

// ChiSquared runs the chi-square test of independence on the table and
// returns the test statistic and p-value. The statistic uses the Yates
// continuity correction, as is standard for one degree of freedom: each
// observed cell is moved toward its expectation by 0.5, but never past it.
// A table whose observed cells all equal their expectations therefore
// yields a statistic of 0 and a p-value of exactly 1.
func (t Table2x2) ChiSquared() (stat, p float64, err error) {
	row1 := t.A + t.B
	row2 := t.C + t.D
	col1 := t.A + t.C
	col2 := t.B + t.D
	if row1 == 0 || row2 == 0 || col1 == 0 || col2 == 0 {
		return 0, 0, errors.Wrap(ErrDegenerate, t.String())
	}
	n := row1 + row2
	expected := [4]float64{
		row1 * col1 / n,
		row1 * col2 / n,
		row2 * col1 / n,
		row2 * col2 / n,
	}
	observed := [4]float64{t.A, t.B, t.C, t.D}
	for i, e := range expected {
		adj := math.Abs(observed[i]-e) - 0.5
		if adj < 0 {
			adj = 0
		}
		stat += adj * adj / e
	}
	dist := distuv.ChiSquared{K: 1}
	return stat, dist.Survival(stat), nil
}
