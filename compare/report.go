package compare

import (
	"fmt"
	"io"

	"github.com/grailbio/base/tsv"
)

// WriteReport emits the comparison as a TSV report: two comment lines with
// the per-set totals, a header, then one line per tested category with
// counts, fractions, the unadjusted p-value, and a significance marker.
// Categories that could not be tested carry "untestable" in place of a
// p-value.
func (r *Result) WriteReport(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "# %s: %d DNMs\n# %s: %d DNMs\n# FDR level: %g\n",
		r.LabelA, r.TotalA, r.LabelB, r.TotalB, r.FDR); err != nil {
		return err
	}
	tw := tsv.NewWriter(w)
	tw.WriteString(fmt.Sprintf("category\tcount_%s\tcount_%s\tfrac_%s\tfrac_%s\tp\tsignificant",
		sanitize(r.LabelA), sanitize(r.LabelB), sanitize(r.LabelA), sanitize(r.LabelB)))
	if err := tw.EndLine(); err != nil {
		return err
	}
	for _, c := range r.Categories {
		tw.WriteString(c.Category)
		tw.WriteInt64(int64(c.CountA))
		tw.WriteInt64(int64(c.CountB))
		tw.WriteFloat64(c.FracA, 'f', 4)
		tw.WriteFloat64(c.FracB, 'f', 4)
		if c.Untestable {
			tw.WriteString("untestable")
			tw.WriteString("")
		} else {
			tw.WriteFloat64(c.P, 'g', 4)
			if c.Significant {
				tw.WriteString("*")
			} else {
				tw.WriteString("")
			}
		}
		if err := tw.EndLine(); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// sanitize keeps report column names single-token.
func sanitize(label string) string {
	out := make([]byte, 0, len(label))
	for i := 0; i < len(label); i++ {
		switch c := label[i]; {
		case c == ' ' || c == '\t':
			out = append(out, '_')
		default:
			out = append(out, c)
		}
	}
	return string(out)
}
