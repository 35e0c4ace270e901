// Package figure renders grouped-bar charts of mutation spectra and writes
// them out in the two formats the publication pipeline expects (SVG and
// PNG).
package figure

import (
	"strings"

	"github.com/grailbio/dnm/compare"
	"github.com/pkg/errors"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Default palette for two-set figures, chosen to match the published
// paternal/maternal color scheme.
const (
	DefaultColorA = "436bad"
	DefaultColorB = "d8863b"
)

// Pair is one category's bar pair: set A's value next to set B's.
type Pair struct {
	Category string
	A, B     float64
}

// ParseColor converts a CSS-style hex color ("436bad" or "#436bad",
// three- or six-digit) to a drawing color, failing on anything else.
func ParseColor(s string) (drawing.Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 3 && len(hex) != 6 {
		return drawing.Color{}, errors.Errorf("bad color %q: want 3 or 6 hex digits", s)
	}
	for i := 0; i < len(hex); i++ {
		c := hex[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F') {
			return drawing.Color{}, errors.Errorf("bad color %q: %q is not a hex digit", s, c)
		}
	}
	return drawing.ColorFromHex(hex), nil
}

// Grouped assembles a grouped bar chart: one bar pair per category, set A's
// bar carrying the category tick label, bars colored per set, y axis labeled
// "Fraction".
func Grouped(title, colorA, colorB string, pairs []Pair) (*chart.BarChart, error) {
	if len(pairs) == 0 {
		return nil, errors.New("no categories to plot")
	}
	ca, err := ParseColor(colorA)
	if err != nil {
		return nil, err
	}
	cb, err := ParseColor(colorB)
	if err != nil {
		return nil, err
	}
	styleA := chart.Style{FillColor: ca, StrokeColor: ca, StrokeWidth: 0}
	styleB := chart.Style{FillColor: cb, StrokeColor: cb, StrokeWidth: 0}
	bars := make([]chart.Value, 0, 2*len(pairs))
	for _, p := range pairs {
		bars = append(bars,
			chart.Value{Value: p.A, Label: p.Category, Style: styleA},
			chart.Value{Value: p.B, Label: "", Style: styleB},
		)
	}
	bc := &chart.BarChart{
		Title:      title,
		Height:     512,
		Width:      80 + 44*len(bars),
		BarWidth:   28,
		BarSpacing: 16,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 32}},
		YAxis: chart.YAxis{
			Name: "Fraction",
		},
		Bars: bars,
	}
	return bc, nil
}

// FromResult builds the spectrum-comparison figure for a comparison result,
// with the two dataset labels in the title and a significance marker
// appended to the category label of each significant class.
func FromResult(r *compare.Result, colorA, colorB string) (*chart.BarChart, error) {
	pairs := make([]Pair, 0, len(r.Categories))
	for _, c := range r.Categories {
		label := c.Category
		if c.Significant {
			label += " *"
		}
		pairs = append(pairs, Pair{Category: label, A: c.FracA, B: c.FracB})
	}
	return Grouped(r.LabelA+" vs. "+r.LabelB, colorA, colorB, pairs)
}
