package compare_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/grailbio/dnm/compare"
	"github.com/grailbio/dnm/spectrum"
	"github.com/grailbio/testutil/expect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpectraIdentical(t *testing.T) {
	s := spectrum.Spectrum{"A>G": 30, "C>T": 50, "T>C": 20}
	r, err := compare.Spectra(s, s, compare.Opts{LabelA: "a", LabelB: "b"})
	require.NoError(t, err)
	expect.EQ(t, r.TotalA, 100)
	expect.EQ(t, r.TotalB, 100)
	require.Len(t, r.Categories, 3)
	for _, c := range r.Categories {
		assert.False(t, c.Untestable, c.Category)
		assert.Equal(t, 1.0, c.P, c.Category)
		assert.False(t, c.Significant, c.Category)
		assert.Equal(t, c.FracA, c.FracB, c.Category)
	}
}

func TestSpectraSharpDifference(t *testing.T) {
	a := spectrum.Spectrum{"T>C": 100, "T>A": 0}
	b := spectrum.Spectrum{"T>C": 0, "T>A": 100}
	r, err := compare.Spectra(a, b, compare.Opts{LabelA: "a", LabelB: "b"})
	require.NoError(t, err)
	require.Len(t, r.Categories, 2)
	// Lexicographic order: T>A before T>C.
	expect.EQ(t, r.Categories[0].Category, "T>A")
	expect.EQ(t, r.Categories[1].Category, "T>C")
	for _, c := range r.Categories {
		assert.Less(t, c.P, 1e-20, c.Category)
		assert.True(t, c.Significant, c.Category)
	}
	assert.Equal(t, 0.0, r.Categories[0].FracA)
	assert.Equal(t, 1.0, r.Categories[0].FracB)
}

func TestSpectraFractions(t *testing.T) {
	a := spectrum.Spectrum{"T>C": 10, "T>A": 5}
	b := spectrum.Spectrum{"T>C": 5, "T>A": 10}
	r, err := compare.Spectra(a, b, compare.Opts{LabelA: "a", LabelB: "b"})
	require.NoError(t, err)
	require.Len(t, r.Categories, 2)
	assert.InDelta(t, 0.333, r.Categories[0].FracA, 0.001) // T>A
	assert.InDelta(t, 0.667, r.Categories[0].FracB, 0.001)
	assert.InDelta(t, 0.667, r.Categories[1].FracA, 0.001) // T>C
	assert.InDelta(t, 0.333, r.Categories[1].FracB, 0.001)

	sumA, sumB := 0.0, 0.0
	for _, c := range r.Categories {
		sumA += c.FracA
		sumB += c.FracB
	}
	assert.InDelta(t, 1.0, sumA, 1e-12)
	assert.InDelta(t, 1.0, sumB, 1e-12)
}

func TestSpectraEmptySet(t *testing.T) {
	a := spectrum.Spectrum{"T>C": 10}
	_, err := compare.Spectra(a, spectrum.Spectrum{}, compare.Opts{LabelA: "a", LabelB: "b"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty set")

	_, err = compare.Spectra(spectrum.Spectrum{}, a, compare.Opts{LabelA: "a", LabelB: "b"})
	require.Error(t, err)
}

func TestSpectraUntestableCategory(t *testing.T) {
	// "indel" is absent from both sets, so its contingency table has a zero
	// column margin: untestable, and excluded from the correction vector.
	a := spectrum.Spectrum{"T>C": 5, "T>A": 5, "indel": 0}
	b := spectrum.Spectrum{"T>C": 5, "T>A": 5, "indel": 0}
	r, err := compare.Spectra(a, b, compare.Opts{LabelA: "a", LabelB: "b"})
	require.NoError(t, err)
	require.Len(t, r.Categories, 3)
	for _, c := range r.Categories {
		if c.Category == "indel" {
			assert.True(t, c.Untestable)
			assert.False(t, c.Significant)
		} else {
			assert.False(t, c.Untestable, c.Category)
			assert.Equal(t, 1.0, c.P, c.Category)
		}
	}
}

func TestSpectraAsymmetricCategories(t *testing.T) {
	// Set A's enumeration is authoritative: a category only in B is skipped.
	a := spectrum.Spectrum{"T>C": 10}
	b := spectrum.Spectrum{"T>C": 10, "A>G": 10}
	r, err := compare.Spectra(a, b, compare.Opts{LabelA: "a", LabelB: "b"})
	require.NoError(t, err)
	require.Len(t, r.Categories, 1)
	expect.EQ(t, r.Categories[0].Category, "T>C")
	expect.EQ(t, r.TotalB, 20)
}

func TestSpectraDefaultFDR(t *testing.T) {
	s := spectrum.Spectrum{"T>C": 10, "T>A": 10}
	r, err := compare.Spectra(s, s, compare.Opts{LabelA: "a", LabelB: "b"})
	require.NoError(t, err)
	assert.Equal(t, 0.05, r.FDR)

	r, err = compare.Spectra(s, s, compare.Opts{LabelA: "a", LabelB: "b", FDR: 0.1})
	require.NoError(t, err)
	assert.Equal(t, 0.1, r.FDR)
}

func TestWriteReport(t *testing.T) {
	a := spectrum.Spectrum{"T>C": 100, "T>A": 0}
	b := spectrum.Spectrum{"T>C": 0, "T>A": 100}
	r, err := compare.Spectra(a, b, compare.Opts{LabelA: "paternal", LabelB: "maternal"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.WriteReport(&buf))
	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// 3 comment lines, header, one line per category of A.
	require.Len(t, lines, 6)
	assert.Contains(t, lines[0], "paternal: 100 DNMs")
	assert.Contains(t, lines[1], "maternal: 100 DNMs")
	assert.Contains(t, lines[3], "category\tcount_paternal\tcount_maternal")
	assert.Contains(t, lines[4], "T>A\t0\t100\t0.0000\t1.0000")
	assert.Contains(t, lines[4], "*")
	assert.Contains(t, lines[5], "T>C\t100\t0\t1.0000\t0.0000")
}

func TestWriteReportUntestable(t *testing.T) {
	a := spectrum.Spectrum{"T>C": 5, "T>A": 5, "indel": 0}
	b := spectrum.Spectrum{"T>C": 5, "T>A": 5, "indel": 0}
	r, err := compare.Spectra(a, b, compare.Opts{LabelA: "a", LabelB: "b"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.WriteReport(&buf))
	assert.Contains(t, buf.String(), "indel\t0\t0\t0.0000\t0.0000\tuntestable")
}
