package mutation

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/vcontext"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

// Column aliases accepted in table headers, lowercased. The upstream
// pipeline has produced several header vintages; all of them are matched
// here so callers never need to rename columns.
var (
	chromAliases    = []string{"chrom", "chr", "chromosome"}
	mutTypeAliases  = []string{"mut", "mut_type", "mutation_type", "type"}
	phaseAliases    = []string{"phase", "phase_combined", "parent", "origin"}
	dadAgeAliases   = []string{"dad_age", "paternal_age", "fathers_age"}
	momAgeAliases   = []string{"mom_age", "maternal_age", "mothers_age"}
	idAliases       = []string{"sample", "sample_id", "individual", "id"}
	paternalAliases = []string{"paternal", "paternal_dnms", "dad_dnms"}
	maternalAliases = []string{"maternal", "maternal_dnms", "mom_dnms"}
	totalAliases    = []string{"total", "total_dnms", "n_dnms"}
)

// header maps lowercased column names to field indices for one table.
type header struct {
	cols  []string
	index map[string]int
	sep   string
}

func newHeader(line string) header {
	sep := "\t"
	if !strings.Contains(line, "\t") && strings.Contains(line, ",") {
		sep = ","
	}
	cols := strings.Split(line, sep)
	h := header{cols: cols, index: make(map[string]int, len(cols)), sep: sep}
	for i, c := range cols {
		h.index[strings.ToLower(strings.TrimSpace(c))] = i
	}
	return h
}

// find returns the index of the first alias present in the header, or -1.
func (h header) find(aliases []string) int {
	for _, a := range aliases {
		if i, ok := h.index[a]; ok {
			return i
		}
	}
	return -1
}

func (h header) require(what string, aliases []string) (int, error) {
	if i := h.find(aliases); i >= 0 {
		return i, nil
	}
	return -1, errors.Errorf("missing required column %q (accepted names: %s)",
		what, strings.Join(aliases, ", "))
}

// ReadRecords loads a DNM table. The table must be tab- or comma-delimited
// with a header row naming at least the chromosome and mutation-type
// columns; phase and parental-age columns are optional. Paths ending in .gz
// are decompressed transparently, and any path scheme supported by
// grailbio/base/file (e.g. s3://) is accepted.
func ReadRecords(path string) ([]Record, error) {
	var (
		recs                                   []Record
		chromIdx, mutIdx, phaseIdx, dadI, momI int
	)
	err := scanTable(path,
		func(h header) (err error) {
			if chromIdx, err = h.require("chromosome", chromAliases); err != nil {
				return err
			}
			if mutIdx, err = h.require("mutation type", mutTypeAliases); err != nil {
				return err
			}
			phaseIdx = h.find(phaseAliases)
			dadI = h.find(dadAgeAliases)
			momI = h.find(momAgeAliases)
			return nil
		},
		func(lineIdx int, fields []string) (err error) {
			rec := Record{
				Chrom:      strings.TrimSpace(fields[chromIdx]),
				MutType:    strings.TrimSpace(fields[mutIdx]),
				FathersAge: math.NaN(),
				MothersAge: math.NaN(),
			}
			if rec.Chrom == "" || rec.MutType == "" {
				return errors.Errorf("line %d: empty chromosome or mutation type", lineIdx)
			}
			if phaseIdx >= 0 {
				rec.Phase = ParsePhase(fields[phaseIdx])
			}
			if dadI >= 0 {
				if rec.FathersAge, err = ageField(fields[dadI], lineIdx); err != nil {
					return err
				}
			}
			if momI >= 0 {
				if rec.MothersAge, err = ageField(fields[momI], lineIdx); err != nil {
					return err
				}
			}
			recs = append(recs, rec)
			return nil
		})
	if err != nil {
		return nil, errors.Wrapf(err, "reading DNM table %s", path)
	}
	return recs, nil
}

func ageField(s string, lineIdx int) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "." || s == "NA" {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Errorf("line %d: bad age value %q", lineIdx, s)
	}
	return v, nil
}

// ReadIndividualCounts loads a per-individual DNM summary table with sample
// ID, paternal, maternal, and (optionally) total DNM count columns. When the
// total column is absent it is computed as paternal+maternal.
func ReadIndividualCounts(path string) ([]IndividualCounts, error) {
	var (
		rows                          []IndividualCounts
		idIdx, patIdx, matIdx, totIdx int
	)
	err := scanTable(path,
		func(h header) (err error) {
			if idIdx, err = h.require("sample ID", idAliases); err != nil {
				return err
			}
			if patIdx, err = h.require("paternal count", paternalAliases); err != nil {
				return err
			}
			if matIdx, err = h.require("maternal count", maternalAliases); err != nil {
				return err
			}
			totIdx = h.find(totalAliases)
			return nil
		},
		func(lineIdx int, fields []string) (err error) {
			row := IndividualCounts{ID: strings.TrimSpace(fields[idIdx])}
			if row.Paternal, err = countField(fields[patIdx], lineIdx); err != nil {
				return err
			}
			if row.Maternal, err = countField(fields[matIdx], lineIdx); err != nil {
				return err
			}
			if totIdx >= 0 {
				if row.Total, err = countField(fields[totIdx], lineIdx); err != nil {
					return err
				}
			} else {
				row.Total = row.Paternal + row.Maternal
			}
			rows = append(rows, row)
			return nil
		})
	if err != nil {
		return nil, errors.Wrapf(err, "reading summary table %s", path)
	}
	return rows, nil
}

func countField(s string, lineIdx int) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.Errorf("line %d: bad count %q", lineIdx, s)
	}
	if v < 0 {
		return 0, errors.Errorf("line %d: negative count %d", lineIdx, v)
	}
	return v, nil
}

// scanTable opens path (decompressing .gz), parses the header line, hands it
// to prepare for column resolution, then invokes row for each subsequent
// nonempty line with its split fields. Lines with fewer fields than the
// header are rejected.
func scanTable(path string, prepare func(h header) error, row func(lineIdx int, fields []string) error) (err error) {
	ctx := vcontext.Background()
	var in file.File
	if in, err = file.Open(ctx, path); err != nil {
		return err
	}
	defer file.CloseAndReport(ctx, in, &err)
	reader := io.Reader(in.Reader(ctx))
	if fileio.DetermineType(path) == fileio.Gzip {
		if reader, err = gzip.NewReader(reader); err != nil {
			return err
		}
	}
	scanner := bufio.NewScanner(reader)
	if !scanner.Scan() {
		if err = scanner.Err(); err != nil {
			return err
		}
		return errors.New("empty table: no header line")
	}
	h := newHeader(strings.TrimRight(scanner.Text(), "\r\n"))
	if err = prepare(h); err != nil {
		return err
	}
	for lineIdx := 2; scanner.Scan(); lineIdx++ {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}
		fields := strings.Split(line, h.sep)
		if len(fields) < len(h.cols) {
			return errors.Errorf("line %d: %d fields, header has %d", lineIdx, len(fields), len(h.cols))
		}
		if err = row(lineIdx, fields); err != nil {
			return err
		}
	}
	return scanner.Err()
}
