package main

import (
	"fmt"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/dnm/figure"
	"github.com/grailbio/dnm/mutation"
	"v.io/x/lib/cmdline"
)

type countsFlags struct {
	colorA, colorB string
	out            string
}

func newCmdCounts() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "counts",
		Short: "Report per-individual paternal/maternal DNM counts",
		Long: `
Read a per-individual DNM summary table and print a TSV report with each
individual's paternal, maternal, and total DNM counts plus the paternal and
maternal shares of phased DNMs. With -out, also render a grouped-bar figure
of the phased shares.
`,
		ArgsName: "table.tsv",
	}
	flags := countsFlags{}
	cmd.Flags.StringVar(&flags.colorA, "color-paternal", figure.DefaultColorA, "Hex bar color for paternal bars")
	cmd.Flags.StringVar(&flags.colorB, "color-maternal", figure.DefaultColorB, "Hex bar color for maternal bars")
	cmd.Flags.StringVar(&flags.out, "out", "", "Figure name; writes <out>.svg and <out>.png. No figure files when empty")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return fmt.Errorf("counts takes one summary-table argument, but got %v", argv)
		}
		return runCounts(env, argv[0], flags)
	})
	return cmd
}

func runCounts(env *cmdline.Env, path string, flags countsFlags) error {
	rows, err := mutation.ReadIndividualCounts(path)
	if err != nil {
		return err
	}
	tw := tsv.NewWriter(env.Stdout)
	tw.WriteString("sample\tpaternal\tmaternal\ttotal\tfrac_paternal\tfrac_maternal")
	if err := tw.EndLine(); err != nil {
		return err
	}
	var pairs []figure.Pair
	for _, row := range rows {
		tw.WriteString(row.ID)
		tw.WriteInt64(int64(row.Paternal))
		tw.WriteInt64(int64(row.Maternal))
		tw.WriteInt64(int64(row.Total))
		phased := row.Paternal + row.Maternal
		if phased == 0 {
			log.Error.Printf("sample %s: no phased DNMs; shares omitted", row.ID)
			tw.WriteString(".")
			tw.WriteString(".")
		} else {
			fracPat := float64(row.Paternal) / float64(phased)
			tw.WriteFloat64(fracPat, 'f', 4)
			tw.WriteFloat64(1-fracPat, 'f', 4)
			pairs = append(pairs, figure.Pair{Category: row.ID, A: fracPat, B: 1 - fracPat})
		}
		if err := tw.EndLine(); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if flags.out == "" {
		return nil
	}
	bc, err := figure.Grouped("Phased DNM share by parent of origin", flags.colorA, flags.colorB, pairs)
	if err != nil {
		return err
	}
	return figure.Save(bc, flags.out)
}
