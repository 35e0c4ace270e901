package main

import (
	"fmt"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/dnm/compare"
	"github.com/grailbio/dnm/figure"
	"github.com/grailbio/dnm/mutation"
	"github.com/grailbio/dnm/spectrum"
	"github.com/grailbio/dnm/stats"
	"v.io/x/lib/cmdline"
)

type compareFlags struct {
	labelA, labelB string
	colorA, colorB string
	includeIndels  bool
	allChromosomes bool
	splitPhase     bool
	fdr            float64
	out            string
}

func newCmdCompare() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "compare",
		Short: "Compare the mutation spectra of two DNM sets",
		Long: `
Compare the mutation-type spectra of two DNM tables: test each mutation class
for differential enrichment (chi-square with Benjamini-Hochberg correction),
print a TSV report, and optionally render a grouped-bar figure of relative
frequencies.

With two table arguments the tables are the two sets. With one table argument
and -split-phase, the phased records of that table are split into a paternal
and a maternal set.
`,
		ArgsName: "A.tsv [B.tsv]",
	}
	flags := compareFlags{}
	cmd.Flags.StringVar(&flags.labelA, "label-a", "", "Name of the first set in the report and figure (default: paternal with -split-phase, else A)")
	cmd.Flags.StringVar(&flags.labelB, "label-b", "", "Name of the second set (default: maternal with -split-phase, else B)")
	cmd.Flags.StringVar(&flags.colorA, "color-a", figure.DefaultColorA, "Hex bar color for the first set")
	cmd.Flags.StringVar(&flags.colorB, "color-b", figure.DefaultColorB, "Hex bar color for the second set")
	cmd.Flags.BoolVar(&flags.includeIndels, "include-indels", spectrum.DefaultOpts.IncludeIndels, "Retain the insertion/deletion class")
	cmd.Flags.BoolVar(&flags.allChromosomes, "all-chromosomes", !spectrum.DefaultOpts.AutosomesOnly, "Retain X-chromosome DNMs")
	cmd.Flags.BoolVar(&flags.splitPhase, "split-phase", false, "Split a single table into paternal and maternal sets")
	cmd.Flags.Float64Var(&flags.fdr, "fdr", stats.DefaultFDR, "Benjamini-Hochberg false-discovery-rate level")
	cmd.Flags.StringVar(&flags.out, "out", "", "Figure name; writes <out>.svg and <out>.png. No figure files when empty")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		return runCompare(env, argv, flags)
	})
	return cmd
}

func runCompare(env *cmdline.Env, argv []string, flags compareFlags) error {
	var setA, setB []mutation.Record
	switch {
	case flags.splitPhase && len(argv) == 1:
		recs, err := mutation.ReadRecords(argv[0])
		if err != nil {
			return err
		}
		setA = spectrum.ByPhase(recs, mutation.PhasePaternal)
		setB = spectrum.ByPhase(recs, mutation.PhaseMaternal)
		if flags.labelA == "" {
			flags.labelA = mutation.PhasePaternal.String()
		}
		if flags.labelB == "" {
			flags.labelB = mutation.PhaseMaternal.String()
		}
	case !flags.splitPhase && len(argv) == 2:
		var err error
		if setA, err = mutation.ReadRecords(argv[0]); err != nil {
			return err
		}
		if setB, err = mutation.ReadRecords(argv[1]); err != nil {
			return err
		}
		if flags.labelA == "" {
			flags.labelA = "A"
		}
		if flags.labelB == "" {
			flags.labelB = "B"
		}
	default:
		return fmt.Errorf("compare takes two tables, or one table with -split-phase, but got %v", argv)
	}

	opts := spectrum.Opts{
		AutosomesOnly: !flags.allChromosomes,
		IncludeIndels: flags.includeIndels,
	}
	result, err := compare.Spectra(spectrum.Count(setA, opts), spectrum.Count(setB, opts), compare.Opts{
		LabelA: flags.labelA,
		LabelB: flags.labelB,
		FDR:    flags.fdr,
	})
	if err != nil {
		return err
	}
	if err := result.WriteReport(env.Stdout); err != nil {
		return err
	}
	if flags.out == "" {
		return nil
	}
	bc, err := figure.FromResult(result, flags.colorA, flags.colorB)
	if err != nil {
		return err
	}
	return figure.Save(bc, flags.out)
}
