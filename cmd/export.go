package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/andrelq/equitax"
	"github.com/google/subcommands"
)

type exportCmd struct {
	ledgerFile string
	outputFile string
}

func (*exportCmd) Name() string { return "export" }
func (*exportCmd) Synopsis() string {
	return "export a processed ledger as a CSV report"
}
func (*exportCmd) Usage() string {
	return `eqt export [-l <ledger>] [-o <csv>]

  Writes the ledger as a CSV report with one row per entry, suitable for
  a spreadsheet or the tax declaration. Defaults to stdout.
`
}

func (p *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.ledgerFile, "l", "", "Ledger to export. Defaults to the configured ledger path.")
	f.StringVar(&p.outputFile, "o", "", "Output CSV file. Defaults to stdout.")
}

func (p *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	input := p.ledgerFile
	if input == "" {
		input = cfg.Ledger.Path
	}

	ledger, err := DecodeLedgerFile(input)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	out := os.Stdout
	if p.outputFile != "" {
		out, err = os.Create(p.outputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output file %q: %v\n", p.outputFile, err)
			return subcommands.ExitFailure
		}
		defer out.Close()
	}

	if err := equitax.ExportCSV(out, ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
