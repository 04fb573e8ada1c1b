package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/andrelq/equitax"
	"github.com/google/subcommands"
)

type mergeCmd struct {
	outputFile string
	force      bool
}

func (*mergeCmd) Name() string { return "merge" }
func (*mergeCmd) Synopsis() string {
	return "merge several ledger files into one date-ordered ledger"
}
func (*mergeCmd) Usage() string {
	return `eqt merge [-o <ledger>] [-f] <ledger>...

  Merges the given JSONL ledger files into a single date-ordered ledger.
  The input file order does not matter: entries are reordered by date,
  purchases before sales on equal dates.

`
}

func (p *mergeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.outputFile, "o", "", "Output ledger file. Defaults to the configured ledger path.")
	f.BoolVar(&p.force, "f", false, "Overwrite the output file if it exists.")
}

func (p *mergeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one input ledger is required.")
		return subcommands.ExitUsageError
	}

	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	output := p.outputFile
	if output == "" {
		output = cfg.Ledger.Path
	}

	merged := equitax.NewLedger()
	for _, path := range f.Args() {
		l, err := DecodeLedgerFile(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		merged.Merge(l)
	}

	if err := EncodeLedgerFile(output, merged, p.force); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Merged %d files, %d entries, into %s\n", f.NArg(), merged.Len(), output)
	return subcommands.ExitSuccess
}
