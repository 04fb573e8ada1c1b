package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/andrelq/equitax"
	"github.com/andrelq/equitax/bcb"
	"github.com/andrelq/equitax/journal"
	"github.com/andrelq/equitax/renderer"
	"github.com/google/subcommands"
)

type processCmd struct {
	ledgerFile string
	outputFile string
	print      bool
	reverse    bool
	archive    bool
	force      bool
}

func (*processCmd) Name() string { return "process" }
func (*processCmd) Synopsis() string {
	return "compute cost basis, profit and tax for every ledger entry"
}
func (*processCmd) Usage() string {
	return `eqt process [-l <ledger>] [-o <output>] [-archive] [-p] [-r] [-f]

  Runs the full tax computation over the ledger: each entry gets its
  conversion rate, running quantity, average cost basis in BRL and, on
  sales, the realized profit and the tax due. Rates are resolved from the
  central bank's closing quotes, falling back to the most recent prior
  business day.

  Without -o the result replaces the input ledger; -archive keeps a dated
  copy of the previous file first. When a run journal is configured the
  run and its per-entry results are recorded.

Usage Examples:
# Process in place, archiving the previous ledger, and show the report.
$ eqt process -archive -p -f

`
}

func (p *processCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.ledgerFile, "l", "", "Ledger to process. Defaults to the configured ledger path.")
	f.StringVar(&p.outputFile, "o", "", "Output file. Defaults to the input ledger (in place).")
	f.BoolVar(&p.print, "p", false, "Print the processed ledger as a markdown report.")
	f.BoolVar(&p.reverse, "r", false, "With -p, list the most recent entries first.")
	f.BoolVar(&p.archive, "archive", false, "Archive the previous ledger file before writing.")
	f.BoolVar(&p.force, "f", false, "Overwrite the output file if it exists.")
}

func (p *processCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	input := p.ledgerFile
	if input == "" {
		input = cfg.Ledger.Path
	}
	output := p.outputFile
	if output == "" {
		output = input
	}

	ledger, err := DecodeLedgerFile(input)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	source := bcb.NewSource(cfg.Rates.Currency)
	source.BaseURL = cfg.Rates.BaseURL
	resolver := equitax.NewRateResolver(source)
	resolver.SetMaxFallback(cfg.Rates.MaxFallbackDays)

	processor := equitax.NewProcessor(resolver)
	processor.TaxRate = cfg.TaxRate()

	processed, err := processor.Process(ledger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error processing ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	if p.archive && output == input {
		if err := archiveLedger(input, cfg.Ledger.ArchiveDir); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
	}
	// Writing in place replaces the file that was just read.
	force := p.force || output == input
	if err := EncodeLedgerFile(output, processed, force); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Processed %d entries into %s\n", processed.Len(), output)

	j, err := openJournal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run journal: %v\n", err)
	} else if j != nil {
		defer j.Close()
		if err := recordRun(j, output, cfg.Tax.Rate, processed); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not record run: %v\n", err)
		}
	}

	if p.print {
		printMarkdown(renderer.LedgerMarkdown(processed, renderer.LedgerRenderOptions{Reverse: p.reverse}))
	}
	return subcommands.ExitSuccess
}

// recordRun appends the run and its per-entry results to the journal.
func recordRun(j journal.Journal, path, taxRate string, l *equitax.Ledger) error {
	run := journal.NewRun(path, taxRate, l)
	if err := j.RecordRun(run); err != nil {
		return err
	}
	for _, res := range journal.ResultsFrom(run.RunID, l) {
		if err := j.RecordResult(res); err != nil {
			return err
		}
	}
	return nil
}
