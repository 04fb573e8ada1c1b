package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/andrelq/equitax"
	"github.com/andrelq/equitax/renderer"
	"github.com/google/subcommands"
)

type txCmd struct {
	ledgerFile string
	start      string
	end        string
	head       int
	tail       int
	reverse    bool
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list the entries in the ledger" }
func (*txCmd) Usage() string {
	return `eqt tx [-s <start_date>] [-d <end_date>] [-head <n>] [-tail <n>] [-r] [-l <ledger>]

  Lists ledger entries as a markdown report, with options for filtering
  by date and limiting the output.
`
}

func (p *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.start, "s", "", "Only show entries on or after this date.")
	f.StringVar(&p.end, "d", "", "Only show entries on or before this date.")
	f.IntVar(&p.head, "head", 0, "Show only the first N entries.")
	f.IntVar(&p.tail, "tail", 0, "Show only the last N entries.")
	f.StringVar(&p.ledgerFile, "l", "", "Ledger to report on. Defaults to the configured ledger path.")
	f.BoolVar(&p.reverse, "r", false, "List the most recent entries first.")
}

func (p *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.head > 0 && p.tail > 0 {
		fmt.Fprintln(os.Stderr, "Error: -head and -tail flags cannot be used together.")
		return subcommands.ExitUsageError
	}

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

	var start, end equitax.Date
	if p.start != "" {
		if start, err = equitax.ParseDate(p.start); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing start date: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	if p.end != "" {
		if end, err = equitax.ParseDate(p.end); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing end date: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	var entries []equitax.Entry
	for _, e := range ledger.Entries() {
		if !start.IsZero() && e.Date.Before(start) {
			continue
		}
		if !end.IsZero() && e.Date.After(end) {
			continue
		}
		entries = append(entries, e)
	}

	if p.head > 0 && len(entries) > p.head {
		entries = entries[:p.head]
	}
	if p.tail > 0 && len(entries) > p.tail {
		entries = entries[len(entries)-p.tail:]
	}

	printMarkdown(renderer.LedgerMarkdown(equitax.NewLedger(entries...), renderer.LedgerRenderOptions{Reverse: p.reverse}))
	return subcommands.ExitSuccess
}
