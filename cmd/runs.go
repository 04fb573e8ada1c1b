package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/andrelq/equitax/renderer"
	"github.com/google/subcommands"
)

type runsCmd struct{}

func (*runsCmd) Name() string     { return "runs" }
func (*runsCmd) Synopsis() string { return "list past processing runs from the journal" }
func (*runsCmd) Usage() string {
	return `eqt runs

  Lists the processing runs recorded in the configured run journal, most
  recent last.
`
}

func (p *runsCmd) SetFlags(f *flag.FlagSet) {}

func (p *runsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	j, err := openJournal(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if j == nil {
		fmt.Fprintln(os.Stderr, "Error: no run journal configured (set journal.db_path).")
		return subcommands.ExitUsageError
	}
	defer j.Close()

	runs, err := j.ListRuns()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing runs: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.RunsMarkdown(runs))
	return subcommands.ExitSuccess
}
