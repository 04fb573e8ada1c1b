package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/andrelq/equitax"
	"github.com/google/subcommands"
)

type importCmd struct {
	purchasesFile string
	salesFile     string
	outputFile    string
	force         bool
}

func (*importCmd) Name() string { return "import" }
func (*importCmd) Synopsis() string {
	return "assemble a ledger from purchase and sale CSV extracts"
}
func (*importCmd) Usage() string {
	return `eqt import -purchases <csv> [-sales <csv>] [-o <ledger>] [-f]

  Reads broker CSV extracts and assembles them into a single date-ordered
  JSONL ledger. Purchases and sales on the same day are ordered with the
  purchase first. An existing ledger file is never overwritten unless -f
  is given.

Usage Examples:
# Assemble a fresh ledger from both extracts.
$ eqt import -purchases purchases.csv -sales sales.csv -o ledger.jsonl

`
}

func (p *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.purchasesFile, "purchases", "", "CSV file with purchase events.")
	f.StringVar(&p.salesFile, "sales", "", "CSV file with sale events.")
	f.StringVar(&p.outputFile, "o", "", "Output ledger file. Defaults to the configured ledger path.")
	f.BoolVar(&p.force, "f", false, "Overwrite the output file if it exists.")
}

func (p *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.purchasesFile == "" && p.salesFile == "" {
		fmt.Fprintln(os.Stderr, "Error: at least one of -purchases or -sales is required.")
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

	var purchases []equitax.PurchaseRecord
	if p.purchasesFile != "" {
		purchases, err = importPurchasesFile(p.purchasesFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
	}
	var sales []equitax.SaleRecord
	if p.salesFile != "" {
		sales, err = importSalesFile(p.salesFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
	}

	ledger := equitax.Assemble(purchases, sales)
	if err := EncodeLedgerFile(output, ledger, p.force); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Assembled %d entries into %s\n", ledger.Len(), output)
	return subcommands.ExitSuccess
}

func importPurchasesFile(path string) ([]equitax.PurchaseRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening purchases file %q: %w", path, err)
	}
	defer f.Close()
	records, err := equitax.ImportPurchases(f)
	if err != nil {
		return nil, fmt.Errorf("reading purchases file %q: %w", path, err)
	}
	return records, nil
}

func importSalesFile(path string) ([]equitax.SaleRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening sales file %q: %w", path, err)
	}
	defer f.Close()
	records, err := equitax.ImportSales(f)
	if err != nil {
		return nil, fmt.Errorf("reading sales file %q: %w", path, err)
	}
	return records, nil
}
