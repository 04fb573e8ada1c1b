package renderer

import (
	"strings"

	"github.com/andrelq/equitax/journal"
)

// RunsMarkdown generates a markdown table of past processing runs.
func RunsMarkdown(runs []journal.Run) string {
	r := &ledgerRenderer{Builder: &strings.Builder{}}

	r.Printf("# Processing Runs\n\n")
	if len(runs) == 0 {
		r.Printf("No runs recorded.\n")
		return r.String()
	}

	r.Printf("| Run | Started | Ledger | Entries | Rate | Profit (BRL) | Tax (BRL) |\n")
	r.Printf("|:---|:---|:---|---:|---:|---:|---:|\n")
	for _, run := range runs {
		r.Printf("| %s | %s | %s | %d | %s | %s | %s |\n",
			run.RunID, run.StartedAt.Format("2006-01-02 15:04"),
			run.LedgerPath, run.EntryCount, run.TaxRate,
			run.TotalProfitBRL, run.TotalTaxBRL)
	}
	return r.String()
}
