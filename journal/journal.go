// Package journal keeps an audit trail of processing runs in a local
// database, so past tax computations can be listed and compared after
// ledgers have been archived or reprocessed.
package journal

import (
	"time"

	"github.com/andrelq/equitax"
)

// Run records one invocation of the processor over a ledger.
type Run struct {
	RunID          string
	StartedAt      time.Time
	LedgerPath     string
	TaxRate        string
	EntryCount     int
	TotalProfitBRL string
	TotalTaxBRL    string
}

// Result records the computed outcome of a single ledger entry within a run.
// Decimal values are stored as strings to keep them exact.
type Result struct {
	RunID           string
	Seq             int
	Date            string
	Operation       string
	Quantity        string
	RunningQuantity string
	ConversionRate  string
	ProfitBRL       string
	TaxBRL          string
}

type Journal interface {
	RecordRun(Run) error
	RecordResult(Result) error
	ListRuns() ([]Run, error)
	ListResultsByRun(runID string) ([]Result, error)
	Close() error
}

// NewRun builds the Run row for a processed ledger.
func NewRun(ledgerPath string, taxRate string, l *equitax.Ledger) Run {
	r := Run{
		RunID:      NewID(),
		StartedAt:  time.Now().UTC(),
		LedgerPath: ledgerPath,
		TaxRate:    taxRate,
		EntryCount: l.Len(),
	}
	profit, tax := equitax.M(0, "BRL"), equitax.M(0, "BRL")
	for _, e := range l.Entries() {
		if e.ProfitBRL.Currency() != "" {
			profit = profit.Add(e.ProfitBRL)
			tax = tax.Add(e.TaxBRL)
		}
	}
	r.TotalProfitBRL = profit.Decimal().String()
	r.TotalTaxBRL = tax.Decimal().String()
	return r
}

// ResultsFrom flattens a processed ledger into per-entry Result rows.
func ResultsFrom(runID string, l *equitax.Ledger) []Result {
	results := make([]Result, 0, l.Len())
	for i, e := range l.Entries() {
		res := Result{
			RunID:           runID,
			Seq:             i,
			Date:            e.Date.String(),
			Operation:       string(e.Operation),
			Quantity:        e.Quantity.String(),
			RunningQuantity: e.RunningQuantity.String(),
			ConversionRate:  e.ConversionRate.String(),
		}
		if e.ProfitBRL.Currency() != "" {
			res.ProfitBRL = e.ProfitBRL.Decimal().String()
			res.TaxBRL = e.TaxBRL.Decimal().String()
		}
		results = append(results, res)
	}
	return results
}
