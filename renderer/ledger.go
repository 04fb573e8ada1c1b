// Package renderer formats ledgers and journal records as markdown.
package renderer

import (
	"fmt"
	"strings"

	"github.com/andrelq/equitax"
)

// ledgerRenderer formats ledger reports into a markdown string.
type ledgerRenderer struct {
	*strings.Builder
}

// Printf formats according to a format specifier and writes to the renderer's buffer.
func (r *ledgerRenderer) Printf(format string, args ...any) {
	fmt.Fprintf(r, format, args...)
}

// LedgerRenderOptions holds configuration for rendering a ledger report.
type LedgerRenderOptions struct {
	Reverse bool // List the most recent entries first.
}

// LedgerMarkdown generates a markdown report of a ledger: one table row
// per entry, followed by a summary when the ledger has been processed.
func LedgerMarkdown(l *equitax.Ledger, opts LedgerRenderOptions) string {
	r := &ledgerRenderer{Builder: &strings.Builder{}}

	r.Printf("# Ledger\n\n")
	if l.Len() == 0 {
		r.Printf("No entries.\n")
		return r.String()
	}
	r.Printf("%d entries from %s to %s.\n\n", l.Len(), l.OldestEntryDate(), l.NewestEntryDate())

	r.renderEntries(l, opts.Reverse)
	r.renderSummary(l)
	return r.String()
}

func (r *ledgerRenderer) renderEntries(l *equitax.Ledger, reverse bool) {
	entries := make([]equitax.Entry, 0, l.Len())
	for _, e := range l.Entries() {
		entries = append(entries, e)
	}
	if reverse {
		for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
			entries[i], entries[j] = entries[j], entries[i]
		}
	}

	r.Printf("| Date | Operation | Qty | Held | Rate | Avg Cost (BRL) | Profit (BRL) | Tax (BRL) |\n")
	r.Printf("|:---|:---|---:|---:|---:|---:|---:|---:|\n")
	for _, e := range entries {
		r.Printf("| %s | %s | %s | %s | %s | %s | %s | %s |\n",
			e.Date, e.Operation,
			e.Quantity, e.RunningQuantity,
			cell(e.ConversionRate.String()),
			money(e.AveragePrice), money(e.ProfitBRL), money(e.TaxBRL))
	}
	r.Printf("\n")
}

func (r *ledgerRenderer) renderSummary(l *equitax.Ledger) {
	var held equitax.Quantity
	profit, tax := equitax.M(0, "BRL"), equitax.M(0, "BRL")
	sales := 0
	processed := false
	for _, e := range l.Entries() {
		held = e.RunningQuantity
		if !e.ConversionRate.IsZero() {
			processed = true
		}
		if e.ProfitBRL.Currency() != "" {
			sales++
			profit = profit.Add(e.ProfitBRL)
			tax = tax.Add(e.TaxBRL)
		}
	}
	if !processed {
		r.Printf("Ledger has not been processed yet.\n")
		return
	}

	r.Printf("## Summary\n\n")
	r.Printf("| | |\n")
	r.Printf("|:---|---:|\n")
	r.Printf("| Shares held | %s |\n", held)
	r.Printf("| Sales | %d |\n", sales)
	r.Printf("| Realized profit | %s |\n", profit)
	r.Printf("| Tax due | %s |\n", tax)
}

// money renders a Money cell, blank when the value is absent.
func money(m equitax.Money) string {
	if m.Currency() == "" {
		return ""
	}
	return m.String()
}

// cell blanks out zero-valued computed columns.
func cell(s string) string {
	if s == "0" {
		return ""
	}
	return s
}
