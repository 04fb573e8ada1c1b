package equitax

// This file defines the data contracts the external extractors (document
// parsing, spreadsheet reading) must satisfy, and the assembler that turns
// their output into a ledger.

// PurchaseRecord is one grant purchase as reported by the plan statement.
type PurchaseRecord struct {
	Date     Date
	PriceEUR Money // cost basis per share when purchased
	Quantity Quantity
}

// SaleRecord is one executed sale as reported by the transaction history.
type SaleRecord struct {
	Date              Date
	ExecutionPriceEUR Money // price per share at execution
	Quantity          Quantity
	NetProceedsEUR    Money // total proceeds after fees
}

// Assemble builds one unprocessed entry per source record and returns them
// as a single ledger ordered by date, purchases before sales on equal
// dates. It is a pure function: no deduplication, no I/O, no validation of
// the economics (that is the processor's job).
func Assemble(purchases []PurchaseRecord, sales []SaleRecord) *Ledger {
	entries := make([]Entry, 0, len(purchases)+len(sales))
	for _, p := range purchases {
		entries = append(entries, NewPurchase(p.Date, p.PriceEUR, p.Quantity))
	}
	for _, s := range sales {
		entries = append(entries, NewSale(s.Date, s.ExecutionPriceEUR, s.Quantity, s.NetProceedsEUR))
	}
	return NewLedger(entries...)
}
