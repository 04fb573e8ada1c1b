package equitax

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

// This file contains functions to handle the import/export formats.
//
// Source records come in as CSV, one file per source: the purchase
// statement and the sale history. These files are the reduced data
// contract of the upstream extractors; how the columns were pulled out of
// a PDF or a spreadsheet is not this tool's concern. Processed ledgers can
// be exported back to CSV for use in a spreadsheet.

var (
	purchaseHeader = []string{"date", "unit_price_eur", "quantity"}
	saleHeader     = []string{"date", "execution_price_eur", "quantity", "net_proceeds_eur"}
	exportHeader   = []string{
		"date", "operation", "quantity", "running_quantity",
		"conversion_rate", "conversion_direction", "average_cost_basis",
		"unit_price_foreign", "unit_price_local", "net_proceeds_foreign",
		"realized_profit_local", "tax_due_local",
	}
)

// readRecords reads and checks the header, then returns the data rows.
func readRecords(r io.Reader, header []string) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("missing header row, want %v", header)
	}
	got := rows[0]
	if len(got) != len(header) {
		return nil, fmt.Errorf("invalid header %v, want %v", got, header)
	}
	for i, name := range header {
		if got[i] != name {
			return nil, fmt.Errorf("invalid header column %q, want %q", got[i], name)
		}
	}
	return rows[1:], nil
}

// ImportPurchases reads purchase source records from 'r' in CSV format
// with columns "date,unit_price_eur,quantity".
func ImportPurchases(r io.Reader) ([]PurchaseRecord, error) {
	rows, err := readRecords(r, purchaseHeader)
	if err != nil {
		return nil, fmt.Errorf("cannot read purchase records: %w", err)
	}

	records := make([]PurchaseRecord, 0, len(rows))
	for i, row := range rows {
		day, err := ParseDate(row[0])
		if err != nil {
			return nil, fmt.Errorf("purchase row %d: %w", i+1, err)
		}
		price, err := decimal.NewFromString(row[1])
		if err != nil {
			return nil, fmt.Errorf("purchase row %d: invalid unit price %q: %w", i+1, row[1], err)
		}
		qty, err := decimal.NewFromString(row[2])
		if err != nil {
			return nil, fmt.Errorf("purchase row %d: invalid quantity %q: %w", i+1, row[2], err)
		}
		records = append(records, PurchaseRecord{Date: day, PriceEUR: M(price, "EUR"), Quantity: Q(qty)})
	}
	return records, nil
}

// ImportSales reads sale source records from 'r' in CSV format with
// columns "date,execution_price_eur,quantity,net_proceeds_eur".
func ImportSales(r io.Reader) ([]SaleRecord, error) {
	rows, err := readRecords(r, saleHeader)
	if err != nil {
		return nil, fmt.Errorf("cannot read sale records: %w", err)
	}

	records := make([]SaleRecord, 0, len(rows))
	for i, row := range rows {
		day, err := ParseDate(row[0])
		if err != nil {
			return nil, fmt.Errorf("sale row %d: %w", i+1, err)
		}
		price, err := decimal.NewFromString(row[1])
		if err != nil {
			return nil, fmt.Errorf("sale row %d: invalid execution price %q: %w", i+1, row[1], err)
		}
		qty, err := decimal.NewFromString(row[2])
		if err != nil {
			return nil, fmt.Errorf("sale row %d: invalid quantity %q: %w", i+1, row[2], err)
		}
		proceeds, err := decimal.NewFromString(row[3])
		if err != nil {
			return nil, fmt.Errorf("sale row %d: invalid net proceeds %q: %w", i+1, row[3], err)
		}
		records = append(records, SaleRecord{
			Date:              day,
			ExecutionPriceEUR: M(price, "EUR"),
			Quantity:          Q(qty),
			NetProceedsEUR:    M(proceeds, "EUR"),
		})
	}
	return records, nil
}

// ExportCSV writes the ledger to 'w' as CSV, one row per entry, with the
// canonical column names. Absent optional fields are written empty.
func ExportCSV(w io.Writer, l *Ledger) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}

	// money cells keep full decimal precision; absent ones stay empty.
	cell := func(m Money) string {
		if m.Currency() == "" {
			return ""
		}
		return m.Decimal().String()
	}

	for _, e := range l.Entries() {
		row := []string{
			e.Date.String(),
			string(e.Operation),
			e.Quantity.String(),
			e.RunningQuantity.String(),
			e.ConversionRate.String(),
			string(e.Direction),
			cell(e.AveragePrice),
			cell(e.UnitPriceEUR),
			cell(e.PriceBRL),
			cell(e.NetProceedsEUR),
			cell(e.ProfitBRL),
			cell(e.TaxBRL),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
