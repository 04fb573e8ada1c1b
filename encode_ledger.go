package equitax

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// This file implements the ledger persistence format: JSONL, one entry per
// line, keys in a stable order, monetary values as plain decimals (the
// currency is implied by the field name suffix). Operation and direction
// are persisted as short stable tags and re-parsed through a strict
// mapping, so a ledger written and read back yields entries equal
// field-for-field.

// entryLine mirrors one persisted line. Pointer fields distinguish absent
// from zero, which matters to restore the currency only on fields that
// were actually present.
type entryLine struct {
	Date            Date             `json:"date"`
	Operation       string           `json:"operation"`
	Direction       string           `json:"direction"`
	Quantity        decimal.Decimal  `json:"quantity"`
	UnitPriceEUR    decimal.Decimal  `json:"unitPriceEUR"`
	NetProceedsEUR  *decimal.Decimal `json:"netProceedsEUR"`
	RunningQuantity decimal.Decimal  `json:"runningQuantity"`
	ConversionRate  decimal.Decimal  `json:"conversionRate"`
	AveragePriceBRL *decimal.Decimal `json:"averagePriceBRL"`
	PriceBRL        *decimal.Decimal `json:"priceBRL"`
	ProfitBRL       *decimal.Decimal `json:"profitBRL"`
	TaxBRL          *decimal.Decimal `json:"taxBRL"`
}

// entry rebuilds the Entry from its persisted form, failing loudly on an
// unrecognized operation or direction tag.
func (line entryLine) entry() (Entry, error) {
	op, err := ParseOperation(line.Operation)
	if err != nil {
		return Entry{}, err
	}
	dir, err := ParseDirection(line.Direction)
	if err != nil {
		return Entry{}, err
	}

	e := Entry{
		Date:            line.Date,
		Operation:       op,
		Direction:       dir,
		Quantity:        Q(line.Quantity),
		UnitPriceEUR:    M(line.UnitPriceEUR, "EUR"),
		RunningQuantity: Q(line.RunningQuantity),
		ConversionRate:  line.ConversionRate,
	}
	if line.NetProceedsEUR != nil {
		e.NetProceedsEUR = M(*line.NetProceedsEUR, "EUR")
	}
	if line.AveragePriceBRL != nil {
		e.AveragePrice = M(*line.AveragePriceBRL, "BRL")
	}
	if line.PriceBRL != nil {
		e.PriceBRL = M(*line.PriceBRL, "BRL")
	}
	if line.ProfitBRL != nil {
		e.ProfitBRL = M(*line.ProfitBRL, "BRL")
	}
	if line.TaxBRL != nil {
		e.TaxBRL = M(*line.TaxBRL, "BRL")
	}
	return e, nil
}

// MarshalJSON implements the json.Marshaler interface for Entry with a
// stable key order: raw fields first, computed fields after.
func (e Entry) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("date", e.Date)
	w.Append("operation", string(e.Operation))
	w.Append("direction", string(e.Direction))
	w.Append("quantity", e.Quantity)
	w.Append("unitPriceEUR", e.UnitPriceEUR.Decimal())
	if e.NetProceedsEUR.Currency() != "" {
		w.Append("netProceedsEUR", e.NetProceedsEUR.Decimal())
	}
	w.Optional("runningQuantity", e.RunningQuantity)
	w.Optional("conversionRate", e.ConversionRate)
	if e.AveragePrice.Currency() != "" {
		w.Append("averagePriceBRL", e.AveragePrice.Decimal())
	}
	if e.PriceBRL.Currency() != "" {
		w.Append("priceBRL", e.PriceBRL.Decimal())
	}
	if e.ProfitBRL.Currency() != "" {
		w.Append("profitBRL", e.ProfitBRL.Decimal())
	}
	if e.TaxBRL.Currency() != "" {
		w.Append("taxBRL", e.TaxBRL.Decimal())
	}
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Entry.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var line entryLine
	if err := json.Unmarshal(data, &line); err != nil {
		return err
	}
	decoded, err := line.entry()
	if err != nil {
		return err
	}
	*e = decoded
	return nil
}

// EncodeEntry marshals a single entry to JSON and writes it to the writer,
// followed by a newline, in JSONL format.
func EncodeEntry(w io.Writer, e Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal entry: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write entry: %w", err)
	}
	return nil
}

// EncodeLedger persists the ledger to an io.Writer in JSONL format, in
// chronological order.
func EncodeLedger(w io.Writer, ledger *Ledger) error {
	ledger.stableSort()
	for _, e := range ledger.Entries() {
		if err := EncodeEntry(w, e); err != nil {
			return err
		}
	}
	return nil
}

// DecodeLedger decodes entries from a stream of JSONL data and returns a
// sorted ledger. Empty lines are skipped; an unparseable line or an
// unknown symbolic tag aborts the decode.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	ledger := NewLedger()
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue
		}

		var e Entry
		if err := json.Unmarshal(lineBytes, &e); err != nil {
			return nil, fmt.Errorf("cannot decode ledger line %q: %w", string(lineBytes), err)
		}
		ledger.Append(e)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}
	return ledger, nil
}
