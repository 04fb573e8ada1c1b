package equitax

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Operation is a typed string identifying the kind of a ledger entry.
type Operation string

const (
	// Purchase is a grant purchase: shares acquired at a euro price.
	Purchase Operation = "purchase"
	// Sale is a disposal of shares with euro net proceeds.
	Sale Operation = "sale"
)

// ParseOperation parses the persisted form of an Operation. Unknown values
// are a hard error: ledger files with unrecognized tags must not be
// silently reinterpreted.
func ParseOperation(s string) (Operation, error) {
	switch Operation(s) {
	case Purchase:
		return Purchase, nil
	case Sale:
		return Sale, nil
	default:
		return "", fmt.Errorf("unknown operation: %q", s)
	}
}

// rank orders same-day entries: purchases are applied before sales.
func (o Operation) rank() int {
	if o == Purchase {
		return 0
	}
	return 1
}

// Direction selects which of the two daily PTAX quotes applies to an
// entry. The buy quote is used when converting euro costs into reais
// (purchases), the sell quote when converting euro proceeds (sales).
type Direction string

const (
	EURToBRL Direction = "EURBRL"
	BRLToEUR Direction = "BRLEUR"
)

// ParseDirection parses the persisted form of a Direction.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case EURToBRL:
		return EURToBRL, nil
	case BRLToEUR:
		return BRLToEUR, nil
	default:
		return "", fmt.Errorf("unknown conversion direction: %q", s)
	}
}

// Entry is one economic event in the ledger: a purchase or a sale, plus
// the fields filled in by the processor.
//
// Raw fields (Date, Operation, Quantity, UnitPriceEUR, NetProceedsEUR) are
// set when the entry is assembled and never change afterwards. Computed
// fields are empty until a processing pass populates them.
type Entry struct {
	Date      Date
	Operation Operation
	Direction Direction

	Quantity     Quantity // shares in this event, positive
	UnitPriceEUR Money    // price per share in EUR at the event

	// NetProceedsEUR is the total sale proceeds after fees. Present only
	// on sales; a zero-value Money (no currency) means absent.
	NetProceedsEUR Money

	// Computed by the processor.
	RunningQuantity Quantity        // holdings immediately after this event
	ConversionRate  decimal.Decimal // PTAX quote applied to this event
	AveragePrice    Money           // BRL average cost basis per share as of this event
	PriceBRL        Money           // on purchase: the whole lot's BRL cost; on sale: per-share BRL price
	ProfitBRL       Money           // sale only: realized gain or loss in BRL
	TaxBRL          Money           // sale only: tax owed on ProfitBRL (negative on a loss)
}

// NewPurchase creates an unprocessed purchase entry.
func NewPurchase(day Date, priceEUR Money, qty Quantity) Entry {
	return Entry{
		Date:         day,
		Operation:    Purchase,
		Direction:    EURToBRL,
		Quantity:     qty,
		UnitPriceEUR: priceEUR,
	}
}

// NewSale creates an unprocessed sale entry.
func NewSale(day Date, executionPriceEUR Money, qty Quantity, netProceedsEUR Money) Entry {
	return Entry{
		Date:           day,
		Operation:      Sale,
		Direction:      BRLToEUR,
		Quantity:       qty,
		UnitPriceEUR:   executionPriceEUR,
		NetProceedsEUR: netProceedsEUR,
	}
}

// Equal reports whether two entries are identical field-for-field.
func (e Entry) Equal(o Entry) bool {
	return e.Date == o.Date &&
		e.Operation == o.Operation &&
		e.Direction == o.Direction &&
		e.Quantity.Equal(o.Quantity) &&
		e.UnitPriceEUR.Equal(o.UnitPriceEUR) &&
		e.NetProceedsEUR.Equal(o.NetProceedsEUR) &&
		e.RunningQuantity.Equal(o.RunningQuantity) &&
		e.ConversionRate.Equal(o.ConversionRate) &&
		e.AveragePrice.Equal(o.AveragePrice) &&
		e.PriceBRL.Equal(o.PriceBRL) &&
		e.ProfitBRL.Equal(o.ProfitBRL) &&
		e.TaxBRL.Equal(o.TaxBRL)
}

// before implements the ledger ordering: by date, purchases before sales
// on equal dates.
func (e Entry) before(o Entry) bool {
	if e.Date != o.Date {
		return e.Date.Before(o.Date)
	}
	return e.Operation.rank() < o.Operation.rank()
}
