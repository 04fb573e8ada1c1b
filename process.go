package equitax

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultTaxRate is the flat rate applied to the realized profit of each
// sale. It is applied to losses too, producing a negative tax that reads
// as a credit; the intent of the historical data this tool reconciles is
// ambiguous, so the literal formula is preserved instead of clamping at
// zero.
var DefaultTaxRate = decimal.RequireFromString("0.15")

// totals is the aggregate state carried through a processing pass.
type totals struct {
	quantity Quantity // total shares held
	costBRL  Money    // accumulated BRL cost of current holdings
	avgPrice Money    // costBRL / quantity, BRL per share
}

// zeroTotals seeds a pass. Every pass starts from scratch: the processor
// keeps no state between runs, so re-processing a ledger from its raw
// fields always reproduces the same computed fields.
func zeroTotals() totals {
	return totals{
		quantity: Q(0),
		costBRL:  M(0, "BRL"),
		avgPrice: M(0, "BRL"),
	}
}

// Processor fills the computed fields of ledger entries in one sequential
// forward pass. Each step depends on the aggregates left by all prior
// steps, a genuine sequential dependency chain, so there is nothing to
// parallelize.
type Processor struct {
	resolver *RateResolver

	// TaxRate is the flat rate applied to realized profit. Defaults to
	// [DefaultTaxRate].
	TaxRate decimal.Decimal
}

// NewProcessor creates a processor using the given rate resolver.
func NewProcessor(resolver *RateResolver) *Processor {
	return &Processor{resolver: resolver, TaxRate: DefaultTaxRate}
}

// Process runs a full pass over the ledger and returns a new ledger whose
// entries carry the computed fields. The input ledger is not modified, and
// entries are neither removed nor reordered. If any entry fails, the whole
// pass is abandoned: there is no partial output.
func (p *Processor) Process(l *Ledger) (*Ledger, error) {
	state := zeroTotals()
	processed := make([]Entry, 0, l.Len())

	for i, e := range l.Entries() {
		var err error
		switch e.Operation {
		case Purchase:
			e, state, err = p.applyPurchase(state, e)
		case Sale:
			e, state, err = p.applySale(state, e)
		default:
			err = fmt.Errorf("unsupported operation: %q", e.Operation)
		}
		if err != nil {
			return nil, fmt.Errorf("entry %d on %s: %w", i, e.Date, err)
		}
		processed = append(processed, e)
	}
	return &Ledger{entries: processed}, nil
}

// applyPurchase applies a purchase to the aggregates and returns the
// populated entry and the next state.
//
// The whole lot's BRL cost (price per share x quantity x rate) is added to
// the accumulated cost and recorded on the entry as PriceBRL, and the
// average cost basis is recomputed over the new holdings.
func (p *Processor) applyPurchase(t totals, e Entry) (Entry, totals, error) {
	if !e.Quantity.IsPositive() {
		return e, t, fmt.Errorf("purchase quantity must be positive, got %s", e.Quantity)
	}
	if e.UnitPriceEUR.Currency() == "" {
		return e, t, fmt.Errorf("purchase is missing its EUR unit price")
	}

	rate, err := p.resolver.Resolve(e.Date, EURToBRL)
	if err != nil {
		return e, t, err
	}

	lotBRL := e.UnitPriceEUR.Mul(e.Quantity).Convert(rate, "BRL")
	t.quantity = t.quantity.Add(e.Quantity)
	t.costBRL = t.costBRL.Add(lotBRL)
	if t.quantity.IsZero() {
		// A purchase recovering an oversold position can land holdings on
		// exactly zero; the average price is zero while nothing is held.
		t.avgPrice = M(0, "BRL")
	} else {
		t.avgPrice = t.costBRL.Div(t.quantity)
	}

	e.ConversionRate = rate
	e.RunningQuantity = t.quantity
	e.PriceBRL = lotBRL
	e.AveragePrice = t.avgPrice
	return e, t, nil
}

// applySale applies a sale to the aggregates and returns the populated
// entry and the next state.
//
// The sold shares leave the holdings at the pre-sale average price, which
// is carried onto the entry unchanged; it is only recomputed by the next
// purchase. Selling more than is held is allowed and drives the running
// quantity negative.
func (p *Processor) applySale(t totals, e Entry) (Entry, totals, error) {
	if !e.Quantity.IsPositive() {
		return e, t, fmt.Errorf("sale quantity must be positive, got %s", e.Quantity)
	}
	if e.NetProceedsEUR.Currency() == "" {
		return e, t, fmt.Errorf("sale is missing its net proceeds")
	}

	rate, err := p.resolver.Resolve(e.Date, BRLToEUR)
	if err != nil {
		return e, t, err
	}

	costOfSold := t.avgPrice.Mul(e.Quantity)
	t.quantity = t.quantity.Sub(e.Quantity)
	t.costBRL = t.costBRL.Sub(costOfSold)

	profit := e.NetProceedsEUR.Convert(rate, "BRL").Sub(costOfSold)

	e.ConversionRate = rate
	e.RunningQuantity = t.quantity
	e.AveragePrice = t.avgPrice
	e.PriceBRL = e.UnitPriceEUR.Convert(rate, "BRL")
	e.ProfitBRL = profit
	e.TaxBRL = profit.Scale(p.TaxRate)
	return e, t, nil
}
