package equitax

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

// newTestProcessor builds a processor over canned quotes, with the same
// rate for both directions to keep scenarios easy to follow.
func newTestProcessor(t *testing.T, rates map[string]string) *Processor {
	t.Helper()
	quotes := make(map[Date]Quote)
	for day, rate := range rates {
		quotes[MustParse(day)] = quoteOf(rate, rate)
	}
	return NewProcessor(NewRateResolver(&fakeSource{quotes: quotes}))
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestProcessPurchaseThenSale(t *testing.T) {
	p := newTestProcessor(t, map[string]string{
		"2023-01-05": "5.00",
		"2023-01-10": "5.20",
	})
	l := NewLedger(
		purchaseOn("2023-01-05", 20, 10),
		saleOn("2023-01-10", 19, 4, 76),
	)

	out, err := p.Process(l)
	if err != nil {
		t.Fatalf("Process() unexpected error: %v", err)
	}
	if out.Len() != 2 {
		t.Fatalf("Process() = %d entries, want 2", out.Len())
	}

	var entries []Entry
	for _, e := range out.Entries() {
		entries = append(entries, e)
	}

	// Purchase: 10 shares at 20 EUR, rate 5.00: the lot costs 1000 BRL and
	// the average cost basis is 100 BRL per share.
	buy := entries[0]
	if !buy.RunningQuantity.Equal(Q(10)) {
		t.Errorf("purchase running quantity = %s, want 10", buy.RunningQuantity)
	}
	if !buy.ConversionRate.Equal(dec("5")) {
		t.Errorf("purchase rate = %s, want 5", buy.ConversionRate)
	}
	if !buy.PriceBRL.Decimal().Equal(dec("1000")) {
		t.Errorf("purchase lot cost = %s, want 1000", buy.PriceBRL.Decimal())
	}
	if !buy.AveragePrice.Decimal().Equal(dec("100")) {
		t.Errorf("purchase average price = %s, want 100", buy.AveragePrice.Decimal())
	}
	if buy.ProfitBRL.Currency() != "" || buy.TaxBRL.Currency() != "" {
		t.Errorf("purchase must not carry profit or tax")
	}

	// Sale: 4 shares, 76 EUR net proceeds, rate 5.20. Proceeds are 395.2
	// BRL against a 400 BRL cost of the sold shares: a 4.8 BRL loss, and
	// 15% of it, -0.72 BRL, as (negative) tax.
	sell := entries[1]
	if !sell.RunningQuantity.Equal(Q(6)) {
		t.Errorf("sale running quantity = %s, want 6", sell.RunningQuantity)
	}
	if !sell.AveragePrice.Decimal().Equal(dec("100")) {
		t.Errorf("sale average price = %s, want 100 (carried from the purchase)", sell.AveragePrice.Decimal())
	}
	if !sell.PriceBRL.Decimal().Equal(dec("98.8")) {
		t.Errorf("sale per-share price = %s, want 98.8", sell.PriceBRL.Decimal())
	}
	if !sell.ProfitBRL.Decimal().Equal(dec("-4.8")) {
		t.Errorf("sale profit = %s, want -4.8", sell.ProfitBRL.Decimal())
	}
	if !sell.TaxBRL.Decimal().Equal(dec("-0.72")) {
		t.Errorf("sale tax = %s, want -0.72", sell.TaxBRL.Decimal())
	}
}

func TestProcessAverageRecomputedByNextPurchase(t *testing.T) {
	p := newTestProcessor(t, map[string]string{
		"2023-01-05": "5.00",
		"2023-01-10": "5.00",
		"2023-02-01": "6.00",
	})
	l := NewLedger(
		purchaseOn("2023-01-05", 20, 10), // 1000 BRL, avg 100
		saleOn("2023-01-10", 20, 5, 100), // leaves 5 shares, 500 BRL
		purchaseOn("2023-02-01", 25, 5),  // +750 BRL: 10 shares, 1250 BRL
	)

	out, err := p.Process(l)
	if err != nil {
		t.Fatalf("Process() unexpected error: %v", err)
	}

	var entries []Entry
	for _, e := range out.Entries() {
		entries = append(entries, e)
	}

	if !entries[1].AveragePrice.Decimal().Equal(dec("100")) {
		t.Errorf("sale average = %s, want the pre-sale 100", entries[1].AveragePrice.Decimal())
	}
	if !entries[2].AveragePrice.Decimal().Equal(dec("125")) {
		t.Errorf("average after second purchase = %s, want 125", entries[2].AveragePrice.Decimal())
	}
	if !entries[2].RunningQuantity.Equal(Q(10)) {
		t.Errorf("running quantity = %s, want 10", entries[2].RunningQuantity)
	}
}

func TestProcessOversellGoesNegative(t *testing.T) {
	p := newTestProcessor(t, map[string]string{
		"2023-01-05": "5.00",
		"2023-01-10": "5.00",
	})
	l := NewLedger(
		purchaseOn("2023-01-05", 20, 10),
		saleOn("2023-01-10", 20, 15, 300),
	)

	out, err := p.Process(l)
	if err != nil {
		t.Fatalf("Process() unexpected error: %v", err)
	}
	for i, e := range out.Entries() {
		if i == 1 && !e.RunningQuantity.Equal(Q(-5)) {
			t.Errorf("oversell running quantity = %s, want -5", e.RunningQuantity)
		}
	}
}

func TestProcessPurchaseRecoversOversoldToZero(t *testing.T) {
	p := newTestProcessor(t, map[string]string{
		"2023-01-05": "5.00",
		"2023-01-10": "5.00",
		"2023-02-01": "5.00",
		"2023-03-01": "5.00",
	})
	l := NewLedger(
		purchaseOn("2023-01-05", 20, 10),
		saleOn("2023-01-10", 20, 15, 300), // oversell: holdings go to -5
		purchaseOn("2023-02-01", 20, 5),   // recovery lands holdings on exactly zero
		purchaseOn("2023-03-01", 30, 10),
	)

	out, err := p.Process(l)
	if err != nil {
		t.Fatalf("Process() unexpected error: %v", err)
	}

	var entries []Entry
	for _, e := range out.Entries() {
		entries = append(entries, e)
	}

	if !entries[2].RunningQuantity.Equal(Q(0)) {
		t.Errorf("running quantity after recovery = %s, want 0", entries[2].RunningQuantity)
	}
	if !entries[2].AveragePrice.Decimal().Equal(dec("0")) {
		t.Errorf("average price with zero holdings = %s, want 0", entries[2].AveragePrice.Decimal())
	}

	// The next purchase rebuilds the position: 10 shares at 30 EUR, rate 5,
	// over the zeroed-out cost gives an average of 150.
	if !entries[3].RunningQuantity.Equal(Q(10)) {
		t.Errorf("running quantity = %s, want 10", entries[3].RunningQuantity)
	}
	if !entries[3].AveragePrice.Decimal().Equal(dec("150")) {
		t.Errorf("average price after rebuilding = %s, want 150", entries[3].AveragePrice.Decimal())
	}
}

func TestProcessIsPure(t *testing.T) {
	p := newTestProcessor(t, map[string]string{"2023-01-05": "5.00"})
	l := NewLedger(purchaseOn("2023-01-05", 20, 10))

	out, err := p.Process(l)
	if err != nil {
		t.Fatalf("Process() unexpected error: %v", err)
	}

	for _, e := range l.Entries() {
		if !e.ConversionRate.IsZero() || e.AveragePrice.Currency() != "" {
			t.Errorf("Process() mutated its input ledger: %+v", e)
		}
	}

	// Re-processing the output reproduces it exactly.
	again, err := p.Process(out)
	if err != nil {
		t.Fatalf("Process() unexpected error on reprocess: %v", err)
	}
	for i, e := range out.Entries() {
		for j, o := range again.Entries() {
			if i == j && !e.Equal(o) {
				t.Errorf("reprocessing changed entry %d: %+v vs %+v", i, e, o)
			}
		}
	}
}

func TestProcessCustomTaxRate(t *testing.T) {
	p := newTestProcessor(t, map[string]string{
		"2023-01-05": "5.00",
		"2023-01-10": "5.00",
	})
	p.TaxRate = dec("0.275")
	l := NewLedger(
		purchaseOn("2023-01-05", 20, 10),
		saleOn("2023-01-10", 30, 10, 300), // 1500 proceeds vs 1000 cost: +500
	)

	out, err := p.Process(l)
	if err != nil {
		t.Fatalf("Process() unexpected error: %v", err)
	}
	for i, e := range out.Entries() {
		if i == 1 && !e.TaxBRL.Decimal().Equal(dec("137.5")) {
			t.Errorf("tax = %s, want 137.5", e.TaxBRL.Decimal())
		}
	}
}

func TestProcessAbandonsOnMissingQuote(t *testing.T) {
	p := newTestProcessor(t, map[string]string{"2023-01-05": "5.00"})
	l := NewLedger(
		purchaseOn("2023-01-05", 20, 10),
		saleOn("2023-06-10", 20, 4, 80), // far from any published quote
	)

	out, err := p.Process(l)
	if !errors.Is(err, ErrNoQuote) {
		t.Fatalf("Process() error = %v, want ErrNoQuote", err)
	}
	if out != nil {
		t.Errorf("Process() returned a partial ledger on failure")
	}
}

func TestProcessRejectsInvalidEntries(t *testing.T) {
	p := newTestProcessor(t, map[string]string{"2023-01-05": "5.00"})

	tests := []struct {
		name  string
		entry Entry
	}{
		{"zero purchase quantity", NewPurchase(MustParse("2023-01-05"), M(20, "EUR"), Q(0))},
		{"negative sale quantity", NewSale(MustParse("2023-01-05"), M(20, "EUR"), Q(-4), M(76, "EUR"))},
		{"sale without proceeds", NewSale(MustParse("2023-01-05"), M(20, "EUR"), Q(4), Money{})},
		{"purchase without price", NewPurchase(MustParse("2023-01-05"), Money{}, Q(10))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := p.Process(NewLedger(tt.entry)); err == nil {
				t.Errorf("Process() accepted an invalid entry")
			}
		})
	}
}
