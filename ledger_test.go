package equitax

import (
	"testing"
)

func purchaseOn(day string, price float64, qty int) Entry {
	return NewPurchase(MustParse(day), M(price, "EUR"), Q(qty))
}

func saleOn(day string, price float64, qty int, proceeds float64) Entry {
	return NewSale(MustParse(day), M(price, "EUR"), Q(qty), M(proceeds, "EUR"))
}

func TestAssembleOrdersByDate(t *testing.T) {
	purchases := []PurchaseRecord{
		{Date: MustParse("2023-03-01"), PriceEUR: M(25, "EUR"), Quantity: Q(5)},
		{Date: MustParse("2023-01-05"), PriceEUR: M(20, "EUR"), Quantity: Q(10)},
	}
	sales := []SaleRecord{
		{Date: MustParse("2023-01-10"), ExecutionPriceEUR: M(19, "EUR"), Quantity: Q(4), NetProceedsEUR: M(76, "EUR")},
	}

	l := Assemble(purchases, sales)

	want := []string{"2023-01-05", "2023-01-10", "2023-03-01"}
	if l.Len() != len(want) {
		t.Fatalf("Assemble() produced %d entries, want %d", l.Len(), len(want))
	}
	for i, e := range l.Entries() {
		if e.Date.String() != want[i] {
			t.Errorf("entry %d on %s, want %s", i, e.Date, want[i])
		}
	}
}

func TestAssemblePurchaseBeforeSaleOnSameDay(t *testing.T) {
	purchases := []PurchaseRecord{
		{Date: MustParse("2023-01-10"), PriceEUR: M(20, "EUR"), Quantity: Q(10)},
	}
	sales := []SaleRecord{
		{Date: MustParse("2023-01-10"), ExecutionPriceEUR: M(19, "EUR"), Quantity: Q(4), NetProceedsEUR: M(76, "EUR")},
	}

	l := Assemble(purchases, sales)

	ops := make([]Operation, 0, 2)
	for _, e := range l.Entries() {
		ops = append(ops, e.Operation)
	}
	if len(ops) != 2 || ops[0] != Purchase || ops[1] != Sale {
		t.Errorf("same-day ordering = %v, want [purchase sale]", ops)
	}
}

func TestMergeIsOrderIndependent(t *testing.T) {
	a := NewLedger(purchaseOn("2023-01-05", 20, 10), saleOn("2023-03-01", 25, 5, 125))
	b := NewLedger(saleOn("2023-01-10", 19, 4, 76))

	ab := NewLedger()
	ab.Merge(a, b)
	ba := NewLedger()
	ba.Merge(b, a)

	if ab.Len() != 3 || ba.Len() != 3 {
		t.Fatalf("Merge() lost entries: %d and %d, want 3", ab.Len(), ba.Len())
	}
	for i, e := range ab.Entries() {
		for j, o := range ba.Entries() {
			if i == j && !e.Equal(o) {
				t.Errorf("entry %d differs between merge orders: %v vs %v", i, e, o)
			}
		}
	}

	want := []string{"2023-01-05", "2023-01-10", "2023-03-01"}
	for i, e := range ab.Entries() {
		if e.Date.String() != want[i] {
			t.Errorf("entry %d on %s, want %s", i, e.Date, want[i])
		}
	}
}

func TestMergeKeepsDuplicates(t *testing.T) {
	// The same event in two files is two entries; merging never dedups.
	a := NewLedger(purchaseOn("2023-01-05", 20, 10))
	b := NewLedger(purchaseOn("2023-01-05", 20, 10))

	m := NewLedger()
	m.Merge(a, b)
	if m.Len() != 2 {
		t.Errorf("Merge() = %d entries, want 2", m.Len())
	}
}

func TestAppendKeepsOrder(t *testing.T) {
	l := NewLedger(purchaseOn("2023-03-01", 25, 5))
	l.Append(purchaseOn("2023-01-05", 20, 10))

	first := ""
	for i, e := range l.Entries() {
		if i == 0 {
			first = e.Date.String()
		}
	}
	if first != "2023-01-05" {
		t.Errorf("Append() did not reorder: first entry on %s", first)
	}
}

func TestLedgerDateRange(t *testing.T) {
	l := NewLedger(purchaseOn("2023-03-01", 25, 5), purchaseOn("2023-01-05", 20, 10))
	if got := l.OldestEntryDate(); got != MustParse("2023-01-05") {
		t.Errorf("OldestEntryDate() = %v", got)
	}
	if got := l.NewestEntryDate(); got != MustParse("2023-03-01") {
		t.Errorf("NewestEntryDate() = %v", got)
	}
}
