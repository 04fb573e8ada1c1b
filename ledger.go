package equitax

import (
	"iter"
	"sort"
)

// Ledger is a chronological list of entries.
//
// Entries are kept sorted by date; on equal dates purchases come before
// sales, so that a same-day sale is always priced against holdings that
// include the same-day purchase.
type Ledger struct {
	entries []Entry
}

// NewLedger creates a ledger holding the given entries in chronological order.
func NewLedger(entries ...Entry) *Ledger {
	l := &Ledger{entries: make([]Entry, 0, len(entries))}
	l.Append(entries...)
	return l
}

// Append appends entries to this ledger and maintains the chronological order.
func (l *Ledger) Append(entries ...Entry) {
	l.entries = append(l.entries, entries...)
	l.stableSort()
}

// Merge appends all entries of the other ledgers and re-sorts. The sort is
// stable, so the relative order of equal entries from a single source file
// is preserved regardless of the order the files are merged in.
func (l *Ledger) Merge(others ...*Ledger) {
	for _, o := range others {
		l.entries = append(l.entries, o.entries...)
	}
	l.stableSort()
}

// Len returns the number of entries in the ledger.
func (l *Ledger) Len() int { return len(l.entries) }

// Entries returns an iterator over the entries in chronological order.
func (l *Ledger) Entries() iter.Seq2[int, Entry] {
	return func(yield func(int, Entry) bool) {
		for i, e := range l.entries {
			if !yield(i, e) {
				return
			}
		}
	}
}

// stableSort sorts the ledger by entry date with the purchase-before-sale
// tie-break. The sort is stable, so entries that compare equal keep their
// original relative order.
func (l *Ledger) stableSort() {
	sort.SliceStable(l.entries, func(i, j int) bool {
		return l.entries[i].before(l.entries[j])
	})
}

// OldestEntryDate returns the date of the earliest entry in the ledger,
// or the zero date if the ledger is empty.
func (l *Ledger) OldestEntryDate() Date {
	if len(l.entries) == 0 {
		return Date{}
	}
	return l.entries[0].Date
}

// NewestEntryDate returns the date of the latest entry in the ledger,
// or the zero date if the ledger is empty.
func (l *Ledger) NewestEntryDate() Date {
	if len(l.entries) == 0 {
		return Date{}
	}
	return l.entries[len(l.entries)-1].Date
}
