package equitax

import (
	"errors"
	"fmt"
	"log"

	"github.com/shopspring/decimal"
)

// Quote is one day's published pair of PTAX rates. Buy and Sell differ:
// the buy quote prices euros acquired, the sell quote euros disposed of.
type Quote struct {
	Buy  decimal.Decimal
	Sell decimal.Decimal
}

// rate returns the quote column matching the conversion direction.
func (q Quote) rate(dir Direction) (decimal.Decimal, error) {
	switch dir {
	case EURToBRL:
		return q.Buy, nil
	case BRLToEUR:
		return q.Sell, nil
	default:
		return decimal.Decimal{}, fmt.Errorf("unknown conversion direction: %q", dir)
	}
}

// RateSource is the historical quote provider contract. found is false when
// the source has no data for that exact date (weekend or holiday); that is
// not an error, it tells the resolver to try the prior day.
type RateSource interface {
	Query(on Date) (q Quote, found bool, err error)
}

// ErrNoQuote is returned when no published quote exists within the
// resolver's fallback window.
var ErrNoQuote = errors.New("no published quote")

// defaultMaxFallbackDays bounds the backward business-day search. Markets
// are rarely closed more than a handful of consecutive days.
const defaultMaxFallbackDays = 10

// RateResolver resolves the PTAX rate applicable on a calendar date.
//
// On a date with no published quote it walks backward one day at a time
// until a quote is found, so any date resolves to the most recent prior
// (or same) business day. Resolved quotes are memoized for the lifetime of
// the resolver, under the date the quote was published on and under every
// non-business day walked over to find it; both directions share the
// cached record. The resolver is built fresh per
// run and is not safe for concurrent use, which the single-threaded
// forward pass never needs.
type RateResolver struct {
	source  RateSource
	cache   map[Date]Quote
	maxWalk int
}

// NewRateResolver creates a resolver over the given source with an empty
// cache and the default fallback bound.
func NewRateResolver(source RateSource) *RateResolver {
	return &RateResolver{
		source:  source,
		cache:   make(map[Date]Quote),
		maxWalk: defaultMaxFallbackDays,
	}
}

// SetMaxFallback overrides the fallback bound. Values below one are ignored.
func (r *RateResolver) SetMaxFallback(days int) {
	if days > 0 {
		r.maxWalk = days
	}
}

// Resolve returns the rate applicable on the given date for the given
// conversion direction. It fails with an error wrapping [ErrNoQuote] when
// no quote is published within the fallback window, rather than searching
// forever.
func (r *RateResolver) Resolve(on Date, dir Direction) (decimal.Decimal, error) {
	q, err := r.quote(on)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return q.rate(dir)
}

// quote finds the published quote for the date, walking backward on misses.
func (r *RateResolver) quote(on Date) (Quote, error) {
	day := on
	for i := 0; i <= r.maxWalk; i++ {
		if q, ok := r.cache[day]; ok {
			return q, nil
		}

		log.Printf("resolving PTAX quote for %s...", day)
		q, found, err := r.source.Query(day)
		if err != nil {
			return Quote{}, fmt.Errorf("cannot query quote for %s: %w", day, err)
		}
		if found {
			// Cache under the published date and under every day walked
			// over, so a repeat query for any of them is free.
			for d := on; d != day; d = d.Add(-1) {
				r.cache[d] = q
			}
			r.cache[day] = q
			return q, nil
		}

		prev := day.Add(-1)
		log.Printf("no quote on %s (weekend or holiday), trying %s", day, prev)
		day = prev
	}
	return Quote{}, fmt.Errorf("within %d days before %s: %w", r.maxWalk, on, ErrNoQuote)
}
