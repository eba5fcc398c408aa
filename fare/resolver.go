package fare

import (
	"strings"
	"time"
)

// Leg is one itinerary segment. Legs resolve independently of each other.
type Leg struct {
	Date time.Time
	From string
	To   string
}

// MatchResult is the outcome of resolving one leg. A miss is a first-class
// result, not an error: Tried and HasAnyRoute let callers distinguish
// "wrong date" from "unknown route".
type MatchResult struct {
	Hit         bool        `json:"hit"`
	Record      *FareRecord `json:"record,omitempty"`
	From        string      `json:"from"`
	To          string      `json:"to"`
	Tried       []string    `json:"tried"`
	HasAnyRoute bool        `json:"hasAnyRoute"`
	Reverse     bool        `json:"reverse"`
}

// ResolveSummary aggregates a batch of leg resolutions.
type ResolveSummary struct {
	Hits      int `json:"hits"`
	Misses    int `json:"misses"`
	TotalFare int `json:"totalFare"`
}

// peakTerms tag the price tiers preferred on window-length ties.
var peakTerms = []string{"ピーク", "繁忙", "peak", "premium"}

// IsPeakPriceType reports whether a price tier is tagged as peak/premium.
// Both sides are normalized so the long vowel mark in ピーク folds the same
// way on the tier and the term.
func IsPeakPriceType(priceType string) bool {
	n := NormalizeText(priceType)
	for _, t := range peakTerms {
		if strings.Contains(n, NormalizeText(t)) {
			return true
		}
	}
	return false
}

// Outranks reports whether record a beats record b as the match for a leg,
// assuming both cover the requested date. The narrowest validity window wins
// (the most specific season beats a broad fallback fare); ties prefer the
// peak-tagged tier, then the lower fare.
func Outranks(a, b FareRecord) bool {
	la := a.ValidTo.Sub(a.ValidFrom)
	lb := b.ValidTo.Sub(b.ValidFrom)
	if la != lb {
		return la < lb
	}
	pa, pb := IsPeakPriceType(a.PriceType), IsPeakPriceType(b.PriceType)
	if pa != pb {
		return pa
	}
	return a.Fare < b.Fare
}

// Covers reports whether the record's validity window contains the date,
// inclusive on both ends.
func (r FareRecord) Covers(date time.Time) bool {
	return !date.Before(r.ValidFrom) && !date.After(r.ValidTo)
}

func bestCovering(records []FareRecord, date time.Time) *FareRecord {
	var best *FareRecord
	for i := range records {
		if !records[i].Covers(date) {
			continue
		}
		if best == nil || Outranks(records[i], *best) {
			best = &records[i]
		}
	}
	return best
}

// Resolve matches one leg against the table. Place names go through the
// alias table first; if the forward direction has no record covering the
// date, the reverse direction is tried (symmetric transport data often lists
// only one direction) and the result is flagged as reverse-derived.
func (t *Table) Resolve(date time.Time, from, to string) MatchResult {
	cf := t.Aliases.Resolve(from)
	ct := t.Aliases.Resolve(to)
	res := MatchResult{From: cf, To: ct}

	forward := t.Lookup(cf, ct)
	res.Tried = append(res.Tried, cf+"→"+ct)
	if best := bestCovering(forward, date); best != nil {
		res.Hit = true
		res.Record = best
		res.HasAnyRoute = true
		return res
	}

	reverse := t.Lookup(ct, cf)
	res.Tried = append(res.Tried, ct+"→"+cf)
	res.HasAnyRoute = len(forward) > 0 || len(reverse) > 0
	if best := bestCovering(reverse, date); best != nil {
		res.Hit = true
		res.Record = best
		res.Reverse = true
	}
	return res
}

// ResolveLeg is Resolve for an already-assembled Leg.
func (t *Table) ResolveLeg(leg Leg) MatchResult {
	return t.Resolve(leg.Date, leg.From, leg.To)
}

// ResolveAll resolves each leg independently and aggregates hit, miss and
// fare totals over the batch.
func (t *Table) ResolveAll(legs []Leg) ([]MatchResult, ResolveSummary) {
	results := make([]MatchResult, 0, len(legs))
	var sum ResolveSummary
	for _, leg := range legs {
		r := t.ResolveLeg(leg)
		results = append(results, r)
		if r.Hit {
			sum.Hits++
			sum.TotalFare += r.Record.Fare
		} else {
			sum.Misses++
		}
	}
	return results, sum
}
