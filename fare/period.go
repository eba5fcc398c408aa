package fare

import (
	"regexp"
	"strings"
	"time"
)

// Period is an inclusive validity date range.
type Period struct {
	From time.Time
	To   time.Time
}

// dateTokenRe matches a YYYY-MM-DD token inside free-text range cells after
// dash folding (en dashes and long vowel marks already collapsed to '-').
var dateTokenRe = regexp.MustCompile(`\d{4}-\d{1,2}-\d{1,2}`)

// ResolvePeriods extracts the validity windows of a normalized row.
//
// Precedence: explicit validFrom/validTo columns if both parse; otherwise a
// free-text range column of "YYYY-MM-DD〜YYYY-MM-DD" segments separated by
// '/'; otherwise the whole boarding window as a single range. Each extracted
// range is then aligned to the boarding window when one is declared.
func ResolvePeriods(row NormalizedRow) []Period {
	whole, hasWhole := parseWindow(row[FieldWholeFrom], row[FieldWholeTo])
	ranges := explicitRanges(row)
	if len(ranges) == 0 {
		if hasWhole {
			return []Period{whole}
		}
		return nil
	}
	out := make([]Period, 0, len(ranges))
	for _, r := range ranges {
		if !hasWhole {
			// No window to align to; inverted ranges still must not
			// survive into records.
			if !r.From.After(r.To) {
				out = append(out, r)
			}
			continue
		}
		if p, ok := alignToWindow(r, whole); ok {
			out = append(out, p)
		}
	}
	return out
}

func parseWindow(fromRaw, toRaw string) (Period, bool) {
	f, okF := ParseDateLoose(fromRaw)
	t, okT := ParseDateLoose(toRaw)
	if !okF || !okT {
		return Period{}, false
	}
	return Period{From: f.Time, To: t.Time}, true
}

func explicitRanges(row NormalizedRow) []Period {
	if p, ok := parseWindow(row[FieldValidFrom], row[FieldValidTo]); ok {
		return []Period{p}
	}
	raw := row[FieldValidRange]
	if raw == "" {
		return nil
	}
	var out []Period
	for _, seg := range strings.Split(NormalizeText(raw), "/") {
		dates := dateTokenRe.FindAllString(seg, -1)
		if len(dates) < 2 {
			continue
		}
		// First and last token of the segment form the range, whatever
		// glyph separates them.
		f, okF := ParseDateLoose(dates[0])
		t, okT := ParseDateLoose(dates[len(dates)-1])
		if okF && okT {
			out = append(out, Period{From: f.Time, To: t.Time})
		}
	}
	return out
}

// alignToWindow corrects a known vendor data defect and clamps the range to
// the boarding window.
//
// When the boarding window crosses a calendar year boundary, vendor files
// write Jan-Mar sub-range dates with the window's start year even though the
// dates belong to the following year. Any endpoint sharing the window's start
// year whose month falls before the window's start month is shifted forward
// one year; if the range still ends before the window starts, both endpoints
// shift one more year. The result is clamped to the window and dropped when
// the clamp leaves nothing (corrupt source data, not a crash).
func alignToWindow(r Period, w Period) (Period, bool) {
	if w.To.Year() > w.From.Year() {
		r.From = rolloverShift(r.From, w.From)
		r.To = rolloverShift(r.To, w.From)
		if r.To.Before(w.From) {
			r.From = r.From.AddDate(1, 0, 0)
			r.To = r.To.AddDate(1, 0, 0)
		}
	}
	if r.From.Before(w.From) {
		r.From = w.From
	}
	if r.To.After(w.To) {
		r.To = w.To
	}
	if r.From.After(r.To) {
		return Period{}, false
	}
	return r, true
}

func rolloverShift(d time.Time, windowStart time.Time) time.Time {
	if d.Year() == windowStart.Year() && d.Month() < windowStart.Month() {
		return d.AddDate(1, 0, 0)
	}
	return d
}
