package fare

import (
	"strings"
	"time"
	"unicode"
)

// fold flags select which rune classes foldText removes beyond whitespace.
const (
	foldDropBrackets = 1 << iota
	foldDropDots
)

// dashRunes are glyphs that mean "dash" in practice: en/em dash, figure and
// non-breaking hyphens, minus sign, horizontal bar, and the Japanese long
// vowel mark that vendor exports use interchangeably with hyphens.
var dashRunes = map[rune]bool{
	'‐': true, '‑': true, '‒': true, '–': true, '—': true,
	'―': true, '−': true, 'ー': true,
}

var bracketRunes = map[rune]bool{
	'(': true, ')': true, '[': true, ']': true, '<': true, '>': true,
	'（': true, '）': true, '［': true, '］': true, '〈': true, '〉': true,
	'「': true, '」': true, '『': true, '』': true, '【': true, '】': true,
}

var middleDotRunes = map[rune]bool{'・': true, '･': true, '·': true}

func foldText(s string, flags int) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
		case dashRunes[r]:
			b.WriteByte('-')
		case flags&foldDropBrackets != 0 && bracketRunes[r]:
		case flags&foldDropDots != 0 && middleDotRunes[r]:
		default:
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// NormalizeText canonicalizes a string for general text comparison: trims and
// removes whitespace (including full-width space), unifies dash variants and
// lowercases. Brackets and punctuation are kept.
func NormalizeText(s string) string {
	return foldText(s, 0)
}

// PlaceKey canonicalizes a place name or alias for map-key comparison. On top
// of NormalizeText it strips middle-dot punctuation and brackets, which vary
// between exports while carrying no meaning for identity.
func PlaceKey(s string) string {
	return foldText(s, foldDropBrackets|foldDropDots)
}

// ParsedDate is a loosely parsed calendar date. YearInferred is set when the
// input carried no year and the current calendar year was assumed.
type ParsedDate struct {
	Time         time.Time
	YearInferred bool
}

// dateLayouts are tried in order for fully qualified inputs.
var dateLayouts = []string{"2006-1-2", "2006/1/2", "2006/1"}

// ParseDateLoose accepts YYYY-MM-DD, YYYY/MM/DD, YYYY/MM (day 1) and bare
// M/D or M-D (current year, flagged as inferred). Unparseable input returns
// ok=false, never an error.
func ParseDateLoose(s string) (ParsedDate, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ParsedDate{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return ParsedDate{Time: Day(t.Year(), t.Month(), t.Day())}, true
		}
	}
	for _, layout := range []string{"1/2", "1-2"} {
		if t, err := time.Parse(layout, s); err == nil {
			return ParsedDate{
				Time:         Day(time.Now().Year(), t.Month(), t.Day()),
				YearInferred: true,
			}, true
		}
	}
	return ParsedDate{}, false
}

// Day returns the UTC midnight for a calendar date. All dates in the table
// are stored in this form so windows compare by day, not by wall clock.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
