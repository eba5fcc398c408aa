package fare

import (
	"errors"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Cell is one raw column value paired with its original header label.
type Cell struct {
	Label string
	Value string
}

// RawRow is an ordered row of raw cells. Order matters: when several labels
// canonicalize to the same field, the first non-empty value wins, and a Go
// map cannot guarantee that.
type RawRow []Cell

// NormalizedRow maps canonical fields to trimmed values, at most one value
// per field.
type NormalizedRow map[CanonicalField]string

// DefaultPriceType tags fares whose rows carry no price tier.
const DefaultPriceType = "通常"

// FareRecord is one deduplicated fare with an inclusive validity window.
// Immutable once constructed.
type FareRecord struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	PriceType string    `json:"priceType"`
	Fare      int       `json:"fare"`
	ValidFrom time.Time `json:"validFrom"`
	ValidTo   time.Time `json:"validTo"`
	Source    string    `json:"source"`
}

// Table is an immutable built fare table: records, the directional route
// index, the place universe and the alias table.
type Table struct {
	Records []FareRecord
	Aliases *AliasTable
	Source  string
	BuiltAt time.Time

	routes map[string][]FareRecord
	places []string
}

// Summary is the status-display view of a built table.
type Summary struct {
	Fares   int       `json:"fares"`
	Routes  int       `json:"routes"`
	Places  int       `json:"places"`
	Source  string    `json:"source"`
	BuiltAt time.Time `json:"builtAt"`
}

var (
	// ErrNoFareColumns signals a structurally unusable table: the header row
	// has no detectable origin, destination or fare column.
	ErrNoFareColumns = errors.New("fare: no origin/destination/fare columns detected in header row")
	// ErrNoRecords signals that the input produced zero usable fare records.
	ErrNoRecords = errors.New("fare: no usable fare records in input")
)

// NormalizeRow canonicalizes the labels of a raw row. The first non-empty
// value per canonical field is retained; blank duplicates never overwrite.
func NormalizeRow(raw RawRow) NormalizedRow {
	row := make(NormalizedRow, len(raw))
	for _, c := range raw {
		v := strings.TrimSpace(c.Value)
		if v == "" {
			continue
		}
		f := Canonicalize(c.Label)
		if _, ok := row[f]; !ok {
			row[f] = v
		}
	}
	return row
}

// Build constructs a table from raw fare rows and optional alias rows.
// Malformed row content is tolerated and skipped; Build errors only for
// structurally unusable input or when nothing usable remains.
func Build(rawRows []RawRow, aliasRows []AliasRow, source string) (*Table, error) {
	if len(rawRows) == 0 {
		return nil, ErrNoRecords
	}
	if err := checkHeaderShape(rawRows[0]); err != nil {
		return nil, err
	}

	var records []FareRecord
	seen := map[string]struct{}{}
	placeSeen := map[string]struct{}{}
	var places []string
	addPlace := func(p string) {
		k := PlaceKey(p)
		if _, ok := placeSeen[k]; ok {
			return
		}
		placeSeen[k] = struct{}{}
		places = append(places, strings.TrimSpace(p))
	}

	for _, raw := range rawRows {
		row := NormalizeRow(raw)
		from, to := row[FieldFrom], row[FieldTo]
		if from == "" || to == "" {
			continue
		}
		priceType := row[FieldPriceType]
		if priceType == "" {
			priceType = DefaultPriceType
		}
		amount := parseFareAmount(row[FieldFare])
		for _, p := range ResolvePeriods(row) {
			key := dedupKey(from, to, priceType, p)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			records = append(records, FareRecord{
				From:      from,
				To:        to,
				PriceType: priceType,
				Fare:      amount,
				ValidFrom: p.From,
				ValidTo:   p.To,
				Source:    source,
			})
		}
		addPlace(from)
		addPlace(to)
	}
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	aliases := BuildAliasTable(places, aliasRows)
	routes := make(map[string][]FareRecord)
	for _, r := range records {
		k := routeKey(aliases, r.From, r.To)
		routes[k] = append(routes[k], r)
	}
	for k := range routes {
		group := routes[k]
		sort.SliceStable(group, func(i, j int) bool {
			if !group[i].ValidFrom.Equal(group[j].ValidFrom) {
				return group[i].ValidFrom.Before(group[j].ValidFrom)
			}
			if !group[i].ValidTo.Equal(group[j].ValidTo) {
				return group[i].ValidTo.Before(group[j].ValidTo)
			}
			return group[i].Fare < group[j].Fare
		})
	}

	return &Table{
		Records: records,
		Aliases: aliases,
		Source:  source,
		BuiltAt: time.Now().UTC(),
		routes:  routes,
		places:  places,
	}, nil
}

// checkHeaderShape fails hard when the first row has no origin, destination
// or fare-like labels at all; anything less broken is tolerated per row.
func checkHeaderShape(first RawRow) error {
	var hasFrom, hasTo, hasFare bool
	for _, c := range first {
		switch Canonicalize(c.Label) {
		case FieldFrom:
			hasFrom = true
		case FieldTo:
			hasTo = true
		case FieldFare:
			hasFare = true
		}
	}
	if !hasFrom || !hasTo || !hasFare {
		return ErrNoFareColumns
	}
	return nil
}

var fareDigitsRe = regexp.MustCompile(`-?[0-9]+`)

// parseFareAmount extracts the first integer from a fare cell. Non-numeric
// or negative text coerces to zero rather than failing.
func parseFareAmount(s string) int {
	s = strings.ReplaceAll(s, ",", "")
	m := fareDigitsRe.FindString(s)
	if m == "" {
		return 0
	}
	v, err := strconv.Atoi(m)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func dedupKey(from, to, priceType string, p Period) string {
	return strings.Join([]string{
		PlaceKey(from), PlaceKey(to), NormalizeText(priceType),
		p.From.Format("2006-01-02"), p.To.Format("2006-01-02"),
	}, "|")
}

func routeKey(aliases *AliasTable, from, to string) string {
	return PlaceKey(aliases.Resolve(from)) + "||" + PlaceKey(aliases.Resolve(to))
}

// Lookup returns the sorted fare records for a directional canonical pair.
func (t *Table) Lookup(from, to string) []FareRecord {
	return t.routes[routeKey(t.Aliases, from, to)]
}

// Places returns the distinct place names seen during the build, in
// first-seen order.
func (t *Table) Places() []string { return t.places }

// Summarize returns the counts and provenance of the built table.
func (t *Table) Summarize() Summary {
	return Summary{
		Fares:   len(t.Records),
		Routes:  len(t.routes),
		Places:  len(t.places),
		Source:  t.Source,
		BuiltAt: t.BuiltAt,
	}
}
