package fare

import "strings"

// AliasRow is one explicit alias mapping supplied by an external table.
type AliasRow struct {
	Alias     string
	Canonical string
}

// AliasTable maps normalized place keys to canonical display names.
type AliasTable struct {
	byKey map[string]string
}

// adminSuffixes are Japanese administrative-unit suffixes commonly dropped in
// itinerary input ("東京都" → "東京").
var adminSuffixes = []string{"都", "道", "府", "県", "市", "区", "町", "村"}

var airportSuffixes = []string{"空港", "airport"}

// curatedAliases are hand-maintained common alternates: major airports known
// by their own name rather than the metro area the fare table lists. Applied
// only when the canonical target is a known place.
var curatedAliases = []AliasRow{
	{Alias: "羽田", Canonical: "東京"},
	{Alias: "羽田空港", Canonical: "東京"},
	{Alias: "成田", Canonical: "東京"},
	{Alias: "成田空港", Canonical: "東京"},
	{Alias: "伊丹", Canonical: "大阪"},
	{Alias: "関空", Canonical: "大阪"},
	{Alias: "関西空港", Canonical: "大阪"},
	{Alias: "新千歳", Canonical: "札幌"},
	{Alias: "新千歳空港", Canonical: "札幌"},
	{Alias: "セントレア", Canonical: "名古屋"},
	{Alias: "中部国際空港", Canonical: "名古屋"},
}

// BuildAliasTable layers alias mappings, later layers overriding earlier on
// key collision: self-mapping for every known place, suffix-stripped variants
// (added only when absent), curated common alternates (only when the target
// is a known place), then explicit rows, which override unconditionally.
func BuildAliasTable(places []string, rows []AliasRow) *AliasTable {
	t := &AliasTable{byKey: make(map[string]string, len(places)*2)}
	known := make(map[string]string, len(places))
	for _, p := range places {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		k := PlaceKey(p)
		t.byKey[k] = p
		known[k] = p
	}
	for _, p := range places {
		p = strings.TrimSpace(p)
		base := stripPlaceSuffix(p)
		if base == p || base == "" {
			continue
		}
		if k := PlaceKey(base); t.byKey[k] == "" {
			t.byKey[k] = p
		}
	}
	for _, c := range curatedAliases {
		target, ok := known[PlaceKey(c.Canonical)]
		if !ok {
			continue
		}
		if k := PlaceKey(c.Alias); t.byKey[k] == "" {
			t.byKey[k] = target
		}
	}
	for _, r := range rows {
		alias := strings.TrimSpace(r.Alias)
		canonical := strings.TrimSpace(r.Canonical)
		if alias == "" || canonical == "" {
			continue
		}
		t.byKey[PlaceKey(alias)] = canonical
	}
	return t
}

// Resolve returns the canonical display name for a place spelling. Unknown
// input is treated as already canonical and comes back trimmed.
func (t *AliasTable) Resolve(name string) string {
	trimmed := strings.TrimSpace(name)
	if t != nil {
		if c, ok := t.byKey[PlaceKey(trimmed)]; ok {
			return c
		}
	}
	return trimmed
}

// Len reports the number of distinct alias keys.
func (t *AliasTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.byKey)
}

func stripPlaceSuffix(p string) string {
	lower := strings.ToLower(p)
	for _, sfx := range airportSuffixes {
		if strings.HasSuffix(lower, sfx) && len(lower) > len(sfx) {
			return p[:len(lower)-len(sfx)]
		}
	}
	for _, sfx := range adminSuffixes {
		if strings.HasSuffix(p, sfx) && len(p) > len(sfx) {
			return p[:len(p)-len(sfx)]
		}
	}
	return p
}
