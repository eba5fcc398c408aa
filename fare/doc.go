/*
Package fare builds an in-memory fare table from raw tabular rows and resolves
itinerary legs against it.

This package is data-source agnostic - it accepts already-split rows (label,
value cells) and builds an immutable table. It does NOT handle HTTP downloads,
file paths, or delimiter detection; see the ingest package for those.

# Basic Usage

	rows, aliasRows := loadRowsFromYourSource()

	table, err := fare.Build(rows, aliasRows, "summer-2025.tsv")
	if err != nil {
	    log.Fatal(err)
	}

	res := table.Resolve(date, "羽田", "沖縄")
	if res.Hit {
	    fmt.Println(res.Record.Fare)
	}

# Pipeline

Raw rows pass through header canonicalization (arbitrary multilingual labels →
CanonicalField), value normalization (whitespace, dash variants, brackets),
validity-period extraction (explicit columns, free-text ranges, or the whole
boarding window), and alias resolution before landing in the route index.

Tables are immutable once built. Reloads construct a fresh table and install it
through a Store, so concurrent readers always see a complete table.
*/
package fare
