package ingest

import (
	"io"

	"github.com/transit-tools/fare-resolver/fare"
)

// ParseLegs reads itinerary legs from delimited date/from/to rows. Rows
// missing a place or carrying an unparseable date are skipped; partial
// itineraries are expected input, not errors.
func ParseLegs(r io.Reader) ([]fare.Leg, error) {
	rows, err := ParseDelimited(r)
	if err != nil {
		return nil, err
	}
	legs := make([]fare.Leg, 0, len(rows))
	for _, raw := range rows {
		row := fare.NormalizeRow(raw)
		from, to := row[fare.FieldFrom], row[fare.FieldTo]
		if from == "" || to == "" {
			continue
		}
		d, ok := fare.ParseDateLoose(row[fare.FieldDate])
		if !ok {
			continue
		}
		legs = append(legs, fare.Leg{Date: d.Time, From: from, To: to})
	}
	return legs, nil
}
