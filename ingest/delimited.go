package ingest

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/transit-tools/fare-resolver/fare"
)

// ParseDelimited reads tab- or comma-delimited text with a header row into
// raw rows. Tab wins when the header line contains one; otherwise the input
// goes through encoding/csv, which handles doubled-quote escaping inside
// quoted fields. Rows shorter than the header are padded with empty cells.
func ParseDelimited(r io.Reader) ([]fare.RawRow, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	text = strings.TrimLeft(text, "\n")
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	var lines [][]string
	headerLine := text
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		headerLine = text[:i]
	}
	if strings.Contains(headerLine, "\t") {
		for _, line := range strings.Split(text, "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			lines = append(lines, strings.Split(line, "\t"))
		}
	} else {
		cr := csv.NewReader(strings.NewReader(text))
		cr.FieldsPerRecord = -1
		cr.LazyQuotes = true
		records, err := cr.ReadAll()
		if err != nil {
			return nil, err
		}
		lines = records
	}
	if len(lines) < 2 {
		return nil, nil
	}

	header := lines[0]
	rows := make([]fare.RawRow, 0, len(lines)-1)
	for _, line := range lines[1:] {
		row := make(fare.RawRow, 0, len(header))
		for i, label := range header {
			v := ""
			if i < len(line) {
				v = line[i]
			}
			row = append(row, fare.Cell{Label: label, Value: v})
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ParseAliasRows extracts alias/canonical pairs from delimited rows. Rows
// missing either side are skipped.
func ParseAliasRows(rows []fare.RawRow) []fare.AliasRow {
	out := make([]fare.AliasRow, 0, len(rows))
	for _, raw := range rows {
		row := fare.NormalizeRow(raw)
		alias, canonical := row[fare.FieldAlias], row[fare.FieldCanonical]
		if alias == "" || canonical == "" {
			continue
		}
		out = append(out, fare.AliasRow{Alias: alias, Canonical: canonical})
	}
	return out
}
