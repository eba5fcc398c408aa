package ingest

import (
	"strings"
	"testing"

	"github.com/transit-tools/fare-resolver/fare"
)

func TestParseDelimited_TabSeparated(t *testing.T) {
	input := "出発地\t到着地\t運賃\n東京\t沖縄\t12000\n大阪\t那覇\t11000\n"
	rows, err := ParseDelimited(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0][0].Label != "出発地" || rows[0][0].Value != "東京" {
		t.Errorf("first cell = %+v", rows[0][0])
	}
	if rows[1][2].Value != "11000" {
		t.Errorf("fare cell = %+v", rows[1][2])
	}
}

func TestParseDelimited_CommaWithQuotes(t *testing.T) {
	input := "from,to,fare\n\"Tokyo, Japan\",Okinawa,12000\n\"He said \"\"go\"\"\",Naha,9000\n"
	rows, err := ParseDelimited(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0][0].Value != "Tokyo, Japan" {
		t.Errorf("quoted comma field = %q", rows[0][0].Value)
	}
	if rows[1][0].Value != `He said "go"` {
		t.Errorf("doubled-quote escape = %q", rows[1][0].Value)
	}
}

func TestParseDelimited_PadsShortRows(t *testing.T) {
	input := "from\tto\tfare\n東京\t沖縄\n"
	rows, err := ParseDelimited(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows", len(rows))
	}
	if len(rows[0]) != 3 {
		t.Fatalf("row has %d cells, want padded 3", len(rows[0]))
	}
	if rows[0][2].Value != "" {
		t.Errorf("padded cell = %q, want empty", rows[0][2].Value)
	}
}

func TestParseDelimited_CRLFAndBlankLines(t *testing.T) {
	input := "from\tto\tfare\r\n東京\t沖縄\t12000\r\n\r\n"
	rows, err := ParseDelimited(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Errorf("got %d rows, want 1", len(rows))
	}
}

func TestParseDelimited_Empty(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"whitespace only", "\n\n  \n"},
		{"header only", "from\tto\tfare\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := ParseDelimited(strings.NewReader(tt.input))
			if err != nil {
				t.Fatal(err)
			}
			if len(rows) != 0 {
				t.Errorf("got %d rows, want 0", len(rows))
			}
		})
	}
}

func TestParseAliasRows(t *testing.T) {
	input := "別名,正式名称\n羽田,東京\nHaneda,Tokyo\n,沖縄\n"
	raw, err := ParseDelimited(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	got := ParseAliasRows(raw)
	want := []fare.AliasRow{
		{Alias: "羽田", Canonical: "東京"},
		{Alias: "Haneda", Canonical: "Tokyo"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d alias rows, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}
