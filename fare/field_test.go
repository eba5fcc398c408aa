package fare

import "testing"

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  CanonicalField
	}{
		{"japanese origin", "出発地", FieldFrom},
		{"japanese destination", "到着地", FieldTo},
		{"english origin", "From", FieldFrom},
		{"english destination", "To", FieldTo},
		{"bom stripped", "\ufeff出発地", FieldFrom},
		{"fare with bracketed unit", "運賃(円)", FieldFare},
		{"fare with fullwidth brackets", "運賃（円）", FieldFare},
		{"price type before fare", "料金種別", FieldPriceType},
		{"season tier", "シーズン", FieldPriceType},
		{"valid from beats from", "Valid From", FieldValidFrom},
		{"valid to beats to", "validTo", FieldValidTo},
		{"japanese valid start", "設定期間開始", FieldValidFrom},
		{"japanese valid end", "設定期間終了", FieldValidTo},
		{"bare range column", "設定期間", FieldValidRange},
		{"boarding start", "搭乗期間開始", FieldWholeFrom},
		{"boarding end", "搭乗期間終了", FieldWholeTo},
		{"alias column", "別名", FieldAlias},
		{"canonical column", "正式名称", FieldCanonical},
		{"date column", "搭乗日", FieldDate},
		{"rule column", "備考", FieldRule},
		{"whitespace inside label", "出 発 地", FieldFrom},
		{"fullwidth space inside label", "出　発　地", FieldFrom},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Canonicalize(tt.label); got != tt.want {
				t.Errorf("Canonicalize(%q) = %q, want %q", tt.label, got, tt.want)
			}
		})
	}
}

func TestCanonicalize_PassThrough(t *testing.T) {
	// Unknown labels survive as their normalized form so forward-compatible
	// data keeps flowing.
	got := Canonicalize("ＸカスタムY列")
	if got == "" {
		t.Fatal("pass-through label should not be empty")
	}
	for _, m := range fieldMatchers {
		if got == m.field {
			t.Fatalf("unknown label mapped to known field %q", got)
		}
	}
}

func TestCanonicalize_OrderSensitive(t *testing.T) {
	// Containment matching must test validity fields before from/to; a swap
	// would classify "validfrom" as an origin column.
	if got := Canonicalize("validfrom"); got != FieldValidFrom {
		t.Errorf("validfrom resolved to %q", got)
	}
	if got := Canonicalize("有効期間開始"); got != FieldValidFrom {
		t.Errorf("有効期間開始 resolved to %q", got)
	}
	if got := Canonicalize("有効期間"); got != FieldValidRange {
		t.Errorf("有効期間 resolved to %q", got)
	}
}
