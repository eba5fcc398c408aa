package fare

import "strings"

// CanonicalField is a normalized fare-table column name. Every raw header
// label maps to exactly one canonical field; labels that match no known
// synonym pass through as their normalized form so unknown columns survive
// without crashing the build.
type CanonicalField string

const (
	FieldFrom       CanonicalField = "from"
	FieldTo         CanonicalField = "to"
	FieldFare       CanonicalField = "fare"
	FieldPriceType  CanonicalField = "priceType"
	FieldWholeFrom  CanonicalField = "wholeFrom"
	FieldWholeTo    CanonicalField = "wholeTo"
	FieldValidFrom  CanonicalField = "validFrom"
	FieldValidTo    CanonicalField = "validTo"
	FieldValidRange CanonicalField = "validRange"
	FieldRule       CanonicalField = "rule"
	FieldAlias      CanonicalField = "alias"
	FieldCanonical  CanonicalField = "canonical"
	FieldDate       CanonicalField = "date"
)

// fieldMatchers is tested in order; the first field whose synonym the
// normalized label contains wins. Window and validity fields come before
// from/to because their labels contain "from"/"to" ("validfrom"), and
// priceType comes before fare because "料金種別" contains "料金".
// The synonym sets encode vendor header variants seen in real exports;
// treat them as domain data, not incidental strings.
var fieldMatchers = []struct {
	field CanonicalField
	terms []string
}{
	{FieldWholeFrom, []string{"搭乗期間開始", "搭乗開始", "利用期間開始", "利用開始", "wholefrom", "boardingfrom", "boardingstart", "travelstart"}},
	{FieldWholeTo, []string{"搭乗期間終了", "搭乗終了", "利用期間終了", "利用終了", "wholeto", "boardingto", "boardingend", "travelend"}},
	{FieldValidFrom, []string{"設定期間開始", "適用期間開始", "有効期間開始", "設定開始", "適用開始", "有効開始", "validfrom", "validstart", "effectivefrom"}},
	{FieldValidTo, []string{"設定期間終了", "適用期間終了", "有効期間終了", "設定終了", "適用終了", "有効終了", "validto", "validend", "effectiveto", "expir"}},
	{FieldValidRange, []string{"設定期間", "適用期間", "有効期間", "validrange", "validity", "validperiod"}},
	{FieldPriceType, []string{"料金種別", "運賃種別", "種別", "シーズン", "タイプ", "pricetype", "faretype", "tier", "season"}},
	{FieldFare, []string{"運賃", "料金", "金額", "価格", "fare", "price", "amount", "cost"}},
	{FieldRule, []string{"備考", "注記", "注意", "条件", "ルール", "rule", "note", "remark"}},
	{FieldCanonical, []string{"正式名称", "正式名", "統一名称", "正規名", "canonical", "official"}},
	{FieldAlias, []string{"別名", "別称", "表記", "エイリアス", "alias", "variant"}},
	{FieldDate, []string{"日付", "年月日", "搭乗日", "利用日", "date"}},
	{FieldFrom, []string{"出発地", "出発", "発地", "乗車", "区間から", "from", "origin", "departure"}},
	{FieldTo, []string{"到着地", "到着", "着地", "降車", "行き先", "目的地", "to", "destination", "arrival"}},
}

// Canonicalize maps an arbitrary header label to its canonical field.
// Matching is containment-based on the normalized label and order-sensitive.
func Canonicalize(label string) CanonicalField {
	n := normalizeHeader(label)
	for _, m := range fieldMatchers {
		for _, t := range m.terms {
			// Terms fold through the same normalizer so glyph variants
			// (long vowel marks, dashes) compare equal on both sides.
			if strings.Contains(n, normalizeHeader(t)) {
				return m.field
			}
		}
	}
	return CanonicalField(n)
}

// normalizeHeader strips a leading BOM, removes whitespace (including
// full-width space) and brackets, collapses dash variants and lowercases.
func normalizeHeader(label string) string {
	label = strings.TrimPrefix(label, "\uFEFF")
	return foldText(label, foldDropBrackets)
}
