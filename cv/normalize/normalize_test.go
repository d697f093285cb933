package normalize

import "testing"

func TestRecordUsesFirstNonEmptyCandidate(t *testing.T) {
	fields := []Field{
		{Attr: "title", Candidates: []string{"Patent_Title", "patentTitle", "title"}},
	}
	raw := map[string]any{
		"Patent_Title": "",
		"patentTitle":  "Adaptive Antenna",
		"title":        "stale value",
	}

	rec := Record(fields, raw, "")
	if got := rec["title"]; got != "Adaptive Antenna" {
		t.Fatalf("title = %q, want %q", got, "Adaptive Antenna")
	}
}

func TestRecordFallbackWhenAllCandidatesMissing(t *testing.T) {
	fields := []Field{
		{Attr: "status", Candidates: []string{"Status", "patent_status"}},
	}

	rec := Record(fields, map[string]any{"unrelated": "x"}, "")
	if got := rec["status"]; got != DefaultFallback {
		t.Fatalf("status = %q, want %q", got, DefaultFallback)
	}

	rec = Record(fields, map[string]any{"Status": nil}, "-")
	if got := rec["status"]; got != "-" {
		t.Fatalf("status with custom fallback = %q, want %q", got, "-")
	}
}

func TestDateFormatsISOToDisplay(t *testing.T) {
	cases := map[string]string{
		"2023-01-15":           "15/01/2023",
		"2023-01-15T10:30:00Z": "15/01/2023",
		"2023/01/15":           "15/01/2023",
		"15-01-2023":           "15/01/2023",
	}
	for in, want := range cases {
		if got := Date(in); got != want {
			t.Errorf("Date(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDateIdempotentOnDisplayFormat(t *testing.T) {
	if got := Date("15/01/2023"); got != "15/01/2023" {
		t.Fatalf("Date = %q, want unchanged", got)
	}
}

func TestDateDegradesToRawText(t *testing.T) {
	if got := Date("circa 1998"); got != "circa 1998" {
		t.Fatalf("Date = %q, want raw passthrough", got)
	}
}

func TestCurrencyFormatting(t *testing.T) {
	cases := map[string]string{
		"50000":     "₹ 50,000",
		"1234567":   "₹ 12,34,567",
		"999":       "₹ 999",
		"₹ 2500":    "₹ 2,500",
		"1,00,000":  "₹ 1,00,000",
		"1234.50":   "₹ 1,234.5",
		"-1234567":  "₹ -12,34,567",
	}
	for in, want := range cases {
		if got := Currency(in, "N/A"); got != want {
			t.Errorf("Currency(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCurrencyNonNumericFallsBack(t *testing.T) {
	if got := Currency("undisclosed", "N/A"); got != "N/A" {
		t.Fatalf("Currency = %q, want fallback", got)
	}
	if got := Currency("", "-"); got != "-" {
		t.Fatalf("Currency empty = %q, want fallback", got)
	}
}

func TestValueCurrencyFromNumericJSON(t *testing.T) {
	f := Field{Attr: "earnings", Candidates: []string{"Earnings_Generate", "earnings"}, Kind: KindCurrency}
	got := Value(f, map[string]any{"Earnings_Generate": float64(50000)}, "N/A")
	if got != "₹ 50,000" {
		t.Fatalf("Value = %q, want %q", got, "₹ 50,000")
	}
}

func TestRecordDoesNotMutateInput(t *testing.T) {
	raw := map[string]any{"Title": "X"}
	Record([]Field{{Attr: "title", Candidates: []string{"Title"}}}, raw, "")
	if len(raw) != 1 || raw["Title"] != "X" {
		t.Fatalf("raw record mutated: %v", raw)
	}
}
