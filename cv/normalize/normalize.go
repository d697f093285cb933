package normalize

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"cvgen-backend/cv/model"
)

// DefaultFallback is the sentinel shown when every candidate field for an
// attribute is missing or empty. Call sites that render dense tables pass a
// shorter one.
const DefaultFallback = "N/A"

const displayDateLayout = "02/01/2006"

// Kind selects the formatting rule applied after a raw value is resolved.
type Kind int

const (
	KindText Kind = iota
	KindDate
	KindCurrency
)

// Field describes one attribute of a category's display schema: the
// attribute name renderers use, and the ordered raw keys that may carry it.
// Different backend versions spell the same concept differently, so the
// first non-empty candidate wins.
type Field struct {
	Attr       string
	Candidates []string
	Kind       Kind
}

// Record resolves every field of a display schema against a raw record.
// It is a pure function: the raw map is never mutated and no formatting
// failure is ever surfaced as an error.
func Record(fields []Field, raw map[string]any, fallback string) model.DisplayRecord {
	if fallback == "" {
		fallback = DefaultFallback
	}
	out := make(model.DisplayRecord, len(fields))
	for _, f := range fields {
		out[f.Attr] = Value(f, raw, fallback)
	}
	return out
}

// Value resolves a single field with the candidate-key policy and applies
// the field's formatting rule.
func Value(f Field, raw map[string]any, fallback string) string {
	text, ok := firstCandidate(f.Candidates, raw)
	if !ok {
		return fallback
	}
	switch f.Kind {
	case KindDate:
		return Date(text)
	case KindCurrency:
		return Currency(text, fallback)
	default:
		return text
	}
}

func firstCandidate(candidates []string, raw map[string]any) (string, bool) {
	for _, key := range candidates {
		val, ok := raw[key]
		if !ok || val == nil {
			continue
		}
		text := strings.TrimSpace(stringify(val))
		if text == "" {
			continue
		}
		return text, true
	}
	return "", false
}

func stringify(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// parseDateLayouts covers the envelope formats seen across the record
// endpoints. dd/mm/yyyy is deliberately absent: already-formatted values
// pass through untouched.
var parseDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006/01/02",
	"02-01-2006",
	"January 2, 2006",
	"2 January 2006",
}

// Date reformats a parseable date to dd/mm/yyyy. An already-formatted
// dd/mm/yyyy value is returned unchanged; anything unparseable degrades to
// the raw text rather than an error.
func Date(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return text
	}
	if isDisplayDate(text) {
		return text
	}
	for _, layout := range parseDateLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t.Format(displayDateLayout)
		}
	}
	return text
}

func isDisplayDate(text string) bool {
	_, err := time.Parse(displayDateLayout, text)
	return err == nil
}

// Currency renders a numeric amount with the rupee glyph and Indian-style
// digit grouping (12,34,567). Non-numeric input yields the fallback.
func Currency(raw string, fallback string) string {
	text := strings.TrimSpace(raw)
	text = strings.TrimPrefix(text, "₹")
	text = strings.ReplaceAll(text, ",", "")
	text = strings.TrimSpace(text)
	if text == "" {
		return fallback
	}
	amount, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return fallback
	}
	return "₹ " + groupIndian(amount)
}

func groupIndian(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}
	whole := strconv.FormatFloat(amount, 'f', -1, 64)
	frac := ""
	if idx := strings.IndexByte(whole, '.'); idx != -1 {
		frac = whole[idx:]
		whole = whole[:idx]
	}

	grouped := whole
	if len(whole) > 3 {
		head := whole[:len(whole)-3]
		tail := whole[len(whole)-3:]
		var parts []string
		for len(head) > 2 {
			parts = append([]string{head[len(head)-2:]}, parts...)
			head = head[:len(head)-2]
		}
		if head != "" {
			parts = append([]string{head}, parts...)
		}
		grouped = strings.Join(append(parts, tail), ",")
	}

	if negative {
		return "-" + grouped + frac
	}
	return grouped + frac
}
