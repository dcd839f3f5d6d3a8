package models

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatQuoteNumber(t *testing.T) {
	cases := []struct {
		seq  int
		want string
	}{
		{1, "PREV-00001"},
		{42, "PREV-00042"},
		{99999, "PREV-99999"},
		{100000, "PREV-100000"}, // grows past five digits instead of wrapping
	}
	for _, tc := range cases {
		if got := FormatQuoteNumber(tc.seq); got != tc.want {
			t.Errorf("FormatQuoteNumber(%d) = %s, want %s", tc.seq, got, tc.want)
		}
	}
}

func TestParseQuoteNumber(t *testing.T) {
	valid := []struct {
		number string
		want   int
	}{
		{"PREV-00001", 1},
		{"PREV-00042", 42},
		{"PREV-100000", 100000},
	}
	for _, tc := range valid {
		got, err := ParseQuoteNumber(tc.number)
		if err != nil {
			t.Errorf("ParseQuoteNumber(%q): %v", tc.number, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseQuoteNumber(%q) = %d, want %d", tc.number, got, tc.want)
		}
	}

	invalid := []string{"", "PREV-", "PREV-ABC", "PREV-123", "prev-00001", "INV-00001", "PREV-00001x"}
	for _, number := range invalid {
		if _, err := ParseQuoteNumber(number); !errors.Is(err, ErrQuoteNumberFormat) {
			t.Errorf("ParseQuoteNumber(%q): expected ErrQuoteNumberFormat, got %v", number, err)
		}
	}
}

func TestLineTotal(t *testing.T) {
	item := QuoteLineItem{
		Quantity:       3,
		UnitPriceFinal: decimal.RequireFromString("199.99"),
	}
	if got := item.LineTotal().StringFixed(2); got != "599.97" {
		t.Fatalf("expected 599.97 got %s", got)
	}
}

func TestConsultationTypeLabel(t *testing.T) {
	if got := ConsultationTypeLabel(ConsultationTypeSurvey); got != "Measurement survey" {
		t.Fatalf("unexpected label %q", got)
	}
	if got := ConsultationTypeLabel("something-else"); got != "something-else" {
		t.Fatalf("unknown code should fall back to itself, got %q", got)
	}
}
