package services

import (
	"bytes"
	"testing"
	"time"

	"negoziocucine-backend/models"

	"github.com/shopspring/decimal"
)

func testQuote() *models.Quote {
	return &models.Quote{
		ID:                 1,
		QuoteNumber:        "PREV-00001",
		Status:             models.QuoteStatusDraft,
		DiscountPercentage: decimal.RequireFromString("10"),
		ValidityDays:       30,
		Notes:              "Installation included",
		CreatedAt:          time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC),
		Customer: models.Customer{
			Name: "Mario", Surname: "Rossi",
			Email: "mario.rossi@example.com", Phone: "+393331234567",
			Address: "Via Roma 1", City: "Milano", PostalCode: "20100",
		},
		Items: []models.QuoteLineItem{
			{
				Quantity:       2,
				UnitPriceFinal: decimal.RequireFromString("1200.00"),
				Product:        models.Product{Name: "Modern Kitchen"},
				Note:           "white finish",
			},
		},
	}
}

func TestRenderQuotePDF(t *testing.T) {
	pdf, err := RenderQuotePDF(testQuote())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatal("expected non-empty document")
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("expected PDF header, got %q", pdf[:8])
	}
}

func TestRenderQuotePDFNoItems(t *testing.T) {
	quote := testQuote()
	quote.Items = nil
	quote.DiscountPercentage = decimal.Zero

	pdf, err := RenderQuotePDF(quote)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatal("expected PDF header")
	}

	// The total line printed for an empty items table
	if got := formatMoney(ComputeTotal(quote.Items, quote.DiscountPercentage)); got != "EUR 0.00" {
		t.Fatalf("expected EUR 0.00 total got %s", got)
	}
}
