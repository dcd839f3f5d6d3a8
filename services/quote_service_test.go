package services

import (
	"errors"
	"testing"

	"negoziocucine-backend/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Use a unique in-memory database per test to avoid cross-test collisions.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Customer{}, &models.Category{}, &models.Product{},
		&models.Quote{}, &models.QuoteLineItem{}, &models.NotificationLog{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedCustomer(t *testing.T, db *gorm.DB) models.Customer {
	t.Helper()
	customer := models.Customer{Name: "Mario", Surname: "Rossi", Email: "mario.rossi@example.com", Phone: "+393331234567"}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("customer: %v", err)
	}
	return customer
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price string) models.Product {
	t.Helper()
	var category models.Category
	err := db.Where("name = ?", "Kitchens").First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		category = models.Category{Name: "Kitchens"}
		if err := db.Create(&category).Error; err != nil {
			t.Fatalf("category: %v", err)
		}
	} else if err != nil {
		t.Fatalf("category lookup: %v", err)
	}
	product := models.Product{
		CategoryID: category.ID,
		Name:       name,
		BasePrice:  decimal.RequireFromString(price),
		Available:  true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("product: %v", err)
	}
	return product
}

func TestComputeTotal(t *testing.T) {
	item := func(price string, qty int) models.QuoteLineItem {
		return models.QuoteLineItem{UnitPriceFinal: decimal.RequireFromString(price), Quantity: qty}
	}

	cases := []struct {
		name     string
		items    []models.QuoteLineItem
		discount string
		want     string
	}{
		{"no items", nil, "0", "0.00"},
		{"no discount", []models.QuoteLineItem{item("100.00", 2), item("50.00", 1)}, "0", "250.00"},
		{"ten percent", []models.QuoteLineItem{item("100.00", 2), item("50.00", 1)}, "10", "225.00"},
		{"full discount", []models.QuoteLineItem{item("100.00", 1)}, "100", "0.00"},
		{"rounding", []models.QuoteLineItem{item("10.00", 1)}, "33.335", "6.67"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeTotal(tc.items, decimal.RequireFromString(tc.discount))
			if got.StringFixed(2) != tc.want {
				t.Fatalf("expected %s got %s", tc.want, got.StringFixed(2))
			}
		})
	}
}

func TestQuoteNumberSequence(t *testing.T) {
	db := setupTestDB(t)
	customer := seedCustomer(t, db)
	svc := NewQuoteService(db)

	for i, want := range []string{"PREV-00001", "PREV-00002", "PREV-00003"} {
		quote, err := svc.CreateQuote(customer.ID, "", decimal.Zero, 0, "", nil)
		if err != nil {
			t.Fatalf("create quote %d: %v", i+1, err)
		}
		if quote.QuoteNumber != want {
			t.Fatalf("expected %s got %s", want, quote.QuoteNumber)
		}
	}
}

func TestQuoteNumberNotReusedAfterDelete(t *testing.T) {
	db := setupTestDB(t)
	customer := seedCustomer(t, db)
	svc := NewQuoteService(db)

	if _, err := svc.CreateQuote(customer.ID, "", decimal.Zero, 0, "", nil); err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := svc.CreateQuote(customer.ID, "", decimal.Zero, 0, "", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := db.Delete(&models.Quote{}, second.ID).Error; err != nil {
		t.Fatalf("delete: %v", err)
	}

	third, err := svc.CreateQuote(customer.ID, "", decimal.Zero, 0, "", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if third.QuoteNumber != "PREV-00003" {
		t.Fatalf("expected PREV-00003 after deleting %s, got %s", second.QuoteNumber, third.QuoteNumber)
	}
}

func TestQuoteNumberCorruptedPredecessor(t *testing.T) {
	db := setupTestDB(t)
	customer := seedCustomer(t, db)

	corrupted := models.Quote{
		CustomerID:  customer.ID,
		QuoteNumber: "PREV-ABC",
		Status:      models.QuoteStatusDraft,
	}
	if err := db.Create(&corrupted).Error; err != nil {
		t.Fatalf("seed corrupted quote: %v", err)
	}

	_, err := NewQuoteService(db).CreateQuote(customer.ID, "", decimal.Zero, 0, "", nil)
	if !errors.Is(err, models.ErrQuoteNumberFormat) {
		t.Fatalf("expected ErrQuoteNumberFormat got %v", err)
	}
}

func TestCreateQuoteDefaults(t *testing.T) {
	db := setupTestDB(t)
	customer := seedCustomer(t, db)

	quote, err := NewQuoteService(db).CreateQuote(customer.ID, "", decimal.Zero, 0, "", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if quote.Status != models.QuoteStatusDraft {
		t.Fatalf("expected draft got %s", quote.Status)
	}
	if quote.ValidityDays != 30 {
		t.Fatalf("expected 30 validity days got %d", quote.ValidityDays)
	}
	if !quote.EstimatedTotal.IsZero() {
		t.Fatalf("expected zero total got %s", quote.EstimatedTotal)
	}
}

func TestCreateQuoteUnknownCustomer(t *testing.T) {
	db := setupTestDB(t)

	_, err := NewQuoteService(db).CreateQuote(9999, "", decimal.Zero, 0, "", nil)
	if !errors.Is(err, ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound got %v", err)
	}
}

func TestLineItemPriceLock(t *testing.T) {
	db := setupTestDB(t)
	customer := seedCustomer(t, db)
	product := seedProduct(t, db, "Modern Kitchen", "1200.00")
	svc := NewQuoteService(db)

	quote, err := svc.CreateQuote(customer.ID, "", decimal.Zero, 0, "", []LineItemInput{
		{ProductID: product.ID, Quantity: 1},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if quote.Items[0].UnitPriceFinal.StringFixed(2) != "1200.00" {
		t.Fatalf("expected base price copied, got %s", quote.Items[0].UnitPriceFinal)
	}

	// A later base-price change must not touch the locked-in price
	if err := db.Model(&product).Update("base_price", decimal.RequireFromString("1500.00")).Error; err != nil {
		t.Fatalf("reprice: %v", err)
	}
	var item models.QuoteLineItem
	if err := db.First(&item, quote.Items[0].ID).Error; err != nil {
		t.Fatalf("reload item: %v", err)
	}
	if item.UnitPriceFinal.StringFixed(2) != "1200.00" {
		t.Fatalf("locked price changed to %s", item.UnitPriceFinal)
	}

	// An explicit unit price wins over the base price
	override := decimal.RequireFromString("999.99")
	added, err := svc.AddLineItem(quote.ID, LineItemInput{ProductID: product.ID, Quantity: 1, UnitPrice: &override})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	if added.UnitPriceFinal.StringFixed(2) != "999.99" {
		t.Fatalf("expected override price, got %s", added.UnitPriceFinal)
	}
}

func TestLineItemMutationsRefreshTotal(t *testing.T) {
	db := setupTestDB(t)
	customer := seedCustomer(t, db)
	product := seedProduct(t, db, "Island Unit", "100.00")
	svc := NewQuoteService(db)

	quote, err := svc.CreateQuote(customer.ID, "", decimal.RequireFromString("10"), 0, "", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	total := func() string {
		var q models.Quote
		if err := db.First(&q, quote.ID).Error; err != nil {
			t.Fatalf("reload quote: %v", err)
		}
		return q.EstimatedTotal.StringFixed(2)
	}

	item, err := svc.AddLineItem(quote.ID, LineItemInput{ProductID: product.ID, Quantity: 2})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if got := total(); got != "180.00" {
		t.Fatalf("after add expected 180.00 got %s", got)
	}

	qty := 3
	if _, err := svc.UpdateLineItem(quote.ID, item.ID, LineItemUpdate{Quantity: &qty}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := total(); got != "270.00" {
		t.Fatalf("after update expected 270.00 got %s", got)
	}

	if err := svc.RemoveLineItem(quote.ID, item.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if got := total(); got != "0.00" {
		t.Fatalf("after remove expected 0.00 got %s", got)
	}
}

func TestLineItemNotFoundSentinels(t *testing.T) {
	db := setupTestDB(t)
	customer := seedCustomer(t, db)
	product := seedProduct(t, db, "Tall Cabinet", "300.00")
	svc := NewQuoteService(db)

	quote, err := svc.CreateQuote(customer.ID, "", decimal.Zero, 0, "", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.AddLineItem(9999, LineItemInput{ProductID: product.ID, Quantity: 1}); !errors.Is(err, ErrQuoteNotFound) {
		t.Fatalf("expected ErrQuoteNotFound got %v", err)
	}
	if _, err := svc.AddLineItem(quote.ID, LineItemInput{ProductID: 9999, Quantity: 1}); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound got %v", err)
	}
	if err := svc.RemoveLineItem(quote.ID, 9999); !errors.Is(err, ErrLineItemNotFound) {
		t.Fatalf("expected ErrLineItemNotFound got %v", err)
	}
}

func TestRecomputeTotalAfterDiscountChange(t *testing.T) {
	db := setupTestDB(t)
	customer := seedCustomer(t, db)
	product := seedProduct(t, db, "Worktop", "200.00")
	svc := NewQuoteService(db)

	quote, err := svc.CreateQuote(customer.ID, "", decimal.Zero, 0, "", []LineItemInput{
		{ProductID: product.ID, Quantity: 1},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := db.Model(&models.Quote{}).Where("id = ?", quote.ID).
		Update("discount_percentage", decimal.RequireFromString("25")).Error; err != nil {
		t.Fatalf("set discount: %v", err)
	}

	total, err := svc.RecomputeTotal(db, quote.ID)
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if total.StringFixed(2) != "150.00" {
		t.Fatalf("expected 150.00 got %s", total.StringFixed(2))
	}
}
