package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"negoziocucine-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func productRouter() *gin.Engine {
	r := gin.New()
	r.GET("/catalog/products", GetCatalogProducts)
	r.DELETE("/api/products/:id", DeleteProduct)
	return r
}

func seedCatalog(t *testing.T, db *gorm.DB) (models.Category, models.Product) {
	t.Helper()
	category := models.Category{Name: "Kitchens"}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("category: %v", err)
	}
	product := models.Product{
		CategoryID: category.ID,
		Name:       "Modern Kitchen",
		BasePrice:  decimal.RequireFromString("4500.00"),
		Available:  true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("product: %v", err)
	}
	return category, product
}

func TestDeleteProductUnreferenced(t *testing.T) {
	db := setupTestDB(t)
	r := productRouter()
	_, product := seedCatalog(t, db)

	w := performJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/products/%d", product.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", w.Code, w.Body.String())
	}

	var count int64
	db.Model(&models.Product{}).Count(&count)
	if count != 0 {
		t.Fatalf("product still present")
	}
}

func TestDeleteProductReferencedByQuote(t *testing.T) {
	db := setupTestDB(t)
	r := productRouter()
	_, product := seedCatalog(t, db)

	customer := models.Customer{Name: "Mario", Surname: "Rossi", Email: "mario@example.com", Phone: "+393331234567"}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("customer: %v", err)
	}
	quote := models.Quote{CustomerID: customer.ID, Status: models.QuoteStatusDraft}
	if err := db.Create(&quote).Error; err != nil {
		t.Fatalf("quote: %v", err)
	}
	item := models.QuoteLineItem{
		QuoteID:        quote.ID,
		ProductID:      product.ID,
		Quantity:       1,
		UnitPriceFinal: product.BasePrice,
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("line item: %v", err)
	}

	w := performJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/products/%d", product.ID), nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d: %s", w.Code, w.Body.String())
	}

	var count int64
	db.Model(&models.Product{}).Count(&count)
	if count != 1 {
		t.Fatalf("referenced product was deleted")
	}
}

func TestCatalogHidesUnavailableProducts(t *testing.T) {
	db := setupTestDB(t)
	r := productRouter()
	category, _ := seedCatalog(t, db)

	hidden := models.Product{
		CategoryID: category.ID,
		Name:       "Discontinued Kitchen",
		BasePrice:  decimal.RequireFromString("1000.00"),
		Available:  false,
	}
	if err := db.Create(&hidden).Error; err != nil {
		t.Fatalf("product: %v", err)
	}

	w := performJSON(t, r, http.MethodGet, "/catalog/products", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	var products []models.Product
	decodeJSON(t, w, &products)
	if len(products) != 1 {
		t.Fatalf("expected 1 visible product got %d", len(products))
	}
	if products[0].Name != "Modern Kitchen" {
		t.Fatalf("unexpected product %s", products[0].Name)
	}
}

func TestCatalogUnknownCategorySlug(t *testing.T) {
	db := setupTestDB(t)
	r := productRouter()
	seedCatalog(t, db)

	w := performJSON(t, r, http.MethodGet, "/catalog/products?category=no-such-slug", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w.Code)
	}
}
