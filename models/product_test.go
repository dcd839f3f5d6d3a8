package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupModelDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&Category{}, &Product{}, &ProductImage{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestSlugDerivedFromName(t *testing.T) {
	db := setupModelDB(t)

	category := Category{Name: "Kitchens & Accessories"}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	if category.Slug != "kitchens-and-accessories" {
		t.Fatalf("unexpected category slug %q", category.Slug)
	}

	product := Product{
		CategoryID: category.ID,
		Name:       "Cucina Moderna Lux",
		BasePrice:  decimal.RequireFromString("4500.00"),
		Available:  true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	if product.Slug != "cucina-moderna-lux" {
		t.Fatalf("unexpected product slug %q", product.Slug)
	}
}

func TestExplicitSlugKept(t *testing.T) {
	db := setupModelDB(t)

	category := Category{Name: "Kitchens", Slug: "custom-kitchens"}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	if category.Slug != "custom-kitchens" {
		t.Fatalf("explicit slug overwritten: %q", category.Slug)
	}
}
