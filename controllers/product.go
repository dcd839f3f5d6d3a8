package controllers

import (
	"errors"
	"net/http"

	"negoziocucine-backend/config"
	"negoziocucine-backend/models"
	"negoziocucine-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CreateProductInput defines the expected JSON structure for creating a product
type CreateProductInput struct {
	CategoryID     uint            `json:"categoryId" binding:"required"`
	Name           string          `json:"name" binding:"required"`
	Slug           string          `json:"slug"`
	Description    string          `json:"description"`
	TechnicalSpecs string          `json:"technicalSpecs"`
	BasePrice      decimal.Decimal `json:"basePrice" binding:"required"`
	Available      *bool           `json:"available"`
	Featured       bool            `json:"featured"`
}

// UpdateProductInput defines the expected JSON structure for updating a product
type UpdateProductInput struct {
	CategoryID     *uint            `json:"categoryId"`
	Name           *string          `json:"name"`
	Description    *string          `json:"description"`
	TechnicalSpecs *string          `json:"technicalSpecs"`
	BasePrice      *decimal.Decimal `json:"basePrice"`
	Available      *bool            `json:"available"`
	Featured       *bool            `json:"featured"`
}

// ProductImageInput defines the expected JSON structure for adding an image
type ProductImageInput struct {
	FilePath   string `json:"filePath" binding:"required"`
	AltText    string `json:"altText" binding:"required"`
	OrderIndex int    `json:"orderIndex"`
	IsPrimary  bool   `json:"isPrimary"`
}

// GetCatalogProducts lists available products (public).
// Supports ?category=<slug> and ?featured=true filters.
func GetCatalogProducts(c *gin.Context) {
	query := config.DB.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("is_primary DESC, order_index, id")
	}).Where("available = ?", true)

	if categorySlug := c.Query("category"); categorySlug != "" {
		var category models.Category
		if err := config.DB.Where("slug = ?", categorySlug).First(&category).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusNotFound, "Category not found")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}
		query = query.Where("category_id = ?", category.ID)
	}

	if c.Query("featured") == "true" {
		query = query.Where("featured = ?", true)
	}

	var products []models.Product
	if err := query.Order("featured DESC, name").Find(&products).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve products")
		return
	}

	c.JSON(http.StatusOK, products)
}

// GetProductBySlug retrieves a product by its slug (public)
func GetProductBySlug(c *gin.Context) {
	var product models.Product
	if err := config.DB.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("is_primary DESC, order_index, id")
	}).Preload("Category").
		Where("slug = ?", c.Param("slug")).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Product not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, product)
}

// CreateProduct creates a new catalog product
func CreateProduct(c *gin.Context) {
	var input CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.BasePrice.IsNegative() {
		utils.RespondWithError(c, http.StatusBadRequest, "Base price cannot be negative")
		return
	}

	var category models.Category
	if err := config.DB.First(&category, input.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Category not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	available := true
	if input.Available != nil {
		available = *input.Available
	}

	product := models.Product{
		CategoryID:     category.ID,
		Name:           input.Name,
		Slug:           input.Slug, // derived from the name in BeforeCreate when empty
		Description:    input.Description,
		TechnicalSpecs: input.TechnicalSpecs,
		BasePrice:      input.BasePrice,
		Available:      available,
		Featured:       input.Featured,
	}

	if err := config.DB.Create(&product).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create product")
		return
	}

	c.JSON(http.StatusCreated, product)
}

// GetProducts lists all products including unavailable ones (admin)
func GetProducts(c *gin.Context) {
	var products []models.Product
	if err := config.DB.Preload("Images").Preload("Category").
		Order("featured DESC, name").Find(&products).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve products")
		return
	}

	c.JSON(http.StatusOK, products)
}

// GetProduct retrieves a specific product by ID (admin)
func GetProduct(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var product models.Product
	if err := config.DB.Preload("Images").Preload("Category").
		First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Product not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, product)
}

// UpdateProduct updates an existing product. Changing the base price does
// not touch quote line items that already locked in a price.
func UpdateProduct(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input UpdateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var product models.Product
	if err := config.DB.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Product not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.CategoryID != nil {
		var category models.Category
		if err := config.DB.First(&category, *input.CategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusBadRequest, "Category not found")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}
		product.CategoryID = *input.CategoryID
	}
	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.TechnicalSpecs != nil {
		product.TechnicalSpecs = *input.TechnicalSpecs
	}
	if input.BasePrice != nil {
		if input.BasePrice.IsNegative() {
			utils.RespondWithError(c, http.StatusBadRequest, "Base price cannot be negative")
			return
		}
		product.BasePrice = *input.BasePrice
	}
	if input.Available != nil {
		product.Available = *input.Available
	}
	if input.Featured != nil {
		product.Featured = *input.Featured
	}

	if err := config.DB.Save(&product).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update product")
		return
	}

	c.JSON(http.StatusOK, product)
}

// DeleteProduct deletes a product unless a quote line item references it
func DeleteProduct(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var product models.Product
	if err := tx.First(&product, productID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Product not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	// Protect-on-delete: quoted products stay
	var referenced int64
	if err := tx.Model(&models.QuoteLineItem{}).
		Where("product_id = ?", product.ID).
		Count(&referenced).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if referenced > 0 {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusConflict, "Product is referenced by quote line items")
		return
	}

	if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductImage{}).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete product images")
		return
	}

	if err := tx.Delete(&product).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete product")
		return
	}

	tx.Commit()

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// AddProductImage attaches an image to a product
func AddProductImage(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input ProductImageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var product models.Product
	if err := config.DB.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Product not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	image := models.ProductImage{
		ProductID:  product.ID,
		FilePath:   input.FilePath,
		AltText:    input.AltText,
		OrderIndex: input.OrderIndex,
		IsPrimary:  input.IsPrimary,
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// Only one primary image per product
	if input.IsPrimary {
		if err := tx.Model(&models.ProductImage{}).
			Where("product_id = ?", product.ID).
			Update("is_primary", false).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update images")
			return
		}
	}

	if err := tx.Create(&image).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to add image")
		return
	}

	tx.Commit()

	c.JSON(http.StatusCreated, image)
}

// DeleteProductImage removes an image from a product
func DeleteProductImage(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	imageID, ok := parseIDParam(c, "imageId")
	if !ok {
		return
	}

	result := config.DB.Where("product_id = ?", productID).
		Delete(&models.ProductImage{}, imageID)

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete image")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Image not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Image deleted successfully"})
}
