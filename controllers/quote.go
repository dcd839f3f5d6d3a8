package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"negoziocucine-backend/config"
	"negoziocucine-backend/models"
	"negoziocucine-backend/services"
	"negoziocucine-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// QuoteItemInput defines the structure for a quote line item
type QuoteItemInput struct {
	ProductID  uint             `json:"productId" binding:"required"`
	Quantity   int              `json:"quantity" binding:"required,min=1"`
	UnitPrice  *decimal.Decimal `json:"unitPrice"`
	Note       string           `json:"note"`
	OrderIndex int              `json:"orderIndex"`
}

// CreateQuoteInput defines the expected JSON structure for creating a quote
type CreateQuoteInput struct {
	CustomerID         uint             `json:"customerId" binding:"required"`
	Status             string           `json:"status" binding:"omitempty,oneof=draft sent accepted rejected"`
	DiscountPercentage decimal.Decimal  `json:"discountPercentage"`
	ValidityDays       int              `json:"validityDays" binding:"omitempty,min=1"`
	Notes              string           `json:"notes"`
	Items              []QuoteItemInput `json:"items"`
}

// UpdateQuoteInput defines the expected JSON structure for updating a quote header
type UpdateQuoteInput struct {
	CustomerID         *uint            `json:"customerId"`
	Status             *string          `json:"status" binding:"omitempty,oneof=draft sent accepted rejected"`
	DiscountPercentage *decimal.Decimal `json:"discountPercentage"`
	ValidityDays       *int             `json:"validityDays" binding:"omitempty,min=1"`
	Notes              *string          `json:"notes"`
}

// UpdateQuoteItemInput defines the expected JSON structure for updating a line item
type UpdateQuoteItemInput struct {
	Quantity   *int             `json:"quantity" binding:"omitempty,min=1"`
	UnitPrice  *decimal.Decimal `json:"unitPrice"`
	Note       *string          `json:"note"`
	OrderIndex *int             `json:"orderIndex"`
}

// QuoteIDsInput is the payload for bulk quote actions
type QuoteIDsInput struct {
	IDs []uint `json:"ids" binding:"required,min=1"`
}

var hundred = decimal.NewFromInt(100)

func validateDiscount(discount decimal.Decimal) string {
	if discount.IsNegative() {
		return "Discount percentage cannot be negative"
	}
	if discount.GreaterThan(hundred) {
		return "Discount percentage cannot exceed 100"
	}
	return ""
}

func validateUnitPrice(price *decimal.Decimal) string {
	if price != nil && price.IsNegative() {
		return "Unit price cannot be negative"
	}
	return ""
}

func respondQuoteServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrQuoteNotFound):
		utils.RespondWithError(c, http.StatusNotFound, "Quote not found")
	case errors.Is(err, services.ErrLineItemNotFound):
		utils.RespondWithError(c, http.StatusNotFound, "Line item not found")
	case errors.Is(err, services.ErrProductNotFound):
		utils.RespondWithError(c, http.StatusBadRequest, "Product not found")
	case errors.Is(err, services.ErrCustomerNotFound):
		utils.RespondWithError(c, http.StatusBadRequest, "Customer not found")
	case errors.Is(err, models.ErrQuoteNumberFormat):
		// Data-integrity failure, not something the caller can fix
		utils.RespondWithError(c, http.StatusInternalServerError, "Quote numbering corrupted: "+err.Error())
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
	}
}

func loadQuoteFull(db *gorm.DB, quoteID uint) (*models.Quote, error) {
	var quote models.Quote
	err := db.Preload("Customer").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index, id")
		}).
		Preload("Items.Product").
		First(&quote, quoteID).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// CreateQuote creates a new quote with optional initial line items.
// The quote number is assigned on first save and never changes.
func CreateQuote(c *gin.Context) {
	var input CreateQuoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if msg := validateDiscount(input.DiscountPercentage); msg != "" {
		utils.RespondWithError(c, http.StatusBadRequest, msg)
		return
	}

	items := make([]services.LineItemInput, 0, len(input.Items))
	for _, item := range input.Items {
		if msg := validateUnitPrice(item.UnitPrice); msg != "" {
			utils.RespondWithError(c, http.StatusBadRequest, msg)
			return
		}
		items = append(items, services.LineItemInput{
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			Note:       item.Note,
			OrderIndex: item.OrderIndex,
		})
	}

	quote, err := services.NewQuoteService(config.DB).CreateQuote(
		input.CustomerID, input.Status, input.DiscountPercentage,
		input.ValidityDays, input.Notes, items)
	if err != nil {
		respondQuoteServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, quote)
}

// GetQuotes retrieves all quotes, optionally filtered by ?status=
func GetQuotes(c *gin.Context) {
	query := config.DB.Preload("Customer").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index, id")
		}).
		Order("created_at DESC")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var quotes []models.Quote
	if err := query.Find(&quotes).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve quotes")
		return
	}

	c.JSON(http.StatusOK, quotes)
}

// GetQuote retrieves a specific quote with its line items
func GetQuote(c *gin.Context) {
	quoteID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	quote, err := loadQuoteFull(config.DB, quoteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Quote not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, quote)
}

// UpdateQuote updates the quote header. A discount change re-derives the
// total within the same transaction.
func UpdateQuote(c *gin.Context) {
	quoteID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input UpdateQuoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.DiscountPercentage != nil {
		if msg := validateDiscount(*input.DiscountPercentage); msg != "" {
			utils.RespondWithError(c, http.StatusBadRequest, msg)
			return
		}
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var quote models.Quote
	if err := tx.First(&quote, quoteID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Quote not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.CustomerID != nil {
		var customer models.Customer
		if err := tx.First(&customer, *input.CustomerID).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusBadRequest, "Customer not found")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}
		quote.CustomerID = *input.CustomerID
	}
	if input.Status != nil {
		quote.Status = *input.Status
	}
	discountChanged := false
	if input.DiscountPercentage != nil && !quote.DiscountPercentage.Equal(*input.DiscountPercentage) {
		quote.DiscountPercentage = *input.DiscountPercentage
		discountChanged = true
	}
	if input.ValidityDays != nil {
		quote.ValidityDays = *input.ValidityDays
	}
	if input.Notes != nil {
		quote.Notes = *input.Notes
	}

	if err := tx.Save(&quote).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update quote")
		return
	}

	if discountChanged {
		if _, err := services.NewQuoteService(config.DB).RecomputeTotal(tx, quote.ID); err != nil {
			tx.Rollback()
			respondQuoteServiceError(c, err)
			return
		}
	}

	tx.Commit()

	updated, err := loadQuoteFull(config.DB, quote.ID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteQuote soft deletes a quote header and removes its line items, so
// quoted products become deletable again. The number is never reassigned:
// the sequence scan reads the soft-deleted header, not the items.
func DeleteQuote(c *gin.Context) {
	quoteID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var quote models.Quote
	if err := tx.First(&quote, quoteID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Quote not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if err := tx.Where("quote_id = ?", quote.ID).Delete(&models.QuoteLineItem{}).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete quote items")
		return
	}

	if err := tx.Delete(&quote).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete quote")
		return
	}

	tx.Commit()

	c.JSON(http.StatusOK, gin.H{"message": "Quote deleted successfully"})
}

// AddQuoteItem appends a line item to a quote and refreshes its total
func AddQuoteItem(c *gin.Context) {
	quoteID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input QuoteItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if msg := validateUnitPrice(input.UnitPrice); msg != "" {
		utils.RespondWithError(c, http.StatusBadRequest, msg)
		return
	}

	item, err := services.NewQuoteService(config.DB).AddLineItem(quoteID, services.LineItemInput{
		ProductID:  input.ProductID,
		Quantity:   input.Quantity,
		UnitPrice:  input.UnitPrice,
		Note:       input.Note,
		OrderIndex: input.OrderIndex,
	})
	if err != nil {
		respondQuoteServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// UpdateQuoteItem updates a line item and refreshes the quote total
func UpdateQuoteItem(c *gin.Context) {
	quoteID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}

	var input UpdateQuoteItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if msg := validateUnitPrice(input.UnitPrice); msg != "" {
		utils.RespondWithError(c, http.StatusBadRequest, msg)
		return
	}

	item, err := services.NewQuoteService(config.DB).UpdateLineItem(quoteID, itemID, services.LineItemUpdate{
		Quantity:   input.Quantity,
		UnitPrice:  input.UnitPrice,
		Note:       input.Note,
		OrderIndex: input.OrderIndex,
	})
	if err != nil {
		respondQuoteServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// DeleteQuoteItem removes a line item and refreshes the quote total
func DeleteQuoteItem(c *gin.Context) {
	quoteID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}

	if err := services.NewQuoteService(config.DB).RemoveLineItem(quoteID, itemID); err != nil {
		respondQuoteServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Line item deleted successfully"})
}

// MarkQuotesSent bulk-marks quotes as sent
func MarkQuotesSent(c *gin.Context) {
	markQuotes(c, models.QuoteStatusSent)
}

// MarkQuotesAccepted bulk-marks quotes as accepted
func MarkQuotesAccepted(c *gin.Context) {
	markQuotes(c, models.QuoteStatusAccepted)
}

func markQuotes(c *gin.Context, status string) {
	var input QuoteIDsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	result := config.DB.Model(&models.Quote{}).
		Where("id IN ?", input.IDs).
		Update("status", status)

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update quotes")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("%d quotes marked as %s", result.RowsAffected, status),
	})
}

// QuotePDF generates the printable document for a single quote
func QuotePDF(c *gin.Context) {
	quoteID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	quote, err := loadQuoteFull(config.DB, quoteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Quote not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	pdf, err := services.RenderQuotePDF(quote)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=\"quote_%s.pdf\"", quote.QuoteNumber))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// EmailQuote emails the quote document to its customer. The status only
// flips to "sent" when delivery succeeded.
func EmailQuote(c *gin.Context) {
	quoteID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	quote, err := loadQuoteFull(config.DB, quoteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Quote not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if err := services.NewNotificationService(config.DB).SendQuote(quote); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to send quote email")
		return
	}

	if err := config.DB.Model(quote).Update("status", models.QuoteStatusSent).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Quote sent but status update failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Quote " + quote.QuoteNumber + " sent via email"})
}

// EmailQuotes emails several quotes in one action. Each successful send
// flips that quote to "sent"; failures are reported back per quote.
func EmailQuotes(c *gin.Context) {
	var input QuoteIDsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	notifier := services.NewNotificationService(config.DB)

	sent := make([]string, 0, len(input.IDs))
	failed := make([]uint, 0)

	for _, id := range input.IDs {
		quote, err := loadQuoteFull(config.DB, id)
		if err != nil {
			failed = append(failed, id)
			continue
		}
		if err := notifier.SendQuote(quote); err != nil {
			failed = append(failed, id)
			continue
		}
		if err := config.DB.Model(quote).Update("status", models.QuoteStatusSent).Error; err != nil {
			failed = append(failed, id)
			continue
		}
		sent = append(sent, quote.QuoteNumber)
	}

	c.JSON(http.StatusOK, gin.H{
		"sent":   sent,
		"failed": failed,
	})
}
