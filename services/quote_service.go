// services/quote_service.go
package services

import (
	"errors"

	"negoziocucine-backend/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrQuoteNotFound    = errors.New("quote not found")
	ErrLineItemNotFound = errors.New("line item not found")
	ErrProductNotFound  = errors.New("product not found")
)

// QuoteService owns the quote aggregate: numbering on first save, the
// line-item price lock, and the derived total. Every line-item mutation
// recomputes and persists the parent total in the same transaction.
type QuoteService struct {
	db *gorm.DB
}

func NewQuoteService(db *gorm.DB) *QuoteService {
	return &QuoteService{db: db}
}

type LineItemInput struct {
	ProductID  uint
	Quantity   int
	UnitPrice  *decimal.Decimal
	Note       string
	OrderIndex int
}

type LineItemUpdate struct {
	Quantity   *int
	UnitPrice  *decimal.Decimal
	Note       *string
	OrderIndex *int
}

// ComputeTotal derives a quote total from its line items: sum of
// quantity x locked unit price, reduced by the discount percentage,
// rounded half-up to 2 decimal places. Decimal arithmetic throughout,
// this is currency.
func ComputeTotal(items []models.QuoteLineItem, discountPct decimal.Decimal) decimal.Decimal {
	subtotal := decimal.Zero
	for i := range items {
		subtotal = subtotal.Add(items[i].LineTotal())
	}
	discount := subtotal.Mul(discountPct).Div(decimal.NewFromInt(100))
	return subtotal.Sub(discount).Round(2)
}

// CreateQuote persists a new quote header plus any initial line items.
// The quote number is assigned by the model's create hook; a malformed
// predecessor number aborts the whole transaction.
func (s *QuoteService) CreateQuote(customerID uint, status string, discountPct decimal.Decimal, validityDays int, notes string, items []LineItemInput) (*models.Quote, error) {
	if status == "" {
		status = models.QuoteStatusDraft
	}
	if validityDays == 0 {
		validityDays = 30
	}
	quote := models.Quote{
		CustomerID:         customerID,
		Status:             status,
		EstimatedTotal:     decimal.Zero,
		DiscountPercentage: discountPct,
		ValidityDays:       validityDays,
		Notes:              notes,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var customer models.Customer
		if err := tx.First(&customer, customerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCustomerNotFound
			}
			return err
		}
		for _, in := range items {
			item, err := s.buildLineItem(tx, in)
			if err != nil {
				return err
			}
			quote.Items = append(quote.Items, *item)
		}
		if err := tx.Create(&quote).Error; err != nil {
			return err
		}
		_, err := s.recomputeTotal(tx, &quote)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// AddLineItem appends a line item and synchronously refreshes the parent
// total. When no explicit unit price is supplied, the product's current
// base price is copied in and frozen.
func (s *QuoteService) AddLineItem(quoteID uint, in LineItemInput) (*models.QuoteLineItem, error) {
	var item *models.QuoteLineItem
	err := s.db.Transaction(func(tx *gorm.DB) error {
		quote, err := s.findQuote(tx, quoteID)
		if err != nil {
			return err
		}
		item, err = s.buildLineItem(tx, in)
		if err != nil {
			return err
		}
		item.QuoteID = quote.ID
		if err := tx.Create(item).Error; err != nil {
			return err
		}
		_, err = s.recomputeTotal(tx, quote)
		return err
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateLineItem applies the supplied fields and refreshes the parent
// total. The unit price only changes when the caller sends one explicitly.
func (s *QuoteService) UpdateLineItem(quoteID, itemID uint, in LineItemUpdate) (*models.QuoteLineItem, error) {
	var item models.QuoteLineItem
	err := s.db.Transaction(func(tx *gorm.DB) error {
		quote, err := s.findQuote(tx, quoteID)
		if err != nil {
			return err
		}
		if err := tx.Where("quote_id = ?", quote.ID).First(&item, itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrLineItemNotFound
			}
			return err
		}
		if in.Quantity != nil {
			item.Quantity = *in.Quantity
		}
		if in.UnitPrice != nil {
			item.UnitPriceFinal = *in.UnitPrice
		}
		if in.Note != nil {
			item.Note = *in.Note
		}
		if in.OrderIndex != nil {
			item.OrderIndex = *in.OrderIndex
		}
		if err := tx.Save(&item).Error; err != nil {
			return err
		}
		_, err = s.recomputeTotal(tx, quote)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveLineItem deletes a line item and refreshes the parent total.
func (s *QuoteService) RemoveLineItem(quoteID, itemID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		quote, err := s.findQuote(tx, quoteID)
		if err != nil {
			return err
		}
		result := tx.Where("quote_id = ?", quote.ID).Delete(&models.QuoteLineItem{}, itemID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrLineItemNotFound
		}
		_, err = s.recomputeTotal(tx, quote)
		return err
	})
}

// RecomputeTotal re-derives and persists the total for a quote. Exposed
// for header updates that change the discount percentage.
func (s *QuoteService) RecomputeTotal(tx *gorm.DB, quoteID uint) (decimal.Decimal, error) {
	quote, err := s.findQuote(tx, quoteID)
	if err != nil {
		return decimal.Zero, err
	}
	return s.recomputeTotal(tx, quote)
}

func (s *QuoteService) findQuote(tx *gorm.DB, quoteID uint) (*models.Quote, error) {
	var quote models.Quote
	if err := tx.First(&quote, quoteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, err
	}
	return &quote, nil
}

func (s *QuoteService) buildLineItem(tx *gorm.DB, in LineItemInput) (*models.QuoteLineItem, error) {
	var product models.Product
	if err := tx.First(&product, in.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	price := product.BasePrice
	if in.UnitPrice != nil {
		price = *in.UnitPrice
	}
	return &models.QuoteLineItem{
		ProductID:      product.ID,
		Quantity:       in.Quantity,
		UnitPriceFinal: price,
		Note:           in.Note,
		OrderIndex:     in.OrderIndex,
	}, nil
}

// recomputeTotal reads the line items back inside the same transaction,
// so the mutation that triggered it is already visible, and writes the
// total with a single-column update.
func (s *QuoteService) recomputeTotal(tx *gorm.DB, quote *models.Quote) (decimal.Decimal, error) {
	var items []models.QuoteLineItem
	if err := tx.Where("quote_id = ?", quote.ID).Order("order_index, id").Find(&items).Error; err != nil {
		return decimal.Zero, err
	}
	total := ComputeTotal(items, quote.DiscountPercentage)
	if err := tx.Model(&models.Quote{}).Where("id = ?", quote.ID).
		UpdateColumn("estimated_total", total).Error; err != nil {
		return decimal.Zero, err
	}
	quote.EstimatedTotal = total
	quote.Items = items
	return total, nil
}
