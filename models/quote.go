package models

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	QuoteStatusDraft    = "draft"
	QuoteStatusSent     = "sent"
	QuoteStatusAccepted = "accepted"
	QuoteStatusRejected = "rejected"
)

const quoteNumberPrefix = "PREV-"

var quoteNumberPattern = regexp.MustCompile(`^PREV-(\d{5,})$`)

// ErrQuoteNumberFormat signals a data-integrity problem: the most recently
// inserted quote carries a number that cannot be parsed, so the next number
// in the sequence cannot be derived.
var ErrQuoteNumberFormat = errors.New("quote number does not match PREV-{sequence} format")

type Quote struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	CustomerID uint `gorm:"index;not null" json:"customerId"`

	QuoteNumber        string          `gorm:"size:20;uniqueIndex;not null" json:"quoteNumber"`
	Status             string          `gorm:"type:varchar(20);not null" json:"status"`
	EstimatedTotal     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"estimatedTotal"`
	DiscountPercentage decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"discountPercentage"`
	ValidityDays       int             `gorm:"not null" json:"validityDays"`
	Notes              string          `gorm:"type:text" json:"notes"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Customer Customer        `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []QuoteLineItem `gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE" json:"items"`
}

// BeforeCreate assigns the next quote number when the quote is first
// persisted without one. The sequence is seeded from the most recently
// inserted quote, soft-deleted rows included, so numbers are never reused.
func (q *Quote) BeforeCreate(tx *gorm.DB) error {
	if q.QuoteNumber != "" {
		return nil
	}
	var last Quote
	err := tx.Model(&Quote{}).Unscoped().
		Select("quote_number").
		Order("id DESC").
		Take(&last).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		q.QuoteNumber = FormatQuoteNumber(1)
		return nil
	}
	if err != nil {
		return err
	}
	seq, err := ParseQuoteNumber(last.QuoteNumber)
	if err != nil {
		return err
	}
	q.QuoteNumber = FormatQuoteNumber(seq + 1)
	return nil
}

func FormatQuoteNumber(seq int) string {
	return fmt.Sprintf("%s%05d", quoteNumberPrefix, seq)
}

// ParseQuoteNumber extracts the numeric suffix from a quote number.
// A malformed number returns ErrQuoteNumberFormat rather than a guess.
func ParseQuoteNumber(number string) (int, error) {
	m := quoteNumberPattern.FindStringSubmatch(number)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrQuoteNumberFormat, number)
	}
	return strconv.Atoi(m[1])
}

type QuoteLineItem struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	QuoteID   uint `gorm:"index;not null" json:"quoteId"`
	ProductID uint `gorm:"index;not null" json:"productId"`

	Quantity int `gorm:"not null" json:"quantity"`
	// Locked in at creation: copied from the product's base price when not
	// supplied explicitly, then unaffected by later base-price changes.
	UnitPriceFinal decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unitPriceFinal"`
	Note           string          `gorm:"size:255" json:"note"`
	OrderIndex     int             `gorm:"default:0" json:"orderIndex"`

	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (li *QuoteLineItem) LineTotal() decimal.Decimal {
	return li.UnitPriceFinal.Mul(decimal.NewFromInt(int64(li.Quantity)))
}
