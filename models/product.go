package models

import (
	"time"

	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	CategoryID uint `gorm:"index;not null" json:"categoryId"`

	Name           string          `gorm:"size:200;not null" json:"name"`
	Slug           string          `gorm:"size:220;uniqueIndex;not null" json:"slug"`
	Description    string          `gorm:"type:text" json:"description"`
	TechnicalSpecs string          `gorm:"type:text" json:"technicalSpecs"`
	BasePrice      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"basePrice"`
	Available      bool            `json:"available"`
	Featured       bool            `json:"featured"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Category Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Images   []ProductImage `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.Slug == "" {
		p.Slug = slug.Make(p.Name)
	}
	return nil
}

type ProductImage struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	ProductID uint `gorm:"index;not null" json:"productId"`

	FilePath   string `gorm:"size:255;not null" json:"filePath"`
	AltText    string `gorm:"size:200;not null" json:"altText"`
	OrderIndex int    `gorm:"default:0" json:"orderIndex"`
	IsPrimary  bool   `json:"isPrimary"`
}
