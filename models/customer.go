package models

import (
	"time"
)

type Customer struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name       string `gorm:"size:100;not null" json:"name"`
	Surname    string `gorm:"size:100;not null" json:"surname"`
	Email      string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Phone      string `gorm:"size:20;not null" json:"phone"`
	Address    string `gorm:"size:255" json:"address"`
	City       string `gorm:"size:100" json:"city"`
	PostalCode string `gorm:"size:10" json:"postalCode"`
	Notes      string `gorm:"type:text" json:"notes"`

	// Registration timestamp, set once at creation.
	CreatedAt time.Time `json:"createdAt"`

	Appointments []Appointment `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"appointments,omitempty"`
	Quotes       []Quote       `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"quotes,omitempty"`
}

func (c *Customer) FullName() string {
	return c.Name + " " + c.Surname
}
