package models

import (
	"time"
)

const (
	ConsultationTypeConsultation = "consultation"
	ConsultationTypeSurvey       = "survey"
	ConsultationTypeQuote        = "quote"
	ConsultationTypeOther        = "other"
)

const (
	AppointmentStatusRequested = "requested"
	AppointmentStatusConfirmed = "confirmed"
	AppointmentStatusCompleted = "completed"
	AppointmentStatusCancelled = "cancelled"
)

var consultationTypeLabels = map[string]string{
	ConsultationTypeConsultation: "Design consultation",
	ConsultationTypeSurvey:       "Measurement survey",
	ConsultationTypeQuote:        "Quote discussion",
	ConsultationTypeOther:        "Other",
}

// ConsultationTypeLabel returns the human-readable label used in
// customer-facing messages. Unknown codes fall back to the code itself.
func ConsultationTypeLabel(code string) string {
	if label, ok := consultationTypeLabels[code]; ok {
		return label
	}
	return code
}

type Appointment struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	CustomerID uint `gorm:"index;not null" json:"customerId"`

	ScheduledAt      time.Time `gorm:"not null" json:"scheduledAt"`
	ConsultationType string    `gorm:"type:varchar(20);not null" json:"consultationType"`
	Status           string    `gorm:"type:varchar(20);not null" json:"status"`
	Notes            string    `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"createdAt"`

	Customer Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
}
