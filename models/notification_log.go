package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	NotificationChannelEmail = "email"
	NotificationChannelSMS   = "sms"
)

// One row per dispatch attempt. Notifications are best-effort, so failures
// end up here instead of in the caller's error path.
type NotificationLog struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Channel      string    `gorm:"type:varchar(20)" json:"channel"`
	Recipient    string    `gorm:"size:255" json:"recipient"`
	Kind         string    `gorm:"type:varchar(40)" json:"kind"` // booking_received, staff_alert, appointment_confirmed, appointment_reminder, quote_sent
	Status       string    `gorm:"type:varchar(20)" json:"status"` // sent, failed
	ErrorMessage string    `gorm:"type:text" json:"errorMessage"`
	SentAt       time.Time `json:"sentAt"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (n *NotificationLog) BeforeCreate(tx *gorm.DB) (err error) {
	n.ID = uuid.New()
	return
}
