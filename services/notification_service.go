// services/notification_service.go
package services

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"negoziocucine-backend/models"
	"negoziocucine-backend/utils"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gopkg.in/gomail.v2"
	"gorm.io/gorm"
)

// NotificationService dispatches customer-facing messages. Everything
// except SendQuote is best-effort: failures are logged to the
// notification log and never reach the caller.
type NotificationService struct {
	db     *gorm.DB
	dialer *gomail.Dialer
	sms    *twilio.RestClient
	from   string
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if port == 0 {
		port = 587
	}
	dialer := gomail.NewDialer(
		os.Getenv("SMTP_HOST"),
		port,
		os.Getenv("SMTP_USERNAME"),
		os.Getenv("SMTP_PASSWORD"),
	)

	// Twilio client for SMS reminders
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = shopEmail()
	}

	return &NotificationService{
		db:     db,
		dialer: dialer,
		sms: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
		from: from,
	}
}

// Daily reminder sweep at 8 AM.
const dailyReminderSchedule = "0 8 * * *"

func (s *NotificationService) StartScheduler() {
	c := cron.New()

	if _, err := c.AddFunc(dailyReminderSchedule, s.SendDailyReminders); err != nil {
		log.Printf("Failed to schedule daily reminder sweep: %v", err)
		return
	}

	c.Start()
	log.Println("Appointment reminder scheduler started")
}

// SendDailyReminders sweeps tomorrow's confirmed appointments and sends
// each customer a reminder.
func (s *NotificationService) SendDailyReminders() {
	log.Println("Starting daily appointment reminder sweep...")

	start := utils.BeginningOfDay(time.Now().AddDate(0, 0, 1))
	end := start.AddDate(0, 0, 1)

	var appointments []models.Appointment
	if err := s.db.Preload("Customer").
		Where("scheduled_at >= ? AND scheduled_at < ? AND status = ?",
			start, end, models.AppointmentStatusConfirmed).
		Find(&appointments).Error; err != nil {
		log.Printf("Failed to fetch appointments for reminders: %v", err)
		return
	}

	for i := range appointments {
		s.SendAppointmentReminder(&appointments[i])
	}

	log.Println("Daily appointment reminder sweep completed")
}

// SendBookingReceived notifies the customer that the request arrived and
// alerts the staff inbox. Both are best-effort.
func (s *NotificationService) SendBookingReceived(appt *models.Appointment) {
	customer := &appt.Customer

	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"We have received your appointment request for %s.\n\n"+
			"We will contact you shortly to confirm.\n\n"+
			"Kind regards,\n%s",
		customer.FullName(), utils.FormatDateTime(appt.ScheduledAt), shopName())
	s.sendEmail(customer.Email, "booking_received",
		"Appointment Request Received - "+shopName(), body)

	staff := os.Getenv("STAFF_NOTIFY_EMAIL")
	if staff == "" {
		staff = shopEmail()
	}
	alert := fmt.Sprintf(
		"New appointment request:\n"+
			"Customer: %s\n"+
			"Email: %s\n"+
			"Phone: %s\n"+
			"Date: %s\n"+
			"Type: %s\n",
		customer.FullName(), customer.Email, customer.Phone,
		utils.FormatDateTime(appt.ScheduledAt),
		models.ConsultationTypeLabel(appt.ConsultationType))
	s.sendEmail(staff, "staff_alert", "New Appointment Request", alert)
}

// SendAppointmentConfirmed is fired on the transition into "confirmed".
func (s *NotificationService) SendAppointmentConfirmed(appt *models.Appointment) {
	customer := &appt.Customer
	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Your appointment (%s) on %s has been confirmed.\n\n"+
			"We look forward to seeing you.\n\n"+
			"Kind regards,\n%s",
		customer.FullName(),
		models.ConsultationTypeLabel(appt.ConsultationType),
		utils.FormatDateTime(appt.ScheduledAt), shopName())
	s.sendEmail(customer.Email, "appointment_confirmed",
		"Appointment Confirmed - "+shopName(), body)
}

// SendAppointmentReminder texts the customer when a phone number is on
// file, otherwise falls back to email.
func (s *NotificationService) SendAppointmentReminder(appt *models.Appointment) {
	customer := &appt.Customer
	message := fmt.Sprintf(
		"Reminder from %s: your appointment (%s) is scheduled for %s.",
		shopName(),
		models.ConsultationTypeLabel(appt.ConsultationType),
		utils.FormatDateTime(appt.ScheduledAt))

	if customer.Phone != "" {
		s.sendSMS(customer.Phone, "appointment_reminder", message)
		return
	}
	s.sendEmail(customer.Email, "appointment_reminder",
		"Appointment Reminder - "+shopName(), message)
}

// SendQuote renders the quote document and emails it as an attachment.
// Unlike the appointment notices this returns the delivery error: the
// caller only flips the quote to "sent" when dispatch succeeded.
func (s *NotificationService) SendQuote(quote *models.Quote) error {
	pdf, err := RenderQuotePDF(quote)
	if err != nil {
		return err
	}

	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Please find attached the quote you requested.\n\n"+
			"The quote is valid for %d days from the date of issue.\n\n"+
			"Do not hesitate to contact us with any questions.\n\n"+
			"Kind regards,\n%s",
		quote.Customer.FullName(), quote.ValidityDays, shopName())

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", quote.Customer.Email)
	m.SetHeader("Subject", fmt.Sprintf("Quote %s - %s", quote.QuoteNumber, shopName()))
	m.SetBody("text/plain", body)
	m.Attach(fmt.Sprintf("quote_%s.pdf", quote.QuoteNumber),
		gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(pdf)
			return err
		}))

	err = s.dialer.DialAndSend(m)
	if err != nil {
		log.Printf("Failed to send quote %s to %s: %v", quote.QuoteNumber, quote.Customer.Email, err)
	}
	s.logNotification(models.NotificationChannelEmail, quote.Customer.Email, "quote_sent", err)
	return err
}

func (s *NotificationService) sendEmail(recipient, kind, subject, body string) {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", recipient)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	err := s.dialer.DialAndSend(m)
	if err != nil {
		log.Printf("Failed to send %s email to %s: %v", kind, recipient, err)
	}
	s.logNotification(models.NotificationChannelEmail, recipient, kind, err)
}

func (s *NotificationService) sendSMS(phone, kind, message string) {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(phone)
	params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	params.SetBody(message)

	resp, err := s.sms.Api.CreateMessage(params)
	if err != nil {
		log.Printf("Failed to send %s SMS to %s: %v", kind, phone, err)
	} else if resp.Sid != nil {
		log.Printf("SMS sent to %s, SID: %s", phone, *resp.Sid)
	}
	s.logNotification(models.NotificationChannelSMS, phone, kind, err)
}

func (s *NotificationService) logNotification(channel, recipient, kind string, sendErr error) {
	status := "sent"
	errorMsg := ""
	if sendErr != nil {
		status = "failed"
		errorMsg = sendErr.Error()
	}

	entry := models.NotificationLog{
		Channel:      channel,
		Recipient:    recipient,
		Kind:         kind,
		Status:       status,
		ErrorMessage: errorMsg,
		SentAt:       time.Now(),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		log.Printf("Failed to log %s notification to %s: %v", kind, recipient, err)
	}
}
