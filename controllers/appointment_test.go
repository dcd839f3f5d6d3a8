package controllers

import (
	"net/http"
	"testing"
	"time"

	"negoziocucine-backend/models"

	"github.com/gin-gonic/gin"
)

func bookingRouter() *gin.Engine {
	r := gin.New()
	r.POST("/bookings", BookAppointment)
	return r
}

func TestBookAppointmentCreatesCustomer(t *testing.T) {
	db := setupTestDB(t)
	r := bookingRouter()

	w := performJSON(t, r, http.MethodPost, "/bookings", gin.H{
		"name":             "Mario",
		"surname":          "Rossi",
		"email":            "mario.rossi@example.com",
		"phone":            "+39 333 1234567",
		"requestedAt":      time.Now().AddDate(0, 0, 3).Format(time.RFC3339),
		"consultationType": "survey",
		"notes":            "Third floor, no lift",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", w.Code, w.Body.String())
	}

	var appointment models.Appointment
	decodeJSON(t, w, &appointment)
	if appointment.Status != models.AppointmentStatusRequested {
		t.Fatalf("expected requested got %s", appointment.Status)
	}
	if appointment.ConsultationType != models.ConsultationTypeSurvey {
		t.Fatalf("expected survey got %s", appointment.ConsultationType)
	}

	var customer models.Customer
	if err := db.Where("email = ?", "mario.rossi@example.com").First(&customer).Error; err != nil {
		t.Fatalf("customer not created: %v", err)
	}
	if customer.Name != "Mario" || customer.Surname != "Rossi" {
		t.Fatalf("unexpected customer %s %s", customer.Name, customer.Surname)
	}
}

func TestBookAppointmentReusesCustomerByEmail(t *testing.T) {
	db := setupTestDB(t)
	r := bookingRouter()

	existing := models.Customer{
		Name: "Maria", Surname: "Bianchi",
		Email: "maria@example.com", Phone: "+393330000000",
	}
	if err := db.Create(&existing).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}

	// Same email, different name and phone: the record on file wins
	w := performJSON(t, r, http.MethodPost, "/bookings", gin.H{
		"name":        "M.",
		"surname":     "B.",
		"email":       "maria@example.com",
		"phone":       "+39 999 9999999",
		"requestedAt": time.Now().AddDate(0, 0, 1).Format(time.RFC3339),
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", w.Code, w.Body.String())
	}

	var count int64
	db.Model(&models.Customer{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 customer got %d", count)
	}

	var customer models.Customer
	if err := db.First(&customer, existing.ID).Error; err != nil {
		t.Fatalf("reload customer: %v", err)
	}
	if customer.Name != "Maria" || customer.Phone != "+393330000000" {
		t.Fatalf("existing record was overwritten: %s / %s", customer.Name, customer.Phone)
	}

	var appointment models.Appointment
	if err := db.Where("customer_id = ?", existing.ID).First(&appointment).Error; err != nil {
		t.Fatalf("appointment not linked to existing customer: %v", err)
	}
}

func TestBookAppointmentDefaultsConsultationType(t *testing.T) {
	setupTestDB(t)
	r := bookingRouter()

	w := performJSON(t, r, http.MethodPost, "/bookings", gin.H{
		"name":        "Luca",
		"surname":     "Verdi",
		"email":       "luca@example.com",
		"phone":       "+393331112223",
		"requestedAt": time.Now().AddDate(0, 0, 2).Format(time.RFC3339),
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", w.Code, w.Body.String())
	}

	var appointment models.Appointment
	decodeJSON(t, w, &appointment)
	if appointment.ConsultationType != models.ConsultationTypeConsultation {
		t.Fatalf("expected consultation default got %s", appointment.ConsultationType)
	}
}

func TestBookAppointmentRejectsBadPhone(t *testing.T) {
	setupTestDB(t)
	r := bookingRouter()

	w := performJSON(t, r, http.MethodPost, "/bookings", gin.H{
		"name":        "Luca",
		"surname":     "Verdi",
		"email":       "luca@example.com",
		"phone":       "not-a-phone",
		"requestedAt": time.Now().AddDate(0, 0, 2).Format(time.RFC3339),
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
}
