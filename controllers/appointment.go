package controllers

import (
	"errors"
	"net/http"
	"time"

	"negoziocucine-backend/config"
	"negoziocucine-backend/models"
	"negoziocucine-backend/services"
	"negoziocucine-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// BookingInput is the public appointment-request form
type BookingInput struct {
	Name             string    `json:"name" binding:"required"`
	Surname          string    `json:"surname" binding:"required"`
	Email            string    `json:"email" binding:"required,email"`
	Phone            string    `json:"phone" binding:"required"`
	RequestedAt      time.Time `json:"requestedAt" binding:"required"`
	ConsultationType string    `json:"consultationType" binding:"omitempty,oneof=consultation survey quote other"`
	Notes            string    `json:"notes"`
}

// UpdateAppointmentInput defines the expected JSON structure for updating an appointment
type UpdateAppointmentInput struct {
	ScheduledAt      *time.Time `json:"scheduledAt"`
	ConsultationType *string    `json:"consultationType" binding:"omitempty,oneof=consultation survey quote other"`
	Status           *string    `json:"status" binding:"omitempty,oneof=requested confirmed completed cancelled"`
	Notes            *string    `json:"notes"`
}

// BookAppointment handles the public booking form: the customer record is
// found or created by email, and the appointment starts out "requested".
// When the email is already known the existing record wins; the name and
// phone from the new submission are discarded.
func BookAppointment(c *gin.Context) {
	var input BookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	consultationType := input.ConsultationType
	if consultationType == "" {
		consultationType = models.ConsultationTypeConsultation
	}

	var appointment models.Appointment

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// Get-or-create the customer by email
	var customer models.Customer
	err := tx.Where("email = ?", input.Email).First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		customer = models.Customer{
			Name:    input.Name,
			Surname: input.Surname,
			Email:   input.Email,
			Phone:   input.Phone,
		}
		if err := tx.Create(&customer).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create customer")
			return
		}
	} else if err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	appointment = models.Appointment{
		CustomerID:       customer.ID,
		ScheduledAt:      input.RequestedAt,
		ConsultationType: consultationType,
		Status:           models.AppointmentStatusRequested,
		Notes:            input.Notes,
	}
	if err := tx.Create(&appointment).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create appointment")
		return
	}

	tx.Commit()

	// Best-effort: a failed notification never fails the booking
	appointment.Customer = customer
	services.NewNotificationService(config.DB).SendBookingReceived(&appointment)

	c.JSON(http.StatusCreated, appointment)
}

// GetAppointments lists appointments, optionally filtered by ?status=
func GetAppointments(c *gin.Context) {
	query := config.DB.Preload("Customer").Order("scheduled_at DESC")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var appointments []models.Appointment
	if err := query.Find(&appointments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}

	c.JSON(http.StatusOK, appointments)
}

// GetAppointment retrieves a specific appointment by ID
func GetAppointment(c *gin.Context) {
	appointmentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var appointment models.Appointment
	if err := config.DB.Preload("Customer").
		First(&appointment, appointmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, appointment)
}

// UpdateAppointment updates an existing appointment. Any status may follow
// any other; the transition into "confirmed" notifies the customer.
func UpdateAppointment(c *gin.Context) {
	appointmentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input UpdateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var appointment models.Appointment
	if err := config.DB.Preload("Customer").
		First(&appointment, appointmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	previousStatus := appointment.Status

	if input.ScheduledAt != nil {
		appointment.ScheduledAt = *input.ScheduledAt
	}
	if input.ConsultationType != nil {
		appointment.ConsultationType = *input.ConsultationType
	}
	if input.Status != nil {
		appointment.Status = *input.Status
	}
	if input.Notes != nil {
		appointment.Notes = *input.Notes
	}

	if err := config.DB.Save(&appointment).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update appointment")
		return
	}

	// Best-effort confirmation notice
	if previousStatus != models.AppointmentStatusConfirmed &&
		appointment.Status == models.AppointmentStatusConfirmed {
		services.NewNotificationService(config.DB).SendAppointmentConfirmed(&appointment)
	}

	c.JSON(http.StatusOK, appointment)
}

// DeleteAppointment removes an appointment
func DeleteAppointment(c *gin.Context) {
	appointmentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result := config.DB.Delete(&models.Appointment{}, appointmentID)

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete appointment")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Appointment deleted successfully"})
}

// RemindAppointment sends an explicit reminder for an appointment
func RemindAppointment(c *gin.Context) {
	appointmentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var appointment models.Appointment
	if err := config.DB.Preload("Customer").
		First(&appointment, appointmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	services.NewNotificationService(config.DB).SendAppointmentReminder(&appointment)

	c.JSON(http.StatusOK, gin.H{"message": "Reminder dispatched"})
}
