package controllers

import (
	"net/http"
	"time"

	"negoziocucine-backend/config"
	"negoziocucine-backend/models"
	"negoziocucine-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetDashboardOverview aggregates the counts and shortlists the admin
// landing page shows
func GetDashboardOverview(c *gin.Context) {
	var totalCustomers int64
	config.DB.Model(&models.Customer{}).Count(&totalCustomers)

	var totalProducts int64
	config.DB.Model(&models.Product{}).Count(&totalProducts)

	var pendingAppointments int64
	config.DB.Model(&models.Appointment{}).
		Where("status = ?", models.AppointmentStatusRequested).
		Count(&pendingAppointments)

	var draftQuotes int64
	config.DB.Model(&models.Quote{}).
		Where("status = ?", models.QuoteStatusDraft).
		Count(&draftQuotes)

	// Accepted business this month
	now := time.Now()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	var monthlyAccepted float64
	config.DB.Model(&models.Quote{}).
		Where("status = ? AND updated_at >= ?", models.QuoteStatusAccepted, firstOfMonth).
		Select("COALESCE(SUM(estimated_total), 0)").Scan(&monthlyAccepted)

	var upcomingAppointments []models.Appointment
	if err := config.DB.Preload("Customer").
		Where("scheduled_at >= ? AND status IN ?",
			utils.BeginningOfDay(now),
			[]string{models.AppointmentStatusRequested, models.AppointmentStatusConfirmed}).
		Order("scheduled_at").
		Limit(7).
		Find(&upcomingAppointments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load appointments")
		return
	}

	var recentQuotes []models.Quote
	if err := config.DB.Preload("Customer").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index, id")
		}).
		Order("created_at DESC").
		Limit(5).
		Find(&recentQuotes).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load quotes")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"totalCustomers":       totalCustomers,
		"totalProducts":        totalProducts,
		"pendingAppointments":  pendingAppointments,
		"draftQuotes":          draftQuotes,
		"monthlyAcceptedTotal": monthlyAccepted,
		"upcomingAppointments": upcomingAppointments,
		"recentQuotes":         recentQuotes,
	})
}
