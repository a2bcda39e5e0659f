package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kinotsolarpower/Wash-GoPRO/config"
	"github.com/Kinotsolarpower/Wash-GoPRO/models"
	"github.com/Kinotsolarpower/Wash-GoPRO/services"
)

// writeCSV sends a CSV attachment
func writeCSV(c *gin.Context, filename, content string) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(content))
}

// ExportBookings handles GET /api/v1/export/bookings.csv (admin only)
func ExportBookings(c *gin.Context) {
	locale := c.Query("locale")
	if !models.IsValidLocale(locale) {
		locale = models.LocaleEN
	}

	db := config.GetDB()

	var bookings []models.Booking
	if err := db.Order("created_at").Find(&bookings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load bookings",
			},
		})
		return
	}

	var users []models.User
	if err := db.Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load users",
			},
		})
		return
	}

	var packages []models.ServicePackage
	if err := db.Find(&packages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load packages",
			},
		})
		return
	}

	csv := services.ExportBookingsCSV(bookings, users, packages, locale, config.GetConfig().DeliverySurcharge)
	writeCSV(c, "bookings.csv", csv)
}

// ExportUsers handles GET /api/v1/export/users.csv (admin only)
func ExportUsers(c *gin.Context) {
	db := config.GetDB()
	var users []models.User
	if err := db.Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load users",
			},
		})
		return
	}

	writeCSV(c, "users.csv", services.ExportUsersCSV(users))
}
