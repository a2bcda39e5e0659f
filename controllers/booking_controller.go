package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kinotsolarpower/Wash-GoPRO/config"
	"github.com/Kinotsolarpower/Wash-GoPRO/middleware"
	"github.com/Kinotsolarpower/Wash-GoPRO/models"
	"github.com/Kinotsolarpower/Wash-GoPRO/services"
	"github.com/Kinotsolarpower/Wash-GoPRO/utils"
)

// technicianEmail is the fixed assignment target for new bookings. Real
// dispatching is out of scope; every job goes to the seeded technician.
const technicianEmail = "tech@washgo.pro"

// CreateBookingRequest represents the request body for creating a booking
type CreateBookingRequest struct {
	LicensePlate      string  `json:"license_plate" binding:"required"`
	Make              string  `json:"make"`
	Model             string  `json:"model"`
	Color             string  `json:"color"`
	ServiceKey        string  `json:"service_key" binding:"required"`
	RequestedDateTime string  `json:"requested_date_time" binding:"required"`
	SOS               bool    `json:"sos"`
	RiskScore         int     `json:"risk_score"`
	PickupAddress     string  `json:"pickup_address" binding:"required"`
	DeliveryAddress   *string `json:"delivery_address"`
	Locale            string  `json:"locale"`
}

// CreateBooking handles POST /api/v1/bookings - requests a new booking.
// The final price is recomputed server-side from the package base price,
// the surge multiplier and the SOS/delivery selections.
func CreateBooking(c *gin.Context) {
	email, err := middleware.GetUserEmail(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	locale := req.Locale
	if !models.IsValidLocale(locale) {
		locale = models.LocaleEN
	}

	cfg := config.GetConfig()
	db := config.GetDB()

	// A deleted package legitimately misses and yields base price 0
	basePrice := 0.0
	var pkg models.ServicePackage
	if err := db.Where("key = ?", req.ServiceKey).First(&pkg).Error; err == nil {
		if details, ok := pkg.DetailsFor(locale); ok {
			basePrice = details.Price
		}
	}

	differentDelivery := req.DeliveryAddress != nil && *req.DeliveryAddress != ""
	quote := utils.ComputeQuote(basePrice, models.GetSurgeMultiplier(db), req.SOS, differentDelivery, cfg.DeliverySurcharge)
	if quote.TotalPrice <= 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_PRICE",
				"message": "Booking price must be greater than zero",
			},
		})
		return
	}

	travel := services.GetTravelTime(cfg.CompanyAddress, req.PickupAddress)

	booking := models.Booking{
		Reference:          utils.NewBookingReference(),
		LicensePlate:       req.LicensePlate,
		Make:               req.Make,
		Model:              req.Model,
		Color:              req.Color,
		ServiceKey:         req.ServiceKey,
		RequestedDateTime:  req.RequestedDateTime,
		Status:             models.StatusPending,
		CustomerEmail:      email,
		TravelTime:         travel.TravelTime,
		FuelCost:           travel.FuelCost,
		OptimizedRoute:     travel.OptimizedRoute,
		RiskScore:          req.RiskScore,
		SOS:                req.SOS,
		FinalPrice:         quote.TotalPrice,
		AssignedTechnician: technicianEmail,
		PickupAddress:      req.PickupAddress,
		DeliveryAddress:    req.DeliveryAddress,
		TechnicianNotes:    []string{},
	}

	if err := db.Create(&booking).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create booking",
			},
		})
		return
	}

	firstName := "Guest"
	var customer models.User
	if err := db.Where("email = ?", email).First(&customer).Error; err == nil {
		firstName = customer.FirstName
	}
	services.SendBookingRequestConfirmation(&booking, firstName, locale)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"booking": booking,
			"quote":   quote,
		},
	})
}

// withPhotoURL fills in the presigned after-photo URL when one is attached
func withPhotoURL(booking *models.Booking) {
	if booking.AfterPhotoKey == nil || *booking.AfterPhotoKey == "" {
		return
	}
	photoService := services.GetPhotoService()
	if photoService == nil {
		return
	}
	if url, err := photoService.PhotoURL(*booking.AfterPhotoKey); err == nil && url != "" {
		booking.AfterPhotoURL = &url
	}
}

// ListBookings handles GET /api/v1/bookings - all bookings (admin only)
func ListBookings(c *gin.Context) {
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
	for i := range bookings {
		withPhotoURL(&bookings[i])
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    bookings,
	})
}

// MyBookings handles GET /api/v1/bookings/mine - the caller's bookings
func MyBookings(c *gin.Context) {
	email, err := middleware.GetUserEmail(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return
	}

	db := config.GetDB()
	var bookings []models.Booking
	if err := db.Where("customer_email = ?", email).Order("created_at").Find(&bookings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load bookings",
			},
		})
		return
	}
	for i := range bookings {
		withPhotoURL(&bookings[i])
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    bookings,
	})
}

// AssignedBookings handles GET /api/v1/bookings/assigned - the technician's
// open jobs (completed ones drop off the list)
func AssignedBookings(c *gin.Context) {
	email, err := middleware.GetUserEmail(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return
	}

	db := config.GetDB()
	var bookings []models.Booking
	if err := db.Where("assigned_technician = ? AND status <> ?", email, models.StatusCompleted).
		Order("created_at").Find(&bookings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load bookings",
			},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    bookings,
	})
}

// findBookingByReference loads a booking or writes the 404 envelope
func findBookingByReference(c *gin.Context, reference string) (*models.Booking, bool) {
	db := config.GetDB()
	var booking models.Booking
	if err := db.Where("reference = ?", reference).First(&booking).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "BOOKING_NOT_FOUND",
				"message": "Booking not found",
			},
		})
		return nil, false
	}
	return &booking, true
}

// ConfirmBooking handles PUT /api/v1/bookings/:id/confirm - moves a pending
// booking to confirmed (admin only)
func ConfirmBooking(c *gin.Context) {
	booking, ok := findBookingByReference(c, c.Param("id"))
	if !ok {
		return
	}

	if !models.CanTransition(booking.Status, models.StatusConfirmed) {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_TRANSITION",
				"message": "Only pending bookings can be confirmed",
			},
		})
		return
	}

	db := config.GetDB()
	booking.Status = models.StatusConfirmed
	if err := db.Save(booking).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update booking",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    booking,
	})
}

// CompleteBooking handles PUT /api/v1/bookings/:id/complete - moves a
// confirmed booking to completed. The after-photo must be attached in the
// same request: either a multipart "photo" file stored via the photo
// service, or a non-empty "photo_url" form field.
func CompleteBooking(c *gin.Context) {
	booking, ok := findBookingByReference(c, c.Param("id"))
	if !ok {
		return
	}

	if !models.CanTransition(booking.Status, models.StatusCompleted) {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_TRANSITION",
				"message": "Only confirmed bookings can be completed",
			},
		})
		return
	}

	var photoKey string
	if fileHeader, err := c.FormFile("photo"); err == nil {
		key, err := services.GetPhotoService().UploadPhoto(fileHeader, "after")
		if err != nil {
			status := http.StatusInternalServerError
			code := "UPLOAD_ERROR"
			if uploadErr, ok := err.(*utils.FileUploadError); ok {
				status = http.StatusBadRequest
				code = uploadErr.Code
			}
			c.JSON(status, gin.H{
				"success": false,
				"error": gin.H{
					"code":    code,
					"message": err.Error(),
				},
			})
			return
		}
		photoKey = key
	} else if url := c.PostForm("photo_url"); url != "" {
		photoKey = url
	}

	if photoKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_PHOTO",
				"message": "An after-photo is required to complete a booking",
			},
		})
		return
	}

	db := config.GetDB()
	booking.Status = models.StatusCompleted
	booking.AfterPhotoKey = &photoKey
	if err := db.Save(booking).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update booking",
			},
		})
		return
	}

	withPhotoURL(booking)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    booking,
	})
}

// AddNoteRequest represents the request body for a technician damage note
type AddNoteRequest struct {
	Note string `json:"note" binding:"required"`
}

// AddDamageNote handles POST /api/v1/bookings/:id/notes - appends a damage
// note (technicians only). Notes never change the booking status.
func AddDamageNote(c *gin.Context) {
	booking, ok := findBookingByReference(c, c.Param("id"))
	if !ok {
		return
	}

	var req AddNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()
	booking.TechnicianNotes = append(booking.TechnicianNotes, req.Note)
	if err := db.Save(booking).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to save note",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    booking,
	})
}
