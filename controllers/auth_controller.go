package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Kinotsolarpower/Wash-GoPRO/config"
	"github.com/Kinotsolarpower/Wash-GoPRO/middleware"
	"github.com/Kinotsolarpower/Wash-GoPRO/models"
	"github.com/Kinotsolarpower/Wash-GoPRO/utils"
)

// RegisterRequest represents the request body for account registration
type RegisterRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=4"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// sessionResponse pairs a user with a freshly minted token
func sessionResponse(c *gin.Context, status int, user models.User, token string) {
	c.JSON(status, gin.H{
		"success": true,
		"data": gin.H{
			"user":  user,
			"token": token,
		},
	})
}

// Register handles POST /api/v1/auth/register - creates a customer account
func Register(c *gin.Context) {
	var req RegisterRequest
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

	// Duplicate check is case-insensitive; the second registration must not
	// create a record.
	var existing models.User
	if err := db.Where("lower(email) = ?", strings.ToLower(req.Email)).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "USER_EXISTS",
				"message": "A user with this email already exists",
			},
		})
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "HASHING_ERROR",
				"message": "Failed to process password",
			},
		})
		return
	}

	user := models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: hash,
		Address:      req.Address,
		Phone:        req.Phone,
	}
	if err := db.Create(&user).Error; err != nil {
		errMsg := strings.ToLower(err.Error())
		if strings.Contains(errMsg, "duplicate") || strings.Contains(errMsg, "unique") {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "USER_EXISTS",
					"message": "A user with this email already exists",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create user",
			},
		})
		return
	}

	user.Role = models.RoleForEmail(user.Email)

	token, err := middleware.IssueToken(config.GetConfig(), user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "TOKEN_ERROR",
				"message": "Failed to issue session token",
			},
		})
		return
	}

	sessionResponse(c, http.StatusCreated, user, token)
}

// Login handles POST /api/v1/auth/login - authenticates with email+password
func Login(c *gin.Context) {
	var req LoginRequest
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
	var user models.User
	err := db.Where("lower(email) = ?", strings.ToLower(req.Email)).First(&user).Error
	if err != nil || !utils.VerifyPassword(user.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_CREDENTIALS",
				"message": "Email or password is incorrect",
			},
		})
		return
	}

	token, err := middleware.IssueToken(config.GetConfig(), user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "TOKEN_ERROR",
				"message": "Failed to issue session token",
			},
		})
		return
	}

	sessionResponse(c, http.StatusOK, user, token)
}

// Guest handles POST /api/v1/auth/guest - mints a guest session without a
// stored account. The synthetic address keeps booking.customer_email
// resolvable for guest bookings.
func Guest(c *gin.Context) {
	email := utils.NewGuestEmail()
	user := models.User{
		FirstName: "Guest",
		Email:     email,
		Role:      models.RoleGuest,
	}

	token, err := middleware.IssueToken(config.GetConfig(), email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "TOKEN_ERROR",
				"message": "Failed to issue session token",
			},
		})
		return
	}

	sessionResponse(c, http.StatusCreated, user, token)
}

// GetMyProfile handles GET /api/v1/users/me - returns the caller's profile
func GetMyProfile(c *gin.Context) {
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

	// Guests have no stored record; synthesize the profile
	if models.RoleForEmail(email) == models.RoleGuest {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": models.User{
				FirstName: "Guest",
				Email:     email,
				Role:      models.RoleGuest,
			},
		})
		return
	}

	db := config.GetDB()
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "USER_NOT_FOUND",
				"message": "User profile not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    user,
	})
}
