package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kinotsolarpower/Wash-GoPRO/config"
	"github.com/Kinotsolarpower/Wash-GoPRO/middleware"
	"github.com/Kinotsolarpower/Wash-GoPRO/models"
)

// MySubscriptions handles GET /api/v1/subscriptions - the caller's plans
func MySubscriptions(c *gin.Context) {
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
	var subscriptions []models.Subscription
	if err := db.Where("user_email = ?", email).Find(&subscriptions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load subscriptions",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    subscriptions,
	})
}

// setSubscriptionStatus flips a subscription owned by the caller
func setSubscriptionStatus(c *gin.Context, status string) {
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
	var subscription models.Subscription
	if err := db.Where("sub_id = ? AND user_email = ?", c.Param("id"), email).First(&subscription).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SUBSCRIPTION_NOT_FOUND",
				"message": "Subscription not found",
			},
		})
		return
	}

	subscription.Status = status
	if err := db.Save(&subscription).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update subscription",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    subscription,
	})
}

// PauseSubscription handles PUT /api/v1/subscriptions/:id/pause
func PauseSubscription(c *gin.Context) {
	setSubscriptionStatus(c, models.SubscriptionPaused)
}

// ResumeSubscription handles PUT /api/v1/subscriptions/:id/resume
func ResumeSubscription(c *gin.Context) {
	setSubscriptionStatus(c, models.SubscriptionActive)
}
