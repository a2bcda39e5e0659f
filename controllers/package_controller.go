package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kinotsolarpower/Wash-GoPRO/config"
	"github.com/Kinotsolarpower/Wash-GoPRO/models"
	"github.com/Kinotsolarpower/Wash-GoPRO/services"
	"github.com/Kinotsolarpower/Wash-GoPRO/utils"
)

// packageView is a ServicePackage enriched with surged display prices
type packageView struct {
	models.ServicePackage
	DisplayPrices map[string]float64 `json:"display_prices"`
}

// displayPrices computes the surged price per locale for a package
func displayPrices(pkg models.ServicePackage, surge float64) map[string]float64 {
	prices := make(map[string]float64, len(pkg.Details))
	for locale, details := range pkg.Details {
		prices[locale] = utils.Round2(details.Price * surge)
	}
	return prices
}

// ListPackages handles GET /api/v1/packages - all packages with display prices
func ListPackages(c *gin.Context) {
	db := config.GetDB()
	var packages []models.ServicePackage
	if err := db.Order("created_at").Find(&packages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load packages",
			},
		})
		return
	}

	surge := models.GetSurgeMultiplier(db)
	views := make([]packageView, 0, len(packages))
	for _, pkg := range packages {
		views = append(views, packageView{
			ServicePackage: pkg,
			DisplayPrices:  displayPrices(pkg, surge),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"packages":         views,
			"surge_multiplier": surge,
		},
	})
}

// CreatePackageRequest represents the request body for creating a package.
// Either details are supplied explicitly, or a free-text prompt is routed
// through the AI generator.
type CreatePackageRequest struct {
	Prompt  string                 `json:"prompt"`
	Details *models.ServiceDetails `json:"details"`
}

// aiErrorResponse writes the envelope for a failed AI gateway call, with a
// dedicated code for safety rejections
func aiErrorResponse(c *gin.Context, err error) {
	if errors.Is(err, services.ErrSafetyRejected) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SAFETY_REJECTED",
				"message": "The request was rejected by content safety filters",
			},
		})
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "AI_ERROR",
			"message": "The AI model may be temporarily unavailable or the response was invalid",
		},
	})
}

// CreatePackage handles POST /api/v1/packages - creates a package
// (super admin only). Non-English locales are filled via AI translation.
func CreatePackage(c *gin.Context) {
	var req CreatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil || (req.Prompt == "" && req.Details == nil) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Either a prompt or explicit details are required",
			},
		})
		return
	}

	aiService := services.GetAIService()

	details := req.Details
	if details == nil {
		generated, err := aiService.GeneratePackage(req.Prompt)
		if err != nil {
			aiErrorResponse(c, err)
			return
		}
		details = generated
	}

	localized := map[string]models.ServiceDetails{
		models.LocaleEN: *details,
	}
	for _, locale := range models.Locales {
		if locale == models.LocaleEN {
			continue
		}
		translated, err := aiService.TranslateDetails(*details, locale)
		if err != nil {
			aiErrorResponse(c, err)
			return
		}
		localized[locale] = *translated
	}

	pkg := models.ServicePackage{
		Key:     utils.NewPackageKey(),
		Details: localized,
	}

	db := config.GetDB()
	if err := db.Create(&pkg).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create package",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    pkg,
	})
}

// UpdatePackageRequest represents the request body for updating a package
type UpdatePackageRequest struct {
	Details map[string]models.ServiceDetails `json:"details" binding:"required"`
}

// UpdatePackage handles PUT /api/v1/packages/:key (super admin only)
func UpdatePackage(c *gin.Context) {
	var req UpdatePackageRequest
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
	var pkg models.ServicePackage
	if err := db.Where("key = ?", c.Param("key")).First(&pkg).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PACKAGE_NOT_FOUND",
				"message": "Package not found",
			},
		})
		return
	}

	pkg.Details = req.Details
	if err := db.Save(&pkg).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update package",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    pkg,
	})
}

// DeletePackage handles DELETE /api/v1/packages/:key (super admin only).
// Bookings referencing the deleted key keep working: lookups degrade to the
// raw key.
func DeletePackage(c *gin.Context) {
	db := config.GetDB()
	result := db.Where("key = ?", c.Param("key")).Delete(&models.ServicePackage{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete package",
			},
		})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PACKAGE_NOT_FOUND",
				"message": "Package not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"key": c.Param("key")},
	})
}

// GetSurgeMultiplier handles GET /api/v1/pricing/surge
func GetSurgeMultiplier(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"surge_multiplier": models.GetSurgeMultiplier(config.GetDB()),
		},
	})
}

// SetSurgeRequest represents the request body for setting the surge multiplier
type SetSurgeRequest struct {
	Multiplier *float64 `json:"multiplier" binding:"required"`
}

// SetSurgeMultiplier handles PUT /api/v1/pricing/surge (super admin only)
func SetSurgeMultiplier(c *gin.Context) {
	var req SetSurgeRequest
	if err := c.ShouldBindJSON(&req); err != nil || *req.Multiplier < 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Multiplier must be a number greater than or equal to zero",
			},
		})
		return
	}

	if err := models.SetSurgeMultiplier(config.GetDB(), *req.Multiplier); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to store surge multiplier",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"surge_multiplier": *req.Multiplier,
		},
	})
}
