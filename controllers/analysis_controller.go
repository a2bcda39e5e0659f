package controllers

import (
	"encoding/base64"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kinotsolarpower/Wash-GoPRO/config"
	"github.com/Kinotsolarpower/Wash-GoPRO/models"
	"github.com/Kinotsolarpower/Wash-GoPRO/services"
	"github.com/Kinotsolarpower/Wash-GoPRO/utils"
)

// readPhotoBase64 validates a photo and returns its base64-encoded content
func readPhotoBase64(fileHeader *multipart.FileHeader) (string, error) {
	if err := utils.ValidateImageFile(fileHeader); err != nil {
		return "", err
	}
	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer func() {
		_ = file.Close()
	}()
	content, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(content), nil
}

// AnalyzeVehicle handles POST /api/v1/analysis - runs the AI damage
// inspection on the two uploaded vehicle photos. The report is ephemeral
// and never persisted; the exterior shot is stored as the "before" photo.
func AnalyzeVehicle(c *gin.Context) {
	licensePlate := c.PostForm("license_plate")
	locale := c.PostForm("locale")
	if !models.IsValidLocale(locale) {
		locale = models.LocaleEN
	}

	exteriorHeader, exteriorErr := c.FormFile("exterior")
	interiorHeader, interiorErr := c.FormFile("interior")
	if licensePlate == "" || exteriorErr != nil || interiorErr != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_FIELDS",
				"message": "License plate, exterior photo and interior photo are all required",
			},
		})
		return
	}

	exteriorBase64, err := readPhotoBase64(exteriorHeader)
	if err != nil {
		photoErrorResponse(c, err)
		return
	}
	interiorBase64, err := readPhotoBase64(interiorHeader)
	if err != nil {
		photoErrorResponse(c, err)
		return
	}

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

	report, err := services.GetAIService().AnalyzeVehicle(exteriorBase64, interiorBase64, licensePlate, packages, locale)
	if err != nil {
		aiErrorResponse(c, err)
		return
	}

	// Best effort: keep the exterior shot as the "before" photo. Analysis
	// still succeeds when storage is unavailable.
	var beforePhotoKey string
	if photoService := services.GetPhotoService(); photoService != nil {
		if key, err := photoService.UploadPhoto(exteriorHeader, "before"); err == nil {
			beforePhotoKey = key
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"report":           report,
			"risk_score":       report.DisplayRiskScore(),
			"before_photo_key": beforePhotoKey,
		},
	})
}

// photoErrorResponse writes the envelope for a failed photo read/validation
func photoErrorResponse(c *gin.Context, err error) {
	if uploadErr, ok := err.(*utils.FileUploadError); ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    uploadErr.Code,
				"message": uploadErr.Message,
			},
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "UPLOAD_ERROR",
			"message": "Failed to read uploaded photo",
		},
	})
}
