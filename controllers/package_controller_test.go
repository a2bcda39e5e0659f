package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kinotsolarpower/Wash-GoPRO/models"
	"github.com/Kinotsolarpower/Wash-GoPRO/services"
)

func TestListPackagesAppliesSurge(t *testing.T) {
	db := setupTestDB(t)
	setupTestConfig()
	seedWashPackage(t, db)
	require.NoError(t, models.SetSurgeMultiplier(db, 1.5))

	router := setupTestRouter()
	router.GET("/packages", ListPackages)

	req, _ := http.NewRequest(http.MethodGet, "/packages", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	data := parseEnvelope(t, w)["data"].(map[string]interface{})
	assert.Equal(t, 1.5, data["surge_multiplier"])

	packages := data["packages"].([]interface{})
	require.Len(t, packages, 1)
	view := packages[0].(map[string]interface{})

	// stored base price is untouched; only the display price carries surge
	details := view["details"].(map[string]interface{})
	en := details["en"].(map[string]interface{})
	assert.Equal(t, 49.0, en["price"])

	displayPrices := view["display_prices"].(map[string]interface{})
	assert.Equal(t, 73.5, displayPrices["en"])
}

func TestCreatePackageFromPrompt(t *testing.T) {
	db := setupTestDB(t)
	setupTestConfig()

	aiService := services.NewMockAIService()
	aiService.PackageDetails = &models.ServiceDetails{
		Name:     "Ceramic Shield",
		Price:    199,
		Features: []string{"Ceramic coating", "2 year protection"},
	}
	aiService.Translations[models.LocaleNL] = models.ServiceDetails{
		Name: "Keramisch Schild", Features: []string{"Keramische coating", "2 jaar bescherming"},
	}
	aiService.Translations[models.LocaleFR] = models.ServiceDetails{
		Name: "Bouclier Céramique", Features: []string{"Revêtement céramique", "Protection 2 ans"},
	}
	aiService.SetAsMockForTesting()

	router := setupTestRouter()
	router.POST("/packages", mockAuthMiddleware("superadmin@washgo.pro"), CreatePackage)

	w := performJSON(router, http.MethodPost, "/packages", map[string]interface{}{
		"prompt": "ceramic coating package for 199 euro",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, aiService.GenerateCalls)
	assert.Equal(t, 2, aiService.TranslateCalls)

	var pkg models.ServicePackage
	require.NoError(t, db.Order("created_at desc").First(&pkg).Error)
	assert.True(t, strings.HasPrefix(pkg.Key, "pkg_"))
	assert.Equal(t, "Ceramic Shield", pkg.Details[models.LocaleEN].Name)
	assert.Equal(t, "Keramisch Schild", pkg.Details[models.LocaleNL].Name)
	// translations never change the price
	assert.Equal(t, 199.0, pkg.Details[models.LocaleNL].Price)
	assert.Equal(t, 199.0, pkg.Details[models.LocaleFR].Price)
}

func TestCreatePackageWithExplicitDetails(t *testing.T) {
	db := setupTestDB(t)
	setupTestConfig()

	aiService := services.NewMockAIService()
	aiService.SetAsMockForTesting()

	router := setupTestRouter()
	router.POST("/packages", mockAuthMiddleware("superadmin@washgo.pro"), CreatePackage)

	w := performJSON(router, http.MethodPost, "/packages", map[string]interface{}{
		"details": map[string]interface{}{
			"name":     "Quick Rinse",
			"price":    25,
			"features": []string{"Rinse", "Dry"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	// explicit details skip the generator but still go through translation
	assert.Equal(t, 0, aiService.GenerateCalls)
	assert.Equal(t, 2, aiService.TranslateCalls)

	var count int64
	db.Model(&models.ServicePackage{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCreatePackageSafetyRejection(t *testing.T) {
	setupTestDB(t)
	setupTestConfig()

	aiService := services.NewMockAIService()
	aiService.Err = services.ErrSafetyRejected
	aiService.SetAsMockForTesting()

	router := setupTestRouter()
	router.POST("/packages", mockAuthMiddleware("superadmin@washgo.pro"), CreatePackage)

	w := performJSON(router, http.MethodPost, "/packages", map[string]interface{}{
		"prompt": "something the model refuses",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assertErrorCode(t, w, "SAFETY_REJECTED")
}

func TestCreatePackageRequiresPromptOrDetails(t *testing.T) {
	setupTestDB(t)
	setupTestConfig()

	router := setupTestRouter()
	router.POST("/packages", mockAuthMiddleware("superadmin@washgo.pro"), CreatePackage)

	w := performJSON(router, http.MethodPost, "/packages", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assertErrorCode(t, w, "VALIDATION_ERROR")
}

func TestUpdatePackage(t *testing.T) {
	db := setupTestDB(t)
	setupTestConfig()
	seedWashPackage(t, db)

	router := setupTestRouter()
	router.PUT("/packages/:key", mockAuthMiddleware("superadmin@washgo.pro"), UpdatePackage)

	w := performJSON(router, http.MethodPut, "/packages/pkg_wash", map[string]interface{}{
		"details": map[string]interface{}{
			"en": map[string]interface{}{"name": "Premium Wash", "price": 59, "features": []string{"Hand wash", "Wax"}},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var pkg models.ServicePackage
	require.NoError(t, db.Where("key = ?", "pkg_wash").First(&pkg).Error)
	assert.Equal(t, "Premium Wash", pkg.Details[models.LocaleEN].Name)
	assert.Equal(t, 59.0, pkg.Details[models.LocaleEN].Price)
}

func TestDeletePackage(t *testing.T) {
	db := setupTestDB(t)
	setupTestConfig()
	seedWashPackage(t, db)

	router := setupTestRouter()
	router.DELETE("/packages/:key", mockAuthMiddleware("superadmin@washgo.pro"), DeletePackage)

	req, _ := http.NewRequest(http.MethodDelete, "/packages/pkg_wash", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.ServicePackage{}).Count(&count)
	assert.Equal(t, int64(0), count)

	// a second delete finds nothing
	req, _ = http.NewRequest(http.MethodDelete, "/packages/pkg_wash", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assertErrorCode(t, w, "PACKAGE_NOT_FOUND")
}

func TestSurgeMultiplierRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	setupTestConfig()

	router := setupTestRouter()
	router.GET("/pricing/surge", GetSurgeMultiplier)
	router.PUT("/pricing/surge", mockAuthMiddleware("superadmin@washgo.pro"), SetSurgeMultiplier)

	t.Run("defaults to one", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/pricing/surge", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		data := parseEnvelope(t, w)["data"].(map[string]interface{})
		assert.Equal(t, 1.0, data["surge_multiplier"])
	})

	t.Run("stores and reads back", func(t *testing.T) {
		w := performJSON(router, http.MethodPut, "/pricing/surge", map[string]interface{}{
			"multiplier": 1.2,
		})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1.2, models.GetSurgeMultiplier(db))
	})

	t.Run("zero disables pricing without error", func(t *testing.T) {
		w := performJSON(router, http.MethodPut, "/pricing/surge", map[string]interface{}{
			"multiplier": 0,
		})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("negative is rejected", func(t *testing.T) {
		w := performJSON(router, http.MethodPut, "/pricing/surge", map[string]interface{}{
			"multiplier": -1,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assertErrorCode(t, w, "VALIDATION_ERROR")
	})
}
