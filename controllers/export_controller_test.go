package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportBookings(t *testing.T) {
	db := setupTestDB(t)
	setupTestConfig()
	seedWashPackage(t, db)
	createTestUser(t, db, "jan@example.com", "hunter2", "Jan")
	seedBooking(t, db, "AAAA0001", "CONFIRMED", "jan@example.com")

	router := setupTestRouter()
	router.GET("/export/bookings.csv", mockAuthMiddleware("admin@washgo.pro"), ExportBookings)

	req, _ := http.NewRequest(http.MethodGet, "/export/bookings.csv", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), `filename="bookings.csv"`)

	lines := strings.Split(w.Body.String(), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "Booking ID,Status,"))
	assert.Contains(t, lines[1], `"AAAA0001"`)
	assert.Contains(t, lines[1], `"Exterior Wash"`)
	assert.Contains(t, lines[1], `"Jan"`)
}

func TestExportBookingsLocale(t *testing.T) {
	db := setupTestDB(t)
	setupTestConfig()
	seedWashPackage(t, db)
	seedBooking(t, db, "AAAA0001", "PENDING", "jan@example.com")

	router := setupTestRouter()
	router.GET("/export/bookings.csv", mockAuthMiddleware("admin@washgo.pro"), ExportBookings)

	req, _ := http.NewRequest(http.MethodGet, "/export/bookings.csv?locale=nl", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"Exterieur Wasbeurt"`)
}

func TestExportUsers(t *testing.T) {
	db := setupTestDB(t)
	setupTestConfig()
	createTestUser(t, db, "admin@washgo.pro", "admin", "Admin")
	createTestUser(t, db, "jan@example.com", "hunter2", "Jan")

	router := setupTestRouter()
	router.GET("/export/users.csv", mockAuthMiddleware("admin@washgo.pro"), ExportUsers)

	req, _ := http.NewRequest(http.MethodGet, "/export/users.csv", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, w.Header().Get("Content-Disposition"), `filename="users.csv"`)
	assert.Contains(t, body, `"ADMIN"`)
	assert.Contains(t, body, `"CUSTOMER"`)
	// hashes never leave the database
	assert.NotContains(t, body, "$2a$")
}
