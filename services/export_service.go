package services

import (
	"strconv"
	"strings"
	"time"

	"github.com/Kinotsolarpower/Wash-GoPRO/models"
	"github.com/Kinotsolarpower/Wash-GoPRO/utils"
)

// bookingExportHeaders is the fixed column order of the bookings export
var bookingExportHeaders = []string{
	"Booking ID", "Status", "Requested Date", "Requested Time",
	"Service Name", "Base Price", "SOS Surcharge", "Delivery Surcharge", "Final Price",
	"Customer First Name", "Customer Last Name", "Customer Email", "Customer Phone",
	"Pickup Address", "Delivery Address",
	"Vehicle Make", "Vehicle Model", "Vehicle Color",
	"AI Risk Score", "Travel Time (min)", "Fuel Cost (eur)",
	"Assigned Technician", "Technician Notes",
}

// formatPrice renders a price without trailing zeros, matching the legacy rows
func formatPrice(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// splitDateTime renders the requested date and time columns. Values that do
// not parse as RFC 3339 fall through unchanged in the date column.
func splitDateTime(value string) (string, string) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		if t, err = time.Parse("2006-01-02T15:04", value); err != nil {
			return value, ""
		}
	}
	return t.Format("2006-01-02"), t.Format("15:04")
}

// ExportBookingsCSV renders the bookings collection as CSV. Customer details
// come from the users list; a booking whose email matches no user renders as
// a guest row, and a deleted package degrades to the raw service key.
func ExportBookingsCSV(bookings []models.Booking, users []models.User, packages []models.ServicePackage, locale string, deliverySurcharge float64) string {
	usersByEmail := make(map[string]models.User, len(users))
	for _, u := range users {
		usersByEmail[u.Email] = u
	}
	packagesByKey := make(map[string]models.ServicePackage, len(packages))
	for _, p := range packages {
		packagesByKey[p.Key] = p
	}

	rows := make([][]string, 0, len(bookings))
	for _, booking := range bookings {
		serviceName := booking.ServiceKey
		basePrice := 0.0
		if pkg, ok := packagesByKey[booking.ServiceKey]; ok {
			if details, ok := pkg.DetailsFor(locale); ok {
				serviceName = details.Name
				basePrice = details.Price
			}
		}

		sosSurcharge := utils.SOSSurcharge(basePrice, booking.SOS)

		delivery := 0.0
		deliveryAddress := ""
		if booking.DeliveryAddress != nil && *booking.DeliveryAddress != "" {
			delivery = deliverySurcharge
			deliveryAddress = *booking.DeliveryAddress
		}

		firstName := "Guest"
		lastName := ""
		phone := ""
		if customer, ok := usersByEmail[booking.CustomerEmail]; ok {
			firstName = customer.FirstName
			lastName = customer.LastName
			phone = customer.Phone
		}

		date, timeOfDay := splitDateTime(booking.RequestedDateTime)

		rows = append(rows, []string{
			booking.Reference,
			booking.Status,
			date,
			timeOfDay,
			serviceName,
			formatPrice(basePrice),
			formatPrice(sosSurcharge),
			formatPrice(delivery),
			formatPrice(booking.FinalPrice),
			firstName,
			lastName,
			booking.CustomerEmail,
			phone,
			booking.PickupAddress,
			deliveryAddress,
			booking.Make,
			booking.Model,
			booking.Color,
			strconv.Itoa(booking.DisplayRiskScore()),
			strconv.Itoa(booking.TravelTime),
			formatPrice(booking.FuelCost),
			booking.AssignedTechnician,
			strings.Join(booking.TechnicianNotes, "; "),
		})
	}

	return utils.ConvertToCSV(bookingExportHeaders, rows)
}

// ExportUsersCSV renders the user list as CSV with derived roles
func ExportUsersCSV(users []models.User) string {
	headers := []string{"First Name", "Last Name", "Email", "Phone", "Address", "Role"}
	rows := make([][]string, 0, len(users))
	for _, user := range users {
		rows = append(rows, []string{
			user.FirstName,
			user.LastName,
			user.Email,
			user.Phone,
			user.Address,
			models.RoleForEmail(user.Email),
		})
	}
	return utils.ConvertToCSV(headers, rows)
}
