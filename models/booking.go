package models

import (
	"time"

	"gorm.io/gorm"
)

// Booking statuses. The workflow is strictly forward and manually advanced.
const (
	StatusPending   = "PENDING"
	StatusConfirmed = "CONFIRMED"
	StatusCompleted = "COMPLETED"
	StatusCancelled = "CANCELLED"
)

// statusTransitions is the allowed-transition table. COMPLETED and CANCELLED
// are terminal; there is no path from PENDING directly to COMPLETED.
var statusTransitions = map[string][]string{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

// CanTransition reports whether a booking may move from one status to another
func CanTransition(from, to string) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Booking represents a detailing booking request in the system
type Booking struct {
	ID                 uint           `gorm:"primaryKey" json:"-"`
	Reference          string         `gorm:"uniqueIndex;not null" json:"id"` // short public token
	LicensePlate       string         `gorm:"not null" json:"license_plate"`
	Make               string         `json:"make"`
	Model              string         `json:"model"`
	Color              string         `json:"color"`
	ServiceKey         string         `gorm:"not null;index" json:"service_key"`
	RequestedDateTime  string         `gorm:"not null" json:"requested_date_time"`
	Status             string         `gorm:"not null;default:'PENDING'" json:"status"`
	CustomerEmail      string         `gorm:"not null;index" json:"customer_email"`
	TravelTime         int            `json:"travel_time"` // minutes
	FuelCost           float64        `json:"fuel_cost"`   // euros
	OptimizedRoute     string         `json:"optimized_route"`
	RiskScore          int            `json:"risk_score"`
	SOS                bool           `json:"sos"`
	FinalPrice         float64        `gorm:"not null" json:"final_price"`
	AfterPhotoKey      *string        `json:"after_photo_key,omitempty"`
	AfterPhotoURL      *string        `gorm:"-" json:"after_photo_url,omitempty"` // computed, presigned
	TechnicianNotes    []string       `gorm:"serializer:json" json:"technician_notes"`
	AssignedTechnician string         `gorm:"index" json:"assigned_technician"`
	PickupAddress      string         `gorm:"not null" json:"pickup_address"`
	DeliveryAddress    *string        `json:"delivery_address,omitempty"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Booking model
func (Booking) TableName() string {
	return "bookings"
}

// DisplayRiskScore clamps the AI risk score to [0,100]. The stored value is
// not adjusted at write time; clamping is display-only.
func (b *Booking) DisplayRiskScore() int {
	if b.RiskScore < 0 {
		return 0
	}
	if b.RiskScore > 100 {
		return 100
	}
	return b.RiskScore
}
