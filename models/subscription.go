package models

import (
	"time"

	"gorm.io/gorm"
)

// Subscription statuses
const (
	SubscriptionActive = "ACTIVE"
	SubscriptionPaused = "PAUSED"
)

// Subscription represents a recurring wash plan held by a customer
type Subscription struct {
	ID              uint           `gorm:"primaryKey" json:"-"`
	SubID           string         `gorm:"uniqueIndex;not null" json:"id"`
	UserEmail       string         `gorm:"not null;index" json:"user_id"`
	PackageKey      string         `gorm:"not null" json:"package_key"`
	Status          string         `gorm:"not null;default:'ACTIVE'" json:"status"`
	StartDate       time.Time      `json:"start_date"`
	WashesRemaining int            `json:"washes_remaining"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Subscription model
func (Subscription) TableName() string {
	return "subscriptions"
}
