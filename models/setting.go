package models

import (
	"strconv"
	"time"

	"gorm.io/gorm"
)

// SurgeMultiplierKey is the settings row holding the global price multiplier
const SurgeMultiplierKey = "surge_multiplier"

// Setting is a simple persisted key/value pair for global tunables
type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Key       string    `gorm:"uniqueIndex;not null" json:"key"`
	Value     string    `gorm:"not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Setting model
func (Setting) TableName() string {
	return "settings"
}

// GetSurgeMultiplier reads the global surge multiplier, defaulting to 1
func GetSurgeMultiplier(db *gorm.DB) float64 {
	var setting Setting
	if err := db.Where("key = ?", SurgeMultiplierKey).First(&setting).Error; err != nil {
		return 1
	}
	multiplier, err := strconv.ParseFloat(setting.Value, 64)
	if err != nil {
		return 1
	}
	return multiplier
}

// SetSurgeMultiplier stores the global surge multiplier
func SetSurgeMultiplier(db *gorm.DB, multiplier float64) error {
	value := strconv.FormatFloat(multiplier, 'f', -1, 64)
	var setting Setting
	err := db.Where("key = ?", SurgeMultiplierKey).First(&setting).Error
	if err != nil {
		return db.Create(&Setting{Key: SurgeMultiplierKey, Value: value}).Error
	}
	setting.Value = value
	return db.Save(&setting).Error
}
