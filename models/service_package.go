package models

import (
	"time"

	"gorm.io/gorm"
)

// Supported locales
const (
	LocaleEN = "en"
	LocaleNL = "nl"
	LocaleFR = "fr"
)

// Locales lists every supported locale, English first
var Locales = []string{LocaleEN, LocaleNL, LocaleFR}

// IsValidLocale reports whether the locale is one of the supported set
func IsValidLocale(locale string) bool {
	for _, l := range Locales {
		if l == locale {
			return true
		}
	}
	return false
}

// ServiceDetails holds the localized presentation of a package
type ServiceDetails struct {
	Name     string   `json:"name"`
	Price    float64  `json:"price"`
	Features []string `json:"features"`
}

// ServicePackage is a bookable detailing package. The key is the stable
// identifier; display names and prices vary per locale.
type ServicePackage struct {
	ID        uint                      `gorm:"primaryKey" json:"-"`
	Key       string                    `gorm:"uniqueIndex;not null" json:"key"`
	Details   map[string]ServiceDetails `gorm:"serializer:json;not null" json:"details"`
	CreatedAt time.Time                 `json:"created_at"`
	UpdatedAt time.Time                 `json:"updated_at"`
	DeletedAt gorm.DeletedAt            `gorm:"index" json:"-"`
}

// TableName specifies the table name for the ServicePackage model
func (ServicePackage) TableName() string {
	return "service_packages"
}

// DetailsFor returns the localized details, falling back to English
func (p *ServicePackage) DetailsFor(locale string) (ServiceDetails, bool) {
	if d, ok := p.Details[locale]; ok {
		return d, true
	}
	d, ok := p.Details[LocaleEN]
	return d, ok
}
