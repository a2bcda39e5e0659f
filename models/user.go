package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// User roles. Staff roles are never stored on the record: they are derived
// from the email allowlist below on every read.
const (
	RoleAdmin      = "ADMIN"
	RoleSuperAdmin = "SUPER_ADMIN"
	RoleTechnician = "TECHNICIAN"
	RoleCustomer   = "CUSTOMER"
	RoleGuest      = "GUEST"
)

// staffRoles is the fixed email -> role table for staff accounts. The legacy
// system re-derived roles from these addresses inline at every call site;
// here the table lives in one place and RoleForEmail is the single lookup.
var staffRoles = map[string]string{
	"admin@washgo.pro":      RoleAdmin,
	"superadmin@washgo.pro": RoleSuperAdmin,
	"tech@washgo.pro":       RoleTechnician,
}

// RoleForEmail derives the role for an email address. Unknown addresses
// default to customer, guest-issued addresses to guest.
func RoleForEmail(email string) string {
	normalized := strings.ToLower(email)
	if role, ok := staffRoles[normalized]; ok {
		return role
	}
	if strings.HasPrefix(normalized, "guest-") {
		return RoleGuest
	}
	return RoleCustomer
}

// User represents a registered account (staff or customer)
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	FirstName    string         `gorm:"not null" json:"first_name"`
	LastName     string         `json:"last_name"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	Address      string         `json:"address"`
	Phone        string         `json:"phone"`
	Role         string         `gorm:"-" json:"role"` // derived, never persisted
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// AfterFind fills in the derived role whenever a user is loaded
func (u *User) AfterFind(tx *gorm.DB) error {
	u.Role = RoleForEmail(u.Email)
	return nil
}

// IsStaff reports whether the email belongs to a seeded staff account
func IsStaff(email string) bool {
	_, ok := staffRoles[strings.ToLower(email)]
	return ok
}
