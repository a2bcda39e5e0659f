package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// NewBookingReference returns a short random token used as the public
// booking identifier, e.g. "3F9A01BC".
func NewBookingReference() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand should not fail; fall back to a time-derived token
		return strings.ToUpper(fmt.Sprintf("%08X", time.Now().UnixNano()&0xFFFFFFFF))
	}
	return strings.ToUpper(hex.EncodeToString(b))
}

// NewPackageKey returns a stable identifier for a newly created package
func NewPackageKey() string {
	return fmt.Sprintf("pkg_%d", time.Now().UnixMilli())
}

// NewSubscriptionID returns an identifier for a new subscription
func NewSubscriptionID() string {
	return fmt.Sprintf("sub_%d", time.Now().UnixMilli())
}

// NewGuestEmail returns the synthetic address minted for a guest session
func NewGuestEmail() string {
	return fmt.Sprintf("guest-%d@washgo.pro", time.Now().UnixMilli())
}
