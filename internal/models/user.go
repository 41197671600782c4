package models

import (
	"time"
)

// User types accepted at registration.
const (
	UserTypeBuyer   = "Buyer"
	UserTypeSeller  = "Seller"
	UserTypeBuilder = "Builder"
	UserTypeAgent   = "Agent"
	UserTypeOther   = "Other"
)

// ValidUserType reports whether t is one of the accepted user types.
func ValidUserType(t string) bool {
	switch t {
	case UserTypeBuyer, UserTypeSeller, UserTypeBuilder, UserTypeAgent, UserTypeOther:
		return true
	}
	return false
}

// User is an identity record. The PIN hash stays empty until the
// registration flow finalizes; the OTP columns are set only while a
// challenge is open.
type User struct {
	BaseModel
	Name         string     `json:"name"`
	Email        string     `gorm:"uniqueIndex" json:"email"`
	Phone        string     `json:"phone"`
	City         string     `json:"city"`
	UserType     string     `json:"user_type"`
	PINHash      string     `json:"-"`
	IsVerified   bool       `json:"is_verified"`
	OTPCode      *string    `json:"-"`
	OTPExpiresAt *time.Time `json:"-"`
}

// HasPIN reports whether the registration flow has finalized a credential.
func (u *User) HasPIN() bool {
	return u.PINHash != ""
}
