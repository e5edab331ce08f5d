package models

import (
	"bookit/src/types"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrOTPMismatch        = errors.New("otp does not match")
	ErrOTPExpired         = errors.New("otp has expired")
	ErrUserUnverified     = errors.New("account is not verified")
)

type User struct {
	ID           uint           `json:"id"`
	Name         string         `json:"name,omitempty"`
	UserName     string         `gorm:"uniqueIndex" json:"user_name,omitempty"`
	Email        string         `gorm:"uniqueIndex" json:"email,omitempty"`
	Phone        string         `json:"phone,omitempty"`
	PasswordHash string         `json:"-"`
	Avatar       string         `json:"avatar,omitempty"`
	Role         types.UserRole `gorm:"default:'customer'" json:"role,omitempty"`
	Verified     bool           `json:"verified"`
	OTPHash      string         `json:"-"`
	OTPExpiry    *time.Time     `json:"-"`

	Bookings []Booking `gorm:"foreignKey:user_id" json:"bookings,omitempty"`

	types.Timestamps
}

// SetPassword hashes and stores the plaintext password.
func (u *User) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword compares a plaintext password against the stored hash.
func (u *User) CheckPassword(plain string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plain)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// SetOTP hashes and stores a one-time code with its expiry.
func (u *User) SetOTP(code string, expiry time.Time) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.OTPHash = string(hash)
	u.OTPExpiry = &expiry
	return nil
}

// CheckOTP verifies a submitted one-time code against the stored hash and
// expiry.
func (u *User) CheckOTP(code string, now time.Time) error {
	if u.OTPHash == "" || u.OTPExpiry == nil {
		return ErrOTPMismatch
	}
	if now.After(*u.OTPExpiry) {
		return ErrOTPExpired
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.OTPHash), []byte(code)); err != nil {
		return ErrOTPMismatch
	}
	return nil
}
