package utils

import (
	"bookit/src/models"
	"crypto/rand"
	"errors"
	"math/big"

	"gorm.io/gorm"
)

// refAlphabet omits 0/O/1/I/L so reference numbers survive being read
// aloud or written down.
const refAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
const refLength = 8
const refPrefix = "BK-"
const refMaxAttempts = 5

var ErrRefNumExhausted = errors.New("could not allocate a unique reference number")

// RandomReferenceNumber draws one candidate reference number.
func RandomReferenceNumber() (string, error) {
	buf := make([]byte, refLength)
	max := big.NewInt(int64(len(refAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = refAlphabet[n.Int64()]
	}
	return refPrefix + string(buf), nil
}

// GenerateReferenceNumber allocates a reference number not yet used by any
// booking, retrying on collision. The unique index on bookings is the
// final arbiter.
func GenerateReferenceNumber(tx *gorm.DB) (string, error) {
	for attempt := 0; attempt < refMaxAttempts; attempt++ {
		ref, err := RandomReferenceNumber()
		if err != nil {
			return "", err
		}
		var count int64
		if err := tx.Model(&models.Booking{}).Where("reference_number = ?", ref).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return ref, nil
		}
	}
	return "", ErrRefNumExhausted
}
