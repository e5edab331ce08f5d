package utils

import (
	"bookit/src/config"
	"bookit/src/db"
	"bookit/src/models"
	"bookit/src/types"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

var ErrUnparsableDate = errors.New("date does not match any accepted format")

// ParseBookingDate accepts the date formats clients are known to send and
// normalizes them to a time.Time.
func ParseBookingDate(raw string) (time.Time, error) {
	for _, layout := range config.DATE_PARSE_FORMATS {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrUnparsableDate
}

// GenerateToken issues a signed session token for the user.
func GenerateToken(user *models.User) (string, error) {
	jwtKey := []byte(os.Getenv("JWT_SECRET"))
	now := time.Now()
	claims := types.Claims{
		Email: user.Email,
		Role:  string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(int(user.ID)),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(config.TOKEN_TTL_HOURS * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims)
	return token.SignedString(jwtKey)
}

// GenerateOTP returns a 6-digit one-time code.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// SlugifyTitle builds a unique slug for a product title, suffixing a
// counter when the plain slug is already taken.
func SlugifyTitle(tx *gorm.DB, title string) (string, error) {
	base := slug.Make(title)
	candidate := base
	for i := 2; ; i++ {
		var count int64
		if err := tx.Model(&models.Product{}).Where("slug = ?", candidate).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

// PurgeStaleRegistrations removes accounts that never verified within a
// day of signing up. Runs daily from the scheduler.
func PurgeStaleRegistrations() {
	db := db.GetDb()
	cutoff := time.Now().Add(-24 * time.Hour)
	res := db.
		Unscoped().
		Where("verified = ?", false).
		Where("created_at < ?", cutoff).
		Delete(&models.User{})
	if res.Error != nil {
		log.Printf("Error purging stale registrations: %s\n", res.Error.Error())
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("Purged %d stale registrations\n", res.RowsAffected)
	}
}
