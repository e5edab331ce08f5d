package utils

import (
	"bookit/src/db"
	"bookit/src/models"
	"errors"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"
)

// EvaluatePromo resolves a code against the promo table. An active code
// past its expiry is flipped inactive on a separate session, so the flip
// survives even when the caller's transaction rolls back and the next
// lookup reports the code inactive rather than expired.
func EvaluatePromo(tx *gorm.DB, code string, now time.Time) (*models.PromoCode, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	var promo models.PromoCode
	err := tx.Where("code = ?", normalized).First(&promo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrPromoNotFound
		}
		return nil, err
	}
	if promo.IsActive && promo.Expired(now) {
		if err := db.GetDb().Model(&models.PromoCode{}).Where("id = ?", promo.ID).Update("is_active", false).Error; err != nil {
			log.Printf("Failed to deactivate expired promo %s: %s\n", promo.Code, err.Error())
			return nil, err
		}
		return nil, models.ErrPromoExpired
	}
	if !promo.IsActive {
		return nil, models.ErrPromoInactive
	}
	return &promo, nil
}

// ValidatePromo is the standalone promo check used ahead of checkout.
func ValidatePromo(code string, now time.Time) (*models.PromoCode, error) {
	return EvaluatePromo(db.GetDb(), code, now)
}
