package models

import (
	"bookit/src/types"
	"errors"
	"time"
)

var (
	ErrPromoNotFound = errors.New("promo code not found")
	ErrPromoExpired  = errors.New("promo code has expired")
	ErrPromoInactive = errors.New("promo code is not active")
)

type PromoCode struct {
	ID            uint               `json:"id"`
	Code          string             `gorm:"uniqueIndex" json:"code,omitempty"`
	DiscountType  types.DiscountType `gorm:"default:'percent'" json:"discount_type,omitempty"`
	DiscountValue float64            `json:"discount_value,omitempty"`
	Expiry        time.Time          `json:"expiry,omitempty"`
	IsActive      bool               `gorm:"default:true" json:"is_active"`
	CreatedBy     uint               `json:"created_by,omitempty"`

	Creator User `gorm:"foreignKey:created_by" json:"-"`

	types.Timestamps
}

// Expired reports whether the code's expiry has passed at the given instant.
func (p *PromoCode) Expired(now time.Time) bool {
	return !now.Before(p.Expiry)
}

// DiscountFor computes the discount the code grants on a subtotal. The
// result is clamped so the discount never exceeds the subtotal.
func (p *PromoCode) DiscountFor(subtotal float64) float64 {
	var discount float64
	switch p.DiscountType {
	case types.DISCOUNT_FIXED:
		discount = p.DiscountValue
	case types.DISCOUNT_PERCENT:
		discount = subtotal * p.DiscountValue / 100
	}
	if discount > subtotal {
		discount = subtotal
	}
	if discount < 0 {
		discount = 0
	}
	return discount
}
