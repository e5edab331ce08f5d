package models

import (
	"bookit/src/types"
	"time"
)

// Booking is a snapshot of the purchase at booking time. Product title and
// pricing are copied in so later edits to the product never rewrite history.
type Booking struct {
	ID              uint                `json:"id"`
	ReferenceNumber string              `gorm:"uniqueIndex" json:"reference_number,omitempty"`
	ProductID       uint                `json:"product_id,omitempty"`
	ProductTitle    string              `json:"product_title,omitempty"`
	Name            string              `json:"name,omitempty"`
	Email           string              `json:"email,omitempty"`
	Date            time.Time           `json:"date,omitempty"`
	Time            string              `json:"time,omitempty"`
	Qty             int                 `json:"qty,omitempty"`
	UnitPrice       float64             `json:"unit_price,omitempty"`
	Currency        types.Currency      `json:"currency,omitempty"`
	Subtotal        float64             `json:"subtotal,omitempty"`
	Taxes           float64             `json:"taxes,omitempty"`
	Discount        float64             `json:"discount"`
	PromoCode       *string             `json:"promo_code,omitempty"`
	Total           float64             `json:"total,omitempty"`
	Status          types.BookingStatus `gorm:"default:'confirmed'" json:"status,omitempty"`
	UserID          *uint               `json:"user_id,omitempty"`

	Product Product `gorm:"foreignKey:product_id" json:"-"`
	User    *User   `gorm:"foreignKey:user_id" json:"-"`

	types.Timestamps
}
