package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type JSONB map[string]any

func (a JSONB) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONB) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

type Currency string

const (
	CURRENCY_INR Currency = "INR"
	CURRENCY_USD Currency = "USD"
	CURRENCY_EUR Currency = "EUR"
)

type SlotStatus string

const (
	SLOT_AVAILABLE SlotStatus = "available"
	SLOT_SOLDOUT   SlotStatus = "soldout"
)

type DiscountType string

const (
	DISCOUNT_FIXED   DiscountType = "fixed"
	DISCOUNT_PERCENT DiscountType = "percent"
)

type BookingStatus string

const (
	BOOKING_PENDING   BookingStatus = "pending"
	BOOKING_CONFIRMED BookingStatus = "confirmed"
	BOOKING_CANCELED  BookingStatus = "cancelled"
)

type UserRole string

const (
	ROLE_CUSTOMER UserRole = "customer"
	ROLE_ADMIN    UserRole = "admin"
)

type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// ErrorKind is the machine-readable classification carried on every error
// response alongside the human-readable message.
// Handler consumes the raw body of a queue message.
type Handler func(body string)

type ErrorKind string

const (
	KIND_VALIDATION   ErrorKind = "validation"
	KIND_NOT_FOUND    ErrorKind = "not_found"
	KIND_CONFLICT     ErrorKind = "conflict"
	KIND_EXPIRED      ErrorKind = "expired"
	KIND_UNAUTHORIZED ErrorKind = "unauthorized"
	KIND_FORBIDDEN    ErrorKind = "forbidden"
	KIND_INTERNAL     ErrorKind = "internal"
)

type APIError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

type SlotInput struct {
	Time     string `json:"time" binding:"required"`
	Capacity int    `json:"capacity" binding:"required,gte=0"`
	Booked   int    `json:"booked" binding:"gte=0"`
}

type DateBucketInput struct {
	Date  string      `json:"date" binding:"required"`
	Slots []SlotInput `json:"slots" binding:"required,min=1,dive"`
}

type CreateProductRequestBody struct {
	Title            string            `json:"title" binding:"required"`
	Description      string            `json:"description,omitempty"`
	ShortDescription string            `json:"shortDescription,omitempty"`
	BasePrice        float64           `json:"basePrice" binding:"required,gt=0"`
	Currency         string            `json:"currency,omitempty" binding:"omitempty,oneof=INR USD EUR"`
	Images           []ImageInput      `json:"images,omitempty" binding:"omitempty,dive"`
	Location         JSONB             `json:"location,omitempty"`
	Guide            JSONB             `json:"guide,omitempty"`
	GearIncluded     *bool             `json:"gearIncluded,omitempty"`
	SafetyInfo       string            `json:"safetyInfo,omitempty"`
	MinAge           int               `json:"minAge,omitempty"`
	MaxGroupSize     int               `json:"maxGroupSize,omitempty"`
	Dates            []DateBucketInput `json:"dates,omitempty" binding:"omitempty,dive"`
	Category         string            `json:"category,omitempty"`
	Duration         string            `json:"duration,omitempty"`
	IsActive         *bool             `json:"isActive,omitempty"`
	IsFeatured       *bool             `json:"isFeatured,omitempty"`
	SEO              JSONB             `json:"seo,omitempty"`
}

type ImageInput struct {
	URL string `json:"url" binding:"required"`
	Key string `json:"key,omitempty"`
}

type ListProductsQuery struct {
	Page     int    `form:"page,default=1" binding:"omitempty,gte=1"`
	Limit    int    `form:"limit,default=10" binding:"omitempty,gte=1,lte=100"`
	Category string `form:"category"`
	Title    string `form:"title"`
	Featured *bool  `form:"featured"`
}

type CreateBookingRequestBody struct {
	ProductID uint    `json:"productId" binding:"required"`
	Name      string  `json:"name" binding:"required,min=3"`
	Email     string  `json:"email" binding:"required,email"`
	Date      string  `json:"date" binding:"required,bookabledate"`
	Time      string  `json:"time" binding:"required"`
	Qty       int     `json:"qty" binding:"required,gte=1"`
	PromoCode *string `json:"promoCode,omitempty" binding:"omitempty,promocode"`
}

type CreatePromoCodeRequestBody struct {
	Code          string  `json:"code" binding:"required,promocode"`
	DiscountType  string  `json:"discountType,omitempty" binding:"omitempty,oneof=fixed percent"`
	DiscountValue float64 `json:"discountValue" binding:"required,gte=0"`
	Expiry        string  `json:"expiry" binding:"required"`
}

type UpdatePromoCodeRequestBody struct {
	DiscountType  *string  `json:"discountType,omitempty" binding:"omitempty,oneof=fixed percent"`
	DiscountValue *float64 `json:"discountValue,omitempty" binding:"omitempty,gte=0"`
	Expiry        *string  `json:"expiry,omitempty"`
	IsActive      *bool    `json:"isActive,omitempty"`
}

type RegisterRequestBody struct {
	Name     string `json:"name" binding:"required"`
	UserName string `json:"userName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Avatar   string `json:"avatar,omitempty"`
}

type LoginRequestBody struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type VerifyOTPRequestBody struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required"`
}

type ResetPasswordRequestBody struct {
	Email       string `json:"email" binding:"required,email"`
	OTP         string `json:"otp" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

type RenameFileRequestBody struct {
	NewName string `json:"newName" binding:"required"`
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}
