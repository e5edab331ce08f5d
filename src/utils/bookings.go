package utils

import (
	"bookit/src/config"
	"bookit/src/db"
	"bookit/src/lib"
	"bookit/src/lib/mailer"
	"bookit/src/models"
	"bookit/src/types"
	"context"
	"errors"
	"log"
	"os"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateBooking reserves seats and records the booking snapshot in one
// transaction. The product row is locked FOR UPDATE so the locate, capacity
// check, and counter mutation happen against a stable grid even under
// concurrent requests for the last seats.
func CreateBooking(params *types.CreateBookingRequestBody, userID *uint) (*models.Booking, error) {
	date, err := ParseBookingDate(params.Date)
	if err != nil {
		return nil, err
	}
	now := time.Now()

	var booking models.Booking
	db := db.GetDb()
	err = db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.
			Clauses(clause.Locking{
				Strength: "UPDATE",
				Table:    clause.Table{Name: clause.CurrentTable},
			}).
			Where("id = ?", params.ProductID).
			First(&product).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrProductNotFound
			}
			return err
		}
		if !product.IsActive {
			return models.ErrProductUnbookable
		}

		slot, err := product.LocateSlot(date, params.Time)
		if err != nil {
			return err
		}
		if err := slot.Take(params.Qty); err != nil {
			return err
		}

		subtotal := product.BasePrice * float64(params.Qty)
		taxes := config.FLAT_TAXES
		var discount float64
		var promoCode *string
		if params.PromoCode != nil && *params.PromoCode != "" {
			promo, err := EvaluatePromo(tx, *params.PromoCode, now)
			if err != nil {
				return err
			}
			discount = promo.DiscountFor(subtotal)
			promoCode = &promo.Code
		}
		total := subtotal + taxes - discount

		ref, err := GenerateReferenceNumber(tx)
		if err != nil {
			return err
		}

		booking = models.Booking{
			ReferenceNumber: ref,
			ProductID:       product.ID,
			ProductTitle:    product.Title,
			Name:            params.Name,
			Email:           params.Email,
			Date:            date,
			Time:            slot.Time,
			Qty:             params.Qty,
			UnitPrice:       product.BasePrice,
			Currency:        product.Currency,
			Subtotal:        subtotal,
			Taxes:           taxes,
			Discount:        discount,
			PromoCode:       promoCode,
			Total:           total,
			Status:          types.BOOKING_CONFIRMED,
			UserID:          userID,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}
		if err := tx.
			Model(&models.Product{}).
			Where("id = ?", product.ID).
			Update("dates", product.Dates).
			Error; err != nil {
			log.Printf("Failed to persist slot counters for product %d: %s\n", product.ID, err.Error())
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	go lib.InvalidateProduct(context.Background(), booking.ProductID)
	go SendBookingConfirmation(&booking)

	return &booking, nil
}

// SendBookingConfirmation emails the order summary to the guest.
func SendBookingConfirmation(booking *models.Booking) {
	promoCode := ""
	if booking.PromoCode != nil {
		promoCode = *booking.PromoCode
	}
	body := mailer.BookingConfirmationBody(&mailer.BookingEmailData{
		ReferenceNumber: booking.ReferenceNumber,
		ProductTitle:    booking.ProductTitle,
		Name:            booking.Name,
		Email:           booking.Email,
		Date:            booking.Date,
		Time:            booking.Time,
		Qty:             booking.Qty,
		Currency:        string(booking.Currency),
		Subtotal:        booking.Subtotal,
		Taxes:           booking.Taxes,
		Discount:        booking.Discount,
		Total:           booking.Total,
		PromoCode:       promoCode,
	})
	err := mailer.NewMailerMessage(&lib.SendMailInput{
		From:     os.Getenv("MAIL_FROM"),
		FromName: os.Getenv("MAIL_FROM_NAME"),
		To:       []string{booking.Email},
		Subject:  "Your booking " + booking.ReferenceNumber + " is confirmed",
		Body:     body,
		Html:     true,
	})
	if err != nil {
		log.Printf("Failed to send confirmation for %s: %s\n", booking.ReferenceNumber, err.Error())
	}
}
