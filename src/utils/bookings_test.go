package utils

import (
	"bookit/src/db"
	"bookit/src/models"
	"bookit/src/types"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

var productColumns = []string{"id", "title", "base_price", "currency", "dates", "is_active"}

func sampleDatesJSON(t *testing.T, capacity, booked int) []byte {
	t.Helper()
	dates := models.ProductDates{
		{
			Date: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
			Slots: []models.Slot{
				{Time: "10:00", Capacity: capacity, Booked: booked, Status: types.SLOT_AVAILABLE},
			},
		},
	}
	b, err := json.Marshal(dates)
	assert.Nil(t, err)
	return b
}

func TestCreateBooking(t *testing.T) {
	gormDB, mock := newMockDB()
	db.NewDB(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM "products"`).
		WillReturnRows(sqlmock.NewRows(productColumns).
			AddRow(1, "Kayak Sunset Tour", 1500.0, "INR", sampleDatesJSON(t, 10, 0), true))
	mock.ExpectQuery(`SELECT count(*) FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`INSERT INTO "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectExec(`UPDATE "products"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	booking, err := CreateBooking(&types.CreateBookingRequestBody{
		ProductID: 1,
		Name:      "Asha Rao",
		Email:     "asha@example.com",
		Date:      "2026-09-01",
		Time:      "10:00",
		Qty:       2,
	}, nil)
	assert.Nil(t, err)
	assert.True(t, strings.HasPrefix(booking.ReferenceNumber, "BK-"))
	assert.Equal(t, "Kayak Sunset Tour", booking.ProductTitle)
	assert.Equal(t, float64(3000), booking.Subtotal)
	assert.Equal(t, float64(10), booking.Taxes)
	assert.Equal(t, float64(0), booking.Discount)
	assert.Equal(t, float64(3010), booking.Total)
	assert.Equal(t, types.BOOKING_CONFIRMED, booking.Status)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestCreateBookingWithPromo(t *testing.T) {
	gormDB, mock := newMockDB()
	db.NewDB(gormDB)

	promo := "SAVE500"
	mock.ExpectBegin()
	mock.ExpectQuery(`FROM "products"`).
		WillReturnRows(sqlmock.NewRows(productColumns).
			AddRow(1, "Kayak Sunset Tour", 1500.0, "INR", sampleDatesJSON(t, 10, 0), true))
	mock.ExpectQuery(`FROM "promo_codes"`).
		WillReturnRows(sqlmock.NewRows(promoColumns).
			AddRow(3, "SAVE500", "fixed", 500.0, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), true))
	mock.ExpectQuery(`SELECT count(*) FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`INSERT INTO "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(8))
	mock.ExpectExec(`UPDATE "products"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	booking, err := CreateBooking(&types.CreateBookingRequestBody{
		ProductID: 1,
		Name:      "Asha Rao",
		Email:     "asha@example.com",
		Date:      "2026-09-01",
		Time:      "10:00",
		Qty:       2,
		PromoCode: &promo,
	}, nil)
	assert.Nil(t, err)
	assert.Equal(t, float64(500), booking.Discount)
	assert.Equal(t, float64(2510), booking.Total)
	assert.Equal(t, "SAVE500", *booking.PromoCode)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestCreateBookingCapacityExceeded(t *testing.T) {
	gormDB, mock := newMockDB()
	db.NewDB(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM "products"`).
		WillReturnRows(sqlmock.NewRows(productColumns).
			AddRow(1, "Kayak Sunset Tour", 1500.0, "INR", sampleDatesJSON(t, 2, 1), true))
	mock.ExpectRollback()

	_, err := CreateBooking(&types.CreateBookingRequestBody{
		ProductID: 1,
		Name:      "Asha Rao",
		Email:     "asha@example.com",
		Date:      "2026-09-01",
		Time:      "10:00",
		Qty:       2,
	}, nil)
	assert.ErrorIs(t, err, models.ErrCapacityExceeded)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestCreateBookingDateNotAvailable(t *testing.T) {
	gormDB, mock := newMockDB()
	db.NewDB(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM "products"`).
		WillReturnRows(sqlmock.NewRows(productColumns).
			AddRow(1, "Kayak Sunset Tour", 1500.0, "INR", sampleDatesJSON(t, 10, 0), true))
	mock.ExpectRollback()

	_, err := CreateBooking(&types.CreateBookingRequestBody{
		ProductID: 1,
		Name:      "Asha Rao",
		Email:     "asha@example.com",
		Date:      "2026-09-05",
		Time:      "10:00",
		Qty:       1,
	}, nil)
	assert.ErrorIs(t, err, models.ErrDateNotAvailable)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestCreateBookingInactiveProduct(t *testing.T) {
	gormDB, mock := newMockDB()
	db.NewDB(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM "products"`).
		WillReturnRows(sqlmock.NewRows(productColumns).
			AddRow(1, "Kayak Sunset Tour", 1500.0, "INR", sampleDatesJSON(t, 10, 0), false))
	mock.ExpectRollback()

	_, err := CreateBooking(&types.CreateBookingRequestBody{
		ProductID: 1,
		Name:      "Asha Rao",
		Email:     "asha@example.com",
		Date:      "2026-09-01",
		Time:      "10:00",
		Qty:       1,
	}, nil)
	assert.ErrorIs(t, err, models.ErrProductUnbookable)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestCreateBookingProductNotFound(t *testing.T) {
	gormDB, mock := newMockDB()
	db.NewDB(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM "products"`).
		WillReturnRows(sqlmock.NewRows(productColumns))
	mock.ExpectRollback()

	_, err := CreateBooking(&types.CreateBookingRequestBody{
		ProductID: 99,
		Name:      "Asha Rao",
		Email:     "asha@example.com",
		Date:      "2026-09-01",
		Time:      "10:00",
		Qty:       1,
	}, nil)
	assert.ErrorIs(t, err, models.ErrProductNotFound)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestCreateBookingUnparsableDate(t *testing.T) {
	gormDB, _ := newMockDB()
	db.NewDB(gormDB)

	_, err := CreateBooking(&types.CreateBookingRequestBody{
		ProductID: 1,
		Name:      "Asha Rao",
		Email:     "asha@example.com",
		Date:      "September 1st",
		Time:      "10:00",
		Qty:       1,
	}, nil)
	assert.ErrorIs(t, err, ErrUnparsableDate)
}
