package utils

import (
	"bookit/src/models"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestParseBookingDate(t *testing.T) {
	d, err := ParseBookingDate("2026-09-01")
	assert.Nil(t, err)
	assert.Equal(t, 2026, d.Year())
	assert.Equal(t, time.September, d.Month())
	assert.Equal(t, 1, d.Day())

	d, err = ParseBookingDate("2026-09-01T10:00:00Z")
	assert.Nil(t, err)
	assert.Equal(t, 10, d.Hour())

	_, err = ParseBookingDate("01/09/2026")
	assert.ErrorIs(t, err, ErrUnparsableDate)
}

func TestGenerateOTP(t *testing.T) {
	for i := 0; i < 20; i++ {
		otp, err := GenerateOTP()
		assert.Nil(t, err)
		assert.Len(t, otp, 6)
		for _, c := range otp {
			assert.True(t, c >= '0' && c <= '9')
		}
	}
}

func TestSlugifyTitle(t *testing.T) {
	gormDB, mock := newMockDB()

	mock.ExpectQuery(`SELECT count(*) FROM "products"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	s, err := SlugifyTitle(gormDB, "Kayak Sunset Tour!")
	assert.Nil(t, err)
	assert.Equal(t, "kayak-sunset-tour", s)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestSlugifyTitleCollision(t *testing.T) {
	gormDB, mock := newMockDB()

	mock.ExpectQuery(`SELECT count(*) FROM "products"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT count(*) FROM "products"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	s, err := SlugifyTitle(gormDB, "Kayak Sunset Tour")
	assert.Nil(t, err)
	assert.Equal(t, "kayak-sunset-tour-2", s)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestGenerateToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	user := models.User{ID: 42, Email: "someone@example.com", Role: "customer"}

	token, err := GenerateToken(&user)
	assert.Nil(t, err)
	assert.NotEmpty(t, token)
}
