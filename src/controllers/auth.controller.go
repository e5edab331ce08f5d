package controllers

import (
	"bookit/src/config"
	"bookit/src/db"
	"bookit/src/lib"
	"bookit/src/lib/mailer"
	"bookit/src/models"
	"bookit/src/types"
	"bookit/src/utils"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthRegister creates an unverified account and mails it a one-time code.
func AuthRegister(ctx *gin.Context) (email *string, status int, err error) {
	var body types.RegisterRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, err
	}

	user := models.User{
		Name:     body.Name,
		UserName: body.UserName,
		Email:    body.Email,
		Phone:    body.Phone,
		Avatar:   body.Avatar,
		Role:     types.ROLE_CUSTOMER,
	}
	if err := user.SetPassword(body.Password); err != nil {
		return nil, http.StatusInternalServerError, err
	}
	otp, err := utils.GenerateOTP()
	if err != nil {
		return nil, http.StatusInternalServerError, err
	}
	if err := user.SetOTP(otp, time.Now().Add(config.OTP_TTL_MINUTES*time.Minute)); err != nil {
		return nil, http.StatusInternalServerError, err
	}

	db := db.GetDb()
	err = db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ? OR user_name = ?", body.Email, body.UserName).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errors.New("email or username already registered")
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		log.Printf("Error registering user: %s\n", err.Error())
		return nil, http.StatusConflict, err
	}

	go sendOTPEmail(&user, otp)

	return &user.Email, http.StatusCreated, nil
}

// AuthVerifyOTP flips an account verified after checking the emailed code.
func AuthVerifyOTP(ctx *gin.Context) (status int, err error) {
	var body types.VerifyOTPRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return http.StatusBadRequest, err
	}
	db := db.GetDb()
	var user models.User
	if err := db.Where("email = ?", body.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return http.StatusNotFound, models.ErrUserNotFound
		}
		return http.StatusInternalServerError, err
	}
	if err := user.CheckOTP(body.OTP, time.Now()); err != nil {
		return http.StatusUnauthorized, err
	}
	err = db.Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]any{
		"verified":   true,
		"otp_hash":   "",
		"otp_expiry": nil,
	}).Error
	if err != nil {
		log.Printf("Error verifying user [%d]: %s\n", user.ID, err.Error())
		return http.StatusInternalServerError, err
	}
	return http.StatusOK, nil
}

// AuthLogin checks credentials and issues a session token.
func AuthLogin(ctx *gin.Context) (token *string, status int, err error) {
	var body types.LoginRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, err
	}
	db := db.GetDb()
	var user models.User
	if err := db.Where("email = ?", body.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, http.StatusUnauthorized, models.ErrInvalidCredentials
		}
		return nil, http.StatusInternalServerError, err
	}
	if err := user.CheckPassword(body.Password); err != nil {
		return nil, http.StatusUnauthorized, err
	}
	if !user.Verified {
		return nil, http.StatusForbidden, models.ErrUserUnverified
	}

	jwt, err := utils.GenerateToken(&user)
	if err != nil {
		log.Printf("Error signing token for user [%d]: %s\n", user.ID, err.Error())
		return nil, http.StatusInternalServerError, err
	}
	return &jwt, http.StatusOK, nil
}

// AuthRequestPasswordReset mails a one-time code to an existing account.
// Responds the same whether or not the email exists.
func AuthRequestPasswordReset(email string) {
	db := db.GetDb()
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return
	}
	otp, err := utils.GenerateOTP()
	if err != nil {
		log.Printf("Error generating reset code: %s\n", err.Error())
		return
	}
	if err := user.SetOTP(otp, time.Now().Add(config.OTP_TTL_MINUTES*time.Minute)); err != nil {
		return
	}
	if err := db.Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]any{
		"otp_hash":   user.OTPHash,
		"otp_expiry": user.OTPExpiry,
	}).Error; err != nil {
		log.Printf("Error storing reset code for user [%d]: %s\n", user.ID, err.Error())
		return
	}
	go sendOTPEmail(&user, otp)
}

// AuthResetPassword sets a new password after checking the emailed code.
func AuthResetPassword(ctx *gin.Context) (status int, err error) {
	var body types.ResetPasswordRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return http.StatusBadRequest, err
	}
	db := db.GetDb()
	var user models.User
	if err := db.Where("email = ?", body.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return http.StatusNotFound, models.ErrUserNotFound
		}
		return http.StatusInternalServerError, err
	}
	if err := user.CheckOTP(body.OTP, time.Now()); err != nil {
		return http.StatusUnauthorized, err
	}
	if err := user.SetPassword(body.NewPassword); err != nil {
		return http.StatusInternalServerError, err
	}
	err = db.Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]any{
		"password_hash": user.PasswordHash,
		"otp_hash":      "",
		"otp_expiry":    nil,
	}).Error
	if err != nil {
		log.Printf("Error resetting password for user [%d]: %s\n", user.ID, err.Error())
		return http.StatusInternalServerError, err
	}
	return http.StatusOK, nil
}

func sendOTPEmail(user *models.User, otp string) {
	err := mailer.NewMailerMessage(&lib.SendMailInput{
		From:     os.Getenv("MAIL_FROM"),
		FromName: os.Getenv("MAIL_FROM_NAME"),
		To:       []string{user.Email},
		Subject:  "Your verification code",
		Body:     mailer.OTPBody(user.Name, otp, config.OTP_TTL_MINUTES),
		Html:     true,
	})
	if err != nil {
		log.Printf("Failed to send code to %s: %s\n", user.Email, err.Error())
	}
}
