package main

import (
	"bookit/src/db"
	"bookit/src/models"
	"bookit/src/types"
	"bookit/src/utils"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func promoHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/promo-codes/validate", func(ctx *gin.Context) {
			code := ctx.Query("code")
			if code == "" {
				badRequest(ctx, errors.New("code is required"))
				return
			}
			promo, err := utils.ValidatePromo(code, time.Now())
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true, "promo": gin.H{
				"code":          promo.Code,
				"discountType":  promo.DiscountType,
				"discountValue": promo.DiscountValue,
				"expiry":        promo.Expiry,
			}})
		})
	return g
}

func adminPromoHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/promo-codes", func(ctx *gin.Context) {
			var promos []models.PromoCode
			db := db.GetDb()
			if err := db.Order("created_at desc").Find(&promos).Error; err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": promos})
		}).
		POST("/promo-codes", func(ctx *gin.Context) {
			var body types.CreatePromoCodeRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				badRequest(ctx, err)
				return
			}
			expiry, err := utils.ParseBookingDate(body.Expiry)
			if err != nil {
				badRequest(ctx, err)
				return
			}
			userId := ctx.GetUint("id")
			promo := models.PromoCode{
				Code:          strings.ToUpper(strings.TrimSpace(body.Code)),
				DiscountValue: body.DiscountValue,
				Expiry:        expiry,
				IsActive:      true,
				CreatedBy:     userId,
			}
			if body.DiscountType != "" {
				promo.DiscountType = types.DiscountType(body.DiscountType)
			}
			db := db.GetDb()
			err = db.Transaction(func(tx *gorm.DB) error {
				var count int64
				if err := tx.Model(&models.PromoCode{}).Where("code = ?", promo.Code).Count(&count).Error; err != nil {
					return err
				}
				if count > 0 {
					return errors.New("promo code already exists")
				}
				return tx.Create(&promo).Error
			})
			if err != nil {
				log.Printf("Error creating promo code: %s\n", err.Error())
				ctx.JSON(http.StatusConflict, gin.H{"error": types.APIError{Kind: types.KIND_CONFLICT, Message: err.Error()}})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": promo})
		}).
		PATCH("/promo-codes/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				badRequest(ctx, err)
				return
			}
			var body types.UpdatePromoCodeRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				badRequest(ctx, err)
				return
			}
			updates := map[string]any{}
			if body.DiscountType != nil {
				updates["discount_type"] = *body.DiscountType
			}
			if body.DiscountValue != nil {
				updates["discount_value"] = *body.DiscountValue
			}
			if body.Expiry != nil {
				expiry, err := utils.ParseBookingDate(*body.Expiry)
				if err != nil {
					badRequest(ctx, err)
					return
				}
				updates["expiry"] = expiry
			}
			if body.IsActive != nil {
				updates["is_active"] = *body.IsActive
			}
			if len(updates) == 0 {
				badRequest(ctx, errors.New("no fields to update"))
				return
			}
			db := db.GetDb()
			res := db.Model(&models.PromoCode{}).Where("id = ?", params.ID).Updates(updates)
			if res.Error != nil {
				respondError(ctx, res.Error)
				return
			}
			if res.RowsAffected == 0 {
				respondError(ctx, models.ErrPromoNotFound)
				return
			}
			ctx.Status(http.StatusNoContent)
		}).
		DELETE("/promo-codes/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				badRequest(ctx, err)
				return
			}
			db := db.GetDb()
			res := db.Where("id = ?", params.ID).Delete(&models.PromoCode{})
			if res.Error != nil {
				respondError(ctx, res.Error)
				return
			}
			if res.RowsAffected == 0 {
				respondError(ctx, models.ErrPromoNotFound)
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return g
}
