package main

import (
	"bookit/src/db"
	"bookit/src/models"
	"bookit/src/models/scopes"
	"bookit/src/types"
	"bookit/src/utils"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func bookingHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/bookings", func(ctx *gin.Context) {
			var body types.CreateBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				badRequest(ctx, err)
				return
			}
			var userID *uint
			if id := ctx.GetUint("id"); id > 0 {
				userID = &id
			}
			booking, err := utils.CreateBooking(&body, userID)
			if err != nil {
				if errors.Is(err, models.ErrPromoExpired) || errors.Is(err, models.ErrPromoInactive) || errors.Is(err, models.ErrPromoNotFound) ||
					errors.Is(err, models.ErrDateNotAvailable) || errors.Is(err, models.ErrSlotNotFound) {
					badRequest(ctx, err)
					return
				}
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"success": true, "data": gin.H{
				"booking":         booking,
				"referenceNumber": booking.ReferenceNumber,
			}})
		}).
		GET("/bookings/:reference", func(ctx *gin.Context) {
			var params struct {
				Reference string `uri:"reference" binding:"required"`
			}
			if err := ctx.ShouldBindUri(&params); err != nil {
				badRequest(ctx, err)
				return
			}
			var booking models.Booking
			db := db.GetDb()
			if err := db.Where("reference_number = ?", params.Reference).First(&booking).Error; err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": booking})
		})
	return g
}

func adminBookingHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/bookings", func(ctx *gin.Context) {
			var query struct {
				Page      int    `form:"page,default=1" binding:"omitempty,gte=1"`
				Limit     int    `form:"limit,default=20" binding:"omitempty,gte=1,lte=100"`
				ProductID uint   `form:"productId"`
				Email     string `form:"email"`
			}
			if err := ctx.ShouldBindQuery(&query); err != nil {
				badRequest(ctx, err)
				return
			}
			db := db.GetDb()
			q := db.Model(&models.Booking{})
			if query.ProductID > 0 {
				q = q.Where("product_id = ?", query.ProductID)
			}
			if query.Email != "" {
				q = q.Where("email = ?", query.Email)
			}
			var total int64
			if err := q.Count(&total).Error; err != nil {
				respondError(ctx, err)
				return
			}
			var bookings []models.Booking
			if err := q.Order("created_at desc").Scopes(scopes.Paginate(query.Page, query.Limit)).Find(&bookings).Error; err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookings, "total": total, "page": query.Page, "limit": query.Limit})
		}).
		PATCH("/bookings/:id/status", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				badRequest(ctx, err)
				return
			}
			var body struct {
				NewStatus types.BookingStatus `json:"newStatus" binding:"required,oneof=pending confirmed cancelled"`
			}
			if err := ctx.ShouldBindJSON(&body); err != nil {
				badRequest(ctx, err)
				return
			}
			db := db.GetDb()
			err := db.Transaction(func(tx *gorm.DB) error {
				var booking models.Booking
				if err := tx.Where("id = ?", params.ID).First(&booking).Error; err != nil {
					return err
				}
				return tx.Model(&models.Booking{}).Where("id = ?", params.ID).Update("status", body.NewStatus).Error
			})
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return g
}
