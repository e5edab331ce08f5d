package main

import (
	"bookit/src/db"
	"bookit/src/models"
	"bookit/src/types"
	"net/http"

	"github.com/gin-gonic/gin"
)

func userHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/users/me", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			var user models.User
			db := db.GetDb()
			if err := db.Where("id = ?", userId).First(&user).Error; err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": user})
		}).
		GET("/users/me/bookings", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			var bookings []models.Booking
			db := db.GetDb()
			if err := db.Where("user_id = ?", userId).Order("created_at desc").Find(&bookings).Error; err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookings})
		})
	return g
}

func adminUserHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/users", func(ctx *gin.Context) {
			var users []models.User
			db := db.GetDb()
			if err := db.Order("created_at desc").Find(&users).Error; err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": users})
		}).
		PATCH("/users/:id/role", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				badRequest(ctx, err)
				return
			}
			var body struct {
				Role types.UserRole `json:"role" binding:"required,oneof=customer admin"`
			}
			if err := ctx.ShouldBindJSON(&body); err != nil {
				badRequest(ctx, err)
				return
			}
			db := db.GetDb()
			res := db.Model(&models.User{}).Where("id = ?", params.ID).Update("role", body.Role)
			if res.Error != nil {
				respondError(ctx, res.Error)
				return
			}
			if res.RowsAffected == 0 {
				respondError(ctx, models.ErrUserNotFound)
				return
			}
			ctx.Status(http.StatusNoContent)
		}).
		DELETE("/users/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				badRequest(ctx, err)
				return
			}
			db := db.GetDb()
			res := db.Where("id = ?", params.ID).Delete(&models.User{})
			if res.Error != nil {
				respondError(ctx, res.Error)
				return
			}
			if res.RowsAffected == 0 {
				respondError(ctx, models.ErrUserNotFound)
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return g
}
