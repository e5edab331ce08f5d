package main

import (
	"bookit/src/models"
	"bookit/src/types"
	"bookit/src/utils"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func badRequest(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": types.APIError{Kind: types.KIND_VALIDATION, Message: err.Error()}})
}

// respondError maps domain errors onto status codes and error kinds so every
// handler reports failures the same way.
func respondError(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	kind := types.KIND_INTERNAL
	switch {
	case errors.Is(err, models.ErrProductNotFound),
		errors.Is(err, models.ErrPromoNotFound),
		errors.Is(err, models.ErrUserNotFound),
		errors.Is(err, models.ErrDateNotAvailable),
		errors.Is(err, models.ErrSlotNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		status = http.StatusNotFound
		kind = types.KIND_NOT_FOUND
	case errors.Is(err, models.ErrSlotSoldOut),
		errors.Is(err, models.ErrCapacityExceeded),
		errors.Is(err, models.ErrProductUnbookable):
		status = http.StatusConflict
		kind = types.KIND_CONFLICT
	case errors.Is(err, models.ErrPromoExpired):
		status = http.StatusGone
		kind = types.KIND_EXPIRED
	case errors.Is(err, models.ErrPromoInactive):
		status = http.StatusForbidden
		kind = types.KIND_FORBIDDEN
	case errors.Is(err, utils.ErrUnparsableDate):
		status = http.StatusBadRequest
		kind = types.KIND_VALIDATION
	}
	if status == http.StatusInternalServerError {
		log.Printf("internal error on %s %s: %s\n", ctx.Request.Method, ctx.FullPath(), err.Error())
		ctx.JSON(status, gin.H{"success": false, "error": types.APIError{Kind: kind, Message: "something went wrong"}})
		return
	}
	ctx.JSON(status, gin.H{"success": false, "error": types.APIError{Kind: kind, Message: err.Error()}})
}
