package main

import (
	"bookit/src/db"
	"bookit/src/lib/aws"
	"bookit/src/models"
	"bookit/src/types"
	"fmt"
	"log"
	"net/http"
	"path"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func adminFileHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/files", func(ctx *gin.Context) {
			var files []models.File
			db := db.GetDb()
			if err := db.Order("created_at desc").Find(&files).Error; err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": files})
		}).
		POST("/files", func(ctx *gin.Context) {
			fileHeader, err := ctx.FormFile("file")
			if err != nil {
				badRequest(ctx, err)
				return
			}
			f, err := fileHeader.Open()
			if err != nil {
				respondError(ctx, err)
				return
			}
			defer f.Close()

			key := fmt.Sprintf("media/%s%s", uuid.NewString(), path.Ext(fileHeader.Filename))
			contentType := fileHeader.Header.Get("Content-Type")
			if err := aws.S3UploadMedia(key, f, contentType); err != nil {
				respondError(ctx, err)
				return
			}

			userId := ctx.GetUint("id")
			file := models.File{
				Name:        fileHeader.Filename,
				Key:         key,
				URL:         aws.S3ObjectURL(key),
				ContentType: contentType,
				Size:        fileHeader.Size,
				UploadedBy:  userId,
			}
			db := db.GetDb()
			if err := db.Create(&file).Error; err != nil {
				log.Printf("Error recording uploaded file: %s\n", err.Error())
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": file})
		}).
		PATCH("/files/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				badRequest(ctx, err)
				return
			}
			var body types.RenameFileRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				badRequest(ctx, err)
				return
			}
			db := db.GetDb()
			err := db.Transaction(func(tx *gorm.DB) error {
				var file models.File
				if err := tx.Where("id = ?", params.ID).First(&file).Error; err != nil {
					return err
				}
				newKey := fmt.Sprintf("media/%s%s", uuid.NewString(), path.Ext(body.NewName))
				if err := aws.S3RenameMedia(file.Key, newKey); err != nil {
					return err
				}
				return tx.Model(&models.File{}).Where("id = ?", params.ID).Updates(map[string]any{
					"name": body.NewName,
					"key":  newKey,
					"url":  aws.S3ObjectURL(newKey),
				}).Error
			})
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.Status(http.StatusNoContent)
		}).
		DELETE("/files/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				badRequest(ctx, err)
				return
			}
			db := db.GetDb()
			err := db.Transaction(func(tx *gorm.DB) error {
				var file models.File
				if err := tx.Where("id = ?", params.ID).First(&file).Error; err != nil {
					return err
				}
				if err := aws.S3DeleteMedia(file.Key); err != nil {
					return err
				}
				return tx.Delete(&file).Error
			})
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return g
}
