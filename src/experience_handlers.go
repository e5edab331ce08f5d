package main

import (
	"bookit/src/db"
	"bookit/src/lib"
	"bookit/src/models"
	"bookit/src/models/scopes"
	"bookit/src/types"
	"bookit/src/utils"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func experienceHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/experiences", func(ctx *gin.Context) {
			var query types.ListProductsQuery
			if err := ctx.ShouldBindQuery(&query); err != nil {
				badRequest(ctx, err)
				return
			}
			db := db.GetDb()
			q := db.Model(&models.Product{}).Scopes(scopes.ActiveOnly)
			if query.Category != "" {
				q = q.Where("category = ?", query.Category)
			}
			if query.Title != "" {
				q = q.Where("title ILIKE ?", "%"+query.Title+"%")
			}
			if query.Featured != nil {
				q = q.Where("is_featured = ?", *query.Featured)
			}
			var total int64
			if err := q.Count(&total).Error; err != nil {
				respondError(ctx, err)
				return
			}
			var products []models.Product
			if err := q.Order("created_at desc").Scopes(scopes.Paginate(query.Page, query.Limit)).Find(&products).Error; err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": products, "total": total, "page": query.Page, "limit": query.Limit})
		}).
		GET("/experiences/:id", func(ctx *gin.Context) {
			idParam := ctx.Param("id")
			var product models.Product
			var err error
			db := db.GetDb()
			if id, aerr := strconv.Atoi(idParam); aerr == nil && id > 0 {
				if lib.CachedProduct(ctx, uint(id), &product) {
					ctx.JSON(http.StatusOK, gin.H{"data": product})
					return
				}
				err = db.Scopes(scopes.WithID(uint(id)), scopes.ActiveOnly).First(&product).Error
			} else {
				err = db.Where("slug = ?", idParam).Scopes(scopes.ActiveOnly).First(&product).Error
			}
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					respondError(ctx, models.ErrProductNotFound)
					return
				}
				respondError(ctx, err)
				return
			}
			go lib.CacheProduct(ctx.Copy(), product.ID, &product)
			ctx.JSON(http.StatusOK, gin.H{"data": product})
		})
	return g
}

func adminExperienceHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/experiences", func(ctx *gin.Context) {
			var body types.CreateProductRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				badRequest(ctx, err)
				return
			}
			dates, err := parseDateBuckets(body.Dates)
			if err != nil {
				badRequest(ctx, err)
				return
			}
			if err := models.ValidateSlotGrid(dates); err != nil {
				badRequest(ctx, err)
				return
			}
			models.NormalizeSlotStatuses(dates)

			userId := ctx.GetUint("id")
			product := models.Product{
				Title:            body.Title,
				Description:      body.Description,
				ShortDescription: body.ShortDescription,
				BasePrice:        body.BasePrice,
				Images:           toProductImages(body.Images),
				Location:         body.Location,
				Guide:            body.Guide,
				SafetyInfo:       body.SafetyInfo,
				MinAge:           body.MinAge,
				MaxGroupSize:     body.MaxGroupSize,
				Dates:            dates,
				Category:         body.Category,
				Duration:         body.Duration,
				IsActive:         true,
				SEO:              body.SEO,
				CreatedBy:        userId,
			}
			if body.Currency != "" {
				product.Currency = types.Currency(body.Currency)
			}
			if body.GearIncluded != nil {
				product.GearIncluded = *body.GearIncluded
			}
			if body.IsActive != nil {
				product.IsActive = *body.IsActive
			}
			if body.IsFeatured != nil {
				product.IsFeatured = *body.IsFeatured
			}

			db := db.GetDb()
			err = db.Transaction(func(tx *gorm.DB) error {
				s, err := utils.SlugifyTitle(tx, body.Title)
				if err != nil {
					return err
				}
				product.Slug = s
				return tx.Create(&product).Error
			})
			if err != nil {
				log.Printf("Error creating product: %s\n", err.Error())
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": product})
		}).
		PATCH("/experiences/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				badRequest(ctx, err)
				return
			}
			var body types.CreateProductRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				badRequest(ctx, err)
				return
			}
			dates, err := parseDateBuckets(body.Dates)
			if err != nil {
				badRequest(ctx, err)
				return
			}
			if err := models.ValidateSlotGrid(dates); err != nil {
				badRequest(ctx, err)
				return
			}
			models.NormalizeSlotStatuses(dates)

			db := db.GetDb()
			err = db.Transaction(func(tx *gorm.DB) error {
				var product models.Product
				if err := tx.Where("id = ?", params.ID).First(&product).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return models.ErrProductNotFound
					}
					return err
				}
				updates := map[string]any{
					"title":             body.Title,
					"description":       body.Description,
					"short_description": body.ShortDescription,
					"base_price":        body.BasePrice,
					"safety_info":       body.SafetyInfo,
					"min_age":           body.MinAge,
					"max_group_size":    body.MaxGroupSize,
					"category":          body.Category,
					"duration":          body.Duration,
				}
				if body.Currency != "" {
					updates["currency"] = body.Currency
				}
				if len(dates) > 0 {
					updates["dates"] = dates
				}
				if len(body.Images) > 0 {
					updates["images"] = toProductImages(body.Images)
				}
				if body.Location != nil {
					updates["location"] = body.Location
				}
				if body.Guide != nil {
					updates["guide"] = body.Guide
				}
				if body.SEO != nil {
					updates["seo"] = body.SEO
				}
				if body.GearIncluded != nil {
					updates["gear_included"] = *body.GearIncluded
				}
				if body.IsActive != nil {
					updates["is_active"] = *body.IsActive
				}
				if body.IsFeatured != nil {
					updates["is_featured"] = *body.IsFeatured
				}
				return tx.Model(&models.Product{}).Where("id = ?", params.ID).Updates(updates).Error
			})
			if err != nil {
				respondError(ctx, err)
				return
			}
			go lib.InvalidateProduct(ctx.Copy(), params.ID)
			ctx.Status(http.StatusNoContent)
		}).
		DELETE("/experiences/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				badRequest(ctx, err)
				return
			}
			db := db.GetDb()
			res := db.Where("id = ?", params.ID).Delete(&models.Product{})
			if res.Error != nil {
				respondError(ctx, res.Error)
				return
			}
			if res.RowsAffected == 0 {
				respondError(ctx, models.ErrProductNotFound)
				return
			}
			go lib.InvalidateProduct(ctx.Copy(), params.ID)
			ctx.Status(http.StatusNoContent)
		})
	return g
}

func parseDateBuckets(inputs []types.DateBucketInput) (models.ProductDates, error) {
	dates := make(models.ProductDates, 0, len(inputs))
	for _, in := range inputs {
		date, err := utils.ParseBookingDate(in.Date)
		if err != nil {
			return nil, err
		}
		slots := make([]models.Slot, 0, len(in.Slots))
		for _, s := range in.Slots {
			slots = append(slots, models.Slot{
				Time:     s.Time,
				Capacity: s.Capacity,
				Booked:   s.Booked,
				Status:   types.SLOT_AVAILABLE,
			})
		}
		dates = append(dates, models.DateBucket{Date: date, Slots: slots})
	}
	return dates, nil
}

func toProductImages(inputs []types.ImageInput) models.ProductImages {
	images := make(models.ProductImages, 0, len(inputs))
	for _, in := range inputs {
		images = append(images, models.ProductImage{URL: in.URL, Key: in.Key})
	}
	return images
}
