package main

import (
	"errors"
	"log"
	"net/http"
	"time"

	"hbs/src/config"
	"hbs/src/db"
	"hbs/src/models"
	"hbs/src/models/scopes"
	"hbs/src/types"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func roomHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/rooms", func(ctx *gin.Context) {
			var body types.CreateRoomRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			room := models.Room{
				Name:        body.Name,
				Code:        slug.Make(body.Name),
				NightlyRate: body.NightlyRate,
				HourlyRate:  body.HourlyRate,
				Description: body.Description,
			}
			db := db.GetDb()
			err := db.Transaction(func(tx *gorm.DB) error {
				return tx.Create(&room).Error
			})
			if err != nil {
				log.Printf("Error creating room: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": room})
		}).
		GET("/rooms", func(ctx *gin.Context) {
			var rooms []models.Room
			db := db.GetDb()
			if err := db.Order("name asc").Find(&rooms).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": rooms, "count": len(rooms)})
		}).
		GET("/rooms/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var room models.Room
			db := db.GetDb()
			err := db.
				Scopes(scopes.WithID(params.ID)).
				Preload("DayPrices").
				First(&room).
				Error
			if err != nil {
				err := errors.New("room not found")
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": room})
		}).
		PATCH("/rooms/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.UpdateRoomRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			updates := map[string]any{}
			if body.Name != nil {
				updates["name"] = *body.Name
			}
			if body.NightlyRate != nil {
				updates["nightly_rate"] = *body.NightlyRate
			}
			if body.HourlyRate != nil {
				updates["hourly_rate"] = *body.HourlyRate
			}
			if body.Description != nil {
				updates["description"] = *body.Description
			}
			if len(updates) == 0 {
				ctx.Status(http.StatusNoContent)
				return
			}
			db := db.GetDb()
			err := db.Transaction(func(tx *gorm.DB) error {
				res := tx.
					Model(&models.Room{}).
					Scopes(scopes.WithID(params.ID)).
					Updates(updates)
				if res.Error != nil {
					return res.Error
				}
				if res.RowsAffected == 0 {
					return types.NewNotFoundError("room %d not found", params.ID)
				}
				return nil
			})
			if err != nil {
				ctx.JSON(types.HTTPStatus(err), gin.H{"error": err.Error()})
				return
			}
			ctx.Status(http.StatusOK)
		}).
		PUT("/rooms/:id/prices", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.SetDayPriceRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			day, err := time.Parse(config.DATE_PARSE_FORMAT, body.Day)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			err = db.Transaction(func(tx *gorm.DB) error {
				var room models.Room
				if err := tx.Scopes(scopes.WithID(params.ID)).Select("id").First(&room).Error; err != nil {
					return types.NewNotFoundError("room %d not found", params.ID)
				}
				price := models.DayPrice{
					RoomID: params.ID,
					Day:    day,
					Price:  body.Price,
				}
				return tx.
					Clauses(clause.OnConflict{
						Columns:   []clause.Column{{Name: "room_id"}, {Name: "day"}},
						DoUpdates: clause.AssignmentColumns([]string{"price"}),
					}).
					Create(&price).
					Error
			})
			if err != nil {
				log.Printf("Error setting day price: %s\n", err.Error())
				ctx.JSON(types.HTTPStatus(err), gin.H{"error": err.Error()})
				return
			}
			ctx.Status(http.StatusOK)
		}).
		DELETE("/rooms/:id/prices/:day", func(ctx *gin.Context) {
			var params struct {
				ID  uint   `uri:"id" binding:"required"`
				Day string `uri:"day" binding:"required"`
			}
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			day, err := time.Parse(config.DATE_PARSE_FORMAT, params.Day)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			err = db.Transaction(func(tx *gorm.DB) error {
				return tx.
					Where("room_id = ? AND day = ?", params.ID, day).
					Delete(&models.DayPrice{}).
					Error
			})
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return g
}
