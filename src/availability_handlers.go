package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"hbs/src/common"
	"hbs/src/config"
	"hbs/src/db"
	"hbs/src/lib"
	"hbs/src/models"
	"hbs/src/models/scopes"
	"hbs/src/types"

	"github.com/gin-gonic/gin"
)

// cachedMonthPrices serves the day→price map from redis when fresh; staleness
// here is acceptable so a cache miss or dead redis just recomputes.
func cachedMonthPrices(room *models.Room, month time.Time) (map[string]int64, error) {
	key := fmt.Sprintf("room:%d:prices:%s", room.ID, month.Format(config.MONTH_PARSE_FORMAT))
	if val := lib.CacheGet(context.Background(), key); val != "" {
		var prices map[string]int64
		if err := json.Unmarshal([]byte(val), &prices); err == nil {
			return prices, nil
		}
	}
	gdb := db.GetDb()
	prices, err := common.MonthPriceMap(gdb, room, month)
	if err != nil {
		return nil, err
	}
	if b, err := json.Marshal(prices); err == nil {
		lib.CacheSet(context.Background(), key, string(b), int64(config.CalendarCacheTTL().Seconds()))
	}
	return prices, nil
}

func availabilityHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/rooms/:id/availability", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var query types.AvailabilityQueryFilters
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}

			// Reads are a cheap place to retire expired holds so the
			// calendar never shows a hold the sweeper is about to drop.
			go func() {
				if _, err := common.SweepExpired(time.Now()); err != nil {
					log.Printf("Opportunistic sweep failed: %s\n", err.Error())
				}
			}()

			gdb := db.GetDb()
			var room models.Room
			if err := gdb.Scopes(scopes.WithID(params.ID)).First(&room).Error; err != nil {
				err := errors.New("room not found")
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}

			calendar := types.RoomCalendar{RoomID: room.ID}
			blocking, err := common.BlockedIntervals(gdb, room.ID)
			if err != nil {
				log.Printf("Error loading blocking intervals: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			calendar.Blocking = blocking

			if query.Month != "" {
				month, err := time.Parse(config.MONTH_PARSE_FORMAT, query.Month)
				if err != nil {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
				prices, err := cachedMonthPrices(&room, month)
				if err != nil {
					ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
					return
				}
				calendar.Prices = prices
			}
			if query.Date != "" {
				date, err := time.Parse(config.DATE_PARSE_FORMAT, query.Date)
				if err != nil {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
				occupied, err := common.OccupiedSlots(gdb, room.ID, date)
				if err != nil {
					ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
					return
				}
				calendar.Occupied = occupied
			}
			ctx.JSON(http.StatusOK, gin.H{"data": calendar})
		})
	return g
}
