package main

import (
	"crypto/subtle"
	"errors"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"hbs/src/common"
	"hbs/src/config"
	"hbs/src/db"
	"hbs/src/models"
	"hbs/src/types"
	"hbs/src/utils"

	"github.com/gin-gonic/gin"
)

// staffAuthRoutes exchanges the shared staff secret for a JWT. Identity
// proper lives outside this service; this is the minimal token issuer the
// admin surface needs.
func staffAuthRoutes(g *gin.Engine) *gin.RouterGroup {
	apiv1 := apiv1Group(g)
	apiv1.POST("/auth/login", func(ctx *gin.Context) {
		var body struct {
			Email  string `json:"email" binding:"required,email"`
			Secret string `json:"secret" binding:"required"`
		}
		if err := ctx.ShouldBindJSON(&body); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		expected := os.Getenv("STAFF_SHARED_SECRET")
		if expected == "" || subtle.ConstantTimeCompare([]byte(body.Secret), []byte(expected)) != 1 {
			ctx.Status(http.StatusUnauthorized)
			return
		}
		var staff models.Staff
		db := db.GetDb()
		if err := db.Where(&models.Staff{Email: body.Email}).First(&staff).Error; err != nil {
			err := errors.New("no staff account for this email")
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		token, err := utils.GenerateJWT(staff.Email, staff.ID, staff.Admin)
		if err != nil {
			log.Printf("Error generating token: %s\n", err.Error())
			ctx.Status(http.StatusInternalServerError)
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"token": token})
	})
	return apiv1
}

func adminHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/admin/reservations", func(ctx *gin.Context) {
			var query struct {
				Status string `form:"status" binding:"omitempty,oneof=pending confirmed canceled"`
				RoomID uint   `form:"room_id"`
				Date   string `form:"date" binding:"omitempty,calendardate"`
				Limit  int    `form:"limit"`
			}
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			limit := query.Limit
			if limit <= 0 || limit > 200 {
				limit = 50
			}
			db := db.GetDb()
			tx := db.Model(&models.Reservation{}).Preload("Room")
			if query.Status != "" {
				tx = tx.Where("status = ?", query.Status)
			}
			if query.RoomID > 0 {
				tx = tx.Where("room_id = ?", query.RoomID)
			}
			if query.Date != "" {
				day, err := time.Parse(config.DATE_PARSE_FORMAT, query.Date)
				if err != nil {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
				// Overnight stays covering the day, or hourly slots on it.
				tx = tx.Where("(check_in <= ? AND check_out > ?) OR date = ?", day, day, day)
			}
			var reservations []models.Reservation
			if err := tx.Order("created_at DESC").Limit(limit).Find(&reservations).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": reservations, "count": len(reservations)})
		}).
		POST("/admin/reservations/:id/cancel", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.CancelReservationRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil && err.Error() != "EOF" {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if err := common.CancelReservation(params.ID, body.Force); err != nil {
				ctx.JSON(types.HTTPStatus(err), gin.H{"error": err.Error()})
				return
			}
			if body.Reason != "" {
				log.Printf("Reservation %d canceled by %s: %s\n", params.ID, ctx.GetString("email"), body.Reason)
			}
			ctx.Status(http.StatusOK)
		}).
		POST("/admin/reservations/:id/cash_paid", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			reservation, err := common.MarkCashPaid(params.ID)
			if err != nil {
				ctx.JSON(types.HTTPStatus(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": reservation})
		}).
		POST("/admin/sweep", func(ctx *gin.Context) {
			swept, err := common.SweepExpired(time.Now())
			if err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"swept": swept})
		}).
		GET("/admin/ledger", func(ctx *gin.Context) {
			var query struct {
				ReservationID uint   `form:"reservation_id"`
				Unmatched     string `form:"unmatched"`
				Limit         int    `form:"limit"`
			}
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			limit := query.Limit
			if limit <= 0 || limit > 200 {
				limit = 50
			}
			db := db.GetDb()
			tx := db.Model(&models.LedgerEntry{})
			if query.ReservationID > 0 {
				tx = tx.Where("reservation_id = ?", query.ReservationID)
			}
			if unmatched, err := strconv.ParseBool(query.Unmatched); err == nil && unmatched {
				tx = tx.Where("reservation_id IS NULL")
			}
			var entries []models.LedgerEntry
			if err := tx.Order("created_at DESC").Limit(limit).Find(&entries).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": entries, "count": len(entries)})
		})
	return g
}
