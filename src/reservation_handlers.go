package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"hbs/src/common"
	"hbs/src/config"
	"hbs/src/lib"
	"hbs/src/models"
	"hbs/src/types"

	"github.com/gin-gonic/gin"
)

// paymentQRURL renders the transfer QR for a reservation and returns the
// share URL. Failures degrade to the deep link only.
func paymentQRURL(r *models.Reservation, instructions *types.PaymentInstructions) string {
	filename := fmt.Sprintf("payment_%s", r.LookupCode)
	if _, err := lib.SavePaymentQR(instructions.DeepLink, filename); err != nil {
		log.Printf("Error generating payment QR for reservation %d: %s\n", r.ID, err.Error())
		return ""
	}
	return fmt.Sprintf("%s%s/share/%s", os.Getenv("API_HOST"), apiPrefix, filename)
}

func reservationHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/reservations", func(ctx *gin.Context) {
			var body types.CreateReservationRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			reservation, err := common.CreateReservation(&body)
			if err != nil {
				ctx.JSON(types.HTTPStatus(err), gin.H{"error": err.Error()})
				return
			}
			response := gin.H{"data": reservation}
			if reservation.PaymentMethod == types.PAYMENT_TRANSFER {
				instructions := common.PaymentInstructionsFor(reservation, "")
				instructions.QRURL = paymentQRURL(reservation, instructions)
				response["payment"] = instructions
			}
			ctx.JSON(http.StatusCreated, response)
		}).
		GET("/reservations/lookup", func(ctx *gin.Context) {
			var query types.LookupQueryFilters
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if query.Code != "" {
				reservation, err := common.LookupByCode(query.Code)
				if err != nil {
					ctx.JSON(types.HTTPStatus(err), gin.H{"error": err.Error()})
					return
				}
				ctx.JSON(http.StatusOK, gin.H{"data": reservation})
				return
			}
			reservations, err := common.LookupByContact(query.Phone, query.Email, config.LookupRecentLimit())
			if err != nil {
				ctx.JSON(types.HTTPStatus(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": reservations, "count": len(reservations)})
		}).
		GET("/reservations/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			reservation, err := common.LookupByID(params.ID)
			if err != nil {
				ctx.JSON(types.HTTPStatus(err), gin.H{"error": err.Error()})
				return
			}
			response := gin.H{"data": reservation}
			if reservation.PaymentMethod == types.PAYMENT_TRANSFER &&
				reservation.Status != types.RESERVATION_CANCELED &&
				reservation.PaymentStatus != types.PAYMENT_PAID {
				response["payment"] = common.PaymentInstructionsFor(reservation, "")
			}
			ctx.JSON(http.StatusOK, response)
		})
	return g
}
